package ssh

import (
	"time"

	"golang.org/x/crypto/ssh"
)

// StartKeepAlive 开启一个协程,定期向 SSH Server 发送心跳
// interval: 心跳间隔 (建议 15s - 60s)
// fallback: 可选的回调,心跳失败时连接会被关闭并回调通知
func StartKeepAlive(client *ssh.Client, interval time.Duration, fallback func(err error)) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			<-ticker.C

			// "keepalive@openssh.com" 是 OpenSSH 标准的心跳请求类型
			// wantReply = true: 服务器挂了或网络断了时 SendRequest 会报错
			_, _, err := client.SendRequest("keepalive@openssh.com", true, nil)
			if err != nil {
				// 心跳失败说明连接已断,显式关闭让正在使用的会话感知到
				client.Close()
				if fallback != nil {
					fallback(err)
				}
				return
			}
		}
	}()
}
