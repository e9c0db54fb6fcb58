package netcheck

import (
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// Ping 通过 ICMP 检查主机连通性并返回统计信息
// 注意: 在 Linux/macOS 上执行 ICMP raw socket 需要 root 权限
func Ping(host string, count int, timeout time.Duration) (*probing.Statistics, error) {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		return nil, err
	}
	pinger.SetPrivileged(true)
	pinger.Count = count
	pinger.Interval = time.Second
	if timeout <= 0 {
		timeout = time.Duration(count+1) * time.Second
	}
	pinger.Timeout = timeout

	if err := pinger.Run(); err != nil {
		return nil, err
	}
	return pinger.Statistics(), nil
}
