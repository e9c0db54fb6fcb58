package ssh

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

const defaultTimeout = 15 * time.Second

// 连接失败的分类错误,调用方可用 errors.Is 判断
var (
	// ErrBadCredentials 认证被拒绝,用户名或密码错误
	ErrBadCredentials = errors.New("authentication rejected, check username and password")
	// ErrConnectionRefused 目标主动拒绝连接,通常是端口或防火墙配置问题
	ErrConnectionRefused = errors.New("connection refused by target, check port and firewall settings")
)

// Options 描述一次连接的目标与认证方式
type Options struct {
	Host    string
	Port    uint16
	User    string
	Auth    AuthMethod
	Timeout time.Duration // 为 0 时使用默认 15s
	Via     *ssh.Client   // 可选的跳板机连接,非空时流量经其隧道转发
}

// Dial 建立 TCP 连接并完成 SSH 握手认证
// 失败时返回经 Classify 分类后的错误
func Dial(ctx context.Context, opts Options) (*ssh.Client, error) {
	if opts.Auth == nil {
		return nil, errors.New("no auth method provided")
	}
	method, err := opts.Auth.GetMethod()
	if err != nil {
		return nil, fmt.Errorf("failed to build auth method: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	config := &ssh.ClientConfig{
		User:            opts.User,
		Auth:            []ssh.AuthMethod{method},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // TODO: 集成 known_hosts 检查
		Timeout:         timeout,
	}

	var dialer Dialer = &net.Dialer{Timeout: timeout}
	if opts.Via != nil {
		dialer = &ProxyDialer{Client: opts.Via}
	}

	addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, Classify(err)
	}

	ncc, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return nil, Classify(err)
	}
	return ssh.NewClient(ncc, chans, reqs), nil
}

// Classify 按错误信息把底层失败归类为可判别的连接错误
func Classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unable to authenticate"),
		strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "password"):
		return fmt.Errorf("%w: %v", ErrBadCredentials, err)
	case strings.Contains(msg, "connection refused"):
		return fmt.Errorf("%w: %v", ErrConnectionRefused, err)
	default:
		return fmt.Errorf("failed to connect: %w", err)
	}
}
