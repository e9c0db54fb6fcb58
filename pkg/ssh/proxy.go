package ssh

import (
	"context"
	"net"

	"golang.org/x/crypto/ssh"
)

// ProxyDialer 实现了 Dialer 接口,通过已有的 SSH 隧道转发流量
type ProxyDialer struct {
	Client *ssh.Client
}

func (s *ProxyDialer) Dial(network, addr string) (net.Conn, error) {
	return s.Client.Dial(network, addr)
}

func (s *ProxyDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	// ssh.Client.Dial 本身不支持 Context,用协程包一层以支持取消
	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		conn, err := s.Client.Dial(network, addr)
		ch <- result{conn: conn, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return nil, res.err
		}
		return res.conn, nil
	}
}
