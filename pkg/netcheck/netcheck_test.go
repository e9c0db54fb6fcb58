package netcheck

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRejectInterfaceFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags net.Flags
		want  bool
	}{
		{"正常网卡", net.FlagUp | net.FlagBroadcast | net.FlagMulticast, false},
		{"未启用", net.FlagBroadcast, true},
		{"回环", net.FlagUp | net.FlagLoopback, true},
		{"点对点隧道", net.FlagUp | net.FlagPointToPoint, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RejectInterfaceFlags(tt.flags))
		})
	}
}

func TestProbeFirstReachableHostWins(t *testing.T) {
	var dialed []string
	p := &Prober{
		Hosts: []string{"a:80", "b:80", "c:80"},
		Dial: func(network, addr string, timeout time.Duration) (net.Conn, error) {
			dialed = append(dialed, addr)
			if addr == "b:80" {
				server, client := net.Pipe()
				server.Close()
				return client, nil
			}
			return nil, errors.New("unreachable")
		},
	}

	assert.True(t, p.probe(time.Second))
	// 第一个成功后不再继续探测
	assert.Equal(t, []string{"a:80", "b:80"}, dialed)
}

func TestProbeAllHostsDown(t *testing.T) {
	p := &Prober{
		Hosts: []string{"a:80", "b:80"},
		Dial: func(network, addr string, timeout time.Duration) (net.Conn, error) {
			return nil, errors.New("unreachable")
		},
	}

	assert.False(t, p.probe(100*time.Millisecond))
}

func TestHasInternetFailsClosedWithoutInterfaces(t *testing.T) {
	p := &Prober{
		Hosts: []string{"a:80"},
		Dial: func(network, addr string, timeout time.Duration) (net.Conn, error) {
			t.Fatal("没有可用网卡时不应发起探测")
			return nil, nil
		},
		Interfaces: func() ([]net.Interface, error) {
			return nil, errors.New("netlink down")
		},
	}

	assert.False(t, p.HasInternet(time.Second))
}

func TestHasInternetSkipsUnusableInterfaces(t *testing.T) {
	p := &Prober{
		Hosts: []string{"a:80"},
		Dial: func(network, addr string, timeout time.Duration) (net.Conn, error) {
			t.Fatal("回环网卡不应触发探测")
			return nil, nil
		},
		Interfaces: func() ([]net.Interface, error) {
			return []net.Interface{
				{Name: "lo", Flags: net.FlagUp | net.FlagLoopback},
				{Name: "tun0", Flags: net.FlagUp | net.FlagPointToPoint},
			}, nil
		},
	}

	assert.False(t, p.HasInternet(time.Second))
}
