// Package netcheck 提供尽力而为的公网可达性探测
// 探测结果只作参考,任何失败都被吞掉视为 "不可达",绝不抛错
package netcheck

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/sync/singleflight"
)

// wellKnownHosts 按顺序尝试的探测目标 (80 端口 TCP)
var wellKnownHosts = []string{
	"connectivitycheck.gstatic.com:80",
	"www.google.com:80",
	"1.1.1.1:80",
	"223.5.5.5:80",
}

// Prober 公网可达性探测器
// Dial 与 Interfaces 可注入以便测试
type Prober struct {
	Hosts      []string
	Dial       func(network, addr string, timeout time.Duration) (net.Conn, error)
	Interfaces func() ([]net.Interface, error)

	sf singleflight.Group
}

func NewProber() *Prober {
	return &Prober{
		Hosts:      wellKnownHosts,
		Dial:       net.DialTimeout,
		Interfaces: net.Interfaces,
	}
}

// HasInternet 是否能连通公网
// 没有可用网卡时直接返回 false;并发的相同探测会被合并成一次
func (p *Prober) HasInternet(timeout time.Duration) bool {
	if !p.hasUsableInterface() {
		return false
	}
	v, _, _ := p.sf.Do(fmt.Sprintf("probe@%d", timeout), func() (interface{}, error) {
		return p.probe(timeout), nil
	})
	return v.(bool)
}

// probe 在截止时间内按顺序尝试 TCP 连接,第一个成功即可达
func (p *Prober) probe(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for _, host := range p.Hosts {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		conn, err := p.Dial("tcp", host, remaining)
		if err != nil {
			// 连接失败只意味着这一跳不可达
			continue
		}
		conn.Close()
		return true
	}
	return false
}

func (p *Prober) hasUsableInterface() bool {
	ifaces, err := p.Interfaces()
	if err != nil {
		return false
	}
	for i := range ifaces {
		if RejectInterfaceFlags(ifaces[i].Flags) {
			continue
		}
		if hasIPv4(&ifaces[i]) {
			return true
		}
	}
	return false
}

// RejectInterfaceFlags 过滤明显不能出公网的网卡:
// 未启用、回环、点对点 (utun / tun / vpn)
func RejectInterfaceFlags(flags net.Flags) bool {
	if flags&net.FlagUp == 0 {
		return true
	}
	if flags&net.FlagLoopback != 0 {
		return true
	}
	if flags&net.FlagPointToPoint != 0 {
		return true
	}
	return false
}

// hasIPv4 网卡是否配置了非回环的 IPv4 地址
func hasIPv4(iface *net.Interface) bool {
	addrs, err := iface.Addrs()
	if err != nil {
		return false
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
			return true
		}
	}
	return false
}

var defaultProber = NewProber()

// HasInternet 使用默认探测器检查公网可达性
func HasInternet(timeout time.Duration) bool {
	return defaultProber.HasInternet(timeout)
}
