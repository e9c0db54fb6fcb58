package sftp

import (
	"context"
	"errors"
	"strings"
	"time"

	xssh "example.com/MikuTransfer/pkg/ssh"
	"example.com/MikuTransfer/pkg/logger"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Session 包装一条已认证的 SSH/SFTP 连接
// 会话在其生命周期内独占底层连接,传输引擎只是借用它打开的流
type Session struct {
	sshClient  *ssh.Client
	sftpClient *sftp.Client
	addr       string
	cfg        TransferConfig
}

// SessionOption 定义会话配置函数的类型
type SessionOption func(*Session)

// WithTransferConfig 覆盖默认的传输参数
func WithTransferConfig(cfg TransferConfig) SessionOption {
	return func(s *Session) {
		if cfg.ChunkSize > 0 {
			s.cfg.ChunkSize = cfg.ChunkSize
		}
		if cfg.StallTimeout > 0 {
			s.cfg.StallTimeout = cfg.StallTimeout
		}
		if cfg.StallBackoff > 0 {
			s.cfg.StallBackoff = cfg.StallBackoff
		}
		s.cfg.OpTimeout = cfg.OpTimeout
	}
}

// NormalizeHost 去除地址上的 sftp:// 前缀 (大小写不敏感)
func NormalizeHost(host string) string {
	const scheme = "sftp://"
	if len(host) >= len(scheme) && strings.EqualFold(host[:len(scheme)], scheme) {
		return host[len(scheme):]
	}
	return host
}

// Connect 建立连接并认证,失败时返回已分类的错误
func Connect(host, username, password string, port uint16, opts ...SessionOption) (*Session, error) {
	return ConnectContext(context.Background(), host, username, password, port, opts...)
}

func ConnectContext(ctx context.Context, host, username, password string, port uint16, opts ...SessionOption) (*Session, error) {
	return DialSession(ctx, xssh.Options{
		Host: NormalizeHost(host),
		Port: port,
		User: username,
		Auth: &xssh.PasswordAuth{Password: password},
	}, opts...)
}

// DialSession 以完整拨号参数建立会话,供密钥认证或经跳板机连接的场景使用
func DialSession(ctx context.Context, dial xssh.Options, opts ...SessionOption) (*Session, error) {
	dial.Host = NormalizeHost(dial.Host)
	sshCli, err := xssh.Dial(ctx, dial)
	if err != nil {
		return nil, err
	}
	if sshCli == nil {
		// 握手没有报错却拿不到连接,理论上不可达,防御性兜底
		return nil, errors.New("failed to connect for unknown reasons")
	}

	// sftp.NewClient 会在 ssh 连接上打开一个新的 Subsystem
	client, err := sftp.NewClient(sshCli)
	if err != nil {
		sshCli.Close()
		return nil, xssh.Classify(err)
	}

	s := &Session{
		sshClient:  sshCli,
		sftpClient: client,
		addr:       dial.Host,
		cfg:        DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// KeepAlive 为长连接场景启动保活探测,连接断开时记录日志
func (s *Session) KeepAlive(interval time.Duration) {
	xssh.StartKeepAlive(s.sshClient, interval, func(err error) {
		logger.Logger.Warn("keepalive probe failed", "addr", s.addr, "err", err)
	})
}

// Client 返回底层的 *sftp.Client,
// 允许调用者执行 rename, chmod, stat, symlink 等高级操作
func (s *Session) Client() *sftp.Client {
	return s.sftpClient
}

// JoinPath 处理远程路径拼接 (SFTP 协议强制使用 forward slash)
func (s *Session) JoinPath(elem ...string) string {
	return s.sftpClient.Join(elem...)
}

// Cwd 获取远程当前工作目录
func (s *Session) Cwd() (string, error) {
	return s.sftpClient.Getwd()
}

// Close 尽力释放 SFTP 子系统与底层 SSH 连接
// 释放失败只记录日志,不向上传播,避免覆盖传输本身的结果
func (s *Session) Close() {
	if s.sftpClient != nil {
		if err := s.sftpClient.Close(); err != nil {
			logger.Logger.Warn("failed to close sftp subsystem", "addr", s.addr, "err", err)
		}
	}
	if s.sshClient != nil {
		if err := s.sshClient.Close(); err != nil {
			logger.Logger.Warn("failed to close ssh connection", "addr", s.addr, "err", err)
		}
	}
}
