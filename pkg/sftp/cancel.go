package sftp

import (
	"sync"
	"sync/atomic"
)

// Token 一次传输操作的取消令牌
// 拷贝循环在每个分块边界检查一次;取消后永久失效,不可复用
type Token struct {
	cancelled atomic.Bool
}

// Cancel 标记取消。幂等
func (t *Token) Cancel() {
	t.cancelled.Store(true)
}

// Active 令牌是否仍然有效。nil 令牌视为永不取消
func (t *Token) Active() bool {
	return t == nil || !t.cancelled.Load()
}

// Controller 单槽取消控制器:任意时刻至多一个活跃令牌,
// 请求新令牌会隐式取消并替换旧令牌。
// 注意:共享同一个 Controller 的并发传输无法独立取消,
// 需要独立取消范围的调用方应各自持有 Controller
type Controller struct {
	mu      sync.Mutex
	current *Token
}

// NewToken 取消当前令牌(若有)并发放一个新令牌
func (c *Controller) NewToken() *Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.current.Cancel()
	}
	c.current = &Token{}
	return c.current
}

// Cancel 取消当前令牌。没有活跃令牌时为空操作
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.current.Cancel()
	}
}

// IsActive 当前是否存在未被取消的令牌
func (c *Controller) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil && c.current.Active()
}

// IsCancelling 当前令牌是否已被要求取消
func (c *Controller) IsCancelling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil && !c.current.Active()
}

// defaultController 进程级默认控制器,支撑下面的兼容 API
var defaultController Controller

// NewCancellationToken 从默认控制器发放新令牌,旧令牌被隐式取消
func NewCancellationToken() *Token {
	return defaultController.NewToken()
}

// Cancel 取消默认控制器的当前令牌
func Cancel() {
	defaultController.Cancel()
}

// IsCancelling 默认控制器的当前令牌是否已被要求取消
func IsCancelling() bool {
	return defaultController.IsCancelling()
}
