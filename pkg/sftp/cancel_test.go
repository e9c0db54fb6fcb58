package sftp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenLifecycle(t *testing.T) {
	token := &Token{}
	assert.True(t, token.Active())

	token.Cancel()
	assert.False(t, token.Active())

	// 幂等
	token.Cancel()
	assert.False(t, token.Active())
}

func TestNilTokenIsAlwaysActive(t *testing.T) {
	var token *Token
	assert.True(t, token.Active())
}

func TestControllerNewTokenCancelsPrevious(t *testing.T) {
	var c Controller

	first := c.NewToken()
	assert.True(t, first.Active())

	second := c.NewToken()
	assert.False(t, first.Active(), "发放新令牌必须隐式取消旧令牌")
	assert.True(t, second.Active())
}

func TestControllerCancel(t *testing.T) {
	var c Controller

	// 没有活跃令牌时为空操作
	c.Cancel()
	assert.False(t, c.IsActive())
	assert.False(t, c.IsCancelling())

	token := c.NewToken()
	assert.True(t, c.IsActive())
	assert.False(t, c.IsCancelling())

	c.Cancel()
	assert.False(t, token.Active())
	assert.False(t, c.IsActive())
	assert.True(t, c.IsCancelling())
}
