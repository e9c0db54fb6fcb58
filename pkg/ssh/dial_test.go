package ssh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "认证方法被拒绝",
			err:  errors.New("ssh: unable to authenticate, attempted methods [none password]"),
			want: ErrBadCredentials,
		},
		{
			name: "permission denied",
			err:  errors.New("ssh: handshake failed: Permission denied (publickey,password)"),
			want: ErrBadCredentials,
		},
		{
			name: "连接被拒绝",
			err:  errors.New("dial tcp 10.0.0.5:22: connect: connection refused"),
			want: ErrConnectionRefused,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestClassifyUnknownErrorIsWrapped(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	got := Classify(cause)

	require.Error(t, got)
	assert.NotErrorIs(t, got, ErrBadCredentials)
	assert.NotErrorIs(t, got, ErrConnectionRefused)
	assert.ErrorIs(t, got, cause)
	assert.Contains(t, got.Error(), "failed to connect")
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, Classify(nil))
}
