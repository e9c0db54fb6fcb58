package sftp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"小写前缀", "sftp://example.com", "example.com"},
		{"大写前缀", "SFTP://example.com", "example.com"},
		{"混合大小写前缀", "sFtP://10.0.0.5", "10.0.0.5"},
		{"无前缀保持原样", "example.com", "example.com"},
		{"空字符串", "", ""},
		{"不完整前缀保持原样", "sftp:/example.com", "sftp:/example.com"},
		{"前缀只出现在开头才剥离", "host.sftp://weird", "host.sftp://weird"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHost(tt.input))
		})
	}
}
