package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddr(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantUser string
		wantHost string
		wantPort uint16
	}{
		{"完整格式", "miku@10.0.0.5:2222", "miku", "10.0.0.5", 2222},
		{"无端口", "miku@10.0.0.5", "miku", "10.0.0.5", 0},
		{"只有主机", "10.0.0.5", "", "10.0.0.5", 0},
		{"主机和端口", "10.0.0.5:22", "", "10.0.0.5", 22},
		{"带空格", " miku @ 10.0.0.5", "miku", "10.0.0.5", 0},
		{"空字符串", "", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, host, port := ParseAddr(tt.input)
			assert.Equal(t, tt.wantUser, user)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantPort, port)
		})
	}
}

func TestParseHost(t *testing.T) {
	host, port := ParseHost("example.com:8022")
	assert.Equal(t, "example.com", host)
	assert.Equal(t, uint16(8022), port)

	host, port = ParseHost("example.com")
	assert.Equal(t, "example.com", host)
	assert.Equal(t, uint16(0), port)
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		input string
		want  uint16
	}{
		{"22", 22},
		{"65535", 65535},
		{"", 0},
		{"not-a-port", 0},
		{"70000", 0}, // 超出 uint16 范围
		{"-1", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePort(tt.input), "input=%q", tt.input)
	}
}
