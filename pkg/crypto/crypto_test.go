package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCrypter(t *testing.T) *Crypter {
	t.Helper()
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	c, err := NewCrypter(key)
	require.NoError(t, err)
	return c
}

func TestCrypterRoundTrip(t *testing.T) {
	c := newTestCrypter(t)

	ciphertext, err := c.Encrypt("s3cret-密码")
	require.NoError(t, err)
	assert.True(t, IsEncrypted(ciphertext))
	assert.NotContains(t, ciphertext, "s3cret")

	plaintext, err := c.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "s3cret-密码", plaintext)
}

func TestCrypterNonceIsRandom(t *testing.T) {
	c := newTestCrypter(t)

	first, err := c.Encrypt("same input")
	require.NoError(t, err)
	second, err := c.Encrypt("same input")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestDecryptRejectsBadInput(t *testing.T) {
	c := newTestCrypter(t)

	_, err := c.Decrypt("plain text without prefix")
	assert.Error(t, err)

	_, err = c.Decrypt(Prefix + "not-base64!!!")
	assert.Error(t, err)

	_, err = c.Decrypt(Prefix + "c2hvcnQ=") // 短于 nonce 长度
	assert.Error(t, err)
}

func TestNewCrypterRejectsBadKeySize(t *testing.T) {
	_, err := NewCrypter([]byte("too short"))
	assert.Error(t, err)
}

func TestIsEncrypted(t *testing.T) {
	assert.True(t, IsEncrypted("ENC:abcd"))
	assert.False(t, IsEncrypted("abcd"))
	assert.False(t, IsEncrypted(""))
}

func TestLoadOrGenerateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.key")

	first, err := LoadOrGenerateKey(path)
	require.NoError(t, err)
	assert.Len(t, first, KeySize)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// 第二次加载必须返回同一把密钥
	second, err := LoadOrGenerateKey(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadOrGenerateKeyRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.key")
	require.NoError(t, os.WriteFile(path, []byte("truncated"), 0600))

	_, err := LoadOrGenerateKey(path)
	assert.Error(t, err)
}
