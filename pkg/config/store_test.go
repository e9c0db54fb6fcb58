package config

import (
	"os"
	"path/filepath"
	"testing"

	"example.com/MikuTransfer/pkg/crypto"
	"example.com/MikuTransfer/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewDefaultStore(filepath.Join(dir, "config.yaml"), filepath.Join(dir, "config.key")), dir
}

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	store, _ := newTestStore(t)

	cfg, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Zero(t, cfg.Nodes.Count())
	assert.Zero(t, cfg.Hosts.Count())
	assert.Zero(t, cfg.Identities.Count())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, dir := newTestStore(t)

	cfg := NewConfiguration()
	provider := NewProvider(cfg)
	provider.AddNode("miku@10.0.0.5:22", models.Node{
		Alias:       []string{"staging"},
		HostRef:     "10.0.0.5:22",
		IdentityRef: "miku@10.0.0.5",
	})
	provider.AddHost("10.0.0.5:22", models.Host{Address: "10.0.0.5", Port: 22})
	provider.AddIdentity("miku@10.0.0.5", models.Identity{
		User:     "miku",
		Password: "39-secret",
		AuthType: "password",
	})

	require.NoError(t, store.Save(cfg))

	// 磁盘上的密码必须是密文
	raw, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "39-secret")
	assert.Contains(t, string(raw), crypto.Prefix)

	loaded, err := store.Load()
	require.NoError(t, err)
	lp := NewProvider(loaded)

	id, ok := lp.GetIdentity("miku@10.0.0.5:22")
	require.True(t, ok)
	assert.Equal(t, "miku", id.User)
	assert.Equal(t, "39-secret", id.Password, "加载时必须解密回明文")

	host, ok := lp.GetHost("miku@10.0.0.5:22")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.5", host.Address)
	assert.Equal(t, uint16(22), host.Port)
}

func TestSaveDoesNotMutateInMemoryConfig(t *testing.T) {
	store, _ := newTestStore(t)

	cfg := NewConfiguration()
	cfg.Identities.Set("a", models.Identity{User: "u", Password: "plain"})

	require.NoError(t, store.Save(cfg))

	id, ok := cfg.Identities.Get("a")
	require.True(t, ok)
	assert.Equal(t, "plain", id.Password, "加密应发生在副本上")
}

func TestProviderFind(t *testing.T) {
	cfg := NewConfiguration()
	provider := NewProvider(cfg)
	provider.AddNode("miku@10.0.0.5:22", models.Node{
		Alias:       []string{"staging"},
		HostRef:     "10.0.0.5:22",
		IdentityRef: "miku@10.0.0.5",
	})

	assert.Equal(t, "miku@10.0.0.5:22", provider.Find("staging"))
	assert.Equal(t, "miku@10.0.0.5:22", provider.Find("miku@10.0.0.5:22"))
	assert.Empty(t, provider.Find("unknown"))
}

func TestProviderDeleteNode(t *testing.T) {
	cfg := NewConfiguration()
	provider := NewProvider(cfg)
	provider.AddNode("miku@10.0.0.5:22", models.Node{
		Alias:       []string{"staging"},
		HostRef:     "10.0.0.5:22",
		IdentityRef: "miku@10.0.0.5",
	})
	provider.AddHost("10.0.0.5:22", models.Host{Address: "10.0.0.5", Port: 22})
	provider.AddIdentity("miku@10.0.0.5", models.Identity{User: "miku"})

	provider.DeleteNode("miku@10.0.0.5:22")

	assert.Empty(t, provider.Find("staging"))
	_, ok := provider.GetNode("miku@10.0.0.5:22")
	assert.False(t, ok)
}
