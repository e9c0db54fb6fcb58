package config

import (
	"errors"
	"os"
	"path/filepath"

	"example.com/MikuTransfer/pkg/crypto"
	"example.com/MikuTransfer/pkg/models"
	"gopkg.in/yaml.v3"
)

type Store interface {
	Load() (*Configuration, error)
	Save(cfg *Configuration) error
}

type defaultStore struct {
	Path    string
	KeyPath string // 用于加解密敏感字段的密钥文件
}

func NewDefaultStore(path, keyPath string) Store {
	return &defaultStore{
		Path:    path,
		KeyPath: keyPath,
	}
}

// Load 读取配置文件并解密 Identities 中的敏感字段
// 配置文件不存在时返回空配置而不是错误
func (s *defaultStore) Load() (*Configuration, error) {
	cfg := NewConfiguration()

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	crypter, err := s.crypter()
	if err != nil {
		return nil, err
	}
	for _, id := range cfg.Identities.Keys() {
		identity, ok := cfg.Identities.Get(id)
		if !ok {
			continue
		}
		if identity.Password, err = decryptField(crypter, identity.Password); err != nil {
			return nil, err
		}
		if identity.Passphrase, err = decryptField(crypter, identity.Passphrase); err != nil {
			return nil, err
		}
		cfg.Identities.Set(id, identity)
	}
	return cfg, nil
}

// Save 加密敏感字段后写回配置文件,权限 0600
func (s *defaultStore) Save(cfg *Configuration) error {
	crypter, err := s.crypter()
	if err != nil {
		return err
	}

	// 序列化一个加密副本,内存中的配置保持明文可用
	out := NewConfiguration()
	cfg.Hosts.IterCb(func(k string, v models.Host) bool {
		out.Hosts.Set(k, v)
		return true
	})
	cfg.Nodes.IterCb(func(k string, v models.Node) bool {
		out.Nodes.Set(k, v)
		return true
	})
	var encErr error
	cfg.Identities.IterCb(func(k string, identity models.Identity) bool {
		if identity.Password, encErr = encryptField(crypter, identity.Password); encErr != nil {
			return false
		}
		if identity.Passphrase, encErr = encryptField(crypter, identity.Passphrase); encErr != nil {
			return false
		}
		out.Identities.Set(k, identity)
		return true
	})
	if encErr != nil {
		return encErr
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0600)
}

func (s *defaultStore) crypter() (*crypto.Crypter, error) {
	key, err := crypto.LoadOrGenerateKey(s.KeyPath)
	if err != nil {
		return nil, err
	}
	return crypto.NewCrypter(key)
}

func encryptField(c *crypto.Crypter, value string) (string, error) {
	if value == "" || crypto.IsEncrypted(value) {
		return value, nil
	}
	return c.Encrypt(value)
}

func decryptField(c *crypto.Crypter, value string) (string, error) {
	if !crypto.IsEncrypted(value) {
		return value, nil
	}
	return c.Decrypt(value)
}
