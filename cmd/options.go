package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"example.com/MikuTransfer/cmd/utils"
	"example.com/MikuTransfer/pkg/config"
	"example.com/MikuTransfer/pkg/models"
	"example.com/MikuTransfer/pkg/sftp"
	xssh "example.com/MikuTransfer/pkg/ssh"
	"github.com/spf13/cobra"
	gossh "golang.org/x/crypto/ssh"
)

// ConnectOptions 是所有需要建立SFTP连接的子命令共享的参数集
type ConnectOptions struct {
	Host     string
	Port     uint16
	User     string
	Password string
	KeyFile  string
	KeyPass  string
	Alias    string
	JumpHost string
	args     []string
}

func NewConnectOptions() *ConnectOptions {
	return &ConnectOptions{}
}

// AddFlags 注册连接相关的公共flags
func (o *ConnectOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Host, "host", "H", "", "目标主机/连接别名")
	cmd.Flags().Uint16VarP(&o.Port, "port", "P", 0, "SFTP端口")
	cmd.Flags().StringVarP(&o.User, "user", "u", "", "用户名")
	cmd.Flags().StringVarP(&o.Password, "password", "w", "", "密码")
	cmd.Flags().StringVarP(&o.KeyFile, "key", "i", "", "SSH私钥文件路径")
	cmd.Flags().StringVarP(&o.KeyPass, "key_pass", "W", "", "SSH私钥密码")
	cmd.Flags().StringVarP(&o.JumpHost, "jump", "j", "", "跳板机地址[user@]host[:port]")
	cmd.Flags().StringVarP(&o.Alias, "alias", "a", "", "连接别名")
	cmd.MarkFlagsMutuallyExclusive("password", "key")
}

func (o *ConnectOptions) Complete(cmd *cobra.Command, args []string) {
	o.args = args
}

// Validate 校验并补全主机、用户与端口
// 位置参数接受 [user@]host[:port] 格式,支持 sftp:// 前缀
func (o *ConnectOptions) Validate() error {
	if len(o.args) > 0 {
		u, h, p := utils.ParseAddr(sftp.NormalizeHost(o.args[0]))
		if h == "" && o.Host == "" {
			return fmt.Errorf("无效的主机地址")
		}
		if o.Host == "" {
			o.Host = h
		}
		if o.User == "" {
			o.User = u
		}
		if o.Port == 0 {
			o.Port = p
		}
	}
	if o.Host == "" {
		return fmt.Errorf("未提供主机地址")
	}
	o.Host = sftp.NormalizeHost(o.Host)
	if o.User == "" {
		o.User = utils.GetCurrentUser()
	}
	if o.Port == 0 {
		o.Port = 22
	}
	if strings.Contains(o.Alias, "@") || strings.Contains(o.Alias, ":") {
		return errors.New("别名中不可含有<@>或<:>符号!")
	}
	return nil
}

// Connect 建立SFTP会话
// 优先复用已保存的连接信息,新连接成功后自动保存
func (o *ConnectOptions) Connect(ctx context.Context) (*sftp.Session, error) {
	configStore := config.NewDefaultStore(utils.GetConfigFilePath())
	cfg, err := configStore.Load()
	if err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %v", err)
	}
	provider := config.NewProvider(cfg)

	updated, err := o.resolve(provider)
	if err != nil {
		return nil, err
	}

	if o.Password == "" && o.KeyFile == "" {
		pass, err := utils.ReadPasswordFromTerminal("请输入密码: ")
		if err != nil {
			return nil, err
		}
		o.Password = pass
	}

	dial := xssh.Options{
		Host: o.Host,
		Port: o.Port,
		User: o.User,
		Auth: o.authMethod(),
	}
	if o.JumpHost != "" {
		via, err := o.dialJump(ctx, provider)
		if err != nil {
			return nil, err
		}
		dial.Via = via
	}

	sess, err := sftp.DialSession(ctx, dial)
	if err != nil {
		return nil, err
	}

	if updated {
		o.persist(provider)
		if err := configStore.Save(cfg); err != nil {
			return nil, fmt.Errorf("保存配置文件失败: %v", err)
		}
	}
	return sess, nil
}

func (o *ConnectOptions) authMethod() xssh.AuthMethod {
	if o.KeyFile != "" {
		return &xssh.KeyAuth{Path: o.KeyFile, Passphrase: o.KeyPass}
	}
	return &xssh.PasswordAuth{Password: o.Password}
}

// resolve 尝试以别名或 user@host:port 查找已保存的连接信息
// 返回值表示连接成功后是否需要写回配置
func (o *ConnectOptions) resolve(provider config.ConfigProvider) (bool, error) {
	nodeId := provider.Find(o.Host)
	if nodeId == "" {
		nodeId = provider.Find(fmt.Sprintf("%s@%s:%d", o.User, o.Host, o.Port))
	}
	if nodeId == "" {
		return true, nil
	}

	node, _ := provider.GetNode(nodeId)
	if host, ok := provider.GetHost(nodeId); ok {
		o.Host = host.Address
		if o.Port == 0 || o.Port == 22 {
			o.Port = host.Port
		}
	}
	if id, ok := provider.GetIdentity(nodeId); ok {
		if o.User == "" || o.User == utils.GetCurrentUser() {
			o.User = id.User
		}
		if o.Password == "" && o.KeyFile == "" {
			o.Password = id.Password
			o.KeyFile = id.KeyPath
			o.KeyPass = id.Passphrase
		}
	}
	if o.JumpHost == "" {
		o.JumpHost = node.ProxyJump
	}
	return false, nil
}

// persist 保存本次连接使用的主机与认证信息
func (o *ConnectOptions) persist(provider config.ConfigProvider) {
	nodeId := fmt.Sprintf("%s@%s:%d", o.User, o.Host, o.Port)
	node := models.Node{
		HostRef:     fmt.Sprintf("%s:%d", o.Host, o.Port),
		IdentityRef: fmt.Sprintf("%s@%s", o.User, o.Host),
		ProxyJump:   o.JumpHost,
	}
	if o.Alias != "" {
		node.Alias = append(node.Alias, o.Alias)
	}
	identity := models.Identity{User: o.User}
	if o.KeyFile != "" {
		identity.KeyPath = o.KeyFile
		identity.Passphrase = o.KeyPass
		identity.AuthType = "key"
	} else {
		identity.Password = o.Password
		identity.AuthType = "password"
	}
	provider.AddNode(nodeId, node)
	provider.AddHost(node.HostRef, models.Host{Address: o.Host, Port: o.Port})
	provider.AddIdentity(node.IdentityRef, identity)
}

// dialJump 建立到跳板机的连接,跳板机信息必须已经保存
func (o *ConnectOptions) dialJump(ctx context.Context, provider config.ConfigProvider) (*gossh.Client, error) {
	jumpId := provider.Find(o.JumpHost)
	if jumpId == "" {
		jumpId = o.JumpHost
	}
	host, hok := provider.GetHost(jumpId)
	id, iok := provider.GetIdentity(jumpId)
	if !hok || !iok {
		return nil, fmt.Errorf("跳板机 %s 信息不存在,请先保存跳板机信息", o.JumpHost)
	}

	var auth xssh.AuthMethod
	if id.AuthType == "key" {
		auth = &xssh.KeyAuth{Path: id.KeyPath, Passphrase: id.Passphrase}
	} else {
		auth = &xssh.PasswordAuth{Password: id.Password}
	}
	return xssh.Dial(ctx, xssh.Options{
		Host: host.Address,
		Port: host.Port,
		User: id.User,
		Auth: auth,
	})
}
