package cmd

import (
	"fmt"

	"example.com/MikuTransfer/cmd/utils"
	"example.com/MikuTransfer/pkg/sftp"
	"github.com/spf13/cobra"
)

type TestOptions struct {
	ConnectOptions
}

func NewCmdTest() *cobra.Command {
	o := &TestOptions{}
	cmd := &cobra.Command{
		Use:   "test [user@]host[:port]",
		Short: "测试到指定主机的SFTP连接",
		Long: `测试能否连接到指定主机并完成认证。
用法示例:
mxfer test user@host[:port] [-w password]
地址支持 sftp:// 前缀,端口默认为22
连接成功输出 "Connection successful.",失败时输出具体原因`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Complete(cmd, args)
			if err := o.Validate(); err != nil {
				return fmt.Errorf("参数错误: %v", err)
			}
			return o.Run()
		},
	}
	cmd.Flags().StringVarP(&o.Host, "host", "H", "", "目标主机")
	cmd.Flags().Uint16VarP(&o.Port, "port", "P", 0, "SFTP端口")
	cmd.Flags().StringVarP(&o.User, "user", "u", "", "用户名")
	cmd.Flags().StringVarP(&o.Password, "password", "w", "", "密码")
	return cmd
}

func (o *TestOptions) Run() error {
	if o.Password == "" {
		pass, err := utils.ReadPasswordFromTerminal("请输入密码: ")
		if err != nil {
			return err
		}
		o.Password = pass
	}
	fmt.Println(sftp.TestConnection(o.Host, o.User, o.Password, o.Port))
	return nil
}

func init() {
	rootCmd.AddCommand(NewCmdTest())
}
