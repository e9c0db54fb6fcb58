package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type ShellOptions struct {
	ConnectOptions
}

func NewCmdShell() *cobra.Command {
	o := &ShellOptions{}
	cmd := &cobra.Command{
		Use:     "shell [user@]host[:port]",
		Aliases: []string{"sh"},
		Short:   "打开到远程主机的交互式SFTP会话",
		Long: `打开到远程主机的交互式SFTP会话。
用法示例:
mxfer shell user@host[:port]
会话内输入 help 查看支持的命令
get/put 命令传输时显示进度,输入 cancel 可取消正在进行的传输`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Complete(cmd, args)
			if err := o.Validate(); err != nil {
				return fmt.Errorf("参数错误: %v", err)
			}
			return o.Run()
		},
	}
	o.AddFlags(cmd)
	return cmd
}

func (o *ShellOptions) Run() error {
	ctx := context.Background()
	sess, err := o.Connect(ctx)
	if err != nil {
		return fmt.Errorf("连接失败: %v", err)
	}
	defer sess.Close()

	// 交互式会话可能长时间空闲,定期保活避免被防火墙断开
	sess.KeepAlive(30 * time.Second)

	shell, err := sess.NewShell(os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		return fmt.Errorf("交互式环境创建失败: %v", err)
	}
	return shell.Run(ctx)
}

func init() {
	rootCmd.AddCommand(NewCmdShell())
	rootCmd.AddCommand(NewCmdGet())
	rootCmd.AddCommand(NewCmdPut())
}
