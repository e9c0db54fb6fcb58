package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type LsOptions struct {
	ConnectOptions
	remotePath string
}

func NewCmdLs() *cobra.Command {
	o := &LsOptions{}
	cmd := &cobra.Command{
		Use:   "ls [user@]host[:port] [remote_path]",
		Short: "列出远程目录的内容",
		Long: `列出远程目录下的文件和子目录。
用法示例:
mxfer ls user@host[:port] /data
未指定远程路径时列出登录目录
文件大小以KiB为单位显示`,
		Args: cobra.RangeArgs(1, 2),
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

func (o *LsOptions) Complete(cmd *cobra.Command, args []string) {
	if len(args) > 1 {
		o.remotePath = args[1]
		args = args[:1]
	}
	o.ConnectOptions.Complete(cmd, args)
}

func (o *LsOptions) Run() error {
	ctx := context.Background()
	sess, err := o.Connect(ctx)
	if err != nil {
		return fmt.Errorf("连接失败: %v", err)
	}
	defer sess.Close()

	path := o.remotePath
	if path == "" {
		if cwd, err := sess.Cwd(); err == nil {
			path = cwd
		} else {
			path = "."
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tSIZE(KiB)\tMODIFIED\tNAME")
	for _, entry := range sess.List(path) {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			entry.Kind, entry.SizeKiB,
			entry.ModifiedAt.Format("2006-01-02 15:04:05"), entry.Name)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(NewCmdLs())
}
