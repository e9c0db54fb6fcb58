package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"example.com/MikuTransfer/pkg/sftp"
	"github.com/spf13/cobra"
)

type GetOptions struct {
	ConnectOptions
	remotePath string
	localPath  string
}

func NewCmdGet() *cobra.Command {
	o := &GetOptions{}
	cmd := &cobra.Command{
		Use:   "get [user@]host[:port] remote_file [local_path]",
		Short: "从远程主机下载文件",
		Long: `从远程主机下载单个文件并显示传输进度。
用法示例:
mxfer get user@host[:port] /data/app.tar.gz ./app.tar.gz
未指定本地路径时保存到当前目录,文件名与远程一致
传输过程中按 Ctrl+C 可以取消,已写入的部分内容会保留
长时间收不到数据时传输会自动超时终止`,
		Args: cobra.RangeArgs(2, 3),
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

func (o *GetOptions) Complete(cmd *cobra.Command, args []string) {
	o.remotePath = args[1]
	if len(args) > 2 {
		o.localPath = args[2]
	} else {
		o.localPath = filepath.Base(args[1])
	}
	o.ConnectOptions.Complete(cmd, args[:1])
}

func (o *GetOptions) Run() error {
	ctx := context.Background()
	sess, err := o.Connect(ctx)
	if err != nil {
		return fmt.Errorf("连接失败: %v", err)
	}
	defer sess.Close()

	token := sftp.NewCancellationToken()
	stop := watchInterrupt()
	defer stop()

	outcome := sess.Download(o.remotePath, o.localPath, token, newBarCallback("下载 "+filepath.Base(o.remotePath)))
	fmt.Println()
	if !outcome.OK() {
		return fmt.Errorf("下载失败: %s", outcome.Describe())
	}
	fmt.Println("Download Finished.")
	return nil
}

// watchInterrupt 把 Ctrl+C 转换成协作式取消请求
// 返回的函数用于恢复默认的信号处理
func watchInterrupt() func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range ch {
			fmt.Fprintln(os.Stderr, "\n收到中断信号,正在取消传输...")
			sftp.Cancel()
		}
	}()
	return func() {
		signal.Stop(ch)
		close(ch)
	}
}
