package cmd

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"example.com/MikuTransfer/pkg/sftp"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type PutOptions struct {
	ConnectOptions
	localPath  string
	remotePath string
}

func NewCmdPut() *cobra.Command {
	o := &PutOptions{}
	cmd := &cobra.Command{
		Use:   "put [user@]host[:port] local_file [remote_path]",
		Short: "上传文件到远程主机",
		Long: `上传单个本地文件到远程主机并显示传输进度。
用法示例:
mxfer put user@host[:port] ./app.tar.gz /data/app.tar.gz
未指定远程路径时上传到登录目录,文件名与本地一致
传输过程中按 Ctrl+C 可以取消`,
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

func (o *PutOptions) Complete(cmd *cobra.Command, args []string) {
	o.localPath = args[1]
	if len(args) > 2 {
		o.remotePath = args[2]
	} else {
		o.remotePath = path.Base(filepath.ToSlash(args[1]))
	}
	o.ConnectOptions.Complete(cmd, args[:1])
}

func (o *PutOptions) Run() error {
	ctx := context.Background()
	sess, err := o.Connect(ctx)
	if err != nil {
		return fmt.Errorf("连接失败: %v", err)
	}
	defer sess.Close()

	token := sftp.NewCancellationToken()
	stop := watchInterrupt()
	defer stop()

	outcome := sess.Upload(o.localPath, o.remotePath, token, newBarCallback("上传 "+filepath.Base(o.localPath)))
	fmt.Println()
	if !outcome.OK() {
		return fmt.Errorf("上传失败: %s", outcome.Describe())
	}
	fmt.Println("上传完成")
	return nil
}

// newBarCallback 把进度样本换算成进度条的增量更新
func newBarCallback(label string) sftp.ProgressCallback {
	var bar *progressbar.ProgressBar
	return func(p sftp.ProgressSample) {
		if bar == nil {
			bar = progressbar.DefaultBytes(p.TotalBytes, label)
		}
		bar.Set64(p.BytesTransferred)
	}
}
