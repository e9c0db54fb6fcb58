package cmd

import (
	"fmt"
	"time"

	"example.com/MikuTransfer/pkg/netcheck"
	"example.com/MikuTransfer/pkg/sftp"
	"github.com/spf13/cobra"
)

func NewCmdNetcheck() *cobra.Command {
	var (
		timeout time.Duration
		count   int
	)
	cmd := &cobra.Command{
		Use:   "netcheck [host]",
		Short: "检查公网连通性或Ping指定主机",
		Long: `该命令有两种工作模式:
1. 公网连通性检查 (无参数):
   依次对常用公共端点发起TCP探测,任意一个可达即认为有公网连接。
   示例: mxfer netcheck

2. ICMP Ping (1个参数):
   对指定主机发送ICMP请求并输出统计信息。
   注意: 在 Linux/macOS 上执行ICMP raw socket需要root权限。
   示例: mxfer netcheck 8.8.8.8`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if sftp.HasInternetConnection(timeout) {
					fmt.Println("公网连接正常")
				} else {
					fmt.Println("无可用的公网连接")
				}
				return nil
			}

			stats, err := netcheck.Ping(args[0], count, timeout)
			if err != nil {
				return fmt.Errorf("ping失败: %w", err)
			}
			fmt.Printf("--- %s ping statistics ---\n", stats.Addr)
			fmt.Printf("%d packets transmitted, %d packets received, %v%% packet loss\n",
				stats.PacketsSent, stats.PacketsRecv, stats.PacketLoss)
			fmt.Printf("round-trip min/avg/max = %v/%v/%v\n",
				stats.MinRtt, stats.AvgRtt, stats.MaxRtt)
			return nil
		},
	}
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "探测超时时间(默认1.5s)")
	cmd.Flags().IntVarP(&count, "count", "c", 4, "ICMP请求次数")
	return cmd
}

func init() {
	rootCmd.AddCommand(NewCmdNetcheck())
}
