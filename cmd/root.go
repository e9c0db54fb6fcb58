/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"example.com/MikuTransfer/cmd/version"
	"example.com/MikuTransfer/pkg/logger"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mxfer [command] [flags]",
	Short: "mxfer(Miku Transfer)是一个SFTP文件传输命令行工具",
	Long: `mxfer(Miku Transfer)是一个SFTP文件传输命令行工具,
提供连接测试、远程目录浏览、文件上传下载和交互式会话等功能。
传输过程支持进度显示、取消和超时控制。
成功连接过的主机信息会加密保存,下次连接时自动复用。`,
	Run: func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			version.PrintFullVersion()
			os.Exit(0)
		}
		cmd.Help() // 显示帮助信息
		os.Exit(0)
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debugFlag, _ := cmd.Flags().GetBool("debug")
		if debugFlag {
			// 开启调试模式,输出连接和传输的详细日志
			logger.SetLogLevel("debug")
			println("调试模式已开启")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "显示版本信息")
	rootCmd.PersistentFlags().Bool("debug", false, "开启调试模式")
}
