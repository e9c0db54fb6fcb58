package cmd

import (
	"context"
	"fmt"

	"example.com/MikuTransfer/pkg/sftp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// MCP服务把传输操作暴露给AI Agent调用
// 所有工具都是无状态的,每次调用独立建连

type mcpConnArgs struct {
	Host     string `json:"host" jsonschema:"目标主机地址,支持sftp://前缀"`
	Port     uint16 `json:"port,omitempty" jsonschema:"SFTP端口,默认22"`
	User     string `json:"user" jsonschema:"用户名"`
	Password string `json:"password" jsonschema:"密码"`
}

type mcpListArgs struct {
	mcpConnArgs
	RemotePath string `json:"remote_path" jsonschema:"要列出的远程目录"`
}

type mcpUploadArgs struct {
	mcpConnArgs
	LocalPath  string `json:"local_path" jsonschema:"本地文件路径"`
	RemotePath string `json:"remote_path" jsonschema:"远程目标路径"`
}

type mcpDownloadArgs struct {
	mcpConnArgs
	RemotePath string `json:"remote_path" jsonschema:"远程文件路径"`
	LocalPath  string `json:"local_path" jsonschema:"本地保存路径"`
}

func NewCmdMcp() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "以MCP服务方式暴露SFTP传输能力",
		Long: `启动一个基于stdio的MCP(Model Context Protocol)服务,
将连接测试、目录浏览、文件上传下载能力暴露给AI Agent使用。
示例 (claude mcp add):
claude mcp add mxfer -- mxfer mcp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMcpServer(cmd.Context())
		},
	}
}

func runMcpServer(ctx context.Context) error {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mxfer",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sftp_test_connection",
		Description: "测试能否连接到SFTP主机并完成认证",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args mcpConnArgs) (*mcp.CallToolResult, any, error) {
		return textResult(sftp.TestConnection(args.Host, args.User, args.Password, portOrDefault(args.Port))), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sftp_list_files",
		Description: "列出SFTP主机上指定目录的文件和子目录",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args mcpListArgs) (*mcp.CallToolResult, any, error) {
		entries := sftp.ListFiles(args.Host, args.User, args.Password, portOrDefault(args.Port), args.RemotePath)
		out := ""
		for _, e := range entries {
			out += fmt.Sprintf("%s\t%d KiB\t%s\t%s\n",
				e.Kind, e.SizeKiB, e.ModifiedAt.Format("2006-01-02 15:04:05"), e.Name)
		}
		if out == "" {
			out = "(目录为空或无法访问)"
		}
		return textResult(out), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sftp_upload_file",
		Description: "上传本地文件到SFTP主机",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args mcpUploadArgs) (*mcp.CallToolResult, any, error) {
		ok := sftp.UploadFile(args.Host, args.User, args.Password, portOrDefault(args.Port),
			args.LocalPath, args.RemotePath, nil, nil, nil)
		if !ok {
			return textResult("上传失败,请检查连接信息和文件路径"), nil, nil
		}
		return textResult("上传成功"), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sftp_download_file",
		Description: "从SFTP主机下载文件到本地",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args mcpDownloadArgs) (*mcp.CallToolResult, any, error) {
		msg := sftp.DownloadFile(args.Host, args.User, args.Password, portOrDefault(args.Port),
			args.RemotePath, args.LocalPath, nil, nil, nil)
		return textResult(msg), nil, nil
	})

	return server.Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func portOrDefault(port uint16) uint16 {
	if port == 0 {
		return 22
	}
	return port
}

func init() {
	rootCmd.AddCommand(NewCmdMcp())
}
