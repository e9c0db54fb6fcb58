package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"example.com/MikuTransfer/cmd/utils"
	"example.com/MikuTransfer/pkg/config"
	"github.com/spf13/cobra"
)

func NewCmdProfile() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"pf"},
		Short:   "管理已保存的连接信息",
		Long:    `管理已保存的连接信息。成功连接过的主机会自动保存,通过别名可以快速重连。`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(NewCmdProfileList())
	cmd.AddCommand(NewCmdProfileDelete())

	return cmd
}

func NewCmdProfileList() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "列出已保存的连接信息",
		RunE: func(cmd *cobra.Command, args []string) error {
			configStore := config.NewDefaultStore(utils.GetConfigFilePath())
			cfg, err := configStore.Load()
			if err != nil {
				return err
			}
			provider := config.NewProvider(cfg)

			nodes := provider.ListNodes()
			ids := make([]string, 0, len(nodes))
			for id := range nodes {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "NODE\tALIAS\tAUTH\tJUMP")
			for _, id := range ids {
				node := nodes[id]
				authType := "-"
				if identity, ok := provider.GetIdentity(id); ok && identity.AuthType != "" {
					authType = identity.AuthType
				}
				jump := node.ProxyJump
				if jump == "" {
					jump = "-"
				}
				alias := strings.Join(node.Alias, ",")
				if alias == "" {
					alias = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, alias, authType, jump)
			}
			return w.Flush()
		},
	}
}

func NewCmdProfileDelete() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [name]",
		Aliases: []string{"del", "rm"},
		Short:   "删除已保存的连接信息",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configStore := config.NewDefaultStore(utils.GetConfigFilePath())
			cfg, err := configStore.Load()
			if err != nil {
				return err
			}
			provider := config.NewProvider(cfg)

			nodeId := provider.Find(args[0])
			if nodeId == "" {
				return fmt.Errorf("连接信息 %s 不存在", args[0])
			}
			provider.DeleteNode(nodeId)

			if err := configStore.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("已删除连接信息: %s\n", nodeId)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(NewCmdProfile())
}
