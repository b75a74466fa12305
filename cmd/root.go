package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

func SetVersion(v string) {
	appVersion = v
}

var rootCmd = &cobra.Command{
	Use:   "loki-mcp",
	Short: "MCP tool server for Grafana Loki, generated from an endpoint inventory",
	Long: `loki-mcp exposes the Grafana Loki HTTP API as MCP tools.

The tool surface is generated from a declarative endpoint inventory
(loki-mcp generate), served to MCP clients over stdio or streamable HTTP
(loki-mcp serve), and checked against the inventory (loki-mcp verify).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd, serveCmd, verifyCmd)
}

func Execute() error {
	rootCmd.Version = appVersion
	rootCmd.SetVersionTemplate(fmt.Sprintf("loki-mcp v%s\n", appVersion))
	return rootCmd.Execute()
}
