package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/vieraprotocol/subvet/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the subvet MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start subvet MCP server (stdio)",
		Long:  "Start the subvet MCP server using stdio transport. This allows AI assistants to validate submissions and code snippets directly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workDir == "" {
				workDir = "."
			}
			s := mcpadapter.NewSubvetMCPServer(workDir)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&workDir, "dir", ".", "Directory to resolve configuration and submissions from")
	return cmd
}
