package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewSubvetMCPServer creates a new MCP server with all subvet tools and
// resources registered. workDir is the directory configuration and
// submission paths resolve against.
func NewSubvetMCPServer(workDir string) *server.MCPServer {
	s := server.NewMCPServer(
		"subvet",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, workDir)
	registerResources(s, workDir)

	return s
}
