// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes workspace and RAG tools to LLM agents via stdio
package commands

import (
	"log"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	nexomcp "github.com/dvergara/nexo/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents.

Runs nexo as an MCP (Model Context Protocol) server over stdio,
exposing the Notion workspace tools and the local knowledge base.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  nexo mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "nexo": {
  #       "command": "nexo",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	c, err := setup()
	if err != nil {
		return err
	}
	defer c.close()

	server := mcpserver.NewMCPServer(
		"Nexo Assistant",
		"0.1.0",
	)
	nexomcp.RegisterTools(server, c.manager, c.workspace)

	if !quiet {
		log.Println("nexo MCP server starting on stdio...")
	}
	return mcpserver.ServeStdio(server)
}
