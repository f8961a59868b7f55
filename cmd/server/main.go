// ABOUTME: Main entry point for the Nexo MCP server with stdio transport
// ABOUTME: Wires config, LLM client, vector index, RAG manager and Notion client
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dvergara/nexo/internal/config"
	"github.com/dvergara/nexo/internal/llm"
	"github.com/dvergara/nexo/internal/mcp"
	"github.com/dvergara/nexo/internal/rag"
	"github.com/dvergara/nexo/internal/storage"
	"github.com/dvergara/nexo/internal/workspace"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("NOTION_TOKEN") == "" {
		log.Println("Warning: NOTION_TOKEN not set - Notion tools will report as unconfigured")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize embedding client: %v", err)
	}

	index, err := storage.Open(cfg.DataDir, cfg.VectorDimension)
	if err != nil {
		log.Fatalf("Failed to open vector index: %v", err)
	}
	defer index.Close()

	manager, err := rag.NewManager(client, index, cfg.DocsDir)
	if err != nil {
		log.Fatalf("Failed to initialize RAG manager: %v", err)
	}

	ws := workspace.New(cfg.NotionToken)

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Nexo Assistant",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, manager, ws)

	// Start server with stdio transport
	log.Println("Nexo MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
