// ABOUTME: MCP tool definitions and registration for the nexo server
// ABOUTME: Exposes workspace and RAG operations with JSON schemas over stdio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dvergara/nexo/internal/rag"
	"github.com/dvergara/nexo/internal/workspace"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, manager *rag.Manager, ws *workspace.Client) *Handlers {
	handlers := &Handlers{
		manager:   manager,
		workspace: ws,
	}

	server.AddTool(mcp.Tool{
		Name:        "search",
		Description: "Busca páginas en Notion por palabra clave.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Término de búsqueda",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchPages)

	server.AddTool(mcp.Tool{
		Name:        "get_page",
		Description: "Obtiene el contenido de una página de Notion por su ID.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"page_id": map[string]interface{}{
					"type":        "string",
					"description": "ID de la página (con o sin guiones)",
				},
			},
			Required: []string{"page_id"},
		},
	}, handlers.GetPage)

	server.AddTool(mcp.Tool{
		Name:        "create_page",
		Description: "Crea una página nueva en Notion bajo un padre dado.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"parent_id": map[string]interface{}{
					"type":        "string",
					"description": "ID de la página o base de datos padre",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Título de la página",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Contenido de texto opcional",
				},
			},
			Required: []string{"parent_id", "title"},
		},
	}, handlers.CreatePage)

	server.AddTool(mcp.Tool{
		Name:        "update_page",
		Description: "Actualiza el título y/o agrega contenido a una página de Notion.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"page_id": map[string]interface{}{
					"type":        "string",
					"description": "ID de la página",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Nuevo título (opcional)",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Contenido a agregar al final (opcional)",
				},
			},
			Required: []string{"page_id"},
		},
	}, handlers.UpdatePage)

	server.AddTool(mcp.Tool{
		Name:        "list_databases",
		Description: "Lista las bases de datos compartidas con la integración.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListDatabases)

	server.AddTool(mcp.Tool{
		Name:        "query_rag",
		Description: "Busca en la base de conocimiento local y devuelve contexto formateado.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"consulta": map[string]interface{}{
					"type":        "string",
					"description": "Texto de búsqueda",
				},
				"k": map[string]interface{}{
					"type":        "number",
					"description": "Número de resultados (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"consulta"},
		},
	}, handlers.QueryRAG)

	server.AddTool(mcp.Tool{
		Name:        "ingest_file",
		Description: "Agrega un archivo local a la base de conocimiento.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ruta": map[string]interface{}{
					"type":        "string",
					"description": "Ruta del archivo",
				},
			},
			Required: []string{"ruta"},
		},
	}, handlers.IngestFile)

	return handlers
}
