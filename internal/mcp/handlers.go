// ABOUTME: MCP tool handler implementations for the nexo server
// ABOUTME: Handlers render outcomes as text results, errors as tool errors
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dvergara/nexo/internal/rag"
	"github.com/dvergara/nexo/internal/workspace"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	manager   *rag.Manager
	workspace *workspace.Client
}

// SearchPages handles the search tool
func (h *Handlers) SearchPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	pages, err := h.workspace.SearchPages(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(pages) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No se encontraron páginas para: '%s'", query)), nil
	}

	var sb strings.Builder
	for _, p := range pages {
		sb.WriteString(fmt.Sprintf("• %s\n  ID: %s\n  URL: %s\n", p.Title, p.ID, p.URL))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// GetPage handles the get_page tool
func (h *Handlers) GetPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := request.RequireString("page_id")
	if err != nil {
		return mcp.NewToolResultError("page_id argument is required and must be a string"), nil
	}

	page, blockCount, err := h.workspace.GetPage(ctx, pageID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get_page failed: %v", err)), nil
	}

	text := fmt.Sprintf("📄 %s\nID: %s\nURL: %s\nBloques: %d\n", page.Title, page.ID, page.URL, blockCount)
	return mcp.NewToolResultText(text), nil
}

// CreatePage handles the create_page tool
func (h *Handlers) CreatePage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	parentID, err := request.RequireString("parent_id")
	if err != nil {
		return mcp.NewToolResultError("parent_id argument is required and must be a string"), nil
	}
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title argument is required and must be a string"), nil
	}
	content := request.GetString("content", "")

	page, err := h.workspace.CreatePage(ctx, parentID, title, content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("create_page failed: %v", err)), nil
	}

	text := fmt.Sprintf("✅ Página creada\nTítulo: %s\nURL: %s\n", page.Title, page.URL)
	return mcp.NewToolResultText(text), nil
}

// UpdatePage handles the update_page tool
func (h *Handlers) UpdatePage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := request.RequireString("page_id")
	if err != nil {
		return mcp.NewToolResultError("page_id argument is required and must be a string"), nil
	}
	title := request.GetString("title", "")
	content := request.GetString("content", "")
	if title == "" && content == "" {
		return mcp.NewToolResultError("at least one of title or content is required"), nil
	}

	var resultado []string
	if title != "" {
		if err := h.workspace.UpdateTitle(ctx, pageID, title); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("update_page failed: %v", err)), nil
		}
		resultado = append(resultado, fmt.Sprintf("✅ Título actualizado: %s", title))
	}
	if content != "" {
		if err := h.workspace.AppendParagraph(ctx, pageID, content); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("update_page failed: %v", err)), nil
		}
		resultado = append(resultado, "✅ Contenido agregado exitosamente")
	}
	return mcp.NewToolResultText(strings.Join(resultado, "\n")), nil
}

// ListDatabases handles the list_databases tool
func (h *Handlers) ListDatabases(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	databases := h.workspace.ListDatabases(ctx)
	if len(databases) == 0 {
		return mcp.NewToolResultText("No hay bases de datos compartidas"), nil
	}

	var sb strings.Builder
	for _, db := range databases {
		sb.WriteString(fmt.Sprintf("• %s\n  ID: %s\n  URL: %s\n", db.Title, db.ID, db.URL))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// QueryRAG handles the query_rag tool
func (h *Handlers) QueryRAG(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	consulta, err := request.RequireString("consulta")
	if err != nil {
		return mcp.NewToolResultError("consulta argument is required and must be a string"), nil
	}
	k := request.GetInt("k", 5)
	if k <= 0 {
		k = 5
	}

	return mcp.NewToolResultText(h.manager.Context(ctx, consulta, k)), nil
}

// IngestFile handles the ingest_file tool
func (h *Handlers) IngestFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ruta, err := request.RequireString("ruta")
	if err != nil {
		return mcp.NewToolResultError("ruta argument is required and must be a string"), nil
	}

	return mcp.NewToolResultText(h.manager.IngestFile(ctx, ruta)), nil
}
