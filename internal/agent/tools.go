// ABOUTME: Closed tool set exposed to the language model
// ABOUTME: Every tool takes string arguments and returns a single string
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/dvergara/nexo/internal/models"
	"github.com/dvergara/nexo/internal/rag"
	"github.com/dvergara/nexo/internal/workspace"
)

// Args holds the decoded arguments of one tool call
type Args map[string]any

// String returns the named argument as a string, empty when absent
func (a Args) String(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

// Tool is one callable operation: a name, a natural-language description, a
// JSON parameter schema and a handler. The router dispatches on Name over a
// fixed set; there is no dynamic lookup beyond it.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
	Run         func(ctx context.Context, args Args) string
}

// stringParams builds a JSON schema of string properties, with the named
// subset required.
func stringParams(props map[string]string, required ...string) map[string]any {
	properties := make(map[string]any, len(props))
	for name, desc := range props {
		properties[name] = map[string]any{
			"type":        "string",
			"description": desc,
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Toolset assembles the full tool set over the retrieval pipeline and the
// workspace client.
func Toolset(manager *rag.Manager, ws *workspace.Client, topK int) []Tool {
	tools := []Tool{
		{
			Name:        "buscar_rag",
			Description: "Busca información relevante en la base de conocimiento local (RAG) y devuelve el contexto encontrado.",
			Parameters: stringParams(map[string]string{
				"consulta": "Texto de búsqueda",
			}, "consulta"),
			Run: func(ctx context.Context, args Args) string {
				consulta := args.String("consulta")
				if consulta == "" {
					return "❌ El argumento 'consulta' es obligatorio"
				}
				return manager.Context(ctx, consulta, topK)
			},
		},
		{
			Name:        "agregar_archivo_rag",
			Description: "Agrega un archivo local a la base de conocimiento (RAG).",
			Parameters: stringParams(map[string]string{
				"ruta": "Ruta del archivo a agregar",
			}, "ruta"),
			Run: func(ctx context.Context, args Args) string {
				ruta := args.String("ruta")
				if ruta == "" {
					return "❌ El argumento 'ruta' es obligatorio"
				}
				return manager.IngestFile(ctx, ruta)
			},
		},
	}

	return append(tools, notionTools(ws)...)
}

// formatPageList renders search results the way the model expects them back
func formatPageList(header string, pages []models.Page) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\n")
	for _, p := range pages {
		sb.WriteString(fmt.Sprintf("• %s\n", p.Title))
		sb.WriteString(fmt.Sprintf("  ID: %s\n", p.ID))
		sb.WriteString(fmt.Sprintf("  URL: %s\n\n", p.URL))
	}
	return sb.String()
}
