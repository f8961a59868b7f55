// ABOUTME: Workspace tools: search, read, create and update Notion pages
// ABOUTME: Results and failures are rendered as text for the model, never raised
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/dvergara/nexo/internal/workspace"
)

const notConfigured = "❌ Notion no está configurado"

// notionTools builds the workspace-facing tool set
func notionTools(ws *workspace.Client) []Tool {
	return []Tool{
		{
			Name:        "search_notion",
			Description: "Busca páginas en Notion por palabra clave.",
			Parameters: stringParams(map[string]string{
				"query": "Término de búsqueda",
			}, "query"),
			Run: func(ctx context.Context, args Args) string {
				return runSearchNotion(ctx, ws, args.String("query"))
			},
		},
		{
			Name:        "get_page_notion",
			Description: "Obtiene el contenido de una página de Notion por su ID.",
			Parameters: stringParams(map[string]string{
				"page_id": "ID de la página",
			}, "page_id"),
			Run: func(ctx context.Context, args Args) string {
				return runGetPage(ctx, ws, args.String("page_id"))
			},
		},
		{
			Name:        "create_page_notion",
			Description: "Crea una página nueva en Notion. Solo el título es obligatorio; el resto decide dónde se crea.",
			Parameters: stringParams(map[string]string{
				"title":             "Título de la página (REQUERIDO)",
				"content":           "Contenido de texto (opcional)",
				"parent_id":         "ID de página padre o base de datos (opcional)",
				"database_name":     "Nombre de la base de datos donde crear (opcional)",
				"parent_page_title": "Título de la página padre para crear una subpágina (opcional)",
			}, "title"),
			Run: func(ctx context.Context, args Args) string {
				return runCreatePage(ctx, ws, args)
			},
		},
		{
			Name:        "update_page_notion",
			Description: "Actualiza el título y/o agrega contenido al final de una página de Notion.",
			Parameters: stringParams(map[string]string{
				"page_id": "ID de la página",
				"title":   "Nuevo título (opcional)",
				"content": "Contenido a agregar al final de la página (opcional)",
			}, "page_id"),
			Run: func(ctx context.Context, args Args) string {
				return runUpdatePage(ctx, ws, args)
			},
		},
		{
			Name:        "list_databases_notion",
			Description: "Lista todas las bases de datos compartidas con la integración.",
			Parameters:  stringParams(map[string]string{}),
			Run: func(ctx context.Context, args Args) string {
				return runListDatabases(ctx, ws)
			},
		},
		{
			Name:        "get_subpages_notion",
			Description: "Obtiene información sobre las subpáginas de una página existente.",
			Parameters: stringParams(map[string]string{
				"page_title": "Título de la página padre",
			}, "page_title"),
			Run: func(ctx context.Context, args Args) string {
				return runGetSubpages(ctx, ws, args.String("page_title"))
			},
		},
	}
}

func runSearchNotion(ctx context.Context, ws *workspace.Client, query string) string {
	if !ws.Configured() {
		return notConfigured
	}
	pages, err := ws.SearchPages(ctx, query)
	if err != nil {
		return fmt.Sprintf("❌ Error: %v", err)
	}
	if len(pages) == 0 {
		return fmt.Sprintf("❌ No se encontraron páginas para: '%s'", query)
	}
	return formatPageList(fmt.Sprintf("📋 Resultados de búsqueda para '%s':", query), pages)
}

func runGetPage(ctx context.Context, ws *workspace.Client, pageID string) string {
	if !ws.Configured() {
		return notConfigured
	}
	page, blockCount, err := ws.GetPage(ctx, pageID)
	if err != nil {
		return fmt.Sprintf("❌ Error: %v", err)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📄 %s\n", page.Title))
	sb.WriteString(fmt.Sprintf("ID: %s\n", page.ID))
	sb.WriteString(fmt.Sprintf("URL: %s\n", page.URL))
	sb.WriteString(fmt.Sprintf("Bloques: %d\n", blockCount))
	return sb.String()
}

func runCreatePage(ctx context.Context, ws *workspace.Client, args Args) string {
	if !ws.Configured() {
		return notConfigured
	}

	title := args.String("title")
	if title == "" {
		return "❌ El argumento 'title' es obligatorio"
	}

	parentID := args.String("parent_id")
	if parentID == "" {
		switch {
		case args.String("parent_page_title") != "":
			parentTitle := args.String("parent_page_title")
			page, err := ws.FindPageByTitle(ctx, parentTitle)
			if err != nil {
				return fmt.Sprintf("❌ Página padre '%s' no encontrada", parentTitle)
			}
			parentID = page.ID
		case args.String("database_name") != "":
			dbName := args.String("database_name")
			db, err := ws.FindDatabaseByName(ctx, dbName)
			if err != nil {
				return fmt.Sprintf("❌ Base de datos '%s' no encontrada", dbName)
			}
			parentID = db.ID
		default:
			parentID = ws.DefaultParentID(ctx)
			if parentID == "" {
				return "❌ No hay bases de datos ni páginas disponibles"
			}
		}
	}

	page, err := ws.CreatePage(ctx, parentID, title, args.String("content"))
	if err != nil {
		return fmt.Sprintf("❌ Error: %v", err)
	}

	var sb strings.Builder
	sb.WriteString("✅ Página creada\n")
	sb.WriteString(fmt.Sprintf("Título: %s\n", page.Title))
	sb.WriteString(fmt.Sprintf("URL: %s\n", page.URL))
	return sb.String()
}

func runUpdatePage(ctx context.Context, ws *workspace.Client, args Args) string {
	if !ws.Configured() {
		return notConfigured
	}

	pageID := args.String("page_id")
	if pageID == "" {
		return "❌ El argumento 'page_id' es obligatorio"
	}
	title := args.String("title")
	content := args.String("content")
	if title == "" && content == "" {
		return "❌ Debes proporcionar al menos un título o contenido"
	}

	var resultado []string
	if title != "" {
		if err := ws.UpdateTitle(ctx, pageID, title); err != nil {
			return fmt.Sprintf("❌ Error: %v", err)
		}
		resultado = append(resultado, fmt.Sprintf("✅ Título actualizado: %s", title))
	}
	if content != "" {
		if err := ws.AppendParagraph(ctx, pageID, content); err != nil {
			return fmt.Sprintf("❌ Error: %v", err)
		}
		resultado = append(resultado, "✅ Contenido agregado exitosamente")
	}
	return strings.Join(resultado, "\n")
}

func runListDatabases(ctx context.Context, ws *workspace.Client) string {
	if !ws.Configured() {
		return notConfigured
	}
	databases := ws.ListDatabases(ctx)
	if len(databases) == 0 {
		return "❌ No hay bases de datos compartidas"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📚 Bases de datos (%d):\n\n", len(databases)))
	for _, db := range databases {
		sb.WriteString(fmt.Sprintf("• %s\n", db.Title))
		sb.WriteString(fmt.Sprintf("  ID: %s\n", db.ID))
		sb.WriteString(fmt.Sprintf("  URL: %s\n\n", db.URL))
	}
	return sb.String()
}

func runGetSubpages(ctx context.Context, ws *workspace.Client, pageTitle string) string {
	if !ws.Configured() {
		return notConfigured
	}
	page, err := ws.FindPageByTitle(ctx, pageTitle)
	if err != nil {
		return fmt.Sprintf("❌ Página '%s' no encontrada", pageTitle)
	}
	blockCount, err := ws.BlockCount(ctx, page.ID)
	if err != nil {
		return fmt.Sprintf("❌ Error: %v", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📄 Página: %s\n", pageTitle))
	sb.WriteString(fmt.Sprintf("Bloques encontrados: %d\n\n", blockCount))
	return sb.String()
}
