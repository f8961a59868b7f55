// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for chat, ingest, query, mcp and version
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nexo",
		Short: "Asistente conversacional con RAG local y herramientas de Notion",
		Long: `nexo: asistente conversacional corporativo

Combina una base de conocimiento local (RAG sobre documentos propios)
con herramientas de Notion que el modelo puede invocar: buscar, crear
y actualizar páginas sin conocer sus identificadores.

Configuración por variables de entorno (o .env):
  OPENAI_API_KEY    clave de OpenAI (requerida)
  NOTION_TOKEN      token de integración de Notion (opcional)
  NEXO_DOCS_DIR     carpeta de documentos fuente (./documentos_rag)
  NEXO_DATA_DIR     carpeta del índice vectorial persistente`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewQueryCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
