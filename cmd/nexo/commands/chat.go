// ABOUTME: Interactive chat command running the agent loop over stdin
// ABOUTME: Conversation history is append-only for the session lifetime
package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dvergara/nexo/internal/agent"
	"github.com/dvergara/nexo/internal/models"
)

var chatIngestAll bool

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive assistant session",
		Long: `Start an interactive assistant session.

The model can call tools: query the local knowledge base, ingest files
into it, and search/create/update Notion pages. Type "salir" or press
Ctrl-D to quit.

Examples:
  nexo chat
  nexo chat --ingest-all`,
		RunE: runChat,
	}

	cmd.Flags().BoolVar(&chatIngestAll, "ingest-all", false, "Ingest the documents directory before starting")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	c, err := setup()
	if err != nil {
		return err
	}
	defer c.close()

	out := cmd.OutOrStdout()

	if chatIngestAll {
		fmt.Fprintln(out, c.manager.IngestDir(cmd.Context()))
	}

	tools := agent.Toolset(c.manager, c.workspace, c.cfg.TopK)
	router := agent.NewRouter(c.client, tools, c.cfg.MaxToolRounds)

	var history []models.Message

	if !quiet {
		fmt.Fprintln(out, "nexo listo. Escribe tu pregunta (\"salir\" para terminar).")
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, "tú> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "salir" || line == "exit" {
			break
		}

		answer, updated, err := router.Answer(cmd.Context(), history, line)
		if err != nil {
			fmt.Fprintf(out, "❌ Error: %v\n", err)
			continue
		}
		history = updated
		fmt.Fprintf(out, "nexo> %s\n", answer)
	}

	return scanner.Err()
}
