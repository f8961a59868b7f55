// ABOUTME: CLI command to ingest files into the local knowledge base
// ABOUTME: Single file or the whole documents directory with --all
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestAll bool

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [archivo]",
		Short: "Add documents to the knowledge base",
		Long: `Add documents to the local knowledge base.

Files are extracted, chunked, embedded and stored in the persistent
vector index. Re-ingesting a file adds its chunks again; the index is
growth-only. One file failing never stops the rest.

Examples:
  nexo ingest informe.pdf
  nexo ingest --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().BoolVar(&ingestAll, "all", false, "Ingest every file in the documents directory")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	if !ingestAll && len(args) == 0 {
		return fmt.Errorf("specify a file or use --all")
	}

	c, err := setup()
	if err != nil {
		return err
	}
	defer c.close()

	out := cmd.OutOrStdout()

	if ingestAll {
		fmt.Fprintln(out, c.manager.IngestDir(cmd.Context()))
	} else {
		fmt.Fprintln(out, c.manager.IngestFile(cmd.Context(), args[0]))
	}

	if verbose {
		if n, err := c.index.Count(); err == nil {
			fmt.Fprintf(out, "Registros en el índice: %d\n", n)
		}
	}

	return nil
}
