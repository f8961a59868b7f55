// ABOUTME: CLI command to preview retrieval context for a query
// ABOUTME: Prints the formatted context string the agent would receive
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var queryK int

// NewQueryCmd creates the query command
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <texto>",
		Short: "Query the knowledge base",
		Long: `Query the local knowledge base and print the formatted context.

This is the same context string injected into the model's prompt,
numbered and tagged with each chunk's source filename.

Examples:
  nexo query "política de vacaciones"
  nexo query --k 3 "presupuesto 2026"`,
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().IntVar(&queryK, "k", 5, "Number of results to retrieve")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(queryK, "k"); err != nil {
		return err
	}

	c, err := setup()
	if err != nil {
		return err
	}
	defer c.close()

	fmt.Fprintln(cmd.OutOrStdout(), c.manager.Context(cmd.Context(), args[0], queryK))
	return nil
}
