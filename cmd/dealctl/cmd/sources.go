package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func sourcesCmd() *cobra.Command {
	sourcesRoot := &cobra.Command{
		Use:   "sources",
		Short: "Inspect deal sources",
		RunE:  runSourcesList,
	}

	sourcesRoot.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show quota usage per source",
			Example: `  dealctl sources list
  dealctl sources --output json`,
			RunE: runSourcesList,
		},
		&cobra.Command{
			Use:     "configured <name>",
			Short:   "Check whether a source has credentials",
			Args:    cobra.ExactArgs(1),
			Example: `  dealctl sources configured ebay`,
			RunE: func(cmd *cobra.Command, args []string) error {
				ok, err := newClient().SourceConfigured(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(os.Stdout, map[string]any{"source": args[0], "configured": ok})
				}
				if ok {
					fmt.Printf("%s is configured.\n", args[0])
				} else {
					fmt.Printf("%s is not configured.\n", args[0])
				}
				return nil
			},
		},
	)

	return sourcesRoot
}

func runSourcesList(cmd *cobra.Command, _ []string) error {
	sources, err := newClient().ListSources(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput() {
		return outputJSON(os.Stdout, sources)
	}
	return printSourcesTable(os.Stdout, sources)
}
