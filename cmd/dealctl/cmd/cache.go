package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func cacheCmd() *cobra.Command {
	cacheRoot := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the server's result cache",
	}

	cacheRoot.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show cache counters",
			RunE: func(cmd *cobra.Command, _ []string) error {
				stats, err := newClient().CacheStats(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(os.Stdout, stats)
				}
				return printCacheStats(os.Stdout, stats)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Drop every cached result",
			Long:  "Drop every cached result. The counters printed are the ones from before the clear.",
			RunE: func(cmd *cobra.Command, _ []string) error {
				stats, err := newClient().ClearCache(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(os.Stdout, stats)
				}
				return printCacheStats(os.Stdout, stats)
			},
		},
	)

	return cacheRoot
}
