// Package cmd implements the CLI commands for deal-aggregator.
package cmd

import (
	"cmp"
	"os"

	"github.com/spf13/cobra"
)

// configEnv names the config file when --config is not given.
const configEnv = "DEAL_AGGREGATOR_CONFIG"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "deal-aggregator",
	Short: "Aggregate, score, and serve deals from multiple sources",
	Long: `deal-aggregator pulls deals from eBay, curated deal feeds and local
classifieds, deduplicates and scores them, and serves the results over an
HTTP API. A background engine keeps hot deals and sends alerts.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config",
		cmp.Or(os.Getenv(configEnv), "config.yaml"),
		"config file path (env "+configEnv+")")
	rootCmd.AddCommand(versionCommand())
}

// Root returns the root command, for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
