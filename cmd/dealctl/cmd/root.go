// Package cmd implements the dealctl CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/deal-aggregator/internal/api/client"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dealctl",
	Short: "Query a running deal-aggregator server",
	Long: `dealctl talks to the deal-aggregator HTTP API. Browse and search live
deals, review stored hot deals, and check source quotas and the result cache.

Flags can also be set in $HOME/.dealctl.yaml or as DEALCTL_<FLAG>
environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return checkOutput(viper.GetString("output"))
	},
}

// Root returns the root command, for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $HOME/.dealctl.yaml)")
	pf.String("server", "http://localhost:8080", "deal-aggregator base URL")
	pf.StringP("output", "o", formatTable, "output format: table or json")
	pf.Duration("timeout", time.Minute, "per-request timeout")
	for _, name := range []string{"server", "output", "timeout"} {
		cobra.CheckErr(viper.BindPFlag(name, pf.Lookup(name)))
	}

	rootCmd.AddCommand(
		dealsCmd(),
		searchCmd(),
		hotCmd(),
		featuredCmd(),
		sourcesCmd(),
		cacheCmd(),
	)
}

// initConfig reads the config file. Only the default file may be absent.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".dealctl")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("DEALCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			cobra.CheckErr(fmt.Errorf("reading config: %w", err))
		}
	}
}

func checkOutput(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q, want %s or %s", format, formatTable, formatJSON)
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(
		viper.GetString("server"),
		apiclient.WithTimeout(viper.GetDuration("timeout")),
	)
}

func jsonOutput() bool {
	return viper.GetString("output") == formatJSON
}
