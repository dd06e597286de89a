package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/deal-aggregator/internal/aggregator"
	"github.com/donaldgifford/deal-aggregator/internal/config"
	"github.com/donaldgifford/deal-aggregator/pkg/logger"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

type fetchFlags struct {
	sources  []string
	category string
	city     string
	query    string
	limit    int
	hot      bool
	json     bool
}

func fetchCommand() *cobra.Command {
	var f fetchFlags

	c := &cobra.Command{
		Use:   "fetch",
		Short: "Run one aggregation and print the result",
		Long: "Fetch deals once without starting the server. With --query the sources are\n" +
			"searched; with --hot the curated hot-deal list is returned instead.",
		Example: `  deal-aggregator fetch --sources slickdeals,dealnews --category laptops
  deal-aggregator fetch --query "oled tv" --limit 10
  deal-aggregator fetch --hot --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, &f)
		},
	}

	c.Flags().StringSliceVar(&f.sources, "sources", nil, "sources to query (default from config)")
	c.Flags().StringVar(&f.category, "category", "", "category filter")
	c.Flags().StringVar(&f.city, "city", "", "classifieds city")
	c.Flags().StringVarP(&f.query, "query", "q", "", "search keywords")
	c.Flags().IntVar(&f.limit, "limit", 20, "maximum deals to return")
	c.Flags().BoolVar(&f.hot, "hot", false, "return the hot-deal list")
	c.Flags().BoolVar(&f.json, "json", false, "print JSON instead of a table")
	c.MarkFlagsMutuallyExclusive("query", "hot")

	return c
}

func init() {
	rootCmd.AddCommand(fetchCommand())
}

func runFetch(cmd *cobra.Command, f *fetchFlags) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	agg := buildAggregator(cfg, log)
	defer agg.Close()

	opts := aggregator.Options{
		Category: domain.Category(f.category),
		City:     f.city,
		Limit:    f.limit,
	}
	for _, s := range f.sources {
		opts.Sources = append(opts.Sources, domain.Source(strings.ToLower(strings.TrimSpace(s))))
	}

	var result *domain.AggregatorResult
	switch {
	case f.hot:
		result, err = agg.GetHotDeals(cmd.Context(), f.limit)
	case f.query != "":
		result, err = agg.Search(cmd.Context(), f.query, opts)
	default:
		result, err = agg.FetchDeals(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.json {
		return writeJSON(out, result)
	}
	return writeResult(out, result)
}
