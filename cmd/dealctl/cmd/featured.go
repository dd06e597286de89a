package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/deal-aggregator/internal/api/client"
)

func featuredCmd() *cobra.Command {
	featuredRoot := &cobra.Command{
		Use:   "featured",
		Short: "Browse persisted hot deals",
		Long: "Featured deals are hot deals the server's scheduled refresh has stored.\n" +
			"They stay available after the live feeds move on.",
	}

	featuredRoot.AddCommand(
		featuredListCmd(),
		featuredGetCmd(),
	)

	return featuredRoot
}

func featuredListCmd() *cobra.Command {
	var (
		p     apiclient.FeaturedParams
		since time.Duration
	)

	c := &cobra.Command{
		Use:   "list",
		Short: "List featured deals",
		Example: `  dealctl featured list
  dealctl featured list --source ebay --min-score 85
  dealctl featured list --since 24h --order-by discount --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if since > 0 {
				p.Since = time.Now().Add(-since)
			}
			resp, err := newClient().ListFeatured(cmd.Context(), &p)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(os.Stdout, resp)
			}
			if len(resp.Deals) == 0 {
				fmt.Println("No featured deals found.")
				return nil
			}
			if err := printFeaturedTable(os.Stdout, resp.Deals); err != nil {
				return err
			}
			fmt.Printf("\nShowing %d of %d\n", len(resp.Deals), resp.Total)
			return nil
		},
	}

	c.Flags().StringVar(&p.Source, "source", "", "source filter")
	c.Flags().StringVar(&p.Category, "category", "", "category filter")
	c.Flags().IntVar(&p.MinScore, "min-score", 0, "minimum score")
	c.Flags().DurationVar(&since, "since", 0, "only deals first seen within this window")
	c.Flags().IntVar(&p.Limit, "limit", 0, "number of results")
	c.Flags().IntVar(&p.Offset, "offset", 0, "pagination offset")
	c.Flags().StringVar(&p.OrderBy, "order-by", "", "sort field (score, discount, first_seen_at)")

	return c
}

func featuredGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show one featured deal",
		Args:    cobra.ExactArgs(1),
		Example: `  dealctl featured get 6f1c2b8e-0d7a-4c55-9a57-1f0f3f0b2c11`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deal, err := newClient().GetFeatured(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(os.Stdout, deal)
			}
			return printFeaturedDetail(os.Stdout, deal)
		},
	}
}
