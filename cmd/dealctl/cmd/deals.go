package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/deal-aggregator/internal/api/client"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// addDealFlags binds the filters shared by deals and search.
func addDealFlags(c *cobra.Command, p *apiclient.DealParams) {
	c.Flags().StringSliceVar(&p.Sources, "sources", nil, "sources to query (ebay, slickdeals, dealnews, craigslist)")
	c.Flags().StringVar(&p.Category, "category", "", "category filter")
	c.Flags().StringVar(&p.City, "city", "", "classifieds city")
	c.Flags().IntVar(&p.Limit, "limit", 0, "maximum deals to return")
	c.Flags().BoolVar(&p.Fresh, "fresh", false, "bypass the server cache")
}

func dealsCmd() *cobra.Command {
	var p apiclient.DealParams

	c := &cobra.Command{
		Use:   "deals",
		Short: "List live deals",
		Example: `  dealctl deals
  dealctl deals --sources slickdeals,dealnews --category laptops --limit 10
  dealctl deals --sources craigslist --city seattle --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().ListDeals(cmd.Context(), &p)
			if err != nil {
				return err
			}
			return printResult(res)
		},
	}
	addDealFlags(c, &p)
	return c
}

func searchCmd() *cobra.Command {
	var p apiclient.DealParams

	c := &cobra.Command{
		Use:   "search <query>",
		Short: "Search deals by keyword",
		Args:  cobra.MinimumNArgs(1),
		Example: `  dealctl search "oled tv"
  dealctl search airpods --sources ebay,slickdeals --fresh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := newClient().SearchDeals(cmd.Context(), strings.Join(args, " "), &p)
			if err != nil {
				return err
			}
			return printResult(res)
		},
	}
	addDealFlags(c, &p)
	return c
}

func hotCmd() *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "hot",
		Short: "Show the current hot deals",
		Example: `  dealctl hot
  dealctl hot --limit 5 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().HotDeals(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printResult(res)
		},
	}
	c.Flags().IntVar(&limit, "limit", 0, "maximum deals to return")
	return c
}

func printResult(res *domain.AggregatorResult) error {
	if jsonOutput() {
		return outputJSON(os.Stdout, res)
	}
	if len(res.Deals) == 0 {
		fmt.Println("No deals found.")
	} else if err := printDealsTable(os.Stdout, res.Deals); err != nil {
		return err
	}
	return printSourceSummary(os.Stdout, res)
}
