// Package ebay provides the eBay Browse API deal source: an OAuth token
// provider, a search client abstracted behind interfaces for testability,
// and the source adapter that turns item summaries into raw deals.
package ebay

import (
	"context"
	"strconv"
	"strings"
)

// SortNewlyListed orders results with the newest listings first.
const SortNewlyListed = "newlyListed"

// SearchRequest is one page of an item_summary search.
type SearchRequest struct {
	Query      string
	CategoryID string
	Limit      int
	Offset     int
	Sort       string
	Filter     SearchFilter
}

// SearchFilter narrows a search server-side. Zero fields are omitted.
type SearchFilter struct {
	BuyingOptions []string // FIXED_PRICE, BEST_OFFER, AUCTION
	Conditions    []string // NEW, USED, ...
	MaxPrice      float64
	Currency      string
}

// String renders the filter in the Browse API's "field:{a|b},field:value"
// syntax, or "" when nothing is set.
func (f SearchFilter) String() string {
	var parts []string
	if len(f.BuyingOptions) > 0 {
		parts = append(parts, "buyingOptions:{"+strings.Join(f.BuyingOptions, "|")+"}")
	}
	if len(f.Conditions) > 0 {
		parts = append(parts, "conditions:{"+strings.Join(f.Conditions, "|")+"}")
	}
	if f.MaxPrice > 0 {
		parts = append(parts, "price:[.."+strconv.FormatFloat(f.MaxPrice, 'f', -1, 64)+"]")
	}
	if f.Currency != "" {
		parts = append(parts, "priceCurrency:"+f.Currency)
	}
	return strings.Join(parts, ",")
}

// SearchResponse is one page of results.
type SearchResponse struct {
	Items   []ItemSummary
	Total   int
	Offset  int
	Limit   int
	HasMore bool
}

// SearchClient searches eBay listings.
type SearchClient interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// TokenProvider supplies OAuth2 application tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
