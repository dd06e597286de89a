package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// DealParams are the shared filters for the live deal endpoints.
type DealParams struct {
	Sources  []string
	Category string
	City     string
	Limit    int
	Fresh    bool
}

func (p *DealParams) values() url.Values {
	q := url.Values{}
	if p == nil {
		return q
	}
	if len(p.Sources) > 0 {
		q.Set("sources", strings.Join(p.Sources, ","))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.City != "" {
		q.Set("city", p.City)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Fresh {
		q.Set("fresh", "true")
	}
	return q
}

// ListDeals fetches deals from the selected sources.
func (c *Client) ListDeals(ctx context.Context, params *DealParams) (*domain.AggregatorResult, error) {
	var result domain.AggregatorResult
	if err := c.get(ctx, withQuery("/api/v1/deals", params.values()), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchDeals runs a keyword search across the selected sources.
func (c *Client) SearchDeals(
	ctx context.Context,
	query string,
	params *DealParams,
) (*domain.AggregatorResult, error) {
	q := params.values()
	q.Set("q", query)

	var result domain.AggregatorResult
	if err := c.get(ctx, withQuery("/api/v1/deals/search", q), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HotDeals returns the highest scoring deals across the curated sources.
func (c *Client) HotDeals(ctx context.Context, limit int) (*domain.AggregatorResult, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var result domain.AggregatorResult
	if err := c.get(ctx, withQuery("/api/v1/deals/hot", q), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
