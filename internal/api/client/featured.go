package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// FeaturedResponse wraps a paginated featured deals response.
type FeaturedResponse struct {
	Deals  []domain.FeaturedDeal `json:"deals"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// FeaturedParams defines query parameters for featured deal queries.
type FeaturedParams struct {
	Source   string
	Category string
	MinScore int
	Since    time.Time
	Limit    int
	Offset   int
	OrderBy  string
}

// ListFeatured returns persisted hot deals matching the given parameters.
func (c *Client) ListFeatured(ctx context.Context, params *FeaturedParams) (*FeaturedResponse, error) {
	q := url.Values{}
	if params != nil {
		if params.Source != "" {
			q.Set("source", params.Source)
		}
		if params.Category != "" {
			q.Set("category", params.Category)
		}
		if params.MinScore > 0 {
			q.Set("min_score", strconv.Itoa(params.MinScore))
		}
		if !params.Since.IsZero() {
			q.Set("since", params.Since.UTC().Format(time.RFC3339))
		}
		if params.Limit > 0 {
			q.Set("limit", strconv.Itoa(params.Limit))
		}
		if params.Offset > 0 {
			q.Set("offset", strconv.Itoa(params.Offset))
		}
		if params.OrderBy != "" {
			q.Set("order_by", params.OrderBy)
		}
	}

	var resp FeaturedResponse
	if err := c.get(ctx, withQuery("/api/v1/deals/featured", q), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetFeatured returns a single featured deal by ID.
func (c *Client) GetFeatured(ctx context.Context, id string) (*domain.FeaturedDeal, error) {
	var deal domain.FeaturedDeal
	if err := c.get(ctx, "/api/v1/deals/featured/"+url.PathEscape(id), &deal); err != nil {
		return nil, err
	}
	return &deal, nil
}
