package client

import (
	"context"
	"net/url"

	"github.com/donaldgifford/deal-aggregator/internal/cache"
	"github.com/donaldgifford/deal-aggregator/internal/fetch"
)

// SourceStatus is one source's quota usage and configuration.
type SourceStatus struct {
	fetch.Stats
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}

// ListSources returns quota usage for every registered source.
func (c *Client) ListSources(ctx context.Context) ([]SourceStatus, error) {
	var resp struct {
		Sources []SourceStatus `json:"sources"`
	}
	if err := c.get(ctx, "/api/v1/sources", &resp); err != nil {
		return nil, err
	}
	return resp.Sources, nil
}

// SourceConfigured reports whether the named source has credentials.
func (c *Client) SourceConfigured(ctx context.Context, name string) (bool, error) {
	var resp struct {
		Configured bool `json:"configured"`
	}
	if err := c.get(ctx, "/api/v1/sources/"+url.PathEscape(name)+"/configured", &resp); err != nil {
		return false, err
	}
	return resp.Configured, nil
}

// CacheStats returns the server's result cache counters.
func (c *Client) CacheStats(ctx context.Context) (*cache.Stats, error) {
	var stats cache.Stats
	if err := c.get(ctx, "/api/v1/cache", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ClearCache drops the server's cached results and returns the counters
// from before the clear.
func (c *Client) ClearCache(ctx context.Context) (*cache.Stats, error) {
	var stats cache.Stats
	if err := c.del(ctx, "/api/v1/cache", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
