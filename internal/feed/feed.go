// Package feed implements source adapters for RSS/Atom deal feeds: curated
// deal sites and per-city classifieds. Items are parsed with gofeed and the
// deal attributes are mined from the title and body text.
package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/donaldgifford/deal-aggregator/internal/fetch"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

const (
	defaultUserAgent = "deal-aggregator/1.0 (+https://github.com/donaldgifford/deal-aggregator)"
	maxFeedBytes     = 5 << 20
)

// base carries what both feed adapters share.
type base struct {
	name      domain.Source
	ex        *fetch.Executor
	client    *http.Client
	userAgent string
	log       *slog.Logger
	nowFunc   func() time.Time
}

// Option configures a feed adapter.
type Option func(*base)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(b *base) {
		b.client = c
	}
}

// WithUserAgent overrides the User-Agent header sent with feed requests.
func WithUserAgent(ua string) Option {
	return func(b *base) {
		b.userAgent = ua
	}
}

// WithLogger sets the adapter logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *base) {
		b.log = l
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(b *base) {
		b.nowFunc = f
	}
}

func newBase(name domain.Source, ex *fetch.Executor, opts []Option) base {
	b := base{
		name:      name,
		ex:        ex,
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: defaultUserAgent,
		log:       slog.Default(),
		nowFunc:   time.Now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	b.log = b.log.With("source", string(name))
	return b
}

// Name implements source.Adapter.
func (b *base) Name() domain.Source { return b.name }

// Stats implements source.Adapter.
func (b *base) Stats() fetch.Stats { return b.ex.Stats() }

// ResetDaily implements source.Adapter.
func (b *base) ResetDaily() { b.ex.ResetDaily() }

// Configured implements source.Adapter. Feeds need no credentials.
func (b *base) Configured() bool { return true }

// fetchFeed downloads and parses one feed through the executor.
func (b *base) fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	return fetch.Execute(ctx, b.ex, func(ctx context.Context) (*gofeed.Feed, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("creating HTTP request: %w", err)
		}
		req.Header.Set("User-Agent", b.userAgent)
		req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

		resp, err := b.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("executing feed request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
		if err != nil {
			return nil, fmt.Errorf("reading feed body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%s feed error (status %d)", b.name.DisplayName(), resp.StatusCode)
		}

		// gofeed parsers keep per-parse state, so each call gets its own.
		parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("parsing feed: %w", err)
		}
		return parsed, nil
	})
}
