package ebay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cenkalti/backoff/v4"

	"github.com/donaldgifford/deal-aggregator/internal/fetch"
	"github.com/donaldgifford/deal-aggregator/internal/source"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

const (
	defaultQuery    = "electronics"
	defaultPageSize = 50
	maxPageSize     = 200
	defaultMaxPages = 3
)

// notConfiguredMessage is reported when no app credentials are set.
const notConfiguredMessage = "eBay API credentials not configured"

// DefaultCategoryQueries are the keyword queries used to list a category.
var DefaultCategoryQueries = map[domain.Category]string{
	domain.CategoryLaptops:     "laptop",
	domain.CategoryPhones:      "unlocked smartphone",
	domain.CategoryTablets:     "tablet",
	domain.CategoryTVs:         "4k smart tv",
	domain.CategoryAudio:       "wireless headphones",
	domain.CategoryGaming:      "video game console",
	domain.CategoryCameras:     "mirrorless camera",
	domain.CategoryWearables:   "smartwatch",
	domain.CategorySmartHome:   "smart home",
	domain.CategoryComputers:   "desktop computer",
	domain.CategoryStorage:     "ssd",
	domain.CategoryAccessories: "usb-c charger",
}

// Adapter is the eBay deal source. Each Browse API page is one executor
// call, so pacing, the daily quota and retries apply per page.
type Adapter struct {
	client   SearchClient
	ex       *fetch.Executor
	queries  map[domain.Category]string
	pageSize int
	maxPages int
	log      *slog.Logger
}

var _ source.Adapter = (*Adapter)(nil)

// AdapterOption configures the Adapter.
type AdapterOption func(*Adapter)

// WithCategoryQueries overrides the per-category keyword queries.
func WithCategoryQueries(q map[domain.Category]string) AdapterOption {
	return func(a *Adapter) {
		a.queries = q
	}
}

// WithMaxPages caps the pages read per call.
func WithMaxPages(n int) AdapterOption {
	return func(a *Adapter) {
		if n > 0 {
			a.maxPages = n
		}
	}
}

// WithPageSize sets the items requested per page, at most 200.
func WithPageSize(n int) AdapterOption {
	return func(a *Adapter) {
		if n > 0 {
			a.pageSize = min(n, maxPageSize)
		}
	}
}

// WithLogger sets the adapter logger.
func WithLogger(l *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.log = l
	}
}

// NewAdapter creates the eBay adapter. A nil client yields an adapter that
// reports itself as not configured.
func NewAdapter(client SearchClient, ex *fetch.Executor, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		client:   client,
		ex:       ex,
		queries:  DefaultCategoryQueries,
		pageSize: defaultPageSize,
		maxPages: defaultMaxPages,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With("source", string(domain.SourceEbay))
	return a
}

// Name implements source.Adapter.
func (a *Adapter) Name() domain.Source { return domain.SourceEbay }

// Configured implements source.Adapter.
func (a *Adapter) Configured() bool { return a.client != nil }

// Stats implements source.Adapter.
func (a *Adapter) Stats() fetch.Stats { return a.ex.Stats() }

// ResetDaily implements source.Adapter.
func (a *Adapter) ResetDaily() { a.ex.ResetDaily() }

// FetchDeals lists newly listed fixed-price items for the category.
func (a *Adapter) FetchDeals(ctx context.Context, q domain.Query) domain.FetchResult {
	return source.Collect(ctx, domain.SourceEbay, "fetch", a.ex, func(ctx context.Context) ([]domain.RawDeal, error) {
		if !a.Configured() {
			return nil, source.NotConfigured(notConfiguredMessage)
		}
		keywords := defaultQuery
		if kw, ok := a.queries[q.Category]; ok {
			keywords = kw
		}
		return a.collect(ctx, keywords)
	})
}

// SearchDeals searches fixed-price items matching q.Text.
func (a *Adapter) SearchDeals(ctx context.Context, q domain.Query) domain.FetchResult {
	return source.Collect(ctx, domain.SourceEbay, "search", a.ex, func(ctx context.Context) ([]domain.RawDeal, error) {
		if !a.Configured() {
			return nil, source.NotConfigured(notConfiguredMessage)
		}
		text := strings.TrimSpace(q.Text)
		if text == "" {
			return nil, source.ErrEmptyQuery
		}
		return a.collect(ctx, text)
	})
}

// collect pages through results until they run out or maxPages pages have
// been read. The budget is fixed per adapter; callers truncate.
func (a *Adapter) collect(ctx context.Context, keywords string) ([]domain.RawDeal, error) {
	req := SearchRequest{
		Query: keywords,
		Limit: a.pageSize,
		Sort:  SortNewlyListed,
		Filter: SearchFilter{
			BuyingOptions: []string{"FIXED_PRICE"},
			Currency:      "USD",
		},
	}

	var deals []domain.RawDeal
	for page := range a.maxPages {
		req.Offset = page * a.pageSize

		resp, err := fetch.Execute(ctx, a.ex, func(ctx context.Context) (*SearchResponse, error) {
			resp, err := a.client.Search(ctx, req)
			var apiErr *APIError
			if errors.As(err, &apiErr) && !apiErr.Retryable() {
				return nil, backoff.Permanent(err)
			}
			return resp, err
		})
		if err != nil {
			if len(deals) > 0 {
				a.log.Warn("stopping pagination early", "page", page, "error", err)
				break
			}
			return nil, fmt.Errorf("searching page %d: %w", page, err)
		}

		deals = append(deals, ToRawDeals(resp.Items)...)
		if !resp.HasMore || len(resp.Items) == 0 {
			break
		}
	}
	return deals, nil
}
