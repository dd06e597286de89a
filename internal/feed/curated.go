package feed

import (
	"context"
	"net/url"
	"strings"

	"github.com/donaldgifford/deal-aggregator/internal/fetch"
	"github.com/donaldgifford/deal-aggregator/internal/normalize"
	"github.com/donaldgifford/deal-aggregator/internal/source"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// QueryPlaceholder is replaced by the escaped search text in search URL
// templates.
const QueryPlaceholder = "{query}"

// CuratedAdapter reads an editor or community curated deal feed such as
// Slickdeals or DealNews.
type CuratedAdapter struct {
	base
	feedURL   string
	searchURL string
}

var _ source.Adapter = (*CuratedAdapter)(nil)

// NewCuratedAdapter creates an adapter for the feed at feedURL. searchURL
// is a template containing {query}; when empty, searches filter the main
// feed instead.
func NewCuratedAdapter(
	name domain.Source,
	feedURL, searchURL string,
	ex *fetch.Executor,
	opts ...Option,
) *CuratedAdapter {
	return &CuratedAdapter{
		base:      newBase(name, ex, opts),
		feedURL:   feedURL,
		searchURL: searchURL,
	}
}

// FetchDeals returns the current feed, restricted to q.Category when set.
func (a *CuratedAdapter) FetchDeals(ctx context.Context, q domain.Query) domain.FetchResult {
	return source.Collect(ctx, a.name, "fetch", a.ex, func(ctx context.Context) ([]domain.RawDeal, error) {
		deals, err := a.read(ctx, a.feedURL)
		if err != nil {
			return nil, err
		}
		if q.Category == "" {
			return deals, nil
		}

		filtered := deals[:0]
		for i := range deals {
			if normalize.InferCategory(deals[i].Title) == q.Category {
				filtered = append(filtered, deals[i])
			}
		}
		return filtered, nil
	})
}

// SearchDeals queries the source's search feed for q.Text.
func (a *CuratedAdapter) SearchDeals(ctx context.Context, q domain.Query) domain.FetchResult {
	return source.Collect(ctx, a.name, "search", a.ex, func(ctx context.Context) ([]domain.RawDeal, error) {
		if strings.TrimSpace(q.Text) == "" {
			return nil, source.ErrEmptyQuery
		}

		if a.searchURL == "" {
			deals, err := a.read(ctx, a.feedURL)
			if err != nil {
				return nil, err
			}
			filtered := deals[:0]
			for i := range deals {
				if matchesQuery(&deals[i], q.Text) {
					filtered = append(filtered, deals[i])
				}
			}
			return filtered, nil
		}

		u := strings.ReplaceAll(a.searchURL, QueryPlaceholder, url.QueryEscape(q.Text))
		return a.read(ctx, u)
	})
}

func (a *CuratedAdapter) read(ctx context.Context, feedURL string) ([]domain.RawDeal, error) {
	parsed, err := a.fetchFeed(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	deals := make([]domain.RawDeal, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		d, ok := itemToDeal(item, a.name, domain.ConditionNew)
		if !ok {
			continue
		}
		deals = append(deals, d)
	}

	a.log.Debug("feed parsed", "items", len(parsed.Items), "deals", len(deals))
	return deals, nil
}
