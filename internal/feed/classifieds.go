package feed

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/donaldgifford/deal-aggregator/internal/fetch"
	"github.com/donaldgifford/deal-aggregator/internal/normalize"
	"github.com/donaldgifford/deal-aggregator/internal/source"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// URL template placeholders for classifieds feeds.
const (
	CityPlaceholder     = "{city}"
	CategoryPlaceholder = "{category}"
)

const (
	defaultTopCities    = 3
	defaultCategoryCode = "ela"
)

// DefaultCategoryCodes maps categories onto Craigslist section codes.
var DefaultCategoryCodes = map[domain.Category]string{
	domain.CategoryLaptops:   "sya",
	domain.CategoryComputers: "sya",
	domain.CategoryStorage:   "sya",
	domain.CategoryPhones:    "moa",
	domain.CategoryGaming:    "vga",
	domain.CategoryCameras:   "pha",
}

// ClassifiedsConfig configures a ClassifiedsAdapter.
type ClassifiedsConfig struct {
	// URLTemplate contains {city}, {category} and optionally {query}.
	URLTemplate   string
	Cities        []string
	TopCities     int
	CategoryCodes map[domain.Category]string
}

// ClassifiedsAdapter reads per-city classifieds feeds. Without an explicit
// city it fans out to the top configured cities and merges the results,
// newest first.
type ClassifiedsAdapter struct {
	base
	cfg ClassifiedsConfig
}

var _ source.Adapter = (*ClassifiedsAdapter)(nil)

// NewClassifiedsAdapter creates a classifieds adapter.
func NewClassifiedsAdapter(
	name domain.Source,
	cfg ClassifiedsConfig,
	ex *fetch.Executor,
	opts ...Option,
) *ClassifiedsAdapter {
	if cfg.TopCities <= 0 {
		cfg.TopCities = defaultTopCities
	}
	if cfg.CategoryCodes == nil {
		cfg.CategoryCodes = DefaultCategoryCodes
	}
	return &ClassifiedsAdapter{
		base: newBase(name, ex, opts),
		cfg:  cfg,
	}
}

// FetchDeals lists the category's newest posts.
func (a *ClassifiedsAdapter) FetchDeals(ctx context.Context, q domain.Query) domain.FetchResult {
	return source.Collect(ctx, a.name, "fetch", a.ex, func(ctx context.Context) ([]domain.RawDeal, error) {
		return a.fanOut(ctx, q, "")
	})
}

// SearchDeals searches the category's posts for q.Text.
func (a *ClassifiedsAdapter) SearchDeals(ctx context.Context, q domain.Query) domain.FetchResult {
	return source.Collect(ctx, a.name, "search", a.ex, func(ctx context.Context) ([]domain.RawDeal, error) {
		if strings.TrimSpace(q.Text) == "" {
			return nil, source.ErrEmptyQuery
		}
		return a.fanOut(ctx, q, q.Text)
	})
}

// Cities returns the cities a query without a city fans out to.
func (a *ClassifiedsAdapter) Cities() []string {
	n := min(a.cfg.TopCities, len(a.cfg.Cities))
	return slices.Clone(a.cfg.Cities[:n])
}

type cityResult struct {
	city  string
	deals []domain.RawDeal
	err   error
}

func (a *ClassifiedsAdapter) fanOut(ctx context.Context, q domain.Query, query string) ([]domain.RawDeal, error) {
	cities := a.Cities()
	if q.City != "" {
		cities = []string{q.City}
	}
	if len(cities) == 0 {
		return nil, errors.New("no cities configured")
	}

	mapper := iter.Mapper[string, cityResult]{MaxGoroutines: len(cities)}
	results := mapper.Map(cities, func(city *string) cityResult {
		deals, err := a.readCity(ctx, *city, q.Category, query)
		return cityResult{city: *city, deals: deals, err: err}
	})

	var (
		merged []domain.RawDeal
		errs   []error
	)
	for _, r := range results {
		if r.err != nil {
			a.log.Warn("city feed failed", "city", r.city, "error", r.err)
			errs = append(errs, fmt.Errorf("%s: %w", r.city, r.err))
			continue
		}
		merged = append(merged, r.deals...)
	}

	// Only a total outage is a failure; partial city results still count.
	if len(errs) == len(results) {
		return nil, errors.Join(errs...)
	}

	slices.SortStableFunc(merged, func(x, y domain.RawDeal) int {
		return comparePostedDesc(x.PostedAt, y.PostedAt)
	})
	return merged, nil
}

func (a *ClassifiedsAdapter) readCity(
	ctx context.Context,
	city string,
	category domain.Category,
	query string,
) ([]domain.RawDeal, error) {
	parsed, err := a.fetchFeed(ctx, a.buildURL(city, category, query))
	if err != nil {
		return nil, err
	}

	// Titles too vague to classify take the category of a dedicated section.
	// The catch-all electronics section never pins one.
	_, dedicated := a.cfg.CategoryCodes[category]

	deals := make([]domain.RawDeal, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		d, ok := itemToDeal(item, a.name, domain.ConditionUsed)
		if !ok {
			continue
		}
		d.Location = city
		if dedicated && normalize.InferCategory(d.Title) == domain.CategoryOther {
			d.Category = category
		}
		deals = append(deals, d)
	}
	return deals, nil
}

func (a *ClassifiedsAdapter) buildURL(city string, category domain.Category, query string) string {
	code := cmp.Or(a.cfg.CategoryCodes[category], defaultCategoryCode)

	u := strings.NewReplacer(
		CityPlaceholder, url.PathEscape(city),
		CategoryPlaceholder, code,
		QueryPlaceholder, url.QueryEscape(query),
	).Replace(a.cfg.URLTemplate)

	if query != "" && !strings.Contains(a.cfg.URLTemplate, QueryPlaceholder) {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + "query=" + url.QueryEscape(query)
	}
	return u
}

// comparePostedDesc orders newer posts first and undated posts last.
func comparePostedDesc(x, y *time.Time) int {
	switch {
	case x == nil && y == nil:
		return 0
	case x == nil:
		return 1
	case y == nil:
		return -1
	default:
		return y.Compare(*x)
	}
}
