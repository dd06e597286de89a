// Package aggregator fans a query out to the deal sources, then normalizes,
// deduplicates, scores and ranks what comes back. Results are cached for a
// few minutes per query.
package aggregator

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel/attribute"

	"github.com/donaldgifford/deal-aggregator/internal/cache"
	"github.com/donaldgifford/deal-aggregator/internal/fetch"
	"github.com/donaldgifford/deal-aggregator/internal/metrics"
	"github.com/donaldgifford/deal-aggregator/internal/normalize"
	"github.com/donaldgifford/deal-aggregator/internal/source"
	"github.com/donaldgifford/deal-aggregator/internal/telemetry"
	score "github.com/donaldgifford/deal-aggregator/pkg/scorer"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// ErrUnknownSource is returned when a caller names a source that is not
// registered.
var ErrUnknownSource = errors.New("unknown source")

// Defaults.
const (
	DefaultListingLimit = 100
	DefaultSearchLimit  = 50
	DefaultHotLimit     = 20
	DefaultHotThreshold = 75

	DefaultListingTTL = 5 * time.Minute
	DefaultSearchTTL  = 3 * time.Minute
	DefaultHotTTL     = 5 * time.Minute
)

// DefaultSources are queried when Options.Sources is empty. eBay needs
// credentials and is opt-in.
var DefaultSources = []domain.Source{
	domain.SourceSlickdeals,
	domain.SourceDealnews,
	domain.SourceCraigslist,
}

// Options narrows an aggregator query.
type Options struct {
	Sources  []domain.Source
	Category domain.Category
	City     string
	// Limit caps the returned deals. Zero selects the per-operation default.
	Limit int
	// BypassCache skips the cache read. The fresh result is still cached.
	BypassCache bool
}

// Aggregator queries the registered adapters concurrently and merges their
// results.
type Aggregator struct {
	registry     *source.Registry
	defaults     []domain.Source
	cache        *cache.Cache[domain.AggregatorResult]
	listingTTL   time.Duration
	searchTTL    time.Duration
	hotTTL       time.Duration
	hotThreshold int
	log          *slog.Logger
	nowFunc      func() time.Time
}

// Option configures the Aggregator.
type Option func(*Aggregator)

// WithDefaultSources overrides DefaultSources.
func WithDefaultSources(sources ...domain.Source) Option {
	return func(a *Aggregator) {
		a.defaults = sources
	}
}

// WithCache injects the result cache. The aggregator takes ownership and
// stops its sweep in Close.
func WithCache(c *cache.Cache[domain.AggregatorResult]) Option {
	return func(a *Aggregator) {
		a.cache = c
	}
}

// WithTTLs overrides the listing, search and hot-deal cache lifetimes.
// Zero values keep the defaults.
func WithTTLs(listing, search, hot time.Duration) Option {
	return func(a *Aggregator) {
		a.listingTTL = cmp.Or(listing, a.listingTTL)
		a.searchTTL = cmp.Or(search, a.searchTTL)
		a.hotTTL = cmp.Or(hot, a.hotTTL)
	}
}

// WithHotThreshold sets the minimum overall score of a hot deal.
func WithHotThreshold(n int) Option {
	return func(a *Aggregator) {
		a.hotThreshold = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		a.log = l
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(a *Aggregator) {
		a.nowFunc = f
	}
}

// New creates an aggregator over the registry's adapters.
func New(registry *source.Registry, opts ...Option) *Aggregator {
	a := &Aggregator{
		registry:     registry,
		defaults:     DefaultSources,
		listingTTL:   DefaultListingTTL,
		searchTTL:    DefaultSearchTTL,
		hotTTL:       DefaultHotTTL,
		hotThreshold: DefaultHotThreshold,
		log:          slog.Default(),
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cache == nil {
		a.cache = cache.New[domain.AggregatorResult]()
	}
	return a
}

// Close stops the cache sweeper.
func (a *Aggregator) Close() {
	a.cache.Close()
}

// FetchDeals lists current deals from the selected sources.
func (a *Aggregator) FetchDeals(ctx context.Context, opts Options) (*domain.AggregatorResult, error) {
	adapters, err := a.resolve(opts.Sources)
	if err != nil {
		return nil, err
	}

	key := "deals:" + sourceKey(adapters) + ":" + string(opts.Category) + ":" + strings.ToLower(opts.City)
	limit := cmp.Or(opts.Limit, DefaultListingLimit)
	q := domain.Query{Category: opts.Category, City: opts.City}

	return a.cached(ctx, "fetch", key, a.listingTTL, limit, opts.BypassCache, func(ctx context.Context) domain.AggregatorResult {
		return a.run(ctx, adapters, q, source.Adapter.FetchDeals)
	})
}

// Search runs a text search against the selected sources and keeps the deals
// whose title or description contains the query.
func (a *Aggregator) Search(ctx context.Context, query string, opts Options) (*domain.AggregatorResult, error) {
	text := strings.TrimSpace(query)
	if text == "" {
		return nil, source.ErrEmptyQuery
	}

	adapters, err := a.resolve(opts.Sources)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(text)
	key := "search:" + needle + ":" + sourceKey(adapters) + ":" + string(opts.Category) + ":" + strings.ToLower(opts.City)
	limit := cmp.Or(opts.Limit, DefaultSearchLimit)
	q := domain.Query{Text: text, Category: opts.Category, City: opts.City}

	return a.cached(ctx, "search", key, a.searchTTL, limit, opts.BypassCache, func(ctx context.Context) domain.AggregatorResult {
		res := a.run(ctx, adapters, q, source.Adapter.SearchDeals)
		res.Deals = slices.DeleteFunc(res.Deals, func(d domain.NormalizedDeal) bool {
			return !strings.Contains(strings.ToLower(d.Title), needle) &&
				!strings.Contains(strings.ToLower(d.Description), needle)
		})
		res.Query = text
		return res
	})
}

// GetHotDeals returns curated-feed deals scoring at least the hot threshold.
func (a *Aggregator) GetHotDeals(ctx context.Context, limit int) (*domain.AggregatorResult, error) {
	return a.hotDeals(ctx, limit, false)
}

// RefreshHotDeals is GetHotDeals without the cache read. The fresh result
// replaces the cached one.
func (a *Aggregator) RefreshHotDeals(ctx context.Context, limit int) (*domain.AggregatorResult, error) {
	return a.hotDeals(ctx, limit, true)
}

func (a *Aggregator) hotDeals(ctx context.Context, limit int, bypass bool) (*domain.AggregatorResult, error) {
	var adapters []source.Adapter
	for _, name := range domain.CuratedSources {
		if ad, ok := a.registry.Get(name); ok {
			adapters = append(adapters, ad)
		}
	}

	limit = cmp.Or(limit, DefaultHotLimit)
	return a.cached(ctx, "hot", "hot", a.hotTTL, limit, bypass, func(ctx context.Context) domain.AggregatorResult {
		res := a.run(ctx, adapters, domain.Query{}, source.Adapter.FetchDeals)
		res.Deals = slices.DeleteFunc(res.Deals, func(d domain.NormalizedDeal) bool {
			return d.Overall() < a.hotThreshold
		})
		return res
	})
}

// ClearCache drops every cached result.
func (a *Aggregator) ClearCache() {
	a.cache.Clear()
}

// CacheStats reports the result cache counters.
func (a *Aggregator) CacheStats() cache.Stats {
	return a.cache.Stats()
}

// GetSourceStats returns quota state for every registered source.
func (a *Aggregator) GetSourceStats() []fetch.Stats {
	adapters := a.registry.All()
	stats := make([]fetch.Stats, 0, len(adapters))
	for _, ad := range adapters {
		stats = append(stats, ad.Stats())
	}
	return stats
}

// IsSourceConfigured reports whether the named source has what it needs to
// fetch.
func (a *Aggregator) IsSourceConfigured(name domain.Source) (bool, error) {
	ad, ok := a.registry.Get(name)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	return ad.Configured(), nil
}

// ResetQuotas resets every source's daily request counter.
func (a *Aggregator) ResetQuotas() {
	for _, ad := range a.registry.All() {
		ad.ResetDaily()
	}
	a.log.Info("daily source quotas reset", "sources", len(a.registry.Names()))
}

// cached serves key from the cache or computes, caches and returns it. The
// full result is cached; the returned copy is truncated to limit.
func (a *Aggregator) cached(
	ctx context.Context,
	op, key string,
	ttl time.Duration,
	limit int,
	bypass bool,
	compute func(ctx context.Context) domain.AggregatorResult,
) (*domain.AggregatorResult, error) {
	if !bypass {
		if res, ok := a.cache.Get(key); ok {
			metrics.CacheHitsTotal.Inc()
			res.Cached = true
			out := truncate(res, limit)
			telemetry.RecordAggregation(ctx, op, true, len(out.Deals))
			return out, nil
		}
		metrics.CacheMissesTotal.Inc()
	}

	ctx, span := telemetry.StartSpan(ctx, "aggregator."+op,
		attribute.String("cache.key", key),
		attribute.Bool("cache.bypass", bypass),
	)
	defer span.End()

	start := time.Now()
	res := compute(ctx)
	metrics.AggregationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	a.cache.Set(key, res, ttl)

	out := truncate(res, limit)
	span.SetAttributes(
		attribute.Int("deals.total_fetched", res.TotalFetched),
		attribute.Int("deals.after_dedup", res.TotalAfterDedup),
		attribute.Int("deals.returned", len(out.Deals)),
	)
	telemetry.RecordAggregation(ctx, op, false, len(out.Deals))

	a.log.Debug("aggregation complete",
		"operation", op,
		"total_fetched", res.TotalFetched,
		"after_dedup", res.TotalAfterDedup,
		"returned", len(out.Deals),
		"duration_ms", res.FetchTime.Milliseconds(),
	)
	return out, nil
}

type fetchFunc func(source.Adapter, context.Context, domain.Query) domain.FetchResult

// run fans q out to every adapter, waits for all of them, and runs the
// normalize, dedup, score and rank pipeline over the successful results.
func (a *Aggregator) run(
	ctx context.Context,
	adapters []source.Adapter,
	q domain.Query,
	call fetchFunc,
) domain.AggregatorResult {
	start := time.Now()

	mapper := iter.Mapper[source.Adapter, domain.FetchResult]{MaxGoroutines: max(len(adapters), 1)}
	results := mapper.Map(adapters, func(ad *source.Adapter) domain.FetchResult {
		return a.safeCall(ctx, *ad, q, call)
	})

	var raw []domain.RawDeal
	statuses := make([]domain.SourceStatus, 0, len(results))
	for _, r := range results {
		statuses = append(statuses, domain.SourceStatus{
			Source:  r.Source,
			Count:   len(r.Deals),
			Success: r.Success,
			Error:   r.Error,
		})
		if !r.Success {
			a.log.Warn("source fetch failed", "source", r.Source, "error", r.Error)
			continue
		}
		raw = append(raw, r.Deals...)
	}

	now := a.nowFunc()
	deals := normalize.DeduplicateDeals(normalize.NormalizeDeals(raw, now))
	score.ScoreDeals(deals, now)
	flagged := score.DetectSuspiciousDeals(deals)

	slices.SortStableFunc(deals, func(x, y domain.NormalizedDeal) int {
		return cmp.Compare(y.Overall(), x.Overall())
	})

	for i := range deals {
		metrics.ScoringDistribution.Observe(float64(deals[i].Overall()))
	}
	metrics.SuspiciousDealsTotal.Add(float64(flagged))
	metrics.DealsAfterDedupTotal.Add(float64(len(deals)))

	if deals == nil {
		deals = []domain.NormalizedDeal{}
	}

	return domain.AggregatorResult{
		Deals:           deals,
		Sources:         statuses,
		TotalFetched:    len(raw),
		TotalAfterDedup: len(deals),
		FetchTime:       time.Since(start),
		FetchedAt:       now,
	}
}

// safeCall converts an adapter panic into a failed result.
func (a *Aggregator) safeCall(
	ctx context.Context,
	ad source.Adapter,
	q domain.Query,
	call fetchFunc,
) (res domain.FetchResult) {
	name := ad.Name()
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("source adapter panicked", "source", name, "panic", r)
			res = source.Failed(name, fmt.Errorf("adapter panicked: %v", r))
		}
	}()

	res = call(ad, ctx, q)
	res.Source = name
	return res
}

// resolve maps source names onto adapters, preserving request order and
// dropping repeats. An empty list selects the registered default sources.
func (a *Aggregator) resolve(names []domain.Source) ([]source.Adapter, error) {
	if len(names) == 0 {
		var adapters []source.Adapter
		for _, name := range a.defaults {
			if ad, ok := a.registry.Get(name); ok {
				adapters = append(adapters, ad)
			}
		}
		return adapters, nil
	}

	adapters := make([]source.Adapter, 0, len(names))
	seen := make(map[domain.Source]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		ad, ok := a.registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
		}
		adapters = append(adapters, ad)
	}
	return adapters, nil
}

// sourceKey is the sorted, comma-joined adapter names.
func sourceKey(adapters []source.Adapter) string {
	names := make([]string, 0, len(adapters))
	for _, ad := range adapters {
		names = append(names, string(ad.Name()))
	}
	slices.Sort(names)
	return strings.Join(names, ",")
}

// truncate returns a copy of res holding at most limit deals.
func truncate(res domain.AggregatorResult, limit int) *domain.AggregatorResult {
	out := res
	if limit > 0 && len(out.Deals) > limit {
		out.Deals = out.Deals[:limit]
	}
	out.Deals = slices.Clone(out.Deals)
	out.Sources = slices.Clone(out.Sources)
	return &out
}
