package aggregator_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/deal-aggregator/internal/aggregator"
	"github.com/donaldgifford/deal-aggregator/internal/cache"
	"github.com/donaldgifford/deal-aggregator/internal/ebay"
	ebaymocks "github.com/donaldgifford/deal-aggregator/internal/ebay/mocks"
	"github.com/donaldgifford/deal-aggregator/internal/fetch"
	"github.com/donaldgifford/deal-aggregator/internal/source"
	"github.com/donaldgifford/deal-aggregator/internal/source/mocks"
	"github.com/donaldgifford/deal-aggregator/pkg/logger"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// stubAdapter returns canned deals and counts its calls.
type stubAdapter struct {
	name     domain.Source
	deals    []domain.RawDeal
	err      string
	panicMsg string
	block    func(ctx context.Context) error

	calls atomic.Int32
	mu    sync.Mutex
	last  domain.Query
}

func (s *stubAdapter) Name() domain.Source { return s.name }

func (s *stubAdapter) FetchDeals(ctx context.Context, q domain.Query) domain.FetchResult {
	return s.respond(ctx, q)
}

func (s *stubAdapter) SearchDeals(ctx context.Context, q domain.Query) domain.FetchResult {
	return s.respond(ctx, q)
}

func (s *stubAdapter) Stats() fetch.Stats {
	return fetch.Stats{Source: s.name, Enabled: true, Remaining: -1}
}

func (s *stubAdapter) Configured() bool { return true }

func (s *stubAdapter) ResetDaily() {}

func (s *stubAdapter) lastQuery() domain.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *stubAdapter) respond(ctx context.Context, q domain.Query) domain.FetchResult {
	s.calls.Add(1)
	s.mu.Lock()
	s.last = q
	s.mu.Unlock()

	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.block != nil {
		if err := s.block(ctx); err != nil {
			return source.Failed(s.name, err)
		}
	}
	if s.err != "" {
		return source.Failed(s.name, errors.New(s.err))
	}
	return domain.FetchResult{
		Source:  s.name,
		Success: true,
		Deals:   append([]domain.RawDeal(nil), s.deals...),
	}
}

func raw(src domain.Source, id, title string, price, original float64) domain.RawDeal {
	d := domain.RawDeal{
		SourceID:     id,
		Source:       src,
		SourceURL:    "https://example.com/" + id,
		Title:        title,
		CurrentPrice: price,
		Condition:    domain.ConditionNew,
	}
	if original > 0 {
		d.OriginalPrice = &original
	}
	return d
}

func newAggregator(t *testing.T, adapters ...source.Adapter) *aggregator.Aggregator {
	t.Helper()
	a := aggregator.New(source.NewRegistry(adapters...),
		aggregator.WithLogger(logger.Discard()),
		aggregator.WithNowFunc(func() time.Time { return fixedNow }),
	)
	t.Cleanup(a.Close)
	return a
}

func TestFetchDeals_RanksByOverallScore(t *testing.T) {
	t.Parallel()

	slick := &stubAdapter{
		name: domain.SourceSlickdeals,
		deals: []domain.RawDeal{
			raw(domain.SourceSlickdeals, "a", "Nintendo Switch OLED Console", 315, 350),
			raw(domain.SourceSlickdeals, "b", "Sony WH-1000XM5 Headphones", 200, 400),
		},
	}
	a := newAggregator(t, slick)

	res, err := a.FetchDeals(context.Background(), aggregator.Options{})
	require.NoError(t, err)
	require.Len(t, res.Deals, 2)

	assert.Equal(t, "b", res.Deals[0].SourceID, "50% off ranks first")
	assert.Equal(t, "a", res.Deals[1].SourceID)
	assert.Greater(t, res.Deals[0].Overall(), res.Deals[1].Overall())
	for _, d := range res.Deals {
		require.NotNil(t, d.AIScore)
		assert.NotEmpty(t, d.ID)
	}

	assert.Equal(t, 2, res.TotalFetched)
	assert.Equal(t, 2, res.TotalAfterDedup)
	assert.False(t, res.Cached)
	assert.Equal(t, fixedNow, res.FetchedAt)
	assert.Equal(t, aggregator.DefaultListingLimit, slick.lastQuery().Limit)
}

func TestFetchDeals_Cache(t *testing.T) {
	t.Parallel()

	slick := &stubAdapter{
		name: domain.SourceSlickdeals,
		deals: []domain.RawDeal{
			raw(domain.SourceSlickdeals, "a", "Nintendo Switch OLED Console", 315, 350),
			raw(domain.SourceSlickdeals, "b", "Sony WH-1000XM5 Headphones", 200, 400),
		},
	}
	a := newAggregator(t, slick)
	ctx := context.Background()

	first, err := a.FetchDeals(ctx, aggregator.Options{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, first.Deals, 1)
	assert.False(t, first.Cached)

	second, err := a.FetchDeals(ctx, aggregator.Options{Limit: 10})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Len(t, second.Deals, 2, "the cache holds the untruncated result")
	assert.Equal(t, int32(1), slick.calls.Load())

	_, err = a.FetchDeals(ctx, aggregator.Options{City: "Boston"})
	require.NoError(t, err)
	_, err = a.FetchDeals(ctx, aggregator.Options{City: "boston"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), slick.calls.Load(), "city keys are case-insensitive")

	_, err = a.FetchDeals(ctx, aggregator.Options{Category: domain.CategoryAudio})
	require.NoError(t, err)
	assert.Equal(t, int32(3), slick.calls.Load())

	bypass, err := a.FetchDeals(ctx, aggregator.Options{BypassCache: true})
	require.NoError(t, err)
	assert.False(t, bypass.Cached)
	assert.Equal(t, int32(4), slick.calls.Load())

	a.ClearCache()
	again, err := a.FetchDeals(ctx, aggregator.Options{})
	require.NoError(t, err)
	assert.False(t, again.Cached)
	assert.Equal(t, int32(5), slick.calls.Load())

	stats := a.CacheStats()
	assert.Positive(t, stats.Hits)
	assert.Positive(t, stats.Entries)
}

// pagingClient answers every Browse page with as many distinct items as
// were asked for.
func pagingClient(t *testing.T) *ebaymocks.MockSearchClient {
	t.Helper()
	client := ebaymocks.NewMockSearchClient(t)
	client.EXPECT().
		Search(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req ebay.SearchRequest) (*ebay.SearchResponse, error) {
			items := make([]ebay.ItemSummary, 0, req.Limit)
			for i := range req.Limit {
				id := req.Offset + i
				items = append(items, ebay.ItemSummary{
					ItemID:     fmt.Sprintf("v1|%d|0", id),
					Title:      fmt.Sprintf("Refurbished ThinkPad listing %04d", id),
					Price:      ebay.ItemPrice{Value: "250.00", Currency: "USD"},
					ItemWebURL: fmt.Sprintf("https://www.ebay.com/itm/%d", id),
				})
			}
			return &ebay.SearchResponse{Items: items, HasMore: true}, nil
		})
	return client
}

func TestFetchDeals_SmallLimitDoesNotShrinkCache(t *testing.T) {
	t.Parallel()

	ex := fetch.NewExecutor(domain.SourceEbay, domain.RateLimit{}, fetch.WithLogger(logger.Discard()))
	adapter := ebay.NewAdapter(pagingClient(t), ex,
		ebay.WithPageSize(40),
		ebay.WithMaxPages(3),
		ebay.WithLogger(logger.Discard()),
	)
	a := newAggregator(t, adapter)
	ctx := context.Background()
	opts := aggregator.Options{Sources: []domain.Source{domain.SourceEbay}}

	opts.Limit = 3
	small, err := a.FetchDeals(ctx, opts)
	require.NoError(t, err)
	assert.False(t, small.Cached)
	assert.Len(t, small.Deals, 3)
	assert.Equal(t, 120, small.TotalAfterDedup)

	opts.Limit = 100
	large, err := a.FetchDeals(ctx, opts)
	require.NoError(t, err)
	assert.True(t, large.Cached)
	assert.Len(t, large.Deals, 100)
	assert.Equal(t, 120, large.TotalAfterDedup)
	assert.Equal(t, int64(3), ex.Stats().RequestsToday, "second call served from cache")
}

func TestClose_StopsInjectedCache(t *testing.T) {
	t.Parallel()

	c := cache.New[domain.AggregatorResult](cache.WithSweepInterval(time.Hour))
	a := aggregator.New(source.NewRegistry(), aggregator.WithCache(c), aggregator.WithLogger(logger.Discard()))

	select {
	case <-c.Done():
		t.Fatal("cache stopped before Close")
	default:
	}

	a.Close()
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("Close did not stop the injected cache")
	}
}

func TestFetchDeals_CachedResultIsACopy(t *testing.T) {
	t.Parallel()

	slick := &stubAdapter{
		name:  domain.SourceSlickdeals,
		deals: []domain.RawDeal{raw(domain.SourceSlickdeals, "a", "Nintendo Switch OLED Console", 315, 350)},
	}
	a := newAggregator(t, slick)

	first, err := a.FetchDeals(context.Background(), aggregator.Options{})
	require.NoError(t, err)
	first.Deals[0].Title = "mutated"
	first.Sources[0].Count = 99

	second, err := a.FetchDeals(context.Background(), aggregator.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Nintendo Switch OLED Console", second.Deals[0].Title)
	assert.Equal(t, 1, second.Sources[0].Count)
}

func TestFetchDeals_PartialFailure(t *testing.T) {
	t.Parallel()

	slick := &stubAdapter{
		name:  domain.SourceSlickdeals,
		deals: []domain.RawDeal{raw(domain.SourceSlickdeals, "a", "Nintendo Switch OLED Console", 315, 350)},
	}
	news := &stubAdapter{name: domain.SourceDealnews, err: "dealnews feed error (status 503)"}
	a := newAggregator(t, slick, news)

	res, err := a.FetchDeals(context.Background(), aggregator.Options{
		Sources: []domain.Source{domain.SourceDealnews, domain.SourceSlickdeals},
	})
	require.NoError(t, err)
	require.Len(t, res.Deals, 1)

	require.Len(t, res.Sources, 2)
	assert.Equal(t, domain.SourceDealnews, res.Sources[0].Source, "statuses follow request order")
	assert.False(t, res.Sources[0].Success)
	assert.Equal(t, "dealnews feed error (status 503)", res.Sources[0].Error)
	assert.Zero(t, res.Sources[0].Count)

	assert.Equal(t, domain.SourceSlickdeals, res.Sources[1].Source)
	assert.True(t, res.Sources[1].Success)
	assert.Equal(t, 1, res.Sources[1].Count)
}

func TestFetchDeals_AllSourcesFail(t *testing.T) {
	t.Parallel()

	slick := &stubAdapter{name: domain.SourceSlickdeals, err: "boom"}
	a := newAggregator(t, slick)

	res, err := a.FetchDeals(context.Background(), aggregator.Options{})
	require.NoError(t, err)
	assert.NotNil(t, res.Deals)
	assert.Empty(t, res.Deals)
	require.Len(t, res.Sources, 1)
	assert.False(t, res.Sources[0].Success)
}

func TestFetchDeals_AdapterPanicBecomesFailure(t *testing.T) {
	t.Parallel()

	slick := &stubAdapter{
		name:  domain.SourceSlickdeals,
		deals: []domain.RawDeal{raw(domain.SourceSlickdeals, "a", "Nintendo Switch OLED Console", 315, 350)},
	}
	news := &stubAdapter{name: domain.SourceDealnews, panicMsg: "nil map"}
	a := newAggregator(t, slick, news)

	res, err := a.FetchDeals(context.Background(), aggregator.Options{
		Sources: []domain.Source{domain.SourceSlickdeals, domain.SourceDealnews},
	})
	require.NoError(t, err)
	assert.Len(t, res.Deals, 1)
	require.Len(t, res.Sources, 2)
	assert.False(t, res.Sources[1].Success)
	assert.Contains(t, res.Sources[1].Error, "adapter panicked: nil map")
}

func TestFetchDeals_QueriesSourcesConcurrently(t *testing.T) {
	t.Parallel()

	var started sync.WaitGroup
	started.Add(2)
	barrier := func(ctx context.Context) error {
		started.Done()
		done := make(chan struct{})
		go func() {
			started.Wait()
			close(done)
		}()
		select {
		case <-done:
			return nil
		case <-time.After(5 * time.Second):
			return errors.New("sources were not queried concurrently")
		}
	}

	slick := &stubAdapter{name: domain.SourceSlickdeals, block: barrier}
	news := &stubAdapter{name: domain.SourceDealnews, block: barrier}
	a := newAggregator(t, slick, news)

	res, err := a.FetchDeals(context.Background(), aggregator.Options{
		Sources: []domain.Source{domain.SourceSlickdeals, domain.SourceDealnews},
	})
	require.NoError(t, err)
	for _, s := range res.Sources {
		assert.True(t, s.Success, s.Error)
	}
}

func TestFetchDeals_DeduplicatesAcrossSources(t *testing.T) {
	t.Parallel()

	slick := &stubAdapter{
		name:  domain.SourceSlickdeals,
		deals: []domain.RawDeal{raw(domain.SourceSlickdeals, "s1", "Apple MacBook Air M2 13in", 899, 1099)},
	}
	cl := &stubAdapter{
		name:  domain.SourceCraigslist,
		deals: []domain.RawDeal{raw(domain.SourceCraigslist, "c1", "Apple MacBook Air M2 13in", 850, 0)},
	}
	a := newAggregator(t, slick, cl)

	res, err := a.FetchDeals(context.Background(), aggregator.Options{
		Sources: []domain.Source{domain.SourceSlickdeals, domain.SourceCraigslist},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalFetched)
	assert.Equal(t, 1, res.TotalAfterDedup)
	require.Len(t, res.Deals, 1)
	assert.InDelta(t, 850.0, res.Deals[0].CurrentPrice, 0.001)
	assert.Equal(t, domain.SourceCraigslist, res.Deals[0].Source)
}

func TestFetchDeals_SourceSelection(t *testing.T) {
	t.Parallel()

	slick := &stubAdapter{name: domain.SourceSlickdeals}
	bay := &stubAdapter{name: domain.SourceEbay}
	a := newAggregator(t, slick, bay)
	ctx := context.Background()

	res, err := a.FetchDeals(ctx, aggregator.Options{})
	require.NoError(t, err)
	require.Len(t, res.Sources, 1, "eBay is not a default source")
	assert.Equal(t, domain.SourceSlickdeals, res.Sources[0].Source)
	assert.Zero(t, bay.calls.Load())

	res, err = a.FetchDeals(ctx, aggregator.Options{
		Sources:     []domain.Source{domain.SourceEbay, domain.SourceEbay},
		BypassCache: true,
	})
	require.NoError(t, err)
	assert.Len(t, res.Sources, 1, "repeated names collapse")
	assert.Equal(t, int32(1), bay.calls.Load())

	_, err = a.FetchDeals(ctx, aggregator.Options{Sources: []domain.Source{domain.SourceDealnews}})
	require.ErrorIs(t, err, aggregator.ErrUnknownSource)
	assert.Contains(t, err.Error(), "dealnews")
}

func TestFetchDeals_PassesQuery(t *testing.T) {
	t.Parallel()

	cl := &stubAdapter{name: domain.SourceCraigslist}
	a := newAggregator(t, cl)

	_, err := a.FetchDeals(context.Background(), aggregator.Options{
		Category: domain.CategoryPhones,
		City:     "seattle",
		Limit:    7,
	})
	require.NoError(t, err)

	q := cl.lastQuery()
	assert.Equal(t, domain.CategoryPhones, q.Category)
	assert.Equal(t, "seattle", q.City)
	assert.Empty(t, q.Text)
}

func TestSearch_FiltersByQuery(t *testing.T) {
	t.Parallel()

	charger := raw(domain.SourceSlickdeals, "c", "Anker MagSafe Charger", 30, 60)
	charger.Description = "Works with iPhone 12 and later"

	slick := &stubAdapter{
		name: domain.SourceSlickdeals,
		deals: []domain.RawDeal{
			raw(domain.SourceSlickdeals, "i", "Apple iPhone 14 128GB", 599, 799),
			charger,
			raw(domain.SourceSlickdeals, "g", "Samsung Galaxy S23 Ultra", 899, 1199),
		},
	}
	a := newAggregator(t, slick)

	res, err := a.Search(context.Background(), "  iPhone ", aggregator.Options{})
	require.NoError(t, err)
	assert.Equal(t, "iPhone", res.Query)
	assert.Equal(t, "iPhone", slick.lastQuery().Text)
	assert.Equal(t, aggregator.DefaultSearchLimit, slick.lastQuery().Limit)
	assert.Equal(t, 3, res.TotalAfterDedup, "counted before the text filter")

	ids := make([]string, 0, len(res.Deals))
	for _, d := range res.Deals {
		ids = append(ids, d.SourceID)
	}
	assert.ElementsMatch(t, []string{"i", "c"}, ids)

	again, err := a.Search(context.Background(), "IPHONE", aggregator.Options{})
	require.NoError(t, err)
	assert.True(t, again.Cached, "search keys are case-insensitive")
	assert.Equal(t, int32(1), slick.calls.Load())
}

func TestSearch_EmptyQuery(t *testing.T) {
	t.Parallel()

	slick := &stubAdapter{name: domain.SourceSlickdeals}
	a := newAggregator(t, slick)

	_, err := a.Search(context.Background(), "   ", aggregator.Options{})
	require.ErrorIs(t, err, source.ErrEmptyQuery)
	assert.Zero(t, slick.calls.Load())
}

func hotRaw() domain.RawDeal {
	d := raw(domain.SourceSlickdeals, "hot", "LG C3 65in OLED TV", 1000, 2500)
	rating, reviews := 4.9, 2000
	d.SellerRating = &rating
	d.SellerReviews = &reviews
	d.SellerVerified = true
	d.IsAllTimeLow = true
	d.Upvotes = 150
	return d
}

func TestGetHotDeals(t *testing.T) {
	t.Parallel()

	slick := &stubAdapter{
		name: domain.SourceSlickdeals,
		deals: []domain.RawDeal{
			raw(domain.SourceSlickdeals, "meh", "USB-C Cable 6ft", 9.99, 0),
			hotRaw(),
		},
	}
	cl := &stubAdapter{
		name:  domain.SourceCraigslist,
		deals: []domain.RawDeal{hotRaw()},
	}
	a := newAggregator(t, slick, cl)
	ctx := context.Background()

	res, err := a.GetHotDeals(ctx, 0)
	require.NoError(t, err)
	require.Len(t, res.Deals, 1)
	assert.Equal(t, "hot", res.Deals[0].SourceID)
	assert.GreaterOrEqual(t, res.Deals[0].Overall(), aggregator.DefaultHotThreshold)
	assert.Zero(t, cl.calls.Load(), "only curated feeds are polled")
	require.Len(t, res.Sources, 1)
	assert.Equal(t, domain.SourceSlickdeals, res.Sources[0].Source)

	cached, err := a.GetHotDeals(ctx, 0)
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, int32(1), slick.calls.Load())

	fresh, err := a.RefreshHotDeals(ctx, 0)
	require.NoError(t, err)
	assert.False(t, fresh.Cached)
	assert.Equal(t, int32(2), slick.calls.Load())
}

func TestGetHotDeals_Threshold(t *testing.T) {
	t.Parallel()

	slick := &stubAdapter{
		name:  domain.SourceSlickdeals,
		deals: []domain.RawDeal{raw(domain.SourceSlickdeals, "meh", "USB-C Cable 6ft", 9.99, 0)},
	}
	a := aggregator.New(source.NewRegistry(slick),
		aggregator.WithHotThreshold(50),
		aggregator.WithLogger(logger.Discard()),
		aggregator.WithNowFunc(func() time.Time { return fixedNow }),
	)
	t.Cleanup(a.Close)

	res, err := a.GetHotDeals(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, res.Deals, 1)
}

func TestSourceAdministration(t *testing.T) {
	t.Parallel()

	bay := mocks.NewMockAdapter(t)
	bay.EXPECT().Name().Return(domain.SourceEbay)
	bay.EXPECT().Configured().Return(false).Once()
	bay.EXPECT().ResetDaily().Return().Once()
	bay.EXPECT().Stats().Return(fetch.Stats{
		Source:        domain.SourceEbay,
		Enabled:       true,
		RequestsToday: 12,
		DailyLimit:    5000,
		Remaining:     4988,
	}).Once()

	a := newAggregator(t, bay)

	ok, err := a.IsSourceConfigured(domain.SourceEbay)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = a.IsSourceConfigured(domain.SourceDealnews)
	require.ErrorIs(t, err, aggregator.ErrUnknownSource)

	stats := a.GetSourceStats()
	require.Len(t, stats, 1)
	assert.Equal(t, int64(4988), stats[0].Remaining)

	a.ResetQuotas()
}
