package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/deal-aggregator/internal/feed"
	"github.com/donaldgifford/deal-aggregator/internal/fetch"
	"github.com/donaldgifford/deal-aggregator/internal/source"
	"github.com/donaldgifford/deal-aggregator/pkg/logger"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

const curatedFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
<channel>
  <title>Frontpage Deals</title>
  <item>
    <title>iPhone 14 - $799</title>
    <link>https://deals.example.com/d/1</link>
    <guid>deal-1</guid>
    <description><![CDATA[<p>Unlocked, was $999. Free shipping. 45 thumbs up, 12 comments</p><img src="https://img.example.com/1.jpg"/>]]></description>
    <pubDate>Mon, 02 Jun 2025 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Samsung 65" QLED TV $597.99 at Best Buy</title>
    <link>https://deals.example.com/d/2</link>
    <guid>deal-2</guid>
    <description>List price $899.99. Use code TVSAVE50</description>
    <media:content url="https://img.example.com/2.jpg" medium="image"/>
    <pubDate>Mon, 02 Jun 2025 09:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Mystery box, no price listed</title>
    <link>https://deals.example.com/d/3</link>
    <description>Check the site</description>
  </item>
  <item>
    <title></title>
    <link>https://deals.example.com/d/4</link>
    <description>$10</description>
  </item>
</channel>
</rss>`

func newExecutor(t *testing.T, name domain.Source, limit domain.RateLimit) *fetch.Executor {
	t.Helper()
	return fetch.NewExecutor(name, limit,
		fetch.WithBackoffBase(time.Millisecond),
		fetch.WithLogger(logger.Discard()),
	)
}

func rssServer(t *testing.T, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCuratedAdapter_FetchDeals(t *testing.T) {
	t.Parallel()

	srv := rssServer(t, curatedFeed, nil)
	a := feed.NewCuratedAdapter(domain.SourceSlickdeals, srv.URL, "",
		newExecutor(t, domain.SourceSlickdeals, domain.RateLimit{}),
		feed.WithLogger(logger.Discard()),
	)

	res := a.FetchDeals(context.Background(), domain.Query{})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, domain.SourceSlickdeals, res.Source)
	require.Len(t, res.Deals, 2, "items without a title or price are dropped")

	phone := res.Deals[0]
	assert.Equal(t, "deal-1", phone.SourceID)
	assert.Equal(t, "https://deals.example.com/d/1", phone.SourceURL)
	assert.InDelta(t, 799.0, phone.CurrentPrice, 0.001)
	require.NotNil(t, phone.OriginalPrice)
	assert.InDelta(t, 999.0, *phone.OriginalPrice, 0.001)
	assert.Equal(t, "USD", phone.Currency)
	assert.Equal(t, domain.ConditionNew, phone.Condition)
	assert.True(t, phone.FreeShipping)
	assert.Equal(t, 45, phone.Upvotes)
	assert.Equal(t, 12, phone.Comments)
	assert.Equal(t, "https://img.example.com/1.jpg", phone.ImageURL)
	require.NotNil(t, phone.PostedAt)
	assert.Equal(t, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), phone.PostedAt.UTC())

	tv := res.Deals[1]
	assert.InDelta(t, 597.99, tv.CurrentPrice, 0.001)
	require.NotNil(t, tv.OriginalPrice)
	assert.InDelta(t, 899.99, *tv.OriginalPrice, 0.001)
	assert.Equal(t, "Best Buy", tv.SellerName)
	require.NotNil(t, tv.Coupon)
	assert.Equal(t, "TVSAVE50", tv.Coupon.Code)
	assert.Equal(t, "https://img.example.com/2.jpg", tv.ImageURL)
}

func TestCuratedAdapter_FetchDeals_CategoryFilter(t *testing.T) {
	t.Parallel()

	srv := rssServer(t, curatedFeed, nil)
	a := feed.NewCuratedAdapter(domain.SourceDealnews, srv.URL, "",
		newExecutor(t, domain.SourceDealnews, domain.RateLimit{}),
		feed.WithLogger(logger.Discard()),
	)

	res := a.FetchDeals(context.Background(), domain.Query{Category: domain.CategoryTVs})
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Deals, 1)
	assert.Equal(t, "deal-2", res.Deals[0].SourceID)

	res = a.FetchDeals(context.Background(), domain.Query{Category: domain.CategoryCameras})
	require.True(t, res.Success, res.Error)
	assert.Empty(t, res.Deals)
	assert.NotNil(t, res.Deals)
}

func TestCuratedAdapter_SearchDeals_Template(t *testing.T) {
	t.Parallel()

	var gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query().Get("q"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(curatedFeed))
	}))
	t.Cleanup(srv.Close)

	a := feed.NewCuratedAdapter(domain.SourceSlickdeals, srv.URL+"/feed", srv.URL+"/search?q={query}&rss=1",
		newExecutor(t, domain.SourceSlickdeals, domain.RateLimit{}),
		feed.WithLogger(logger.Discard()),
	)

	res := a.SearchDeals(context.Background(), domain.Query{Text: "airpods pro"})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "airpods pro", gotQuery.Load())
	assert.Len(t, res.Deals, 2)
}

func TestCuratedAdapter_SearchDeals_FiltersFeed(t *testing.T) {
	t.Parallel()

	srv := rssServer(t, curatedFeed, nil)
	a := feed.NewCuratedAdapter(domain.SourceDealnews, srv.URL, "",
		newExecutor(t, domain.SourceDealnews, domain.RateLimit{}),
		feed.WithLogger(logger.Discard()),
	)

	res := a.SearchDeals(context.Background(), domain.Query{Text: "IPHONE"})
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Deals, 1)
	assert.Equal(t, "deal-1", res.Deals[0].SourceID)
}

func TestCuratedAdapter_SearchDeals_EmptyQuery(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := rssServer(t, curatedFeed, &hits)
	a := feed.NewCuratedAdapter(domain.SourceSlickdeals, srv.URL, "",
		newExecutor(t, domain.SourceSlickdeals, domain.RateLimit{}),
		feed.WithLogger(logger.Discard()),
	)

	res := a.SearchDeals(context.Background(), domain.Query{Text: "   "})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, source.ErrEmptyQuery.Error())
	assert.Zero(t, hits.Load())
}

func TestCuratedAdapter_HTTPError(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	a := feed.NewCuratedAdapter(domain.SourceSlickdeals, srv.URL, "",
		newExecutor(t, domain.SourceSlickdeals, domain.RateLimit{}),
		feed.WithLogger(logger.Discard()),
	)

	res := a.FetchDeals(context.Background(), domain.Query{})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "Slickdeals feed error (status 502)")
	assert.Empty(t, res.Deals)
	assert.Equal(t, int32(3), hits.Load(), "three attempts by default")
}

func TestCuratedAdapter_MalformedFeed(t *testing.T) {
	t.Parallel()

	srv := rssServer(t, "this is not a feed", nil)
	a := feed.NewCuratedAdapter(domain.SourceDealnews, srv.URL, "",
		fetch.NewExecutor(domain.SourceDealnews, domain.RateLimit{},
			fetch.WithMaxRetries(1),
			fetch.WithLogger(logger.Discard()),
		),
		feed.WithLogger(logger.Discard()),
	)

	res := a.FetchDeals(context.Background(), domain.Query{})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "parsing feed")
}

func TestCuratedAdapter_QuotaExhausted(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := rssServer(t, curatedFeed, &hits)
	a := feed.NewCuratedAdapter(domain.SourceSlickdeals, srv.URL, "",
		newExecutor(t, domain.SourceSlickdeals, domain.RateLimit{RequestsPerDay: 1}),
		feed.WithLogger(logger.Discard()),
	)

	first := a.FetchDeals(context.Background(), domain.Query{})
	require.True(t, first.Success, first.Error)
	assert.Equal(t, int64(0), first.RateLimit.Remaining)

	second := a.FetchDeals(context.Background(), domain.Query{})
	assert.False(t, second.Success)
	assert.Contains(t, second.Error, fetch.ErrQuotaExceeded.Error())
	assert.Equal(t, int32(1), hits.Load())

	stats := a.Stats()
	assert.Equal(t, int64(1), stats.RequestsToday)
	assert.Equal(t, int64(0), stats.Remaining)

	a.ResetDaily()
	third := a.FetchDeals(context.Background(), domain.Query{})
	assert.True(t, third.Success, third.Error)
}

func TestCuratedAdapter_Metadata(t *testing.T) {
	t.Parallel()

	a := feed.NewCuratedAdapter(domain.SourceDealnews, "http://unused", "",
		newExecutor(t, domain.SourceDealnews, domain.RateLimit{}),
	)
	assert.Equal(t, domain.SourceDealnews, a.Name())
	assert.True(t, a.Configured())
}
