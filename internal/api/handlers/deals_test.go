package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/deal-aggregator/internal/aggregator"
	"github.com/donaldgifford/deal-aggregator/internal/api/handlers"
	"github.com/donaldgifford/deal-aggregator/internal/api/handlers/mocks"
	"github.com/donaldgifford/deal-aggregator/internal/source"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

func testResult(titles ...string) *domain.AggregatorResult {
	res := &domain.AggregatorResult{
		Sources: []domain.SourceStatus{
			{Source: domain.SourceSlickdeals, Count: len(titles), Success: true},
			{Source: domain.SourceCraigslist, Success: false, Error: "HTTP 503"},
		},
		TotalFetched:    len(titles),
		TotalAfterDedup: len(titles),
	}
	for i, title := range titles {
		res.Deals = append(res.Deals, domain.NormalizedDeal{
			ID:            fmt.Sprintf("deal-%d", i),
			Source:        domain.SourceSlickdeals,
			Title:         title,
			CurrentPrice:  99,
			OriginalPrice: 199,
			Discount:      50,
			Category:      domain.CategoryAudio,
		})
	}
	return res
}

func decodeResult(t *testing.T, body []byte) domain.AggregatorResult {
	t.Helper()
	var res domain.AggregatorResult
	require.NoError(t, json.Unmarshal(body, &res))
	return res
}

func TestListDeals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantOpts   *aggregator.Options
		result     *domain.AggregatorResult
		err        error
		wantStatus int
		wantDeals  int
	}{
		{
			name:       "defaults",
			path:       "/api/v1/deals",
			wantOpts:   &aggregator.Options{},
			result:     testResult("AirPods Pro", "Echo Dot"),
			wantStatus: http.StatusOK,
			wantDeals:  2,
		},
		{
			name: "filters are passed through",
			path: "/api/v1/deals?sources=Slickdeals,craigslist&category=audio&city=sfbay&limit=5&fresh=true",
			wantOpts: &aggregator.Options{
				Sources:     []domain.Source{domain.SourceSlickdeals, domain.SourceCraigslist},
				Category:    domain.CategoryAudio,
				City:        "sfbay",
				Limit:       5,
				BypassCache: true,
			},
			result:     testResult("AirPods Pro"),
			wantStatus: http.StatusOK,
			wantDeals:  1,
		},
		{
			name:       "invalid source name",
			path:       "/api/v1/deals?sources=amazon",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid category",
			path:       "/api/v1/deals?category=furniture",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unregistered source",
			path:       "/api/v1/deals?sources=ebay",
			wantOpts:   &aggregator.Options{Sources: []domain.Source{domain.SourceEbay}},
			err:        fmt.Errorf("%w: ebay", aggregator.ErrUnknownSource),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unexpected error",
			path:       "/api/v1/deals",
			wantOpts:   &aggregator.Options{},
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mf := mocks.NewMockDealFinder(t)
			if tt.wantOpts != nil {
				mf.EXPECT().
					FetchDeals(mock.Anything, *tt.wantOpts).
					Return(tt.result, tt.err).
					Once()
			}

			_, api := humatest.New(t)
			handlers.RegisterDealRoutes(api, handlers.NewDealsHandler(mf))

			resp := api.Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())

			if tt.wantStatus == http.StatusOK {
				res := decodeResult(t, resp.Body.Bytes())
				assert.Len(t, res.Deals, tt.wantDeals)
				require.Len(t, res.Sources, 2)
				assert.False(t, res.Sources[1].Success)
			}
		})
	}
}

func TestSearchDeals(t *testing.T) {
	t.Parallel()

	t.Run("passes query and options", func(t *testing.T) {
		t.Parallel()

		mf := mocks.NewMockDealFinder(t)
		mf.EXPECT().
			Search(mock.Anything, "airpods", aggregator.Options{Category: domain.CategoryAudio}).
			Return(testResult("AirPods Pro 2"), nil).
			Once()

		_, api := humatest.New(t)
		handlers.RegisterDealRoutes(api, handlers.NewDealsHandler(mf))

		resp := api.Get("/api/v1/deals/search?q=airpods&category=audio")
		require.Equal(t, http.StatusOK, resp.Code)
		res := decodeResult(t, resp.Body.Bytes())
		require.Len(t, res.Deals, 1)
		assert.Equal(t, "AirPods Pro 2", res.Deals[0].Title)
	})

	t.Run("missing query is rejected", func(t *testing.T) {
		t.Parallel()

		mf := mocks.NewMockDealFinder(t)
		_, api := humatest.New(t)
		handlers.RegisterDealRoutes(api, handlers.NewDealsHandler(mf))

		resp := api.Get("/api/v1/deals/search")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("blank query maps to 400", func(t *testing.T) {
		t.Parallel()

		mf := mocks.NewMockDealFinder(t)
		mf.EXPECT().
			Search(mock.Anything, "   ", aggregator.Options{}).
			Return(nil, source.ErrEmptyQuery).
			Once()

		_, api := humatest.New(t)
		handlers.RegisterDealRoutes(api, handlers.NewDealsHandler(mf))

		resp := api.Get("/api/v1/deals/search?q=%20%20%20")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestHotDeals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantLimit  int
		err        error
		wantStatus int
	}{
		{name: "default limit", path: "/api/v1/deals/hot", wantLimit: 0, wantStatus: http.StatusOK},
		{name: "explicit limit", path: "/api/v1/deals/hot?limit=5", wantLimit: 5, wantStatus: http.StatusOK},
		{
			name:       "deadline exceeded",
			path:       "/api/v1/deals/hot",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mf := mocks.NewMockDealFinder(t)
			var res *domain.AggregatorResult
			if tt.err == nil {
				res = testResult("LG C3 OLED")
			}
			mf.EXPECT().GetHotDeals(mock.Anything, tt.wantLimit).Return(res, tt.err).Once()

			_, api := humatest.New(t)
			handlers.RegisterDealRoutes(api, handlers.NewDealsHandler(mf))

			resp := api.Get(tt.path)
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}
