package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/deal-aggregator/internal/api/handlers"
	"github.com/donaldgifford/deal-aggregator/internal/store"
	storeMocks "github.com/donaldgifford/deal-aggregator/internal/store/mocks"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

func seedFeatured(t *testing.T, s *store.MemoryStore) []domain.FeaturedDeal {
	t.Helper()

	deals := []domain.FeaturedDeal{
		{Source: domain.SourceSlickdeals, SourceID: "a", Title: "Steam Deck OLED", Category: domain.CategoryGaming, Score: 91, Discount: 20, CurrentPrice: 439},
		{Source: domain.SourceDealnews, SourceID: "b", Title: "Kindle Paperwhite", Category: domain.CategoryTablets, Score: 82, Discount: 35, CurrentPrice: 104},
		{Source: domain.SourceSlickdeals, SourceID: "c", Title: "Sonos Era 100", Category: domain.CategoryAudio, Score: 77, Discount: 40, CurrentPrice: 149},
	}
	for i := range deals {
		_, err := s.UpsertFeaturedDeal(context.Background(), &deals[i])
		require.NoError(t, err)
	}
	return deals
}

func TestListFeatured(t *testing.T) {
	t.Parallel()

	ms := store.NewMemoryStore()
	seedFeatured(t, ms)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantTitles []string
		wantTotal  int
	}{
		{
			name:       "all by score",
			path:       "/api/v1/deals/featured",
			wantStatus: http.StatusOK,
			wantTitles: []string{"Steam Deck OLED", "Kindle Paperwhite", "Sonos Era 100"},
			wantTotal:  3,
		},
		{
			name:       "source filter",
			path:       "/api/v1/deals/featured?source=slickdeals",
			wantStatus: http.StatusOK,
			wantTitles: []string{"Steam Deck OLED", "Sonos Era 100"},
			wantTotal:  2,
		},
		{
			name:       "min score and discount order",
			path:       "/api/v1/deals/featured?min_score=80&order_by=discount",
			wantStatus: http.StatusOK,
			wantTitles: []string{"Kindle Paperwhite", "Steam Deck OLED"},
			wantTotal:  2,
		},
		{
			name:       "category filter",
			path:       "/api/v1/deals/featured?category=audio",
			wantStatus: http.StatusOK,
			wantTitles: []string{"Sonos Era 100"},
			wantTotal:  1,
		},
		{
			name:       "pagination",
			path:       "/api/v1/deals/featured?limit=1&offset=1",
			wantStatus: http.StatusOK,
			wantTitles: []string{"Kindle Paperwhite"},
			wantTotal:  3,
		},
		{
			name:       "future since filters everything",
			path:       "/api/v1/deals/featured?since=" + time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
			wantStatus: http.StatusOK,
			wantTitles: []string{},
			wantTotal:  0,
		},
		{
			name:       "invalid source",
			path:       "/api/v1/deals/featured?source=amazon",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "score out of range",
			path:       "/api/v1/deals/featured?min_score=101",
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterFeaturedRoutes(api, handlers.NewFeaturedHandler(ms))

			resp := api.Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body struct {
				Deals []domain.FeaturedDeal `json:"deals"`
				Total int                   `json:"total"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.Equal(t, tt.wantTotal, body.Total)

			titles := make([]string, 0, len(body.Deals))
			for _, d := range body.Deals {
				titles = append(titles, d.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestListFeatured_StoreError(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().
		ListFeaturedDeals(mock.Anything, mock.Anything).
		Return(nil, 0, errors.New("connection refused")).
		Once()

	_, api := humatest.New(t)
	handlers.RegisterFeaturedRoutes(api, handlers.NewFeaturedHandler(ms))

	resp := api.Get("/api/v1/deals/featured")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestGetFeatured(t *testing.T) {
	t.Parallel()

	ms := store.NewMemoryStore()
	deals := seedFeatured(t, ms)

	_, api := humatest.New(t)
	handlers.RegisterFeaturedRoutes(api, handlers.NewFeaturedHandler(ms))

	resp := api.Get("/api/v1/deals/featured/" + deals[1].ID)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Kindle Paperwhite")

	resp = api.Get("/api/v1/deals/featured/00000000-0000-0000-0000-000000000000")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
