package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/deal-aggregator/internal/aggregator"
	"github.com/donaldgifford/deal-aggregator/internal/api/handlers"
	"github.com/donaldgifford/deal-aggregator/internal/api/handlers/mocks"
	"github.com/donaldgifford/deal-aggregator/internal/cache"
	"github.com/donaldgifford/deal-aggregator/internal/fetch"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

func TestListSources(t *testing.T) {
	t.Parallel()

	reset := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	ma := mocks.NewMockSourceAdmin(t)
	ma.EXPECT().GetSourceStats().Return([]fetch.Stats{
		{Source: domain.SourceEbay, Enabled: true, RequestsToday: 12, DailyLimit: 5000, Remaining: 4988, ResetAt: reset},
		{Source: domain.SourceSlickdeals, Enabled: true, RequestsToday: 3, DailyLimit: 0, Remaining: -1, ResetAt: reset},
	}).Once()
	ma.EXPECT().IsSourceConfigured(domain.SourceEbay).Return(false, nil).Once()
	ma.EXPECT().IsSourceConfigured(domain.SourceSlickdeals).Return(true, nil).Once()

	_, api := humatest.New(t)
	handlers.RegisterSourceRoutes(api, handlers.NewSourcesHandler(ma))

	resp := api.Get("/api/v1/sources")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Sources []struct {
			Source        string `json:"source"`
			Name          string `json:"name"`
			Configured    bool   `json:"configured"`
			RequestsToday int64  `json:"requests_today"`
			Remaining     int64  `json:"remaining"`
		} `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Sources, 2)

	assert.Equal(t, "ebay", body.Sources[0].Source)
	assert.Equal(t, "eBay", body.Sources[0].Name)
	assert.False(t, body.Sources[0].Configured)
	assert.Equal(t, int64(4988), body.Sources[0].Remaining)

	assert.Equal(t, "Slickdeals", body.Sources[1].Name)
	assert.True(t, body.Sources[1].Configured)
	assert.Equal(t, int64(-1), body.Sources[1].Remaining)
}

func TestSourceConfigured(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		source     string
		configured bool
		err        error
		wantStatus int
	}{
		{name: "configured source", source: "slickdeals", configured: true, wantStatus: http.StatusOK},
		{name: "missing credentials", source: "ebay", configured: false, wantStatus: http.StatusOK},
		{
			name:       "unknown source",
			source:     "amazon",
			err:        fmt.Errorf("%w: amazon", aggregator.ErrUnknownSource),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ma := mocks.NewMockSourceAdmin(t)
			ma.EXPECT().
				IsSourceConfigured(domain.Source(tt.source)).
				Return(tt.configured, tt.err).
				Once()

			_, api := humatest.New(t)
			handlers.RegisterSourceRoutes(api, handlers.NewSourcesHandler(ma))

			resp := api.Get("/api/v1/sources/" + tt.source + "/configured")
			require.Equal(t, tt.wantStatus, resp.Code)

			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t,
					fmt.Sprintf(`{"source":%q,"configured":%t}`, tt.source, tt.configured),
					stripSchema(t, resp.Body.Bytes()),
				)
			}
		})
	}
}

func TestCacheEndpoints(t *testing.T) {
	t.Parallel()

	ma := mocks.NewMockSourceAdmin(t)
	ma.EXPECT().CacheStats().Return(cache.Stats{Entries: 4, Hits: 10, Misses: 3}).Twice()
	ma.EXPECT().ClearCache().Return().Once()

	_, api := humatest.New(t)
	handlers.RegisterSourceRoutes(api, handlers.NewSourcesHandler(ma))

	resp := api.Get("/api/v1/cache")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"entries":4`)

	resp = api.Delete("/api/v1/cache")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"hits":10`)
}

// stripSchema drops the $schema link huma adds to object bodies.
func stripSchema(t *testing.T, body []byte) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	delete(m, "$schema")
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return string(out)
}
