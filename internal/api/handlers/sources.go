package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/deal-aggregator/internal/aggregator"
	"github.com/donaldgifford/deal-aggregator/internal/cache"
	"github.com/donaldgifford/deal-aggregator/internal/fetch"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// SourceAdmin is the aggregator surface for source and cache administration.
type SourceAdmin interface {
	GetSourceStats() []fetch.Stats
	IsSourceConfigured(name domain.Source) (bool, error)
	ClearCache()
	CacheStats() cache.Stats
}

// SourcesHandler handles source status and cache endpoints.
type SourcesHandler struct {
	admin SourceAdmin
}

// NewSourcesHandler creates a new SourcesHandler.
func NewSourcesHandler(a SourceAdmin) *SourcesHandler {
	return &SourcesHandler{admin: a}
}

// SourceStatus is one source's quota state and configuration.
type SourceStatus struct {
	fetch.Stats
	Name       string `json:"name"       doc:"Display name"                     example:"Slickdeals"`
	Configured bool   `json:"configured" doc:"Whether the source has credentials"`
}

// ListSourcesOutput is the response for the source list.
type ListSourcesOutput struct {
	Body struct {
		Sources []SourceStatus `json:"sources"`
	}
}

// SourceConfiguredInput names a source.
type SourceConfiguredInput struct {
	Name string `path:"name" doc:"Source name" example:"ebay"`
}

// SourceConfiguredOutput reports whether a source is configured.
type SourceConfiguredOutput struct {
	Body struct {
		Source     domain.Source `json:"source"`
		Configured bool          `json:"configured"`
	}
}

// CacheStatsOutput is the response for the cache endpoints.
type CacheStatsOutput struct {
	Body cache.Stats
}

// ListSources returns quota usage and configuration for every registered source.
func (h *SourcesHandler) ListSources(_ context.Context, _ *struct{}) (*ListSourcesOutput, error) {
	stats := h.admin.GetSourceStats()

	resp := &ListSourcesOutput{}
	resp.Body.Sources = make([]SourceStatus, 0, len(stats))
	for _, st := range stats {
		configured, err := h.admin.IsSourceConfigured(st.Source)
		if err != nil {
			continue
		}
		resp.Body.Sources = append(resp.Body.Sources, SourceStatus{
			Stats:      st,
			Name:       st.Source.DisplayName(),
			Configured: configured,
		})
	}
	return resp, nil
}

// SourceConfigured reports whether the named source can fetch.
func (h *SourcesHandler) SourceConfigured(
	_ context.Context,
	input *SourceConfiguredInput,
) (*SourceConfiguredOutput, error) {
	name := domain.Source(input.Name)
	configured, err := h.admin.IsSourceConfigured(name)
	if errors.Is(err, aggregator.ErrUnknownSource) {
		return nil, huma.Error400BadRequest("unknown source: " + input.Name)
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("checking source: " + err.Error())
	}

	resp := &SourceConfiguredOutput{}
	resp.Body.Source = name
	resp.Body.Configured = configured
	return resp, nil
}

// GetCacheStats returns the result cache counters.
func (h *SourcesHandler) GetCacheStats(_ context.Context, _ *struct{}) (*CacheStatsOutput, error) {
	return &CacheStatsOutput{Body: h.admin.CacheStats()}, nil
}

// ClearCache drops every cached aggregator result and returns the counters
// as they were before clearing.
func (h *SourcesHandler) ClearCache(_ context.Context, _ *struct{}) (*CacheStatsOutput, error) {
	before := h.admin.CacheStats()
	h.admin.ClearCache()
	return &CacheStatsOutput{Body: before}, nil
}

// RegisterSourceRoutes registers source and cache endpoints with the Huma API.
func RegisterSourceRoutes(api huma.API, h *SourcesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-sources",
		Method:      http.MethodGet,
		Path:        "/api/v1/sources",
		Summary:     "List sources",
		Description: "Returns daily quota usage and configuration for every registered source.",
		Tags:        []string{"sources"},
	}, h.ListSources)

	huma.Register(api, huma.Operation{
		OperationID: "source-configured",
		Method:      http.MethodGet,
		Path:        "/api/v1/sources/{name}/configured",
		Summary:     "Check source configuration",
		Description: "Reports whether the named source has the credentials it needs.",
		Tags:        []string{"sources"},
		Errors:      []int{http.StatusBadRequest},
	}, h.SourceConfigured)

	huma.Register(api, huma.Operation{
		OperationID: "get-cache-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/cache",
		Summary:     "Get cache statistics",
		Tags:        []string{"cache"},
	}, h.GetCacheStats)

	huma.Register(api, huma.Operation{
		OperationID: "clear-cache",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cache",
		Summary:     "Clear the result cache",
		Description: "Drops every cached aggregator result. The next query for each key fetches fresh data.",
		Tags:        []string{"cache"},
	}, h.ClearCache)
}
