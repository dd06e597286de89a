package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/deal-aggregator/internal/store"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// FeaturedHandler serves persisted hot deals from the featured store.
type FeaturedHandler struct {
	store store.Store
}

// NewFeaturedHandler creates a new FeaturedHandler.
func NewFeaturedHandler(s store.Store) *FeaturedHandler {
	return &FeaturedHandler{store: s}
}

// --- Input/Output types ---

// ListFeaturedInput is the input for listing featured deals.
type ListFeaturedInput struct {
	Source   string    `query:"source"    doc:"Filter by source"                enum:"ebay,slickdeals,dealnews,craigslist,"`
	Category string    `query:"category"  doc:"Filter by category"              enum:"laptops,phones,tablets,tvs,audio,gaming,cameras,wearables,smart_home,computers,storage,accessories,other,"`
	MinScore int       `query:"min_score" doc:"Minimum overall score"                                                                                                                        minimum:"0" maximum:"100"`
	Since    time.Time `query:"since"     doc:"Only deals first seen at or after this time"`
	Limit    int       `query:"limit"     doc:"Number of results (default 50)"                                                                                                               minimum:"0" maximum:"500"`
	Offset   int       `query:"offset"    doc:"Pagination offset"                                                                                                                            minimum:"0"`
	OrderBy  string    `query:"order_by"  doc:"Sort field"                      enum:"score,discount,first_seen_at,"`
}

// ListFeaturedOutput is the response for listing featured deals.
type ListFeaturedOutput struct {
	Body struct {
		Deals  []domain.FeaturedDeal `json:"deals"`
		Total  int                   `json:"total"`
		Limit  int                   `json:"limit"`
		Offset int                   `json:"offset"`
	}
}

// GetFeaturedInput is the input for getting a single featured deal.
type GetFeaturedInput struct {
	ID string `path:"id" doc:"Featured deal UUID"`
}

// GetFeaturedOutput is the response for getting a single featured deal.
type GetFeaturedOutput struct {
	Body domain.FeaturedDeal
}

// --- Handlers ---

// ListFeatured returns persisted hot deals with optional filters and pagination.
func (h *FeaturedHandler) ListFeatured(
	ctx context.Context,
	input *ListFeaturedInput,
) (*ListFeaturedOutput, error) {
	q := &store.FeaturedQuery{
		Limit:   input.Limit,
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}

	if input.Source != "" {
		src := domain.Source(input.Source)
		q.Source = &src
	}

	if input.Category != "" {
		cat := domain.Category(input.Category)
		q.Category = &cat
	}

	if input.MinScore != 0 {
		q.MinScore = &input.MinScore
	}

	if !input.Since.IsZero() {
		q.Since = &input.Since
	}

	deals, total, err := h.store.ListFeaturedDeals(ctx, q)
	if err != nil {
		return nil, huma.Error503ServiceUnavailable("featured query failed: " + err.Error())
	}

	resp := &ListFeaturedOutput{}
	resp.Body.Deals = deals
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset

	return resp, nil
}

// GetFeatured returns a single featured deal by ID.
func (h *FeaturedHandler) GetFeatured(
	ctx context.Context,
	input *GetFeaturedInput,
) (*GetFeaturedOutput, error) {
	deal, err := h.store.GetFeaturedDeal(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("featured deal not found")
	}
	if err != nil {
		return nil, huma.Error503ServiceUnavailable("featured lookup failed: " + err.Error())
	}

	return &GetFeaturedOutput{Body: *deal}, nil
}

// RegisterFeaturedRoutes registers featured deal endpoints with the Huma API.
func RegisterFeaturedRoutes(api huma.API, h *FeaturedHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-featured-deals",
		Method:      http.MethodGet,
		Path:        "/api/v1/deals/featured",
		Summary:     "List featured deals",
		Description: "Returns hot deals persisted by the scheduled refresh, with filters for source, category, score, and age.",
		Tags:        []string{"featured"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.ListFeatured)

	huma.Register(api, huma.Operation{
		OperationID: "get-featured-deal",
		Method:      http.MethodGet,
		Path:        "/api/v1/deals/featured/{id}",
		Summary:     "Get a featured deal by ID",
		Tags:        []string{"featured"},
		Errors:      []int{http.StatusNotFound, http.StatusServiceUnavailable},
	}, h.GetFeatured)
}
