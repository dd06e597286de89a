package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/deal-aggregator/internal/aggregator"
	"github.com/donaldgifford/deal-aggregator/internal/source"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// DealFinder is the aggregator surface the deal endpoints use.
type DealFinder interface {
	FetchDeals(ctx context.Context, opts aggregator.Options) (*domain.AggregatorResult, error)
	Search(ctx context.Context, query string, opts aggregator.Options) (*domain.AggregatorResult, error)
	GetHotDeals(ctx context.Context, limit int) (*domain.AggregatorResult, error)
}

// DealsHandler handles live deal listing, search, and hot-deal endpoints.
type DealsHandler struct {
	finder DealFinder
}

// NewDealsHandler creates a new DealsHandler.
func NewDealsHandler(f DealFinder) *DealsHandler {
	return &DealsHandler{finder: f}
}

// --- Input/Output types ---

// DealFilterInput carries the filters shared by listing and search.
type DealFilterInput struct {
	Sources  []string `query:"sources"  doc:"Sources to query; defaults to all keyless sources" example:"slickdeals,dealnews"`
	Category string   `query:"category" doc:"Filter by category"                                enum:"laptops,phones,tablets,tvs,audio,gaming,cameras,wearables,smart_home,computers,storage,accessories,other,"`
	City     string   `query:"city"     doc:"Classifieds city subdomain"                        example:"sfbay"`
	Limit    int      `query:"limit"    doc:"Number of results"                                 minimum:"0" maximum:"500"`
	Fresh    bool     `query:"fresh"    doc:"Bypass the result cache"`
}

// ListDealsInput is the input for listing current deals.
type ListDealsInput struct {
	DealFilterInput
}

// SearchDealsInput is the input for searching deals.
type SearchDealsInput struct {
	Query string `query:"q" required:"true" minLength:"1" doc:"Search text" example:"airpods pro"`
	DealFilterInput
}

// HotDealsInput is the input for the hot-deal list.
type HotDealsInput struct {
	Limit int `query:"limit" doc:"Number of results (default 20)" minimum:"0" maximum:"100"`
}

// DealsOutput is the response for every live deal query.
type DealsOutput struct {
	Body domain.AggregatorResult
}

// --- Handlers ---

// ListDeals returns current deals from the selected sources, ranked by score.
func (h *DealsHandler) ListDeals(ctx context.Context, input *ListDealsInput) (*DealsOutput, error) {
	opts, err := input.options()
	if err != nil {
		return nil, err
	}

	res, err := h.finder.FetchDeals(ctx, opts)
	if err != nil {
		return nil, aggregatorError(err)
	}
	return &DealsOutput{Body: *res}, nil
}

// SearchDeals runs a text search across the selected sources.
func (h *DealsHandler) SearchDeals(ctx context.Context, input *SearchDealsInput) (*DealsOutput, error) {
	opts, err := input.options()
	if err != nil {
		return nil, err
	}

	res, err := h.finder.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, aggregatorError(err)
	}
	return &DealsOutput{Body: *res}, nil
}

// HotDeals returns curated deals scoring above the hot threshold.
func (h *DealsHandler) HotDeals(ctx context.Context, input *HotDealsInput) (*DealsOutput, error) {
	res, err := h.finder.GetHotDeals(ctx, input.Limit)
	if err != nil {
		return nil, aggregatorError(err)
	}
	return &DealsOutput{Body: *res}, nil
}

func (in *DealFilterInput) options() (aggregator.Options, error) {
	opts := aggregator.Options{
		Category:    domain.Category(in.Category),
		City:        strings.TrimSpace(in.City),
		Limit:       in.Limit,
		BypassCache: in.Fresh,
	}
	for _, raw := range in.Sources {
		name := domain.Source(strings.ToLower(strings.TrimSpace(raw)))
		if name == "" {
			continue
		}
		if !name.Valid() {
			return opts, huma.Error400BadRequest("unknown source: " + raw)
		}
		opts.Sources = append(opts.Sources, name)
	}
	return opts, nil
}

// aggregatorError maps aggregator errors to HTTP errors.
func aggregatorError(err error) error {
	switch {
	case errors.Is(err, aggregator.ErrUnknownSource), errors.Is(err, source.ErrEmptyQuery):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return huma.Error503ServiceUnavailable("aggregation interrupted: " + err.Error())
	default:
		return huma.Error500InternalServerError("aggregation failed: " + err.Error())
	}
}

// RegisterDealRoutes registers live deal endpoints with the Huma API.
func RegisterDealRoutes(api huma.API, h *DealsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-deals",
		Method:      http.MethodGet,
		Path:        "/api/v1/deals",
		Summary:     "List current deals",
		Description: "Fetches deals from the selected sources concurrently, then deduplicates and ranks them by score. Failed sources are reported per source without failing the request.",
		Tags:        []string{"deals"},
		Errors:      []int{http.StatusBadRequest},
	}, h.ListDeals)

	huma.Register(api, huma.Operation{
		OperationID: "search-deals",
		Method:      http.MethodGet,
		Path:        "/api/v1/deals/search",
		Summary:     "Search deals",
		Description: "Searches the selected sources and keeps deals whose title or description contains the query.",
		Tags:        []string{"deals"},
		Errors:      []int{http.StatusBadRequest},
	}, h.SearchDeals)

	huma.Register(api, huma.Operation{
		OperationID: "hot-deals",
		Method:      http.MethodGet,
		Path:        "/api/v1/deals/hot",
		Summary:     "List hot deals",
		Description: "Returns curated-feed deals whose overall score meets the hot threshold.",
		Tags:        []string{"deals"},
	}, h.HotDeals)
}
