package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBrowseURL   = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	defaultMarketplace = "EBAY_US"
	defaultSearchLimit = 50
	maxErrorBody       = 512
)

// APIError is a non-200 answer from the Browse API. Body holds at most
// maxErrorBody bytes of the response; Message is the first error message
// eBay reported, when the body was its JSON error envelope.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = e.Body
	}
	return fmt.Sprintf("eBay API error (status %d): %s", e.StatusCode, detail)
}

// Retryable reports whether the same request may succeed later. A 401 is
// retryable because the rejected token has already been dropped.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusUnauthorized ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}

// invalidator is implemented by token providers that cache tokens.
type invalidator interface {
	Invalidate()
}

// BrowseClient is the SearchClient backed by the Browse API. It makes one
// HTTP call per Search; pacing, quota and retries belong to Adapter.
type BrowseClient struct {
	tokens      TokenProvider
	endpoint    string
	marketplace string
	hc          *http.Client
}

// BrowseOption configures the BrowseClient.
type BrowseOption func(*BrowseClient)

// WithBrowseURL points the client at another item_summary endpoint.
func WithBrowseURL(u string) BrowseOption {
	return func(c *BrowseClient) { c.endpoint = u }
}

// WithMarketplace sets the X-EBAY-C-MARKETPLACE-ID header.
func WithMarketplace(m string) BrowseOption {
	return func(c *BrowseClient) { c.marketplace = m }
}

// WithBrowseHTTPClient replaces the HTTP client.
func WithBrowseHTTPClient(hc *http.Client) BrowseOption {
	return func(c *BrowseClient) { c.hc = hc }
}

// NewBrowseClient creates a Browse API client.
func NewBrowseClient(tokens TokenProvider, opts ...BrowseOption) *BrowseClient {
	c := &BrowseClient{
		tokens:      tokens,
		endpoint:    defaultBrowseURL,
		marketplace: defaultMarketplace,
		hc:          &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchPage struct {
	ItemSummaries []ItemSummary `json:"itemSummaries"`
	Total         int           `json:"total"`
	Offset        int           `json:"offset"`
	Limit         int           `json:"limit"`
	Next          string        `json:"next"`
}

type errorEnvelope struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Search implements SearchClient.
func (c *BrowseClient) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(req), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("X-EBAY-C-MARKETPLACE-ID", c.marketplace)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if inv, ok := c.tokens.(invalidator); ok && resp.StatusCode == http.StatusUnauthorized {
			inv.Invalidate()
		}
		return nil, readAPIError(resp)
	}

	var page searchPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &SearchResponse{
		Items:   page.ItemSummaries,
		Total:   page.Total,
		Offset:  page.Offset,
		Limit:   page.Limit,
		HasMore: page.Next != "",
	}, nil
}

func readAPIError(resp *http.Response) *APIError {
	//nolint:errcheck // a short or empty body still yields a usable error
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	var env errorEnvelope
	if json.Unmarshal(raw, &env) == nil && len(env.Errors) > 0 {
		apiErr.Message = env.Errors[0].Message
	}
	return apiErr
}

func (c *BrowseClient) searchURL(req SearchRequest) string {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	v := url.Values{
		"q":     {req.Query},
		"limit": {strconv.Itoa(limit)},
	}
	if req.CategoryID != "" {
		v.Set("category_ids", req.CategoryID)
	}
	if req.Offset > 0 {
		v.Set("offset", strconv.Itoa(req.Offset))
	}
	if req.Sort != "" {
		v.Set("sort", req.Sort)
	}
	if f := req.Filter.String(); f != "" {
		v.Set("filter", f)
	}
	return c.endpoint + "?" + v.Encode()
}
