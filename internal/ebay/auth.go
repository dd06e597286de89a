package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultTokenURL = "https://api.ebay.com/identity/v1/oauth2/token" //nolint:gosec // not a credential
	defaultScope    = "https://api.ebay.com/oauth/api_scope"

	// A token this close to expiry is treated as already expired.
	expirySkew = time.Minute

	maxTokenBody = 64 << 10
)

// TokenError is returned when the identity endpoint rejects a grant.
type TokenError struct {
	StatusCode  int
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *TokenError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("ebay token grant rejected (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("ebay token grant rejected (status %d): %s: %s", e.StatusCode, e.Code, e.Description)
}

type cachedGrant struct {
	accessToken string
	expiresAt   time.Time
}

func (g cachedGrant) usable(now time.Time) bool {
	return g.accessToken != "" && now.Before(g.expiresAt.Add(-expirySkew))
}

// OAuthTokenProvider obtains application tokens through the client
// credentials grant and reuses one until it is about to expire. Concurrent
// callers share a single in-flight grant.
type OAuthTokenProvider struct {
	appID    string
	certID   string
	tokenURL string
	scopes   string
	client   *http.Client
	nowFunc  func() time.Time

	mu    sync.Mutex
	grant cachedGrant
}

// OAuthOption configures the OAuthTokenProvider.
type OAuthOption func(*OAuthTokenProvider)

// WithTokenURL points the provider at another identity endpoint.
func WithTokenURL(u string) OAuthOption {
	return func(p *OAuthTokenProvider) { p.tokenURL = u }
}

// WithHTTPClient replaces the HTTP client used for grants.
func WithHTTPClient(c *http.Client) OAuthOption {
	return func(p *OAuthTokenProvider) { p.client = c }
}

// WithScopes sets the space separated scopes requested with each grant.
func WithScopes(scopes string) OAuthOption {
	return func(p *OAuthTokenProvider) { p.scopes = scopes }
}

// WithNowFunc overrides the clock.
func WithNowFunc(f func() time.Time) OAuthOption {
	return func(p *OAuthTokenProvider) { p.nowFunc = f }
}

// NewOAuthTokenProvider creates a token provider for one application keyset.
func NewOAuthTokenProvider(appID, certID string, opts ...OAuthOption) *OAuthTokenProvider {
	p := &OAuthTokenProvider{
		appID:    appID,
		certID:   certID,
		tokenURL: defaultTokenURL,
		scopes:   defaultScope,
		client:   &http.Client{Timeout: 10 * time.Second},
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Token returns the cached access token or requests a fresh grant.
func (p *OAuthTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.grant.usable(p.nowFunc()) {
		return p.grant.accessToken, nil
	}

	g, err := p.requestGrant(ctx)
	if err != nil {
		return "", err
	}
	p.grant = g
	return g.accessToken, nil
}

// Invalidate forgets the cached token, typically after the Browse API
// answered 401 with it.
func (p *OAuthTokenProvider) Invalidate() {
	p.mu.Lock()
	p.grant = cachedGrant{}
	p.mu.Unlock()
}

// Expiry reports when the cached token lapses. Zero means nothing is cached.
func (p *OAuthTokenProvider) Expiry() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.grant.expiresAt
}

func (p *OAuthTokenProvider) requestGrant(ctx context.Context) (cachedGrant, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", p.scopes)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return cachedGrant{}, fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.appID, p.certID)

	resp, err := p.client.Do(req)
	if err != nil {
		return cachedGrant{}, fmt.Errorf("requesting ebay token: %w", err)
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxTokenBody))

	if resp.StatusCode != http.StatusOK {
		tokenErr := &TokenError{StatusCode: resp.StatusCode}
		_ = dec.Decode(tokenErr) //nolint:errcheck // the status alone is enough
		return cachedGrant{}, tokenErr
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := dec.Decode(&body); err != nil {
		return cachedGrant{}, fmt.Errorf("parsing token response: %w", err)
	}
	if body.AccessToken == "" {
		return cachedGrant{}, errors.New("token response carried no access token")
	}

	return cachedGrant{
		accessToken: body.AccessToken,
		expiresAt:   p.nowFunc().Add(time.Duration(body.ExpiresIn) * time.Second),
	}, nil
}
