package domain

import "time"

// RateLimitInfo reports an adapter's quota state after a fetch.
type RateLimitInfo struct {
	Remaining int64     `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// FetchResult is what a source adapter returns for one fetch or search.
// A failed fetch has Success=false, no deals, and an Error message.
type FetchResult struct {
	Source    Source        `json:"source"`
	Deals     []RawDeal     `json:"-"`
	FetchedAt time.Time     `json:"fetched_at"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	RateLimit RateLimitInfo `json:"rate_limit"`
}

// SourceStatus summarizes one source's contribution to an aggregation.
type SourceStatus struct {
	Source  Source `json:"source"`
	Count   int    `json:"count"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AggregatorResult is the response of every aggregator query.
type AggregatorResult struct {
	Deals           []NormalizedDeal `json:"deals"`
	Sources         []SourceStatus   `json:"sources"`
	TotalFetched    int              `json:"total_fetched"`
	TotalAfterDedup int              `json:"total_after_dedup"`
	FetchTime       time.Duration    `json:"fetch_time"`
	Cached          bool             `json:"cached"`
	Query           string           `json:"query,omitempty"`
	FetchedAt       time.Time        `json:"fetched_at"`
}

// RateLimit holds an adapter's request ceilings.
type RateLimit struct {
	RequestsPerMinute int   `json:"requests_per_minute" yaml:"requests_per_minute"`
	RequestsPerDay    int64 `json:"requests_per_day"    yaml:"requests_per_day"`
}

// SourceConfig is static per-adapter configuration.
type SourceConfig struct {
	Name          Source        `json:"name"`
	Enabled       bool          `json:"enabled"`
	APIKey        string        `json:"-"`
	RateLimit     RateLimit     `json:"rate_limit"`
	Categories    []Category    `json:"categories,omitempty"`
	FetchInterval time.Duration `json:"fetch_interval"`
	Priority      int           `json:"priority"`
}

// FeaturedDeal is a previously persisted hot deal.
type FeaturedDeal struct {
	ID            string     `json:"id"                    db:"id"`
	Source        Source     `json:"source"                db:"source"`
	SourceID      string     `json:"source_id"             db:"source_id"`
	Title         string     `json:"title"                 db:"title"`
	SourceURL     string     `json:"source_url"            db:"source_url"`
	ImageURL      string     `json:"image_url,omitempty"   db:"image_url"`
	CurrentPrice  float64    `json:"current_price"         db:"current_price"`
	OriginalPrice float64    `json:"original_price"        db:"original_price"`
	Discount      int        `json:"discount"              db:"discount"`
	Category      Category   `json:"category"              db:"category"`
	Condition     Condition  `json:"condition"             db:"item_condition"`
	Score         int        `json:"score"                 db:"score"`
	Verdict       string     `json:"verdict"               db:"verdict"`
	Reasons       []string   `json:"reasons"               db:"reasons"`
	PostedAt      time.Time  `json:"posted_at"             db:"posted_at"`
	FirstSeenAt   time.Time  `json:"first_seen_at"         db:"first_seen_at"`
	UpdatedAt     time.Time  `json:"updated_at"            db:"updated_at"`
	NotifiedAt    *time.Time `json:"notified_at,omitempty" db:"notified_at"`
}
