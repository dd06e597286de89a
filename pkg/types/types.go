// Package domain defines the core business types for the deal aggregator.
package domain

import (
	"slices"
	"time"
)

// Source identifies an external deal source.
type Source string

// Source constants.
const (
	SourceEbay       Source = "ebay"
	SourceSlickdeals Source = "slickdeals"
	SourceDealnews   Source = "dealnews"
	SourceCraigslist Source = "craigslist"
)

// AllSources lists every known source in priority order.
var AllSources = []Source{
	SourceSlickdeals,
	SourceDealnews,
	SourceEbay,
	SourceCraigslist,
}

// CuratedSources are the editor/community curated deal feeds.
var CuratedSources = []Source{SourceSlickdeals, SourceDealnews}

// IsLocal reports whether the source is a local classifieds marketplace.
func (s Source) IsLocal() bool {
	return s == SourceCraigslist
}

// IsCurated reports whether the source is a curated deal feed.
func (s Source) IsCurated() bool {
	return slices.Contains(CuratedSources, s)
}

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	return slices.Contains(AllSources, s)
}

// DisplayName returns the human-readable source name.
func (s Source) DisplayName() string {
	switch s {
	case SourceEbay:
		return "eBay"
	case SourceSlickdeals:
		return "Slickdeals"
	case SourceDealnews:
		return "DealNews"
	case SourceCraigslist:
		return "Craigslist"
	default:
		return string(s)
	}
}

// Category represents a consumer-electronics product category.
type Category string

// Category constants.
const (
	CategoryLaptops     Category = "laptops"
	CategoryPhones      Category = "phones"
	CategoryTablets     Category = "tablets"
	CategoryTVs         Category = "tvs"
	CategoryAudio       Category = "audio"
	CategoryGaming      Category = "gaming"
	CategoryCameras     Category = "cameras"
	CategoryWearables   Category = "wearables"
	CategorySmartHome   Category = "smart_home"
	CategoryComputers   Category = "computers"
	CategoryStorage     Category = "storage"
	CategoryAccessories Category = "accessories"
	CategoryOther       Category = "other"
)

// Condition represents the normalized item condition.
type Condition string

// Condition constants.
const (
	ConditionNew         Condition = "new"
	ConditionLikeNew     Condition = "like_new"
	ConditionRefurbished Condition = "refurbished"
	ConditionUsed        Condition = "used"
	ConditionForParts    Condition = "for_parts"
)

// Label returns the human-readable condition text.
func (c Condition) Label() string {
	switch c {
	case ConditionNew:
		return "New"
	case ConditionLikeNew:
		return "Like New"
	case ConditionRefurbished:
		return "Refurbished"
	case ConditionUsed:
		return "Used"
	case ConditionForParts:
		return "For Parts/Not Working"
	default:
		return "Unknown"
	}
}

// Coupon holds an optional promo code attached to a deal.
type Coupon struct {
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

// RawDeal is a deal as fetched from one source, before normalization.
type RawDeal struct {
	SourceID    string
	Source      Source
	SourceURL   string
	Title       string
	Description string
	ImageURL    string

	CurrentPrice  float64
	OriginalPrice *float64
	Currency      string
	Condition     Condition
	Category      Category // optional hint from the source

	SellerName     string
	SellerRating   *float64 // 0-5
	SellerReviews  *int
	SellerVerified bool

	Location  string
	PostedAt  *time.Time
	ExpiresAt *time.Time

	Upvotes   int
	Downvotes int
	Comments  int

	Coupon       *Coupon
	FreeShipping bool
	IsAllTimeLow bool
}

// Seller describes who is offering a deal.
type Seller struct {
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Verified    bool    `json:"verified"`
}

// Popularity holds community engagement signals.
type Popularity struct {
	Upvotes   int     `json:"upvotes"`
	Downvotes int     `json:"downvotes"`
	Comments  int     `json:"comments"`
	Score     float64 `json:"score"`
}

// AIScore is the explainable deal-quality score.
type AIScore struct {
	Overall        int      `json:"overall"`
	PriceScore     int      `json:"price_score"`
	SellerScore    int      `json:"seller_score"`
	TimingScore    int      `json:"timing_score"`
	CommunityScore int      `json:"community_score"`
	Verdict        string   `json:"verdict"`
	Reasons        []string `json:"reasons"`
	Suspicious     bool     `json:"suspicious"`
}

// NormalizedDeal is the canonical deal record shared by all sources.
type NormalizedDeal struct {
	ID          string `json:"id"`
	SourceID    string `json:"source_id"`
	Source      Source `json:"source"`
	SourceURL   string `json:"source_url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`

	CurrentPrice  float64 `json:"current_price"`
	OriginalPrice float64 `json:"original_price"`
	Discount      int     `json:"discount"`
	Currency      string  `json:"currency"`

	Category       Category  `json:"category"`
	Condition      Condition `json:"condition"`
	ConditionLabel string    `json:"condition_label"`

	Seller     Seller     `json:"seller"`
	Popularity Popularity `json:"popularity"`

	Location  string     `json:"location,omitempty"`
	PostedAt  time.Time  `json:"posted_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	FetchedAt time.Time  `json:"fetched_at"`

	Coupon       *Coupon `json:"coupon,omitempty"`
	FreeShipping bool    `json:"free_shipping"`
	IsAllTimeLow bool    `json:"is_all_time_low"`

	AIScore *AIScore `json:"ai_score,omitempty"`
}

// Overall returns the deal's overall score, or 0 when unscored.
func (d *NormalizedDeal) Overall() int {
	if d.AIScore == nil {
		return 0
	}
	return d.AIScore.Overall
}

// Query carries the per-call parameters an adapter needs. It has no limit:
// adapters return their full fetch so cached results serve any caller.
type Query struct {
	Text     string
	Category Category
	City     string
}
