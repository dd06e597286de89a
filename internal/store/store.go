// Package store persists featured deals: hot deals the engine has seen,
// with first-seen and notification bookkeeping. Business logic depends on
// the Store interface, never on a concrete implementation.
package store

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// ErrNotFound is returned when a featured deal does not exist.
var ErrNotFound = errors.New("featured deal not found")

// FeaturedQuery defines optional filters for featured deal queries.
type FeaturedQuery struct {
	Source   *domain.Source
	Category *domain.Category
	MinScore *int
	Since    *time.Time // first seen at or after
	Limit    int        // default 50
	Offset   int
	OrderBy  string // "score", "discount", "first_seen_at"
}

// Store defines all featured deal data access.
type Store interface {
	// UpsertFeaturedDeal inserts d or refreshes the existing row with the same
	// source and source ID. It fills d's ID and timestamps and reports
	// whether the row was inserted.
	UpsertFeaturedDeal(ctx context.Context, d *domain.FeaturedDeal) (bool, error)
	GetFeaturedDeal(ctx context.Context, id string) (*domain.FeaturedDeal, error)
	ListFeaturedDeals(ctx context.Context, q *FeaturedQuery) ([]domain.FeaturedDeal, int, error)
	// ListUnnotifiedDeals returns deals scoring at least minScore that no
	// alert has been sent for, best first.
	ListUnnotifiedDeals(ctx context.Context, minScore, limit int) ([]domain.FeaturedDeal, error)
	MarkNotified(ctx context.Context, ids []string) error
	// PruneFeaturedDeals deletes deals not refreshed within olderThan.
	PruneFeaturedDeals(ctx context.Context, olderThan time.Duration) (int, error)

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
}

// FeaturedFromDeal converts a scored deal into its persisted form. Deals
// without a source ID are keyed by their URL.
func FeaturedFromDeal(d *domain.NormalizedDeal) domain.FeaturedDeal {
	f := domain.FeaturedDeal{
		Source:        d.Source,
		SourceID:      cmp.Or(d.SourceID, d.SourceURL),
		Title:         d.Title,
		SourceURL:     d.SourceURL,
		ImageURL:      d.ImageURL,
		CurrentPrice:  d.CurrentPrice,
		OriginalPrice: d.OriginalPrice,
		Discount:      d.Discount,
		Category:      d.Category,
		Condition:     d.Condition,
		PostedAt:      d.PostedAt,
		Reasons:       []string{},
	}
	if d.AIScore != nil {
		f.Score = d.AIScore.Overall
		f.Verdict = d.AIScore.Verdict
		f.Reasons = slices.Clone(d.AIScore.Reasons)
	}
	return f
}
