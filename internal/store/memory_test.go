package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/deal-aggregator/internal/store"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

type clock struct{ now time.Time }

func newClock() *clock {
	return &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time          { return c.now }
func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func ptr[T any](v T) *T { return &v }

func newMemory(c *clock) *store.MemoryStore {
	s := store.NewMemoryStore()
	s.SetNowFunc(c.Now)
	return s
}

func featured(src domain.Source, id string, score, discount int, cat domain.Category) *domain.FeaturedDeal {
	return &domain.FeaturedDeal{
		Source:        src,
		SourceID:      id,
		Title:         "deal " + id,
		SourceURL:     "https://example.com/" + id,
		CurrentPrice:  100,
		OriginalPrice: 200,
		Discount:      discount,
		Category:      cat,
		Condition:     domain.ConditionNew,
		Score:         score,
		Verdict:       "good",
		Reasons:       []string{"cheap"},
	}
}

func TestMemoryStore_Upsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newClock()
	s := newMemory(c)

	d := featured(domain.SourceSlickdeals, "a1", 80, 50, domain.CategoryLaptops)
	isNew, err := s.UpsertFeaturedDeal(ctx, d)
	require.NoError(t, err)
	assert.True(t, isNew)
	require.NotEmpty(t, d.ID)
	assert.Equal(t, c.now, d.FirstSeenAt)
	firstID := d.ID

	c.Advance(time.Hour)
	again := featured(domain.SourceSlickdeals, "a1", 90, 55, domain.CategoryLaptops)
	isNew, err = s.UpsertFeaturedDeal(ctx, again)
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, firstID, again.ID)
	assert.Equal(t, c.now.Add(-time.Hour), again.FirstSeenAt)
	assert.Equal(t, c.now, again.UpdatedAt)

	got, err := s.GetFeaturedDeal(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, 90, got.Score)
	assert.Equal(t, 55, got.Discount)

	// Same source ID on another source is a separate deal.
	other := featured(domain.SourceDealnews, "a1", 70, 40, domain.CategoryLaptops)
	isNew, err = s.UpsertFeaturedDeal(ctx, other)
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.NotEqual(t, firstID, other.ID)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newMemory(newClock())

	d := featured(domain.SourceEbay, "e1", 80, 50, domain.CategoryPhones)
	_, err := s.UpsertFeaturedDeal(ctx, d)
	require.NoError(t, err)

	got, err := s.GetFeaturedDeal(ctx, d.ID)
	require.NoError(t, err)
	got.Reasons[0] = "mutated"
	got.Score = 1

	again, err := s.GetFeaturedDeal(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"cheap"}, again.Reasons)
	assert.Equal(t, 80, again.Score)
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	t.Parallel()

	_, err := store.NewMemoryStore().GetFeaturedDeal(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_ListFeaturedDeals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newClock()
	s := newMemory(c)

	seed := []*domain.FeaturedDeal{
		featured(domain.SourceSlickdeals, "s1", 90, 30, domain.CategoryLaptops),
		featured(domain.SourceSlickdeals, "s2", 60, 70, domain.CategoryTVs),
		featured(domain.SourceDealnews, "d1", 75, 50, domain.CategoryLaptops),
		featured(domain.SourceEbay, "e1", 85, 10, domain.CategoryAudio),
	}
	for _, d := range seed {
		_, err := s.UpsertFeaturedDeal(ctx, d)
		require.NoError(t, err)
		c.Advance(time.Minute)
	}

	titles := func(deals []domain.FeaturedDeal) []string {
		out := make([]string, 0, len(deals))
		for _, d := range deals {
			out = append(out, d.SourceID)
		}
		return out
	}

	tests := []struct {
		name      string
		query     *store.FeaturedQuery
		wantIDs   []string
		wantTotal int
	}{
		{
			name:      "nil query returns all by score",
			query:     nil,
			wantIDs:   []string{"s1", "e1", "d1", "s2"},
			wantTotal: 4,
		},
		{
			name:      "source filter",
			query:     &store.FeaturedQuery{Source: ptr(domain.SourceSlickdeals)},
			wantIDs:   []string{"s1", "s2"},
			wantTotal: 2,
		},
		{
			name:      "category and min score",
			query:     &store.FeaturedQuery{Category: ptr(domain.CategoryLaptops), MinScore: ptr(80)},
			wantIDs:   []string{"s1"},
			wantTotal: 1,
		},
		{
			name:      "since filter",
			query:     &store.FeaturedQuery{Since: ptr(c.now.Add(-2 * time.Minute))},
			wantIDs:   []string{"e1", "d1"},
			wantTotal: 2,
		},
		{
			name:      "order by discount",
			query:     &store.FeaturedQuery{OrderBy: "discount"},
			wantIDs:   []string{"s2", "d1", "s1", "e1"},
			wantTotal: 4,
		},
		{
			name:      "order by first seen",
			query:     &store.FeaturedQuery{OrderBy: "first_seen_at"},
			wantIDs:   []string{"e1", "d1", "s2", "s1"},
			wantTotal: 4,
		},
		{
			name:      "pagination keeps total",
			query:     &store.FeaturedQuery{Limit: 2, Offset: 1},
			wantIDs:   []string{"e1", "d1"},
			wantTotal: 4,
		},
		{
			name:      "offset past end",
			query:     &store.FeaturedQuery{Offset: 10},
			wantIDs:   []string{},
			wantTotal: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deals, total, err := s.ListFeaturedDeals(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantIDs, titles(deals))
		})
	}
}

func TestMemoryStore_Notifications(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newClock()
	s := newMemory(c)

	hot := featured(domain.SourceSlickdeals, "hot", 92, 60, domain.CategoryTVs)
	warm := featured(domain.SourceDealnews, "warm", 86, 40, domain.CategoryTVs)
	cold := featured(domain.SourceDealnews, "cold", 50, 10, domain.CategoryTVs)
	for _, d := range []*domain.FeaturedDeal{warm, hot, cold} {
		_, err := s.UpsertFeaturedDeal(ctx, d)
		require.NoError(t, err)
	}

	pending, err := s.ListUnnotifiedDeals(ctx, 85, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "hot", pending[0].SourceID)
	assert.Equal(t, "warm", pending[1].SourceID)

	limited, err := s.ListUnnotifiedDeals(ctx, 85, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)

	require.NoError(t, s.MarkNotified(ctx, []string{hot.ID, "unknown"}))

	pending, err = s.ListUnnotifiedDeals(ctx, 85, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "warm", pending[0].SourceID)

	got, err := s.GetFeaturedDeal(ctx, hot.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NotifiedAt)
	notifiedAt := *got.NotifiedAt

	// Re-marking and re-upserting keep the original stamp.
	c.Advance(time.Hour)
	require.NoError(t, s.MarkNotified(ctx, []string{hot.ID}))
	_, err = s.UpsertFeaturedDeal(ctx, featured(domain.SourceSlickdeals, "hot", 95, 65, domain.CategoryTVs))
	require.NoError(t, err)

	got, err = s.GetFeaturedDeal(ctx, hot.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NotifiedAt)
	assert.Equal(t, notifiedAt, *got.NotifiedAt)
	assert.Equal(t, 95, got.Score)
}

func TestMemoryStore_Prune(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newClock()
	s := newMemory(c)

	old := featured(domain.SourceCraigslist, "old", 60, 30, domain.CategoryOther)
	_, err := s.UpsertFeaturedDeal(ctx, old)
	require.NoError(t, err)

	c.Advance(48 * time.Hour)
	fresh := featured(domain.SourceCraigslist, "fresh", 60, 30, domain.CategoryOther)
	_, err = s.UpsertFeaturedDeal(ctx, fresh)
	require.NoError(t, err)

	removed, err := s.PruneFeaturedDeals(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = s.GetFeaturedDeal(ctx, old.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// A pruned deal comes back as new.
	isNew, err := s.UpsertFeaturedDeal(ctx, featured(domain.SourceCraigslist, "old", 60, 30, domain.CategoryOther))
	require.NoError(t, err)
	assert.True(t, isNew)
}

func TestMemoryStore_PingAndMigrate(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Migrate(context.Background()))
}
