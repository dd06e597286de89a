package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// MemoryStore is a process-local Store used when no database is
// configured. Contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]*domain.FeaturedDeal
	byKey   map[string]string // source/source_id -> id
	nowFunc func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]*domain.FeaturedDeal),
		byKey:   make(map[string]string),
		nowFunc: time.Now,
	}
}

// SetNowFunc overrides the time function for testing.
func (m *MemoryStore) SetNowFunc(f func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nowFunc = f
}

func featuredKey(d *domain.FeaturedDeal) string {
	return string(d.Source) + "/" + d.SourceID
}

// UpsertFeaturedDeal implements Store.
func (m *MemoryStore) UpsertFeaturedDeal(_ context.Context, d *domain.FeaturedDeal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.nowFunc()
	if d.Reasons == nil {
		d.Reasons = []string{}
	}

	if id, ok := m.byKey[featuredKey(d)]; ok {
		existing := m.byID[id]
		d.ID = existing.ID
		d.FirstSeenAt = existing.FirstSeenAt
		d.NotifiedAt = existing.NotifiedAt
		d.UpdatedAt = now
		stored := clone(d)
		m.byID[id] = &stored
		return false, nil
	}

	d.ID = uuid.NewString()
	d.FirstSeenAt = now
	d.UpdatedAt = now
	d.NotifiedAt = nil
	stored := clone(d)
	m.byID[d.ID] = &stored
	m.byKey[featuredKey(d)] = d.ID
	return true, nil
}

// GetFeaturedDeal implements Store.
func (m *MemoryStore) GetFeaturedDeal(_ context.Context, id string) (*domain.FeaturedDeal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := clone(d)
	return &out, nil
}

// ListFeaturedDeals implements Store with the same filters and ordering as
// the SQL implementation.
func (m *MemoryStore) ListFeaturedDeals(_ context.Context, q *FeaturedQuery) ([]domain.FeaturedDeal, int, error) {
	if q == nil {
		q = &FeaturedQuery{}
	}

	m.mu.RLock()
	matched := make([]domain.FeaturedDeal, 0, len(m.byID))
	for _, d := range m.byID {
		if q.matches(d) {
			matched = append(matched, clone(d))
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(matched, orderFunc(q.OrderBy))

	total := len(matched)
	limit, offset := q.page()
	offset = min(offset, total)
	return matched[offset:min(offset+limit, total)], total, nil
}

// ListUnnotifiedDeals implements Store.
func (m *MemoryStore) ListUnnotifiedDeals(_ context.Context, minScore, limit int) ([]domain.FeaturedDeal, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	m.mu.RLock()
	out := []domain.FeaturedDeal{}
	for _, d := range m.byID {
		if d.NotifiedAt == nil && d.Score >= minScore {
			out = append(out, clone(d))
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.FeaturedDeal) int {
		return cmp.Or(
			cmp.Compare(b.Score, a.Score),
			a.FirstSeenAt.Compare(b.FirstSeenAt),
			cmp.Compare(a.ID, b.ID),
		)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MarkNotified implements Store.
func (m *MemoryStore) MarkNotified(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.nowFunc()
	for _, id := range ids {
		if d, ok := m.byID[id]; ok && d.NotifiedAt == nil {
			t := now
			d.NotifiedAt = &t
		}
	}
	return nil
}

// PruneFeaturedDeals implements Store.
func (m *MemoryStore) PruneFeaturedDeals(_ context.Context, olderThan time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.nowFunc().Add(-olderThan)
	removed := 0
	for id, d := range m.byID {
		if d.UpdatedAt.Before(cutoff) {
			delete(m.byKey, featuredKey(d))
			delete(m.byID, id)
			removed++
		}
	}
	return removed, nil
}

// Migrate implements Store. There is no schema.
func (m *MemoryStore) Migrate(context.Context) error { return nil }

// Ping implements Store. The store is always available.
func (m *MemoryStore) Ping(context.Context) error { return nil }

func (q *FeaturedQuery) matches(d *domain.FeaturedDeal) bool {
	switch {
	case q.Source != nil && d.Source != *q.Source:
		return false
	case q.Category != nil && d.Category != *q.Category:
		return false
	case q.MinScore != nil && d.Score < *q.MinScore:
		return false
	case q.Since != nil && d.FirstSeenAt.Before(*q.Since):
		return false
	}
	return true
}

func orderFunc(orderBy string) func(a, b domain.FeaturedDeal) int {
	byFirstSeen := func(a, b domain.FeaturedDeal) int { return b.FirstSeenAt.Compare(a.FirstSeenAt) }
	switch orderBy {
	case orderByDiscount:
		return func(a, b domain.FeaturedDeal) int {
			return cmp.Or(cmp.Compare(b.Discount, a.Discount), cmp.Compare(b.Score, a.Score), cmp.Compare(a.ID, b.ID))
		}
	case orderByFirstSeen:
		return func(a, b domain.FeaturedDeal) int {
			return cmp.Or(byFirstSeen(a, b), cmp.Compare(a.ID, b.ID))
		}
	default:
		return func(a, b domain.FeaturedDeal) int {
			return cmp.Or(cmp.Compare(b.Score, a.Score), byFirstSeen(a, b), cmp.Compare(a.ID, b.ID))
		}
	}
}

func clone(d *domain.FeaturedDeal) domain.FeaturedDeal {
	out := *d
	out.Reasons = slices.Clone(d.Reasons)
	if d.NotifiedAt != nil {
		t := *d.NotifiedAt
		out.NotifiedAt = &t
	}
	return out
}
