package normalize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/deal-aggregator/internal/normalize"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

func TestFingerprint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "sorted first five long tokens", title: "Apple MacBook Air M2 13in", want: "13in air apple macbook"},
		{name: "hyphenated inch unit folds", title: "MacBook Air M2 13-inch Apple", want: "13in air apple macbook"},
		{name: "quote inch unit folds", title: `Samsung 65" QLED TV`, want: "65in qled samsung"},
		{name: "punctuation becomes spaces", title: "Sony WH-1000XM5, Black!", want: "1000xm5 black sony"},
		{name: "only first five tokens", title: "one two three four five six seven", want: "five four one three two"},
		{name: "all short tokens", title: "a b c", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize.Fingerprint(tt.title))
		})
	}
}

func deal(title string, price float64) domain.NormalizedDeal {
	return domain.NormalizedDeal{ID: title, Title: title, CurrentPrice: price}
}

func TestDeduplicateDeals_MacBookScenario(t *testing.T) {
	t.Parallel()

	deals := []domain.NormalizedDeal{
		deal("Apple MacBook Air M2 13in", 900),
		deal("MacBook Air M2 13-inch Apple", 850),
	}

	got := normalize.DeduplicateDeals(deals)

	require.Len(t, got, 1)
	assert.InDelta(t, 850.0, got[0].CurrentPrice, 0.001)
}

func TestDeduplicateDeals_CheaperTakesEarlierPosition(t *testing.T) {
	t.Parallel()

	deals := []domain.NormalizedDeal{
		deal("Sony Bravia Television Model", 1000),
		deal("Nintendo Switch OLED Console", 300),
		deal("Sony Bravia Television Model", 800),
	}

	got := normalize.DeduplicateDeals(deals)

	require.Len(t, got, 2)
	assert.InDelta(t, 800.0, got[0].CurrentPrice, 0.001)
	assert.Equal(t, "Nintendo Switch OLED Console", got[1].Title)
}

func TestDeduplicateDeals_TieKeepsFirst(t *testing.T) {
	t.Parallel()

	first := deal("Google Pixel Phone Eight", 499)
	first.ID = "first"
	second := deal("Google Pixel Phone Eight", 499)
	second.ID = "second"

	got := normalize.DeduplicateDeals([]domain.NormalizedDeal{first, second})

	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].ID)
}

func TestDeduplicateDeals_EmptyFingerprintNeverMerges(t *testing.T) {
	t.Parallel()

	got := normalize.DeduplicateDeals([]domain.NormalizedDeal{deal("TV", 100), deal("PC", 200)})
	assert.Len(t, got, 2)
}

func TestDeduplicateDeals_Idempotent(t *testing.T) {
	t.Parallel()

	deals := []domain.NormalizedDeal{
		deal("Apple MacBook Air M2 13in", 900),
		deal("Bose QuietComfort Ultra Headphones", 329),
		deal("MacBook Air M2 13-inch Apple", 850),
		deal("Bose QuietComfort Ultra Headphones", 349),
		deal("Anker Power Bank 20000mAh", 39),
	}

	once := normalize.DeduplicateDeals(deals)
	twice := normalize.DeduplicateDeals(once)

	assert.Equal(t, once, twice)
	assert.Len(t, once, 3)

	seen := map[string]bool{}
	for _, d := range once {
		fp := normalize.Fingerprint(d.Title)
		assert.False(t, seen[fp], "duplicate fingerprint %q", fp)
		seen[fp] = true
	}
}

func TestDeduplicateDeals_TypographicInchMarks(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raws := []domain.RawDeal{
		{Source: domain.SourceSlickdeals, SourceID: "a", Title: `Apple MacBook Air 13" M2 Laptop`, CurrentPrice: 899},
		{Source: domain.SourceDealnews, SourceID: "b", Title: "Apple MacBook Air 13” M2 Laptop", CurrentPrice: 849},
		{Source: domain.SourceEbay, SourceID: "c", Title: "Apple MacBook Air 13″ M2 Laptop", CurrentPrice: 879},
	}

	normalized := normalize.NormalizeDeals(raws, now)
	require.Len(t, normalized, 3)
	for _, d := range normalized {
		assert.Equal(t, "13in air apple laptop macbook", normalize.Fingerprint(d.Title), d.SourceID)
	}

	got := normalize.DeduplicateDeals(normalized)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].SourceID, "cheapest copy wins")
}
