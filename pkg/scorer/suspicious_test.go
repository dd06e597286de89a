package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

func scored(d domain.NormalizedDeal) domain.NormalizedDeal {
	if d.PostedAt.IsZero() {
		d.PostedAt = now
	}
	s := CalculateAIScore(&d, now)
	d.AIScore = &s
	return d
}

func TestDetectSuspiciousDeals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		deal        domain.NormalizedDeal
		wantFlagged bool
		wantWarning string
	}{
		{
			name: "too good to be true",
			deal: domain.NormalizedDeal{
				Discount: 85, CurrentPrice: 40,
				Seller: domain.Seller{ReviewCount: 3},
			},
			wantFlagged: true,
			wantWarning: WarnTooGoodToBeTrue,
		},
		{
			name: "unproven seller",
			deal: domain.NormalizedDeal{
				Discount: 60, CurrentPrice: 200,
				Seller: domain.Seller{ReviewCount: 5},
			},
			wantFlagged: true,
			wantWarning: WarnUnprovenSeller,
		},
		{
			name: "new high-end item on local marketplace",
			deal: domain.NormalizedDeal{
				Source: domain.SourceCraigslist, Condition: domain.ConditionNew, CurrentPrice: 600,
			},
			wantFlagged: true,
			wantWarning: WarnLocalNewHighEnd,
		},
		{
			name: "same item from a curated source",
			deal: domain.NormalizedDeal{
				Source: domain.SourceSlickdeals, Condition: domain.ConditionNew, CurrentPrice: 600,
			},
		},
		{
			name: "established seller moderate discount",
			deal: domain.NormalizedDeal{
				Discount: 30, CurrentPrice: 70,
				Seller: domain.Seller{ReviewCount: 500},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deals := []domain.NormalizedDeal{scored(tt.deal)}
			before := *deals[0].AIScore
			beforeReasons := len(before.Reasons)

			n := DetectSuspiciousDeals(deals)

			got := deals[0].AIScore
			assert.Equal(t, before.Overall, got.Overall, "overall is never changed")
			assert.Equal(t, tt.wantFlagged, got.Suspicious)
			if !tt.wantFlagged {
				assert.Zero(t, n)
				assert.Len(t, got.Reasons, beforeReasons)
				return
			}

			assert.Equal(t, 1, n)
			require.Len(t, got.Reasons, beforeReasons+1)
			assert.Equal(t, tt.wantWarning, got.Reasons[len(got.Reasons)-1])
		})
	}
}

func TestDetectSuspiciousDeals_FirstRuleOnly(t *testing.T) {
	t.Parallel()

	// Matches both the price rule and the seller rule.
	deals := []domain.NormalizedDeal{scored(domain.NormalizedDeal{
		Discount: 90, CurrentPrice: 10, Seller: domain.Seller{ReviewCount: 0},
	})}

	DetectSuspiciousDeals(deals)

	reasons := deals[0].AIScore.Reasons
	assert.Equal(t, WarnTooGoodToBeTrue, reasons[len(reasons)-1])
	assert.NotContains(t, reasons, WarnUnprovenSeller)
}

func TestDetectSuspiciousDeals_NoDoubleFlag(t *testing.T) {
	t.Parallel()

	deals := []domain.NormalizedDeal{scored(domain.NormalizedDeal{Discount: 85, CurrentPrice: 40})}

	assert.Equal(t, 1, DetectSuspiciousDeals(deals))
	count := len(deals[0].AIScore.Reasons)

	assert.Zero(t, DetectSuspiciousDeals(deals))
	assert.Len(t, deals[0].AIScore.Reasons, count)
}

func TestDetectSuspiciousDeals_SkipsUnscored(t *testing.T) {
	t.Parallel()

	deals := []domain.NormalizedDeal{{Discount: 85, CurrentPrice: 40}}

	assert.Zero(t, DetectSuspiciousDeals(deals))
	assert.Nil(t, deals[0].AIScore)
	assert.Len(t, deals, 1)
}
