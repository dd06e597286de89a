package score

import (
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// Warnings appended to the reasons of a suspicious deal.
const (
	WarnTooGoodToBeTrue = "Warning: price looks too good to be true"
	WarnUnprovenSeller  = "Warning: large discount from a seller with few reviews"
	WarnLocalNewHighEnd = "Warning: new high-value item on a local marketplace, inspect before paying"
)

type suspicionRule struct {
	warning string
	match   func(d *domain.NormalizedDeal) bool
}

// suspicionRules are evaluated in order; only the first match is reported.
var suspicionRules = []suspicionRule{
	{
		warning: WarnTooGoodToBeTrue,
		match: func(d *domain.NormalizedDeal) bool {
			return d.Discount > 80 && d.CurrentPrice < 50
		},
	},
	{
		warning: WarnUnprovenSeller,
		match: func(d *domain.NormalizedDeal) bool {
			return d.Seller.ReviewCount < 10 && d.Discount > 50
		},
	},
	{
		warning: WarnLocalNewHighEnd,
		match: func(d *domain.NormalizedDeal) bool {
			return d.Source.IsLocal() && d.Condition == domain.ConditionNew && d.CurrentPrice > 500
		},
	},
}

// DetectSuspiciousDeals flags scored deals that match a suspicion rule by
// appending one warning and setting Suspicious. Deals are never dropped and
// their overall score is unchanged. It returns the number of deals flagged.
func DetectSuspiciousDeals(deals []domain.NormalizedDeal) int {
	flagged := 0
	for i := range deals {
		d := &deals[i]
		if d.AIScore == nil || d.AIScore.Suspicious {
			continue
		}
		for _, r := range suspicionRules {
			if r.match(d) {
				d.AIScore.Reasons = append(d.AIScore.Reasons, r.warning)
				d.AIScore.Suspicious = true
				flagged++
				break
			}
		}
	}
	return flagged
}
