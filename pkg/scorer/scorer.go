package score

import (
	"fmt"
	"math"
	"slices"
	"time"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// MaxReasons is the number of justifications kept from the banded scoring.
const MaxReasons = 4

// Weights defines the relative importance of each scoring factor.
type Weights struct {
	Price     float64
	Seller    float64
	Timing    float64
	Community float64
}

// DefaultWeights returns the default scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Price:     0.40,
		Seller:    0.30,
		Timing:    0.20,
		Community: 0.10,
	}
}

// Verdict labels, highest band first.
const (
	VerdictExceptional  = "Exceptional Deal"
	VerdictGreat        = "Great Deal"
	VerdictGood         = "Good Deal"
	VerdictFair         = "Fair Deal"
	VerdictAverage      = "Average Deal"
	VerdictBelowAverage = "Below Average"
)

// CalculateAIScore scores one deal against the given reference time.
func CalculateAIScore(d *domain.NormalizedDeal, now time.Time) domain.AIScore {
	reasons := make([]string, 0, MaxReasons+2)

	price := priceScore(d, &reasons)
	seller := sellerScore(&d.Seller, &reasons)
	timing := timingScore(now.Sub(d.PostedAt), &reasons)
	community := communityScore(d.Popularity.Score, &reasons)

	w := DefaultWeights()
	total := float64(price)*w.Price +
		float64(seller)*w.Seller +
		float64(timing)*w.Timing +
		float64(community)*w.Community
	overall := clamp(int(math.Round(total)))

	if len(reasons) > MaxReasons {
		reasons = slices.Clip(reasons[:MaxReasons])
	}

	return domain.AIScore{
		Overall:        overall,
		PriceScore:     price,
		SellerScore:    seller,
		TimingScore:    timing,
		CommunityScore: community,
		Verdict:        Verdict(overall),
		Reasons:        reasons,
	}
}

// ScoreDeals attaches a fresh score to every deal.
func ScoreDeals(deals []domain.NormalizedDeal, now time.Time) {
	for i := range deals {
		s := CalculateAIScore(&deals[i], now)
		deals[i].AIScore = &s
	}
}

// Verdict maps an overall score onto its label.
func Verdict(overall int) string {
	switch {
	case overall >= 90:
		return VerdictExceptional
	case overall >= 80:
		return VerdictGreat
	case overall >= 70:
		return VerdictGood
	case overall >= 60:
		return VerdictFair
	case overall >= 50:
		return VerdictAverage
	default:
		return VerdictBelowAverage
	}
}

// priceScore rewards the discount, with a bonus for all-time lows.
func priceScore(d *domain.NormalizedDeal, reasons *[]string) int {
	var score int
	switch {
	case d.Discount >= 50:
		score = 95
		*reasons = append(*reasons, fmt.Sprintf("%d%% off, an exceptional discount", d.Discount))
	case d.Discount >= 30:
		score = 85
		*reasons = append(*reasons, fmt.Sprintf("%d%% off, a great discount", d.Discount))
	case d.Discount >= 20:
		score = 75
		*reasons = append(*reasons, fmt.Sprintf("%d%% off, a solid discount", d.Discount))
	case d.Discount >= 10:
		score = 65
		*reasons = append(*reasons, fmt.Sprintf("%d%% off list price", d.Discount))
	case d.Discount > 0:
		score = 55
		*reasons = append(*reasons, fmt.Sprintf("Small %d%% discount", d.Discount))
	default:
		score = 50
	}

	if d.IsAllTimeLow {
		score = min(score+10, 100)
		*reasons = append(*reasons, "All-time low price")
	}

	return score
}

// sellerScore evaluates seller trustworthiness from a neutral 50.
func sellerScore(s *domain.Seller, reasons *[]string) int {
	score := 50

	if s.Verified {
		score += 15
		*reasons = append(*reasons, "Verified seller")
	}

	switch {
	case s.Rating >= 4.8:
		score += 25
		*reasons = append(*reasons, fmt.Sprintf("Top-rated seller (%.1f/5)", s.Rating))
	case s.Rating >= 4.5:
		score += 20
		*reasons = append(*reasons, fmt.Sprintf("Highly rated seller (%.1f/5)", s.Rating))
	case s.Rating >= 4.0:
		score += 10
		*reasons = append(*reasons, fmt.Sprintf("Well rated seller (%.1f/5)", s.Rating))
	case s.Rating > 0 && s.Rating < 3.5:
		score -= 15
		*reasons = append(*reasons, fmt.Sprintf("Low seller rating (%.1f/5)", s.Rating))
	}

	switch {
	case s.ReviewCount > 1000:
		score += 10
		*reasons = append(*reasons, "Over 1,000 seller reviews")
	case s.ReviewCount > 100:
		score += 5
		*reasons = append(*reasons, "Over 100 seller reviews")
	}

	return clamp(score)
}

// timingScore favors fresh deals. A negative age counts as just posted.
func timingScore(age time.Duration, reasons *[]string) int {
	hours := age.Hours()
	switch {
	case hours < 1:
		*reasons = append(*reasons, "Just posted")
		return 95
	case hours < 6:
		*reasons = append(*reasons, "Posted in the last 6 hours")
		return 85
	case hours < 24:
		*reasons = append(*reasons, "Posted today")
		return 70
	case hours > 72:
		*reasons = append(*reasons, "Posted more than 3 days ago")
		return 40
	default:
		return 50
	}
}

// communityScore rewards engagement on community-driven sources.
func communityScore(popularity float64, reasons *[]string) int {
	switch {
	case popularity > 100:
		*reasons = append(*reasons, "Hot with the community")
		return 90
	case popularity > 50:
		*reasons = append(*reasons, "Popular with the community")
		return 75
	case popularity > 10:
		*reasons = append(*reasons, "Community approved")
		return 60
	default:
		return 50
	}
}

func clamp(v int) int {
	return min(max(v, 0), 100)
}
