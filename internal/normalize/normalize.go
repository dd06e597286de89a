// Package normalize maps source-native deals onto the canonical schema and
// removes cross-source duplicates.
package normalize

import (
	"cmp"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// MaxTitleLength caps cleaned titles, in runes.
const MaxTitleLength = 200

const defaultCurrency = "USD"

var (
	disallowedTitleChars = regexp.MustCompile(`[^\p{L}\p{N}\s\-.,!?'"&()/:+%$#@*\[\]]`)
	whitespaceRun        = regexp.MustCompile(`\s+`)

	// Typographic inch marks become a plain quote before NFKC, which would
	// otherwise split ″ into two primes.
	inchMarks = strings.NewReplacer("”", `"`, "“", `"`, "″", `"`)
)

// NormalizeDeals maps every raw deal, drops those without a positive price,
// and orders the rest by discount, largest first. Equal discounts keep their
// input order.
func NormalizeDeals(raw []domain.RawDeal, now time.Time) []domain.NormalizedDeal {
	out := make([]domain.NormalizedDeal, 0, len(raw))
	for i := range raw {
		d, ok := NormalizeDeal(&raw[i], now)
		if !ok {
			continue
		}
		out = append(out, d)
	}

	slices.SortStableFunc(out, func(a, b domain.NormalizedDeal) int {
		return cmp.Compare(b.Discount, a.Discount)
	})
	return out
}

// NormalizeDeal maps one raw deal. It reports false when the deal has no
// positive price.
func NormalizeDeal(raw *domain.RawDeal, now time.Time) (domain.NormalizedDeal, bool) {
	if raw.CurrentPrice <= 0 || math.IsNaN(raw.CurrentPrice) || math.IsInf(raw.CurrentPrice, 0) {
		return domain.NormalizedDeal{}, false
	}

	original := raw.CurrentPrice
	if raw.OriginalPrice != nil {
		original = *raw.OriginalPrice
	}

	title := CleanTitle(raw.Title)

	category := raw.Category
	if category == "" {
		category = InferCategory(title)
	}

	currency := raw.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	postedAt := now
	if raw.PostedAt != nil && !raw.PostedAt.IsZero() {
		postedAt = *raw.PostedAt
	}

	return domain.NormalizedDeal{
		ID:             uuid.NewString(),
		SourceID:       raw.SourceID,
		Source:         raw.Source,
		SourceURL:      raw.SourceURL,
		Title:          title,
		Description:    strings.TrimSpace(raw.Description),
		ImageURL:       raw.ImageURL,
		CurrentPrice:   raw.CurrentPrice,
		OriginalPrice:  original,
		Discount:       Discount(original, raw.CurrentPrice),
		Currency:       currency,
		Category:       category,
		Condition:      raw.Condition,
		ConditionLabel: raw.Condition.Label(),
		Seller:         seller(raw),
		Popularity: domain.Popularity{
			Upvotes:   raw.Upvotes,
			Downvotes: raw.Downvotes,
			Comments:  raw.Comments,
			Score:     PopularityScore(raw.Upvotes, raw.Downvotes, raw.Comments),
		},
		Location:     raw.Location,
		PostedAt:     postedAt,
		ExpiresAt:    raw.ExpiresAt,
		FetchedAt:    now,
		Coupon:       raw.Coupon,
		FreeShipping: raw.FreeShipping,
		IsAllTimeLow: raw.IsAllTimeLow,
	}, true
}

func seller(raw *domain.RawDeal) domain.Seller {
	s := domain.Seller{
		Name:     raw.SellerName,
		Verified: raw.SellerVerified,
	}
	if s.Name == "" {
		s.Name = raw.Source.DisplayName()
	}
	if raw.SellerRating != nil {
		s.Rating = min(max(*raw.SellerRating, 0), 5)
	}
	if raw.SellerReviews != nil && *raw.SellerReviews > 0 {
		s.ReviewCount = *raw.SellerReviews
	}
	return s
}

// Discount returns the percentage saved, rounded and clamped to [0, 100].
// A non-positive original price yields 0.
func Discount(original, current float64) int {
	if original <= 0 {
		return 0
	}
	pct := math.Round((original - current) / original * 100)
	return int(min(max(pct, 0), 100))
}

// PopularityScore is upvotes minus downvotes plus half a point per comment.
func PopularityScore(upvotes, downvotes, comments int) float64 {
	return float64(upvotes-downvotes) + 0.5*float64(comments)
}

// CleanTitle canonicalizes unicode, strips unusual characters, collapses
// whitespace and caps the length.
func CleanTitle(title string) string {
	s := norm.NFKC.String(inchMarks.Replace(title))
	s = disallowedTitleChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if r := []rune(s); len(r) > MaxTitleLength {
		s = strings.TrimSpace(string(r[:MaxTitleLength]))
	}
	return s
}
