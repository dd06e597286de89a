package ebay

import (
	"strconv"
	"strings"
	"time"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// conditionsByID maps Browse API condition IDs onto canonical conditions.
var conditionsByID = map[string]domain.Condition{
	"1000": domain.ConditionNew,
	"1500": domain.ConditionLikeNew, // new other, open box
	"1750": domain.ConditionLikeNew, // new with defects
	"2000": domain.ConditionRefurbished,
	"2010": domain.ConditionRefurbished,
	"2020": domain.ConditionRefurbished,
	"2030": domain.ConditionRefurbished,
	"2500": domain.ConditionRefurbished,
	"2750": domain.ConditionLikeNew,
	"3000": domain.ConditionUsed,
	"4000": domain.ConditionUsed,
	"5000": domain.ConditionUsed,
	"6000": domain.ConditionUsed,
	"7000": domain.ConditionForParts,
}

// conditionsByText maps the lower-cased condition display text.
var conditionsByText = map[string]domain.Condition{
	"new":                      domain.ConditionNew,
	"brand new":                domain.ConditionNew,
	"new other (see details)":  domain.ConditionLikeNew,
	"new with defects":         domain.ConditionLikeNew,
	"open box":                 domain.ConditionLikeNew,
	"like new":                 domain.ConditionLikeNew,
	"certified - refurbished":  domain.ConditionRefurbished,
	"excellent - refurbished":  domain.ConditionRefurbished,
	"very good - refurbished":  domain.ConditionRefurbished,
	"good - refurbished":       domain.ConditionRefurbished,
	"seller refurbished":       domain.ConditionRefurbished,
	"manufacturer refurbished": domain.ConditionRefurbished,
	"used":                     domain.ConditionUsed,
	"pre-owned":                domain.ConditionUsed,
	"very good":                domain.ConditionUsed,
	"good":                     domain.ConditionUsed,
	"acceptable":               domain.ConditionUsed,
	"for parts or not working": domain.ConditionForParts,
}

// MapCondition resolves an item condition from its condition ID, then its
// display text, defaulting to used.
func MapCondition(conditionID, text string) domain.Condition {
	if c, ok := conditionsByID[conditionID]; ok {
		return c
	}

	t := strings.ToLower(strings.TrimSpace(text))
	if c, ok := conditionsByText[t]; ok {
		return c
	}

	switch {
	case strings.Contains(t, "parts"):
		return domain.ConditionForParts
	case strings.Contains(t, "refurb"):
		return domain.ConditionRefurbished
	case strings.Contains(t, "open box"), strings.Contains(t, "like new"):
		return domain.ConditionLikeNew
	case t == "new" || strings.HasPrefix(t, "new "):
		return domain.ConditionNew
	default:
		return domain.ConditionUsed
	}
}

// FeedbackRating converts a 0-100 feedback percentage into a 0-5 rating.
func FeedbackRating(pct string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
	if err != nil {
		return 0, false
	}
	return min(max(v/20, 0), 5), true
}

// ToRawDeals converts eBay API item summaries into raw deals. Items without
// a parseable positive price are skipped.
func ToRawDeals(items []ItemSummary) []domain.RawDeal {
	deals := make([]domain.RawDeal, 0, len(items))
	for i := range items {
		if d, ok := toRawDeal(&items[i]); ok {
			deals = append(deals, d)
		}
	}
	return deals
}

func toRawDeal(item *ItemSummary) (domain.RawDeal, bool) {
	price, ok := parsePrice(&item.Price)
	if !ok {
		return domain.RawDeal{}, false
	}

	d := domain.RawDeal{
		SourceID:       item.ItemID,
		Source:         domain.SourceEbay,
		SourceURL:      item.ItemWebURL,
		Title:          item.Title,
		Description:    item.ShortDescription,
		CurrentPrice:   price,
		Currency:       item.Price.Currency,
		Condition:      MapCondition(item.ConditionID, item.Condition),
		SellerVerified: item.TopRatedBuyingExperience,
		FreeShipping:   freeShipping(item.ShippingOptions),
	}

	// Image
	if item.Image != nil {
		d.ImageURL = item.Image.ImageURL
	}

	// Strike-through price
	if mp := item.MarketingPrice; mp != nil && mp.OriginalPrice != nil {
		if orig, ok := parsePrice(mp.OriginalPrice); ok && orig > price {
			d.OriginalPrice = &orig
		}
	}

	// Seller
	if s := item.Seller; s != nil {
		d.SellerName = s.Username
		if rating, ok := FeedbackRating(s.FeedbackPercentage); ok {
			d.SellerRating = &rating
		}
		reviews := s.FeedbackScore
		d.SellerReviews = &reviews
	}

	d.Location = formatLocation(item.ItemLocation)
	d.PostedAt = parseTime(item.ItemCreationDate)
	d.ExpiresAt = parseTime(item.ItemEndDate)

	return d, true
}

func parsePrice(p *ItemPrice) (float64, bool) {
	v, err := strconv.ParseFloat(p.Value, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func freeShipping(opts []ShippingOption) bool {
	if len(opts) == 0 {
		return false
	}
	sc := opts[0].ShippingCost
	if sc == nil {
		return opts[0].ShippingCostType == "FREE"
	}
	cost, err := strconv.ParseFloat(sc.Value, 64)
	return err == nil && cost == 0
}

func formatLocation(loc *ItemLocation) string {
	if loc == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{loc.City, loc.StateOrProvince} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 && loc.PostalCode != "" {
		parts = append(parts, loc.PostalCode)
	}
	return strings.Join(parts, ", ")
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
