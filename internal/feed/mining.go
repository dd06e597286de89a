package feed

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

const priceNumber = `\$\s?(\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`

var (
	pricePattern = regexp.MustCompile(priceNumber)

	originalPricePattern = regexp.MustCompile(
		`(?i)\b(?:was|original(?:ly)?|list(?: price)?|reg\.?|regular|msrp)\s*:?\s*` + priceNumber,
	)

	storeBracketPattern = regexp.MustCompile(`^\s*\[([^\]]{2,40})\]`)
	storeSuffixPattern  = regexp.MustCompile(
		`\b(?:at|from|@)\s+([A-Z][\w&'.+-]*(?:\s+[A-Z][\w&'.+-]*){0,2})`,
	)

	couponPattern = regexp.MustCompile(
		`\b(?i:promo code|coupon code|code|coupon)\s*:?\s*["“']?([A-Z0-9][A-Z0-9_-]{3,19})\b`,
	)

	upvotePattern = regexp.MustCompile(
		`(?i)(\d+)\s*thumbs?\s*up|thumbs?\s*up\s*:?\s*(\d+)|(?:^|\s)\+(\d+)\b|(\d+)\s*(?:votes|likes)\b`,
	)
	commentPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:comments?|replies)\b`)

	freeShippingPattern = regexp.MustCompile(`(?i)\bfree\s+(?:shipping|s&h|delivery)\b`)
	allTimeLowPattern   = regexp.MustCompile(`(?i)\ball[\s-]time[\s-]low\b|\blowest\s+price\s+ever\b|\bATL\b`)

	conditionPatterns = []struct {
		condition domain.Condition
		pattern   *regexp.Regexp
	}{
		{domain.ConditionForParts, regexp.MustCompile(`(?i)\bfor parts\b|\bnot working\b|\bbroken\b|\bas[\s-]is\b`)},
		{domain.ConditionRefurbished, regexp.MustCompile(`(?i)\b(?:refurbished|refurb|renewed|reconditioned)\b`)},
		{domain.ConditionLikeNew, regexp.MustCompile(`(?i)\blike[\s-]new\b|\bopen[\s-]box\b|\bmint\b`)},
		{domain.ConditionNew, regexp.MustCompile(`(?i)\bbrand[\s-]new\b|\bsealed\b|\bnew in box\b|\bnib\b|\bnew\b`)},
	}

	imageExtension = regexp.MustCompile(`(?i)\.(?:jpe?g|png|gif|webp)(?:\?|$)`)
)

// parseAmount converts a matched "1,299.99" into a float.
func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// MinePrices returns the current price and, when present, the original
// price. Original-price phrases ("was $999") are removed before the first
// remaining dollar amount is taken as the current price.
func MinePrices(text string) (current float64, original *float64) {
	if m := originalPricePattern.FindStringSubmatch(text); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			original = &v
		}
		text = originalPricePattern.ReplaceAllString(text, " ")
	}

	if m := pricePattern.FindStringSubmatch(text); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			current = v
		}
	}

	return current, original
}

// MineStore extracts the retailer name from "[Store] ..." or "... at Store".
func MineStore(title string) string {
	if m := storeBracketPattern.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := storeSuffixPattern.FindStringSubmatch(title); m != nil {
		return strings.TrimRight(strings.TrimSpace(m[1]), ".")
	}
	return ""
}

// MineCoupon extracts a promo code.
func MineCoupon(text string) *domain.Coupon {
	m := couponPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &domain.Coupon{Code: m[1], Description: strings.TrimSpace(m[0])}
}

// MineVotes extracts the upvote count.
func MineVotes(text string) int {
	m := upvotePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	for _, g := range m[1:] {
		if g == "" {
			continue
		}
		if n, err := strconv.Atoi(g); err == nil {
			return n
		}
	}
	return 0
}

// MineComments extracts the comment count.
func MineComments(text string) int {
	if m := commentPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 0
}

// HasFreeShipping reports a free shipping marker.
func HasFreeShipping(text string) bool {
	return freeShippingPattern.MatchString(text)
}

// IsAllTimeLow reports an all-time-low marker.
func IsAllTimeLow(text string) bool {
	return allTimeLowPattern.MatchString(text)
}

// InferCondition maps condition wording onto the canonical enum, returning
// fallback when nothing matches.
func InferCondition(text string, fallback domain.Condition) domain.Condition {
	for _, c := range conditionPatterns {
		if c.pattern.MatchString(text) {
			return c.condition
		}
	}
	return fallback
}

// PlainText strips markup from an item body.
func PlainText(html string) string {
	if !strings.Contains(html, "<") {
		return strings.Join(strings.Fields(html), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// ImageURL picks the item image: an image enclosure, the item image, a
// media:content or media:thumbnail element, then the first <img> in the body.
func ImageURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "image/") || imageExtension.MatchString(enc.URL) {
			return enc.URL
		}
	}

	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, name := range []string{"content", "thumbnail"} {
			for _, ext := range media[name] {
				if u := ext.Attrs["url"]; u != "" {
					return u
				}
			}
		}
	}

	for _, body := range []string{item.Content, item.Description} {
		if u := firstImage(body); u != "" {
			return u
		}
	}
	return ""
}

func firstImage(html string) string {
	if !strings.Contains(html, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}
