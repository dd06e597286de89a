package feed

import (
	"cmp"
	"strings"

	"github.com/mmcdole/gofeed"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// itemToDeal mines a raw deal from one feed item. Items without a title, a
// link or a positive price are rejected.
func itemToDeal(item *gofeed.Item, src domain.Source, fallback domain.Condition) (domain.RawDeal, bool) {
	if item == nil {
		return domain.RawDeal{}, false
	}

	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return domain.RawDeal{}, false
	}

	body := PlainText(cmp.Or(item.Description, item.Content))
	text := title + " " + body

	current, original := MinePrices(text)
	if current <= 0 {
		return domain.RawDeal{}, false
	}

	deal := domain.RawDeal{
		SourceID:     cmp.Or(item.GUID, link),
		Source:       src,
		SourceURL:    link,
		Title:        title,
		Description:  body,
		ImageURL:     ImageURL(item),
		CurrentPrice: current,
		Currency:     "USD",
		Condition:    InferCondition(text, fallback),
		SellerName:   MineStore(title),
		Upvotes:      MineVotes(text),
		Comments:     MineComments(text),
		Coupon:       MineCoupon(text),
		FreeShipping: HasFreeShipping(text),
		IsAllTimeLow: IsAllTimeLow(text),
	}

	if original != nil && *original > 0 {
		deal.OriginalPrice = original
	}

	switch {
	case item.PublishedParsed != nil:
		deal.PostedAt = item.PublishedParsed
	case item.UpdatedParsed != nil:
		deal.PostedAt = item.UpdatedParsed
	}

	return deal, true
}

// matchesQuery reports whether the lower-cased query appears in the title
// or description.
func matchesQuery(d *domain.RawDeal, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(d.Title), q) ||
		strings.Contains(strings.ToLower(d.Description), q)
}
