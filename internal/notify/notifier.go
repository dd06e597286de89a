// Package notify defines the notification interface and implementations
// for hot-deal alert delivery.
package notify

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// AlertPayload contains the data needed to send a hot-deal notification.
type AlertPayload struct {
	DealID        string
	Title         string
	URL           string
	ImageURL      string
	Source        string
	Price         string
	OriginalPrice string
	Discount      int
	Score         int
	Verdict       string
	Reasons       []string
	Category      string
	Condition     string
}

// Notifier defines the interface for sending hot-deal notifications.
type Notifier interface {
	SendAlert(ctx context.Context, alert *AlertPayload) error
	SendBatchAlert(ctx context.Context, alerts []AlertPayload, heading string) error
}

var printer = message.NewPrinter(language.English)

// FormatPrice renders a USD amount with thousands separators.
func FormatPrice(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// PayloadFromDeal builds the alert payload for a stored featured deal.
func PayloadFromDeal(d *domain.FeaturedDeal) AlertPayload {
	p := AlertPayload{
		DealID:    d.ID,
		Title:     d.Title,
		URL:       d.SourceURL,
		ImageURL:  d.ImageURL,
		Source:    d.Source.DisplayName(),
		Price:     FormatPrice(d.CurrentPrice),
		Discount:  d.Discount,
		Score:     d.Score,
		Verdict:   d.Verdict,
		Reasons:   d.Reasons,
		Category:  string(d.Category),
		Condition: string(d.Condition),
	}
	if d.OriginalPrice > d.CurrentPrice {
		p.OriginalPrice = FormatPrice(d.OriginalPrice)
	}
	return p
}

// PriceLine renders "price (was original, -N%)" or just the price.
func (a *AlertPayload) PriceLine() string {
	if a.OriginalPrice == "" {
		return a.Price
	}
	return fmt.Sprintf("%s (was %s, -%d%%)", a.Price, a.OriginalPrice, a.Discount)
}

// Summary joins the verdict and reasons into one description line.
func (a *AlertPayload) Summary() string {
	parts := make([]string, 0, len(a.Reasons)+1)
	if a.Verdict != "" {
		parts = append(parts, a.Verdict)
	}
	parts = append(parts, a.Reasons...)
	return strings.Join(parts, " · ")
}
