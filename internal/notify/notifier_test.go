package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "$0.00"},
		{in: 9.5, want: "$9.50"},
		{in: 1299.99, want: "$1,299.99"},
		{in: 1250000, want: "$1,250,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatPrice(tt.in))
		})
	}
}

func TestPayloadFromDeal(t *testing.T) {
	t.Parallel()

	d := &domain.FeaturedDeal{
		ID:            "id-1",
		Source:        domain.SourceDealnews,
		Title:         "Apple iPad Air M2",
		SourceURL:     "https://www.dealnews.com/deal/1",
		CurrentPrice:  499,
		OriginalPrice: 599,
		Discount:      17,
		Category:      domain.CategoryTablets,
		Condition:     domain.ConditionNew,
		Score:         86,
		Verdict:       "Great deal",
		Reasons:       []string{"17% off"},
	}

	p := PayloadFromDeal(d)
	assert.Equal(t, "id-1", p.DealID)
	assert.Equal(t, "DealNews", p.Source)
	assert.Equal(t, "$499.00", p.Price)
	assert.Equal(t, "$599.00", p.OriginalPrice)
	assert.Equal(t, "tablets", p.Category)
	assert.Equal(t, "$499.00 (was $599.00, -17%)", p.PriceLine())
	assert.Equal(t, "Great deal · 17% off", p.Summary())
}

func TestPayloadFromDeal_NoOriginalPrice(t *testing.T) {
	t.Parallel()

	p := PayloadFromDeal(&domain.FeaturedDeal{
		Source:        domain.SourceCraigslist,
		CurrentPrice:  300,
		OriginalPrice: 300,
	})
	assert.Empty(t, p.OriginalPrice)
	assert.Equal(t, "$300.00", p.PriceLine())
	assert.Empty(t, p.Summary())
}
