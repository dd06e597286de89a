package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/deal-aggregator/internal/ebay"
)

// product is one canned deal. The same catalog backs every fake source so
// cross-source deduplication has something to collapse.
type product struct {
	ID        string
	Title     string
	Price     float64
	WasPrice  float64
	Store     string
	Section   string // craigslist section code
	Condition string
	Votes     int
	Extra     string
	Age       time.Duration
}

var catalog = []product{
	{ID: "1001", Title: "Apple MacBook Air M2 13in 256GB", Price: 849, WasPrice: 1099, Store: "Best Buy", Section: "sya", Condition: "New", Votes: 142, Extra: "Free shipping", Age: time.Hour},
	{ID: "1002", Title: "Samsung 990 Pro 2TB NVMe SSD", Price: 139.99, WasPrice: 209.99, Store: "Amazon", Section: "sya", Condition: "New", Votes: 88, Extra: "All-time low", Age: 2 * time.Hour},
	{ID: "1003", Title: "Sony WH-1000XM5 Wireless Noise Cancelling Headphones", Price: 279.99, WasPrice: 399.99, Store: "Target", Section: "ela", Condition: "New", Votes: 63, Age: 3 * time.Hour},
	{ID: "1004", Title: "LG C3 65in OLED 4K TV", Price: 1399.99, WasPrice: 2599.99, Store: "Costco", Section: "ela", Condition: "New", Votes: 210, Extra: "Free delivery", Age: 30 * time.Minute},
	{ID: "1005", Title: "Nintendo Switch OLED Console", Price: 299, WasPrice: 349.99, Store: "Walmart", Section: "vga", Condition: "New", Votes: 34, Age: 5 * time.Hour},
	{ID: "1006", Title: "Google Pixel 8 Pro 128GB Unlocked Refurbished", Price: 499, WasPrice: 999, Store: "Woot", Section: "moa", Condition: "Refurbished", Votes: 21, Age: 6 * time.Hour},
	{ID: "1007", Title: "Apple iPad Air 11in M2 128GB", Price: 499, WasPrice: 599, Store: "Amazon", Section: "sya", Condition: "New", Votes: 57, Age: 90 * time.Minute},
	{ID: "1008", Title: "Canon EOS R50 Mirrorless Camera Kit", Price: 599, WasPrice: 799, Store: "B&H", Section: "pha", Condition: "New", Votes: 12, Age: 8 * time.Hour},
	{ID: "1009", Title: "Garmin Forerunner 265 GPS Smartwatch", Price: 349.99, WasPrice: 449.99, Store: "REI", Section: "ela", Condition: "Open box", Votes: 9, Age: 4 * time.Hour},
	{ID: "1010", Title: "Google Nest Thermostat Smart Home", Price: 89.99, WasPrice: 129.99, Store: "Home Depot", Section: "ela", Condition: "New", Votes: 44, Age: 7 * time.Hour},
	{ID: "1011", Title: "Dell XPS 15 Laptop i7 32GB RAM", Price: 1299, WasPrice: 1899, Store: "Dell", Section: "sya", Condition: "New", Votes: 76, Age: 10 * time.Hour},
	{ID: "1012", Title: "Anker 737 USB-C Charger 120W", Price: 59.99, WasPrice: 89.99, Store: "Amazon", Section: "ela", Condition: "New", Votes: 18, Extra: "Use code ANKER30", Age: 12 * time.Hour},
	{ID: "1013", Title: "Dell XPS 15 laptop for parts", Price: 120, WasPrice: 1899, Section: "sya", Condition: "For parts", Age: 20 * time.Hour},
	{ID: "1014", Title: "PlayStation 5 Slim Digital like new", Price: 320, Section: "vga", Condition: "Used", Age: 15 * time.Hour},
}

func (p *product) postedAt(now time.Time) time.Time {
	return now.Add(-p.Age)
}

// matches reports whether every word of q appears in the title.
func (p *product) matches(q string) bool {
	title := strings.ToLower(p.Title)
	for _, word := range strings.Fields(strings.ToLower(q)) {
		if !strings.Contains(title, word) {
			return false
		}
	}
	return true
}

func filterCatalog(q string, keep func(*product) bool) []product {
	var out []product
	for i := range catalog {
		p := &catalog[i]
		if keep != nil && !keep(p) {
			continue
		}
		if p.matches(q) {
			out = append(out, *p)
		}
	}
	return out
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// itemSummary renders a product as an eBay Browse API item.
func (p *product) itemSummary(now time.Time) ebay.ItemSummary {
	item := ebay.ItemSummary{
		ItemID:     "v1|" + p.ID + "|0",
		Title:      p.Title,
		Price:      ebay.ItemPrice{Value: money(p.Price), Currency: "USD"},
		ItemWebURL: "https://www.ebay.com/itm/" + p.ID,
		Image:      &ebay.ItemImage{ImageURL: "https://i.ebayimg.com/images/g/" + p.ID + "/s-l500.jpg"},
		Seller: &ebay.ItemSeller{
			Username:           "mock_seller_" + p.ID,
			FeedbackScore:      500 + 37*p.Votes,
			FeedbackPercentage: "99.4",
		},
		Condition:        p.Condition,
		BuyingOptions:    []string{"FIXED_PRICE"},
		ItemCreationDate: p.postedAt(now).UTC().Format(time.RFC3339),
		ShippingOptions: []ebay.ShippingOption{{
			ShippingCostType: "FIXED",
			ShippingCost:     &ebay.ItemPrice{Value: "0.00", Currency: "USD"},
		}},
		TopRatedBuyingExperience: p.Votes > 50,
	}
	if p.WasPrice > p.Price {
		item.MarketingPrice = &ebay.MarketingPrice{
			OriginalPrice:      &ebay.ItemPrice{Value: money(p.WasPrice), Currency: "USD"},
			DiscountPercentage: fmt.Sprintf("%.0f", 100*(p.WasPrice-p.Price)/p.WasPrice),
		}
	}
	return item
}

// curatedTitle renders a product the way deal sites headline it.
func (p *product) curatedTitle() string {
	if p.Store == "" {
		return fmt.Sprintf("%s $%s", p.Title, money(p.Price))
	}
	return fmt.Sprintf("%s $%s at %s", p.Title, money(p.Price), p.Store)
}

func (p *product) curatedBody() string {
	var b strings.Builder
	if p.WasPrice > p.Price {
		fmt.Fprintf(&b, "<p>Was $%s.</p>", money(p.WasPrice))
	}
	if p.Extra != "" {
		fmt.Fprintf(&b, "<p>%s.</p>", p.Extra)
	}
	fmt.Fprintf(&b, `<p>%d thumbs up</p><img src="https://img.example.com/%s.jpg">`, p.Votes, p.ID)
	return b.String()
}
