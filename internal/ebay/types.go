package ebay

// ItemSummary represents a single item from the eBay Browse API search response.
type ItemSummary struct {
	ItemID           string           `json:"itemId"`
	Title            string           `json:"title"`
	ShortDescription string           `json:"shortDescription,omitempty"`
	Price            ItemPrice        `json:"price"`
	MarketingPrice   *MarketingPrice  `json:"marketingPrice,omitempty"`
	ItemWebURL       string           `json:"itemWebUrl"`
	Image            *ItemImage       `json:"image,omitempty"`
	Seller           *ItemSeller      `json:"seller,omitempty"`
	Condition        string           `json:"condition"`
	ConditionID      string           `json:"conditionId"`
	BuyingOptions    []string         `json:"buyingOptions"`
	ShippingOptions  []ShippingOption `json:"shippingOptions,omitempty"`
	ItemLocation     *ItemLocation    `json:"itemLocation,omitempty"`
	ItemCreationDate string           `json:"itemCreationDate,omitempty"`
	ItemEndDate      string           `json:"itemEndDate,omitempty"`
	Categories       []ItemCategory   `json:"categories,omitempty"`

	TopRatedBuyingExperience bool `json:"topRatedBuyingExperience"`
}

// ItemPrice holds eBay price information.
type ItemPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// MarketingPrice holds the strike-through price eBay shows for discounted
// items.
type MarketingPrice struct {
	OriginalPrice      *ItemPrice `json:"originalPrice,omitempty"`
	DiscountPercentage string     `json:"discountPercentage,omitempty"`
	DiscountAmount     *ItemPrice `json:"discountAmount,omitempty"`
}

// ItemImage holds eBay image information.
type ItemImage struct {
	ImageURL string `json:"imageUrl"`
}

// ItemSeller holds eBay seller information.
type ItemSeller struct {
	Username           string `json:"username"`
	FeedbackScore      int    `json:"feedbackScore"`
	FeedbackPercentage string `json:"feedbackPercentage"`
}

// ShippingOption holds eBay shipping information.
type ShippingOption struct {
	ShippingCostType string     `json:"shippingCostType,omitempty"`
	ShippingCost     *ItemPrice `json:"shippingCost,omitempty"`
}

// ItemLocation holds where the item ships from.
type ItemLocation struct {
	City            string `json:"city,omitempty"`
	StateOrProvince string `json:"stateOrProvince,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	Country         string `json:"country,omitempty"`
}

// ItemCategory holds eBay category information.
type ItemCategory struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName,omitempty"`
}
