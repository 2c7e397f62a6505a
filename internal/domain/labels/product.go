package labels

import "github.com/shopspring/decimal"

// ProductSnapshot is the read-only view of a catalog product that the
// label engine consumes. It is produced by the catalog module; the engine
// never loads or persists products itself.
type ProductSnapshot struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DiscountPrice   decimal.Decimal `json:"discount_price"`
	VendorShortCode string          `json:"vendor_short_code"`
}

// EffectivePrice returns the price printed on the label: the discount
// price when one is set and positive, the regular price otherwise.
func (p ProductSnapshot) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice.IsPositive() {
		return p.DiscountPrice
	}
	return p.Price
}

// PrintItem pairs a product with the number of label copies requested.
type PrintItem struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// PrintRequest is the ordered list of items an operator selected for
// printing. Order is significant: label placement on the sheets follows
// it exactly.
type PrintRequest []PrintItem

// TotalUnits returns the total number of labels the request expands to.
// Zero-quantity items contribute nothing.
func (r PrintRequest) TotalUnits() int {
	total := 0
	for _, item := range r {
		if item.Quantity > 0 {
			total += item.Quantity
		}
	}
	return total
}
