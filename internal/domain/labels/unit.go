package labels

import "github.com/shopspring/decimal"

// EncodedUnit is one printable label: the scannable payload plus the
// human-readable metadata drawn above the symbol. One unit is produced
// per requested copy.
type EncodedUnit struct {
	Payload     string
	ProductName string
	VendorLabel string
	UnitPrice   decimal.Decimal
	SourceID    string
	Truncated   bool
}

// ExpandUnits expands a print request into its ordered sequence of label
// units: request order first, then copy order within each item. The
// document assembler relies on this ordering for deterministic page
// placement, so units are never reordered downstream.
//
// vendorPrefix, when non-empty, overrides every product's own short code.
func ExpandUnits(req PrintRequest, vendorPrefix string) []EncodedUnit {
	units := make([]EncodedUnit, 0, req.TotalUnits())
	for _, item := range req {
		if item.Quantity <= 0 {
			continue
		}

		payload, truncated := EncodePayload(item.Product, vendorPrefix)
		unit := EncodedUnit{
			Payload:     payload,
			ProductName: item.Product.Name,
			VendorLabel: resolveVendorPrefix(item.Product, vendorPrefix),
			UnitPrice:   item.Product.EffectivePrice(),
			SourceID:    item.Product.ID,
			Truncated:   truncated,
		}
		for i := 0; i < item.Quantity; i++ {
			units = append(units, unit)
		}
	}
	return units
}
