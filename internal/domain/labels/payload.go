package labels

// Payload format: {VendorPrefix}-{ProductName}-${Price}
//
// The payload is capped at PayloadMaxLen characters so the CODE128 symbol
// fits reliably within the 63.5mm label cell at scan-grade resolution.
// When the full concatenation would exceed the cap, only the product name
// is truncated, from its tail; the vendor prefix and the price are never
// cut.
const (
	// PayloadMaxLen is the hard cap on the scannable payload length.
	PayloadMaxLen = 32

	// DefaultVendorPrefix is used when neither the caller nor the product
	// snapshot supplies a vendor short code.
	DefaultVendorPrefix = "VD01"

	separator = "-"
)

// EncodePayload builds the fixed-format scannable payload for a product.
// vendorPrefix overrides the product's own short code when non-empty.
// The returned flag reports whether the product name had to be truncated
// to honor the length cap.
//
// EncodePayload is total: it never fails, and an empty product name yields
// a valid (if degenerate) payload. Flagging such inputs is the job of
// ValidateRequest, not the encoder.
func EncodePayload(p ProductSnapshot, vendorPrefix string) (string, bool) {
	prefix := resolveVendorPrefix(p, vendorPrefix)
	price := "$" + p.EffectivePrice().StringFixed(2)

	budget := PayloadMaxLen - len(prefix+separator) - len(separator+price)
	name := headOf(p.Name, budget)
	payload := prefix + separator + name + separator + price

	// Defensive second pass for abnormally long prefixes or prices: the
	// name shrinks to a single character at minimum, so the payload may
	// still exceed the cap in that degenerate case, but the pass cannot
	// loop.
	if len(payload) > PayloadMaxLen {
		budget = PayloadMaxLen - len(prefix) - len(price) - 2*len(separator)
		name = headOf(p.Name, budget)
		payload = prefix + separator + name + separator + price
	}

	return payload, len(name) < len(p.Name)
}

// resolveVendorPrefix picks the vendor prefix for a payload: explicit
// override first, then the product's short code, then the default.
func resolveVendorPrefix(p ProductSnapshot, override string) string {
	if override != "" {
		return override
	}
	if p.VendorShortCode != "" {
		return p.VendorShortCode
	}
	return DefaultVendorPrefix
}

// headOf returns the first n characters of s, keeping at least one
// character when s is non-empty regardless of how small n is.
func headOf(s string, n int) string {
	if n < 1 {
		n = 1
	}
	if len(s) <= n {
		return s
	}
	return s[:n]
}
