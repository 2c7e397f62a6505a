package labels

import "fmt"

// UnitCountWarningThreshold is the unit count above which a generation
// gets a pre-flight warning. It is not a hard cap: operators sometimes
// legitimately print very large batches, they just get told about it.
const UnitCountWarningThreshold = 1000

// PreflightResult separates blocking problems from advisory ones.
// Errors abort the generation before any document is produced; warnings
// accompany a successful result so operators can proofread before
// printing.
type PreflightResult struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Blocked returns true when the request must not proceed to generation.
func (r PreflightResult) Blocked() bool {
	return len(r.Errors) > 0
}

// ValidateRequest runs the pre-flight checks on a print request.
//
// Hard errors: an empty request, a negative quantity, or a request whose
// quantities all expand to zero units. Warnings: very large unit counts,
// items without a vendor short code (the default prefix will be encoded),
// items without a positive effective price, and items whose name had to
// be truncated to fit the scan payload.
func ValidateRequest(req PrintRequest, vendorPrefix string) PreflightResult {
	var result PreflightResult

	if len(req) == 0 {
		result.Errors = append(result.Errors, "print request is empty")
		return result
	}

	for i, item := range req {
		if item.Quantity < 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("item %d (%s): quantity cannot be negative", i+1, item.Product.Name))
		}
	}

	total := req.TotalUnits()
	if total == 0 {
		result.Errors = append(result.Errors, "request expands to zero labels; all quantities are zero")
	}
	if result.Blocked() {
		return result
	}

	if total > UnitCountWarningThreshold {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("request expands to %d labels; large batches print slowly", total))
	}

	for i, item := range req {
		if item.Quantity == 0 {
			continue
		}
		if vendorPrefix == "" && item.Product.VendorShortCode == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("item %d (%s): no vendor short code, using default prefix %q", i+1, item.Product.Name, DefaultVendorPrefix))
		}
		if !item.Product.EffectivePrice().IsPositive() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("item %d (%s): effective price %s is not positive", i+1, item.Product.Name, item.Product.EffectivePrice().StringFixed(2)))
		}
		if _, truncated := EncodePayload(item.Product, vendorPrefix); truncated {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("item %d (%s): name truncated to fit the %d-character scan payload", i+1, item.Product.Name, PayloadMaxLen))
		}
	}

	return result
}
