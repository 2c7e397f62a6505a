package labels

import (
	"fmt"
	"time"

	"github.com/vendora/backend/internal/domain/labels"
)

// GenerateRequest is the application-level input for one sheet
// generation: the operator's item selection plus display options.
type GenerateRequest struct {
	Items []RequestItem

	// VendorPrefix, when set, overrides every product's own short code in
	// the scan payload.
	VendorPrefix string

	// Display toggles for the human-readable block on each label.
	ShowVendor      bool
	ShowPrice       bool
	ShowProductInfo bool
}

// RequestItem pairs a product snapshot with a print quantity.
type RequestItem struct {
	Product  labels.ProductSnapshot
	Quantity int
}

// GenerateResult is the outcome of one generation call. It is constructed
// once per call and immutable after return; no state survives between
// calls.
type GenerateResult struct {
	RequestID  string   `json:"request_id"`
	Success    bool     `json:"success"`
	Document   []byte   `json:"-"`
	Filename   string   `json:"filename,omitempty"`
	TotalPages int      `json:"total_pages"`
	TotalUnits int      `json:"total_units"`
	Errors     []string `json:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// SuggestFilename derives the download filename from the request shape
// and generation date, e.g. "barcodes_3products_50x_2026-08-23.pdf".
func SuggestFilename(productCount, totalUnits int, at time.Time) string {
	return fmt.Sprintf("barcodes_%dproducts_%dx_%s.pdf",
		productCount, totalUnits, at.Format("2006-01-02"))
}
