package sheet

import (
	"context"
	"time"
)

// RenderRequest contains the parameters for rendering a composed sheet
// document to PDF.
type RenderRequest struct {
	// HTML is the complete composed document.
	HTML string
	// PageWidthMM and PageHeightMM define the physical page size.
	// Margins are always zero: the label grid positions itself, including
	// the stock's own margins, in absolute page coordinates.
	PageWidthMM  float64
	PageHeightMM float64
	// Title for the PDF document metadata
	Title string
	// Timeout overrides the default rendering timeout
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// DocumentRenderer defines the interface for turning a composed sheet
// document into a print-ready PDF.
type DocumentRenderer interface {
	// Render converts the composed document to a PDF
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	// Close releases any resources held by the renderer
	Close() error
}

// RenderError represents an error from the document backend
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for document backend failures
const (
	ErrCodeRenderTimeout   = "RENDER_TIMEOUT"
	ErrCodeRenderFailed    = "RENDER_FAILED"
	ErrCodeInvalidHTML     = "INVALID_HTML"
	ErrCodeInvalidPageSize = "INVALID_PAGE_SIZE"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
