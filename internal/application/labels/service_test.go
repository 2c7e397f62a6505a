package labels_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	app "github.com/vendora/backend/internal/application/labels"
	"github.com/vendora/backend/internal/domain/labels"
	"github.com/vendora/backend/internal/infrastructure/sheet"
)

// =============================================================================
// Stub document backend
// =============================================================================

type stubRenderer struct {
	lastReq *sheet.RenderRequest
	calls   int
	fail    bool
}

func (s *stubRenderer) Render(_ context.Context, req *sheet.RenderRequest) (*sheet.RenderResult, error) {
	s.calls++
	s.lastReq = req
	if s.fail {
		return nil, sheet.NewRenderError(sheet.ErrCodeRenderFailed, "browser crashed", nil)
	}
	return &sheet.RenderResult{PDFData: []byte("%PDF-1.7 stub")}, nil
}

func (s *stubRenderer) Close() error { return nil }

func newService(t *testing.T, backend sheet.DocumentRenderer, workers int) *app.SheetService {
	t.Helper()
	svc, err := app.NewSheetService(labels.AveryL7159Config(), backend, workers, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func snapshot(id, name string, price float64, vendor string) labels.ProductSnapshot {
	return labels.ProductSnapshot{
		ID:              id,
		Name:            name,
		Price:           decimal.NewFromFloat(price),
		VendorShortCode: vendor,
	}
}

func displayAll(items []app.RequestItem) app.GenerateRequest {
	return app.GenerateRequest{
		Items:           items,
		ShowVendor:      true,
		ShowPrice:       true,
		ShowProductInfo: true,
	}
}

// =============================================================================
// Tests
// =============================================================================

func TestNewSheetService_RejectsUnfitStock(t *testing.T) {
	stock := labels.AveryL7159Config()
	stock.ColumnGutterMM = 20

	_, err := app.NewSheetService(stock, &stubRenderer{}, 0, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds printable width")
}

func TestGenerate_Success(t *testing.T) {
	backend := &stubRenderer{}
	svc := newService(t, backend, 4)

	result := svc.Generate(context.Background(), displayAll([]app.RequestItem{
		{Product: snapshot("p1", "Mug", 9.90, "ACME"), Quantity: 2},
		{Product: snapshot("p2", "Pen", 3.00, "ACME"), Quantity: 1},
	}))

	require.True(t, result.Success, "errors: %v", result.Errors)
	assert.Equal(t, 3, result.TotalUnits)
	assert.Equal(t, 1, result.TotalPages)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, []byte("%PDF-1.7 stub"), result.Document)
	assert.NotEmpty(t, result.RequestID)
	assert.Regexp(t, `^barcodes_2products_3x_\d{4}-\d{2}-\d{2}\.pdf$`, result.Filename)

	require.NotNil(t, backend.lastReq)
	assert.InDelta(t, 210.0, backend.lastReq.PageWidthMM, 1e-9)
	assert.InDelta(t, 297.0, backend.lastReq.PageHeightMM, 1e-9)
	assert.Contains(t, backend.lastReq.HTML, "<img class=\"label\"")
}

func TestGenerate_Pagination(t *testing.T) {
	backend := &stubRenderer{}
	svc := newService(t, backend, 8)

	result := svc.Generate(context.Background(), displayAll([]app.RequestItem{
		{Product: snapshot("p1", "Mug", 9.90, "ACME"), Quantity: 50},
	}))

	require.True(t, result.Success)
	assert.Equal(t, 50, result.TotalUnits)
	assert.Equal(t, 3, result.TotalPages)
}

func TestGenerate_PreflightRejection(t *testing.T) {
	tests := []struct {
		name  string
		items []app.RequestItem
	}{
		{"empty request", nil},
		{"all zero quantities", []app.RequestItem{
			{Product: snapshot("p1", "Mug", 9.90, "ACME"), Quantity: 0},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &stubRenderer{}
			svc := newService(t, backend, 1)

			result := svc.Generate(context.Background(), displayAll(tt.items))

			assert.False(t, result.Success)
			assert.NotEmpty(t, result.Errors)
			assert.Nil(t, result.Document)
			assert.Zero(t, backend.calls, "backend must not run for rejected requests")
		})
	}
}

func TestGenerate_BackendFailure(t *testing.T) {
	backend := &stubRenderer{fail: true}
	svc := newService(t, backend, 1)

	result := svc.Generate(context.Background(), displayAll([]app.RequestItem{
		{Product: snapshot("p1", "Mug", 9.90, "ACME"), Quantity: 1},
	}))

	assert.False(t, result.Success)
	assert.Nil(t, result.Document)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "browser crashed")
}

func TestGenerate_PartialRenderFailureDegrades(t *testing.T) {
	backend := &stubRenderer{}
	svc := newService(t, backend, 4)

	// The middle item's name carries a rune CODE128 cannot encode, so its
	// slot gets a placeholder while the job still succeeds.
	result := svc.Generate(context.Background(), displayAll([]app.RequestItem{
		{Product: snapshot("p1", "Mug", 9.90, "ACME"), Quantity: 1},
		{Product: snapshot("p2", "Café Press", 24.00, "ACME"), Quantity: 1},
		{Product: snapshot("p3", "Pen", 3.00, "ACME"), Quantity: 1},
	}))

	require.True(t, result.Success)
	assert.Equal(t, 3, result.TotalUnits)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "label 2")
	assert.Contains(t, result.Warnings[0], "placeholder")

	// All three slots are still occupied, in order.
	assert.Equal(t, 3, countLabels(backend.lastReq.HTML))
}

func TestGenerate_OrderPreservedUnderParallelism(t *testing.T) {
	backend := &stubRenderer{}
	svc := newService(t, backend, 8)

	// Two copies of A then one B. Identical (payload, meta) pairs render
	// to identical bytes, so the embedded data URLs must come out as
	// A, A, B regardless of render completion order.
	result := svc.Generate(context.Background(), displayAll([]app.RequestItem{
		{Product: snapshot("a", "Alpha", 10.00, "VD01"), Quantity: 2},
		{Product: snapshot("b", "Beta", 20.00, "VD01"), Quantity: 1},
	}))

	require.True(t, result.Success)
	images := dataURLs(backend.lastReq.HTML)
	require.Len(t, images, 3)
	assert.Equal(t, images[0], images[1], "both copies of A must be identical")
	assert.NotEqual(t, images[0], images[2], "B must differ from A")
}

func TestGenerate_TruncationWarningSurfaced(t *testing.T) {
	backend := &stubRenderer{}
	svc := newService(t, backend, 1)

	result := svc.Generate(context.Background(), displayAll([]app.RequestItem{
		{Product: snapshot("p1", "Wireless Bluetooth Headphones", 299.99, "VD01"), Quantity: 1},
	}))

	require.True(t, result.Success)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "truncated")
}

func TestSuggestFilename(t *testing.T) {
	at := time.Date(2026, 8, 23, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "barcodes_3products_50x_2026-08-23.pdf", app.SuggestFilename(3, 50, at))
	assert.Equal(t, "barcodes_1products_1x_2026-08-23.pdf", app.SuggestFilename(1, 1, at))
}

// =============================================================================
// Helpers
// =============================================================================

var dataURLPattern = regexp.MustCompile(`data:image/png;base64,([A-Za-z0-9+/=]+)`)

func dataURLs(html string) []string {
	matches := dataURLPattern.FindAllStringSubmatch(html, -1)
	urls := make([]string, len(matches))
	for i, m := range matches {
		urls[i] = m[1]
	}
	return urls
}

func countLabels(html string) int {
	return len(dataURLs(html))
}
