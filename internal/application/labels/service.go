// Package labels orchestrates the barcode sheet generation pipeline:
// pre-flight validation, payload encoding with quantity expansion, tile
// rendering, page composition and PDF assembly.
package labels

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vendora/backend/internal/domain/labels"
	"github.com/vendora/backend/internal/infrastructure/barcode"
	"github.com/vendora/backend/internal/infrastructure/sheet"
)

// defaultRenderWorkers bounds the parallel tile renders per generation.
// Each render allocates its own 1000x500 surface, so the bound is about
// memory, not correctness.
const defaultRenderWorkers = 8

// SheetService runs barcode sheet generations. It is stateless between
// calls: every Generate builds its result from scratch and shares nothing
// with concurrent generations.
type SheetService struct {
	layout      labels.SheetLayout
	tiles       *barcode.TileRenderer
	composer    *sheet.Composer
	docRenderer sheet.DocumentRenderer
	workers     int
	logger      *zap.Logger
	now         func() time.Time
}

// NewSheetService creates a SheetService for the given label stock
// configuration. An unfit configuration is a construction-time failure,
// never a render-time one.
func NewSheetService(
	stock labels.SheetConfig,
	docRenderer sheet.DocumentRenderer,
	workers int,
	logger *zap.Logger,
) (*SheetService, error) {
	layout, err := labels.NewSheetLayout(stock)
	if err != nil {
		return nil, err
	}

	tiles, err := barcode.NewTileRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to build tile renderer: %w", err)
	}

	if workers <= 0 {
		workers = defaultRenderWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SheetService{
		layout:      layout,
		tiles:       tiles,
		composer:    sheet.NewComposer(layout),
		docRenderer: docRenderer,
		workers:     workers,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Layout returns the active sheet geometry.
func (s *SheetService) Layout() labels.SheetLayout {
	return s.layout
}

// Generate runs the whole pipeline for one print request.
//
// The result is degraded rather than failed when individual labels hit a
// render error: those slots carry a visible placeholder and the result
// collects a warning per affected label. Only pre-flight validation
// failures and document backend failures produce Success=false, and a
// failed generation never returns a document.
func (s *SheetService) Generate(ctx context.Context, req GenerateRequest) *GenerateResult {
	requestID := uuid.NewString()
	result := &GenerateResult{RequestID: requestID}

	printReq := toPrintRequest(req.Items)

	preflight := labels.ValidateRequest(printReq, req.VendorPrefix)
	result.Warnings = append(result.Warnings, preflight.Warnings...)
	if preflight.Blocked() {
		result.Errors = preflight.Errors
		s.logger.Warn("sheet generation rejected",
			zap.String("requestId", requestID),
			zap.Strings("errors", result.Errors))
		return result
	}

	units := labels.ExpandUnits(printReq, req.VendorPrefix)
	result.TotalUnits = len(units)
	result.TotalPages = s.layout.PageCount(len(units))

	tiles := s.renderTiles(ctx, units, req)
	for i, tile := range tiles {
		if tile.Err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("label %d (%s): placeholder used, %v", i+1, units[i].ProductName, tile.Err))
		}
	}

	generatedAt := s.now()
	html := s.composer.Compose(tiles, sheet.Summary{
		TotalUnits:  len(units),
		TotalPages:  result.TotalPages,
		GeneratedAt: generatedAt,
	})

	rendered, err := s.docRenderer.Render(ctx, &sheet.RenderRequest{
		HTML:         html,
		PageWidthMM:  s.layout.PageWidthMM,
		PageHeightMM: s.layout.PageHeightMM,
		Title:        fmt.Sprintf("Barcode Labels - %d units", len(units)),
	})
	if err != nil {
		s.logger.Error("document assembly failed",
			zap.String("requestId", requestID),
			zap.Error(err))
		result.Errors = append(result.Errors, fmt.Sprintf("document assembly failed: %v", err))
		return result
	}

	result.Success = true
	result.Document = rendered.PDFData
	result.Filename = SuggestFilename(len(req.Items), len(units), generatedAt)

	s.logger.Info("sheet generation completed",
		zap.String("requestId", requestID),
		zap.Int("units", result.TotalUnits),
		zap.Int("pages", result.TotalPages),
		zap.Int("warnings", len(result.Warnings)),
		zap.Int("pdfBytes", len(result.Document)))

	return result
}

// renderTiles renders every unit's tile, fanning out across a bounded
// worker pool. Completion order varies; placement order does not: each
// tile is written to its pre-assigned index, and the composer consumes
// the slice strictly in order.
func (s *SheetService) renderTiles(ctx context.Context, units []labels.EncodedUnit, req GenerateRequest) []*barcode.Tile {
	tiles := make([]*barcode.Tile, len(units))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, unit := range units {
		g.Go(func() error {
			tile := s.tiles.Render(unit.Payload, barcode.TileMeta{
				ProductName:     unit.ProductName,
				VendorLabel:     unit.VendorLabel,
				UnitPrice:       unit.UnitPrice,
				ShowVendor:      req.ShowVendor,
				ShowPrice:       req.ShowPrice,
				ShowProductInfo: req.ShowProductInfo,
			})
			tile.Index = i
			tiles[i] = tile
			return nil
		})
	}
	// Renders recover internally and never return errors.
	_ = g.Wait()

	return tiles
}

func toPrintRequest(items []RequestItem) labels.PrintRequest {
	req := make(labels.PrintRequest, len(items))
	for i, item := range items {
		req[i] = labels.PrintItem{Product: item.Product, Quantity: item.Quantity}
	}
	return req
}
