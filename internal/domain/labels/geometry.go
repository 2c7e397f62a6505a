package labels

import (
	"fmt"

	"github.com/vendora/backend/internal/domain/shared"
)

// Geometry tolerance for the fit assertions. The label stock is pre-cut,
// so the grid must fit the printable area exactly; the epsilon only
// absorbs binary floating point representation error, not real overflow.
const fitEpsilonMM = 1e-6

// SheetConfig holds the physical constants describing one label stock:
// page size, margins, label cell size, gutters and grid dimensions, all
// in millimeters.
type SheetConfig struct {
	PageWidthMM    float64
	PageHeightMM   float64
	MarginTopMM    float64
	MarginBottomMM float64
	MarginLeftMM   float64
	MarginRightMM  float64
	LabelWidthMM   float64
	LabelHeightMM  float64
	ColumnGutterMM float64
	RowGutterMM    float64
	Rows           int
	Columns        int
}

// AveryL7159Config returns the constants for Avery L7159 stock:
// 24 labels of 63.5x33.9mm on a portrait A4 sheet, 8 rows by 3 columns.
func AveryL7159Config() SheetConfig {
	return SheetConfig{
		PageWidthMM:    210,
		PageHeightMM:   297,
		MarginTopMM:    12.5,
		MarginBottomMM: 12.5,
		MarginLeftMM:   2,
		MarginRightMM:  5,
		LabelWidthMM:   63.5,
		LabelHeightMM:  33.9,
		ColumnGutterMM: 5.5,
		RowGutterMM:    0,
		Rows:           8,
		Columns:        3,
	}
}

// SheetLayout is the validated grid geometry derived from a SheetConfig.
// Constructing one asserts that the grid fits the printable area, so a
// SheetLayout in hand is always safe to place labels with.
type SheetLayout struct {
	PageWidthMM    float64 `json:"page_width_mm"`
	PageHeightMM   float64 `json:"page_height_mm"`
	MarginTopMM    float64 `json:"margin_top_mm"`
	MarginBottomMM float64 `json:"margin_bottom_mm"`
	MarginLeftMM   float64 `json:"margin_left_mm"`
	MarginRightMM  float64 `json:"margin_right_mm"`
	LabelWidthMM   float64 `json:"label_width_mm"`
	LabelHeightMM  float64 `json:"label_height_mm"`
	ColumnGutterMM float64 `json:"column_gutter_mm"`
	RowGutterMM    float64 `json:"row_gutter_mm"`
	Rows           int     `json:"rows"`
	Columns        int     `json:"columns"`
}

// Slot identifies one label position within a paginated document.
type Slot struct {
	Page int `json:"page"`
	Row  int `json:"row"`
	Col  int `json:"col"`
}

// NewSheetLayout validates a sheet configuration and derives the grid
// geometry. A configuration whose grid does not fit the printable area is
// a programming or configuration bug, reported at construction time as an
// INVALID_LAYOUT domain error rather than silently clipped at render time.
func NewSheetLayout(cfg SheetConfig) (SheetLayout, error) {
	if cfg.PageWidthMM <= 0 || cfg.PageHeightMM <= 0 {
		return SheetLayout{}, shared.NewDomainError("INVALID_LAYOUT", "Page dimensions must be positive")
	}
	if cfg.LabelWidthMM <= 0 || cfg.LabelHeightMM <= 0 {
		return SheetLayout{}, shared.NewDomainError("INVALID_LAYOUT", "Label dimensions must be positive")
	}
	if cfg.Rows < 1 || cfg.Columns < 1 {
		return SheetLayout{}, shared.NewDomainError("INVALID_LAYOUT", "Grid must have at least one row and one column")
	}
	if cfg.MarginTopMM < 0 || cfg.MarginBottomMM < 0 || cfg.MarginLeftMM < 0 || cfg.MarginRightMM < 0 {
		return SheetLayout{}, shared.NewDomainError("INVALID_LAYOUT", "Margins cannot be negative")
	}
	if cfg.ColumnGutterMM < 0 || cfg.RowGutterMM < 0 {
		return SheetLayout{}, shared.NewDomainError("INVALID_LAYOUT", "Gutters cannot be negative")
	}

	gridWidth := float64(cfg.Columns)*cfg.LabelWidthMM + float64(cfg.Columns-1)*cfg.ColumnGutterMM
	availWidth := cfg.PageWidthMM - cfg.MarginLeftMM - cfg.MarginRightMM
	if gridWidth > availWidth+fitEpsilonMM {
		return SheetLayout{}, shared.NewDomainError("INVALID_LAYOUT",
			fmt.Sprintf("Grid width %.2fmm exceeds printable width %.2fmm", gridWidth, availWidth))
	}

	gridHeight := float64(cfg.Rows)*cfg.LabelHeightMM + float64(cfg.Rows-1)*cfg.RowGutterMM
	availHeight := cfg.PageHeightMM - cfg.MarginTopMM - cfg.MarginBottomMM
	if gridHeight > availHeight+fitEpsilonMM {
		return SheetLayout{}, shared.NewDomainError("INVALID_LAYOUT",
			fmt.Sprintf("Grid height %.2fmm exceeds printable height %.2fmm", gridHeight, availHeight))
	}

	return SheetLayout{
		PageWidthMM:    cfg.PageWidthMM,
		PageHeightMM:   cfg.PageHeightMM,
		MarginTopMM:    cfg.MarginTopMM,
		MarginBottomMM: cfg.MarginBottomMM,
		MarginLeftMM:   cfg.MarginLeftMM,
		MarginRightMM:  cfg.MarginRightMM,
		LabelWidthMM:   cfg.LabelWidthMM,
		LabelHeightMM:  cfg.LabelHeightMM,
		ColumnGutterMM: cfg.ColumnGutterMM,
		RowGutterMM:    cfg.RowGutterMM,
		Rows:           cfg.Rows,
		Columns:        cfg.Columns,
	}, nil
}

// Capacity returns the number of labels per page.
func (l SheetLayout) Capacity() int {
	return l.Rows * l.Columns
}

// PageCount returns the number of pages needed for the given unit count.
func (l SheetLayout) PageCount(units int) int {
	if units <= 0 {
		return 0
	}
	return (units + l.Capacity() - 1) / l.Capacity()
}

// Slot maps a unit index to its page and grid position. Units fill each
// page in row-major order before spilling onto the next.
func (l SheetLayout) Slot(index int) Slot {
	capacity := l.Capacity()
	onPage := index % capacity
	return Slot{
		Page: index / capacity,
		Row:  onPage / l.Columns,
		Col:  onPage % l.Columns,
	}
}

// CellOrigin returns the top-left corner of a grid cell in millimeters
// from the page's top-left corner.
func (l SheetLayout) CellOrigin(row, col int) (x, y float64) {
	x = l.MarginLeftMM + float64(col)*(l.LabelWidthMM+l.ColumnGutterMM)
	y = l.MarginTopMM + float64(row)*(l.LabelHeightMM+l.RowGutterMM)
	return x, y
}

// GridBottomMM returns the y coordinate just below the last label row,
// where per-sheet annotations may be placed without overlapping labels.
func (l SheetLayout) GridBottomMM() float64 {
	return l.MarginTopMM + float64(l.Rows)*l.LabelHeightMM + float64(l.Rows-1)*l.RowGutterMM
}
