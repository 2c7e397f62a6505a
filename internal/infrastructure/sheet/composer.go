// Package sheet assembles rendered label tiles into a paginated,
// print-ready document matching the physical label stock, and renders it
// to PDF through a pluggable document backend.
package sheet

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/vendora/backend/internal/domain/labels"
	"github.com/vendora/backend/internal/infrastructure/barcode"
)

// summaryOffsetMM is how far below the last label row the final-page
// summary line sits. The line lives in the bottom margin of the stock and
// must never reach into a label cell.
const summaryOffsetMM = 2.5

// Summary is the operator-verification annotation appended to the final
// page, outside the label grid.
type Summary struct {
	TotalUnits  int
	TotalPages  int
	GeneratedAt time.Time
}

// Composer lays rendered tiles onto absolutely-positioned pages following
// the sheet geometry. Its output is deterministic for a given tile
// sequence, which is what keeps placement aligned with pick lists.
type Composer struct {
	layout labels.SheetLayout
}

// NewComposer creates a composer for one sheet geometry.
func NewComposer(layout labels.SheetLayout) *Composer {
	return &Composer{layout: layout}
}

// Compose builds the complete HTML document for the given tiles. Tiles
// are placed strictly in slice order: index i goes to layout.Slot(i).
// The last page additionally carries the summary annotation below the
// grid.
func (c *Composer) Compose(tiles []*barcode.Tile, summary Summary) string {
	totalPages := c.layout.PageCount(len(tiles))

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"UTF-8\"><style>\n")
	b.WriteString("* { margin: 0; padding: 0; }\n")
	fmt.Fprintf(&b, "@page { size: %.2fmm %.2fmm; margin: 0; }\n", c.layout.PageWidthMM, c.layout.PageHeightMM)
	fmt.Fprintf(&b, ".page { position: relative; width: %.2fmm; height: %.2fmm; overflow: hidden; page-break-after: always; }\n",
		c.layout.PageWidthMM, c.layout.PageHeightMM)
	b.WriteString(".page:last-child { page-break-after: auto; }\n")
	b.WriteString(".label { position: absolute; }\n")
	b.WriteString(".summary { position: absolute; font-family: sans-serif; font-size: 8pt; color: #444; }\n")
	b.WriteString("</style></head><body>\n")

	capacity := c.layout.Capacity()
	for p := 0; p < totalPages; p++ {
		b.WriteString("<div class=\"page\">\n")

		first := p * capacity
		last := min(first+capacity, len(tiles))
		for i := first; i < last; i++ {
			c.writeTile(&b, tiles[i], i)
		}

		if p == totalPages-1 {
			c.writeSummary(&b, summary)
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</body></html>\n")
	return b.String()
}

// writeTile embeds one tile image at its grid position. The browser
// scales the fixed-resolution bitmap down to the physical cell size.
func (c *Composer) writeTile(b *strings.Builder, tile *barcode.Tile, index int) {
	slot := c.layout.Slot(index)
	x, y := c.layout.CellOrigin(slot.Row, slot.Col)

	fmt.Fprintf(b,
		"<img class=\"label\" style=\"left: %.2fmm; top: %.2fmm; width: %.2fmm; height: %.2fmm;\" src=\"data:image/png;base64,%s\">\n",
		x, y, c.layout.LabelWidthMM, c.layout.LabelHeightMM,
		base64.StdEncoding.EncodeToString(tile.PNG))
}

// writeSummary places the verification line just below the label grid.
func (c *Composer) writeSummary(b *strings.Builder, summary Summary) {
	fmt.Fprintf(b,
		"<div class=\"summary\" style=\"left: %.2fmm; top: %.2fmm;\">%d labels on %d pages, generated %s</div>\n",
		c.layout.MarginLeftMM,
		c.layout.GridBottomMM()+summaryOffsetMM,
		summary.TotalUnits,
		summary.TotalPages,
		summary.GeneratedAt.Format("2006-01-02 15:04"))
}
