// Package barcode rasterizes one label tile: the CODE128 symbol for a
// scan payload plus its human-readable metadata, drawn on a fixed
// high-resolution surface that the document layer scales down to the
// physical label size.
package barcode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	bcode "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/disintegration/imaging"
	"github.com/shopspring/decimal"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Tile dimensions and layout. The surface is rendered at a fixed internal
// resolution, decoupled from the physical 63.5x33.9mm cell, so text stays
// crisp after downscaling. All numbers are device pixels; tune these for
// print legibility, the sheet geometry never depends on them.
const (
	// TileWidthPx and TileHeightPx are the internal rendering resolution
	// of one label tile.
	TileWidthPx  = 1000
	TileHeightPx = 500

	// DisplayNameLimit caps the product name drawn on the tile. It is a
	// looser, display-only limit, independent from the 32-character scan
	// payload cap.
	DisplayNameLimit = 50

	vendorFontPx  = 30
	nameFontPx    = 44
	priceFontPx   = 36
	payloadFontPx = 28

	vendorBaselinePx  = 44
	nameBaselinePx    = 102
	priceBaselinePx   = 152
	barTopPx          = 176
	barHeightPx       = 210
	barSideMarginPx   = 60
	payloadBaselinePx = 428

	placeholderText = "Error generating barcode"
)

// TileMeta carries the human-readable fields drawn above the symbol and
// the operator's display toggles.
type TileMeta struct {
	ProductName     string
	VendorLabel     string
	UnitPrice       decimal.Decimal
	ShowVendor      bool
	ShowPrice       bool
	ShowProductInfo bool
}

// Tile is one rendered label surface, PNG-encoded, tagged with its slot
// index so parallel renders land in deterministic positions.
type Tile struct {
	PNG   []byte
	Index int

	// Err is non-nil when the symbology rejected the payload and a
	// placeholder was drawn instead. The tile is still embeddable.
	Err error
}

// TileRenderer draws label tiles. It holds the parsed typeface; faces
// themselves are built per call because opentype faces are not safe for
// concurrent use, and tiles render in parallel.
type TileRenderer struct {
	typeface *opentype.Font
}

// NewTileRenderer parses the embedded typeface and returns a renderer.
func NewTileRenderer() (*TileRenderer, error) {
	typeface, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label typeface: %w", err)
	}
	return &TileRenderer{typeface: typeface}, nil
}

// Render draws the tile for one label unit. It is a pure function of
// (payload, meta): every call allocates its own surface, so calls may run
// concurrently with no coordination.
//
// A payload the CODE128 encoder rejects does not fail the render: the
// tile comes back with a visible placeholder and Err set, so one bad item
// never aborts a whole print job.
func (r *TileRenderer) Render(payload string, meta TileMeta) *Tile {
	canvas := imaging.New(TileWidthPx, TileHeightPx, color.White)

	if meta.ShowProductInfo {
		r.drawMeta(canvas, meta)
	}

	symbol, err := r.encodeSymbol(payload)
	if err != nil {
		return r.placeholderTile(canvas, payload, err)
	}

	canvas = imaging.Paste(canvas, symbol, image.Pt(barSideMarginPx, barTopPx))
	r.drawCentered(canvas, payload, payloadFontPx, payloadBaselinePx)

	return &Tile{PNG: encodePNG(canvas)}
}

// drawMeta draws the optional vendor / name / price stack above the bars.
func (r *TileRenderer) drawMeta(canvas *image.NRGBA, meta TileMeta) {
	if meta.ShowVendor && meta.VendorLabel != "" {
		r.drawCentered(canvas, meta.VendorLabel, vendorFontPx, vendorBaselinePx)
	}

	name := meta.ProductName
	if len(name) > DisplayNameLimit {
		name = name[:DisplayNameLimit]
	}
	if name != "" {
		r.drawCentered(canvas, name, nameFontPx, nameBaselinePx)
	}

	if meta.ShowPrice {
		r.drawCentered(canvas, "$"+meta.UnitPrice.StringFixed(2), priceFontPx, priceBaselinePx)
	}
}

// encodeSymbol encodes the payload as CODE128 and scales it to the bar
// area of the tile.
func (r *TileRenderer) encodeSymbol(payload string) (image.Image, error) {
	symbol, err := code128.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("code128 encoding failed: %w", err)
	}

	scaled, err := bcode.Scale(symbol, TileWidthPx-2*barSideMarginPx, barHeightPx)
	if err != nil {
		return nil, fmt.Errorf("symbol scaling failed: %w", err)
	}
	return scaled, nil
}

// placeholderTile draws the visible error marker in the bar area. The
// metadata stack already drawn is kept so the operator can still tell
// which product the slot belongs to.
func (r *TileRenderer) placeholderTile(canvas *image.NRGBA, payload string, cause error) *Tile {
	r.drawCentered(canvas, placeholderText, nameFontPx, barTopPx+barHeightPx/2)

	return &Tile{
		PNG: encodePNG(canvas),
		Err: fmt.Errorf("payload %q: %w", payload, cause),
	}
}

// drawCentered draws one horizontally centered text line at the given
// baseline.
func (r *TileRenderer) drawCentered(canvas *image.NRGBA, text string, sizePx float64, baselinePx int) {
	face, err := opentype.NewFace(r.typeface, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// Skip the line; the rest of the tile is still usable.
		return
	}
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	width := drawer.MeasureString(text).Ceil()
	x := (TileWidthPx - width) / 2
	if x < 0 {
		x = 0
	}
	drawer.Dot = fixed.P(x, baselinePx)
	drawer.DrawString(text)
}

// encodePNG serializes the finished surface.
func encodePNG(canvas *image.NRGBA) []byte {
	var buf bytes.Buffer
	_ = imaging.Encode(&buf, canvas, imaging.PNG)
	return buf.Bytes()
}
