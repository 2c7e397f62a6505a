package sheet

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/backend/internal/domain/labels"
	"github.com/vendora/backend/internal/infrastructure/barcode"
)

func testLayout(t *testing.T) labels.SheetLayout {
	t.Helper()
	layout, err := labels.NewSheetLayout(labels.AveryL7159Config())
	require.NoError(t, err)
	return layout
}

func fakeTiles(n int) []*barcode.Tile {
	tiles := make([]*barcode.Tile, n)
	for i := range tiles {
		tiles[i] = &barcode.Tile{PNG: []byte{0x89, 'P', 'N', 'G', byte(i)}, Index: i}
	}
	return tiles
}

func testSummary(units, pages int) Summary {
	return Summary{
		TotalUnits:  units,
		TotalPages:  pages,
		GeneratedAt: time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC),
	}
}

func TestComposer_SinglePage(t *testing.T) {
	composer := NewComposer(testLayout(t))

	html := composer.Compose(fakeTiles(3), testSummary(3, 1))

	assert.Equal(t, 1, strings.Count(html, "<div class=\"page\">"))
	assert.Equal(t, 3, strings.Count(html, "<img class=\"label\""))

	// First three slots: row 0, columns 0..2.
	assert.Contains(t, html, "left: 2.00mm; top: 12.50mm;")
	assert.Contains(t, html, "left: 71.00mm; top: 12.50mm;")
	assert.Contains(t, html, "left: 140.00mm; top: 12.50mm;")
	assert.Contains(t, html, "width: 63.50mm; height: 33.90mm;")
}

func TestComposer_PaginatesRowMajor(t *testing.T) {
	composer := NewComposer(testLayout(t))

	// 50 units on a 24-per-page grid: two full pages plus two labels on
	// the third, starting again at row 0, column 0.
	html := composer.Compose(fakeTiles(50), testSummary(50, 3))

	assert.Equal(t, 3, strings.Count(html, "<div class=\"page\">"))
	assert.Equal(t, 50, strings.Count(html, "<img class=\"label\""))

	pages := strings.Split(html, "<div class=\"page\">")[1:]
	require.Len(t, pages, 3)
	assert.Equal(t, 24, strings.Count(pages[0], "<img class=\"label\""))
	assert.Equal(t, 24, strings.Count(pages[1], "<img class=\"label\""))
	assert.Equal(t, 2, strings.Count(pages[2], "<img class=\"label\""))

	// The third page restarts at the grid origin.
	assert.Contains(t, pages[2], "left: 2.00mm; top: 12.50mm;")
	assert.Contains(t, pages[2], "left: 71.00mm; top: 12.50mm;")

	// Second row sits directly below the first (zero row gutter).
	assert.Contains(t, pages[0], "top: 46.40mm;")
}

func TestComposer_SummaryOnLastPageOnly(t *testing.T) {
	composer := NewComposer(testLayout(t))

	html := composer.Compose(fakeTiles(30), testSummary(30, 2))

	assert.Equal(t, 1, strings.Count(html, "<div class=\"summary\""))
	assert.Contains(t, html, "30 labels on 2 pages")

	pages := strings.Split(html, "<div class=\"page\">")[1:]
	require.Len(t, pages, 2)
	assert.NotContains(t, pages[0], "class=\"summary\"")
	assert.Contains(t, pages[1], "class=\"summary\"")
}

func TestComposer_SummaryBelowGrid(t *testing.T) {
	layout := testLayout(t)
	composer := NewComposer(layout)

	html := composer.Compose(fakeTiles(24), testSummary(24, 1))

	// Grid bottom is 12.5 + 8*33.9 = 283.7mm; the summary starts below it
	// and stays on the page.
	assert.Contains(t, html, "top: 286.20mm;")
	assert.Greater(t, layout.PageHeightMM, layout.GridBottomMM()+summaryOffsetMM)
}

func TestComposer_TilesEmbeddedInOrder(t *testing.T) {
	composer := NewComposer(testLayout(t))
	tiles := fakeTiles(2)

	html := composer.Compose(tiles, testSummary(2, 1))

	// Distinct payload bytes keep the two data URLs distinguishable.
	idxFirst := strings.Index(html, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(tiles[0].PNG))
	idxSecond := strings.Index(html, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(tiles[1].PNG))
	require.GreaterOrEqual(t, idxFirst, 0)
	require.GreaterOrEqual(t, idxSecond, 0)
	assert.Less(t, idxFirst, idxSecond)
}

func TestComposer_PageSizeDeclared(t *testing.T) {
	composer := NewComposer(testLayout(t))

	html := composer.Compose(fakeTiles(1), testSummary(1, 1))

	assert.Contains(t, html, "@page { size: 210.00mm 297.00mm; margin: 0; }")
	assert.Contains(t, html, "width: 210.00mm; height: 297.00mm;")
}
