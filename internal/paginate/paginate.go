// Package paginate splits a laid-out timeline across a grid of pages.
//
// Two axes are tiled independently. Along the row axis the planner finds a
// row height at which every lane fits into the configured number of pages,
// then partitions lanes contiguously. Along the time axis it divides the
// available extent into tiles and derives each tile's time window.
package paginate

import (
	"math"
	"time"

	"timeline2pdf/internal/lanes"
	"timeline2pdf/internal/logging"
)

// PageInfo is one tile along the row axis.
type PageInfo struct {
	// Capacity is the number of rows the tile can hold.
	Capacity int
	// Base is the offset in mm of the first row.
	Base float64
	Rows []lanes.Lane
}

// Window is the half-open time range [From, To) shown by a time tile.
type Window struct {
	From time.Time
	To   time.Time
	// Extent is the tile's length along the time axis in mm.
	Extent float64
}

// Capacity returns how many rows of height h fit into pages tiles whose
// first tile is firstExtent long and the others pageExtent long.
func Capacity(pages int, pageExtent, firstExtent, h float64) int {
	if pages < 1 {
		return 0
	}
	return (pages-1)*int(math.Floor(pageExtent/h)) + int(math.Floor(firstExtent/h))
}

// RowHeight returns the row height for n rows spread over totalExtent,
// capped at max and lowered until Capacity holds all n rows. It steps down
// by 1mm and switches to halving below 1mm so it always stays positive.
func RowHeight(pages int, pageExtent, totalExtent float64, n int, firstExtent, max float64) float64 {
	h := max
	if n > 0 {
		h = math.Min(totalExtent/float64(n), max)
	}
	if !(h > 0) {
		h = max
	}
	if firstExtent <= 0 && (pages < 2 || pageExtent <= 0) {
		return h
	}

	start := h
	for Capacity(pages, pageExtent, firstExtent, h) < n {
		if h > 1 {
			h--
		} else {
			h /= 2
		}
	}
	logging.Logger().Debug("row height converged",
		"rows", n, "pages", pages, "initial", start, "height", h)
	return h
}

// Rows partitions lanes over pages tiles of the given extent. The first
// tile starts title mm further down; when titleTakesRows is set that space
// also comes out of its capacity. Every tile is returned, empty ones
// included.
func Rows(rows []lanes.Lane, pages int, extent, rowHeight, base, title float64, titleTakesRows bool) []PageInfo {
	infos := make([]PageInfo, pages)
	for i := range infos {
		infos[i] = PageInfo{
			Capacity: int(math.Floor(extent / rowHeight)),
			Base:     base,
		}
	}
	if pages > 0 {
		first := extent
		if titleTakesRows {
			first -= title
		}
		infos[0] = PageInfo{
			Capacity: int(math.Floor(first / rowHeight)),
			Base:     base + title,
		}
	}

	line := 0
	for i := range infos {
		end := min(line+max(infos[i].Capacity, 0), len(rows))
		infos[i].Rows = rows[line:end]
		line = end
	}
	if line < len(rows) {
		logging.Logger().Warn("rows left over after pagination",
			"placed", line, "rows", len(rows))
	}
	return infos
}

// Spans returns the extent of each time tile: every tile is size long
// except the first, which is first long.
func Spans(pages int, size, first float64) []float64 {
	out := make([]float64, pages)
	for i := range out {
		out[i] = size
	}
	if pages > 0 {
		out[0] = first
	}
	return out
}

// Windows derives the time window of each tile by advancing a cursor from
// from by extent/mmPerMilli milliseconds per tile.
func Windows(from time.Time, spans []float64, mmPerMilli float64) []Window {
	out := make([]Window, len(spans))
	offset := 0.0
	f := from
	for i, extent := range spans {
		offset += extent / mmPerMilli
		t := from.Add(time.Duration(math.Round(offset * float64(time.Millisecond))))
		out[i] = Window{From: f, To: t, Extent: extent}
		f = t
	}
	return out
}
