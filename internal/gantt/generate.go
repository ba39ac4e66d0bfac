// Package gantt compiles grouped time intervals into a paginated vector
// document.
//
// Generate runs the whole pipeline: lane packing of every group, one time
// grid for the full span, row-height convergence and tiling along both
// page axes, then a single emitter that writes each page's instruction
// stream. It holds no state between calls and is safe for concurrent use
// with independent inputs.
package gantt

import (
	"fmt"
	"math"
	"time"

	"timeline2pdf/internal/lanes"
	"timeline2pdf/internal/logging"
	"timeline2pdf/internal/paginate"
	"timeline2pdf/internal/timegrid"
	"timeline2pdf/internal/units"
	"timeline2pdf/internal/vector"
)

// Page furniture, in mm.
const (
	TitleHeight = 10
	// ColWidth is the group label column in horizontal mode.
	ColWidth = 50
	// AxisHeight is the time axis strip in horizontal mode.
	AxisHeight = 10
	// ColHeight is the group label strip in vertical mode.
	ColHeight = 10
	// AxisWidth is the time axis strip in vertical mode.
	AxisWidth = 25
	Margin    = 15

	// verticalRowCap bounds the column width in vertical mode.
	verticalRowCap = 200
	// rowsPerGroupFont caps horizontal rows at ten times the group font.
	rowsPerGroupFont = 10
)

// sheet is the fixed page geometry derived from the configuration.
type sheet struct {
	horizontal bool
	// full sheet
	fullW, fullH float64
	// per page drawing area, margins and axis strip removed
	pageW, pageH float64
	// whole document area over all tiles, title and label column removed
	width, height float64
}

func newSheet(cfg Config, paper Paper) sheet {
	s := sheet{horizontal: cfg.Mode == Horizontal}
	if cfg.Orientation == Portrait {
		s.fullW, s.fullH = paper.Width, paper.Height
	} else {
		s.fullW, s.fullH = paper.Height, paper.Width
	}

	s.pageW = s.fullW - 2*Margin
	s.pageH = s.fullH - 2*Margin
	if s.horizontal {
		s.pageH -= AxisHeight
	} else {
		s.pageW -= AxisWidth
	}

	s.width = float64(cfg.HPages) * s.pageW
	s.height = float64(cfg.VPages)*s.pageH - TitleHeight
	if s.horizontal {
		s.width -= ColWidth
	} else {
		s.height -= ColHeight
	}
	return s
}

// timeExtent is the length of the whole time axis.
func (s sheet) timeExtent() float64 {
	if s.horizontal {
		return s.width
	}
	return s.height
}

// plan is everything the emitter needs besides the configuration.
type plan struct {
	sheet
	grid      timegrid.Grid
	rowHeight float64
	rows      []paginate.PageInfo
	windows   []paginate.Window
	// font sizes in mm
	groupFont, taskFont, hourFont float64
}

// Generate lays out groups according to cfg and returns the document.
// Configuration errors are reported before any layout work happens.
func Generate(groups []lanes.Group, cfg Config) (vector.Document, error) {
	if err := cfg.Validate(); err != nil {
		return vector.Document{}, err
	}
	paper, _ := LookupPaper(cfg.PaperSize)

	from, to := cfg.From, cfg.To
	if lo, hi, ok := lanes.Bounds(groups); ok {
		if from.IsZero() {
			from = lo
		}
		if to.IsZero() {
			to = hi
		}
	}
	if from.IsZero() || to.IsZero() || !from.Before(to) {
		return vector.Document{}, fmt.Errorf("%w: from %v, to %v", ErrEmptySpan, from, to)
	}

	rows := lanes.Layout(groups)
	p := newPlan(cfg, paper, rows, from, to)
	logging.Logger().Debug("document planned",
		"groups", len(groups), "rows", len(rows),
		"rowHeight", p.rowHeight, "rowTiles", len(p.rows), "timeTiles", len(p.windows))

	e := emitter{cfg: cfg, plan: p, loc: cfg.location()}
	doc := vector.Document{Title: cfg.Title}
	for k, info := range p.rows {
		for j, win := range p.windows {
			doc.Pages = append(doc.Pages, e.page(k, info, j, win))
		}
	}
	return doc, nil
}

func newPlan(cfg Config, paper Paper, rows []lanes.Lane, from, to time.Time) plan {
	p := plan{sheet: newSheet(cfg, paper)}
	p.grid = timegrid.Build(from, to, p.timeExtent(), cfg.location())
	n := len(rows)

	var spans []float64
	if p.horizontal {
		p.rowHeight = paginate.RowHeight(cfg.VPages, p.pageH, p.height, n,
			p.pageH-TitleHeight, rowsPerGroupFont*units.PtToMM(cfg.GroupsFontSize))
		p.rows = paginate.Rows(rows, cfg.VPages, p.pageH, p.rowHeight,
			Margin+AxisHeight, TitleHeight, true)
		spans = paginate.Spans(cfg.HPages, p.pageW, p.pageW-ColWidth)
	} else {
		p.rowHeight = paginate.RowHeight(cfg.HPages, p.pageW, p.width, n,
			p.pageW, verticalRowCap)
		p.rows = paginate.Rows(rows, cfg.HPages, p.pageW, p.rowHeight,
			Margin, TitleHeight, false)
		spans = paginate.Spans(cfg.VPages, p.pageH, p.pageH-ColHeight-TitleHeight)
	}
	p.windows = paginate.Windows(p.grid.From, spans, p.grid.MMPerMilli())

	p.groupFont = fontSize(cfg.GroupsFontSize, p.rowHeight)
	p.taskFont = fontSize(cfg.TasksFontSize, p.rowHeight)
	p.hourFont = fontSize(cfg.HoursFontSize, p.rowHeight)
	return p
}

// fontSize converts pt to mm and keeps the text one mm shorter than a
// row. Rows thinner than 2mm get half their height.
func fontSize(pt, rowHeight float64) float64 {
	return math.Min(units.PtToMM(pt), math.Max(rowHeight-1, rowHeight/2))
}
