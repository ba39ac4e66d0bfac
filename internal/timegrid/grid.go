// Package timegrid builds the time axis of a timeline document: it picks a
// granularity tier from the pixel density of the span, snaps the start to a
// natural calendar boundary and produces tick lines and labels for the three
// nested divisions of the tier.
//
// A Grid is built once per document from the full time span and the nominal
// extent. Pages reuse it through Scale.Clip so the same calendar boundary
// lands on the same offset on every tile.
package timegrid

import (
	"math"
	"time"

	"timeline2pdf/internal/logging"
)

const (
	// CellsPerUnit scales the hours-per-millimeter density before it is
	// compared against Tier.Unit.
	CellsPerUnit = 5

	// LabelGap keeps a label whose tick falls left of the origin when the
	// next tick is at least this far in.
	LabelGap = 20

	// LabelInset shifts labels off their tick line.
	LabelInset = 0.5
)

// Tick is a label anchored at X mm from the grid origin.
type Tick struct {
	X     float64
	Label string
}

// Scale holds one division's ticks along the global axis.
type Scale struct {
	Division  Division
	Band      int
	LineWidth float64
	Lines     []float64
	Labels    []Tick
}

// Grid is the document-wide time axis.
type Grid struct {
	Tier   Tier
	From   time.Time
	To     time.Time
	Width  float64
	Scales []Scale
}

// Select picks the first tier whose unit exceeds the hours-per-cell density
// of spreading [from, to] over width, or the coarsest tier.
func Select(from, to time.Time, width float64) Tier {
	hours := float64(to.Sub(from).Milliseconds()) / width / 3_600_000 * CellsPerUnit
	for _, tier := range Tiers {
		if hours < tier.Unit {
			return tier
		}
	}
	return Tiers[len(Tiers)-1]
}

// Snap moves from back to the boundary coarse tiers are aligned on: local
// midnight from the 6 hour tier up, an even hour for the 3 hour tier.
func Snap(from time.Time, tier Tier) time.Time {
	y, mo, d := from.Date()
	switch {
	case tier.Unit >= 6:
		return time.Date(y, mo, d, 0, 0, 0, 0, from.Location())
	case tier.Unit == 3:
		h := from.Hour()
		return time.Date(y, mo, d, h-h%2, 0, 0, 0, from.Location())
	}
	return from
}

// Build selects the tier for the span, snaps from, and generates every
// division's ticks across [from, to] mapped onto [0, width]. Times are
// interpreted in loc; nil means time.Local.
func Build(from, to time.Time, width float64, loc *time.Location) Grid {
	if loc == nil {
		loc = time.Local
	}
	from, to = from.In(loc), to.In(loc)

	tier := Select(from, to, width)
	from = Snap(from, tier)
	logging.Logger().Debug("time grid tier selected",
		"unit", tier.Unit, "from", from, "to", to, "width", width)

	g := Grid{
		Tier:  tier,
		From:  from,
		To:    to,
		Width: width,
	}
	fac := g.MMPerMilli()
	for i, div := range tier.Divs {
		g.Scales = append(g.Scales, buildScale(from, to, fac, div, i))
	}
	return g
}

// MMPerMilli returns the axis scale.
func (g Grid) MMPerMilli() float64 {
	span := g.To.Sub(g.From).Milliseconds()
	if span <= 0 {
		return 0
	}
	return g.Width / float64(span)
}

// Offset returns the position of t along the global axis in mm.
func (g Grid) Offset(t time.Time) float64 {
	return float64(t.Sub(g.From).Milliseconds()) * g.MMPerMilli()
}

func buildScale(from, to time.Time, fac float64, div Division, band int) Scale {
	s := Scale{
		Division:  div,
		Band:      band,
		LineWidth: Weights[band],
	}
	pos := func(t time.Time) float64 {
		return float64(t.Sub(from).Milliseconds()) * fac
	}

	cursor := startOf(from, div.Unit)
	for !cursor.After(to) {
		x := pos(cursor)
		label := format(cursor, div.Unit)

		cursor = advance(cursor, div)
		next := pos(cursor)

		if x >= 0 {
			s.Lines = append(s.Lines, x)
		}
		if x >= 0 || next > LabelGap {
			s.Labels = append(s.Labels, Tick{X: math.Max(0, x) + LabelInset, Label: label})
		}
	}
	return s
}

// Clip returns the lines and labels whose global position lies within
// [lo, hi], shifted so lo maps to zero.
func (s Scale) Clip(lo, hi float64) (lines []float64, labels []Tick) {
	for _, x := range s.Lines {
		if x >= lo && x <= hi {
			lines = append(lines, x-lo)
		}
	}
	for _, tk := range s.Labels {
		if tk.X >= lo && tk.X <= hi {
			labels = append(labels, Tick{X: tk.X - lo, Label: tk.Label})
		}
	}
	return lines, labels
}
