// Package svgcanvas writes vector documents as SVG, one file per page.
package svgcanvas

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"timeline2pdf/internal/palette"
	"timeline2pdf/internal/render"
	"timeline2pdf/internal/vector"
)

// UnitsPerMM is the resolution of the integer user space.
const UnitsPerMM = 10

const fontFamily = "Helvetica, Arial, sans-serif"

// Canvas builds one SVG document per page.
type Canvas struct {
	Pages [][]byte

	buf    *bytes.Buffer
	s      *svg.SVG
	style  vector.StyleState
	xs, ys []int
	closed bool
	groups int
	clipID int
}

// Render returns the SVG source of every page of doc.
func Render(doc vector.Document) ([][]byte, error) {
	c := &Canvas{}
	if err := render.Replay(doc, c, UnitsPerMM); err != nil {
		return nil, err
	}
	return c.Pages, nil
}

// iround rounds to the nearest SVG user unit.
func iround(v float64) int { return int(math.Round(v)) }

// BeginPage starts a new SVG document sized in mm with a white background.
func (c *Canvas) BeginPage(w, h float64) error {
	c.buf = new(bytes.Buffer)
	c.s = svg.New(c.buf)
	wi, hi := iround(w), iround(h)
	c.s.Startunit(wi/UnitsPerMM, hi/UnitsPerMM, "mm", fmt.Sprintf(`viewBox="0 0 %d %d"`, wi, hi))
	c.s.Rect(0, 0, wi, hi, "fill:#ffffff")
	c.groups = 0
	return nil
}

// EndPage closes open clip groups and keeps the page source.
func (c *Canvas) EndPage() error {
	for ; c.groups > 0; c.groups-- {
		c.s.Gend()
	}
	c.s.End()
	c.Pages = append(c.Pages, c.buf.Bytes())
	c.buf, c.s = nil, nil
	return nil
}

// SetStyle records s for the following shapes.
func (c *Canvas) SetStyle(s vector.StyleState) { c.style = s }

// paint renders the current style as an inline CSS style for mode.
func (c *Canvas) paint(mode vector.PaintMode) string {
	s := c.style
	var b strings.Builder
	if mode&vector.Fill != 0 {
		fmt.Fprintf(&b, "fill:%s;fill-opacity:%.4g", palette.Resolve(s.FillColor), s.FillOpacity)
	} else {
		b.WriteString("fill:none")
	}
	if mode&vector.Stroke != 0 {
		fmt.Fprintf(&b, ";stroke:%s;stroke-width:%.4g", palette.Resolve(s.StrokeColor), s.LineWidth)
	}
	return b.String()
}

// MoveTo starts a new path at (x, y).
func (c *Canvas) MoveTo(x, y float64) {
	c.xs, c.ys, c.closed = []int{iround(x)}, []int{iround(y)}, false
}

// LineTo extends the current path.
func (c *Canvas) LineTo(x, y float64) {
	c.xs = append(c.xs, iround(x))
	c.ys = append(c.ys, iround(y))
}

// ClosePath marks the path closed so Paint emits a polygon.
func (c *Canvas) ClosePath() { c.closed = true }

// Paint emits the current path as a polyline or polygon and clears it.
func (c *Canvas) Paint(mode vector.PaintMode) {
	if len(c.xs) > 1 {
		if c.closed {
			c.s.Polygon(c.xs, c.ys, c.paint(mode))
		} else {
			c.s.Polyline(c.xs, c.ys, c.paint(mode))
		}
	}
	c.xs, c.ys, c.closed = nil, nil, false
}

// Rect emits a rect element, with rx/ry when radius rounds above zero.
func (c *Canvas) Rect(x, y, w, h, radius float64, mode vector.PaintMode) {
	if r := iround(radius); r > 0 {
		c.s.Roundrect(iround(x), iround(y), iround(w), iround(h), r, r, c.paint(mode))
		return
	}
	c.s.Rect(iround(x), iround(y), iround(w), iround(h), c.paint(mode))
}

// Clip defines a clipPath and opens a group that references it.
func (c *Canvas) Clip(x, y, w, h, radius float64) {
	c.clipID++
	id := fmt.Sprintf("clip%d", c.clipID)
	c.s.Def()
	c.s.ClipPath(fmt.Sprintf(`id="%s"`, id))
	if r := iround(radius); r > 0 {
		c.s.Roundrect(iround(x), iround(y), iround(w), iround(h), r, r)
	} else {
		c.s.Rect(iround(x), iround(y), iround(w), iround(h))
	}
	c.s.ClipEnd()
	c.s.DefEnd()
	c.s.Group(fmt.Sprintf(`clip-path="url(#%s)"`, id))
	c.groups++
}

// Restore closes the innermost clip group.
func (c *Canvas) Restore() {
	if c.groups > 0 {
		c.s.Gend()
		c.groups--
	}
}

// Text lets the viewer align lines with text-anchor; widths are only
// estimated for wrapping.
func (c *Canvas) Text(run render.TextRun) {
	x, anchor := run.X, "start"
	switch run.Align {
	case vector.AlignCenter:
		x, anchor = run.X+run.MaxWidth/2, "middle"
	case vector.AlignRight:
		x, anchor = run.X+run.MaxWidth, "end"
	}

	weight := "normal"
	if c.style.Bold() {
		weight = "bold"
	}
	style := fmt.Sprintf("font-family:%s;font-size:%.4gpx;font-weight:%s;fill:%s;fill-opacity:%.4g;text-anchor:%s",
		fontFamily, run.Size, weight, palette.Resolve(c.style.FillColor), c.style.FillOpacity, anchor)

	for i, line := range run.Lines(render.MonoMeasure(run.Size)) {
		if line == "" {
			continue
		}
		c.s.Text(iround(x), iround(run.Baseline(i)), line, style)
	}
}
