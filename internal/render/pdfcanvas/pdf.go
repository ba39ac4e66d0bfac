// Package pdfcanvas renders vector documents to PDF with gofpdf.
package pdfcanvas

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"timeline2pdf/internal/palette"
	"timeline2pdf/internal/render"
	"timeline2pdf/internal/units"
	"timeline2pdf/internal/vector"
)

const fontFamily = "Helvetica"

// Scale converts millimeters to the canvas unit (points).
const Scale = units.PtPerMM

// Canvas draws into a single multi-page PDF.
type Canvas struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	style vector.StyleState
}

// New returns an empty PDF canvas titled title.
func New(title string) *Canvas {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: 595.28, Ht: 841.89},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.SetCreator("timeline2pdf", true)
	pdf.SetFont(fontFamily, "", 10)
	return &Canvas{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// Render replays doc and writes the PDF to w.
func Render(doc vector.Document, w io.Writer) error {
	c := New(doc.Title)
	if err := render.Replay(doc, c, Scale); err != nil {
		return err
	}
	return c.Output(w)
}

// Output writes the finished document.
func (c *Canvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}

// BeginPage adds a page of w by h points, landscape when wider than tall.
func (c *Canvas) BeginPage(w, h float64) error {
	// gofpdf takes portrait dimensions and swaps them for "L".
	if w > h {
		c.pdf.AddPageFormat("L", gofpdf.SizeType{Wd: h, Ht: w})
	} else {
		c.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
	}
	return c.pdf.Error()
}

// EndPage reports any error gofpdf accumulated while drawing the page.
func (c *Canvas) EndPage() error { return c.pdf.Error() }

// SetStyle records s and pushes it to the document.
func (c *Canvas) SetStyle(s vector.StyleState) {
	c.style = s
	c.apply()
}

// apply pushes the whole style. PDF restores reset the graphics state, so
// this also runs after every Restore.
func (c *Canvas) apply() {
	s := c.style
	fr, fg, fb := palette.RGB(s.FillColor)
	sr, sg, sb := palette.RGB(s.StrokeColor)
	c.pdf.SetFillColor(int(fr), int(fg), int(fb))
	c.pdf.SetTextColor(int(fr), int(fg), int(fb))
	c.pdf.SetDrawColor(int(sr), int(sg), int(sb))
	c.pdf.SetLineWidth(s.LineWidth)
	c.pdf.SetAlpha(s.FillOpacity, "Normal")

	weight := ""
	if s.Bold() {
		weight = "B"
	}
	c.pdf.SetFont(fontFamily, weight, s.FontSize)
	c.pdf.SetFontSize(s.FontSize)
}

// MoveTo, LineTo and ClosePath build the current path.
func (c *Canvas) MoveTo(x, y float64) { c.pdf.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float64) { c.pdf.LineTo(x, y) }
func (c *Canvas) ClosePath()          { c.pdf.ClosePath() }

// Paint draws the current path with the given paint mode.
func (c *Canvas) Paint(mode vector.PaintMode) {
	c.pdf.DrawPath(styleStr(mode))
}

// Rect draws a rectangle, rounded on all four corners when radius > 0.
func (c *Canvas) Rect(x, y, w, h, radius float64, mode vector.PaintMode) {
	if radius > 0 {
		c.pdf.RoundedRect(x, y, w, h, radius, "1234", styleStr(mode))
		return
	}
	c.pdf.Rect(x, y, w, h, styleStr(mode))
}

// Clip starts a clipping rectangle. Every Clip must be matched by Restore.
func (c *Canvas) Clip(x, y, w, h, radius float64) {
	if radius > 0 {
		c.pdf.ClipRoundedRect(x, y, w, h, radius, false)
		return
	}
	c.pdf.ClipRect(x, y, w, h, false)
}

// Restore ends the innermost clip and re-applies the style.
func (c *Canvas) Restore() {
	c.pdf.ClipEnd()
	c.apply()
}

// Text draws each wrapped line of run at its aligned position.
func (c *Canvas) Text(run render.TextRun) {
	measure := func(s string) float64 { return c.pdf.GetStringWidth(c.tr(s)) }
	for i, line := range run.Lines(measure) {
		enc := c.tr(line)
		c.pdf.Text(run.LineX(c.pdf.GetStringWidth(enc)), run.Baseline(i), enc)
	}
}

// styleStr maps a paint mode to gofpdf's style string.
func styleStr(mode vector.PaintMode) string {
	switch mode {
	case vector.Fill:
		return "F"
	case vector.Both:
		return "FD"
	}
	return "D"
}
