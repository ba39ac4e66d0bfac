package render

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"timeline2pdf/internal/vector"
)

// LineSpacing is the distance between baselines as a multiple of the font size.
const LineSpacing = 1.2

// Ascent places the baseline below the top of a line.
const Ascent = 0.8

// TextRun is a text instruction resolved against the page style.
type TextRun struct {
	Text      string
	X, Y      float64
	MaxWidth  float64
	MaxHeight float64
	Multiline bool
	Align     vector.Align
	Size      float64
}

// Measure returns the advance width of s.
type Measure func(s string) float64

// MonoMeasure estimates widths from the terminal cell width of each rune,
// for backends without font metrics. An average glyph is 0.6 of the size.
func MonoMeasure(size float64) Measure {
	return func(s string) float64 {
		return float64(runewidth.StringWidth(s)) * size * 0.6
	}
}

// Lines splits the run into the lines to draw. Single-line runs flatten
// newlines; multiline runs break on newlines and wrap to MaxWidth. With a
// MaxHeight only the lines that start inside the box are kept, at least
// one.
func (r TextRun) Lines(measure Measure) []string {
	if !r.Multiline {
		return []string{strings.ReplaceAll(r.Text, "\n", " ")}
	}

	var lines []string
	for _, para := range strings.Split(r.Text, "\n") {
		if r.MaxWidth <= 0 {
			lines = append(lines, para)
			continue
		}
		lines = append(lines, Wrap(strings.Fields(para), r.MaxWidth, measure)...)
	}

	if r.MaxHeight > 0 && r.Size > 0 {
		fit := max(1, int(math.Floor(r.MaxHeight/(r.Size*LineSpacing))))
		if len(lines) > fit {
			lines = lines[:fit]
		}
	}
	return lines
}

// Wrap packs words into lines no wider than maxWidth. Words are never
// broken: a word wider than maxWidth gets a line of its own. An empty word
// list yields one empty line so blank paragraphs keep their height.
func Wrap(words []string, maxWidth float64, measure Measure) []string {
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var current strings.Builder
	for _, word := range words {
		switch {
		case current.Len() == 0:
			current.WriteString(word)
		case measure(current.String()+" "+word) <= maxWidth:
			current.WriteString(" " + word)
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
		}
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// LineX returns where a line of the given width starts.
func (r TextRun) LineX(width float64) float64 {
	if r.MaxWidth > 0 {
		switch r.Align {
		case vector.AlignCenter:
			return r.X + (r.MaxWidth-width)/2
		case vector.AlignRight:
			return r.X + r.MaxWidth - width
		}
		return r.X
	}
	switch r.Align {
	case vector.AlignCenter:
		return r.X - width/2
	case vector.AlignRight:
		return r.X - width
	}
	return r.X
}

// Baseline returns the baseline of line i.
func (r TextRun) Baseline(i int) float64 {
	return r.Y + float64(i)*r.Size*LineSpacing + r.Size*Ascent
}
