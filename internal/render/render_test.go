package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline2pdf/internal/vector"
)

// recorder logs every call as a short string.
type recorder struct {
	calls  []string
	styles []vector.StyleState
	runs   []TextRun
}

func (r *recorder) log(format string, args ...any) { r.calls = append(r.calls, fmt.Sprintf(format, args...)) }

func (r *recorder) BeginPage(w, h float64) error {
	r.log("begin %g %g", w, h)
	return nil
}
func (r *recorder) EndPage() error { r.log("end"); return nil }
func (r *recorder) SetStyle(s vector.StyleState) {
	r.styles = append(r.styles, s)
	r.log("style")
}
func (r *recorder) MoveTo(x, y float64) { r.log("move %g %g", x, y) }
func (r *recorder) LineTo(x, y float64) { r.log("line %g %g", x, y) }
func (r *recorder) ClosePath()          { r.log("close") }
func (r *recorder) Paint(m vector.PaintMode) {
	r.log("paint %d", m)
}
func (r *recorder) Rect(x, y, w, h, radius float64, m vector.PaintMode) {
	r.log("rect %g %g %g %g %g %d", x, y, w, h, radius, m)
}
func (r *recorder) Clip(x, y, w, h, radius float64) { r.log("clip %g %g %g %g %g", x, y, w, h, radius) }
func (r *recorder) Restore()                        { r.log("restore") }
func (r *recorder) Text(run TextRun) {
	r.runs = append(r.runs, run)
	r.log("text %s", run.Text)
}

func page(ins ...vector.Instruction) vector.Page {
	p := vector.Page{WidthMM: 100, HeightMM: 50}
	for _, in := range ins {
		p.Add(in)
	}
	return p
}

func TestReplay_ScalesLengths(t *testing.T) {
	doc := vector.Document{Pages: []vector.Page{page(
		vector.Line(1, 2, 3, 4),
		vector.Rect(1, 1, 10, 5, vector.Fill).Rounded(2),
	)}}

	rec := &recorder{}
	require.NoError(t, Replay(doc, rec, 2))

	assert.Equal(t, []string{
		"begin 200 100",
		"style",
		"move 2 4",
		"line 6 8",
		"paint 1",
		"rect 2 2 20 10 4 2",
		"end",
	}, rec.calls)
	assert.InDelta(t, 0.2, rec.styles[0].LineWidth, 1e-12)
	assert.InDelta(t, 7.0, rec.styles[0].FontSize, 1e-12)
}

func TestReplay_StyleAccumulates(t *testing.T) {
	doc := vector.Document{Pages: []vector.Page{page(
		vector.Style(vector.Overlay{}.WithFill("#ff0000")),
		vector.Style(vector.Overlay{}.WithAlign(vector.AlignRight)),
		vector.Text("x", 5, 5),
	)}}

	rec := &recorder{}
	require.NoError(t, Replay(doc, rec, 1))

	last := rec.styles[len(rec.styles)-1]
	assert.Equal(t, "#ff0000", last.FillColor)
	assert.Equal(t, vector.AlignRight, last.TextAlign)
	require.Len(t, rec.runs, 1)
	assert.Equal(t, vector.AlignRight, rec.runs[0].Align)
	assert.InDelta(t, 3.5, rec.runs[0].Size, 1e-12)
}

func TestReplay_StyleResetsPerPage(t *testing.T) {
	doc := vector.Document{Pages: []vector.Page{
		page(vector.Style(vector.Overlay{}.WithFill("#ff0000"))),
		page(vector.Text("x", 0, 0)),
	}}

	rec := &recorder{}
	require.NoError(t, Replay(doc, rec, 1))

	require.Len(t, rec.styles, 3)
	assert.Equal(t, vector.DefaultStyle(), rec.styles[2])
}

func TestReplay_ClipBalance(t *testing.T) {
	doc := vector.Document{Pages: []vector.Page{page(
		vector.Restore(),
		vector.Rect(0, 0, 10, 10, vector.Both).Clipping(),
		vector.Clip(1, 1, 2, 2),
	)}}

	rec := &recorder{}
	require.NoError(t, Replay(doc, rec, 1))

	assert.Equal(t, []string{
		"begin 100 50",
		"style",
		"rect 0 0 10 10 0 3",
		"clip 0 0 10 10 0",
		"clip 1 1 2 2 0",
		"restore",
		"restore",
		"end",
	}, rec.calls)
}

func TestReplay_ClosedPolyline(t *testing.T) {
	doc := vector.Document{Pages: []vector.Page{page(
		vector.Polyline([]float64{0, 0, 5, 0, 5, 5}, true, vector.Both),
		vector.Polyline([]float64{0, 0}, false, vector.Stroke),
	)}}

	rec := &recorder{}
	require.NoError(t, Replay(doc, rec, 1))

	assert.Equal(t, []string{
		"begin 100 50",
		"style",
		"move 0 0",
		"line 5 0",
		"line 5 5",
		"close",
		"paint 3",
		"end",
	}, rec.calls)
}

func TestWrap(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }

	// "cccc d" fits exactly, "cccc dd" does not
	assert.Equal(t, []string{"aaa bb", "cccc d"}, Wrap([]string{"aaa", "bb", "cccc", "d"}, 6, measure))
	assert.Equal(t, []string{"aaa bb", "cccc", "dd"}, Wrap([]string{"aaa", "bb", "cccc", "dd"}, 6, measure))
	assert.Equal(t, []string{"toolongword", "x"}, Wrap([]string{"toolongword", "x"}, 4, measure))
	assert.Equal(t, []string{""}, Wrap(nil, 4, measure))
}

func TestTextRun_Lines(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }

	single := TextRun{Text: "a\nb"}
	assert.Equal(t, []string{"a b"}, single.Lines(measure))

	multi := TextRun{Text: "group\nsub part", Multiline: true, MaxWidth: 5}
	assert.Equal(t, []string{"group", "sub", "part"}, multi.Lines(measure))

	capped := TextRun{Text: "a\nb\nc", Multiline: true, MaxHeight: 2.5, Size: 1}
	assert.Equal(t, []string{"a", "b"}, capped.Lines(measure))

	tiny := TextRun{Text: "a\nb", Multiline: true, MaxHeight: 0.1, Size: 1}
	assert.Equal(t, []string{"a"}, tiny.Lines(measure))
}

func TestTextRun_LineX(t *testing.T) {
	boxed := TextRun{X: 10, MaxWidth: 20}
	assert.InDelta(t, 10.0, boxed.LineX(4), 1e-12)
	boxed.Align = vector.AlignCenter
	assert.InDelta(t, 18.0, boxed.LineX(4), 1e-12)
	boxed.Align = vector.AlignRight
	assert.InDelta(t, 26.0, boxed.LineX(4), 1e-12)

	free := TextRun{X: 10, Align: vector.AlignRight}
	assert.InDelta(t, 6.0, free.LineX(4), 1e-12)
	free.Align = vector.AlignCenter
	assert.InDelta(t, 8.0, free.LineX(4), 1e-12)
}

func TestMonoMeasure(t *testing.T) {
	m := MonoMeasure(10)
	assert.InDelta(t, 18.0, m("abc"), 1e-12)
	assert.InDelta(t, 24.0, m("日本"), 1e-12)
}
