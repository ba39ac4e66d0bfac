package termcanvas

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline2pdf/internal/vector"
)

func screen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func at(s tcell.SimulationScreen, x, y int) (rune, tcell.Color) {
	r, _, st, _ := s.GetContent(x, y)
	_, bg, _ := st.Decompose()
	return r, bg
}

func TestDraw_FillClipAndText(t *testing.T) {
	s := screen(t, 40, 20)
	p := vector.Page{WidthMM: 40, HeightMM: 20}
	p.Add(
		vector.Rect(2, 2, 10, 4, vector.Fill).With(vector.Overlay{}.WithFill("#ff0000")),
		vector.Clip(20, 0, 5, 20),
		vector.Rect(0, 10, 40, 2, vector.Fill).With(vector.Overlay{}.WithFill("#0000ff")),
		vector.Restore(),
		vector.Text("hi", 3, 3).With(vector.Overlay{}.WithFill("#000000")),
	)

	require.NoError(t, Draw(s, vector.Document{Pages: []vector.Page{p}}, 0))

	_, bg := at(s, 5, 4)
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), bg)

	_, bg = at(s, 22, 10)
	assert.Equal(t, tcell.NewRGBColor(0, 0, 255), bg)
	_, bg = at(s, 30, 10)
	assert.Equal(t, tcell.ColorWhite, bg, "fill leaked outside the clip")

	r, bg := at(s, 3, 3)
	assert.Equal(t, 'h', r)
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), bg, "text keeps the bar background")
	r, _ = at(s, 4, 3)
	assert.Equal(t, 'i', r)
}

func TestDraw_StrokedLines(t *testing.T) {
	s := screen(t, 20, 10)
	p := vector.Page{WidthMM: 20, HeightMM: 10}
	p.Add(
		vector.Line(0, 5, 19, 5),
		vector.Line(10, 0, 10, 9),
	)

	require.NoError(t, Draw(s, vector.Document{Pages: []vector.Page{p}}, 0))

	r, _ := at(s, 3, 5)
	assert.Equal(t, '─', r)
	r, _ = at(s, 10, 2)
	assert.Equal(t, '│', r)
}

func TestDraw_PageOutOfRange(t *testing.T) {
	s := screen(t, 10, 10)
	assert.Error(t, Draw(s, vector.Document{}, 0))
}

func TestFit(t *testing.T) {
	s := screen(t, 80, 24)
	assert.InDelta(t, 80.0/297, Fit(s, vector.Page{WidthMM: 297, HeightMM: 21}), 1e-12)
	assert.InDelta(t, 24.0/210, Fit(s, vector.Page{WidthMM: 100, HeightMM: 210}), 1e-12)
}
