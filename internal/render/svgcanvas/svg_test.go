package svgcanvas

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline2pdf/internal/vector"
)

func renderOne(t *testing.T, ins ...vector.Instruction) string {
	t.Helper()
	p := vector.Page{WidthMM: 100, HeightMM: 50}
	p.Add(ins...)
	pages, err := Render(vector.Document{Pages: []vector.Page{p}})
	require.NoError(t, err)
	require.Len(t, pages, 1)
	return string(pages[0])
}

// wellFormed walks the whole document with an XML decoder.
func wellFormed(t *testing.T, src string) {
	t.Helper()
	d := xml.NewDecoder(strings.NewReader(src))
	for {
		_, err := d.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			return
		}
	}
}

func TestRender_Header(t *testing.T) {
	out := renderOne(t)
	assert.Contains(t, out, `width="100mm" height="50mm"`)
	assert.Contains(t, out, `viewBox="0 0 1000 500"`)
	wellFormed(t, out)
}

func TestRender_ClipGroupsBalanced(t *testing.T) {
	out := renderOne(t,
		vector.Rect(1, 1, 20, 5, vector.Both).Rounded(1).Clipping(),
		vector.Text("a < b & c", 2, 2),
		vector.Clip(0, 0, 50, 50),
	)
	assert.Contains(t, out, `clip-path="url(#clip1)"`)
	assert.Contains(t, out, `clip-path="url(#clip2)"`)
	assert.Contains(t, out, "a &lt; b &amp; c")
	assert.Equal(t, strings.Count(out, "<g "), strings.Count(out, "</g>"))
	wellFormed(t, out)
}

func TestRender_PaintStyles(t *testing.T) {
	out := renderOne(t,
		vector.Style(vector.Overlay{}.WithFill("blue").WithStroke("#000").WithLineWidth(0.3)),
		vector.Rect(0, 0, 10, 10, vector.Fill),
		vector.Line(0, 0, 10, 10),
	)
	assert.Contains(t, out, "fill:#55aaff;fill-opacity:1")
	assert.Contains(t, out, "fill:none;stroke:#000000;stroke-width:3")
}

func TestRender_TextAnchor(t *testing.T) {
	out := renderOne(t,
		vector.Text("mid", 10, 10).With(vector.Overlay{}.WithAlign(vector.AlignCenter)).Boxed(20, 0, false),
	)
	assert.Contains(t, out, "text-anchor:middle")
	assert.Contains(t, out, `x="200"`)
}
