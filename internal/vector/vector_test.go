package vector

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleState_OverlaysPersist(t *testing.T) {
	var p Page
	p.Add(
		Style(Overlay{}.WithFontSize(4)),
		Text("a", 0, 0).With(Overlay{}.WithAlign(AlignRight)),
		Text("b", 0, 5),
		Style(Overlay{}.WithAlign(AlignLeft)),
		Line(0, 0, 1, 1).With(Overlay{}.WithLineWidth(0.3)),
		Text("c", 0, 10),
	)
	states := p.States()
	require.Len(t, states, 6)

	assert.Equal(t, 3.5, DefaultStyle().FontSize)
	assert.Equal(t, 4.0, states[0].FontSize)
	assert.Equal(t, AlignRight, states[1].TextAlign)
	assert.Equal(t, AlignRight, states[2].TextAlign, "alignment persists until reset")
	assert.Equal(t, AlignLeft, states[3].TextAlign)
	assert.Equal(t, 0.3, states[4].LineWidth)
	assert.Equal(t, 0.3, states[5].LineWidth)
	assert.Equal(t, 4.0, states[5].FontSize)
}

func TestOverlay_ExplicitZeroIsApplied(t *testing.T) {
	s := DefaultStyle().Apply(Overlay{}.WithFontWeight("bold"))
	assert.True(t, s.Bold())
	s = s.Apply(Overlay{}.WithFontWeight(""))
	assert.False(t, s.Bold())

	assert.Equal(t, 1.0, DefaultStyle().Apply(Overlay{}.WithFill("#fff")).FillOpacity)
}

func TestOverlay_Merge(t *testing.T) {
	o := Overlay{}.WithFill("#111111").WithFontSize(3)
	m := o.Merge(Overlay{}.WithFill("#222222").WithLineWidth(0.2))
	assert.Equal(t, "#222222", m.FillColor)
	assert.Equal(t, 3.0, m.FontSize)
	assert.Equal(t, 0.2, m.LineWidth)
	assert.False(t, m.Has(FieldTextAlign))
}

func TestPage_Balanced(t *testing.T) {
	var p Page
	p.Add(Clip(0, 0, 10, 10), Rect(1, 1, 2, 2, Both).Clipping(), Restore(), Restore())
	assert.True(t, p.Balanced())

	p.Add(Restore())
	assert.False(t, p.Balanced())

	var q Page
	q.Add(Clip(0, 0, 1, 1))
	assert.False(t, q.Balanced())
}

func TestDocument_WriteJSON(t *testing.T) {
	doc := Document{Title: "plan", Pages: []Page{{
		WidthMM:  210,
		HeightMM: 297,
		Instructions: []Instruction{
			Rect(1, 2, 3, 4, Both).Rounded(1).With(Overlay{}.WithFill("#55aaff").WithFontWeight("")),
		},
	}}}

	var buf bytes.Buffer
	require.NoError(t, doc.WriteJSON(&buf))

	var got struct {
		Pages []struct {
			Width float64 `json:"width"`
			Data  []map[string]any
		}
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Pages, 1)
	assert.Equal(t, 210.0, got.Pages[0].Width)

	rect := got.Pages[0].Data[0]
	assert.Equal(t, "rect", rect["type"])
	assert.Equal(t, 3.0, rect["mode"])
	style := rect["style"].(map[string]any)
	assert.Equal(t, "#55aaff", style["fillColor"])
	assert.Contains(t, style, "fontWeight")
	assert.NotContains(t, style, "lineWidth")
}
