// Package render replays vector documents onto drawing backends.
//
// Backends implement Canvas, a small capability set shared by canvas-like
// and PDF-writer APIs. Replay is the only walker over the instruction
// stream: it tracks the cumulative page style, scales every length by one
// factor into the backend's native unit and keeps save/restore balanced.
package render

import (
	"fmt"

	"timeline2pdf/internal/vector"
)

// Canvas is a drawing target. Lengths are already in the target's unit.
type Canvas interface {
	BeginPage(w, h float64) error
	EndPage() error

	// SetStyle makes s the current graphics state.
	SetStyle(s vector.StyleState)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	// Paint strokes and/or fills the current path and clears it.
	Paint(mode vector.PaintMode)

	// Rect paints a rectangle, with rounded corners when radius > 0.
	Rect(x, y, w, h, radius float64, mode vector.PaintMode)
	// Clip saves the graphics state and narrows the clip region.
	Clip(x, y, w, h, radius float64)
	// Restore undoes the most recent Clip.
	Restore()

	Text(run TextRun)
}

// Replay draws every page of doc on c, multiplying lengths by scale.
func Replay(doc vector.Document, c Canvas, scale float64) error {
	for i, page := range doc.Pages {
		if err := replayPage(page, c, scale); err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
	}
	return nil
}

func replayPage(page vector.Page, c Canvas, scale float64) error {
	if err := c.BeginPage(page.WidthMM*scale, page.HeightMM*scale); err != nil {
		return err
	}
	state := vector.DefaultStyle()
	c.SetStyle(scaled(state, scale))

	depth := 0
	pts := func(in vector.Instruction, n int) ([]float64, bool) {
		if len(in.Points) < n {
			return nil, false
		}
		out := make([]float64, len(in.Points))
		for i, p := range in.Points {
			out[i] = p * scale
		}
		return out, true
	}

	for _, in := range page.Instructions {
		if !in.Overlay.Empty() {
			state = state.Apply(in.Overlay)
			c.SetStyle(scaled(state, scale))
		}

		switch in.Kind {
		case vector.KindLine:
			if p, ok := pts(in, 4); ok {
				c.MoveTo(p[0], p[1])
				c.LineTo(p[2], p[3])
				c.Paint(vector.Stroke)
			}

		case vector.KindPolyline:
			if p, ok := pts(in, 4); ok {
				c.MoveTo(p[0], p[1])
				for j := 2; j+1 < len(p); j += 2 {
					c.LineTo(p[j], p[j+1])
				}
				if in.Closed {
					c.ClosePath()
				}
				c.Paint(paintMode(in.Mode))
			}

		case vector.KindRect:
			if p, ok := pts(in, 4); ok {
				c.Rect(p[0], p[1], p[2], p[3], in.Radius*scale, paintMode(in.Mode))
				if in.Clip {
					c.Clip(p[0], p[1], p[2], p[3], in.Radius*scale)
					depth++
				}
			}

		case vector.KindClip:
			if p, ok := pts(in, 4); ok {
				c.Clip(p[0], p[1], p[2], p[3], 0)
				depth++
			}

		case vector.KindRestore:
			if depth > 0 {
				c.Restore()
				depth--
			}

		case vector.KindText:
			c.Text(TextRun{
				Text:      in.Text,
				X:         in.X * scale,
				Y:         in.Y * scale,
				MaxWidth:  in.MaxWidth * scale,
				MaxHeight: in.MaxHeight * scale,
				Multiline: in.Multiline,
				Align:     state.TextAlign,
				Size:      state.FontSize * scale,
			})
		}
	}

	for ; depth > 0; depth-- {
		c.Restore()
	}
	return c.EndPage()
}

func paintMode(m vector.PaintMode) vector.PaintMode {
	if m < vector.Stroke || m > vector.Both {
		return vector.Stroke
	}
	return m
}

// scaled converts the length members of a style.
func scaled(s vector.StyleState, scale float64) vector.StyleState {
	s.LineWidth *= scale
	s.FontSize *= scale
	return s
}
