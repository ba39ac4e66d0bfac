package gantt

import (
	"math"
	"time"

	"timeline2pdf/internal/lanes"
	"timeline2pdf/internal/paginate"
	"timeline2pdf/internal/palette"
	"timeline2pdf/internal/timegrid"
	"timeline2pdf/internal/vector"
)

const (
	bandColor     = "#eaeaea"
	textColor     = "#000000"
	barOpacity    = 0.8
	barLineWidth  = 0.3
	borderWidth   = 0.1
	gridFontSize  = 2.5
	titleFontSize = 6
	maxRadius     = 5
	// minStampWidth is the narrowest bar that still gets time stamps.
	minStampWidth = 7
)

type emitter struct {
	cfg  Config
	plan plan
	loc  *time.Location
}

// tile is the page being emitted.
type tile struct {
	rowTile  int
	info     paginate.PageInfo
	timeTile int
	win      paginate.Window
	// origin is where the window's From sits along the time axis.
	origin float64
	// msu converts milliseconds to mm.
	msu float64
}

func (t tile) firstTime() bool { return t.timeTile == 0 }

func (e emitter) page(k int, info paginate.PageInfo, j int, win paginate.Window) vector.Page {
	p := e.plan
	t := tile{rowTile: k, info: info, timeTile: j, win: win, msu: p.grid.MMPerMilli()}
	if p.horizontal {
		t.origin = p.fullW - Margin - win.Extent
	} else {
		t.origin = p.fullH - Margin - win.Extent
	}

	pg := vector.Page{WidthMM: p.fullW, HeightMM: p.fullH}
	pg.Add(vector.Style(vector.Overlay{}.WithFontSize(p.groupFont).WithFontWeight("")))

	var bars []vector.Instruction
	for idx, row := range info.Rows {
		if row.First || idx == 0 {
			pg.Add(e.groupHeader(t, idx, row)...)
		}
		for _, iv := range row.Intervals {
			if visible(iv, t.win) {
				bars = append(bars, e.bar(t, idx, iv)...)
			}
		}
	}

	pg.Add(e.frame(t)...)
	pg.Add(vector.Style(vector.Overlay{}.WithFill(textColor).WithFillOpacity(1)))
	for _, s := range p.grid.Scales {
		pg.Add(e.gridScale(t, s)...)
	}

	pg.Add(e.plotClip(t))
	pg.Add(bars...)
	pg.Add(vector.Restore())
	return pg
}

// visible reports whether iv shows in the half-open window. Zero-length
// intervals count when their instant lies inside it.
func visible(iv lanes.Interval, w paginate.Window) bool {
	if iv.Start.Equal(iv.End) {
		return !iv.Start.Before(w.From) && iv.Start.Before(w.To)
	}
	return iv.Start.Before(w.To) && iv.End.After(w.From)
}

// runLength counts the rows from idx on that belong to the same group.
func runLength(rows []lanes.Lane, idx int) int {
	n := 1
	for idx+n < len(rows) && rows[idx+n].Group == rows[idx].Group && !rows[idx+n].First {
		n++
	}
	return n
}

// groupHeader emits the zebra band of a group and, on the first time tile,
// its label. A group continued from the previous row tile gets its band
// but no label.
func (e emitter) groupHeader(t tile, idx int, row lanes.Lane) []vector.Instruction {
	p := e.plan
	span := float64(runLength(t.info.Rows, idx))
	if row.First {
		span = math.Min(span, float64(row.LaneCount))
	}
	title := 0.0
	if t.firstTime() {
		title = TitleHeight
	}

	var out []vector.Instruction
	if row.Striped {
		var band vector.Instruction
		if p.horizontal {
			band = vector.Rect(Margin, float64(idx)*p.rowHeight+t.info.Base, p.pageW, p.rowHeight*span, vector.Fill)
		} else {
			band = vector.Rect(float64(idx)*p.rowHeight+Margin+AxisWidth, Margin+title,
				p.rowHeight*span, p.fullH-title-2*Margin, vector.Fill)
		}
		out = append(out, band.With(vector.Overlay{}.WithFill(bandColor)))
	}

	if row.First && t.firstTime() {
		var label vector.Instruction
		text := lanes.LabelText(row.Label)
		if p.horizontal {
			label = vector.Text(text, Margin+1, float64(idx)*p.rowHeight+t.info.Base+1).
				Boxed(ColWidth, p.rowHeight*span, true)
		} else {
			label = vector.Text(text, float64(idx)*p.rowHeight+Margin+AxisWidth+1, Margin+TitleHeight+1).
				Boxed(p.rowHeight*span, ColHeight, true)
		}
		out = append(out, label.With(vector.Overlay{}.WithFill(textColor)))
	}
	return out
}

// bar emits one interval: a clipping rounded rectangle, its label lines
// and, when there is room, start and end time stamps, then restores the
// clip and text alignment.
func (e emitter) bar(t tile, idx int, iv lanes.Interval) []vector.Instruction {
	p := e.plan
	offset := float64(iv.Start.Sub(t.win.From).Milliseconds()) * t.msu
	length := float64(iv.End.Sub(iv.Start).Milliseconds()) * t.msu

	var sl, st, sw, sh float64
	if p.horizontal {
		sl = t.origin + offset
		sw = length
		st = float64(idx)*p.rowHeight + t.info.Base + 1
		sh = p.rowHeight - 2
	} else {
		sl = float64(idx)*p.rowHeight + Margin + AxisWidth + 1
		sw = p.rowHeight - 2
		st = t.origin + offset
		sh = length
	}

	out := []vector.Instruction{
		vector.Rect(sl, st, sw, sh, vector.Both).
			Rounded(math.Min(p.rowHeight/3, maxRadius)).
			Clipping().
			With(vector.Overlay{}.
				WithFill(palette.Resolve(iv.Color)).
				WithFillOpacity(barOpacity).
				WithLineWidth(barLineWidth)),
		vector.Style(vector.Overlay{}.WithFill(textColor).WithFillOpacity(1).WithFontSize(p.taskFont)),
	}

	rest := sh - (p.taskFont + 1)
	stamps := rest >= 2*p.hourFont*0.9 && sw > minStampWidth
	stampH := 0.0
	if stamps {
		stampH = p.hourFont
	}

	// in horizontal mode a bar entering from the previous tile keeps its
	// label at the left edge of the plot
	x := sl + 1
	if p.horizontal {
		x = math.Max(t.origin, x)
	}
	maxW := math.Max(0, sw-2-(x-(sl+1)))
	for i, text := range iv.Label {
		last := i == len(iv.Label)-1
		out = append(out, vector.Text(text, x, p.taskFont*float64(i)+st+stampH+1).
			Boxed(maxW, sh-2*stampH-2-float64(i)*p.taskFont, last && e.cfg.Multiline).
			With(vector.Overlay{}.WithAlign(e.cfg.Align)))
	}

	if stamps {
		out = append(out,
			vector.Text(iv.Start.In(e.loc).Format("15:04"), sl+1, st+0.5).
				With(vector.Overlay{}.WithFontSize(p.hourFont).WithAlign(vector.AlignLeft)),
			vector.Text(iv.End.In(e.loc).Format("15:04"), sl+sw-1, st+sh-p.hourFont*0.9).
				With(vector.Overlay{}.WithAlign(vector.AlignRight)),
		)
	}

	out = append(out,
		vector.Style(vector.Overlay{}.WithAlign(vector.AlignLeft)),
		vector.Restore(),
	)
	return out
}

// frame emits the title, the label column separator and the plot borders.
func (e emitter) frame(t tile) []vector.Instruction {
	p := e.plan
	right, bottom := p.fullW-Margin, p.fullH-Margin
	base := t.info.Base
	top := Margin + 0.0
	if t.firstTime() {
		top += TitleHeight
	}

	var out []vector.Instruction
	if t.firstTime() {
		if t.rowTile == 0 && e.cfg.Title != "" {
			out = append(out,
				vector.Text(e.cfg.Title, Margin, Margin).
					With(vector.Overlay{}.WithFontSize(titleFontSize).WithFontWeight("bold")),
				vector.Style(vector.Overlay{}.WithFontWeight("")),
			)
		}
		thin := vector.Overlay{}.WithLineWidth(borderWidth)
		if p.horizontal {
			out = append(out,
				vector.Line(Margin+ColWidth, base, Margin+ColWidth, bottom).With(thin),
				vector.Line(Margin, base, Margin, bottom),
			)
		} else {
			y := float64(Margin + TitleHeight + ColHeight)
			out = append(out,
				vector.Line(Margin+AxisWidth, y, right, y).With(thin),
				vector.Line(Margin+AxisWidth, Margin+TitleHeight, right, Margin+TitleHeight),
			)
		}
	}

	// the last time tile closes the plot with a corner
	last := t.timeTile == len(p.windows)-1
	border := vector.Overlay{}.WithLineWidth(borderWidth).WithStroke(textColor)
	if p.horizontal {
		outer := vector.Line(Margin, bottom, right, bottom)
		if last {
			outer = vector.Polyline([]float64{Margin, bottom, right, bottom, right, base}, false, vector.Stroke)
		}
		out = append(out,
			outer.With(border),
			vector.Line(Margin, base, right, base),
		)
	} else {
		outer := vector.Line(right, top, right, bottom)
		if last {
			outer = vector.Polyline([]float64{right, top, right, bottom, Margin + AxisWidth, bottom}, false, vector.Stroke)
		}
		out = append(out,
			outer.With(border),
			vector.Line(Margin+AxisWidth, top, Margin+AxisWidth, bottom),
		)
	}
	return out
}

// gridScale draws one division of the shared time grid clipped to the
// tile's window. Each division sits in its own band of the axis strip.
func (e emitter) gridScale(t tile, s timegrid.Scale) []vector.Instruction {
	p := e.plan
	lo := p.grid.Offset(t.win.From)
	hi := p.grid.Offset(t.win.To)
	lines, labels := s.Clip(lo, hi)

	var top, bottom, dy float64
	if p.horizontal {
		top, bottom = t.info.Base, p.fullH-Margin
		dy = -float64(s.Band*3 + 3)
	} else {
		top, bottom = Margin+AxisWidth, p.fullW-Margin
		dy = -float64(s.Band*8 + 8)
	}

	out := []vector.Instruction{vector.Style(vector.Overlay{}.WithLineWidth(s.LineWidth))}
	for _, x := range lines {
		x += t.origin
		if p.horizontal {
			out = append(out, vector.Line(x, top+dy, x, bottom))
		} else {
			out = append(out, vector.Line(top+dy, x, bottom, x))
		}
	}
	for _, tk := range labels {
		x := tk.X + t.origin
		label := vector.Text(tk.Label, x, top+dy)
		if !p.horizontal {
			label = vector.Text(tk.Label, top+dy, x)
		}
		out = append(out, label.With(vector.Overlay{}.WithFontSize(gridFontSize)))
	}
	return out
}

// plotClip opens the clip region the bars are drawn in.
func (e emitter) plotClip(t tile) vector.Instruction {
	p := e.plan
	if p.horizontal {
		return vector.Clip(t.origin, t.info.Base, p.fullW-t.origin-Margin, p.fullH-Margin-t.info.Base)
	}
	return vector.Clip(Margin+AxisWidth, t.origin, p.fullW-2*Margin-AxisWidth, p.fullH-t.origin-Margin)
}
