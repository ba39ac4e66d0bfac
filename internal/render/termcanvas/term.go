// Package termcanvas previews vector documents in a terminal with tcell.
// Fills become cell backgrounds, strokes become box-drawing runes and text
// is written cell by cell. Only rectangles are filled.
package termcanvas

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"timeline2pdf/internal/palette"
	"timeline2pdf/internal/render"
	"timeline2pdf/internal/vector"
)

type box struct{ x0, y0, x1, y1 int }

func (b box) intersect(o box) box {
	return box{max(b.x0, o.x0), max(b.y0, o.y0), min(b.x1, o.x1), min(b.y1, o.y1)}
}

func (b box) has(x, y int) bool { return x >= b.x0 && x < b.x1 && y >= b.y0 && y < b.y1 }

type point struct{ x, y float64 }

// Canvas draws onto a tcell screen, one page at a time.
type Canvas struct {
	screen tcell.Screen
	clips  []box
	style  vector.StyleState
	path   []point
	closed bool
}

// New wraps screen.
func New(screen tcell.Screen) *Canvas {
	return &Canvas{screen: screen}
}

// Fit returns the cells-per-millimeter scale that fits page on screen.
func Fit(screen tcell.Screen, page vector.Page) float64 {
	cols, rows := screen.Size()
	if page.WidthMM <= 0 || page.HeightMM <= 0 {
		return 1
	}
	return math.Min(float64(cols)/page.WidthMM, float64(rows)/page.HeightMM)
}

// Draw replays one page of doc onto screen and shows it.
func Draw(screen tcell.Screen, doc vector.Document, page int) error {
	if page < 0 || page >= len(doc.Pages) {
		return fmt.Errorf("page %d out of range [0, %d)", page, len(doc.Pages))
	}
	one := vector.Document{Title: doc.Title, Pages: doc.Pages[page : page+1]}
	if err := render.Replay(one, New(screen), Fit(screen, doc.Pages[page])); err != nil {
		return err
	}
	screen.Show()
	return nil
}

// Preview shows doc on the terminal. Left and right arrows flip pages;
// Escape, Enter or q quits.
func Preview(doc vector.Document) error {
	if len(doc.Pages) == 0 {
		return nil
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	page := 0
	if err := Draw(screen, doc, page); err != nil {
		return err
	}
	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyEnter, ev.Rune() == 'q':
				return nil
			case ev.Key() == tcell.KeyRight && page < len(doc.Pages)-1:
				page++
			case ev.Key() == tcell.KeyLeft && page > 0:
				page--
			default:
				continue
			}
		default:
			continue
		}
		if err := Draw(screen, doc, page); err != nil {
			return err
		}
	}
}

func color(s string) tcell.Color {
	r, g, b := palette.RGB(s)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func cell(v float64) int { return int(math.Floor(v)) }

func (c *Canvas) clip() box { return c.clips[len(c.clips)-1] }

// BeginPage clears the screen and paints the visible part of the page white.
func (c *Canvas) BeginPage(w, h float64) error {
	c.screen.Clear()
	cols, rows := c.screen.Size()
	page := box{0, 0, min(cols, int(math.Ceil(w))), min(rows, int(math.Ceil(h)))}
	c.clips = []box{page}
	white := tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	for y := page.y0; y < page.y1; y++ {
		for x := page.x0; x < page.x1; x++ {
			c.screen.SetContent(x, y, ' ', nil, white)
		}
	}
	return nil
}

// EndPage drops the clip stack; Draw shows the screen.
func (c *Canvas) EndPage() error {
	c.clips = nil
	return nil
}

// SetStyle records s for the following drawing calls.
func (c *Canvas) SetStyle(s vector.StyleState) { c.style = s }

// put writes r at (x, y) keeping the cell's background.
func (c *Canvas) put(x, y int, r rune, fg tcell.Color) {
	if !c.clip().has(x, y) {
		return
	}
	_, _, st, _ := c.screen.GetContent(x, y)
	_, bg, _ := st.Decompose()
	c.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Background(bg).Foreground(fg))
}

// fill sets the background of every visible cell in b.
func (c *Canvas) fill(b box, bg tcell.Color) {
	b = b.intersect(c.clip())
	st := tcell.StyleDefault.Background(bg).Foreground(tcell.ColorBlack)
	for y := b.y0; y < b.y1; y++ {
		for x := b.x0; x < b.x1; x++ {
			c.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

// MoveTo starts a new path at (x, y).
func (c *Canvas) MoveTo(x, y float64) {
	c.path, c.closed = []point{{x, y}}, false
}

// LineTo extends the current path.
func (c *Canvas) LineTo(x, y float64) { c.path = append(c.path, point{x, y}) }

// ClosePath joins the path back to its start on Paint.
func (c *Canvas) ClosePath() { c.closed = true }

// Paint strokes the current path with box-drawing runes. Fills are
// only honored by Rect.
func (c *Canvas) Paint(mode vector.PaintMode) {
	pts := c.path
	if c.closed && len(pts) > 1 {
		pts = append(pts, pts[0])
	}
	if mode&vector.Stroke != 0 {
		for i := 1; i < len(pts); i++ {
			c.segment(pts[i-1], pts[i])
		}
	}
	c.path, c.closed = nil, false
}

// segment rasterizes a stroke with a DDA walk.
func (c *Canvas) segment(a, b point) {
	x0, y0, x1, y1 := cell(a.x), cell(a.y), cell(b.x), cell(b.y)
	r := '·'
	switch {
	case y0 == y1:
		r = '─'
	case x0 == x1:
		r = '│'
	}
	steps := max(abs(x1-x0), abs(y1-y0))
	fg := color(c.style.StrokeColor)
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		c.put(x0+int(math.Round(t*float64(x1-x0))), y0+int(math.Round(t*float64(y1-y0))), r, fg)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Rect fills cell backgrounds and outlines the box when stroked.
func (c *Canvas) Rect(x, y, w, h, _ float64, mode vector.PaintMode) {
	b := box{cell(x), cell(y), cell(x + w), cell(y + h)}
	if mode&vector.Fill != 0 && b.x1 > b.x0 && b.y1 > b.y0 {
		c.fill(b, color(c.style.FillColor))
	}
	if mode&vector.Stroke != 0 {
		c.MoveTo(x, y)
		c.LineTo(x+w, y)
		c.LineTo(x+w, y+h)
		c.LineTo(x, y+h)
		c.ClosePath()
		c.Paint(vector.Stroke)
	}
}

// Clip narrows drawing to the cells covered by the region.
func (c *Canvas) Clip(x, y, w, h, _ float64) {
	b := box{cell(x), cell(y), int(math.Ceil(x + w)), int(math.Ceil(y + h))}
	c.clips = append(c.clips, b.intersect(c.clip()))
}

// Restore pops the innermost clip.
func (c *Canvas) Restore() {
	if len(c.clips) > 1 {
		c.clips = c.clips[:len(c.clips)-1]
	}
}

// Text writes each wrapped line into cells, one column per rune width.
func (c *Canvas) Text(run render.TextRun) {
	fg := color(c.style.FillColor)
	measure := func(s string) float64 { return float64(runewidth.StringWidth(s)) }
	for i, line := range run.Lines(measure) {
		x := cell(run.LineX(measure(line)))
		y := cell(run.Y) + i
		for _, r := range line {
			c.put(x, y, r, fg)
			x += max(1, runewidth.RuneWidth(r))
		}
	}
}
