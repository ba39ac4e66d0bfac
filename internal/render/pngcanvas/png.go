// Package pngcanvas rasterizes vector documents with draw2d, one image per
// page.
package pngcanvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"timeline2pdf/internal/logging"
	"timeline2pdf/internal/palette"
	"timeline2pdf/internal/render"
	"timeline2pdf/internal/units"
	"timeline2pdf/internal/vector"
)

// DefaultDPI is used when Render is given a non-positive resolution.
const DefaultDPI = 150

var (
	regular = draw2d.FontData{Name: "go", Family: draw2d.FontFamilySans, Style: draw2d.FontStyleNormal}
	bold    = draw2d.FontData{Name: "go", Family: draw2d.FontFamilySans, Style: draw2d.FontStyleBold}

	fontsOnce sync.Once
	fontsErr  error
)

func registerFonts() error {
	fontsOnce.Do(func() {
		for _, f := range []struct {
			data draw2d.FontData
			ttf  []byte
		}{{regular, goregular.TTF}, {bold, gobold.TTF}} {
			font, err := truetype.Parse(f.ttf)
			if err != nil {
				fontsErr = fmt.Errorf("parse font: %w", err)
				return
			}
			draw2d.RegisterFont(f.data, font)
		}
	})
	return fontsErr
}

// layer is a drawing surface. Clips push a transparent layer covering
// only the clip rectangle; it is composited into its parent on Restore.
// origin is the page position of the layer's top-left pixel.
type layer struct {
	img    *image.RGBA
	gc     *draw2dimg.GraphicContext
	clip   image.Rectangle
	origin image.Point
}

// Canvas rasterizes pages into RGBA images.
type Canvas struct {
	Pages []*image.RGBA

	layers []layer
	style  vector.StyleState
}

// New returns an empty canvas.
func New() (*Canvas, error) {
	if err := registerFonts(); err != nil {
		return nil, err
	}
	return &Canvas{}, nil
}

// Render rasterizes every page of doc at dpi.
func Render(doc vector.Document, dpi float64) ([]*image.RGBA, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	c, err := New()
	if err != nil {
		return nil, err
	}
	if err := render.Replay(doc, c, units.PxPerMM(dpi)); err != nil {
		return nil, err
	}
	logging.Logger().Debug("rasterized document", "pages", len(c.Pages), "dpi", dpi)
	return c.Pages, nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func (c *Canvas) top() *layer { return &c.layers[len(c.layers)-1] }

// newLayer allocates a surface for the page area clip. Drawing happens in
// page coordinates; the context is translated so the clip's top-left
// lands on pixel (0, 0).
func (c *Canvas) newLayer(clip image.Rectangle) layer {
	img := image.NewRGBA(image.Rect(0, 0, max(1, clip.Dx()), max(1, clip.Dy())))
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetDPI(72)
	gc.Translate(-float64(clip.Min.X), -float64(clip.Min.Y))
	l := layer{img: img, gc: gc, clip: clip, origin: clip.Min}
	c.applyTo(l.gc)
	return l
}

// BeginPage starts a white page of w by h pixels.
func (c *Canvas) BeginPage(w, h float64) error {
	bounds := image.Rect(0, 0, int(math.Ceil(w-1e-9)), int(math.Ceil(h-1e-9)))
	if bounds.Empty() {
		return fmt.Errorf("empty page %gx%g", w, h)
	}
	c.layers = c.layers[:0]
	c.layers = append(c.layers, c.newLayer(bounds))
	draw.Draw(c.top().img, bounds, image.White, image.Point{}, draw.Src)
	return nil
}

// EndPage unwinds open clips and keeps the finished image.
func (c *Canvas) EndPage() error {
	for len(c.layers) > 1 {
		c.Restore()
	}
	c.Pages = append(c.Pages, c.top().img)
	c.layers = nil
	return nil
}

// SetStyle records s and applies it to the current layer.
func (c *Canvas) SetStyle(s vector.StyleState) {
	c.style = s
	if len(c.layers) > 0 {
		c.applyTo(c.top().gc)
	}
}

// applyTo pushes the recorded style into gc.
func (c *Canvas) applyTo(gc *draw2dimg.GraphicContext) {
	s := c.style
	fr, fg, fb := palette.RGB(s.FillColor)
	sr, sg, sb := palette.RGB(s.StrokeColor)
	alpha := uint8(math.Round(math.Max(0, math.Min(1, s.FillOpacity)) * 255))
	gc.SetFillColor(color.NRGBA{R: fr, G: fg, B: fb, A: alpha})
	gc.SetStrokeColor(color.NRGBA{R: sr, G: sg, B: sb, A: 255})
	gc.SetLineWidth(s.LineWidth)
	if s.Bold() {
		gc.SetFontData(bold)
	} else {
		gc.SetFontData(regular)
	}
	gc.SetFontSize(s.FontSize)
}

// MoveTo, LineTo and ClosePath build the current path.
func (c *Canvas) MoveTo(x, y float64) { c.top().gc.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float64) { c.top().gc.LineTo(x, y) }
func (c *Canvas) ClosePath()          { c.top().gc.Close() }

// Paint fills and/or strokes the current path.
func (c *Canvas) Paint(mode vector.PaintMode) {
	gc := c.top().gc
	switch mode {
	case vector.Fill:
		gc.Fill()
	case vector.Both:
		gc.FillStroke()
	default:
		gc.Stroke()
	}
}

// Rect draws a rectangle, with corners of the given radius when positive.
func (c *Canvas) Rect(x, y, w, h, radius float64, mode vector.PaintMode) {
	gc := c.top().gc
	if radius > 0 {
		draw2dkit.RoundedRectangle(gc, x, y, x+w, y+h, 2*radius, 2*radius)
	} else {
		draw2dkit.Rectangle(gc, x, y, x+w, y+h)
	}
	c.Paint(mode)
}

// Clip narrows drawing to the bounding box of the region. Rounded corners
// are not cut. The pushed layer is only as large as the box.
func (c *Canvas) Clip(x, y, w, h, _ float64) {
	parent := c.top()
	box := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(parent.clip)
	c.layers = append(c.layers, c.newLayer(box))
}

// Restore composites the innermost clip layer into its parent and pops it.
func (c *Canvas) Restore() {
	if len(c.layers) < 2 {
		return
	}
	l := c.layers[len(c.layers)-1]
	c.layers = c.layers[:len(c.layers)-1]
	parent := c.top()
	if !l.clip.Empty() {
		draw.Draw(parent.img, l.clip.Sub(parent.origin), l.img, image.Point{}, draw.Over)
	}
	c.applyTo(parent.gc)
}

// Text draws a run with the current font, one FillStringAt per line.
func (c *Canvas) Text(run render.TextRun) {
	if run.Size <= 0 {
		return
	}
	gc := c.top().gc
	measure := func(s string) float64 {
		left, _, right, _ := gc.GetStringBounds(s)
		return right - left
	}
	for i, line := range run.Lines(measure) {
		if line == "" {
			continue
		}
		gc.FillStringAt(line, run.LineX(measure(line)), run.Baseline(i))
	}
}
