// Package vector defines the backend-neutral drawing program produced for
// a timeline: documents made of pages, each an ordered list of
// instructions whose lengths are in millimeters.
//
// Style overlays are cumulative within a page. An overlay attached to any
// instruction is applied before that instruction draws and stays in effect
// for the rest of the page until overridden. Clip instructions, and
// rectangles flagged Clip, save the graphics state before narrowing the
// clip region; Restore pops the most recent save.
//
// Text positions are the top-left corner of the first line. When MaxWidth
// is set the text is aligned inside [X, X+MaxWidth]; without it a right
// aligned run ends at X and a centered run is centered on X.
package vector

// Kind tags an Instruction.
type Kind int

const (
	KindStyle Kind = iota
	KindLine
	KindPolyline
	KindRect
	KindText
	KindClip
	KindRestore
)

var kindNames = [...]string{"style", "line", "polyline", "rect", "text", "clip", "restore"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// PaintMode selects how a closed shape is painted.
type PaintMode int

const (
	Stroke PaintMode = 1
	Fill   PaintMode = 2
	Both   PaintMode = 3
)

// Instruction is one drawing step. Which fields matter depends on Kind:
//
//	line      Points = x1, y1, x2, y2
//	polyline  Points = x1, y1, x2, y2, ...; Closed; Mode
//	rect      Points = x, y, w, h; Mode; Radius; Clip
//	text      Text, X, Y, MaxWidth, MaxHeight, Multiline
//	clip      Points = x, y, w, h
type Instruction struct {
	Kind      Kind      `json:"type"`
	Overlay   Overlay   `json:"style,omitempty"`
	Points    []float64 `json:"points,omitempty"`
	Closed    bool      `json:"closed,omitempty"`
	Mode      PaintMode `json:"mode,omitempty"`
	Radius    float64   `json:"radius,omitempty"`
	Clip      bool      `json:"clip,omitempty"`
	Text      string    `json:"text,omitempty"`
	X         float64   `json:"x,omitempty"`
	Y         float64   `json:"y,omitempty"`
	MaxWidth  float64   `json:"maxWidth,omitempty"`
	MaxHeight float64   `json:"maxHeight,omitempty"`
	Multiline bool      `json:"multiline,omitempty"`
}

// Style returns a pure style change.
func Style(o Overlay) Instruction {
	return Instruction{Kind: KindStyle, Overlay: o}
}

// Line returns a stroked segment.
func Line(x1, y1, x2, y2 float64) Instruction {
	return Instruction{Kind: KindLine, Points: []float64{x1, y1, x2, y2}}
}

// Polyline returns an open or closed path through pts (x, y pairs).
func Polyline(pts []float64, closed bool, mode PaintMode) Instruction {
	return Instruction{Kind: KindPolyline, Points: pts, Closed: closed, Mode: mode}
}

// Rect returns an axis-aligned rectangle.
func Rect(x, y, w, h float64, mode PaintMode) Instruction {
	return Instruction{Kind: KindRect, Points: []float64{x, y, w, h}, Mode: mode}
}

// Clip returns a save-and-clip to a rectangle.
func Clip(x, y, w, h float64) Instruction {
	return Instruction{Kind: KindClip, Points: []float64{x, y, w, h}}
}

// Restore pops the last saved clip state.
func Restore() Instruction {
	return Instruction{Kind: KindRestore}
}

// Text returns a text run at (x, y).
func Text(text string, x, y float64) Instruction {
	return Instruction{Kind: KindText, Text: text, X: x, Y: y}
}

// With attaches a style overlay, merged over any overlay already present.
func (in Instruction) With(o Overlay) Instruction {
	in.Overlay = in.Overlay.Merge(o)
	return in
}

// Rounded sets the corner radius of a rect.
func (in Instruction) Rounded(r float64) Instruction {
	in.Radius = r
	return in
}

// Clipping makes a rect also open a clip region shaped like itself.
func (in Instruction) Clipping() Instruction {
	in.Clip = true
	return in
}

// Boxed sets the text box of a text run.
func (in Instruction) Boxed(maxWidth, maxHeight float64, multiline bool) Instruction {
	in.MaxWidth, in.MaxHeight, in.Multiline = maxWidth, maxHeight, multiline
	return in
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
