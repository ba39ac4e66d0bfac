package vector

import "encoding/json"

// Align is a horizontal text alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Field flags which members of an Overlay are set.
type Field uint16

const (
	FieldFillColor Field = 1 << iota
	FieldStrokeColor
	FieldFillOpacity
	FieldLineWidth
	FieldFontSize
	FieldFontWeight
	FieldTextAlign
)

// Overlay is a partial style change. Only the fields flagged in Set are
// applied; the rest keep whatever value the page state already has.
type Overlay struct {
	Set         Field   `json:"-"`
	FillColor   string  `json:"fillColor,omitempty"`
	StrokeColor string  `json:"strokeColor,omitempty"`
	FillOpacity float64 `json:"fillOpacity,omitempty"`
	LineWidth   float64 `json:"lineWidth,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`
	FontWeight  string  `json:"fontWeight,omitempty"`
	TextAlign   Align   `json:"textAlign,omitempty"`
}

// Empty reports whether the overlay changes nothing.
func (o Overlay) Empty() bool { return o.Set == 0 }

// Has reports whether f is set.
func (o Overlay) Has(f Field) bool { return o.Set&f != 0 }

// WithFill sets the fill color, a palette name or #rrggbb.
func (o Overlay) WithFill(c string) Overlay {
	o.FillColor, o.Set = c, o.Set|FieldFillColor
	return o
}

// WithStroke sets the stroke color.
func (o Overlay) WithStroke(c string) Overlay {
	o.StrokeColor, o.Set = c, o.Set|FieldStrokeColor
	return o
}

// WithFillOpacity sets the fill opacity in [0, 1].
func (o Overlay) WithFillOpacity(a float64) Overlay {
	o.FillOpacity, o.Set = a, o.Set|FieldFillOpacity
	return o
}

// WithLineWidth sets the stroke width in mm.
func (o Overlay) WithLineWidth(w float64) Overlay {
	o.LineWidth, o.Set = w, o.Set|FieldLineWidth
	return o
}

// WithFontSize sets the font size in pt.
func (o Overlay) WithFontSize(s float64) Overlay {
	o.FontSize, o.Set = s, o.Set|FieldFontSize
	return o
}

// WithFontWeight sets the weight; "" is the regular weight.
func (o Overlay) WithFontWeight(w string) Overlay {
	o.FontWeight, o.Set = w, o.Set|FieldFontWeight
	return o
}

// WithAlign sets the horizontal text alignment.
func (o Overlay) WithAlign(a Align) Overlay {
	o.TextAlign, o.Set = a, o.Set|FieldTextAlign
	return o
}

// Merge returns o with every field set in p copied over.
func (o Overlay) Merge(p Overlay) Overlay {
	s := StyleState{}.Apply(o).Apply(p)
	s.Set = o.Set | p.Set
	return Overlay(s)
}

// StyleState is the effective graphics state of a page at some point of
// its instruction sequence. Overlays accumulate into it; nothing resets
// automatically except the start of a new page.
type StyleState Overlay

// DefaultStyle is the state every page starts in.
func DefaultStyle() StyleState {
	return StyleState{
		FillColor:   "#000000",
		StrokeColor: "#000000",
		FillOpacity: 1,
		LineWidth:   0.1,
		FontSize:    3.5,
		TextAlign:   AlignLeft,
	}
}

// Apply returns the state after overlay o.
func (s StyleState) Apply(o Overlay) StyleState {
	if o.Has(FieldFillColor) {
		s.FillColor = o.FillColor
	}
	if o.Has(FieldStrokeColor) {
		s.StrokeColor = o.StrokeColor
	}
	if o.Has(FieldFillOpacity) {
		s.FillOpacity = o.FillOpacity
	}
	if o.Has(FieldLineWidth) {
		s.LineWidth = o.LineWidth
	}
	if o.Has(FieldFontSize) {
		s.FontSize = o.FontSize
	}
	if o.Has(FieldFontWeight) {
		s.FontWeight = o.FontWeight
	}
	if o.Has(FieldTextAlign) {
		s.TextAlign = o.TextAlign
	}
	return s
}

// Bold reports whether the font weight asks for a bold face.
func (s StyleState) Bold() bool {
	return s.FontWeight == "bold"
}

// MarshalJSON writes only the fields that are set, so an explicit reset
// to a zero value (regular weight, opacity 0) survives encoding.
func (o Overlay) MarshalJSON() ([]byte, error) {
	m := make(map[string]any)
	if o.Has(FieldFillColor) {
		m["fillColor"] = o.FillColor
	}
	if o.Has(FieldStrokeColor) {
		m["strokeColor"] = o.StrokeColor
	}
	if o.Has(FieldFillOpacity) {
		m["fillOpacity"] = o.FillOpacity
	}
	if o.Has(FieldLineWidth) {
		m["lineWidth"] = o.LineWidth
	}
	if o.Has(FieldFontSize) {
		m["fontSize"] = o.FontSize
	}
	if o.Has(FieldFontWeight) {
		m["fontWeight"] = o.FontWeight
	}
	if o.Has(FieldTextAlign) {
		m["textAlign"] = o.TextAlign
	}
	return json.Marshal(m)
}
