package vector

import (
	"encoding/json"
	"io"
)

// Page is one sheet of the document, sized in millimeters.
type Page struct {
	WidthMM      float64       `json:"width"`
	HeightMM     float64       `json:"height"`
	Instructions []Instruction `json:"data"`
}

// Document is the ordered list of pages handed to a backend.
type Document struct {
	Title string `json:"title,omitempty"`
	Pages []Page `json:"pages"`
}

// Add appends instructions to the page.
func (p *Page) Add(in ...Instruction) {
	p.Instructions = append(p.Instructions, in...)
}

// States returns the effective style in force while each instruction
// draws, i.e. after its own overlay has been applied.
func (p Page) States() []StyleState {
	out := make([]StyleState, len(p.Instructions))
	s := DefaultStyle()
	for i, in := range p.Instructions {
		s = s.Apply(in.Overlay)
		out[i] = s
	}
	return out
}

// Balanced reports whether every save (clip or clipping rect) on the page
// is matched by a restore and no restore pops an empty stack.
func (p Page) Balanced() bool {
	depth := 0
	for _, in := range p.Instructions {
		switch {
		case in.Kind == KindClip, in.Kind == KindRect && in.Clip:
			depth++
		case in.Kind == KindRestore:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// WriteJSON encodes the document for external renderers.
func (d Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
