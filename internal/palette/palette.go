// Package palette resolves the color strings attached to intervals into
// canonical "#rrggbb" values.
//
// Callers hand over either a hex string ("#5AF", "#55aaff") or a free-form
// choice value such as "task blue". Free-form values are scanned word by word
// and the first word naming a palette entry wins. Anything else falls back to
// Fallback.
package palette

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Fallback is the color name used for unrecognised values.
const Fallback = "grey"

// Named maps symbolic names to their hex value. The status names (error,
// problem, warning, ok) share the table with the plain colors.
var Named = map[string]string{
	"blue":   "#5AF",
	"pink":   "#F6B",
	"red":    "#F65",
	"purple": "#B6F",
	"green":  "#4F4",
	"yellow": "#FE0",
	"grey":   "#EEE",
	"cyan":   "#4FF",
	"orange": "#F92",

	"error":   "#F00",
	"problem": "#FF0",
	"warning": "#F90",
	"ok":      "#0F0",
}

// Resolve returns the canonical "#rrggbb" form of s.
func Resolve(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if c, err := colorful.Hex(s); err == nil {
			return c.Hex()
		}
		return canonical(Named[Fallback])
	}
	for _, word := range strings.Fields(strings.ToLower(s)) {
		if hex, ok := Named[word]; ok {
			return canonical(hex)
		}
	}
	return canonical(Named[Fallback])
}

// RGB resolves s and returns its 8-bit channels.
func RGB(s string) (r, g, b uint8) {
	c, err := colorful.Hex(Resolve(s))
	if err != nil {
		return 0, 0, 0
	}
	return c.RGB255()
}

func canonical(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#000000"
	}
	return c.Hex()
}
