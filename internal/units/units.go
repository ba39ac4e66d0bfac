// Package units converts between the physical lengths used by the layout
// (millimeters) and the units backends and callers speak (points, pixels).
package units

// 25.4mm = 72pt
const (
	PtPerMM = 72 / 25.4
	MMPerPt = 25.4 / 72
	MMPerIn = 25.4
)

// PtToMM converts typographic points to millimeters.
func PtToMM(pt float64) float64 {
	return pt * MMPerPt
}

// PxPerMM returns the device pixels covering one millimeter at dpi.
func PxPerMM(dpi float64) float64 {
	return dpi / MMPerIn
}
