package gantt

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"timeline2pdf/internal/vector"
)

var (
	// ErrInvalidConfig wraps every configuration problem.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnknownPaperSize is returned for a paper name missing from Papers.
	ErrUnknownPaperSize = fmt.Errorf("%w: unknown paper size", ErrInvalidConfig)
	// ErrEmptySpan is returned when the time span is empty or inverted.
	ErrEmptySpan = fmt.Errorf("%w: empty time span", ErrInvalidConfig)
)

// Mode selects which page axis carries time.
type Mode int

const (
	// Horizontal runs time left to right, one row per lane.
	Horizontal Mode = iota
	// Vertical runs time top to bottom, one column per lane.
	Vertical
)

func (m Mode) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Orientation of the sheet.
type Orientation int

const (
	Landscape Orientation = iota
	Portrait
)

func (o Orientation) String() string {
	switch o {
	case Landscape:
		return "landscape"
	case Portrait:
		return "portrait"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// Paper is a named sheet size in portrait millimeters.
type Paper struct {
	Name   string
	Width  float64
	Height float64
}

// Papers is the published paper table.
var Papers = []Paper{
	{"A5", 148, 210},
	{"A4", 210, 297},
	{"A3", 297, 420},
	{"A2", 420, 594},
	{"A1", 594, 841},
	{"A0", 841, 1189},
}

// LookupPaper finds a paper by case-insensitive name.
func LookupPaper(name string) (Paper, bool) {
	for _, p := range Papers {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Paper{}, false
}

// Config controls one document generation.
//
// Font sizes are in points. From and To default to the earliest start and
// latest end of the input when zero. Location is the zone used for
// calendar snapping and labels; nil means time.Local.
type Config struct {
	Title          string
	From           time.Time
	To             time.Time
	HPages         int
	VPages         int
	GroupsFontSize float64
	TasksFontSize  float64
	HoursFontSize  float64
	Mode           Mode
	Orientation    Orientation
	Align          vector.Align
	Multiline      bool
	PaperSize      string
	Location       *time.Location
}

// DefaultConfig returns a single A4 portrait page in horizontal mode.
func DefaultConfig() Config {
	return Config{
		HPages:         1,
		VPages:         1,
		GroupsFontSize: 11,
		TasksFontSize:  8,
		HoursFontSize:  6.5,
		Mode:           Horizontal,
		Orientation:    Portrait,
		Align:          vector.AlignLeft,
		Multiline:      true,
		PaperSize:      "A4",
	}
}

// Validate reports every problem with c at once. All returned errors
// match ErrInvalidConfig with errors.Is.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.HPages < 1 {
		bad("hpages must be at least 1, got %d", c.HPages)
	}
	if c.VPages < 1 {
		bad("vpages must be at least 1, got %d", c.VPages)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"groups font size", c.GroupsFontSize},
		{"tasks font size", c.TasksFontSize},
		{"hours font size", c.HoursFontSize},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v <= 0 {
			bad("%s must be a positive number, got %v", f.name, f.v)
		}
	}
	if c.Mode != Horizontal && c.Mode != Vertical {
		bad("unknown mode %d", int(c.Mode))
	}
	if c.Orientation != Landscape && c.Orientation != Portrait {
		bad("unknown orientation %d", int(c.Orientation))
	}
	switch c.Align {
	case vector.AlignLeft, vector.AlignCenter, vector.AlignRight:
	default:
		bad("unknown alignment %q", c.Align)
	}
	if _, ok := LookupPaper(c.PaperSize); !ok {
		errs = append(errs, fmt.Errorf("%w %q", ErrUnknownPaperSize, c.PaperSize))
	}
	if !c.From.IsZero() && !c.To.IsZero() && !c.From.Before(c.To) {
		errs = append(errs, fmt.Errorf("%w: from %s is not before to %s", ErrEmptySpan,
			c.From.Format(time.RFC3339), c.To.Format(time.RFC3339)))
	}
	return errors.Join(errs...)
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}
