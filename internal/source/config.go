// Package source turns tabular records into timeline groups. A YAML run
// configuration names the columns to read, the color of each choice value,
// filters, sort keys and the document options.
package source

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"timeline2pdf/internal/gantt"
	"timeline2pdf/internal/vector"
)

// SortKey orders records by one column.
type SortKey struct {
	Column     string `yaml:"column"`
	Descending bool   `yaml:"descending"`
}

// Filter keeps the records whose column value is one of Values, or drops
// them when Exclude is set.
type Filter struct {
	Column  string   `yaml:"column"`
	Values  []string `yaml:"values"`
	Exclude bool     `yaml:"exclude"`
}

// Config is the run configuration file.
type Config struct {
	Document struct {
		Title          string  `yaml:"title"`
		From           string  `yaml:"from"` // empty means the earliest start
		To             string  `yaml:"to"`   // empty means the latest end
		HPages         int     `yaml:"hpages"`
		VPages         int     `yaml:"vpages"`
		GroupsFontSize float64 `yaml:"groups_font_size"`
		TasksFontSize  float64 `yaml:"tasks_font_size"`
		HoursFontSize  float64 `yaml:"hours_font_size"`
		Mode           string  `yaml:"mode"`        // horizontal or vertical
		Orientation    string  `yaml:"orientation"` // portrait or landscape
		Align          string  `yaml:"align"`       // left, center or right
		Multiline      bool    `yaml:"multiline"`
		PaperSize      string  `yaml:"paper_size"`
		Timezone       string  `yaml:"timezone"` // IANA name; empty means local time
	} `yaml:"document"`
	Columns struct {
		Group    string   `yaml:"group"`
		Subgroup string   `yaml:"subgroup"`
		Start    string   `yaml:"start"`
		End      string   `yaml:"end"`
		Labels   []string `yaml:"labels"`
		Color    string   `yaml:"color"`
	} `yaml:"columns"`
	// Colors maps choice values to palette names or hex colors.
	Colors  map[string]string `yaml:"colors"`
	Sort    []SortKey         `yaml:"sort"`
	Filters []Filter          `yaml:"filters"`
	Output  struct {
		Format string  `yaml:"format"` // pdf, png, svg or json
		DPI    float64 `yaml:"dpi"`
	} `yaml:"output"`
}

// DefaultConfig mirrors gantt.DefaultConfig and reads the columns group,
// start, end, label and color.
func DefaultConfig() Config {
	d := gantt.DefaultConfig()

	var c Config
	c.Document.HPages = d.HPages
	c.Document.VPages = d.VPages
	c.Document.GroupsFontSize = d.GroupsFontSize
	c.Document.TasksFontSize = d.TasksFontSize
	c.Document.HoursFontSize = d.HoursFontSize
	c.Document.Mode = d.Mode.String()
	c.Document.Orientation = d.Orientation.String()
	c.Document.Align = string(d.Align)
	c.Document.Multiline = d.Multiline
	c.Document.PaperSize = d.PaperSize

	c.Columns.Group = "group"
	c.Columns.Start = "start"
	c.Columns.End = "end"
	c.Columns.Labels = []string{"label"}
	c.Columns.Color = "color"

	c.Output.Format = "pdf"
	c.Output.DPI = 150
	return c
}

// LoadConfig reads a YAML run configuration. Keys missing from the file
// keep their defaults; an empty path yields DefaultConfig.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// Location resolves Document.Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Document.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Document.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Document.Timezone, err)
	}
	return loc, nil
}

// GanttConfig converts the document section. The result still has to pass
// gantt.Config.Validate.
func (c Config) GanttConfig() (gantt.Config, error) {
	d := c.Document
	loc, err := c.Location()
	if err != nil {
		return gantt.Config{}, err
	}

	g := gantt.Config{
		Title:          d.Title,
		HPages:         d.HPages,
		VPages:         d.VPages,
		GroupsFontSize: d.GroupsFontSize,
		TasksFontSize:  d.TasksFontSize,
		HoursFontSize:  d.HoursFontSize,
		Align:          vector.Align(strings.ToLower(d.Align)),
		Multiline:      d.Multiline,
		PaperSize:      d.PaperSize,
		Location:       loc,
	}

	switch strings.ToLower(d.Mode) {
	case "", "horizontal":
		g.Mode = gantt.Horizontal
	case "vertical":
		g.Mode = gantt.Vertical
	default:
		return gantt.Config{}, fmt.Errorf("%w: mode %q", gantt.ErrInvalidConfig, d.Mode)
	}

	switch strings.ToLower(d.Orientation) {
	case "", "portrait":
		g.Orientation = gantt.Portrait
	case "landscape":
		g.Orientation = gantt.Landscape
	default:
		return gantt.Config{}, fmt.Errorf("%w: orientation %q", gantt.ErrInvalidConfig, d.Orientation)
	}

	if d.From != "" {
		if g.From, err = ParseTime(d.From, loc); err != nil {
			return gantt.Config{}, fmt.Errorf("%w: from: %v", gantt.ErrInvalidConfig, err)
		}
	}
	if d.To != "" {
		if g.To, err = ParseTime(d.To, loc); err != nil {
			return gantt.Config{}, fmt.Errorf("%w: to: %v", gantt.ErrInvalidConfig, err)
		}
	}
	return g, nil
}
