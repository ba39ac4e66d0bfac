package source

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"timeline2pdf/internal/lanes"
	"timeline2pdf/internal/logging"
	"timeline2pdf/internal/palette"
)

// ErrMissingColumn is returned when a configured column is absent from
// the header.
var ErrMissingColumn = errors.New("column not found")

// TimeFormats are tried in order by ParseTime.
var TimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseTime parses s with the first matching TimeFormats entry. Values
// without a zone are read in loc.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, format := range TimeFormats {
		var t time.Time
		if t, err = time.ParseInLocation(format, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp '%s': %w", s, err)
}

// Record is one row keyed by lower-cased column name.
type Record map[string]string

// Get returns the trimmed value of column, matched case-insensitively.
func (r Record) Get(column string) string {
	return r[strings.ToLower(strings.TrimSpace(column))]
}

// Table is a parsed CSV file.
type Table struct {
	Header  []string
	Records []Record
}

// Has reports whether column is in the header.
func (t Table) Has(column string) bool {
	key := strings.ToLower(strings.TrimSpace(column))
	return lo.ContainsBy(t.Header, func(h string) bool {
		return strings.ToLower(strings.TrimSpace(h)) == key
	})
}

// ReadCSV reads a header row followed by records.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Table{}, fmt.Errorf("error reading CSV header: %w", err)
	}

	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	table := Table{Header: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("error reading CSV: %w", err)
		}

		rec := make(Record, len(columnMap))
		for name, i := range columnMap {
			if i < len(row) {
				rec[name] = strings.TrimSpace(row[i])
			}
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}

// LoadCSV reads filename with ReadCSV.
func LoadCSV(filename string) (Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Table{}, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()
	return ReadCSV(file)
}

// Check verifies that every configured column exists in the table.
func (c Config) Check(t Table) error {
	cols := []string{c.Columns.Group, c.Columns.Start, c.Columns.End}
	if c.Columns.Subgroup != "" {
		cols = append(cols, c.Columns.Subgroup)
	}
	if c.Columns.Color != "" {
		cols = append(cols, c.Columns.Color)
	}
	cols = append(cols, c.Columns.Labels...)
	cols = append(cols, lo.Map(c.Sort, func(k SortKey, _ int) string { return k.Column })...)
	cols = append(cols, lo.Map(c.Filters, func(f Filter, _ int) string { return f.Column })...)

	var errs []error
	for _, col := range lo.Uniq(cols) {
		if !t.Has(col) {
			errs = append(errs, fmt.Errorf("%w: '%s'. Available columns: %v", ErrMissingColumn, col, t.Header))
		}
	}
	return errors.Join(errs...)
}

// Select applies the filters and then the sort keys. The sort is stable.
func (c Config) Select(records []Record, loc *time.Location) []Record {
	out := lo.Filter(records, func(r Record, _ int) bool {
		return lo.EveryBy(c.Filters, func(f Filter) bool {
			return lo.Contains(f.Values, r.Get(f.Column)) != f.Exclude
		})
	})
	if len(c.Sort) == 0 {
		return out
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		for _, k := range c.Sort {
			n := compareValues(a.Get(k.Column), b.Get(k.Column), loc)
			if k.Descending {
				n = -n
			}
			if n != 0 {
				return n
			}
		}
		return 0
	})
	return out
}

// compareValues orders two cells as times when both parse, as numbers
// when both parse, else as text.
func compareValues(a, b string, loc *time.Location) int {
	ta, errA := ParseTime(a, loc)
	tb, errB := ParseTime(b, loc)
	if errA == nil && errB == nil {
		return ta.Compare(tb)
	}
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return cmp.Compare(na, nb)
	}
	return cmp.Compare(a, b)
}

// Color maps a choice value through the color table. Unmapped values are
// returned as is for the palette to resolve; empty values are grey.
func (c Config) Color(value string) string {
	if value == "" {
		return palette.Fallback
	}
	if mapped, ok := c.Colors[value]; ok {
		return mapped
	}
	return value
}

// Groups builds the timeline groups from records in first-seen order.
// With a subgroup column the label is [group, subgroup]. Records whose
// start or end is empty or unparseable add no interval but still create
// their group.
func (c Config) Groups(records []Record, loc *time.Location) []lanes.Group {
	var groups []lanes.Group
	index := make(map[string]int)
	dropped := 0

	for _, r := range c.Select(records, loc) {
		label := []string{r.Get(c.Columns.Group)}
		if c.Columns.Subgroup != "" {
			if sub := r.Get(c.Columns.Subgroup); sub != "" {
				label = append(label, sub)
			}
		}
		key := strings.Join(label, " : ")

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, lanes.Group{Label: label})
		}

		// an undated record still opens its group, which then shows as an
		// empty labeled row
		start, errS := ParseTime(r.Get(c.Columns.Start), loc)
		end, errE := ParseTime(r.Get(c.Columns.End), loc)
		if errS != nil || errE != nil {
			dropped++
			continue
		}

		text := lo.Compact(lo.Map(c.Columns.Labels, func(col string, _ int) string {
			return r.Get(col)
		}))
		color := ""
		if c.Columns.Color != "" {
			color = r.Get(c.Columns.Color)
		}
		groups[i].Intervals = append(groups[i].Intervals, lanes.Interval{
			Label: text,
			Start: start,
			End:   end,
			Color: c.Color(color),
		})
	}

	logging.Logger().Debug("grouped records",
		"groups", len(groups), "records", len(records), "dropped", dropped)
	return groups
}
