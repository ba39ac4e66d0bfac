package timegrid

import (
	"fmt"
	"time"
)

// Unit is a calendar unit a division steps by.
type Unit byte

const (
	Minute Unit = 'm'
	Hour   Unit = 'h'
	Day    Unit = 'd'
	Week   Unit = 'w'
	Month  Unit = 'M'
	Year   Unit = 'y'
)

func (u Unit) String() string {
	switch u {
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	}
	return fmt.Sprintf("Unit(%q)", byte(u))
}

// Division is one stepping rule of a tier, e.g. every 15 minutes.
type Division struct {
	Delta int
	Unit  Unit
}

// Tier is one row of the granularity table. Unit is the density threshold
// in hours per grid cell; a tier is chosen while the measured density stays
// below it.
type Tier struct {
	Unit float64
	Divs [3]Division
}

// Tiers is ordered from finest to coarsest.
var Tiers = []Tier{
	{Unit: 1.0 / 12, Divs: [3]Division{{5, Minute}, {1, Hour}, {1, Day}}},
	{Unit: 1.0 / 6, Divs: [3]Division{{15, Minute}, {1, Hour}, {1, Day}}},
	{Unit: 1.0 / 2, Divs: [3]Division{{30, Minute}, {1, Hour}, {1, Day}}},
	{Unit: 1, Divs: [3]Division{{1, Hour}, {6, Hour}, {1, Day}}},
	{Unit: 3, Divs: [3]Division{{2, Hour}, {12, Hour}, {1, Day}}},
	{Unit: 6, Divs: [3]Division{{12, Hour}, {1, Day}, {1, Month}}},
	{Unit: 12, Divs: [3]Division{{1, Day}, {1, Week}, {1, Month}}},
	{Unit: 48, Divs: [3]Division{{1, Week}, {1, Month}, {1, Year}}},
}

// Weights holds the stroke width in mm of each division's grid lines.
var Weights = [3]float64{0.05, 0.2, 0.3}

// startOf truncates t to the start of the calendar unit containing it.
// Weeks start on Monday so they agree with ISO week numbers.
func startOf(t time.Time, u Unit) time.Time {
	y, mo, d := t.Date()
	loc := t.Location()
	switch u {
	case Minute:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), 0, 0, loc)
	case Hour:
		return time.Date(y, mo, d, t.Hour(), 0, 0, 0, loc)
	case Day:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case Week:
		back := (int(t.Weekday()) + 6) % 7
		return time.Date(y, mo, d-back, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
	return t
}

// advance steps t forward by one division. Day and larger steps follow the
// calendar, so a day across a DST change is 23 or 25 hours long.
func advance(t time.Time, div Division) time.Time {
	switch div.Unit {
	case Minute:
		return t.Add(time.Duration(div.Delta) * time.Minute)
	case Hour:
		return t.Add(time.Duration(div.Delta) * time.Hour)
	case Day:
		return t.AddDate(0, 0, div.Delta)
	case Week:
		return t.AddDate(0, 0, 7*div.Delta)
	case Month:
		return t.AddDate(0, div.Delta, 0)
	case Year:
		return t.AddDate(div.Delta, 0, 0)
	}
	return t.Add(time.Hour)
}

// format renders a tick label for the unit: ":05", "14h", "Mo 3", "07"
// (ISO week), "Mar", "2024".
func format(t time.Time, u Unit) string {
	switch u {
	case Minute:
		return fmt.Sprintf(":%02d", t.Minute())
	case Hour:
		return fmt.Sprintf("%dh", t.Hour())
	case Day:
		return fmt.Sprintf("%s %d", t.Weekday().String()[:2], t.Day())
	case Week:
		_, wk := t.ISOWeek()
		return fmt.Sprintf("%02d", wk)
	case Month:
		return t.Format("Jan")
	case Year:
		return t.Format("2006")
	}
	return t.Format(time.RFC3339)
}
