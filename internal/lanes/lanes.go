// Package lanes packs the intervals of a group into swimlanes: visual rows
// in which no two intervals overlap.
//
// Intervals are sorted by start time (stable, so equal starts keep their
// input order) and placed first-fit into the lowest lane whose last
// interval has ended. For start-sorted input this uses the minimum number
// of lanes, the size of the largest set of mutually overlapping intervals.
package lanes

import (
	"slices"
	"strings"
	"time"
)

// Interval is a labeled time range rendered as one bar.
type Interval struct {
	Label []string
	Start time.Time
	End   time.Time
	Color string
}

// Valid reports whether both bounds are set. Invalid intervals are
// dropped by Pack.
func (iv Interval) Valid() bool {
	return !iv.Start.IsZero() && !iv.End.IsZero()
}

// Group is a named collection of intervals sharing one label column entry.
type Group struct {
	Label     []string
	Intervals []Interval
}

// LabelText joins a multi-part label with newlines.
func LabelText(label []string) string {
	return strings.Join(label, "\n")
}

// Lane is one rendered row.
type Lane struct {
	// Group is the index of the originating group.
	Group int
	// Label is only set on the first lane of a group.
	Label []string
	First bool
	// Striped marks even-indexed groups, which get a background band.
	Striped bool
	// LaneCount is the number of lanes the group expanded into.
	LaneCount int
	Intervals []Interval
}

// Overlaps reports whether two intervals share any time. Touching
// intervals (one ends when the other starts) do not overlap.
func Overlaps(a, b Interval) bool {
	return !(!a.End.After(b.Start) || !b.End.After(a.Start))
}

// packing is the accumulator threaded through the fold over sorted
// intervals. The last interval of each lane is its tail element.
type packing struct {
	lanes [][]Interval
}

func (p packing) firstFree(iv Interval) int {
	for k, lane := range p.lanes {
		if !lane[len(lane)-1].End.After(iv.Start) {
			return k
		}
	}
	return len(p.lanes)
}

func (p packing) place(iv Interval) packing {
	k := p.firstFree(iv)
	if k == len(p.lanes) {
		p.lanes = append(p.lanes, nil)
	}
	p.lanes[k] = append(p.lanes[k], iv)
	return p
}

// Sorted returns the valid intervals of ivs ordered by start time.
func Sorted(ivs []Interval) []Interval {
	out := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.Valid() {
			out = append(out, iv)
		}
	}
	slices.SortStableFunc(out, func(a, b Interval) int {
		return a.Start.Compare(b.Start)
	})
	return out
}

// Pack lays out one group. index is the group's position in the document
// and drives zebra striping. A group without valid intervals still yields
// one empty lane so its label is drawn.
func Pack(g Group, index int) []Lane {
	var p packing
	for _, iv := range Sorted(g.Intervals) {
		p = p.place(iv)
	}
	if len(p.lanes) == 0 {
		p.lanes = [][]Interval{nil}
	}

	out := make([]Lane, len(p.lanes))
	for k, ivs := range p.lanes {
		out[k] = Lane{
			Group:     index,
			Striped:   index%2 == 0,
			LaneCount: len(p.lanes),
			Intervals: ivs,
		}
	}
	out[0].First = true
	out[0].Label = g.Label
	return out
}

// Layout packs every group in order and concatenates their lanes.
func Layout(groups []Group) []Lane {
	var out []Lane
	for i, g := range groups {
		out = append(out, Pack(g, i)...)
	}
	return out
}

// Bounds returns the earliest start and latest end over all valid
// intervals. ok is false when there are none.
func Bounds(groups []Group) (from, to time.Time, ok bool) {
	for _, g := range groups {
		for _, iv := range g.Intervals {
			if !iv.Valid() {
				continue
			}
			if !ok || iv.Start.Before(from) {
				from = iv.Start
			}
			if !ok || iv.End.After(to) {
				to = iv.End
			}
			ok = true
		}
	}
	return from, to, ok
}
