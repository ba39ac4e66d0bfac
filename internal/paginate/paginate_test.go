package paginate

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline2pdf/internal/lanes"
)

func TestRowHeight_ConvergesTenRowsOnOnePage(t *testing.T) {
	// 70mm at the 10mm cap only holds 7 rows by floor
	h := RowHeight(1, 70, 70, 10, 70, 10)
	assert.Equal(t, 7.0, h)
	assert.GreaterOrEqual(t, Capacity(1, 70, 70, h), 10)

	h = RowHeight(1, 70, 120, 10, 70, 10)
	assert.GreaterOrEqual(t, int(math.Floor(70/h)), 10)
	assert.Equal(t, 7.0, h)
}

func TestRowHeight_MeanIsKeptWhenItFits(t *testing.T) {
	h := RowHeight(2, 100, 200, 10, 100, 50)
	assert.Equal(t, 20.0, h)

	// a shorter first page only fits 9 rows at 20mm, so it steps down
	assert.Equal(t, 9, Capacity(2, 100, 90, 20))
	h = RowHeight(2, 100, 200, 10, 90, 50)
	assert.Equal(t, 18.0, h)
	assert.GreaterOrEqual(t, Capacity(2, 100, 90, h), 10)
}

func TestRowHeight_Property(t *testing.T) {
	for _, pages := range []int{1, 2, 3, 5} {
		for _, extent := range []float64{17, 45.5, 120, 252} {
			for _, n := range []int{0, 1, 7, 10, 33, 250, 1000} {
				for _, ceiling := range []float64{3, 10 * 0.3528 * 11, 200} {
					name := fmt.Sprintf("p%d/e%g/n%d/c%g", pages, extent, n, ceiling)
					t.Run(name, func(t *testing.T) {
						first := extent - 10
						total := float64(pages)*extent - 10
						h := RowHeight(pages, extent, total, n, first, ceiling)
						require.Greater(t, h, 0.0)
						require.LessOrEqual(t, h, ceiling)
						require.GreaterOrEqual(t, Capacity(pages, extent, first, h), n)
					})
				}
			}
		}
	}
}

func TestRowHeight_NoRows(t *testing.T) {
	assert.Equal(t, 8.0, RowHeight(2, 100, 190, 0, 90, 8))
}

func mkLanes(n int) []lanes.Lane {
	out := make([]lanes.Lane, n)
	for i := range out {
		out[i] = lanes.Lane{Group: i, First: true, LaneCount: 1}
	}
	return out
}

func TestRows_PartitionsContiguously(t *testing.T) {
	rows := mkLanes(25)
	infos := Rows(rows, 3, 100, 10, 25, 10, true)
	require.Len(t, infos, 3)

	assert.Equal(t, 9, infos[0].Capacity)
	assert.Equal(t, 35.0, infos[0].Base)
	assert.Equal(t, 10, infos[1].Capacity)
	assert.Equal(t, 25.0, infos[1].Base)

	var seen []int
	for _, info := range infos {
		assert.LessOrEqual(t, len(info.Rows), info.Capacity)
		for _, r := range info.Rows {
			seen = append(seen, r.Group)
		}
	}
	want := make([]int, 25)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, seen)
	assert.Len(t, infos[2].Rows, 6)
}

func TestRows_VerticalTitleKeepsCapacity(t *testing.T) {
	infos := Rows(mkLanes(3), 2, 100, 10, 15, 10, false)
	assert.Equal(t, 10, infos[0].Capacity)
	assert.Equal(t, 25.0, infos[0].Base)
	assert.Equal(t, 15.0, infos[1].Base)
}

func TestRows_EmptyStillProducesEveryTile(t *testing.T) {
	infos := Rows(nil, 3, 100, 10, 25, 10, true)
	require.Len(t, infos, 3)
	for _, info := range infos {
		assert.Empty(t, info.Rows)
	}
}

func TestSpans(t *testing.T) {
	assert.Equal(t, []float64{130, 180, 180}, Spans(3, 180, 130))
	assert.Equal(t, []float64{130}, Spans(1, 180, 130))
}

func TestWindows(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// 1mm per hour
	mmPerMilli := 1.0 / float64(time.Hour/time.Millisecond)
	ws := Windows(from, []float64{6, 12, 12}, mmPerMilli)
	require.Len(t, ws, 3)
	assert.Equal(t, from, ws[0].From)
	assert.Equal(t, from.Add(6*time.Hour), ws[0].To)
	assert.Equal(t, ws[0].To, ws[1].From)
	assert.Equal(t, from.Add(18*time.Hour), ws[1].To)
	assert.Equal(t, from.Add(30*time.Hour), ws[2].To)
	assert.Equal(t, 12.0, ws[2].Extent)
}
