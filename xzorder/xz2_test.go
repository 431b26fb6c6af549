package xzorder

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXZ2Index(t *testing.T) {
	sfc := XZ2WGS84(12)

	tests := []struct {
		xMin, yMin, xMax, yMax float64
		want                   uint64
	}{
		{10, 10, 12, 12, 16841390},
		{-180, -90, -180, -90, 12},
		{-180, -90, 0, 0, 2},
		{10, -90, 12, -89, 5599580},
		{79.9, 0.5, 79.9, 0.5, 17236267},
	}
	for _, test := range tests {
		expect.EQ(t, sfc.Index(test.xMin, test.yMin, test.xMax, test.yMax), test.want,
			"box", test.xMin, test.yMin, test.xMax, test.yMax)
	}
}

func TestXZ2Ranges(t *testing.T) {
	sfc := XZ2WGS84(20)

	assert.Equal(t, 8077, len(sfc.Ranges(-0.5, -0.5, 0.5, 0.5, 0)))
	assert.True(t, len(sfc.Ranges(-0.5, -0.5, 0.5, 0.5, 1000)) < 1000)

	assert.Equal(t, 5883, len(sfc.Ranges(55.758, 20.5, 55.759, 21.5, 0)))

	ranges := sfc.Ranges(-55.758, 20.5, -55.755, 21.5, 0)
	require.Equal(t, 8070, len(ranges))
	assert.Equal(t, uint64(1), ranges[0].Lower())
	assert.Equal(t, uint64(847016214083), ranges[len(ranges)-1].Upper())
}

// Any query box containing or touching an indexed region yields a range
// containing the region's index; disjoint boxes never do.
func TestXZ2QueryBoundingBoxes(t *testing.T) {
	sfc := XZ2WGS84(12)
	polygon := sfc.Index(10, 10, 12, 12)

	type box struct {
		xMin, yMin, xMax, yMax float64
	}
	intersecting := []box{
		// Containing.
		{9, 9, 13, 13},
		{-180, -90, 180, 90},
		{0, 0, 180, 90},
		{0, 0, 20, 20},
		// Overlapping.
		{11, 11, 13, 13},
		{9, 9, 11, 11},
		{10.5, 10.5, 11.5, 11.5},
		{11, 11, 11, 11},
	}
	disjoint := []box{
		{-180, -90, 8, 8},
		{0, 0, 8, 8},
		{9, 9, 9.5, 9.5},
		{20, 20, 180, 90},
	}

	for _, b := range intersecting {
		ranges := sfc.Ranges(b.xMin, b.yMin, b.xMax, b.yMax, 0)
		found := false
		for _, r := range ranges {
			if r.Lower() <= polygon && polygon <= r.Upper() {
				found = true
				break
			}
		}
		assert.True(t, found, "query %v should match indexed region", b)
	}

	for _, b := range disjoint {
		ranges := sfc.Ranges(b.xMin, b.yMin, b.xMax, b.yMax, 0)
		for _, r := range ranges {
			if r.Lower() <= polygon && polygon <= r.Upper() {
				t.Fatalf("query %v should not match indexed region", b)
			}
		}
	}
}

// Disjoint sibling elements produce disjoint full-subtree intervals.
func TestXZ2SequenceIntervalsDisjoint(t *testing.T) {
	sfc := XZ2WGS84(12)

	type interval struct{ min, max uint64 }
	var intervals []interval
	for _, e := range levelOneElements2() {
		min, max := sfc.sequenceInterval(e.xMin, e.yMin, 1, false)
		intervals = append(intervals, interval{min, max})
	}
	for i := range intervals {
		for j := range intervals {
			if i == j {
				continue
			}
			a, b := intervals[i], intervals[j]
			if a.min <= b.max && b.min <= a.max {
				t.Fatalf("sibling intervals %v and %v overlap", a, b)
			}
		}
	}
}

func TestXZ2RangesSortedDisjoint(t *testing.T) {
	sfc := XZ2WGS84(12)
	ranges := sfc.Ranges(-10, -10, 10, 10, 0)
	for i := 1; i < len(ranges); i++ {
		if ranges[i-1].Upper()+1 >= ranges[i].Lower() {
			t.Fatalf("ranges %v and %v not sorted-disjoint", ranges[i-1], ranges[i])
		}
	}
}

func TestXZ2NormalizePanics(t *testing.T) {
	sfc := XZ2WGS84(12)
	assert.Panics(t, func() { sfc.Index(10, 10, 5, 12) })
	assert.Panics(t, func() { sfc.Index(-200, 0, 0, 10) })
	assert.Panics(t, func() { sfc.Ranges(0, 0, 181, 10, 0) })
}
