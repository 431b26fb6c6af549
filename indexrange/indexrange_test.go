package indexrange

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeAccessors(t *testing.T) {
	r := Covered(12, 15)
	assert.Equal(t, uint64(12), r.Lower())
	assert.Equal(t, uint64(15), r.Upper())
	assert.True(t, r.Contained())

	lower, upper, contained := Overlapping(3, 9).Tuple()
	assert.Equal(t, uint64(3), lower)
	assert.Equal(t, uint64(9), upper)
	assert.False(t, contained)
}

func TestRangeOrdering(t *testing.T) {
	tests := []struct {
		a, b Range
		less bool
	}{
		{Covered(0, 10), Covered(1, 5), true},
		{Covered(1, 5), Covered(0, 10), false},
		{Covered(3, 5), Covered(3, 9), true},
		// The contained flag does not participate in ordering or equality.
		{Overlapping(3, 5), Covered(3, 5), false},
		{Covered(3, 5), Overlapping(3, 5), false},
	}
	for _, test := range tests {
		assert.Equal(t, test.less, test.a.Less(test.b))
	}

	assert.True(t, Covered(3, 5).EQ(Overlapping(3, 5)))
	assert.False(t, Covered(3, 5).EQ(Covered(3, 6)))
}

func TestMergeAdjacent(t *testing.T) {
	merged := Merge([]Range{Covered(0, 15), Covered(16, 19), Covered(24, 27)})
	assert.Equal(t, []Range{Covered(0, 19), Covered(24, 27)}, merged)
}

func TestMergeOverlapping(t *testing.T) {
	merged := Merge([]Range{Covered(0, 10), Covered(5, 12), Covered(20, 30)})
	assert.Equal(t, []Range{Covered(0, 12), Covered(20, 30)}, merged)
}

// A merged range may only stay covered when every input was covered.
func TestMergeConservativeTag(t *testing.T) {
	merged := Merge([]Range{Covered(0, 10), Overlapping(11, 12)})
	assert.Equal(t, []Range{Overlapping(0, 12)}, merged)

	merged = Merge([]Range{Overlapping(0, 10), Covered(11, 12), Covered(20, 21)})
	assert.Equal(t, []Range{Overlapping(0, 12), Covered(20, 21)}, merged)
}

func TestMergeUnsortedInput(t *testing.T) {
	merged := Merge([]Range{Covered(24, 27), Covered(16, 19), Covered(0, 15)})
	assert.Equal(t, []Range{Covered(0, 19), Covered(24, 27)}, merged)
}

func TestMergeEmpty(t *testing.T) {
	assert.Equal(t, 0, len(Merge(nil)))
}

// Merged output is sorted and strictly disjoint: successive ranges are
// separated by at least one index.
func TestMergeDisjoint(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 100; iter++ {
		ranges := make([]Range, 0, 50)
		for i := 0; i < 50; i++ {
			lower := uint64(rng.Intn(1000))
			upper := lower + uint64(rng.Intn(20))
			if rng.Intn(2) == 0 {
				ranges = append(ranges, Covered(lower, upper))
			} else {
				ranges = append(ranges, Overlapping(lower, upper))
			}
		}
		merged := Merge(ranges)
		for i := 1; i < len(merged); i++ {
			if merged[i-1].Upper()+1 >= merged[i].Lower() {
				t.Fatalf("ranges %d and %d not disjoint: %v %v", i-1, i, merged[i-1], merged[i])
			}
		}
	}
}
