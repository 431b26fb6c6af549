package zorder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurve3DPointRoundTrip(t *testing.T) {
	curve := NewCurve3D(1024, -180, -90, 180, 90, 1000000)
	index := curve.Index(2.3522, 48.8566, 500000)
	x, y, tm := curve.Point(index)
	assert.InDelta(t, 2.3522, x, curve.cellWidth())
	assert.InDelta(t, 48.8566, y, curve.cellHeight())
	assert.InDelta(t, 500000, tm, curve.cellDepth())
}

func TestCurve3DIndexSaturates(t *testing.T) {
	curve := NewCurve3D(1024, -180, -90, 180, 90, 1000)
	assert.Equal(t, curve.Index(-180, 90, 0), curve.Index(-360, 180, -50))
	assert.Equal(t, curve.Index(180, -90, 1000), curve.Index(400, -100, 5000))
}

func TestCurve3DRangesContainIndexedPoints(t *testing.T) {
	curve := NewCurve3D(1024, -180, -90, 180, 90, 159753997829)
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 50; iter++ {
		x := rng.Float64()*360 - 180
		y := rng.Float64()*180 - 90
		tm := rng.Float64() * 159753997829

		index := curve.Index(x, y, tm)

		xMin, xMax := clampf(x-1, -180, 180), clampf(x+1, -180, 180)
		yMin, yMax := clampf(y-1, -90, 90), clampf(y+1, -90, 90)
		tMin, tMax := clampf(tm-1e8, 0, 159753997829), clampf(tm+1e8, 0, 159753997829)

		ranges := curve.Ranges(xMin, yMin, tMin, xMax, yMax, tMax, MaxRecurse(32))
		found := false
		for _, r := range ranges {
			if r.Lower() <= index && index <= r.Upper() {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("index %d of point (%v, %v, %v) not covered", index, x, y, tm)
		}
	}
}

// Successive ranges from a 3D query stay sorted and disjoint.
func TestCurve3DRangesDisjoint(t *testing.T) {
	curve := NewCurve3D(1024, -180, -90, 180, 90, 1000)
	ranges := curve.Ranges(-10, -10, 100, 10, 10, 200, MaxRecurse(16))
	for i := 1; i < len(ranges); i++ {
		if ranges[i-1].Upper()+1 >= ranges[i].Lower() {
			t.Fatalf("ranges %v and %v not sorted-disjoint", ranges[i-1], ranges[i])
		}
	}
}
