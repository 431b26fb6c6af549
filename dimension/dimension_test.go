package dimension

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoundTripMinimum(t *testing.T) {
	lat := Lat(31)
	lon := Lon(31)

	assert.Equal(t, int32(0), lat.Normalize(lat.Denormalize(0)))
	assert.Equal(t, int32(0), lon.Normalize(lon.Denormalize(0)))
}

func TestNormalizeRoundTripMaximum(t *testing.T) {
	lat := Lat(31)
	lon := Lon(31)
	maxBin := int32(1<<31 - 1)

	assert.Equal(t, maxBin, lat.Normalize(lat.Denormalize(maxBin)))
	assert.Equal(t, maxBin, lon.Normalize(lon.Denormalize(maxBin)))
}

func TestNormalizeBounds(t *testing.T) {
	lat := Lat(31)
	lon := Lon(31)
	maxBin := int32(1<<31 - 1)

	assert.Equal(t, int32(0), lat.Normalize(lat.Min()))
	assert.Equal(t, int32(0), lon.Normalize(lon.Min()))
	assert.Equal(t, maxBin, lat.Normalize(lat.Max()))
	assert.Equal(t, maxBin, lon.Normalize(lon.Max()))

	// Values above the upper bound saturate.
	assert.Equal(t, maxBin, lat.Normalize(91))
}

func TestDenormalizeToCellCentre(t *testing.T) {
	lat := Lat(31)
	lon := Lon(31)
	maxBin := int32(1<<31 - 1)

	latWidth := (lat.Max() - lat.Min()) / float64(int64(maxBin)+1)
	lonWidth := (lon.Max() - lon.Min()) / float64(int64(maxBin)+1)

	assert.Equal(t, lat.Min()+latWidth/2, lat.Denormalize(0))
	assert.Equal(t, lat.Max()-latWidth/2, lat.Denormalize(maxBin))
	assert.Equal(t, lon.Min()+lonWidth/2, lon.Denormalize(0))
	assert.Equal(t, lon.Max()-lonWidth/2, lon.Denormalize(maxBin))
}

func TestTimeNormalizer(t *testing.T) {
	tm := Time(10, 86400000)
	assert.Equal(t, int32(0), tm.Normalize(0))
	assert.Equal(t, int32(1<<10-1), tm.Normalize(86400000))
	assert.Equal(t, int32(1<<10-1), tm.Normalize(999999999))
	assert.Equal(t, int32(512), tm.Normalize(43200000+1))
}

func TestPrecisionPanics(t *testing.T) {
	assert.Panics(t, func() { Lat(0) })
	assert.Panics(t, func() { Lon(32) })
	assert.Panics(t, func() { Time(40, 100) })
}
