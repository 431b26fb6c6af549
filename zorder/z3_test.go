package zorder

import (
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
)

func TestZ3Encoding(t *testing.T) {
	tests := []struct {
		x, y, z int32
		want    uint64
	}{
		{1, 0, 0, 1},
		{0, 1, 0, 2},
		{0, 0, 1, 4},
		{1, 1, 1, 7},
	}
	for _, test := range tests {
		expect.EQ(t, uint64(NewZ3(test.x, test.y, test.z)), test.want, "x", test.x, "y", test.y, "z", test.z)
	}
}

func TestZ3Decoding(t *testing.T) {
	x, y, z := NewZ3(23, 13, 200).Decode()
	expect.EQ(t, x, int32(23))
	expect.EQ(t, y, int32(13))
	expect.EQ(t, z, int32(200))

	x, y, z = NewZ3(0x1fffff, 0, 0x1fffff).Decode()
	expect.EQ(t, x, int32(0x1fffff))
	expect.EQ(t, y, int32(0))
	expect.EQ(t, z, int32(0x1fffff))
}

func TestZ3EncodeDecodeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x := int32(rng.Intn(1 << 16))
		y := int32(rng.Intn(1 << 16))
		z := int32(rng.Intn(1 << 16))
		gotX, gotY, gotZ := NewZ3(x, y, z).Decode()
		if gotX != x || gotY != y || gotZ != z {
			t.Fatalf("round trip (%d, %d, %d) -> (%d, %d, %d)", x, y, z, gotX, gotY, gotZ)
		}
	}
}

func TestZ3SplitCombine(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := uint64(rng.Int63()) & ZN3.maxMask
		if got := combineZ3(splitZ3(v)); int32(v) != got {
			t.Fatalf("combine(split(%d)) = %d", v, got)
		}
	}
}

func TestZ3OutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { NewZ3(-1, 0, 0) })
	assert.Panics(t, func() { NewZ3(0x200000, 0, 0) })
	assert.Panics(t, func() { NewZ3(0, 0, 0x7fffffff) })
}
