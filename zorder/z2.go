// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zorder

import (
	"github.com/grailbio/base/log"
)

// Z2 is a two-dimensional z-index: 31-bit x and y coordinates interleaved as
// yxyx...yx, with x occupying the even bit positions.
type Z2 uint64

// NewZ2 interleaves x and y.  Coordinates must lie in [0, ZN2.MaxMask()];
// anything else is a programmer error.
func NewZ2(x, y int32) Z2 {
	if x < 0 || y < 0 {
		log.Panicf("zorder: Z2 coordinate (%d, %d) out of range [0, %d]", x, y, ZN2.maxMask)
	}
	return Z2(splitZ2(uint64(x)) | splitZ2(uint64(y))<<1)
}

// Decode returns the user-space (x, y) coordinates of the index.
func (z Z2) Decode() (x, y int32) {
	return z.dim(0), z.dim(1)
}

func (z Z2) dim(i uint) int32 {
	return combineZ2(uint64(z) >> i)
}

// splitZ2 inserts a zero between each of the low 31 bits of value.
func splitZ2(value uint64) uint64 {
	x := value & 0x7fffffff
	x = (x ^ (x << 32)) & 0x00000000ffffffff
	x = (x ^ (x << 16)) & 0x0000ffff0000ffff
	x = (x ^ (x << 8)) & 0x00ff00ff00ff00ff
	x = (x ^ (x << 4)) & 0x0f0f0f0f0f0f0f0f
	x = (x ^ (x << 2)) & 0x3333333333333333
	x = (x ^ (x << 1)) & 0x5555555555555555
	return x
}

// combineZ2 gathers every second bit back into a single coordinate; the
// inverse of splitZ2.
func combineZ2(z uint64) int32 {
	x := z & 0x5555555555555555
	x = (x ^ (x >> 1)) & 0x3333333333333333
	x = (x ^ (x >> 2)) & 0x0f0f0f0f0f0f0f0f
	x = (x ^ (x >> 4)) & 0x00ff00ff00ff00ff
	x = (x ^ (x >> 8)) & 0x0000ffff0000ffff
	x = (x ^ (x >> 16)) & 0x00000000ffffffff
	return int32(x)
}

func z2Contains(r ZRange, value uint64) bool {
	x, y := Z2(value).Decode()
	minX, minY := Z2(r.Min).Decode()
	maxX, maxY := Z2(r.Max).Decode()
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}

func z2Overlaps(r, value ZRange) bool {
	rMinX, rMinY := Z2(r.Min).Decode()
	rMaxX, rMaxY := Z2(r.Max).Decode()
	vMinX, vMinY := Z2(value.Min).Decode()
	vMaxX, vMaxY := Z2(value.Max).Decode()
	return partialOverlaps(rMinX, rMaxX, vMinX, vMaxX) &&
		partialOverlaps(rMinY, rMaxY, vMinY, vMaxY)
}

// partialOverlaps reports whether [a1, a2] and [b1, b2] intersect.
func partialOverlaps(a1, a2, b1, b2 int32) bool {
	lo := a1
	if b1 > lo {
		lo = b1
	}
	hi := a2
	if b2 < hi {
		hi = b2
	}
	return lo <= hi
}
