// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zorder

import (
	"github.com/grailbio/base/log"
)

// Z3 is a three-dimensional z-index: 21-bit x, y, and z coordinates
// interleaved as zyxzyx...zyx, with x occupying bit positions 0, 3, 6, ...
type Z3 uint64

// NewZ3 interleaves x, y, and z.  Coordinates must lie in
// [0, ZN3.MaxMask()]; anything else is a programmer error.
func NewZ3(x, y, z int32) Z3 {
	if x < 0 || y < 0 || z < 0 ||
		uint64(x) > ZN3.maxMask || uint64(y) > ZN3.maxMask || uint64(z) > ZN3.maxMask {
		log.Panicf("zorder: Z3 coordinate (%d, %d, %d) out of range [0, %d]", x, y, z, ZN3.maxMask)
	}
	return Z3(splitZ3(uint64(x)) | splitZ3(uint64(y))<<1 | splitZ3(uint64(z))<<2)
}

// Decode returns the user-space (x, y, z) coordinates of the index.
func (z Z3) Decode() (int32, int32, int32) {
	return z.dim(0), z.dim(1), z.dim(2)
}

func (z Z3) dim(i uint) int32 {
	return combineZ3(uint64(z) >> i)
}

// splitZ3 inserts two zeros between each of the low 21 bits of value.
func splitZ3(value uint64) uint64 {
	x := value & 0x1fffff
	x = (x | x<<32) & 0x001f00000000ffff
	x = (x | x<<16) & 0x001f0000ff0000ff
	x = (x | x<<8) & 0x100f00f00f00f00f
	x = (x | x<<4) & 0x10c30c30c30c30c3
	x = (x | x<<2) & 0x1249249249249249
	return x
}

// combineZ3 gathers every third bit back into a single coordinate; the
// inverse of splitZ3.
func combineZ3(z uint64) int32 {
	x := z & 0x1249249249249249
	x = (x ^ (x >> 2)) & 0x10c30c30c30c30c3
	x = (x ^ (x >> 4)) & 0x100f00f00f00f00f
	x = (x ^ (x >> 8)) & 0x001f0000ff0000ff
	x = (x ^ (x >> 16)) & 0x001f00000000ffff
	x = (x ^ (x >> 32)) & 0x1fffff
	return int32(x)
}

func z3Contains(r ZRange, value uint64) bool {
	x, y, z := Z3(value).Decode()
	minX, minY, minZ := Z3(r.Min).Decode()
	maxX, maxY, maxZ := Z3(r.Max).Decode()
	return x >= minX && x <= maxX &&
		y >= minY && y <= maxY &&
		z >= minZ && z <= maxZ
}

func z3Overlaps(r, value ZRange) bool {
	rMinX, rMinY, rMinZ := Z3(r.Min).Decode()
	rMaxX, rMaxY, rMaxZ := Z3(r.Max).Decode()
	vMinX, vMinY, vMinZ := Z3(value.Min).Decode()
	vMaxX, vMaxY, vMaxZ := Z3(value.Max).Decode()
	return partialOverlaps(rMinX, rMaxX, vMinX, vMaxX) &&
		partialOverlaps(rMinY, rMaxY, vMinY, vMaxY) &&
		partialOverlaps(rMinZ, rMaxZ, vMinZ, vMaxZ)
}
