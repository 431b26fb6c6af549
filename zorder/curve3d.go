// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zorder

import (
	"math"

	"github.com/boydjohnson/space-time/indexrange"
)

// Curve3D indexes points in space and time: the spatial grid of Curve2D plus
// a time dimension mapping [0, tMax] onto [0, resolution).
type Curve3D struct {
	resolution uint32
	xMin       float64
	yMin       float64
	xMax       float64
	yMax       float64
	tMax       float64
}

// NewCurve3D returns a curve over [xMin, xMax] x [yMin, yMax] x [0, tMax]
// with resolution cells per axis.
func NewCurve3D(resolution uint32, xMin, yMin, xMax, yMax, tMax float64) Curve3D {
	return Curve3D{
		resolution: resolution,
		xMin:       xMin,
		yMin:       yMin,
		xMax:       xMax,
		yMax:       yMax,
		tMax:       tMax,
	}
}

func (c Curve3D) cellWidth() float64 {
	return (c.xMax - c.xMin) / float64(c.resolution)
}

func (c Curve3D) cellHeight() float64 {
	return (c.yMax - c.yMin) / float64(c.resolution)
}

func (c Curve3D) cellDepth() float64 {
	return c.tMax / float64(c.resolution)
}

func (c Curve3D) col(x float64) int32 {
	if x <= c.xMin {
		return 0
	}
	if x >= c.xMax {
		return int32(c.resolution - 1)
	}
	col := int32((x - c.xMin) / c.cellWidth())
	if col > int32(c.resolution-1) {
		col = int32(c.resolution - 1)
	}
	return col
}

func (c Curve3D) row(y float64) int32 {
	if y >= c.yMax {
		return 0
	}
	if y <= c.yMin {
		return int32(c.resolution - 1)
	}
	row := int32((c.yMax - y) / c.cellHeight())
	if row > int32(c.resolution-1) {
		row = int32(c.resolution - 1)
	}
	return row
}

// depth maps t to a time slice.  Unlike rows, time is not inverted.
func (c Curve3D) depth(t float64) int32 {
	if t <= 0 {
		return 0
	}
	if t >= c.tMax {
		return int32(c.resolution - 1)
	}
	depth := int32(t / c.cellDepth())
	if depth > int32(c.resolution-1) {
		depth = int32(c.resolution - 1)
	}
	return depth
}

func (c Curve3D) colCenter(col int32) float64 {
	w := c.cellWidth()
	return math.Min(math.Max(float64(col)*w+c.xMin+w/2, c.xMin), c.xMax)
}

func (c Curve3D) rowCenter(row int32) float64 {
	h := c.cellHeight()
	return math.Max(math.Min(c.yMax-float64(row)*h-h/2, c.yMax), c.yMin)
}

func (c Curve3D) depthCenter(depth int32) float64 {
	d := c.cellDepth()
	return math.Min(math.Max(float64(depth)*d+d/2, 0), c.tMax)
}

// Index maps a point in space-time to its z-index.  Inputs outside the
// configured box saturate to the boundary cell.
func (c Curve3D) Index(x, y, t float64) uint64 {
	return uint64(NewZ3(c.col(x), c.row(y), c.depth(t)))
}

// Point inverts an index to the centre of its space-time cell, clamped to the
// box.
func (c Curve3D) Point(index uint64) (x, y, t float64) {
	col, row, depth := Z3(index).Decode()
	return c.colCenter(col), c.rowCenter(row), c.depthCenter(depth)
}

// Ranges computes the sorted, merged index ranges covering the query box in
// space and time.
func (c Curve3D) Ranges(xMin, yMin, tMin, xMax, yMax, tMax float64, hints ...RangeComputeHint) []indexrange.Range {
	min := NewZ3(c.col(xMin), c.row(yMax), c.depth(tMin))
	max := NewZ3(c.col(xMax), c.row(yMin), c.depth(tMax))
	return ZN3.ZRanges(
		[]ZRange{{Min: uint64(min), Max: uint64(max)}},
		64,
		0,
		maxRecurseHint(hints),
	)
}
