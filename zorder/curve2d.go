// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zorder

import (
	"math"

	"github.com/boydjohnson/space-time/indexrange"
)

// MaxRecursion is the largest refinement depth a MaxRecurse hint may request;
// larger values are clamped.
const MaxRecursion = 32

// RangeComputeHint tunes range decomposition on the point curves.
type RangeComputeHint interface {
	rangeComputeHint()
}

// MaxRecurse bounds the refinement depth of Ranges.  Values above
// MaxRecursion are clamped; with no hint the curves use DefaultRecurse.
type MaxRecurse int

func (MaxRecurse) rangeComputeHint() {}

func maxRecurseHint(hints []RangeComputeHint) int {
	recurse := DefaultRecurse
	for _, h := range hints {
		if mr, ok := h.(MaxRecurse); ok {
			recurse = int(mr)
			if recurse > MaxRecursion {
				recurse = MaxRecursion
			}
		}
	}
	return recurse
}

// Curve2D indexes points on a resolution x resolution grid over a bounded
// plane, x as longitude and y as latitude.  Rows run north-up: row 0 is the
// top of the box.
type Curve2D struct {
	resolution uint32
	xMin       float64
	yMin       float64
	xMax       float64
	yMax       float64
}

// NewCurve2D returns a curve over [xMin, xMax] x [yMin, yMax] with
// resolution cells per axis.
func NewCurve2D(resolution uint32, xMin, yMin, xMax, yMax float64) Curve2D {
	return Curve2D{
		resolution: resolution,
		xMin:       xMin,
		yMin:       yMin,
		xMax:       xMax,
		yMax:       yMax,
	}
}

func (c Curve2D) cellWidth() float64 {
	return (c.xMax - c.xMin) / float64(c.resolution)
}

func (c Curve2D) cellHeight() float64 {
	return (c.yMax - c.yMin) / float64(c.resolution)
}

// col maps x to a column, saturating outside [xMin, xMax].
func (c Curve2D) col(x float64) int32 {
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

// row maps y to a row, saturating outside [yMin, yMax].  Row 0 is at yMax.
func (c Curve2D) row(y float64) int32 {
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

// colCenter returns the x coordinate of the column's cell centre, clamped to
// the box.
func (c Curve2D) colCenter(col int32) float64 {
	w := c.cellWidth()
	return math.Min(math.Max(float64(col)*w+c.xMin+w/2, c.xMin), c.xMax)
}

// rowCenter returns the y coordinate of the row's cell centre, clamped to
// the box.
func (c Curve2D) rowCenter(row int32) float64 {
	h := c.cellHeight()
	return math.Max(math.Min(c.yMax-float64(row)*h-h/2, c.yMax), c.yMin)
}

// Index maps a point to its z-index.  Points outside the configured box
// saturate to the boundary cell.
func (c Curve2D) Index(x, y float64) uint64 {
	return uint64(NewZ2(c.col(x), c.row(y)))
}

// Point inverts an index to the centre of its cell, clamped to the box.
func (c Curve2D) Point(index uint64) (x, y float64) {
	col, row := Z2(index).Decode()
	return c.colCenter(col), c.rowCenter(row)
}

// Ranges computes the sorted, merged index ranges covering the query box.
func (c Curve2D) Ranges(xMin, yMin, xMax, yMax float64, hints ...RangeComputeHint) []indexrange.Range {
	min := NewZ2(c.col(xMin), c.row(yMax))
	max := NewZ2(c.col(xMax), c.row(yMin))
	return ZN2.ZRanges(
		[]ZRange{{Min: uint64(min), Max: uint64(max)}},
		64,
		0,
		maxRecurseHint(hints),
	)
}
