// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package xzorder

import (
	"math"

	"github.com/boydjohnson/space-time/indexrange"
	"github.com/grailbio/base/log"
)

// XZ3 is an extended z-order curve over three-dimensional bounding boxes.
// The third dimension is typically time.
type XZ3 struct {
	g    uint32
	xMin float64
	xMax float64
	yMin float64
	yMax float64
	zMin float64
	zMax float64
}

// NewXZ3 returns a region curve of depth g over
// [xMin, xMax] x [yMin, yMax] x [zMin, zMax].
func NewXZ3(g uint32, xMin, yMin, zMin, xMax, yMax, zMax float64) XZ3 {
	return XZ3{g: g, xMin: xMin, xMax: xMax, yMin: yMin, yMax: yMax, zMin: zMin, zMax: zMax}
}

// XZ3WGS84 returns a region curve of depth g over unprojected lon/lat
// coordinates and a third dimension spanning [zMin, zMax].
func XZ3WGS84(g uint32, zMin, zMax float64) XZ3 {
	return NewXZ3(g, -180, -90, zMin, 180, 90, zMax)
}

func (s XZ3) xSize() float64 {
	return s.xMax - s.xMin
}

func (s XZ3) ySize() float64 {
	return s.yMax - s.yMin
}

func (s XZ3) zSize() float64 {
	return s.zMax - s.zMin
}

// normalize maps a bounding box into the unit cube.  Inverted or
// out-of-bounds boxes are programmer errors; callers must pre-clip.
func (s XZ3) normalize(xMin, yMin, zMin, xMax, yMax, zMax float64) (nxMin, nyMin, nzMin, nxMax, nyMax, nzMax float64) {
	if xMin > xMax || yMin > yMax || zMin > zMax {
		log.Panicf("xzorder: inverted bounding box (%v, %v, %v)-(%v, %v, %v)", xMin, yMin, zMin, xMax, yMax, zMax)
	}
	if xMin < s.xMin || xMax > s.xMax || yMin < s.yMin || yMax > s.yMax || zMin < s.zMin || zMax > s.zMax {
		log.Panicf("xzorder: bounding box (%v, %v, %v)-(%v, %v, %v) outside curve bounds",
			xMin, yMin, zMin, xMax, yMax, zMax)
	}
	return (xMin - s.xMin) / s.xSize(),
		(yMin - s.yMin) / s.ySize(),
		(zMin - s.zMin) / s.zSize(),
		(xMax - s.xMin) / s.xSize(),
		(yMax - s.yMin) / s.ySize(),
		(zMax - s.zMin) / s.zSize()
}

// Index returns the sequence code of the bounding box: the code of the
// shallowest dyadic element whose extended box encloses it.
func (s XZ3) Index(xMin, yMin, zMin, xMax, yMax, zMax float64) uint64 {
	nxMin, nyMin, nzMin, nxMax, nyMax, nzMax := s.normalize(xMin, yMin, zMin, xMax, yMax, zMax)

	maxDim := nxMax - nxMin
	if d := nyMax - nyMin; d > maxDim {
		maxDim = d
	}
	if d := nzMax - nzMin; d > maxDim {
		maxDim = d
	}

	var length uint32
	l1 := math.Floor(math.Log(maxDim) / math.Log(0.5))
	if !(l1 < float64(s.g)) {
		length = s.g
	} else {
		w2 := math.Pow(0.5, l1+1)
		if predicate(nxMin, nxMax, w2) && predicate(nyMin, nyMax, w2) && predicate(nzMin, nzMax, w2) {
			length = uint32(l1) + 1
		} else {
			length = uint32(l1)
		}
	}

	return s.sequenceCode(nxMin, nyMin, nzMin, length)
}

// Ranges computes the sorted, merged index ranges covering the query box.
// maxRanges <= 0 means DefaultMaxRanges.
func (s XZ3) Ranges(xMin, yMin, zMin, xMax, yMax, zMax float64, maxRanges int) []indexrange.Range {
	nxMin, nyMin, nzMin, nxMax, nyMax, nzMax := s.normalize(xMin, yMin, zMin, xMax, yMax, zMax)
	query := []queryWindow3{{
		xMin: nxMin, yMin: nyMin, zMin: nzMin,
		xMax: nxMax, yMax: nyMax, zMax: nzMax,
	}}

	rangeStop := maxRanges
	if rangeStop <= 0 {
		rangeStop = DefaultMaxRanges
	}
	return s.rangesOf(query, rangeStop)
}

func (s XZ3) rangesOf(query []queryWindow3, rangeStop int) []indexrange.Range {
	ranges := make([]indexrange.Range, 0, 100)
	pending := make([]xElement3, 0, 100)
	pending = append(pending, levelOneElements3()...)

	level := uint32(1)
	atLevel := len(pending)
	for level < s.g && len(pending) > 0 && len(ranges) < rangeStop {
		if atLevel == 0 {
			level++
			atLevel = len(pending)
			continue
		}
		e := pending[0]
		pending = pending[1:]
		atLevel--
		s.checkValue(e, level, query, &ranges, &pending)
	}

	if len(pending) > 0 && log.At(log.Debug) {
		log.Debug.Printf("xzorder: stopping refinement at level %d with %d pending elements", level, len(pending))
	}
	for len(pending) > 0 {
		if atLevel == 0 {
			level++
			atLevel = len(pending)
			continue
		}
		e := pending[0]
		pending = pending[1:]
		atLevel--
		min, max := s.sequenceInterval(e.xMin, e.yMin, e.zMin, level, false)
		ranges = append(ranges, indexrange.Overlapping(min, max))
	}

	return indexrange.Merge(ranges)
}

func (s XZ3) checkValue(e xElement3, level uint32, query []queryWindow3, ranges *[]indexrange.Range, pending *[]xElement3) {
	if e.isContained(query) {
		min, max := s.sequenceInterval(e.xMin, e.yMin, e.zMin, level, false)
		*ranges = append(*ranges, indexrange.Covered(min, max))
	} else if e.isOverlapped(query) {
		min, max := s.sequenceInterval(e.xMin, e.yMin, e.zMin, level, true)
		*ranges = append(*ranges, indexrange.Overlapping(min, max))
		*pending = append(*pending, e.children()...)
	}
}

// sequenceCode descends the dyadic tree for length levels, accumulating
// 1 + rank*(8^(g-i)-1)/7 at each level.  The octant rank orders x fastest,
// then y, then z.
func (s XZ3) sequenceCode(x, y, z float64, length uint32) uint64 {
	xMin, yMin, zMin := 0.0, 0.0, 0.0
	xMax, yMax, zMax := 1.0, 1.0, 1.0

	var cs uint64
	for i := uint32(0); i < length; i++ {
		xCenter := (xMin + xMax) / 2
		yCenter := (yMin + yMax) / 2
		zCenter := (zMin + zMax) / 2

		var rank uint64
		if !(x < xCenter) {
			rank |= 1
		}
		if !(y < yCenter) {
			rank |= 2
		}
		if !(z < zCenter) {
			rank |= 4
		}
		cs += 1 + rank*((pow8(s.g-i)-1)/7)

		if x < xCenter {
			xMax = xCenter
		} else {
			xMin = xCenter
		}
		if y < yCenter {
			yMax = yCenter
		} else {
			yMin = yCenter
		}
		if z < zCenter {
			zMax = zCenter
		} else {
			zMin = zCenter
		}
	}
	return cs
}

func (s XZ3) sequenceInterval(x, y, z float64, length uint32, partial bool) (min, max uint64) {
	min = s.sequenceCode(x, y, z, length)
	if partial {
		return min, min
	}
	return min, min + (pow8(s.g-length+1)-1)/7
}

func pow8(exp uint32) uint64 {
	return uint64(1) << (3 * exp)
}

// queryWindow3 is a query box normalized to the unit cube.
type queryWindow3 struct {
	xMin, yMin, zMin, xMax, yMax, zMax float64
}

// xElement3 is a dyadic cube of side length in the unit cube.  Its extended
// box stretches length beyond each max face.
type xElement3 struct {
	xMin, yMin, zMin, xMax, yMax, zMax float64
	length                             float64
}

func (e xElement3) xExt() float64 {
	return e.xMax + e.length
}

func (e xElement3) yExt() float64 {
	return e.yMax + e.length
}

func (e xElement3) zExt() float64 {
	return e.zMax + e.length
}

func (e xElement3) isContained(query []queryWindow3) bool {
	for _, w := range query {
		if w.xMin <= e.xMin && w.yMin <= e.yMin && w.zMin <= e.zMin &&
			w.xMax >= e.xExt() && w.yMax >= e.yExt() && w.zMax >= e.zExt() {
			return true
		}
	}
	return false
}

func (e xElement3) isOverlapped(query []queryWindow3) bool {
	for _, w := range query {
		if w.xMax >= e.xMin && w.yMax >= e.yMin && w.zMax >= e.zMin &&
			w.xMin <= e.xExt() && w.yMin <= e.yExt() && w.zMin <= e.zExt() {
			return true
		}
	}
	return false
}

// children returns the eight half-side elements in sequence-code rank order.
func (e xElement3) children() []xElement3 {
	xCenter := (e.xMin + e.xMax) / 2
	yCenter := (e.yMin + e.yMax) / 2
	zCenter := (e.zMin + e.zMax) / 2
	length := e.length / 2

	return []xElement3{
		{e.xMin, e.yMin, e.zMin, xCenter, yCenter, zCenter, length},
		{xCenter, e.yMin, e.zMin, e.xMax, yCenter, zCenter, length},
		{e.xMin, yCenter, e.zMin, xCenter, e.yMax, zCenter, length},
		{xCenter, yCenter, e.zMin, e.xMax, e.yMax, zCenter, length},
		{e.xMin, e.yMin, zCenter, xCenter, yCenter, e.zMax, length},
		{xCenter, e.yMin, zCenter, e.xMax, yCenter, e.zMax, length},
		{e.xMin, yCenter, zCenter, xCenter, e.yMax, e.zMax, length},
		{xCenter, yCenter, zCenter, e.xMax, e.yMax, e.zMax, length},
	}
}

// levelOneElements3 returns the children of the unit element.
func levelOneElements3() []xElement3 {
	return xElement3{0, 0, 0, 1, 1, 1, 1}.children()
}
