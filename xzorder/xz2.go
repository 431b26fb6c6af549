// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package xzorder

import (
	"math"

	"github.com/boydjohnson/space-time/indexrange"
	"github.com/grailbio/base/log"
)

// DefaultMaxRanges caps the number of ranges emitted by a region-curve query
// when the caller does not supply a limit.
const DefaultMaxRanges = math.MaxUint16

// XZ2 is an extended z-order curve over planar bounding boxes.  g is the
// maximum tree depth: larger g resolves smaller regions at the cost of longer
// sequence codes.
type XZ2 struct {
	g    uint32
	xMin float64
	xMax float64
	yMin float64
	yMax float64
}

// NewXZ2 returns a region curve of depth g over
// [xMin, xMax] x [yMin, yMax].
func NewXZ2(g uint32, xMin, yMin, xMax, yMax float64) XZ2 {
	return XZ2{g: g, xMin: xMin, xMax: xMax, yMin: yMin, yMax: yMax}
}

// XZ2WGS84 returns a region curve of depth g over unprojected lon/lat
// coordinates.
func XZ2WGS84(g uint32) XZ2 {
	return NewXZ2(g, -180, -90, 180, 90)
}

func (s XZ2) xSize() float64 {
	return s.xMax - s.xMin
}

func (s XZ2) ySize() float64 {
	return s.yMax - s.yMin
}

// normalize maps a bounding box into the unit square.  Inverted or
// out-of-bounds boxes are programmer errors; callers must pre-clip.
func (s XZ2) normalize(xMin, yMin, xMax, yMax float64) (nxMin, nyMin, nxMax, nyMax float64) {
	if xMin > xMax || yMin > yMax {
		log.Panicf("xzorder: inverted bounding box (%v, %v)-(%v, %v)", xMin, yMin, xMax, yMax)
	}
	if xMin < s.xMin || xMax > s.xMax || yMin < s.yMin || yMax > s.yMax {
		log.Panicf("xzorder: bounding box (%v, %v)-(%v, %v) outside curve bounds (%v, %v)-(%v, %v)",
			xMin, yMin, xMax, yMax, s.xMin, s.yMin, s.xMax, s.yMax)
	}
	return (xMin - s.xMin) / s.xSize(),
		(yMin - s.yMin) / s.ySize(),
		(xMax - s.xMin) / s.xSize(),
		(yMax - s.yMin) / s.ySize()
}

// Index returns the sequence code of the bounding box: the code of the
// shallowest dyadic element whose extended box encloses it.
func (s XZ2) Index(xMin, yMin, xMax, yMax float64) uint64 {
	nxMin, nyMin, nxMax, nyMax := s.normalize(xMin, yMin, xMax, yMax)

	maxDim := nxMax - nxMin
	if d := nyMax - nyMin; d > maxDim {
		maxDim = d
	}

	// Depth of the smallest element at least as large as the box, then one
	// deeper if the extended elements at that depth still cover it on every
	// axis.  A degenerate (point) box descends to the full depth.
	var length uint32
	l1 := math.Floor(math.Log(maxDim) / math.Log(0.5))
	if !(l1 < float64(s.g)) {
		length = s.g
	} else {
		w2 := math.Pow(0.5, l1+1)
		if predicate(nxMin, nxMax, w2) && predicate(nyMin, nyMax, w2) {
			length = uint32(l1) + 1
		} else {
			length = uint32(l1)
		}
	}

	return s.sequenceCode(nxMin, nyMin, length)
}

// predicate is the XZ-ordering test that a box fits inside one extended
// element of side 2*w2 on this axis.
func predicate(min, max, w2 float64) bool {
	return max <= math.Floor(min/w2)*w2+2*w2
}

// Ranges computes the sorted, merged index ranges covering the query box.
// maxRanges <= 0 means DefaultMaxRanges.
func (s XZ2) Ranges(xMin, yMin, xMax, yMax float64, maxRanges int) []indexrange.Range {
	nxMin, nyMin, nxMax, nyMax := s.normalize(xMin, yMin, xMax, yMax)
	query := []queryWindow2{{xMin: nxMin, yMin: nyMin, xMax: nxMax, yMax: nyMax}}

	rangeStop := maxRanges
	if rangeStop <= 0 {
		rangeStop = DefaultMaxRanges
	}
	return s.rangesOf(query, rangeStop)
}

func (s XZ2) rangesOf(query []queryWindow2, rangeStop int) []indexrange.Range {
	ranges := make([]indexrange.Range, 0, 100)
	pending := make([]xElement2, 0, 100)
	pending = append(pending, levelOneElements2()...)

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

	// Whatever is still pending was touched but never refined; emit each
	// element's full subtree interval as overlapping.
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
		min, max := s.sequenceInterval(e.xMin, e.yMin, level, false)
		ranges = append(ranges, indexrange.Overlapping(min, max))
	}

	return indexrange.Merge(ranges)
}

// checkValue classifies one element against the query: elements whose
// extended box is inside the query cover their whole subtree; elements that
// merely touch the query contribute their own code and push their children.
func (s XZ2) checkValue(e xElement2, level uint32, query []queryWindow2, ranges *[]indexrange.Range, pending *[]xElement2) {
	if e.isContained(query) {
		min, max := s.sequenceInterval(e.xMin, e.yMin, level, false)
		*ranges = append(*ranges, indexrange.Covered(min, max))
	} else if e.isOverlapped(query) {
		min, max := s.sequenceInterval(e.xMin, e.yMin, level, true)
		*ranges = append(*ranges, indexrange.Overlapping(min, max))
		*pending = append(*pending, e.children()...)
	}
}

// sequenceCode descends the dyadic tree for length levels, accumulating
// 1 + rank*(4^(g-i)-1)/3 at each level, where rank is the quadrant of the
// min-corner: (left, bottom)=0, (right, bottom)=1, (left, top)=2,
// (right, top)=3.
func (s XZ2) sequenceCode(x, y float64, length uint32) uint64 {
	xMin, yMin, xMax, yMax := 0.0, 0.0, 1.0, 1.0

	var cs uint64
	for i := uint32(0); i < length; i++ {
		xCenter := (xMin + xMax) / 2
		yCenter := (yMin + yMax) / 2

		var rank uint64
		if !(x < xCenter) {
			rank |= 1
		}
		if !(y < yCenter) {
			rank |= 2
		}
		cs += 1 + rank*((pow4(s.g-i)-1)/3)

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
	}
	return cs
}

// sequenceInterval returns the index interval rooted at the element with the
// given min-corner and depth.  A partial element contributes only its own
// code; a covered element contributes its entire subtree.
func (s XZ2) sequenceInterval(x, y float64, length uint32, partial bool) (min, max uint64) {
	min = s.sequenceCode(x, y, length)
	if partial {
		return min, min
	}
	return min, min + (pow4(s.g-length+1)-1)/3
}

func pow4(exp uint32) uint64 {
	return uint64(1) << (2 * exp)
}

// queryWindow2 is a query box normalized to the unit square.
type queryWindow2 struct {
	xMin, yMin, xMax, yMax float64
}

// xElement2 is a dyadic square of side length in the unit square.  Its
// extended box stretches length beyond xMax and yMax.
type xElement2 struct {
	xMin, yMin, xMax, yMax float64
	length                 float64
}

func (e xElement2) xExt() float64 {
	return e.xMax + e.length
}

func (e xElement2) yExt() float64 {
	return e.yMax + e.length
}

// isContained reports whether the extended element is inside any query
// window.
func (e xElement2) isContained(query []queryWindow2) bool {
	for _, w := range query {
		if w.xMin <= e.xMin && w.yMin <= e.yMin && w.xMax >= e.xExt() && w.yMax >= e.yExt() {
			return true
		}
	}
	return false
}

// isOverlapped reports whether the extended element intersects any query
// window.
func (e xElement2) isOverlapped(query []queryWindow2) bool {
	for _, w := range query {
		if w.xMax >= e.xMin && w.yMax >= e.yMin && w.xMin <= e.xExt() && w.yMin <= e.yExt() {
			return true
		}
	}
	return false
}

// children returns the four half-side elements in sequence-code rank order.
func (e xElement2) children() []xElement2 {
	xCenter := (e.xMin + e.xMax) / 2
	yCenter := (e.yMin + e.yMax) / 2
	length := e.length / 2

	return []xElement2{
		{e.xMin, e.yMin, xCenter, yCenter, length},
		{xCenter, e.yMin, e.xMax, yCenter, length},
		{e.xMin, yCenter, xCenter, e.yMax, length},
		{xCenter, yCenter, e.xMax, e.yMax, length},
	}
}

// levelOneElements2 returns the children of the unit element.
func levelOneElements2() []xElement2 {
	return xElement2{0, 0, 1, 1, 1}.children()
}
