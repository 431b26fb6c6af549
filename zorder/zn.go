// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zorder

import (
	"github.com/boydjohnson/space-time/indexrange"
	"github.com/grailbio/base/log"
)

// DefaultRecurse is the refinement depth used when the caller supplies no
// MaxRecurse hint.
const DefaultRecurse = 7

// ZN describes an N-dimensional Z-order curve: the dimension constants plus
// the user-space containment hooks the refiner needs.  The refinement
// algorithm itself is identical across dimensions.
type ZN struct {
	dims       uint
	bitsPerDim uint
	totalBits  uint
	maxMask    uint64
	contains   func(ZRange, uint64) bool
	overlaps   func(ZRange, ZRange) bool
}

// ZN2 is the two-dimensional curve descriptor (31 bits per dimension).
var ZN2 = &ZN{
	dims:       2,
	bitsPerDim: 31,
	totalBits:  62,
	maxMask:    0x7fffffff,
	contains:   z2Contains,
	overlaps:   z2Overlaps,
}

// ZN3 is the three-dimensional curve descriptor (21 bits per dimension).
var ZN3 = &ZN{
	dims:       3,
	bitsPerDim: 21,
	totalBits:  63,
	maxMask:    0x1fffff,
	contains:   z3Contains,
	overlaps:   z3Overlaps,
}

// Dimensions returns the number of interleaved dimensions.
func (n *ZN) Dimensions() uint {
	return n.dims
}

// BitsPerDimension returns the coordinate width in bits.
func (n *ZN) BitsPerDimension() uint {
	return n.bitsPerDim
}

// MaxMask returns the largest value a single coordinate may take.
func (n *ZN) MaxMask() uint64 {
	return n.maxMask
}

// Quadrants returns the fan-out of the implicit refinement tree, 2^dims.
func (n *ZN) Quadrants() uint64 {
	return uint64(1) << n.dims
}

// Contains reports whether value falls inside the user-space bounding box
// decoded from range's endpoints.  Index-space containment would be too
// conservative: the z interval [Min, Max] is a union of dyadic cells whose
// user-space bounding box is the per-dimension product of the decoded
// endpoints.
func (n *ZN) Contains(r ZRange, value uint64) bool {
	return n.contains(r, value)
}

// ContainsRange reports whether both endpoints of value fall inside r's
// user-space bounding box.
func (n *ZN) ContainsRange(r, value ZRange) bool {
	return n.contains(r, value.Min) && n.contains(r, value.Max)
}

// Overlaps reports whether r and value intersect in user space, axis by axis.
func (n *ZN) Overlaps(r, value ZRange) bool {
	return n.overlaps(r, value)
}

// ZPrefix is the longest common prefix of a set of z-indices.
type ZPrefix struct {
	// Prefix holds the shared leading bits; bits below them are zero.
	Prefix uint64
	// Precision is the number of leading bits in common.
	Precision uint
}

// LongestCommonPrefix computes the longest binary prefix, stepping dims bits
// at a time, shared by every value.  It panics when values is empty.
func (n *ZN) LongestCommonPrefix(values []uint64) ZPrefix {
	if len(values) == 0 {
		log.Panicf("zorder: LongestCommonPrefix of empty input")
	}
	bitShift := int(n.totalBits) - int(n.dims)
	for bitShift >= 0 {
		head := values[0] >> uint(bitShift)
		shared := true
		for _, v := range values[1:] {
			if v>>uint(bitShift) != head {
				shared = false
				break
			}
		}
		if !shared {
			break
		}
		bitShift -= int(n.dims)
	}
	bitShift += int(n.dims)
	return ZPrefix{
		Prefix:    values[0] & (^uint64(0) << uint(bitShift)),
		Precision: uint(64 - bitShift),
	}
}

// ZRangesDefault computes the index ranges covering zbounds with precision 64,
// no range cap, and DefaultRecurse refinement levels.
func (n *ZN) ZRangesDefault(zbounds []ZRange) []indexrange.Range {
	return n.ZRanges(zbounds, 64, 0, DefaultRecurse)
}

// ZRanges computes a sorted, merged set of index ranges whose union covers
// every bound in zbounds.  Refinement walks the curve's implicit 2^dims-way
// tree breadth first, pruning subtrees disjoint from the bounds, emitting
// covered subtrees whole, and bounding out the remaining partial cells once a
// budget is reached.  precision stops refinement below cells of
// 2^(64-precision) indices.  maxRanges <= 0 means unbounded; maxRecurse <= 0
// means DefaultRecurse.
func (n *ZN) ZRanges(zbounds []ZRange, precision uint, maxRanges, maxRecurse int) []indexrange.Range {
	if maxRecurse <= 0 {
		maxRecurse = DefaultRecurse
	}

	ranges := make([]indexrange.Range, 0, 100)
	pending := make([]ZRange, 0, 100)

	endpoints := make([]uint64, 0, 2*len(zbounds))
	for _, b := range zbounds {
		endpoints = append(endpoints, b.Min, b.Max)
	}
	lcp := n.LongestCommonPrefix(endpoints)

	offset := 64 - int(lcp.Precision)
	n.checkValue(lcp.Prefix, 0, offset, zbounds, precision, &ranges, &pending)
	offset -= int(n.dims)

	level := 0
	atLevel := len(pending)
	for len(pending) > 0 {
		if atLevel == 0 {
			// All cells of the current level have been expanded; the queue
			// now holds only the next level's cells.
			level++
			offset -= int(n.dims)
			if level >= maxRecurse || offset < 0 {
				n.bottomOut(&ranges, &pending)
			}
			atLevel = len(pending)
			continue
		}
		cell := pending[0]
		pending = pending[1:]
		atLevel--

		for quadrant := uint64(0); quadrant < n.Quadrants(); quadrant++ {
			n.checkValue(cell.Min, quadrant, offset, zbounds, precision, &ranges, &pending)
		}
		if maxRanges > 0 && len(ranges)+len(pending) > maxRanges {
			n.bottomOut(&ranges, &pending)
		}
	}

	return indexrange.Merge(ranges)
}

// checkValue classifies the sub-cube at quadrant below prefix: covered cells
// (or cells at the precision floor) are emitted, partially overlapped cells
// are queued for refinement, disjoint cells are dropped.
func (n *ZN) checkValue(prefix, quadrant uint64, offset int, zbounds []ZRange, precision uint, ranges *[]indexrange.Range, pending *[]ZRange) {
	min := prefix | quadrant<<uint(offset)
	max := min | (uint64(1)<<uint(offset) - 1)
	cell := ZRange{Min: min, Max: max}

	if n.isContained(cell, zbounds) || offset < 64-int(precision) {
		*ranges = append(*ranges, indexrange.Covered(min, max))
	} else if n.isOverlapped(cell, zbounds) {
		*pending = append(*pending, cell)
	}
}

// bottomOut drains the pending queue, re-tagging every cell that was still
// awaiting refinement as overlapping.
func (n *ZN) bottomOut(ranges *[]indexrange.Range, pending *[]ZRange) {
	if log.At(log.Debug) {
		log.Debug.Printf("zorder: refinement budget reached, emitting %d pending cells as overlapping", len(*pending))
	}
	for _, cell := range *pending {
		*ranges = append(*ranges, indexrange.Overlapping(cell.Min, cell.Max))
	}
	*pending = (*pending)[:0]
}

func (n *ZN) isContained(cell ZRange, zbounds []ZRange) bool {
	for _, bound := range zbounds {
		if n.ContainsRange(bound, cell) {
			return true
		}
	}
	return false
}

func (n *ZN) isOverlapped(cell ZRange, zbounds []ZRange) bool {
	for _, bound := range zbounds {
		if n.overlaps(bound, cell) {
			return true
		}
	}
	return false
}
