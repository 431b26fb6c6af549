// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package indexrange provides the tagged 1D interval type produced by
// space-filling-curve range decomposition, along with the shared
// sort-and-merge stage.
package indexrange

import (
	"sort"
)

// Range is an inclusive interval [Lower, Upper] of curve indices.  The
// contained flag records whether every index in the interval falls inside the
// query region in user space; a merged range is only contained when all of
// its inputs were.
type Range struct {
	lower     uint64
	upper     uint64
	contained bool
}

// Covered returns a Range fully inside the query region.
func Covered(lower, upper uint64) Range {
	return Range{lower: lower, upper: upper, contained: true}
}

// Overlapping returns a Range that intersects, but is not contained in, the
// query region.
func Overlapping(lower, upper uint64) Range {
	return Range{lower: lower, upper: upper}
}

// Lower returns the first index in the range.
func (r Range) Lower() uint64 {
	return r.lower
}

// Upper returns the last index in the range.
func (r Range) Upper() uint64 {
	return r.upper
}

// Contained reports whether the range lies entirely inside the query region.
func (r Range) Contained() bool {
	return r.contained
}

// Tuple returns (lower, upper, contained).
func (r Range) Tuple() (uint64, uint64, bool) {
	return r.lower, r.upper, r.contained
}

// Less orders ranges by (lower, upper).  The contained flag does not
// participate in ordering.
func (r Range) Less(other Range) bool {
	if r.lower != other.lower {
		return r.lower < other.lower
	}
	return r.upper < other.upper
}

// EQ returns true iff r and other span the same interval, ignoring the
// contained flag.
func (r Range) EQ(other Range) bool {
	return r.lower == other.lower && r.upper == other.upper
}

// Sort sorts ranges in place by (lower, upper).
func Sort(ranges []Range) {
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Less(ranges[j]) })
}

// Merge sorts ranges and coalesces adjacent or overlapping entries.  A merged
// entry is Covered only when both of its inputs were; anything else degrades
// to Overlapping, so a caller issuing a contains-scan against a Covered range
// sees no false positives.  The input slice is reordered.
func Merge(ranges []Range) []Range {
	if len(ranges) == 0 {
		return ranges
	}
	Sort(ranges)

	results := make([]Range, 0, len(ranges))
	cur := ranges[0]
	for _, r := range ranges[1:] {
		if r.lower <= cur.upper+1 {
			upper := cur.upper
			if r.upper > upper {
				upper = r.upper
			}
			cur = Range{
				lower:     cur.lower,
				upper:     upper,
				contained: cur.contained && r.contained,
			}
		} else {
			results = append(results, cur)
			cur = r
		}
	}
	return append(results, cur)
}
