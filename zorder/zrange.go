package zorder

// ZRange is an inclusive interval [Min, Max] in z-index space.  Because a
// z-index interleaves cell coordinates, a ZRange also denotes the user-space
// bounding box spanned by the decoded endpoints.
type ZRange struct {
	Min uint64
	Max uint64
}

// Mid returns the midpoint of the interval.
func (r ZRange) Mid() uint64 {
	return (r.Max + r.Min) >> 1
}

// Length returns the number of indices in the interval.
func (r ZRange) Length() uint64 {
	return r.Max - r.Min + 1
}

// Contains reports whether bits falls inside the interval, in index space.
func (r ZRange) Contains(bits uint64) bool {
	return bits >= r.Min && bits <= r.Max
}

// ContainsRange reports whether other lies entirely inside r, in index space.
func (r ZRange) ContainsRange(other ZRange) bool {
	return r.Contains(other.Min) && r.Contains(other.Max)
}

// Overlaps reports whether r and other share an endpoint-bounded region, in
// index space.
func (r ZRange) Overlaps(other ZRange) bool {
	return r.Contains(other.Min) || r.Contains(other.Max)
}
