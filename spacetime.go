// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package spacetime provides space-filling-curve indexes for spatial and
// spatio-temporal data.  A curve maps points or bounding regions in 2D/3D
// continuous space onto a totally ordered unsigned 64-bit index that
// preserves spatial locality, so a rectangular query decomposes into a small
// set of 1D index intervals suitable for scans over ordered key-value
// storage.
//
// Point data uses Z-order curves:
//
//	curve := spacetime.PointCurve2D(1024, -180, -90, 180, 90)
//	index := curve.Index(2.3522, 48.8566) // Paris
//	ranges := curve.Ranges(2.35, 48.85, 2.354, 48.857)
//
// Every range carries a covered/overlapping tag: covered ranges contain only
// indexes inside the query box, overlapping ranges require a post-filter.
//
// Region (non-point) data uses extended Z-order curves, which index a
// bounding box by the smallest dyadic element whose doubled extent encloses
// it:
//
//	curve := spacetime.RegionCurve2D(12, -180, -90, 180, 90)
//	index := curve.Index(2.3522, 48.8466, 2.39, 49.9325)
//	ranges := curve.Ranges(2.0, 48.0, 3.0, 50.0, 0)
//
// The 3D variants add a third dimension, typically milliseconds since the
// Unix epoch.
package spacetime

import (
	"github.com/boydjohnson/space-time/xzorder"
	"github.com/boydjohnson/space-time/zorder"
)

// PointCurve2D returns a Z-order curve indexing points on a
// resolution x resolution grid over [xMin, xMax] x [yMin, yMax].
func PointCurve2D(resolution uint32, xMin, yMin, xMax, yMax float64) zorder.Curve2D {
	return zorder.NewCurve2D(resolution, xMin, yMin, xMax, yMax)
}

// PointCurve3D returns a Z-order curve indexing points in space and time,
// with the time dimension spanning [0, tMax].
func PointCurve3D(resolution uint32, xMin, yMin, xMax, yMax, tMax float64) zorder.Curve3D {
	return zorder.NewCurve3D(resolution, xMin, yMin, xMax, yMax, tMax)
}

// RegionCurve2D returns an extended Z-order curve of depth g indexing planar
// bounding boxes.  g in [1, 31] is practical.
func RegionCurve2D(g uint32, xMin, yMin, xMax, yMax float64) xzorder.XZ2 {
	return xzorder.NewXZ2(g, xMin, yMin, xMax, yMax)
}

// RegionCurve3D returns an extended Z-order curve of depth g indexing
// three-dimensional bounding boxes.
func RegionCurve3D(g uint32, xMin, yMin, zMin, xMax, yMax, zMax float64) xzorder.XZ3 {
	return xzorder.NewXZ3(g, xMin, yMin, zMin, xMax, yMax, zMax)
}
