// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package xzorder implements extended Z-order (XZ) curves for bounding
// regions rather than points.  An index identifies a dyadic cell whose
// extended box (twice the side length) is the smallest element enclosing the
// indexed region, following 'XZ-Ordering: A Space Filling Curve for Objects
// with Spatial Extension' by Bohm, Klump, and Kriegel.
//
// XZ2 indexes planar bounding boxes; XZ3 adds a third dimension, typically
// time.  Range queries walk the implicit 4- or 8-way element tree and return
// merged index intervals tagged covered or overlapping.
package xzorder
