// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package zorder implements Z-order (Morton) curves for point data.  Integer
// cell coordinates are bit-interleaved into a single unsigned 64-bit index
// whose ordering preserves spatial locality; rectangular queries decompose
// into a small set of 1D index intervals via quad/oct-tree refinement.
//
// Z2 interleaves two 31-bit coordinates, Z3 three 21-bit coordinates.  The
// ZN2 and ZN3 descriptors drive the shared refiner.  Curve2D and Curve3D wrap
// the codecs with continuous user-space coordinates.
package zorder
