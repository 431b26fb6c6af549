// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package dimension normalizes bounded continuous dimensions onto integer
// cell grids whose size is a power of two.  Lat covers [-90, 90], Lon covers
// [-180, 180], and Time covers [0, max].
package dimension

import (
	"math"

	"github.com/grailbio/base/log"
)

// Normalizer linearly maps a float64 in [Min, Max] to an integer cell in
// [0, MaxIndex] and back.  The grid has 2^precision cells.
type Normalizer struct {
	min       float64
	max       float64
	precision uint
}

func newNormalizer(min, max float64, precision uint) Normalizer {
	if precision == 0 || precision > 31 {
		log.Panicf("dimension: precision %d out of range [1, 31]", precision)
	}
	return Normalizer{min: min, max: max, precision: precision}
}

// Lat returns a latitude normalizer over [-90, 90].  precision must be in
// [1, 31].
func Lat(precision uint) Normalizer {
	return newNormalizer(-90, 90, precision)
}

// Lon returns a longitude normalizer over [-180, 180].  precision must be in
// [1, 31].
func Lon(precision uint) Normalizer {
	return newNormalizer(-180, 180, precision)
}

// Time returns a normalizer over [0, max].  precision must be in [1, 31].
func Time(precision uint, max float64) Normalizer {
	return newNormalizer(0, max, precision)
}

// Min returns the smallest input value.
func (n Normalizer) Min() float64 {
	return n.min
}

// Max returns the largest input value.
func (n Normalizer) Max() float64 {
	return n.max
}

func (n Normalizer) bins() int64 {
	return int64(1) << n.precision
}

func (n Normalizer) width() float64 {
	return (n.max - n.min) / float64(n.bins())
}

// MaxIndex returns the largest cell index, 2^precision - 1.
func (n Normalizer) MaxIndex() int32 {
	return int32(n.bins() - 1)
}

// Normalize maps x to its cell index.  Values at or above Max saturate to
// MaxIndex.
func (n Normalizer) Normalize(x float64) int32 {
	if x >= n.max {
		return n.MaxIndex()
	}
	return int32(math.Floor((x - n.min) * float64(n.bins()) / (n.max - n.min)))
}

// Denormalize maps a cell index back to the centre of its cell.  Indices at
// or above MaxIndex saturate to the last cell's centre.
func (n Normalizer) Denormalize(y int32) float64 {
	if y >= n.MaxIndex() {
		return n.min + (float64(n.MaxIndex())+0.5)*n.width()
	}
	return n.min + (float64(y)+0.5)*n.width()
}
