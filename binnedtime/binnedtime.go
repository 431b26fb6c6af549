// Copyright 2020 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package binnedtime represents timestamps as a number of fixed-size period
// bins since the Unix epoch plus an offset.  The month and year arithmetic is
// approximate: a month is a fixed 31 days and a year a fixed 52 weeks.  For
// Day, Week and Month the offset is the time into the last bin.  For Year the
// offset is measured from Bin*52 days rather than from the start of the bin,
// so a Year offset can span many bins.
package binnedtime

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Period is the width of one bin.
type Period int

const (
	// Day bins with millisecond offsets.
	Day Period = iota
	// Week bins with second offsets.
	Week
	// Month bins (31 days) with second offsets.
	Month
	// Year bins (52 weeks) with minute offsets.
	Year
)

const (
	daysPerMonth = 31
	weeksPerYear = 52

	day  = 24 * time.Hour
	week = 7 * day
)

// String returns the lowercase period name.
func (p Period) String() string {
	switch p {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	}
	return "unknown"
}

// ParsePeriod parses a period name, case-insensitively.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(s) {
	case "day":
		return Day, nil
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	case "year":
		return Year, nil
	}
	return 0, errors.Errorf("binnedtime: unknown period %q", s)
}

// Binned is a timestamp as whole period bins since the Unix epoch plus an
// offset: the remainder within the last bin, except for Year (see the package
// comment).  Offset granularity depends on the period: milliseconds for Day,
// seconds for Week and Month, minutes for Year.
type Binned struct {
	Bin    int64
	Offset time.Duration
}

// FromMillis bins a count of milliseconds since the Unix epoch.
func FromMillis(period Period, millis int64) Binned {
	return fromDuration(period, time.Duration(millis)*time.Millisecond)
}

// FromTime bins a timestamp.
func FromTime(period Period, t time.Time) Binned {
	return fromDuration(period, t.Sub(epoch()))
}

func fromDuration(period Period, d time.Duration) Binned {
	switch period {
	case Week:
		weeks := int64(d / week)
		return Binned{Bin: weeks, Offset: (d - time.Duration(weeks)*week).Truncate(time.Second)}
	case Month:
		months := int64(d/day) / daysPerMonth
		return Binned{Bin: months, Offset: (d - time.Duration(months*daysPerMonth)*day).Truncate(time.Second)}
	case Year:
		// The bin counts 52-week groups; the offset base is 52 days per bin.
		years := int64(d/week) / weeksPerYear
		return Binned{Bin: years, Offset: (d - time.Duration(years*weeksPerYear)*day).Truncate(time.Minute)}
	default:
		days := int64(d / day)
		return Binned{Bin: days, Offset: (d - time.Duration(days)*day).Truncate(time.Millisecond)}
	}
}

// BinIndex returns the number of whole period bins in a count of
// milliseconds since the Unix epoch.
func BinIndex(period Period, millis int64) int64 {
	d := time.Duration(millis) * time.Millisecond
	switch period {
	case Week:
		return int64(d / week)
	case Month:
		return int64(d/day) / daysPerMonth
	case Year:
		return int64(d/week) / weeksPerYear
	default:
		return int64(d / day)
	}
}

// MaxTime returns the latest timestamp representable by a Binned of the
// period.
func MaxTime(period Period) time.Time {
	return epoch().Add(time.Duration(1<<63 - 1))
}

// IndexableBounds clamps a pair of optional query bounds to the indexable
// span: a non-zero bound is clamped to [epoch, MaxTime - 1ms].  Zero-valued
// bounds mean unbounded: a zero low bound becomes the epoch and a zero high
// bound becomes MaxTime itself.
func IndexableBounds(period Period, low, high time.Time) (time.Time, time.Time) {
	maxDate := MaxTime(period).Add(-time.Millisecond)

	clamp := func(t, absent time.Time) time.Time {
		switch {
		case t.IsZero():
			return absent
		case t.Before(epoch()):
			return epoch()
		case t.After(maxDate):
			return maxDate
		}
		return t
	}
	return clamp(low, epoch()), clamp(high, MaxTime(period))
}

func epoch() time.Time {
	return time.Unix(0, 0).UTC()
}
