// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package temporal provides the 100-nanosecond monotonic Timestamp and
// Elapsed types used throughout the point graph and expression engine.
package temporal

import (
	"fmt"
	"math"
	"math/bits"
)

// Elapsed is a non-negative count of 100-nanosecond units, with saturating
// arithmetic. The zero value is EMPTY.
type Elapsed int64

const (
	// UnitsPerSecond is the number of 100-nanosecond units in one second.
	UnitsPerSecond int64 = 10_000_000
	UnitsPerMilli  int64 = UnitsPerSecond / 1000
	UnitsPerMinute int64 = UnitsPerSecond * 60
	UnitsPerHour   int64 = UnitsPerMinute * 60
	UnitsPerDay    int64 = UnitsPerHour * 24
)

const (
	// EMPTY is the zero elapsed time.
	EMPTY Elapsed = 0
	// INFINITY is the saturating maximum elapsed time.
	INFINITY Elapsed = math.MaxInt64
	// INVALID is a distinguished sentinel, distinct from any valid elapsed value.
	INVALID Elapsed = math.MinInt64
)

// ErrInvalidTimeFormat is returned by all temporal parsing functions on failure.
var ErrInvalidTimeFormat = fmt.Errorf("temporal: invalid time format")

// IsValid reports whether e is neither INVALID nor negative.
func (e Elapsed) IsValid() bool {
	return e != INVALID && e >= 0
}

func (e Elapsed) IsInfinite() bool {
	return e == INFINITY
}

// ElapsedFromMillis constructs an Elapsed from a millisecond count.
func ElapsedFromMillis(ms int64) Elapsed {
	return saturatingMul(ms, UnitsPerMilli)
}

// ElapsedFromSeconds constructs an Elapsed from a (possibly fractional) second count.
func ElapsedFromSeconds(s float64) Elapsed {
	if math.IsInf(s, 1) {
		return INFINITY
	}
	v := s * float64(UnitsPerSecond)
	if v >= float64(math.MaxInt64) {
		return INFINITY
	}
	return Elapsed(v)
}

func saturatingMul(count, unit int64) Elapsed {
	if count < 0 {
		return INVALID
	}
	hi, lo := bits.Mul64(uint64(count), uint64(unit))
	if hi != 0 || lo > uint64(math.MaxInt64) {
		return INFINITY
	}
	return Elapsed(lo)
}

// Add returns e+other, saturating at INFINITY.
func (e Elapsed) Add(other Elapsed) Elapsed {
	if e == INVALID || other == INVALID {
		return INVALID
	}
	if e == INFINITY || other == INFINITY {
		return INFINITY
	}
	sum := int64(e) + int64(other)
	if sum < 0 || sum == int64(INFINITY) {
		return INFINITY
	}
	return Elapsed(sum)
}

// Sub returns the absolute difference |e-other|. INFINITY - finite =
// INFINITY; finite - INFINITY = EMPTY.
func (e Elapsed) Sub(other Elapsed) Elapsed {
	if e == INVALID || other == INVALID {
		return INVALID
	}
	switch {
	case e == INFINITY && other == INFINITY:
		return EMPTY
	case e == INFINITY:
		return INFINITY
	case other == INFINITY:
		return EMPTY
	}
	if e >= other {
		return e - other
	}
	return other - e
}

// Ratio returns e/other. ratio(x, INFINITY) is the smallest positive double;
// ratio(INFINITY, INFINITY) is NaN.
func (e Elapsed) Ratio(other Elapsed) float64 {
	if other == INFINITY && e == INFINITY {
		return math.NaN()
	}
	if other == INFINITY {
		return math.SmallestNonzeroFloat64
	}
	if other == 0 {
		if e == 0 {
			return math.NaN()
		}
		return math.Inf(1)
	}
	if e == INFINITY {
		return math.Inf(1)
	}
	return float64(e) / float64(other)
}

// Seconds returns e as a floating-point second count.
func (e Elapsed) Seconds() float64 {
	if e == INFINITY {
		return math.Inf(1)
	}
	return float64(e) / float64(UnitsPerSecond)
}

// Floored rounds t down to a multiple of e: toward the epoch for t >= 0,
// away from it for negative t (used by the step filter to trim a
// timestamp to its unit).
func (e Elapsed) Floored(t int64) int64 {
	if e <= 0 {
		return t
	}
	unit := int64(e)
	if t >= 0 {
		return (t / unit) * unit
	}
	return ((t - unit + 1) / unit) * unit
}

// String renders the canonical PnDTHH:MM:SS.fff... form.
func (e Elapsed) String() string {
	switch e {
	case INVALID:
		return "INVALID"
	case INFINITY:
		return "INFINITY"
	}
	neg := e < 0
	v := int64(e)
	if neg {
		v = -v
	}
	days := v / UnitsPerDay
	v -= days * UnitsPerDay
	hours := v / UnitsPerHour
	v -= hours * UnitsPerHour
	minutes := v / UnitsPerMinute
	v -= minutes * UnitsPerMinute
	seconds := v / UnitsPerSecond
	v -= seconds * UnitsPerSecond
	frac := v

	sign := ""
	if neg {
		sign = "-"
	}
	out := sign
	if days > 0 {
		out += fmt.Sprintf("P%dDT%02d:%02d:%02d", days, hours, minutes, seconds)
	} else {
		out += fmt.Sprintf("PT%02d:%02d:%02d", hours, minutes, seconds)
	}
	if frac > 0 {
		out += fmt.Sprintf(".%07d", frac)
	}
	return out
}
