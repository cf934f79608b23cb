// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package temporal

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Timestamp is an immutable, non-negative count of 100-nanosecond units
// since the fixed epoch (2000-01-01T00:00:00Z). Its wire form is a
// single big-endian int64 of 100-ns units.
type Timestamp int64

// Epoch is the reference instant for Timestamp 0.
var Epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	// BeginningOfTime is the earliest representable timestamp.
	BeginningOfTime Timestamp = 0
	// EndOfTime is the sentinel for "no upper bound".
	EndOfTime Timestamp = math.MaxInt64
	// InvalidTimestamp is a distinguished sentinel, never valid on the wire.
	InvalidTimestamp Timestamp = math.MinInt64
)

func (t Timestamp) IsValid() bool {
	return t != InvalidTimestamp
}

// Before and After order timestamps totally; equal timestamps compare equal.
func (t Timestamp) Before(other Timestamp) bool { return t < other }
func (t Timestamp) After(other Timestamp) bool  { return t > other }
func (t Timestamp) Equal(other Timestamp) bool  { return t == other }

// AsTime converts t to a time.Time in UTC.
func (t Timestamp) AsTime() time.Time {
	return Epoch.Add(time.Duration(int64(t)) * 100)
}

// FromTime constructs a Timestamp from a time.Time, truncating to 100ns units.
func FromTime(tm time.Time) Timestamp {
	d := tm.UTC().Sub(Epoch)
	return Timestamp(d.Nanoseconds() / 100)
}

// FromMillis constructs a Timestamp from Unix milliseconds.
func FromMillis(ms int64) Timestamp {
	return FromTime(time.UnixMilli(ms).UTC())
}

// FromNanos constructs a Timestamp from Unix nanoseconds.
func FromNanos(ns int64) Timestamp {
	return FromTime(time.Unix(0, ns).UTC())
}

// FromSeconds constructs a Timestamp from a (possibly fractional) Unix second count.
func FromSeconds(s float64) Timestamp {
	return FromTime(time.Unix(0, int64(s*1e9)).UTC())
}

// AfterElapsed adds an elapsed duration to t, saturating at EndOfTime.
func (t Timestamp) AfterElapsed(e Elapsed) Timestamp {
	if !t.IsValid() || e == INVALID {
		return InvalidTimestamp
	}
	if e == INFINITY {
		return EndOfTime
	}
	sum := int64(t) + int64(e)
	if sum < 0 {
		return EndOfTime
	}
	return Timestamp(sum)
}

// BeforeElapsed subtracts an elapsed duration from t, saturating at BeginningOfTime.
func (t Timestamp) BeforeElapsed(e Elapsed) Timestamp {
	if !t.IsValid() || e == INVALID {
		return InvalidTimestamp
	}
	if e == INFINITY {
		return BeginningOfTime
	}
	diff := int64(t) - int64(e)
	if diff < 0 {
		return BeginningOfTime
	}
	return Timestamp(diff)
}

// SubElapsed returns the elapsed time between t and other (|t - other|).
// AfterElapsed followed by SubElapsed against the original timestamp
// recovers the same elapsed value.
func (t Timestamp) SubElapsed(other Timestamp) Elapsed {
	if t >= other {
		return Elapsed(int64(t) - int64(other))
	}
	return Elapsed(int64(other) - int64(t))
}

// Midnight returns the last midnight at or before t, in the given zone.
func (t Timestamp) Midnight(zone *time.Location) Timestamp {
	lt := t.AsTime().In(zone)
	y, m, d := lt.Date()
	mid := time.Date(y, m, d, 0, 0, 0, 0, zone)
	return FromTime(mid)
}

// NextDay adds one civil day to t in the given zone (DST-aware).
func (t Timestamp) NextDay(zone *time.Location) Timestamp {
	lt := t.AsTime().In(zone)
	y, m, d := lt.Date()
	next := time.Date(y, m, d+1, lt.Hour(), lt.Minute(), lt.Second(), lt.Nanosecond(), zone)
	return FromTime(next)
}

// Format renders t as an ISO-8601 string in the given zone.
func (t Timestamp) Format(zone *time.Location) string {
	switch t {
	case InvalidTimestamp:
		return "INVALID"
	case EndOfTime:
		return "END_OF_TIME"
	case BeginningOfTime:
		return "BEGINNING_OF_TIME"
	}
	return t.AsTime().In(zone).Format("2006-01-02T15:04:05.0000000Z07:00")
}

func (t Timestamp) String() string {
	return t.Format(time.UTC)
}

// ParseTimestamp parses an ISO-8601-ish timestamp string.
func ParseTimestamp(s string) (Timestamp, error) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.9999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if tm, err := time.Parse(layout, s); err == nil {
			return FromTime(tm), nil
		}
	}
	return InvalidTimestamp, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
}

// MarshalWire encodes t into the 8-byte wire form used for Elapsed/DateTime
// values: a single big-endian int64; InvalidTimestamp (math.MinInt64)
// denotes INVALID.
func (t Timestamp) MarshalWire() [8]byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(int64(t)))
	return buf
}

func UnmarshalTimestampWire(buf [8]byte) Timestamp {
	return Timestamp(int64(binary.BigEndian.Uint64(buf[:])))
}

func (e Elapsed) MarshalWire() [8]byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(int64(e)))
	return buf
}

func UnmarshalElapsedWire(buf [8]byte) Elapsed {
	return Elapsed(int64(binary.BigEndian.Uint64(buf[:])))
}
