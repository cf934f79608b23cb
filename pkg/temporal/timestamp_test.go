// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestampAfterSubRoundTrip(t *testing.T) {
	ts := FromTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	e := ElapsedFromSeconds(3600)
	assert.Equal(t, e, ts.AfterElapsed(e).SubElapsed(ts))
}

func TestTimestampBeforeAfterRoundTrip(t *testing.T) {
	ts := FromTime(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	e := ElapsedFromSeconds(120)
	assert.Equal(t, ts, ts.BeforeElapsed(e).AfterElapsed(e))
}

func TestTimestampMidnight(t *testing.T) {
	loc, _ := time.LoadLocation("UTC")
	ts := FromTime(time.Date(2024, 3, 10, 14, 30, 0, 0, loc))
	mid := ts.Midnight(loc)
	assert.Equal(t, FromTime(time.Date(2024, 3, 10, 0, 0, 0, 0, loc)), mid)
}

func TestTimestampOrdering(t *testing.T) {
	a := FromMillis(1000)
	b := FromMillis(2000)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(a))
}

func TestTimestampWireRoundTrip(t *testing.T) {
	ts := FromMillis(123456789)
	buf := ts.MarshalWire()
	assert.Equal(t, ts, UnmarshalTimestampWire(buf))

	invalidBuf := InvalidTimestamp.MarshalWire()
	assert.Equal(t, InvalidTimestamp, UnmarshalTimestampWire(invalidBuf))
}
