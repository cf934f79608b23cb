// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncsched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

// ─── ElapsedSync ──────────────────────────────────────────────────────────

// TestElapsedSyncAlignment checks that with period=1h, offset=15m and open
// limits, three calls to NextStamp from midnight yield 00:15, 01:15, 02:15.
func TestElapsedSyncAlignment(t *testing.T) {
	period := temporal.Elapsed(temporal.UnitsPerHour)
	offset := temporal.Elapsed(15 * temporal.UnitsPerMinute)
	s, err := NewElapsedSync(period, offset, temporal.Unbounded, time.UTC)
	require.NoError(t, err)

	cursor := temporal.FromTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.SetCurrent(cursor)

	want := []string{"00:15", "01:15", "02:15"}
	for _, w := range want {
		next, ok := s.NextStamp()
		require.True(t, ok)
		assert.Equal(t, w, next.AsTime().Format("15:04"))
	}
}

func TestElapsedSyncRejectsSubMillisecondPeriod(t *testing.T) {
	_, err := NewElapsedSync(temporal.Elapsed(1), 0, temporal.Unbounded, time.UTC)
	require.ErrorIs(t, err, ErrBadSync)
}

func TestElapsedSyncRejectsOffsetNotLessThanPeriod(t *testing.T) {
	period := temporal.Elapsed(temporal.UnitsPerHour)
	_, err := NewElapsedSync(period, period, temporal.Unbounded, time.UTC)
	require.ErrorIs(t, err, ErrBadSync)
}

func TestElapsedSyncIsInSync(t *testing.T) {
	period := temporal.Elapsed(temporal.UnitsPerHour)
	offset := temporal.Elapsed(15 * temporal.UnitsPerMinute)
	s, err := NewElapsedSync(period, offset, temporal.Unbounded, time.UTC)
	require.NoError(t, err)

	onSchedule := temporal.FromTime(time.Date(2024, 1, 1, 1, 15, 0, 0, time.UTC))
	offSchedule := temporal.FromTime(time.Date(2024, 1, 1, 1, 16, 0, 0, time.UTC))
	assert.True(t, s.IsInSync(onSchedule))
	assert.False(t, s.IsInSync(offSchedule))
}

// ─── CrontabSync ──────────────────────────────────────────────────────────

// TestCrontabSyncDSTRollForward checks that entry "0 2 * * *" in
// America/New_York skips the non-existent 02:00 on the spring-forward
// DST transition, landing on 03:00 local (-04:00) instead.
func TestCrontabSyncDSTRollForward(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available in test environment")
	}
	s, err := NewCrontabSync("0 2 * * *", loc, temporal.Unbounded)
	require.NoError(t, err)

	cursor := temporal.FromTime(time.Date(2024, 3, 10, 0, 0, 0, 0, loc))
	s.SetCurrent(cursor)

	next, ok := s.NextStamp()
	require.True(t, ok)
	lt := next.AsTime().In(loc)
	assert.Equal(t, 3, lt.Hour())
	_, offset := lt.Zone()
	assert.Equal(t, -4*3600, offset)
}

func TestCrontabSyncRejectsMalformedEntry(t *testing.T) {
	_, err := NewCrontabSync("not a cron expr", time.UTC, temporal.Unbounded)
	require.ErrorIs(t, err, ErrBadSync)
}

func TestCrontabSyncExhaustsAtLimits(t *testing.T) {
	limits := temporal.Interval{
		NotBefore: temporal.FromTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		NotAfter:  temporal.FromTime(time.Date(2024, 1, 2, 1, 59, 0, 0, time.UTC)),
	}
	s, err := NewCrontabSync("0 2 * * *", time.UTC, limits)
	require.NoError(t, err)

	s.SetCurrent(limits.NotBefore)
	first, ok := s.NextStamp()
	require.True(t, ok)
	assert.Equal(t, 2024, first.AsTime().Year())

	_, ok = s.NextStamp()
	assert.False(t, ok, "the day-2 fire at 02:00 falls outside limits.NotAfter")
}

// ─── StampsSync ───────────────────────────────────────────────────────────

func TestStampsSyncNextPreviousExactMembership(t *testing.T) {
	a := temporal.FromMillis(1000)
	b := temporal.FromMillis(2000)
	c := temporal.FromMillis(3000)
	s, err := NewStampsSync([]temporal.Timestamp{c, a, b}, time.UTC, temporal.Unbounded)
	require.NoError(t, err)

	s.SetCurrent(a)
	next, ok := s.NextStamp()
	require.True(t, ok)
	assert.Equal(t, b, next)
	assert.True(t, s.IsInSync(b))
	assert.False(t, s.IsInSync(temporal.FromMillis(1500)))

	s.SetCurrent(c)
	_, ok = s.NextStamp()
	assert.False(t, ok)
}

func TestStampsSyncBetweenEntriesSnapsForwardOnNext(t *testing.T) {
	a := temporal.FromMillis(1000)
	b := temporal.FromMillis(2000)
	s, err := NewStampsSync([]temporal.Timestamp{a, b}, time.UTC, temporal.Unbounded)
	require.NoError(t, err)

	mid := temporal.FromMillis(1500)
	s.SetCurrent(mid)
	assert.False(t, s.IsInSync(mid))

	next, ok := s.NextStamp()
	require.True(t, ok)
	assert.Equal(t, b, next)
}

func TestStampsSyncRespectsLimits(t *testing.T) {
	a := temporal.FromMillis(1000)
	b := temporal.FromMillis(2000)
	c := temporal.FromMillis(3000)
	limits := temporal.Interval{NotBefore: a, NotAfter: b}
	s, err := NewStampsSync([]temporal.Timestamp{a, b, c}, time.UTC, limits)
	require.NoError(t, err)

	assert.False(t, s.IsInSync(c), "c lies outside limits even though it is a scheduled stamp")

	s.SetCurrent(a)
	next, ok := s.NextStamp()
	require.True(t, ok)
	assert.Equal(t, b, next)

	_, ok = s.NextStamp()
	assert.False(t, ok, "c is beyond limits.NotAfter")
}
