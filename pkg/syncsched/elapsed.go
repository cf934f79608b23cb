// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncsched

import (
	"fmt"
	"time"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

// ElapsedSync schedules {k*period + offset : k in Z} intersected with limits.
type ElapsedSync struct {
	period  temporal.Elapsed
	offset  temporal.Elapsed
	limits  temporal.Interval
	zone    *time.Location
	current temporal.Timestamp
}

// NewElapsedSync builds a period+offset schedule. period must be >= 1ms;
// offset must be < period. Periods/offsets below 1ms are rejected; a zero
// offset means no offset.
func NewElapsedSync(period, offset temporal.Elapsed, limits temporal.Interval, zone *time.Location) (*ElapsedSync, error) {
	if period < temporal.Elapsed(temporal.UnitsPerMilli) {
		return nil, fmt.Errorf("%w: period below 1ms", ErrBadSync)
	}
	if offset < 0 || offset >= period {
		return nil, fmt.Errorf("%w: offset must be in [0, period)", ErrBadSync)
	}
	if offset > 0 && offset < temporal.Elapsed(temporal.UnitsPerMilli) {
		return nil, fmt.Errorf("%w: offset below 1ms", ErrBadSync)
	}
	if zone == nil {
		zone = time.UTC
	}
	return &ElapsedSync{period: period, offset: offset, limits: limits, zone: zone}, nil
}

// floor returns the scheduled stamp of the period slot holding t, with the
// slot alignment depending on which ends of limits are open:
//   - open both sides: civil-zone-aligned floor by period, then add offset;
//     the result is the largest scheduled stamp <= t.
//   - closed end only (NotAfter bounded): align to the end.
//   - closed beginning (NotBefore bounded, whatever NotAfter is): align to
//     the beginning.
//
// In the two bounded cases the result is the slot start plus offset and
// can lie after t; NextStamp and PreviousStamp step from it by whole
// periods either way.
func (s *ElapsedSync) floor(t temporal.Timestamp) temporal.Timestamp {
	switch {
	case !s.limits.IsOpenStart():
		base := s.limits.NotBefore
		delta := t.SubElapsed(base)
		k := int64(delta) / int64(s.period)
		return base.AfterElapsed(s.period * temporal.Elapsed(k)).AfterElapsed(s.offset)
	case !s.limits.IsOpenEnd():
		base := s.limits.NotAfter
		delta := base.SubElapsed(t)
		k := (int64(delta) + int64(s.period) - 1) / int64(s.period)
		return base.BeforeElapsed(s.period * temporal.Elapsed(k)).AfterElapsed(s.offset)
	default:
		midnight := t.Midnight(s.zone)
		delta := t.SubElapsed(midnight)
		k := int64(delta) / int64(s.period)
		aligned := midnight.AfterElapsed(s.period * temporal.Elapsed(k))
		candidate := aligned.AfterElapsed(s.offset)
		if candidate.After(t) {
			candidate = aligned.BeforeElapsed(s.period - s.offset)
		}
		return candidate
	}
}

func (s *ElapsedSync) SetCurrent(t temporal.Timestamp) { s.current = t }

func (s *ElapsedSync) NextStamp() (temporal.Timestamp, bool) {
	floor := s.floor(s.current)
	next := floor
	for !next.After(s.current) {
		next = next.AfterElapsed(s.period)
	}
	if !s.limits.Contains(next) {
		return temporal.InvalidTimestamp, false
	}
	s.current = next
	return next, true
}

func (s *ElapsedSync) PreviousStamp() (temporal.Timestamp, bool) {
	floor := s.floor(s.current)
	prev := floor
	for !prev.Before(s.current) {
		prev = prev.BeforeElapsed(s.period)
	}
	if !s.limits.Contains(prev) {
		return temporal.InvalidTimestamp, false
	}
	s.current = prev
	return prev, true
}

func (s *ElapsedSync) IsInSync(t temporal.Timestamp) bool {
	if !s.limits.Contains(t) {
		return false
	}
	return s.floor(t) == t
}
