// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncsched

import (
	"fmt"
	"sort"
	"time"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

// StampsSync schedules an explicit, sorted array of timestamps, bounded
// by an optional limits interval.
type StampsSync struct {
	stamps  []temporal.Timestamp
	zone    *time.Location
	limits  temporal.Interval
	current temporal.Timestamp
}

// NewStampsSync builds a StampsSync from an explicit stamp list, sorting a
// defensive copy so construction never mutates the caller's slice. limits
// bounds every timestamp the schedule can return; pass temporal.Unbounded
// for no bound.
func NewStampsSync(stamps []temporal.Timestamp, zone *time.Location, limits temporal.Interval) (*StampsSync, error) {
	if len(stamps) == 0 {
		return nil, fmt.Errorf("%w: empty stamp list", ErrBadSync)
	}
	cp := make([]temporal.Timestamp, len(stamps))
	copy(cp, stamps)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Before(cp[j]) })
	if zone == nil {
		zone = time.UTC
	}
	return &StampsSync{stamps: cp, zone: zone, limits: limits}, nil
}

func (s *StampsSync) SetCurrent(t temporal.Timestamp) { s.current = t }

// NextStamp returns the first entry strictly after the cursor that still
// falls within limits. When the cursor lies between two entries, the
// cursor simply advances to the next one: the caller is never required to
// pre-snap onto a scheduled point before calling NextStamp.
func (s *StampsSync) NextStamp() (temporal.Timestamp, bool) {
	idx := sort.Search(len(s.stamps), func(i int) bool {
		return s.stamps[i].After(s.current)
	})
	if idx >= len(s.stamps) || !s.limits.Contains(s.stamps[idx]) {
		return temporal.InvalidTimestamp, false
	}
	s.current = s.stamps[idx]
	return s.current, true
}

// PreviousStamp returns the last entry strictly before the cursor that
// still falls within limits.
func (s *StampsSync) PreviousStamp() (temporal.Timestamp, bool) {
	idx := sort.Search(len(s.stamps), func(i int) bool {
		return !s.stamps[i].Before(s.current)
	})
	if idx == 0 || !s.limits.Contains(s.stamps[idx-1]) {
		return temporal.InvalidTimestamp, false
	}
	s.current = s.stamps[idx-1]
	return s.current, true
}

func (s *StampsSync) IsInSync(t temporal.Timestamp) bool {
	if !s.limits.Contains(t) {
		return false
	}
	idx := sort.Search(len(s.stamps), func(i int) bool {
		return !s.stamps[i].Before(t)
	})
	return idx < len(s.stamps) && s.stamps[idx] == t
}
