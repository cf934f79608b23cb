// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncsched

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

// CrontabSync schedules timestamps against a standard 5-field cron entry,
// evaluated in the given civil zone (so that daylight-saving transitions
// roll the schedule forward/back the way a wall-clock cron daemon would),
// bounded by an optional limits interval.
type CrontabSync struct {
	schedule cron.Schedule
	zone     *time.Location
	limits   temporal.Interval
	current  temporal.Timestamp
}

var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// NewCrontabSync parses entry as a standard 5-field cron expression
// (minute hour dom month dow; "*" matches all values; ranges/lists/steps
// supported via robfig/cron's grammar). limits bounds every timestamp the
// schedule can return; pass temporal.Unbounded for no bound.
func NewCrontabSync(entry string, zone *time.Location, limits temporal.Interval) (*CrontabSync, error) {
	sched, err := cronParser.Parse(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSync, err)
	}
	if zone == nil {
		zone = time.UTC
	}
	return &CrontabSync{schedule: sched, zone: zone, limits: limits}, nil
}

func (s *CrontabSync) SetCurrent(t temporal.Timestamp) { s.current = t }

// change rolls the zoned calendar forward (or, if !forward, backward) to the
// next (or previous) instant matching the cron entry.
func (s *CrontabSync) change(t temporal.Timestamp, forward bool) temporal.Timestamp {
	lt := t.AsTime().In(s.zone)
	if forward {
		next := s.schedule.Next(lt)
		// robfig/cron passes over a fire time whose wall clock falls in a
		// spring-forward gap. Stepping in lt's fixed offset finds it; that
		// instant is taken when it comes first and its wall clock does not
		// exist in the zone, so the fire lands just after the gap.
		_, off := lt.Zone()
		gap := s.schedule.Next(lt.In(time.FixedZone("", off)))
		wall := time.Date(gap.Year(), gap.Month(), gap.Day(), gap.Hour(), gap.Minute(), 0, 0, s.zone)
		if gap.Before(next) && (wall.Hour() != gap.Hour() || wall.Minute() != gap.Minute()) {
			next = gap
		}
		return temporal.FromTime(next)
	}
	return temporal.FromTime(previousFireBefore(s.schedule, lt))
}

// previousFireBefore finds the last scheduled instant strictly before
// cursor. robfig/cron only exposes Next, so this does an exponentially
// widening backward search followed by a binary search, converging on the
// exact fire time (cron schedules resolve to whole minutes).
func previousFireBefore(schedule cron.Schedule, cursor time.Time) time.Time {
	step := time.Hour
	lo := cursor.Add(-step)
	for i := 0; i < 64 && !schedule.Next(lo).Before(cursor); i++ {
		step *= 2
		lo = cursor.Add(-step)
	}
	hi := cursor
	for hi.Sub(lo) > time.Minute {
		mid := lo.Add(hi.Sub(lo) / 2)
		if schedule.Next(mid).Before(cursor) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return schedule.Next(lo)
}

func (s *CrontabSync) NextStamp() (temporal.Timestamp, bool) {
	next := s.change(s.current, true)
	if !s.limits.Contains(next) {
		return temporal.InvalidTimestamp, false
	}
	s.current = next
	return next, true
}

func (s *CrontabSync) PreviousStamp() (temporal.Timestamp, bool) {
	prev := s.change(s.current, false)
	if !s.limits.Contains(prev) {
		return temporal.InvalidTimestamp, false
	}
	s.current = prev
	return prev, true
}

func (s *CrontabSync) IsInSync(t temporal.Timestamp) bool {
	if !s.limits.Contains(t) {
		return false
	}
	lt := t.AsTime().In(s.zone)
	// A minute is "in sync" iff the schedule's next fire from one tick
	// earlier lands exactly on it.
	probe := lt.Add(-time.Second)
	return !s.schedule.Next(probe).After(lt) && !s.schedule.Next(probe).Before(lt)
}
