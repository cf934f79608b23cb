// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package syncsched implements the three Sync schedule variants:
// ElapsedSync, CrontabSync, and StampsSync. A Sync is a stateful cursor
// over an ordered, possibly-infinite timestamp sequence.
package syncsched

import (
	"fmt"
	"time"

	"github.com/xapiens/RVPF-sub009/pkg/params"
	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

// ErrBadSync is raised by sync construction on invalid or unknown
// configuration parameters.
var ErrBadSync = fmt.Errorf("syncsched: bad sync configuration")

// Sync is a deterministic schedule of timestamps. Every call that returns a
// timestamp moves the cursor to that timestamp.
type Sync interface {
	// SetCurrent positions the cursor.
	SetCurrent(t temporal.Timestamp)
	// NextStamp returns the first scheduled timestamp strictly after the
	// current cursor, or ok=false if none (schedule exhausted by limits).
	NextStamp() (t temporal.Timestamp, ok bool)
	// PreviousStamp returns the first scheduled timestamp strictly before
	// the current cursor, or ok=false if none.
	PreviousStamp() (t temporal.Timestamp, ok bool)
	// IsInSync reports whether t is exactly a scheduled point.
	IsInSync(t temporal.Timestamp) bool
}

// Recognized configuration keys.
const (
	CrontabParam = "CRONTAB_PARAM"
	ElapsedParam = "ELAPSED_PARAM"
	OffsetParam  = "OFFSET_PARAM"
	StampParam   = "STAMP_PARAM"
)

// Build constructs a Sync from a keyed parameter group, dispatching on which
// of the recognized keys is present. One of CRONTAB_PARAM, ELAPSED_PARAM,
// or STAMP_PARAM must be set; when several are, the first present in that
// order is used and the others are ignored. limits bounds the built Sync
// regardless of variant, so a caller configuring e.g. a CrontabSync with a
// bounded retention window gets the same clamping behavior ElapsedSync has
// always had.
func Build(p *params.Params, zone *time.Location, limits temporal.Interval) (Sync, error) {
	if v, ok := p.GetFirst(CrontabParam); ok {
		entry, _ := v.AsString()
		return NewCrontabSync(entry, zone, limits)
	}
	if v, ok := p.GetFirst(ElapsedParam); ok {
		period, _ := v.AsElapsed()
		var offset temporal.Elapsed
		if o, ok := p.GetFirst(OffsetParam); ok {
			offset, _ = o.AsElapsed()
		}
		return NewElapsedSync(period, offset, limits, zone)
	}
	if v, ok := p.Get(StampParam); ok {
		stamps := make([]temporal.Timestamp, 0, len(v))
		for _, prim := range v {
			s, _ := prim.AsString()
			ts, err := temporal.ParseTimestamp(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadSync, err)
			}
			stamps = append(stamps, ts)
		}
		return NewStampsSync(stamps, zone, limits)
	}
	return nil, fmt.Errorf("%w: no sync parameter present", ErrBadSync)
}
