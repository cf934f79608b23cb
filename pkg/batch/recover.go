// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package batch

import (
	"context"

	"github.com/xapiens/RVPF-sub009/pkg/log"
	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

// Recover implements the crash-recovery contract: a crash between store
// commit and messaging commit is recovered at next start by redriving
// from the store's last committed timestamp per point. For every raw
// (level 0) point with a sync, it compares the store's latest committed
// value against the sync's expected next stamp and, if the store lags,
// feeds every missed stamp up to now through the clock-notice path
// (handleClockNotice), queuing each point whose sync fires at that stamp
// so the next level-ordered drain recomputes them. Call once at startup
// before Run.
func (e *Engine) Recover(ctx context.Context, now temporal.Timestamp) {
	for _, p := range e.graph.GetPointsCollection() {
		if p.Level != 0 || p.Sync == nil || p.Dropped {
			continue
		}
		latest, ok, err := e.store.GetLatest(ctx, p.UUID, now)
		if err != nil {
			log.Warn("batch: recover: getLatest failed for ", p.Name, ": ", err)
			continue
		}
		cursor := temporal.BeginningOfTime
		if ok {
			cursor = latest.Timestamp
		}
		p.Sync.SetCurrent(cursor)
		missed := 0
		for {
			next, ok := p.Sync.NextStamp()
			if !ok || next.After(now) {
				break
			}
			e.handleClockNotice(next)
			missed++
			if missed > recoverStampLimit {
				log.Warn("batch: recover: ", p.Name, " exceeded redrive limit, stopping early")
				break
			}
		}
		if missed > 0 {
			log.Info("batch: recover: redrove ", missed, " missed stamp(s) for ", p.Name)
		}
	}
}

// recoverStampLimit bounds the redrive loop against a pathologically long
// outage driving an unbounded replay.
const recoverStampLimit = 100000
