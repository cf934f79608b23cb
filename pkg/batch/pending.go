// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package batch

import (
	"sort"

	"github.com/xapiens/RVPF-sub009/pkg/pointgraph"
	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

// pendingEntry is one (point, timestamp) slot queued for recomputation.
type pendingEntry struct {
	point *pointgraph.Point
	stamp temporal.Timestamp
	seq   int // insertion order, for the deterministic same-level tiebreak
}

// pendingSet accumulates recomputation requests for one batch and drains
// them in strictly ascending point.Level order; within one level, order
// is unspecified but deterministic given the same notice stream.
// Duplicate (point, stamp) pairs collapse to one entry, keeping the first
// seq.
type pendingSet struct {
	entries map[pendingKey]*pendingEntry
	next    int
}

func newPendingSet() *pendingSet {
	return &pendingSet{entries: make(map[pendingKey]*pendingEntry)}
}

// add enqueues (p, t) for recomputation, a no-op if already pending.
func (s *pendingSet) add(p *pointgraph.Point, t temporal.Timestamp) {
	key := pendingKey{point: p.UUID, stamp: t}
	if _, exists := s.entries[key]; exists {
		return
	}
	s.entries[key] = &pendingEntry{point: p, stamp: t, seq: s.next}
	s.next++
}

func (s *pendingSet) len() int { return len(s.entries) }

// drainOrder returns every pending entry sorted first by ascending
// point.Level, then by insertion sequence within a level, and clears the
// set.
func (s *pendingSet) drainOrder() []*pendingEntry {
	out := make([]*pendingEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].point.Level != out[j].point.Level {
			return out[i].point.Level < out[j].point.Level
		}
		return out[i].seq < out[j].seq
	})
	s.entries = make(map[pendingKey]*pendingEntry)
	s.next = 0
	return out
}
