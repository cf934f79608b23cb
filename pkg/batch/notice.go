// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package batch implements the batch engine: the
// control-plane loop that turns arriving notices into pending
// (point, timestamp) recomputations, drains them in level order through
// each point's transform, and commits the results to the store and
// messaging collaborators.
package batch

import (
	"github.com/google/uuid"

	"github.com/xapiens/RVPF-sub009/pkg/pointgraph"
	"github.com/xapiens/RVPF-sub009/pkg/temporal"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// NoticeKind discriminates the notice variants the engine accepts as
// input.
type NoticeKind int

const (
	// NoticeValue carries a new or updated raw PointValue arriving from
	// a device adapter or upstream service.
	NoticeValue NoticeKind = iota
	// NoticeRecalc directly requests recomputation of one point at one
	// timestamp.
	NoticeRecalc
	// NoticeClock is a scheduler tick (e.g. midnight, or a sync firing)
	// that may trigger recomputation of synced result points.
	NoticeClock
	// NoticeNull is the sentinel flush boundary: commit the current
	// batch and loop.
	NoticeNull
	// NoticeService is an opaque out-of-band signal (e.g. shutdown,
	// resync request) that the engine passes through without touching
	// the pending set.
	NoticeService
)

// String renders a NoticeKind for logging and metric labels.
func (k NoticeKind) String() string {
	switch k {
	case NoticeValue:
		return "value"
	case NoticeRecalc:
		return "recalc"
	case NoticeClock:
		return "clock"
	case NoticeNull:
		return "null"
	case NoticeService:
		return "service"
	default:
		return "unknown"
	}
}

// Notice is one unit of input to the batch engine's receive loop.
type Notice struct {
	Kind  NoticeKind
	Value value.PointValue     // set for NoticeValue
	Point *pointgraph.Point    // set for NoticeRecalc/NoticeClock
	Stamp temporal.Timestamp   // set for NoticeRecalc/NoticeClock
	Tag   string               // set for NoticeService, e.g. "shutdown", "resync"
}

// NullNotice is the boundary marker pushed by a source to force a batch
// commit, mirroring the store/messaging NULL sentinel.
func NullNotice() Notice { return Notice{Kind: NoticeNull} }

// Source is the notice queue contract: receive a notice from the source
// queue, blocking for at most timeoutMs milliseconds. Implementations
// return ok=false when the timeout elapses with nothing received (at once
// for a zero timeout), matching Receiver.Receive's null-on-timeout
// contract.
type Source interface {
	Receive(timeoutMs int) (Notice, bool)
}

// pendingKey identifies one (point, timestamp) recomputation slot in the
// pending set.
type pendingKey struct {
	point uuid.UUID
	stamp temporal.Timestamp
}
