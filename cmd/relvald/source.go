// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/xapiens/RVPF-sub009/pkg/batch"
)

// fanInSource merges the messaging-backed notice source with clock ticks
// from the gocron scheduler into the single queue the batch engine's
// receive loop expects. pkg/batch only ever sees one Source;
// multiplexing collaborators is wiring, not core behavior.
type fanInSource struct {
	notices chan batch.Notice
}

func newFanInSource(buffer int) *fanInSource {
	return &fanInSource{notices: make(chan batch.Notice, buffer)}
}

// pumpMessaging forwards everything a messaging.NoticeSource-shaped
// collaborator yields until stop is closed. Runs in its own goroutine.
func (f *fanInSource) pumpMessaging(stop <-chan struct{}, upstream batch.Source, timeoutMs int) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		notice, ok := upstream.Receive(timeoutMs)
		if !ok {
			continue
		}
		select {
		case f.notices <- notice:
		case <-stop:
			return
		}
	}
}

// Push enqueues a notice from any producer (scheduler callback, signal
// handler), dropping it if the queue is full rather than blocking a
// scheduler goroutine indefinitely.
func (f *fanInSource) Push(n batch.Notice) {
	select {
	case f.notices <- n:
	default:
	}
}

func (f *fanInSource) Receive(timeoutMs int) (batch.Notice, bool) {
	select {
	case n := <-f.notices:
		return n, true
	case <-time.After(time.Duration(timeoutMs) * time.Millisecond):
		return batch.Notice{}, false
	}
}
