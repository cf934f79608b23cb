// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package memtrack implements a memory-tracking utility that samples the
// runtime heap on an optional background timer: a best-effort goroutine
// that periodically snapshots runtime.MemStats and reports it, never
// sitting on any engine critical path. Grounded on the teacher's
// MemoryUsageTracker goroutine in pkg/metricstore/metricstore.go (ticker
// plus ctx-cancellation shutdown, runtime.ReadMemStats sampling), trimmed
// to observation only since buffer eviction is metricstore-specific.
package memtrack

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/xapiens/RVPF-sub009/pkg/log"
)

// Sample is one runtime.MemStats snapshot, reduced to the fields the
// tracker reports.
type Sample struct {
	Taken      time.Time
	AllocBytes uint64
	SysBytes   uint64
	NumGC      uint32
	Goroutines int
}

// Sink receives every sample the Tracker takes. Implementations must
// return quickly; the tracker does not buffer samples a slow Sink misses.
type Sink func(Sample)

// LogSink is the default Sink: one Info line per sample, matching the
// teacher's "memory usage: %.2f GB actual" log line.
func LogSink(s Sample) {
	log.Infof("memtrack: heap alloc=%.2fMB sys=%.2fMB numGC=%d goroutines=%d",
		float64(s.AllocBytes)/1e6, float64(s.SysBytes)/1e6, s.NumGC, s.Goroutines)
}

// Tracker periodically samples the Go runtime's heap statistics on a
// ticker and forwards each Sample to a Sink, until its context is
// cancelled. The zero value is not usable; construct with NewTracker.
type Tracker struct {
	interval time.Duration
	sink     Sink
}

// NewTracker builds a Tracker sampling every interval and reporting to
// sink. A non-positive interval disables sampling entirely, matching the
// teacher's "d <= 0 { return }" guard.
func NewTracker(interval time.Duration, sink Sink) *Tracker {
	if sink == nil {
		sink = LogSink
	}
	return &Tracker{interval: interval, sink: sink}
}

// Run blocks, sampling on t.interval until ctx is cancelled. Callers
// typically invoke it in its own goroutine, coordinating shutdown with a
// sync.WaitGroup as the teacher's MemoryUsageTracker does.
func (t *Tracker) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	if t.interval <= 0 {
		return
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.sink(sampleNow())
		}
	}
}

func sampleNow() Sample {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return Sample{
		Taken:      time.Now(),
		AllocBytes: mem.Alloc,
		SysBytes:   mem.Sys,
		NumGC:      mem.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
}
