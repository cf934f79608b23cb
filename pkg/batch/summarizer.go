// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package batch

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/xapiens/RVPF-sub009/pkg/rpnvm"
	"github.com/xapiens/RVPF-sub009/pkg/temporal"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// SummarizerTransform implements summarizer mode: a transform that folds
// a time window of one source point's samples into a single result via
// three RPN programs — initial (once), step (once per sample), final
// (once) — carrying state across all three through one shared VM's
// registers. The expression engine defines the program shape; this type
// is the batch-side driver that makes it runnable.
type SummarizerTransform struct {
	name   string
	source uuid.UUID
	window temporal.Elapsed // how far back from the result stamp to scan

	initial, step, final rpnvm.Program
}

// NewSummarizerTransform parses the three program sources once at load
// time. source is the point whose stored history is summarized; window
// is the lookback duration ending at the result's own nominal timestamp.
func NewSummarizerTransform(name string, source uuid.UUID, window temporal.Elapsed, initialSrc, stepSrc, finalSrc string) (*SummarizerTransform, error) {
	initial, err := rpnvm.Parse(initialSrc)
	if err != nil {
		return nil, fmt.Errorf("batch: parsing summarizer %q initial: %w", name, err)
	}
	step, err := rpnvm.Parse(stepSrc)
	if err != nil {
		return nil, fmt.Errorf("batch: parsing summarizer %q step: %w", name, err)
	}
	final, err := rpnvm.Parse(finalSrc)
	if err != nil {
		return nil, fmt.Errorf("batch: parsing summarizer %q final: %w", name, err)
	}
	return &SummarizerTransform{name: name, source: source, window: window, initial: initial, step: step, final: final}, nil
}

func (t *SummarizerTransform) Name() string { return t.name }

// windowInputs exposes the summarized window to the three programs: in
// step invocations `$` / `$1` is the current sample and `$1@` its
// timestamp; `$#` is the window's total sample count throughout, so the
// final program can normalize by it; $0/@n resolve against the owning
// Batch as usual.
type windowInputs struct {
	*Batch
	count      int
	haveSample bool
	sample     value.Value
	ts         temporal.Timestamp
}

func (w *windowInputs) InputValue(n int) (value.Value, bool) {
	if n == 1 && w.haveSample {
		return w.sample, true
	}
	return w.Batch.InputValue(n)
}

func (w *windowInputs) InputTimestamp(n int) (value.Value, bool) {
	if n == 1 && w.haveSample {
		return value.DateTime(w.ts), true
	}
	return w.Batch.InputTimestamp(n)
}

func (w *windowInputs) InputCount() int { return w.count }

// Apply runs initial/step*/final against one shared VM; inter-program
// state is carried through named registers.
func (t *SummarizerTransform) Apply(ctx context.Context, b *Batch) (value.Value, error) {
	interval := temporal.Interval{NotBefore: b.stamp.BeforeElapsed(t.window), NotAfter: b.stamp}
	samples, err := b.engine.store.GetRange(ctx, t.source, interval, 0)
	if err != nil {
		return value.Value{}, fmt.Errorf("batch: summarizer %q fetching window: %w", t.name, err)
	}

	inputs := &windowInputs{Batch: b, count: len(samples)}
	vm := rpnvm.NewVM(inputs)
	if b.engine.zone != nil {
		vm.Zone = b.engine.zone
	}
	if err := vm.Exec(t.initial); err != nil {
		return value.Value{}, fmt.Errorf("batch: summarizer %q initial: %w", t.name, err)
	}

	inputs.haveSample = true
	for _, sample := range samples {
		inputs.sample, inputs.ts = sample.Value, sample.Timestamp
		if err := vm.Exec(t.step); err != nil {
			return value.Value{}, fmt.Errorf("batch: summarizer %q step: %w", t.name, err)
		}
	}
	inputs.haveSample = false

	return vm.Run(t.final)
}
