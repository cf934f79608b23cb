// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package batch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/xapiens/RVPF-sub009/pkg/content"
	"github.com/xapiens/RVPF-sub009/pkg/filter"
	"github.com/xapiens/RVPF-sub009/pkg/log"
	"github.com/xapiens/RVPF-sub009/pkg/pointgraph"
	"github.com/xapiens/RVPF-sub009/pkg/temporal"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// FailReturnsNullParam is the config key that converts a computation
// failure on a point into a null emission rather than a drop.
const FailReturnsNullParam = "FAIL_RETURNS_NULL_PARAM"

// Metrics is the instrumentation hook the engine calls at well-defined
// points in the loop. internal/metrics supplies the Prometheus-backed
// implementation; tests use a no-op. Kept as a small interface here so
// pkg/batch never imports a metrics library directly.
type Metrics interface {
	NoticeReceived(kind NoticeKind)
	PendingDepth(n int)
	BatchCommitted(d time.Duration)
	TransformFailed(pointName string)
}

type noopMetrics struct{}

func (noopMetrics) NoticeReceived(NoticeKind)      {}
func (noopMetrics) PendingDepth(int)               {}
func (noopMetrics) BatchCommitted(time.Duration)   {}
func (noopMetrics) TransformFailed(string)         {}

// Config wires an Engine's collaborators and shared-resource policy.
type Config struct {
	Graph      *pointgraph.Graph
	Store      Store
	Messaging  Messaging
	Source     Source
	Filters    map[uuid.UUID]filter.Filter // per-point; missing entries use filter.Disabled{}
	Zone       *time.Location
	Metrics    Metrics // nil uses a no-op
	ReceiveTimeoutMs int // notice receive timeout in milliseconds
}

// Engine is the single-threaded control plane driving one batch engine
// instance. Multiple instances may run concurrently (processor/datalogger/summarizer
// services) sharing only the store and messaging collaborators.
type Engine struct {
	graph     *pointgraph.Graph
	store     Store
	messaging Messaging
	source    Source
	filters   map[uuid.UUID]filter.Filter
	zone      *time.Location
	metrics   Metrics
	timeoutMs int

	pending *pendingSet
	buffer  map[pendingKey]value.PointValue // write-through: values produced earlier in this batch
	outbox  []value.PointValue              // staged for the next messaging.Send
}

// NewEngine constructs an Engine ready for Run.
func NewEngine(cfg Config) *Engine {
	m := cfg.Metrics
	if m == nil {
		m = noopMetrics{}
	}
	zone := cfg.Zone
	if zone == nil {
		zone = time.UTC
	}
	timeout := cfg.ReceiveTimeoutMs
	if timeout <= 0 {
		timeout = 1000
	}
	return &Engine{
		graph:     cfg.Graph,
		store:     cfg.Store,
		messaging: cfg.Messaging,
		source:    cfg.Source,
		filters:   cfg.Filters,
		zone:      zone,
		metrics:   m,
		timeoutMs: timeout,
		pending:   newPendingSet(),
		buffer:    make(map[pendingKey]value.PointValue),
	}
}

// Run executes the receive loop until ctx is cancelled or shutdown fires.
// On shutdown the engine finishes the current batch, commits, then exits:
// it checks the shutdown flag between (p, t) pending entries. In-flight
// transforms are never interrupted.
func (e *Engine) Run(ctx context.Context, shutdown <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-shutdown:
			e.commit(ctx)
			return nil
		default:
		}

		notice, ok := e.source.Receive(e.timeoutMs)
		if !ok {
			continue // timeout; loop back to re-check cancellation/shutdown
		}
		e.metrics.NoticeReceived(notice.Kind)

		switch notice.Kind {
		case NoticeNull:
			e.commit(ctx)
			continue
		case NoticeService:
			continue
		case NoticeValue:
			e.handleValueNotice(ctx, notice.Value)
		case NoticeRecalc:
			if notice.Point != nil && !notice.Point.Dropped {
				e.pending.add(notice.Point, notice.Stamp)
			}
		case NoticeClock:
			e.handleClockNotice(notice.Stamp)
		}

		e.metrics.PendingDepth(e.pending.len())
		e.drain(ctx, shutdown)
	}
}

// handleValueNotice processes a new raw input value: store it, enumerate
// dependent result points, and add each due (result, stamp) to the
// pending set.
func (e *Engine) handleValueNotice(ctx context.Context, pv value.PointValue) {
	if err := e.store.Put(ctx, []value.PointValue{pv}); err != nil {
		log.Warn("batch: store.Put for raw input failed: ", err)
	}
	e.buffer[pendingKey{point: pv.PointUUID, stamp: pv.Timestamp}] = pv

	input, ok := e.graph.GetPointByUUID(pv.PointUUID)
	if !ok {
		return
	}
	for _, rel := range input.ResultRelations() {
		if rel.Result.Dropped {
			continue
		}
		for _, stamp := range triggerStamps(pv, rel) {
			e.pending.add(rel.Result, stamp)
		}
	}
}

// triggerStamps decides the timestamps at which rel's result point must
// be recomputed in response to an arriving input value, using the
// input's sync (if any) and the result's sync (if any): a relation or
// result sync gates computation to exactly the instants it schedules
// (IsInSync), so an unsynced relation recomputes once at the input's own
// timestamp (straight pass-through), while a synced one waits for the
// input to land on a scheduled instant; periodic recomputation absent a
// fresh input is driven separately by clock notices (handleClockNotice),
// which share the same sync.
func triggerStamps(pv value.PointValue, rel *pointgraph.Relation) []temporal.Timestamp {
	sync := rel.Sync
	if sync == nil {
		sync = rel.Result.Sync
	}
	if sync == nil {
		return []temporal.Timestamp{pv.Timestamp}
	}
	if sync.IsInSync(pv.Timestamp) {
		return []temporal.Timestamp{pv.Timestamp}
	}
	return nil
}

// handleClockNotice processes a clock event: for each result point whose
// sync fires at this instant, add (point, stamp).
func (e *Engine) handleClockNotice(stamp temporal.Timestamp) {
	for _, p := range e.graph.GetPointsCollection() {
		if p.Dropped || p.Sync == nil {
			continue
		}
		if p.Sync.IsInSync(stamp) {
			e.pending.add(p, stamp)
		}
	}
}

// drain processes the pending set in ascending level order, checking for
// shutdown between entries.
func (e *Engine) drain(ctx context.Context, shutdown <-chan struct{}) {
	for _, entry := range e.pending.drainOrder() {
		select {
		case <-shutdown:
			return
		default:
		}
		e.compute(ctx, entry.point, entry.stamp)
	}
}

// compute runs the transform for a single (p, t) pending entry.
func (e *Engine) compute(ctx context.Context, p *pointgraph.Point, t temporal.Timestamp) {
	b := e.newBatchContext(ctx, p, t)

	transform, ok := p.Transform.(Transform)
	if !ok || transform == nil {
		return
	}

	result, err := transform.Apply(ctx, b)
	if err != nil {
		e.metrics.TransformFailed(p.Name)
		log.Warn("batch: transform failed for ", p.Name, " at ", t, ": ", err)
		if !failReturnsNull(p) {
			return
		}
		result = value.Null()
	}

	if result.IsNull() {
		if p.NullRemoves {
			e.emit(ctx, value.Tombstone(p.UUID, t), p)
		}
		return
	}
	e.emitValue(ctx, p, t, result)
}

func failReturnsNull(p *pointgraph.Point) bool {
	if p.Params == nil {
		return false
	}
	v, ok := p.Params.GetFirst(FailReturnsNullParam)
	if !ok {
		return false
	}
	b, _ := v.AsBool()
	return b
}

// emitValue denormalizes, encodes, filters, and emits a computed value.
// A null result bypasses the filter entirely and is handled by the
// caller before this is reached — this path only ever sees non-null
// computed values.
func (e *Engine) emitValue(ctx context.Context, p *pointgraph.Point, t temporal.Timestamp, v value.Value) {
	pv := value.PointValue{PointUUID: p.UUID, Timestamp: t, Value: v}

	codec := p.Content
	if codec == nil {
		codec = content.Identity{}
	}
	denorm, err := codec.Denormalize(pv)
	if err != nil {
		log.Warn("batch: denormalize failed for ", p.Name, ": ", err)
		return
	}
	enc, err := codec.Encode(denorm)
	if err != nil {
		log.Warn("batch: encode failed for ", p.Name, ": ", err)
		return
	}

	f := e.filters[p.UUID]
	if f == nil {
		f = filter.Disabled{}
	}
	for _, out := range f.Apply(enc) {
		e.emit(ctx, out, p)
	}
}

// emit stages a value for this batch's commit: write-through buffer,
// immediate store.Put (idempotent on (uuid, timestamp)), and the
// outbound messaging queue.
func (e *Engine) emit(ctx context.Context, pv value.PointValue, p *pointgraph.Point) {
	e.buffer[pendingKey{point: pv.PointUUID, stamp: pv.Timestamp}] = pv
	if err := e.store.Put(ctx, []value.PointValue{pv}); err != nil {
		log.Warn("batch: store.Put failed for ", p.Name, ": ", err)
	}
	e.outbox = append(e.outbox, pv)
}

// storeCommitRetries bounds the in-place retry of a failing store
// commit before the batch is left for the next commit boundary.
const storeCommitRetries = 5

// commit applies the partial-failure ordering contract: commits store
// first, messaging second. A failing store commit is retried in place
// with exponential backoff; if it still fails the buffer and outbox
// survive for the next boundary. A crash between the two commits is
// recovered at next start by redriving from the store's last committed
// timestamp per point (see recover.go).
func (e *Engine) commit(ctx context.Context) {
	start := time.Now()
	if err := e.commitStore(ctx); err != nil {
		log.Error("batch: store commit failed, batch will be retried: ", err)
		return // buffer/outbox survive for the retry
	}
	if len(e.outbox) > 0 {
		if err := e.messaging.Send(e.outbox); err != nil {
			log.Error("batch: messaging send failed, values remain in store, resync requested: ", err)
		} else if err := e.messaging.Commit(); err != nil {
			log.Error("batch: messaging commit failed, values remain in store, resync requested: ", err)
		}
	}
	e.buffer = make(map[pendingKey]value.PointValue)
	e.outbox = nil
	e.metrics.BatchCommitted(time.Since(start))
}

func (e *Engine) commitStore(ctx context.Context) error {
	backoff := 100 * time.Millisecond
	var err error
	for attempt := 0; attempt < storeCommitRetries; attempt++ {
		if err = e.store.Commit(ctx); err == nil {
			return nil
		}
		log.Warn("batch: store commit attempt failed, backing off: ", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}

func (e *Engine) newBatchContext(ctx context.Context, p *pointgraph.Point, t temporal.Timestamp) *Batch {
	rels := p.InputRelations()
	inputs := make([]resolvedInput, len(rels))
	for i, rel := range rels {
		inputs[i] = e.resolveInput(ctx, rel, t)
	}
	return &Batch{engine: e, point: p, stamp: t, inputs: inputs}
}

// resolveInput fetches an input value either from the write-through
// buffer (produced earlier in this batch) or from the store, then
// normalizes it through the input point's content codec.
func (e *Engine) resolveInput(ctx context.Context, rel *pointgraph.Relation, t temporal.Timestamp) resolvedInput {
	in := rel.Input
	var pv value.PointValue
	var found bool

	if buffered, ok := e.buffer[pendingKey{point: in.UUID, stamp: t}]; ok {
		pv, found = buffered, true
	} else if sv, ok, err := e.store.GetLatest(ctx, in.UUID, t); err == nil && ok {
		pv, found = sv, true
	}
	if !found {
		return resolvedInput{point: in, ok: false}
	}

	codec := in.Content
	if codec == nil {
		codec = content.Identity{}
	}
	norm, err := codec.Normalize(pv)
	if err != nil {
		log.Warn("batch: normalize failed for input ", in.Name, ": ", err)
		return resolvedInput{point: in, ok: false}
	}
	return resolvedInput{point: in, value: norm.Value, ts: norm.Timestamp, ok: true}
}
