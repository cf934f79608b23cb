// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package batch

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xapiens/RVPF-sub009/pkg/filter"
	"github.com/xapiens/RVPF-sub009/pkg/pointgraph"
	"github.com/xapiens/RVPF-sub009/pkg/temporal"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// memStore is a minimal in-memory Store for engine tests.
type memStore struct {
	byKey   map[pendingKey]value.PointValue
	commits int
}

func newMemStore() *memStore { return &memStore{byKey: make(map[pendingKey]value.PointValue)} }

func (s *memStore) Put(_ context.Context, values []value.PointValue) error {
	for _, v := range values {
		s.byKey[pendingKey{point: v.PointUUID, stamp: v.Timestamp}] = v
	}
	return nil
}

func (s *memStore) GetRange(_ context.Context, point uuid.UUID, interval temporal.Interval, _ int) ([]value.PointValue, error) {
	var out []value.PointValue
	for k, v := range s.byKey {
		if k.point == point && interval.Contains(k.stamp) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *memStore) GetLatest(_ context.Context, point uuid.UUID, atOrBefore temporal.Timestamp) (value.PointValue, bool, error) {
	var best value.PointValue
	found := false
	for k, v := range s.byKey {
		if k.point != point || k.stamp.After(atOrBefore) {
			continue
		}
		if !found || k.stamp.After(best.Timestamp) {
			best, found = v, true
		}
	}
	return best, found, nil
}

func (s *memStore) Purge(_ context.Context, point uuid.UUID, interval temporal.Interval) (int, error) {
	n := 0
	for k := range s.byKey {
		if k.point == point && interval.Contains(k.stamp) {
			delete(s.byKey, k)
			n++
		}
	}
	return n, nil
}

func (s *memStore) Commit(_ context.Context) error {
	s.commits++
	return nil
}

type memMessaging struct {
	sent    [][]value.PointValue
	commits int
}

func (m *memMessaging) Send(values []value.PointValue) error {
	m.sent = append(m.sent, values)
	return nil
}

func (m *memMessaging) Commit() error {
	m.commits++
	return nil
}

// alwaysNullTransform is a minimal Transform for exercising nullRemoves
// without needing an RPN literal for null.
type alwaysNullTransform struct{}

func (alwaysNullTransform) Name() string { return "always-null" }
func (alwaysNullTransform) Apply(context.Context, *Batch) (value.Value, error) {
	return value.Null(), nil
}

func buildGraph(t *testing.T) (*pointgraph.Graph, *pointgraph.Point, *pointgraph.Point) {
	t.Helper()
	g := pointgraph.NewGraph()
	a := pointgraph.NewPoint(uuid.New(), "A", 0)
	b := pointgraph.NewPoint(uuid.New(), "B", 1)
	tr, err := NewRPNTransform("double", "$1 2 *")
	require.NoError(t, err)
	b.Transform = tr
	require.NoError(t, g.Add(a))
	require.NoError(t, g.Add(b))
	require.NoError(t, g.AddRelation(&pointgraph.Relation{Input: a, Result: b}))
	require.NoError(t, g.Freeze())
	return g, a, b
}

// TestBatchPropagation checks that injecting A=5 at T0 produces B=10 at
// T0 after one batch commit. Drives the engine's
// internal steps directly (one notice, then a NULL commit boundary)
// rather than through Run's blocking receive loop, since this package's
// Source has no in-memory queue implementation of its own.
func TestBatchPropagation(t *testing.T) {
	g, a, b := buildGraph(t)
	store := newMemStore()
	messaging := &memMessaging{}
	t0 := temporal.FromMillis(1_700_000_000_000)

	e := NewEngine(Config{Graph: g, Store: store, Messaging: messaging})
	ctx := context.Background()

	e.handleValueNotice(ctx, value.PointValue{PointUUID: a.UUID, Timestamp: t0, Value: value.Long(5)})
	e.drain(ctx, nil)
	e.commit(ctx)

	got, ok := store.byKey[pendingKey{point: b.UUID, stamp: t0}]
	require.True(t, ok, "B should have a computed value at t0")
	n, ok := got.Value.Long()
	require.True(t, ok)
	assert.Equal(t, int64(10), n)
	assert.Equal(t, 1, store.commits)
	assert.Len(t, messaging.sent, 1)
}

// TestPendingDrainLevelOrder checks the drain order contract: strictly
// ascending point level, stable insertion order within a level.
func TestPendingDrainLevelOrder(t *testing.T) {
	s := newPendingSet()
	t0 := temporal.FromMillis(1000)

	l2 := pointgraph.NewPoint(uuid.New(), "L2", 2)
	l0a := pointgraph.NewPoint(uuid.New(), "L0A", 0)
	l1 := pointgraph.NewPoint(uuid.New(), "L1", 1)
	l0b := pointgraph.NewPoint(uuid.New(), "L0B", 0)

	s.add(l2, t0)
	s.add(l0a, t0)
	s.add(l1, t0)
	s.add(l0b, t0)
	s.add(l0a, t0) // duplicate collapses, keeping the first seq

	var names []string
	for _, e := range s.drainOrder() {
		names = append(names, e.point.Name)
	}
	assert.Equal(t, []string{"L0A", "L0B", "L1", "L2"}, names)
}

// TestNullRemovesBypassesFilter checks that a null result on a
// nullRemoves point emits a tombstone even though the point's filter
// (a zero-rate limiter) drops every value routed through it.
func TestNullRemovesBypassesFilter(t *testing.T) {
	g := pointgraph.NewGraph()
	p := pointgraph.NewPoint(uuid.New(), "P", 1)
	p.NullRemoves = true
	p.Transform = alwaysNullTransform{}
	require.NoError(t, g.Add(p))
	require.NoError(t, g.Freeze())

	store := newMemStore()
	e := NewEngine(Config{
		Graph:     g,
		Store:     store,
		Messaging: &memMessaging{},
		Filters:   map[uuid.UUID]filter.Filter{p.UUID: filter.NewRateLimit(0, 0)},
	})
	t0 := temporal.FromMillis(1_700_000_000_000)

	e.pending.add(p, t0)
	e.drain(context.Background(), nil)

	got, ok := store.byKey[pendingKey{point: p.UUID, stamp: t0}]
	require.True(t, ok)
	assert.True(t, got.Deleted)
}
