// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pointgraph

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPoint(name string, level int) *Point {
	return NewPoint(uuid.New(), name, level)
}

func TestGraphAddAndLookup(t *testing.T) {
	g := NewGraph()
	p := newTestPoint("Temp.Sensor1", 0)
	require.NoError(t, g.Add(p))

	found, ok := g.GetPointByName("temp.sensor1")
	require.True(t, ok)
	assert.Equal(t, p.UUID, found.UUID)

	found, ok = g.GetPointByUUID(p.UUID)
	require.True(t, ok)
	assert.Equal(t, p.Name, found.Name)
}

func TestGraphRejectsDuplicateName(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.Add(newTestPoint("Dup", 0)))
	err := g.Add(newTestPoint("DUP", 0))
	require.ErrorIs(t, err, ErrDuplicatePoint)
}

func TestGraphValidatesLevelOrdering(t *testing.T) {
	g := NewGraph()
	in := newTestPoint("raw", 0)
	out := newTestPoint("derived", 0) // same level as input: invalid
	require.NoError(t, g.Add(in))
	require.NoError(t, g.Add(out))
	require.NoError(t, g.AddRelation(&Relation{Input: in, Result: out}))

	assert.False(t, g.ValidatePointsRelationships())
	err := g.Freeze()
	require.ErrorIs(t, err, ErrLevelViolation)
}

func TestGraphDetectsCycle(t *testing.T) {
	g := NewGraph()
	a := newTestPoint("a", 0)
	b := newTestPoint("b", 1)
	c := newTestPoint("c", 2)
	require.NoError(t, g.Add(a))
	require.NoError(t, g.Add(b))
	require.NoError(t, g.Add(c))
	require.NoError(t, g.AddRelation(&Relation{Input: a, Result: b}))
	require.NoError(t, g.AddRelation(&Relation{Input: b, Result: c}))
	// Closing the loop through d (level 0) breaks the strict level order,
	// so Freeze fails on its level check; detectCycle is run directly to
	// check that the cycle itself is found.
	d := newTestPoint("d", 0)
	require.NoError(t, g.Add(d))
	require.NoError(t, g.AddRelation(&Relation{Input: c, Result: d}))
	require.NoError(t, g.AddRelation(&Relation{Input: d, Result: a}))

	err := g.Freeze()
	assert.Error(t, err)
	assert.ErrorIs(t, detectCycle(g.byUUID), ErrCycle)
}

func TestGraphFreezeRejectsFurtherMutation(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.Add(newTestPoint("solo", 0)))
	require.NoError(t, g.Freeze())

	err := g.Add(newTestPoint("late", 0))
	require.ErrorIs(t, err, ErrFrozen)
}

func TestPointResultsDeduplicatesAcrossParallelRelations(t *testing.T) {
	g := NewGraph()
	in := newTestPoint("in", 0)
	out := newTestPoint("out", 1)
	require.NoError(t, g.Add(in))
	require.NoError(t, g.Add(out))
	require.NoError(t, g.AddRelation(&Relation{Input: in, Result: out}))
	require.NoError(t, g.AddRelation(&Relation{Input: in, Result: out}))

	results := in.Results()
	assert.Len(t, results, 1)
}

func TestPointAttributesByUsage(t *testing.T) {
	p := newTestPoint("p", 0)
	p.SetAttribute("unit", "celsius")
	p.SetAttribute("unit", "kelvin")
	p.SetAttribute("site", "fau")

	assert.Equal(t, []string{"celsius", "kelvin"}, p.Attributes("unit"))
	assert.Equal(t, []string{"fau"}, p.Attributes("site"))
	assert.Nil(t, p.Attributes("missing"))
}

func TestAddRelationRejectsUnknownEndpoint(t *testing.T) {
	g := NewGraph()
	known := newTestPoint("known", 0)
	require.NoError(t, g.Add(known))
	unknown := newTestPoint("unknown", 1)

	err := g.AddRelation(&Relation{Input: known, Result: unknown})
	require.ErrorIs(t, err, ErrUnknownEndpoint)
}
