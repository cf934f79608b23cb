// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

func TestSetGetPreservesInsertionOrder(t *testing.T) {
	p := New()
	require.NoError(t, p.Set("b", String("two")))
	require.NoError(t, p.Set("a", String("one")))
	require.NoError(t, p.Add("b", Number(2)))

	assert.Equal(t, []string{"b", "a"}, p.Keys())

	vals, ok := p.Get("b")
	require.True(t, ok)
	require.Len(t, vals, 2)
	s, _ := vals[0].AsString()
	assert.Equal(t, "two", s)
	n, _ := vals[1].AsNumber()
	assert.Equal(t, 2.0, n)
}

func TestGetFallsThroughToDefaultsChain(t *testing.T) {
	grandparent := New()
	require.NoError(t, grandparent.Set("root", Bool(true)))
	parent := New()
	require.NoError(t, parent.Set("shared", Number(1)))
	require.NoError(t, parent.WithDefaults(grandparent))
	child := New()
	require.NoError(t, child.Set("shared", Number(2)))
	require.NoError(t, child.WithDefaults(parent))

	// A local key shadows the chain; an absent one falls all the way up.
	v, ok := child.GetFirst("shared")
	require.True(t, ok)
	n, _ := v.AsNumber()
	assert.Equal(t, 2.0, n)

	v, ok = child.GetFirst("root")
	require.True(t, ok)
	b, _ := v.AsBool()
	assert.True(t, b)
}

func TestWithDefaultsRejectsCycle(t *testing.T) {
	a := New()
	b := New()
	require.NoError(t, b.WithDefaults(a))
	err := a.WithDefaults(b)
	require.ErrorIs(t, err, ErrDefaultsCycle)
}

func TestFreezeRejectsMutation(t *testing.T) {
	p := New()
	require.NoError(t, p.Set("k", String("v")))
	p.Freeze()
	require.True(t, p.IsFrozen())

	assert.ErrorIs(t, p.Set("k", String("w")), ErrFrozen)
	assert.ErrorIs(t, p.Add("k", String("w")), ErrFrozen)
	assert.ErrorIs(t, p.WithDefaults(New()), ErrFrozen)

	// Reads still work after freezing.
	v, ok := p.GetFirst("k")
	require.True(t, ok)
	s, _ := v.AsString()
	assert.Equal(t, "v", s)
}

func TestElapsedPrimitiveRoundTrips(t *testing.T) {
	e := temporal.Elapsed(90 * temporal.UnitsPerSecond)
	p := New()
	require.NoError(t, p.Set("period", ElapsedValue(e)))

	v, ok := p.GetFirst("period")
	require.True(t, ok)
	got, ok := v.AsElapsed()
	require.True(t, ok)
	assert.Equal(t, e, got)
}
