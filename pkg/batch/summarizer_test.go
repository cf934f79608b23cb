// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package batch

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xapiens/RVPF-sub009/pkg/pointgraph"
	"github.com/xapiens/RVPF-sub009/pkg/temporal"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

const (
	rsdInitial = "0.0 :#1= #2="
	rsdStep    = "$ #1 + #1= $ : * #2 + #2="
	rsdFinal   = "#1 0? if 0.0 else { #2 $# * #1 : * - abs $# : -- * / sqrt #1 $# / abs / }"
)

// runRSD feeds samples through the RSD summarizer over a one-hour window
// ending at stamp and returns the folded result.
func runRSD(t *testing.T, samples []float64) float64 {
	t.Helper()

	g := pointgraph.NewGraph()
	source := pointgraph.NewPoint(uuid.New(), "SOURCE", 0)
	result := pointgraph.NewPoint(uuid.New(), "RSD", 1)
	require.NoError(t, g.Add(source))
	require.NoError(t, g.Add(result))
	require.NoError(t, g.Freeze())

	store := newMemStore()
	stamp := temporal.FromMillis(1_700_000_000_000)
	window := temporal.Elapsed(temporal.UnitsPerHour)
	ctx := context.Background()

	vals := make([]value.PointValue, len(samples))
	for i, s := range samples {
		vals[i] = value.PointValue{
			PointUUID: source.UUID,
			Timestamp: stamp.BeforeElapsed(temporal.Elapsed(int64(len(samples)-i) * temporal.UnitsPerSecond)),
			Value:     value.Double(s),
		}
	}
	require.NoError(t, store.Put(ctx, vals))

	tr, err := NewSummarizerTransform("rsd", source.UUID, window, rsdInitial, rsdStep, rsdFinal)
	require.NoError(t, err)
	result.Transform = tr

	e := NewEngine(Config{Graph: g, Store: store, Messaging: &memMessaging{}})
	b := e.newBatchContext(ctx, result, stamp)

	out, err := tr.Apply(ctx, b)
	require.NoError(t, err)
	f, ok := out.AsFloat64()
	require.True(t, ok)
	return f
}

// TestSummarizerRSDFiniteAndPositive folds 100 uniform samples from
// U(-0.5, 0.5) through the relative-standard-deviation summarizer and
// checks the output is finite and positive, and that the same stream
// summarized twice agrees to float32 precision.
func TestSummarizerRSDFiniteAndPositive(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = rng.Float64() - 0.5
	}

	first := runRSD(t, samples)
	assert.False(t, math.IsNaN(first) || math.IsInf(first, 0))
	assert.Greater(t, first, 0.0)

	second := runRSD(t, samples)
	assert.InDelta(t, first, second, math.Abs(first)*1e-6)
}

// TestSummarizerEmptyWindowYieldsZeroBranch checks the final program's
// zero-sum guard: with no samples at all the fold takes the `if` branch
// and produces 0.0 instead of dividing by a zero count.
func TestSummarizerEmptyWindowYieldsZeroBranch(t *testing.T) {
	out := runRSD(t, nil)
	assert.Equal(t, 0.0, out)
}
