// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

func pv(ms int64, v float64) value.PointValue {
	return value.PointValue{Timestamp: temporal.FromMillis(ms), Value: value.Double(v)}
}

func TestDisabledForwardsEverything(t *testing.T) {
	f := Disabled{}
	out := f.Apply(pv(0, 1))
	require.Len(t, out, 1)
}

func TestStepDeadbandSuppressesSmallChange(t *testing.T) {
	s := NewStep(StepConfig{DeadbandGap: 0.5}, temporal.InvalidTimestamp)
	first := s.Apply(pv(0, 100))
	require.Len(t, first, 1)

	suppressed := s.Apply(pv(1000, 100.2))
	assert.Empty(t, suppressed)

	passed := s.Apply(pv(2000, 101))
	require.Len(t, passed, 1)
}

func TestStepDeadbandRatioScalesWithPrevious(t *testing.T) {
	s := NewStep(StepConfig{DeadbandRatio: 0.1}, temporal.InvalidTimestamp)
	require.Len(t, s.Apply(pv(0, 100)), 1)
	assert.Empty(t, s.Apply(pv(1000, 105))) // within 10% of 100
	require.Len(t, s.Apply(pv(2000, 120)), 1)
}

func TestStepFloorSuppressesSmallDownwardStep(t *testing.T) {
	s := NewStep(StepConfig{FloorGap: 1}, temporal.InvalidTimestamp)
	require.Len(t, s.Apply(pv(0, 10)), 1)
	assert.Empty(t, s.Apply(pv(1000, 9.5)))
	require.Len(t, s.Apply(pv(2000, 7)), 1)
}

func TestStepCeilingSuppressesSmallUpwardStep(t *testing.T) {
	s := NewStep(StepConfig{CeilingGap: 1}, temporal.InvalidTimestamp)
	require.Len(t, s.Apply(pv(0, 10)), 1)
	assert.Empty(t, s.Apply(pv(1000, 10.5)))
	require.Len(t, s.Apply(pv(2000, 13)), 1)
}

func TestStepTrimRoundsTimestampDown(t *testing.T) {
	s := NewStep(StepConfig{TrimUnit: temporal.Elapsed(temporal.UnitsPerSecond)}, temporal.InvalidTimestamp)
	out := s.Apply(value.PointValue{Timestamp: temporal.FromMillis(1999), Value: value.Long(1)})
	require.Len(t, out, 1)
	assert.Equal(t, temporal.FromMillis(1000), out[0].Timestamp)
}

func TestStepTimeLimitForceEmitsEvenWithinDeadband(t *testing.T) {
	s := NewStep(StepConfig{
		DeadbandGap: 1000, // would otherwise suppress everything
		TimeLimit:   temporal.Elapsed(temporal.UnitsPerSecond),
	}, temporal.InvalidTimestamp)

	require.Len(t, s.Apply(pv(0, 10)), 1)
	assert.Empty(t, s.Apply(pv(500, 10.01)))
	forced := s.Apply(pv(2000, 10.01))
	require.Len(t, forced, 1)
}

// TestStepDeadbandStream walks a whole stream: with deadbandGap=1.0 and
// previous value 10.0, the inputs 10.3, 10.9, 11.5, 11.5 forward only the
// first 11.5 — the first two fall within the deadband and the fourth
// duplicates the third.
func TestStepDeadbandStream(t *testing.T) {
	s := NewStep(StepConfig{DeadbandGap: 1.0}, temporal.InvalidTimestamp)
	require.Len(t, s.Apply(pv(0, 10.0)), 1)

	var forwarded []float64
	for i, v := range []float64{10.3, 10.9, 11.5, 11.5} {
		for _, out := range s.Apply(pv(int64(i+1)*1000, v)) {
			f, _ := out.Value.AsFloat64()
			forwarded = append(forwarded, f)
		}
	}
	assert.Equal(t, []float64{11.5}, forwarded)
}

func TestStepConfigValidateRejectsNegativeParameters(t *testing.T) {
	assert.NoError(t, StepConfig{DeadbandGap: 1}.Validate())
	assert.ErrorIs(t, StepConfig{DeadbandGap: -1}.Validate(), ErrFilterConfig)
	assert.ErrorIs(t, StepConfig{CeilingRatio: -0.5}.Validate(), ErrFilterConfig)
	assert.ErrorIs(t, StepConfig{TrimUnit: -1}.Validate(), ErrFilterConfig)
}

func TestRateLimitDropsBurstsAboveConfiguredRate(t *testing.T) {
	f := NewRateLimit(1000, 1)
	first := f.Apply(pv(0, 1))
	require.Len(t, first, 1)

	second := f.Apply(pv(0, 2))
	assert.Empty(t, second)
}
