// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package temporal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElapsedAddCommutative(t *testing.T) {
	e1 := ElapsedFromMillis(1500)
	e2 := ElapsedFromMillis(2500)
	assert.Equal(t, e1.Add(e2), e2.Add(e1))
}

func TestElapsedSubAbsoluteDifference(t *testing.T) {
	e1 := ElapsedFromMillis(5000)
	e2 := ElapsedFromMillis(1500)
	assert.Equal(t, e1.Sub(e2), e2.Sub(e1))
	assert.Equal(t, ElapsedFromMillis(3500), e1.Sub(e2))
}

func TestElapsedInfinityArithmetic(t *testing.T) {
	finite := ElapsedFromMillis(100)
	assert.Equal(t, INFINITY, INFINITY.Sub(finite))
	assert.Equal(t, EMPTY, finite.Sub(INFINITY))
	assert.Equal(t, INFINITY, INFINITY.Add(finite))
}

func TestElapsedRatio(t *testing.T) {
	finite := ElapsedFromMillis(100)
	ratio := finite.Ratio(INFINITY)
	assert.Greater(t, ratio, 0.0)
	assert.Equal(t, math.SmallestNonzeroFloat64, ratio)
	assert.True(t, math.IsNaN(INFINITY.Ratio(INFINITY)))
}

func TestParseElapsedLoneIntegerIsMillis(t *testing.T) {
	e, err := ParseElapsed("1500")
	require.NoError(t, err)
	assert.Equal(t, ElapsedFromMillis(1500), e)
}

func TestParseElapsedPrefixedIntegerIsDays(t *testing.T) {
	// "P1T" disambiguates a bare day count from the lone-integer-as-ms rule;
	// the day separator is required by the elapsed grammar.
	e, err := ParseElapsed("P1T")
	require.NoError(t, err)
	assert.Equal(t, Elapsed(UnitsPerDay), e)
}

func TestParseElapsedHHMMSS(t *testing.T) {
	e, err := ParseElapsed("01:02:03")
	require.NoError(t, err)
	want := Elapsed(1*UnitsPerHour + 2*UnitsPerMinute + 3*UnitsPerSecond)
	assert.Equal(t, want, e)
}

func TestParseElapsedSecondsGrammar(t *testing.T) {
	e, err := ParseElapsed("1.500")
	require.NoError(t, err)
	assert.Equal(t, ElapsedFromMillis(1500), e)
}

func TestParseElapsedDurationGrammar(t *testing.T) {
	e, err := ParseElapsed("P1DT2H30M")
	require.NoError(t, err)
	want := Elapsed(UnitsPerDay + 2*UnitsPerHour + 30*UnitsPerMinute)
	assert.Equal(t, want, e)
}

func TestParseElapsedInvalid(t *testing.T) {
	_, err := ParseElapsed("not-a-time")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestElapsedFloored(t *testing.T) {
	period := Elapsed(UnitsPerHour)
	assert.Equal(t, int64(2*UnitsPerHour), period.Floored(2*UnitsPerHour+1234))
}
