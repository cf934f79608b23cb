// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filter

import (
	"fmt"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// ErrFilterConfig is returned when a filter's configured parameters are
// unusable; the loader rejects the owning point.
var ErrFilterConfig = fmt.Errorf("filter: bad filter configuration")

// StepConfig parameterizes the step filter's four sub-behaviors:
// deadband, floor, ceiling, and the force-emit time limit.
type StepConfig struct {
	DeadbandGap   float64
	DeadbandRatio float64
	FloorGap      float64
	FloorRatio    float64
	CeilingGap    float64
	CeilingRatio  float64
	TrimUnit      temporal.Elapsed    // 0 disables timestamp trimming
	TimeLimit     temporal.Elapsed    // 0 disables the force-emit time limit
}

// Validate rejects configurations no stream could satisfy: negative
// gaps or ratios, and a negative trim unit or time limit.
func (c StepConfig) Validate() error {
	for _, v := range []float64{
		c.DeadbandGap, c.DeadbandRatio,
		c.FloorGap, c.FloorRatio,
		c.CeilingGap, c.CeilingRatio,
	} {
		if v < 0 {
			return fmt.Errorf("%w: negative gap or ratio", ErrFilterConfig)
		}
	}
	if c.TrimUnit < 0 || c.TimeLimit < 0 {
		return fmt.Errorf("%w: negative trim unit or time limit", ErrFilterConfig)
	}
	return nil
}

// Step is the most common filter: deadband suppression plus
// floor/ceiling step-deviation filtering, optional timestamp trimming, and
// a force-emit time limit.
type Step struct {
	cfg StepConfig

	hasPrevious bool
	previous    value.PointValue
	lastEmitted temporal.Timestamp
}

// NewStep constructs a Step filter. lastEmitted seeds the force-emit
// clock; the first Apply call always forwards its value and resets that
// clock to the value's own timestamp.
func NewStep(cfg StepConfig, lastEmitted temporal.Timestamp) *Step {
	return &Step{cfg: cfg, lastEmitted: lastEmitted}
}

// Apply implements Filter.
func (s *Step) Apply(incoming value.PointValue) []value.PointValue {
	trimmed := s.trim(incoming)

	if !s.hasPrevious {
		s.hasPrevious = true
		s.previous = trimmed
		s.lastEmitted = trimmed.Timestamp
		return []value.PointValue{trimmed}
	}

	if s.forceEmitDue(trimmed) {
		s.previous = trimmed
		s.lastEmitted = trimmed.Timestamp
		return []value.PointValue{trimmed}
	}

	if s.suppressedByDeadband(trimmed) {
		return nil
	}
	if s.suppressedByStep(trimmed) {
		return nil
	}

	s.previous = trimmed
	s.lastEmitted = trimmed.Timestamp
	return []value.PointValue{trimmed}
}

func (s *Step) trim(pv value.PointValue) value.PointValue {
	if s.cfg.TrimUnit <= 0 {
		return pv
	}
	pv.Timestamp = temporal.Timestamp(s.cfg.TrimUnit.Floored(int64(pv.Timestamp)))
	return pv
}

func (s *Step) forceEmitDue(pv value.PointValue) bool {
	if s.cfg.TimeLimit <= 0 {
		return false
	}
	return pv.Timestamp.SubElapsed(s.lastEmitted) >= s.cfg.TimeLimit
}

// suppressedByDeadband drops incoming if
// |incoming.value - previous.value| <= deadbandGap + deadbandRatio*|previous.value|.
func (s *Step) suppressedByDeadband(pv value.PointValue) bool {
	if s.cfg.DeadbandGap == 0 && s.cfg.DeadbandRatio == 0 {
		return false
	}
	cur, ok1 := pv.Value.AsFloat64()
	prev, ok2 := s.previous.Value.AsFloat64()
	if !ok1 || !ok2 {
		return false
	}
	delta := cur - prev
	if delta < 0 {
		delta = -delta
	}
	threshold := s.cfg.DeadbandGap + s.cfg.DeadbandRatio*absFloat(prev)
	return delta <= threshold
}

// suppressedByStep applies the floor/ceiling gap+ratio filtering for small
// deviations relative to a step down or up.
func (s *Step) suppressedByStep(pv value.PointValue) bool {
	cur, ok1 := pv.Value.AsFloat64()
	prev, ok2 := s.previous.Value.AsFloat64()
	if !ok1 || !ok2 {
		return false
	}
	if cur < prev {
		if s.cfg.FloorGap == 0 && s.cfg.FloorRatio == 0 {
			return false
		}
		threshold := s.cfg.FloorGap + s.cfg.FloorRatio*absFloat(prev)
		return (prev - cur) <= threshold
	}
	if cur > prev {
		if s.cfg.CeilingGap == 0 && s.cfg.CeilingRatio == 0 {
			return false
		}
		threshold := s.cfg.CeilingGap + s.cfg.CeilingRatio*absFloat(prev)
		return (cur - prev) <= threshold
	}
	return false
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
