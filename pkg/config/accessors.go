// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import "github.com/xapiens/RVPF-sub009/pkg/temporal"

// Recognized point-filter configuration keys.
const (
	StepSizeParam            = "STEP_SIZE_PARAM"
	DeadbandGapParam         = "DEADBAND_GAP_PARAM"
	DeadbandRatioParam       = "DEADBAND_RATIO_PARAM"
	FloorGapParam            = "FLOOR_GAP_PARAM"
	FloorRatioParam          = "FLOOR_RATIO_PARAM"
	CeilingGapParam          = "CEILING_GAP_PARAM"
	CeilingRatioParam        = "CEILING_RATIO_PARAM"
	FilterStampTrimUnitParam = "FILTER_STAMP_TRIM_UNIT_PARAM"
	FilterTimeLimitParam     = "FILTER_TIME_LIMIT_PARAM"
	NullRemovesParam         = "NULL_REMOVES_PARAM"
	VolatileParam            = "VOLATILE_PARAM"
	RespectVersionParam      = "RESPECT_VERSION_PARAM"
	FailReturnsNullParam     = "FAIL_RETURNS_NULL_PARAM"
)

func (g *Group) float(key string, def float64) float64 {
	if v, ok := g.GetFirst(key); ok {
		if n, ok := v.AsNumber(); ok {
			return n
		}
	}
	return def
}

func (g *Group) boolean(key string, def bool) bool {
	if v, ok := g.GetFirst(key); ok {
		if b, ok := v.AsBool(); ok {
			return b
		}
	}
	return def
}

// StepSize returns STEP_SIZE_PARAM, defaulting to 0 (no step quantization).
func (g *Group) StepSize() float64 { return g.float(StepSizeParam, 0) }

// DeadbandGap returns DEADBAND_GAP_PARAM, defaulting to 0 (disabled).
func (g *Group) DeadbandGap() float64 { return g.float(DeadbandGapParam, 0) }

// DeadbandRatio returns DEADBAND_RATIO_PARAM, defaulting to 0 (disabled).
func (g *Group) DeadbandRatio() float64 { return g.float(DeadbandRatioParam, 0) }

// FloorGap returns FLOOR_GAP_PARAM, defaulting to 0 (disabled).
func (g *Group) FloorGap() float64 { return g.float(FloorGapParam, 0) }

// FloorRatio returns FLOOR_RATIO_PARAM, defaulting to 0 (disabled).
func (g *Group) FloorRatio() float64 { return g.float(FloorRatioParam, 0) }

// CeilingGap returns CEILING_GAP_PARAM, defaulting to 0 (disabled).
func (g *Group) CeilingGap() float64 { return g.float(CeilingGapParam, 0) }

// CeilingRatio returns CEILING_RATIO_PARAM, defaulting to 0 (disabled).
func (g *Group) CeilingRatio() float64 { return g.float(CeilingRatioParam, 0) }

// FilterTimeLimit returns FILTER_TIME_LIMIT_PARAM as an Elapsed, or
// ok=false if unset or not an elapsed value.
func (g *Group) FilterTimeLimit() (e temporal.Elapsed, ok bool) {
	v, ok := g.GetFirst(FilterTimeLimitParam)
	if !ok {
		return temporal.EMPTY, false
	}
	return v.AsElapsed()
}

// NullRemoves returns NULL_REMOVES_PARAM, defaulting to false.
func (g *Group) NullRemoves() bool { return g.boolean(NullRemovesParam, false) }

// Volatile returns VOLATILE_PARAM, defaulting to false.
func (g *Group) Volatile() bool { return g.boolean(VolatileParam, false) }

// RespectVersion returns RESPECT_VERSION_PARAM, defaulting to false.
func (g *Group) RespectVersion() bool { return g.boolean(RespectVersionParam, false) }

// FailReturnsNull returns FAIL_RETURNS_NULL_PARAM, defaulting to false:
// by default a failed transform suppresses emission rather than emitting
// null.
func (g *Group) FailReturnsNull() bool { return g.boolean(FailReturnsNullParam, false) }
