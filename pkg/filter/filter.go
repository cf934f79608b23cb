// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package filter implements the per-point value filters: stateful
// transforms that decide which of an incoming stream of PointValues are
// actually forwarded downstream. Filters are single-threaded with respect
// to one point's stream — callers must not invoke a single Filter's Apply
// concurrently.
package filter

import (
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// Filter is `(previous?, incoming) -> filtered[]`. Implementations hold
// the "previous" state themselves between calls.
type Filter interface {
	Apply(incoming value.PointValue) []value.PointValue
}

// Disabled forwards every value unconditionally.
type Disabled struct{}

func (Disabled) Apply(incoming value.PointValue) []value.PointValue {
	return []value.PointValue{incoming}
}
