// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filter

import (
	"golang.org/x/time/rate"

	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// RateLimit drops incoming values that arrive faster than the configured
// rate, independent of their numeric content. Unlike Step it has no
// notion of deadband; it exists for points whose update cadence, not
// value, needs bounding (e.g. noisy high-frequency raw inputs).
type RateLimit struct {
	limiter *rate.Limiter
}

// NewRateLimit builds a RateLimit filter allowing at most eventsPerSecond
// values per second on average, with a burst of burst values.
func NewRateLimit(eventsPerSecond float64, burst int) *RateLimit {
	return &RateLimit{limiter: rate.NewLimiter(rate.Limit(eventsPerSecond), burst)}
}

func (f *RateLimit) Apply(incoming value.PointValue) []value.PointValue {
	if !f.limiter.Allow() {
		return nil
	}
	return []value.PointValue{incoming}
}
