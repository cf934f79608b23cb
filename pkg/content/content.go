// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package content implements the content-codec layer: four pure
// functions converting a PointValue between its external wire shape and
// its internal/normalized representation. The core never defines a unit
// catalog itself — it only defines this interface, plus a couple of
// concrete, commonly needed codecs grounded on the teacher's
// line-protocol decoder.
package content

import (
	"fmt"

	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// Codec is the four-function content contract. Encoding must
// round-trip the output of Decode; Decode is permitted to be lenient
// (accept more than Encode ever produces).
type Codec interface {
	// Decode converts an externally-received PointValue into its internal
	// representation.
	Decode(pv value.PointValue) (value.PointValue, error)

	// Encode converts an internal PointValue back into the external
	// representation; must round-trip Decode's output.
	Encode(pv value.PointValue) (value.PointValue, error)

	// Normalize converts an internal PointValue into normalized
	// (unit-converted) form for use by the expression engine.
	Normalize(pv value.PointValue) (value.PointValue, error)

	// Denormalize is Normalize's inverse, producing an internal value
	// suitable for a subsequent Encode.
	Denormalize(pv value.PointValue) (value.PointValue, error)
}

// Identity is the no-op codec: all four operations pass the value through
// unchanged. Points with no configured content use this.
type Identity struct{}

func (Identity) Decode(pv value.PointValue) (value.PointValue, error)       { return pv, nil }
func (Identity) Encode(pv value.PointValue) (value.PointValue, error)       { return pv, nil }
func (Identity) Normalize(pv value.PointValue) (value.PointValue, error)   { return pv, nil }
func (Identity) Denormalize(pv value.PointValue) (value.PointValue, error) { return pv, nil }

// LinearScale is a unit-conversion codec: normalize maps external values
// through `(external - offset) / scale`, denormalize through
// `normalized*scale + offset`. Decode/Encode are the identity — the
// scaling only happens at the normalize boundary, matching the teacher's
// metric-store convention of keeping stored samples in their native unit
// and converting only at query/derive time.
type LinearScale struct {
	Scale  float64
	Offset float64
}

func (c LinearScale) Decode(pv value.PointValue) (value.PointValue, error) { return pv, nil }
func (c LinearScale) Encode(pv value.PointValue) (value.PointValue, error) { return pv, nil }

func (c LinearScale) Normalize(pv value.PointValue) (value.PointValue, error) {
	f, ok := pv.Value.AsFloat64()
	if !ok {
		return pv, nil
	}
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	pv.Value = value.Double((f - c.Offset) / scale)
	return pv, nil
}

func (c LinearScale) Denormalize(pv value.PointValue) (value.PointValue, error) {
	f, ok := pv.Value.AsFloat64()
	if !ok {
		return pv, nil
	}
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	pv.Value = value.Double(f*scale + c.Offset)
	return pv, nil
}

// ErrUnsupportedValue is returned by codecs that only accept specific
// Value kinds when given something else.
var ErrUnsupportedValue = fmt.Errorf("content: unsupported value kind")
