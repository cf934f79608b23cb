// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

import (
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

// TestWireRoundTrip checks that for every PointValue v with a lossless
// codec, decode(encode(v)) = v.
func TestWireRoundTrip(t *testing.T) {
	pointID := uuid.New()
	ts := temporal.FromMillis(1_700_000_000_000)

	dict := NewDict()
	dict.Set("a", Long(1))
	dict.Set("b", String("two"))

	cases := map[string]Value{
		"null":    Null(),
		"boolean": Boolean(true),
		"long":    Long(-42),
		"double":  Double(3.14159),
		"bigint":  BigInteger(big.NewInt(-123456789)),
		"bigdec":  BigDecimalValue(BigDecimal{Unscaled: big.NewInt(31415), Scale: 4}),
		"rational":    RationalValue(NewRational(-3, 4)),
		"bigrational": BigRationalValue(big.NewRat(-7, 9)),
		"complexCartesian": ComplexValue(NewComplexCartesian(1.5, -2.5)),
		"complexPolar":     ComplexValue(NewComplexPolar(2.0, 0.5)),
		"datetime":         DateTime(ts),
		"elapsed":          ElapsedTime(temporal.Elapsed(temporal.UnitsPerHour)),
		"string":           String("hello, world"),
		"bytes":            Bytes([]byte{0, 1, 2, 3, 255}),
		"tuple":            Tuple(Long(1), String("x"), Boolean(false)),
		"dict":             DictValue(dict),
	}

	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			pv := PointValue{PointUUID: pointID, Timestamp: ts, State: "ok", Value: v}
			encoded := EncodePointValue(pv)
			decoded, err := DecodePointValue(encoded)
			require.NoError(t, err)

			assert.Equal(t, pv.PointUUID, decoded.PointUUID)
			assert.Equal(t, pv.Timestamp, decoded.Timestamp)
			assert.Equal(t, pv.State, decoded.State)
			assert.True(t, Equal(v, decoded.Value), "got %s, want %s", decoded.Value, v)
		})
	}
}

func TestWireRoundTripNestedTupleOfDicts(t *testing.T) {
	inner := NewDict()
	inner.Set("x", Double(2.5))
	outer := Tuple(DictValue(inner), Long(7), Tuple(String("nested")))

	pv := PointValue{PointUUID: uuid.New(), Timestamp: temporal.FromMillis(1), Value: outer}
	encoded := EncodePointValue(pv)
	decoded, err := DecodePointValue(encoded)
	require.NoError(t, err)
	assert.True(t, Equal(outer, decoded.Value))
}

func TestDecodePointValueRejectsTruncatedData(t *testing.T) {
	_, err := DecodePointValue([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrMalformedWire)
}

func TestDecodePointValueRejectsUnknownTag(t *testing.T) {
	pv := PointValue{PointUUID: uuid.New(), Timestamp: temporal.FromMillis(1), Value: Long(1)}
	encoded := EncodePointValue(pv)
	encoded[len(encoded)-9] = 0xFF // corrupt the tag byte preceding the int64 payload
	_, err := DecodePointValue(encoded)
	assert.Error(t, err)
}
