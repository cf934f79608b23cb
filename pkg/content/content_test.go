// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package content

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

func TestIdentityPassesThrough(t *testing.T) {
	pv := value.PointValue{PointUUID: uuid.New(), Timestamp: temporal.FromMillis(1), Value: value.Long(7)}
	c := Identity{}

	decoded, err := c.Decode(pv)
	require.NoError(t, err)
	assert.True(t, value.Equal(pv.Value, decoded.Value))

	encoded, err := c.Encode(pv)
	require.NoError(t, err)
	assert.True(t, value.Equal(pv.Value, encoded.Value))
}

func TestLinearScaleRoundTrips(t *testing.T) {
	c := LinearScale{Scale: 2, Offset: 10}
	pv := value.PointValue{Value: value.Double(110)}

	normalized, err := c.Normalize(pv)
	require.NoError(t, err)
	f, ok := normalized.Value.AsFloat64()
	require.True(t, ok)
	assert.Equal(t, 50.0, f)

	denormalized, err := c.Denormalize(normalized)
	require.NoError(t, err)
	f, ok = denormalized.Value.AsFloat64()
	require.True(t, ok)
	assert.Equal(t, 110.0, f)
}

func TestLinearScaleZeroScaleTreatedAsOne(t *testing.T) {
	c := LinearScale{Scale: 0, Offset: 5}
	pv := value.PointValue{Value: value.Double(15)}
	normalized, err := c.Normalize(pv)
	require.NoError(t, err)
	f, _ := normalized.Value.AsFloat64()
	assert.Equal(t, 10.0, f)
}

func TestLineProtocolEncodeDecodeRoundTrip(t *testing.T) {
	field := LineProtocolField{Measurement: "cpu", Field: "load"}
	c := LineProtocol{Field: field}

	pv := value.PointValue{
		PointUUID: uuid.New(),
		Timestamp: temporal.FromTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Value:     value.Double(0.75),
	}

	encoded, err := c.Encode(pv)
	require.NoError(t, err)

	decoded, err := c.Decode(encoded)
	require.NoError(t, err)

	f, ok := decoded.Value.AsFloat64()
	require.True(t, ok)
	assert.InDelta(t, 0.75, f, 1e-9)
}

func TestLineProtocolDecodeMissingFieldFails(t *testing.T) {
	field := LineProtocolField{Measurement: "cpu", Field: "missing"}
	c := LineProtocol{Field: field}

	other := LineProtocolField{Measurement: "cpu", Field: "load"}
	encoded, err := LineProtocol{Field: other}.Encode(value.PointValue{
		Timestamp: temporal.FromTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Value:     value.Double(1),
	})
	require.NoError(t, err)

	_, err = c.Decode(encoded)
	assert.Error(t, err)
}
