// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package content

import (
	"fmt"

	lineprotocol "github.com/influxdata/line-protocol/v2/lineprotocol"

	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// LineProtocolField names which field key within a line-protocol point
// this codec reads and writes. Grounded on the teacher's
// pkg/metricstore line-protocol decoder, which maps one measurement
// field per metric.
type LineProtocolField struct {
	Measurement string
	Field       string
}

// LineProtocol decodes/encodes a PointValue's external representation as
// a single InfluxDB line-protocol line carrying one measurement/field
// pair. Decode is lenient: any numeric line-protocol field type is
// accepted and coerced to Double or Long; Encode emits Long, Double,
// Boolean and String values as fields of their own kind and every other
// numeric kind as a float field.
type LineProtocol struct {
	Field LineProtocolField
}

func (c LineProtocol) Decode(pv value.PointValue) (value.PointValue, error) {
	raw, ok := pv.Value.Bytes()
	if !ok {
		s, isStr := pv.Value.String_()
		if !isStr {
			return pv, fmt.Errorf("%w: line protocol decode expects bytes or string", ErrUnsupportedValue)
		}
		raw = []byte(s)
	}

	dec := lineprotocol.NewDecoderWithBytes(raw)
	for dec.Next() {
		_, err := dec.Measurement()
		if err != nil {
			return pv, fmt.Errorf("content: line protocol measurement: %w", err)
		}
		for {
			key, fieldVal, err := dec.NextField()
			if err != nil {
				return pv, fmt.Errorf("content: line protocol field: %w", err)
			}
			if key == nil {
				break
			}
			if string(key) != c.Field.Field {
				continue
			}
			pv.Value = fieldValueToValue(fieldVal)
			return pv, nil
		}
	}
	return pv, fmt.Errorf("content: field %q not present in line", c.Field.Field)
}

func fieldValueToValue(fv lineprotocol.Value) value.Value {
	switch fv.Kind() {
	case lineprotocol.Int:
		return value.Long(fv.IntV())
	case lineprotocol.Uint:
		return value.Long(int64(fv.UintV()))
	case lineprotocol.Float:
		return value.Double(fv.FloatV())
	case lineprotocol.Bool:
		return value.Boolean(fv.BoolV())
	case lineprotocol.String:
		return value.String(fv.StringV())
	default:
		return value.Null()
	}
}

func (c LineProtocol) Encode(pv value.PointValue) (value.PointValue, error) {
	enc := &lineprotocol.Encoder{}
	enc.SetPrecision(lineprotocol.Nanosecond)
	enc.StartLine(c.Field.Measurement)

	switch pv.Value.Kind() {
	case value.KindLong:
		i, _ := pv.Value.Long()
		enc.AddField(c.Field.Field, lineprotocol.IntValue(i))
	case value.KindDouble:
		f, _ := pv.Value.Double()
		fv, ok := lineprotocol.FloatValue(f)
		if !ok {
			return pv, fmt.Errorf("%w: %s", ErrUnsupportedValue, pv.Value.Kind())
		}
		enc.AddField(c.Field.Field, fv)
	case value.KindBoolean:
		b, _ := pv.Value.Boolean()
		enc.AddField(c.Field.Field, lineprotocol.BoolValue(b))
	case value.KindString:
		s, _ := pv.Value.String_()
		sv, ok := lineprotocol.StringValue(s)
		if !ok {
			return pv, fmt.Errorf("%w: %s", ErrUnsupportedValue, pv.Value.Kind())
		}
		enc.AddField(c.Field.Field, sv)
	default:
		f, ok := pv.Value.AsFloat64()
		if !ok {
			return pv, fmt.Errorf("%w: %s", ErrUnsupportedValue, pv.Value.Kind())
		}
		fv, ok := lineprotocol.FloatValue(f)
		if !ok {
			return pv, fmt.Errorf("%w: %s", ErrUnsupportedValue, pv.Value.Kind())
		}
		enc.AddField(c.Field.Field, fv)
	}

	enc.EndLine(pv.Timestamp.AsTime())
	if err := enc.Err(); err != nil {
		return pv, fmt.Errorf("content: line protocol encode: %w", err)
	}

	out := pv
	out.Value = value.Bytes(append([]byte(nil), enc.Bytes()...))
	return out, nil
}

func (c LineProtocol) Normalize(pv value.PointValue) (value.PointValue, error) { return pv, nil }

func (c LineProtocol) Denormalize(pv value.PointValue) (value.PointValue, error) { return pv, nil }
