// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// This file implements the wire form for PointValue:
//
//	uuid(16) | rawTimestamp(8) | stateLen(4) | stateUtf8 | tagByte | value
//
// Tuple/Dict values are length-prefixed and recursive. Elapsed/DateTime
// values on the wire are a single int64 of 100-ns units (INT64_MIN is
// INVALID), matching the binary framing idiom the teacher uses for its own
// checkpoint/WAL records.
package value

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/google/uuid"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

// wireTag identifies the encoded Value variant on the wire. Stable across
// versions; append-only.
type wireTag byte

const (
	tagNull wireTag = iota
	tagBoolean
	tagLong
	tagDouble
	tagBigInteger
	tagBigDecimal
	tagRational
	tagBigRational
	tagComplex
	tagDateTime
	tagElapsedTime
	tagString
	tagBytes
	tagTuple
	tagDict
)

var kindToTag = map[Kind]wireTag{
	KindNull:        tagNull,
	KindBoolean:     tagBoolean,
	KindLong:        tagLong,
	KindDouble:      tagDouble,
	KindBigInteger:  tagBigInteger,
	KindBigDecimal:  tagBigDecimal,
	KindRational:    tagRational,
	KindBigRational: tagBigRational,
	KindComplex:     tagComplex,
	KindDateTime:    tagDateTime,
	KindElapsedTime: tagElapsedTime,
	KindString:      tagString,
	KindBytes:       tagBytes,
	KindTuple:       tagTuple,
	KindDict:        tagDict,
}

// ErrMalformedWire is returned by decode functions on truncated or
// inconsistent wire data.
var ErrMalformedWire = fmt.Errorf("value: malformed wire data")

// EncodePointValue serializes pv into the wire form above.
func EncodePointValue(pv PointValue) []byte {
	var buf bytes.Buffer
	idBytes, _ := pv.PointUUID.MarshalBinary()
	buf.Write(idBytes)

	var tsBuf [8]byte
	binary.BigEndian.PutUint64(tsBuf[:], uint64(int64(pv.Timestamp)))
	buf.Write(tsBuf[:])

	stateBytes := []byte(pv.State)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(stateBytes)))
	buf.Write(lenBuf[:])
	buf.Write(stateBytes)

	encodeValue(&buf, pv.Value)
	return buf.Bytes()
}

// DecodePointValue parses the wire form above back into a PointValue.
func DecodePointValue(data []byte) (PointValue, error) {
	if len(data) < 16+8+4 {
		return PointValue{}, ErrMalformedWire
	}
	var pv PointValue
	id, err := uuid.FromBytes(data[:16])
	if err != nil {
		return PointValue{}, fmt.Errorf("%w: %v", ErrMalformedWire, err)
	}
	pv.PointUUID = id
	data = data[16:]

	pv.Timestamp = temporal.Timestamp(int64(binary.BigEndian.Uint64(data[:8])))
	data = data[8:]

	stateLen := binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	if uint32(len(data)) < stateLen {
		return PointValue{}, ErrMalformedWire
	}
	pv.State = string(data[:stateLen])
	data = data[stateLen:]

	v, _, err := decodeValue(data)
	if err != nil {
		return PointValue{}, err
	}
	pv.Value = v
	return pv, nil
}

func encodeValue(buf *bytes.Buffer, v Value) {
	tag, ok := kindToTag[v.kind]
	if !ok {
		tag = tagNull
	}
	buf.WriteByte(byte(tag))

	switch v.kind {
	case KindNull:
	case KindBoolean:
		if b, _ := v.Boolean(); b {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case KindLong:
		var b [8]byte
		i, _ := v.Long()
		binary.BigEndian.PutUint64(b[:], uint64(i))
		buf.Write(b[:])
	case KindDouble:
		var b [8]byte
		f, _ := v.Double()
		binary.BigEndian.PutUint64(b[:], math.Float64bits(f))
		buf.Write(b[:])
	case KindBigInteger:
		bi, _ := v.BigInteger()
		writeBytes(buf, bi.Bytes())
		buf.WriteByte(signByte(bi.Sign()))
	case KindBigDecimal:
		d, _ := v.BigDecimal()
		writeBytes(buf, d.Unscaled.Bytes())
		buf.WriteByte(signByte(d.Unscaled.Sign()))
		writeInt32(buf, d.Scale)
	case KindRational:
		r, _ := v.Rational()
		writeInt64(buf, r.Num)
		writeInt64(buf, r.Den)
	case KindBigRational:
		r, _ := v.BigRational()
		writeBytes(buf, r.Num().Bytes())
		buf.WriteByte(signByte(r.Num().Sign()))
		writeBytes(buf, r.Denom().Bytes())
	case KindComplex:
		c, _ := v.Complex()
		if c.Cartesian {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(c.A))
		buf.Write(b[:])
		binary.BigEndian.PutUint64(b[:], math.Float64bits(c.B))
		buf.Write(b[:])
	case KindDateTime:
		dt, _ := v.DateTime()
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(int64(dt)))
		buf.Write(b[:])
	case KindElapsedTime:
		e, _ := v.ElapsedTime()
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(int64(e)))
		buf.Write(b[:])
	case KindString:
		s, _ := v.String_()
		writeBytes(buf, []byte(s))
	case KindBytes:
		bs, _ := v.Bytes()
		writeBytes(buf, bs)
	case KindTuple:
		t, _ := v.Tuple()
		writeInt32(buf, int32(len(t)))
		for _, elem := range t {
			encodeValue(buf, elem)
		}
	case KindDict:
		d, _ := v.Dict()
		writeInt32(buf, int32(d.Len()))
		for _, k := range d.Keys() {
			writeBytes(buf, []byte(k))
			elem, _ := d.Get(k)
			encodeValue(buf, elem)
		}
	}
}

func decodeValue(data []byte) (Value, []byte, error) {
	if len(data) < 1 {
		return Value{}, nil, ErrMalformedWire
	}
	tag := wireTag(data[0])
	data = data[1:]

	switch tag {
	case tagNull:
		return Null(), data, nil
	case tagBoolean:
		if len(data) < 1 {
			return Value{}, nil, ErrMalformedWire
		}
		return Boolean(data[0] != 0), data[1:], nil
	case tagLong:
		if len(data) < 8 {
			return Value{}, nil, ErrMalformedWire
		}
		return Long(int64(binary.BigEndian.Uint64(data[:8]))), data[8:], nil
	case tagDouble:
		if len(data) < 8 {
			return Value{}, nil, ErrMalformedWire
		}
		return Double(math.Float64frombits(binary.BigEndian.Uint64(data[:8]))), data[8:], nil
	case tagBigInteger:
		bs, rest, err := readBytes(data)
		if err != nil {
			return Value{}, nil, err
		}
		if len(rest) < 1 {
			return Value{}, nil, ErrMalformedWire
		}
		sign := rest[0]
		rest = rest[1:]
		bi := new(big.Int).SetBytes(bs)
		if sign == 2 {
			bi.Neg(bi)
		}
		return BigInteger(bi), rest, nil
	case tagBigDecimal:
		bs, rest, err := readBytes(data)
		if err != nil {
			return Value{}, nil, err
		}
		if len(rest) < 1 {
			return Value{}, nil, ErrMalformedWire
		}
		sign := rest[0]
		rest = rest[1:]
		scale, rest2, err := readInt32(rest)
		if err != nil {
			return Value{}, nil, err
		}
		unscaled := new(big.Int).SetBytes(bs)
		if sign == 2 {
			unscaled.Neg(unscaled)
		}
		return BigDecimalValue(BigDecimal{Unscaled: unscaled, Scale: scale}), rest2, nil
	case tagRational:
		num, rest, err := readInt64(data)
		if err != nil {
			return Value{}, nil, err
		}
		den, rest2, err := readInt64(rest)
		if err != nil {
			return Value{}, nil, err
		}
		return RationalValue(Rational{Num: num, Den: den}), rest2, nil
	case tagBigRational:
		numBytes, rest, err := readBytes(data)
		if err != nil {
			return Value{}, nil, err
		}
		if len(rest) < 1 {
			return Value{}, nil, ErrMalformedWire
		}
		sign := rest[0]
		rest = rest[1:]
		denBytes, rest2, err := readBytes(rest)
		if err != nil {
			return Value{}, nil, err
		}
		num := new(big.Int).SetBytes(numBytes)
		if sign == 2 {
			num.Neg(num)
		}
		den := new(big.Int).SetBytes(denBytes)
		return BigRationalValue(new(big.Rat).SetFrac(num, den)), rest2, nil
	case tagComplex:
		if len(data) < 17 {
			return Value{}, nil, ErrMalformedWire
		}
		cartesian := data[0] != 0
		a := math.Float64frombits(binary.BigEndian.Uint64(data[1:9]))
		b := math.Float64frombits(binary.BigEndian.Uint64(data[9:17]))
		return ComplexValue(Complex{Cartesian: cartesian, A: a, B: b}), data[17:], nil
	case tagDateTime:
		if len(data) < 8 {
			return Value{}, nil, ErrMalformedWire
		}
		return DateTime(temporal.Timestamp(int64(binary.BigEndian.Uint64(data[:8])))), data[8:], nil
	case tagElapsedTime:
		if len(data) < 8 {
			return Value{}, nil, ErrMalformedWire
		}
		return ElapsedTime(temporal.Elapsed(int64(binary.BigEndian.Uint64(data[:8])))), data[8:], nil
	case tagString:
		bs, rest, err := readBytes(data)
		if err != nil {
			return Value{}, nil, err
		}
		return String(string(bs)), rest, nil
	case tagBytes:
		bs, rest, err := readBytes(data)
		if err != nil {
			return Value{}, nil, err
		}
		return Bytes(bs), rest, nil
	case tagTuple:
		n, rest, err := readInt32(data)
		if err != nil {
			return Value{}, nil, err
		}
		elems := make([]Value, 0, n)
		for i := int32(0); i < n; i++ {
			var elem Value
			elem, rest, err = decodeValue(rest)
			if err != nil {
				return Value{}, nil, err
			}
			elems = append(elems, elem)
		}
		return Tuple(elems...), rest, nil
	case tagDict:
		n, rest, err := readInt32(data)
		if err != nil {
			return Value{}, nil, err
		}
		d := NewDict()
		for i := int32(0); i < n; i++ {
			var keyBytes []byte
			keyBytes, rest, err = readBytes(rest)
			if err != nil {
				return Value{}, nil, err
			}
			var elem Value
			elem, rest, err = decodeValue(rest)
			if err != nil {
				return Value{}, nil, err
			}
			d.Set(string(keyBytes), elem)
		}
		return DictValue(d), rest, nil
	default:
		return Value{}, nil, fmt.Errorf("%w: unknown tag %d", ErrMalformedWire, tag)
	}
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	writeInt32(buf, int32(len(b)))
	buf.Write(b)
}

func readBytes(data []byte) ([]byte, []byte, error) {
	n, rest, err := readInt32(data)
	if err != nil {
		return nil, nil, err
	}
	if n < 0 || int(n) > len(rest) {
		return nil, nil, ErrMalformedWire
	}
	return rest[:n], rest[n:], nil
}

func writeInt32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

func readInt32(data []byte) (int32, []byte, error) {
	if len(data) < 4 {
		return 0, nil, ErrMalformedWire
	}
	return int32(binary.BigEndian.Uint32(data[:4])), data[4:], nil
}

func writeInt64(buf *bytes.Buffer, v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	buf.Write(b[:])
}

func readInt64(data []byte) (int64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, ErrMalformedWire
	}
	return int64(binary.BigEndian.Uint64(data[:8])), data[8:], nil
}

func signByte(sign int) byte {
	if sign < 0 {
		return 2
	}
	return 1
}
