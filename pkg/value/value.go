// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package value implements the tagged dynamic Value union carried by
// PointValue and by the expression engine's evaluation stack.
package value

import (
	"fmt"
	"math"
	"math/big"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

// Kind discriminates the Value union's active representation.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindLong
	KindDouble
	KindBigInteger
	KindBigDecimal
	KindRational
	KindBigRational
	KindComplex
	KindDateTime
	KindElapsedTime
	KindString
	KindBytes
	KindTuple
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindLong:
		return "long"
	case KindDouble:
		return "double"
	case KindBigInteger:
		return "bigint"
	case KindBigDecimal:
		return "bigdec"
	case KindRational:
		return "rational"
	case KindBigRational:
		return "bigrational"
	case KindComplex:
		return "complex"
	case KindDateTime:
		return "datetime"
	case KindElapsedTime:
		return "elapsed"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindTuple:
		return "tuple"
	case KindDict:
		return "dict"
	default:
		return "unknown"
	}
}

// BigDecimal is an arbitrary-precision decimal: unscaled * 10^-scale.
type BigDecimal struct {
	Unscaled *big.Int
	Scale    int32
}

func (d BigDecimal) Float() *big.Float {
	f := new(big.Float).SetInt(d.Unscaled)
	if d.Scale == 0 {
		return f
	}
	scale := new(big.Float).SetFloat64(math.Pow10(int(d.Scale)))
	return new(big.Float).Quo(f, scale)
}

func (d BigDecimal) String() string {
	return d.Float().Text('f', int(d.Scale))
}

// Rational is a machine-word rational number, auto-reduced to lowest terms
// with sign normalized onto the numerator.
type Rational struct {
	Num, Den int64
}

func NewRational(num, den int64) Rational {
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcdInt64(abs64(num), den); g > 1 {
		num, den = num/g, den/g
	}
	return Rational{Num: num, Den: den}
}

func gcdInt64(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Complex carries either a cartesian (re, im) or polar (r, theta)
// representation. The rpnvm arithmetic words convert polar operands and
// always produce a cartesian result; a polar value keeps its form only
// until it is used in arithmetic.
type Complex struct {
	Cartesian bool
	A, B      float64 // (re, im) when Cartesian, (r, theta) otherwise
}

func NewComplexCartesian(re, im float64) Complex { return Complex{Cartesian: true, A: re, B: im} }
func NewComplexPolar(r, theta float64) Complex   { return Complex{Cartesian: false, A: r, B: theta} }

func (c Complex) Split() (float64, float64) { return c.A, c.B }

func (c Complex) ToCartesian() (re, im float64) {
	if c.Cartesian {
		return c.A, c.B
	}
	return c.A * math.Cos(c.B), c.A * math.Sin(c.B)
}

func (c Complex) ToPolar() (r, theta float64) {
	if !c.Cartesian {
		return c.A, c.B
	}
	return math.Hypot(c.A, c.B), math.Atan2(c.B, c.A)
}

// Dict is an ordered string-keyed map, preserving insertion order.
type Dict struct {
	keys   []string
	values map[string]Value
}

func NewDict() *Dict {
	return &Dict{values: make(map[string]Value)}
}

func (d *Dict) Set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

func (d *Dict) Len() int { return len(d.keys) }

// Value is the tagged dynamic union. Zero value is Null.
type Value struct {
	kind Kind

	b       bool
	i64     int64
	f64     float64
	bigInt  *big.Int
	bigDec  BigDecimal
	rat     Rational
	bigRat  *big.Rat
	cplx    Complex
	dt      temporal.Timestamp
	elapsed temporal.Elapsed
	str     string
	bytes   []byte
	tuple   []Value
	dict    *Dict
}

func Null() Value                         { return Value{kind: KindNull} }
func Boolean(b bool) Value                { return Value{kind: KindBoolean, b: b} }
func Long(i int64) Value                  { return Value{kind: KindLong, i64: i} }
func Double(f float64) Value              { return Value{kind: KindDouble, f64: f} }
func BigInteger(i *big.Int) Value         { return Value{kind: KindBigInteger, bigInt: i} }
func BigDecimalValue(d BigDecimal) Value  { return Value{kind: KindBigDecimal, bigDec: d} }
func RationalValue(r Rational) Value      { return Value{kind: KindRational, rat: r} }
func BigRationalValue(r *big.Rat) Value   { return Value{kind: KindBigRational, bigRat: r} }
func ComplexValue(c Complex) Value        { return Value{kind: KindComplex, cplx: c} }
func DateTime(t temporal.Timestamp) Value { return Value{kind: KindDateTime, dt: t} }
func ElapsedTime(e temporal.Elapsed) Value {
	return Value{kind: KindElapsedTime, elapsed: e}
}
func String(s string) Value      { return Value{kind: KindString, str: s} }
func Bytes(b []byte) Value       { return Value{kind: KindBytes, bytes: b} }
func Tuple(vs ...Value) Value    { return Value{kind: KindTuple, tuple: vs} }
func DictValue(d *Dict) Value    { return Value{kind: KindDict, dict: d} }

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == KindNull }

func (v Value) Boolean() (bool, bool)              { return v.b, v.kind == KindBoolean }
func (v Value) Long() (int64, bool)                { return v.i64, v.kind == KindLong }
func (v Value) Double() (float64, bool)            { return v.f64, v.kind == KindDouble }
func (v Value) BigInteger() (*big.Int, bool)       { return v.bigInt, v.kind == KindBigInteger }
func (v Value) BigDecimal() (BigDecimal, bool)     { return v.bigDec, v.kind == KindBigDecimal }
func (v Value) Rational() (Rational, bool)         { return v.rat, v.kind == KindRational }
func (v Value) BigRational() (*big.Rat, bool)      { return v.bigRat, v.kind == KindBigRational }
func (v Value) Complex() (Complex, bool)           { return v.cplx, v.kind == KindComplex }
func (v Value) DateTime() (temporal.Timestamp, bool) { return v.dt, v.kind == KindDateTime }
func (v Value) ElapsedTime() (temporal.Elapsed, bool) {
	return v.elapsed, v.kind == KindElapsedTime
}
func (v Value) String_() (string, bool) { return v.str, v.kind == KindString }
func (v Value) Bytes() ([]byte, bool)   { return v.bytes, v.kind == KindBytes }
func (v Value) Tuple() ([]Value, bool)  { return v.tuple, v.kind == KindTuple }
func (v Value) Dict() (*Dict, bool)     { return v.dict, v.kind == KindDict }

// AsFloat64 coerces numeric kinds to float64 for operations that need a
// common numeric representation (e.g. filter deadband comparisons). Returns
// ok=false for non-numeric kinds.
func (v Value) AsFloat64() (float64, bool) {
	switch v.kind {
	case KindLong:
		return float64(v.i64), true
	case KindDouble:
		return v.f64, true
	case KindBigInteger:
		f, _ := new(big.Float).SetInt(v.bigInt).Float64()
		return f, true
	case KindBigDecimal:
		f, _ := v.bigDec.Float().Float64()
		return f, true
	case KindRational:
		return float64(v.rat.Num) / float64(v.rat.Den), true
	case KindBigRational:
		f, _ := v.bigRat.Float64()
		return f, true
	case KindElapsedTime:
		return v.elapsed.Seconds(), true
	default:
		return 0, false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBoolean:
		return fmt.Sprintf("%t", v.b)
	case KindLong:
		return fmt.Sprintf("%d", v.i64)
	case KindDouble:
		return fmt.Sprintf("%g", v.f64)
	case KindBigInteger:
		return v.bigInt.String()
	case KindBigDecimal:
		return v.bigDec.String()
	case KindRational:
		return fmt.Sprintf("%d/%d", v.rat.Num, v.rat.Den)
	case KindBigRational:
		return v.bigRat.RatString()
	case KindComplex:
		re, im := v.cplx.ToCartesian()
		return fmt.Sprintf("%g%+gi", re, im)
	case KindDateTime:
		return v.dt.String()
	case KindElapsedTime:
		return v.elapsed.String()
	case KindString:
		return v.str
	case KindBytes:
		return fmt.Sprintf("bytes(%d)", len(v.bytes))
	case KindTuple:
		return fmt.Sprintf("tuple(%d)", len(v.tuple))
	case KindDict:
		return fmt.Sprintf("dict(%d)", v.dict.Len())
	default:
		return "?"
	}
}

// Equal compares two Values structurally. Tuples and Dicts compare
// element-wise/key-wise; all other kinds compare by value.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindLong:
		return a.i64 == b.i64
	case KindDouble:
		return a.f64 == b.f64
	case KindBigInteger:
		return a.bigInt.Cmp(b.bigInt) == 0
	case KindBigDecimal:
		return a.bigDec.Float().Cmp(b.bigDec.Float()) == 0
	case KindRational:
		return a.rat == b.rat
	case KindBigRational:
		return a.bigRat.Cmp(b.bigRat) == 0
	case KindComplex:
		ar, ai := a.cplx.ToCartesian()
		br, bi := b.cplx.ToCartesian()
		return ar == br && ai == bi
	case KindDateTime:
		return a.dt == b.dt
	case KindElapsedTime:
		return a.elapsed == b.elapsed
	case KindString:
		return a.str == b.str
	case KindBytes:
		if len(a.bytes) != len(b.bytes) {
			return false
		}
		for i := range a.bytes {
			if a.bytes[i] != b.bytes[i] {
				return false
			}
		}
		return true
	case KindTuple:
		if len(a.tuple) != len(b.tuple) {
			return false
		}
		for i := range a.tuple {
			if !Equal(a.tuple[i], b.tuple[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if a.dict.Len() != b.dict.Len() {
			return false
		}
		for _, k := range a.dict.Keys() {
			av, _ := a.dict.Get(k)
			bv, ok := b.dict.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
