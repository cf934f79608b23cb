// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

// The generic module registers the untyped arithmetic words most
// transform programs use: `+ - * / %`, `abs neg 0? -- ++`, and the
// `bigdec` constructor. Coercion is a fixed ladder, not reflection:
// complex wins over everything, a double operand makes the result
// double, and the exact kinds promote among themselves
// (long -> bigint -> rational -> bigrational -> bigdec), except that a
// rational does not combine with a bigint and neither rational kind
// combines with a bigdec: those pairs fail with TypeMismatch. The typed
// modules (l+, d+, bd+, ...) remain for programs that want an exact
// operand contract; these words are the polymorphic front door.

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/xapiens/RVPF-sub009/pkg/value"
)

func init() {
	RegisterOperation("+", genericBinary("+"))
	RegisterOperation("-", genericBinary("-"))
	RegisterOperation("*", genericBinary("*"))
	RegisterOperation("/", genericBinary("/"))
	RegisterOperation("%", genericBinary("%"))

	RegisterOperation("abs", func(vm *VM) error {
		v, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		switch v.Kind() {
		case value.KindLong:
			l, _ := v.Long()
			if l < 0 {
				l = -l
			}
			vm.Stack.Push(value.Long(l))
		case value.KindDouble:
			f, _ := v.Double()
			vm.Stack.Push(value.Double(math.Abs(f)))
		case value.KindBigInteger:
			bi, _ := v.BigInteger()
			vm.Stack.Push(value.BigInteger(new(big.Int).Abs(bi)))
		case value.KindBigDecimal:
			d, _ := v.BigDecimal()
			vm.Stack.Push(value.BigDecimalValue(value.BigDecimal{
				Unscaled: new(big.Int).Abs(d.Unscaled), Scale: d.Scale,
			}))
		case value.KindRational:
			r, _ := v.Rational()
			if r.Num < 0 {
				r.Num = -r.Num
			}
			vm.Stack.Push(value.RationalValue(r))
		case value.KindBigRational:
			r, _ := v.BigRational()
			vm.Stack.Push(value.BigRationalValue(new(big.Rat).Abs(r)))
		case value.KindComplex:
			c, _ := v.Complex()
			r, _ := c.ToPolar()
			vm.Stack.Push(value.Double(r))
		default:
			return fail(TypeMismatch, -1, "abs expects a numeric operand")
		}
		return nil
	})

	RegisterOperation("neg", func(vm *VM) error {
		v, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		switch v.Kind() {
		case value.KindLong:
			l, _ := v.Long()
			vm.Stack.Push(value.Long(-l))
		case value.KindDouble:
			f, _ := v.Double()
			vm.Stack.Push(value.Double(-f))
		case value.KindBigInteger:
			bi, _ := v.BigInteger()
			vm.Stack.Push(value.BigInteger(new(big.Int).Neg(bi)))
		case value.KindRational:
			r, _ := v.Rational()
			vm.Stack.Push(value.RationalValue(value.Rational{Num: -r.Num, Den: r.Den}))
		case value.KindBigRational:
			r, _ := v.BigRational()
			vm.Stack.Push(value.BigRationalValue(new(big.Rat).Neg(r)))
		default:
			return fail(TypeMismatch, -1, "neg expects a numeric operand")
		}
		return nil
	})

	// 0? tests the top of stack for exact zero (use 0~? for an
	// epsilon-tolerant double test).
	RegisterOperation("0?", func(vm *VM) error {
		v, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		switch v.Kind() {
		case value.KindLong:
			l, _ := v.Long()
			vm.Stack.Push(value.Boolean(l == 0))
		case value.KindDouble:
			f, _ := v.Double()
			vm.Stack.Push(value.Boolean(f == 0))
		case value.KindBigInteger:
			bi, _ := v.BigInteger()
			vm.Stack.Push(value.Boolean(bi.Sign() == 0))
		case value.KindBigDecimal:
			d, _ := v.BigDecimal()
			vm.Stack.Push(value.Boolean(d.Unscaled.Sign() == 0))
		case value.KindRational:
			r, _ := v.Rational()
			vm.Stack.Push(value.Boolean(r.Num == 0))
		case value.KindBigRational:
			r, _ := v.BigRational()
			vm.Stack.Push(value.Boolean(r.Sign() == 0))
		default:
			return fail(TypeMismatch, -1, "0? expects a numeric operand")
		}
		return nil
	})

	RegisterOperation("--", stepByOne(-1))
	RegisterOperation("++", stepByOne(+1))

	// bigdec converts the top of stack (string, long, or double) into a
	// BigDecimal; a string's scale is its digit count after the point.
	RegisterOperation("bigdec", func(vm *VM) error {
		v, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		d, err := toBigDecimal(v)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.BigDecimalValue(d))
		return nil
	})
}

func stepByOne(delta int64) OperationFunc {
	return func(vm *VM) error {
		v, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		switch v.Kind() {
		case value.KindLong:
			l, _ := v.Long()
			vm.Stack.Push(value.Long(l + delta))
		case value.KindDouble:
			f, _ := v.Double()
			vm.Stack.Push(value.Double(f + float64(delta)))
		default:
			return fail(TypeMismatch, -1, "++/-- expects long or double")
		}
		return nil
	}
}

func toBigDecimal(v value.Value) (value.BigDecimal, error) {
	switch v.Kind() {
	case value.KindBigDecimal:
		d, _ := v.BigDecimal()
		return d, nil
	case value.KindLong:
		l, _ := v.Long()
		return value.BigDecimal{Unscaled: big.NewInt(l)}, nil
	case value.KindBigInteger:
		bi, _ := v.BigInteger()
		return value.BigDecimal{Unscaled: new(big.Int).Set(bi)}, nil
	case value.KindDouble:
		f, _ := v.Double()
		return parseBigDecimal(strconv.FormatFloat(f, 'f', -1, 64))
	case value.KindString:
		s, _ := v.String_()
		return parseBigDecimal(s)
	default:
		return value.BigDecimal{}, fail(TypeMismatch, -1, "bigdec expects string, long, or double")
	}
}

func parseBigDecimal(s string) (value.BigDecimal, error) {
	s = strings.TrimSpace(s)
	intPart, fracPart, _ := strings.Cut(s, ".")
	digits := intPart + fracPart
	unscaled, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return value.BigDecimal{}, fail(TypeMismatch, -1, "malformed decimal literal "+s)
	}
	return value.BigDecimal{Unscaled: unscaled, Scale: int32(len(fracPart))}, nil
}

// genericBinary dispatches a binary arithmetic word over the promoted
// common kind of its two operands.
func genericBinary(op string) OperationFunc {
	return func(vm *VM) error {
		b, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		a, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		r, err := applyGeneric(vm, op, a, b)
		if err != nil {
			return err
		}
		vm.Stack.Push(r)
		return nil
	}
}

func applyGeneric(vm *VM, op string, a, b value.Value) (value.Value, error) {
	ak, bk := a.Kind(), b.Kind()

	if ak == value.KindComplex || bk == value.KindComplex {
		return complexOp(op, a, b)
	}
	if ak == value.KindDouble || bk == value.KindDouble {
		return doubleOp(op, a, b)
	}
	if ak == value.KindBigDecimal || bk == value.KindBigDecimal {
		return bigDecOp(vm, op, a, b)
	}
	if ak == value.KindBigRational || bk == value.KindBigRational {
		return bigRatOp(op, a, b)
	}
	if ak == value.KindRational || bk == value.KindRational {
		return ratOp(op, a, b)
	}
	if ak == value.KindBigInteger || bk == value.KindBigInteger {
		return bigIntOp(op, a, b)
	}
	if ak == value.KindLong && bk == value.KindLong {
		return longOp(op, a, b)
	}
	return value.Value{}, fail(TypeMismatch, -1, op+" expects numeric operands")
}

func longOp(op string, a, b value.Value) (value.Value, error) {
	x, _ := a.Long()
	y, _ := b.Long()
	switch op {
	case "+":
		return value.Long(x + y), nil
	case "-":
		return value.Long(x - y), nil
	case "*":
		return value.Long(x * y), nil
	case "/":
		if y == 0 {
			return value.Value{}, fail(DivideByZero, -1, "/")
		}
		return value.Long(x / y), nil
	case "%":
		if y == 0 {
			return value.Value{}, fail(DivideByZero, -1, "%")
		}
		return value.Long(x % y), nil
	}
	return value.Value{}, fail(UnknownOperation, -1, op)
}

func doubleOp(op string, a, b value.Value) (value.Value, error) {
	x, ok := a.AsFloat64()
	if !ok {
		return value.Value{}, fail(TypeMismatch, -1, op+" expects numeric operands")
	}
	y, ok := b.AsFloat64()
	if !ok {
		return value.Value{}, fail(TypeMismatch, -1, op+" expects numeric operands")
	}
	switch op {
	case "+":
		return value.Double(x + y), nil
	case "-":
		return value.Double(x - y), nil
	case "*":
		return value.Double(x * y), nil
	case "/":
		if y == 0 {
			return value.Value{}, fail(DivideByZero, -1, "/")
		}
		return value.Double(x / y), nil
	case "%":
		if y == 0 {
			return value.Value{}, fail(DivideByZero, -1, "%")
		}
		return value.Double(math.Mod(x, y)), nil
	}
	return value.Value{}, fail(UnknownOperation, -1, op)
}

func bigIntOp(op string, a, b value.Value) (value.Value, error) {
	x, err := asBigInt(a)
	if err != nil {
		return value.Value{}, err
	}
	y, err := asBigInt(b)
	if err != nil {
		return value.Value{}, err
	}
	switch op {
	case "+":
		return value.BigInteger(new(big.Int).Add(x, y)), nil
	case "-":
		return value.BigInteger(new(big.Int).Sub(x, y)), nil
	case "*":
		return value.BigInteger(new(big.Int).Mul(x, y)), nil
	case "/":
		if y.Sign() == 0 {
			return value.Value{}, fail(DivideByZero, -1, "/")
		}
		return value.BigInteger(new(big.Int).Quo(x, y)), nil
	case "%":
		if y.Sign() == 0 {
			return value.Value{}, fail(DivideByZero, -1, "%")
		}
		return value.BigInteger(new(big.Int).Rem(x, y)), nil
	}
	return value.Value{}, fail(UnknownOperation, -1, op)
}

func asBigInt(v value.Value) (*big.Int, error) {
	if bi, ok := v.BigInteger(); ok {
		return bi, nil
	}
	if l, ok := v.Long(); ok {
		return big.NewInt(l), nil
	}
	return nil, fail(TypeMismatch, -1, "expected integer operand")
}

func ratOp(op string, a, b value.Value) (value.Value, error) {
	x, err := asRational(a)
	if err != nil {
		return value.Value{}, err
	}
	y, err := asRational(b)
	if err != nil {
		return value.Value{}, err
	}
	switch op {
	case "+":
		return value.RationalValue(value.NewRational(x.Num*y.Den+y.Num*x.Den, x.Den*y.Den)), nil
	case "-":
		return value.RationalValue(value.NewRational(x.Num*y.Den-y.Num*x.Den, x.Den*y.Den)), nil
	case "*":
		return value.RationalValue(value.NewRational(x.Num*y.Num, x.Den*y.Den)), nil
	case "/":
		if y.Num == 0 {
			return value.Value{}, fail(DivideByZero, -1, "/")
		}
		return value.RationalValue(value.NewRational(x.Num*y.Den, x.Den*y.Num)), nil
	}
	return value.Value{}, fail(TypeMismatch, -1, op+" not defined for rationals")
}

func asRational(v value.Value) (value.Rational, error) {
	if r, ok := v.Rational(); ok {
		return r, nil
	}
	if l, ok := v.Long(); ok {
		return value.NewRational(l, 1), nil
	}
	return value.Rational{}, fail(TypeMismatch, -1, "expected rational operand")
}

func bigRatOp(op string, a, b value.Value) (value.Value, error) {
	x, err := asBigRat(a)
	if err != nil {
		return value.Value{}, err
	}
	y, err := asBigRat(b)
	if err != nil {
		return value.Value{}, err
	}
	switch op {
	case "+":
		return value.BigRationalValue(new(big.Rat).Add(x, y)), nil
	case "-":
		return value.BigRationalValue(new(big.Rat).Sub(x, y)), nil
	case "*":
		return value.BigRationalValue(new(big.Rat).Mul(x, y)), nil
	case "/":
		if y.Sign() == 0 {
			return value.Value{}, fail(DivideByZero, -1, "/")
		}
		return value.BigRationalValue(new(big.Rat).Quo(x, y)), nil
	}
	return value.Value{}, fail(TypeMismatch, -1, op+" not defined for bigrationals")
}

func asBigRat(v value.Value) (*big.Rat, error) {
	if r, ok := v.BigRational(); ok {
		return r, nil
	}
	if r, ok := v.Rational(); ok {
		return big.NewRat(r.Num, r.Den), nil
	}
	if bi, ok := v.BigInteger(); ok {
		return new(big.Rat).SetInt(bi), nil
	}
	if l, ok := v.Long(); ok {
		return new(big.Rat).SetInt64(l), nil
	}
	return nil, fail(TypeMismatch, -1, "expected bigrational operand")
}

func bigDecOp(vm *VM, op string, a, b value.Value) (value.Value, error) {
	x, err := toBigDecimal(a)
	if err != nil {
		return value.Value{}, err
	}
	y, err := toBigDecimal(b)
	if err != nil {
		return value.Value{}, err
	}
	switch op {
	case "+":
		au, bu, scale := rescale(x, y)
		return value.BigDecimalValue(value.BigDecimal{Unscaled: new(big.Int).Add(au, bu), Scale: scale}), nil
	case "-":
		au, bu, scale := rescale(x, y)
		return value.BigDecimalValue(value.BigDecimal{Unscaled: new(big.Int).Sub(au, bu), Scale: scale}), nil
	case "*":
		return value.BigDecimalValue(value.BigDecimal{
			Unscaled: new(big.Int).Mul(x.Unscaled, y.Unscaled),
			Scale:    x.Scale + y.Scale,
		}), nil
	case "/":
		d, err := bigDecDivide(x, y, vm.DecimalScale)
		if err != nil {
			return value.Value{}, err
		}
		return value.BigDecimalValue(d), nil
	}
	return value.Value{}, fail(TypeMismatch, -1, op+" not defined for bigdecs")
}

// bigDecDivide computes a/b at the given result scale, rounding half away
// from zero: the quotient's unscaled value is
// round(a.Unscaled * 10^(scale + b.Scale - a.Scale) / b.Unscaled).
func bigDecDivide(a, b value.BigDecimal, scale int32) (value.BigDecimal, error) {
	if b.Unscaled.Sign() == 0 {
		return value.BigDecimal{}, fail(DivideByZero, -1, "/")
	}
	exp := int64(scale) + int64(b.Scale) - int64(a.Scale)
	num := new(big.Int).Set(a.Unscaled)
	den := new(big.Int).Set(b.Unscaled)
	if exp >= 0 {
		num.Mul(num, new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil))
	} else {
		den.Mul(den, new(big.Int).Exp(big.NewInt(10), big.NewInt(-exp), nil))
	}
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	// Half-up: bump |q| when 2*|r| >= |den|.
	r2 := new(big.Int).Abs(r)
	r2.Lsh(r2, 1)
	if r2.CmpAbs(den) >= 0 {
		if (num.Sign() < 0) != (den.Sign() < 0) {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return value.BigDecimal{Unscaled: q, Scale: scale}, nil
}

func complexOp(op string, a, b value.Value) (value.Value, error) {
	x, err := asComplexPair(a)
	if err != nil {
		return value.Value{}, err
	}
	y, err := asComplexPair(b)
	if err != nil {
		return value.Value{}, err
	}
	switch op {
	case "+":
		return value.ComplexValue(value.NewComplexCartesian(real(x)+real(y), imag(x)+imag(y))), nil
	case "-":
		return value.ComplexValue(value.NewComplexCartesian(real(x)-real(y), imag(x)-imag(y))), nil
	case "*":
		z := x * y
		return value.ComplexValue(value.NewComplexCartesian(real(z), imag(z))), nil
	case "/":
		if y == 0 {
			return value.Value{}, fail(DivideByZero, -1, "/")
		}
		z := x / y
		return value.ComplexValue(value.NewComplexCartesian(real(z), imag(z))), nil
	}
	return value.Value{}, fail(TypeMismatch, -1, op+" not defined for complex")
}

func asComplexPair(v value.Value) (complex128, error) {
	if c, ok := v.Complex(); ok {
		re, im := c.ToCartesian()
		return complex(re, im), nil
	}
	if f, ok := v.AsFloat64(); ok {
		return complex(f, 0), nil
	}
	return 0, fail(TypeMismatch, -1, "expected complex or numeric operand")
}
