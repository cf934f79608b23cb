// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import (
	"math/big"

	"github.com/xapiens/RVPF-sub009/pkg/value"
)

func popBigDecimal(vm *VM) (value.BigDecimal, error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return value.BigDecimal{}, err
	}
	if d, ok := v.BigDecimal(); ok {
		return d, nil
	}
	if l, ok := v.Long(); ok {
		return value.BigDecimal{Unscaled: big.NewInt(l), Scale: 0}, nil
	}
	return value.BigDecimal{}, fail(TypeMismatch, -1, "expected bigdec")
}

// rescale returns both decimals' unscaled values aligned to the same
// (larger) scale.
func rescale(a, b value.BigDecimal) (*big.Int, *big.Int, int32) {
	scale := a.Scale
	if b.Scale > scale {
		scale = b.Scale
	}
	au := new(big.Int).Mul(a.Unscaled, pow10(scale-a.Scale))
	bu := new(big.Int).Mul(b.Unscaled, pow10(scale-b.Scale))
	return au, bu, scale
}

func pow10(n int32) *big.Int {
	if n <= 0 {
		return big.NewInt(1)
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

func init() {
	RegisterOperation("bd+", func(vm *VM) error {
		b, err := popBigDecimal(vm)
		if err != nil {
			return err
		}
		a, err := popBigDecimal(vm)
		if err != nil {
			return err
		}
		au, bu, scale := rescale(a, b)
		vm.Stack.Push(value.BigDecimalValue(value.BigDecimal{Unscaled: new(big.Int).Add(au, bu), Scale: scale}))
		return nil
	})
	RegisterOperation("bd-", func(vm *VM) error {
		b, err := popBigDecimal(vm)
		if err != nil {
			return err
		}
		a, err := popBigDecimal(vm)
		if err != nil {
			return err
		}
		au, bu, scale := rescale(a, b)
		vm.Stack.Push(value.BigDecimalValue(value.BigDecimal{Unscaled: new(big.Int).Sub(au, bu), Scale: scale}))
		return nil
	})
	RegisterOperation("bd*", func(vm *VM) error {
		b, err := popBigDecimal(vm)
		if err != nil {
			return err
		}
		a, err := popBigDecimal(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.BigDecimalValue(value.BigDecimal{
			Unscaled: new(big.Int).Mul(a.Unscaled, b.Unscaled),
			Scale:    a.Scale + b.Scale,
		}))
		return nil
	})
	// bd/ quotients carry the VM's decimal scale, rounded half away from
	// zero.
	RegisterOperation("bd/", func(vm *VM) error {
		b, err := popBigDecimal(vm)
		if err != nil {
			return err
		}
		a, err := popBigDecimal(vm)
		if err != nil {
			return err
		}
		d, err := bigDecDivide(a, b, vm.DecimalScale)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.BigDecimalValue(d))
		return nil
	})
}
