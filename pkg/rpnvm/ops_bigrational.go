// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import (
	"math/big"

	"github.com/xapiens/RVPF-sub009/pkg/value"
)

func popBigRational(vm *VM) (*big.Rat, error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return nil, err
	}
	if r, ok := v.BigRational(); ok {
		return r, nil
	}
	if l, ok := v.Long(); ok {
		return new(big.Rat).SetInt64(l), nil
	}
	return nil, fail(TypeMismatch, -1, "expected bigrational")
}

func init() {
	RegisterOperation("bigrat", func(vm *VM) error {
		den, err := popBigInt(vm)
		if err != nil {
			return err
		}
		num, err := popBigInt(vm)
		if err != nil {
			return err
		}
		if den.Sign() == 0 {
			return fail(DivideByZero, -1, "bigrat")
		}
		vm.Stack.Push(value.BigRationalValue(new(big.Rat).SetFrac(num, den)))
		return nil
	})

	RegisterOperation("br+", func(vm *VM) error {
		b, err := popBigRational(vm)
		if err != nil {
			return err
		}
		a, err := popBigRational(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.BigRationalValue(new(big.Rat).Add(a, b)))
		return nil
	})

	RegisterOperation("br*", func(vm *VM) error {
		b, err := popBigRational(vm)
		if err != nil {
			return err
		}
		a, err := popBigRational(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.BigRationalValue(new(big.Rat).Mul(a, b)))
		return nil
	})
}
