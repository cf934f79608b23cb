// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import "github.com/xapiens/RVPF-sub009/pkg/value"

func popRational(vm *VM) (value.Rational, error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return value.Rational{}, err
	}
	if r, ok := v.Rational(); ok {
		return r, nil
	}
	if l, ok := v.Long(); ok {
		return value.NewRational(l, 1), nil
	}
	return value.Rational{}, fail(TypeMismatch, -1, "expected rational")
}

func init() {
	// rat builds num den rat -> Rational, auto-reduced.
	RegisterOperation("rat", func(vm *VM) error {
		den, err := popLong(vm)
		if err != nil {
			return err
		}
		num, err := popLong(vm)
		if err != nil {
			return err
		}
		if den == 0 {
			return fail(DivideByZero, -1, "rat")
		}
		vm.Stack.Push(value.RationalValue(value.NewRational(num, den)))
		return nil
	})

	RegisterOperation("r+", func(vm *VM) error {
		b, err := popRational(vm)
		if err != nil {
			return err
		}
		a, err := popRational(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.RationalValue(value.NewRational(a.Num*b.Den+b.Num*a.Den, a.Den*b.Den)))
		return nil
	})

	RegisterOperation("r*", func(vm *VM) error {
		b, err := popRational(vm)
		if err != nil {
			return err
		}
		a, err := popRational(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.RationalValue(value.NewRational(a.Num*b.Num, a.Den*b.Den)))
		return nil
	})

	RegisterOperation("r_inv", func(vm *VM) error {
		a, err := popRational(vm)
		if err != nil {
			return err
		}
		if a.Num == 0 {
			return fail(DivideByZero, -1, "r_inv")
		}
		vm.Stack.Push(value.RationalValue(value.NewRational(a.Den, a.Num)))
		return nil
	})
}
