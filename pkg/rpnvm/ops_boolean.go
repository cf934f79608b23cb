// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import "github.com/xapiens/RVPF-sub009/pkg/value"

func popBool(vm *VM) (bool, error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return false, err
	}
	b, ok := v.Boolean()
	if !ok {
		return false, fail(TypeMismatch, -1, "expected boolean")
	}
	return b, nil
}

func init() {
	RegisterOperation("and", func(vm *VM) error {
		b, err := popBool(vm)
		if err != nil {
			return err
		}
		a, err := popBool(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Boolean(a && b))
		return nil
	})

	RegisterOperation("or", func(vm *VM) error {
		b, err := popBool(vm)
		if err != nil {
			return err
		}
		a, err := popBool(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Boolean(a || b))
		return nil
	})

	RegisterOperation("xor", func(vm *VM) error {
		b, err := popBool(vm)
		if err != nil {
			return err
		}
		a, err := popBool(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Boolean(a != b))
		return nil
	})

	RegisterOperation("not", func(vm *VM) error {
		a, err := popBool(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Boolean(!a))
		return nil
	})

	RegisterOperation("eq", func(vm *VM) error {
		vals, err := vm.Stack.PopN(2)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Boolean(value.Equal(vals[0], vals[1])))
		return nil
	})

	RegisterOperation("ne", func(vm *VM) error {
		vals, err := vm.Stack.PopN(2)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Boolean(!value.Equal(vals[0], vals[1])))
		return nil
	})
}
