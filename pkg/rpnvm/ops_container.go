// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import "github.com/xapiens/RVPF-sub009/pkg/value"

func popTuple(vm *VM) ([]value.Value, error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return nil, err
	}
	t, ok := v.Tuple()
	if !ok {
		return nil, fail(TypeMismatch, -1, "expected tuple")
	}
	return t, nil
}

func popDict(vm *VM) (*value.Dict, error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return nil, err
	}
	d, ok := v.Dict()
	if !ok {
		return nil, fail(TypeMismatch, -1, "expected dict")
	}
	return d, nil
}

func init() {
	// n tuple packs the top n stack values into a Tuple, in the order
	// they were pushed (bottom-to-top).
	RegisterOperation("tuple", func(vm *VM) error {
		n, err := popLong(vm)
		if err != nil {
			return err
		}
		vals, err := vm.Stack.PopN(int(n))
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Tuple(vals...))
		return nil
	})

	// untuple pushes every element of a Tuple back onto the stack.
	RegisterOperation("untuple", func(vm *VM) error {
		t, err := popTuple(vm)
		if err != nil {
			return err
		}
		for _, v := range t {
			vm.Stack.Push(v)
		}
		return nil
	})

	RegisterOperation("tuple_len", func(vm *VM) error {
		t, err := popTuple(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Long(int64(len(t))))
		return nil
	})

	// tuple idx at -> element at idx (0-based).
	RegisterOperation("at", func(vm *VM) error {
		idx, err := popLong(vm)
		if err != nil {
			return err
		}
		t, err := popTuple(vm)
		if err != nil {
			return err
		}
		if idx < 0 || int(idx) >= len(t) {
			return fail(TypeMismatch, -1, "tuple index out of range")
		}
		vm.Stack.Push(t[idx])
		return nil
	})

	RegisterOperation("dict_new", func(vm *VM) error {
		vm.Stack.Push(value.DictValue(value.NewDict()))
		return nil
	})

	// dict key val dict_set -> dict with key bound to val (mutates and
	// re-pushes the same Dict, matching Tcl/Forth-style dict combinators).
	RegisterOperation("dict_set", func(vm *VM) error {
		val, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		key, err := popString(vm)
		if err != nil {
			return err
		}
		d, err := popDict(vm)
		if err != nil {
			return err
		}
		d.Set(key, val)
		vm.Stack.Push(value.DictValue(d))
		return nil
	})

	RegisterOperation("dict_get", func(vm *VM) error {
		key, err := popString(vm)
		if err != nil {
			return err
		}
		d, err := popDict(vm)
		if err != nil {
			return err
		}
		v, ok := d.Get(key)
		if !ok {
			vm.Stack.Push(value.Null())
			return nil
		}
		vm.Stack.Push(v)
		return nil
	})
}
