// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

func init() {
	dup := func(vm *VM) error {
		v, err := vm.Stack.Peek()
		if err != nil {
			return err
		}
		vm.Stack.Push(v)
		return nil
	}
	RegisterOperation("dup", dup)
	// A bare ':' with no matching ';' is dup, not a word definition —
	// see parseColon.
	RegisterOperation(":", dup)

	RegisterOperation("drop", func(vm *VM) error {
		_, err := vm.Stack.Pop()
		return err
	})

	RegisterOperation("swap", func(vm *VM) error {
		vals, err := vm.Stack.PopN(2)
		if err != nil {
			return err
		}
		vm.Stack.Push(vals[1])
		vm.Stack.Push(vals[0])
		return nil
	})

	RegisterOperation("over", func(vm *VM) error {
		vals, err := vm.Stack.PopN(2)
		if err != nil {
			return err
		}
		vm.Stack.Push(vals[0])
		vm.Stack.Push(vals[1])
		vm.Stack.Push(vals[0])
		return nil
	})

	RegisterOperation("rot", func(vm *VM) error {
		vals, err := vm.Stack.PopN(3)
		if err != nil {
			return err
		}
		vm.Stack.Push(vals[1])
		vm.Stack.Push(vals[2])
		vm.Stack.Push(vals[0])
		return nil
	})

	RegisterOperation("nip", func(vm *VM) error {
		vals, err := vm.Stack.PopN(2)
		if err != nil {
			return err
		}
		vm.Stack.Push(vals[1])
		return nil
	})

	RegisterOperation("tuck", func(vm *VM) error {
		vals, err := vm.Stack.PopN(2)
		if err != nil {
			return err
		}
		vm.Stack.Push(vals[1])
		vm.Stack.Push(vals[0])
		vm.Stack.Push(vals[1])
		return nil
	})
}
