// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import "github.com/xapiens/RVPF-sub009/pkg/value"

// tryControl handles the control keywords that are plain words rather
// than parser-level constructs: loop escapes, assertion/failure, and the
// `[ ... ]` bracket introspection words. The branching and looping
// keywords themselves (if/unless/while/do/try) are parsed into
// structured nodes — see parse.go.
func (vm *VM) tryControl(name string) (handled bool, err error) {
	switch name {
	case "break":
		return true, breakSignal{}
	case "continue":
		return true, continueSignal{}
	case "assert":
		return true, vm.runAssert()
	case "fail":
		return true, fail(ExplicitFail, -1, "explicit fail")
	case "depth":
		vm.Stack.Push(value.Long(int64(vm.Stack.Depth())))
		return true, nil
	case "reduce":
		return true, vm.runReduceTop()
	case "clear":
		vm.Stack.Clear()
		return true, nil
	}
	return false, nil
}

func (vm *VM) runAssert() error {
	v, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	b, ok := v.Boolean()
	if !ok || !b {
		return fail(AssertionFailed, -1, "assertion failed")
	}
	return nil
}

func (vm *VM) runReduceTop() error {
	op, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	name, ok := op.String_()
	if !ok {
		return fail(TypeMismatch, -1, "reduce expects an operation name string")
	}
	opFn, ok := lookupOperation(name)
	if !ok {
		return fail(UnknownOperation, -1, name)
	}
	return vm.Stack.Reduce(func(acc, next value.Value) (value.Value, error) {
		vm.Stack.Push(acc)
		vm.Stack.Push(next)
		if err := opFn(vm); err != nil {
			return acc, err
		}
		return vm.Stack.Pop()
	})
}
