// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import (
	"strings"

	"github.com/xapiens/RVPF-sub009/pkg/value"
)

func popString(vm *VM) (string, error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return "", err
	}
	s, ok := v.String_()
	if !ok {
		return "", fail(TypeMismatch, -1, "expected string")
	}
	return s, nil
}

func init() {
	RegisterOperation("s+", func(vm *VM) error {
		b, err := popString(vm)
		if err != nil {
			return err
		}
		a, err := popString(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.String(a + b))
		return nil
	})

	RegisterOperation("s_len", func(vm *VM) error {
		s, err := popString(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Long(int64(len(s))))
		return nil
	})

	RegisterOperation("s_upper", func(vm *VM) error {
		s, err := popString(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.String(strings.ToUpper(s)))
		return nil
	})

	RegisterOperation("s_lower", func(vm *VM) error {
		s, err := popString(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.String(strings.ToLower(s)))
		return nil
	})

	RegisterOperation("s_contains", func(vm *VM) error {
		needle, err := popString(vm)
		if err != nil {
			return err
		}
		haystack, err := popString(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Boolean(strings.Contains(haystack, needle)))
		return nil
	})

	RegisterOperation("s_trim", func(vm *VM) error {
		s, err := popString(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.String(strings.TrimSpace(s)))
		return nil
	})

	// str converts the top value's own String() rendering into a String
	// value, used to stringify non-string operands for concatenation.
	RegisterOperation("str", func(vm *VM) error {
		v, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		vm.Stack.Push(value.String(v.String()))
		return nil
	})
}
