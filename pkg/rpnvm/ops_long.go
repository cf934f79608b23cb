// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import "github.com/xapiens/RVPF-sub009/pkg/value"

func popLong(vm *VM) (int64, error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return 0, err
	}
	i, ok := v.Long()
	if !ok {
		return 0, fail(TypeMismatch, -1, "expected long")
	}
	return i, nil
}

func binaryLong(vm *VM, fn func(a, b int64) (int64, error)) error {
	b, err := popLong(vm)
	if err != nil {
		return err
	}
	a, err := popLong(vm)
	if err != nil {
		return err
	}
	r, err := fn(a, b)
	if err != nil {
		return err
	}
	vm.Stack.Push(value.Long(r))
	return nil
}

func init() {
	RegisterOperation("l+", func(vm *VM) error {
		return binaryLong(vm, func(a, b int64) (int64, error) { return a + b, nil })
	})
	RegisterOperation("l-", func(vm *VM) error {
		return binaryLong(vm, func(a, b int64) (int64, error) { return a - b, nil })
	})
	RegisterOperation("l*", func(vm *VM) error {
		return binaryLong(vm, func(a, b int64) (int64, error) { return a * b, nil })
	})
	// l/ is truncated division: result follows the sign of the dividend,
	// matching Go's native integer division.
	RegisterOperation("l/", func(vm *VM) error {
		return binaryLong(vm, func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, fail(DivideByZero, -1, "l/")
			}
			return a / b, nil
		})
	})
	// l% is the truncated remainder, same sign as the dividend.
	RegisterOperation("l%", func(vm *VM) error {
		return binaryLong(vm, func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, fail(DivideByZero, -1, "l%")
			}
			return a % b, nil
		})
	})
	// mod is the Euclidean modulus: always non-negative.
	RegisterOperation("mod", func(vm *VM) error {
		return binaryLong(vm, func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, fail(DivideByZero, -1, "mod")
			}
			m := a % b
			if m < 0 {
				if b < 0 {
					m -= b
				} else {
					m += b
				}
			}
			return m, nil
		})
	})
	RegisterOperation("l_neg", func(vm *VM) error {
		a, err := popLong(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Long(-a))
		return nil
	})
	RegisterOperation("l_abs", func(vm *VM) error {
		a, err := popLong(vm)
		if err != nil {
			return err
		}
		if a < 0 {
			a = -a
		}
		vm.Stack.Push(value.Long(a))
		return nil
	})
	RegisterOperation("l<", func(vm *VM) error {
		return compareLong(vm, func(a, b int64) bool { return a < b })
	})
	RegisterOperation("l<=", func(vm *VM) error {
		return compareLong(vm, func(a, b int64) bool { return a <= b })
	})
	RegisterOperation("l>", func(vm *VM) error {
		return compareLong(vm, func(a, b int64) bool { return a > b })
	})
	RegisterOperation("l>=", func(vm *VM) error {
		return compareLong(vm, func(a, b int64) bool { return a >= b })
	})
}

func compareLong(vm *VM, cmp func(a, b int64) bool) error {
	b, err := popLong(vm)
	if err != nil {
		return err
	}
	a, err := popLong(vm)
	if err != nil {
		return err
	}
	vm.Stack.Push(value.Boolean(cmp(a, b)))
	return nil
}
