// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import (
	"math"

	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// defaultEpsilon is the engine-level tolerance used by `eq~`/`0~?`;
// neither operation takes a tolerance argument.
const defaultEpsilon = 1e-9

func popDouble(vm *VM) (float64, error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return 0, err
	}
	f, ok := v.AsFloat64()
	if !ok {
		return 0, fail(TypeMismatch, -1, "expected double")
	}
	return f, nil
}

func binaryDouble(vm *VM, fn func(a, b float64) (float64, error)) error {
	b, err := popDouble(vm)
	if err != nil {
		return err
	}
	a, err := popDouble(vm)
	if err != nil {
		return err
	}
	r, err := fn(a, b)
	if err != nil {
		return err
	}
	vm.Stack.Push(value.Double(r))
	return nil
}

func init() {
	RegisterOperation("d+", func(vm *VM) error {
		return binaryDouble(vm, func(a, b float64) (float64, error) { return a + b, nil })
	})
	RegisterOperation("d-", func(vm *VM) error {
		return binaryDouble(vm, func(a, b float64) (float64, error) { return a - b, nil })
	})
	RegisterOperation("d*", func(vm *VM) error {
		return binaryDouble(vm, func(a, b float64) (float64, error) { return a * b, nil })
	})
	RegisterOperation("d/", func(vm *VM) error {
		return binaryDouble(vm, func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, fail(DivideByZero, -1, "d/")
			}
			return a / b, nil
		})
	})
	RegisterOperation("d_abs", func(vm *VM) error {
		a, err := popDouble(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Double(math.Abs(a)))
		return nil
	})
	RegisterOperation("d_neg", func(vm *VM) error {
		a, err := popDouble(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Double(-a))
		return nil
	})
	RegisterOperation("sqrt", func(vm *VM) error {
		a, err := popDouble(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Double(math.Sqrt(a)))
		return nil
	})
	RegisterOperation("pow", func(vm *VM) error {
		return binaryDouble(vm, func(a, b float64) (float64, error) { return math.Pow(a, b), nil })
	})
	RegisterOperation("d<", func(vm *VM) error { return compareDouble(vm, func(a, b float64) bool { return a < b }) })
	RegisterOperation("d<=", func(vm *VM) error { return compareDouble(vm, func(a, b float64) bool { return a <= b }) })
	RegisterOperation("d>", func(vm *VM) error { return compareDouble(vm, func(a, b float64) bool { return a > b }) })
	RegisterOperation("d>=", func(vm *VM) error {
		return compareDouble(vm, func(a, b float64) bool { return a >= b })
	})

	// eq~ pops two operands and compares them within defaultEpsilon; it
	// does not take a tolerance operand.
	RegisterOperation("eq~", func(vm *VM) error {
		b, err := popDouble(vm)
		if err != nil {
			return err
		}
		a, err := popDouble(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Boolean(math.Abs(a-b) <= defaultEpsilon))
		return nil
	})

	// 0~? tests whether the top of stack is within epsilon of zero.
	RegisterOperation("0~?", func(vm *VM) error {
		a, err := popDouble(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Boolean(math.Abs(a) <= defaultEpsilon))
		return nil
	})
}

func compareDouble(vm *VM, cmp func(a, b float64) bool) error {
	b, err := popDouble(vm)
	if err != nil {
		return err
	}
	a, err := popDouble(vm)
	if err != nil {
		return err
	}
	vm.Stack.Push(value.Boolean(cmp(a, b)))
	return nil
}
