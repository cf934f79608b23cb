// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import "github.com/xapiens/RVPF-sub009/pkg/value"

func popComplex(vm *VM) (value.Complex, error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return value.Complex{}, err
	}
	c, ok := v.Complex()
	if !ok {
		return value.Complex{}, fail(TypeMismatch, -1, "expected complex")
	}
	return c, nil
}

func init() {
	// a b cplx -> cartesian complex (re=a, im=b)
	RegisterOperation("cplx", func(vm *VM) error {
		b, err := popDouble(vm)
		if err != nil {
			return err
		}
		a, err := popDouble(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.ComplexValue(value.NewComplexCartesian(a, b)))
		return nil
	})

	// r theta polar -> polar complex
	RegisterOperation("polar", func(vm *VM) error {
		theta, err := popDouble(vm)
		if err != nil {
			return err
		}
		r, err := popDouble(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.ComplexValue(value.NewComplexPolar(r, theta)))
		return nil
	})

	// split (for complex operands) is registered in ops_datetime.go, which
	// dispatches on the popped value's kind to serve both Complex and
	// DateTime under the shared operation name.

	RegisterOperation("c+", func(vm *VM) error {
		b, err := popComplex(vm)
		if err != nil {
			return err
		}
		a, err := popComplex(vm)
		if err != nil {
			return err
		}
		are, aim := a.ToCartesian()
		bre, bim := b.ToCartesian()
		vm.Stack.Push(value.ComplexValue(value.NewComplexCartesian(are+bre, aim+bim)))
		return nil
	})

	RegisterOperation("c*", func(vm *VM) error {
		b, err := popComplex(vm)
		if err != nil {
			return err
		}
		a, err := popComplex(vm)
		if err != nil {
			return err
		}
		// Multiplication is computed in cartesian form and the result is
		// cartesian whatever the operands' representation, polar included.
		are, aim := a.ToCartesian()
		bre, bim := b.ToCartesian()
		vm.Stack.Push(value.ComplexValue(value.NewComplexCartesian(are*bre-aim*bim, are*bim+aim*bre)))
		return nil
	})
}
