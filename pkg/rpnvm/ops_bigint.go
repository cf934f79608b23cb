// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import (
	"math/big"

	"github.com/xapiens/RVPF-sub009/pkg/value"
)

func popBigInt(vm *VM) (*big.Int, error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return nil, err
	}
	if i, ok := v.BigInteger(); ok {
		return i, nil
	}
	if l, ok := v.Long(); ok {
		return big.NewInt(l), nil
	}
	return nil, fail(TypeMismatch, -1, "expected bigint")
}

func binaryBigInt(vm *VM, fn func(a, b *big.Int) (*big.Int, error)) error {
	b, err := popBigInt(vm)
	if err != nil {
		return err
	}
	a, err := popBigInt(vm)
	if err != nil {
		return err
	}
	r, err := fn(a, b)
	if err != nil {
		return err
	}
	vm.Stack.Push(value.BigInteger(r))
	return nil
}

func init() {
	RegisterOperation("bi+", func(vm *VM) error {
		return binaryBigInt(vm, func(a, b *big.Int) (*big.Int, error) { return new(big.Int).Add(a, b), nil })
	})
	RegisterOperation("bi-", func(vm *VM) error {
		return binaryBigInt(vm, func(a, b *big.Int) (*big.Int, error) { return new(big.Int).Sub(a, b), nil })
	})
	RegisterOperation("bi*", func(vm *VM) error {
		return binaryBigInt(vm, func(a, b *big.Int) (*big.Int, error) { return new(big.Int).Mul(a, b), nil })
	})
	RegisterOperation("bi/", func(vm *VM) error {
		return binaryBigInt(vm, func(a, b *big.Int) (*big.Int, error) {
			if b.Sign() == 0 {
				return nil, fail(DivideByZero, -1, "bi/")
			}
			return new(big.Int).Quo(a, b), nil
		})
	})
	RegisterOperation("bi_neg", func(vm *VM) error {
		a, err := popBigInt(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.BigInteger(new(big.Int).Neg(a)))
		return nil
	})
	RegisterOperation("bi_cmp", func(vm *VM) error {
		b, err := popBigInt(vm)
		if err != nil {
			return err
		}
		a, err := popBigInt(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Long(int64(a.Cmp(b))))
		return nil
	})
	RegisterOperation("bi_of", func(vm *VM) error {
		l, err := popLong(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.BigInteger(big.NewInt(l)))
		return nil
	})
}
