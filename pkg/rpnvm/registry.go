// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

// OperationFunc implements one named operation: it pops its operands off
// vm.Stack and pushes its result(s).
type OperationFunc func(vm *VM) error

var registry = make(map[string]OperationFunc)

// RegisterOperation adds name to the global operation registry. Modules
// call this from an init() func, one per pkg/rpnvm/ops_*.go file,
// grouping operations by the type they operate on.
func RegisterOperation(name string, fn OperationFunc) {
	registry[name] = fn
}

func lookupOperation(name string) (OperationFunc, bool) {
	fn, ok := registry[name]
	return fn, ok
}
