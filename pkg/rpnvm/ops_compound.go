// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

// The compound module implements the `#=`/`#` compound-block register
// scope: `#=` opens a new nested scope for `#name`/`#name=`
// lookups, `#` closes the innermost one. The whole-program `$name` scope
// needs no equivalent bracketing — it lives for the full Run call.
func init() {
	RegisterOperation("#=", func(vm *VM) error {
		vm.pushCompoundScope()
		return nil
	})
	RegisterOperation("#", func(vm *VM) error {
		vm.popCompoundScope()
		return nil
	})
}
