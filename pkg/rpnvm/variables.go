// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import (
	"strconv"
	"strings"

	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// tryVariable handles the `$n`/`@n`/`#name`/`$name`/`:name=` variable
// family. It returns handled=false for anything that isn't a variable
// token, letting execWord fall through to control keywords, words and
// operations.
func (vm *VM) tryVariable(name string) (handled bool, err error) {
	if name == "#=" {
		// The bare compound-scope-open keyword, not a `#name=` store.
		return false, nil
	}
	switch {
	case name == "$":
		// Bare `$` is the current (first) input value — the sample a
		// summarizer's step program is being fed.
		return true, vm.pushInput(1, 0)
	case strings.HasPrefix(name, ":") && strings.HasSuffix(name, "=") && len(name) > 2:
		return true, vm.keepStore(name[1 : len(name)-1])
	case strings.HasPrefix(name, "$") && len(name) > 1:
		return true, vm.handleDollar(name[1:])
	case strings.HasPrefix(name, "@") && len(name) > 1:
		return true, vm.handleAt(name[1:])
	case strings.HasPrefix(name, "#") && len(name) > 1:
		return true, vm.handleHash(name[1:])
	}
	return false, nil
}

// keepStore implements `:name=`: store the top of stack into the named
// register without popping it. The inner name may carry its own scope
// sigil (`:#x=` compound, `:$x=` or bare `:x=` whole-program).
func (vm *VM) keepStore(inner string) error {
	v, err := vm.Stack.Peek()
	if err != nil {
		return err
	}
	if strings.HasPrefix(inner, "#") && len(inner) > 1 {
		vm.setCompound(inner[1:], v)
		return nil
	}
	if strings.HasPrefix(inner, "$") && len(inner) > 1 {
		vm.program[inner[1:]] = v
		return nil
	}
	vm.program[inner] = v
	return nil
}

func (vm *VM) handleDollar(rest string) error {
	if rest == "#" {
		if vm.Inputs == nil {
			return fail(TypeMismatch, -1, "no inputs bound for $#")
		}
		vm.Stack.Push(value.Long(int64(vm.Inputs.InputCount())))
		return nil
	}

	store := strings.HasSuffix(rest, "=")
	if store {
		key := rest[:len(rest)-1]
		v, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		vm.program[key] = v
		return nil
	}

	if n, ok, suffix := parseIndexedVariable(rest); ok {
		return vm.pushInput(n, suffix)
	}

	v, ok := vm.program[rest]
	if !ok {
		return fail(TypeMismatch, -1, "undefined register $"+rest)
	}
	vm.Stack.Push(v)
	return nil
}

func (vm *VM) handleHash(rest string) error {
	if strings.HasSuffix(rest, "=") {
		key := rest[:len(rest)-1]
		v, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		vm.setCompound(key, v)
		return nil
	}
	v, ok := vm.getCompound(rest)
	if !ok {
		return fail(TypeMismatch, -1, "undefined register #"+rest)
	}
	vm.Stack.Push(v)
	return nil
}

func (vm *VM) handleAt(rest string) error {
	n, err := strconv.Atoi(rest)
	if err != nil {
		return fail(ParseError, -1, "malformed param reference @"+rest)
	}
	if vm.Inputs == nil {
		return fail(TypeMismatch, -1, "no inputs bound for @"+rest)
	}
	v, ok := vm.Inputs.Param(n)
	if !ok {
		return fail(TypeMismatch, -1, "param @"+rest+" not present")
	}
	vm.Stack.Push(v)
	return nil
}

// parseIndexedVariable splits "1", "1.", "1@", "1!" into (index, ok,
// suffix byte or 0).
func parseIndexedVariable(rest string) (int, bool, byte) {
	if rest == "" {
		return 0, false, 0
	}
	var suffix byte
	digits := rest
	last := rest[len(rest)-1]
	if last == '.' || last == '@' || last == '!' {
		suffix = last
		digits = rest[:len(rest)-1]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false, 0
	}
	return n, true, suffix
}

func (vm *VM) pushInput(n int, suffix byte) error {
	if vm.Inputs == nil {
		return fail(TypeMismatch, -1, "no inputs bound for $n")
	}
	switch suffix {
	case '.':
		s, ok := vm.Inputs.InputName(n)
		if !ok {
			return fail(TypeMismatch, -1, "input name unavailable")
		}
		vm.Stack.Push(value.String(s))
		return nil
	case '@':
		ts, ok := vm.Inputs.InputTimestamp(n)
		if !ok {
			return fail(TypeMismatch, -1, "input timestamp unavailable")
		}
		vm.Stack.Push(ts)
		return nil
	case '!':
		v, ok := vm.Inputs.InputValue(n)
		if !ok {
			return fail(TypeMismatch, -1, "required input $"+strconv.Itoa(n)+" missing")
		}
		vm.Stack.Push(v)
		return nil
	default:
		v, ok := vm.Inputs.InputValue(n)
		if !ok {
			vm.Stack.Push(value.Null())
			return nil
		}
		vm.Stack.Push(v)
		return nil
	}
}
