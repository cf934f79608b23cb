// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import (
	"fmt"
	"time"

	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// Inputs resolves the `$n` family of variables against the current
// batch's input set: `$n` the nth input value (1-based, `$0` the result
// point itself, bare `$` a synonym for `$1`), `$n.` its point name,
// `$n@` its timestamp, `$n!` requires presence, `$#` the input count,
// and `@n` the nth positional Param value of the result point.
type Inputs interface {
	InputValue(n int) (value.Value, bool)
	InputName(n int) (string, bool)
	InputTimestamp(n int) (value.Value, bool)
	InputCount() int
	Param(n int) (value.Value, bool)
}

// breakSignal and continueSignal are sentinel control-flow errors used to
// unwind out of `while`/`do` bodies; they never escape Exec's outermost
// loop invocation.
type breakSignal struct{}
type continueSignal struct{}

func (breakSignal) Error() string    { return "rpnvm: break outside loop" }
func (continueSignal) Error() string { return "rpnvm: continue outside loop" }

// VM holds one evaluation's mutable state: the stack, the whole-program
// ($name) and compound-block (#name) register scopes, user word
// definitions, and the Inputs accessor for the current computation.
type VM struct {
	Stack Stack

	program  map[string]value.Value   // $name : whole-program scope
	compound []map[string]value.Value // #name : stack of compound-block scopes

	words map[string]Program

	Inputs Inputs

	// Zone is the civil zone used by date-time calendar-extraction
	// operations; set with the `tz` operation, defaults to UTC.
	Zone *time.Location

	// DecimalScale is the scale applied to big-decimal quotients.
	DecimalScale int32
}

// NewVM returns a VM ready to execute a Program against the given Inputs
// accessor (may be nil for programs that never reference $n/@n).
func NewVM(inputs Inputs) *VM {
	return &VM{
		program:      make(map[string]value.Value),
		words:        make(map[string]Program),
		Inputs:       inputs,
		Zone:         time.UTC,
		DecimalScale: 2,
	}
}

// Run executes prog to completion and returns the final top-of-stack
// value as the computation's result: one output per invocation.
func (vm *VM) Run(prog Program) (value.Value, error) {
	if err := vm.Exec(prog); err != nil {
		return value.Value{}, err
	}
	if vm.Stack.Len() == 0 {
		return value.Null(), nil
	}
	return vm.Stack.Pop()
}

// Exec runs prog against the VM's current stack/register state without
// collapsing to a single result — used by summarizer drivers that carry
// register state across several program executions.
func (vm *VM) Exec(prog Program) error {
	for _, node := range prog {
		if err := vm.execNode(node); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) execNode(node Node) error {
	switch n := node.(type) {
	case LiteralNode:
		vm.Stack.Push(n.Value)
		return nil
	case BlockNode:
		return vm.Exec(n.Program)
	case MarkedNode:
		vm.Stack.Mark()
		return vm.Exec(n.Body)
	case WordDefNode:
		vm.words[n.Name] = n.Body
		return nil
	case WordRefNode:
		return vm.execWord(n.Name)
	case IfNode:
		return vm.execIf(n)
	case LoopNode:
		return vm.execLoop(n)
	case TryNode:
		return vm.execTry(n)
	default:
		return fail(ParseError, -1, fmt.Sprintf("unrecognized node %T", node))
	}
}

func (vm *VM) execIf(n IfNode) error {
	cond, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	b, ok := cond.Boolean()
	if !ok {
		return fail(TypeMismatch, -1, "if/unless requires a boolean condition")
	}
	if b != n.Invert {
		return vm.execNode(n.Then)
	}
	if n.Else == nil {
		return nil
	}
	return vm.execNode(n.Else)
}

func (vm *VM) execLoop(n LoopNode) error {
	runBody := func() (done bool, err error) {
		if err := vm.execNode(n.Body); err != nil {
			if _, ok := err.(breakSignal); ok {
				return true, nil
			}
			if _, ok := err.(continueSignal); !ok {
				return false, err
			}
		}
		return false, nil
	}
	checkCond := func() (bool, error) {
		if err := vm.execNode(n.Cond); err != nil {
			return false, err
		}
		c, err := vm.Stack.Pop()
		if err != nil {
			return false, err
		}
		b, ok := c.Boolean()
		if !ok {
			return false, fail(TypeMismatch, -1, "loop condition must be a boolean")
		}
		return b, nil
	}

	if n.PostTest {
		for {
			done, err := runBody()
			if err != nil || done {
				return err
			}
			cont, err := checkCond()
			if err != nil || !cont {
				return err
			}
		}
	}
	for {
		cont, err := checkCond()
		if err != nil || !cont {
			return err
		}
		done, err := runBody()
		if err != nil || done {
			return err
		}
	}
}

// execTry snapshots the stack before the body runs; on any failure the
// snapshot is restored and the catch branch runs against it, so the stack
// at try exit is the entry stack extended by exactly what the executed
// branch produced.
func (vm *VM) execTry(n TryNode) error {
	snapshot := vm.Stack.Snapshot()
	if execErr := vm.execNode(n.Body); execErr != nil {
		if _, ok := execErr.(breakSignal); ok {
			return execErr
		}
		if _, ok := execErr.(continueSignal); ok {
			return execErr
		}
		vm.Stack.Restore(snapshot)
		return vm.execNode(n.Catch)
	}
	return nil
}

// execWord resolves name, in order, as: a variable reference, a
// control-flow keyword, a user-defined word, or a registered operation.
func (vm *VM) execWord(name string) error {
	if handled, err := vm.tryVariable(name); handled {
		return err
	}
	if handled, err := vm.tryControl(name); handled {
		return err
	}
	if body, ok := vm.words[name]; ok {
		return vm.Exec(body)
	}
	op, ok := lookupOperation(name)
	if !ok {
		return fail(UnknownOperation, -1, name)
	}
	return op(vm)
}

// pushCompoundScope/popCompoundScope bracket `#= / #` compound blocks:
// each `#=`/`#` pair opens and closes one nested register scope.
func (vm *VM) pushCompoundScope() {
	vm.compound = append(vm.compound, make(map[string]value.Value))
}

func (vm *VM) popCompoundScope() {
	if len(vm.compound) > 0 {
		vm.compound = vm.compound[:len(vm.compound)-1]
	}
}

func (vm *VM) setCompound(name string, v value.Value) {
	if len(vm.compound) == 0 {
		vm.pushCompoundScope()
	}
	vm.compound[len(vm.compound)-1][name] = v
}

func (vm *VM) getCompound(name string) (value.Value, bool) {
	for i := len(vm.compound) - 1; i >= 0; i-- {
		if v, ok := vm.compound[i][name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}
