// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import "github.com/xapiens/RVPF-sub009/pkg/value"

// markSentinel is a distinguished value marking the start of a `[ ... ]`
// sub-evaluation region on the stack.
var markSentinel = value.String("\x00rpnvm-mark\x00")

func isMark(v value.Value) bool {
	if v.Kind() != value.KindString {
		return false
	}
	s, _ := v.String_()
	ms, _ := markSentinel.String_()
	return s == ms
}

// Stack is the VM's evaluation stack.
type Stack struct {
	items []value.Value
}

func (s *Stack) Push(v value.Value) { s.items = append(s.items, v) }

func (s *Stack) Pop() (value.Value, error) {
	if len(s.items) == 0 {
		return value.Value{}, fail(StackUnderflow, -1, "pop on empty stack")
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

func (s *Stack) Peek() (value.Value, error) {
	if len(s.items) == 0 {
		return value.Value{}, fail(StackUnderflow, -1, "peek on empty stack")
	}
	return s.items[len(s.items)-1], nil
}

func (s *Stack) Len() int { return len(s.items) }

// Snapshot returns a copy of the current stack contents, used by `try` to
// restore stack state after a caught failure.
func (s *Stack) Snapshot() []value.Value {
	cp := make([]value.Value, len(s.items))
	copy(cp, s.items)
	return cp
}

func (s *Stack) Restore(snapshot []value.Value) {
	s.items = append(s.items[:0], snapshot...)
}

// PopN pops n values, returning them in original (bottom-to-top) order.
func (s *Stack) PopN(n int) ([]value.Value, error) {
	if len(s.items) < n {
		return nil, fail(StackUnderflow, -1, "insufficient operands")
	}
	start := len(s.items) - n
	out := make([]value.Value, n)
	copy(out, s.items[start:])
	s.items = s.items[:start]
	return out, nil
}

// Mark pushes a `[` sub-evaluation marker.
func (s *Stack) Mark() { s.items = append(s.items, markSentinel) }

// Depth returns the count of values pushed since the most recent marker
// (depth inside a `[ ... ]` bracket refers to elements pushed since the
// `[`), or the whole stack depth if no marker is present.
func (s *Stack) Depth() int {
	for i := len(s.items) - 1; i >= 0; i-- {
		if isMark(s.items[i]) {
			return len(s.items) - 1 - i
		}
	}
	return len(s.items)
}

// Clear pops every value pushed since the most recent marker, then the
// marker itself.
func (s *Stack) Clear() {
	n := s.Depth()
	s.items = s.items[:len(s.items)-n]
	if len(s.items) > 0 && isMark(s.items[len(s.items)-1]) {
		s.items = s.items[:len(s.items)-1]
	}
}

// Reduce pops every value pushed since the most recent marker (and the
// marker itself) and folds them left-to-right with fn.
func (s *Stack) Reduce(fn func(acc, next value.Value) (value.Value, error)) error {
	n := s.Depth()
	vals, err := s.PopN(n)
	if err != nil {
		return err
	}
	if len(s.items) > 0 && isMark(s.items[len(s.items)-1]) {
		s.items = s.items[:len(s.items)-1]
	}
	if len(vals) == 0 {
		return nil
	}
	acc := vals[0]
	for _, v := range vals[1:] {
		acc, err = fn(acc, v)
		if err != nil {
			return err
		}
	}
	s.Push(acc)
	return nil
}
