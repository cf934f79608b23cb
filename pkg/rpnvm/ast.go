// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import "github.com/xapiens/RVPF-sub009/pkg/value"

// Node is one parsed program element.
type Node interface {
	node()
}

// LiteralNode pushes a fixed tagged value.
type LiteralNode struct{ Value value.Value }

// WordRefNode is an identifier: a variable reference, a defined word
// call, or a registered operation — resolved at execution time so word
// redefinition order does not matter for forward calls within one
// program.
type WordRefNode struct{ Name string }

// BlockNode is a `{ ... }` block: a sequence grouped into a single
// program element. Control keywords take a block as one branch operand;
// a block encountered on its own simply runs in place.
type BlockNode struct{ Program Program }

// MarkedNode is a `[ ... ]` sub-evaluation: a marker is pushed, then Body
// executes immediately in place.
type MarkedNode struct{ Body Program }

// WordDefNode is `: name body ;`, registering a reusable subroutine.
type WordDefNode struct {
	Name string
	Body Program
}

// IfNode is `COND if THEN else ELSE` (or `unless`, which inverts the
// branch sense): the condition is whatever boolean the preceding program
// left on top of the stack; Then and Else are each a single following
// element, a `{ ... }` block when more than one token is needed. Else may
// be nil.
type IfNode struct {
	Invert bool // true for unless
	Then   Node
	Else   Node
}

// LoopNode covers `while COND BODY` (PostTest false) and
// `do BODY COND` (PostTest true). Cond and Body are each a single
// following element.
type LoopNode struct {
	PostTest bool
	Cond     Node
	Body     Node
}

// TryNode is `try BODY CATCH`: Body runs against a snapshot of the
// stack; on failure the snapshot is restored and Catch runs.
type TryNode struct {
	Body  Node
	Catch Node
}

func (LiteralNode) node() {}
func (WordRefNode) node() {}
func (BlockNode) node()   {}
func (MarkedNode) node()  {}
func (WordDefNode) node() {}
func (IfNode) node()      {}
func (LoopNode) node()    {}
func (TryNode) node()     {}

// Program is a parsed, ready-to-execute sequence of nodes.
type Program []Node
