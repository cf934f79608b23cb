// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package batch

import (
	"context"
	"fmt"

	"github.com/xapiens/RVPF-sub009/pkg/params"
	"github.com/xapiens/RVPF-sub009/pkg/pointgraph"
	"github.com/xapiens/RVPF-sub009/pkg/rpnvm"
	"github.com/xapiens/RVPF-sub009/pkg/temporal"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// Transform is the per-point computation step, invoked by the engine as
// Apply(ctx, batch) and returning the result value. A concrete transform
// satisfies both this interface and pointgraph.Transform (Name() string);
// the engine recovers the richer interface via a type assertion on
// Point.Transform, keeping pkg/pointgraph free of any dependency on
// pkg/batch or pkg/rpnvm.
type Transform interface {
	Name() string
	Apply(ctx context.Context, b *Batch) (value.Value, error)
}

// RPNTransform is a Transform that delegates to the postfix expression
// engine: it parses an RPN program once at load time and runs it fresh
// against each Batch's Inputs accessor.
type RPNTransform struct {
	name string
	prog rpnvm.Program
}

// NewRPNTransform parses source into a reusable Program. Returns the
// *rpnvm.EvalFailure from rpnvm.Parse, wrapped with the transform's name,
// if source fails to parse; the loader should treat this as fatal for the
// owning point, matching the metadata-invalid handling for unparsable
// transform programs.
func NewRPNTransform(name, source string) (*RPNTransform, error) {
	prog, err := rpnvm.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("batch: parsing transform %q: %w", name, err)
	}
	return &RPNTransform{name: name, prog: prog}, nil
}

func (t *RPNTransform) Name() string { return t.name }

func (t *RPNTransform) Apply(_ context.Context, b *Batch) (value.Value, error) {
	vm := rpnvm.NewVM(b)
	if b.engine != nil && b.engine.zone != nil {
		vm.Zone = b.engine.zone
	}
	return vm.Run(t.prog)
}

// Batch is the transient per-(point, timestamp) computation context: it
// lives for exactly one batch. It is handed to the result point's Transform and also
// implements rpnvm.Inputs so an RPNTransform can resolve $n/@n variables
// directly against it.
type Batch struct {
	engine *Engine
	point  *pointgraph.Point
	stamp  temporal.Timestamp
	inputs []resolvedInput
}

type resolvedInput struct {
	point *pointgraph.Point
	value value.Value
	ts    temporal.Timestamp
	ok    bool
}

// Point returns the result point being computed.
func (b *Batch) Point() *pointgraph.Point { return b.point }

// Stamp returns the nominal computation timestamp, not wall clock.
func (b *Batch) Stamp() temporal.Timestamp { return b.stamp }

// InputValue implements rpnvm.Inputs. n==0 is "$0 = result point
// itself", represented as the point's own name.
func (b *Batch) InputValue(n int) (value.Value, bool) {
	if n == 0 {
		return value.String(b.point.Name), true
	}
	idx := n - 1
	if idx < 0 || idx >= len(b.inputs) || !b.inputs[idx].ok {
		return value.Value{}, false
	}
	return b.inputs[idx].value, true
}

func (b *Batch) InputName(n int) (string, bool) {
	if n == 0 {
		return b.point.Name, true
	}
	idx := n - 1
	if idx < 0 || idx >= len(b.inputs) {
		return "", false
	}
	return b.inputs[idx].point.Name, true
}

func (b *Batch) InputTimestamp(n int) (value.Value, bool) {
	if n == 0 {
		return value.DateTime(b.stamp), true
	}
	idx := n - 1
	if idx < 0 || idx >= len(b.inputs) || !b.inputs[idx].ok {
		return value.Value{}, false
	}
	return value.DateTime(b.inputs[idx].ts), true
}

// InputCount implements rpnvm.Inputs' `$#`: the number of input
// relations resolved for this computation.
func (b *Batch) InputCount() int { return len(b.inputs) }

// Param implements rpnvm.Inputs' `@n` positional parameter lookup: the
// nth positional Param value of the result point.
func (b *Batch) Param(n int) (value.Value, bool) {
	return nthParam(b.point.Params, n)
}

// nthParam returns the nth (1-based) parameter value across the ordered
// key iteration of p, treating the flattened multimap as one positional
// sequence. Shared with the summarizer driver.
func nthParam(p *params.Params, n int) (value.Value, bool) {
	if p == nil || n < 1 {
		return value.Value{}, false
	}
	i := 0
	for _, key := range p.Keys() {
		vals, _ := p.Get(key)
		for _, prim := range vals {
			i++
			if i == n {
				return primitiveToValue(prim), true
			}
		}
	}
	return value.Value{}, false
}

func primitiveToValue(p params.Primitive) value.Value {
	if s, ok := p.AsString(); ok {
		return value.String(s)
	}
	if f, ok := p.AsNumber(); ok {
		return value.Double(f)
	}
	if bl, ok := p.AsBool(); ok {
		return value.Boolean(bl)
	}
	if e, ok := p.AsElapsed(); ok {
		return value.ElapsedTime(e)
	}
	return value.Null()
}
