// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package params implements the insertion-ordered, defaults-chained
// parameter multimap. It backs point parameters, relation parameters,
// and the keyed-group configuration surface.
package params

import (
	"fmt"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

// Primitive is the tagged union of values a Params entry may hold:
// string, number (float64), boolean, elapsed time, or a reference (string
// naming another entity, e.g. a point name).
type Primitive struct {
	kind primKind
	str  string
	num  float64
	b    bool
	el   temporal.Elapsed
}

type primKind int

const (
	kindString primKind = iota
	kindNumber
	kindBool
	kindElapsed
	kindReference
)

func String(s string) Primitive    { return Primitive{kind: kindString, str: s} }
func Number(n float64) Primitive   { return Primitive{kind: kindNumber, num: n} }
func Bool(b bool) Primitive        { return Primitive{kind: kindBool, b: b} }
func ElapsedValue(e temporal.Elapsed) Primitive {
	return Primitive{kind: kindElapsed, el: e}
}
func Reference(name string) Primitive { return Primitive{kind: kindReference, str: name} }

func (p Primitive) AsString() (string, bool) {
	if p.kind == kindString || p.kind == kindReference {
		return p.str, true
	}
	return "", false
}

func (p Primitive) AsNumber() (float64, bool) {
	if p.kind == kindNumber {
		return p.num, true
	}
	return 0, false
}

func (p Primitive) AsBool() (bool, bool) {
	if p.kind == kindBool {
		return p.b, true
	}
	return false, false
}

func (p Primitive) AsElapsed() (temporal.Elapsed, bool) {
	if p.kind == kindElapsed {
		return p.el, true
	}
	return temporal.EMPTY, false
}

func (p Primitive) String() string {
	switch p.kind {
	case kindString, kindReference:
		return p.str
	case kindNumber:
		return fmt.Sprintf("%g", p.num)
	case kindBool:
		return fmt.Sprintf("%t", p.b)
	case kindElapsed:
		return p.el.String()
	default:
		return ""
	}
}

// Params is an insertion-ordered multimap string -> []Primitive, with an
// optional parent chain ("defaults"): a Get that misses the local map falls
// through to the parent. Freezable; any mutation attempted after Freeze
// returns ErrFrozen.
type Params struct {
	keys    []string
	values  map[string][]Primitive
	parent  *Params
	frozen  bool
}

// ErrFrozen is returned by mutating methods once Freeze has been called.
var ErrFrozen = fmt.Errorf("params: frozen")

// ErrDefaultsCycle is returned by WithDefaults if it would create a cycle
// in the defaults chain, which must stay finite.
var ErrDefaultsCycle = fmt.Errorf("params: defaults chain would cycle")

func New() *Params {
	return &Params{values: make(map[string][]Primitive)}
}

// WithDefaults sets parent as this Params' defaults parent. Returns
// ErrDefaultsCycle if parent already (transitively) has p as a defaults
// ancestor.
func (p *Params) WithDefaults(parent *Params) error {
	if p.frozen {
		return ErrFrozen
	}
	for cur := parent; cur != nil; cur = cur.parent {
		if cur == p {
			return ErrDefaultsCycle
		}
	}
	p.parent = parent
	return nil
}

// Set replaces all values for key with vals, appending key to the insertion
// order on first use.
func (p *Params) Set(key string, vals ...Primitive) error {
	if p.frozen {
		return ErrFrozen
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = vals
	return nil
}

// Add appends vals to the existing list for key (or creates it).
func (p *Params) Add(key string, vals ...Primitive) error {
	if p.frozen {
		return ErrFrozen
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = append(p.values[key], vals...)
	return nil
}

// Get returns the value list for key, falling through to the defaults parent
// chain if key is absent locally.
func (p *Params) Get(key string) ([]Primitive, bool) {
	if v, ok := p.values[key]; ok {
		return v, true
	}
	if p.parent != nil {
		return p.parent.Get(key)
	}
	return nil, false
}

// GetFirst returns the first value for key, if any.
func (p *Params) GetFirst(key string) (Primitive, bool) {
	vals, ok := p.Get(key)
	if !ok || len(vals) == 0 {
		return Primitive{}, false
	}
	return vals[0], true
}

// Keys returns the keys defined locally, in insertion order (defaults-only
// keys are not included).
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Freeze makes p immutable to further Set/Add/WithDefaults calls. A Params
// using p as its defaults parent is not frozen by this call.
func (p *Params) Freeze() {
	p.frozen = true
}

func (p *Params) IsFrozen() bool { return p.frozen }
