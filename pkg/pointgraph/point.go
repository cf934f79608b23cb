// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pointgraph implements the immutable point metadata graph:
// points, their input/result relations, and the query contracts over the
// whole graph. Metadata is loaded once by the caller and frozen
// thereafter; this package never persists or reloads it.
package pointgraph

import (
	"github.com/google/uuid"

	"github.com/xapiens/RVPF-sub009/pkg/content"
	"github.com/xapiens/RVPF-sub009/pkg/params"
	"github.com/xapiens/RVPF-sub009/pkg/syncsched"
)

// Transform is implemented by the batch engine's per-point compute step.
// Kept as an opaque interface here so pointgraph never depends on
// pkg/batch or pkg/rpnvm.
type Transform interface {
	Name() string
}

// Point is the metadata entity backing a monitored value. Once added to a
// Graph and the Graph is frozen, a Point's fields never change.
type Point struct {
	UUID   uuid.UUID
	Name   string
	Level  int
	Origin uuid.UUID // optional; uuid.Nil if unset

	Content content.Codec // nil means Identity
	Store   string        // opaque store reference name; resolved by the caller
	Sync    syncsched.Sync // nil means unsynced
	Params  *params.Params
	Filter  string // filter config key, resolved by pkg/filter at load time

	Transform Transform

	Dropped     bool
	Volatile    bool
	NullRemoves bool

	// attributes is keyed by usage, each usage holding an ordered list of
	// values (a point can carry more than one value per usage, e.g.
	// multiple aliases).
	attributes map[string][]string

	inputRelations  []*Relation
	resultRelations []*Relation
	replicates      []uuid.UUID
}

// NewPoint constructs a Point with empty relation lists and attribute map.
func NewPoint(id uuid.UUID, name string, level int) *Point {
	return &Point{
		UUID:       id,
		Name:       name,
		Level:      level,
		attributes: make(map[string][]string),
	}
}

// SetAttribute records a value under the given usage namespace.
func (p *Point) SetAttribute(usage, value string) {
	p.attributes[usage] = append(p.attributes[usage], value)
}

// Attributes returns the attribute values recorded under usage, or nil if
// none were set.
func (p *Point) Attributes(usage string) []string {
	return p.attributes[usage]
}

// InputRelations returns the relations for which p is the result point —
// i.e. p's inputs.
func (p *Point) InputRelations() []*Relation {
	return p.inputRelations
}

// ResultRelations returns the relations for which p is the input point —
// i.e. the points that depend on p.
func (p *Point) ResultRelations() []*Relation {
	return p.resultRelations
}

// Results returns the distinct result points that depend on p, i.e. the
// points to notify/recompute whenever p changes.
func (p *Point) Results() []*Point {
	out := make([]*Point, 0, len(p.resultRelations))
	seen := make(map[uuid.UUID]bool, len(p.resultRelations))
	for _, rel := range p.resultRelations {
		if seen[rel.Result.UUID] {
			continue
		}
		seen[rel.Result.UUID] = true
		out = append(out, rel.Result)
	}
	return out
}

// Replicates returns the UUIDs of points configured as replicates of p.
func (p *Point) Replicates() []uuid.UUID {
	return p.replicates
}

// Relation is a directed edge `(input -> result)`, carrying its own
// parameter map and optional sync.
type Relation struct {
	Input  *Point
	Result *Point
	Params *params.Params
	Sync   syncsched.Sync // optional; nil means use the result's own sync
}
