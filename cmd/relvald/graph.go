// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xapiens/RVPF-sub009/pkg/batch"
	"github.com/xapiens/RVPF-sub009/pkg/config"
	"github.com/xapiens/RVPF-sub009/pkg/filter"
	"github.com/xapiens/RVPF-sub009/pkg/params"
	"github.com/xapiens/RVPF-sub009/pkg/pointgraph"
	"github.com/xapiens/RVPF-sub009/pkg/syncsched"
	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

// relvaldNamespace seeds deterministic point UUIDs from their configured
// name, so a point's identity survives a config reload without an
// explicit UUID key.
var relvaldNamespace = uuid.MustParse("6f6d6f9e-3b8e-4e2e-9f8a-0b6a7a2a9b3e")

// buildGraph constructs a frozen pointgraph.Graph from the "points"
// keyed-group in cfg. This is a minimal example loader, not the
// deliverable: metadata/XML loading is treated as an external
// collaborator supplying an already-frozen graph, so a real deployment
// replaces this function with its own loader while reusing everything
// downstream (pkg/pointgraph, pkg/batch, pkg/filter, pkg/syncsched).
func buildGraph(cfg *config.Group, zone *time.Location) (*pointgraph.Graph, map[uuid.UUID]filter.Filter, error) {
	points, ok := cfg.Subgroup("points")
	if !ok {
		return nil, nil, fmt.Errorf("relvald: config has no \"points\" group")
	}

	graph := pointgraph.NewGraph()
	filters := make(map[uuid.UUID]filter.Filter)
	byName := make(map[string]*pointgraph.Point)

	for _, name := range points.SubgroupKeys() {
		pg, _ := points.Subgroup(name)

		id := uuid.NewSHA1(relvaldNamespace, []byte(name))
		level := 0
		if v, ok := pg.GetFirst("LEVEL"); ok {
			if n, ok := v.AsNumber(); ok {
				level = int(n)
			}
		}

		p := pointgraph.NewPoint(id, name, level)
		p.Params = pg.Params
		p.NullRemoves = pg.NullRemoves()
		p.Volatile = pg.Volatile()

		if s, err := syncsched.Build(pg.Params, zone, temporal.Unbounded); err == nil {
			p.Sync = s
		}

		if source, ok := pg.GetFirst("TRANSFORM"); ok {
			if src, ok := source.AsString(); ok && src != "" {
				t, err := batch.NewRPNTransform(name, src)
				if err != nil {
					return nil, nil, fmt.Errorf("relvald: point %s: %w", name, err)
				}
				p.Transform = t
			}
		}

		stepCfg := filter.StepConfig{
			DeadbandGap:   pg.DeadbandGap(),
			DeadbandRatio: pg.DeadbandRatio(),
			FloorGap:      pg.FloorGap(),
			FloorRatio:    pg.FloorRatio(),
			CeilingGap:    pg.CeilingGap(),
			CeilingRatio:  pg.CeilingRatio(),
		}
		if tl, ok := pg.FilterTimeLimit(); ok {
			stepCfg.TimeLimit = tl
		}
		if err := stepCfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("relvald: point %s: %w", name, err)
		}
		filters[id] = filter.NewStep(stepCfg, temporal.BeginningOfTime)

		if err := graph.Add(p); err != nil {
			return nil, nil, fmt.Errorf("relvald: adding point %s: %w", name, err)
		}
		byName[name] = p
	}

	for _, name := range points.SubgroupKeys() {
		pg, _ := points.Subgroup(name)
		result := byName[name]

		inputs, _ := pg.Get("INPUTS")
		for _, in := range inputs {
			inName, ok := in.AsString()
			if !ok {
				continue
			}
			input, ok := byName[inName]
			if !ok {
				return nil, nil, fmt.Errorf("relvald: point %s references unknown input %s", name, inName)
			}
			if err := graph.AddRelation(&pointgraph.Relation{
				Input:  input,
				Result: result,
				Params: params.New(),
			}); err != nil {
				return nil, nil, fmt.Errorf("relvald: relation %s -> %s: %w", inName, name, err)
			}
		}
	}

	if err := graph.Freeze(); err != nil {
		return nil, nil, fmt.Errorf("relvald: freezing graph: %w", err)
	}
	return graph, filters, nil
}
