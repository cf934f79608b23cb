// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config implements the keyed-group configuration surface: a
// nested, insertion-ordered multimap loaded from JSON and validated
// against a JSON-Schema, with an optional .env overlay read first. The
// embed+Loaders+Compile+Validate wiring is grounded on the teacher's
// pkg/schema/validate.go; the .env overlay is grounded on the teacher's
// main.go environment loading.
package config

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/xapiens/RVPF-sub009/pkg/params"
)

// ErrMetadataInvalid is raised on a malformed or schema-rejected
// configuration file.
var ErrMetadataInvalid = fmt.Errorf("config: invalid configuration")

//go:embed schema.json
var schemaFiles embed.FS

func loadSchema(s string) (io.ReadCloser, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	return schemaFiles.Open(strings.TrimPrefix(u.Path, "/"))
}

func init() {
	jsonschema.Loaders["embedfs"] = loadSchema
}

// Group is a keyed group: an insertion-ordered multimap whose values
// are either Params primitives or nested Groups. It embeds *params.Params
// so every Params accessor (Get, GetFirst, Keys, ...) is directly usable
// against a Group's scalar/array entries.
type Group struct {
	*params.Params
	groups     map[string]*Group
	groupOrder []string
}

func newGroup() *Group {
	return &Group{Params: params.New(), groups: make(map[string]*Group)}
}

// Subgroup returns the nested group at key, if any.
func (g *Group) Subgroup(key string) (*Group, bool) {
	sub, ok := g.groups[key]
	return sub, ok
}

// SubgroupKeys returns the nested-group keys in insertion order.
func (g *Group) SubgroupKeys() []string {
	out := make([]string, len(g.groupOrder))
	copy(out, g.groupOrder)
	return out
}

func (g *Group) setSubgroup(key string, sub *Group) {
	if _, ok := g.groups[key]; !ok {
		g.groupOrder = append(g.groupOrder, key)
	}
	g.groups[key] = sub
}

// Load reads an optional .env overlay at envPath (ignored if absent), then
// reads and schema-validates the JSON configuration at configPath,
// returning its root Group. envPath may be empty to skip the overlay.
func Load(configPath, envPath string) (*Group, error) {
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("%w: loading env overlay: %v", ErrMetadataInvalid, err)
			}
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading config: %v", ErrMetadataInvalid, err)
	}
	return Parse(data)
}

// Parse validates raw JSON bytes against the embedded keyed-group schema
// and builds the resulting Group tree, preserving source key order.
func Parse(data []byte) (*Group, error) {
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataInvalid, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	g, err := parseGroup(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing config: %v", ErrMetadataInvalid, err)
	}
	return g, nil
}

func validate(data []byte) error {
	s, err := jsonschema.Compile("embedFS:///schema.json")
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}

// parseGroup consumes a '{' token and its matching body, building a Group.
func parseGroup(dec *json.Decoder) (*Group, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	return parseGroupBody(dec)
}

// parseGroupBody assumes the opening '{' has already been consumed.
func parseGroupBody(dec *json.Decoder) (*Group, error) {
	g := newGroup()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		if err := parseValue(dec, g, key); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil { // consume closing '}'
		return nil, err
	}
	return g, nil
}

func parseValue(dec *json.Decoder, g *Group, key string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			sub, err := parseGroupBody(dec)
			if err != nil {
				return err
			}
			g.setSubgroup(key, sub)
		case '[':
			vals, err := parseArrayBody(dec)
			if err != nil {
				return err
			}
			return g.Params.Set(key, vals...)
		default:
			return fmt.Errorf("unexpected delimiter %v", v)
		}
	case string:
		return g.Params.Set(key, params.String(v))
	case float64:
		return g.Params.Set(key, params.Number(v))
	case bool:
		return g.Params.Set(key, params.Bool(v))
	case nil:
		return g.Params.Set(key)
	default:
		return fmt.Errorf("unsupported value type %T for key %q", tok, key)
	}
	return nil
}

// parseArrayBody assumes the opening '[' has already been consumed and
// expects scalar elements only.
func parseArrayBody(dec *json.Decoder) ([]params.Primitive, error) {
	var out []params.Primitive
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch v := tok.(type) {
		case string:
			out = append(out, params.String(v))
		case float64:
			out = append(out, params.Number(v))
		case bool:
			out = append(out, params.Bool(v))
		case nil:
			// skip null array elements
		default:
			return nil, fmt.Errorf("array elements must be scalar, got %T", tok)
		}
	}
	if _, err := dec.Token(); err != nil { // consume closing ']'
		return nil, err
	}
	return out, nil
}
