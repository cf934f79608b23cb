// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import (
	"strconv"

	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// Parse builds a Program from source text: macro expansion, tokenization,
// then recursive-descent parsing of blocks/marks/word definitions and
// the structured control keywords (if/unless/while/do/try).
func Parse(src string) (Program, error) {
	expanded, err := expandMacros(src)
	if err != nil {
		return nil, err
	}
	tokens, err := Tokenize(expanded)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	prog, err := p.parseUntil(-1)
	if err != nil {
		return nil, err
	}
	if p.pos != len(tokens) {
		return nil, fail(ParseError, p.pos, "unexpected closing delimiter")
	}
	return prog, nil
}

type parser struct {
	tokens []Token
	pos    int
}

// parseUntil parses nodes until EOF or a close-kind token matching
// closeKind is seen (left unconsumed so the caller can check it); pass -1
// to parse to EOF.
func (p *parser) parseUntil(closeKind TokenKind) (Program, error) {
	var prog Program
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if closeKind >= 0 && tok.Kind == closeKind {
			return prog, nil
		}
		node, err := p.parseOne()
		if err != nil {
			return nil, err
		}
		prog = append(prog, node)
	}
	if closeKind >= 0 {
		return nil, fail(ParseError, p.pos, "unterminated block")
	}
	return prog, nil
}

func (p *parser) parseOne() (Node, error) {
	tok := p.tokens[p.pos]
	switch tok.Kind {
	case TokBlockOpen:
		p.pos++
		body, err := p.parseUntil(TokBlockClose)
		if err != nil {
			return nil, err
		}
		p.pos++ // consume '}'
		return BlockNode{Program: body}, nil
	case TokBlockClose:
		return nil, fail(ParseError, p.pos, "unmatched '}'")
	case TokMarkOpen:
		p.pos++
		body, err := p.parseUntil(TokMarkClose)
		if err != nil {
			return nil, err
		}
		p.pos++ // consume ']'
		return MarkedNode{Body: body}, nil
	case TokMarkClose:
		return nil, fail(ParseError, p.pos, "unmatched ']'")
	case TokWordDefOpen:
		return p.parseColon()
	case TokWordDefClose:
		return nil, fail(ParseError, p.pos, "unmatched ';'")
	case TokString:
		p.pos++
		return LiteralNode{Value: value.String(tok.Text)}, nil
	default: // TokWord
		switch tok.Text {
		case "if":
			return p.parseIf(false)
		case "unless":
			return p.parseIf(true)
		case "while":
			p.pos++
			cond, err := p.operand("while condition")
			if err != nil {
				return nil, err
			}
			body, err := p.operand("while body")
			if err != nil {
				return nil, err
			}
			return LoopNode{Cond: cond, Body: body}, nil
		case "do":
			p.pos++
			body, err := p.operand("do body")
			if err != nil {
				return nil, err
			}
			cond, err := p.operand("do condition")
			if err != nil {
				return nil, err
			}
			return LoopNode{PostTest: true, Cond: cond, Body: body}, nil
		case "try":
			p.pos++
			body, err := p.operand("try body")
			if err != nil {
				return nil, err
			}
			catch, err := p.operand("try catch")
			if err != nil {
				return nil, err
			}
			return TryNode{Body: body, Catch: catch}, nil
		case "else":
			return nil, fail(ParseError, p.pos, "'else' without a preceding 'if'")
		}
		p.pos++
		if lit, ok := literalFromWord(tok.Text); ok {
			return LiteralNode{Value: lit}, nil
		}
		return WordRefNode{Name: tok.Text}, nil
	}
}

// parseIf handles `COND if THEN else ELSE` / `... unless THEN else ELSE`;
// the else part is optional.
func (p *parser) parseIf(invert bool) (Node, error) {
	p.pos++
	then, err := p.operand("if branch")
	if err != nil {
		return nil, err
	}
	n := IfNode{Invert: invert, Then: then}
	if p.pos < len(p.tokens) && p.tokens[p.pos].Kind == TokWord && p.tokens[p.pos].Text == "else" {
		p.pos++
		other, err := p.operand("else branch")
		if err != nil {
			return nil, err
		}
		n.Else = other
	}
	return n, nil
}

// operand parses the single following element a control keyword consumes.
func (p *parser) operand(what string) (Node, error) {
	if p.pos >= len(p.tokens) {
		return nil, fail(ParseError, p.pos, "missing "+what)
	}
	return p.parseOne()
}

// parseColon disambiguates ':' between a word definition `: name body ;`
// and the bare dup operation: it opens a definition only when a ';'
// follows later in the token stream and the next token is a plausible
// fresh name — not a literal and not an already-registered operation
// (so `$ : *` duplicates even inside a definition body).
func (p *parser) parseColon() (Node, error) {
	if !p.opensWordDef() {
		p.pos++
		return WordRefNode{Name: ":"}, nil
	}
	p.pos++
	name := p.tokens[p.pos].Text
	p.pos++
	body, err := p.parseUntil(TokWordDefClose)
	if err != nil {
		return nil, err
	}
	p.pos++ // consume ';'
	return WordDefNode{Name: name, Body: body}, nil
}

func (p *parser) opensWordDef() bool {
	next := p.pos + 1
	if next >= len(p.tokens) || p.tokens[next].Kind != TokWord {
		return false
	}
	name := p.tokens[next].Text
	if _, isLit := literalFromWord(name); isLit {
		return false
	}
	if _, isOp := lookupOperation(name); isOp {
		return false
	}
	for i := next + 1; i < len(p.tokens); i++ {
		if p.tokens[i].Kind == TokWordDefClose {
			return true
		}
	}
	return false
}

// literalFromWord auto-tags numeric and boolean literals: long if
// integral and fits, double otherwise; booleans true/false.
func literalFromWord(text string) (value.Value, bool) {
	switch text {
	case "true":
		return value.Boolean(true), true
	case "false":
		return value.Boolean(false), true
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return value.Long(i), true
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return value.Double(f), true
	}
	return value.Value{}, false
}
