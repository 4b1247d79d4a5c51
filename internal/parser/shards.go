// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"strings"

	"github.com/open2b/nodegen/ast"
)

// text parses a text run up to the first breaker of level lvl or EOF. It
// returns nil if the resulting text is empty.
func (p *parsing) text(lvl level) *ast.Text {
	start := p.buf.Pos()
	breakers := p.breakers[lvl]
	end := start
	for end < len(p.buf.src) && !hasAnyPrefix(p.buf.src[end:], breakers) {
		end++
	}
	s, _ := p.buf.Take(end - start)
	s = strings.ReplaceAll(s, p.syntax.Dnl+"\n", "")
	if s == "" {
		return nil
	}
	return ast.NewText(p.buf.position(start, end), s)
}

func hasAnyPrefix(src []byte, prefixes []string) bool {
	for _, prefix := range prefixes {
		if len(src) >= len(prefix) && string(src[:len(prefix)]) == prefix {
			return true
		}
	}
	return false
}

// name parses a helper or predicate name.
func (p *parsing) name() string {
	start := p.buf.Pos()
	end := start
	for end < len(p.buf.src) && isNameByte(p.buf.src[end]) {
		end++
	}
	s, _ := p.buf.Take(end - start)
	return s
}

func isNameByte(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_' || c == '-'
}

// helper parses a helper.
func (p *parsing) helper() *ast.Helper {
	start := p.buf.Pos()
	p.buf.Consume(p.syntax.HelperOpen)
	nameStart := p.buf.Pos()
	name := p.name()
	if name == "" || !p.buf.Is(p.syntax.HelperClose) {
		after := p.buf.Pos()
		p.buf.SetPos(nameStart)
		if _, ok := p.buf.TakeUntil(p.syntax.HelperClose); ok {
			p.errorAt(nameStart, MissingHelperName)
		}
		p.errorAt(after, MissingHelperClose)
	}
	p.buf.Consume(p.syntax.HelperClose)
	return ast.NewHelper(p.buf.position(start, p.buf.Pos()), name)
}

// condition parses a condition whose branches are parsed with item.
func condition[P ast.Node](p *parsing, item func() (P, bool)) (*ast.Position, string, *ast.List[P], *ast.List[P]) {
	start := p.buf.Pos()
	p.buf.Consume(p.syntax.IfOpen)
	nameStart := p.buf.Pos()
	predicate := p.name()
	if p.buf.EOF() {
		p.errorAt(p.buf.Pos(), UnexpectedEOF)
	}
	if predicate == "" || !p.buf.Is(p.syntax.IfClose) {
		p.errorAt(nameStart, MissingPredicateInCondition)
	}
	p.buf.Consume(p.syntax.IfClose)
	if p.buf.EOF() {
		p.errorAt(p.buf.Pos(), MissingIfTrueBody)
	}
	then := list(p, item)
	if !p.buf.Is(p.syntax.Else) {
		p.errorAt(p.buf.Pos(), MissingElse)
	}
	p.buf.Consume(p.syntax.Else)
	if p.buf.EOF() {
		p.errorAt(p.buf.Pos(), MissingIfFalseBody)
	}
	els := list(p, item)
	if !p.buf.Is(p.syntax.End) {
		p.errorAt(p.buf.Pos(), MissingIfClosingTag)
	}
	p.buf.Consume(p.syntax.End)
	return p.buf.position(start, p.buf.Pos()), predicate, then, els
}

// loop parses a loop of kind k whose body is parsed with item. The returned
// body is nil if the loop has no parts.
func loop[P ast.Node](p *parsing, k LoopKind, item func() (P, bool)) (*ast.Position, *ast.List[P]) {
	start := p.buf.Pos()
	delims := p.syntax.Loops[k]
	p.buf.Consume(delims.Open)
	if p.buf.EOF() {
		p.errorAt(p.buf.Pos(), MissingLoopBody)
	}
	body := list(p, item)
	if !p.buf.Is(delims.Close) {
		p.errorAt(p.buf.Pos(), MissingLoopClosingTag)
	}
	p.buf.Consume(delims.Close)
	if len(body.Parts) == 0 {
		body = nil
	}
	return p.buf.position(start, p.buf.Pos()), body
}

// list parses parts with item until EOF or a closing literal.
func list[P ast.Node](p *parsing, item func() (P, bool)) *ast.List[P] {
	l := &ast.List[P]{}
	for !p.buf.EOF() && !p.atCloser() {
		if part, ok := item(); ok {
			l.Parts = append(l.Parts, part)
		}
	}
	return l
}
