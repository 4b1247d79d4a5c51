// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parser implements the parsing of templates.
//
// The same grammar is available in two concrete syntaxes, Braces and Tags.
// Parsing is recursive descent: at each level the parser looks at the next
// literal and parses the directive it opens, or a text run if no directive
// of that level starts there. A body ends at EOF or at a closing literal,
// and the directive that opened the body checks that it is the expected
// one.
package parser

import "github.com/open2b/nodegen/ast"

// parsing is a parsing state.
type parsing struct {
	path     string
	syntax   *Syntax
	buf      *buffer
	closers  []string
	breakers [messageFieldLevel + 1][]string
}

func newParsing(src []byte, syntax *Syntax, path string) *parsing {
	p := &parsing{
		path:    path,
		syntax:  syntax,
		buf:     newBuffer(src),
		closers: syntax.closers(),
	}
	for lvl := range p.breakers {
		p.breakers[lvl] = syntax.breakers(level(lvl))
	}
	return p
}

// errorAt panics with a *SyntaxError of kind k at offset pos. The panic is
// recovered by the parse functions.
func (p *parsing) errorAt(pos int, k ErrorKind) {
	panic(&SyntaxError{Path: p.path, Pos: *p.buf.position(pos, pos), Kind: k})
}

// atCloser reports whether the unread source starts with a closing literal.
func (p *parsing) atCloser() bool {
	return hasAnyPrefix(p.buf.src[p.buf.pos:], p.closers)
}

// recoverSyntaxError recovers a *SyntaxError panic and stores it in err.
// Other panics are propagated.
func recoverSyntaxError(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(*SyntaxError); ok {
			*err = e
		} else {
			panic(r)
		}
	}
}

// ParseTemplate parses a global template in the given syntax. path is only
// used in errors. If a syntax error occurs it returns a *SyntaxError.
//
// It panics if src is not valid UTF-8.
func ParseTemplate(src []byte, syntax *Syntax, path string) (tree *ast.Template, err error) {
	p := newParsing(src, syntax, path)
	defer recoverSyntaxError(&err)
	t := list(p, p.templatePart)
	if !p.buf.EOF() {
		p.errorAt(p.buf.Pos(), UnexpectedClosingTag)
	}
	return t, nil
}

// ParseNodeTemplate parses a node template, a template rendered for a
// single node, in the given syntax. path is only used in errors. If a
// syntax error occurs it returns a *SyntaxError.
//
// It panics if src is not valid UTF-8.
func ParseNodeTemplate(src []byte, syntax *Syntax, path string) (tree *ast.NodeTemplate, err error) {
	p := newParsing(src, syntax, path)
	defer recoverSyntaxError(&err)
	t := list(p, p.nodePart)
	if !p.buf.EOF() {
		p.errorAt(p.buf.Pos(), UnexpectedClosingTag)
	}
	return t, nil
}

// templatePart parses a part of a global template.
func (p *parsing) templatePart() (ast.TemplatePart, bool) {
	switch {
	case p.buf.Is(p.syntax.HelperOpen):
		return p.helper(), true
	case p.buf.Is(p.syntax.Loops[NodesLoop].Open):
		pos, body := loop(p, NodesLoop, p.nodePart)
		return ast.NewNodesLoop(pos, body), true
	case p.buf.Is(p.syntax.Loops[MessagesLoop].Open):
		pos, body := loop(p, MessagesLoop, p.messagePart)
		return ast.NewMessagesLoop(pos, body), true
	case p.buf.Is(p.syntax.IfOpen):
		pos, predicate, then, els := condition(p, p.templatePart)
		return ast.NewGlobalCondition(pos, predicate, then, els), true
	}
	if t := p.text(globalLevel); t != nil {
		return t, true
	}
	return nil, false
}

// nodePart parses a part of a node template.
func (p *parsing) nodePart() (ast.NodePart, bool) {
	switch {
	case p.buf.Is(p.syntax.HelperOpen):
		return p.helper(), true
	case p.buf.Is(p.syntax.Loops[NodeFieldsLoop].Open):
		pos, body := loop(p, NodeFieldsLoop, p.nodeFieldPart)
		return ast.NewNodeFieldsLoop(pos, body), true
	case p.buf.Is(p.syntax.IfOpen):
		pos, predicate, then, els := condition(p, p.nodePart)
		return ast.NewNodeCondition(pos, predicate, then, els), true
	}
	if t := p.text(nodeLevel); t != nil {
		return t, true
	}
	return nil, false
}

// nodeFieldPart parses a part of a node field template.
func (p *parsing) nodeFieldPart() (ast.NodeFieldPart, bool) {
	switch {
	case p.buf.Is(p.syntax.HelperOpen):
		return p.helper(), true
	case p.buf.Is(p.syntax.IfOpen):
		pos, predicate, then, els := condition(p, p.nodeFieldPart)
		return ast.NewNodeFieldCondition(pos, predicate, then, els), true
	}
	if t := p.text(nodeFieldLevel); t != nil {
		return t, true
	}
	return nil, false
}

// messagePart parses a part of a message template.
func (p *parsing) messagePart() (ast.MessagePart, bool) {
	switch {
	case p.buf.Is(p.syntax.HelperOpen):
		return p.helper(), true
	case p.buf.Is(p.syntax.IfOpen):
		pos, predicate, then, els := condition(p, p.messagePart)
		return ast.NewMessageCondition(pos, predicate, then, els), true
	case p.buf.Is(p.syntax.Loops[MessageFieldsLoop].Open):
		pos, body := loop(p, MessageFieldsLoop, p.messageFieldPart)
		return ast.NewMessageFieldsLoop(pos, body), true
	}
	if t := p.text(messageLevel); t != nil {
		return t, true
	}
	return nil, false
}

// messageFieldPart parses a part of a message field template.
func (p *parsing) messageFieldPart() (ast.MessageFieldPart, bool) {
	switch {
	case p.buf.Is(p.syntax.HelperOpen):
		return p.helper(), true
	case p.buf.Is(p.syntax.IfOpen):
		pos, predicate, then, els := condition(p, p.messageFieldPart)
		return ast.NewMessageFieldCondition(pos, predicate, then, els), true
	}
	if t := p.text(messageFieldLevel); t != nil {
		return t, true
	}
	return nil, false
}
