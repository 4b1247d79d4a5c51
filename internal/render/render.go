// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render implements the rendering of a template tree.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/open2b/nodegen/ast"
	"github.com/open2b/nodegen/fns"
	"github.com/open2b/nodegen/schema"
)

// state is a rendering state.
type state struct {
	path string
	fns  *fns.Fns
	b    strings.Builder
}

// Template renders the global template tree for the context ctx, calling
// the helpers and predicates of f. path is only used in errors.
//
// If a helper or a predicate is not registered, it returns an *Error. The
// result is not normalized.
func Template(path string, tree *ast.Template, ctx *schema.GlobalContext, f *fns.Fns) (string, error) {
	if tree == nil {
		return "", errors.New("render: tree is nil")
	}
	if ctx == nil {
		ctx = &schema.GlobalContext{}
	}
	s := &state{path: path, fns: f}
	if err := renderList(s, tree, ctx); err != nil {
		return "", err
	}
	return s.b.String(), nil
}

// NodeTemplate renders the node template tree for the node n, calling the
// helpers and predicates of f. path is only used in errors.
func NodeTemplate(path string, tree *ast.NodeTemplate, n *schema.Node, f *fns.Fns) (string, error) {
	if tree == nil {
		return "", errors.New("render: tree is nil")
	}
	if n == nil {
		return "", errors.New("render: node is nil")
	}
	s := &state{path: path, fns: f}
	if err := renderList(s, tree, n); err != nil {
		return "", err
	}
	return s.b.String(), nil
}

// renderList renders the parts of list in order. A nil list renders
// nothing.
func renderList[P ast.Node, T fns.Subject](s *state, list *ast.List[P], ctx *T) error {
	if list == nil {
		return nil
	}
	for _, part := range list.Parts {
		if err := renderPart(s, part, ctx); err != nil {
			return err
		}
	}
	return nil
}

// renderPart renders a part for the context ctx. The parser guarantees that
// a part only occurs at a level whose context type is the one expected by
// the part.
func renderPart[T fns.Subject](s *state, part ast.Node, ctx *T) error {

	switch n := part.(type) {

	case *ast.Text:
		s.b.WriteString(n.Text)

	case *ast.Helper:
		v, ok := fns.Helper(s.fns, n.Name, ctx)
		if !ok {
			return s.notRegistered(n, fns.KindHelper, n.Name, fns.ContextName[T]())
		}
		s.b.WriteString(v)

	case *ast.GlobalCondition:
		return renderCondition(s, n, &n.Condition, ctx)
	case *ast.NodeCondition:
		return renderCondition(s, n, &n.Condition, ctx)
	case *ast.NodeFieldCondition:
		return renderCondition(s, n, &n.Condition, ctx)
	case *ast.MessageCondition:
		return renderCondition(s, n, &n.Condition, ctx)
	case *ast.MessageFieldCondition:
		return renderCondition(s, n, &n.Condition, ctx)

	case *ast.NodesLoop:
		if n.Body == nil {
			return nil
		}
		for _, node := range any(ctx).(*schema.GlobalContext).Nodes {
			if err := renderList(s, n.Body, node); err != nil {
				return err
			}
		}

	case *ast.NodeFieldsLoop:
		if n.Body == nil {
			return nil
		}
		for _, nf := range schema.NodeFields(any(ctx).(*schema.Node)) {
			if err := renderList(s, n.Body, &nf); err != nil {
				return err
			}
		}

	case *ast.MessagesLoop:
		if n.Body == nil {
			return nil
		}
		for _, m := range any(ctx).(*schema.GlobalContext).Messages {
			if err := renderList(s, n.Body, m); err != nil {
				return err
			}
		}

	case *ast.MessageFieldsLoop:
		if n.Body == nil {
			return nil
		}
		for _, mf := range schema.MessageFields(any(ctx).(*schema.Message)) {
			if err := renderList(s, n.Body, &mf); err != nil {
				return err
			}
		}

	default:
		panic(fmt.Sprintf("render: unexpected node %T", part))
	}

	return nil
}

// renderCondition renders the branch of cond selected by its predicate.
func renderCondition[P ast.Node, T fns.Subject](s *state, n ast.Node, cond *ast.Condition[ast.List[P]], ctx *T) error {
	v, ok := fns.Predicate(s.fns, cond.Predicate, ctx)
	if !ok {
		return s.notRegistered(n, fns.KindPredicate, cond.Predicate, fns.ContextName[T]())
	}
	if v {
		return renderList(s, cond.Then, ctx)
	}
	return renderList(s, cond.Else, ctx)
}

// notRegistered returns an *Error for the function name not registered.
func (s *state) notRegistered(n ast.Node, kind fns.Kind, name, context string) *Error {
	e := &Error{Path: s.path, Kind: kind, Name: name, Context: context}
	if pos := n.Pos(); pos != nil {
		e.Pos = *pos
	}
	return e
}
