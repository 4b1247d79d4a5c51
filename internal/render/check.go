// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/open2b/nodegen/ast"
	"github.com/open2b/nodegen/fns"
	"github.com/open2b/nodegen/schema"
)

// checker collects the references to functions not registered.
type checker struct {
	path    string
	fns     *fns.Fns
	missing []*Error
}

// Check checks that every helper and predicate referenced by the global
// template tree can be resolved by f at its level, considering the
// fallbacks of the fields contexts. If some cannot, it returns a
// *MissingError.
//
// Unlike Template, Check also visits the bodies of loops and the branches
// of conditions that would not be rendered for a given context.
func Check(path string, tree *ast.Template, f *fns.Fns) error {
	c := &checker{path: path, fns: f}
	checkList[ast.TemplatePart, schema.GlobalContext](c, tree)
	return c.err()
}

// CheckNode is like Check but for a node template.
func CheckNode(path string, tree *ast.NodeTemplate, f *fns.Fns) error {
	c := &checker{path: path, fns: f}
	checkList[ast.NodePart, schema.Node](c, tree)
	return c.err()
}

func (c *checker) err() error {
	if len(c.missing) > 0 {
		return &MissingError{Errors: c.missing}
	}
	return nil
}

func checkList[P ast.Node, T fns.Subject](c *checker, list *ast.List[P]) {
	if list == nil {
		return
	}
	for _, part := range list.Parts {
		checkPart[T](c, part)
	}
}

func checkPart[T fns.Subject](c *checker, part ast.Node) {
	switch n := part.(type) {
	case *ast.Text:
	case *ast.Helper:
		if !fns.Resolvable[T, string](c.fns, n.Name) {
			c.add(n, fns.KindHelper, n.Name, fns.ContextName[T]())
		}
	case *ast.GlobalCondition:
		checkCondition[ast.TemplatePart, T](c, n, &n.Condition)
	case *ast.NodeCondition:
		checkCondition[ast.NodePart, T](c, n, &n.Condition)
	case *ast.NodeFieldCondition:
		checkCondition[ast.NodeFieldPart, T](c, n, &n.Condition)
	case *ast.MessageCondition:
		checkCondition[ast.MessagePart, T](c, n, &n.Condition)
	case *ast.MessageFieldCondition:
		checkCondition[ast.MessageFieldPart, T](c, n, &n.Condition)
	case *ast.NodesLoop:
		checkList[ast.NodePart, schema.Node](c, n.Body)
	case *ast.NodeFieldsLoop:
		checkList[ast.NodeFieldPart, schema.NodeWithField](c, n.Body)
	case *ast.MessagesLoop:
		checkList[ast.MessagePart, schema.Message](c, n.Body)
	case *ast.MessageFieldsLoop:
		checkList[ast.MessageFieldPart, schema.MessageWithField](c, n.Body)
	}
}

func checkCondition[P ast.Node, T fns.Subject](c *checker, n ast.Node, cond *ast.Condition[ast.List[P]]) {
	if !fns.Resolvable[T, bool](c.fns, cond.Predicate) {
		c.add(n, fns.KindPredicate, cond.Predicate, fns.ContextName[T]())
	}
	checkList[P, T](c, cond.Then)
	checkList[P, T](c, cond.Else)
}

func (c *checker) add(n ast.Node, kind fns.Kind, name, context string) {
	e := &Error{Path: c.path, Kind: kind, Name: name, Context: context}
	if pos := n.Pos(); pos != nil {
		e.Pos = *pos
	}
	c.missing = append(c.missing, e)
}
