// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"fmt"

	"github.com/open2b/nodegen/ast"
)

// ErrorKind is the kind of a syntax error.
type ErrorKind int

const (
	MissingLoopClosingTag ErrorKind = iota + 1
	MissingLoopBody
	MissingHelperName
	MissingHelperClose
	MissingPredicateInCondition
	MissingIfTrueBody
	MissingElse
	MissingIfFalseBody
	MissingIfClosingTag
	UnexpectedEOF
	UnexpectedClosingTag
)

var errorKindMessages = map[ErrorKind]string{
	MissingLoopClosingTag:       "missing loop closing tag",
	MissingLoopBody:             "missing loop body",
	MissingHelperName:           "missing or invalid helper name",
	MissingHelperClose:          "missing helper closing literal",
	MissingPredicateInCondition: "missing or invalid predicate in condition",
	MissingIfTrueBody:           "missing condition body",
	MissingElse:                 "missing else in condition",
	MissingIfFalseBody:          "missing condition else body",
	MissingIfClosingTag:         "missing condition closing tag",
	UnexpectedEOF:               "unexpected EOF",
	UnexpectedClosingTag:        "unexpected closing tag",
}

func (k ErrorKind) String() string {
	if msg, ok := errorKindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// SyntaxError records a parsing error with the path and the position where
// the error occurred. Pos.Start is the byte offset.
type SyntaxError struct {
	Path string
	Pos  ast.Position
	Kind ErrorKind
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%s: syntax error: %s", e.Path, e.Pos, e.Kind)
}
