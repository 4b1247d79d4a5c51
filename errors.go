// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodegen

import (
	"strconv"
	"strings"

	"github.com/open2b/nodegen/ast"
	"github.com/open2b/nodegen/fns"
	"github.com/open2b/nodegen/internal/parser"
	"github.com/open2b/nodegen/internal/render"
)

// Position is a position in a file.
type Position struct {
	Line   int // line starting from 1
	Column int // column in bytes starting from 1
	Start  int // index of the first byte
	End    int // index of the last byte
}

// String returns line and column separated by a colon, for example "37:18".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

func toPosition(pos ast.Position) Position {
	return Position{Line: pos.Line, Column: pos.Column, Start: pos.Start, End: pos.End}
}

// ErrorKind is the kind of a build error.
type ErrorKind = parser.ErrorKind

const (
	MissingLoopClosingTag       = parser.MissingLoopClosingTag
	MissingLoopBody             = parser.MissingLoopBody
	MissingHelperName           = parser.MissingHelperName
	MissingHelperClose          = parser.MissingHelperClose
	MissingPredicateInCondition = parser.MissingPredicateInCondition
	MissingIfTrueBody           = parser.MissingIfTrueBody
	MissingElse                 = parser.MissingElse
	MissingIfFalseBody          = parser.MissingIfFalseBody
	MissingIfClosingTag         = parser.MissingIfClosingTag
	UnexpectedEOF               = parser.UnexpectedEOF
	UnexpectedClosingTag        = parser.UnexpectedClosingTag
)

// BuildError represents an error occurred building a template.
type BuildError struct {
	err *parser.SyntaxError
}

// Error returns a string representation of the error.
func (err *BuildError) Error() string {
	return err.err.Error()
}

// Path returns the path of the file where the error occurred.
func (err *BuildError) Path() string {
	return err.err.Path
}

// Position returns the position in the file where the error occurred.
func (err *BuildError) Position() Position {
	return toPosition(err.err.Pos)
}

// Offset returns the byte offset in the file where the error occurred.
func (err *BuildError) Offset() int {
	return err.err.Pos.Start
}

// Kind returns the kind of the error.
func (err *BuildError) Kind() ErrorKind {
	return err.err.Kind
}

// Message returns the error message.
func (err *BuildError) Message() string {
	return err.err.Kind.String()
}

// RenderError represents a helper or a predicate referenced by a template
// but not registered for the context where it is called.
type RenderError struct {
	err *render.Error
}

// Error returns a string representation of the error.
func (err *RenderError) Error() string {
	return err.err.Error()
}

// Path returns the path of the template.
func (err *RenderError) Path() string {
	return err.err.Path
}

// Position returns the position of the reference in the template.
func (err *RenderError) Position() Position {
	return toPosition(err.err.Pos)
}

// Name returns the name of the helper or the predicate.
func (err *RenderError) Name() string {
	return err.err.Name
}

// Context returns the name of the context, for example "node-field".
func (err *RenderError) Context() string {
	return err.err.Context
}

// IsPredicate reports whether the missing function is a predicate.
func (err *RenderError) IsPredicate() bool {
	return err.err.Kind == fns.KindPredicate
}

// CheckError is returned by the Check methods. It lists every reference to
// a helper or a predicate that is not registered.
type CheckError struct {
	Errors []*RenderError
}

// Error returns a string representation of the error, one line for each
// missing function.
func (err *CheckError) Error() string {
	lines := make([]string, len(err.Errors))
	for i, e := range err.Errors {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// convertError converts errors of the internal packages to the errors of
// this package.
func convertError(err error) error {
	switch e := err.(type) {
	case *parser.SyntaxError:
		return &BuildError{err: e}
	case *render.Error:
		return &RenderError{err: e}
	case *render.MissingError:
		ce := &CheckError{Errors: make([]*RenderError, len(e.Errors))}
		for i, re := range e.Errors {
			ce.Errors[i] = &RenderError{err: re}
		}
		return ce
	}
	return err
}
