// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"strings"

	"github.com/open2b/nodegen/ast"
	"github.com/open2b/nodegen/fns"
)

// Error records a helper or a predicate that is referenced by a template
// but is not registered for the context where it is called.
type Error struct {
	Path    string
	Pos     ast.Position
	Kind    fns.Kind
	Name    string
	Context string // context name, for example "node-field"
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%s: %s %s is not registered for the %s context", e.Path, e.Pos, e.Kind, e.Name, e.Context)
}

// MissingError is returned by Check. It lists every reference to a function
// that is not registered, in source order.
type MissingError struct {
	Errors []*Error
}

func (e *MissingError) Error() string {
	var b strings.Builder
	for i, err := range e.Errors {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Names returns the names of the missing functions without duplicates, in
// source order.
func (e *MissingError) Names() []string {
	var names []string
	seen := map[string]bool{}
	for _, err := range e.Errors {
		if !seen[err.Name] {
			seen[err.Name] = true
			names = append(names, err.Name)
		}
	}
	return names
}
