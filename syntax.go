// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodegen

import (
	"bytes"
	"fmt"

	"github.com/open2b/nodegen/internal/parser"
)

// A Syntax represents a concrete syntax of templates.
type Syntax int

const (
	SyntaxAuto   Syntax = iota // detected from the source with DetectSyntax
	SyntaxBraces               // {{ helper name }}, {{ if name }}, {{ each node }}
	SyntaxTags                 // <helper name>, <if name>, <each-node>
)

// String returns the name of the syntax.
func (s Syntax) String() string {
	switch s {
	case SyntaxAuto:
		return "auto"
	case SyntaxBraces:
		return "braces"
	case SyntaxTags:
		return "tags"
	}
	return fmt.Sprintf("Syntax(%d)", int(s))
}

// ParseSyntax returns the syntax with the given name. The empty string is
// SyntaxAuto.
func ParseSyntax(name string) (Syntax, error) {
	switch name {
	case "", "auto":
		return SyntaxAuto, nil
	case "braces":
		return SyntaxBraces, nil
	case "tags":
		return SyntaxTags, nil
	}
	return 0, fmt.Errorf("nodegen: unknown syntax %q, expecting auto, braces or tags", name)
}

var (
	tagDirectives    = [][]byte{[]byte("<helper "), []byte("<if "), []byte("<each-")}
	bracesDirectives = [][]byte{[]byte("{{ helper "), []byte("{{ if "), []byte("{{ each ")}
)

// DetectSyntax returns SyntaxTags if a tag directive occurs in src before
// any braces directive, otherwise it returns SyntaxBraces.
func DetectSyntax(src []byte) Syntax {
	tags := firstIndex(src, tagDirectives)
	if tags < 0 {
		return SyntaxBraces
	}
	braces := firstIndex(src, bracesDirectives)
	if braces >= 0 && braces < tags {
		return SyntaxBraces
	}
	return SyntaxTags
}

// firstIndex returns the index of the first occurrence in src of any of
// the literals, or -1 if none occurs.
func firstIndex(src []byte, literals [][]byte) int {
	first := -1
	for _, lit := range literals {
		if i := bytes.Index(src, lit); i >= 0 && (first < 0 || i < first) {
			first = i
		}
	}
	return first
}

// resolve returns the parser syntax for src.
func (s Syntax) resolve(src []byte) (*parser.Syntax, Syntax, error) {
	if s == SyntaxAuto {
		s = DetectSyntax(src)
	}
	switch s {
	case SyntaxBraces:
		return parser.Braces, s, nil
	case SyntaxTags:
		return parser.Tags, s, nil
	}
	return nil, s, fmt.Errorf("nodegen: invalid syntax %s", s)
}
