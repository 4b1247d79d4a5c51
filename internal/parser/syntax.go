// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

// LoopKind identifies the collection iterated by a loop.
type LoopKind int

const (
	NodesLoop LoopKind = iota
	NodeFieldsLoop
	MessagesLoop
	MessageFieldsLoop
)

func (k LoopKind) String() string {
	switch k {
	case NodesLoop:
		return "node"
	case NodeFieldsLoop:
		return "node-field"
	case MessagesLoop:
		return "message"
	case MessageFieldsLoop:
		return "message-field"
	}
	panic("parser: unknown loop kind")
}

// Delims are the open and close literals of a loop.
type Delims struct {
	Open  string
	Close string
}

// Syntax is a concrete syntax of the template grammar. Every literal must
// be distinct from the others, except for the closing literals of loops
// and conditions which may be shared.
type Syntax struct {
	Name string

	HelperOpen  string // opens a helper, followed by the helper name
	HelperClose string // closes a helper

	IfOpen  string // opens a condition, followed by the predicate name
	IfClose string // closes the opening literal of a condition
	Else    string
	End     string // closes a condition

	Loops [4]Delims // indexed by LoopKind

	// Dnl, immediately followed by a newline, is removed from the text
	// together with the newline.
	Dnl string
}

// Braces is the syntax with directives delimited by "{{" and "}}".
//
//	{{ each node }}{{ helper node-name }}{{ dnl }}
//	{{ if node-has-fields }}...{{ else }}...{{ end }}
//	{{ end }}
var Braces = &Syntax{
	Name:        "braces",
	HelperOpen:  "{{ helper ",
	HelperClose: " }}",
	IfOpen:      "{{ if ",
	IfClose:     " }}",
	Else:        "{{ else }}",
	End:         "{{ end }}",
	Loops: [4]Delims{
		NodesLoop:         {"{{ each node }}", "{{ end }}"},
		NodeFieldsLoop:    {"{{ each node-field }}", "{{ end }}"},
		MessagesLoop:      {"{{ each message }}", "{{ end }}"},
		MessageFieldsLoop: {"{{ each message-field }}", "{{ end }}"},
	},
	Dnl: "{{ dnl }}",
}

// Tags is the syntax with directives written as tags.
//
//	<each-node><helper node-name><dnl>
//	<if node-has-fields>...<else>...</if>
//	</each-node>
var Tags = &Syntax{
	Name:        "tags",
	HelperOpen:  "<helper ",
	HelperClose: ">",
	IfOpen:      "<if ",
	IfClose:     ">",
	Else:        "<else>",
	End:         "</if>",
	Loops: [4]Delims{
		NodesLoop:         {"<each-node>", "</each-node>"},
		NodeFieldsLoop:    {"<each-node-field>", "</each-node-field>"},
		MessagesLoop:      {"<each-message>", "</each-message>"},
		MessageFieldsLoop: {"<each-message-field>", "</each-message-field>"},
	},
	Dnl: "<dnl>",
}

// level is a nesting level of a template.
type level int

const (
	globalLevel level = iota
	nodeLevel
	nodeFieldLevel
	messageLevel
	messageFieldLevel
)

// openers returns the literals that open a directive at level lvl.
func (s *Syntax) openers(lvl level) []string {
	switch lvl {
	case globalLevel:
		return []string{s.HelperOpen, s.Loops[NodesLoop].Open, s.Loops[MessagesLoop].Open, s.IfOpen}
	case nodeLevel:
		return []string{s.HelperOpen, s.Loops[NodeFieldsLoop].Open, s.IfOpen}
	case messageLevel:
		return []string{s.HelperOpen, s.IfOpen, s.Loops[MessageFieldsLoop].Open}
	}
	return []string{s.HelperOpen, s.IfOpen}
}

// closers returns the literals that close a body, without duplicates.
func (s *Syntax) closers() []string {
	closers := []string{s.Else, s.End}
	for _, d := range s.Loops {
		if !contains(closers, d.Close) {
			closers = append(closers, d.Close)
		}
	}
	return closers
}

// breakers returns the literals that terminate a text run at level lvl.
func (s *Syntax) breakers(lvl level) []string {
	return append(s.openers(lvl), s.closers()...)
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
