// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ast declares the types used to define template trees.
//
// A template has five nesting levels: the global level, the node level and
// the node field level, the message level and the message field level.
// Every level has its own part union, TemplatePart, NodePart,
// NodeFieldPart, MessagePart and MessageFieldPart, and its own list type.
//
// For example, the template source
//
//	{{ each node }}{{ helper node-name }}
//	{{ end }}
//
// is represented with the tree:
//
//	ast.NewTemplate(
//		ast.NewNodesLoop(pos, ast.NewNodeTemplate(
//			ast.NewHelper(pos, "node-name"),
//			ast.NewText(pos, "\n"),
//		)),
//	)
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a position of a node in the source.
type Position struct {
	Line   int // line starting from 1
	Column int // column in bytes starting from 1
	Start  int // index of the first byte
	End    int // index of the last byte
}

// Pos returns the position p.
func (p *Position) Pos() *Position {
	return p
}

// String returns the line and column separated by a colon, for example "37:18".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// WithEnd returns a copy of the position but with the given end index.
func (p *Position) WithEnd(end int) *Position {
	pp := *p
	pp.End = end
	return &pp
}

// Node is implemented by all the nodes of a tree.
type Node interface {
	Pos() *Position
}

// TemplatePart is a part of the global template.
//
// It is implemented by *Text, *Helper, *GlobalCondition, *NodesLoop and
// *MessagesLoop.
type TemplatePart interface {
	Node
	templatePart()
}

// NodePart is a part of a node template, the body of a nodes loop.
//
// It is implemented by *Text, *Helper, *NodeCondition and *NodeFieldsLoop.
type NodePart interface {
	Node
	nodePart()
}

// NodeFieldPart is a part of a node field template, the body of a node
// fields loop.
//
// It is implemented by *Text, *Helper and *NodeFieldCondition.
type NodeFieldPart interface {
	Node
	nodeFieldPart()
}

// MessagePart is a part of a message template, the body of a messages loop.
//
// It is implemented by *Text, *Helper, *MessageCondition and
// *MessageFieldsLoop.
type MessagePart interface {
	Node
	messagePart()
}

// MessageFieldPart is a part of a message field template, the body of a
// message fields loop.
//
// It is implemented by *Text, *Helper and *MessageFieldCondition.
type MessageFieldPart interface {
	Node
	messageFieldPart()
}

// List is an ordered sequence of parts of the same level.
type List[P Node] struct {
	Parts []P
}

// Template is the global template.
type Template = List[TemplatePart]

// NodeTemplate is the template rendered for each node.
type NodeTemplate = List[NodePart]

// NodeFieldTemplate is the template rendered for each field of a node.
type NodeFieldTemplate = List[NodeFieldPart]

// MessageTemplate is the template rendered for each message.
type MessageTemplate = List[MessagePart]

// MessageFieldTemplate is the template rendered for each field of a
// message.
type MessageFieldTemplate = List[MessageFieldPart]

// NewTemplate returns a new global template.
func NewTemplate(parts ...TemplatePart) *Template {
	return &Template{Parts: parts}
}

// NewNodeTemplate returns a new node template.
func NewNodeTemplate(parts ...NodePart) *NodeTemplate {
	return &NodeTemplate{Parts: parts}
}

// NewNodeFieldTemplate returns a new node field template.
func NewNodeFieldTemplate(parts ...NodeFieldPart) *NodeFieldTemplate {
	return &NodeFieldTemplate{Parts: parts}
}

// NewMessageTemplate returns a new message template.
func NewMessageTemplate(parts ...MessagePart) *MessageTemplate {
	return &MessageTemplate{Parts: parts}
}

// NewMessageFieldTemplate returns a new message field template.
func NewMessageFieldTemplate(parts ...MessageFieldPart) *MessageFieldTemplate {
	return &MessageFieldTemplate{Parts: parts}
}

// Text node represents a literal text run.
type Text struct {
	*Position        // position in the source.
	Text      string // text.
}

// NewText returns a new Text node.
func NewText(pos *Position, text string) *Text {
	return &Text{pos, text}
}

func (n *Text) String() string {
	return strconv.Quote(n.Text)
}

func (*Text) templatePart()     {}
func (*Text) nodePart()         {}
func (*Text) nodeFieldPart()    {}
func (*Text) messagePart()      {}
func (*Text) messageFieldPart() {}

// Helper node represents the invocation of a named helper.
type Helper struct {
	*Position        // position in the source.
	Name      string // name of the helper.
}

// NewHelper returns a new Helper node.
func NewHelper(pos *Position, name string) *Helper {
	return &Helper{pos, name}
}

func (n *Helper) String() string {
	return "helper " + n.Name
}

func (*Helper) templatePart()     {}
func (*Helper) nodePart()         {}
func (*Helper) nodeFieldPart()    {}
func (*Helper) messagePart()      {}
func (*Helper) messageFieldPart() {}

// Condition is a boolean conditional block. Then is rendered if the named
// predicate returns true, Else otherwise. A nil branch renders nothing.
type Condition[B any] struct {
	*Position        // position in the source.
	Predicate string // name of the predicate.
	Then      *B     // branch rendered if the predicate is true.
	Else      *B     // branch rendered if the predicate is false.
}

func (n *Condition[B]) String() string {
	return "if " + n.Predicate
}

// Loop is a loop block. The sequence it iterates over is supplied at render
// time by the enclosing level. A nil body renders nothing.
type Loop[B any] struct {
	*Position    // position in the source.
	Body      *B // body of the loop.
}

// GlobalCondition node represents a condition at the global level.
type GlobalCondition struct{ Condition[Template] }

// NewGlobalCondition returns a new GlobalCondition node.
func NewGlobalCondition(pos *Position, predicate string, then, els *Template) *GlobalCondition {
	return &GlobalCondition{Condition[Template]{pos, predicate, then, els}}
}

func (*GlobalCondition) templatePart() {}

// NodesLoop node represents a loop over all nodes.
type NodesLoop struct{ Loop[NodeTemplate] }

// NewNodesLoop returns a new NodesLoop node.
func NewNodesLoop(pos *Position, body *NodeTemplate) *NodesLoop {
	return &NodesLoop{Loop[NodeTemplate]{pos, body}}
}

func (n *NodesLoop) String() string { return "each node" }

func (*NodesLoop) templatePart() {}

// MessagesLoop node represents a loop over all messages.
type MessagesLoop struct{ Loop[MessageTemplate] }

// NewMessagesLoop returns a new MessagesLoop node.
func NewMessagesLoop(pos *Position, body *MessageTemplate) *MessagesLoop {
	return &MessagesLoop{Loop[MessageTemplate]{pos, body}}
}

func (n *MessagesLoop) String() string { return "each message" }

func (*MessagesLoop) templatePart() {}

// NodeCondition node represents a condition at the node level.
type NodeCondition struct{ Condition[NodeTemplate] }

// NewNodeCondition returns a new NodeCondition node.
func NewNodeCondition(pos *Position, predicate string, then, els *NodeTemplate) *NodeCondition {
	return &NodeCondition{Condition[NodeTemplate]{pos, predicate, then, els}}
}

func (*NodeCondition) nodePart() {}

// NodeFieldsLoop node represents a loop over the fields of a node.
type NodeFieldsLoop struct{ Loop[NodeFieldTemplate] }

// NewNodeFieldsLoop returns a new NodeFieldsLoop node.
func NewNodeFieldsLoop(pos *Position, body *NodeFieldTemplate) *NodeFieldsLoop {
	return &NodeFieldsLoop{Loop[NodeFieldTemplate]{pos, body}}
}

func (n *NodeFieldsLoop) String() string { return "each node-field" }

func (*NodeFieldsLoop) nodePart() {}

// NodeFieldCondition node represents a condition at the node field level.
type NodeFieldCondition struct{ Condition[NodeFieldTemplate] }

// NewNodeFieldCondition returns a new NodeFieldCondition node.
func NewNodeFieldCondition(pos *Position, predicate string, then, els *NodeFieldTemplate) *NodeFieldCondition {
	return &NodeFieldCondition{Condition[NodeFieldTemplate]{pos, predicate, then, els}}
}

func (*NodeFieldCondition) nodeFieldPart() {}

// MessageCondition node represents a condition at the message level.
type MessageCondition struct{ Condition[MessageTemplate] }

// NewMessageCondition returns a new MessageCondition node.
func NewMessageCondition(pos *Position, predicate string, then, els *MessageTemplate) *MessageCondition {
	return &MessageCondition{Condition[MessageTemplate]{pos, predicate, then, els}}
}

func (*MessageCondition) messagePart() {}

// MessageFieldsLoop node represents a loop over the fields of a message.
type MessageFieldsLoop struct{ Loop[MessageFieldTemplate] }

// NewMessageFieldsLoop returns a new MessageFieldsLoop node.
func NewMessageFieldsLoop(pos *Position, body *MessageFieldTemplate) *MessageFieldsLoop {
	return &MessageFieldsLoop{Loop[MessageFieldTemplate]{pos, body}}
}

func (n *MessageFieldsLoop) String() string { return "each message-field" }

func (*MessageFieldsLoop) messagePart() {}

// MessageFieldCondition node represents a condition at the message field
// level.
type MessageFieldCondition struct{ Condition[MessageFieldTemplate] }

// NewMessageFieldCondition returns a new MessageFieldCondition node.
func NewMessageFieldCondition(pos *Position, predicate string, then, els *MessageFieldTemplate) *MessageFieldCondition {
	return &MessageFieldCondition{Condition[MessageFieldTemplate]{pos, predicate, then, els}}
}

func (*MessageFieldCondition) messageFieldPart() {}

// Dump writes an indented representation of a tree, one node per line. It
// is used in tests and by the check command to show parsed trees.
func Dump(tree *Template) string {
	var b strings.Builder
	dumpList(&b, tree, 0)
	return b.String()
}

func dumpList[P Node](b *strings.Builder, list *List[P], depth int) {
	if list == nil {
		return
	}
	for _, part := range list.Parts {
		dumpPart(b, part, depth)
	}
}

func dumpPart(b *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("\t", depth)
	switch n := n.(type) {
	case *Text, *Helper:
		fmt.Fprintf(b, "%s%s\n", indent, n)
	case *GlobalCondition:
		dumpCondition(b, &n.Condition, depth)
	case *NodeCondition:
		dumpCondition(b, &n.Condition, depth)
	case *NodeFieldCondition:
		dumpCondition(b, &n.Condition, depth)
	case *MessageCondition:
		dumpCondition(b, &n.Condition, depth)
	case *MessageFieldCondition:
		dumpCondition(b, &n.Condition, depth)
	case *NodesLoop:
		fmt.Fprintf(b, "%s%s\n", indent, n)
		dumpList(b, n.Body, depth+1)
	case *NodeFieldsLoop:
		fmt.Fprintf(b, "%s%s\n", indent, n)
		dumpList(b, n.Body, depth+1)
	case *MessagesLoop:
		fmt.Fprintf(b, "%s%s\n", indent, n)
		dumpList(b, n.Body, depth+1)
	case *MessageFieldsLoop:
		fmt.Fprintf(b, "%s%s\n", indent, n)
		dumpList(b, n.Body, depth+1)
	default:
		panic(fmt.Sprintf("unexpected node %T", n))
	}
}

func dumpCondition[P Node](b *strings.Builder, n *Condition[List[P]], depth int) {
	indent := strings.Repeat("\t", depth)
	fmt.Fprintf(b, "%s%s\n", indent, n)
	dumpList(b, n.Then, depth+1)
	fmt.Fprintf(b, "%selse\n", indent)
	dumpList(b, n.Else, depth+1)
}
