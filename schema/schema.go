// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema declares the descriptors of AST nodes and diagnostic
// messages that templates are rendered against.
//
// A GlobalContext holds the whole catalog. Templates iterate over its nodes
// and messages, and over the fields of each node and message. Inside a
// fields loop the context is a NodeWithField or a MessageWithField value
// pairing the enclosing descriptor with one of its fields.
package schema

// NodeField describes a field of a node.
type NodeField struct {
	Name        string        // field name, in snake case
	Type        NodeFieldType // type of the field
	AlwaysPrint bool          // render even if the value is the default or empty
	Comment     []string      // documentation lines
}

// Node describes an AST node.
type Node struct {
	Name    string      // name in camel case, for example "AndAsgn"
	WqpName string      // name used by the whitequark parser, for example "and_asgn"
	Fields  []NodeField // fields in declaration order
	Comment []string    // documentation lines
}

// AnyFieldHasType reports whether at least one field of n has type typ.
func (n *Node) AnyFieldHasType(typ NodeFieldType) bool {
	for _, f := range n.Fields {
		if f.Type == typ {
			return true
		}
	}
	return false
}

// Field returns the field with the given name.
func (n *Node) Field(name string) (*NodeField, bool) {
	for i := range n.Fields {
		if n.Fields[i].Name == name {
			return &n.Fields[i], true
		}
	}
	return nil, false
}

// MessageField describes a field of a diagnostic message.
type MessageField struct {
	Name    string
	Type    MessageFieldType
	Comment []string
}

// Message describes a diagnostic message.
type Message struct {
	Name    string
	Fields  []MessageField
	Comment []string
}

// NodeWithField is the context of the body of a node fields loop. It pairs
// a node with one of its fields.
type NodeWithField struct {
	Node  *Node
	Field *NodeField
	Index int // index of Field in Node.Fields
}

// IsLast reports whether the field is the last field of the node.
func (nf *NodeWithField) IsLast() bool {
	return nf.Index == len(nf.Node.Fields)-1
}

// MessageWithField is the context of the body of a message fields loop. It
// pairs a message with one of its fields.
type MessageWithField struct {
	Message *Message
	Field   *MessageField
	Index   int // index of Field in Message.Fields
}

// IsLast reports whether the field is the last field of the message.
func (mf *MessageWithField) IsLast() bool {
	return mf.Index == len(mf.Message.Fields)-1
}

// GlobalContext is the root context. It holds all nodes and all messages.
type GlobalContext struct {
	Nodes    []*Node
	Messages []*Message
}

// NodeFields returns the composite contexts of the fields of n, in
// declaration order.
func NodeFields(n *Node) []NodeWithField {
	fields := make([]NodeWithField, len(n.Fields))
	for i := range n.Fields {
		fields[i] = NodeWithField{Node: n, Field: &n.Fields[i], Index: i}
	}
	return fields
}

// MessageFields returns the composite contexts of the fields of m, in
// declaration order.
func MessageFields(m *Message) []MessageWithField {
	fields := make([]MessageWithField, len(m.Fields))
	for i := range m.Fields {
		fields[i] = MessageWithField{Message: m, Field: &m.Fields[i], Index: i}
	}
	return fields
}
