// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import "fmt"

// NodeFieldType is the type of a node field.
type NodeFieldType int

const (
	FieldNode         NodeFieldType = iota // single child node
	FieldNodes                             // list of child nodes
	FieldMaybeNode                         // optional child node
	FieldRegexOptions                      // regex option set
	FieldLoc                               // source range
	FieldMaybeLoc                          // optional source range
	FieldStr                               // plain string
	FieldRawString                         // raw string
	FieldMaybeStr                          // optional string
	FieldChars                             // character list
	FieldStringValue                       // byte-string value
	FieldU8                                // single byte
	FieldUsize                             // size integer
)

var nodeFieldTypeNames = [...]string{
	"Node", "Nodes", "MaybeNode", "RegexOptions", "Loc", "MaybeLoc", "Str",
	"RawString", "MaybeStr", "Chars", "StringValue", "U8", "Usize",
}

// NodeFieldTypes contains all node field types.
var NodeFieldTypes = []NodeFieldType{
	FieldNode, FieldNodes, FieldMaybeNode, FieldRegexOptions, FieldLoc,
	FieldMaybeLoc, FieldStr, FieldRawString, FieldMaybeStr, FieldChars,
	FieldStringValue, FieldU8, FieldUsize,
}

// String returns the tag of the type, for example "MaybeNode".
func (typ NodeFieldType) String() string {
	if typ < 0 || int(typ) >= len(nodeFieldTypeNames) {
		return fmt.Sprintf("NodeFieldType(%d)", int(typ))
	}
	return nodeFieldTypeNames[typ]
}

// HasReferenceToNode reports whether a field of this type refers to other
// nodes.
func (typ NodeFieldType) HasReferenceToNode() bool {
	switch typ {
	case FieldNode, FieldNodes, FieldMaybeNode, FieldRegexOptions:
		return true
	}
	return false
}

// HasReferenceToRange reports whether a field of this type is a source
// range.
func (typ NodeFieldType) HasReferenceToRange() bool {
	return typ == FieldLoc || typ == FieldMaybeLoc
}

// ParseNodeFieldType returns the node field type with the given tag.
func ParseNodeFieldType(s string) (NodeFieldType, error) {
	for i, name := range nodeFieldTypeNames {
		if name == s {
			return NodeFieldType(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownFieldType, s)
}

// MessageFieldType is the type of a message field.
type MessageFieldType int

const (
	MessageFieldStr  MessageFieldType = iota // plain string
	MessageFieldByte                         // single byte
)

// String returns the tag of the type, "Str" or "Byte".
func (typ MessageFieldType) String() string {
	switch typ {
	case MessageFieldStr:
		return "Str"
	case MessageFieldByte:
		return "Byte"
	}
	return fmt.Sprintf("MessageFieldType(%d)", int(typ))
}

// ParseMessageFieldType returns the message field type with the given tag.
func ParseMessageFieldType(s string) (MessageFieldType, error) {
	switch s {
	case "Str":
		return MessageFieldStr, nil
	case "Byte":
		return MessageFieldByte, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownFieldType, s)
}
