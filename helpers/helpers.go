// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package helpers provides the builtin helpers and predicates used by the
// code generation templates.
//
// Register adds them to a registry:
//
//	f := fns.New()
//	helpers.Register(f)
//
// Helpers of a node field context are also available, by fallback, to
// templates where the context is a node with a field. The same applies to
// messages.
package helpers

import (
	"html"
	"strconv"
	"strings"

	"github.com/open2b/nodegen/fns"
	"github.com/open2b/nodegen/schema"
)

// Comment prefixes and offsets of the comment helpers.
const (
	CommentPrefix      = "///"
	FieldCommentOffset = 4
)

// Register registers the builtin helpers and predicates in f, replacing
// those with the same name.
func Register(f *fns.Fns) {
	registerGlobal(f)
	registerNode(f)
	registerNodeField(f)
	registerMessage(f)
	registerMessageField(f)
}

// Default returns a new registry with the builtin helpers and predicates.
func Default() *fns.Fns {
	f := fns.New()
	Register(f)
	return f
}

func registerGlobal(f *fns.Fns) {
	fns.RegisterHelper(f, "node-count", func(c *schema.GlobalContext) string {
		return strconv.Itoa(len(c.Nodes))
	})
	fns.RegisterHelper(f, "message-count", func(c *schema.GlobalContext) string {
		return strconv.Itoa(len(c.Messages))
	})
	fns.RegisterPredicate(f, "has-nodes", func(c *schema.GlobalContext) bool {
		return len(c.Nodes) > 0
	})
	fns.RegisterPredicate(f, "has-messages", func(c *schema.GlobalContext) bool {
		return len(c.Messages) > 0
	})
}

func registerNode(f *fns.Fns) {
	fns.RegisterHelper(f, "node-name", func(n *schema.Node) string {
		return n.Name
	})
	fns.RegisterHelper(f, "node-lower-name", func(n *schema.Node) string {
		return LowerName(n.Name)
	})
	fns.RegisterHelper(f, "node-upper-name", func(n *schema.Node) string {
		return UpperName(n.Name)
	})
	fns.RegisterHelper(f, "node-wqp-name", func(n *schema.Node) string {
		if n.WqpName == "" {
			return LowerName(n.Name)
		}
		return n.WqpName
	})
	fns.RegisterHelper(f, "node-comment", func(n *schema.Node) string {
		return RenderComment(n.Comment, CommentPrefix, 0)
	})
	fns.RegisterHelper(f, "node-comment-html", func(n *schema.Node) string {
		s, err := MarkdownToHTML(n.Comment)
		if err != nil {
			return html.EscapeString(strings.Join(n.Comment, "\n"))
		}
		return s
	})
	fns.RegisterPredicate(f, "node-has-fields", func(n *schema.Node) bool {
		return len(n.Fields) > 0
	})
	fns.RegisterPredicate(f, "node-has-node-references", func(n *schema.Node) bool {
		for _, field := range n.Fields {
			if field.Type.HasReferenceToNode() {
				return true
			}
		}
		return false
	})
}

func registerNodeField(f *fns.Fns) {
	name := func(escape func(string) string) func(*schema.NodeWithField) string {
		return func(nf *schema.NodeWithField) string {
			return escape(nf.Field.Name)
		}
	}
	fns.RegisterHelper(f, "node-field-name", name(func(s string) string { return s }))
	fns.RegisterHelper(f, "node-field-camelcase-name", name(SnakecaseToCamelcase))
	fns.RegisterHelper(f, "node-field-rust-name", name(EscapeRustKeyword))
	fns.RegisterHelper(f, "node-field-c-name", name(EscapeCKeyword))
	fns.RegisterHelper(f, "node-field-cpp-name", name(EscapeCppKeyword))
	fns.RegisterHelper(f, "node-field-js-name", name(EscapeJsKeyword))
	fns.RegisterHelper(f, "node-field-type", func(nf *schema.NodeWithField) string {
		return nf.Field.Type.String()
	})
	fns.RegisterHelper(f, "node-field-comment", func(nf *schema.NodeWithField) string {
		return RenderComment(nf.Field.Comment, CommentPrefix, FieldCommentOffset)
	})

	fns.RegisterPredicate(f, "node-field-always-print", func(nf *schema.NodeWithField) bool {
		return nf.Field.AlwaysPrint
	})
	fns.RegisterPredicate(f, "node-field-is-last", func(nf *schema.NodeWithField) bool {
		return nf.IsLast()
	})
	fns.RegisterPredicate(f, "node-field-has-node-reference", func(nf *schema.NodeWithField) bool {
		return nf.Field.Type.HasReferenceToNode()
	})
	fns.RegisterPredicate(f, "node-field-has-range-reference", func(nf *schema.NodeWithField) bool {
		return nf.Field.Type.HasReferenceToRange()
	})
	for _, typ := range schema.NodeFieldTypes {
		fns.RegisterPredicate(f, FieldTypePredicate(typ), func(nf *schema.NodeWithField) bool {
			return nf.Field.Type == typ
		})
	}
}

// FieldTypePredicate returns the name of the predicate that reports
// whether a node field has type typ, for example "node-field-is-maybe-node".
func FieldTypePredicate(typ schema.NodeFieldType) string {
	return "node-field-is-" + strings.ReplaceAll(LowerName(typ.String()), "_", "-")
}

func registerMessage(f *fns.Fns) {
	fns.RegisterHelper(f, "message-name", func(m *schema.Message) string {
		return m.Name
	})
	fns.RegisterHelper(f, "message-lower-name", func(m *schema.Message) string {
		return LowerName(m.Name)
	})
	fns.RegisterHelper(f, "message-upper-name", func(m *schema.Message) string {
		return UpperName(m.Name)
	})
	fns.RegisterHelper(f, "message-comment", func(m *schema.Message) string {
		return RenderComment(m.Comment, CommentPrefix, 0)
	})
	fns.RegisterPredicate(f, "message-has-fields", func(m *schema.Message) bool {
		return len(m.Fields) > 0
	})
}

func registerMessageField(f *fns.Fns) {
	fns.RegisterHelper(f, "message-field-name", func(mf *schema.MessageWithField) string {
		return mf.Field.Name
	})
	fns.RegisterHelper(f, "message-field-camelcase-name", func(mf *schema.MessageWithField) string {
		return SnakecaseToCamelcase(mf.Field.Name)
	})
	fns.RegisterHelper(f, "message-field-type", func(mf *schema.MessageWithField) string {
		return mf.Field.Type.String()
	})
	fns.RegisterHelper(f, "message-field-comment", func(mf *schema.MessageWithField) string {
		return RenderComment(mf.Field.Comment, CommentPrefix, FieldCommentOffset)
	})
	fns.RegisterPredicate(f, "message-field-is-str", func(mf *schema.MessageWithField) bool {
		return mf.Field.Type == schema.MessageFieldStr
	})
	fns.RegisterPredicate(f, "message-field-is-byte", func(mf *schema.MessageWithField) bool {
		return mf.Field.Type == schema.MessageFieldByte
	})
	fns.RegisterPredicate(f, "message-field-is-last", func(mf *schema.MessageWithField) bool {
		return mf.IsLast()
	})
}
