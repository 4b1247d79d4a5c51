// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open2b/nodegen/ast"
	"github.com/open2b/nodegen/fns"
	"github.com/open2b/nodegen/schema"
)

func text(s string) *ast.Text { return ast.NewText(nil, s) }

func helper(name string) *ast.Helper {
	return ast.NewHelper(&ast.Position{Line: 1, Column: 1}, name)
}

var testContext = &schema.GlobalContext{
	Nodes: []*schema.Node{
		{Name: "NodeOne", Fields: []schema.NodeField{
			{Name: "field1", Type: schema.FieldLoc, AlwaysPrint: true},
			{Name: "field2", Type: schema.FieldLoc, AlwaysPrint: true},
		}},
		{Name: "NodeTwo", Fields: []schema.NodeField{
			{Name: "field3", Type: schema.FieldLoc},
		}},
	},
	Messages: []*schema.Message{
		{Name: "Message1", Fields: []schema.MessageField{
			{Name: "field1", Type: schema.MessageFieldByte},
			{Name: "field2", Type: schema.MessageFieldStr},
		}},
	},
}

func testFns() *fns.Fns {
	f := fns.New()
	fns.RegisterHelper(f, "file-header", func(*schema.GlobalContext) string { return "HEADER" })
	fns.RegisterHelper(f, "node-name", func(n *schema.Node) string { return n.Name })
	fns.RegisterHelper(f, "node-field-name", func(nf *schema.NodeWithField) string { return nf.Field.Name })
	fns.RegisterPredicate(f, "is-node-field-always-printable", func(nf *schema.NodeWithField) bool { return nf.Field.AlwaysPrint })
	fns.RegisterHelper(f, "message-name", func(m *schema.Message) string { return m.Name })
	fns.RegisterHelper(f, "message-field-name", func(mf *schema.MessageWithField) string { return mf.Field.Name })
	fns.RegisterPredicate(f, "is-message-field-u8", func(mf *schema.MessageWithField) bool {
		return mf.Field.Type == schema.MessageFieldByte
	})
	return f
}

// fixtureTree is the tree of the template used as example in the package
// documentation of nodegen.
var fixtureTree = ast.NewTemplate(
	helper("file-header"),
	text("\n\n"),
	ast.NewNodesLoop(nil, ast.NewNodeTemplate(
		text("There is a node "),
		helper("node-name"),
		text("\n    It has fields:\n"),
		ast.NewNodeFieldsLoop(nil, ast.NewNodeFieldTemplate(
			text("        + "),
			helper("node-field-name"),
			text(" (printable: "),
			ast.NewNodeFieldCondition(nil, "is-node-field-always-printable",
				ast.NewNodeFieldTemplate(text("YES")),
				ast.NewNodeFieldTemplate(text("NO")),
			),
			text(")\n"),
		)),
	)),
	text("\n"),
	ast.NewMessagesLoop(nil, ast.NewMessageTemplate(
		text("There is a message "),
		helper("message-name"),
		text("\n"),
		ast.NewMessageFieldsLoop(nil, ast.NewMessageFieldTemplate(
			text("        + "),
			helper("message-field-name"),
			text(" (is u8: "),
			ast.NewMessageFieldCondition(nil, "is-message-field-u8",
				ast.NewMessageFieldTemplate(text("Y")),
				ast.NewMessageFieldTemplate(text("N")),
			),
			text(")\n"),
		)),
	)),
)

var fixtureOutput = strings.Join([]string{
	"HEADER\n",
	"\n",
	"There is a node NodeOne\n",
	"    It has fields:\n",
	"        + field1 (printable: YES)\n",
	"        + field2 (printable: YES)\n",
	"There is a node NodeTwo\n",
	"    It has fields:\n",
	"        + field3 (printable: NO)\n",
	"\n",
	"There is a message Message1\n",
	"        + field1 (is u8: Y)\n",
	"        + field2 (is u8: N)\n",
}, "")

func TestTemplate(t *testing.T) {
	out, err := Template("fixture", fixtureTree, testContext, testFns())
	require.NoError(t, err)
	assert.Equal(t, fixtureOutput, Normalize(out))
}

func TestHelperScenario(t *testing.T) {
	tree := ast.NewTemplate(helper("file-header"), text("\n"))
	out, err := Template("", tree, &schema.GlobalContext{}, testFns())
	require.NoError(t, err)
	assert.Equal(t, "HEADER\n", Normalize(out))

	// A nil context is an empty context.
	out, err = Template("", tree, nil, testFns())
	require.NoError(t, err)
	assert.Equal(t, "HEADER\n", out)
}

func TestNodeTemplate(t *testing.T) {
	tree := ast.NewNodeTemplate(
		helper("node-name"),
		text(":"),
		ast.NewNodeFieldsLoop(nil, ast.NewNodeFieldTemplate(text(" "), helper("node-field-name"))),
	)
	out, err := NodeTemplate("", tree, testContext.Nodes[0], testFns())
	require.NoError(t, err)
	assert.Equal(t, "NodeOne: field1 field2", out)

	_, err = NodeTemplate("", tree, nil, testFns())
	assert.Error(t, err)
	_, err = NodeTemplate("", nil, testContext.Nodes[0], testFns())
	assert.Error(t, err)
}

func TestEmptyBodies(t *testing.T) {
	tree := ast.NewTemplate(
		ast.NewNodesLoop(nil, nil),
		ast.NewMessagesLoop(nil, ast.NewMessageTemplate(ast.NewMessageFieldsLoop(nil, nil))),
		ast.NewGlobalCondition(nil, "yes", nil, ast.NewTemplate(text("no"))),
	)
	f := fns.New()
	fns.RegisterPredicate(f, "yes", func(*schema.GlobalContext) bool { return true })
	out, err := Template("", tree, testContext, f)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

// TestFieldsLoop checks that a fields loop renders its body once per field
// in declaration order, each time with the node and the field at that
// position.
func TestFieldsLoop(t *testing.T) {
	for n := 0; n < 5; n++ {
		node := &schema.Node{Name: "N"}
		for i := 0; i < n; i++ {
			node.Fields = append(node.Fields, schema.NodeField{Name: fmt.Sprintf("f%d", i)})
		}
		var calls []string
		f := fns.New()
		fns.RegisterHelper(f, "visit", func(nf *schema.NodeWithField) string {
			require.Same(t, node, nf.Node)
			require.Same(t, &node.Fields[nf.Index], nf.Field)
			calls = append(calls, nf.Field.Name)
			return nf.Field.Name + ","
		})
		tree := ast.NewNodeTemplate(ast.NewNodeFieldsLoop(nil, ast.NewNodeFieldTemplate(helper("visit"))))
		out, err := NodeTemplate("", tree, node, f)
		require.NoError(t, err)
		require.Len(t, calls, n)
		for i, name := range calls {
			assert.Equal(t, fmt.Sprintf("f%d", i), name)
		}
		assert.Equal(t, strings.Count(out, ","), n)
	}
}

func TestMessageFieldsLoop(t *testing.T) {
	tree := ast.NewTemplate(ast.NewMessagesLoop(nil, ast.NewMessageTemplate(
		ast.NewMessageFieldsLoop(nil, ast.NewMessageFieldTemplate(
			ast.NewMessageFieldCondition(nil, "is-last",
				ast.NewMessageFieldTemplate(helper("message-field-name")),
				ast.NewMessageFieldTemplate(helper("message-field-name"), text(", ")),
			),
		)),
	)))
	f := testFns()
	fns.RegisterPredicate(f, "is-last", func(mf *schema.MessageWithField) bool { return mf.IsLast() })
	out, err := Template("", tree, testContext, f)
	require.NoError(t, err)
	assert.Equal(t, "field1, field2", out)
}

// TestPredicateFallback checks that a predicate registered for a node is
// called from a node field condition with the node of the field.
func TestPredicateFallback(t *testing.T) {
	f := testFns()
	fns.RegisterPredicate(f, "node-is-one", func(n *schema.Node) bool { return n.Name == "NodeOne" })
	fns.RegisterHelper(f, "message-upper-name", func(m *schema.Message) string { return strings.ToUpper(m.Name) })

	tree := ast.NewTemplate(
		ast.NewNodesLoop(nil, ast.NewNodeTemplate(
			ast.NewNodeFieldsLoop(nil, ast.NewNodeFieldTemplate(
				ast.NewNodeFieldCondition(nil, "node-is-one",
					ast.NewNodeFieldTemplate(text("1")),
					ast.NewNodeFieldTemplate(text("0")),
				),
			)),
			ast.NewNodeCondition(nil, "node-is-one",
				ast.NewNodeTemplate(text("1")),
				ast.NewNodeTemplate(text("0")),
			),
			text(";"),
		)),
		ast.NewMessagesLoop(nil, ast.NewMessageTemplate(
			ast.NewMessageFieldsLoop(nil, ast.NewMessageFieldTemplate(helper("message-upper-name"))),
		)),
	)
	out, err := Template("", tree, testContext, f)
	require.NoError(t, err)
	// For each node, the field conditions must agree with the node
	// condition.
	assert.Equal(t, "111;00;MESSAGE1MESSAGE1", out)
	require.NoError(t, Check("", tree, f))
}

func TestNotRegistered(t *testing.T) {
	tests := map[string]struct {
		tree    *ast.Template
		kind    fns.Kind
		name    string
		context string
	}{
		"global helper": {
			tree:    ast.NewTemplate(helper("missing")),
			kind:    fns.KindHelper,
			name:    "missing",
			context: "global",
		},
		"node predicate": {
			tree: ast.NewTemplate(ast.NewNodesLoop(nil, ast.NewNodeTemplate(
				ast.NewNodeCondition(&ast.Position{Line: 3, Column: 5}, "missing", nil, nil)))),
			kind:    fns.KindPredicate,
			name:    "missing",
			context: "node",
		},
		"helper of wrong context": {
			tree: ast.NewTemplate(ast.NewMessagesLoop(nil, ast.NewMessageTemplate(
				ast.NewMessageFieldsLoop(nil, ast.NewMessageFieldTemplate(helper("node-name")))))),
			kind:    fns.KindHelper,
			name:    "node-name",
			context: "message-field",
		},
		"predicate registered as helper": {
			tree:    ast.NewTemplate(ast.NewGlobalCondition(nil, "file-header", nil, nil)),
			kind:    fns.KindPredicate,
			name:    "file-header",
			context: "global",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Template("tmpl", test.tree, testContext, testFns())
			require.Error(t, err)
			var rerr *Error
			require.True(t, errors.As(err, &rerr), "expected *Error, got %T", err)
			assert.Equal(t, test.kind, rerr.Kind)
			assert.Equal(t, test.name, rerr.Name)
			assert.Equal(t, test.context, rerr.Context)
			assert.Equal(t, "tmpl", rerr.Path)

			err = Check("tmpl", test.tree, testFns())
			var merr *MissingError
			require.True(t, errors.As(err, &merr), "expected *MissingError, got %T", err)
			require.Len(t, merr.Errors, 1)
			assert.Equal(t, test.name, merr.Errors[0].Name)
			assert.Equal(t, test.context, merr.Errors[0].Context)
		})
	}
}

func TestErrorString(t *testing.T) {
	tree := ast.NewTemplate(ast.NewNodesLoop(nil, ast.NewNodeTemplate(
		ast.NewNodeCondition(&ast.Position{Line: 3, Column: 5}, "missing", nil, nil))))
	_, err := Template("tmpl", tree, testContext, fns.New())
	require.Error(t, err)
	assert.Equal(t, "tmpl:3:5: predicate missing is not registered for the node context", err.Error())
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check("", fixtureTree, testFns()))

	// Check visits bodies that are not rendered.
	tree := ast.NewTemplate(
		ast.NewGlobalCondition(nil, "never", ast.NewTemplate(helper("a")), ast.NewTemplate(helper("b"))),
		ast.NewMessagesLoop(nil, ast.NewMessageTemplate(helper("a"), helper("c"))),
	)
	err := Check("tmpl", tree, fns.New())
	var merr *MissingError
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 5)
	assert.Equal(t, []string{"never", "a", "b", "c"}, merr.Names())
	assert.Equal(t, 5, strings.Count(err.Error(), "\n")+1)

	node := ast.NewNodeTemplate(helper("node-name"), helper("file-header"))
	err = CheckNode("", node, testFns())
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, []string{"file-header"}, merr.Names())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		src, expected string
	}{
		{"", "\n"},
		{"\n\n\n", "\n"},
		{"a", "a\n"},
		{"a\n", "a\n"},
		{"a  \t\nb \n\n\n", "a\nb\n"},
		{"a\r\nb\r\n", "a\nb\n"},
		{"  a\n\n  b", "  a\n\n  b\n"},
	}
	for _, test := range tests {
		got := Normalize(test.src)
		assert.Equal(t, test.expected, got, "source %q", test.src)
		assert.Equal(t, got, Normalize(got), "not idempotent for %q", test.src)
	}
}
