// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/open2b/nodegen/helpers"
)

// execute executes the nodegen command with the given arguments and
// returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logger = zap.NewNop()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func readFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	return string(data)
}

func TestRenderCmd(t *testing.T) {
	expected := readFile(t, "testdata/nodes.out")

	out, err := execute(t, "render", "-t", "testdata/nodes.tmpl", "-s", "testdata/nodes.yaml", "-s", "testdata/messages.yaml")
	require.NoError(t, err)
	assert.Equal(t, expected, out)

	dst := filepath.Join(t.TempDir(), "src", "nodes.rs")
	out, err = execute(t, "render", "--template", "testdata/nodes.tmpl",
		"--schema", "testdata/nodes.yaml,testdata/messages.yaml", "--syntax", "braces", "--write-to", dst)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, expected, readFile(t, dst))
}

func TestRenderCmdNode(t *testing.T) {
	out, err := execute(t, "render", "-t", "testdata/struct.tmpl", "-s", "testdata/nodes.yaml", "--node", "AndAsgn")
	require.NoError(t, err)
	assert.Equal(t, "/// Represents `a &&= 1`.\npub struct AndAsgn {\n    pub recv: Node,\n    pub value: Node,\n}\n", out)

	_, err = execute(t, "render", "-t", "testdata/struct.tmpl", "-s", "testdata/nodes.yaml", "--node", "Alias")
	assert.EqualError(t, err, `node "Alias" is not declared in the schema`)
}

func TestRenderCmdFormatGo(t *testing.T) {
	out, err := execute(t, "render", "-t", "testdata/names.go.tmpl", "-s", "testdata/nodes.yaml", "--format-go")
	require.NoError(t, err)
	assert.Contains(t, out, `var Names = []string{"AndAsgn", "Nil"}`)
}

func TestRenderCmdErrors(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.rs")
	_, err := execute(t, "render", "-t", "testdata/bad.tmpl", "-s", "testdata/nodes.yaml", "-o", dst)
	assert.EqualError(t, err, "testdata/bad.tmpl:9: missing condition body")
	assert.NoFileExists(t, dst)

	_, err = execute(t, "render", "-t", "testdata/nodes.tmpl", "-s", "testdata/nodes.yaml", "--syntax", "jinja")
	assert.Error(t, err)

	_, err = execute(t, "render", "-t", "testdata/nodes.tmpl")
	assert.Error(t, err, "missing schema flag")

	_, err = execute(t, "render", "-t", "testdata/nodes.tmpl", "-s", "testdata/missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckCmd(t *testing.T) {
	out, err := execute(t, "check", "-t", "testdata/nodes.tmpl")
	require.NoError(t, err)
	assert.Equal(t, "testdata/nodes.tmpl: ok\n", out)

	out, err = execute(t, "check", "-t", "testdata/struct.tmpl", "--node-level")
	require.NoError(t, err)
	assert.Equal(t, "testdata/struct.tmpl: ok\n", out)

	_, err = execute(t, "check", "-t", "testdata/struct.tmpl")
	assert.Error(t, err, "node helpers are not available in a global template")

	_, err = execute(t, "check", "-t", "testdata/bad.tmpl")
	assert.EqualError(t, err, "testdata/bad.tmpl:9: missing condition body")

	_, err = execute(t, "check", "-t", "testdata/unknown.tmpl")
	assert.EqualError(t, err, "testdata/unknown.tmpl:0: helper nope is not registered for the global context\n"+
		"testdata/unknown.tmpl:33: helper node-field-name is not registered for the node context")
}

func TestHelpersCmd(t *testing.T) {
	out, err := execute(t, "helpers")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, helpers.Default().Len())
	assert.Equal(t, "global helper message-count", lines[0])
	assert.Contains(t, lines, "node-field predicate node-field-is-maybe-node")
}

func TestRunCmd(t *testing.T) {
	dir := t.TempDir()
	abs := func(name string) string {
		p, err := filepath.Abs(filepath.Join("testdata", name))
		require.NoError(t, err)
		return p
	}
	config := "schema: [" + abs("nodes.yaml") + ", " + abs("messages.yaml") + "]\n" +
		"jobs:\n" +
		"  - template: " + abs("nodes.tmpl") + "\n" +
		"    output: out/nodes.rs\n" +
		"  - template: " + abs("struct.tmpl") + "\n" +
		"    output: out/nodes/{name}.rs\n" +
		"    each_node: true\n" +
		"    syntax: tags\n"
	name := filepath.Join(dir, "nodegen.yaml")
	require.NoError(t, os.WriteFile(name, []byte(config), 0644))

	_, err := execute(t, "run", "--config", name)
	require.NoError(t, err)
	assert.Equal(t, readFile(t, "testdata/nodes.out"), readFile(t, filepath.Join(dir, "out", "nodes.rs")))
	assert.Equal(t, "\npub struct Nil {\n}\n", readFile(t, filepath.Join(dir, "out", "nodes", "nil.rs")))
	assert.FileExists(t, filepath.Join(dir, "out", "nodes", "and_asgn.rs"))
}

func TestRunCmdWritesNothingOnError(t *testing.T) {
	dir := t.TempDir()
	good, err := filepath.Abs("testdata/nodes.tmpl")
	require.NoError(t, err)
	bad, err := filepath.Abs("testdata/unknown.tmpl")
	require.NoError(t, err)
	schema, err := filepath.Abs("testdata/nodes.yaml")
	require.NoError(t, err)
	config := "schema: " + schema + "\n" +
		"jobs:\n" +
		"  - {template: " + good + ", output: good.rs}\n" +
		"  - {template: " + bad + ", output: bad.rs}\n"
	name := filepath.Join(dir, "nodegen.yaml")
	require.NoError(t, os.WriteFile(name, []byte(config), 0644))

	_, err = execute(t, "run", "-c", name)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "good.rs"))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"jobs: [{template: a, output: b}]\n":                                  "missing schema",
		"schema: s.yaml\n":                                                    "no jobs",
		"schema: s.yaml\njobs: [{output: b}]\n":                               "job 1: missing template",
		"schema: s.yaml\njobs: [{template: a}]\n":                             "job 1: missing output",
		"schema: s.yaml\njobs: [{template: a, output: b, each_node: true}]\n": "job 1: output of a job for each node must contain {name}",
	}
	for src, expected := range tests {
		name := filepath.Join(dir, "nodegen.yaml")
		require.NoError(t, os.WriteFile(name, []byte(src), 0644))
		_, err := loadConfig(name)
		assert.EqualError(t, err, name+": "+expected, src)
	}

	name := filepath.Join(dir, "nodegen.yaml")
	require.NoError(t, os.WriteFile(name, []byte("schema: s.yaml\njobs: [{template: a, output: b, colour: red}]\n"), 0644))
	_, err := loadConfig(name)
	assert.Error(t, err, "unknown fields are rejected")

	require.NoError(t, os.WriteFile(name, []byte("schema: [a.yaml, /b.yaml]\nsyntax: tags\njobs: [{template: t/a.tmpl, output: a.rs}]\n"), 0644))
	c, err := loadConfig(name)
	require.NoError(t, err)
	assert.Equal(t, stringList{filepath.Join(dir, "a.yaml"), "/b.yaml"}, c.Schema)
	assert.Equal(t, "tags", c.Syntax)
	assert.Equal(t, filepath.Join(dir, "t", "a.tmpl"), c.Jobs[0].Template)
	assert.Equal(t, filepath.Join(dir, "a.rs"), c.Jobs[0].Output)
}

func TestWatch(t *testing.T) {
	logger = zap.NewNop()
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "count.tmpl")
	require.NoError(t, os.WriteFile(tmpl, []byte("{{ helper node-count }}\n"), 0644))
	dst := filepath.Join(dir, "count.txt")

	o := &renderOptions{template: tmpl, writeTo: dst, schemas: []string{"testdata/nodes.yaml"}, syntax: "auto"}
	ctx, cancel := context.WithCancel(context.Background())
	rendered := make(chan struct{}, 4)
	done := make(chan error)
	go func() {
		done <- o.watch(ctx, &bytes.Buffer{}, helpers.Default(), rendered)
	}()

	wait := func() {
		select {
		case <-rendered:
		case err := <-done:
			t.Fatalf("watch returned: %v", err)
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for rendering")
		}
	}
	wait()
	assert.Equal(t, "2\n", readFile(t, dst))

	require.NoError(t, os.WriteFile(tmpl, []byte("{{ helper node-count }} nodes\n"), 0644))
	wait()
	assert.Equal(t, "2 nodes\n", readFile(t, dst))

	cancel()
	require.NoError(t, <-done)
}
