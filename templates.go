// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodegen

import (
	"errors"
	"io/fs"

	"github.com/open2b/nodegen/ast"
	"github.com/open2b/nodegen/fns"
	"github.com/open2b/nodegen/internal/parser"
	"github.com/open2b/nodegen/internal/render"
	"github.com/open2b/nodegen/schema"
)

// BuildOptions contains options for building templates.
type BuildOptions struct {

	// Syntax is the syntax of the template. If it is SyntaxAuto, the syntax
	// is detected from the source with DetectSyntax.
	Syntax Syntax

	// Path is the path of the template, used in errors. BuildFile and
	// BuildNodeFile use the file name if Path is empty.
	Path string
}

// Template is a global template built with the Build or BuildFile function.
// A template can be rendered any number of times, also concurrently.
type Template struct {
	tree   *ast.Template
	path   string
	syntax Syntax
}

// NodeTemplate is a node template built with the BuildNode or BuildNodeFile
// function. It is rendered for a single node.
type NodeTemplate struct {
	tree   *ast.NodeTemplate
	path   string
	syntax Syntax
}

func buildOptions(options *BuildOptions) BuildOptions {
	if options == nil {
		return BuildOptions{}
	}
	return *options
}

// Build builds a global template from src.
//
// If a syntax error occurs, it returns a *BuildError.
func Build(src []byte, options *BuildOptions) (*Template, error) {
	opts := buildOptions(options)
	syntax, s, err := opts.Syntax.resolve(src)
	if err != nil {
		return nil, err
	}
	tree, err := parser.ParseTemplate(src, syntax, opts.Path)
	if err != nil {
		return nil, convertError(err)
	}
	return &Template{tree: tree, path: opts.Path, syntax: s}, nil
}

// BuildNode builds a node template from src.
//
// If a syntax error occurs, it returns a *BuildError.
func BuildNode(src []byte, options *BuildOptions) (*NodeTemplate, error) {
	opts := buildOptions(options)
	syntax, s, err := opts.Syntax.resolve(src)
	if err != nil {
		return nil, err
	}
	tree, err := parser.ParseNodeTemplate(src, syntax, opts.Path)
	if err != nil {
		return nil, convertError(err)
	}
	return &NodeTemplate{tree: tree, path: opts.Path, syntax: s}, nil
}

// readFile reads the named file of fsys and sets the path of opts.
func readFile(fsys fs.FS, name string, options *BuildOptions) ([]byte, *BuildOptions, error) {
	if fsys == nil {
		return nil, nil, errors.New("nodegen: fsys is nil")
	}
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, nil, err
	}
	opts := buildOptions(options)
	if opts.Path == "" {
		opts.Path = name
	}
	return src, &opts, nil
}

// BuildFile builds the named global template file rooted at the given file
// system.
//
// If the named file does not exist, BuildFile returns an error satisfying
// errors.Is(err, fs.ErrNotExist). If a syntax error occurs, it returns a
// *BuildError.
func BuildFile(fsys fs.FS, name string, options *BuildOptions) (*Template, error) {
	src, opts, err := readFile(fsys, name, options)
	if err != nil {
		return nil, err
	}
	return Build(src, opts)
}

// BuildNodeFile is like BuildFile but builds a node template.
func BuildNodeFile(fsys fs.FS, name string, options *BuildOptions) (*NodeTemplate, error) {
	src, opts, err := readFile(fsys, name, options)
	if err != nil {
		return nil, err
	}
	return BuildNode(src, opts)
}

// Render renders the template for the context ctx, calling the helpers and
// predicates of f, and returns the normalized output. A nil ctx is an empty
// context.
//
// If the template references a helper or a predicate that is not
// registered for the context where it is called, Render returns a
// *RenderError.
func (t *Template) Render(ctx *schema.GlobalContext, f *fns.Fns) (string, error) {
	out, err := render.Template(t.path, t.tree, ctx, f)
	if err != nil {
		return "", convertError(err)
	}
	return render.Normalize(out), nil
}

// MustRender is like Render but panics if an error occurs.
func (t *Template) MustRender(ctx *schema.GlobalContext, f *fns.Fns) string {
	out, err := t.Render(ctx, f)
	if err != nil {
		panic(err)
	}
	return out
}

// Check checks that every helper and predicate referenced by the template
// is registered in f for the context where it is called. If not, it
// returns a *CheckError.
func (t *Template) Check(f *fns.Fns) error {
	return convertError(render.Check(t.path, t.tree, f))
}

// Tree returns the tree of the template.
func (t *Template) Tree() *ast.Template {
	return t.tree
}

// Path returns the path of the template.
func (t *Template) Path() string {
	return t.path
}

// Syntax returns the syntax of the template. It is never SyntaxAuto.
func (t *Template) Syntax() Syntax {
	return t.syntax
}

// Render renders the template for the node n and returns the normalized
// output. See Template.Render.
func (t *NodeTemplate) Render(n *schema.Node, f *fns.Fns) (string, error) {
	out, err := render.NodeTemplate(t.path, t.tree, n, f)
	if err != nil {
		return "", convertError(err)
	}
	return render.Normalize(out), nil
}

// MustRender is like Render but panics if an error occurs.
func (t *NodeTemplate) MustRender(n *schema.Node, f *fns.Fns) string {
	out, err := t.Render(n, f)
	if err != nil {
		panic(err)
	}
	return out
}

// Check is like Template.Check but for a node template.
func (t *NodeTemplate) Check(f *fns.Fns) error {
	return convertError(render.CheckNode(t.path, t.tree, f))
}

// Tree returns the tree of the template.
func (t *NodeTemplate) Tree() *ast.NodeTemplate {
	return t.tree
}

// Path returns the path of the template.
func (t *NodeTemplate) Path() string {
	return t.path
}

// Syntax returns the syntax of the template. It is never SyntaxAuto.
func (t *NodeTemplate) Syntax() Syntax {
	return t.syntax
}

// Normalize removes the trailing white space from every line of s and
// returns it ending with exactly one newline. Render and MustRender
// normalize their output.
func Normalize(s string) string {
	return render.Normalize(s)
}
