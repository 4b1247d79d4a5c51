// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open2b/nodegen"
	"github.com/open2b/nodegen/fns"
	"github.com/open2b/nodegen/helpers"
	"github.com/open2b/nodegen/internal/output"
	"github.com/open2b/nodegen/schema"
)

// renderOptions are the options of the render and watch commands.
type renderOptions struct {
	template string
	writeTo  string
	schemas  []string
	syntax   string
	node     string
	formatGo bool
}

func (o *renderOptions) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.template, "template", "t", "", "template file")
	flags.StringVarP(&o.writeTo, "write-to", "o", "", "output file, standard output if empty or \"-\"")
	flags.StringSliceVarP(&o.schemas, "schema", "s", nil, "schema file, can be repeated")
	flags.StringVar(&o.syntax, "syntax", "auto", "template syntax: auto, braces or tags")
	flags.StringVar(&o.node, "node", "", "render the template as node template for the named node")
	flags.BoolVar(&o.formatGo, "format-go", false, "format the output as Go source")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("schema")
}

func newRenderCmd() *cobra.Command {
	o := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a template",
		Long: `Renders a template for the nodes and the messages of the schema files.

With --node, the template is a node template and it is rendered for the
named node.`,
		Example: `  nodegen render -t nodes.rs.tmpl -s nodes.yaml -s messages.yaml -o src/nodes.rs
  nodegen render -t struct.tmpl -s nodes.yaml --node AndAsgn`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.OutOrStdout(), helpers.Default())
		},
	}
	o.addFlags(cmd)
	return cmd
}

// run renders the template and writes the result.
func (o *renderOptions) run(stdout io.Writer, f *fns.Fns) error {
	syntax, err := nodegen.ParseSyntax(o.syntax)
	if err != nil {
		return err
	}
	catalog, err := schema.LoadFiles(o.schemas...)
	if err != nil {
		return err
	}
	logger.Debug("schema loaded",
		zap.Strings("files", o.schemas),
		zap.Int("nodes", len(catalog.Nodes)),
		zap.Int("messages", len(catalog.Messages)))
	out, err := renderFile(o.template, syntax, catalog, o.node, f)
	if err != nil {
		return err
	}
	return writeOutput(stdout, o.writeTo, out, o.formatGo)
}

// renderFile builds the named template file, checks it against f and
// renders it. If node is not empty, the template is rendered as node
// template for that node.
func renderFile(name string, syntax nodegen.Syntax, catalog *schema.Catalog, node string, f *fns.Fns) (string, error) {
	fsys := os.DirFS(filepath.Dir(name))
	opts := &nodegen.BuildOptions{Syntax: syntax, Path: name}
	if node == "" {
		tmpl, err := nodegen.BuildFile(fsys, filepath.Base(name), opts)
		if err != nil {
			return "", reportError(err)
		}
		if err = tmpl.Check(f); err != nil {
			return "", reportError(err)
		}
		out, err := tmpl.Render(catalog.Context(), f)
		return out, reportError(err)
	}
	n, ok := catalog.Node(node)
	if !ok {
		return "", fmt.Errorf("node %q is not declared in the schema", node)
	}
	tmpl, err := nodegen.BuildNodeFile(fsys, filepath.Base(name), opts)
	if err != nil {
		return "", reportError(err)
	}
	if err = tmpl.Check(f); err != nil {
		return "", reportError(err)
	}
	out, err := tmpl.Render(n, f)
	return out, reportError(err)
}

// writeOutput writes out to the file path, or to stdout if path is empty
// or "-".
func writeOutput(stdout io.Writer, path, out string, formatGo bool) error {
	if path == "" || path == "-" {
		src, err := output.Format(path, out, formatGo)
		if err != nil {
			return err
		}
		_, err = stdout.Write(src)
		return err
	}
	_, err := output.Write(path, out, output.Options{FormatGo: formatGo, Logger: logger})
	return err
}

// reportError returns an error whose message reports err in the form
// "path:offset: message", one line for each error. It returns nil if err
// is nil.
func reportError(err error) error {
	if err == nil {
		return nil
	}
	var berr *nodegen.BuildError
	if errors.As(err, &berr) {
		return fmt.Errorf("%s:%d: %s", berr.Path(), berr.Offset(), berr.Message())
	}
	var rerr *nodegen.RenderError
	if errors.As(err, &rerr) {
		return errors.New(renderErrorLine(rerr))
	}
	var cerr *nodegen.CheckError
	if errors.As(err, &cerr) {
		lines := make([]string, len(cerr.Errors))
		for i, e := range cerr.Errors {
			lines[i] = renderErrorLine(e)
		}
		return errors.New(strings.Join(lines, "\n"))
	}
	return err
}

func renderErrorLine(err *nodegen.RenderError) string {
	kind := "helper"
	if err.IsPredicate() {
		kind = "predicate"
	}
	return fmt.Sprintf("%s:%d: %s %s is not registered for the %s context",
		err.Path(), err.Position().Start, kind, err.Name(), err.Context())
}
