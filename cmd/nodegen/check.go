// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open2b/nodegen"
	"github.com/open2b/nodegen/fns"
	"github.com/open2b/nodegen/helpers"
)

func newCheckCmd() *cobra.Command {
	var (
		template  string
		syntax    string
		nodeLevel bool
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the syntax of a template and the names it references",
		Long: `Parses a template and checks that every helper and predicate it
references is a builtin helper or predicate of the context where it is
called. Errors are reported as "path:offset: message".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := checkFile(template, syntax, nodeLevel, helpers.Default())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", template)
			return nil
		},
	}
	cmd.Flags().StringVarP(&template, "template", "t", "", "template file")
	cmd.Flags().StringVar(&syntax, "syntax", "auto", "template syntax: auto, braces or tags")
	cmd.Flags().BoolVar(&nodeLevel, "node-level", false, "check the template as node template")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

// checkFile builds the named template file and checks it against f.
func checkFile(name, syntaxName string, nodeLevel bool, f *fns.Fns) error {
	syntax, err := nodegen.ParseSyntax(syntaxName)
	if err != nil {
		return err
	}
	fsys := os.DirFS(filepath.Dir(name))
	opts := &nodegen.BuildOptions{Syntax: syntax, Path: name}
	if nodeLevel {
		tmpl, err := nodegen.BuildNodeFile(fsys, filepath.Base(name), opts)
		if err != nil {
			return reportError(err)
		}
		logger.Debug("template parsed", zap.String("path", name), zap.Stringer("syntax", tmpl.Syntax()))
		return reportError(tmpl.Check(f))
	}
	tmpl, err := nodegen.BuildFile(fsys, filepath.Base(name), opts)
	if err != nil {
		return reportError(err)
	}
	logger.Debug("template parsed", zap.String("path", name), zap.Stringer("syntax", tmpl.Syntax()))
	return reportError(tmpl.Check(f))
}

func newHelpersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "helpers",
		Short: "List the builtin helpers and predicates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, e := range helpers.Default().Entries() {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
}
