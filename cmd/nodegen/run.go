// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
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

func newRunCmd() *cobra.Command {
	var config string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the jobs of a configuration file",
		Long: `Renders the templates listed in a configuration file:

  schema: [nodes.yaml, messages.yaml]
  syntax: auto
  jobs:
    - template: templates/nodes.rs.tmpl
      output: src/nodes.rs
    - template: templates/node.rs.tmpl
      output: src/nodes/{name}.rs
      each_node: true

All templates are rendered before writing any file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(config)
			if err != nil {
				return err
			}
			return runJobs(c, helpers.Default())
		},
	}
	cmd.Flags().StringVarP(&config, "config", "c", "nodegen.yaml", "configuration file")
	return cmd
}

type renderedFile struct {
	path    string
	content string
}

// runJobs renders the jobs of c and writes the files.
func runJobs(c *Config, f *fns.Fns) error {
	catalog, err := schema.LoadFiles(c.Schema...)
	if err != nil {
		return err
	}
	var files []renderedFile
	for _, job := range c.Jobs {
		syntaxName := job.Syntax
		if syntaxName == "" {
			syntaxName = c.Syntax
		}
		syntax, err := nodegen.ParseSyntax(syntaxName)
		if err != nil {
			return fmt.Errorf("%s: %w", job.Template, err)
		}
		rendered, err := renderJob(job, syntax, catalog, f)
		if err != nil {
			return err
		}
		files = append(files, rendered...)
	}
	written := 0
	for _, file := range files {
		res, err := output.Write(file.path, file.content, output.Options{FormatGo: c.FormatGo, Logger: logger})
		if err != nil {
			return err
		}
		if res == output.Written {
			written++
		}
	}
	logger.Info("jobs completed", zap.Int("jobs", len(c.Jobs)), zap.Int("files", len(files)), zap.Int("written", written))
	return nil
}

func renderJob(job Job, syntax nodegen.Syntax, catalog *schema.Catalog, f *fns.Fns) ([]renderedFile, error) {
	fsys := os.DirFS(filepath.Dir(job.Template))
	opts := &nodegen.BuildOptions{Syntax: syntax, Path: job.Template}
	if !job.EachNode {
		tmpl, err := nodegen.BuildFile(fsys, filepath.Base(job.Template), opts)
		if err != nil {
			return nil, reportError(err)
		}
		if err = tmpl.Check(f); err != nil {
			return nil, reportError(err)
		}
		out, err := tmpl.Render(catalog.Context(), f)
		if err != nil {
			return nil, reportError(err)
		}
		return []renderedFile{{path: job.Output, content: out}}, nil
	}
	tmpl, err := nodegen.BuildNodeFile(fsys, filepath.Base(job.Template), opts)
	if err != nil {
		return nil, reportError(err)
	}
	if err = tmpl.Check(f); err != nil {
		return nil, reportError(err)
	}
	files := make([]renderedFile, len(catalog.Nodes))
	for i, n := range catalog.Nodes {
		out, err := tmpl.Render(n, f)
		if err != nil {
			return nil, reportError(err)
		}
		path := strings.ReplaceAll(job.Output, NamePlaceholder, helpers.LowerName(n.Name))
		files[i] = renderedFile{path: path, content: out}
	}
	return files, nil
}
