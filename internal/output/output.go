// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package output writes the rendered templates to files.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/imports"

	"github.com/open2b/nodegen/internal/render"
)

// Options contains the options of Write.
type Options struct {

	// FormatGo formats the content as Go source, also if the path does not
	// have the ".go" extension.
	FormatGo bool

	// Logger logs the written and the skipped files. If nil, nothing is
	// logged.
	Logger *zap.Logger
}

// Result reports what Write did.
type Result int

const (
	Written   Result = iota // the file has been written
	Unchanged               // the file already had the same content
)

func (r Result) String() string {
	if r == Unchanged {
		return "unchanged"
	}
	return "written"
}

// Write normalizes content and writes it to the file with the given path,
// creating the parent directories. Go sources are formatted, and their
// imports sorted, with golang.org/x/tools/imports.
//
// If the file already exists with the same content, it is not written and
// Write returns Unchanged.
func Write(path string, content string, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	src, err := Format(path, content, opts.FormatGo)
	if err != nil {
		return 0, err
	}
	old, err := os.ReadFile(path)
	if err == nil && bytes.Equal(old, src) {
		logger.Debug("file unchanged", zap.String("path", path))
		return Unchanged, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, err
	}
	if dir := filepath.Dir(path); dir != "." {
		err = os.MkdirAll(dir, 0755)
		if err != nil {
			return 0, err
		}
	}
	err = os.WriteFile(path, src, 0644)
	if err != nil {
		return 0, err
	}
	logger.Info("file written", zap.String("path", path), zap.Int("bytes", len(src)))
	return Written, nil
}

// Format returns the content that Write writes for the file with the given
// path.
func Format(path string, content string, formatGo bool) ([]byte, error) {
	src := []byte(render.Normalize(content))
	if !formatGo && !strings.HasSuffix(path, ".go") {
		return src, nil
	}
	formatted, err := imports.Process(path, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("output: cannot format %s: %w", path, err)
	}
	return formatted, nil
}
