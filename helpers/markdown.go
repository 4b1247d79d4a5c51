// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helpers

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

var md = goldmark.New()

// MarkdownToHTML converts the lines of a comment, written in Markdown, to
// HTML.
func MarkdownToHTML(lines []string) (string, error) {
	var out bytes.Buffer
	err := md.Convert([]byte(strings.Join(lines, "\n")), &out)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
