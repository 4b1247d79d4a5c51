// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helpers

import "strings"

// RenderComment renders the lines of a comment, each one preceded by
// prefix and, if not empty, by a space. The lines after the first are
// indented with offset spaces, so that the result can be placed at the
// column offset of an already indented line.
func RenderComment(lines []string, prefix string, offset int) string {
	var b strings.Builder
	indent := strings.Repeat(" ", offset)
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
			b.WriteString(indent)
		}
		b.WriteString(prefix)
		if line != "" {
			b.WriteByte(' ')
			b.WriteString(line)
		}
	}
	return b.String()
}
