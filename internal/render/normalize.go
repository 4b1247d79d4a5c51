// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import "strings"

// Normalize removes the trailing spaces, tabs and carriage returns from
// every line of s and returns it ending with exactly one newline.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}
