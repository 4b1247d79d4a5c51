// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"bytes"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/open2b/nodegen/ast"
)

// buffer is a cursor over the source of a template.
type buffer struct {
	src   []byte
	pos   int
	lines []int // index of the first byte of each line, computed on demand
}

// newBuffer returns a buffer that reads src from its first byte.
func newBuffer(src []byte) *buffer {
	return &buffer{src: src}
}

// Pos returns the index of the next byte to read.
func (b *buffer) Pos() int {
	return b.pos
}

// SetPos moves the cursor to the index pos.
func (b *buffer) SetPos(pos int) {
	if pos < 0 || pos > len(b.src) {
		panic(fmt.Sprintf("parser: position %d out of range [0,%d]", pos, len(b.src)))
	}
	b.pos = pos
}

// EOF reports whether all the source has been read.
func (b *buffer) EOF() bool {
	return b.pos >= len(b.src)
}

// Is reports whether the unread source starts with lit.
func (b *buffer) Is(lit string) bool {
	return bytes.HasPrefix(b.src[b.pos:], []byte(lit))
}

// Consume advances the cursor past lit. It panics if the unread source does
// not start with lit, so the caller must call Is first.
func (b *buffer) Consume(lit string) {
	if !b.Is(lit) {
		panic(fmt.Sprintf("parser: expected %q at offset %d", lit, b.pos))
	}
	b.pos += len(lit)
}

// Take reads the next n bytes. It returns false if fewer than n bytes
// remain. It panics if the bytes read are not valid UTF-8.
func (b *buffer) Take(n int) (string, bool) {
	if n < 0 || b.pos+n > len(b.src) {
		return "", false
	}
	s := b.text(b.pos, b.pos+n)
	b.pos += n
	return s, true
}

// TakeRune reads the next rune. It returns false at EOF.
func (b *buffer) TakeRune() (rune, bool) {
	if b.EOF() {
		return 0, false
	}
	r, size := utf8.DecodeRune(b.src[b.pos:])
	if r == utf8.RuneError && size <= 1 {
		panic(fmt.Sprintf("parser: invalid UTF-8 encoding at offset %d", b.pos))
	}
	b.pos += size
	return r, true
}

// TakeUntil reads up to the first occurrence of lit, leaving the cursor at
// the start of lit. If lit does not occur it returns false and the cursor
// does not move.
func (b *buffer) TakeUntil(lit string) (string, bool) {
	i := bytes.Index(b.src[b.pos:], []byte(lit))
	if i < 0 {
		return "", false
	}
	s := b.text(b.pos, b.pos+i)
	b.pos += i
	return s, true
}

// text returns src[start:end] as a string. It panics if it is not valid
// UTF-8.
func (b *buffer) text(start, end int) string {
	s := b.src[start:end]
	if !utf8.Valid(s) {
		panic(fmt.Sprintf("parser: invalid UTF-8 encoding at offset %d", start+invalidIndex(s)))
	}
	return string(s)
}

// invalidIndex returns the index of the first invalid byte in s.
func invalidIndex(s []byte) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRune(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(s)
}

// position returns the position of the bytes from start to end, with end
// exclusive. Line and column are computed from the source.
func (b *buffer) position(start, end int) *ast.Position {
	if b.lines == nil {
		b.lines = append(b.lines, 0)
		for i, c := range b.src {
			if c == '\n' {
				b.lines = append(b.lines, i+1)
			}
		}
	}
	line := sort.SearchInts(b.lines, start+1) - 1
	if end <= start {
		end = start + 1
	}
	return &ast.Position{
		Line:   line + 1,
		Column: start - b.lines[line] + 1,
		Start:  start,
		End:    end - 1,
	}
}
