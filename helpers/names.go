// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helpers

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CamelcaseToSnakecase converts a camel case name to a name with words
// separated by underscores. A new word starts at every upper case letter
// and the case of the letters is preserved, so "AndAsgn" becomes "And_Asgn".
func CamelcaseToSnakecase(s string) string {
	var words []string
	start := 0
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > start {
				words = append(words, s[start:i])
			}
			start = i
		}
	}
	if start < len(s) {
		words = append(words, s[start:])
	}
	return strings.Join(words, "_")
}

// SnakecaseToCamelcase converts a snake case name to camel case,
// capitalizing the first letter of every word. "and_asgn" becomes
// "AndAsgn".
func SnakecaseToCamelcase(s string) string {
	var b strings.Builder
	for _, word := range strings.Split(s, "_") {
		r, size := utf8.DecodeRuneInString(word)
		if size == 0 {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(word[size:])
	}
	return b.String()
}

// LowerName returns the lower snake case form of a camel case name.
func LowerName(s string) string {
	return strings.ToLower(CamelcaseToSnakecase(s))
}

// UpperName returns the upper snake case form of a camel case name.
func UpperName(s string) string {
	return strings.ToUpper(CamelcaseToSnakecase(s))
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

var rustKeywords = set(
	"as", "break", "const", "else", "false", "for", "if", "return", "self",
	"str", "super", "true", "while", "yield",
)

var cKeywords = set(
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while",
)

var cppKeywords = set(
	"alignas", "alignof", "and", "asm", "auto", "bool", "break", "case",
	"catch", "char", "class", "const", "constexpr", "continue", "default",
	"delete", "do", "double", "else", "enum", "explicit", "export", "extern",
	"false", "float", "for", "friend", "goto", "if", "inline", "int", "long",
	"mutable", "namespace", "new", "noexcept", "not", "nullptr", "operator",
	"or", "private", "protected", "public", "register", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "template", "this",
	"throw", "true", "try", "typedef", "typename", "union", "unsigned",
	"using", "virtual", "void", "volatile", "while", "xor",
)

var jsKeywords = set(
	"arguments", "await", "break", "case", "catch", "class", "const",
	"continue", "debugger", "default", "delete", "do", "else", "enum",
	"eval", "export", "extends", "false", "finally", "for", "function", "if",
	"implements", "import", "in", "instanceof", "interface", "let", "new",
	"null", "package", "private", "protected", "public", "return", "static",
	"super", "switch", "this", "throw", "true", "try", "typeof", "var",
	"void", "while", "with", "yield",
)

func escape(name string, keywords map[string]struct{}) string {
	if _, ok := keywords[name]; ok {
		return name + "_"
	}
	return name
}

// EscapeRustKeyword appends an underscore to name if it is a Rust keyword
// or the str type.
func EscapeRustKeyword(name string) string {
	return escape(name, rustKeywords)
}

// EscapeCKeyword appends an underscore to name if it is a C keyword.
func EscapeCKeyword(name string) string {
	return escape(name, cKeywords)
}

// EscapeCppKeyword appends an underscore to name if it is a C++ keyword.
func EscapeCppKeyword(name string) string {
	return escape(name, cppKeywords)
}

// EscapeJsKeyword appends an underscore to name if it is a JavaScript
// reserved word.
func EscapeJsKeyword(name string) string {
	return escape(name, jsKeywords)
}
