// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nodegen implements a template engine to generate code from the
// descriptors of AST nodes and diagnostic messages.
//
// A template iterates over nodes and messages, and over their fields, and
// calls helpers and predicates registered in a registry of package fns:
//
//	{{ helper file-header }}
//	{{ each node }}{{ dnl }}
//	pub struct {{ helper node-name }} {
//	{{ each node-field }}{{ dnl }}
//	    pub {{ helper node-field-rust-name }}: {{ helper node-field-type }},
//	{{ end }}{{ dnl }}
//	}
//	{{ end }}
//
// The same template can be written with tags:
//
//	<helper file-header>
//	<each-node><dnl>
//	pub struct <helper node-name> {
//	<each-node-field><dnl>
//	    pub <helper node-field-rust-name>: <helper node-field-type>,
//	</each-node-field><dnl>
//	}
//	</each-node>
//
// A condition has always an else branch, possibly empty:
//
//	{{ if node-field-always-print }}yes{{ else }}no{{ end }}
//	<if node-field-always-print>yes<else>no</if>
//
// The dnl marker, when followed by a newline, is removed together with the
// newline.
//
// Templates are built with Build and BuildFile, or with BuildNode and
// BuildNodeFile for templates rendered for a single node. Rendered outputs
// are normalized: trailing white space is removed from every line and the
// output ends with exactly one newline.
package nodegen
