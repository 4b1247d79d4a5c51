// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodegen_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/open2b/nodegen"
	"github.com/open2b/nodegen/fns"
	"github.com/open2b/nodegen/helpers"
	"github.com/open2b/nodegen/schema"
)

var exampleContext = &schema.GlobalContext{
	Nodes: []*schema.Node{
		{
			Name: "Alias",
			Fields: []schema.NodeField{
				{Name: "to", Type: schema.FieldNode},
				{Name: "from", Type: schema.FieldNode},
			},
		},
		{Name: "Self_"},
	},
}

func ExampleBuild() {
	src := []byte(`{{ each node }}{{ dnl }}
struct {{ helper node-name }} {
{{ each node-field }}{{ dnl }}
    {{ helper node-field-name }}{{ if node-field-is-last }}{{ else }},{{ end }}
{{ end }}{{ dnl }}
}
{{ end }}`)
	tmpl, err := nodegen.Build(src, nil)
	if err != nil {
		log.Fatal(err)
	}
	out, err := tmpl.Render(exampleContext, helpers.Default())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(out)
	// Output:
	// struct Alias {
	//     to,
	//     from
	// }
	// struct Self_ {
	// }
}

func ExampleBuildNode() {
	src := []byte("<helper node-upper-name>: <each-node-field><helper node-field-name> </each-node-field>")
	tmpl, err := nodegen.BuildNode(src, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(tmpl.MustRender(exampleContext.Nodes[0], helpers.Default()))
	// Output:
	// ALIAS: to from
}

func ExampleBuildError() {
	_, err := nodegen.Build([]byte("{{ each node }}{{ helper node-name }}"), &nodegen.BuildOptions{Path: "nodes.tmpl"})
	var berr *nodegen.BuildError
	if errors.As(err, &berr) {
		fmt.Println(berr.Offset(), berr.Message())
		fmt.Println(err)
	}
	// Output:
	// 37 missing loop closing tag
	// nodes.tmpl:1:38: syntax error: missing loop closing tag
}

func ExampleTemplate_Check() {
	tmpl, err := nodegen.Build([]byte("<helper file-header>\n<each-node><helper node-title></each-node>"), &nodegen.BuildOptions{Path: "nodes.tmpl"})
	if err != nil {
		log.Fatal(err)
	}
	f := helpers.Default()
	fns.RegisterHelper(f, "file-header", func(*schema.GlobalContext) string {
		return "// Code generated by nodegen. DO NOT EDIT."
	})
	fmt.Println(tmpl.Check(f))
	// Output:
	// nodes.tmpl:2:12: helper node-title is not registered for the node context
}
