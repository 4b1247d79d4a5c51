// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingName         = errors.New("missing name")
	ErrUnknownFieldType    = errors.New("unknown field type")
	ErrDuplicateNode       = errors.New("duplicate node")
	ErrDuplicateField      = errors.New("duplicate field")
	ErrDuplicateMessage    = errors.New("duplicate message")
	ErrUnsupportedVersion  = errors.New("unsupported schema version")
	ErrInvalidSchemaFormat = errors.New("invalid schema format")
)

// SupportedMajor is the major version of the schema format read by Load.
const SupportedMajor = "v1"

// ValidationError is returned when a catalog is not valid. Path locates the
// offending object, for example "node Alias -> field to".
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Catalog is a loaded set of nodes and messages.
type Catalog struct {
	Version  string
	Nodes    []*Node
	Messages []*Message
}

// Context returns the global context of the catalog.
func (c *Catalog) Context() *GlobalContext {
	return &GlobalContext{Nodes: c.Nodes, Messages: c.Messages}
}

// Node returns the node with the given name.
func (c *Catalog) Node(name string) (*Node, bool) {
	for _, n := range c.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// Merge returns a catalog with the nodes and messages of c followed by
// those of other. It returns a *ValidationError if a name is declared in
// both.
func (c *Catalog) Merge(other *Catalog) (*Catalog, error) {
	merged := &Catalog{
		Version:  c.Version,
		Nodes:    append(append([]*Node{}, c.Nodes...), other.Nodes...),
		Messages: append(append([]*Message{}, c.Messages...), other.Messages...),
	}
	if merged.Version == "" {
		merged.Version = other.Version
	}
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// rawCatalog is the YAML representation of a catalog.
type rawCatalog struct {
	Version  string       `yaml:"version"`
	Nodes    []rawNode    `yaml:"nodes"`
	Messages []rawMessage `yaml:"messages"`
}

type rawNode struct {
	Name    string     `yaml:"name"`
	WqpName string     `yaml:"wqp_name"`
	Comment string     `yaml:"comment"`
	Fields  []rawField `yaml:"fields"`
}

type rawMessage struct {
	Name    string     `yaml:"name"`
	Comment string     `yaml:"comment"`
	Fields  []rawField `yaml:"fields"`
}

type rawField struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	AlwaysPrint bool   `yaml:"always_print"`
	Comment     string `yaml:"comment"`
}

// Load reads a catalog in YAML format from r.
//
//	version: v1.0.0
//	nodes:
//	  - name: Alias
//	    wqp_name: alias
//	    comment: Represents `alias to from` statement.
//	    fields:
//	      - name: to
//	        type: Node
//	        comment: Target of the `alias`.
//	messages:
//	  - name: UnterminatedHeredoc
//	    fields:
//	      - name: heredoc_id
//	        type: Str
//
// If the catalog is not valid, Load returns a *ValidationError.
func Load(r io.Reader) (*Catalog, error) {
	var raw rawCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return &Catalog{}, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidSchemaFormat, err)
	}
	if raw.Version != "" {
		if !semver.IsValid(raw.Version) {
			return nil, &ValidationError{Path: "version", Err: fmt.Errorf("%w %q", ErrUnsupportedVersion, raw.Version)}
		}
		if semver.Major(raw.Version) != SupportedMajor {
			return nil, &ValidationError{Path: "version", Err: fmt.Errorf("%w %s, expecting %s.x.y", ErrUnsupportedVersion, raw.Version, SupportedMajor)}
		}
	}
	c := &Catalog{Version: raw.Version}
	for i, rn := range raw.Nodes {
		path := fmt.Sprintf("node at index %d", i)
		if rn.Name == "" {
			return nil, &ValidationError{Path: path, Err: ErrMissingName}
		}
		path = "node " + rn.Name
		n := &Node{Name: rn.Name, WqpName: rn.WqpName, Comment: commentLines(rn.Comment)}
		for j, rf := range rn.Fields {
			if rf.Name == "" {
				return nil, &ValidationError{Path: fmt.Sprintf("%s -> field at index %d", path, j), Err: ErrMissingName}
			}
			typ, err := ParseNodeFieldType(rf.Type)
			if err != nil {
				return nil, &ValidationError{Path: path + " -> field " + rf.Name, Err: err}
			}
			n.Fields = append(n.Fields, NodeField{
				Name:        rf.Name,
				Type:        typ,
				AlwaysPrint: rf.AlwaysPrint,
				Comment:     commentLines(rf.Comment),
			})
		}
		c.Nodes = append(c.Nodes, n)
	}
	for i, rm := range raw.Messages {
		path := fmt.Sprintf("message at index %d", i)
		if rm.Name == "" {
			return nil, &ValidationError{Path: path, Err: ErrMissingName}
		}
		path = "message " + rm.Name
		m := &Message{Name: rm.Name, Comment: commentLines(rm.Comment)}
		for j, rf := range rm.Fields {
			if rf.Name == "" {
				return nil, &ValidationError{Path: fmt.Sprintf("%s -> field at index %d", path, j), Err: ErrMissingName}
			}
			typ, err := ParseMessageFieldType(rf.Type)
			if err != nil {
				return nil, &ValidationError{Path: path + " -> field " + rf.Name, Err: err}
			}
			m.Fields = append(m.Fields, MessageField{
				Name:    rf.Name,
				Type:    typ,
				Comment: commentLines(rf.Comment),
			})
		}
		c.Messages = append(c.Messages, m)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads a catalog from the named YAML file.
func LoadFile(name string) (*Catalog, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// LoadFiles reads and merges the catalogs of the named files, in order.
func LoadFiles(names ...string) (*Catalog, error) {
	c := &Catalog{}
	for _, name := range names {
		other, err := LoadFile(name)
		if err != nil {
			return nil, err
		}
		c, err = c.Merge(other)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return c, nil
}

// validate checks the uniqueness of node, message and field names.
func (c *Catalog) validate() error {
	nodes := map[string]bool{}
	for _, n := range c.Nodes {
		if nodes[n.Name] {
			return &ValidationError{Path: "node " + n.Name, Err: ErrDuplicateNode}
		}
		nodes[n.Name] = true
		fields := map[string]bool{}
		for _, f := range n.Fields {
			if fields[f.Name] {
				return &ValidationError{Path: "node " + n.Name + " -> field " + f.Name, Err: ErrDuplicateField}
			}
			fields[f.Name] = true
		}
	}
	messages := map[string]bool{}
	for _, m := range c.Messages {
		if messages[m.Name] {
			return &ValidationError{Path: "message " + m.Name, Err: ErrDuplicateMessage}
		}
		messages[m.Name] = true
		fields := map[string]bool{}
		for _, f := range m.Fields {
			if fields[f.Name] {
				return &ValidationError{Path: "message " + m.Name + " -> field " + f.Name, Err: ErrDuplicateField}
			}
			fields[f.Name] = true
		}
	}
	return nil
}

// commentLines splits a YAML comment block into lines. A trailing newline,
// as left by block scalars, does not produce an empty last line.
func commentLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
