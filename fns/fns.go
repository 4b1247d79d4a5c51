// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fns implements a registry of the helpers and predicates called by
// templates.
//
// A helper is a function func(*T) string and a predicate is a function
// func(*T) bool, where T is one of the context types of package schema.
// Functions are registered by name in the partition of their context type
// and kind:
//
//	f := fns.New()
//	fns.RegisterHelper(f, "node-name", func(n *schema.Node) string {
//		return n.Name
//	})
//	fns.RegisterPredicate(f, "node-field-always-print", func(nf *schema.NodeWithField) bool {
//		return nf.Field.AlwaysPrint
//	})
//
// Functions of a NodeWithField context fall back to those of its Node, and
// functions of a MessageWithField context fall back to those of its
// Message.
//
// A Fns value is not safe for concurrent use if it is modified. Once built,
// it can be read by any number of goroutines.
package fns

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/open2b/nodegen/schema"
)

// Subject is the set of context types.
type Subject interface {
	schema.GlobalContext | schema.Node | schema.NodeWithField | schema.Message | schema.MessageWithField
}

// Returns is the set of result types. string is the result of a helper and
// bool is the result of a predicate.
type Returns interface {
	string | bool
}

// Kind is the kind of a function.
type Kind int

const (
	KindHelper Kind = iota
	KindPredicate
)

func (k Kind) String() string {
	if k == KindHelper {
		return "helper"
	}
	return "predicate"
}

// Context names, as returned by ContextName.
const (
	GlobalContext       = "global"
	NodeContext         = "node"
	NodeFieldContext    = "node-field"
	MessageContext      = "message"
	MessageFieldContext = "message-field"
)

var contextNames = map[reflect.Type]string{
	reflect.TypeOf(schema.GlobalContext{}):    GlobalContext,
	reflect.TypeOf(schema.Node{}):             NodeContext,
	reflect.TypeOf(schema.NodeWithField{}):    NodeFieldContext,
	reflect.TypeOf(schema.Message{}):          MessageContext,
	reflect.TypeOf(schema.MessageWithField{}): MessageFieldContext,
}

// contextOrder is the order of contexts in Entries.
var contextOrder = map[string]int{
	GlobalContext:       0,
	NodeContext:         1,
	NodeFieldContext:    2,
	MessageContext:      3,
	MessageFieldContext: 4,
}

// ContextName returns the name of the context type T, for example
// "node-field" for schema.NodeWithField.
func ContextName[T Subject]() string {
	return contextNames[typeOf[T]()]
}

func typeOf[T Subject]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func kindOf[R Returns]() Kind {
	var zero R
	if _, ok := any(zero).(bool); ok {
		return KindPredicate
	}
	return KindHelper
}

// key identifies a partition of the registry.
type key struct {
	ctx  reflect.Type
	kind Kind
}

// Fns is a registry of helpers and predicates. The zero value is an empty
// registry ready to use.
type Fns struct {
	m map[key]map[string]any
}

// New returns a new empty registry.
func New() *Fns {
	return &Fns{}
}

// Register registers fn with the given name in the partition of context T
// and result R. A previous function with the same name in that partition is
// replaced. It panics if name is empty or fn is nil.
func Register[T Subject, R Returns](f *Fns, name string, fn func(*T) R) {
	if name == "" {
		panic("fns: empty function name")
	}
	if fn == nil {
		panic("fns: nil function " + name)
	}
	k := key{typeOf[T](), kindOf[R]()}
	if f.m == nil {
		f.m = map[key]map[string]any{}
	}
	p, ok := f.m[k]
	if !ok {
		p = map[string]any{}
		f.m[k] = p
	}
	p[name] = fn
}

// RegisterHelper registers a helper for context T.
func RegisterHelper[T Subject](f *Fns, name string, fn func(*T) string) {
	Register(f, name, fn)
}

// RegisterPredicate registers a predicate for context T.
func RegisterPredicate[T Subject](f *Fns, name string, fn func(*T) bool) {
	Register(f, name, fn)
}

// lookup returns the function registered with the given name in the
// partition of context T and result R.
func lookup[T Subject, R Returns](f *Fns, name string) (func(*T) R, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.m[key{typeOf[T](), kindOf[R]()}][name]
	if !ok {
		return nil, false
	}
	return v.(func(*T) R), true
}

// Dispatch calls the function registered with the given name for context T
// and result R, and returns its result. It returns false if there is no
// such function. Dispatch does not fall back.
func Dispatch[T Subject, R Returns](f *Fns, name string, ctx *T) (R, bool) {
	fn, ok := lookup[T, R](f, name)
	if !ok {
		var zero R
		return zero, false
	}
	return fn(ctx), true
}

// call is like Dispatch but for a NodeWithField or a MessageWithField
// context it falls back to the functions of the node or the message.
func call[T Subject, R Returns](f *Fns, name string, ctx *T) (R, bool) {
	if r, ok := Dispatch[T, R](f, name, ctx); ok {
		return r, true
	}
	switch c := any(ctx).(type) {
	case *schema.NodeWithField:
		return Dispatch[schema.Node, R](f, name, c.Node)
	case *schema.MessageWithField:
		return Dispatch[schema.Message, R](f, name, c.Message)
	}
	var zero R
	return zero, false
}

// Helper calls the helper with the given name for the context ctx. For a
// NodeWithField or a MessageWithField context, if there is no such helper,
// it calls the helper of the node or the message. It returns false if no
// helper is found.
func Helper[T Subject](f *Fns, name string, ctx *T) (string, bool) {
	return call[T, string](f, name, ctx)
}

// Predicate is like Helper but calls a predicate.
func Predicate[T Subject](f *Fns, name string, ctx *T) (bool, bool) {
	return call[T, bool](f, name, ctx)
}

// Has reports whether a function with the given name is registered for
// context T and result R. It does not consider fallbacks.
func Has[T Subject, R Returns](f *Fns, name string) bool {
	_, ok := lookup[T, R](f, name)
	return ok
}

// Resolvable reports whether Helper, if R is string, or Predicate, if R is
// bool, would find a function with the given name for context T.
func Resolvable[T Subject, R Returns](f *Fns, name string) bool {
	if Has[T, R](f, name) {
		return true
	}
	var ctx *T
	switch any(ctx).(type) {
	case *schema.NodeWithField:
		return Has[schema.Node, R](f, name)
	case *schema.MessageWithField:
		return Has[schema.Message, R](f, name)
	}
	return false
}

// Known returns the sorted names of the functions registered for context T
// and result R.
func Known[T Subject, R Returns](f *Fns) []string {
	if f == nil {
		return nil
	}
	p := f.m[key{typeOf[T](), kindOf[R]()}]
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entry describes a registered function.
type Entry struct {
	Context string // context name, as returned by ContextName
	Kind    Kind
	Name    string
}

func (e Entry) String() string {
	return e.Context + " " + e.Kind.String() + " " + e.Name
}

// Entries returns all registered functions ordered by context, kind and
// name.
func (f *Fns) Entries() []Entry {
	if f == nil {
		return nil
	}
	var entries []Entry
	for k, p := range f.m {
		for name := range p {
			entries = append(entries, Entry{Context: contextNames[k.ctx], Kind: k.kind, Name: name})
		}
	}
	sortEntries(entries)
	return entries
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Context != b.Context {
			return contextOrder[a.Context] < contextOrder[b.Context]
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Name < b.Name
	})
}

// Len returns the number of registered functions.
func (f *Fns) Len() int {
	if f == nil {
		return 0
	}
	n := 0
	for _, p := range f.m {
		n += len(p)
	}
	return n
}

// Merge returns a new registry with the functions of f and other. If both
// register a function with the same context, kind and name, the function
// of other is kept. Neither f nor other is modified.
func (f *Fns) Merge(other *Fns) *Fns {
	merged := &Fns{m: map[key]map[string]any{}}
	for _, src := range []*Fns{f, other} {
		if src == nil {
			continue
		}
		for k, p := range src.m {
			dst, ok := merged.m[k]
			if !ok {
				dst = make(map[string]any, len(p))
				merged.m[k] = dst
			}
			for name, fn := range p {
				dst[name] = fn
			}
		}
	}
	return merged
}

// Conflicts returns the functions registered both in f and in other, with
// the same context, kind and name.
func (f *Fns) Conflicts(other *Fns) []Entry {
	if f == nil || other == nil {
		return nil
	}
	var conflicts []Entry
	for k, p := range f.m {
		for name := range other.m[k] {
			if _, ok := p[name]; ok {
				conflicts = append(conflicts, Entry{Context: contextNames[k.ctx], Kind: k.kind, Name: name})
			}
		}
	}
	sortEntries(conflicts)
	return conflicts
}

// ConflictError is returned by MergeStrict when two registries register the
// same function.
type ConflictError struct {
	Entries []Entry
}

func (e *ConflictError) Error() string {
	names := make([]string, len(e.Entries))
	for i, entry := range e.Entries {
		names[i] = entry.String()
	}
	return fmt.Sprintf("fns: conflicting registrations: %s", strings.Join(names, ", "))
}

// MergeStrict is like a.Merge(b) but returns a *ConflictError if a and b
// register a function with the same context, kind and name.
func MergeStrict(a, b *Fns) (*Fns, error) {
	if conflicts := a.Conflicts(b); len(conflicts) > 0 {
		return nil, &ConflictError{Entries: conflicts}
	}
	return a.Merge(b), nil
}
