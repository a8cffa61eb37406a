/*
Package htmlnode provides pattern-matching capabilities for HTML parse trees
of package golang.org/x/net/html.

An *html.Node is a variant: its active alternative is its node type
(ElementNode, TextNode, …), the content is the node itself. Nodes decompose
positionally into a triple

    (data string, attributes map[string]string, children []*html.Node)

where data is the tag name of elements and the text of text and comment
nodes. Constants compare against a node's data (strings) or its atom
(atom.Atom).

Extractors Select and Attr look into a node: Select finds the first
descendant matching a CSS selector, Attr yields the value of an attribute.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package htmlnode

import (
	"fmt"
	"reflect"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/inspect/capability"
	"github.com/npillmayer/inspect/maybe"
	"github.com/npillmayer/inspect/pattern"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'inspect.adapters'.
func tracer() tracing.Trace {
	return tracing.Select("inspect.adapters")
}

// NodeType is the reflect type of HTML nodes.
var NodeType = reflect.TypeOf((*html.Node)(nil))

// Discriminators for the node types.
var (
	Text     = pattern.Index(html.TextNode)
	Document = pattern.Index(html.DocumentNode)
	Element  = pattern.Index(html.ElementNode)
	Comment  = pattern.Index(html.CommentNode)
	Doctype  = pattern.Index(html.DoctypeNode)
	Raw      = pattern.Index(html.RawNode)
)

// Domain is the closed set of node types.
var Domain = capability.NewDomain(
	capability.Alt{Label: "ErrorNode", Type: NodeType},
	capability.Alt{Label: "TextNode", Type: NodeType},
	capability.Alt{Label: "DocumentNode", Type: NodeType},
	capability.Alt{Label: "ElementNode", Type: NodeType},
	capability.Alt{Label: "CommentNode", Type: NodeType},
	capability.Alt{Label: "DoctypeNode", Type: NodeType},
	capability.Alt{Label: "RawNode", Type: NodeType},
)

// Register installs the capability adapter for *html.Node with set.
func Register(set *capability.Set) *capability.Set {
	return set.Register(NodeType, capability.Adapter{
		Equals:    equals,
		Decompose: decompose,
		ComponentTypes: []reflect.Type{
			reflect.TypeOf(""),
			reflect.TypeOf(map[string]string{}),
			reflect.TypeOf([]*html.Node{}),
		},
		ActiveIndex: func(v any) int {
			return int(v.(*html.Node).Type)
		},
		ActiveValue: func(v any, _ int) any {
			return v
		},
		Domain: Domain,
	})
}

func equals(constant, v any) bool {
	n := v.(*html.Node)
	switch c := constant.(type) {
	case string:
		return n.Data == c
	case atom.Atom:
		return n.DataAtom == c
	case *html.Node:
		return n == c
	}
	return false
}

func decompose(v any) []any {
	n := v.(*html.Node)
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
	}
	var children []*html.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		children = append(children, ch)
	}
	return []any{n.Data, attrs, children}
}

// Select creates an extractor yielding the first descendant of a node which
// matches a CSS selector.
func Select(selector string) (capability.Extractor, error) {
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("htmlnode: invalid selector %q: %w", selector, err)
	}
	return capability.ExtractorFunc{
		Label: "select[" + selector + "]",
		F: func(v any) (maybe.Maybe[any], error) {
			n, ok := v.(*html.Node)
			if !ok || n == nil {
				return maybe.Nothing[any](), nil
			}
			found := cascadia.Query(n, group)
			tracer().Debugf("selector %q on <%s> finds %v", selector, n.Data, found != nil)
			return maybe.Of[any](found, found != nil), nil
		},
	}, nil
}

// MustSelect is like Select, but panics for invalid selectors.
func MustSelect(selector string) capability.Extractor {
	x, err := Select(selector)
	if err != nil {
		panic(err)
	}
	return x
}

// Attr creates an extractor yielding the value of attribute key.
func Attr(key string) capability.Extractor {
	return capability.ExtractorFunc{
		Label: "attr[" + key + "]",
		F: func(v any) (maybe.Maybe[any], error) {
			if n, ok := v.(*html.Node); ok && n != nil {
				for _, a := range n.Attr {
					if a.Key == key {
						return maybe.Just[any](a.Val), nil
					}
				}
			}
			return maybe.Nothing[any](), nil
		},
	}
}
