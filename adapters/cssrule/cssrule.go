/*
Package cssrule provides pattern-matching capabilities for CSS rules as parsed
by package github.com/aymerick/douceur.

A *css.Rule is a variant over its kind: alternative 0 holds qualified rules
(selectors with a declaration block), alternative 1 holds at-rules
(@media, @font-face, …). The content of either alternative is the rule
itself. Rules decompose positionally into

    (prelude string, declarations []*css.Declaration, nested []*css.Rule)

Declarations decompose by reflection into (property, value, important).
Constants compare against a rule's prelude, or against an at-rule's name if
they start with '@'.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssrule

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/inspect/capability"
	"github.com/npillmayer/inspect/maybe"
	"github.com/npillmayer/inspect/pattern"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer traces with key 'inspect.adapters'.
func tracer() tracing.Trace {
	return tracing.Select("inspect.adapters")
}

// RuleType is the reflect type of CSS rules.
var RuleType = reflect.TypeOf((*css.Rule)(nil))

// Discriminators for rule kinds.
var (
	Qualified = pattern.Index(css.QualifiedRule)
	At        = pattern.Index(css.AtRule)
)

// Domain is the closed set of rule kinds.
var Domain = capability.NewDomain(
	capability.Alt{Label: "QualifiedRule", Type: RuleType},
	capability.Alt{Label: "AtRule", Type: RuleType},
)

// Register installs the capability adapter for *css.Rule with set.
func Register(set *capability.Set) *capability.Set {
	return set.Register(RuleType, capability.Adapter{
		Equals:    equals,
		Decompose: decompose,
		ComponentTypes: []reflect.Type{
			reflect.TypeOf(""),
			reflect.TypeOf([]*css.Declaration{}),
			reflect.TypeOf([]*css.Rule{}),
		},
		ActiveIndex: func(v any) int {
			return int(v.(*css.Rule).Kind)
		},
		ActiveValue: func(v any, _ int) any {
			return v
		},
		Domain: Domain,
	})
}

func equals(constant, v any) bool {
	r := v.(*css.Rule)
	switch c := constant.(type) {
	case string:
		if strings.HasPrefix(c, "@") {
			return r.Kind == css.AtRule && r.Name == c
		}
		return strings.TrimSpace(r.Prelude) == strings.TrimSpace(c)
	case *css.Rule:
		return r == c || r.Equal(c)
	}
	return false
}

func decompose(v any) []any {
	r := v.(*css.Rule)
	return []any{r.Prelude, r.Declarations, r.Rules}
}

// Declaration creates an extractor yielding the declaration of property
// within a rule. If a rule declares a property more than once, the last
// declaration wins.
func Declaration(property string) capability.Extractor {
	return capability.ExtractorFunc{
		Label: "decl[" + property + "]",
		F: func(v any) (maybe.Maybe[any], error) {
			if d := lookup(v, property); d != nil {
				return maybe.Just[any](d), nil
			}
			return maybe.Nothing[any](), nil
		},
	}
}

// Property creates an extractor yielding the value of property within a
// rule, e.g. "15px" for "margin-top".
func Property(property string) capability.Extractor {
	return capability.ExtractorFunc{
		Label: "prop[" + property + "]",
		F: func(v any) (maybe.Maybe[any], error) {
			if d := lookup(v, property); d != nil {
				return maybe.Just[any](d.Value), nil
			}
			return maybe.Nothing[any](), nil
		},
	}
}

func lookup(v any, property string) *css.Declaration {
	r, ok := v.(*css.Rule)
	if !ok || r == nil {
		return nil
	}
	var found *css.Declaration
	for _, d := range r.Declarations {
		if d.Property == property {
			found = d
		}
	}
	return found
}

// Parse parses CSS text and returns its top-level rules.
func Parse(text string) ([]*css.Rule, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("cssrule: %w", err)
	}
	tracer().Debugf("parsed style sheet with %d rules", len(sheet.Rules))
	return sheet.Rules, nil
}

var styleElements = cascadia.MustCompile("style")

// StyleRules collects the rules of all <style> elements of an HTML document,
// in document order. Style elements which fail to parse are skipped and
// reported with the returned error.
func StyleRules(doc *html.Node) ([]*css.Rule, error) {
	var rules []*css.Rule
	var firstErr error
	for _, el := range cascadia.QueryAll(doc, styleElements) {
		if el.FirstChild == nil {
			continue
		}
		rs, err := Parse(el.FirstChild.Data)
		if err != nil {
			tracer().Errorf("skipping <style> element: %v", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		rules = append(rules, rs...)
	}
	return rules, firstErr
}
