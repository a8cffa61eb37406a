package pattern

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/npillmayer/inspect/capability"
	"github.com/npillmayer/inspect/maybe"
)

// Pattern is a structural predicate plus a template for bindings. The set of
// pattern variants is closed; see the package documentation.
type Pattern interface {
	isPattern()
	String() string
}

// Wildcard matches any value without binding it.
type Wildcard struct{}

// Identifier matches any value and binds it to Name.
type Identifier struct {
	Name string
}

// Constant matches values equal to Value, as decided by the equality
// capability.
type Constant struct {
	Value any
}

// Structured matches values which decompose into exactly len(Sub) components,
// each matching the corresponding sub-pattern.
type Structured struct {
	Sub []Pattern
}

// Alternative matches variant values whose active alternative is admitted by
// the discriminator and whose content matches Sub.
type Alternative struct {
	Discriminator Discriminator
	Sub           Pattern
}

// Binding matches if Sub matches and additionally binds the value to Name.
type Binding struct {
	Name string
	Sub  Pattern
}

// Extractor matches if the extractor yields a payload which matches Sub.
// Target is set for checked downcasts created by As and is nil otherwise.
type Extractor struct {
	X      capability.Extractor
	Sub    Pattern
	Target reflect.Type
}

func (Wildcard) isPattern()    {}
func (Identifier) isPattern()  {}
func (Constant) isPattern()    {}
func (Structured) isPattern()  {}
func (Alternative) isPattern() {}
func (Binding) isPattern()     {}
func (Extractor) isPattern()   {}

// --- Constructors ----------------------------------------------------------

// Wild creates a wildcard pattern.
func Wild() Pattern {
	return Wildcard{}
}

// Id creates an identifier pattern.
func Id(name string) Pattern {
	return Identifier{Name: name}
}

// Const creates a constant pattern.
func Const(value any) Pattern {
	return Constant{Value: value}
}

// Tuple creates a structured binding pattern of arity len(sub).
func Tuple(sub ...Pattern) Pattern {
	s := make([]Pattern, len(sub))
	copy(s, sub)
	return Structured{Sub: s}
}

// Alt creates an alternative pattern.
func Alt(d Discriminator, sub Pattern) Pattern {
	return Alternative{Discriminator: d, Sub: sub}
}

// Bind creates a binding pattern.
func Bind(name string, sub Pattern) Pattern {
	return Binding{Name: name, Sub: sub}
}

// Extract creates an extractor pattern.
func Extract(x capability.Extractor, sub Pattern) Pattern {
	return Extractor{X: x, Sub: sub}
}

// As creates an extractor pattern performing a checked downcast to T. The
// extraction yields nothing if the dynamic type of the value is not T (or,
// for interface types T, does not implement T).
func As[T any](sub Pattern) Pattern {
	var target = reflect.TypeOf((*T)(nil)).Elem()
	return Extractor{X: downcast[T]{target: target}, Sub: sub, Target: target}
}

type downcast[T any] struct {
	target reflect.Type
}

func (d downcast[T]) Name() string {
	return "as<" + d.target.String() + ">"
}

func (d downcast[T]) Extract(v any) (maybe.Maybe[any], error) {
	t, ok := v.(T)
	return maybe.Of[any](t, ok), nil
}

// --- Stringer --------------------------------------------------------------

func (Wildcard) String() string {
	return "_"
}

func (p Identifier) String() string {
	return p.Name
}

func (p Constant) String() string {
	if s, ok := p.Value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", p.Value)
}

func (p Structured) String() string {
	parts := make([]string, len(p.Sub))
	for i, sub := range p.Sub {
		parts[i] = str(sub)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (p Alternative) String() string {
	return "<" + discrString(p.Discriminator) + "> " + str(p.Sub)
}

func (p Binding) String() string {
	return p.Name + " @ " + str(p.Sub)
}

func (p Extractor) String() string {
	name := "?"
	if p.X != nil {
		name = p.X.Name()
	}
	return name + "(" + str(p.Sub) + ")"
}

func str(p Pattern) string {
	if p == nil {
		return "<nil>"
	}
	return p.String()
}

func discrString(d Discriminator) string {
	if d == nil {
		return "<nil>"
	}
	return d.String()
}

// --- Traversal -------------------------------------------------------------

// Children returns the direct sub-patterns of p, in matching order.
func Children(p Pattern) []Pattern {
	switch x := p.(type) {
	case Structured:
		return x.Sub
	case Alternative:
		return []Pattern{x.Sub}
	case Binding:
		return []Pattern{x.Sub}
	case Extractor:
		return []Pattern{x.Sub}
	}
	return nil
}

// Names returns the names bound by p, in the order bindings are appended
// during a successful match. Duplicates are included.
func Names(p Pattern) []string {
	var names []string
	var collect func(Pattern)
	collect = func(p Pattern) {
		switch x := p.(type) {
		case Identifier:
			names = append(names, x.Name)
			return
		case Binding:
			collect(x.Sub)
			names = append(names, x.Name)
			return
		}
		for _, ch := range Children(p) {
			collect(ch)
		}
	}
	collect(p)
	return names
}

// Irrefutable reports whether p matches every value it may be applied to,
// i.e. whether it consists of wildcards, identifiers and bindings only.
// Structured patterns are irrefutable if all of their components are.
func Irrefutable(p Pattern) bool {
	switch x := p.(type) {
	case Wildcard, Identifier:
		return true
	case Binding:
		return Irrefutable(x.Sub)
	case Structured:
		for _, sub := range x.Sub {
			if !Irrefutable(sub) {
				return false
			}
		}
		return true
	}
	return false
}

// CatchAll reports whether p is a wildcard or identifier, possibly wrapped in
// bindings.
func CatchAll(p Pattern) bool {
	switch x := p.(type) {
	case Wildcard, Identifier:
		return true
	case Binding:
		return CatchAll(x.Sub)
	}
	return false
}
