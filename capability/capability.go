package capability

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/npillmayer/inspect/maybe"
)

// Equaler is implemented by values which know how to compare themselves to a
// pattern constant.
type Equaler interface {
	Equals(other any) bool
}

// Decomposer is implemented by tuple-like values. The number of components
// must be the same for every value of a type.
type Decomposer interface {
	Decompose() []any
}

// Shaped may be implemented by Decomposers to announce the types of their
// components without a value at hand. It is called on the zero value.
type Shaped interface {
	ComponentTypes() []reflect.Type
}

// Variant is implemented by sum-typed values.
type Variant interface {
	ActiveIndex() int // index of the active alternative
	ActiveValue() any // content of the active alternative
}

// Closed is implemented by variant types with a finite, enumerable set of
// alternatives. It is called on the zero value of a type.
type Closed interface {
	Domain() Domain
}

// Extractor is a custom capability: a predicate which, if it holds, yields
// new content for a sub-pattern to match against. Errors returned by Extract
// are faults and abort evaluation.
type Extractor interface {
	Name() string
	Extract(v any) (maybe.Maybe[any], error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc struct {
	Label string
	F     func(v any) (maybe.Maybe[any], error)
}

// Name is part of interface Extractor.
func (x ExtractorFunc) Name() string { return x.Label }

// Extract is part of interface Extractor.
func (x ExtractorFunc) Extract(v any) (maybe.Maybe[any], error) { return x.F(v) }

var _ Extractor = ExtractorFunc{}

// --- Domain ----------------------------------------------------------------

// Alt describes one alternative of a closed domain.
type Alt struct {
	Label string
	Type  reflect.Type // type of the content; nil if content carries no value
}

// Domain is the closed set of alternatives of a variant type. The zero
// Domain is empty and stands for an open set.
type Domain struct {
	alts []Alt
}

// NewDomain creates a domain from an ordered list of alternatives. Position i
// of the list is alternative index i.
func NewDomain(alts ...Alt) Domain {
	d := Domain{alts: make([]Alt, len(alts))}
	copy(d.alts, alts)
	return d
}

// Size returns the number of alternatives, 0 for open domains.
func (d Domain) Size() int {
	return len(d.alts)
}

// Closed is true if the domain enumerates at least one alternative.
func (d Domain) Closed() bool {
	return len(d.alts) > 0
}

// TypeAt returns the content type of alternative i.
func (d Domain) TypeAt(i int) reflect.Type {
	assertThat(i >= 0 && i < len(d.alts), "alternative index %d out of domain of size %d", i, len(d.alts))
	return d.alts[i].Type
}

// Label returns the label of alternative i.
func (d Domain) Label(i int) string {
	if d.alts[i].Label != "" {
		return d.alts[i].Label
	}
	if d.alts[i].Type != nil {
		return d.alts[i].Type.String()
	}
	return fmt.Sprintf("#%d", i)
}

func (d Domain) String() string {
	if !d.Closed() {
		return "{…}"
	}
	labels := make([]string, len(d.alts))
	for i := range d.alts {
		labels[i] = d.Label(i)
	}
	return "{" + strings.Join(labels, " | ") + "}"
}

// --- Adapter and Set -------------------------------------------------------

// Adapter bundles the capabilities of a single Go type. Any field may be left
// nil, in which case the Set falls back to interfaces and reflection.
type Adapter struct {
	Equals         func(constant, v any) bool
	Decompose      func(v any) []any
	ComponentTypes []reflect.Type // static shape of Decompose results
	ActiveIndex    func(v any) int
	ActiveValue    func(v any, index int) any
	Domain         Domain
}

// Set resolves capabilities for values. A Set is configured once and is
// read-only afterwards.
type Set struct {
	adapters map[reflect.Type]*Adapter
}

// ErrNotDecomposable is flagged for values without positional decomposition.
var ErrNotDecomposable = errors.New("value does not support positional decomposition")

// ErrOpenType is flagged if a static property cannot be derived from a type,
// because it is an interface type or does not announce its shape.
var ErrOpenType = errors.New("type is open; shape known at run time only")

// NewSet creates a capability set without adapters.
func NewSet() *Set {
	return &Set{adapters: make(map[reflect.Type]*Adapter)}
}

var defaultSet = NewSet()

// Default returns a shared set without adapters, relying on interfaces and
// reflection only.
func Default() *Set {
	return defaultSet
}

// Register installs an adapter for type t and returns the set, for chaining.
func (s *Set) Register(t reflect.Type, a Adapter) *Set {
	assertThat(s != defaultSet, "cannot register adapters with the default set")
	assertThat(a.ActiveIndex == nil || a.ActiveValue != nil,
		"adapter for %s: ActiveIndex without ActiveValue", t)
	tracer().Debugf("registering capability adapter for %s", t)
	s.adapters[t] = &a
	return s
}

func (s *Set) adapter(t reflect.Type) *Adapter {
	if s == nil || t == nil {
		return nil
	}
	return s.adapters[t]
}

// Equals applies the equality capability between a pattern constant and the
// value r refers to. No numeric promotion is performed: int(0) does not equal
// int64(0) unless an Equaler or Adapter says so.
func (s *Set) Equals(constant any, r Ref) bool {
	v := r.Value()
	if a := s.adapter(reflect.TypeOf(v)); a != nil && a.Equals != nil {
		return a.Equals(constant, v)
	}
	if e, ok := v.(Equaler); ok {
		return e.Equals(constant)
	}
	if e, ok := constant.(Equaler); ok {
		return e.Equals(v)
	}
	return defaultEquals(constant, v)
}

// Decompose splits the value r refers to into its positional components.
func (s *Set) Decompose(r Ref) ([]Ref, error) {
	v := r.Value()
	var parts []any
	if a := s.adapter(reflect.TypeOf(v)); a != nil && a.Decompose != nil {
		parts = a.Decompose(v)
	} else if d, ok := v.(Decomposer); ok {
		parts = d.Decompose()
	} else {
		return reflectDecompose(r)
	}
	refs := make([]Ref, len(parts))
	for i, p := range parts {
		refs[i] = valueRef(p, r.path.Extend(Step{Kind: Component, Index: i}))
	}
	return refs, nil
}

// Variant introspects the value r refers to, returning the index of the active
// alternative and a reference to its content.
func (s *Set) Variant(r Ref) (int, Ref) {
	v := r.Value()
	if a := s.adapter(reflect.TypeOf(v)); a != nil && a.ActiveIndex != nil {
		i := a.ActiveIndex(v)
		c := valueRef(a.ActiveValue(v, i), r.path.Extend(Step{Kind: Alternative, Index: i}))
		if i >= 0 && i < a.Domain.Size() {
			c = c.declaredAs(a.Domain.TypeAt(i))
		}
		return i, c
	}
	if vv, ok := v.(Variant); ok {
		i := vv.ActiveIndex()
		c := valueRef(vv.ActiveValue(), r.path.Extend(Step{Kind: Alternative, Index: i}))
		if cl, ok := v.(Closed); ok {
			if d := cl.Domain(); i >= 0 && i < d.Size() {
				c = c.declaredAs(d.TypeAt(i))
			}
		}
		return i, c
	}
	// single alternative: the value itself
	c := r
	c.path = r.path.Extend(Step{Kind: Alternative, Index: 0})
	return 0, c
}

// Extract runs extractor x over the value r refers to. The payload, if any, is
// a new value, owned by the reference.
func (s *Set) Extract(x Extractor, r Ref) (maybe.Maybe[Ref], error) {
	m, err := x.Extract(r.Value())
	if err != nil {
		return maybe.Nothing[Ref](), err
	}
	step := Step{Kind: Extraction, Name: x.Name()}
	return maybe.Convert(func(p any) Ref {
		return valueRef(p, r.path.Extend(step))
	}, m), nil
}

// --- Static introspection --------------------------------------------------

// ComponentTypes returns the static shape of values of type t under positional
// decomposition. It returns ErrOpenType if the shape cannot be determined
// without a value, and ErrNotDecomposable if values of t never decompose.
func (s *Set) ComponentTypes(t reflect.Type) ([]reflect.Type, error) {
	if t == nil {
		return nil, ErrOpenType
	}
	if a := s.adapter(t); a != nil && a.Decompose != nil {
		if a.ComponentTypes == nil {
			return nil, ErrOpenType
		}
		return a.ComponentTypes, nil
	}
	if t.Implements(shapedType) {
		if sh, ok := zeroOf(t).(Shaped); ok {
			return sh.ComponentTypes(), nil
		}
	}
	if t.Implements(decomposerType) || t.Kind() == reflect.Interface {
		return nil, ErrOpenType
	}
	return reflectComponentTypes(t)
}

// DomainOf returns the closed set of alternatives for values of type t.
// Concrete types which are not variants form a domain of one alternative.
// The second return value is false for open domains.
func (s *Set) DomainOf(t reflect.Type) (Domain, bool) {
	if t == nil {
		return Domain{}, false
	}
	if a := s.adapter(t); a != nil && a.ActiveIndex != nil {
		return a.Domain, a.Domain.Closed()
	}
	if t.Implements(closedType) {
		if c, ok := zeroOf(t).(Closed); ok {
			d := c.Domain()
			return d, d.Closed()
		}
	}
	if t.Implements(variantType) || t.Kind() == reflect.Interface {
		return Domain{}, false
	}
	return NewDomain(Alt{Type: t}), true
}

// IsVariant reports whether values of type t carry their own alternatives,
// as opposed to being treated as a single alternative.
func (s *Set) IsVariant(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if a := s.adapter(t); a != nil && a.ActiveIndex != nil {
		return true
	}
	return t.Implements(variantType)
}

var (
	decomposerType = reflect.TypeOf((*Decomposer)(nil)).Elem()
	shapedType     = reflect.TypeOf((*Shaped)(nil)).Elem()
	variantType    = reflect.TypeOf((*Variant)(nil)).Elem()
	closedType     = reflect.TypeOf((*Closed)(nil)).Elem()
)

// zeroOf returns the zero value of t as an interface, or nil if methods cannot
// be called on it safely (nil pointers and interfaces).
func zeroOf(t reflect.Type) any {
	if t.Kind() == reflect.Ptr {
		return reflect.New(t.Elem()).Interface()
	}
	if t.Kind() == reflect.Interface {
		return nil
	}
	return reflect.Zero(t).Interface()
}
