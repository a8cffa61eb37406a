package pattern

import (
	"fmt"
	"reflect"
)

// Discriminator decides whether an Alternative pattern is compatible with the
// active alternative of a variant value.
//
// Admits is called with the index of the active alternative and the type of
// its content. At run time this is the dynamic type of the content, during
// static evaluation it is the content type declared by the variant's domain.
//
// Static discriminators are resolvable at translation time: for a given index
// and type, Admits must always return the same answer. Discriminators depending
// on run-time state must return false from Static.
type Discriminator interface {
	Admits(index int, content reflect.Type) bool
	Static() bool
	String() string
}

// Typed is implemented by discriminators which admit content of a single
// known type. This lets static checks follow sub-patterns into the content.
type Typed interface {
	ContentType() reflect.Type
}

// Any admits every alternative.
var Any Discriminator = anyDiscr{}

type anyDiscr struct{}

func (anyDiscr) Admits(int, reflect.Type) bool { return true }
func (anyDiscr) Static() bool                  { return true }
func (anyDiscr) String() string                { return "*" }

// Index admits exactly the alternative at position n.
type Index int

// Admits is part of interface Discriminator.
func (n Index) Admits(index int, _ reflect.Type) bool { return int(n) == index }

// Static is part of interface Discriminator.
func (n Index) Static() bool { return true }

func (n Index) String() string { return fmt.Sprintf("%d", int(n)) }

// TypeOf admits alternatives whose content is of type t or, if t is an
// interface type, implements t.
func TypeOf(t reflect.Type) Discriminator {
	return typeDiscr{t: t}
}

// Type admits alternatives whose content is of type T, or implements T.
func Type[T any]() Discriminator {
	return typeDiscr{t: reflect.TypeOf((*T)(nil)).Elem()}
}

type typeDiscr struct {
	t reflect.Type
}

func (d typeDiscr) Admits(_ int, content reflect.Type) bool {
	if content == nil {
		return false
	}
	if content == d.t {
		return true
	}
	return d.t.Kind() == reflect.Interface && content.Implements(d.t)
}

func (d typeDiscr) Static() bool              { return true }
func (d typeDiscr) String() string            { return d.t.String() }
func (d typeDiscr) ContentType() reflect.Type { return d.t }

// Concept admits alternatives whose content type satisfies a named predicate
// over types, e.g. “is numeric” or “has a String method”. The predicate has
// to be pure.
func Concept(name string, pred func(reflect.Type) bool) Discriminator {
	return concept{name: name, pred: pred}
}

type concept struct {
	name string
	pred func(reflect.Type) bool
}

func (c concept) Admits(_ int, content reflect.Type) bool {
	return content != nil && c.pred(content)
}

func (c concept) Static() bool   { return true }
func (c concept) String() string { return c.name }

// RuntimeIndex admits the alternative at an index computed at match time.
// Case lists using it cannot be evaluated statically.
func RuntimeIndex(name string, index func() int) Discriminator {
	return runtimeIndex{name: name, index: index}
}

type runtimeIndex struct {
	name  string
	index func() int
}

func (r runtimeIndex) Admits(index int, _ reflect.Type) bool { return r.index() == index }
func (r runtimeIndex) Static() bool                          { return false }
func (r runtimeIndex) String() string                        { return r.name + "()" }

// Numeric is a concept admitting integer and floating point content.
var Numeric = Concept("numeric", func(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
})
