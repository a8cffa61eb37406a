package inspect

import (
	"reflect"

	"github.com/npillmayer/inspect/capability"
)

// --- Pair ------------------------------------------------------------------

// Pair is a tuple of two values. It decomposes into its components.
type Pair[A, B any] struct {
	Left  A
	Right B
}

// P creates a pair.
func P[A, B any](x A, y B) Pair[A, B] {
	return Pair[A, B]{x, y}
}

// Decompose is part of interface capability.Decomposer.
func (p Pair[A, B]) Decompose() []any {
	return []any{p.Left, p.Right}
}

// ComponentTypes is part of interface capability.Shaped.
func (p Pair[A, B]) ComponentTypes() []reflect.Type {
	return []reflect.Type{typeOf[A](), typeOf[B]()}
}

var _ capability.Decomposer = Pair[int, int]{}
var _ capability.Shaped = P(1, 2)

// --- Triple ----------------------------------------------------------------

// Triple is a tuple of three values.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// T3 creates a triple.
func T3[A, B, C any](x A, y B, z C) Triple[A, B, C] {
	return Triple[A, B, C]{x, y, z}
}

// Decompose is part of interface capability.Decomposer.
func (t Triple[A, B, C]) Decompose() []any {
	return []any{t.First, t.Second, t.Third}
}

// ComponentTypes is part of interface capability.Shaped.
func (t Triple[A, B, C]) ComponentTypes() []reflect.Type {
	return []reflect.Type{typeOf[A](), typeOf[B](), typeOf[C]()}
}

var _ capability.Decomposer = Triple[int, int, int]{}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
