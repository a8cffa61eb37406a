/*
Package either implements a sum type of two alternatives, Left and Right.

Either values are variants in the sense of package capability: alternative 0
is Left, alternative 1 is Right, and the set of alternatives is closed.

    e := either.Right[int]("2")
    var s string
    switch m := e.Match(); m {
    case m.Left(nil):
    case m.Right(&s):
    }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package either

import (
	"fmt"
	"reflect"

	"github.com/npillmayer/inspect/capability"
)

// Alternative indices.
const (
	LeftIndex  = 0
	RightIndex = 1
)

// Either holds either a value of type L or a value of type R.
type Either[L, R any] struct {
	right bool
	left  L
	rval  R
}

// Left creates an Either holding l.
func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{left: l}
}

// Right creates an Either holding r.
func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{right: true, rval: r}
}

// IsLeft is true if e holds a value of type L.
func (e Either[L, R]) IsLeft() bool {
	return !e.right
}

// ActiveIndex is part of interface capability.Variant.
func (e Either[L, R]) ActiveIndex() int {
	if e.right {
		return RightIndex
	}
	return LeftIndex
}

// ActiveValue is part of interface capability.Variant.
func (e Either[L, R]) ActiveValue() any {
	if e.right {
		return e.rval
	}
	return e.left
}

// Domain is part of interface capability.Closed.
func (e Either[L, R]) Domain() capability.Domain {
	return capability.NewDomain(
		capability.Alt{Label: "Left", Type: reflect.TypeOf((*L)(nil)).Elem()},
		capability.Alt{Label: "Right", Type: reflect.TypeOf((*R)(nil)).Elem()},
	)
}

var _ capability.Variant = Either[int, string]{}
var _ capability.Closed = Either[int, string]{}

func (e Either[L, R]) String() string {
	if e.right {
		return fmt.Sprintf("Right(%v)", e.rval)
	}
	return fmt.Sprintf("Left(%v)", e.left)
}

// Fold applies onLeft or onRight, depending on the alternative held by e.
func Fold[L, R, T any](e Either[L, R], onLeft func(L) T, onRight func(R) T) T {
	if e.right {
		return onRight(e.rval)
	}
	return onLeft(e.left)
}

// --- Matching --------------------------------------------------------------

// Matcher lets clients switch over the alternatives of an Either. Arguments
// may be nil if the content is not needed.
type Matcher[L, R any] interface {
	Left(*L) Matcher[L, R]
	Right(*R) Matcher[L, R]
}

// Match creates a matcher for e.
func (e Either[L, R]) Match() Matcher[L, R] {
	return matcher[L, R]{e: &e}
}

type matcher[L, R any] struct {
	e *Either[L, R]
}

func (m matcher[L, R]) Left(l *L) Matcher[L, R] {
	if m.e.right {
		return nil
	}
	if l != nil {
		*l = m.e.left
	}
	return m
}

func (m matcher[L, R]) Right(r *R) Matcher[L, R] {
	if !m.e.right {
		return nil
	}
	if r != nil {
		*r = m.e.rval
	}
	return m
}
