package either_test

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/npillmayer/inspect/capability"
	"github.com/npillmayer/inspect/either"
)

func TestEitherMatchConstructor(t *testing.T) {
	one := either.Left[int, string](1)
	two := either.Right[int]("2")
	var count int
	var s string
	switch m := one.Match(); m {
	case m.Left(&count):
	case m.Right(&s):
		count = Atoi(s)
	}
	if count != 1 {
		t.Errorf("expected count of Left(1) to be 1, is %d", count)
	}
	switch m := two.Match(); m {
	case m.Left(&count):
	case m.Right(&s):
		count = Atoi(s)
	}
	if count != 2 {
		t.Errorf("expected count of Right(\"2\") to be 2, is %d", count)
	}
}

func TestEitherFold(t *testing.T) {
	e := either.Right[int]("42")
	n := either.Fold(e, func(l int) int { return l }, Atoi)
	if n != 42 {
		t.Errorf("expected Fold to yield 42, is %d", n)
	}
}

func TestEitherIsVariant(t *testing.T) {
	var v capability.Variant = either.Right[int]("x")
	if v.ActiveIndex() != either.RightIndex {
		t.Errorf("expected active index to be 1, is %d", v.ActiveIndex())
	}
	if v.ActiveValue() != "x" {
		t.Errorf("expected active value to be \"x\", is %v", v.ActiveValue())
	}
	d, closed := capability.Default().DomainOf(reflect.TypeOf(either.Either[int, string]{}))
	if !closed || d.Size() != 2 {
		t.Fatalf("expected closed domain of size 2, is %s", d)
	}
	if d.TypeAt(1) != reflect.TypeOf("") {
		t.Errorf("expected Right alternative to hold strings, holds %v", d.TypeAt(1))
	}
	t.Logf("domain = %s", d)
}

// ---------------------------------------------------------------------------

func Atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}
