package maybe_test

import (
	"strconv"
	"testing"

	. "github.com/npillmayer/inspect/maybe"
)

func TestMaybeSimple(t *testing.T) {
	x := Just(7) // infers type
	y := Nothing[int]()

	var v int
	switch m := x.Match(); m {
	case m.Just(&v):
		t.Logf("Just(%d)", v)
	case m.Nothing():
		t.Logf("Nothing")
	}
	if v != 7 {
		t.Errorf("expected v to be 7, is %#v", v)
	}

	var w int
	switch m := y.Match(); m {
	case m.Just(&w):
		t.Logf("Just(%d)", w)
	case m.Nothing():
		t.Logf("Nothing")
	}
	if w != 0 {
		t.Errorf("expected w to be 0, is %#v", w)
	}
}

func TestMaybeNonComparablePayload(t *testing.T) {
	x := Just[any]([]int{1, 2})
	var v any
	switch m := x.Match(); m {
	case m.Just(&v):
	case m.Nothing():
		t.Error("expected Just([1 2]) to match Just, didn't")
	}
	if s, ok := v.([]int); !ok || len(s) != 2 {
		t.Errorf("expected payload to be [1 2], is %v", v)
	}
}

func TestMaybeWithDefault(t *testing.T) {
	x := Just(7)
	if xx := x.WithDefault(100); xx != 7 {
		t.Errorf("expected Just(7) to have value 7, has %d", xx)
	}
	y := Nothing[int]()
	if yy := y.WithDefault(100); yy != 100 {
		t.Errorf("expected Nothing to default to 100, is %d", yy)
	}
}

func TestMaybeOf(t *testing.T) {
	var i any = "hello"
	s, ok := i.(string)
	if !Of(s, ok).IsJust() {
		t.Error("expected successful type assertion to yield Just")
	}
	n, ok := i.(int)
	if Of(n, ok).IsJust() {
		t.Error("expected failed type assertion to yield Nothing")
	}
}

func TestMaybeMap(t *testing.T) {
	x := Just(7)
	xx := x.Map(func(n int) int {
		return n * 2
	})
	if v, _ := xx.Get(); v != 14 {
		t.Errorf("expected Just(7).Map(…) to return 14, is %d", v)
	}
	y := Nothing[int]()
	yy := y.Map(func(n int) int {
		return n * 2
	})
	if yy.IsJust() {
		t.Error("expected Nothing.Map(…) to be Nothing, isn't")
	}
}

func TestMaybeConvert(t *testing.T) {
	s := Convert(strconv.Itoa, Just(42))
	if v, ok := s.Get(); !ok || v != "42" {
		t.Errorf("expected Convert to produce Just(\"42\"), is %v", s)
	}
}

func TestMaybeAndThen(t *testing.T) {
	gt0 := func(n int) Maybe[bool] {
		if n > 0 {
			return Just(true)
		}
		return Nothing[bool]()
	}
	gt := AndThen(gt0, Just(7))
	var isGreater bool
	switch m := gt.Match(); m {
	case m.Just(&isGreater):
		t.Logf("ok: 7 > 0")
	case m.Nothing():
		t.Error("expected Just(7) |> andThen(gt0) to be true, isn't")
	}
	if AndThen(gt0, Just(-1)).IsJust() {
		t.Error("expected Just(-1) |> andThen(gt0) to be Nothing, isn't")
	}
}
