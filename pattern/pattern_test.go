package pattern

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/npillmayer/inspect/capability"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vec struct {
	X, Y int
}

type animal interface {
	Sound() string
}

type dog struct{}

func (dog) Sound() string { return "woof" }

type stone struct{}

func TestPatternString(t *testing.T) {
	p := Tuple(Const(0), Bind("y", Alt(Type[string](), Id("s"))), Wild())
	assert.Equal(t, `[0, y @ <string> s, _]`, p.String())
	assert.Equal(t, `as<pattern.dog>(_)`, As[dog](Wild()).String())
	assert.Equal(t, `<1> "a"`, Alt(Index(1), Const("a")).String())
}

func TestPatternPrint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "inspect.pattern")
	defer teardown()
	//
	p := Tuple(Id("a"), Bind("b", Tuple(Const(1), Wild())))
	s := Print(p)
	t.Logf("\n%s", s)
	assert.Contains(t, s, "structured/2")
	assert.Contains(t, s, "binding b")
	assert.Contains(t, s, "constant 1")
}

func TestTupleCopiesArguments(t *testing.T) {
	sub := []Pattern{Id("a"), Id("b")}
	p := Tuple(sub...)
	sub[0] = Wild()
	assert.Equal(t, "[a, b]", p.String())
}

func TestNames(t *testing.T) {
	p := Tuple(Id("a"), Bind("b", Tuple(Id("c"), Wild())), As[dog](Id("d")))
	assert.Equal(t, []string{"a", "c", "b", "d"}, Names(p))
}

func TestIrrefutable(t *testing.T) {
	assert.True(t, Irrefutable(Wild()))
	assert.True(t, Irrefutable(Bind("x", Tuple(Id("a"), Wild()))))
	assert.False(t, Irrefutable(Tuple(Id("a"), Const(0))))
	assert.False(t, Irrefutable(Alt(Any, Wild())))
	assert.True(t, CatchAll(Bind("x", Id("y"))))
	assert.False(t, CatchAll(Tuple(Id("a"))))
}

func TestDiscriminators(t *testing.T) {
	intT := reflect.TypeOf(0)
	assert.True(t, Any.Admits(3, nil))
	assert.True(t, Index(1).Admits(1, intT))
	assert.False(t, Index(1).Admits(0, intT))
	assert.True(t, Type[int]().Admits(0, intT))
	assert.False(t, Type[int64]().Admits(0, intT))
	assert.True(t, Type[animal]().Admits(0, reflect.TypeOf(dog{})))
	assert.False(t, Type[animal]().Admits(0, reflect.TypeOf(stone{})))
	assert.True(t, Numeric.Admits(0, reflect.TypeOf(1.5)))
	assert.False(t, Numeric.Admits(0, reflect.TypeOf("")))
	n := 0
	rt := RuntimeIndex("current", func() int { return n })
	assert.False(t, rt.Static())
	assert.True(t, rt.Admits(0, nil))
	n = 1
	assert.False(t, rt.Admits(0, nil))
}

func TestCheckDuplicateName(t *testing.T) {
	err := Check(Tuple(Id("x"), Bind("x", Wild())), nil, capability.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateName))
	var cerr *CheckError
	require.True(t, errors.As(err, &cerr))
	t.Logf("error: %v", cerr)
}

func TestCheckArity(t *testing.T) {
	set := capability.Default()
	vt := reflect.TypeOf(vec{})
	assert.NoError(t, Check(Tuple(Id("x"), Id("y")), vt, set))
	err := Check(Tuple(Id("x"), Id("y"), Id("z")), vt, set)
	assert.True(t, errors.Is(err, ErrArity))
	err = Check(Tuple(Id("x")), reflect.TypeOf(""), set)
	assert.True(t, errors.Is(err, ErrShape))
	// nested: the second component of a vec is an int
	err = Check(Tuple(Id("x"), Tuple(Wild(), Wild())), vt, set)
	assert.True(t, errors.Is(err, ErrShape))
	// open subject types defer shape checks to run time
	assert.NoError(t, Check(Tuple(Id("x")), reflect.TypeOf((*any)(nil)).Elem(), set))
}

func TestCheckDowncast(t *testing.T) {
	set := capability.Default()
	at := reflect.TypeOf((*animal)(nil)).Elem()
	assert.NoError(t, Check(As[dog](Id("d")), at, set))
	err := Check(As[stone](Id("s")), at, set)
	assert.True(t, errors.Is(err, ErrUnrelated), fmt.Sprintf("error is %v", err))
	err = Check(As[string](Wild()), reflect.TypeOf(0), set)
	assert.True(t, errors.Is(err, ErrUnrelated))
	// downcast target type flows into sub-patterns
	err = Check(As[vec](Tuple(Wild())), reflect.TypeOf((*any)(nil)).Elem(), set)
	assert.True(t, errors.Is(err, ErrArity))
}

func TestCheckAlternativeIndex(t *testing.T) {
	set := capability.Default()
	err := Check(Alt(Index(1), Wild()), reflect.TypeOf(0), set)
	assert.True(t, errors.Is(err, ErrIndexRange))
	assert.NoError(t, Check(Alt(Index(0), Id("i")), reflect.TypeOf(0), set))
	err = Check(Alt(nil, Wild()), reflect.TypeOf(0), set)
	assert.True(t, errors.Is(err, ErrDiscriminator))
}

func TestCheckNil(t *testing.T) {
	err := Check(Tuple(Id("a"), nil), nil, capability.Default())
	assert.True(t, errors.Is(err, ErrNilPattern))
	err = Check(Id(""), nil, capability.Default())
	assert.True(t, errors.Is(err, ErrEmptyName))
}
