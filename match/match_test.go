package match

import (
	"errors"
	"reflect"
	"testing"

	"github.com/npillmayer/inspect/capability"
	"github.com/npillmayer/inspect/maybe"
	"github.com/npillmayer/inspect/pattern"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A, B any
}

type node struct {
	inx int
	val any
}

func (n node) ActiveIndex() int { return n.inx }
func (n node) ActiveValue() any { return n.val }
func (n node) Domain() capability.Domain {
	return capability.NewDomain(
		capability.Alt{Label: "leaf", Type: reflect.TypeOf(0)},
		capability.Alt{Label: "branch", Type: reflect.TypeOf(pair{})},
	)
}

// probe counts how often it has been asked to compare.
type probe struct {
	calls *int
	v     any
}

func (p probe) Equals(other any) bool {
	*p.calls++
	return p.v == other
}

func runMatch(t *testing.T, p pattern.Pattern, subject any) (bool, *Env) {
	env := NewEnv()
	r, err := Values(nil).Match(p, capability.Root(subject), env)
	require.NoError(t, err)
	return r == Yes, env
}

func TestWildcardAndIdentifier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "inspect.match")
	defer teardown()
	//
	ok, env := runMatch(t, pattern.Wild(), 42)
	assert.True(t, ok)
	assert.Equal(t, 0, env.Len())
	ok, env = runMatch(t, pattern.Id("x"), 42)
	assert.True(t, ok)
	x, found := Get[int](env, "x")
	assert.True(t, found)
	assert.Equal(t, 42, x)
}

func TestConstant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "inspect.match")
	defer teardown()
	//
	ok, _ := runMatch(t, pattern.Const("a"), "a")
	assert.True(t, ok)
	ok, _ = runMatch(t, pattern.Const(1), int8(1))
	assert.False(t, ok, "no numeric promotion")
}

func TestStructuredBindsInOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "inspect.match")
	defer teardown()
	//
	p := pattern.Tuple(pattern.Id("a"), pattern.Bind("b", pattern.Tuple(pattern.Const(1), pattern.Id("c"))))
	ok, env := runMatch(t, p, pair{"x", pair{1, 2}})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "c", "b"}, env.Names())
	assert.Equal(t, pattern.Names(p), env.Names())
	t.Logf("\n%s", env)
	c, _ := env.Lookup("c")
	assert.Equal(t, ".1.1", c.Path().String())
}

func TestStructuredShortCircuit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "inspect.match")
	defer teardown()
	//
	var first, second int
	p := pattern.Tuple(
		pattern.Const(probe{&first, 0}),
		pattern.Const(probe{&second, 0}),
	)
	ok, env := runMatch(t, p, [2]int{1, 0})
	assert.False(t, ok)
	assert.Equal(t, 1, first)
	assert.Equal(t, 0, second, "second component must not be attempted")
	assert.Equal(t, 0, env.Len())
}

func TestStructuredRollback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "inspect.match")
	defer teardown()
	//
	env := NewEnv()
	m := Values(nil)
	env.Append("outer", capability.Root("kept"))
	p := pattern.Tuple(pattern.Id("a"), pattern.Id("b"), pattern.Const(9))
	r, err := m.Match(p, capability.Root([3]int{1, 2, 3}), env)
	require.NoError(t, err)
	assert.Equal(t, No, r)
	assert.Equal(t, []string{"outer"}, env.Names(), "partial bindings must be rolled back")
}

func TestStructuredShapeError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "inspect.match")
	defer teardown()
	//
	m := Values(nil)
	_, err := m.Match(pattern.Tuple(pattern.Wild()), capability.Root(pair{1, 2}), NewEnv())
	require.Error(t, err)
	assert.True(t, IsShapeError(err))
	assert.True(t, errors.Is(err, pattern.ErrArity))
	_, err = m.Match(pattern.Tuple(pattern.Wild()), capability.Root(5), NewEnv())
	assert.True(t, errors.Is(err, capability.ErrNotDecomposable))
}

func TestAlternative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "inspect.match")
	defer teardown()
	//
	leaf := node{inx: 0, val: 7}
	ok, _ := runMatch(t, pattern.Alt(pattern.Index(1), pattern.Wild()), leaf)
	assert.False(t, ok)
	ok, env := runMatch(t, pattern.Alt(pattern.Index(0), pattern.Id("i")), leaf)
	require.True(t, ok)
	assert.Equal(t, 7, env.Value("i"))
	ok, _ = runMatch(t, pattern.Alt(pattern.Type[int](), pattern.Wild()), leaf)
	assert.True(t, ok)
	ok, _ = runMatch(t, pattern.Alt(pattern.Any, pattern.Const(8)), leaf)
	assert.False(t, ok)
	// open dispatch on the dynamic type of non-variants
	var v any = "text"
	ok, env = runMatch(t, pattern.Alt(pattern.Type[string](), pattern.Id("s")), v)
	assert.True(t, ok)
	assert.Equal(t, "text", env.Value("s"))
}

func TestBinding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "inspect.match")
	defer teardown()
	//
	ok, env := runMatch(t, pattern.Bind("whole", pattern.Tuple(pattern.Id("a"), pattern.Wild())), pair{1, 2})
	require.True(t, ok)
	assert.Equal(t, pair{1, 2}, env.Value("whole"))
	assert.Equal(t, 1, env.Value("a"))
	ok, env = runMatch(t, pattern.Bind("whole", pattern.Const(3)), 4)
	assert.False(t, ok)
	assert.Equal(t, 0, env.Len())
}

func TestExtractorShortCircuit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "inspect.match")
	defer teardown()
	//
	var calls int
	never := capability.ExtractorFunc{Label: "never", F: func(any) (maybe.Maybe[any], error) {
		return maybe.Nothing[any](), nil
	}}
	counting := capability.ExtractorFunc{Label: "count", F: func(v any) (maybe.Maybe[any], error) {
		calls++
		return maybe.Just(v), nil
	}}
	ok, _ := runMatch(t, pattern.Extract(never, pattern.Extract(counting, pattern.Wild())), 1)
	assert.False(t, ok)
	assert.Equal(t, 0, calls)
	ok, _ = runMatch(t, pattern.Extract(counting, pattern.Wild()), 1)
	assert.True(t, ok)
	assert.Equal(t, 1, calls)
}

func TestExtractorFault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "inspect.match")
	defer teardown()
	//
	boom := errors.New("boom")
	failing := capability.ExtractorFunc{Label: "failing", F: func(any) (maybe.Maybe[any], error) {
		return nil, boom
	}}
	env := NewEnv()
	_, err := Values(nil).Match(pattern.Bind("x", pattern.Extract(failing, pattern.Id("y"))), capability.Root(1), env)
	assert.Equal(t, boom, err, "faults propagate unchanged")
	assert.Equal(t, 0, env.Len())
}

func TestDowncast(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "inspect.match")
	defer teardown()
	//
	var subject any = pair{1, 2}
	ok, env := runMatch(t, pattern.As[pair](pattern.Tuple(pattern.Id("a"), pattern.Id("b"))), subject)
	require.True(t, ok)
	assert.Equal(t, 2, env.Value("b"))
	ok, _ = runMatch(t, pattern.As[node](pattern.Wild()), subject)
	assert.False(t, ok)
}

func TestEnvRelease(t *testing.T) {
	ok, env := runMatch(t, pattern.Id("x"), 1)
	require.True(t, ok)
	r, _ := env.Lookup("x")
	env.Release()
	assert.True(t, env.Released())
	assert.False(t, r.Valid())
	assert.Panics(t, func() { r.Value() })
	assert.Equal(t, 0, env.Len())
}

func TestStaticMatcher(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "inspect.match")
	defer teardown()
	//
	m := Types(nil)
	nt := reflect.TypeOf(node{})
	env := &StaticEnv{}
	r, err := m.Match(pattern.Alt(pattern.Index(1), pattern.Tuple(pattern.Id("l"), pattern.Id("r"))), OfVariant(nt, 1), env)
	require.NoError(t, err)
	assert.Equal(t, Yes, r)
	require.Len(t, env.Bindings, 2)
	assert.Equal(t, reflect.TypeOf((*any)(nil)).Elem(), env.Bindings[0].Type)
	//
	env = &StaticEnv{}
	r, err = m.Match(pattern.Alt(pattern.Index(0), pattern.Id("i")), OfVariant(nt, 1), env)
	require.NoError(t, err)
	assert.Equal(t, No, r)
	assert.Equal(t, 0, env.Len())
	//
	r, err = m.Match(pattern.Const(1), OfType(reflect.TypeOf(0)), env)
	require.NoError(t, err)
	assert.Equal(t, Unknown, r)
	r, err = m.Match(pattern.Alt(pattern.Type[string](), pattern.Wild()), OfType(reflect.TypeOf(0)), env)
	require.NoError(t, err)
	assert.Equal(t, No, r)
	_, err = m.Match(pattern.Alt(pattern.RuntimeIndex("now", func() int { return 0 }), pattern.Wild()),
		OfVariant(nt, 0), env)
	assert.True(t, errors.Is(err, ErrNotStatic))
}
