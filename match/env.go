package match

import (
	"fmt"

	"github.com/npillmayer/inspect/capability"
	tp "github.com/xlab/treeprint"
)

// Frame is an insertion-ordered sequence of bindings which can be rolled back
// to an earlier length.
type Frame[S any] interface {
	Len() int
	Truncate(n int)
	Append(name string, x S)
}

// Binding is a named reference into a subject.
type Binding struct {
	Name string
	Ref  capability.Ref
}

// Env is the binding environment of a run-time match. All references it
// holds are tagged with the environment's scope; once the environment has
// been released, the references are dangling.
type Env struct {
	bindings []Binding
	scope    *capability.Scope
}

var _ Frame[capability.Ref] = &Env{}

// NewEnv creates an empty environment with a fresh scope.
func NewEnv() *Env {
	return &Env{scope: capability.NewScope()}
}

// Len returns the number of bindings.
func (env *Env) Len() int {
	return len(env.bindings)
}

// Truncate drops all bindings at positions n and above.
func (env *Env) Truncate(n int) {
	if n < len(env.bindings) {
		for i := n; i < len(env.bindings); i++ {
			env.bindings[i] = Binding{}
		}
		env.bindings = env.bindings[:n]
	}
}

// Append adds a binding, tagging r with the scope of the environment.
func (env *Env) Append(name string, r capability.Ref) {
	env.bindings = append(env.bindings, Binding{Name: name, Ref: r.In(env.scope)})
}

// Lookup finds the reference bound to name.
func (env *Env) Lookup(name string) (capability.Ref, bool) {
	for _, b := range env.bindings {
		if b.Name == name {
			return b.Ref, true
		}
	}
	return capability.Ref{}, false
}

// Value returns the value bound to name, or nil if name is unbound. It panics
// if the environment has been released.
func (env *Env) Value(name string) any {
	if r, ok := env.Lookup(name); ok {
		return r.Value()
	}
	return nil
}

// Bindings returns a copy of the bindings, in insertion order.
func (env *Env) Bindings() []Binding {
	b := make([]Binding, len(env.bindings))
	copy(b, env.bindings)
	return b
}

// Names returns the bound names, in insertion order.
func (env *Env) Names() []string {
	names := make([]string, len(env.bindings))
	for i, b := range env.bindings {
		names[i] = b.Name
	}
	return names
}

// Scope returns the scope tag of the environment's references.
func (env *Env) Scope() *capability.Scope {
	return env.scope
}

// Release ends the scope of the environment. Bindings are dropped and any
// reference obtained from the environment becomes dangling.
func (env *Env) Release() {
	env.scope.End()
	env.Truncate(0)
}

// Released is true after Release has been called.
func (env *Env) Released() bool {
	return env.scope.Ended()
}

func (env *Env) String() string {
	printer := tp.New()
	for _, b := range env.bindings {
		if env.Released() {
			printer.AddNode(b.Name)
			continue
		}
		printer.AddNode(fmt.Sprintf("%s = %v  (%s)", b.Name, b.Ref.Value(), b.Ref.Path()))
	}
	return printer.String()
}

// Get returns the value bound to name, converted to T.
func Get[T any](env *Env, name string) (T, bool) {
	var zero T
	r, ok := env.Lookup(name)
	if !ok {
		return zero, false
	}
	v, ok := r.Value().(T)
	return v, ok
}
