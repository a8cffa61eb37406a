package capability

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
)

// ErrNotAddressable is returned when assigning through a Ref which does not
// refer to storage of the original subject.
var ErrNotAddressable = errors.New("reference does not denote storage of the subject")

// ErrDanglingRef is the panic value raised when a Ref is read after its
// scope has ended.
var ErrDanglingRef = errors.New("reference used outside of its scope")

// --- Path ------------------------------------------------------------------

// StepKind tells how a step of a Path descends into a value.
type StepKind int8

// Kinds of steps
const (
	Component   StepKind = iota // positional component of a decomposable value
	Alternative                 // content of the active alternative of a variant
	Extraction                  // payload produced by an extractor
)

// Step is one descent from a value to one of its parts.
type Step struct {
	Kind  StepKind
	Index int    // component index or active alternative
	Name  string // name of the extractor for Extraction steps
}

func (s Step) String() string {
	switch s.Kind {
	case Component:
		return fmt.Sprintf("%d", s.Index)
	case Alternative:
		return fmt.Sprintf("<%d>", s.Index)
	}
	return s.Name + "()"
}

// Path is a handle into the storage of a subject: the sequence of steps
// leading from the subject to a sub-component.
type Path []Step

func (p Path) String() string {
	if len(p) == 0 {
		return "."
	}
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return "." + strings.Join(parts, ".")
}

// Extend returns a new path with s appended. p itself is left unchanged.
func (p Path) Extend(s Step) Path {
	q := make(Path, len(p), len(p)+1)
	copy(q, p)
	return append(q, s)
}

// Owned reports whether the path passes through an extractor. Values below an
// extraction are new values, not parts of the original subject.
func (p Path) Owned() bool {
	for _, s := range p {
		if s.Kind == Extraction {
			return true
		}
	}
	return false
}

// --- Scope -----------------------------------------------------------------

// Scope bounds the lifetime of References. A scope is not safe for concurrent
// use; matching is strictly sequential. NewScope may be called concurrently.
type Scope struct {
	id    uint64
	ended bool
}

var scopeCounter uint64

// NewScope creates a fresh, open scope.
func NewScope() *Scope {
	return &Scope{id: atomic.AddUint64(&scopeCounter, 1)}
}

// End closes the scope. All Refs tagged with it become dangling.
func (s *Scope) End() {
	if s != nil {
		s.ended = true
	}
}

// Ended is true after End has been called.
func (s *Scope) Ended() bool {
	return s != nil && s.ended
}

func (s *Scope) String() string {
	if s == nil {
		return "scope(-)"
	}
	if s.ended {
		return fmt.Sprintf("scope(%d, ended)", s.id)
	}
	return fmt.Sprintf("scope(%d)", s.id)
}

// --- Ref -------------------------------------------------------------------

// Ref refers to a (sub-)component of a subject. It is a non-owning handle:
// where the subject was given by pointer, the Ref denotes the original
// storage and Assign writes through to it.
type Ref struct {
	val   any
	rv    reflect.Value
	path  Path
	scope *Scope
	decl  reflect.Type // declared type of the slot, if known
}

// Root creates a reference to the subject of a match. If subject is a
// pointer to a struct or array, components reached from it are addressable.
func Root(subject any) Ref {
	return Ref{val: subject, rv: reflect.ValueOf(subject)}
}

func refTo(rv reflect.Value, path Path) Ref {
	var v any
	if rv.IsValid() && rv.CanInterface() {
		v = rv.Interface()
	}
	r := Ref{val: v, rv: rv, path: path}
	if rv.IsValid() {
		r.decl = rv.Type()
	}
	return r
}

func valueRef(v any, path Path) Ref {
	return Ref{val: v, rv: reflect.ValueOf(v), path: path}
}

// Value returns the referenced value. Reading a Ref after its scope has ended
// panics with ErrDanglingRef.
func (r Ref) Value() any {
	if r.scope.Ended() {
		panic(fmt.Errorf("%w: %s at path %s", ErrDanglingRef, r.scope, r.path))
	}
	if r.Addressable() {
		return r.rv.Interface() // may have been assigned to
	}
	return r.val
}

// Type returns the dynamic type of the referenced value, or nil for a nil
// interface. For addressable references it reflects the latest assignment.
func (r Ref) Type() reflect.Type {
	if r.Addressable() {
		if r.rv.Kind() == reflect.Interface {
			if r.rv.IsNil() {
				return nil
			}
			return r.rv.Elem().Type()
		}
		return r.rv.Type()
	}
	return reflect.TypeOf(r.val)
}

// Declared returns the static type of the slot r refers to: the field or
// element type for components, the alternative's type from a closed domain
// for variant content. It is nil if the slot type is unknown.
func (r Ref) Declared() reflect.Type {
	return r.decl
}

func (r Ref) declaredAs(t reflect.Type) Ref {
	r.decl = t
	return r
}

// Path returns the path from the subject to the referenced component.
func (r Ref) Path() Path {
	return r.path
}

// Scope returns the scope tag of r, which is nil for references not bound
// by a successful match.
func (r Ref) Scope() *Scope {
	return r.scope
}

// Valid is false for references whose scope has ended.
func (r Ref) Valid() bool {
	return !r.scope.Ended()
}

// In returns a copy of r, tagged with scope s.
func (r Ref) In(s *Scope) Ref {
	r.scope = s
	return r
}

// Addressable reports whether r denotes storage of the original subject.
func (r Ref) Addressable() bool {
	return r.rv.IsValid() && r.rv.CanSet()
}

// Assign writes x to the storage r refers to. x must be assignable to the
// type of the component.
func (r Ref) Assign(x any) error {
	if r.scope.Ended() {
		return fmt.Errorf("%w: %s at path %s", ErrDanglingRef, r.scope, r.path)
	}
	if !r.Addressable() {
		return fmt.Errorf("%w: path %s", ErrNotAddressable, r.path)
	}
	xv := reflect.ValueOf(x)
	if !xv.IsValid() {
		xv = reflect.Zero(r.rv.Type())
	}
	if !xv.Type().AssignableTo(r.rv.Type()) {
		return fmt.Errorf("cannot assign %s to component of type %s", xv.Type(), r.rv.Type())
	}
	r.rv.Set(xv)
	return nil
}

func (r Ref) String() string {
	return fmt.Sprintf("%s=%v", r.path, r.val)
}
