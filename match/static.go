package match

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/npillmayer/inspect/capability"
	"github.com/npillmayer/inspect/pattern"
)

// ErrNotStatic is flagged if a pattern uses a discriminator which can only be
// resolved at run time.
var ErrNotStatic = errors.New("discriminator not resolvable at translation time")

// TypeInfo is what is known about a value at translation time: its static
// type and, for variant types, possibly the index of the active alternative.
type TypeInfo struct {
	Type   reflect.Type // nil if unknown
	Active int          // index of the active alternative; valid if Known
	Known  bool
}

// OfType describes a value of static type t.
func OfType(t reflect.Type) TypeInfo {
	return TypeInfo{Type: t}
}

// OfVariant describes a variant value of type t, with alternative active
// being active.
func OfVariant(t reflect.Type, active int) TypeInfo {
	return TypeInfo{Type: t, Active: active, Known: true}
}

func (ti TypeInfo) String() string {
	if ti.Type == nil {
		return "?"
	}
	if ti.Known {
		return fmt.Sprintf("%s<%d>", ti.Type, ti.Active)
	}
	return ti.Type.String()
}

// StaticBinding is a name bound during static evaluation, with the static
// type of the value it will refer to (nil if unknown).
type StaticBinding struct {
	Name string
	Type reflect.Type
}

// StaticEnv collects bindings during static evaluation.
type StaticEnv struct {
	Bindings []StaticBinding
}

var _ Frame[TypeInfo] = &StaticEnv{}

// Len is part of interface Frame.
func (env *StaticEnv) Len() int {
	return len(env.Bindings)
}

// Truncate is part of interface Frame.
func (env *StaticEnv) Truncate(n int) {
	if n < len(env.Bindings) {
		env.Bindings = env.Bindings[:n]
	}
}

// Append is part of interface Frame.
func (env *StaticEnv) Append(name string, x TypeInfo) {
	env.Bindings = append(env.Bindings, StaticBinding{Name: name, Type: x.Type})
}

// Static is the strategy for matching at translation time, against type
// information only.
type Static struct {
	Set *capability.Set
}

var _ Strategy[TypeInfo] = Static{}

// Types creates a matcher for static type information.
func Types(set *capability.Set) Matcher[TypeInfo] {
	if set == nil {
		set = capability.Default()
	}
	return New[TypeInfo](Static{Set: set})
}

// Equal is part of interface Strategy. Constants need a value to compare
// with.
func (st Static) Equal(any, TypeInfo) Truth {
	return Unknown
}

// Decompose is part of interface Strategy.
func (st Static) Decompose(x TypeInfo, arity int) ([]TypeInfo, Truth, error) {
	if x.Type == nil {
		return nil, Unknown, nil
	}
	types, err := st.Set.ComponentTypes(x.Type)
	if errors.Is(err, capability.ErrOpenType) {
		return nil, Unknown, nil
	} else if err != nil {
		return nil, No, err
	}
	if len(types) != arity {
		return nil, No, arityError(len(types), arity)
	}
	comps := make([]TypeInfo, len(types))
	for i, t := range types {
		comps[i] = OfType(t)
	}
	return comps, Yes, nil
}

// Variant is part of interface Strategy. It returns -1 if the active
// alternative is not known.
func (st Static) Variant(x TypeInfo) (int, TypeInfo) {
	if x.Type == nil {
		return -1, TypeInfo{}
	}
	if !st.Set.IsVariant(x.Type) {
		return 0, OfType(x.Type)
	}
	dom, closed := st.Set.DomainOf(x.Type)
	if x.Known && closed && x.Active >= 0 && x.Active < dom.Size() {
		return x.Active, OfType(dom.TypeAt(x.Active))
	}
	return -1, TypeInfo{}
}

// Admit is part of interface Strategy.
func (st Static) Admit(d pattern.Discriminator, index int, content TypeInfo) (Truth, error) {
	if !d.Static() {
		return Unknown, fmt.Errorf("%w: %s", ErrNotStatic, d)
	}
	if d == pattern.Any {
		return Yes, nil
	}
	if index < 0 {
		return Unknown, nil
	}
	if d.Admits(index, content.Type) {
		return Yes, nil
	}
	if _, byIndex := d.(pattern.Index); byIndex {
		return No, nil
	}
	if content.Type == nil || content.Type.Kind() == reflect.Interface {
		return Unknown, nil // dynamic type may still be admitted
	}
	return No, nil
}

// Extract is part of interface Strategy. Only downcasts are decided
// statically, and only for values of concrete static type.
func (st Static) Extract(x capability.Extractor, target reflect.Type, v TypeInfo) (TypeInfo, Truth, error) {
	if target == nil {
		return TypeInfo{}, Unknown, nil
	}
	if v.Type == nil || v.Type.Kind() == reflect.Interface {
		return OfType(target), Unknown, nil
	}
	if v.Type == target || (target.Kind() == reflect.Interface && v.Type.Implements(target)) {
		return OfType(target), Yes, nil
	}
	return TypeInfo{}, No, nil
}
