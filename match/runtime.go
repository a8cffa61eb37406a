package match

import (
	"reflect"

	"github.com/npillmayer/inspect/capability"
	"github.com/npillmayer/inspect/pattern"
)

// Runtime is the strategy for matching concrete values. It never answers
// Unknown.
type Runtime struct {
	Set *capability.Set
}

var _ Strategy[capability.Ref] = Runtime{}

// Values creates a matcher for concrete values, using capability set set.
func Values(set *capability.Set) Matcher[capability.Ref] {
	if set == nil {
		set = capability.Default()
	}
	return New[capability.Ref](Runtime{Set: set})
}

func truth(b bool) Truth {
	if b {
		return Yes
	}
	return No
}

// Equal is part of interface Strategy.
func (rt Runtime) Equal(constant any, x capability.Ref) Truth {
	return truth(rt.Set.Equals(constant, x))
}

// Decompose is part of interface Strategy.
func (rt Runtime) Decompose(x capability.Ref, arity int) ([]capability.Ref, Truth, error) {
	comps, err := rt.Set.Decompose(x)
	if err != nil {
		return nil, No, err
	}
	if len(comps) != arity {
		return nil, No, arityError(len(comps), arity)
	}
	return comps, Yes, nil
}

// Variant is part of interface Strategy.
func (rt Runtime) Variant(x capability.Ref) (int, capability.Ref) {
	return rt.Set.Variant(x)
}

// Admit is part of interface Strategy. Discriminators see the dynamic type
// of the content. Nil content is seen with the declared type of its
// alternative, as the static strategy does.
func (rt Runtime) Admit(d pattern.Discriminator, index int, content capability.Ref) (Truth, error) {
	t := content.Type()
	if t == nil {
		t = content.Declared()
	}
	return truth(d.Admits(index, t)), nil
}

// Extract is part of interface Strategy.
func (rt Runtime) Extract(x capability.Extractor, _ reflect.Type, v capability.Ref) (capability.Ref, Truth, error) {
	m, err := rt.Set.Extract(x, v)
	if err != nil {
		return capability.Ref{}, No, err
	}
	payload, ok := m.Get()
	if !ok {
		tracer().Debugf("extractor %s yields nothing for %v", x.Name(), v)
	}
	return payload, truth(ok), nil
}
