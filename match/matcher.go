package match

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/npillmayer/inspect/capability"
	"github.com/npillmayer/inspect/pattern"
)

// Truth is the outcome of matching a pattern. Run-time matching is two-valued;
// Unknown is produced by static evaluation only, for decisions which need a
// value at hand.
type Truth int8

// Truth values
const (
	No Truth = iota
	Yes
	Unknown
)

func (t Truth) String() string {
	switch t {
	case No:
		return "no"
	case Yes:
		return "yes"
	}
	return "unknown"
}

// and combines two truths the way sub-pattern results combine.
func and(a, b Truth) Truth {
	if a == No || b == No {
		return No
	}
	if a == Unknown || b == Unknown {
		return Unknown
	}
	return Yes
}

// Strategy is the evaluation-time dependent part of matching: how the
// capabilities of a subject of type S are exercised.
type Strategy[S any] interface {
	// Equal compares a pattern constant with x.
	Equal(constant any, x S) Truth
	// Decompose splits x into exactly arity components.
	Decompose(x S, arity int) ([]S, Truth, error)
	// Variant returns the active alternative of x and its content.
	Variant(x S) (int, S)
	// Admit applies a discriminator to an alternative.
	Admit(d pattern.Discriminator, index int, content S) (Truth, error)
	// Extract runs an extractor over x. target is non-nil for downcasts.
	Extract(x capability.Extractor, target reflect.Type, v S) (S, Truth, error)
}

// ShapeError is returned if a value turns out not to fit the shape of a
// structured pattern. Shape errors are never plain match failures.
type ShapeError struct {
	Pattern pattern.Pattern
	Err     error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch for %s: %v", e.Pattern, e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// Matcher matches patterns against subjects of type S.
type Matcher[S any] struct {
	strategy Strategy[S]
}

// New creates a matcher operating with strategy s.
func New[S any](s Strategy[S]) Matcher[S] {
	return Matcher[S]{strategy: s}
}

// Match decides whether x conforms to p, appending bindings to env. If the
// result is not Yes, env is left as it was before the call. Errors are
// shape errors or faults of capabilities; they are passed through unchanged.
func (m Matcher[S]) Match(p pattern.Pattern, x S, env Frame[S]) (Truth, error) {
	mark := env.Len()
	t, err := m.match(p, x, env)
	if err != nil || t != Yes {
		env.Truncate(mark)
	}
	if err != nil {
		return No, err
	}
	return t, nil
}

func (m Matcher[S]) match(p pattern.Pattern, x S, env Frame[S]) (Truth, error) {
	switch pp := p.(type) {
	case pattern.Wildcard:
		return Yes, nil
	case pattern.Identifier:
		env.Append(pp.Name, x)
		return Yes, nil
	case pattern.Constant:
		return m.strategy.Equal(pp.Value, x), nil
	case pattern.Structured:
		return m.matchStructured(pp, x, env)
	case pattern.Alternative:
		index, content := m.strategy.Variant(x)
		t, err := m.strategy.Admit(pp.Discriminator, index, content)
		if err != nil || t == No {
			return No, err
		}
		sub, err := m.match(pp.Sub, content, env)
		return and(t, sub), err
	case pattern.Binding:
		t, err := m.match(pp.Sub, x, env)
		if err != nil || t == No {
			return No, err
		}
		env.Append(pp.Name, x)
		return t, nil
	case pattern.Extractor:
		payload, t, err := m.strategy.Extract(pp.X, pp.Target, x)
		if err != nil || t == No {
			return No, err
		}
		sub, err := m.match(pp.Sub, payload, env)
		return and(t, sub), err
	}
	return No, fmt.Errorf("%w: unknown pattern variant %T", pattern.ErrNilPattern, p)
}

// matchStructured matches components left to right. The first failing
// component ends the attempt; bindings of components matched before are
// rolled back.
func (m Matcher[S]) matchStructured(p pattern.Structured, x S, env Frame[S]) (Truth, error) {
	comps, t, err := m.strategy.Decompose(x, len(p.Sub))
	if err != nil {
		return No, &ShapeError{Pattern: p, Err: err}
	}
	if t == No {
		return No, nil
	}
	mark := env.Len()
	for i, sub := range p.Sub {
		var c S
		if comps != nil {
			c = comps[i]
		}
		st, err := m.match(sub, c, env)
		if err != nil {
			return No, err
		}
		if st == No {
			tracer().Debugf("component %d of %s does not match, skipping %d more", i, p, len(p.Sub)-i-1)
			env.Truncate(mark)
			return No, nil
		}
		t = and(t, st)
	}
	return t, nil
}

// arityError is returned by strategies if a value decomposes into a number
// of components different from the arity of the pattern.
func arityError(got, want int) error {
	return fmt.Errorf("%w: value has %d components, pattern has %d", pattern.ErrArity, got, want)
}

// IsShapeError reports whether err denotes a shape mismatch.
func IsShapeError(err error) bool {
	var serr *ShapeError
	return errors.As(err, &serr)
}
