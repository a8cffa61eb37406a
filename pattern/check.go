package pattern

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/npillmayer/inspect/capability"
)

// Static errors. They are detected before any match attempt runs.
var (
	ErrNilPattern    = errors.New("nil pattern")
	ErrEmptyName     = errors.New("binding with empty name")
	ErrDuplicateName = errors.New("duplicate identifier in pattern")
	ErrArity         = errors.New("arity of structured binding does not match subject")
	ErrShape         = errors.New("subject does not support positional decomposition")
	ErrIndexRange    = errors.New("alternative index out of domain")
	ErrUnrelated     = errors.New("downcast across unrelated types")
	ErrNoExtractor   = errors.New("extractor pattern without extractor")
	ErrDiscriminator = errors.New("alternative pattern without discriminator")
)

// CheckError reports a static error of a pattern, together with the
// offending sub-pattern.
type CheckError struct {
	Err     error
	Pattern Pattern
	Detail  string
}

func (e *CheckError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s in %s: %s", e.Err, str(e.Pattern), e.Detail)
	}
	return fmt.Sprintf("%s in %s", e.Err, str(e.Pattern))
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

func checkErr(err error, p Pattern, detail string, args ...interface{}) *CheckError {
	return &CheckError{Err: err, Pattern: p, Detail: fmt.Sprintf(detail, args...)}
}

// Check validates p for subjects of static type subject, using set to derive
// the shapes of values. A nil subject type or an interface type leaves shape
// checks to run time, where shape mismatches are reported as errors, not as
// match failures.
//
// Check returns the first static error found, as a *CheckError.
func Check(p Pattern, subject reflect.Type, set *capability.Set) error {
	if err := checkNames(p); err != nil {
		return err
	}
	c := checker{set: set}
	return c.check(p, subject)
}

func checkNames(p Pattern) error {
	seen := make(map[string]bool)
	var walk func(Pattern) error
	walk = func(p Pattern) error {
		if p == nil {
			return checkErr(ErrNilPattern, p, "")
		}
		switch x := p.(type) {
		case Identifier:
			return name(x.Name, p, seen)
		case Binding:
			if x.Sub == nil {
				return checkErr(ErrNilPattern, p, "")
			}
			if err := walk(x.Sub); err != nil {
				return err
			}
			return name(x.Name, p, seen)
		}
		for _, ch := range Children(p) {
			if err := walk(ch); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(p)
}

func name(n string, p Pattern, seen map[string]bool) error {
	if n == "" {
		return checkErr(ErrEmptyName, p, "")
	}
	if seen[n] {
		return checkErr(ErrDuplicateName, p, "%q bound more than once", n)
	}
	seen[n] = true
	return nil
}

type checker struct {
	set *capability.Set
}

// check descends into p with t being the static type of the matched value,
// or nil if unknown.
func (c checker) check(p Pattern, t reflect.Type) error {
	switch x := p.(type) {
	case Wildcard, Identifier:
		return nil
	case Constant:
		if t != nil && x.Value != nil && t.Kind() != reflect.Interface && reflect.TypeOf(x.Value) != t {
			tracer().Debugf("constant %v of type %T compared to value of type %s", x.Value, x.Value, t)
		}
		return nil
	case Binding:
		return c.check(x.Sub, t)
	case Structured:
		return c.checkStructured(x, t)
	case Alternative:
		return c.checkAlternative(x, t)
	case Extractor:
		if x.X == nil {
			return checkErr(ErrNoExtractor, p, "")
		}
		if x.Target == nil {
			return c.check(x.Sub, nil)
		}
		if t != nil && !related(t, x.Target) {
			return checkErr(ErrUnrelated, p, "%s cannot hold a %s", t, x.Target)
		}
		return c.check(x.Sub, x.Target)
	}
	return checkErr(ErrNilPattern, p, "unknown pattern variant %T", p)
}

func (c checker) checkStructured(x Structured, t reflect.Type) error {
	var types []reflect.Type
	if t != nil {
		var err error
		types, err = c.set.ComponentTypes(t)
		if err != nil && !errors.Is(err, capability.ErrOpenType) {
			return checkErr(ErrShape, x, "%s", t)
		}
		if err == nil && len(types) != len(x.Sub) {
			return checkErr(ErrArity, x, "pattern has %d components, %s has %d", len(x.Sub), t, len(types))
		}
	}
	for i, sub := range x.Sub {
		var ct reflect.Type
		if types != nil {
			ct = types[i]
		}
		if err := c.check(sub, ct); err != nil {
			return err
		}
	}
	return nil
}

func (c checker) checkAlternative(x Alternative, t reflect.Type) error {
	if x.Discriminator == nil {
		return checkErr(ErrDiscriminator, x, "")
	}
	dom, closed := c.set.DomainOf(t)
	if !closed || !x.Discriminator.Static() {
		var ct reflect.Type
		if typed, ok := x.Discriminator.(Typed); ok {
			ct = typed.ContentType()
		}
		return c.check(x.Sub, ct)
	}
	if n, ok := x.Discriminator.(Index); ok && (int(n) < 0 || int(n) >= dom.Size()) {
		return checkErr(ErrIndexRange, x, "index %d, domain %s", int(n), dom)
	}
	admitted := 0
	for i := 0; i < dom.Size(); i++ {
		ct := dom.TypeAt(i)
		if !x.Discriminator.Admits(i, ct) {
			continue
		}
		admitted++
		if err := c.check(x.Sub, ct); err != nil {
			return err
		}
	}
	if admitted == 0 {
		tracer().Infof("alternative pattern %s admits no alternative of %s", x, dom)
	}
	return nil
}

// related reports whether a value of static type t may dynamically be of
// type target.
func related(t, target reflect.Type) bool {
	switch {
	case t.Kind() == reflect.Interface && target.Kind() == reflect.Interface:
		return true
	case t.Kind() == reflect.Interface:
		return target.Implements(t)
	case target.Kind() == reflect.Interface:
		return t.Implements(target)
	}
	return t == target
}
