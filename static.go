package inspect

import (
	"errors"
	"fmt"

	"github.com/npillmayer/inspect/match"
	"github.com/npillmayer/inspect/pattern"
)

// ErrUnresolved is flagged if a case cannot be decided at translation time.
var ErrUnresolved = errors.New("case not resolvable at translation time")

// StaticError reports why a case list cannot be evaluated statically.
type StaticError struct {
	Case int
	Err  error
}

func (e *StaticError) Error() string {
	return fmt.Sprintf("static evaluation, case %d: %v", e.Case, e.Err)
}

func (e *StaticError) Unwrap() error {
	return e.Err
}

// StaticDispatch is the result of static evaluation.
type StaticDispatch struct {
	Index    int                   // selected case, -1 if exhausted
	Bindings []match.StaticBinding // names with their static types
}

// Found is false if no case has been selected.
func (sd StaticDispatch) Found() bool {
	return sd.Index >= 0
}

// EvaluateStatic selects a case from type information only, the way
// Evaluate would for any value described by subject. Cases which statically
// do not match are skipped without looking at their bodies, which lets a
// case list dispatch over unrelated content types.
//
// Every discriminator of the case list must be resolvable at translation
// time. A case which can only be decided with a value at hand (constants,
// custom extractors, guards other than ConstGuard) ends static evaluation
// with a *StaticError, unless an earlier case has already been selected.
func (cl *CaseList) EvaluateStatic(subject match.TypeInfo) (StaticDispatch, error) {
	for i, c := range cl.cases {
		if err := staticDiscriminators(c.Pattern); err != nil {
			return StaticDispatch{Index: -1}, &StaticError{Case: i, Err: err}
		}
	}
	m := match.Types(cl.conf.set)
	for i, c := range cl.cases {
		env := &match.StaticEnv{}
		t, err := m.Match(c.Pattern, subject, env)
		if err != nil {
			return StaticDispatch{Index: -1}, &StaticError{Case: i, Err: err}
		}
		switch t {
		case match.No:
			tracer().Debugf("static: case %d cannot match %v", i, subject)
			continue
		case match.Unknown:
			return StaticDispatch{Index: -1}, &StaticError{Case: i, Err: ErrUnresolved}
		}
		if c.Guard != nil {
			g, ok := c.Guard.(ConstGuard)
			if !ok {
				return StaticDispatch{Index: -1}, &StaticError{Case: i, Err: fmt.Errorf("%w: guard", ErrUnresolved)}
			}
			if !g {
				continue
			}
		}
		tracer().Debugf("static: case %d selected for %v", i, subject)
		return StaticDispatch{Index: i, Bindings: env.Bindings}, nil
	}
	return StaticDispatch{Index: -1}, nil
}

// staticDiscriminators returns an error if p contains a discriminator which
// is not resolvable at translation time.
func staticDiscriminators(p pattern.Pattern) error {
	if alt, ok := p.(pattern.Alternative); ok && !alt.Discriminator.Static() {
		return fmt.Errorf("%w: %s", match.ErrNotStatic, alt.Discriminator)
	}
	for _, ch := range pattern.Children(p) {
		if err := staticDiscriminators(ch); err != nil {
			return err
		}
	}
	return nil
}
