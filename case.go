package inspect

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/npillmayer/inspect/capability"
	"github.com/npillmayer/inspect/match"
	"github.com/npillmayer/inspect/pattern"
)

// ErrIncomplete is reported for case lists which do not cover all
// alternatives of their subject. It is returned from Compile only in strict
// mode.
var ErrIncomplete = errors.New("case list is not exhaustive")

// Guard is a predicate over the bindings of a matched pattern. Errors are
// faults and abort evaluation.
type Guard interface {
	Test(env *match.Env) (bool, error)
}

// GuardFunc adapts a function to interface Guard.
type GuardFunc func(env *match.Env) (bool, error)

// Test is part of interface Guard.
func (g GuardFunc) Test(env *match.Env) (bool, error) {
	return g(env)
}

// ConstGuard is a guard with a value known at translation time. Static
// evaluation can see through it.
type ConstGuard bool

// Test is part of interface Guard.
func (g ConstGuard) Test(*match.Env) (bool, error) {
	return bool(g), nil
}

// Action is a case body which may be run by Exec.
type Action func(env *match.Env) error

// Case is a pattern, an optional guard and an opaque body.
type Case struct {
	Pattern pattern.Pattern
	Guard   Guard // may be nil
	Body    any
}

// CaseList is an ordered, compiled list of cases for subjects of a given
// type. It is read-only and may be evaluated repeatedly.
type CaseList struct {
	subject reflect.Type
	cases   []Case
	conf    options
	matcher match.Matcher[capability.Ref]
	report  *Report
}

// --- Options ---------------------------------------------------------------

type options struct {
	set        *capability.Set
	exhaustive bool
	strict     bool
}

// Option is a type to help configuring case lists at compile time.
type Option struct {
	config func(options) options
}

// WithCapabilities sets the capability set used to look into subjects.
// Default is capability.Default().
func WithCapabilities(set *capability.Set) Option {
	return Option{config: func(o options) options {
		o.set = set
		return o
	}}
}

// Exhaustive requests the exhaustiveness diagnostic for a case list. An
// incomplete case list is reported as a warning and compiles nonetheless.
func Exhaustive() Option {
	return Option{config: func(o options) options {
		o.exhaustive = true
		return o
	}}
}

// Strict requests the exhaustiveness diagnostic and turns an incomplete case
// list into a compile error.
func Strict() Option {
	return Option{config: func(o options) options {
		o.exhaustive = true
		o.strict = true
		return o
	}}
}

// --- Compile ---------------------------------------------------------------

// Compile validates cases for subjects of static type subject and creates an
// immutable case list. subject may be nil or an interface type, in which case
// shape checks of structured patterns are deferred to run time.
//
// Static errors are returned as *CaseError.
func Compile(subject reflect.Type, cases []Case, opts ...Option) (*CaseList, error) {
	conf := options{set: capability.Default()}
	for _, option := range opts {
		conf = option.config(conf)
	}
	if conf.set == nil {
		conf.set = capability.Default()
	}
	cl := &CaseList{
		subject: subject,
		cases:   make([]Case, len(cases)),
		conf:    conf,
		matcher: match.Values(conf.set),
	}
	copy(cl.cases, cases)
	for i, c := range cl.cases {
		if err := pattern.Check(c.Pattern, subject, conf.set); err != nil {
			return nil, &CaseError{Case: i, Err: err}
		}
	}
	tracer().Debugf("compiled case list of %d cases for %v", len(cl.cases), subject)
	if conf.exhaustive {
		report := CheckExhaustive(cl)
		cl.report = &report
		if !report.Complete() {
			if conf.strict {
				return nil, report.Err()
			}
			tracer().Infof("warning: %v", report.Err())
		}
	}
	return cl, nil
}

// MustCompile is like Compile but panics on static errors.
func MustCompile(subject reflect.Type, cases []Case, opts ...Option) *CaseList {
	cl, err := Compile(subject, cases, opts...)
	if err != nil {
		panic(err)
	}
	return cl
}

// Len returns the number of cases.
func (cl *CaseList) Len() int {
	return len(cl.cases)
}

// Case returns case i.
func (cl *CaseList) Case(i int) Case {
	return cl.cases[i]
}

// Subject returns the static subject type the list has been compiled for.
func (cl *CaseList) Subject() reflect.Type {
	return cl.subject
}

// Diagnostics returns the exhaustiveness report, if it has been requested
// at compile time.
func (cl *CaseList) Diagnostics() (Report, bool) {
	if cl.report == nil {
		return Report{}, false
	}
	return *cl.report, true
}

// CaseError is a static error of a case of a case list.
type CaseError struct {
	Case int
	Err  error
}

func (e *CaseError) Error() string {
	return fmt.Sprintf("case %d: %v", e.Case, e.Err)
}

func (e *CaseError) Unwrap() error {
	return e.Err
}
