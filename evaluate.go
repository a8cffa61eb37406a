package inspect

import (
	"github.com/npillmayer/inspect/capability"
	"github.com/npillmayer/inspect/match"
)

// Dispatch describes the selected case of an evaluation.
type Dispatch struct {
	Index int        // position of the selected case
	Body  any        // body of the selected case
	Env   *match.Env // bindings, valid until released
}

// Evaluate runs the case list against subject. The first case whose
// pattern matches and whose guard holds is selected. If subject is a pointer
// to a struct or array, bindings refer to its storage.
//
// Errors are shape errors (*match.ShapeError) for subjects which do not fit
// a structured pattern, or faults of guards and extractors, which are passed
// through unchanged.
func (cl *CaseList) Evaluate(subject any) (*Outcome, error) {
	root := capability.Root(subject)
	for i, c := range cl.cases {
		env := match.NewEnv()
		t, err := cl.matcher.Match(c.Pattern, root, env)
		if err != nil {
			env.Release()
			return nil, err
		}
		if t != match.Yes {
			env.Release()
			continue
		}
		if c.Guard != nil {
			ok, err := c.Guard.Test(env)
			if err != nil {
				env.Release()
				return nil, err
			}
			if !ok {
				tracer().Debugf("guard of case %d rejects %v", i, env.Names())
				env.Release()
				continue
			}
		}
		tracer().Debugf("case %d selected, bindings %v", i, env.Names())
		return &Outcome{dispatch: &Dispatch{Index: i, Body: c.Body, Env: env}}, nil
	}
	tracer().Debugf("no case selected for subject of type %T", subject)
	return &Outcome{}, nil
}

// Exec evaluates the case list against subject and, if a case is selected
// and its body is an Action, runs the action with the bindings in scope. The
// bindings are released when the action returns. Exec returns the index of the
// selected case, or -1 if the case list is exhausted.
func (cl *CaseList) Exec(subject any) (int, error) {
	outcome, err := cl.Evaluate(subject)
	if err != nil {
		return -1, err
	}
	defer outcome.Release()
	var d Dispatch
	switch m := outcome.Match(); m {
	case m.Dispatched(&d):
		if action, ok := d.Body.(Action); ok {
			return d.Index, action(d.Env)
		}
		return d.Index, nil
	case m.Exhausted():
	}
	return -1, nil
}

// --- Outcome ---------------------------------------------------------------

// Outcome is the result of evaluating a case list: either Dispatched, with
// the selected case and its bindings, or Exhausted.
type Outcome struct {
	dispatch *Dispatch
}

// Match lets clients switch over an outcome:
//
//    var d inspect.Dispatch
//    switch m := outcome.Match(); m {
//    case m.Dispatched(&d):
//        …
//    case m.Exhausted():
//        …
//    }
//
func (o *Outcome) Match() OutcomeMatcher {
	return outcomeMatcher{o: o}
}

// Exhausted is true if no case has been selected.
func (o *Outcome) Exhausted() bool {
	return o == nil || o.dispatch == nil
}

// Index returns the index of the selected case, or -1.
func (o *Outcome) Index() int {
	if o.Exhausted() {
		return -1
	}
	return o.dispatch.Index
}

// Release ends the scope of the bindings of a dispatched outcome.
func (o *Outcome) Release() {
	if !o.Exhausted() {
		o.dispatch.Env.Release()
	}
}

// OutcomeMatcher is the matcher for type Outcome.
type OutcomeMatcher interface {
	Dispatched(*Dispatch) OutcomeMatcher
	Exhausted() OutcomeMatcher
}

type outcomeMatcher struct {
	o *Outcome
}

func (om outcomeMatcher) Dispatched(d *Dispatch) OutcomeMatcher {
	if !om.o.Exhausted() {
		*d = *om.o.dispatch
		return om
	}
	return nil
}

func (om outcomeMatcher) Exhausted() OutcomeMatcher {
	if om.o.Exhausted() {
		return om
	}
	return nil
}
