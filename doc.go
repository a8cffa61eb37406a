/*
Package inspect is a pattern-matching engine. It decides whether a value
conforms to a pattern, binds names to the matched parts of the value, and
selects between competing patterns of a case list.

A case list is compiled once for a subject type:

    cases, err := inspect.Compile(reflect.TypeOf(0), []inspect.Case{
        {Pattern: pattern.Const(0), Body: "zero"},
        {Pattern: pattern.Id("x"), Guard: inspect.Where("x", isPositive), Body: "positive"},
        {Pattern: pattern.Wild(), Body: "other"},
    })

Compiling reports static errors (duplicate identifiers, structured bindings
of the wrong arity, downcasts between unrelated types), before any match
runs. A compiled case list is immutable and may then be evaluated against any
number of subjects:

    outcome, err := cases.Evaluate(-1)
    var d inspect.Dispatch
    switch m := outcome.Match(); m {
    case m.Dispatched(&d):
        fmt.Println(d.Body)    // "other"
        d.Env.Release()
    case m.Exhausted():
    }

Cases are tried top to bottom and the first case whose pattern matches and
whose guard holds is selected (first match, not best match). Bindings of a
pattern which matched but whose guard failed are discarded; the next case
starts over with the original subject. If no case is selected, the outcome is
Exhausted, which is not an error.

Evaluation is deterministic and strictly sequential. The engine never
recovers from faults of capabilities or guards: errors returned by guards and
extractors are handed back unchanged, panics are not intercepted.

Bindings are references into the subject, valid until the environment
holding them is released. Exec releases them when the selected body returns.

Besides run-time evaluation, a case list may be evaluated statically, against
type information only (EvaluateStatic), and may be checked for exhaustiveness
over a closed set of alternatives (CheckExhaustive, or option Exhaustive).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package inspect

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'inspect'.
func tracer() tracing.Trace {
	return tracing.Select("inspect")
}
