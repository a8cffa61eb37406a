/*
Package match implements the matcher: the recursive algorithm which decides
whether a value conforms to a pattern and collects the bindings the pattern
introduces.

The matcher is written once and instantiated twice. A Strategy tells it how
to compare, decompose, introspect and extract. The Runtime strategy works on
references into concrete values; the Static strategy works on types only and
answers Unknown wherever a decision needs a value. Both share the per-variant
rules of Matcher.Match:

    _          always matches, binds nothing
    x          always matches, binds x to the value
    c          matches if the equality capability says so
    [p…]       decomposes the value and matches left to right, stopping at the
               first component which fails
    <d> p      matches p against the active alternative, if d admits it
    x @ p      matches p, then binds x to the value
    x(p)       matches p against the payload extracted by x, if any

Bindings are appended to a Frame only on paths which contribute to a
successful match; partial bindings of failed compound patterns are rolled
back by truncating the frame to the length it had before the attempt.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package match

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'inspect.match'.
func tracer() tracing.Trace {
	return tracing.Select("inspect.match")
}
