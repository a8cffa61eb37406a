/*
Package pattern defines the pattern model of the matching engine.

Patterns form a closed set of variants:

    Wildcard                   _            matches anything, binds nothing
    Identifier(name)           x            matches anything, binds x
    Constant(value)            0            matches by the equality capability
    Structured(p1, …, pN)      [p1, p2]     positional decomposition of arity N
    Alternative(d, p)          <d> p        active alternative admitted by d
    Binding(name, p)           x @ p        binds x if p matches
    Extractor(x, p)            x(p)         p matches the payload extracted by x

Patterns are immutable trees. They are built once, usually when a case list
is compiled, and are read-only afterwards. Constructors copy their
arguments; clients should not modify exported fields of patterns they did not
create.

Discriminators, which decide whether an Alternative pattern is compatible
with the active alternative of a value, are an open set. Clients may add their
own kinds by implementing interface Discriminator.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pattern

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'inspect.pattern'.
func tracer() tracing.Trace {
	return tracing.Select("inspect.pattern")
}
