/*
Package capability describes how the matching engine may look into a value.

A pattern never inspects a value directly. Instead it asks a capability Set
to compare it (equality), to split it into a fixed number of components
(positional decomposition), to tell which alternative of a sum-typed value is
active (variant introspection), or to run a custom extractor over it.

Capabilities are resolved per Go type, in this order:

    1. an Adapter registered with the Set for the dynamic type of the value
    2. an interface implemented by the value (Equaler, Decomposer, Variant, Closed)
    3. a reflection based default: arrays and structs with exported fields
       decompose positionally, equality needs identical dynamic types

A value which is not a Variant is introspected as a variant with a single
alternative at index 0, holding the value itself. This lets type
discriminators dispatch on the dynamic type of interface values.

Sub-components handed out by a Set are Refs: references into the subject,
carrying the path they were reached by and a Scope. Once the scope has ended,
a Ref must not be read anymore.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package capability

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'inspect.capability'.
func tracer() tracing.Trace {
	return tracing.Select("inspect.capability")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("inspect.capability: "+msg, msgargs...)
		panic(msg)
	}
}
