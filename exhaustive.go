package inspect

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/npillmayer/inspect/capability"
	"github.com/npillmayer/inspect/pattern"
	tp "github.com/xlab/treeprint"
)

// Report is the result of the exhaustiveness diagnostic. It is advisory and
// never influences evaluation.
type Report struct {
	Subject     reflect.Type
	Domain      capability.Domain
	Closed      bool  // subject has a finite, enumerable set of alternatives
	Covered     []int // alternatives matched unconditionally by some case
	Missing     []int // alternatives not covered by any case
	CatchAll    int   // first unguarded catch-all case, or -1
	Unreachable []int // cases which can never be selected
}

// Complete is true if every value of the subject type is matched by some
// case, either by covering all alternatives or by a catch-all case.
func (r Report) Complete() bool {
	if r.CatchAll >= 0 {
		return true
	}
	return r.Closed && len(r.Missing) == 0
}

// Err returns nil for complete reports, or an error wrapping ErrIncomplete.
func (r Report) Err() error {
	if r.Complete() {
		return nil
	}
	if !r.Closed {
		return fmt.Errorf("%w: alternatives of %v are open and there is no catch-all case", ErrIncomplete, r.Subject)
	}
	labels := make([]string, len(r.Missing))
	for i, m := range r.Missing {
		labels[i] = r.Domain.Label(m)
	}
	return fmt.Errorf("%w: missing %s for %v", ErrIncomplete, strings.Join(labels, ", "), r.Subject)
}

func (r Report) String() string {
	printer := tp.New()
	root := printer.AddBranch(fmt.Sprintf("exhaustiveness of %v over %s", r.Subject, r.Domain))
	if r.CatchAll >= 0 {
		root.AddNode(fmt.Sprintf("catch-all: case %d", r.CatchAll))
	}
	if len(r.Covered) > 0 {
		b := root.AddBranch("covered")
		for _, i := range r.Covered {
			b.AddNode(r.Domain.Label(i))
		}
	}
	if len(r.Missing) > 0 {
		b := root.AddBranch("missing")
		for _, i := range r.Missing {
			b.AddNode(r.Domain.Label(i))
		}
	}
	if len(r.Unreachable) > 0 {
		b := root.AddBranch("unreachable")
		for _, i := range r.Unreachable {
			b.AddNode(fmt.Sprintf("case %d", i))
		}
	}
	return printer.String()
}

// CheckExhaustive computes the exhaustiveness report for a case list.
//
// An alternative counts as covered if a case without guard (or with a
// constant true guard) has an Alternative pattern at top level, possibly
// under bindings, with a static discriminator admitting it and an
// irrefutable sub-pattern. Irrefutable patterns at top level are catch-all
// cases. Cases after a catch-all or after full coverage of a closed domain,
// and alternative cases covering nothing new, are unreachable.
func CheckExhaustive(cl *CaseList) Report {
	r := Report{Subject: cl.subject, CatchAll: -1}
	r.Domain, r.Closed = cl.conf.set.DomainOf(cl.subject)
	covered := make([]bool, r.Domain.Size())
	for i, c := range cl.cases {
		if r.CatchAll >= 0 || (r.Closed && all(covered)) {
			r.Unreachable = append(r.Unreachable, i)
			continue
		}
		p := unbind(c.Pattern)
		always := unconditional(c.Guard)
		if always && pattern.Irrefutable(p) {
			r.CatchAll = i
			continue
		}
		alt, ok := p.(pattern.Alternative)
		if !ok || !r.Closed || !alt.Discriminator.Static() {
			continue
		}
		var admitted []int
		fresh := false
		for a := 0; a < r.Domain.Size(); a++ {
			if alt.Discriminator.Admits(a, r.Domain.TypeAt(a)) {
				admitted = append(admitted, a)
				fresh = fresh || !covered[a]
			}
		}
		if !fresh {
			r.Unreachable = append(r.Unreachable, i)
			continue
		}
		if always && pattern.Irrefutable(alt.Sub) {
			for _, a := range admitted {
				covered[a] = true
			}
		}
	}
	for a, ok := range covered {
		if ok {
			r.Covered = append(r.Covered, a)
		} else {
			r.Missing = append(r.Missing, a)
		}
	}
	if !r.Complete() {
		tracer().Debugf("incomplete case list:\n%s", r)
	}
	return r
}

func all(covered []bool) bool {
	for _, ok := range covered {
		if !ok {
			return false
		}
	}
	return true
}

func unconditional(g Guard) bool {
	if g == nil {
		return true
	}
	c, ok := g.(ConstGuard)
	return ok && bool(c)
}

func unbind(p pattern.Pattern) pattern.Pattern {
	for {
		b, ok := p.(pattern.Binding)
		if !ok {
			return p
		}
		p = b.Sub
	}
}
