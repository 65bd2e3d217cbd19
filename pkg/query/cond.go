// Package query holds the storage-neutral condition tree that lead filters
// compile to. Storage adapters translate it into their own query language.
package query

import (
	"fmt"
	"time"
)

// Cond is a node of the condition tree. A nil Cond matches everything.
type Cond interface {
	cond()
}

// And matches when every child matches. Nil children are skipped.
type And []Cond

// Eq matches rows whose Field equals Value.
type Eq struct {
	Field string
	Value any
}

// ContainsFold matches rows whose Field contains Substr, ignoring case.
// Substr is a literal, never a pattern.
type ContainsFold struct {
	Field  string
	Substr string
}

// In matches rows whose Field is one of Values.
type In struct {
	Field  string
	Values []any
}

// Bound is one end of a Range. Value is a float64 or a time.Time.
type Bound struct {
	Value     any
	Inclusive bool
}

// Range matches rows whose Field lies between Lower and Upper. A nil bound
// leaves that side open.
type Range struct {
	Field string
	Lower *Bound
	Upper *Bound
}

func (And) cond()          {}
func (Eq) cond()           {}
func (ContainsFold) cond() {}
func (In) cond()           {}
func (Range) cond()        {}

// AllOf joins conds into a single condition, dropping nils and flattening
// nested conjunctions. It returns nil when nothing is left.
func AllOf(conds ...Cond) Cond {
	var out And
	for _, c := range conds {
		switch v := c.(type) {
		case nil:
		case And:
			for _, child := range v {
				if child != nil {
					out = append(out, child)
				}
			}
		default:
			out = append(out, v)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	}
	return out
}

// Intersect narrows r so that it also satisfies other. Both ranges must be
// on the same field and carry comparable bound values.
func (r Range) Intersect(other Range) Range {
	r.Lower = tighter(r.Lower, other.Lower, 1)
	r.Upper = tighter(r.Upper, other.Upper, -1)
	return r
}

// tighter picks the more restrictive of two bounds. dir is 1 for lower
// bounds (bigger wins) and -1 for upper bounds (smaller wins).
func tighter(a, b *Bound, dir int) *Bound {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	switch c := Compare(a.Value, b.Value) * dir; {
	case c > 0:
		return a
	case c < 0:
		return b
	}
	// Equal values: the exclusive bound is the stricter one.
	if !a.Inclusive {
		return a
	}
	return b
}

// Compare orders two bound values of the same kind. It panics on mixed or
// unsupported kinds since the compiler never produces them.
func Compare(a, b any) int {
	switch x := a.(type) {
	case float64:
		y := b.(float64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case time.Time:
		return x.Compare(b.(time.Time))
	}
	panic(fmt.Sprintf("query: unsupported bound type %T", a))
}
