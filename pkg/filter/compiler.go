package filter

import (
	"time"

	"github.com/jordanlanch/leaddesk/pkg/query"
)

const day = 24 * time.Hour

// Compile joins the caller's scope and every predicate into one condition.
// The scope always comes first and is never dropped. Range-like predicates
// on the same field (gt, lt, between, on, before, after) are intersected
// into a single query.Range.
func Compile(preds []Predicate, scope query.Cond) query.Cond {
	conds := []query.Cond{scope}

	ranges := map[string]query.Range{}
	var order []string
	addRange := func(r query.Range) {
		if prev, ok := ranges[r.Field]; ok {
			ranges[r.Field] = prev.Intersect(r)
			return
		}
		ranges[r.Field] = r
		order = append(order, r.Field)
	}

	for _, p := range preds {
		name := p.Field.Name
		switch v := p.Value.(type) {
		case Text:
			if p.Op == OpContains {
				conds = append(conds, query.ContainsFold{Field: name, Substr: string(v)})
			} else {
				conds = append(conds, query.Eq{Field: name, Value: string(v)})
			}

		case TextSet:
			vals := make([]any, len(v))
			for i, s := range v {
				vals[i] = s
			}
			conds = append(conds, query.In{Field: name, Values: vals})

		case Number:
			n := float64(v)
			switch p.Op {
			case OpGt:
				addRange(query.Range{Field: name, Lower: &query.Bound{Value: n}})
			case OpLt:
				addRange(query.Range{Field: name, Upper: &query.Bound{Value: n}})
			default:
				conds = append(conds, query.Eq{Field: name, Value: n})
			}

		case NumberRange:
			addRange(query.Range{
				Field: name,
				Lower: &query.Bound{Value: v.Min, Inclusive: true},
				Upper: &query.Bound{Value: v.Max, Inclusive: true},
			})

		case Instant:
			addRange(instantRange(name, p.Op, v))

		case Period:
			addRange(query.Range{
				Field: name,
				Lower: &query.Bound{Value: v.Start.At, Inclusive: true},
				Upper: endOf(v.End),
			})

		case Bool:
			conds = append(conds, query.Eq{Field: name, Value: bool(v)})
		}
	}

	for _, f := range order {
		conds = append(conds, ranges[f])
	}
	return query.AllOf(conds...)
}

func instantRange(field string, op Operator, v Instant) query.Range {
	r := query.Range{Field: field}
	switch op {
	case OpBefore:
		r.Upper = &query.Bound{Value: v.At}
	case OpAfter:
		if v.Day {
			r.Lower = &query.Bound{Value: v.At.Add(day), Inclusive: true}
		} else {
			r.Lower = &query.Bound{Value: v.At}
		}
	default: // OpOn
		r.Lower = &query.Bound{Value: v.At, Inclusive: true}
		r.Upper = endOf(v)
	}
	return r
}

// endOf is the inclusive upper edge of v: the instant itself, or everything
// before the next midnight for a whole day.
func endOf(v Instant) *query.Bound {
	if v.Day {
		return &query.Bound{Value: v.At.Add(day)}
	}
	return &query.Bound{Value: v.At, Inclusive: true}
}
