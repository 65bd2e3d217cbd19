package sqlstore

import (
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/jordanlanch/leaddesk/pkg/query"
)

// Predicate translates a condition tree into an ent SQL predicate. A nil
// condition yields a nil predicate.
func Predicate(c query.Cond) (*entsql.Predicate, error) {
	switch v := c.(type) {
	case nil:
		return nil, nil

	case query.And:
		preds := make([]*entsql.Predicate, 0, len(v))
		for _, child := range v {
			p, err := Predicate(child)
			if err != nil {
				return nil, err
			}
			if p != nil {
				preds = append(preds, p)
			}
		}
		switch len(preds) {
		case 0:
			return nil, nil
		case 1:
			return preds[0], nil
		}
		return entsql.And(preds...), nil

	case query.Eq:
		return entsql.EQ(v.Field, v.Value), nil

	case query.ContainsFold:
		return entsql.ContainsFold(v.Field, v.Substr), nil

	case query.In:
		if len(v.Values) == 0 {
			return entsql.False(), nil
		}
		return entsql.In(v.Field, v.Values...), nil

	case query.Range:
		var preds []*entsql.Predicate
		if b := v.Lower; b != nil {
			if b.Inclusive {
				preds = append(preds, entsql.GTE(v.Field, b.Value))
			} else {
				preds = append(preds, entsql.GT(v.Field, b.Value))
			}
		}
		if b := v.Upper; b != nil {
			if b.Inclusive {
				preds = append(preds, entsql.LTE(v.Field, b.Value))
			} else {
				preds = append(preds, entsql.LT(v.Field, b.Value))
			}
		}
		switch len(preds) {
		case 0:
			return nil, nil
		case 1:
			return preds[0], nil
		}
		return entsql.And(preds...), nil
	}

	return nil, fmt.Errorf("sqlstore: unsupported condition %T", c)
}

// where applies c to the selector when it is not empty.
func where(s *entsql.Selector, c query.Cond) (*entsql.Selector, error) {
	p, err := Predicate(c)
	if err != nil {
		return nil, err
	}
	if p != nil {
		s.Where(p)
	}
	return s, nil
}
