// Package filter turns lead listing query parameters of the form
// <field>_<operator>=value into typed predicates and compiles them, together
// with the caller's visibility scope, into a query.Cond.
package filter

import (
	"errors"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jordanlanch/leaddesk/pkg/domain"
)

// Value is the typed payload of a predicate.
type Value interface {
	value()
}

// Text is a single string operand.
type Text string

// TextSet is the operand of an "in" filter.
type TextSet []string

// Number is a single numeric operand.
type Number float64

// NumberRange is an inclusive min,max pair.
type NumberRange struct {
	Min, Max float64
}

// Instant is a point in time. When Day is set, At is a UTC midnight and the
// value stands for that whole day.
type Instant struct {
	At  time.Time
	Day bool
}

// Period is an inclusive start,end pair of instants.
type Period struct {
	Start, End Instant
}

// Bool is a boolean operand.
type Bool bool

func (Text) value()        {}
func (TextSet) value()     {}
func (Number) value()      {}
func (NumberRange) value() {}
func (Instant) value()     {}
func (Period) value()      {}
func (Bool) value()        {}

// Predicate is one parsed filter parameter.
type Predicate struct {
	Key   string
	Field Field
	Op    Operator
	Value Value
}

var dateLayouts = []struct {
	layout string
	day    bool
}{
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02", true},
}

// Parse reads every recognized <field>_<operator> key from params. Unknown
// keys and empty values are skipped. Any malformed value fails the whole
// call with an InvalidFilterValue error listing each offending key.
func Parse(params url.Values) ([]Predicate, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var preds []Predicate
	var bad []domain.FieldError
	for _, key := range keys {
		field, op, ok := resolve(key)
		if !ok {
			continue
		}
		for _, raw := range params[key] {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			v, err := parseValue(field, op, raw)
			if err != nil {
				bad = append(bad, domain.FieldError{Field: key, Value: raw, Message: err.Error()})
				continue
			}
			preds = append(preds, Predicate{Key: key, Field: field, Op: op, Value: v})
		}
	}

	if len(bad) > 0 {
		return nil, domain.NewInvalidFilterValueError(bad)
	}
	return preds, nil
}

// resolve splits key at its last underscore. Field names may contain
// underscores, operators never do.
func resolve(key string) (Field, Operator, bool) {
	i := strings.LastIndexByte(key, '_')
	if i <= 0 || i == len(key)-1 {
		return Field{}, "", false
	}
	field, ok := Fields[key[:i]]
	if !ok {
		return Field{}, "", false
	}
	op := Operator(key[i+1:])
	if !field.Supports(op) {
		return Field{}, "", false
	}
	return field, op, true
}

func parseValue(f Field, op Operator, raw string) (Value, error) {
	switch f.Kind {
	case KindString:
		return Text(raw), nil

	case KindEnum:
		if op == OpIn {
			var set TextSet
			for _, part := range strings.Split(raw, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				if !f.allows(part) {
					return nil, enumError(f)
				}
				set = append(set, part)
			}
			if len(set) == 0 {
				return nil, errors.New("must list at least one value")
			}
			return set, nil
		}
		if !f.allows(raw) {
			return nil, enumError(f)
		}
		return Text(raw), nil

	case KindNumber:
		if op == OpBetween {
			lo, hi, err := splitPair(raw)
			if err != nil {
				return nil, err
			}
			from, err := parseNumber(lo)
			if err != nil {
				return nil, err
			}
			to, err := parseNumber(hi)
			if err != nil {
				return nil, err
			}
			if from > to {
				return nil, errors.New("range start is greater than range end")
			}
			return NumberRange{Min: from, Max: to}, nil
		}
		n, err := parseNumber(raw)
		if err != nil {
			return nil, err
		}
		return Number(n), nil

	case KindDate:
		if op == OpBetween {
			lo, hi, err := splitPair(raw)
			if err != nil {
				return nil, err
			}
			start, err := parseInstant(lo)
			if err != nil {
				return nil, err
			}
			end, err := parseInstant(hi)
			if err != nil {
				return nil, err
			}
			if start.At.After(end.At) {
				return nil, errors.New("range start is after range end")
			}
			return Period{Start: start, End: end}, nil
		}
		return parseInstant(raw)

	case KindBool:
		switch strings.ToLower(raw) {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
		return nil, errors.New("must be true or false")
	}

	return nil, errors.New("unsupported field")
}

func splitPair(raw string) (string, string, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return "", "", errors.New("must be two comma-separated values")
	}
	lo, hi := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if lo == "" || hi == "" {
		return "", "", errors.New("must be two comma-separated values")
	}
	return lo, hi, nil
}

func parseNumber(s string) (float64, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errors.New("must be a number")
	}
	return n, nil
}

func parseInstant(s string) (Instant, error) {
	for _, l := range dateLayouts {
		t, err := time.Parse(l.layout, s)
		if err == nil {
			return Instant{At: t.UTC(), Day: l.day}, nil
		}
	}
	return Instant{}, errors.New("must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
}

func enumError(f Field) error {
	return errors.New("must be one of: " + strings.Join(f.Enum, ", "))
}
