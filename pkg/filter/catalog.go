package filter

import "github.com/jordanlanch/leaddesk/pkg/domain"

// Kind is the value class of a filterable field.
type Kind int

const (
	KindString Kind = iota
	KindEnum
	KindNumber
	KindDate
	KindBool
)

// Operator is the suffix of a filter key, e.g. "between" in score_between.
type Operator string

const (
	OpEquals   Operator = "equals"
	OpContains Operator = "contains"
	OpIn       Operator = "in"
	OpGt       Operator = "gt"
	OpLt       Operator = "lt"
	OpBetween  Operator = "between"
	OpOn       Operator = "on"
	OpBefore   Operator = "before"
	OpAfter    Operator = "after"
)

// Field describes one filterable lead column.
type Field struct {
	Name string
	Kind Kind
	// Enum holds the accepted values for KindEnum fields.
	Enum []string
}

var operatorsByKind = map[Kind][]Operator{
	KindString: {OpEquals, OpContains},
	KindEnum:   {OpEquals, OpIn},
	KindNumber: {OpEquals, OpGt, OpLt, OpBetween},
	KindDate:   {OpOn, OpBefore, OpAfter, OpBetween},
	KindBool:   {OpEquals},
}

// Fields is the closed set of lead columns that accept filters.
var Fields = map[string]Field{
	"email":            {Name: "email", Kind: KindString},
	"company":          {Name: "company", Kind: KindString},
	"city":             {Name: "city", Kind: KindString},
	"status":           {Name: "status", Kind: KindEnum, Enum: enumValues(domain.Statuses)},
	"source":           {Name: "source", Kind: KindEnum, Enum: enumValues(domain.Sources)},
	"score":            {Name: "score", Kind: KindNumber},
	"lead_value":       {Name: "lead_value", Kind: KindNumber},
	"created_at":       {Name: "created_at", Kind: KindDate},
	"last_activity_at": {Name: "last_activity_at", Kind: KindDate},
	"is_qualified":     {Name: "is_qualified", Kind: KindBool},
}

// Supports reports whether op is legal for the field.
func (f Field) Supports(op Operator) bool {
	for _, o := range operatorsByKind[f.Kind] {
		if o == op {
			return true
		}
	}
	return false
}

func (f Field) allows(v string) bool {
	for _, e := range f.Enum {
		if e == v {
			return true
		}
	}
	return false
}

func enumValues[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
