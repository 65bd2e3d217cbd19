package filter

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/leaddesk/pkg/domain"
)

func TestParse_RecognizedKeys(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []Predicate
	}{
		{
			name:  "string contains",
			query: "city_contains=spring",
			want:  []Predicate{{Key: "city_contains", Field: Fields["city"], Op: OpContains, Value: Text("spring")}},
		},
		{
			name:  "string equals",
			query: "email_equals=ada@example.com",
			want:  []Predicate{{Key: "email_equals", Field: Fields["email"], Op: OpEquals, Value: Text("ada@example.com")}},
		},
		{
			name:  "enum in with spaces",
			query: "status_in=new,+won",
			want:  []Predicate{{Key: "status_in", Field: Fields["status"], Op: OpIn, Value: TextSet{"new", "won"}}},
		},
		{
			name:  "multi word number field",
			query: "lead_value_gt=1000",
			want:  []Predicate{{Key: "lead_value_gt", Field: Fields["lead_value"], Op: OpGt, Value: Number(1000)}},
		},
		{
			name:  "number between",
			query: "score_between=20,80",
			want:  []Predicate{{Key: "score_between", Field: Fields["score"], Op: OpBetween, Value: NumberRange{Min: 20, Max: 80}}},
		},
		{
			name:  "boolean",
			query: "is_qualified_equals=TRUE",
			want:  []Predicate{{Key: "is_qualified_equals", Field: Fields["is_qualified"], Op: OpEquals, Value: Bool(true)}},
		},
		{
			name:  "date only",
			query: "created_at_on=2024-03-05",
			want: []Predicate{{
				Key: "created_at_on", Field: Fields["created_at"], Op: OpOn,
				Value: Instant{At: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Day: true},
			}},
		},
		{
			name:  "timestamp is normalized to UTC",
			query: "last_activity_at_after=2024-03-05T10:00:00%2B02:00",
			want: []Predicate{{
				Key: "last_activity_at_after", Field: Fields["last_activity_at"], Op: OpAfter,
				Value: Instant{At: time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := Parse(params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_IgnoresUnknownKeys(t *testing.T) {
	params := url.Values{
		"page":                {"2"},
		"limit":               {"10"},
		"assigned_to_equals":  {"someone-else"},
		"created_by_equals":   {"x"},
		"city_between":        {"a,b"},
		"status_contains":     {"ne"},
		"score_":              {"1"},
		"_gt":                 {"1"},
		"nickname_equals":     {"bob"},
		"score_gt":            {""},
		"is_qualified_equals": {"   "},
	}

	got, err := Parse(params)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParse_RepeatedOperatorsAreKept(t *testing.T) {
	params := url.Values{
		"score_gt":      {"10", "30"},
		"score_lt":      {"90"},
		"score_between": {"20,80"},
	}

	got, err := Parse(params)
	require.NoError(t, err)
	require.Len(t, got, 4)

	var ops []Operator
	for _, p := range got {
		ops = append(ops, p.Op)
	}
	assert.ElementsMatch(t, []Operator{OpGt, OpGt, OpLt, OpBetween}, ops)
}

func TestParse_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric between", "score_between", "low,high"},
		{"between with one part", "score_between", "20"},
		{"between with three parts", "lead_value_between", "1,2,3"},
		{"between with empty part", "score_between", "20,"},
		{"between reversed", "score_between", "80,20"},
		{"non numeric gt", "score_gt", "abc"},
		{"not a number", "lead_value_equals", "NaN"},
		{"bad date", "created_at_before", "yesterday"},
		{"bad date range", "created_at_between", "2024-01-01,soon"},
		{"reversed date range", "created_at_between", "2024-02-01,2024-01-01"},
		{"bad boolean", "is_qualified_equals", "yes"},
		{"unknown status", "status_equals", "archived"},
		{"unknown source in set", "source_in", "website,billboard"},
		{"empty set", "status_in", ", ,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(url.Values{tt.key: {tt.value}})
			require.Error(t, err)
			assert.True(t, domain.IsInvalidFilterValue(err))

			de, ok := domain.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, tt.key, de.Field)
			assert.Equal(t, tt.value, de.Value)
			assert.Contains(t, de.Message, tt.key)
		})
	}
}

func TestParse_ReportsEveryBadKey(t *testing.T) {
	params := url.Values{
		"score_gt":          {"x"},
		"created_at_before": {"nope"},
		"city_contains":     {"spring"},
	}

	_, err := Parse(params)
	require.Error(t, err)

	de, ok := domain.AsDomainError(err)
	require.True(t, ok)
	require.Len(t, de.Details, 2)
	// Keys are visited in sorted order.
	assert.Equal(t, "created_at_before", de.Details[0].Field)
	assert.Equal(t, "score_gt", de.Details[1].Field)
}
