package leads

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/leaddesk/pkg/domain"
)

func validLead() *domain.Lead {
	return &domain.Lead{
		ID:        "l-1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Status:    domain.StatusNew,
		CreatedBy: "admin-1",
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(validLead()))
}

func TestValidate_ReportsEveryField(t *testing.T) {
	l := validLead()
	l.FirstName = ""
	l.Email = "bad"
	l.Score = 120
	l.Status = "archived"
	l.CreatedBy = ""
	l.UpdatedAt = baseTime.Add(-1)

	err := Validate(l)
	require.True(t, domain.IsValidation(err))
	de, _ := domain.AsDomainError(err)

	got := map[string]string{}
	for _, d := range de.Details {
		got[d.Field] = d.Message
	}
	assert.Equal(t, "first_name is required", got["first_name"])
	assert.Equal(t, "email must be a valid email address", got["email"])
	assert.Equal(t, "score must be at most 100", got["score"])
	assert.Equal(t, "status must be one of: new, contacted, qualified, lost, won", got["status"])
	assert.Equal(t, "created_by is required", got["created_by"])
	assert.Contains(t, got, "updated_at")
	assert.Equal(t, "first_name", de.Field)
}

func TestValidate_NonFiniteNumbers(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		value float64
		field string
	}{
		{"positive infinite value", 10, math.Inf(1), "lead_value"},
		{"negative infinite value", 10, math.Inf(-1), "lead_value"},
		{"NaN value", 10, math.NaN(), "lead_value"},
		{"NaN score", math.NaN(), 500, "score"},
		{"infinite score", math.Inf(1), 500, "score"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLead()
			l.Score = tt.score
			l.LeadValue = tt.value

			err := Validate(l)
			require.True(t, domain.IsValidation(err))
			de, _ := domain.AsDomainError(err)
			require.Len(t, de.Details, 1)
			assert.Equal(t, tt.field, de.Field)
			assert.Equal(t, tt.field+" must be a finite number", de.Message)
		})
	}
}

func TestValidate_Lengths(t *testing.T) {
	l := validLead()
	l.Company = strings.Repeat("x", 201)

	err := Validate(l)
	require.True(t, domain.IsValidation(err))
	de, _ := domain.AsDomainError(err)
	assert.Equal(t, "company", de.Field)
	assert.Equal(t, "company must be at most 200 characters", de.Message)
}

func TestNormalize(t *testing.T) {
	l := validLead()
	l.FirstName = "  Ada "
	l.Email = " ADA@Example.com "
	l.Phone = "202-456-1111"
	l.City = " London\t"
	l.Status = " won "

	Normalize(l, "US")

	assert.Equal(t, "Ada", l.FirstName)
	assert.Equal(t, "ada@example.com", l.Email)
	assert.Equal(t, "+12024561111", l.Phone)
	assert.Equal(t, "London", l.City)
	assert.Equal(t, domain.StatusWon, l.Status)

	l.Phone = " ext. 12 "
	Normalize(l, "US")
	assert.Equal(t, "ext. 12", l.Phone)
}
