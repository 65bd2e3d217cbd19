package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/query"
)

func TestScope(t *testing.T) {
	admin := domain.Caller{ID: "a1", Role: domain.RoleAdmin}
	employee := domain.Caller{ID: "e1", Role: domain.RoleEmployee}

	assert.Nil(t, Scope(admin))
	assert.Equal(t, query.Eq{Field: "assigned_to", Value: "e1"}, Scope(employee))
}

func TestScope_UnknownRoleIsRestricted(t *testing.T) {
	got := Scope(domain.Caller{ID: "x", Role: "auditor"})
	assert.Equal(t, query.Eq{Field: "assigned_to", Value: "x"}, got)
}

func TestCheckLead(t *testing.T) {
	e1, e2 := "e1", "e2"
	admin := domain.Caller{ID: "a1", Role: domain.RoleAdmin}
	employee := domain.Caller{ID: e1, Role: domain.RoleEmployee}

	tests := []struct {
		name      string
		caller    domain.Caller
		lead      *domain.Lead
		forbidden bool
	}{
		{"admin on unassigned lead", admin, &domain.Lead{}, false},
		{"admin on someone else's lead", admin, &domain.Lead{AssignedTo: &e2}, false},
		{"employee on own lead", employee, &domain.Lead{AssignedTo: &e1}, false},
		{"employee on other lead", employee, &domain.Lead{AssignedTo: &e2}, true},
		{"employee on unassigned lead", employee, &domain.Lead{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckLead(tt.caller, tt.lead)
			if tt.forbidden {
				assert.True(t, domain.IsForbidden(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}
