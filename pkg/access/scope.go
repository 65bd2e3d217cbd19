// Package access decides which leads a caller may see or change.
package access

import (
	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/query"
)

// OwnerField is the lead column that carries row ownership.
const OwnerField = "assigned_to"

// Scope returns the visibility constraint for caller. Admins see every lead,
// employees only the leads assigned to them.
func Scope(caller domain.Caller) query.Cond {
	if caller.IsAdmin() {
		return nil
	}
	return query.Eq{Field: OwnerField, Value: caller.ID}
}

// CheckLead applies the same rule to a lead that has already been fetched.
func CheckLead(caller domain.Caller, lead *domain.Lead) error {
	if caller.IsAdmin() || lead.IsAssignedTo(caller.ID) {
		return nil
	}
	return domain.NewForbiddenError("Not authorized")
}
