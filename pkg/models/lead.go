package models

import (
	"time"

	"github.com/jordanlanch/leaddesk/pkg/domain"
)

// CreateLeadRequest is the body of POST /leads. Field rules are checked by
// the leads service so single and bulk creation agree.
type CreateLeadRequest struct {
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Company        string     `json:"company"`
	City           string     `json:"city"`
	State          string     `json:"state"`
	Source         string     `json:"source"`
	Status         string     `json:"status"`
	Score          *float64   `json:"score"`
	LeadValue      *float64   `json:"lead_value"`
	LastActivityAt *time.Time `json:"last_activity_at"`
	IsQualified    *bool      `json:"is_qualified"`
	AssignedTo     *string    `json:"assigned_to"`
}

// UpdateLeadRequest is the body of PUT /leads/:id. Absent fields keep their
// stored value.
type UpdateLeadRequest struct {
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Email          *string    `json:"email"`
	Phone          *string    `json:"phone"`
	Company        *string    `json:"company"`
	City           *string    `json:"city"`
	State          *string    `json:"state"`
	Source         *string    `json:"source"`
	Status         *string    `json:"status"`
	Score          *float64   `json:"score"`
	LeadValue      *float64   `json:"lead_value"`
	LastActivityAt *time.Time `json:"last_activity_at"`
	IsQualified    *bool      `json:"is_qualified"`
	AssignedTo     *string    `json:"assigned_to"`
}

// AssignLeadRequest is the body of the admin reassignment endpoint. A null
// assigned_to unassigns the lead.
type AssignLeadRequest struct {
	AssignedTo *string `json:"assigned_to"`
}

// UserRef is the display form of a referenced user.
type UserRef struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LeadResponse represents a single lead in API responses
type LeadResponse struct {
	ID             string        `json:"id"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	Company        string        `json:"company"`
	City           string        `json:"city"`
	State          string        `json:"state"`
	Source         domain.Source `json:"source"`
	Status         domain.Status `json:"status"`
	Score          float64       `json:"score"`
	LeadValue      float64       `json:"lead_value"`
	LastActivityAt *time.Time    `json:"last_activity_at"`
	IsQualified    bool          `json:"is_qualified"`
	AssignedToRef  *UserRef      `json:"assigned_to"`
	CreatedByRef   *UserRef      `json:"created_by"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// LeadListResponse represents a paginated list of leads
type LeadListResponse struct {
	Data       []LeadResponse `json:"data"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int            `json:"total"`
	TotalPages int            `json:"totalPages"`
}

// ImportResponse reports a completed bulk import.
type ImportResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ImportRow is one data row of an uploaded spreadsheet. Line is the 1-based
// line of the row in the file, used to qualify errors.
type ImportRow struct {
	Line int
	Lead CreateLeadRequest
}
