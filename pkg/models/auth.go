package models

import (
	"time"

	"github.com/jordanlanch/leaddesk/pkg/domain"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserInfo represents user information in responses
type UserInfo struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserInfo builds the public view of a user. The password hash is never
// part of it.
func NewUserInfo(u *domain.User) *UserInfo {
	return &UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// CreateEmployeeRequest is the body of POST /admin/employees.
type CreateEmployeeRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

// UpdateEmployeeRequest is the body of PUT /admin/employees/:id.
type UpdateEmployeeRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
}

// LeadSourceRequest is the body for creating or updating a lead source.
type LeadSourceRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    *bool  `json:"is_active"`
}

// LeadSourceResponse represents a lead source in API responses
type LeadSourceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewLeadSourceResponse converts a catalog entry for the API.
func NewLeadSourceResponse(src *domain.LeadSource) LeadSourceResponse {
	return LeadSourceResponse{
		ID:          src.ID,
		Name:        src.Name,
		Description: src.Description,
		IsActive:    src.IsActive,
		CreatedAt:   src.CreatedAt,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Field   string              `json:"field,omitempty"`
	Value   string              `json:"value,omitempty"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
