package domain

import (
	"context"

	"github.com/jordanlanch/leaddesk/pkg/query"
)

// Page selects a window of an ordered result set.
type Page struct {
	Offset int
	Limit  int
}

// LeadRepository defines data access operations for leads. Lookups and
// writes by id return a NOT_FOUND DomainError when the lead does not exist,
// and a duplicate email surfaces as a VALIDATION_ERROR.
type LeadRepository interface {
	CreateLead(ctx context.Context, lead *Lead) error
	// InsertLeads writes every lead or none of them.
	InsertLeads(ctx context.Context, leads []*Lead) error
	GetLead(ctx context.Context, id string) (*Lead, error)
	UpdateLead(ctx context.Context, lead *Lead) error
	DeleteLead(ctx context.Context, id string) error
	// FindLeads returns the page of leads matching cond, newest first.
	FindLeads(ctx context.Context, cond query.Cond, page Page) ([]*Lead, error)
	CountLeads(ctx context.Context, cond query.Cond) (int, error)
	AggregateByStatus(ctx context.Context, cond query.Cond) ([]StatusStat, error)
}

// UserRepository defines data access operations for users
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]*User, error)
	ListUsers(ctx context.Context, role Role) ([]*User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id string) error
}

// LeadSourceRepository defines data access operations for the source catalog
type LeadSourceRepository interface {
	CreateLeadSource(ctx context.Context, src *LeadSource) error
	GetLeadSource(ctx context.Context, id string) (*LeadSource, error)
	ListLeadSources(ctx context.Context) ([]*LeadSource, error)
	UpdateLeadSource(ctx context.Context, src *LeadSource) error
	DeleteLeadSource(ctx context.Context, id string) error
}

// Store bundles every repository of one storage backend.
type Store interface {
	LeadRepository
	UserRepository
	LeadSourceRepository
	Ping(ctx context.Context) error
	Close() error
}
