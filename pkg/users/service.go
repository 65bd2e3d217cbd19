// Package users manages accounts: sign-in and the employee roster admins
// maintain.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jordanlanch/leaddesk/pkg/auth"
	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/logger"
	"github.com/jordanlanch/leaddesk/pkg/models"
)

// Service handles user business logic
type Service struct {
	store domain.UserRepository
	log   logger.Logger
	now   func() time.Time
}

// NewService creates a new user service
func NewService(store domain.UserRepository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{store: store, log: log, now: time.Now}
}

// Authenticate checks an email and password pair. Unknown emails and wrong
// passwords fail the same way.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.store.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if domain.IsNotFound(err) {
			auth.CheckPassword("", password)
			return nil, domain.NewInvalidCredentialsError()
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		s.log.Warn("failed login", "user_id", u.ID)
		return nil, domain.NewInvalidCredentialsError()
	}
	return u, nil
}

// Get loads one user.
func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.store.GetUser(ctx, id)
}

// Create stores a new account with a hashed password.
func (s *Service) Create(ctx context.Context, email, password, firstName, lastName string, role domain.Role) (*domain.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         role,
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user created", "user_id", u.ID, "role", string(role))
	return u, nil
}

// CreateEmployee adds an employee account. The role is always employee.
func (s *Service) CreateEmployee(ctx context.Context, req models.CreateEmployeeRequest) (*domain.User, error) {
	return s.Create(ctx, req.Email, req.Password, req.FirstName, req.LastName, domain.RoleEmployee)
}

// ListEmployees returns every employee account.
func (s *Service) ListEmployees(ctx context.Context) ([]*domain.User, error) {
	return s.store.ListUsers(ctx, domain.RoleEmployee)
}

// UpdateEmployee changes the fields present in req. Admin accounts cannot
// be edited through it.
func (s *Service) UpdateEmployee(ctx context.Context, id string, req models.UpdateEmployeeRequest) (*domain.User, error) {
	u, err := s.employee(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		u.Email = normalizeEmail(*req.Email)
	}
	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteEmployee removes an employee account. Leads assigned to it keep
// the dangling id and render without an assignee.
func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := s.employee(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.Info("employee deleted", "user_id", id)
	return nil
}

func (s *Service) employee(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != domain.RoleEmployee {
		return nil, domain.NewNotFoundError("Employee")
	}
	return u, nil
}

func hashPassword(password string) (string, error) {
	hash, err := auth.HashPassword(password)
	switch {
	case errors.Is(err, auth.ErrPasswordTooShort):
		return "", domain.NewValidationError("password", fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength))
	case errors.Is(err, auth.ErrPasswordTooLong):
		return "", domain.NewValidationError("password", "password must be at most 72 bytes")
	case err != nil:
		return "", domain.NewInternalError(err)
	}
	return hash, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
