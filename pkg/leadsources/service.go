// Package leadsources manages the admin-maintained catalog of lead sources.
package leadsources

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/models"
)

// Service handles lead source business logic
type Service struct {
	store domain.LeadSourceRepository
	now   func() time.Time
}

// NewService creates a new lead source service
func NewService(store domain.LeadSourceRepository) *Service {
	return &Service{store: store, now: time.Now}
}

// List returns the catalog ordered by name.
func (s *Service) List(ctx context.Context) ([]*domain.LeadSource, error) {
	return s.store.ListLeadSources(ctx)
}

// Create adds a source. New sources are active unless the request says
// otherwise.
func (s *Service) Create(ctx context.Context, req models.LeadSourceRequest) (*domain.LeadSource, error) {
	src := &domain.LeadSource{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	if req.IsActive != nil {
		src.IsActive = *req.IsActive
	}
	if src.Name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	if err := s.store.CreateLeadSource(ctx, src); err != nil {
		return nil, err
	}
	return src, nil
}

// Update replaces the name and description and, when given, the active flag.
func (s *Service) Update(ctx context.Context, id string, req models.LeadSourceRequest) (*domain.LeadSource, error) {
	src, err := s.store.GetLeadSource(ctx, id)
	if err != nil {
		return nil, err
	}
	src.Name = strings.TrimSpace(req.Name)
	src.Description = strings.TrimSpace(req.Description)
	if req.IsActive != nil {
		src.IsActive = *req.IsActive
	}
	if src.Name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	if err := s.store.UpdateLeadSource(ctx, src); err != nil {
		return nil, err
	}
	return src, nil
}

// Delete removes a source. Leads keep their source value.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteLeadSource(ctx, id)
}
