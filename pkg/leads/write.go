package leads

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/models"
)

// newLead builds an unsaved lead from a create request. Defaults are
// applied here; the assignee is resolved by the caller.
func (s *Service) newLead(req models.CreateLeadRequest, createdBy string) *domain.Lead {
	now := s.timestamp()
	lead := &domain.Lead{
		ID:             uuid.NewString(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		City:           req.City,
		State:          req.State,
		Source:         domain.Source(req.Source),
		Status:         domain.Status(req.Status),
		LastActivityAt: utc(req.LastActivityAt),
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if strings.TrimSpace(req.Status) == "" {
		lead.Status = domain.StatusNew
	}
	if req.Score != nil {
		lead.Score = *req.Score
	}
	if req.LeadValue != nil {
		lead.LeadValue = *req.LeadValue
	}
	if req.IsQualified != nil {
		lead.IsQualified = *req.IsQualified
	}
	Normalize(lead, s.region)
	return lead
}

// Create stores a new lead on behalf of caller. Employees own what they
// create unless they name someone else, which is forbidden.
func (s *Service) Create(ctx context.Context, caller domain.Caller, req models.CreateLeadRequest) (*models.LeadResponse, error) {
	lead := s.newLead(req, caller.ID)

	assignee, err := s.assignee(ctx, caller, req.AssignedTo)
	if err != nil {
		return nil, err
	}
	lead.AssignedTo = assignee

	if err := Validate(lead); err != nil {
		return nil, err
	}
	if err := s.store.CreateLead(ctx, lead); err != nil {
		return nil, err
	}

	s.written(ctx, "create", lead.ID)
	return s.renderOne(ctx, lead)
}

// assignee decides the assigned_to of a new lead.
func (s *Service) assignee(ctx context.Context, caller domain.Caller, requested *string) (*string, error) {
	id := ""
	if requested != nil {
		id = strings.TrimSpace(*requested)
	}

	if !caller.IsAdmin() {
		if id != "" && id != caller.ID {
			return nil, domain.NewForbiddenError("Employees can only assign leads to themselves")
		}
		self := caller.ID
		return &self, nil
	}

	if id == "" {
		return nil, nil
	}
	if err := s.userExists(ctx, id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *Service) userExists(ctx context.Context, id string) error {
	if _, err := s.store.GetUser(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return domain.NewValidationError("assigned_to", "assigned user does not exist")
		}
		return err
	}
	return nil
}

// Update applies the fields present in req to a lead caller owns. The
// merged record is validated as a whole.
func (s *Service) Update(ctx context.Context, caller domain.Caller, id string, req models.UpdateLeadRequest) (*models.LeadResponse, error) {
	lead, err := s.fetch(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.AssignedTo != nil {
		next := strings.TrimSpace(*req.AssignedTo)
		current := ""
		if lead.AssignedTo != nil {
			current = *lead.AssignedTo
		}
		if next != current {
			if !caller.IsAdmin() {
				return nil, domain.NewForbiddenError("Employees cannot reassign leads")
			}
			if next == "" {
				lead.AssignedTo = nil
			} else {
				if err := s.userExists(ctx, next); err != nil {
					return nil, err
				}
				lead.AssignedTo = &next
			}
		}
	}

	apply(lead, req)
	Normalize(lead, s.region)
	s.touch(lead)

	if err := Validate(lead); err != nil {
		return nil, err
	}
	if err := s.store.UpdateLead(ctx, lead); err != nil {
		return nil, err
	}

	s.written(ctx, "update", lead.ID)
	return s.renderOne(ctx, lead)
}

func apply(lead *domain.Lead, req models.UpdateLeadRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&lead.FirstName, req.FirstName)
	set(&lead.LastName, req.LastName)
	set(&lead.Email, req.Email)
	set(&lead.Phone, req.Phone)
	set(&lead.Company, req.Company)
	set(&lead.City, req.City)
	set(&lead.State, req.State)
	if req.Source != nil {
		lead.Source = domain.Source(*req.Source)
	}
	if req.Status != nil {
		lead.Status = domain.Status(*req.Status)
	}
	if req.Score != nil {
		lead.Score = *req.Score
	}
	if req.LeadValue != nil {
		lead.LeadValue = *req.LeadValue
	}
	if req.LastActivityAt != nil {
		lead.LastActivityAt = utc(req.LastActivityAt)
	}
	if req.IsQualified != nil {
		lead.IsQualified = *req.IsQualified
	}
}

// touch refreshes updated_at, never moving it before created_at.
func (s *Service) touch(lead *domain.Lead) {
	now := s.timestamp()
	if now.Before(lead.CreatedAt) {
		now = lead.CreatedAt
	}
	lead.UpdatedAt = now
}

// Delete removes a lead caller owns.
func (s *Service) Delete(ctx context.Context, caller domain.Caller, id string) error {
	lead, err := s.fetch(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteLead(ctx, lead.ID); err != nil {
		return err
	}
	s.written(ctx, "delete", lead.ID)
	return nil
}

// Assign sets or clears the assignee of any lead. Admin only; ownership is
// not checked.
func (s *Service) Assign(ctx context.Context, caller domain.Caller, id string, assignedTo *string) (*models.LeadResponse, error) {
	if !caller.IsAdmin() {
		return nil, domain.NewForbiddenError("Admin access required")
	}
	lead, err := s.store.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}

	lead.AssignedTo = nil
	if assignedTo != nil {
		if target := strings.TrimSpace(*assignedTo); target != "" {
			if err := s.userExists(ctx, target); err != nil {
				return nil, err
			}
			lead.AssignedTo = &target
		}
	}
	s.touch(lead)

	if err := s.store.UpdateLead(ctx, lead); err != nil {
		return nil, err
	}
	s.written(ctx, "assign", lead.ID)
	return s.renderOne(ctx, lead)
}

func (s *Service) written(ctx context.Context, op, id string) {
	s.metrics.LeadWritten(op)
	s.log.Info("lead written", "op", op, "lead_id", id)
	s.InvalidateCache(ctx)
}
