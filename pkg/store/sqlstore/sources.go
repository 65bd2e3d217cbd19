package sqlstore

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/jordanlanch/leaddesk/pkg/domain"
)

const leadSourcesTable = "lead_sources"

var leadSourceColumns = []string{"id", "name", "description", "is_active", "created_at"}

func (s *Store) queryLeadSources(ctx context.Context, p *entsql.Predicate) ([]*domain.LeadSource, error) {
	b := s.builder()
	sel := b.Select(leadSourceColumns...).From(b.Table(leadSourcesTable))
	if p != nil {
		sel.Where(p)
	}
	sel.OrderBy(entsql.Asc("name"))

	sources := []*domain.LeadSource{}
	err := scanAll(ctx, s.drv, sel, func(rows *entsql.Rows) error {
		var src domain.LeadSource
		if err := rows.Scan(&src.ID, &src.Name, &src.Description, &src.IsActive, &src.CreatedAt); err != nil {
			return fmt.Errorf("scanning lead source: %w", err)
		}
		src.CreatedAt = src.CreatedAt.UTC()
		sources = append(sources, &src)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("querying lead sources: %w", err)
	}
	return sources, nil
}

// CreateLeadSource inserts a catalog entry.
func (s *Store) CreateLeadSource(ctx context.Context, src *domain.LeadSource) error {
	insert := s.builder().Insert(leadSourcesTable).
		Columns(leadSourceColumns...).
		Values(src.ID, src.Name, src.Description, src.IsActive, src.CreatedAt)
	if _, err := exec(ctx, s.drv, insert); err != nil {
		return writeError(err, leadSourcesTable, "name")
	}
	return nil
}

// GetLeadSource loads a catalog entry by id.
func (s *Store) GetLeadSource(ctx context.Context, id string) (*domain.LeadSource, error) {
	sources, err := s.queryLeadSources(ctx, entsql.EQ("id", id))
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, domain.NewNotFoundError("Lead source")
	}
	return sources[0], nil
}

// ListLeadSources returns the whole catalog ordered by name.
func (s *Store) ListLeadSources(ctx context.Context) ([]*domain.LeadSource, error) {
	return s.queryLeadSources(ctx, nil)
}

// UpdateLeadSource stores name, description and the active flag.
func (s *Store) UpdateLeadSource(ctx context.Context, src *domain.LeadSource) error {
	upd := s.builder().Update(leadSourcesTable).
		Set("name", src.Name).
		Set("description", src.Description).
		Set("is_active", src.IsActive).
		Where(entsql.EQ("id", src.ID))

	n, err := exec(ctx, s.drv, upd)
	if err != nil {
		return writeError(err, leadSourcesTable, "name")
	}
	if n == 0 {
		return domain.NewNotFoundError("Lead source")
	}
	return nil
}

// DeleteLeadSource removes a catalog entry.
func (s *Store) DeleteLeadSource(ctx context.Context, id string) error {
	n, err := exec(ctx, s.drv, s.builder().Delete(leadSourcesTable).Where(entsql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("deleting lead source: %w", err)
	}
	if n == 0 {
		return domain.NewNotFoundError("Lead source")
	}
	return nil
}
