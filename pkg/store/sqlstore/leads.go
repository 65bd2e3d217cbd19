package sqlstore

import (
	"context"
	stdsql "database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/query"
)

const leadsTable = "leads"

var leadColumns = []string{
	"id", "first_name", "last_name", "email", "phone", "company", "city", "state",
	"source", "status", "score", "lead_value", "last_activity_at", "is_qualified",
	"assigned_to", "created_by", "created_at", "updated_at",
}

func leadValues(l *domain.Lead) []any {
	return []any{
		l.ID, l.FirstName, l.LastName, l.Email, l.Phone, l.Company, l.City, l.State,
		string(l.Source), string(l.Status), l.Score, l.LeadValue, nullable(l.LastActivityAt), l.IsQualified,
		nullable(l.AssignedTo), l.CreatedBy, l.CreatedAt, l.UpdatedAt,
	}
}

func scanLead(rows *entsql.Rows) (*domain.Lead, error) {
	var (
		l            domain.Lead
		source       string
		status       string
		lastActivity stdsql.NullTime
		assignedTo   stdsql.NullString
	)
	err := rows.Scan(
		&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.Phone, &l.Company, &l.City, &l.State,
		&source, &status, &l.Score, &l.LeadValue, &lastActivity, &l.IsQualified,
		&assignedTo, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning lead: %w", err)
	}
	l.Source = domain.Source(source)
	l.Status = domain.Status(status)
	if lastActivity.Valid {
		t := lastActivity.Time.UTC()
		l.LastActivityAt = &t
	}
	if assignedTo.Valid {
		l.AssignedTo = &assignedTo.String
	}
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return &l, nil
}

// CreateLead inserts a single lead.
func (s *Store) CreateLead(ctx context.Context, lead *domain.Lead) error {
	return s.insertLeads(ctx, s.drv, []*domain.Lead{lead})
}

// InsertLeads inserts all leads in one transaction.
func (s *Store) InsertLeads(ctx context.Context, leads []*domain.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	return s.withTx(ctx, func(tx dialect.Tx) error {
		return s.insertLeads(ctx, tx, leads)
	})
}

// insertBatchSize keeps each statement well below the bind parameter limits
// of both postgres and sqlite. Multi-value lookups use it too.
const insertBatchSize = 500

func (s *Store) insertLeads(ctx context.Context, conn dialect.ExecQuerier, leads []*domain.Lead) error {
	for start := 0; start < len(leads); start += insertBatchSize {
		end := min(start+insertBatchSize, len(leads))
		insert := s.builder().Insert(leadsTable).Columns(leadColumns...)
		for _, l := range leads[start:end] {
			insert.Values(leadValues(l)...)
		}
		if _, err := exec(ctx, conn, insert); err != nil {
			return writeError(err, leadsTable, "email")
		}
	}
	return nil
}

// GetLead loads a lead by id.
func (s *Store) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	b := s.builder()
	sel := b.Select(leadColumns...).From(b.Table(leadsTable)).Where(entsql.EQ("id", id))

	var lead *domain.Lead
	err := scanAll(ctx, s.drv, sel, func(rows *entsql.Rows) error {
		var err error
		lead, err = scanLead(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("querying lead: %w", err)
	}
	if lead == nil {
		return nil, domain.NewNotFoundError("Lead")
	}
	return lead, nil
}

// UpdateLead overwrites every mutable column of the lead.
func (s *Store) UpdateLead(ctx context.Context, lead *domain.Lead) error {
	upd := s.builder().Update(leadsTable).Where(entsql.EQ("id", lead.ID))
	values := leadValues(lead)
	for i, col := range leadColumns {
		if col == "id" || col == "created_by" || col == "created_at" {
			continue
		}
		upd.Set(col, values[i])
	}

	n, err := exec(ctx, s.drv, upd)
	if err != nil {
		return writeError(err, leadsTable, "email")
	}
	if n == 0 {
		return domain.NewNotFoundError("Lead")
	}
	return nil
}

// DeleteLead removes a lead permanently.
func (s *Store) DeleteLead(ctx context.Context, id string) error {
	n, err := exec(ctx, s.drv, s.builder().Delete(leadsTable).Where(entsql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("deleting lead: %w", err)
	}
	if n == 0 {
		return domain.NewNotFoundError("Lead")
	}
	return nil
}

// FindLeads returns one page of the leads matching cond, newest first.
func (s *Store) FindLeads(ctx context.Context, cond query.Cond, page domain.Page) ([]*domain.Lead, error) {
	b := s.builder()
	sel, err := where(b.Select(leadColumns...).From(b.Table(leadsTable)), cond)
	if err != nil {
		return nil, err
	}
	sel.OrderBy(entsql.Desc("created_at"), entsql.Asc("id")).
		Limit(page.Limit).
		Offset(page.Offset)

	leads := []*domain.Lead{}
	err = scanAll(ctx, s.drv, sel, func(rows *entsql.Rows) error {
		l, err := scanLead(rows)
		if err != nil {
			return err
		}
		leads = append(leads, l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("querying leads: %w", err)
	}
	return leads, nil
}

// CountLeads counts the leads matching cond.
func (s *Store) CountLeads(ctx context.Context, cond query.Cond) (int, error) {
	b := s.builder()
	sel, err := where(b.Select(entsql.Count("*")).From(b.Table(leadsTable)), cond)
	if err != nil {
		return 0, err
	}

	var total int
	err = scanAll(ctx, s.drv, sel, func(rows *entsql.Rows) error {
		return rows.Scan(&total)
	})
	if err != nil {
		return 0, fmt.Errorf("counting leads: %w", err)
	}
	return total, nil
}

// AggregateByStatus groups the leads matching cond by status. Only statuses
// that occur are returned.
func (s *Store) AggregateByStatus(ctx context.Context, cond query.Cond) ([]domain.StatusStat, error) {
	b := s.builder()
	sel, err := where(
		b.Select(
			"status",
			entsql.As(entsql.Count("*"), "count"),
			entsql.As(entsql.Sum("lead_value"), "total_value"),
		).From(b.Table(leadsTable)),
		cond,
	)
	if err != nil {
		return nil, err
	}
	sel.GroupBy("status")

	var stats []domain.StatusStat
	err = scanAll(ctx, s.drv, sel, func(rows *entsql.Rows) error {
		var (
			st     domain.StatusStat
			status string
			total  stdsql.NullFloat64
		)
		if err := rows.Scan(&status, &st.Count, &total); err != nil {
			return err
		}
		st.Status = domain.Status(status)
		st.TotalValue = total.Float64
		stats = append(stats, st)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("aggregating leads: %w", err)
	}
	return stats, nil
}
