package leads

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/models"
	"github.com/jordanlanch/leaddesk/pkg/query"
)

// Import creates one lead per row, all or nothing. Every row passes the
// same validation as Create and is attributed to the importing admin. Any
// failing row rejects the whole file with row-qualified details.
func (s *Service) Import(ctx context.Context, caller domain.Caller, rows []models.ImportRow) (int, error) {
	if !caller.IsAdmin() {
		return 0, domain.NewForbiddenError("Admin access required")
	}
	if len(rows) == 0 {
		return 0, domain.NewValidationError("file", "file contains no lead rows")
	}

	known, err := s.knownUsers(ctx, rows)
	if err != nil {
		return 0, err
	}

	var bad []domain.FieldError
	reject := func(line int, field, msg, value string) {
		bad = append(bad, domain.FieldError{
			Field:   fmt.Sprintf("row %d.%s", line, field),
			Message: msg,
			Value:   value,
		})
	}

	leads := make([]*domain.Lead, 0, len(rows))
	lineOf := make(map[string]int, len(rows))
	for _, row := range rows {
		lead := s.newLead(row.Lead, caller.ID)
		if row.Lead.AssignedTo != nil {
			if id := strings.TrimSpace(*row.Lead.AssignedTo); id != "" {
				if _, ok := known[id]; !ok {
					reject(row.Line, "assigned_to", "assigned user does not exist", id)
				}
				lead.AssignedTo = &id
			}
		}

		if err := Validate(lead); err != nil {
			de, ok := domain.AsDomainError(err)
			if !ok {
				return 0, err
			}
			for _, d := range de.Details {
				reject(row.Line, d.Field, d.Message, d.Value)
			}
		}

		if lead.Email != "" {
			if first, dup := lineOf[lead.Email]; dup {
				reject(row.Line, "email", fmt.Sprintf("email duplicates row %d", first), lead.Email)
			} else {
				lineOf[lead.Email] = row.Line
			}
		}
		leads = append(leads, lead)
	}

	existing, err := s.existingEmails(ctx, lineOf)
	if err != nil {
		return 0, err
	}
	for _, email := range existing {
		reject(lineOf[email], "email", "email already exists", email)
	}

	if len(bad) > 0 {
		return 0, domain.NewValidationErrors(bad)
	}

	if err := s.store.InsertLeads(ctx, leads); err != nil {
		return 0, err
	}

	s.metrics.LeadsImported(len(leads))
	s.log.Info("leads imported", "count", len(leads), "admin_id", caller.ID)
	s.InvalidateCache(ctx)
	return len(leads), nil
}

// knownUsers looks up the distinct assignees named in rows.
func (s *Service) knownUsers(ctx context.Context, rows []models.ImportRow) (map[string]struct{}, error) {
	var ids []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		if row.Lead.AssignedTo == nil {
			continue
		}
		id := strings.TrimSpace(*row.Lead.AssignedTo)
		if _, dup := seen[id]; id == "" || dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	known := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return known, nil
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		known[u.ID] = struct{}{}
	}
	return known, nil
}

// lookupBatchSize bounds how many values a single IN lookup binds.
const lookupBatchSize = 500

// existingEmails returns which of the given emails are already stored,
// ordered by the line that introduced them.
func (s *Service) existingEmails(ctx context.Context, lineOf map[string]int) ([]string, error) {
	if len(lineOf) == 0 {
		return nil, nil
	}
	emails := make([]any, 0, len(lineOf))
	for email := range lineOf {
		emails = append(emails, email)
	}
	var out []string
	for start := 0; start < len(emails); start += lookupBatchSize {
		batch := emails[start:min(start+lookupBatchSize, len(emails))]
		found, err := s.store.FindLeads(ctx, query.In{Field: "email", Values: batch}, domain.Page{Limit: len(batch)})
		if err != nil {
			return nil, err
		}
		for _, l := range found {
			out = append(out, l.Email)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lineOf[out[i]] < lineOf[out[j]] })
	return out, nil
}
