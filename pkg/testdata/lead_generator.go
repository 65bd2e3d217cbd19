// Package testdata generates realistic fake leads for seeding and tests.
package testdata

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/leads"
)

// LeadGeneratorConfig configures lead generation parameters
type LeadGeneratorConfig struct {
	Count int
	// Seed makes the output reproducible. Zero picks a random seed.
	Seed int64
	// Assignees receive leads round-robin. Empty leaves leads unassigned.
	Assignees []string
	CreatedBy string
	// Leads are created at random instants within Window before Now.
	Now    time.Time
	Window time.Duration
	// QualifiedChance is the probability of a lead in an early pipeline
	// stage being flagged as qualified.
	QualifiedChance float64
	PhoneRegion     string
}

// DefaultConfig returns the settings the seed command uses.
func DefaultConfig(count int, createdBy string, assignees []string) LeadGeneratorConfig {
	return LeadGeneratorConfig{
		Count:           count,
		Assignees:       assignees,
		CreatedBy:       createdBy,
		Now:             time.Now().UTC(),
		Window:          90 * 24 * time.Hour,
		QualifiedChance: 0.3,
		PhoneRegion:     "US",
	}
}

// Cities is the pool of locations leads are spread across.
var Cities = []struct{ City, State string }{
	{"Springfield", "IL"}, {"Austin", "TX"}, {"Denver", "CO"}, {"Portland", "OR"},
	{"Miami", "FL"}, {"Seattle", "WA"}, {"Boston", "MA"}, {"Chicago", "IL"},
	{"Palm Springs", "CA"}, {"Nashville", "TN"}, {"Phoenix", "AZ"}, {"Atlanta", "GA"},
}

var emailDomains = []string{"example.com", "mail.test", "inbox.test", "corp.test"}

// GenerateLead creates a single lead with realistic data. n keeps emails
// unique across a batch.
func GenerateLead(f *gofakeit.Faker, config LeadGeneratorConfig, n int) *domain.Lead {
	first := f.FirstName()
	last := f.LastName()
	loc := Cities[f.Number(0, len(Cities)-1)]

	created := config.Now.Add(-fraction(f, config.Window)).UTC().Truncate(time.Millisecond)

	status := domain.Statuses[f.Number(0, len(domain.Statuses)-1)]
	source := domain.Sources[f.Number(0, len(domain.Sources)-1)]

	l := &domain.Lead{
		ID:        uuid.NewString(),
		FirstName: first,
		LastName:  last,
		Email:     fmt.Sprintf("%s.%s.%d@%s", slug(first), slug(last), n, emailDomains[n%len(emailDomains)]),
		Phone:     f.Phone(),
		Company:   f.Company(),
		City:      loc.City,
		State:     loc.State,
		Source:    source,
		Status:    status,
		Score:     float64(f.Number(0, 100)),
		LeadValue: math.Round(f.Float64Range(500, 50000)*100) / 100,
		CreatedBy: config.CreatedBy,
		CreatedAt: created,
		UpdatedAt: created,
	}

	switch status {
	case domain.StatusQualified, domain.StatusWon:
		l.IsQualified = true
	case domain.StatusNew, domain.StatusContacted:
		l.IsQualified = f.Float64Range(0, 1) < config.QualifiedChance
	}

	// Leads past the first stage have been touched since they arrived.
	if status != domain.StatusNew {
		activity := created.Add(fraction(f, config.Now.Sub(created))).Truncate(time.Millisecond)
		if activity.Before(created) {
			activity = created
		}
		l.LastActivityAt = &activity
		l.UpdatedAt = activity
	}

	if len(config.Assignees) > 0 {
		owner := config.Assignees[n%len(config.Assignees)]
		l.AssignedTo = &owner
	}

	leads.Normalize(l, config.PhoneRegion)
	return l
}

// fraction returns a random duration in [0, d).
func fraction(f *gofakeit.Faker, d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(f.Float64Range(0, 1) * float64(d))
}

func slug(name string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) && r < unicode.MaxASCII {
			return unicode.ToLower(r)
		}
		return -1
	}, name)
	if s == "" {
		return "lead"
	}
	return s
}

// GenerateLeads creates config.Count leads that all pass lead validation.
func GenerateLeads(config LeadGeneratorConfig) ([]*domain.Lead, error) {
	f := gofakeit.New(config.Seed)
	out := make([]*domain.Lead, 0, config.Count)
	for i := 0; i < config.Count; i++ {
		l := GenerateLead(f, config, i)
		if err := leads.Validate(l); err != nil {
			return nil, fmt.Errorf("generated lead %d is invalid: %w", i, err)
		}
		out = append(out, l)
	}
	return out, nil
}

// BulkInsertLeads inserts leads in batches for performance
func BulkInsertLeads(ctx context.Context, repo domain.LeadRepository, all []*domain.Lead, batchSize int) error {
	if batchSize <= 0 {
		batchSize = len(all)
	}
	for i := 0; i < len(all); i += batchSize {
		end := i + batchSize
		if end > len(all) {
			end = len(all)
		}

		if err := repo.InsertLeads(ctx, all[i:end]); err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}
