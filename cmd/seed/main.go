package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/jordanlanch/leaddesk/config"
	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/leadsources"
	"github.com/jordanlanch/leaddesk/pkg/logger"
	"github.com/jordanlanch/leaddesk/pkg/models"
	"github.com/jordanlanch/leaddesk/pkg/store"
	"github.com/jordanlanch/leaddesk/pkg/testdata"
	"github.com/jordanlanch/leaddesk/pkg/users"
)

const (
	adminEmail       = "admin@test.com"
	adminPassword    = "admin123"
	employeePassword = "password123"
	leadCount        = 150
)

var employees = []struct{ Email, First, Last string }{
	{"maria@test.com", "Maria", "Lopez"},
	{"james@test.com", "James", "Carter"},
	{"sofia@test.com", "Sofia", "Reyes"},
}

var sourceCatalog = []models.LeadSourceRequest{
	{Name: "website", Description: "Inbound forms on the company website"},
	{Name: "facebook_ads", Description: "Facebook and Instagram campaigns"},
	{Name: "google_ads", Description: "Search and display campaigns"},
	{Name: "referral", Description: "Introductions from customers and partners"},
	{Name: "events", Description: "Trade shows, meetups and webinars"},
	{Name: "other", Description: "Anything else"},
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Printf("🔧 Loaded .env file")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open storage: %v", err)
	}
	defer db.Close()

	if err := seed(ctx, db, testdata.DefaultConfig(leadCount, "", nil)); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
	log.Printf("✅ Seed complete. Log in as %s / %s", adminEmail, adminPassword)
}

// seed fills an empty database with the demo accounts, the source catalog
// and fake leads. It refuses to run twice against the same data.
func seed(ctx context.Context, db domain.Store, leadCfg testdata.LeadGeneratorConfig) error {
	userService := users.NewService(db, logger.Discard())

	if _, err := db.GetUserByEmail(ctx, adminEmail); err == nil {
		log.Printf("ℹ️  %s already exists, nothing to do", adminEmail)
		return nil
	} else if !domain.IsNotFound(err) {
		return err
	}

	admin, err := userService.Create(ctx, adminEmail, adminPassword, "Admin", "User", domain.RoleAdmin)
	if err != nil {
		return err
	}
	log.Printf("👤 Created admin %s", admin.Email)

	assignees := make([]string, 0, len(employees))
	for _, e := range employees {
		u, err := userService.CreateEmployee(ctx, models.CreateEmployeeRequest{
			Email:     e.Email,
			Password:  employeePassword,
			FirstName: e.First,
			LastName:  e.Last,
		})
		if err != nil {
			return err
		}
		assignees = append(assignees, u.ID)
		log.Printf("👤 Created employee %s", u.Email)
	}

	sourceService := leadsources.NewService(db)
	for _, src := range sourceCatalog {
		if _, err := sourceService.Create(ctx, src); err != nil {
			return err
		}
	}
	log.Printf("📇 Created %d lead sources", len(sourceCatalog))

	leadCfg.CreatedBy = admin.ID
	leadCfg.Assignees = assignees
	all, err := testdata.GenerateLeads(leadCfg)
	if err != nil {
		return err
	}
	if err := testdata.BulkInsertLeads(ctx, db, all, 50); err != nil {
		return err
	}
	log.Printf("📈 Created %d leads", len(all))
	return nil
}
