package domain

import "time"

// Status is a stage of the sales pipeline.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusLost      Status = "lost"
	StatusWon       Status = "won"
)

// Statuses lists every pipeline stage in pipeline order.
var Statuses = []Status{StatusNew, StatusContacted, StatusQualified, StatusLost, StatusWon}

// Source is the channel a lead came in through.
type Source string

const (
	SourceWebsite     Source = "website"
	SourceFacebookAds Source = "facebook_ads"
	SourceGoogleAds   Source = "google_ads"
	SourceReferral    Source = "referral"
	SourceEvents      Source = "events"
	SourceOther       Source = "other"
)

// Sources lists every accepted lead source.
var Sources = []Source{SourceWebsite, SourceFacebookAds, SourceGoogleAds, SourceReferral, SourceEvents, SourceOther}

// Lead is a prospective customer tracked through the pipeline.
type Lead struct {
	ID             string     `bson:"_id"`
	FirstName      string     `bson:"first_name" validate:"required,max=100"`
	LastName       string     `bson:"last_name" validate:"required,max=100"`
	Email          string     `bson:"email" validate:"required,email,max=254"`
	Phone          string     `bson:"phone" validate:"max=50"`
	Company        string     `bson:"company" validate:"max=200"`
	City           string     `bson:"city" validate:"max=100"`
	State          string     `bson:"state" validate:"max=100"`
	Source         Source     `bson:"source" validate:"omitempty,oneof=website facebook_ads google_ads referral events other"`
	Status         Status     `bson:"status" validate:"required,oneof=new contacted qualified lost won"`
	Score          float64    `bson:"score" validate:"finite,gte=0,lte=100"`
	LeadValue      float64    `bson:"lead_value" validate:"finite"`
	LastActivityAt *time.Time `bson:"last_activity_at"`
	IsQualified    bool       `bson:"is_qualified"`
	AssignedTo     *string    `bson:"assigned_to"`
	CreatedBy      string     `bson:"created_by" validate:"required"`
	CreatedAt      time.Time  `bson:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at" validate:"gtefield=CreatedAt"`
}

// IsAssignedTo reports whether userID is the lead's assignee.
func (l *Lead) IsAssignedTo(userID string) bool {
	return l.AssignedTo != nil && *l.AssignedTo == userID
}

// StatusStat is one row of the per-status aggregate.
type StatusStat struct {
	Status     Status  `json:"status" bson:"_id"`
	Count      int     `json:"count" bson:"count"`
	TotalValue float64 `json:"totalValue" bson:"total_value"`
}

// LeadSource is an entry of the admin-managed source catalog.
type LeadSource struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	IsActive    bool      `bson:"is_active"`
	CreatedAt   time.Time `bson:"created_at"`
}
