// Package mongostore implements domain.Store on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/query"
)

// Store persists leads, users and lead sources in MongoDB collections.
type Store struct {
	client  *mongo.Client
	leads   *mongo.Collection
	users   *mongo.Collection
	sources *mongo.Collection
}

var _ domain.Store = (*Store)(nil)

// Connect opens a client, checks it with a ping and creates the indexes.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed connecting to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed pinging mongodb: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:  client,
		leads:   db.Collection("leads"),
		users:   db.Collection("users"),
		sources: db.Collection("lead_sources"),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Printf("✅ MongoDB connected (database: %s)", database)
	return s, nil
}

// Indexes lists the index models of every collection, keyed by collection.
func Indexes() map[string][]mongo.IndexModel {
	unique := options.Index().SetUnique(true)
	return map[string][]mongo.IndexModel{
		"leads": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "source", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		},
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"lead_sources": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
	}
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	colls := map[string]*mongo.Collection{"leads": s.leads, "users": s.users, "lead_sources": s.sources}
	for name, models := range Indexes() {
		if _, err := colls[name].Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating %s indexes: %w", name, err)
		}
	}
	return nil
}

// Ping checks that the primary answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func writeError(err error, coll, uniqueField string) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.NewDuplicateError(uniqueField, err)
	}
	return fmt.Errorf("writing %s: %w", coll, err)
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, resource string) (*T, error) {
	var out T
	err := coll.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFoundError(resource)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", resource, err)
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]*T, error) {
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := []*T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func checkMatched(n int64, resource string) error {
	if n == 0 {
		return domain.NewNotFoundError(resource)
	}
	return nil
}

// Leads

// CreateLead inserts a single lead.
func (s *Store) CreateLead(ctx context.Context, lead *domain.Lead) error {
	if _, err := s.leads.InsertOne(ctx, lead); err != nil {
		return writeError(err, "leads", "email")
	}
	return nil
}

// InsertLeads inserts every lead or, when any insert fails, removes the ones
// that were already written.
func (s *Store) InsertLeads(ctx context.Context, leads []*domain.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	docs := make([]interface{}, len(leads))
	ids := make(bson.A, len(leads))
	for i, l := range leads {
		docs[i] = l
		ids[i] = l.ID
	}

	_, err := s.leads.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err == nil {
		return nil
	}
	if _, derr := s.leads.DeleteMany(context.WithoutCancel(ctx), bson.M{"_id": bson.M{"$in": ids}}); derr != nil {
		log.Printf("❌ failed removing partially imported leads: %v", derr)
	}
	return writeError(err, "leads", "email")
}

// GetLead loads a lead by id.
func (s *Store) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	return findOne[domain.Lead](ctx, s.leads, bson.M{"_id": id}, "Lead")
}

// UpdateLead replaces the stored lead document.
func (s *Store) UpdateLead(ctx context.Context, lead *domain.Lead) error {
	res, err := s.leads.ReplaceOne(ctx, bson.M{"_id": lead.ID}, lead)
	if err != nil {
		return writeError(err, "leads", "email")
	}
	return checkMatched(res.MatchedCount, "Lead")
}

// DeleteLead removes a lead permanently.
func (s *Store) DeleteLead(ctx context.Context, id string) error {
	res, err := s.leads.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting lead: %w", err)
	}
	return checkMatched(res.DeletedCount, "Lead")
}

// FindLeads returns one page of the leads matching cond, newest first.
func (s *Store) FindLeads(ctx context.Context, cond query.Cond, page domain.Page) ([]*domain.Lead, error) {
	filter, err := Filter(cond)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(page.Offset)).
		SetLimit(int64(page.Limit))

	leads, err := findAll[domain.Lead](ctx, s.leads, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("querying leads: %w", err)
	}
	return leads, nil
}

// CountLeads counts the leads matching cond.
func (s *Store) CountLeads(ctx context.Context, cond query.Cond) (int, error) {
	filter, err := Filter(cond)
	if err != nil {
		return 0, err
	}
	n, err := s.leads.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("counting leads: %w", err)
	}
	return int(n), nil
}

// StatsPipeline builds the aggregation that groups matching leads by status.
func StatsPipeline(filter bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_value", Value: bson.D{{Key: "$sum", Value: "$lead_value"}}},
		}}},
	}
}

// AggregateByStatus groups the leads matching cond by status.
func (s *Store) AggregateByStatus(ctx context.Context, cond query.Cond) ([]domain.StatusStat, error) {
	filter, err := Filter(cond)
	if err != nil {
		return nil, err
	}
	cur, err := s.leads.Aggregate(ctx, StatsPipeline(filter))
	if err != nil {
		return nil, fmt.Errorf("aggregating leads: %w", err)
	}
	var stats []domain.StatusStat
	if err := cur.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("decoding lead stats: %w", err)
	}
	return stats, nil
}

// Users

// CreateUser inserts a user.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		return writeError(err, "users", "email")
	}
	return nil
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return findOne[domain.User](ctx, s.users, bson.M{"_id": id}, "User")
}

// GetUserByEmail loads a user by email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, s.users, bson.M{"email": email}, "User")
}

// GetUsersByIDs loads the users with the given ids. Unknown ids are skipped.
func (s *Store) GetUsersByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	users, err := findAll[domain.User](ctx, s.users, bson.M{"_id": bson.M{"$in": ids}}, nil)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	return users, nil
}

// ListUsers lists users with the given role, or every user when role is empty.
func (s *Store) ListUsers(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	users, err := findAll[domain.User](ctx, s.users, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	return users, nil
}

// UpdateUser replaces the stored user document.
func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	res, err := s.users.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return writeError(err, "users", "email")
	}
	return checkMatched(res.MatchedCount, "User")
}

// DeleteUser removes a user.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return checkMatched(res.DeletedCount, "User")
}

// Lead sources

// CreateLeadSource inserts a catalog entry.
func (s *Store) CreateLeadSource(ctx context.Context, src *domain.LeadSource) error {
	if _, err := s.sources.InsertOne(ctx, src); err != nil {
		return writeError(err, "lead_sources", "name")
	}
	return nil
}

// GetLeadSource loads a catalog entry by id.
func (s *Store) GetLeadSource(ctx context.Context, id string) (*domain.LeadSource, error) {
	return findOne[domain.LeadSource](ctx, s.sources, bson.M{"_id": id}, "Lead source")
}

// ListLeadSources returns the whole catalog ordered by name.
func (s *Store) ListLeadSources(ctx context.Context) ([]*domain.LeadSource, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	sources, err := findAll[domain.LeadSource](ctx, s.sources, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying lead sources: %w", err)
	}
	return sources, nil
}

// UpdateLeadSource replaces the stored catalog entry.
func (s *Store) UpdateLeadSource(ctx context.Context, src *domain.LeadSource) error {
	res, err := s.sources.ReplaceOne(ctx, bson.M{"_id": src.ID}, src)
	if err != nil {
		return writeError(err, "lead_sources", "name")
	}
	return checkMatched(res.MatchedCount, "Lead source")
}

// DeleteLeadSource removes a catalog entry.
func (s *Store) DeleteLeadSource(ctx context.Context, id string) error {
	res, err := s.sources.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting lead source: %w", err)
	}
	return checkMatched(res.DeletedCount, "Lead source")
}
