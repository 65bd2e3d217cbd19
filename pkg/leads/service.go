package leads

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"time"

	"github.com/jinzhu/copier"

	"github.com/jordanlanch/leaddesk/pkg/access"
	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/filter"
	"github.com/jordanlanch/leaddesk/pkg/logger"
	"github.com/jordanlanch/leaddesk/pkg/models"
	"github.com/jordanlanch/leaddesk/pkg/phone"
	"github.com/jordanlanch/leaddesk/pkg/query"
)

const (
	cachePrefix     = "leads:"
	defaultCacheTTL = 5 * time.Minute
)

// Cache is the subset of the redis client the service needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}

// Recorder receives business events for metrics.
type Recorder interface {
	LeadWritten(op string)
	LeadsImported(n int)
	CacheLookup(view string, hit bool)
}

type nopRecorder struct{}

func (nopRecorder) LeadWritten(string)       {}
func (nopRecorder) LeadsImported(int)        {}
func (nopRecorder) CacheLookup(string, bool) {}

// Service handles lead business logic
type Service struct {
	store    domain.Store
	cache    Cache
	cacheTTL time.Duration
	metrics  Recorder
	log      logger.Logger
	region   string
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCache caches list and stats responses. Every lead write drops them.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithRecorder reports lead events to r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.metrics = r }
}

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithPhoneRegion sets the region used to read phone numbers written
// without a country code.
func WithPhoneRegion(region string) Option {
	return func(s *Service) { s.region = region }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new lead service
func NewService(store domain.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		cacheTTL: defaultCacheTTL,
		metrics:  nopRecorder{},
		log:      logger.Discard(),
		region:   phone.DefaultRegion,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// condition builds the scoped query for caller from the raw filter params.
func condition(caller domain.Caller, params url.Values) (query.Cond, error) {
	preds, err := filter.Parse(params)
	if err != nil {
		return nil, err
	}
	return filter.Compile(preds, access.Scope(caller)), nil
}

// List returns one page of the leads caller may see that match the filter
// parameters in params.
func (s *Service) List(ctx context.Context, caller domain.Caller, params url.Values) (*models.LeadListResponse, error) {
	pg, err := ParsePagination(params)
	if err != nil {
		return nil, err
	}
	cond, err := condition(caller, params)
	if err != nil {
		return nil, err
	}

	key := cacheKey("list", caller, params)
	var cached models.LeadListResponse
	if s.lookup(ctx, "list", key, &cached) {
		return &cached, nil
	}

	leads, err := s.store.FindLeads(ctx, cond, domain.Page{Offset: pg.Offset(), Limit: pg.Limit})
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountLeads(ctx, cond)
	if err != nil {
		return nil, err
	}

	data, err := s.render(ctx, leads)
	if err != nil {
		return nil, err
	}

	response := &models.LeadListResponse{
		Data:       data,
		Page:       pg.Page,
		Limit:      pg.Limit,
		Total:      total,
		TotalPages: TotalPages(total, pg.Limit),
	}
	s.remember(ctx, key, response)
	return response, nil
}

// Get returns one lead. A missing lead is NOT_FOUND; a lead owned by
// someone else is FORBIDDEN.
func (s *Service) Get(ctx context.Context, caller domain.Caller, id string) (*models.LeadResponse, error) {
	lead, err := s.fetch(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return s.renderOne(ctx, lead)
}

func (s *Service) fetch(ctx context.Context, caller domain.Caller, id string) (*domain.Lead, error) {
	lead, err := s.store.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CheckLead(caller, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// render converts leads for the API, resolving assigned_to and created_by
// with a single user lookup.
func (s *Service) render(ctx context.Context, leads []*domain.Lead) ([]models.LeadResponse, error) {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; ok || id == "" {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, l := range leads {
		if l.AssignedTo != nil {
			add(*l.AssignedTo)
		}
		add(l.CreatedBy)
	}

	users := make(map[string]*domain.User, len(ids))
	if len(ids) > 0 {
		found, err := s.store.GetUsersByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			users[u.ID] = u
		}
	}

	out := make([]models.LeadResponse, 0, len(leads))
	for _, l := range leads {
		var resp models.LeadResponse
		if err := copier.Copy(&resp, l); err != nil {
			return nil, domain.NewInternalError(err)
		}
		if l.AssignedTo != nil {
			resp.AssignedToRef = userRef(users[*l.AssignedTo])
		}
		resp.CreatedByRef = userRef(users[l.CreatedBy])
		out = append(out, resp)
	}
	return out, nil
}

func (s *Service) renderOne(ctx context.Context, lead *domain.Lead) (*models.LeadResponse, error) {
	out, err := s.render(ctx, []*domain.Lead{lead})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func userRef(u *domain.User) *models.UserRef {
	if u == nil {
		return nil
	}
	return &models.UserRef{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

// cacheKey hashes everything that shapes a response: the view, the
// caller's visibility and the raw query.
func cacheKey(view string, caller domain.Caller, params url.Values) string {
	scope := "all"
	if !caller.IsAdmin() {
		scope = "user:" + caller.ID
	}
	sum := sha256.Sum256([]byte(scope + "?" + params.Encode()))
	return cachePrefix + view + ":" + hex.EncodeToString(sum[:])
}

func (s *Service) lookup(ctx context.Context, view, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit := s.cache.GetJSON(ctx, key, dest) == nil
	s.metrics.CacheLookup(view, hit)
	return hit
}

func (s *Service) remember(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache lead response", "key", key, "error", err)
	}
}

// InvalidateCache drops every cached list and stats response.
func (s *Service) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, cachePrefix+"*"); err != nil {
		s.log.Warn("failed to invalidate lead cache", "error", err)
	}
}
