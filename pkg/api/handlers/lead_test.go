package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/models"
)

func leadReq(n int) models.CreateLeadRequest {
	return models.CreateLeadRequest{
		FirstName: "Lead",
		LastName:  fmt.Sprint(n),
		Email:     fmt.Sprintf("lead%d@example.com", n),
		City:      "Austin",
		Source:    "website",
	}
}

func (a *testAPI) list(t *testing.T, u *domain.User, query string) models.LeadListResponse {
	t.Helper()
	rec := a.do(t, u, http.MethodGet, "/api/leads?"+query, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp models.LeadListResponse
	decode(t, rec, &resp)
	return resp
}

func TestLeads_RequireAuthentication(t *testing.T) {
	api := setupTestAPI(t)

	for _, path := range []string{"/api/leads", "/api/leads/stats", "/api/leads/some-id"} {
		rec := api.do(t, nil, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "Unauthenticated", errorOf(t, rec).Message)
	}
}

func TestLeads_CreateByEmployee(t *testing.T) {
	api := setupTestAPI(t)

	req := leadReq(1)
	req.Email = "  Mixed.Case@Example.com "
	req.Score = float(42)
	lead := api.createLead(t, api.alice, req)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "mixed.case@example.com", lead.Email)
	assert.Equal(t, domain.StatusNew, lead.Status)
	assert.Equal(t, 42.0, lead.Score)
	require.NotNil(t, lead.AssignedToRef)
	assert.Equal(t, api.alice.ID, lead.AssignedToRef.ID)
	assert.Equal(t, "Alice", lead.AssignedToRef.FirstName)
	require.NotNil(t, lead.CreatedByRef)
	assert.Equal(t, api.alice.ID, lead.CreatedByRef.ID)
}

func TestLeads_CreateRejectsInvalidLead(t *testing.T) {
	api := setupTestAPI(t)

	req := leadReq(1)
	req.Email = "not-an-email"
	req.Score = float(150)
	rec := api.do(t, api.admin, http.MethodPost, "/api/leads", req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := errorOf(t, rec)
	assert.Equal(t, "validation_error", resp.Error)
	fields := make([]string, 0, len(resp.Details))
	for _, d := range resp.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"email", "score"}, fields)
}

func TestLeads_CreateMalformedBody(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(t, api.admin, http.MethodPost, "/api/leads", `{"first_name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", errorOf(t, rec).Error)
}

func TestLeads_EmployeeCannotAssignOthers(t *testing.T) {
	api := setupTestAPI(t)

	req := leadReq(1)
	req.AssignedTo = str(api.bob.ID)
	rec := api.do(t, api.alice, http.MethodPost, "/api/leads", req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLeads_DuplicateEmailLeavesExistingUnchanged(t *testing.T) {
	api := setupTestAPI(t)

	original := api.createLead(t, api.admin, leadReq(1))

	dup := leadReq(1)
	dup.FirstName = "Impostor"
	dup.Email = "LEAD1@example.com"
	rec := api.do(t, api.admin, http.MethodPost, "/api/leads", dup)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := errorOf(t, rec)
	assert.Equal(t, "validation_error", resp.Error)
	assert.Equal(t, "email", resp.Field)

	rec = api.do(t, api.admin, http.MethodGet, "/api/leads/"+original.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stored models.LeadResponse
	decode(t, rec, &stored)
	assert.Equal(t, "Lead", stored.FirstName)
	assert.Equal(t, 1, api.list(t, api.admin, "").Total)
}

func TestLeads_GetOwnership(t *testing.T) {
	api := setupTestAPI(t)

	lead := api.createLead(t, api.alice, leadReq(1))

	tests := []struct {
		name   string
		user   *domain.User
		id     string
		status int
	}{
		{"owner", api.alice, lead.ID, http.StatusOK},
		{"admin", api.admin, lead.ID, http.StatusOK},
		{"other employee", api.bob, lead.ID, http.StatusForbidden},
		{"missing lead", api.bob, "does-not-exist", http.StatusNotFound},
		{"missing lead as admin", api.admin, "does-not-exist", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, tt.user, http.MethodGet, "/api/leads/"+tt.id, nil)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestLeads_ListPagination(t *testing.T) {
	api := setupTestAPI(t)
	for i := 1; i <= 5; i++ {
		api.createLead(t, api.admin, leadReq(i))
	}

	resp := api.list(t, api.admin, "page=2&limit=2")
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.Limit)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 3, resp.TotalPages)

	resp = api.list(t, api.admin, "page=3&limit=2")
	assert.Len(t, resp.Data, 1)

	resp = api.list(t, api.admin, "")
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Len(t, resp.Data, 5)
	for i := 1; i < len(resp.Data); i++ {
		assert.False(t, resp.Data[i].CreatedAt.After(resp.Data[i-1].CreatedAt), "newest first")
	}
}

func TestLeads_ListRejectsBadPagination(t *testing.T) {
	api := setupTestAPI(t)

	for _, q := range []string{"page=0", "limit=-1", "limit=abc", "page=1.5"} {
		rec := api.do(t, api.admin, http.MethodGet, "/api/leads?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.Equal(t, "invalid_pagination", errorOf(t, rec).Error, q)
	}
}

func TestLeads_ListRejectsMalformedFilter(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(t, api.admin, http.MethodGet, "/api/leads?score_gt=high&status_in=new,closed", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := errorOf(t, rec)
	assert.Equal(t, "invalid_filter_value", resp.Error)
	assert.Len(t, resp.Details, 2)
}

func TestLeads_EmployeeScopeIsNotOverridable(t *testing.T) {
	api := setupTestAPI(t)
	for i := 1; i <= 3; i++ {
		api.createLead(t, api.alice, leadReq(i))
	}
	api.createLead(t, api.bob, leadReq(10))

	for _, q := range []string{"", "status_in=new", "assigned_to=" + api.alice.ID, "city_contains=aus"} {
		resp := api.list(t, api.bob, q)
		require.Len(t, resp.Data, 1, q)
		for _, l := range resp.Data {
			require.NotNil(t, l.AssignedToRef)
			assert.Equal(t, api.bob.ID, l.AssignedToRef.ID, q)
		}
	}

	assert.Equal(t, 4, api.list(t, api.admin, "").Total)
}

func TestLeads_StatusAndScoreFilters(t *testing.T) {
	api := setupTestAPI(t)
	cases := []struct {
		status string
		score  float64
	}{
		{"new", 10}, {"won", 20}, {"lost", 50}, {"new", 80}, {"contacted", 90},
	}
	for i, c := range cases {
		req := leadReq(i)
		req.Status = c.status
		req.Score = float(c.score)
		api.createLead(t, api.admin, req)
	}

	resp := api.list(t, api.admin, "status_in=new,won")
	assert.Equal(t, 3, resp.Total)
	for _, l := range resp.Data {
		assert.Contains(t, []domain.Status{domain.StatusNew, domain.StatusWon}, l.Status)
	}

	resp = api.list(t, api.admin, "score_between=20,80")
	assert.Equal(t, 3, resp.Total)
	for _, l := range resp.Data {
		assert.GreaterOrEqual(t, l.Score, 20.0)
		assert.LessOrEqual(t, l.Score, 80.0)
	}

	resp = api.list(t, api.admin, "score_gt=15&score_lt=85")
	assert.Equal(t, 3, resp.Total)
}

func TestLeads_CityContainsAndScoreForAdmin(t *testing.T) {
	api := setupTestAPI(t)
	cases := []struct {
		city  string
		score float64
		owner *domain.User
	}{
		{"Springfield", 60, api.alice},
		{"Palm SPRINGS", 75, api.bob},
		{"Springfield", 50, api.alice},
		{"Austin", 99, api.bob},
	}
	for i, c := range cases {
		req := leadReq(i)
		req.City = c.city
		req.Score = float(c.score)
		req.AssignedTo = str(c.owner.ID)
		api.createLead(t, api.admin, req)
	}

	resp := api.list(t, api.admin, "city_contains=spring&score_gt=50")
	require.Equal(t, 2, resp.Total)
	for _, l := range resp.Data {
		assert.Contains(t, strings.ToLower(l.City), "spring")
		assert.Greater(t, l.Score, 50.0)
	}
}

func TestLeads_StatsMatchListTotal(t *testing.T) {
	api := setupTestAPI(t)
	statuses := []string{"new", "new", "won", "lost", "qualified"}
	for i, st := range statuses {
		req := leadReq(i)
		req.Status = st
		req.LeadValue = float(100)
		owner := api.alice
		if i%2 == 1 {
			owner = api.bob
		}
		req.AssignedTo = str(owner.ID)
		api.createLead(t, api.admin, req)
	}

	for _, u := range []*domain.User{api.admin, api.alice, api.bob} {
		rec := api.do(t, u, http.MethodGet, "/api/leads/stats", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var stats []domain.StatusStat
		decode(t, rec, &stats)

		sum := 0
		for _, s := range stats {
			assert.Positive(t, s.Count)
			sum += s.Count
		}
		assert.Equal(t, api.list(t, u, "").Total, sum, u.Email)
	}

	rec := api.do(t, api.admin, http.MethodGet, "/api/leads/stats?status_in=new", nil)
	var stats []domain.StatusStat
	decode(t, rec, &stats)
	require.Len(t, stats, 1)
	assert.Equal(t, domain.StatusNew, stats[0].Status)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, 200.0, stats[0].TotalValue)
}

func TestLeads_Update(t *testing.T) {
	api := setupTestAPI(t)
	lead := api.createLead(t, api.alice, leadReq(1))

	rec := api.do(t, api.alice, http.MethodPut, "/api/leads/"+lead.ID, map[string]interface{}{
		"status":  "contacted",
		"company": "Acme",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.LeadResponse
	decode(t, rec, &updated)
	assert.Equal(t, domain.StatusContacted, updated.Status)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, lead.Email, updated.Email)
	assert.False(t, updated.UpdatedAt.Before(lead.UpdatedAt))

	rec = api.do(t, api.bob, http.MethodPut, "/api/leads/"+lead.ID, map[string]string{"status": "won"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, api.alice, http.MethodPut, "/api/leads/"+lead.ID, map[string]string{"assigned_to": api.bob.ID})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, api.alice, http.MethodPut, "/api/leads/"+lead.ID, map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, api.admin, http.MethodPut, "/api/leads/missing", map[string]string{"status": "won"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeads_Delete(t *testing.T) {
	api := setupTestAPI(t)
	lead := api.createLead(t, api.alice, leadReq(1))

	rec := api.do(t, api.bob, http.MethodDelete, "/api/leads/"+lead.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, api.alice, http.MethodDelete, "/api/leads/"+lead.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msg models.MessageResponse
	decode(t, rec, &msg)
	assert.Equal(t, "Lead deleted", msg.Message)

	rec = api.do(t, api.alice, http.MethodGet, "/api/leads/"+lead.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, api.alice, http.MethodDelete, "/api/leads/"+lead.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeads_ListCacheDroppedOnWrite(t *testing.T) {
	api := setupTestAPI(t)
	api.createLead(t, api.admin, leadReq(1))

	assert.Equal(t, 1, api.list(t, api.admin, "").Total)
	assert.NotEmpty(t, api.redis.Keys())

	api.createLead(t, api.admin, leadReq(2))
	assert.Equal(t, 2, api.list(t, api.admin, "").Total)
}
