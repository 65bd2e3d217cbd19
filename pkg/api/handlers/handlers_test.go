package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/leaddesk/pkg/api/middleware"
	"github.com/jordanlanch/leaddesk/pkg/auth"
	"github.com/jordanlanch/leaddesk/pkg/cache"
	"github.com/jordanlanch/leaddesk/pkg/database"
	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/leads"
	"github.com/jordanlanch/leaddesk/pkg/leadsources"
	"github.com/jordanlanch/leaddesk/pkg/models"
	"github.com/jordanlanch/leaddesk/pkg/store/sqlstore"
	"github.com/jordanlanch/leaddesk/pkg/users"
)

const testSecret = "handler-test-secret-that-is-long-enough"

type testAPI struct {
	e     *echo.Echo
	store *sqlstore.Store
	redis *miniredis.Miniredis
	users *users.Service
	admin *domain.User
	alice *domain.User
	bob   *domain.User
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared&_fk=1", name)
	client, err := database.Open(ctx, "sqlite3", dsn, database.DefaultPoolConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	store := sqlstore.New(client)

	mr := miniredis.RunT(t)
	redisClient, err := cache.NewClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { redisClient.Close() })
	blacklist := auth.NewTokenBlacklist(redisClient)

	userService := users.NewService(store, nil)
	leadService := leads.NewService(store, leads.WithCache(redisClient, 0))
	sourceService := leadsources.NewService(store)

	api := &testAPI{e: echo.New(), store: store, redis: mr, users: userService}
	api.admin, err = userService.Create(ctx, "admin@test.com", "admin123", "Ada", "Admin", domain.RoleAdmin)
	require.NoError(t, err)
	api.alice, err = userService.Create(ctx, "alice@test.com", "password123", "Alice", "Agent", domain.RoleEmployee)
	require.NoError(t, err)
	api.bob, err = userService.Create(ctx, "bob@test.com", "password123", "Bob", "Agent", domain.RoleEmployee)
	require.NoError(t, err)

	Routes{
		Auth:   NewAuthHandler(userService, AuthConfig{JWTSecret: testSecret, JWTExpirationHours: 1}, blacklist, nil, nil),
		Leads:  NewLeadHandler(leadService),
		Admin:  NewAdminHandler(userService, sourceService, leadService),
		Health: NewHealthHandler(store, redisClient),
		JWT:    middleware.JWTMiddleware(testSecret, blacklist, store),
	}.Register(api.e)

	return api
}

func (a *testAPI) token(t *testing.T, u *domain.User) string {
	t.Helper()
	token, err := auth.GenerateJWT(u, testSecret, 1)
	require.NoError(t, err)
	return token
}

// do sends a JSON request as u (anonymous when u is nil).
func (a *testAPI) do(t *testing.T, u *domain.User, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		r = strings.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if u != nil {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+a.token(t, u))
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) createLead(t *testing.T, u *domain.User, req models.CreateLeadRequest) models.LeadResponse {
	t.Helper()
	rec := a.do(t, u, http.MethodPost, "/api/leads", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var lead models.LeadResponse
	decode(t, rec, &lead)
	return lead
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest), rec.Body.String())
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	decode(t, rec, &resp)
	return resp
}

func float(v float64) *float64 { return &v }

func str(s string) *string { return &s }

func multipartFile(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}
