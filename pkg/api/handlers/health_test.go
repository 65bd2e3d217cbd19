package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	up   = pingFunc(func(context.Context) error { return nil })
	down = pingFunc(func(context.Context) error { return errors.New("connection refused") })
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		storage  Pinger
		cache    Pinger
		status   int
		database string
		cacheSt  string
	}{
		{"all up", up, up, http.StatusOK, `"database":"up"`, `"cache":"up"`},
		{"cache disabled", up, nil, http.StatusOK, `"database":"up"`, `"cache":"disabled"`},
		{"database down", down, up, http.StatusServiceUnavailable, `"database":"down"`, `"cache":"up"`},
		{"cache down", up, down, http.StatusServiceUnavailable, `"database":"up"`, `"cache":"down"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.storage, tt.cache)
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

			assert.NoError(t, h.Health(c))
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.database)
			assert.Contains(t, rec.Body.String(), tt.cacheSt)
		})
	}
}

func TestHealth_Routed(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.do(t, nil, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	api.redis.SetError("server down")
	rec = api.do(t, nil, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
