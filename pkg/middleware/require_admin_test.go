package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name   string
		role   any
		status int
	}{
		{"admin", "admin", http.StatusOK},
		{"employee", "employee", http.StatusForbidden},
		{"no role", nil, http.StatusUnauthorized},
		{"empty role", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/admin/employees", nil), rec)
			if tt.role != nil {
				c.Set("user_role", tt.role)
			}

			handler := RequireAdmin()(func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			})
			assert.NoError(t, handler(c))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
