package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/leaddesk/pkg/auth"
	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/models"
)

// Context keys set by the JWT middleware.
const (
	KeyToken     = "token"
	KeyUserID    = "user_id"
	KeyUserEmail = "user_email"
	KeyUserRole  = "user_role"
)

// UserLookup finds the account behind a token.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

func unauthenticated(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

// JWTMiddleware creates a JWT authentication middleware. The role placed on
// the context comes from the stored account, so a deleted user or a role
// change takes effect before the token expires. Blacklist may be nil.
func JWTMiddleware(secret string, blacklist *auth.TokenBlacklist, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthenticated(c, "Unauthenticated")
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return unauthenticated(c, "Authorization header must be 'Bearer {token}'")
			}
			token := parts[1]

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			claims, err := auth.ValidateJWTWithBlacklist(ctx, token, secret, blacklist)
			if err != nil {
				return unauthenticated(c, "Invalid or expired token")
			}

			u, err := users.GetUser(ctx, claims.UserID)
			if err != nil {
				if domain.IsNotFound(err) {
					return unauthenticated(c, "User account not found")
				}
				return err
			}

			c.Set(KeyToken, token)
			c.Set(KeyUserID, u.ID)
			c.Set(KeyUserEmail, u.Email)
			c.Set(KeyUserRole, string(u.Role))

			return next(c)
		}
	}
}

// CallerFrom returns the identity the JWT middleware stored on c.
func CallerFrom(c echo.Context) (domain.Caller, bool) {
	id, ok := c.Get(KeyUserID).(string)
	if !ok || id == "" {
		return domain.Caller{}, false
	}
	role, _ := c.Get(KeyUserRole).(string)
	return domain.Caller{ID: id, Role: domain.Role(role)}, true
}
