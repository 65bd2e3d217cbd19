package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/leaddesk/pkg/api/errors"
	"github.com/jordanlanch/leaddesk/pkg/api/middleware"
	"github.com/jordanlanch/leaddesk/pkg/auth"
	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/logger"
	"github.com/jordanlanch/leaddesk/pkg/models"
	"github.com/jordanlanch/leaddesk/pkg/users"
)

// LoginRecorder counts sign-in attempts.
type LoginRecorder interface {
	RecordLoginAttempt(success bool)
}

// AuthConfig carries the token settings of the auth endpoints.
type AuthConfig struct {
	JWTSecret          string
	JWTExpirationHours int
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	userService *users.Service
	config      AuthConfig
	blacklist   *auth.TokenBlacklist
	metrics     LoginRecorder
	log         logger.Logger
	validator   *validator.Validate
}

// NewAuthHandler creates a new auth handler. blacklist and metrics may be nil.
func NewAuthHandler(userService *users.Service, cfg AuthConfig, blacklist *auth.TokenBlacklist, metrics LoginRecorder, log logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &AuthHandler{
		userService: userService,
		config:      cfg,
		blacklist:   blacklist,
		metrics:     metrics,
		log:         log,
		validator:   newValidator(),
	}
}

// Login godoc
// @Summary Login user
// @Description Authenticate with email and password, returns a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.AuthResponse "Login successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Failure 429 {object} models.ErrorResponse "Too many attempts"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}
	if err := check(h.validator, req); err != nil {
		return errors.Respond(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if domain.IsUnauthorized(err) {
			h.recordLogin(false)
		}
		return errors.Respond(c, err)
	}

	token, err := auth.GenerateJWT(u, h.config.JWTSecret, h.config.JWTExpirationHours)
	if err != nil {
		return errors.InternalError(c, err)
	}
	h.recordLogin(true)

	return c.JSON(http.StatusOK, models.AuthResponse{
		Token: token,
		User:  models.NewUserInfo(u),
	})
}

// Logout godoc
// @Summary Logout user
// @Description Revoke the current bearer token until it expires
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.MessageResponse "Logged out"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get(middleware.KeyToken).(string)
	if token == "" {
		return errors.UnauthorizedError(c, "")
	}

	// Without redis there is nowhere to keep revoked tokens.
	if h.blacklist != nil {
		claims, err := auth.ValidateJWT(token, h.config.JWTSecret)
		if err != nil {
			return errors.UnauthorizedError(c, "Invalid or expired token")
		}
		if err := h.blacklist.Add(c.Request().Context(), token, claims.Remaining()); err != nil {
			return errors.InternalError(c, err)
		}
		h.log.Info("token revoked", "user_id", claims.UserID)
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Logged out successfully"})
}

// Me godoc
// @Summary Get current user
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserInfo "Current user"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return errors.UnauthorizedError(c, "")
	}

	u, err := h.userService.Get(c.Request().Context(), caller.ID)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.NewUserInfo(u))
}

func (h *AuthHandler) recordLogin(success bool) {
	if h.metrics != nil {
		h.metrics.RecordLoginAttempt(success)
	}
}
