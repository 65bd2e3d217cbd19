package middleware

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SecurityHeadersConfig holds configuration for the security headers middleware.
// Empty policy fields fall back to the defaults.
type SecurityHeadersConfig struct {
	Skipper               middleware.Skipper
	ContentSecurityPolicy string
	ReferrerPolicy        string
	PermissionsPolicy     string
	// HSTSMaxAge in seconds. Zero leaves Strict-Transport-Security unset,
	// which is what plain-HTTP development wants.
	HSTSMaxAge int
}

// DefaultSecurityHeadersConfig returns headers suited to a JSON-only API.
func DefaultSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{
		Skipper:               middleware.DefaultSkipper,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "camera=(), microphone=(), geolocation=(), payment=()",
	}
}

// SkipPrefix skips requests whose path starts with prefix. The Swagger UI
// under /swagger needs scripts and styles the API policy forbids.
func SkipPrefix(prefix string) middleware.Skipper {
	return func(c echo.Context) bool {
		return strings.HasPrefix(c.Request().URL.Path, prefix)
	}
}

// SecurityHeaders sets the browser hardening headers on every response not
// skipped by config.Skipper.
func SecurityHeaders(config SecurityHeadersConfig) echo.MiddlewareFunc {
	defaults := DefaultSecurityHeadersConfig()

	if config.Skipper == nil {
		config.Skipper = defaults.Skipper
	}
	if config.ContentSecurityPolicy == "" {
		config.ContentSecurityPolicy = defaults.ContentSecurityPolicy
	}
	if config.ReferrerPolicy == "" {
		config.ReferrerPolicy = defaults.ReferrerPolicy
	}
	if config.PermissionsPolicy == "" {
		config.PermissionsPolicy = defaults.PermissionsPolicy
	}
	var hsts string
	if config.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(config.HSTSMaxAge) + "; includeSubDomains"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}
			h := c.Response().Header()
			h.Set("Content-Security-Policy", config.ContentSecurityPolicy)
			h.Set("Referrer-Policy", config.ReferrerPolicy)
			h.Set("Permissions-Policy", config.PermissionsPolicy)
			h.Set(echo.HeaderXContentTypeOptions, "nosniff")
			h.Set(echo.HeaderXFrameOptions, "DENY")
			if hsts != "" {
				h.Set(echo.HeaderStrictTransportSecurity, hsts)
			}
			return next(c)
		}
	}
}
