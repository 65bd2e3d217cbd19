package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4/middleware"
)

// devOrigins are the local frontend dev servers.
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// CORSConfig returns the CORS configuration used by the application. The
// configured frontend origin is allowed alongside the local dev servers.
func CORSConfig(frontendURL string) middleware.CORSConfig {
	origins := append([]string{}, devOrigins...)
	if u := strings.TrimRight(strings.TrimSpace(frontendURL), "/"); u != "" {
		origins = append(origins, u)
	}
	return middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowCredentials: true,
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
		},
	}
}
