package handlers

import (
	"github.com/labstack/echo/v4"

	custommiddleware "github.com/jordanlanch/leaddesk/pkg/middleware"
)

// Routes groups the handlers and the middleware guarding them.
type Routes struct {
	Auth   *AuthHandler
	Leads  *LeadHandler
	Admin  *AdminHandler
	Health *HealthHandler

	// JWT authenticates every route except login and health.
	JWT echo.MiddlewareFunc
	// AuthLimit throttles the /api/auth group. Optional.
	AuthLimit echo.MiddlewareFunc
}

// Register mounts every endpoint on e.
func (r Routes) Register(e *echo.Echo) {
	e.GET("/health", r.Health.Health)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	if r.AuthLimit != nil {
		authGroup.Use(r.AuthLimit)
	}
	authGroup.POST("/login", r.Auth.Login)
	authGroup.POST("/logout", r.Auth.Logout, r.JWT)
	authGroup.GET("/me", r.Auth.Me, r.JWT)

	leadsGroup := api.Group("/leads", r.JWT)
	leadsGroup.POST("", r.Leads.Create)
	leadsGroup.GET("", r.Leads.List)
	leadsGroup.GET("/stats", r.Leads.Stats)
	leadsGroup.GET("/:id", r.Leads.Get)
	leadsGroup.PUT("/:id", r.Leads.Update)
	leadsGroup.DELETE("/:id", r.Leads.Delete)

	admin := api.Group("/admin", r.JWT, custommiddleware.RequireAdmin())
	admin.GET("/employees", r.Admin.ListEmployees)
	admin.POST("/employees", r.Admin.CreateEmployee)
	admin.PUT("/employees/:id", r.Admin.UpdateEmployee)
	admin.DELETE("/employees/:id", r.Admin.DeleteEmployee)
	admin.GET("/lead-sources", r.Admin.ListLeadSources)
	admin.POST("/lead-sources", r.Admin.CreateLeadSource)
	admin.PUT("/lead-sources/:id", r.Admin.UpdateLeadSource)
	admin.DELETE("/lead-sources/:id", r.Admin.DeleteLeadSource)
	admin.POST("/leads/bulk", r.Admin.ImportLeads)
	admin.PUT("/leads/:id/assign", r.Admin.AssignLead)
}
