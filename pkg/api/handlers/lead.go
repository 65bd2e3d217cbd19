package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/leaddesk/pkg/api/errors"
	"github.com/jordanlanch/leaddesk/pkg/api/middleware"
	"github.com/jordanlanch/leaddesk/pkg/leads"
	"github.com/jordanlanch/leaddesk/pkg/models"
)

// LeadHandler handles lead endpoints
type LeadHandler struct {
	leadService *leads.Service
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *leads.Service) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Create godoc
// @Summary Create a lead
// @Description Leads created by an employee are assigned to that employee.
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateLeadRequest true "Lead data"
// @Success 201 {object} models.LeadResponse "Created lead"
// @Failure 400 {object} models.ErrorResponse "Invalid lead"
// @Failure 403 {object} models.ErrorResponse "Assignment not allowed"
// @Router /leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return errors.UnauthorizedError(c, "")
	}

	var req models.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}

	lead, err := h.leadService.Create(c.Request().Context(), caller, req)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, lead)
}

// List godoc
// @Summary List leads
// @Description Paginated, newest first. Filters are <field>_<op>=value query parameters,
// @Description e.g. status_in=new,won or score_between=10,50 or created_at_after=2024-01-01.
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param page query integer false "Page number" default(1)
// @Param limit query integer false "Results per page" default(20)
// @Success 200 {object} models.LeadListResponse "Leads"
// @Failure 400 {object} models.ErrorResponse "Malformed filter or pagination"
// @Router /leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return errors.UnauthorizedError(c, "")
	}

	resp, err := h.leadService.List(c.Request().Context(), caller, c.QueryParams())
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Stats godoc
// @Summary Lead counts per status
// @Description Accepts the same filters as the list endpoint. Statuses without leads are omitted.
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.StatusStat "Per-status totals"
// @Failure 400 {object} models.ErrorResponse "Malformed filter"
// @Router /leads/stats [get]
func (h *LeadHandler) Stats(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return errors.UnauthorizedError(c, "")
	}

	stats, err := h.leadService.Stats(c.Request().Context(), caller, c.QueryParams())
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Get godoc
// @Summary Get a lead
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} models.LeadResponse "Lead"
// @Failure 403 {object} models.ErrorResponse "Lead belongs to another employee"
// @Failure 404 {object} models.ErrorResponse "Lead not found"
// @Router /leads/{id} [get]
func (h *LeadHandler) Get(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return errors.UnauthorizedError(c, "")
	}

	lead, err := h.leadService.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, lead)
}

// Update godoc
// @Summary Update a lead
// @Description Fields left out of the body keep their value.
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param request body models.UpdateLeadRequest true "Changed fields"
// @Success 200 {object} models.LeadResponse "Updated lead"
// @Failure 400 {object} models.ErrorResponse "Invalid lead"
// @Failure 403 {object} models.ErrorResponse "Not allowed"
// @Failure 404 {object} models.ErrorResponse "Lead not found"
// @Router /leads/{id} [put]
func (h *LeadHandler) Update(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return errors.UnauthorizedError(c, "")
	}

	var req models.UpdateLeadRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}

	lead, err := h.leadService.Update(c.Request().Context(), caller, c.Param("id"), req)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, lead)
}

// Delete godoc
// @Summary Delete a lead
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} models.MessageResponse "Lead deleted"
// @Failure 403 {object} models.ErrorResponse "Not allowed"
// @Failure 404 {object} models.ErrorResponse "Lead not found"
// @Router /leads/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return errors.UnauthorizedError(c, "")
	}

	if err := h.leadService.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Lead deleted"})
}
