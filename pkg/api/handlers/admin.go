package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/leaddesk/pkg/api/errors"
	"github.com/jordanlanch/leaddesk/pkg/api/middleware"
	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/importer"
	"github.com/jordanlanch/leaddesk/pkg/leads"
	"github.com/jordanlanch/leaddesk/pkg/leadsources"
	"github.com/jordanlanch/leaddesk/pkg/models"
	"github.com/jordanlanch/leaddesk/pkg/users"
)

// maxUploadBytes caps a bulk import file.
const maxUploadBytes = 10 << 20

// AdminHandler handles the admin-only endpoints
type AdminHandler struct {
	userService   *users.Service
	sourceService *leadsources.Service
	leadService   *leads.Service
	validator     *validator.Validate
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userService *users.Service, sourceService *leadsources.Service, leadService *leads.Service) *AdminHandler {
	return &AdminHandler{
		userService:   userService,
		sourceService: sourceService,
		leadService:   leadService,
		validator:     newValidator(),
	}
}

// ListEmployees godoc
// @Summary List employees
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserInfo "Employees"
// @Failure 403 {object} models.ErrorResponse "Admin access required"
// @Router /admin/employees [get]
func (h *AdminHandler) ListEmployees(c echo.Context) error {
	employees, err := h.userService.ListEmployees(c.Request().Context())
	if err != nil {
		return errors.Respond(c, err)
	}

	resp := make([]*models.UserInfo, 0, len(employees))
	for _, u := range employees {
		resp = append(resp, models.NewUserInfo(u))
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateEmployee godoc
// @Summary Create an employee account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateEmployeeRequest true "Employee data"
// @Success 201 {object} models.UserInfo "Created employee"
// @Failure 400 {object} models.ErrorResponse "Invalid data or email taken"
// @Router /admin/employees [post]
func (h *AdminHandler) CreateEmployee(c echo.Context) error {
	var req models.CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}
	if err := check(h.validator, req); err != nil {
		return errors.Respond(c, err)
	}

	u, err := h.userService.CreateEmployee(c.Request().Context(), req)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, models.NewUserInfo(u))
}

// UpdateEmployee godoc
// @Summary Update an employee account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param request body models.UpdateEmployeeRequest true "Changed fields"
// @Success 200 {object} models.UserInfo "Updated employee"
// @Failure 400 {object} models.ErrorResponse "Invalid data"
// @Failure 404 {object} models.ErrorResponse "Employee not found"
// @Router /admin/employees/{id} [put]
func (h *AdminHandler) UpdateEmployee(c echo.Context) error {
	var req models.UpdateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}
	if err := check(h.validator, req); err != nil {
		return errors.Respond(c, err)
	}

	u, err := h.userService.UpdateEmployee(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.NewUserInfo(u))
}

// DeleteEmployee godoc
// @Summary Delete an employee account
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} models.MessageResponse "Employee deleted"
// @Failure 404 {object} models.ErrorResponse "Employee not found"
// @Router /admin/employees/{id} [delete]
func (h *AdminHandler) DeleteEmployee(c echo.Context) error {
	if err := h.userService.DeleteEmployee(c.Request().Context(), c.Param("id")); err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Employee deleted"})
}

// ListLeadSources godoc
// @Summary List lead sources
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.LeadSourceResponse "Lead sources"
// @Router /admin/lead-sources [get]
func (h *AdminHandler) ListLeadSources(c echo.Context) error {
	sources, err := h.sourceService.List(c.Request().Context())
	if err != nil {
		return errors.Respond(c, err)
	}

	resp := make([]models.LeadSourceResponse, 0, len(sources))
	for _, src := range sources {
		resp = append(resp, models.NewLeadSourceResponse(src))
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateLeadSource godoc
// @Summary Create a lead source
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.LeadSourceRequest true "Lead source"
// @Success 201 {object} models.LeadSourceResponse "Created lead source"
// @Failure 400 {object} models.ErrorResponse "Invalid data or name taken"
// @Router /admin/lead-sources [post]
func (h *AdminHandler) CreateLeadSource(c echo.Context) error {
	var req models.LeadSourceRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}
	if err := check(h.validator, req); err != nil {
		return errors.Respond(c, err)
	}

	src, err := h.sourceService.Create(c.Request().Context(), req)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, models.NewLeadSourceResponse(src))
}

// UpdateLeadSource godoc
// @Summary Update a lead source
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead source ID"
// @Param request body models.LeadSourceRequest true "Lead source"
// @Success 200 {object} models.LeadSourceResponse "Updated lead source"
// @Failure 400 {object} models.ErrorResponse "Invalid data"
// @Failure 404 {object} models.ErrorResponse "Lead source not found"
// @Router /admin/lead-sources/{id} [put]
func (h *AdminHandler) UpdateLeadSource(c echo.Context) error {
	var req models.LeadSourceRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}
	if err := check(h.validator, req); err != nil {
		return errors.Respond(c, err)
	}

	src, err := h.sourceService.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.NewLeadSourceResponse(src))
}

// DeleteLeadSource godoc
// @Summary Delete a lead source
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead source ID"
// @Success 200 {object} models.MessageResponse "Lead source deleted"
// @Failure 404 {object} models.ErrorResponse "Lead source not found"
// @Router /admin/lead-sources/{id} [delete]
func (h *AdminHandler) DeleteLeadSource(c echo.Context) error {
	if err := h.sourceService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Lead source deleted"})
}

// ImportLeads godoc
// @Summary Bulk import leads
// @Description Upload a .csv or .xlsx file whose first row names the lead fields.
// @Description Any invalid row rejects the whole file.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Spreadsheet"
// @Success 201 {object} models.ImportResponse "Leads imported"
// @Failure 400 {object} models.ErrorResponse "Row errors"
// @Router /admin/leads/bulk [post]
func (h *AdminHandler) ImportLeads(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return errors.UnauthorizedError(c, "")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return errors.Respond(c, domain.NewValidationError("file", "file is required"))
	}
	if fh.Size > maxUploadBytes {
		return errors.Respond(c, domain.NewValidationError("file", "file must be at most 10 MB"))
	}
	format, err := importer.FormatOf(fh.Filename)
	if err != nil {
		return errors.Respond(c, err)
	}

	f, err := fh.Open()
	if err != nil {
		return errors.InternalError(c, err)
	}
	defer f.Close()

	rows, err := importer.Parse(f, format)
	if err != nil {
		return errors.Respond(c, err)
	}

	n, err := h.leadService.Import(c.Request().Context(), caller, rows)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, models.ImportResponse{
		Message: strconv.Itoa(n) + " leads imported",
		Count:   n,
	})
}

// AssignLead godoc
// @Summary Reassign a lead
// @Description Sets the assignee of any lead. A null assigned_to unassigns it.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param request body models.AssignLeadRequest true "Assignee"
// @Success 200 {object} models.LeadResponse "Updated lead"
// @Failure 400 {object} models.ErrorResponse "Unknown user"
// @Failure 404 {object} models.ErrorResponse "Lead not found"
// @Router /admin/leads/{id}/assign [put]
func (h *AdminHandler) AssignLead(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return errors.UnauthorizedError(c, "")
	}

	var req models.AssignLeadRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}

	lead, err := h.leadService.Assign(c.Request().Context(), caller, c.Param("id"), req.AssignedTo)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, lead)
}
