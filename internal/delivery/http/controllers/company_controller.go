package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "companyevents/internal/delivery/http/helpers"
	"companyevents/internal/delivery/http/middleware"
	"companyevents/internal/domain"
)

// CreateCompanyRequest is the request body for POST /api/companies.
type CreateCompanyRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate implements helpers.Validator.
func (c CreateCompanyRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Email != "" && !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(c.Email))) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// UpdateCompanyRequest is the request body for PUT /api/companies/{companyID}.
// Omitted fields are left unchanged.
type UpdateCompanyRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// Validate implements helpers.Validator.
func (c UpdateCompanyRequest) Validate() []string {
	var errs []string
	if c.Name != nil && strings.TrimSpace(*c.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if c.Email != nil && *c.Email != "" && !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(*c.Email))) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// CompanyListResponse is the data payload for GET /api/companies.
type CompanyListResponse struct {
	Companies  []*domain.Company `json:"companies"`
	Pagination h.PaginationMeta  `json:"pagination"`
}

type CompanyController struct {
	Logger  *slog.Logger
	Service domain.CompanyService
}

func NewCompanyController(logger *slog.Logger, svc domain.CompanyService) *CompanyController {
	return &CompanyController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a company
// @Description Create a new company. Company names are unique.
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateCompanyRequest true "Company data"
// @Success 201 {object} helpers.APIResponse "data contains the created company"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /companies [post]
func (c *CompanyController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	company, err := c.Service.Create(r.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, company)
}

// GetAll godoc
// @Summary List companies
// @Description Paginated company listing, newest first.
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains companies and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /companies [get]
func (c *CompanyController) GetAll(w http.ResponseWriter, r *http.Request) {
	p := h.ParsePagination(r)
	companies, total, err := c.Service.GetAll(r.Context(), p)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, CompanyListResponse{
		Companies:  companies,
		Pagination: h.NewPaginationMeta(p.Page, p.Limit, total),
	})
}

// GetByID godoc
// @Summary Get a company by ID
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param companyID path string true "Company ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the company"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /companies/{companyID} [get]
func (c *CompanyController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "companyID")
	if !ok {
		return
	}
	company, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, company)
}

// Update godoc
// @Summary Update a company
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param companyID path string true "Company ID (UUID)"
// @Param body body UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated company"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /companies/{companyID} [put]
func (c *CompanyController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "companyID")
	if !ok {
		return
	}
	var req UpdateCompanyRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	company, err := c.Service.Update(r.Context(), id, domain.UpdateCompanyInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, company)
}

// Delete godoc
// @Summary Delete a company
// @Description Deletion is blocked while the company still has employees or events.
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param companyID path string true "Company ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (company has dependents)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /companies/{companyID} [delete]
func (c *CompanyController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "companyID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "company deleted"})
}

// ListEmployees godoc
// @Summary List a company's employees
// @Description Non-admin callers may only list their own company.
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param companyID path string true "Company ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an array of employees"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /companies/{companyID}/employees [get]
func (c *CompanyController) ListEmployees(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "companyID")
	if !ok {
		return
	}
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	employees, err := c.Service.ListEmployees(r.Context(), id, caller)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, employees)
}

// ListEvents godoc
// @Summary List a company's events
// @Description Non-admin callers may only list their own company.
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param companyID path string true "Company ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an array of events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /companies/{companyID}/events [get]
func (c *CompanyController) ListEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "companyID")
	if !ok {
		return
	}
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListEvents(r.Context(), id, caller)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}
