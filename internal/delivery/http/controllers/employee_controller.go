package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "companyevents/internal/delivery/http/helpers"
	"companyevents/internal/delivery/http/middleware"
	"companyevents/internal/domain"
)

// CreateEmployeeRequest is the request body for POST /api/employees.
type CreateEmployeeRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CompanyID string `json:"company_id"`
}

// Validate implements helpers.Validator.
func (e CreateEmployeeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(e.Email) == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(e.Email))) {
		errs = append(errs, "invalid email format")
	}
	if len(e.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	if e.Role != "" && !domain.Role(e.Role).Valid() {
		errs = append(errs, "role must be ADMIN or EMPLOYEE")
	}
	if e.CompanyID == "" {
		errs = append(errs, "company_id is required")
	} else if !uuidRegex.MatchString(e.CompanyID) {
		errs = append(errs, "company_id must be a valid UUID")
	}
	return errs
}

// UpdateEmployeeRequest is the request body for PUT /api/employees/{employeeID}.
// Omitted fields are left unchanged. A non-nil password is re-hashed.
type UpdateEmployeeRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Validate implements helpers.Validator.
func (e UpdateEmployeeRequest) Validate() []string {
	var errs []string
	if e.Name != nil && strings.TrimSpace(*e.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if e.Email != nil && !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(*e.Email))) {
		errs = append(errs, "invalid email format")
	}
	if e.Password != nil && len(*e.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	if e.Role != nil && !domain.Role(*e.Role).Valid() {
		errs = append(errs, "role must be ADMIN or EMPLOYEE")
	}
	return errs
}

// EmployeeListResponse is the data payload for GET /api/employees.
type EmployeeListResponse struct {
	Employees  []*domain.Employee `json:"employees"`
	Pagination h.PaginationMeta   `json:"pagination"`
}

type EmployeeController struct {
	Logger  *slog.Logger
	Service domain.EmployeeService
}

func NewEmployeeController(logger *slog.Logger, svc domain.EmployeeService) *EmployeeController {
	return &EmployeeController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create an employee
// @Description Create an employee in an existing company. Emails are unique across the system.
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEmployeeRequest true "Employee data"
// @Success 201 {object} helpers.APIResponse "data contains the created employee"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (company)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /employees [post]
func (c *EmployeeController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	role := domain.RoleEmployee
	if req.Role != "" {
		role = domain.Role(req.Role)
	}
	employee, err := c.Service.Create(r.Context(), domain.CreateEmployeeInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, employee)
}

// GetAll godoc
// @Summary List employees
// @Description Paginated employee listing. Non-admin callers only see their own company regardless of the companyId filter.
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param companyId query string false "Filter by company ID"
// @Param role query string false "Filter by role (ADMIN or EMPLOYEE)"
// @Success 200 {object} helpers.APIResponse "data contains employees and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /employees [get]
func (c *EmployeeController) GetAll(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	f := domain.EmployeeFilter{}
	if v := r.URL.Query().Get("companyId"); v != "" {
		if !uuidRegex.MatchString(v) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "companyId must be a valid UUID")
			return
		}
		f.CompanyID = v
	}
	if v := r.URL.Query().Get("role"); v != "" {
		role := domain.Role(v)
		if !role.Valid() {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "role must be ADMIN or EMPLOYEE")
			return
		}
		f.Role = role
	}

	p := h.ParsePagination(r)
	employees, total, err := c.Service.GetAll(r.Context(), f, p, caller)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, EmployeeListResponse{
		Employees:  employees,
		Pagination: h.NewPaginationMeta(p.Page, p.Limit, total),
	})
}

// GetByID godoc
// @Summary Get an employee by ID
// @Description Non-admin callers may only fetch employees of their own company.
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param employeeID path string true "Employee ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the employee"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /employees/{employeeID} [get]
func (c *EmployeeController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "employeeID")
	if !ok {
		return
	}
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	employee, err := c.Service.GetByID(r.Context(), id, caller)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, employee)
}

// Update godoc
// @Summary Update an employee
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employeeID path string true "Employee ID (UUID)"
// @Param body body UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated employee"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /employees/{employeeID} [put]
func (c *EmployeeController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "employeeID")
	if !ok {
		return
	}
	var req UpdateEmployeeRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	var role *domain.Role
	if req.Role != nil {
		v := domain.Role(*req.Role)
		role = &v
	}
	employee, err := c.Service.Update(r.Context(), id, domain.UpdateEmployeeInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, employee)
}

// Delete godoc
// @Summary Delete an employee
// @Description Deleting an employee cascades to their event registrations.
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param employeeID path string true "Employee ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /employees/{employeeID} [delete]
func (c *EmployeeController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "employeeID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "employee deleted"})
}
