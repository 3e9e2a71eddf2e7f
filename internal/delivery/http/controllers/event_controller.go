package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "companyevents/internal/delivery/http/helpers"
	"companyevents/internal/delivery/http/middleware"
	"companyevents/internal/domain"
)

// CreateEventRequest is the request body for POST /api/events. Dates are
// RFC 3339. The event is always created under the caller's company.
type CreateEventRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Date        string  `json:"date"`
	Capacity    *int    `json:"capacity"`
}

// Validate implements helpers.Validator.
func (e CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, "title is required")
	}
	if e.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := time.Parse(time.RFC3339, e.Date); err != nil {
		errs = append(errs, "date must be a valid RFC 3339 timestamp")
	}
	if e.Capacity != nil && *e.Capacity < 0 {
		errs = append(errs, "capacity cannot be negative")
	}
	return errs
}

// UpdateEventRequest is the request body for PUT /api/events/{eventID}.
// Omitted fields are left unchanged.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Capacity    *int    `json:"capacity"`
}

// Validate implements helpers.Validator.
func (e UpdateEventRequest) Validate() []string {
	var errs []string
	if e.Title != nil && strings.TrimSpace(*e.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if e.Date != nil {
		if _, err := time.Parse(time.RFC3339, *e.Date); err != nil {
			errs = append(errs, "date must be a valid RFC 3339 timestamp")
		}
	}
	if e.Capacity != nil && *e.Capacity < 0 {
		errs = append(errs, "capacity cannot be negative")
	}
	return errs
}

// EventListResponse is the data payload for GET /api/events.
type EventListResponse struct {
	Events     []*domain.Event  `json:"events"`
	Pagination h.PaginationMeta `json:"pagination"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create an event
// @Description Create an event under the caller's company. A company reference in the body is ignored.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	date, _ := time.Parse(time.RFC3339, req.Date)
	event, err := c.Service.Create(r.Context(), domain.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Capacity:    req.Capacity,
	}, caller)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetAll godoc
// @Summary List events
// @Description Paginated event listing ordered by date. Non-admin callers only see their own company's events regardless of the companyId filter.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param companyId query string false "Filter by company ID"
// @Param dateFrom query string false "Events on or after this RFC 3339 timestamp"
// @Param dateTo query string false "Events on or before this RFC 3339 timestamp"
// @Param upcoming query bool false "Only events from now onwards"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) GetAll(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	f := domain.EventFilter{}
	if v := q.Get("companyId"); v != "" {
		if !uuidRegex.MatchString(v) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "companyId must be a valid UUID")
			return
		}
		f.CompanyID = v
	}
	if v := q.Get("dateFrom"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "dateFrom must be a valid RFC 3339 timestamp")
			return
		}
		f.DateFrom = &t
	}
	if v := q.Get("dateTo"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "dateTo must be a valid RFC 3339 timestamp")
			return
		}
		f.DateTo = &t
	}
	if v := q.Get("upcoming"); v == "true" || v == "1" {
		f.Upcoming = true
	}

	p := h.ParsePagination(r)
	events, total, err := c.Service.GetAll(r.Context(), f, p, caller)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, EventListResponse{
		Events:     events,
		Pagination: h.NewPaginationMeta(p.Page, p.Limit, total),
	})
}

// GetByID godoc
// @Summary Get an event by ID
// @Description Non-admin callers may only fetch events of their own company.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.GetByID(r.Context(), id, caller)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Update godoc
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	var date *time.Time
	if req.Date != nil {
		t, _ := time.Parse(time.RFC3339, *req.Date)
		date = &t
	}
	event, err := c.Service.Update(r.Context(), id, domain.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Capacity:    req.Capacity,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Deleting an event cascades to its registrations.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "event deleted"})
}
