package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "companyevents/internal/delivery/http/helpers"
	"companyevents/internal/delivery/http/middleware"
	"companyevents/internal/domain"
)

// RegisterRequest is the request body for POST /api/auth/register.
// Exactly one of company_name (create a new company) or company_id (join an
// existing one) must be set.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
	CompanyID   string `json:"company_id"`
	Role        string `json:"role"` // optional: "ADMIN" or "EMPLOYEE" (defaults to "EMPLOYEE")
}

// Validate implements helpers.Validator.
func (r RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	email := strings.TrimSpace(strings.ToLower(r.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	} else if len(r.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	if strings.TrimSpace(r.CompanyName) == "" && r.CompanyID == "" {
		errs = append(errs, "company_name or company_id is required")
	}
	if r.CompanyID != "" && !uuidRegex.MatchString(r.CompanyID) {
		errs = append(errs, "invalid company_id")
	}
	role := strings.ToUpper(strings.TrimSpace(r.Role))
	if role != "" && !domain.Role(role).Valid() {
		errs = append(errs, `role must be "ADMIN" or "EMPLOYEE"`)
	}
	return errs
}

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements helpers.Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// RefreshTokenRequest is the request body for POST /api/auth/refresh-token.
type RefreshTokenRequest struct {
	Token string `json:"token"`
}

// Validate implements helpers.Validator.
func (t RefreshTokenRequest) Validate() []string {
	if strings.TrimSpace(t.Token) == "" {
		return []string{"token is required"}
	}
	return nil
}

// TokenResponse is the response body for POST /api/auth/refresh-token.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// CurrentUserResponse is the response body for GET /api/auth/me.
type CurrentUserResponse struct {
	User domain.Identity `json:"user"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a new employee
// @Description Create a new employee account. Supplying company_name creates a new company (fails if the name is taken); company_id joins an existing one. Role defaults to EMPLOYEE. Returns the user and a signed token valid for 24 hours.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} helpers.APIResponse "data contains user and token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate email or company name)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/register [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Register(r.Context(), domain.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		CompanyName: req.CompanyName,
		CompanyID:   req.CompanyID,
		Role:        domain.Role(strings.ToUpper(strings.TrimSpace(req.Role))),
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, result)
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Returns the user (including company name) and a signed token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data contains user and token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, result)
}

// RefreshToken godoc
// @Summary Refresh a token
// @Description Issue a fresh token for a still-valid token whose employee still exists. The old token is not invalidated (stateless scheme).
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RefreshTokenRequest true "Current token"
// @Success 200 {object} helpers.APIResponse "data contains token and token_type"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (invalid or expired token)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/refresh-token [post]
func (c *AuthController) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.RefreshToken(r.Context(), req.Token)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, TokenResponse{Token: token, TokenType: "Bearer"})
}

// Logout godoc
// @Summary Log out
// @Description Acknowledge a logout. Tokens are stateless, so the client discards its token; nothing is invalidated server side.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me godoc
// @Summary Get the current user
// @Description Echo the identity embedded in the presented token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the authenticated user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/me [get]
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, CurrentUserResponse{User: caller})
}
