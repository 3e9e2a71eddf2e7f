package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"companyevents/internal/delivery/http/controllers"
	h "companyevents/internal/delivery/http/helpers"
	"companyevents/internal/delivery/http/middleware"
	"companyevents/internal/domain"
)

// RouterDeps carries everything the router needs to wire routes.
type RouterDeps struct {
	Logger        *slog.Logger
	DB            *sql.DB
	TokenVerifier domain.TokenVerifier

	Auth          *controllers.AuthController
	Companies     *controllers.CompanyController
	Employees     *controllers.EmployeeController
	Events        *controllers.EventController
	Registrations *controllers.RegistrationController
}

// NewRouter initializes the HTTP router with all application routes.
// Everything under /api except the auth endpoints requires a bearer token,
// and destructive company/employee operations additionally require ADMIN.
func NewRouter(deps RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(deps.TokenVerifier, deps.Logger)
	admin := middleware.RequireRole(domain.RoleAdmin)

	mux.HandleFunc("GET /api", index)
	mux.HandleFunc("GET /api/health", health(deps.DB))

	// Auth
	mux.HandleFunc("POST /api/auth/register", deps.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", deps.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh-token", deps.Auth.RefreshToken)
	mux.HandleFunc("POST /api/auth/logout", auth(deps.Auth.Logout))
	mux.HandleFunc("GET /api/auth/me", auth(deps.Auth.Me))

	// Companies
	mux.HandleFunc("POST /api/companies", auth(admin(deps.Companies.Create)))
	mux.HandleFunc("GET /api/companies", auth(deps.Companies.GetAll))
	mux.HandleFunc("GET /api/companies/{companyID}", auth(deps.Companies.GetByID))
	mux.HandleFunc("PUT /api/companies/{companyID}", auth(admin(deps.Companies.Update)))
	mux.HandleFunc("DELETE /api/companies/{companyID}", auth(admin(deps.Companies.Delete)))
	mux.HandleFunc("GET /api/companies/{companyID}/employees", auth(deps.Companies.ListEmployees))
	mux.HandleFunc("GET /api/companies/{companyID}/events", auth(deps.Companies.ListEvents))

	// Employees
	mux.HandleFunc("POST /api/employees", auth(admin(deps.Employees.Create)))
	mux.HandleFunc("GET /api/employees", auth(deps.Employees.GetAll))
	mux.HandleFunc("GET /api/employees/{employeeID}", auth(deps.Employees.GetByID))
	mux.HandleFunc("PUT /api/employees/{employeeID}", auth(admin(deps.Employees.Update)))
	mux.HandleFunc("DELETE /api/employees/{employeeID}", auth(admin(deps.Employees.Delete)))

	// Events
	mux.HandleFunc("POST /api/events", auth(admin(deps.Events.Create)))
	mux.HandleFunc("GET /api/events", auth(deps.Events.GetAll))
	mux.HandleFunc("GET /api/events/{eventID}", auth(deps.Events.GetByID))
	mux.HandleFunc("PUT /api/events/{eventID}", auth(admin(deps.Events.Update)))
	mux.HandleFunc("DELETE /api/events/{eventID}", auth(admin(deps.Events.Delete)))

	// Registrations
	mux.HandleFunc("POST /api/events/{eventID}/register", auth(deps.Registrations.Register))
	mux.HandleFunc("GET /api/events/{eventID}/attendees", auth(admin(deps.Registrations.ListAttendees)))
	mux.HandleFunc("POST /api/events/{eventID}/check-in/{registrationID}", auth(admin(deps.Registrations.CheckIn)))
	mux.HandleFunc("DELETE /api/events/{eventID}/unregister/{registrationID}", auth(deps.Registrations.Cancel))
	mux.HandleFunc("GET /api/events/{eventID}/my-registration", auth(deps.Registrations.MyRegistration))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func index(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, map[string]any{
		"name":   "companyevents API",
		"docs":   "/swagger/index.html",
		"health": "/api/health",
		"endpoints": map[string]map[string]string{
			"auth": {
				"POST /api/auth/register":      "register an employee",
				"POST /api/auth/login":         "log in",
				"POST /api/auth/refresh-token": "renew the access token",
				"POST /api/auth/logout":        "log out",
				"GET /api/auth/me":             "current identity",
			},
			"companies": {
				"GET /api/companies":                "list companies",
				"GET /api/companies/{id}":           "get a company",
				"POST /api/companies":               "create a company (ADMIN)",
				"PUT /api/companies/{id}":           "update a company (ADMIN)",
				"DELETE /api/companies/{id}":        "delete a company (ADMIN)",
				"GET /api/companies/{id}/employees": "list a company's employees",
				"GET /api/companies/{id}/events":    "list a company's events",
			},
			"employees": {
				"GET /api/employees":         "list employees",
				"GET /api/employees/{id}":    "get an employee",
				"POST /api/employees":        "create an employee (ADMIN)",
				"PUT /api/employees/{id}":    "update an employee (ADMIN)",
				"DELETE /api/employees/{id}": "delete an employee (ADMIN)",
			},
			"events": {
				"GET /api/events":         "list events",
				"GET /api/events/{id}":    "get an event",
				"POST /api/events":        "create an event (ADMIN)",
				"PUT /api/events/{id}":    "update an event (ADMIN)",
				"DELETE /api/events/{id}": "delete an event (ADMIN)",
			},
			"registrations": {
				"POST /api/events/{id}/register":             "register for an event",
				"GET /api/events/{id}/attendees":             "list attendees (ADMIN)",
				"POST /api/events/{id}/check-in/{regID}":     "check an attendee in (ADMIN)",
				"DELETE /api/events/{id}/unregister/{regID}": "cancel a registration",
				"GET /api/events/{id}/my-registration":       "the caller's registration",
			},
		},
	})
}

func health(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		h.WriteJSONSuccess(w, code, map[string]string{"status": status})
	}
}
