package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"companyevents/internal/delivery/http/middleware"
	"companyevents/internal/domain"
)

// testLogger discards output so tests don't assert on log formatting.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testEventID = "11111111-1111-1111-1111-111111111111"
	testRegID   = "22222222-2222-2222-2222-222222222222"
	testCoID    = "33333333-3333-3333-3333-333333333333"
	testEmpID   = "44444444-4444-4444-4444-444444444444"
)

// decodeEnvelope unmarshals the standard response envelope, returning the raw
// data payload and the error code (empty when no error).
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (json.RawMessage, string) {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if envelope.Error != nil {
		return envelope.Data, envelope.Error.Code
	}
	return envelope.Data, ""
}

// authedRequest builds a request carrying the caller identity in context, the
// way RequireAuth does for real traffic. A nil caller leaves the context bare.
func authedRequest(t *testing.T, method, target string, caller *domain.Identity) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if caller != nil {
		req = req.WithContext(middleware.SetIdentity(req.Context(), *caller))
	}
	return req
}

// fakeAuthService implements domain.AuthService.
type fakeAuthService struct {
	registerErr error
	loginErr    error
	refreshErr  error
	result      *domain.AuthResult
	lastInput   domain.RegisterInput
}

func (f *fakeAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	f.lastInput = input
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.result, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.result, nil
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, token string) (string, error) {
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	return "fresh-token", nil
}

// fakeEventService implements domain.EventService.
type fakeEventService struct {
	createErr  error
	getErr     error
	event      *domain.Event
	events     []*domain.Event
	total      int
	lastFilter domain.EventFilter
	lastCaller domain.Identity
}

func (f *fakeEventService) Create(ctx context.Context, input domain.CreateEventInput, caller domain.Identity) (*domain.Event, error) {
	f.lastCaller = caller
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.event, nil
}

func (f *fakeEventService) GetAll(ctx context.Context, filter domain.EventFilter, p domain.PaginationParams, caller domain.Identity) ([]*domain.Event, int, error) {
	f.lastFilter = filter
	f.lastCaller = caller
	return f.events, f.total, nil
}

func (f *fakeEventService) GetByID(ctx context.Context, id string, caller domain.Identity) (*domain.Event, error) {
	f.lastCaller = caller
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.event, nil
}

func (f *fakeEventService) Update(ctx context.Context, id string, input domain.UpdateEventInput) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.event, nil
}

func (f *fakeEventService) Delete(ctx context.Context, id string) error {
	return f.getErr
}

// fakeRegistrationService implements domain.RegistrationService.
type fakeRegistrationService struct {
	registerErr error
	checkInErr  error
	cancelErr   error
	getErr      error
	reg         *domain.EventRegistration
	attendees   []*domain.EventAttendee
	total       int
	lastCaller  domain.Identity
}

func (f *fakeRegistrationService) RegisterForEvent(ctx context.Context, eventID string, caller domain.Identity) (*domain.EventRegistration, error) {
	f.lastCaller = caller
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.reg, nil
}

func (f *fakeRegistrationService) GetEventAttendees(ctx context.Context, eventID string, checkedIn *bool, p domain.PaginationParams) ([]*domain.EventAttendee, int, error) {
	if f.getErr != nil {
		return nil, 0, f.getErr
	}
	return f.attendees, f.total, nil
}

func (f *fakeRegistrationService) CheckInAttendee(ctx context.Context, eventID, registrationID string) (*domain.EventRegistration, error) {
	if f.checkInErr != nil {
		return nil, f.checkInErr
	}
	return f.reg, nil
}

func (f *fakeRegistrationService) CancelRegistration(ctx context.Context, eventID, registrationID string, caller domain.Identity) error {
	f.lastCaller = caller
	return f.cancelErr
}

func (f *fakeRegistrationService) GetMyRegistration(ctx context.Context, eventID, employeeID string) (*domain.EventRegistration, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.reg, nil
}

// fakeEmployeeService implements domain.EmployeeService.
type fakeEmployeeService struct {
	createErr  error
	getErr     error
	employee   *domain.Employee
	employees  []*domain.Employee
	total      int
	lastFilter domain.EmployeeFilter
}

func (f *fakeEmployeeService) Create(ctx context.Context, input domain.CreateEmployeeInput) (*domain.Employee, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.employee, nil
}

func (f *fakeEmployeeService) GetAll(ctx context.Context, filter domain.EmployeeFilter, p domain.PaginationParams, caller domain.Identity) ([]*domain.Employee, int, error) {
	f.lastFilter = filter
	return f.employees, f.total, nil
}

func (f *fakeEmployeeService) GetByID(ctx context.Context, id string, caller domain.Identity) (*domain.Employee, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.employee, nil
}

func (f *fakeEmployeeService) Update(ctx context.Context, id string, input domain.UpdateEmployeeInput) (*domain.Employee, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.employee, nil
}

func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.getErr
}

// fakeCompanyService implements domain.CompanyService.
type fakeCompanyService struct {
	createErr error
	deleteErr error
	getErr    error
	company   *domain.Company
	companies []*domain.Company
	total     int
}

func (f *fakeCompanyService) Create(ctx context.Context, name, email, phone string) (*domain.Company, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.company, nil
}

func (f *fakeCompanyService) GetAll(ctx context.Context, p domain.PaginationParams) ([]*domain.Company, int, error) {
	return f.companies, f.total, nil
}

func (f *fakeCompanyService) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.company, nil
}

func (f *fakeCompanyService) Update(ctx context.Context, id string, input domain.UpdateCompanyInput) (*domain.Company, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.company, nil
}

func (f *fakeCompanyService) Delete(ctx context.Context, id string) error {
	return f.deleteErr
}

func (f *fakeCompanyService) ListEmployees(ctx context.Context, id string, caller domain.Identity) ([]*domain.Employee, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return nil, nil
}

func (f *fakeCompanyService) ListEvents(ctx context.Context, id string, caller domain.Identity) ([]*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return nil, nil
}
