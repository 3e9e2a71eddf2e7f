package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companyevents/internal/domain"
)

func TestRegistrationController_Register(t *testing.T) {
	employee := domain.Identity{ID: testEmpID, CompanyID: testCoID, Role: domain.RoleEmployee}
	reg := &domain.EventRegistration{ID: testRegID, EventID: testEventID, EmployeeID: testEmpID}

	tests := []struct {
		name       string
		eventID    string
		caller     *domain.Identity
		svc        *fakeRegistrationService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			eventID:    testEventID,
			caller:     &employee,
			svc:        &fakeRegistrationService{reg: reg},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid event id",
			eventID:    "not-a-uuid",
			caller:     &employee,
			svc:        &fakeRegistrationService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
		{
			name:       "no identity",
			eventID:    testEventID,
			caller:     nil,
			svc:        &fakeRegistrationService{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name:       "event not found",
			eventID:    testEventID,
			caller:     &employee,
			svc:        &fakeRegistrationService{registerErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "already registered",
			eventID:    testEventID,
			caller:     &employee,
			svc:        &fakeRegistrationService{registerErr: domain.ErrAlreadyRegistered},
			wantStatus: http.StatusConflict,
			wantCode:   "conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRegistrationController(testLogger, tt.svc)

			req := authedRequest(t, http.MethodPost, "/api/events/"+tt.eventID+"/register", tt.caller)
			req.SetPathValue("eventID", tt.eventID)
			rec := httptest.NewRecorder()
			ctrl.Register(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			data, code := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantStatus == http.StatusCreated {
				var got domain.EventRegistration
				require.NoError(t, json.Unmarshal(data, &got))
				assert.Equal(t, testRegID, got.ID)
				assert.Equal(t, employee, tt.svc.lastCaller)
			}
		})
	}
}

func TestRegistrationController_ListAttendees(t *testing.T) {
	attendees := []*domain.EventAttendee{
		{
			Registration: &domain.EventRegistration{ID: testRegID, EventID: testEventID, EmployeeID: testEmpID},
			Employee:     &domain.AttendeeProfile{ID: testEmpID, Name: "Alice", Email: "alice@acme.test"},
		},
	}

	tests := []struct {
		name       string
		target     string
		svc        *fakeRegistrationService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			target:     "/api/events/" + testEventID + "/attendees",
			svc:        &fakeRegistrationService{attendees: attendees, total: 1},
			wantStatus: http.StatusOK,
		},
		{
			name:       "checked-in filter",
			target:     "/api/events/" + testEventID + "/attendees?checkedIn=true",
			svc:        &fakeRegistrationService{attendees: attendees, total: 1},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad checked-in flag",
			target:     "/api/events/" + testEventID + "/attendees?checkedIn=maybe",
			svc:        &fakeRegistrationService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
		{
			name:       "event not found",
			target:     "/api/events/" + testEventID + "/attendees",
			svc:        &fakeRegistrationService{getErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRegistrationController(testLogger, tt.svc)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.SetPathValue("eventID", testEventID)
			rec := httptest.NewRecorder()
			ctrl.ListAttendees(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			data, code := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantStatus == http.StatusOK {
				var resp AttendeeListResponse
				require.NoError(t, json.Unmarshal(data, &resp))
				assert.Len(t, resp.Attendees, 1)
				assert.Equal(t, 1, resp.Pagination.TotalItems)
				assert.Equal(t, 1, resp.Pagination.Page)
			}
		})
	}
}

func TestRegistrationController_CheckIn(t *testing.T) {
	now := time.Now().UTC()
	checked := &domain.EventRegistration{
		ID:          testRegID,
		EventID:     testEventID,
		EmployeeID:  testEmpID,
		CheckedIn:   true,
		CheckedInAt: &now,
	}

	tests := []struct {
		name       string
		svc        *fakeRegistrationService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			svc:        &fakeRegistrationService{reg: checked},
			wantStatus: http.StatusOK,
		},
		{
			name:       "already checked in",
			svc:        &fakeRegistrationService{checkInErr: domain.ErrAlreadyCheckedIn},
			wantStatus: http.StatusConflict,
			wantCode:   "conflict",
		},
		{
			name:       "unknown registration",
			svc:        &fakeRegistrationService{checkInErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRegistrationController(testLogger, tt.svc)

			target := "/api/events/" + testEventID + "/check-in/" + testRegID
			req := httptest.NewRequest(http.MethodPost, target, nil)
			req.SetPathValue("eventID", testEventID)
			req.SetPathValue("registrationID", testRegID)
			rec := httptest.NewRecorder()
			ctrl.CheckIn(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			data, code := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantStatus == http.StatusOK {
				var got domain.EventRegistration
				require.NoError(t, json.Unmarshal(data, &got))
				assert.True(t, got.CheckedIn)
				require.NotNil(t, got.CheckedInAt)
			}
		})
	}
}

func TestRegistrationController_Cancel(t *testing.T) {
	employee := domain.Identity{ID: testEmpID, CompanyID: testCoID, Role: domain.RoleEmployee}

	tests := []struct {
		name       string
		svc        *fakeRegistrationService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			svc:        &fakeRegistrationService{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "someone else's registration",
			svc:        &fakeRegistrationService{cancelErr: domain.ErrForbidden},
			wantStatus: http.StatusForbidden,
			wantCode:   "forbidden",
		},
		{
			name:       "unknown registration",
			svc:        &fakeRegistrationService{cancelErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRegistrationController(testLogger, tt.svc)

			target := "/api/events/" + testEventID + "/unregister/" + testRegID
			req := authedRequest(t, http.MethodDelete, target, &employee)
			req.SetPathValue("eventID", testEventID)
			req.SetPathValue("registrationID", testRegID)
			rec := httptest.NewRecorder()
			ctrl.Cancel(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			data, code := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantStatus == http.StatusOK {
				var msg map[string]string
				require.NoError(t, json.Unmarshal(data, &msg))
				assert.Equal(t, "registration cancelled", msg["message"])
			}
		})
	}
}

func TestRegistrationController_MyRegistration(t *testing.T) {
	employee := domain.Identity{ID: testEmpID, CompanyID: testCoID, Role: domain.RoleEmployee}
	reg := &domain.EventRegistration{ID: testRegID, EventID: testEventID, EmployeeID: testEmpID}

	t.Run("found", func(t *testing.T) {
		svc := &fakeRegistrationService{reg: reg}
		ctrl := NewRegistrationController(testLogger, svc)

		req := authedRequest(t, http.MethodGet, "/api/events/"+testEventID+"/my-registration", &employee)
		req.SetPathValue("eventID", testEventID)
		rec := httptest.NewRecorder()
		ctrl.MyRegistration(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		data, code := decodeEnvelope(t, rec)
		assert.Empty(t, code)
		var got domain.EventRegistration
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, testRegID, got.ID)
	})

	t.Run("not registered", func(t *testing.T) {
		svc := &fakeRegistrationService{getErr: domain.ErrNotFound}
		ctrl := NewRegistrationController(testLogger, svc)

		req := authedRequest(t, http.MethodGet, "/api/events/"+testEventID+"/my-registration", &employee)
		req.SetPathValue("eventID", testEventID)
		rec := httptest.NewRecorder()
		ctrl.MyRegistration(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		_, code := decodeEnvelope(t, rec)
		assert.Equal(t, "not_found", code)
	})
}
