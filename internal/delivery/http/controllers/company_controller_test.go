package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companyevents/internal/domain"
)

func TestCompanyController_Create(t *testing.T) {
	company := &domain.Company{ID: testCoID, Name: "Acme", Email: "hello@acme.test"}

	tests := []struct {
		name       string
		body       string
		svc        *fakeCompanyService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       `{"name":"Acme","email":"hello@acme.test","phone":"+1555"}`,
			svc:        &fakeCompanyService{company: company},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			body:       `{"email":"hello@acme.test"}`,
			svc:        &fakeCompanyService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
		{
			name:       "duplicate name",
			body:       `{"name":"Acme"}`,
			svc:        &fakeCompanyService{createErr: domain.ErrDuplicateCompanyName},
			wantStatus: http.StatusConflict,
			wantCode:   "conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewCompanyController(testLogger, tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/api/companies", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			ctrl.Create(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			data, code := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantStatus == http.StatusCreated {
				var got domain.Company
				require.NoError(t, json.Unmarshal(data, &got))
				assert.Equal(t, "Acme", got.Name)
			}
		})
	}
}

func TestCompanyController_GetAll(t *testing.T) {
	svc := &fakeCompanyService{
		companies: []*domain.Company{{ID: testCoID, Name: "Acme"}},
		total:     25,
	}
	ctrl := NewCompanyController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/companies?page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	ctrl.GetAll(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data, code := decodeEnvelope(t, rec)
	assert.Empty(t, code)
	var resp CompanyListResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Len(t, resp.Companies, 1)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 25, resp.Pagination.TotalItems)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestCompanyController_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		ctrl := NewCompanyController(testLogger, &fakeCompanyService{})

		req := httptest.NewRequest(http.MethodGet, "/api/companies/banana", nil)
		req.SetPathValue("companyID", "banana")
		rec := httptest.NewRecorder()
		ctrl.GetByID(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		_, code := decodeEnvelope(t, rec)
		assert.Equal(t, "bad_request", code)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewCompanyController(testLogger, &fakeCompanyService{getErr: domain.ErrNotFound})

		req := httptest.NewRequest(http.MethodGet, "/api/companies/"+testCoID, nil)
		req.SetPathValue("companyID", testCoID)
		rec := httptest.NewRecorder()
		ctrl.GetByID(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("found", func(t *testing.T) {
		ctrl := NewCompanyController(testLogger, &fakeCompanyService{
			company: &domain.Company{ID: testCoID, Name: "Acme"},
		})

		req := httptest.NewRequest(http.MethodGet, "/api/companies/"+testCoID, nil)
		req.SetPathValue("companyID", testCoID)
		rec := httptest.NewRecorder()
		ctrl.GetByID(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		data, _ := decodeEnvelope(t, rec)
		var got domain.Company
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, testCoID, got.ID)
	})
}

func TestCompanyController_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := NewCompanyController(testLogger, &fakeCompanyService{})

		req := httptest.NewRequest(http.MethodDelete, "/api/companies/"+testCoID, nil)
		req.SetPathValue("companyID", testCoID)
		rec := httptest.NewRecorder()
		ctrl.Delete(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		data, _ := decodeEnvelope(t, rec)
		var msg map[string]string
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "company deleted", msg["message"])
	})

	t.Run("still has dependents", func(t *testing.T) {
		ctrl := NewCompanyController(testLogger, &fakeCompanyService{
			deleteErr: domain.ErrCompanyHasDependents,
		})

		req := httptest.NewRequest(http.MethodDelete, "/api/companies/"+testCoID, nil)
		req.SetPathValue("companyID", testCoID)
		rec := httptest.NewRecorder()
		ctrl.Delete(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
		_, code := decodeEnvelope(t, rec)
		assert.Equal(t, "conflict", code)
	})
}

func TestCompanyController_ListEmployees(t *testing.T) {
	employee := domain.Identity{ID: testEmpID, CompanyID: testCoID, Role: domain.RoleEmployee}

	t.Run("no identity", func(t *testing.T) {
		ctrl := NewCompanyController(testLogger, &fakeCompanyService{})

		req := httptest.NewRequest(http.MethodGet, "/api/companies/"+testCoID+"/employees", nil)
		req.SetPathValue("companyID", testCoID)
		rec := httptest.NewRecorder()
		ctrl.ListEmployees(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("other tenant", func(t *testing.T) {
		ctrl := NewCompanyController(testLogger, &fakeCompanyService{getErr: domain.ErrForbidden})

		req := authedRequest(t, http.MethodGet, "/api/companies/"+testCoID+"/employees", &employee)
		req.SetPathValue("companyID", testCoID)
		rec := httptest.NewRecorder()
		ctrl.ListEmployees(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
		_, code := decodeEnvelope(t, rec)
		assert.Equal(t, "forbidden", code)
	})
}
