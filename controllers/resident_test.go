package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dcode-github/hostel_listing_system/backend/middleware"
	"github.com/dcode-github/hostel_listing_system/backend/models"
)

const tenantJSON = `{
  "name": "Ali Raza",
  "cnic": "41303-1234567-1",
  "contactNumber": "+92-333-7654321",
  "hostel": "h1",
  "occupation": "student"
}`

func TestCreateTenant(t *testing.T) {
	hostels := &memHostelStore{hostels: fixtureHostels()}
	tenants := &memTenantStore{tenants: map[string]models.Tenant{}}
	h := CreateTenant(tenants, hostels, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tenants", strings.NewReader(tenantJSON)))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Tenant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, models.TenantActive, created.Status)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tenants", strings.NewReader(tenantJSON)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	orphan := strings.Replace(tenantJSON, `"h1"`, `"h404"`, 1)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tenants", strings.NewReader(orphan)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTenants(t *testing.T) {
	tenants := &memTenantStore{tenants: map[string]models.Tenant{
		"t1": {ID: "t1", Name: "Ali", HostelID: "h1"},
		"t2": {ID: "t2", Name: "Sara", HostelID: "h2"},
	}}

	rec := httptest.NewRecorder()
	GetTenants(tenants, zap.NewNop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tenants?hostel=h2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sara")
	assert.NotContains(t, rec.Body.String(), "Ali")
}

func TestCreatePayment(t *testing.T) {
	tenants := &memTenantStore{tenants: map[string]models.Tenant{
		"t1": {ID: "t1", Name: "Ali", HostelID: "h1"},
	}}
	payments := &memPaymentStore{}
	h := CreatePayment(payments, tenants, zap.NewNop())

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), middleware.AdminKey, "root"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := post(`{"tenant":"t1","hostel":"h1","amount":8000,"paymentType":"rent","dueDate":"2099-01-05T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Payment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, strings.HasPrefix(created.PaymentID, "PAY-"))
	assert.Equal(t, models.PaymentPending, created.Status)
	assert.Equal(t, "root", created.CollectedBy)

	rec = post(`{"tenant":"t1","hostel":"h2","amount":8000,"paymentType":"rent","dueDate":"2099-01-05T00:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(`{"tenant":"t9","hostel":"h1","amount":8000,"paymentType":"rent","dueDate":"2099-01-05T00:00:00Z"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = post(`{"tenant":"t1","hostel":"h1","amount":8000,"paymentType":"bribe","dueDate":"2099-01-05T00:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Len(t, payments.payments, 1)
}
