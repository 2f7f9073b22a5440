package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dcode-github/hostel_listing_system/backend/middleware"
	"github.com/dcode-github/hostel_listing_system/backend/models"
	"github.com/dcode-github/hostel_listing_system/backend/repository"
)

// CreateTenant registers a tenant against an existing hostel.
func CreateTenant(tenants repository.TenantStore, hostels repository.HostelStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var tenant models.Tenant
		if err := json.NewDecoder(r.Body).Decode(&tenant); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		tenant.ID = ""
		if tenant.Status == "" {
			tenant.Status = models.TenantActive
		}
		if err := tenant.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := hostels.Get(r.Context(), tenant.HostelID); err != nil {
			writeStoreError(w, logger, "check tenant hostel", err)
			return
		}

		if err := tenants.Create(r.Context(), &tenant); err != nil {
			writeStoreError(w, logger, "create tenant", err)
			return
		}
		writeJSON(w, http.StatusCreated, tenant)
	}
}

func GetTenants(tenants repository.TenantStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := tenants.ListByHostel(r.Context(), r.URL.Query().Get("hostel"))
		if err != nil {
			writeStoreError(w, logger, "list tenants", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"tenants": list})
	}
}

func GetTenantByID(tenants repository.TenantStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, err := tenants.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeStoreError(w, logger, "get tenant", err)
			return
		}
		writeJSON(w, http.StatusOK, tenant)
	}
}

// CreatePayment records a payment for a known tenant. The collecting
// admin defaults to the caller.
func CreatePayment(payments repository.PaymentStore, tenants repository.TenantStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payment models.Payment
		if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		payment.ID = ""
		payment.PaymentID = ""
		if payment.Status == "" {
			payment.Status = models.PaymentPending
		}
		if payment.CollectedBy == "" {
			payment.CollectedBy, _ = middleware.AdminFromContext(r.Context())
		}
		if err := payment.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		tenant, err := tenants.Get(r.Context(), payment.TenantID)
		if err != nil {
			writeStoreError(w, logger, "check payment tenant", err)
			return
		}
		if tenant.HostelID != payment.HostelID {
			writeError(w, http.StatusBadRequest, "tenant does not belong to this hostel")
			return
		}

		if err := payments.Create(r.Context(), &payment); err != nil {
			writeStoreError(w, logger, "create payment", err)
			return
		}
		writeJSON(w, http.StatusCreated, payment)
	}
}

func GetPayments(payments repository.PaymentStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list, err := payments.List(r.Context(), q.Get("tenant"), q.Get("hostel"))
		if err != nil {
			writeStoreError(w, logger, "list payments", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"payments": list})
	}
}
