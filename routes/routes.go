package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"go.uber.org/zap"

	"github.com/dcode-github/hostel_listing_system/backend/controllers"
	"github.com/dcode-github/hostel_listing_system/backend/middleware"
	"github.com/dcode-github/hostel_listing_system/backend/repository"
	"github.com/dcode-github/hostel_listing_system/backend/utils"
	"github.com/dcode-github/hostel_listing_system/backend/viewmode"
)

type Deps struct {
	Hostels  repository.HostelStore
	Tenants  repository.TenantStore
	Payments repository.PaymentStore
	Admins   repository.AdminStore
	Prefs    *viewmode.Preferences
	Tokens   *utils.JWTManager
	PageSize int
	Logger   *zap.Logger
}

func Routes(router *mux.Router, d Deps) {
	log := d.Logger
	authenticated := alice.New(middleware.AuthMiddleware(d.Tokens, log))

	// Auth routes
	router.HandleFunc("/login", controllers.LoginAdmin(d.Admins, d.Tokens, log)).Methods("POST")

	// Listing routes
	router.HandleFunc("/api/listing", controllers.GetListing(d.Hostels, d.Prefs, d.PageSize, log)).Methods("GET")
	router.HandleFunc("/api/listing/url", controllers.SyncListingURL(log)).Methods("POST")
	router.HandleFunc("/api/listing/export.xlsx", controllers.ExportListing(d.Hostels, d.PageSize, log)).Methods("GET")
	router.HandleFunc("/api/view-mode", controllers.GetViewMode(d.Prefs)).Methods("GET")
	router.HandleFunc("/api/view-mode", controllers.SetViewMode(d.Prefs, log)).Methods("PUT")

	// Hostel routes
	router.HandleFunc("/api/hostels", controllers.GetHostels(d.Hostels, log)).Methods("GET")
	router.HandleFunc("/api/hostels/available", controllers.GetAvailableHostels(d.Hostels, log)).Methods("GET")
	router.HandleFunc("/api/hostels/search", controllers.SearchHostels(d.Hostels, log)).Methods("GET")
	router.HandleFunc("/api/hostels/{id}", controllers.GetHostelByID(d.Hostels, log)).Methods("GET")
	router.Handle("/api/hostels", authenticated.ThenFunc(controllers.CreateHostel(d.Hostels, log))).Methods("POST")
	router.Handle("/api/hostels/{id}", authenticated.ThenFunc(controllers.UpdateHostel(d.Hostels, log))).Methods("PUT")
	router.Handle("/api/hostels/{id}", authenticated.ThenFunc(controllers.DeleteHostel(d.Hostels, log))).Methods("DELETE")

	// Tenant and payment routes
	router.Handle("/api/tenants", authenticated.ThenFunc(controllers.CreateTenant(d.Tenants, d.Hostels, log))).Methods("POST")
	router.Handle("/api/tenants", authenticated.ThenFunc(controllers.GetTenants(d.Tenants, log))).Methods("GET")
	router.Handle("/api/tenants/{id}", authenticated.ThenFunc(controllers.GetTenantByID(d.Tenants, log))).Methods("GET")
	router.Handle("/api/payments", authenticated.ThenFunc(controllers.CreatePayment(d.Payments, d.Tenants, log))).Methods("POST")
	router.Handle("/api/payments", authenticated.ThenFunc(controllers.GetPayments(d.Payments, log))).Methods("GET")
}

// Handler builds the router and wraps it in the standard middleware chain.
func Handler(d Deps) http.Handler {
	router := mux.NewRouter()
	Routes(router, d)
	return middleware.Standard(d.Logger).Then(router)
}
