package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dcode-github/hostel_listing_system/backend/middleware"
	"github.com/dcode-github/hostel_listing_system/backend/models"
	"github.com/dcode-github/hostel_listing_system/backend/repository"
)

func GetHostels(store repository.HostelStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var opts repository.ListOptions
		var err error
		if opts.Limit, err = queryInt(q, "limit"); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		if opts.Page, err = queryInt(q, "page"); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid page")
			return
		}
		if opts.MinRent, err = queryFloat(q, "minRent"); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid minRent")
			return
		}
		if opts.MaxRent, err = queryFloat(q, "maxRent"); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid maxRent")
			return
		}
		opts.Area = q.Get("area")
		opts.RoomType = models.RoomType(q.Get("roomType"))

		page, err := store.List(r.Context(), opts)
		if err != nil {
			writeStoreError(w, logger, "list hostels", err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func GetAvailableHostels(store repository.HostelStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit, err := queryInt(q, "limit")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		pageNum, err := queryInt(q, "page")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid page")
			return
		}

		page, err := store.ListAvailable(r.Context(), limit, pageNum)
		if err != nil {
			writeStoreError(w, logger, "list available hostels", err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func SearchHostels(store repository.HostelStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit, err := queryInt(q, "limit")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}

		hostels, err := store.Search(r.Context(), q.Get("q"), limit)
		if err != nil {
			writeStoreError(w, logger, "search hostels", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"hostels": hostels})
	}
}

func GetHostelByID(store repository.HostelStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hostel, err := store.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeStoreError(w, logger, "get hostel", err)
			return
		}
		writeJSON(w, http.StatusOK, hostel)
	}
}

func CreateHostel(store repository.HostelStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var hostel models.Hostel
		if err := json.NewDecoder(r.Body).Decode(&hostel); err != nil {
			logger.Info("invalid hostel body", zap.Error(err))
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		hostel.ID = ""
		if err := hostel.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.Create(r.Context(), &hostel); err != nil {
			writeStoreError(w, logger, "create hostel", err)
			return
		}

		admin, _ := middleware.AdminFromContext(r.Context())
		logger.Info("hostel created", zap.String("id", hostel.ID), zap.String("admin", admin))
		writeJSON(w, http.StatusCreated, hostel)
	}
}

// UpdateHostel applies the request body on top of the stored hostel, so
// fields the client leaves out keep their current values.
func UpdateHostel(store repository.HostelStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		hostel, err := store.Get(r.Context(), id)
		if err != nil {
			writeStoreError(w, logger, "load hostel for update", err)
			return
		}
		createdAt := hostel.CreatedAt

		if err := json.NewDecoder(r.Body).Decode(&hostel); err != nil {
			logger.Info("invalid hostel update body", zap.String("id", id), zap.Error(err))
			writeError(w, http.StatusBadRequest, "Invalid update data")
			return
		}
		hostel.ID = id
		hostel.CreatedAt = createdAt
		if err := hostel.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.Update(r.Context(), &hostel); err != nil {
			writeStoreError(w, logger, "update hostel", err)
			return
		}
		writeJSON(w, http.StatusOK, hostel)
	}
}

func DeleteHostel(store repository.HostelStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if err := store.Delete(r.Context(), id); err != nil {
			writeStoreError(w, logger, "delete hostel", err)
			return
		}
		writeJSON(w, http.StatusOK, Response{Message: "Hostel deleted successfully"})
	}
}

// writeStoreError maps repository errors onto HTTP statuses. Unexpected
// errors are logged and reported without detail.
func writeStoreError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, repository.ErrBadOption), errors.Is(err, models.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrDuplicate):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrReadOnly):
		writeError(w, http.StatusMethodNotAllowed, "The hostel catalog is read-only")
	default:
		logger.Error(op+" failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
