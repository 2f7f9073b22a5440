package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/dcode-github/hostel_listing_system/backend/middleware"
	"github.com/dcode-github/hostel_listing_system/backend/viewmode"
)

type viewModeBody struct {
	ViewMode string `json:"viewMode"`
}

func GetViewMode(prefs *viewmode.Preferences) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := prefs.Get(r.Context(), middleware.VisitorFromContext(r.Context()))
		writeJSON(w, http.StatusOK, viewModeBody{ViewMode: string(m)})
	}
}

func SetViewMode(prefs *viewmode.Preferences, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body viewModeBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		m, err := prefs.Set(r.Context(), middleware.VisitorFromContext(r.Context()), body.ViewMode)
		if errors.Is(err, viewmode.ErrInvalidMode) {
			writeError(w, http.StatusBadRequest, `viewMode must be "grid" or "list"`)
			return
		}
		if err != nil {
			logger.Error("saving view mode failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to save view mode")
			return
		}
		writeJSON(w, http.StatusOK, viewModeBody{ViewMode: string(m)})
	}
}
