package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/dcode-github/hostel_listing_system/backend/models"
	"github.com/dcode-github/hostel_listing_system/backend/repository"
	"github.com/dcode-github/hostel_listing_system/backend/utils"
)

func LoginAdmin(admins repository.AdminStore, tokens *utils.JWTManager, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			logger.Info("error decoding login credentials", zap.Error(err))
			writeError(w, http.StatusBadRequest, "Invalid payload")
			return
		}

		admin, err := admins.FindByUsername(r.Context(), credentials.Username)
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("login for unknown admin", zap.String("username", credentials.Username))
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if err != nil {
			logger.Error("admin lookup failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if !utils.CheckPasswordHash(credentials.Password, admin.PasswordHash) {
			logger.Info("invalid credentials", zap.String("username", credentials.Username))
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := tokens.GenerateJWT(admin.Username)
		if err != nil {
			logger.Error("error generating JWT token", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to generate token")
			return
		}

		writeJSON(w, http.StatusOK, Response{Message: "Login successful", Token: token})
	}
}
