package auth

import (
	"net/http"
	"time"

	"github.com/habitflow-app/habitflow-api/internal/config"
)

const refreshTTL = 24 * time.Hour

// Refresh exchanges a still-valid token for a fresh one with a renewed
// expiry, keeping mobile sessions alive without re-entering credentials.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	tokenStr := tokenFromRequest(r)
	if tokenStr == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	claims, err := ValidateJWT(tokenStr)
	if err != nil {
		log.WithError(err).Warn("Rejected refresh with invalid token")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := GenerateJWT(claims.UserID, claims.Role, refreshTTL)
	if err != nil {
		log.WithError(err).Error("Failed to issue refreshed token")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, SessionCookie(token, int(refreshTTL.Seconds())))

	config.JSON(w, http.StatusOK, map[string]string{"token": token})
}
