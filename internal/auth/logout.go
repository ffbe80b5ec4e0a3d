package auth

import (
	"net/http"

	"github.com/habitflow-app/habitflow-api/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// SessionCookie builds the jwt cookie with the attribute set shared by
// login, refresh, and logout. A negative maxAge clears the cookie.
func SessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     "jwt",
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, SessionCookie("", -1))

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
