package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.History)
	r.Post("/token", h.UpdateToken)
	r.Delete("/token", h.RemoveToken)
	r.Get("/preferences", h.GetPreferences)
	r.Put("/preferences", h.UpdatePreferences)
	r.Post("/test", h.SendTest)

	return r
}
