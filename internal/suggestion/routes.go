package suggestion

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetSuggestions)
	r.Get("/analysis", h.GetAnalysis)
	r.Get("/category/{category}", h.GetCategorySuggestions)
	r.Get("/goal/{goal}", h.GetGoalSuggestions)
	r.Post("/create", h.CreateHabit)

	return r
}
