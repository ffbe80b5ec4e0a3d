package suggestion

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/habitflow-app/habitflow-api/internal/config"
	"github.com/habitflow-app/habitflow-api/internal/habit"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	maxSuggestions, _ := strconv.Atoi(r.URL.Query().Get("max_suggestions"))
	focusArea := r.URL.Query().Get("focus_area")

	resp, err := h.service.Suggestions(r.Context(), maxSuggestions, focusArea)
	if err != nil {
		h.writeError(w, err, log)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GetCategorySuggestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	maxSuggestions, _ := strconv.Atoi(r.URL.Query().Get("max_suggestions"))

	resp, err := h.service.CategorySuggestions(r.Context(), chi.URLParam(r, "category"), maxSuggestions)
	if err != nil {
		h.writeError(w, err, log)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GetGoalSuggestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	maxSuggestions, _ := strconv.Atoi(r.URL.Query().Get("max_suggestions"))

	resp, err := h.service.GoalSuggestions(r.Context(), chi.URLParam(r, "goal"), maxSuggestions)
	if err != nil {
		h.writeError(w, err, log)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateFromSuggestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateFromSuggestion(r.Context(), dto)
	if err != nil {
		h.writeError(w, err, log)
		return
	}

	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	resp, err := h.service.Analysis(r.Context())
	if err != nil {
		h.writeError(w, err, log)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, log logrus.FieldLogger) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, habit.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnauthorized), errors.Is(err, habit.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	default:
		log.WithError(err).Error("Failed to build suggestions")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
