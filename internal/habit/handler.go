package habit

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/habitflow-app/habitflow-api/internal/config"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service HabitService
}

func NewHandler(service HabitService) *Handler {
	return &Handler{service: service}
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidTimestamp):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrHabitNotFound):
		http.Error(w, "habit not found", http.StatusNotFound)
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		log.WithError(err).Error("Habit request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateHabitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Create(r.Context(), dto)
	if err != nil {
		writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	resp, err := h.service.List(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	resp, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) MarkDone(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto MarkDoneDTO
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	resp, err := h.service.MarkDone(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeError(w, log, err)
		return
	}

	status := http.StatusCreated
	if resp.Duplicate {
		status = http.StatusOK
	}
	config.JSON(w, status, resp)
}
