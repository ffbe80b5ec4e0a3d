package notification

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/habitflow-app/habitflow-api/internal/config"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type updateTokenDTO struct {
	FCMToken string `json:"fcm_token"`
}

type updatePreferencesDTO struct {
	Notifications *bool `json:"notifications"`
}

func (h *Handler) writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	default:
		log.WithError(err).Error("Notification request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateToken(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto updateTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.UpdateToken(r.Context(), dto.FCMToken)
	if err != nil {
		h.writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "device token updated",
		"user":    resp,
	})
}

func (h *Handler) RemoveToken(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	resp, err := h.service.RemoveToken(r.Context())
	if err != nil {
		h.writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "device token removed",
		"user":    resp,
	})
}

func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto updatePreferencesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if dto.Notifications == nil {
		http.Error(w, "notifications must be a boolean value", http.StatusBadRequest)
		return
	}

	resp, err := h.service.UpdatePreferences(r.Context(), *dto.Notifications)
	if err != nil {
		h.writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	resp, err := h.service.GetPreferences(r.Context())
	if err != nil {
		h.writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	deliveries, err := h.service.History(r.Context())
	if err != nil {
		h.writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"count": len(deliveries),
		"data":  deliveries,
	})
}

func (h *Handler) SendTest(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.SendTest(r.Context()); err != nil {
		if errors.Is(err, ErrNoDeviceToken) {
			http.Error(w, "no device token registered", http.StatusBadRequest)
			return
		}
		h.writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "test notification sent"})
}
