package choice

import (
	"net/http"

	"github.com/habitflow-app/habitflow-api/internal/config"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func options(values ...string) []Option {
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Value: v, Label: v})
	}
	return opts
}

// GetProfileChoices serves the static option lists the registration form
// renders. Public route.
func (h *Handler) GetProfileChoices(w http.ResponseWriter, r *http.Request) {
	choices := map[string][]Option{
		"gender":        options("Male", "Female", "Non-binary", "Other", "Prefer not to say"),
		"fitness_level": options("Beginner", "Intermediate", "Advanced", "Professional"),
		"motivation_level": options(
			"1 - Very Low", "2 - Low", "3 - Average", "4 - High", "5 - Very High"),
		"preferred_workout_time": options(
			"Morning (6-9 AM)", "Late Morning (9-12 PM)", "Afternoon (12-3 PM)",
			"Late Afternoon (3-6 PM)", "Evening (6-9 PM)", "Night (9-12 AM)"),
		"primary_goal": options(
			"Weight Loss", "Muscle Gain", "General Fitness",
			"Endurance Training", "Event Preparation"),
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile choices fetched",
		"data":    choices,
	})
}
