package suggestion

import (
	"context"

	"github.com/habitflow-app/habitflow-api/internal/config"
	"github.com/habitflow-app/habitflow-api/internal/habit"
	"github.com/habitflow-app/habitflow-api/internal/notification"
	"github.com/habitflow-app/habitflow-api/internal/user"
)

type SuggestionContainer struct {
	Handler *Handler
	Service Service
}

func NewSuggestionContainer(ctx context.Context, userRepo user.UserRepository, habitRepo habit.HabitRepository, habits habit.HabitService, dispatcher notification.Dispatcher) *SuggestionContainer {
	provider, err := NewGeminiProvider(ctx)
	if err != nil {
		config.Logger().WithError(err).Error("Gemini initialization failed, suggestions will use fallback content")
		provider = failingProvider{err: err}
	}

	service := NewService(provider, userRepo, habitRepo, habits, dispatcher)
	handler := NewHandler(service)

	return &SuggestionContainer{
		Handler: handler,
		Service: service,
	}
}

// failingProvider makes every prompt fail so the service's fallback path
// serves static suggestions when the model client is unavailable.
type failingProvider struct {
	err error
}

func (p failingProvider) SendPrompt(ctx context.Context, system, user string) (string, error) {
	return "", p.err
}
