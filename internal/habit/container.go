package habit

import (
	"github.com/habitflow-app/habitflow-api/internal/notification"
	"gorm.io/gorm"
)

type HabitContainer struct {
	Handler *Handler
	Service HabitService
	Repo    HabitRepository
}

func NewHabitContainer(db *gorm.DB, dispatcher notification.Dispatcher) *HabitContainer {
	repo := NewRepository(db)
	service := NewService(repo, dispatcher)
	handler := NewHandler(service)

	return &HabitContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
