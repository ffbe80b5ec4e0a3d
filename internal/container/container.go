package container

import (
	"context"
	"log"
	"os"

	"github.com/habitflow-app/habitflow-api/internal/auth"
	"github.com/habitflow-app/habitflow-api/internal/choice"
	"github.com/habitflow-app/habitflow-api/internal/config"
	"github.com/habitflow-app/habitflow-api/internal/habit"
	"github.com/habitflow-app/habitflow-api/internal/notification"
	"github.com/habitflow-app/habitflow-api/internal/scheduler"
	"github.com/habitflow-app/habitflow-api/internal/suggestion"
	"github.com/habitflow-app/habitflow-api/internal/user"
)

type Container struct {
	UserContainer         *user.UserContainer
	HabitContainer        *habit.HabitContainer
	NotificationContainer *notification.NotificationContainer
	SuggestionContainer   *suggestion.SuggestionContainer
	ChoiceHandler         *choice.Handler
	Scheduler             *scheduler.Scheduler
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	ctx := context.Background()
	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(ctx, dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(&user.User{}, &habit.Habit{}, &notification.Delivery{}); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB)
	notificationContainer := notification.NewNotificationContainer(ctx, config.DB, userContainer.Repo)
	habitContainer := habit.NewHabitContainer(config.DB, notificationContainer.Dispatcher)
	suggestionContainer := suggestion.NewSuggestionContainer(
		ctx,
		userContainer.Repo,
		habitContainer.Repo,
		habitContainer.Service,
		notificationContainer.Dispatcher,
	)

	sched := scheduler.New(userContainer.Repo, habitContainer.Repo, notificationContainer.Dispatcher)

	return &Container{
		UserContainer:         userContainer,
		HabitContainer:        habitContainer,
		NotificationContainer: notificationContainer,
		SuggestionContainer:   suggestionContainer,
		ChoiceHandler:         choice.NewHandler(),
		Scheduler:             sched,
	}
}
