package notification

import (
	"context"
	"os"

	"github.com/habitflow-app/habitflow-api/internal/config"
	"github.com/habitflow-app/habitflow-api/internal/user"
	"gorm.io/gorm"
)

type NotificationContainer struct {
	Handler    *Handler
	Service    Service
	Dispatcher Dispatcher
}

func NewNotificationContainer(ctx context.Context, db *gorm.DB, userRepo user.UserRepository) *NotificationContainer {
	dispatcher, err := NewFCMDispatcher(ctx, os.Getenv("FIREBASE_CREDENTIALS_FILE"), userRepo)
	if err != nil {
		config.Logger().WithError(err).Error("Firebase initialization failed, push delivery disabled")
		dispatcher = NewDisabledDispatcher()
	}

	deliveryRepo := NewDeliveryRepository(db)
	dispatcher = NewLoggingDispatcher(dispatcher, deliveryRepo)

	service := NewService(userRepo, deliveryRepo, dispatcher)
	handler := NewHandler(service)

	return &NotificationContainer{
		Handler:    handler,
		Service:    service,
		Dispatcher: dispatcher,
	}
}
