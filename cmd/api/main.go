package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/habitflow-app/habitflow-api/internal/config"
	"github.com/habitflow-app/habitflow-api/internal/container"
	"github.com/habitflow-app/habitflow-api/internal/router"
)

func main() {
	c := container.New()
	log := config.Logger()

	handler := router.New(router.RouterConfig{
		UserHandler:         c.UserContainer.Handler,
		HabitHandler:        c.HabitContainer.Handler,
		SuggestionHandler:   c.SuggestionContainer.Handler,
		NotificationHandler: c.NotificationContainer.Handler,
		ChoiceHandler:       c.ChoiceHandler,
	})

	if err := c.Scheduler.Start(); err != nil {
		log.WithError(err).Error("Scheduled notifications initialization failed")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	go func() {
		log.Infof("Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	c.Scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	if err := config.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}
}
