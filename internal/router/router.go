package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/habitflow-app/habitflow-api/internal/auth"
	"github.com/habitflow-app/habitflow-api/internal/choice"
	"github.com/habitflow-app/habitflow-api/internal/habit"
	"github.com/habitflow-app/habitflow-api/internal/middlewares"
	"github.com/habitflow-app/habitflow-api/internal/notification"
	"github.com/habitflow-app/habitflow-api/internal/suggestion"
	"github.com/habitflow-app/habitflow-api/internal/user"
)

type RouterConfig struct {
	UserHandler         *user.Handler
	HabitHandler        *habit.Handler
	SuggestionHandler   *suggestion.Handler
	NotificationHandler *notification.Handler
	ChoiceHandler       *choice.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authHandler := auth.NewHandler()
			r.Post("/register", cfg.UserHandler.Register)
			r.Post("/login", cfg.UserHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		r.Mount("/choices", choice.Routes(cfg.ChoiceHandler))

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Mount("/habits", habit.Routes(cfg.HabitHandler))
			r.Mount("/users", user.Routes(cfg.UserHandler))
			r.Mount("/suggestions", suggestion.Routes(cfg.SuggestionHandler))
			r.Mount("/notifications", notification.Routes(cfg.NotificationHandler))
		})
	})

	return r
}
