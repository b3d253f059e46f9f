package httpserver

import (
	"net/http"

	"chore-tracker/internal/config"
	"chore-tracker/internal/transport/httpserver/handler"
	"chore-tracker/internal/transport/httpserver/middleware"
	"chore-tracker/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, guard *middleware.Guard, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/login", handlers.Login)

		r.Group(func(r chi.Router) {
			r.Use(guard.Middleware)

			r.Post("/auth/logout", handlers.Logout)

			r.Get("/users/me", handlers.GetMe)
			r.Put("/users/me", handlers.UpdateMe)
			r.Delete("/users/me", handlers.DeleteMe)

			r.Get("/families", handlers.ListFamilies)
			r.Post("/families", handlers.CreateFamily)
			r.Get("/families/{id}", handlers.GetFamily)
			r.Put("/families/{id}", handlers.UpdateFamily)
			r.Delete("/families/{id}", handlers.DeleteFamily)

			r.Get("/children", handlers.ListChildren)
			r.Post("/children", handlers.CreateChild)
			r.Get("/children/{id}", handlers.GetChild)
			r.Put("/children/{id}", handlers.UpdateChild)
			r.Delete("/children/{id}", handlers.DeleteChild)

			r.Get("/chores", handlers.ListChores)
			r.Post("/chores", handlers.CreateChore)
			r.Get("/chores/{id}", handlers.GetChore)
			r.Put("/chores/{id}", handlers.UpdateChore)
			r.Delete("/chores/{id}", handlers.DeleteChore)
		})
	})

	return r
}
