package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaughan-dsouza/accountd/internal/auth"
	"github.com/vaughan-dsouza/accountd/internal/middleware"
)

// Routes wires the full HTTP surface.
func Routes(h *Handler, tokens *auth.Tokens) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.Greet)

	// Public
	r.Post("/users", h.Users.Create)
	r.Get("/users", h.Users.List)
	r.Get("/users/{id}", h.Users.Get)
	r.Delete("/users/{id}", h.Users.Delete)

	r.Post("/auth/register", h.Auth.Register)
	r.Post("/auth/login", h.Auth.Login)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens))

		r.Get("/me", h.Auth.Me)
	})

	return r
}
