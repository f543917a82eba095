package handlers

import (
	"errors"
	"net/http"

	"github.com/vaughan-dsouza/accountd/internal/service"
	"github.com/vaughan-dsouza/accountd/internal/store"
	"github.com/vaughan-dsouza/accountd/internal/utils"
)

type Handler struct {
	Auth  *AuthHandler
	Users *UserHandler
}

func NewHandler(svc *service.AccountService) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(svc),
		Users: NewUserHandler(svc),
	}
}

func (h *Handler) Greet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hola desde mi-app!"))
}

// serviceError maps the closed error taxonomy to HTTP; anything unclassified
// stays an opaque 500 so store internals never reach the wire.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingField), errors.Is(err, store.ErrEmailRequired):
		utils.JSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.JSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, store.ErrNotFound):
		utils.JSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateEmail):
		utils.JSONError(w, http.StatusConflict, err.Error())
	default:
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
	}
}
