package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaughan-dsouza/accountd/internal/service"
	"github.com/vaughan-dsouza/accountd/internal/store"
	"github.com/vaughan-dsouza/accountd/internal/utils"
)

type UserHandler struct {
	svc *service.AccountService
}

func NewUserHandler(svc *service.AccountService) *UserHandler {
	return &UserHandler{svc: svc}
}

type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	user, err := h.svc.CreatePlainAccount(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListAccounts(r.Context(), store.MaxListLimit)
	if err != nil {
		serviceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.svc.GetAccount(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.DeleteAccount(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
