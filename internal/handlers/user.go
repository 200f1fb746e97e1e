package handlers

import (
	"net/http"

	"job-board-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *services.UserService
	maxBytes    int64
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, maxBytes int64) *UserHandler {
	return &UserHandler{
		userService: userService,
		maxBytes:    maxBytes,
	}
}

// Register handles POST /api/v1/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r, h.maxBytes, "image")
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	defer p.Close()

	var in services.RegisterInput
	if err := bind(p.fields, &in); err != nil {
		respondFailure(w, r, err)
		return
	}

	user, err := h.userService.Register(r.Context(), in, p.file)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// List handles GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Get handles GET /api/v1/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Friends handles GET /api/v1/users/{id}/friends
func (h *UserHandler) Friends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.userService.Friends(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, friends)
}

// ToggleFriend handles PATCH /api/v1/users/{id}/{friendId}
func (h *UserHandler) ToggleFriend(w http.ResponseWriter, r *http.Request) {
	friends, err := h.userService.ToggleFriend(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "friendId"))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, friends)
}

// Edit handles PUT /api/v1/users/{id}
func (h *UserHandler) Edit(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r, h.maxBytes, "image")
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	defer p.Close()

	user, err := h.userService.Edit(r.Context(), chi.URLParam(r, "id"), p.fields, p.file)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
