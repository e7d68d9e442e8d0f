// Package http provides HTTP handlers for the catalog API: user
// authentication and product CRUD.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ilyakh/ShopKeeper/internal/models"
	"github.com/ilyakh/ShopKeeper/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user and returns its id and a bearer token.
	Register(ctx context.Context, username, password, email string) (int64, string, error)
	// Login verifies credentials and returns the user id and a bearer token.
	Login(ctx context.Context, username, password string) (int64, string, error)
}

// AuthHandler handles HTTP requests for user registration and sign-in.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// SignUp handles POST /api/auth/signup.
// It expects a JSON body with non-empty "username" and "password" fields.
// The "secretResponse" field is accepted but not validated. On success it
// responds 200 with the new user id and a bearer token.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id, token, err := h.AuthService.Register(r.Context(), req.Username, req.Password, req.Email)
	if errors.Is(err, service.ErrUserExists) {
		http.Error(w, "user already exists", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.RegistrationResponse{ID: id, Token: token})
}

// SignIn handles POST /api/auth/signin.
// It expects a JSON body with "username" and "password". Unknown users and
// wrong passwords both yield 401. On success it responds 200 with the user
// id and a bearer token.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id, token, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.LoginResponse{ID: id, Token: token})
}
