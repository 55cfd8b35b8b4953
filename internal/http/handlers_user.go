package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mymoney/internal/user"
)

type registerRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "corpo da requisição inválido", http.StatusBadRequest)
		return
	}

	created, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, user.ErrMissingFields):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, user.ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Register failed", "error", err)
		http.Error(w, "erro ao registrar usuário", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "corpo da requisição inválido", http.StatusBadRequest)
		return
	}

	logged, err := s.users.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Login failed", "error", err)
		http.Error(w, "erro ao efetuar login", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, logged)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Logout(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Logout failed", "error", err)
		http.Error(w, "erro ao encerrar sessão", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
