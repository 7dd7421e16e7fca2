package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/AnandRajBind/Task-Management/internal/server/models"
	"github.com/AnandRajBind/Task-Management/internal/server/services"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authResult struct {
	User   *models.User         `json:"user"`
	Tokens *services.AuthTokens `json:"tokens"`
}

type tokensResult struct {
	Tokens *services.AuthTokens `json:"tokens"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeFailure(w, http.StatusBadRequest, "email, password and name are required")
		return
	}

	user, tokens, err := s.sessions.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.logger.Warn(r.Context(), "registration failed", "error", err)
		writeError(w, err)
		return
	}

	s.logger.Info(r.Context(), "registered", "email", req.Email)
	writeData(w, http.StatusCreated, "User registered successfully", authResult{User: user, Tokens: tokens})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, tokens, err := s.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Warn(r.Context(), "login failed", "email", req.Email)
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Login successful", authResult{User: user, Tokens: tokens})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tokens, err := s.sessions.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		s.logger.Warn(r.Context(), "refresh failed", "error", err)
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Token refreshed successfully", tokensResult{Tokens: tokens})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.sessions.Logout(r.Context(), req.RefreshToken); err != nil {
		s.logger.Error(r.Context(), "logout failed", "error", err)
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Logged out successfully", nil)
}
