package server

import (
	"errors"
	"net/http"

	"github.com/nucleus-app/nucleus/internal/auth"
	"github.com/nucleus-app/nucleus/internal/model"
	"github.com/nucleus-app/nucleus/internal/store"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is returned by both register and login.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}

func (s *Server) issueTokens(w http.ResponseWriter, u model.User) {
	access, err := s.issuer.AccessToken(u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	refresh, err := s.issuer.RefreshToken(u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		UserID:       u.ID,
		Email:        u.Email,
	})
}

func (s *Server) handleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not hash password")
			return
		}

		u, err := s.store.CreateUser(r.Context(), req.Email, hashed, req.FullName)
		if errors.Is(err, store.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		if err != nil {
			s.logger.Error("register failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not create user")
			return
		}

		s.issueTokens(w, u)
	}
}

func (s *Server) handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		u, err := s.store.GetUserByEmail(r.Context(), req.Email)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		if err != nil {
			s.logger.Error("login failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not look up user")
			return
		}

		if !auth.VerifyPassword(req.Password, u.HashedPassword) {
			writeError(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		if !u.IsActive {
			writeError(w, http.StatusForbidden, "Inactive user")
			return
		}

		s.issueTokens(w, u)
	}
}
