package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/nucleus-app/nucleus/internal/auth"
	"github.com/nucleus-app/nucleus/internal/store"
)

type userProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.store.GetUserByID(r.Context(), auth.UserID(r.Context()))
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			s.logger.Error("fetch profile failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not load profile")
			return
		}

		writeJSON(w, http.StatusOK, userProfile{
			ID:        u.ID,
			Email:     u.Email,
			FullName:  u.FullName,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt,
		})
	}
}
