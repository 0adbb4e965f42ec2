package server

import (
	"net/http"

	"github.com/nucleus-app/nucleus/internal/auth"
)

// Calendar endpoints are placeholders until the external calendar
// integration lands.

func (s *Server) handleCalendarEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Calendar integration coming soon",
			"user_id": auth.UserID(r.Context()),
		})
	}
}

func (s *Server) handleCalendarSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Calendar summary coming soon",
			"user_id": auth.UserID(r.Context()),
		})
	}
}
