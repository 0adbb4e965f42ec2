package server

import (
	"net/http"

	"github.com/nucleus-app/nucleus/internal/auth"
)

// chatSystemContext frames every chat request; clients cannot override it.
const (
	chatSystemContext    = "You are helping the user manage their life through the Nucleus app."
	summarySystemContext = "Provide a concise summary for the user's life management system."
	unconfiguredSummary  = "AI service is not configured."
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
	UserID  string `json:"user_id"`
}

// handleChat answers with the assistant. AI failures never produce error
// statuses; degraded replies come back as normal 200 payloads.
func (s *Server) handleChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Message == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}

		userID := auth.UserID(r.Context())
		reply := s.assistant.Chat(r.Context(), req.Message, chatSystemContext, userID)
		writeJSON(w, http.StatusOK, chatResponse{Message: reply, UserID: userID})
	}
}

func (s *Server) handleSummarize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Message == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}

		summary, ok := s.assistant.GenerateSummary(r.Context(), req.Message, summarySystemContext)
		if !ok {
			summary = unconfiguredSummary
		}
		writeJSON(w, http.StatusOK, summaryResponse{Summary: summary, UserID: auth.UserID(r.Context())})
	}
}
