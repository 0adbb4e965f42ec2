package server

import (
	"net/http"

	"github.com/nucleus-app/nucleus/internal/auth"
	"github.com/nucleus-app/nucleus/internal/model"
)

type photoRequest struct {
	FilePath     string   `json:"file_path"`
	FileName     string   `json:"file_name"`
	FileSize     float64  `json:"file_size"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	LocationName string   `json:"location_name"`
	TakenAt      string   `json:"taken_at"`
	Camera       string   `json:"camera"`
	Tags         []string `json:"tags"`
	Description  string   `json:"description"`
	AICaption    string   `json:"ai_caption"`
	AITags       []string `json:"ai_tags"`
}

func (s *Server) handleListPhotos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		photos, err := s.store.ListPhotos(r.Context(), auth.UserID(r.Context()))
		if err != nil {
			s.logger.Error("list photos failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not list photos")
			return
		}
		if photos == nil {
			photos = []model.Photo{}
		}
		writeJSON(w, http.StatusOK, photos)
	}
}

func (s *Server) handleCreatePhoto() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req photoRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.FilePath == "" || req.FileName == "" {
			writeError(w, http.StatusBadRequest, "file_path and file_name are required")
			return
		}

		photo := model.Photo{
			UserID:       auth.UserID(r.Context()),
			FilePath:     req.FilePath,
			FileName:     req.FileName,
			FileSize:     req.FileSize,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			LocationName: req.LocationName,
			Camera:       req.Camera,
			Tags:         req.Tags,
			Description:  req.Description,
			AICaption:    req.AICaption,
			AITags:       req.AITags,
		}
		if req.TakenAt != "" {
			t, err := parseDate(req.TakenAt)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid taken_at")
				return
			}
			photo.TakenAt = &t
		}

		created, err := s.store.CreatePhoto(r.Context(), photo)
		if err != nil {
			s.logger.Error("create photo failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not create photo")
			return
		}
		writeJSON(w, http.StatusOK, created)
	}
}
