package server

import (
	"net/http"
	"time"

	"github.com/nucleus-app/nucleus/internal/auth"
	"github.com/nucleus-app/nucleus/internal/model"
)

type huntingLocationRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
	Notes       string  `json:"notes"`
}

type huntingSightingRequest struct {
	LocationID  string   `json:"location_id"`
	Species     string   `json:"species"`
	Count       float64  `json:"count"`
	Date        string   `json:"date"`
	Gender      string   `json:"gender"`
	Description string   `json:"description"`
	PhotoURL    string   `json:"photo_url"`
	Weather     string   `json:"weather"`
	Temperature *float64 `json:"temperature"`
	Notes       string   `json:"notes"`
}

func (s *Server) handleListHuntingLocations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locations, err := s.store.ListHuntingLocations(r.Context(), auth.UserID(r.Context()))
		if err != nil {
			s.logger.Error("list hunting locations failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not list locations")
			return
		}
		if locations == nil {
			locations = []model.HuntingLocation{}
		}
		writeJSON(w, http.StatusOK, locations)
	}
}

func (s *Server) handleCreateHuntingLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req huntingLocationRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		loc, err := s.store.CreateHuntingLocation(r.Context(), model.HuntingLocation{
			UserID:      auth.UserID(r.Context()),
			Name:        req.Name,
			Type:        req.Type,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			Description: req.Description,
			Notes:       req.Notes,
		})
		if err != nil {
			s.logger.Error("create hunting location failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not create location")
			return
		}
		writeJSON(w, http.StatusOK, loc)
	}
}

func (s *Server) handleListHuntingSightings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sightings, err := s.store.ListHuntingSightings(r.Context(), auth.UserID(r.Context()))
		if err != nil {
			s.logger.Error("list hunting sightings failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not list sightings")
			return
		}
		if sightings == nil {
			sightings = []model.HuntingSighting{}
		}
		writeJSON(w, http.StatusOK, sightings)
	}
}

func (s *Server) handleCreateHuntingSighting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req huntingSightingRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Species == "" {
			writeError(w, http.StatusBadRequest, "species is required")
			return
		}

		date := time.Now().UTC()
		if req.Date != "" {
			parsed, err := parseDate(req.Date)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid date")
				return
			}
			date = parsed
		}

		sighting, err := s.store.CreateHuntingSighting(r.Context(), model.HuntingSighting{
			UserID:      auth.UserID(r.Context()),
			LocationID:  req.LocationID,
			Species:     req.Species,
			Count:       req.Count,
			Date:        date,
			Gender:      req.Gender,
			Description: req.Description,
			PhotoURL:    req.PhotoURL,
			Weather:     req.Weather,
			Temperature: req.Temperature,
			Notes:       req.Notes,
		})
		if err != nil {
			s.logger.Error("create hunting sighting failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not create sighting")
			return
		}
		writeJSON(w, http.StatusOK, sighting)
	}
}
