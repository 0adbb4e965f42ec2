package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nucleus-app/nucleus/internal/auth"
	"github.com/nucleus-app/nucleus/internal/model"
	"github.com/nucleus-app/nucleus/internal/store"
)

// pantryItemRequest doubles as the create body and the update patch.
// Nil fields in an update leave the column unchanged.
type pantryItemRequest struct {
	Name           *string  `json:"name"`
	Category       *string  `json:"category"`
	Quantity       *float64 `json:"quantity"`
	Unit           *string  `json:"unit"`
	ExpirationDate *string  `json:"expiration_date"`
	Location       *string  `json:"location"`
	Notes          *string  `json:"notes"`
}

func (s *Server) handleListPantry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.store.ListPantryItems(r.Context(), auth.UserID(r.Context()))
		if err != nil {
			s.logger.Error("list pantry failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not list pantry items")
			return
		}
		if items == nil {
			items = []model.PantryItem{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func (s *Server) handleCreatePantry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pantryItemRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Name == nil || *req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		item := model.PantryItem{
			UserID: auth.UserID(r.Context()),
			Name:   *req.Name,
		}
		if req.Category != nil {
			item.Category = *req.Category
		}
		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		if req.Unit != nil {
			item.Unit = *req.Unit
		}
		if req.Location != nil {
			item.Location = *req.Location
		}
		if req.Notes != nil {
			item.Notes = *req.Notes
		}
		if req.ExpirationDate != nil && *req.ExpirationDate != "" {
			t, err := parseDate(*req.ExpirationDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid expiration_date")
				return
			}
			item.ExpirationDate = &t
		}

		created, err := s.store.CreatePantryItem(r.Context(), item)
		if err != nil {
			s.logger.Error("create pantry item failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not create pantry item")
			return
		}
		writeJSON(w, http.StatusOK, created)
	}
}

func (s *Server) handleGetPantry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := s.store.GetPantryItem(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		if err != nil {
			s.logger.Error("get pantry item failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not load pantry item")
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (s *Server) handleUpdatePantry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pantryItemRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		patch := store.PantryItemPatch{
			Name:     req.Name,
			Category: req.Category,
			Quantity: req.Quantity,
			Unit:     req.Unit,
			Location: req.Location,
			Notes:    req.Notes,
		}
		if req.ExpirationDate != nil && *req.ExpirationDate != "" {
			t, err := parseDate(*req.ExpirationDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid expiration_date")
				return
			}
			patch.ExpirationDate = &t
		}

		item, err := s.store.UpdatePantryItem(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"), patch)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		if err != nil {
			s.logger.Error("update pantry item failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not update pantry item")
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (s *Server) handleDeletePantry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.store.DeletePantryItem(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		if err != nil {
			s.logger.Error("delete pantry item failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not delete pantry item")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
	}
}
