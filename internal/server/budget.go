package server

import (
	"net/http"
	"time"

	"github.com/nucleus-app/nucleus/internal/auth"
	"github.com/nucleus-app/nucleus/internal/model"
)

type transactionRequest struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

type budgetRequest struct {
	Category     string  `json:"category"`
	MonthlyLimit float64 `json:"monthly_limit"`
	Year         string  `json:"year"`
	Month        string  `json:"month"`
}

func (s *Server) handleListTransactions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txs, err := s.store.ListTransactions(r.Context(), auth.UserID(r.Context()))
		if err != nil {
			s.logger.Error("list transactions failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not list transactions")
			return
		}
		if txs == nil {
			txs = []model.Transaction{}
		}
		writeJSON(w, http.StatusOK, txs)
	}
}

func (s *Server) handleCreateTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transactionRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		txType := model.TransactionType(req.Type)
		if txType != model.TransactionIncome && txType != model.TransactionExpense {
			writeError(w, http.StatusBadRequest, "type must be income or expense")
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

		tx, err := s.store.CreateTransaction(r.Context(), model.Transaction{
			UserID:      auth.UserID(r.Context()),
			Type:        txType,
			Amount:      req.Amount,
			Category:    req.Category,
			Description: req.Description,
			Date:        date,
		})
		if err != nil {
			s.logger.Error("create transaction failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not create transaction")
			return
		}
		writeJSON(w, http.StatusOK, tx)
	}
}

func (s *Server) handleListBudgets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		budgets, err := s.store.ListBudgets(r.Context(), auth.UserID(r.Context()))
		if err != nil {
			s.logger.Error("list budgets failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not list budgets")
			return
		}
		if budgets == nil {
			budgets = []model.Budget{}
		}
		writeJSON(w, http.StatusOK, budgets)
	}
}

func (s *Server) handleCreateBudget() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req budgetRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Category == "" {
			writeError(w, http.StatusBadRequest, "category is required")
			return
		}

		b, err := s.store.CreateBudget(r.Context(), model.Budget{
			UserID:       auth.UserID(r.Context()),
			Category:     req.Category,
			MonthlyLimit: req.MonthlyLimit,
			Year:         req.Year,
			Month:        req.Month,
		})
		if err != nil {
			s.logger.Error("create budget failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not create budget")
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}
