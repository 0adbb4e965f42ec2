package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nucleus-app/nucleus/internal/model"
)

// ListTransactions returns all transactions owned by the user.
func (s *Store) ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, type, amount, category, description, date, created_at, updated_at
		FROM transactions WHERE user_id = ? ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Transaction
	for rows.Next() {
		var (
			tx                       model.Transaction
			date, createdAt, updated string
		)
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Category,
			&tx.Description, &date, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("store: scan transaction: %w", err)
		}
		if tx.Date, err = parseTimeText(date); err != nil {
			return nil, err
		}
		if tx.CreatedAt, err = parseTimeText(createdAt); err != nil {
			return nil, err
		}
		if tx.UpdatedAt, err = parseTimeText(updated); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: transaction rows: %w", err)
	}
	return txs, nil
}

// CreateTransaction inserts a new transaction for the user.
func (s *Store) CreateTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	now := time.Now().UTC()
	tx.ID = uuid.NewString()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, type, amount, category, description, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.Type, tx.Amount, tx.Category, tx.Description,
		timeText(tx.Date), timeText(tx.CreatedAt), timeText(tx.UpdatedAt),
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("store: create transaction: %w", err)
	}
	return tx, nil
}

// ListBudgets returns all budgets owned by the user.
func (s *Store) ListBudgets(ctx context.Context, userID string) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, category, monthly_limit, year, month, created_at, updated_at
		FROM budgets WHERE user_id = ? ORDER BY year DESC, month DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		var (
			b                  model.Budget
			createdAt, updated string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.MonthlyLimit,
			&b.Year, &b.Month, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("store: scan budget: %w", err)
		}
		if b.CreatedAt, err = parseTimeText(createdAt); err != nil {
			return nil, err
		}
		if b.UpdatedAt, err = parseTimeText(updated); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: budget rows: %w", err)
	}
	return budgets, nil
}

// CreateBudget inserts a new budget for the user.
func (s *Store) CreateBudget(ctx context.Context, b model.Budget) (model.Budget, error) {
	now := time.Now().UTC()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, user_id, category, monthly_limit, year, month, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.Category, b.MonthlyLimit, b.Year, b.Month,
		timeText(b.CreatedAt), timeText(b.UpdatedAt),
	)
	if err != nil {
		return model.Budget{}, fmt.Errorf("store: create budget: %w", err)
	}
	return b, nil
}
