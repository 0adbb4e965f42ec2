package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nucleus-app/nucleus/internal/model"
)

// PantryItemPatch describes a partial update to a pantry item. Nil fields
// are left unchanged.
type PantryItemPatch struct {
	Name           *string
	Category       *string
	Quantity       *float64
	Unit           *string
	ExpirationDate *time.Time
	Location       *string
	Notes          *string
}

// ListPantryItems returns all pantry items owned by the user.
func (s *Store) ListPantryItems(ctx context.Context, userID string) ([]model.PantryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, category, quantity, unit, expiration_date, location, notes, created_at, updated_at
		FROM pantry_items WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list pantry items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.PantryItem
	for rows.Next() {
		item, err := scanPantryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: pantry rows: %w", err)
	}
	return items, nil
}

// ListExpiringPantryItems returns the user's items expiring on or before
// the cutoff, soonest first. Items without an expiration date are skipped.
func (s *Store) ListExpiringPantryItems(ctx context.Context, userID string, cutoff time.Time) ([]model.PantryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, category, quantity, unit, expiration_date, location, notes, created_at, updated_at
		FROM pantry_items
		WHERE user_id = ? AND expiration_date IS NOT NULL AND expiration_date <= ?
		ORDER BY expiration_date`, userID, timeText(cutoff))
	if err != nil {
		return nil, fmt.Errorf("store: list expiring pantry items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.PantryItem
	for rows.Next() {
		item, err := scanPantryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: expiring pantry rows: %w", err)
	}
	return items, nil
}

// CreatePantryItem inserts a new pantry item for the user. The id and
// timestamps are assigned here.
func (s *Store) CreatePantryItem(ctx context.Context, item model.PantryItem) (model.PantryItem, error) {
	now := time.Now().UTC()
	item.ID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Quantity == 0 {
		item.Quantity = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pantry_items (id, user_id, name, category, quantity, unit, expiration_date, location, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.Name, item.Category, item.Quantity, item.Unit,
		nullTimeText(item.ExpirationDate), item.Location, item.Notes,
		timeText(item.CreatedAt), timeText(item.UpdatedAt),
	)
	if err != nil {
		return model.PantryItem{}, fmt.Errorf("store: create pantry item: %w", err)
	}
	return item, nil
}

// GetPantryItem fetches one item by id, scoped to the user. Returns
// ErrNotFound for missing or cross-user rows.
func (s *Store) GetPantryItem(ctx context.Context, userID, id string) (model.PantryItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, category, quantity, unit, expiration_date, location, notes, created_at, updated_at
		FROM pantry_items WHERE id = ? AND user_id = ?`, id, userID)

	item, err := scanPantryItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PantryItem{}, ErrNotFound
	}
	return item, err
}

// UpdatePantryItem applies a partial update to the user's item and returns
// the updated row.
func (s *Store) UpdatePantryItem(ctx context.Context, userID, id string, patch PantryItemPatch) (model.PantryItem, error) {
	item, err := s.GetPantryItem(ctx, userID, id)
	if err != nil {
		return model.PantryItem{}, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.ExpirationDate != nil {
		item.ExpirationDate = patch.ExpirationDate
	}
	if patch.Location != nil {
		item.Location = *patch.Location
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	item.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE pantry_items
		SET name = ?, category = ?, quantity = ?, unit = ?, expiration_date = ?, location = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		item.Name, item.Category, item.Quantity, item.Unit,
		nullTimeText(item.ExpirationDate), item.Location, item.Notes,
		timeText(item.UpdatedAt), id, userID,
	)
	if err != nil {
		return model.PantryItem{}, fmt.Errorf("store: update pantry item: %w", err)
	}
	return item, nil
}

// DeletePantryItem removes the user's item. Returns ErrNotFound for missing
// or cross-user rows.
func (s *Store) DeletePantryItem(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM pantry_items WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("store: delete pantry item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanPantryItem(row scanner) (model.PantryItem, error) {
	var (
		item               model.PantryItem
		expiration         sql.NullString
		createdAt, updated string
	)
	err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Category, &item.Quantity,
		&item.Unit, &expiration, &item.Location, &item.Notes, &createdAt, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PantryItem{}, err
		}
		return model.PantryItem{}, fmt.Errorf("store: scan pantry item: %w", err)
	}

	if item.ExpirationDate, err = parseNullTime(expiration); err != nil {
		return model.PantryItem{}, err
	}
	if item.CreatedAt, err = parseTimeText(createdAt); err != nil {
		return model.PantryItem{}, err
	}
	if item.UpdatedAt, err = parseTimeText(updated); err != nil {
		return model.PantryItem{}, err
	}
	return item, nil
}
