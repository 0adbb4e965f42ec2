package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nucleus-app/nucleus/internal/model"
)

// CreateUser inserts a new user. Returns ErrEmailTaken if the email is
// already registered.
func (s *Store) CreateUser(ctx context.Context, email, hashedPassword, fullName string) (model.User, error) {
	now := time.Now().UTC()
	u := model.User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: hashedPassword,
		FullName:       fullName,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, hashed_password, full_name, is_active, is_superuser, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.HashedPassword, u.FullName, u.IsActive, u.IsSuperuser,
		timeText(u.CreatedAt), timeText(u.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("store: create user: %w", err)
	}

	return u, nil
}

// GetUserByEmail looks up a user by email. Returns ErrNotFound if absent.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, hashed_password, full_name, is_active, is_superuser, created_at, updated_at
		FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// GetUserByID looks up a user by id. Returns ErrNotFound if absent.
func (s *Store) GetUserByID(ctx context.Context, id string) (model.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, hashed_password, full_name, is_active, is_superuser, created_at, updated_at
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// ListUserIDs returns the ids of all active users. Used by scheduled jobs
// that iterate every tenant.
func (s *Store) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM users WHERE is_active = 1 ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("store: list user ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list user ids rows: %w", err)
	}
	return ids, nil
}

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u                  model.User
		createdAt, updated string
	)
	err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &u.IsActive, &u.IsSuperuser, &createdAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("store: scan user: %w", err)
	}

	if u.CreatedAt, err = parseTimeText(createdAt); err != nil {
		return model.User{}, err
	}
	if u.UpdatedAt, err = parseTimeText(updated); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// isUniqueViolation reports whether the error is a SQLite UNIQUE constraint
// failure. modernc.org/sqlite exposes these as plain errors with the SQLite
// message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
