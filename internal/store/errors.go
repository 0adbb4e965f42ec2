package store

import "errors"

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates the requested row does not exist or belongs
	// to another user.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken indicates a user with the given email already exists.
	ErrEmailTaken = errors.New("email already registered")
)
