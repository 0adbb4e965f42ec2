// Package model defines the persisted entities of the Nucleus backend.
// Every entity except User carries a UserID; queries are always scoped
// to the authenticated user.
package model

import "time"

// TransactionType distinguishes income from expense transactions.
type TransactionType string

// Transaction type constants.
const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// User is an account in the multi-tenant system.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	FullName       string    `json:"full_name"`
	IsActive       bool      `json:"is_active"`
	IsSuperuser    bool      `json:"is_superuser"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PantryItem tracks one food inventory entry.
type PantryItem struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Name           string     `json:"name"`
	Category       string     `json:"category,omitempty"`
	Quantity       float64    `json:"quantity"`
	Unit           string     `json:"unit,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Location       string     `json:"location,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Transaction is one financial movement, income or expense.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Budget is a monthly spending limit for one category.
type Budget struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Category     string    `json:"category"`
	MonthlyLimit float64   `json:"monthly_limit"`
	Year         string    `json:"year"`
	Month        string    `json:"month"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HuntingLocation is a stand, camera, or trail position.
type HuntingLocation struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Description string    `json:"description,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HuntingSighting records one wildlife observation, optionally tied to a location.
type HuntingSighting struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	LocationID  string    `json:"location_id,omitempty"`
	Species     string    `json:"species"`
	Count       float64   `json:"count"`
	Date        time.Time `json:"date"`
	Gender      string    `json:"gender,omitempty"`
	Description string    `json:"description,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Weather     string    `json:"weather,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Photo is a stored photo record with location and metadata.
type Photo struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	FilePath     string     `json:"file_path"`
	FileName     string     `json:"file_name"`
	FileSize     float64    `json:"file_size,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	LocationName string     `json:"location_name,omitempty"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
	Camera       string     `json:"camera,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Description  string     `json:"description,omitempty"`
	AICaption    string     `json:"ai_caption,omitempty"`
	AITags       []string   `json:"ai_tags,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
