package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nucleus-app/nucleus/internal/model"
)

// ListHuntingLocations returns all hunting locations owned by the user.
func (s *Store) ListHuntingLocations(ctx context.Context, userID string) ([]model.HuntingLocation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, type, latitude, longitude, description, notes, created_at, updated_at
		FROM hunting_locations WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list hunting locations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var locations []model.HuntingLocation
	for rows.Next() {
		var (
			loc                model.HuntingLocation
			createdAt, updated string
		)
		if err := rows.Scan(&loc.ID, &loc.UserID, &loc.Name, &loc.Type, &loc.Latitude,
			&loc.Longitude, &loc.Description, &loc.Notes, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("store: scan hunting location: %w", err)
		}
		if loc.CreatedAt, err = parseTimeText(createdAt); err != nil {
			return nil, err
		}
		if loc.UpdatedAt, err = parseTimeText(updated); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: hunting location rows: %w", err)
	}
	return locations, nil
}

// CreateHuntingLocation inserts a new hunting location for the user.
func (s *Store) CreateHuntingLocation(ctx context.Context, loc model.HuntingLocation) (model.HuntingLocation, error) {
	now := time.Now().UTC()
	loc.ID = uuid.NewString()
	loc.CreatedAt = now
	loc.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hunting_locations (id, user_id, name, type, latitude, longitude, description, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		loc.ID, loc.UserID, loc.Name, loc.Type, loc.Latitude, loc.Longitude,
		loc.Description, loc.Notes, timeText(loc.CreatedAt), timeText(loc.UpdatedAt),
	)
	if err != nil {
		return model.HuntingLocation{}, fmt.Errorf("store: create hunting location: %w", err)
	}
	return loc, nil
}

// ListHuntingSightings returns all sightings owned by the user.
func (s *Store) ListHuntingSightings(ctx context.Context, userID string) ([]model.HuntingSighting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, location_id, species, count, date, gender, description,
		       photo_url, weather, temperature, notes, created_at, updated_at
		FROM hunting_sightings WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list hunting sightings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sightings []model.HuntingSighting
	for rows.Next() {
		var (
			sighting                 model.HuntingSighting
			locationID               sql.NullString
			temperature              sql.NullFloat64
			date, createdAt, updated string
		)
		if err := rows.Scan(&sighting.ID, &sighting.UserID, &locationID, &sighting.Species,
			&sighting.Count, &date, &sighting.Gender, &sighting.Description,
			&sighting.PhotoURL, &sighting.Weather, &temperature, &sighting.Notes,
			&createdAt, &updated); err != nil {
			return nil, fmt.Errorf("store: scan hunting sighting: %w", err)
		}

		sighting.LocationID = locationID.String
		if temperature.Valid {
			t := temperature.Float64
			sighting.Temperature = &t
		}
		if sighting.Date, err = parseTimeText(date); err != nil {
			return nil, err
		}
		if sighting.CreatedAt, err = parseTimeText(createdAt); err != nil {
			return nil, err
		}
		if sighting.UpdatedAt, err = parseTimeText(updated); err != nil {
			return nil, err
		}
		sightings = append(sightings, sighting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: hunting sighting rows: %w", err)
	}
	return sightings, nil
}

// CreateHuntingSighting inserts a new sighting for the user.
func (s *Store) CreateHuntingSighting(ctx context.Context, sighting model.HuntingSighting) (model.HuntingSighting, error) {
	now := time.Now().UTC()
	sighting.ID = uuid.NewString()
	sighting.CreatedAt = now
	sighting.UpdatedAt = now
	if sighting.Count == 0 {
		sighting.Count = 1
	}

	var locationID any
	if sighting.LocationID != "" {
		locationID = sighting.LocationID
	}
	var temperature any
	if sighting.Temperature != nil {
		temperature = *sighting.Temperature
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hunting_sightings (id, user_id, location_id, species, count, date, gender,
		                               description, photo_url, weather, temperature, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sighting.ID, sighting.UserID, locationID, sighting.Species, sighting.Count,
		timeText(sighting.Date), sighting.Gender, sighting.Description, sighting.PhotoURL,
		sighting.Weather, temperature, sighting.Notes,
		timeText(sighting.CreatedAt), timeText(sighting.UpdatedAt),
	)
	if err != nil {
		return model.HuntingSighting{}, fmt.Errorf("store: create hunting sighting: %w", err)
	}
	return sighting, nil
}
