package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nucleus-app/nucleus/internal/model"
)

// ListPhotos returns all photo records owned by the user.
func (s *Store) ListPhotos(ctx context.Context, userID string) ([]model.Photo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, file_path, file_name, file_size, latitude, longitude, location_name,
		       taken_at, camera, tags, description, ai_caption, ai_tags, created_at, updated_at
		FROM photos WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list photos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var photos []model.Photo
	for rows.Next() {
		var (
			p                    model.Photo
			latitude, longitude  sql.NullFloat64
			takenAt              sql.NullString
			tags, aiTags         string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.FilePath, &p.FileName, &p.FileSize,
			&latitude, &longitude, &p.LocationName, &takenAt, &p.Camera,
			&tags, &p.Description, &p.AICaption, &aiTags, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("store: scan photo: %w", err)
		}

		if latitude.Valid {
			v := latitude.Float64
			p.Latitude = &v
		}
		if longitude.Valid {
			v := longitude.Float64
			p.Longitude = &v
		}
		if p.TakenAt, err = parseNullTime(takenAt); err != nil {
			return nil, err
		}
		if p.Tags, err = parseTags(tags); err != nil {
			return nil, err
		}
		if p.AITags, err = parseTags(aiTags); err != nil {
			return nil, err
		}
		if p.CreatedAt, err = parseTimeText(createdAt); err != nil {
			return nil, err
		}
		if p.UpdatedAt, err = parseTimeText(updatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: photo rows: %w", err)
	}
	return photos, nil
}

// CreatePhoto inserts a new photo record for the user.
func (s *Store) CreatePhoto(ctx context.Context, p model.Photo) (model.Photo, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	tags, err := tagsJSON(p.Tags)
	if err != nil {
		return model.Photo{}, err
	}
	aiTags, err := tagsJSON(p.AITags)
	if err != nil {
		return model.Photo{}, err
	}

	var latitude, longitude any
	if p.Latitude != nil {
		latitude = *p.Latitude
	}
	if p.Longitude != nil {
		longitude = *p.Longitude
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO photos (id, user_id, file_path, file_name, file_size, latitude, longitude,
		                    location_name, taken_at, camera, tags, description, ai_caption, ai_tags,
		                    created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.FilePath, p.FileName, p.FileSize, latitude, longitude,
		p.LocationName, nullTimeText(p.TakenAt), p.Camera, tags, p.Description,
		p.AICaption, aiTags, timeText(p.CreatedAt), timeText(p.UpdatedAt),
	)
	if err != nil {
		return model.Photo{}, fmt.Errorf("store: create photo: %w", err)
	}
	return p, nil
}
