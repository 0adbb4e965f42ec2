package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// timeText formats a timestamp for storage.
func timeText(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTimeText parses a stored timestamp.
func parseTimeText(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("store: parse time %q: %w", s, err)
	}
	return t, nil
}

// nullTimeText formats an optional timestamp, returning NULL for nil.
func nullTimeText(t *time.Time) any {
	if t == nil {
		return nil
	}
	return timeText(*t)
}

// parseNullTime converts a nullable stored timestamp.
func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTimeText(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// tagsJSON serialises a string slice, defaulting to an empty JSON array.
func tagsJSON(tags []string) (string, error) {
	if tags == nil {
		return "[]", nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("store: marshal tags: %w", err)
	}
	return string(b), nil
}

// parseTags deserialises a stored string slice.
func parseTags(s string) ([]string, error) {
	if s == "" || s == "[]" || s == "null" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, fmt.Errorf("store: unmarshal tags: %w", err)
	}
	return tags, nil
}
