package cron

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nucleus-app/nucleus/internal/ai/memory"
	"github.com/nucleus-app/nucleus/internal/model"
	"github.com/nucleus-app/nucleus/internal/store"
)

// defaultExpiryWindow is how far ahead the digest looks for expirations.
const defaultExpiryWindow = 7 * 24 * time.Hour

// PantryExpiryJob scans every user's pantry for items expiring soon and
// writes a digest into that user's memory, so the assistant can bring up
// upcoming expirations in conversation. Skipped silently while the
// memory store is degraded.
type PantryExpiryJob struct {
	Store        *store.Store
	Memory       *memory.Store
	Logger       *slog.Logger
	ScheduleExpr string        // empty = default "0 7 * * *"
	Window       time.Duration // empty = default 7 days
	now          func() time.Time
}

// Compile-time interface check.
var _ Job = (*PantryExpiryJob)(nil)

// Name implements Job.
func (j *PantryExpiryJob) Name() string { return "pantry_expiry_digest" }

// Schedule implements Job.
func (j *PantryExpiryJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return "0 7 * * *"
}

// Run writes one digest memory per user with expiring items.
func (j *PantryExpiryJob) Run(ctx context.Context) error {
	if j.Memory == nil || !j.Memory.Available() {
		return nil
	}

	now := time.Now().UTC()
	if j.now != nil {
		now = j.now()
	}
	window := j.Window
	if window <= 0 {
		window = defaultExpiryWindow
	}
	cutoff := now.Add(window)

	userIDs, err := j.Store.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("cron: pantry expiry digest: %w", err)
	}

	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		items, err := j.Store.ListExpiringPantryItems(ctx, userID, cutoff)
		if err != nil {
			j.Logger.Error("cron: list expiring items failed", "user_id", userID, "error", err)
			continue
		}
		if len(items) == 0 {
			continue
		}

		j.Memory.Store(ctx, expiryDigest(items), userID, map[string]string{
			"source": "pantry_expiry_digest",
		})
		j.Logger.Info("cron: pantry expiry digest stored", "user_id", userID, "items", len(items))
	}
	return nil
}

// expiryDigest renders items as one readable notice, soonest first.
func expiryDigest(items []model.PantryItem) string {
	var b strings.Builder
	b.WriteString("Pantry notice: ")
	for i, item := range items {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(item.Name)
		if item.ExpirationDate != nil {
			b.WriteString(" expires ")
			b.WriteString(item.ExpirationDate.Format("2006-01-02"))
		}
	}
	b.WriteString(".")
	return b.String()
}
