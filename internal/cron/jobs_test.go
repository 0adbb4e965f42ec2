package cron

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nucleus-app/nucleus/internal/ai/memory"
	"github.com/nucleus-app/nucleus/internal/ai/provider/providertest"
	"github.com/nucleus-app/nucleus/internal/model"
	"github.com/nucleus-app/nucleus/internal/store"
)

func newDigestFixture(t *testing.T) (*store.Store, *memory.Store, *providertest.Embedder) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	vectors, err := memory.NewChromemStore("")
	if err != nil {
		t.Fatalf("open vector store: %v", err)
	}
	if err := memory.EnsureCollection(context.Background(), vectors, "test_memory", 64); err != nil {
		t.Fatalf("ensure collection: %v", err)
	}

	embedder := providertest.NewEmbedder(64)
	mem := memory.NewStore(embedder, vectors, "test_memory", slog.New(slog.NewTextHandler(io.Discard, nil)))
	return st, mem, embedder
}

func addPantryItem(t *testing.T, st *store.Store, userID, name string, expires time.Time) {
	t.Helper()
	_, err := st.CreatePantryItem(context.Background(), model.PantryItem{
		UserID:         userID,
		Name:           name,
		ExpirationDate: &expires,
	})
	if err != nil {
		t.Fatalf("create pantry item %s: %v", name, err)
	}
}

func TestPantryExpiryDigest(t *testing.T) {
	st, mem, _ := newDigestFixture(t)
	ctx := context.Background()

	alice, err := st.CreateUser(ctx, "alice@example.com", "hash", "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	bob, err := st.CreateUser(ctx, "bob@example.com", "hash", "Bob")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	now := time.Date(2026, 8, 28, 7, 0, 0, 0, time.UTC)
	addPantryItem(t, st, alice.ID, "Milk", now.AddDate(0, 0, 3))
	addPantryItem(t, st, alice.ID, "Canned beans", now.AddDate(0, 1, 0))

	job := &PantryExpiryJob{
		Store:  st,
		Memory: mem,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return now },
	}
	if err := job.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := mem.Retrieve(ctx, "Pantry notice", alice.ID, 10)
	if len(got) != 1 {
		t.Fatalf("alice digests: got %d, want 1", len(got))
	}
	if !strings.Contains(got[0], "Milk expires 2026-08-31") {
		t.Errorf("digest missing expiring item: %q", got[0])
	}
	if strings.Contains(got[0], "Canned beans") {
		t.Errorf("digest includes item outside window: %q", got[0])
	}

	if got := mem.Retrieve(ctx, "Pantry notice", bob.ID, 10); len(got) != 0 {
		t.Errorf("bob digests: got %d, want 0", len(got))
	}
}

func TestPantryExpiryDigestSkipsWhenMemoryDegraded(t *testing.T) {
	st, _, _ := newDigestFixture(t)
	ctx := context.Background()

	u, err := st.CreateUser(ctx, "alice@example.com", "hash", "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	addPantryItem(t, st, u.ID, "Milk", time.Now().UTC().Add(24*time.Hour))

	degraded := memory.NewStore(nil, nil, "test_memory", slog.New(slog.NewTextHandler(io.Discard, nil)))
	job := &PantryExpiryJob{
		Store:  st,
		Memory: degraded,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if err := job.Run(ctx); err != nil {
		t.Fatalf("run with degraded memory: %v", err)
	}
}

func TestExpiryDigestFormat(t *testing.T) {
	d1 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	got := expiryDigest([]model.PantryItem{
		{Name: "Milk", ExpirationDate: &d1},
		{Name: "Eggs", ExpirationDate: &d2},
	})
	want := "Pantry notice: Milk expires 2026-09-01; Eggs expires 2026-09-03."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
