package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nucleus-app/nucleus/internal/ai/assistant"
	"github.com/nucleus-app/nucleus/internal/ai/memory"
	"github.com/nucleus-app/nucleus/internal/ai/provider"
	"github.com/nucleus-app/nucleus/internal/ai/provider/providertest"
	"github.com/nucleus-app/nucleus/internal/auth"
	"github.com/nucleus-app/nucleus/internal/config"
	"github.com/nucleus-app/nucleus/internal/store"
)

func newTestServer(t *testing.T, llm provider.LLM) *httptest.Server {
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

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var embedder provider.Embedder
	if llm != nil {
		embedder = providertest.NewEmbedder(64)
	}
	mem := memory.NewStore(embedder, vectors, "test_memory", logger)
	asst := assistant.New(llm, mem, logger)
	t.Cleanup(asst.Flush)

	issuer := auth.NewTokenIssuer("test-secret", 30*time.Minute, 7*24*time.Hour)
	srv := New(config.ServerConfig{}, st, issuer, asst, "test", logger)

	ts := httptest.NewServer(srv.buildRouter())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func registerUser(t *testing.T, ts *httptest.Server, email string) tokenResponse {
	t.Helper()

	resp, body := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":     email,
		"password":  "hunter2!",
		"full_name": "Test User",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register %s: status %d: %s", email, resp.StatusCode, body)
	}

	var tokens tokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		t.Fatalf("decode tokens: %v", err)
	}
	return tokens
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t, nil)

	tokens := registerUser(t, ts, "alice@example.com")
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("register returned empty tokens")
	}
	if tokens.TokenType != "bearer" {
		t.Errorf("token_type: got %q", tokens.TokenType)
	}

	resp, body := doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "hunter2!",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d: %s", resp.StatusCode, body)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t, nil)
	registerUser(t, ts, "alice@example.com")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "alice@example.com",
		"password": "other",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Email already registered") {
		t.Errorf("body: %s", body)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t, nil)
	registerUser(t, ts, "alice@example.com")

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", resp.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, _ := doJSON(t, ts, http.MethodGet, "/api/pantry", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want 401", resp.StatusCode)
	}
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	ts := newTestServer(t, nil)
	tokens := registerUser(t, ts, "alice@example.com")

	resp, _ := doJSON(t, ts, http.MethodGet, "/api/pantry", tokens.RefreshToken, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("refresh token: got %d, want 401", resp.StatusCode)
	}
}

func TestMe(t *testing.T) {
	ts := newTestServer(t, nil)
	tokens := registerUser(t, ts, "alice@example.com")

	resp, body := doJSON(t, ts, http.MethodGet, "/api/users/me", tokens.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}

	var profile userProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Email != "alice@example.com" || profile.FullName != "Test User" || !profile.IsActive {
		t.Errorf("profile: %+v", profile)
	}
}

func TestPantryCRUD(t *testing.T) {
	ts := newTestServer(t, nil)
	alice := registerUser(t, ts, "alice@example.com")
	bob := registerUser(t, ts, "bob@example.com")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/pantry", alice.AccessToken, map[string]any{
		"name":            "Flour",
		"category":        "baking",
		"expiration_date": "2027-01-15",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create: status %d: %s", resp.StatusCode, body)
	}
	var created struct {
		ID       string  `json:"id"`
		Quantity float64 `json:"quantity"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode created item: %v", err)
	}
	if created.Quantity != 1 {
		t.Errorf("default quantity: got %v, want 1", created.Quantity)
	}

	resp, body = doJSON(t, ts, http.MethodGet, "/api/pantry", alice.AccessToken, nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Flour") {
		t.Errorf("list: status %d body %s", resp.StatusCode, body)
	}

	// Other tenants never see or touch the item.
	resp, _ = doJSON(t, ts, http.MethodGet, "/api/pantry/"+created.ID, bob.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-user get: got %d, want 404", resp.StatusCode)
	}
	resp, _ = doJSON(t, ts, http.MethodDelete, "/api/pantry/"+created.ID, bob.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-user delete: got %d, want 404", resp.StatusCode)
	}

	resp, body = doJSON(t, ts, http.MethodPut, "/api/pantry/"+created.ID, alice.AccessToken, map[string]any{
		"quantity": 2.5,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status %d: %s", resp.StatusCode, body)
	}
	var updated struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
	}
	if err := json.Unmarshal(body, &updated); err != nil {
		t.Fatalf("decode updated item: %v", err)
	}
	if updated.Name != "Flour" || updated.Quantity != 2.5 {
		t.Errorf("partial update: %+v", updated)
	}

	resp, _ = doJSON(t, ts, http.MethodDelete, "/api/pantry/"+created.ID, alice.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("delete: got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, ts, http.MethodGet, "/api/pantry/"+created.ID, alice.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete: got %d, want 404", resp.StatusCode)
	}
}

func TestTransactionTypeValidation(t *testing.T) {
	ts := newTestServer(t, nil)
	tokens := registerUser(t, ts, "alice@example.com")

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/budget/transactions", tokens.AccessToken, map[string]any{
		"type":   "loan",
		"amount": 10,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid type: got %d, want 400", resp.StatusCode)
	}

	resp, body := doJSON(t, ts, http.MethodPost, "/api/budget/transactions", tokens.AccessToken, map[string]any{
		"type":     "expense",
		"amount":   42.5,
		"category": "groceries",
		"date":     "2026-08-01",
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("create: status %d: %s", resp.StatusCode, body)
	}
}

func TestHuntingEndpoints(t *testing.T) {
	ts := newTestServer(t, nil)
	tokens := registerUser(t, ts, "alice@example.com")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/hunting/locations", tokens.AccessToken, map[string]any{
		"name":      "North stand",
		"latitude":  44.97,
		"longitude": -93.26,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create location: status %d: %s", resp.StatusCode, body)
	}
	var loc struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &loc); err != nil {
		t.Fatalf("decode location: %v", err)
	}

	resp, body = doJSON(t, ts, http.MethodPost, "/api/hunting/sightings", tokens.AccessToken, map[string]any{
		"species":     "whitetail",
		"location_id": loc.ID,
		"temperature": -3.5,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create sighting: status %d: %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, ts, http.MethodGet, "/api/hunting/sightings", tokens.AccessToken, nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "whitetail") {
		t.Errorf("list sightings: status %d body %s", resp.StatusCode, body)
	}
}

func TestPhotosEndpoints(t *testing.T) {
	ts := newTestServer(t, nil)
	tokens := registerUser(t, ts, "alice@example.com")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/photos", tokens.AccessToken, map[string]any{
		"file_path": "/photos/img1.jpg",
		"file_name": "img1.jpg",
		"tags":      []string{"sunset", "lake"},
		"taken_at":  "2026-07-04T19:30:00Z",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create photo: status %d: %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, ts, http.MethodGet, "/api/photos", tokens.AccessToken, nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "sunset") {
		t.Errorf("list photos: status %d body %s", resp.StatusCode, body)
	}
}

func TestCalendarPlaceholders(t *testing.T) {
	ts := newTestServer(t, nil)
	tokens := registerUser(t, ts, "alice@example.com")

	resp, body := doJSON(t, ts, http.MethodGet, "/api/calendar/events", tokens.AccessToken, nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Calendar integration coming soon") {
		t.Errorf("events: status %d body %s", resp.StatusCode, body)
	}
}

func TestChatUnconfigured(t *testing.T) {
	ts := newTestServer(t, nil)
	tokens := registerUser(t, ts, "alice@example.com")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/ai/chat", tokens.AccessToken, map[string]string{
		"message": "hello",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200 even when unconfigured", resp.StatusCode)
	}
	var reply chatResponse
	if err := json.Unmarshal(body, &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.Message != assistant.NotConfiguredReply {
		t.Errorf("message: got %q", reply.Message)
	}
	if reply.UserID != tokens.UserID {
		t.Errorf("user_id: got %q, want %q", reply.UserID, tokens.UserID)
	}
}

func TestChatWithConfiguredLLM(t *testing.T) {
	llm := &providertest.LLM{Response: "Try the carbonara."}
	ts := newTestServer(t, llm)
	tokens := registerUser(t, ts, "alice@example.com")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/ai/chat", tokens.AccessToken, map[string]string{
		"message": "What should I cook tonight?",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	var reply chatResponse
	if err := json.Unmarshal(body, &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.Message != "Try the carbonara." {
		t.Errorf("message: got %q", reply.Message)
	}

	msgs := llm.Requests()[0].Messages
	if !strings.Contains(msgs[0].Content, chatSystemContext) {
		t.Errorf("system context missing: %q", msgs[0].Content)
	}
}

func TestSummarizeUnconfigured(t *testing.T) {
	ts := newTestServer(t, nil)
	tokens := registerUser(t, ts, "alice@example.com")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/ai/summarize", tokens.AccessToken, map[string]string{
		"message": "a very long text",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	var reply summaryResponse
	if err := json.Unmarshal(body, &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.Summary != unconfiguredSummary {
		t.Errorf("summary: got %q", reply.Summary)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := doJSON(t, ts, http.MethodGet, "/health", "", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "healthy") {
		t.Errorf("health: status %d body %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, ts, http.MethodGet, "/metrics", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics: status %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "nucleus_http_requests_total") {
		t.Errorf("metrics body missing request counter: %s", body)
	}
}
