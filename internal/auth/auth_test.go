package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword("hunter2", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", 30*time.Minute, 7*24*time.Hour)

	access, err := issuer.AccessToken("user-1")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	userID, err := issuer.Verify(access, TokenTypeAccess)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("got %q, want user-1", userID)
	}
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	issuer := NewTokenIssuer("secret", 30*time.Minute, 7*24*time.Hour)

	refresh, err := issuer.RefreshToken("user-1")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	if _, err := issuer.Verify(refresh, TokenTypeAccess); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("got %v, want ErrWrongTokenType", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute, 7*24*time.Hour)

	expired, err := issuer.AccessToken("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuer.Verify(expired, TokenTypeAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	a := NewTokenIssuer("secret-a", time.Hour, time.Hour)
	b := NewTokenIssuer("secret-b", time.Hour, time.Hour)

	token, err := a.AccessToken("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := b.Verify(token, TokenTypeAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, time.Hour)

	var gotUserID string
	handler := Middleware(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserID(r.Context())
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	t.Run("valid token", func(t *testing.T) {
		token, err := issuer.AccessToken("user-42")
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d", rec.Code)
		}
		if gotUserID != "user-42" {
			t.Errorf("user id: got %q", gotUserID)
		}
	})
}
