package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := New(srv.URL, 5*time.Second)
	return c, srv
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "email": "a@b.c", "name": "A"})
	}))
	defer srv.Close()

	c.SetToken("tok-123")
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "t"})
	}))
	defer srv.Close()

	if _, err := c.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "pw"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if hasAuth {
		t.Fatalf("unexpected Authorization header %q", gotAuth)
	}
}

func TestErrorEnvelopeString(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Chat session not found"})
	}))
	defer srv.Close()

	_, err := c.GetSession(context.Background(), 99)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound = false for %v", err)
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if apiErr.Detail != "Chat session not found" {
		t.Fatalf("Detail = %q", apiErr.Detail)
	}
}

func TestErrorEnvelopeQuotaObject(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"detail": map[string]any{
				"error":   "quota_exceeded",
				"message": "You have exceeded your API token quota",
			},
		})
	}))
	defer srv.Close()

	_, err := c.SendMessage(context.Background(), 1, "hi")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsQuotaError(err) {
		t.Fatalf("IsQuotaError = false for %v", err)
	}
	apiErr := err.(*APIError)
	if apiErr.Detail != "You have exceeded your API token quota" {
		t.Fatalf("Detail = %q", apiErr.Detail)
	}
}

func TestAuthErrorDetection(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
	}))
	defer srv.Close()

	_, err := c.Me(context.Background())
	if !IsAuthError(err) {
		t.Fatalf("IsAuthError = false for %v", err)
	}
}

func TestRepeatedReadsIssueSeparateRequests(t *testing.T) {
	var calls atomic.Int32
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	ctx := context.Background()
	if _, err := c.ListGoals(ctx); err != nil {
		t.Fatalf("first ListGoals failed: %v", err)
	}
	if _, err := c.ListGoals(ctx); err != nil {
		t.Fatalf("second ListGoals failed: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 requests, got %d", got)
	}
}

func TestContextCancellation(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.GetQuota(ctx); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
