package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// memoryStore is an in-memory TokenStore for tests.
type memoryStore struct {
	token  string
	sets   int
	clears int
}

func (m *memoryStore) Token() (string, error) { return m.token, nil }

func (m *memoryStore) SetToken(token string) error {
	m.token = token
	m.sets++
	return nil
}

func (m *memoryStore) ClearToken() error {
	m.token = ""
	m.clears++
	return nil
}

func TestAuthorizationHeaderFollowsToken(t *testing.T) {
	var got []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	tokens := NewTokenSource(&memoryStore{})
	client := NewClient(server.URL, tokens)

	if err := tokens.SetToken("t1"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := client.Get(context.Background(), "/applications/my", nil); err != nil {
		t.Fatalf("get with token: %v", err)
	}
	if err := tokens.SetToken(""); err != nil {
		t.Fatalf("clear token: %v", err)
	}
	if err := client.Get(context.Background(), "/applications/my", nil); err != nil {
		t.Fatalf("get without token: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(got))
	}
	if got[0] != "Bearer t1" {
		t.Fatalf("first request header = %q, want Bearer t1", got[0])
	}
	if got[1] != "" {
		t.Fatalf("second request carried header %q after token cleared", got[1])
	}
}

func TestUnauthorizedClearsTokenAndNotifiesOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := &memoryStore{token: "stale"}
	notified := 0
	tokens := NewTokenSource(store, OnUnauthorized(func() { notified++ }))
	if _, err := tokens.Initialize(); err != nil {
		t.Fatal(err)
	}
	client := NewClient(server.URL, tokens)

	err := client.Get(context.Background(), "/verify", nil)
	if err == nil {
		t.Fatalf("expected error from 401")
	}
	if KindOf(err) != KindAuth {
		t.Fatalf("kind = %s, want %s", KindOf(err), KindAuth)
	}
	if notified != 1 {
		t.Fatalf("unauthorized handler fired %d times, want 1", notified)
	}
	if store.token != "" {
		t.Fatalf("token not cleared from storage: %q", store.token)
	}
	if tokens.Current() != "" {
		t.Fatalf("token still applied to requests: %q", tokens.Current())
	}
}

func TestUnauthorizedSharedAcrossClients(t *testing.T) {
	unauthorized := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer unauthorized.Close()

	notified := 0
	tokens := NewTokenSource(&memoryStore{}, OnUnauthorized(func() { notified++ }))
	tokens.SetToken("t1")
	resource := NewClient(unauthorized.URL, tokens)
	auth := NewClient(unauthorized.URL, tokens)

	_ = resource.Get(context.Background(), "/applications", nil)
	tokens.SetToken("t2")
	_ = auth.Get(context.Background(), "/profile", nil)

	if notified != 2 {
		t.Fatalf("handler fired %d times, want one per 401 response", notified)
	}
	if tokens.Current() != "" {
		t.Fatalf("token survived a 401: %q", tokens.Current())
	}
}

func TestErrorKindMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"requested amount is required"}`))
		case "/boom":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Write([]byte(`{}`))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, NewTokenSource(&memoryStore{}))
	ctx := context.Background()

	err := client.Post(ctx, "/bad", map[string]string{}, nil)
	if KindOf(err) != KindValidation {
		t.Fatalf("4xx kind = %s, want %s", KindOf(err), KindValidation)
	}
	if MessageOf(err) != "requested amount is required" {
		t.Fatalf("backend message lost: %q", MessageOf(err))
	}

	err = client.Get(ctx, "/boom", nil)
	if KindOf(err) != KindUnknown {
		t.Fatalf("5xx kind = %s, want %s", KindOf(err), KindUnknown)
	}

	broken := NewClient("http://127.0.0.1:1", NewTokenSource(&memoryStore{}))
	err = broken.Get(ctx, "/", nil)
	if KindOf(err) != KindNetwork {
		t.Fatalf("transport kind = %s, want %s", KindOf(err), KindNetwork)
	}
}

func TestInitializeRestoresPersistedToken(t *testing.T) {
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	tokens := NewTokenSource(&memoryStore{token: "resumed"})
	restored, err := tokens.Initialize()
	if err != nil {
		t.Fatal(err)
	}
	if restored != "resumed" {
		t.Fatalf("restored = %q, want resumed", restored)
	}
	client := NewClient(server.URL, tokens)
	if err := client.Get(context.Background(), "/verify", nil); err != nil {
		t.Fatal(err)
	}
	if header != "Bearer resumed" {
		t.Fatalf("header = %q, want Bearer resumed", header)
	}
}
