package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type memStore struct {
	mu    sync.Mutex
	token string
	saves int
}

var _ TokenStore = (*memStore)(nil)

func (m *memStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}
func (m *memStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.saves++
	return nil
}
func (m *memStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fakeAPI is a minimal stand-in for the server: one valid token, one user.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["email"] != "goku@z.com" || in["password"] != "Saiyan1!" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Credenciales inválidas"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Inicio de sesión exitoso",
			"user":    map[string]any{"id": 1, "username": "goku", "email": "goku@z.com"},
			"token":   "good-token",
		})
	})
	mux.HandleFunc("POST /auth/verify", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["token"] != "good-token" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"valid": false, "error": "Token inválido"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"valid": true,
			"user":  map[string]any{"id": 1, "username": "goku", "email": "goku@z.com"},
		})
	})
	mux.HandleFunc("GET /characters", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token expirado", "code": "EXPIRED_TOKEN"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"items": []any{}, "meta": map[string]any{}},
			"user":    "goku",
		})
	})
	return httptest.NewServer(mux)
}

func TestLogin_SetsSessionAtomically(t *testing.T) {
	t.Parallel()

	srv := fakeAPI(t)
	defer srv.Close()

	store := &memStore{}
	c := New(srv.URL, store, nil)

	user, err := c.Login(context.Background(), "goku@z.com", "Saiyan1!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "goku" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if !c.IsAuthenticated() {
		t.Fatalf("expected authenticated session")
	}
	if tok, _ := store.Load(); tok != "good-token" {
		t.Fatalf("stored token = %q", tok)
	}
	if c.LastError() != "" {
		t.Fatalf("error must be clear after success, got %q", c.LastError())
	}
}

func TestLogin_FailureRecordsServerMessage(t *testing.T) {
	t.Parallel()

	srv := fakeAPI(t)
	defer srv.Close()

	c := New(srv.URL, &memStore{}, nil)

	_, err := c.Login(context.Background(), "goku@z.com", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("want 401 APIError, got %v", err)
	}
	if c.LastError() != "Credenciales inválidas" {
		t.Fatalf("LastError = %q", c.LastError())
	}
	if c.IsAuthenticated() {
		t.Fatalf("failed login must not create a session")
	}
}

func TestLoad_HydratesFromStoredToken(t *testing.T) {
	t.Parallel()

	srv := fakeAPI(t)
	defer srv.Close()

	store := &memStore{token: "good-token"}
	c := New(srv.URL, store, nil)

	c.Load(context.Background())
	user, ok := c.CurrentUser()
	if !ok || user.Username != "goku" {
		t.Fatalf("expected hydrated session, got %+v ok=%v", user, ok)
	}
}

func TestLoad_BadTokenSettlesAnonymous(t *testing.T) {
	t.Parallel()

	srv := fakeAPI(t)
	defer srv.Close()

	store := &memStore{token: "stale-token"}
	c := New(srv.URL, store, nil)

	c.Load(context.Background())
	if c.IsAuthenticated() {
		t.Fatalf("stale token must settle to logged out")
	}
	if tok, _ := store.Load(); tok != "" {
		t.Fatalf("stale token must be cleared from the store, got %q", tok)
	}
}

func TestLoad_UnreachableServerSettlesAnonymous(t *testing.T) {
	t.Parallel()

	store := &memStore{token: "good-token"}
	// no server listening here
	c := New("http://127.0.0.1:1", store, nil)

	c.Load(context.Background())
	if c.IsAuthenticated() {
		t.Fatalf("unreachable server must settle to logged out")
	}
}

func TestExpiredSignalTriggersLogoutPath(t *testing.T) {
	t.Parallel()

	srv := fakeAPI(t)
	defer srv.Close()

	store := &memStore{token: "good-token"}
	loggedOut := false
	c := New(srv.URL, store, func() { loggedOut = true })
	c.Load(context.Background())
	if !c.IsAuthenticated() {
		t.Fatalf("precondition: session must be hydrated")
	}

	// simulate server-side invalidation: the stored token stops working
	c.mu.Lock()
	c.token = "revoked"
	c.mu.Unlock()

	_, err := c.Characters(context.Background(), 1, 10, "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "EXPIRED_TOKEN" {
		t.Fatalf("want EXPIRED_TOKEN APIError, got %v", err)
	}
	if !loggedOut {
		t.Fatalf("logout hook must fire on expiry signal")
	}
	if c.IsAuthenticated() {
		t.Fatalf("session must be cleared after expiry signal")
	}
	if tok, _ := store.Load(); tok != "" {
		t.Fatalf("token must be cleared from the store, got %q", tok)
	}
}

func TestCharacters_CarriesAuthenticatedUser(t *testing.T) {
	t.Parallel()

	srv := fakeAPI(t)
	defer srv.Close()

	c := New(srv.URL, &memStore{}, nil)
	if _, err := c.Login(context.Background(), "goku@z.com", "Saiyan1!"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	res, err := c.Characters(context.Background(), 1, 10, "")
	if err != nil {
		t.Fatalf("Characters: %v", err)
	}
	if !res.Success || res.User != "goku" {
		t.Fatalf("unexpected response: %+v", res)
	}
}
