// Package client is the Go consumer of the HTTP API. It owns the client
// side of the session: the in-memory current user, the locally persisted
// token, and the reaction to server-side invalidation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/artem13815/dragonball/pkg/auth"
)

// Client talks to the API and is the single source of truth for whether
// there is an authenticated user. The Authorization header is built per
// request from the current session, never from mutable global state.
type Client struct {
	baseURL  string
	httpDo   *http.Client
	store    TokenStore
	onLogout func()

	mu    sync.Mutex
	user  *auth.PublicUser
	token string
	err   string
}

// New builds a client for the API rooted at baseURL (e.g.
// "http://localhost:8080/api/v1"). onLogout runs whenever the session is
// invalidated, the place to navigate back to a login surface; it may be nil.
func New(baseURL string, store TokenStore, onLogout func()) *Client {
	return &Client{
		baseURL:  baseURL,
		httpDo:   &http.Client{Timeout: 15 * time.Second},
		store:    store,
		onLogout: onLogout,
	}
}

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type authResponse struct {
	Message string          `json:"message"`
	User    auth.PublicUser `json:"user"`
	Token   string          `json:"token"`
}

type verifyResponse struct {
	Valid bool            `json:"valid"`
	User  auth.PublicUser `json:"user"`
}

// CharactersResponse is the envelope of the protected character endpoints.
// Data keeps the upstream's varying shape raw for the caller.
type CharactersResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	User    string          `json:"user"`
}

// Load hydrates the session from the stored token, if any. Every failure
// (missing token, rejected token, unreachable server) settles the client to
// logged-out; Load never reports an auth failure as an error.
func (c *Client) Load(ctx context.Context) {
	token, err := c.store.Load()
	if err != nil || token == "" {
		c.clearSession()
		return
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	var out verifyResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify", map[string]string{"token": token}, &out); err != nil {
		c.clearSession()
		return
	}
	if !out.Valid {
		c.clearSession()
		return
	}

	c.mu.Lock()
	u := out.User
	c.user = &u
	c.mu.Unlock()
}

// Register creates an account and establishes the session. Token and user
// are set together; no caller can observe one without the other.
func (c *Client) Register(ctx context.Context, username, email, password string) (auth.PublicUser, error) {
	in := map[string]string{"username": username, "email": email, "password": password}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		c.setError(errText(err, "Error al registrarse"))
		return auth.PublicUser{}, err
	}
	if err := c.setSession(out.Token, out.User); err != nil {
		return auth.PublicUser{}, err
	}
	return out.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (auth.PublicUser, error) {
	in := map[string]string{"email": email, "password": password}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &out); err != nil {
		c.setError(errText(err, "Error al iniciar sesión"))
		return auth.PublicUser{}, err
	}
	if err := c.setSession(out.Token, out.User); err != nil {
		return auth.PublicUser{}, err
	}
	return out.User, nil
}

// Logout clears the stored token, the user state and any pending error,
// then fires the logout hook.
func (c *Client) Logout() {
	_ = c.store.Clear()
	c.mu.Lock()
	c.user = nil
	c.token = ""
	c.err = ""
	c.mu.Unlock()
	if c.onLogout != nil {
		c.onLogout()
	}
}

func (c *Client) CurrentUser() (auth.PublicUser, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return auth.PublicUser{}, false
	}
	return *c.user, true
}

func (c *Client) IsAuthenticated() bool {
	_, ok := c.CurrentUser()
	return ok
}

// LastError returns the most recent login/register failure message.
func (c *Client) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Client) ClearError() {
	c.mu.Lock()
	c.err = ""
	c.mu.Unlock()
}

// Characters lists the catalog, or searches it when search is non-empty.
func (c *Client) Characters(ctx context.Context, page, limit int, search string) (CharactersResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/characters"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var out CharactersResponse
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) CharacterByID(ctx context.Context, id int) (CharactersResponse, error) {
	var out CharactersResponse
	err := c.do(ctx, http.MethodGet, "/characters/"+strconv.Itoa(id), nil, &out)
	return out, err
}

// do performs one API call, attaching the bearer token from the current
// session. Any response signalling server-side session invalidation (a 401
// of any kind or an expired-token code) funnels into the logout path so
// client state stays consistent with the server without polling.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Error
			apiErr.Code = e.Code
		}
		if resp.StatusCode == http.StatusUnauthorized || apiErr.Code == "EXPIRED_TOKEN" {
			c.Logout()
		}
		return apiErr
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

// setSession persists the token and sets the user atomically with respect
// to every other accessor on this client.
func (c *Client) setSession(token string, user auth.PublicUser) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Save(token); err != nil {
		return err
	}
	c.token = token
	u := user
	c.user = &u
	c.err = ""
	return nil
}

// clearSession drops local state without firing the logout hook; used while
// settling an unverifiable stored token.
func (c *Client) clearSession() {
	_ = c.store.Clear()
	c.mu.Lock()
	c.user = nil
	c.token = ""
	c.mu.Unlock()
}

func (c *Client) setError(msg string) {
	c.mu.Lock()
	c.err = msg
	c.mu.Unlock()
}

func errText(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
