// Package authclient is a client for the ShareNest auth API. It owns the
// access/refresh token pair, exposes a snapshot State for UI code, and keeps
// the pair fresh: optimistic bootstrap from persisted credentials, silent
// refresh with rotation, and retry-once on 401 for profile updates.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultRequestTimeout = 10 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsUnauthenticated reports whether err is a 401 APIError.
func IsUnauthenticated(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// ProfilePatch carries the profile fields to change. Nil fields are left
// untouched.
type ProfilePatch struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
}

type authPayload struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

type apiErrorBody struct {
	Error string `json:"error"`
}

// Client is the session owner. All state mutations go through its methods;
// State returns a consistent snapshot at any time.
//
// A generation counter sequences async results: login and logout bump it, and
// a refresh or hydration result is discarded when the generation moved while
// the request was in flight. This keeps a stale refresh that resolves after
// logout from resurrecting cleared credentials.
type Client struct {
	baseURL string
	http    *http.Client
	store   CredentialStore
	log     zerolog.Logger

	mu       sync.Mutex
	state    State
	refresh  string
	gen      uint64
	hydrated chan struct{}

	refreshMu sync.Mutex
}

// Option customises the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client against baseURL (e.g. "https://api.example.com"),
// persisting credentials in store.
func New(baseURL string, store CredentialStore, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: defaultRequestTimeout},
		store:    store,
		log:      zerolog.Nop(),
		hydrated: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the session state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Hydrated is closed once bootstrap has settled: either no stored session,
// or the stored session confirmed (or rejected) against the server.
func (c *Client) Hydrated() <-chan struct{} {
	return c.hydrated
}

// Bootstrap restores the session from persisted credentials. With no stored
// token it settles into logged-out immediately, without a network call. With
// a stored token it marks the session authenticated right away and confirms
// it against the server in the background; a failed confirmation logs out.
func (c *Client) Bootstrap(ctx context.Context) {
	creds, err := c.store.Load()
	if err != nil {
		c.log.Warn().Err(err).Msg("credential load failed")
	}

	c.mu.Lock()
	if creds == nil || (creds.AccessToken == "" && creds.RefreshToken == "") {
		c.state = State{Hydrated: true}
		c.mu.Unlock()
		c.markHydrated()
		return
	}

	c.refresh = creds.RefreshToken
	c.state = State{
		Token:           creds.AccessToken,
		IsAuthenticated: true,
		IsLoading:       true,
	}
	if creds.UserID != "" {
		c.state.User = &User{ID: creds.UserID}
	}
	gen := c.gen
	c.mu.Unlock()

	go c.hydrate(ctx, gen)
}

// hydrate confirms the optimistic session: fetch the profile, refreshing the
// pair once on 401.
func (c *Client) hydrate(ctx context.Context, gen uint64) {
	defer c.markHydrated()

	user, err := c.fetchMe(ctx)
	if IsUnauthenticated(err) {
		if err = c.Refresh(ctx); err != nil {
			return // Refresh already reset state.
		}
		user, err = c.fetchMe(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("session hydration failed")
		c.resetLocked()
		return
	}
	c.state.User = user
	c.state.IsLoading = false
	c.state.Hydrated = true
	c.state.Err = nil
}

// Register creates an account and starts a session.
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	var payload authPayload
	err := c.do(ctx, http.MethodPost, "/api/auth/register", input, "", &payload)
	return c.finishAuth(payload, err)
}

// Login starts a session with email and password.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var payload authPayload
	err := c.do(ctx, http.MethodPost, "/api/auth/login", body, "", &payload)
	return c.finishAuth(payload, err)
}

func (c *Client) finishAuth(payload authPayload, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Err = err
		return err
	}

	c.gen++
	c.refresh = payload.RefreshToken
	c.state = State{
		User:            payload.User,
		Token:           payload.Token,
		IsAuthenticated: true,
		Hydrated:        true,
	}
	c.persistLocked()
	return nil
}

// Refresh exchanges the refresh token for a rotated pair and a fresh user
// projection. Refreshes are single-flight: a caller that lost the race
// adopts the winner's result instead of spending the rotated token twice.
// On failure the session is reset to logged-out; this is the sole path by
// which an expired session becomes visible.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	gen := c.gen
	token := c.state.Token
	c.mu.Unlock()

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.mu.Lock()
	if c.gen != gen || c.state.Token != token {
		// The session was rotated or reset while we waited for the
		// lock; whatever happened supersedes this attempt.
		c.mu.Unlock()
		return nil
	}
	refresh := c.refresh
	c.mu.Unlock()

	if refresh == "" {
		c.mu.Lock()
		c.resetLocked()
		c.mu.Unlock()
		return &APIError{Status: http.StatusUnauthorized, Message: "no refresh token"}
	}

	var payload authPayload
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{"refreshToken": refresh}, "", &payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		// Logged out (or re-logged-in) while the refresh was in flight;
		// the result no longer belongs to this session.
		return nil
	}
	if c.state.Token != token {
		// A concurrent refresh already rotated the pair.
		return nil
	}
	if err != nil {
		c.log.Debug().Err(err).Msg("token refresh failed")
		c.resetLocked()
		return err
	}

	c.refresh = payload.RefreshToken
	c.state.Token = payload.Token
	c.state.User = payload.User
	c.state.IsAuthenticated = true
	c.state.Err = nil
	c.persistLocked()
	return nil
}

// Logout revokes the refresh token server-side (best effort) and clears all
// local session state.
func (c *Client) Logout(ctx context.Context) {
	c.mu.Lock()
	token := c.state.Token
	refresh := c.refresh
	c.mu.Unlock()

	if token != "" {
		body := map[string]string{"refreshToken": refresh}
		if err := c.do(ctx, http.MethodPost, "/api/auth/logout", body, token, nil); err != nil {
			c.log.Debug().Err(err).Msg("server-side logout failed")
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// UpdateProfile patches the profile. On a 401 it attempts one silent Refresh
// and retries the request once; if the refresh also fails the session is
// logged out and the original error returned.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (*User, error) {
	c.mu.Lock()
	token := c.state.Token
	c.mu.Unlock()

	var user User
	err := c.do(ctx, http.MethodPut, "/api/users/profile", patch, token, &user)
	if IsUnauthenticated(err) {
		if refreshErr := c.Refresh(ctx); refreshErr != nil {
			return nil, err
		}
		c.mu.Lock()
		token = c.state.Token
		c.mu.Unlock()
		err = c.do(ctx, http.MethodPut, "/api/users/profile", patch, token, &user)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Err = err
		return nil, err
	}
	c.state.User = &user
	c.state.Err = nil
	return &user, nil
}

func (c *Client) fetchMe(ctx context.Context) (*User, error) {
	c.mu.Lock()
	token := c.state.Token
	c.mu.Unlock()

	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// resetLocked clears session state and persisted credentials. Caller holds mu.
func (c *Client) resetLocked() {
	c.gen++
	c.refresh = ""
	c.state = State{Hydrated: true}
	if err := c.store.Clear(); err != nil {
		c.log.Warn().Err(err).Msg("credential clear failed")
	}
}

// persistLocked writes the current pair to the store. Caller holds mu.
func (c *Client) persistLocked() {
	creds := Credentials{
		AccessToken:  c.state.Token,
		RefreshToken: c.refresh,
	}
	if c.state.User != nil {
		creds.UserID = c.state.User.ID
	}
	if err := c.store.Save(creds); err != nil {
		c.log.Warn().Err(err).Msg("credential save failed")
	}
}

func (c *Client) markHydrated() {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.hydrated:
	default:
		close(c.hydrated)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		var errBody apiErrorBody
		_ = json.NewDecoder(res.Body).Decode(&errBody)
		if errBody.Error == "" {
			errBody.Error = http.StatusText(res.StatusCode)
		}
		return &APIError{Status: res.StatusCode, Message: errBody.Error}
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
