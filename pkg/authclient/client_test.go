package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// memStore is an in-memory CredentialStore for client tests.
type memStore struct {
	mu    sync.Mutex
	creds *Credentials
}

func (s *memStore) Load() (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil, nil
	}
	clone := *s.creds
	return &clone, nil
}

func (s *memStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	creds.SavedAt = time.Now()
	s.creds = &creds
	return nil
}

func (s *memStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}

// fakeAPI mimics the auth endpoints: one valid access token at a time and a
// set of outstanding refresh tokens that rotate on use.
type fakeAPI struct {
	mu        sync.Mutex
	counter   int
	access    string          // the currently valid access token
	refreshes map[string]bool // valid refresh tokens
	user      User

	refreshCalls int
	meCalls      int
	refreshGate  chan struct{} // when set, refresh handler blocks until closed
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		refreshes: make(map[string]bool),
		user:      User{ID: "u1", Email: "a@x.com", FirstName: "Ada", Role: "host"},
	}
}

func (a *fakeAPI) issuePair() (string, string) {
	a.counter++
	access := fmt.Sprintf("acc-%d", a.counter)
	refresh := fmt.Sprintf("ref-%d", a.counter)
	a.access = access
	a.refreshes[refresh] = true
	return access, refresh
}

func (a *fakeAPI) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "Secret123" {
			writeErr(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		a.mu.Lock()
		access, refresh := a.issuePair()
		user := a.user
		a.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"token": access, "refreshToken": refresh, "user": user})
	})

	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		access, refresh := a.issuePair()
		user := a.user
		a.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]any{"token": access, "refreshToken": refresh, "user": user})
	})

	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		gate := a.refreshGate
		a.mu.Unlock()
		if gate != nil {
			<-gate
		}

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		a.mu.Lock()
		defer a.mu.Unlock()
		a.refreshCalls++
		if !a.refreshes[body["refreshToken"]] {
			writeErr(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		delete(a.refreshes, body["refreshToken"])
		access, refresh := a.issuePair()
		writeJSON(w, http.StatusOK, map[string]any{"token": access, "refreshToken": refresh, "user": a.user})
	})

	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		a.mu.Lock()
		delete(a.refreshes, body["refreshToken"])
		a.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.meCalls++
		ok := r.Header.Get("Authorization") == "Bearer "+a.access && a.access != ""
		user := a.user
		a.mu.Unlock()
		if !ok {
			writeErr(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		writeJSON(w, http.StatusOK, user)
	})

	mux.HandleFunc("PUT /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		ok := r.Header.Get("Authorization") == "Bearer "+a.access && a.access != ""
		a.mu.Unlock()
		if !ok {
			writeErr(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		var patch map[string]string
		_ = json.NewDecoder(r.Body).Decode(&patch)
		a.mu.Lock()
		if bio, present := patch["bio"]; present {
			a.user.Bio = bio
		}
		user := a.user
		a.mu.Unlock()
		writeJSON(w, http.StatusOK, user)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func waitHydrated(t *testing.T, c *Client) {
	t.Helper()
	select {
	case <-c.Hydrated():
	case <-time.After(5 * time.Second):
		t.Fatalf("hydration did not settle")
	}
}

func TestClient_Login_SetsStateAndPersists(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	store := &memStore{}
	client := New(srv.URL, store)

	if err := client.Login(context.Background(), "a@x.com", "Secret123"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	st := client.State()
	if !st.IsAuthenticated || st.User == nil || st.User.Email != "a@x.com" {
		t.Fatalf("unexpected state: %+v", st)
	}
	if st.Token == "" {
		t.Fatalf("no access token in state")
	}

	creds, _ := store.Load()
	if creds == nil || creds.AccessToken != st.Token || creds.RefreshToken == "" {
		t.Fatalf("credentials not persisted: %+v", creds)
	}
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	client := New(srv.URL, &memStore{})

	err := client.Login(context.Background(), "a@x.com", "wrong")
	if err == nil {
		t.Fatalf("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 APIError, got %v", err)
	}
	if !strings.Contains(apiErr.Message, "Invalid credentials") {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}

	st := client.State()
	if st.IsAuthenticated {
		t.Fatalf("failed login must not authenticate")
	}
	if st.Err == nil {
		t.Fatalf("error not surfaced into state")
	}
}

func TestClient_Bootstrap_NoStoredCredentials(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	client := New(srv.URL, &memStore{})

	client.Bootstrap(context.Background())
	waitHydrated(t, client)

	st := client.State()
	if st.IsAuthenticated || !st.Hydrated {
		t.Fatalf("expected settled logged-out state, got %+v", st)
	}
	api.mu.Lock()
	meCalls := api.meCalls
	api.mu.Unlock()
	if meCalls != 0 {
		t.Fatalf("bootstrap without credentials must not call the network")
	}
}

func TestClient_Bootstrap_OptimisticThenHydrated(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	store := &memStore{}

	// Seed a valid session.
	seed := New(srv.URL, store)
	if err := seed.Login(context.Background(), "a@x.com", "Secret123"); err != nil {
		t.Fatalf("seed login: %v", err)
	}

	client := New(srv.URL, store)
	client.Bootstrap(context.Background())

	// Optimistic: authenticated immediately from the stored token.
	st := client.State()
	if !st.IsAuthenticated {
		t.Fatalf("expected optimistic authentication, got %+v", st)
	}

	waitHydrated(t, client)
	st = client.State()
	if !st.IsAuthenticated || st.User == nil || st.User.FirstName != "Ada" {
		t.Fatalf("expected hydrated profile, got %+v", st)
	}
	if !st.Hydrated || st.IsLoading {
		t.Fatalf("hydration flags not settled: %+v", st)
	}
}

func TestClient_Bootstrap_StaleAccessTokenRefreshes(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	store := &memStore{}

	seed := New(srv.URL, store)
	if err := seed.Login(context.Background(), "a@x.com", "Secret123"); err != nil {
		t.Fatalf("seed login: %v", err)
	}

	// Invalidate the access token server-side; the refresh token stays valid.
	api.mu.Lock()
	api.access = "rotated-away"
	api.mu.Unlock()

	client := New(srv.URL, store)
	client.Bootstrap(context.Background())
	waitHydrated(t, client)

	st := client.State()
	if !st.IsAuthenticated || st.User == nil {
		t.Fatalf("expected refreshed session, got %+v", st)
	}
	api.mu.Lock()
	refreshCalls := api.refreshCalls
	api.mu.Unlock()
	if refreshCalls != 1 {
		t.Fatalf("expected exactly one refresh, got %d", refreshCalls)
	}
}

func TestClient_Bootstrap_DeadSessionLogsOut(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	store := &memStore{}
	_ = store.Save(Credentials{AccessToken: "junk", RefreshToken: "junk-refresh", UserID: "u1"})

	client := New(srv.URL, store)
	client.Bootstrap(context.Background())
	waitHydrated(t, client)

	st := client.State()
	if st.IsAuthenticated {
		t.Fatalf("dead session still authenticated: %+v", st)
	}
	creds, _ := store.Load()
	if creds != nil {
		t.Fatalf("credentials not cleared: %+v", creds)
	}
}

func TestClient_Refresh_RotatesAndOldTokenDies(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	store := &memStore{}
	client := New(srv.URL, store)

	if err := client.Login(context.Background(), "a@x.com", "Secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	before, _ := store.Load()

	if err := client.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	after, _ := store.Load()
	if after.RefreshToken == before.RefreshToken {
		t.Fatalf("refresh token not rotated")
	}

	// Replaying the spent token against the server fails.
	api.mu.Lock()
	spent := api.refreshes[before.RefreshToken]
	api.mu.Unlock()
	if spent {
		t.Fatalf("old refresh token still valid server-side")
	}
}

func TestClient_Refresh_FailureLogsOut(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	store := &memStore{}
	client := New(srv.URL, store)

	if err := client.Login(context.Background(), "a@x.com", "Secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Revoke everything server-side.
	api.mu.Lock()
	api.refreshes = make(map[string]bool)
	api.mu.Unlock()

	if err := client.Refresh(context.Background()); err == nil {
		t.Fatalf("expected refresh failure")
	}

	st := client.State()
	if st.IsAuthenticated {
		t.Fatalf("failed refresh must log out, got %+v", st)
	}
	creds, _ := store.Load()
	if creds != nil {
		t.Fatalf("credentials not cleared after failed refresh")
	}
}

func TestClient_UpdateProfile_RetriesOnceAfterRefresh(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	store := &memStore{}
	client := New(srv.URL, store)

	if err := client.Login(context.Background(), "a@x.com", "Secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Expire the access token only.
	api.mu.Lock()
	api.access = "rotated-away"
	api.mu.Unlock()

	bio := "hi"
	user, err := client.UpdateProfile(context.Background(), ProfilePatch{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if user.Bio != "hi" {
		t.Fatalf("bio = %q", user.Bio)
	}
	api.mu.Lock()
	refreshCalls := api.refreshCalls
	api.mu.Unlock()
	if refreshCalls != 1 {
		t.Fatalf("expected one silent refresh, got %d", refreshCalls)
	}
}

func TestClient_UpdateProfile_LogsOutWhenRefreshFails(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	store := &memStore{}
	client := New(srv.URL, store)

	if err := client.Login(context.Background(), "a@x.com", "Secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Kill both tokens.
	api.mu.Lock()
	api.access = "rotated-away"
	api.refreshes = make(map[string]bool)
	api.mu.Unlock()

	bio := "hi"
	_, err := client.UpdateProfile(context.Background(), ProfilePatch{Bio: &bio})
	if !IsUnauthenticated(err) {
		t.Fatalf("expected original 401 surfaced, got %v", err)
	}
	if client.State().IsAuthenticated {
		t.Fatalf("expected logged-out state")
	}
}

func TestClient_Logout_ClearsEverything(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	store := &memStore{}
	client := New(srv.URL, store)

	if err := client.Login(context.Background(), "a@x.com", "Secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	creds, _ := store.Load()
	refreshToken := creds.RefreshToken

	client.Logout(context.Background())

	st := client.State()
	if st.IsAuthenticated || st.User != nil || st.Token != "" {
		t.Fatalf("state not cleared: %+v", st)
	}
	if creds, _ := store.Load(); creds != nil {
		t.Fatalf("credentials not cleared")
	}
	api.mu.Lock()
	alive := api.refreshes[refreshToken]
	api.mu.Unlock()
	if alive {
		t.Fatalf("refresh token not revoked server-side")
	}
}

func TestClient_ConcurrentRefreshesSpendOneToken(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	store := &memStore{}
	client := New(srv.URL, store)

	if err := client.Login(context.Background(), "a@x.com", "Secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Hold the first refresh in flight so the second call queues behind it.
	gate := make(chan struct{})
	api.mu.Lock()
	api.refreshGate = gate
	api.mu.Unlock()

	first := make(chan error, 1)
	second := make(chan error, 1)
	go func() { first <- client.Refresh(context.Background()) }()
	time.Sleep(50 * time.Millisecond)
	go func() { second <- client.Refresh(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	api.mu.Lock()
	api.refreshGate = nil
	api.mu.Unlock()
	close(gate)

	if err := <-first; err != nil {
		t.Fatalf("first refresh returned error: %v", err)
	}
	if err := <-second; err != nil {
		t.Fatalf("second refresh returned error: %v", err)
	}

	// The loser adopts the winner's pair instead of rotating again.
	api.mu.Lock()
	calls := api.refreshCalls
	api.mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected one server-side refresh, got %d", calls)
	}

	st := client.State()
	if !st.IsAuthenticated || st.Token == "" {
		t.Fatalf("session lost after concurrent refresh: %+v", st)
	}
	creds, _ := store.Load()
	if creds == nil || creds.AccessToken != st.Token {
		t.Fatalf("persisted credentials out of step with state: %+v", creds)
	}
}

func TestClient_StaleRefreshAfterLogoutIsDropped(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	store := &memStore{}
	client := New(srv.URL, store)

	if err := client.Login(context.Background(), "a@x.com", "Secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Hold the refresh response until after logout completes.
	gate := make(chan struct{})
	api.mu.Lock()
	api.refreshGate = gate
	api.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- client.Refresh(context.Background()) }()

	// Give the refresh request time to leave before logging out.
	time.Sleep(50 * time.Millisecond)

	api.mu.Lock()
	api.refreshGate = nil
	api.mu.Unlock()
	client.Logout(context.Background())
	close(gate)

	if err := <-done; err != nil {
		t.Fatalf("stale refresh returned error: %v", err)
	}

	// The stale result must not resurrect the session.
	st := client.State()
	if st.IsAuthenticated || st.Token != "" {
		t.Fatalf("stale refresh repopulated state: %+v", st)
	}
	if creds, _ := store.Load(); creds != nil {
		t.Fatalf("stale refresh repersisted credentials: %+v", creds)
	}
}
