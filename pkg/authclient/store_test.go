package authclient

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := tempStore(t)

	if err := store.Save(Credentials{AccessToken: "acc", RefreshToken: "ref", UserID: "u1"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if creds == nil {
		t.Fatalf("expected credentials")
	}
	if creds.AccessToken != "acc" || creds.RefreshToken != "ref" || creds.UserID != "u1" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
	if creds.SavedAt.IsZero() {
		t.Fatalf("SavedAt not stamped")
	}
}

func TestFileStore_EmptyLoad(t *testing.T) {
	store := tempStore(t)

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if creds != nil {
		t.Fatalf("expected nil for missing file, got %+v", creds)
	}
}

func TestFileStore_Clear(t *testing.T) {
	store := tempStore(t)
	if err := store.Save(Credentials{AccessToken: "acc", RefreshToken: "ref"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	creds, err := store.Load()
	if err != nil || creds != nil {
		t.Fatalf("expected empty store after clear, got %+v, %v", creds, err)
	}

	// Clearing again is a no-op.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
}

func TestFileStore_ExpiredAccessTokenDropped(t *testing.T) {
	store := tempStore(t)
	if err := store.Save(Credentials{AccessToken: "acc", RefreshToken: "ref"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Age the entry past the access token lifetime but inside the refresh
	// token lifetime.
	backdate(t, store, 2*24*time.Hour)

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if creds == nil {
		t.Fatalf("expected credentials with live refresh token")
	}
	if creds.AccessToken != "" {
		t.Fatalf("expired access token survived load")
	}
	if creds.RefreshToken != "ref" {
		t.Fatalf("refresh token lost: %+v", creds)
	}
}

func TestFileStore_FullyExpired(t *testing.T) {
	store := tempStore(t)
	if err := store.Save(Credentials{AccessToken: "acc", RefreshToken: "ref"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	backdate(t, store, 8*24*time.Hour)

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if creds != nil {
		t.Fatalf("fully expired credentials survived load: %+v", creds)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	store := tempStore(t)
	if err := os.WriteFile(store.path, []byte("not-json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if creds != nil {
		t.Fatalf("expected nil for corrupt file, got %+v", creds)
	}
}

// backdate rewrites the stored SavedAt so age-based expiry can be tested
// without sleeping.
func backdate(t *testing.T, store *FileStore, age time.Duration) {
	t.Helper()
	raw, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		t.Fatalf("decode store: %v", err)
	}
	creds.SavedAt = time.Now().Add(-age)
	out, err := json.Marshal(creds)
	if err != nil {
		t.Fatalf("encode store: %v", err)
	}
	if err := os.WriteFile(store.path, out, 0o600); err != nil {
		t.Fatalf("rewrite store: %v", err)
	}
}
