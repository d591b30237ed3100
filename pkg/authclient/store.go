package authclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Lifetimes for persisted credentials. Entries older than their max age are
// treated as absent on load.
const (
	accessTokenMaxAge  = 24 * time.Hour
	refreshTokenMaxAge = 7 * 24 * time.Hour
)

// Credentials is the persisted session material: the token pair plus a user
// id marker used for optimistic bootstrap.
type Credentials struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	UserID       string    `json:"userId"`
	SavedAt      time.Time `json:"savedAt"`
}

// CredentialStore persists credentials across client restarts. Load returns
// nil when nothing usable is stored. Clear removes everything at once.
type CredentialStore interface {
	Load() (*Credentials, error)
	Save(creds Credentials) error
	Clear() error
}

// FileStore keeps credentials in a JSON file. Writes go through a temp file
// and rename so a crash never leaves a half-written credential set.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads stored credentials, dropping fields past their max age. An
// expired access token with a live refresh token is still returned, so the
// client can attempt a silent refresh.
func (s *FileStore) Load() (*Credentials, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		// Corrupt file: treat as logged out rather than failing bootstrap.
		_ = s.Clear()
		return nil, nil
	}

	age := time.Since(creds.SavedAt)
	if age > accessTokenMaxAge {
		creds.AccessToken = ""
	}
	if age > refreshTokenMaxAge {
		creds.RefreshToken = ""
	}
	if creds.AccessToken == "" && creds.RefreshToken == "" {
		_ = s.Clear()
		return nil, nil
	}
	return &creds, nil
}

// Save persists the credentials, stamping SavedAt.
func (s *FileStore) Save(creds Credentials) error {
	creds.SavedAt = time.Now()
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Clear removes all persisted credentials.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
