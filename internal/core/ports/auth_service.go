package ports

import (
	"context"

	"github.com/sharenest/sharenest/internal/core/domain"
)

// RegisterInput carries the signup payload.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// TokenPair is the credential pair issued on register, login and refresh.
// The access token is short-lived; the refresh token is longer-lived,
// server-tracked and rotated on every use.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService defines the authentication and profile use-cases.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*TokenPair, *domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	// Refresh exchanges a valid refresh token for a new rotated pair and a
	// fresh user projection. The presented token is invalidated even when
	// the exchange fails afterwards.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, *domain.User, error)
	// Logout revokes the given refresh token. Unknown tokens are ignored.
	Logout(ctx context.Context, refreshToken string) error
	// CurrentUser re-fetches the account behind verified claims, so a user
	// deleted after token issuance surfaces as ErrUserNotFound.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*domain.User, error)
}
