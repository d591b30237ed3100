package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sharenest/sharenest/internal/core/domain"
	"github.com/sharenest/sharenest/internal/core/ports"
)

const (
	defaultAccessTTL  = 24 * time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour

	refreshTokenType = "refresh"
)

// RefreshTokenStore abstracts the server-side whitelist of outstanding
// refresh tokens (Redis). Take must be atomic so a token can be redeemed at
// most once.
type RefreshTokenStore interface {
	Save(ctx context.Context, jti, userID string, ttl time.Duration) error
	// Take removes the token and returns the bound user id, or
	// domain.ErrTokenRevoked when the token is unknown or already used.
	Take(ctx context.Context, jti string) (string, error)
}

// AuthService implements registration, login and the token lifecycle.
// Access tokens are stateless and short-lived; refresh tokens are tracked
// in the RefreshTokenStore and rotated on every use, so logout and rotation
// invalidate them immediately.
type AuthService struct {
	users      ports.UserRepository
	refresh    RefreshTokenStore
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(users ports.UserRepository, refresh RefreshTokenStore, jwtSecret string, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *AuthService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &AuthService{
		users:      users,
		refresh:    refresh,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.TokenPair, *domain.User, error) {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" || in.Role == "" {
		return nil, nil, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}
	if !domain.IsRegisterableRole(in.Role) {
		return nil, nil, fmt.Errorf("%w: invalid role", domain.ErrValidation)
	}

	// Email is matched exactly as stored; no normalization.
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(ctx, created)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return pair, created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same error as a wrong password so callers cannot probe for
			// registered addresses.
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return pair, user, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, *domain.User, error) {
	claims, err := s.parseRefresh(refreshToken)
	if err != nil {
		return nil, nil, err
	}

	jti, _ := claims["jti"].(string)
	userID, _ := claims["id"].(string)
	if jti == "" || userID == "" {
		return nil, nil, domain.ErrInvalidToken
	}

	boundID, err := s.refresh.Take(ctx, jti)
	if err != nil {
		return nil, nil, err
	}
	if boundID != userID {
		return nil, nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.log.Debug().Str("user_id", user.ID).Msg("refresh token rotated")
	return pair, user, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.parseRefresh(refreshToken)
	if err != nil {
		// Already invalid or expired; nothing left to revoke.
		return nil
	}
	if jti, _ := claims["jti"].(string); jti != "" {
		if _, err := s.refresh.Take(ctx, jti); err != nil && !errors.Is(err, domain.ErrTokenRevoked) {
			return err
		}
	}
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch ports.ProfilePatch) (*domain.User, error) {
	return s.users.UpdateProfile(ctx, userID, patch)
}

// issuePair mints an access/refresh token pair bound to the user and records
// the refresh token's jti in the whitelist.
func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	now := time.Now()

	// The access token carries exactly id, email and role plus its expiry.
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   now.Add(s.accessTTL).Unix(),
	})
	accessToken, err := access.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	jti := newJTI()
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  user.ID,
		"jti": jti,
		"typ": refreshTokenType,
		"exp": now.Add(s.refreshTTL).Unix(),
	})
	refreshToken, err := refresh.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	if err := s.refresh.Save(ctx, jti, user.ID, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &ports.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// parseRefresh validates signature, expiry and token type.
func (s *AuthService) parseRefresh(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != refreshTokenType {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func newJTI() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
