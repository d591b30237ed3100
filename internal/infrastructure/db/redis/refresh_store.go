package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sharenest/sharenest/internal/core/domain"
)

const refreshKeyPrefix = "auth:refresh:"

// RefreshTokenStore tracks outstanding refresh tokens by jti. A token is
// valid only while its key exists; Take removes the key atomically, so each
// token can be redeemed at most once (rotation) and logout revokes it by
// taking it.
type RefreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore creates a RefreshTokenStore wrapping the given Redis client.
func NewRefreshTokenStore(client *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{client: client}
}

// Save whitelists a refresh token's jti, bound to the user, for ttl.
func (s *RefreshTokenStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(jti), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Take atomically removes the jti and returns the bound user id.
// Returns domain.ErrTokenRevoked when the token is unknown or already used.
func (s *RefreshTokenStore) Take(ctx context.Context, jti string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.key(jti)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrTokenRevoked
		}
		return "", fmt.Errorf("take refresh token: %w", err)
	}
	return userID, nil
}

func (s *RefreshTokenStore) key(jti string) string {
	return refreshKeyPrefix + jti
}
