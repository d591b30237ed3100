package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sharenest/sharenest/internal/core/domain"
)

const ratingKeyPrefix = "rating:"

// RatingCache keeps denormalized property ratings in Redis so listing and
// detail reads do not hit the reviews aggregation on every request.
type RatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingCache creates a RatingCache with the given entry TTL.
func NewRatingCache(client *redis.Client, ttl time.Duration) *RatingCache {
	return &RatingCache{client: client, ttl: ttl}
}

// Get returns the cached rating for the property, or nil on a cache miss.
func (c *RatingCache) Get(ctx context.Context, propertyID string) (*domain.Rating, error) {
	raw, err := c.client.Get(ctx, c.key(propertyID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rating: %w", err)
	}

	var rating domain.Rating
	if err := json.Unmarshal(raw, &rating); err != nil {
		return nil, fmt.Errorf("decode rating: %w", err)
	}
	return &rating, nil
}

// Set stores the rating for the property.
func (c *RatingCache) Set(ctx context.Context, propertyID string, rating domain.Rating) error {
	raw, err := json.Marshal(rating)
	if err != nil {
		return fmt.Errorf("encode rating: %w", err)
	}
	if err := c.client.Set(ctx, c.key(propertyID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set rating: %w", err)
	}
	return nil
}

func (c *RatingCache) key(propertyID string) string {
	return ratingKeyPrefix + propertyID
}
