package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sharenest/sharenest/internal/core/ports"
)

type ratingService struct {
	reviews ports.ReviewRepository
	cache   RatingCache
	log     zerolog.Logger
}

// NewRatingService returns a RatingService that recomputes a property's
// aggregated rating from its reviews and writes the result to the cache.
func NewRatingService(reviews ports.ReviewRepository, cache RatingCache, log zerolog.Logger) ports.RatingService {
	return &ratingService{reviews: reviews, cache: cache, log: log}
}

func (s *ratingService) Recompute(ctx context.Context, propertyID string) error {
	rating, err := s.reviews.Aggregate(ctx, propertyID)
	if err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}

	if err := s.cache.Set(ctx, propertyID, rating); err != nil {
		return fmt.Errorf("recompute rating: cache write: %w", err)
	}

	s.log.Debug().
		Str("property_id", propertyID).
		Float64("average", rating.Average).
		Int64("count", rating.Count).
		Msg("rating recomputed")
	return nil
}
