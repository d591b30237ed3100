package ports

import (
	"context"

	"github.com/sharenest/sharenest/internal/core/domain"
)

// CreateReviewInput carries a guest's review of a completed booking. The
// property is derived from the booking server-side.
type CreateReviewInput struct {
	BookingID string
	Rating    int
	Comment   string
}

// ListReviewsResult is returned by ListByProperty.
type ListReviewsResult struct {
	Items      []*domain.Review
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ReviewService defines use-case operations for reviews.
type ReviewService interface {
	Create(ctx context.Context, guestID string, in CreateReviewInput) (*domain.Review, error)
	ListByProperty(ctx context.Context, propertyID string, page, limit int) (*ListReviewsResult, error)
}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	FindByBookingID(ctx context.Context, bookingID string) (*domain.Review, error)
	ListByProperty(ctx context.Context, propertyID string, page, limit int) ([]*domain.Review, int64, error)
	// Aggregate computes the average rating and review count of a property.
	Aggregate(ctx context.Context, propertyID string) (domain.Rating, error)
}

// RatingService recomputes and caches a property's aggregated rating.
// Invoked asynchronously by the rating dispatcher after each new review.
type RatingService interface {
	Recompute(ctx context.Context, propertyID string) error
}
