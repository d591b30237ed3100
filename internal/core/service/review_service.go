package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharenest/sharenest/internal/core/domain"
	"github.com/sharenest/sharenest/internal/core/ports"
)

// RatingEnqueuer hands a property id to the async rating recompute pipeline.
type RatingEnqueuer interface {
	Enqueue(propertyID string)
}

type ReviewService struct {
	repo     ports.ReviewRepository
	bookings ports.BookingRepository
	ratings  RatingEnqueuer
	log      zerolog.Logger
}

func NewReviewService(repo ports.ReviewRepository, bookings ports.BookingRepository, ratings RatingEnqueuer, log zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, bookings: bookings, ratings: ratings, log: log}
}

func (s *ReviewService) Create(ctx context.Context, guestID string, in ports.CreateReviewInput) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	if in.Comment == "" {
		return nil, fmt.Errorf("%w: comment is required", domain.ErrValidation)
	}

	booking, err := s.bookings.FindByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != guestID {
		return nil, domain.ErrForbidden
	}
	if booking.Status != domain.BookingCompleted {
		return nil, fmt.Errorf("%w: only completed stays can be reviewed", domain.ErrValidation)
	}

	if _, err := s.repo.FindByBookingID(ctx, in.BookingID); err == nil {
		return nil, domain.ErrReviewExists
	} else if !errors.Is(err, domain.ErrReviewNotFound) {
		return nil, err
	}

	review := &domain.Review{
		PropertyID: booking.PropertyID,
		BookingID:  in.BookingID,
		GuestID:    guestID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.ratings.Enqueue(booking.PropertyID)

	s.log.Info().
		Str("review_id", review.ID).
		Str("property_id", review.PropertyID).
		Int("rating", in.Rating).
		Msg("review created")
	return review, nil
}

func (s *ReviewService) ListByProperty(ctx context.Context, propertyID string, page, limit int) (*ports.ListReviewsResult, error) {
	page, limit = normalizePage(page, limit)

	items, total, err := s.repo.ListByProperty(ctx, propertyID, page, limit)
	if err != nil {
		return nil, err
	}

	return &ports.ListReviewsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
