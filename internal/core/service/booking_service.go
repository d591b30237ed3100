package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharenest/sharenest/internal/core/domain"
	"github.com/sharenest/sharenest/internal/core/ports"
)

type BookingService struct {
	repo       ports.BookingRepository
	properties ports.PropertyRepository
	log        zerolog.Logger
}

func NewBookingService(repo ports.BookingRepository, properties ports.PropertyRepository, log zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, properties: properties, log: log}
}

func (s *BookingService) Create(ctx context.Context, guestID string, in ports.CreateBookingInput) (*domain.Booking, error) {
	now := time.Now().UTC()

	if !in.CheckOutDate.After(in.CheckInDate) {
		return nil, fmt.Errorf("%w: check-out must be after check-in", domain.ErrValidation)
	}
	if in.CheckOutDate.Sub(in.CheckInDate) < 24*time.Hour {
		return nil, fmt.Errorf("%w: stay must cover at least one night", domain.ErrValidation)
	}
	if in.CheckInDate.Before(now.Truncate(24 * time.Hour)) {
		return nil, fmt.Errorf("%w: check-in cannot be in the past", domain.ErrValidation)
	}
	if in.GuestCount <= 0 {
		return nil, fmt.Errorf("%w: guest count must be positive", domain.ErrValidation)
	}

	property, err := s.properties.FindByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if in.GuestCount > property.MaxGuestCount {
		return nil, fmt.Errorf("%w: property sleeps at most %d guests", domain.ErrValidation, property.MaxGuestCount)
	}

	blocking, err := s.repo.FindBlocking(ctx, in.PropertyID, in.CheckInDate, in.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if len(blocking) > 0 {
		return nil, domain.ErrDatesUnavailable
	}

	booking := &domain.Booking{
		PropertyID:   in.PropertyID,
		GuestID:      guestID,
		HostID:       property.HostID,
		CheckInDate:  in.CheckInDate,
		CheckOutDate: in.CheckOutDate,
		Status:       domain.BookingPending,
		GuestCount:   in.GuestCount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	booking.TotalPrice = float64(booking.Nights()) * property.PricePerNight

	if err := s.repo.Create(ctx, booking); err != nil {
		s.log.Error().Err(err).Str("property_id", in.PropertyID).Msg("failed to create booking")
		return nil, err
	}

	s.log.Info().
		Str("booking_id", booking.ID).
		Str("property_id", booking.PropertyID).
		Str("guest_id", guestID).
		Msg("booking created")
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id, callerID, callerRole string) (*domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canAccessBooking(booking, callerID, callerRole) {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

func (s *BookingService) List(ctx context.Context, callerID, callerRole string, filter ports.ListBookingsFilter) (*ports.ListBookingsResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	// Scope to the caller: guests see their stays, hosts their properties'
	// bookings, admins everything.
	switch callerRole {
	case domain.RoleAdmin:
	case domain.RoleHost:
		filter.HostID = callerID
		filter.GuestID = ""
	default:
		filter.GuestID = callerID
		filter.HostID = ""
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListBookingsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *BookingService) UpdateStatus(ctx context.Context, id, callerID, callerRole string, next domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowedFor(booking, callerID, callerRole, next) {
		return nil, domain.ErrForbidden
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, booking.Status, next)
	}
	if next == domain.BookingCompleted && time.Now().UTC().Before(booking.CheckOutDate) {
		return nil, fmt.Errorf("%w: stay has not ended yet", domain.ErrInvalidTransition)
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, id, next, now); err != nil {
		return nil, err
	}

	booking.Status = next
	booking.UpdatedAt = now

	s.log.Info().
		Str("booking_id", id).
		Str("status", string(next)).
		Msg("booking status updated")
	return booking, nil
}

func canAccessBooking(b *domain.Booking, callerID, callerRole string) bool {
	return callerRole == domain.RoleAdmin || b.GuestID == callerID || b.HostID == callerID
}

// transitionAllowedFor encodes who may request which transition: the host
// confirms, cancels and completes; the guest may only cancel; admin may do
// anything. State machine validity is checked separately.
func transitionAllowedFor(b *domain.Booking, callerID, callerRole string, next domain.BookingStatus) bool {
	if callerRole == domain.RoleAdmin {
		return true
	}
	if b.HostID == callerID {
		return next == domain.BookingConfirmed || next == domain.BookingCancelled || next == domain.BookingCompleted
	}
	if b.GuestID == callerID {
		return next == domain.BookingCancelled
	}
	return false
}
