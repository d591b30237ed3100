package ports

import (
	"context"
	"time"

	"github.com/sharenest/sharenest/internal/core/domain"
)

// CreateBookingInput carries all data needed to request a stay.
type CreateBookingInput struct {
	PropertyID   string
	CheckInDate  time.Time
	CheckOutDate time.Time
	GuestCount   int
}

// ListBookingsResult is returned by List.
type ListBookingsResult struct {
	Items      []*domain.Booking
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BookingService defines use-case operations for bookings.
type BookingService interface {
	// Create requests a stay on behalf of the guest. The booking starts in
	// pending and the total price is nights × the property's nightly rate.
	Create(ctx context.Context, guestID string, in CreateBookingInput) (*domain.Booking, error)
	// Get is restricted to the booking's guest, the property's host, or an admin.
	Get(ctx context.Context, id, callerID, callerRole string) (*domain.Booking, error)
	// List returns the caller's own bookings (guest), the bookings on the
	// caller's properties (host), or everything (admin).
	List(ctx context.Context, callerID, callerRole string, filter ListBookingsFilter) (*ListBookingsResult, error)
	// UpdateStatus applies a state machine transition. Hosts confirm, cancel
	// and complete; guests may only cancel their own booking.
	UpdateStatus(ctx context.Context, id, callerID, callerRole string, next domain.BookingStatus) (*domain.Booking, error)
}
