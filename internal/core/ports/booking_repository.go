package ports

import (
	"context"
	"time"

	"github.com/sharenest/sharenest/internal/core/domain"
)

// ListBookingsFilter scopes a booking listing. Exactly one of GuestID or
// HostID is set for non-admin callers; both empty means "all" (admin).
type ListBookingsFilter struct {
	GuestID string
	HostID  string
	Status  string
	Page    int
	Limit   int
}

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter ListBookingsFilter) ([]*domain.Booking, int64, error)
	// FindBlocking returns the pending/confirmed bookings of a property
	// whose date range intersects [checkIn, checkOut).
	FindBlocking(ctx context.Context, propertyID string, checkIn, checkOut time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, at time.Time) error
}
