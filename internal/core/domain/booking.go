package domain

import (
	"errors"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

var ErrBookingNotFound = errors.New("booking not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrDatesUnavailable = errors.New("dates unavailable")

// CanTransitionTo reports whether a transition from the current status to
// next is valid. Completed and cancelled are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Blocks reports whether a booking in this status makes its dates
// unavailable to other guests.
func (s BookingStatus) Blocks() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Booking records a guest's stay at a property.
type Booking struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	PropertyID   string        `json:"propertyId" bson:"property_id"`
	GuestID      string        `json:"guestId" bson:"guest_id"`
	HostID       string        `json:"hostId" bson:"host_id"`
	CheckInDate  time.Time     `json:"checkInDate" bson:"check_in_date"`
	CheckOutDate time.Time     `json:"checkOutDate" bson:"check_out_date"`
	TotalPrice   float64       `json:"totalPrice" bson:"total_price"`
	Status       BookingStatus `json:"status" bson:"status"`
	GuestCount   int           `json:"guestCount" bson:"guest_count"`
	CreatedAt    time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updated_at"`
}

// Nights returns the number of nights between check-in and check-out.
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

// Overlaps reports whether the booking's date range intersects [checkIn, checkOut).
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return checkIn.Before(b.CheckOutDate) && checkOut.After(b.CheckInDate)
}
