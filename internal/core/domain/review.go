package domain

import (
	"errors"
	"time"
)

var ErrReviewNotFound = errors.New("review not found")
var ErrReviewExists = errors.New("booking already reviewed")

// Review is a guest's rating of a completed stay. One review per booking.
type Review struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	PropertyID string    `json:"propertyId" bson:"property_id"`
	BookingID  string    `json:"bookingId" bson:"booking_id"`
	GuestID    string    `json:"guestId" bson:"guest_id"`
	Rating     int       `json:"rating" bson:"rating"`
	Comment    string    `json:"comment" bson:"comment"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}
