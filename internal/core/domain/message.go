package domain

import (
	"errors"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")

// Message is a note exchanged between the guest and host of a booking.
type Message struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	BookingID   string    `json:"bookingId" bson:"booking_id"`
	SenderID    string    `json:"senderId" bson:"sender_id"`
	RecipientID string    `json:"recipientId" bson:"recipient_id"`
	Content     string    `json:"content" bson:"content"`
	IsRead      bool      `json:"isRead" bson:"is_read"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// Favorite marks a property saved by a user.
type Favorite struct {
	UserID     string    `json:"userId" bson:"user_id"`
	PropertyID string    `json:"propertyId" bson:"property_id"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}
