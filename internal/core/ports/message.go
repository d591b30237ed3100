package ports

import (
	"context"

	"github.com/sharenest/sharenest/internal/core/domain"
)

// SendMessageInput carries a message from one booking participant to the other.
type SendMessageInput struct {
	BookingID string
	Content   string
}

// MessageService defines use-case operations for booking messages.
type MessageService interface {
	// Send delivers a message within a booking conversation; the recipient
	// is always the other participant.
	Send(ctx context.Context, senderID string, in SendMessageInput) (*domain.Message, error)
	// ListByBooking is restricted to the booking's participants or an admin.
	ListByBooking(ctx context.Context, bookingID, callerID, callerRole string) ([]*domain.Message, error)
	// MarkRead flags a message as read; only the recipient may do so.
	MarkRead(ctx context.Context, messageID, callerID string) (*domain.Message, error)
}

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*domain.Message, error)
	MarkRead(ctx context.Context, id string) error
}
