package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharenest/sharenest/internal/core/domain"
	"github.com/sharenest/sharenest/internal/core/ports"
)

type MessageService struct {
	repo     ports.MessageRepository
	bookings ports.BookingRepository
	log      zerolog.Logger
}

func NewMessageService(repo ports.MessageRepository, bookings ports.BookingRepository, log zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, bookings: bookings, log: log}
}

func (s *MessageService) Send(ctx context.Context, senderID string, in ports.SendMessageInput) (*domain.Message, error) {
	if in.Content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}

	booking, err := s.bookings.FindByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	// The recipient is always the other participant of the booking.
	var recipientID string
	switch senderID {
	case booking.GuestID:
		recipientID = booking.HostID
	case booking.HostID:
		recipientID = booking.GuestID
	default:
		return nil, domain.ErrForbidden
	}

	msg := &domain.Message{
		BookingID:   in.BookingID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     in.Content,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *MessageService) ListByBooking(ctx context.Context, bookingID, callerID, callerRole string) ([]*domain.Message, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canAccessBooking(booking, callerID, callerRole) {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByBooking(ctx, bookingID)
}

func (s *MessageService) MarkRead(ctx context.Context, messageID, callerID string) (*domain.Message, error) {
	msg, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.RecipientID != callerID {
		return nil, domain.ErrForbidden
	}
	if msg.IsRead {
		return msg, nil
	}

	if err := s.repo.MarkRead(ctx, messageID); err != nil {
		return nil, err
	}
	msg.IsRead = true
	return msg, nil
}
