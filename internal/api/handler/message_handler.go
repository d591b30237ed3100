package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sharenest/sharenest/internal/core/ports"
)

type sendMessageRequest struct {
	BookingID string `json:"bookingId" validate:"required"`
	Content   string `json:"content"   validate:"required"`
}

// MessageHandler handles HTTP requests for booking messages.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send handles POST /api/messages — booking participants only.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Send(c.Request().Context(), userID, ports.SendMessageInput{
		BookingID: req.BookingID,
		Content:   req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// ListByBooking handles GET /api/bookings/:id/messages.
//
// @Summary      List a booking's messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Booking id"
// @Success      200  {array}   domain.Message
// @Failure      403  {object}  errorResponse
// @Router       /api/bookings/{id}/messages [get]
func (h *MessageHandler) ListByBooking(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	messages, err := h.service.ListByBooking(c.Request().Context(), c.Param("id"), userID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}

// MarkRead handles PUT /api/messages/:id/read — recipient only.
//
// @Summary      Mark a message as read
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Message id"
// @Success      200  {object}  domain.Message
// @Failure      403  {object}  errorResponse
// @Router       /api/messages/{id}/read [put]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	msg, err := h.service.MarkRead(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msg)
}
