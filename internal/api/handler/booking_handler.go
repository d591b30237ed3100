package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sharenest/sharenest/internal/api/metrics"
	"github.com/sharenest/sharenest/internal/core/domain"
	"github.com/sharenest/sharenest/internal/core/ports"
)

type createBookingRequest struct {
	PropertyID   string    `json:"propertyId"   validate:"required"`
	CheckInDate  time.Time `json:"checkInDate"  validate:"required"`
	CheckOutDate time.Time `json:"checkOutDate" validate:"required"`
	GuestCount   int       `json:"guestCount"   validate:"required,gt=0"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled completed"`
}

type listBookingsResponse struct {
	Data       []*domain.Booking  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /api/bookings.
//
// @Summary      Request a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Create(c.Request().Context(), userID, ports.CreateBookingInput{
		PropertyID:   req.PropertyID,
		CheckInDate:  req.CheckInDate.UTC(),
		CheckOutDate: req.CheckOutDate.UTC(),
		GuestCount:   req.GuestCount,
	})
	if err != nil {
		return err
	}

	metrics.BookingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, booking)
}

// List handles GET /api/bookings — scoped to the caller's role.
//
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listBookingsResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	filter := ports.ListBookingsFilter{Status: c.QueryParam("status")}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), userID, role, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listBookingsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /api/bookings/:id — participants and admin only.
//
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Get(c.Request().Context(), c.Param("id"), userID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// UpdateStatus handles PUT /api/bookings/:id/status.
//
// @Summary      Transition a booking's status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Booking id"
// @Param        body  body      updateBookingStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Booking
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/bookings/{id}/status [put]
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), userID, role, domain.BookingStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.BookingTransitionsTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, booking)
}
