package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sharenest/sharenest/internal/core/domain"
	"github.com/sharenest/sharenest/internal/core/ports"
)

type createReviewRequest struct {
	BookingID string `json:"bookingId" validate:"required"`
	Rating    int    `json:"rating"    validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment"   validate:"required"`
}

type listReviewsResponse struct {
	Data       []*domain.Review   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// Create handles POST /api/reviews — guest with a completed stay.
//
// @Summary      Review a completed stay
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReviewRequest  true  "Review details"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.service.Create(c.Request().Context(), userID, ports.CreateReviewInput{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// ListByProperty handles GET /api/properties/:id/reviews — public.
//
// @Summary      List a property's reviews
// @Tags         reviews
// @Produce      json
// @Param        id     path      string  true   "Property id"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  listReviewsResponse
// @Router       /api/properties/{id}/reviews [get]
func (h *ReviewHandler) ListByProperty(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListByProperty(c.Request().Context(), c.Param("id"), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listReviewsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
