package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sharenest/sharenest/internal/core/ports"
)

// PropertyHandler handles HTTP requests for listings.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// List handles GET /api/properties — public, filterable, paginated.
//
// @Summary      List properties
// @Tags         properties
// @Produce      json
// @Param        city      query     string  false  "Filter by city"
// @Param        type      query     string  false  "house | apartment | room | unique"
// @Param        minPrice  query     number  false  "Minimum nightly price"
// @Param        maxPrice  query     number  false  "Maximum nightly price"
// @Param        guests    query     int     false  "Minimum guest capacity"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listPropertiesResponse
// @Router       /api/properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	filter := ports.ListPropertiesFilter{
		City: c.QueryParam("city"),
		Type: c.QueryParam("type"),
	}
	filter.MinPrice, _ = strconv.ParseFloat(c.QueryParam("minPrice"), 64)
	filter.MaxPrice, _ = strconv.ParseFloat(c.QueryParam("maxPrice"), 64)
	filter.Guests, _ = strconv.Atoi(c.QueryParam("guests"))
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListPropertiesResponse(result))
}

// Get handles GET /api/properties/:id — public detail view.
//
// @Summary      Get a property
// @Tags         properties
// @Produce      json
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  propertyResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyDetailResponse(detail))
}

// Create handles POST /api/properties — host or admin only.
//
// @Summary      Create a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      propertyRequest  true  "Listing details"
// @Success      201   {object}  propertyResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req propertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	property, err := h.service.Create(c.Request().Context(), userID, toPropertyInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPropertyResponse(property))
}

// Update handles PUT /api/properties/:id — owning host or admin only.
//
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Property id"
// @Param        body  body      propertyRequest  true  "Listing details"
// @Success      200   {object}  propertyResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req propertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	property, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, role, toPropertyInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyResponse(property))
}

// Delete handles DELETE /api/properties/:id — owning host or admin only.
//
// @Summary      Delete a property
// @Tags         properties
// @Security     BearerAuth
// @Param        id  path  string  true  "Property id"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
