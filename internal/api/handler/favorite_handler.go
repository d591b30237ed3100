package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sharenest/sharenest/internal/core/ports"
)

// FavoriteHandler handles HTTP requests for saved properties.
type FavoriteHandler struct {
	service ports.FavoriteService
}

func NewFavoriteHandler(service ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// Add handles POST /api/properties/:id/favorite. Idempotent.
//
// @Summary      Save a property
// @Tags         favorites
// @Security     BearerAuth
// @Param        id  path  string  true  "Property id"
// @Success      204  "saved"
// @Failure      404  {object}  errorResponse
// @Router       /api/properties/{id}/favorite [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Add(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Remove handles DELETE /api/properties/:id/favorite. Idempotent.
//
// @Summary      Unsave a property
// @Tags         favorites
// @Security     BearerAuth
// @Param        id  path  string  true  "Property id"
// @Success      204  "removed"
// @Router       /api/properties/{id}/favorite [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /api/users/favorites.
//
// @Summary      List saved properties
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  propertyResponse
// @Router       /api/users/favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	properties, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	data := make([]propertyResponse, 0, len(properties))
	for _, p := range properties {
		data = append(data, toPropertyResponse(p))
	}
	return c.JSON(http.StatusOK, data)
}
