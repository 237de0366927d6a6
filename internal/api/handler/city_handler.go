package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parcelhub/shipping-api/internal/core/ports"
)

// CityHandler serves the selectable city listing.
type CityHandler struct {
	service ports.CityService
}

func NewCityHandler(service ports.CityService) *CityHandler {
	return &CityHandler{service: service}
}

// List handles GET /v1/cities.
//
// @Summary      List cities
// @Tags         cities
// @Produce      json
// @Success      200  {array}  ports.CityItem
// @Failure      500  {object}  errorResponse
// @Router       /v1/cities [get]
func (h *CityHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
