package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parcelhub/shipping-api/internal/api/metrics"
	"github.com/parcelhub/shipping-api/internal/core/domain"
	"github.com/parcelhub/shipping-api/internal/core/ports"
)

// QuoteHandler serves freight quote requests.
type QuoteHandler struct {
	service ports.PricingService
}

func NewQuoteHandler(service ports.PricingService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

type quoteRequest struct {
	OriginID      string  `json:"origin_id"      validate:"required"`
	DestinationID string  `json:"destination_id" validate:"required"`
	Weight        float64 `json:"weight"         validate:"required,gt=0"`
	Length        float64 `json:"length"         validate:"required,gt=0"`
	Width         float64 `json:"width"          validate:"required,gt=0"`
	Height        float64 `json:"height"         validate:"required,gt=0"`
}

type quoteResponse struct {
	ChargeableWeight float64 `json:"chargeable_weight"`
	Price            float64 `json:"price"`
}

// Quote handles POST /v1/quotes.
//
// @Summary      Quote a parcel shipment
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      quoteRequest  true  "Route and parcel dimensions"
// @Success      200   {object}  quoteResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/quotes [post]
func (h *QuoteHandler) Quote(c echo.Context) error {
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	parcel, err := h.service.Quote(c.Request().Context(), ports.QuoteInput{
		OriginID:      req.OriginID,
		DestinationID: req.DestinationID,
		Weight:        req.Weight,
		Length:        req.Length,
		Width:         req.Width,
		Height:        req.Height,
	})
	if err != nil {
		metrics.QuotesTotal.WithLabelValues(quoteOutcome(err)).Inc()
		return err
	}

	metrics.QuotesTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, quoteResponse{
		ChargeableWeight: parcel.ChargeableWeight,
		Price:            parcel.Price,
	})
}

func quoteOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidRoute):
		return "invalid_route"
	case errors.Is(err, domain.ErrFareNotFound):
		return "fare_gap"
	default:
		return "error"
	}
}
