package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/parcelhub/shipping-api/internal/api/metrics"
	"github.com/parcelhub/shipping-api/internal/core/domain"
	"github.com/parcelhub/shipping-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ShipmentHandler handles HTTP requests for shipment operations.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

type createShipmentRequest struct {
	OriginID      string  `json:"origin_id"      validate:"required"`
	DestinationID string  `json:"destination_id" validate:"required"`
	Weight        float64 `json:"weight"         validate:"required,gt=0"`
	Length        float64 `json:"length"         validate:"required,gt=0"`
	Width         float64 `json:"width"          validate:"required,gt=0"`
	Height        float64 `json:"height"         validate:"required,gt=0"`
	Price         float64 `json:"price"          validate:"required,gt=0"`
}

type createShipmentResponse struct {
	ShipmentID string `json:"shipment_id"`
}

type changeStateRequest struct {
	State string `json:"state" validate:"required,oneof=WAITING PICKED_UP IN_TRANSIT DELIVERED"`
}

// Create handles POST /v1/shipments. The price comes from an earlier quote;
// it is not recomputed here.
//
// @Summary      Create a shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShipmentRequest  true  "Shipment details"
// @Success      201   {object}  createShipmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), ports.CreateShipmentInput{
		OriginID:      req.OriginID,
		DestinationID: req.DestinationID,
		UserID:        userID,
		Weight:        req.Weight,
		Length:        req.Length,
		Width:         req.Width,
		Height:        req.Height,
		Price:         req.Price,
	})
	if err != nil {
		return err
	}

	metrics.ShipmentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createShipmentResponse{ShipmentID: id})
}

// Get handles GET /v1/shipments/:id. Ownership is enforced here: the
// requesting user must own the shipment.
//
// @Summary      Get a shipment by id
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Shipment id"
// @Success      200  {object}  domain.Shipment
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/shipments/{id} [get]
func (h *ShipmentHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	shipment, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	role, _ := c.Get("role").(string)
	if shipment.UserID != userID && role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	return c.JSON(http.StatusOK, shipment)
}

// List handles GET /v1/shipments?page=&count= for the authenticated user.
//
// @Summary      List the authenticated user's shipments
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (0-based)"
// @Param        count  query     int  false  "Items per page (max 100)"
// @Success      200    {array}   ports.ShipmentSummary
// @Failure      401    {object}  errorResponse
// @Router       /v1/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 0 {
		page = 0
	}
	count, err := strconv.Atoi(c.QueryParam("count"))
	if err != nil || count <= 0 {
		count = defaultPageSize
	}
	if count > maxPageSize {
		count = maxPageSize
	}

	summaries, err := h.service.ListByUser(c.Request().Context(), userID, page, count)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaries)
}

// ChangeState handles PATCH /v1/shipments/:id/state. Reserved for admins:
// this is the direct API path for state transitions, alongside the watcher.
//
// @Summary      Force a shipment state transition
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Shipment id"
// @Param        body  body      changeStateRequest  true  "New state"
// @Success      204   "state recorded"
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/shipments/{id}/state [patch]
func (h *ShipmentHandler) ChangeState(c echo.Context) error {
	var req changeStateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state := domain.ShipmentState(req.State)
	if err := h.service.ChangeState(c.Request().Context(), c.Param("id"), state); err != nil {
		return err
	}

	metrics.StateChangesTotal.WithLabelValues(req.State).Inc()
	return c.NoContent(http.StatusNoContent)
}
