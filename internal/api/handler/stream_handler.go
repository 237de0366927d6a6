package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/parcelhub/shipping-api/internal/core/domain"
	"github.com/parcelhub/shipping-api/internal/core/ports"
)

const streamHeartbeat = 15 * time.Second

// StreamHandler is the transport adapter for the shipments.<id> topics: it
// verifies ownership, joins the topic and relays events to the client as
// server-sent events. The notifier itself performs no authorization.
type StreamHandler struct {
	shipments  ports.ShipmentService
	subscriber ports.Subscriber
	topicFor   func(shipmentID string) string
}

func NewStreamHandler(shipments ports.ShipmentService, subscriber ports.Subscriber, topicFor func(string) string) *StreamHandler {
	return &StreamHandler{shipments: shipments, subscriber: subscriber, topicFor: topicFor}
}

// Events handles GET /v1/shipments/:id/events.
//
// @Summary      Stream shipment state changes (SSE)
// @Tags         shipments
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "Shipment id"
// @Success      200  "event stream"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/shipments/{id}/events [get]
func (h *StreamHandler) Events(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	shipmentID := c.Param("id")
	shipment, err := h.shipments.GetByID(c.Request().Context(), shipmentID)
	if err != nil {
		return err
	}
	role, _ := c.Get("role").(string)
	if shipment.UserID != userID && role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	ctx := c.Request().Context()
	events, err := h.subscriber.Subscribe(ctx, h.topicFor(shipmentID))
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case payload, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
