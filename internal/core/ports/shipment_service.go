package ports

import (
	"context"
	"time"

	"github.com/parcelhub/shipping-api/internal/core/domain"
)

// CreateShipmentInput carries pre-validated data for shipment creation.
// Price is supplied by the caller (computed earlier by the quote flow),
// never recomputed here.
type CreateShipmentInput struct {
	OriginID      string
	DestinationID string
	UserID        string
	Weight        float64
	Length        float64
	Width         float64
	Height        float64
	Price         float64
}

// ShipmentSummary is the projection returned by the paginated listing.
type ShipmentSummary struct {
	ID               string               `json:"id"`
	OriginID         string               `json:"origin_id"`
	DestinationID    string               `json:"destination_id"`
	Weight           float64              `json:"weight"`
	Length           float64              `json:"length"`
	Width            float64              `json:"width"`
	Height           float64              `json:"height"`
	ChargeableWeight float64              `json:"chargeable_weight"`
	Price            float64              `json:"price"`
	State            domain.ShipmentState `json:"state"`
	CreatedAt        time.Time            `json:"created_at"`
}

// ShipmentService defines the shipment lifecycle use cases.
type ShipmentService interface {
	// Create builds a priced parcel and a WAITING shipment, persists it and
	// returns the generated id.
	Create(ctx context.Context, input CreateShipmentInput) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Shipment, error)
	ListByUser(ctx context.Context, userID string, page, count int) ([]ShipmentSummary, error)
	// ChangeState persists the new state and publishes ShipmentStateChanged
	// on shipments.<id>. This is the only path by which a state mutation
	// becomes externally visible in real time.
	ChangeState(ctx context.Context, shipmentID string, newState domain.ShipmentState) error
}
