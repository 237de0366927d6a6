package ports

import (
	"context"
	"time"

	"github.com/parcelhub/shipping-api/internal/core/domain"
)

// ShipmentRepository defines persistence operations for shipments.
type ShipmentRepository interface {
	Create(ctx context.Context, s *domain.Shipment) error
	// FindByID retrieves a shipment with its full state history, or
	// domain.ErrShipmentNotFound.
	FindByID(ctx context.Context, id string) (*domain.Shipment, error)
	// FindPageByUser returns one page of the user's shipments ordered by
	// creation time descending. The offset is page*count (page is 0-based).
	FindPageByUser(ctx context.Context, userID string, page, count int) ([]*domain.Shipment, error)
	// FindChangedSince returns the {id, state} tuples of shipments whose
	// state changed after the given instant.
	FindChangedSince(ctx context.Context, since time.Time) ([]domain.StateChange, error)
	// UpdateState sets the current state and appends a history entry. The
	// write is unconditional: redundancy checks are the entity's concern,
	// and the watcher operates on bare tuples without loading entities.
	UpdateState(ctx context.Context, id string, state domain.ShipmentState, changedAt time.Time) error
}
