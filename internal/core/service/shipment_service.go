package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/parcelhub/shipping-api/internal/core/domain"
	"github.com/parcelhub/shipping-api/internal/core/ports"
)

// TopicForShipment returns the notification topic carrying a shipment's
// state-change events.
func TopicForShipment(shipmentID string) string {
	return "shipments." + shipmentID
}

// ShipmentService implements the shipment lifecycle use cases.
type ShipmentService struct {
	repo     ports.ShipmentRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewShipmentService(repo ports.ShipmentRepository, notifier ports.Notifier, logger zerolog.Logger) *ShipmentService {
	return &ShipmentService{repo: repo, notifier: notifier, logger: logger}
}

// Create builds the parcel from pre-validated input, constructs a shipment
// in the WAITING state and persists it. The price comes from the caller
// (the earlier quote flow); it is not recomputed here.
func (s *ShipmentService) Create(ctx context.Context, input ports.CreateShipmentInput) (string, error) {
	id := uuid.NewString()

	parcel := domain.NewParcel(input.Weight, input.Length, input.Width, input.Height)
	parcel.ChargeableWeight = parcel.CalculateChargeableWeight()
	parcel.Price = input.Price

	shipment := domain.NewShipment(id, input.OriginID, input.DestinationID, input.UserID, parcel)
	shipment.ChangeState(domain.StateWaiting)

	if err := s.repo.Create(ctx, shipment); err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create shipment")
		return "", err
	}

	s.logger.Info().
		Str("shipment_id", id).
		Str("user_id", input.UserID).
		Float64("price", parcel.Price).
		Msg("shipment created")

	return id, nil
}

// GetByID returns the persisted shipment with its full history. The
// ownership check against the requesting user happens at the transport
// boundary using the returned UserID.
func (s *ShipmentService) GetByID(ctx context.Context, id string) (*domain.Shipment, error) {
	return s.repo.FindByID(ctx, id)
}

// ListByUser returns one page of the user's shipments, newest first,
// projected into summaries.
func (s *ShipmentService) ListByUser(ctx context.Context, userID string, page, count int) ([]ports.ShipmentSummary, error) {
	shipments, err := s.repo.FindPageByUser(ctx, userID, page, count)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.ShipmentSummary, 0, len(shipments))
	for _, sh := range shipments {
		summaries = append(summaries, ports.ShipmentSummary{
			ID:               sh.ID,
			OriginID:         sh.OriginID,
			DestinationID:    sh.DestinationID,
			Weight:           sh.Parcel.Weight,
			Length:           sh.Parcel.Length,
			Width:            sh.Parcel.Width,
			Height:           sh.Parcel.Height,
			ChargeableWeight: sh.Parcel.ChargeableWeight,
			Price:            sh.Parcel.Price,
			State:            sh.State,
			CreatedAt:        sh.CreatedAt,
		})
	}
	return summaries, nil
}

// ChangeState records the new state and publishes the change on the
// shipment's topic. The persistence write is unconditional even when the
// state is unchanged: the watcher feeds this use case bare {id, state}
// tuples without loading the entity, and integration setups force state
// changes directly at the storage layer to simulate external carriers, so
// redundancy filtering stays with the Shipment entity alone.
func (s *ShipmentService) ChangeState(ctx context.Context, shipmentID string, newState domain.ShipmentState) error {
	if !domain.ValidState(newState) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownState, newState)
	}

	changedAt := time.Now().UTC()
	if err := s.repo.UpdateState(ctx, shipmentID, newState, changedAt); err != nil {
		s.logger.Error().Err(err).Str("shipment_id", shipmentID).Msg("failed to update shipment state")
		return err
	}

	s.notifier.Publish(ctx, TopicForShipment(shipmentID), domain.ShipmentStateChanged{
		ShipmentID: shipmentID,
		NewState:   newState,
		ChangedAt:  changedAt,
	})

	s.logger.Info().
		Str("shipment_id", shipmentID).
		Str("state", string(newState)).
		Msg("shipment state changed")

	return nil
}
