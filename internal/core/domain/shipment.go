package domain

import (
	"errors"
	"time"
)

// ShipmentState represents the lifecycle state of a shipment.
type ShipmentState string

const (
	StateWaiting   ShipmentState = "WAITING"
	StatePickedUp  ShipmentState = "PICKED_UP"
	StateInTransit ShipmentState = "IN_TRANSIT"
	StateDelivered ShipmentState = "DELIVERED"
)

var ErrShipmentNotFound = errors.New("shipment not found")
var ErrInvalidRoute = errors.New("invalid origin or destination")
var ErrForbidden = errors.New("access forbidden")
var ErrUnknownState = errors.New("unknown shipment state")

// ValidState reports whether s is a member of the closed state set.
func ValidState(s ShipmentState) bool {
	switch s {
	case StateWaiting, StatePickedUp, StateInTransit, StateDelivered:
		return true
	}
	return false
}

// StateHistoryEntry records a single state transition. ChangedAt is stamped
// by the entity at transition time, never supplied by the caller.
type StateHistoryEntry struct {
	State     ShipmentState `json:"state" bson:"state"`
	ChangedAt time.Time     `json:"changed_at" bson:"changed_at"`
}

// Shipment is the aggregate root of the lifecycle subsystem. The only
// mutation path is ChangeState; StateHistory is append-only and is never
// reordered or truncated.
type Shipment struct {
	ID            string              `json:"id" bson:"_id"`
	OriginID      string              `json:"origin_id" bson:"origin_id"`
	DestinationID string              `json:"destination_id" bson:"destination_id"`
	UserID        string              `json:"user_id" bson:"user_id"`
	Parcel        *Parcel             `json:"parcel" bson:"parcel"`
	StateHistory  []StateHistoryEntry `json:"state_history" bson:"state_history"`
	State         ShipmentState       `json:"state" bson:"state"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
}

// NewShipment creates a shipment with no state yet. The creation flow is
// expected to call ChangeState with the initial state, which records the
// first history entry.
func NewShipment(id, originID, destinationID, userID string, parcel *Parcel) *Shipment {
	return &Shipment{
		ID:            id,
		OriginID:      originID,
		DestinationID: destinationID,
		UserID:        userID,
		Parcel:        parcel,
		CreatedAt:     time.Now().UTC(),
	}
}

// ChangeState moves the shipment to newState and appends a history entry
// stamped with the current time. A transition to the current state is a
// no-op: no entry is appended. Any state is reachable from any other state;
// restricting backward transitions is left to callers.
func (s *Shipment) ChangeState(newState ShipmentState) {
	if s.State == newState {
		return
	}
	s.State = newState
	s.StateHistory = append(s.StateHistory, StateHistoryEntry{
		State:     newState,
		ChangedAt: time.Now().UTC(),
	})
}
