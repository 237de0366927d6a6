package domain

import "time"

// ShipmentStateChanged is the event published on the shipments.<id> topic
// whenever a state change becomes externally visible.
type ShipmentStateChanged struct {
	ShipmentID string        `json:"shipment_id"`
	NewState   ShipmentState `json:"new_state"`
	ChangedAt  time.Time     `json:"changed_at"`
}

// StateChange is the bare {id, state} tuple the watcher observes when
// querying for shipments changed since its last checkpoint.
type StateChange struct {
	ShipmentID string
	State      ShipmentState
}
