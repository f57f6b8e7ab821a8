// Package event defines the structured event records emitted by the device
// registry and data ledger, and the Sink interface collaborators implement
// to receive them.
//
// The core emits events synchronously with the state change that produced
// them. Delivery beyond the Sink boundary (MQTT fan-out, audit persistence,
// time-series mirroring) is a collaborator concern; sink failures are logged
// by the caller and never roll back a committed operation.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies the kind of state change an event records.
type Type string

// Event types emitted by the core.
const (
	TypeDeviceRegistered    Type = "device_registered"
	TypeDataSubmitted       Type = "data_submitted"
	TypeDataVerified        Type = "data_verified"
	TypeDeviceStatusChanged Type = "device_status_changed"
)

// Event is a single structured event record.
type Event struct {
	// ID is the unique event identifier (evt- prefix + short UUID).
	ID string `json:"id"`

	// Type is the event kind.
	Type Type `json:"type"`

	// EntityID is the primary entity the event concerns:
	// a device ID for device events, a data hash for ledger events.
	EntityID string `json:"entity_id"`

	// Actor is the caller identity that triggered the event, if any.
	Actor string `json:"actor,omitempty"`

	// Payload carries the event-specific fields.
	Payload map[string]any `json:"payload,omitempty"`

	// CreatedAt is the wall-clock emission time (UTC).
	CreatedAt time.Time `json:"created_at"`
}

// newEvent creates an event with a generated ID and UTC timestamp.
func newEvent(t Type, entityID, actor string, payload map[string]any) Event {
	return Event{
		ID:        "evt-" + uuid.NewString()[:8],
		Type:      t,
		EntityID:  entityID,
		Actor:     actor,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
}

// DeviceRegistered records the creation of a device.
func DeviceRegistered(deviceID, owner, deviceType string) Event {
	return newEvent(TypeDeviceRegistered, deviceID, owner, map[string]any{
		"device_id":   deviceID,
		"owner":       owner,
		"device_type": deviceType,
	})
}

// DataSubmitted records an accepted sensor reading. The payload carries
// the full reading so downstream sinks (audit, time-series mirror) do not
// need a ledger lookup.
func DataSubmitted(deviceID, dataHash, dataType, dataValue string, timestamp int64, submitter string) Event {
	return newEvent(TypeDataSubmitted, dataHash, submitter, map[string]any{
		"device_id":  deviceID,
		"data_hash":  dataHash,
		"data_type":  dataType,
		"data_value": dataValue,
		"timestamp":  timestamp,
	})
}

// DataVerified records the one-way verification of a data point.
func DataVerified(dataHash, verifier string) Event {
	return newEvent(TypeDataVerified, dataHash, verifier, map[string]any{
		"data_hash": dataHash,
		"verifier":  verifier,
	})
}

// DeviceStatusChanged records an active-flag toggle.
func DeviceStatusChanged(deviceID string, isActive bool, actor string) Event {
	return newEvent(TypeDeviceStatusChanged, deviceID, actor, map[string]any{
		"device_id": deviceID,
		"is_active": isActive,
	})
}
