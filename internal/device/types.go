package device

import "time"

// Device represents an owner-registered IoT device record.
//
// ID and Owner are immutable once set. The submission counters
// (LastDataTimestamp, TotalDataPoints) are updated only when the ledger
// accepts a reading for this device; IsActive is toggled only by the owner.
type Device struct {
	// Identity
	ID    string `json:"id"`
	Owner string `json:"owner"`

	// Classification
	Type     string `json:"device_type"`
	Location string `json:"location"`

	// Lifecycle
	IsActive bool `json:"is_active"`

	// Submission counters
	LastDataTimestamp int64 `json:"last_data_timestamp"`
	TotalDataPoints   int64 `json:"total_data_points"`

	// Seq is the device's position in the global registration order.
	// Assigned once at creation, never reused.
	Seq int64 `json:"seq"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone creates an independent copy of the Device.
// All fields are value types, so a shallow copy is complete. This is
// essential for cache isolation: callers can modify the copy freely.
func (d *Device) Clone() *Device {
	if d == nil {
		return nil
	}
	cpy := *d
	return &cpy
}

// OwnedBy reports whether identity is the registering owner of the device.
// Ownership gates toggling and data submission.
func (d *Device) OwnedBy(identity string) bool {
	return d != nil && identity != "" && d.Owner == identity
}
