package ledger

import "time"

// DataPoint is an immutable sensor reading keyed by its content hash.
//
// The hash is computed over the device ID, data type, data value, logical
// timestamp and submitter identity, so the record's identity binds its
// content. Once stored, the only field that ever changes is the
// verification state, and that change is one-way.
type DataPoint struct {
	// Hash is the hex-encoded content digest and primary key.
	Hash string `json:"hash"`

	// DeviceID references the device the reading was submitted under.
	DeviceID string `json:"device_id"`

	// DataType names the kind of reading, e.g. "temperature".
	DataType string `json:"data_type"`

	// DataValue is the reading payload, stored verbatim.
	DataValue string `json:"data_value"`

	// Timestamp is the logical time of acceptance.
	Timestamp int64 `json:"timestamp"`

	// IsVerified starts false and flips to true at most once.
	IsVerified bool `json:"is_verified"`

	// VerifiedBy is the identity that verified the reading, empty until then.
	VerifiedBy string `json:"verified_by,omitempty"`

	// VerifiedAt is the wall-clock verification time, nil until verified.
	VerifiedAt *time.Time `json:"verified_at,omitempty"`

	// Seq is the position in the global submission order, assigned on insert.
	Seq int64 `json:"seq"`

	// CreatedAt is the wall-clock insertion time.
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a copy of the data point.
func (p *DataPoint) Clone() *DataPoint {
	clone := *p
	if p.VerifiedAt != nil {
		at := *p.VerifiedAt
		clone.VerifiedAt = &at
	}
	return &clone
}
