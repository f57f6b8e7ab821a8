package ledger

import "errors"

var (
	// ErrDataPointNotFound is returned when a data point hash is unknown.
	ErrDataPointNotFound = errors.New("ledger: data point not found")

	// ErrAlreadyVerified is returned when verifying an already verified
	// data point. The verified flag is never reset.
	ErrAlreadyVerified = errors.New("ledger: data point already verified")

	// ErrHashCollision is returned when a computed content hash already
	// exists in the ledger. This indicates an integrity violation, not a
	// normal duplicate: the digest binds device, content, timestamp and
	// submitter, so two accepted submissions can never share a hash.
	ErrHashCollision = errors.New("ledger: data hash collision")

	// ErrDeviceInactive is returned when submitting to a deactivated device.
	ErrDeviceInactive = errors.New("ledger: device is inactive")

	// ErrInvalidReading is returned for malformed submissions, such as an
	// empty data type or value.
	ErrInvalidReading = errors.New("ledger: invalid reading")
)
