package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrDeviceNotFound) {
//	    // handle not found case
//	}
var (
	// ErrDeviceNotFound is returned when a device ID does not exist.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrDeviceExists is returned when registering a device with an ID that already exists.
	ErrDeviceExists = errors.New("device: already exists")

	// ErrInvalidDevice is returned when registration validation fails
	// (empty device ID, empty owner identity, oversized fields).
	ErrInvalidDevice = errors.New("device: invalid")

	// ErrNotOwner is returned when a caller other than the registering
	// owner attempts an owner-gated operation.
	ErrNotOwner = errors.New("device: caller is not the owner")
)
