package device

import (
	"fmt"
	"strings"
)

// Validation constants.
const (
	maxIDLength       = 100
	maxOwnerLength    = 100
	maxTypeLength     = 100
	maxLocationLength = 200
)

// ValidateRegistration checks the inputs of a registration request.
// Returns an error describing the first validation failure found.
func ValidateRegistration(id, deviceType, location, owner string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if err := ValidateOwner(owner); err != nil {
		return err
	}
	if len(deviceType) > maxTypeLength {
		return fmt.Errorf("%w: device type exceeds %d characters", ErrInvalidDevice, maxTypeLength)
	}
	if len(location) > maxLocationLength {
		return fmt.Errorf("%w: location exceeds %d characters", ErrInvalidDevice, maxLocationLength)
	}
	return nil
}

// ValidateID checks that a device ID is non-empty and within bounds.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: device id cannot be empty", ErrInvalidDevice)
	}
	if len(id) > maxIDLength {
		return fmt.Errorf("%w: device id exceeds %d characters", ErrInvalidDevice, maxIDLength)
	}
	return nil
}

// ValidateOwner checks that a caller identity is non-empty and within bounds.
func ValidateOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return fmt.Errorf("%w: owner identity cannot be empty", ErrInvalidDevice)
	}
	if len(owner) > maxOwnerLength {
		return fmt.Errorf("%w: owner identity exceeds %d characters", ErrInvalidDevice, maxOwnerLength)
	}
	return nil
}
