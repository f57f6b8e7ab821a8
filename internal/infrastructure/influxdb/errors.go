package influxdb

import "errors"

// Sentinel errors for the reading mirror, checked with errors.Is.
var (
	// ErrNotConnected indicates the client is not connected.
	ErrNotConnected = errors.New("influxdb: not connected")

	// ErrConnectionFailed wraps a failed initial connection attempt.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrDisabled is returned by Connect when the mirror is switched off
	// in configuration.
	ErrDisabled = errors.New("influxdb: disabled in configuration")
)
