// Package logging provides structured logging for the iot-chain core.
//
// It wraps log/slog with configuration-driven level, format and output
// selection, plus default fields identifying the service and build version.
//
// Usage:
//
//	log := logging.New(cfg.Logging, version)
//	log.Info("device registered", "device_id", id, "owner", owner)
//
// Component loggers:
//
//	regLog := log.With("component", "registry")
package logging
