package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/vishwakarmasoyam61-spec/iot-chain/internal/device"
	"github.com/vishwakarmasoyam61-spec/iot-chain/internal/digest"
	"github.com/vishwakarmasoyam61-spec/iot-chain/internal/event"
)

// Logger defines the logging interface used by the Ledger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Ledger accepts sensor readings from device owners and records them as
// hash-addressed, immutable data points.
//
// Every submission is bound to its content by a digest over the device ID,
// data type, value, logical timestamp and submitter identity; the digest is
// the record's primary key. Verification is open to any identity and flips
// the verified flag exactly once.
//
// A submission commits the data point insert and the owning device's
// counter update in one repository transaction; the device registry cache
// is notified only after the commit.
type Ledger struct {
	repo     Repository
	registry *device.Registry
	sink     event.Sink
	clock    Clock
	logger   Logger
}

// New creates a ledger over the given repository and device registry.
func New(repo Repository, registry *device.Registry) *Ledger {
	return &Ledger{
		repo:     repo,
		registry: registry,
		sink:     event.NopSink{},
		clock:    NewSystemClock(),
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the ledger.
func (l *Ledger) SetLogger(logger Logger) {
	l.logger = logger
}

// SetSink sets the event sink that receives ledger event records.
func (l *Ledger) SetSink(sink event.Sink) {
	if sink == nil {
		sink = event.NopSink{}
	}
	l.sink = sink
}

// SetClock overrides the logical timestamp source. Intended for tests and
// for environments that supply their own sequence counter.
func (l *Ledger) SetClock(clock Clock) {
	if clock == nil {
		clock = NewSystemClock()
	}
	l.clock = clock
}

// Submit records a new reading for a device.
//
// The caller must be the device owner and the device must be active; the
// reading's type and value must be non-empty. On success the returned data
// point is unverified, carries the content hash as its identity, and the
// device's submission counters have been advanced in the same transaction.
// A hash collision aborts the submission with ErrHashCollision and no
// state change.
func (l *Ledger) Submit(ctx context.Context, deviceID, dataType, dataValue, caller string) (*DataPoint, error) {
	// Fast-path precondition checks against the registry cache. The
	// repository transaction re-checks all of them authoritatively.
	dev, err := l.registry.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !dev.OwnedBy(caller) {
		return nil, device.ErrNotOwner
	}
	if !dev.IsActive {
		return nil, ErrDeviceInactive
	}
	if dataType == "" {
		return nil, fmt.Errorf("%w: data type must not be empty", ErrInvalidReading)
	}
	if dataValue == "" {
		return nil, fmt.Errorf("%w: data value must not be empty", ErrInvalidReading)
	}

	timestamp := l.clock.Now()
	point := &DataPoint{
		Hash:      digest.Reading(deviceID, dataType, dataValue, timestamp, caller),
		DeviceID:  deviceID,
		DataType:  dataType,
		DataValue: dataValue,
		Timestamp: timestamp,
	}

	if err := l.repo.Submit(ctx, point, caller); err != nil {
		return nil, err
	}

	l.registry.RecordSubmission(deviceID, timestamp)
	l.emit(ctx, event.DataSubmitted(deviceID, point.Hash, dataType, dataValue, timestamp, caller))
	l.logger.Info("data point submitted",
		"device_id", deviceID, "hash", point.Hash, "data_type", dataType)

	return point.Clone(), nil
}

// Verify marks the data point identified by hash as verified by caller.
//
// Any identity may verify; attestation is deliberately not owner-gated.
// Fails with ErrDataPointNotFound for an unknown hash and
// ErrAlreadyVerified if the flag is already set.
func (l *Ledger) Verify(ctx context.Context, hash, caller string) error {
	if err := l.repo.Verify(ctx, hash, caller, time.Now()); err != nil {
		return err
	}

	l.emit(ctx, event.DataVerified(hash, caller))
	l.logger.Info("data point verified", "hash", hash, "verified_by", caller)
	return nil
}

// Get retrieves a data point by its content hash.
func (l *Ledger) Get(ctx context.Context, hash string) (*DataPoint, error) {
	return l.repo.GetByHash(ctx, hash)
}

// ListByDevice returns all data points submitted under a device, in
// submission order.
func (l *Ledger) ListByDevice(ctx context.Context, deviceID string) ([]DataPoint, error) {
	return l.repo.ListByDevice(ctx, deviceID)
}

// Count returns the size of the global data index.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	return l.repo.Count(ctx)
}

func (l *Ledger) emit(ctx context.Context, e event.Event) {
	if err := l.sink.Emit(ctx, e); err != nil {
		l.logger.Warn("event sink emit failed", "event", string(e.Type), "entity", e.EntityID, "error", err)
	}
}
