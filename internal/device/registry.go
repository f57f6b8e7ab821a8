package device

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vishwakarmasoyam61-spec/iot-chain/internal/event"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry provides device management with caching and thread safety.
// It wraps a Repository and adds an in-memory cache for fast lookups,
// enforces the ownership rules on mutation, and emits event records.
//
// The cache is populated on startup via RefreshCache() and kept in sync
// by the mutating operations. The owner index and the global ID index
// preserve registration order and are append-only.
//
// All public methods are thread-safe. Mutations persist first and update
// the cache only after the repository commit, so a failed operation leaves
// no trace in either.
type Registry struct {
	repo Repository
	sink event.Sink

	cache      map[string]*Device  // cached devices by ID
	ownerIndex map[string][]string // device IDs per owner, registration order
	orderedIDs []string            // global device index, registration order
	cacheMu    sync.RWMutex

	logger Logger
}

// NewRegistry creates a new device registry.
// The repository is used for persistence; the registry adds caching,
// ownership enforcement and event emission.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:       repo,
		sink:       event.NopSink{},
		cache:      make(map[string]*Device),
		ownerIndex: make(map[string][]string),
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// SetSink sets the event sink that receives registry event records.
// Defaults to a no-op sink.
func (r *Registry) SetSink(sink event.Sink) {
	if sink == nil {
		sink = event.NopSink{}
	}
	r.sink = sink
}

// RefreshCache reloads all devices from the repository into the cache.
// This should be called on application startup.
func (r *Registry) RefreshCache(ctx context.Context) error {
	devices, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading devices: %w", err)
	}

	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	// Clear and rebuild cache and indexes. Repository order is
	// registration order, so appending preserves it.
	r.cache = make(map[string]*Device, len(devices))
	r.ownerIndex = make(map[string][]string)
	r.orderedIDs = make([]string, 0, len(devices))
	for i := range devices {
		d := devices[i]
		r.cache[d.ID] = d.Clone()
		r.ownerIndex[d.Owner] = append(r.ownerIndex[d.Owner], d.ID)
		r.orderedIDs = append(r.orderedIDs, d.ID)
	}

	r.logger.Info("device cache refreshed", "count", len(devices))
	return nil
}

// Register creates a new device owned by the caller identity.
//
// Fails with ErrInvalidDevice if the ID or owner is empty, and with
// ErrDeviceExists if the ID is already registered. On success the device
// starts active with zero data points, is appended to the owner index and
// the global device index, and a DeviceRegistered event is emitted.
func (r *Registry) Register(ctx context.Context, id, deviceType, location, owner string) (*Device, error) {
	if err := ValidateRegistration(id, deviceType, location, owner); err != nil {
		return nil, err
	}

	// Fast duplicate check against the cache. The repository insert
	// re-checks via the primary key, so this is not load-bearing.
	r.cacheMu.RLock()
	_, exists := r.cache[id]
	r.cacheMu.RUnlock()
	if exists {
		return nil, ErrDeviceExists
	}

	device := &Device{
		ID:       id,
		Owner:    owner,
		Type:     deviceType,
		Location: location,
		IsActive: true,
	}

	if err := r.repo.Create(ctx, device); err != nil {
		return nil, err
	}

	r.cacheMu.Lock()
	r.cache[device.ID] = device.Clone()
	r.ownerIndex[owner] = append(r.ownerIndex[owner], device.ID)
	r.orderedIDs = append(r.orderedIDs, device.ID)
	r.cacheMu.Unlock()

	r.emit(ctx, event.DeviceRegistered(device.ID, owner, deviceType))
	r.logger.Info("device registered", "id", device.ID, "owner", owner, "type", deviceType)

	return device.Clone(), nil
}

// Get retrieves a device by ID.
// Returns ErrDeviceNotFound if the device does not exist.
// The returned device is a copy; callers can safely modify it.
func (r *Registry) Get(ctx context.Context, id string) (*Device, error) {
	r.cacheMu.RLock()
	cached, ok := r.cache[id]
	r.cacheMu.RUnlock()

	if ok {
		return cached.Clone(), nil
	}

	// Fall back to the repository for devices not yet cached. The result
	// is served directly, not inserted: cache, owner index and global
	// index are only ever populated together, by Register and
	// RefreshCache, so they cannot drift apart.
	return r.repo.GetByID(ctx, id)
}

// ListByOwner returns the IDs of all devices registered by owner, in
// registration order. The result may be empty and is a copy.
func (r *Registry) ListByOwner(ctx context.Context, owner string) ([]string, error) {
	r.cacheMu.RLock()
	ids, ok := r.ownerIndex[owner]
	if ok || len(r.cache) > 0 {
		out := make([]string, len(ids))
		copy(out, ids)
		r.cacheMu.RUnlock()
		return out, nil
	}
	r.cacheMu.RUnlock()

	return r.repo.ListIDsByOwner(ctx, owner)
}

// ToggleActive flips the active flag of a device and returns the new state.
//
// Fails with ErrDeviceNotFound if the device is absent and ErrNotOwner if
// the caller is not the registering owner. The flip and the owner check run
// in one repository transaction, and the write lock is held across the
// call, so concurrent toggles serialize: each one inverts the state the
// previous one committed. Emits DeviceStatusChanged.
func (r *Registry) ToggleActive(ctx context.Context, id, caller string) (bool, error) {
	r.cacheMu.Lock()
	newState, err := r.repo.Toggle(ctx, id, caller)
	if err != nil {
		r.cacheMu.Unlock()
		return false, err
	}

	if cached, ok := r.cache[id]; ok {
		updated := cached.Clone()
		updated.IsActive = newState
		updated.UpdatedAt = time.Now().UTC()
		r.cache[id] = updated
	}
	r.cacheMu.Unlock()

	r.emit(ctx, event.DeviceStatusChanged(id, newState, caller))
	r.logger.Info("device status toggled", "id", id, "is_active", newState)

	return newState, nil
}

// RecordSubmission updates the cached submission counters for a device.
//
// This is the internal hook invoked by the ledger after its submission
// transaction commits; the persisted counters were already updated inside
// that transaction. Never exposed to external callers.
func (r *Registry) RecordSubmission(deviceID string, timestamp int64) {
	r.cacheMu.Lock()
	if cached, ok := r.cache[deviceID]; ok {
		updated := cached.Clone()
		updated.LastDataTimestamp = timestamp
		updated.TotalDataPoints++
		updated.UpdatedAt = time.Now().UTC()
		r.cache[deviceID] = updated
	}
	r.cacheMu.Unlock()

	r.logger.Debug("device submission recorded", "id", deviceID, "timestamp", timestamp)
}

// Count returns the size of the global device index.
func (r *Registry) Count() int {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	return len(r.orderedIDs)
}

// Stats returns registry statistics for monitoring.
type Stats struct {
	TotalDevices int
	ActiveCount  int
	ByType       map[string]int
}

// GetStats returns current registry statistics.
func (r *Registry) GetStats() Stats {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()

	stats := Stats{
		TotalDevices: len(r.orderedIDs),
		ByType:       make(map[string]int),
	}

	for _, d := range r.cache {
		stats.ByType[d.Type]++
		if d.IsActive {
			stats.ActiveCount++
		}
	}

	return stats
}

// emit hands an event to the sink. Sink failures are logged, never
// propagated: the state change has already committed.
func (r *Registry) emit(ctx context.Context, e event.Event) {
	if err := r.sink.Emit(ctx, e); err != nil {
		r.logger.Warn("event sink emit failed", "event", string(e.Type), "entity", e.EntityID, "error", err)
	}
}
