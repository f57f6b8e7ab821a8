package device

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/vishwakarmasoyam61-spec/iot-chain/internal/event"
)

// MockRepository is a test implementation of Repository.
type MockRepository struct {
	mu      sync.Mutex
	devices map[string]*Device
	order   []string
	// For testing error paths
	createErr error
	toggleErr error
}

var _ Repository = (*MockRepository)(nil)

func NewMockRepository() *MockRepository {
	return &MockRepository{
		devices: make(map[string]*Device),
	}
}

func (m *MockRepository) GetByID(_ context.Context, id string) (*Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d, ok := m.devices[id]; ok {
		copy := *d
		return &copy, nil
	}
	return nil, ErrDeviceNotFound
}

func (m *MockRepository) List(_ context.Context) ([]Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	devices := make([]Device, 0, len(m.order))
	for _, id := range m.order {
		devices = append(devices, *m.devices[id])
	}
	return devices, nil
}

func (m *MockRepository) ListIDsByOwner(_ context.Context, owner string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []string
	for _, id := range m.order {
		if m.devices[id].Owner == owner {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *MockRepository) Create(_ context.Context, device *Device) error {
	if m.createErr != nil {
		return m.createErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.devices[device.ID]; exists {
		return ErrDeviceExists
	}

	device.Seq = int64(len(m.order) + 1)
	copy := *device
	m.devices[device.ID] = &copy
	m.order = append(m.order, device.ID)
	return nil
}

func (m *MockRepository) Toggle(_ context.Context, id, caller string) (bool, error) {
	if m.toggleErr != nil {
		return false, m.toggleErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.devices[id]
	if !ok {
		return false, ErrDeviceNotFound
	}
	if d.Owner != caller {
		return false, ErrNotOwner
	}
	d.IsActive = !d.IsActive
	return d.IsActive, nil
}

func (m *MockRepository) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.devices)), nil
}

// setActive flips repository state behind the registry's back, standing in
// for a toggle committed by another process that the cache has not seen.
func (m *MockRepository) setActive(id string, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.devices[id]; ok {
		d.IsActive = active
	}
}

// captureSink records emitted events for assertions.
type captureSink struct {
	mu     sync.Mutex
	events []event.Event
}

func (s *captureSink) Emit(_ context.Context, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *captureSink) byType(t event.Type) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []event.Event
	for _, e := range s.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func newTestRegistry(t *testing.T) (*Registry, *MockRepository, *captureSink) {
	t.Helper()
	repo := NewMockRepository()
	sink := &captureSink{}
	reg := NewRegistry(repo)
	reg.SetSink(sink)
	return reg, repo, sink
}

func TestRegister(t *testing.T) {
	reg, _, sink := newTestRegistry(t)
	ctx := context.Background()

	d, err := reg.Register(ctx, "sensor-001", "temperature", "greenhouse-3", "alice")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if !d.IsActive {
		t.Error("new device should start active")
	}
	if d.TotalDataPoints != 0 {
		t.Errorf("new device should have 0 data points, got %d", d.TotalDataPoints)
	}
	if d.Owner != "alice" {
		t.Errorf("owner = %q, want alice", d.Owner)
	}

	events := sink.byType(event.TypeDeviceRegistered)
	if len(events) != 1 {
		t.Fatalf("expected 1 device_registered event, got %d", len(events))
	}
	if events[0].EntityID != "sensor-001" {
		t.Errorf("event entity = %q, want sensor-001", events[0].EntityID)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	reg, _, sink := newTestRegistry(t)
	ctx := context.Background()

	if _, err := reg.Register(ctx, "sensor-001", "temperature", "roof", "alice"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	// Same ID, different owner: must fail without touching the original.
	_, err := reg.Register(ctx, "sensor-001", "humidity", "basement", "bob")
	if !errors.Is(err, ErrDeviceExists) {
		t.Errorf("expected ErrDeviceExists, got %v", err)
	}

	d, err := reg.Get(ctx, "sensor-001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if d.Owner != "alice" || d.Type != "temperature" {
		t.Errorf("original device mutated by failed re-register: %+v", d)
	}

	if got := len(sink.byType(event.TypeDeviceRegistered)); got != 1 {
		t.Errorf("failed register must not emit, got %d events", got)
	}
}

func TestRegister_Validation(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		id    string
		owner string
	}{
		{"empty id", "", "alice"},
		{"empty owner", "sensor-001", ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Register(ctx, tt.id, "temperature", "roof", tt.owner)
			if !errors.Is(err, ErrInvalidDevice) {
				t.Errorf("expected ErrInvalidDevice, got %v", err)
			}
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	_, err := reg.Get(context.Background(), "ghost")
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	if _, err := reg.Register(ctx, "sensor-001", "temperature", "roof", "alice"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	d1, _ := reg.Get(ctx, "sensor-001")
	d1.Owner = "mallory"

	d2, _ := reg.Get(ctx, "sensor-001")
	if d2.Owner != "alice" {
		t.Error("mutation of returned device leaked into cache")
	}
}

func TestToggleActive(t *testing.T) {
	reg, _, sink := newTestRegistry(t)
	ctx := context.Background()

	if _, err := reg.Register(ctx, "sensor-001", "temperature", "roof", "alice"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// active -> inactive
	state, err := reg.ToggleActive(ctx, "sensor-001", "alice")
	if err != nil {
		t.Fatalf("ToggleActive failed: %v", err)
	}
	if state {
		t.Error("expected device to be inactive after first toggle")
	}

	// inactive -> active, round trip restores the original state
	state, err = reg.ToggleActive(ctx, "sensor-001", "alice")
	if err != nil {
		t.Fatalf("second ToggleActive failed: %v", err)
	}
	if !state {
		t.Error("expected device to be active after second toggle")
	}

	d, _ := reg.Get(ctx, "sensor-001")
	if !d.IsActive {
		t.Error("cache out of sync after toggle round trip")
	}

	if got := len(sink.byType(event.TypeDeviceStatusChanged)); got != 2 {
		t.Errorf("expected 2 status events, got %d", got)
	}
}

func TestToggleActive_NotOwner(t *testing.T) {
	reg, _, sink := newTestRegistry(t)
	ctx := context.Background()

	if _, err := reg.Register(ctx, "sensor-001", "temperature", "roof", "alice"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := reg.ToggleActive(ctx, "sensor-001", "bob")
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	d, _ := reg.Get(ctx, "sensor-001")
	if !d.IsActive {
		t.Error("denied toggle must not change state")
	}
	if got := len(sink.byType(event.TypeDeviceStatusChanged)); got != 0 {
		t.Errorf("denied toggle must not emit, got %d events", got)
	}
}

func TestToggleActive_NotFound(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	_, err := reg.ToggleActive(context.Background(), "ghost", "alice")
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestToggleActive_StaleCache(t *testing.T) {
	reg, repo, _ := newTestRegistry(t)
	ctx := context.Background()

	if _, err := reg.Register(ctx, "sensor-001", "temperature", "roof", "alice"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// The cache still says active; the repository says inactive. The
	// toggle must invert the repository state, not the cached snapshot.
	repo.setActive("sensor-001", false)

	state, err := reg.ToggleActive(ctx, "sensor-001", "alice")
	if err != nil {
		t.Fatalf("ToggleActive failed: %v", err)
	}
	if !state {
		t.Error("toggle of an inactive device must yield active")
	}

	d, _ := repo.GetByID(ctx, "sensor-001")
	if !d.IsActive {
		t.Error("repository state not flipped")
	}
}

func TestToggleActive_ConcurrentFlips(t *testing.T) {
	reg, repo, _ := newTestRegistry(t)
	ctx := context.Background()

	if _, err := reg.Register(ctx, "sensor-001", "temperature", "roof", "alice"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// An even number of toggles must restore the starting state exactly:
	// every flip has to observe the previous flip's result, never a
	// stale snapshot.
	const flips = 8
	var wg sync.WaitGroup
	for i := 0; i < flips; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.ToggleActive(ctx, "sensor-001", "alice"); err != nil {
				t.Errorf("ToggleActive failed: %v", err)
			}
		}()
	}
	wg.Wait()

	d, err := repo.GetByID(ctx, "sensor-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !d.IsActive {
		t.Errorf("after %d toggles device should be active again", flips)
	}

	cached, _ := reg.Get(ctx, "sensor-001")
	if cached.IsActive != d.IsActive {
		t.Error("cache disagrees with repository after concurrent toggles")
	}
}

func TestGet_ColdCacheConsistency(t *testing.T) {
	repo := NewMockRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &Device{ID: "sensor-001", Owner: "alice", IsActive: true}); err != nil {
		t.Fatalf("seed Create failed: %v", err)
	}

	// Fresh registry, cache never refreshed. Get falls back to the
	// repository; that fallback must not leave the owner index out of
	// step with the cache.
	reg := NewRegistry(repo)
	d, err := reg.Get(ctx, "sensor-001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if d.Owner != "alice" {
		t.Errorf("Owner = %q, want alice", d.Owner)
	}

	ids, err := reg.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "sensor-001" {
		t.Errorf("ListByOwner after fallback Get = %v, want [sensor-001]", ids)
	}
}

func TestListByOwner_Order(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	for _, id := range []string{"a-1", "b-1", "a-2", "a-3"} {
		owner := "alice"
		if id[0] == 'b' {
			owner = "bob"
		}
		if _, err := reg.Register(ctx, id, "temperature", "roof", owner); err != nil {
			t.Fatalf("Register %s failed: %v", id, err)
		}
	}

	ids, err := reg.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	want := []string{"a-1", "a-2", "a-3"}
	if len(ids) != len(want) {
		t.Fatalf("got %d IDs, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	// Unknown owner yields an empty list, not an error.
	ids, err = reg.ListByOwner(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListByOwner for unknown owner failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty list, got %v", ids)
	}
}

func TestRecordSubmission(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	if _, err := reg.Register(ctx, "sensor-001", "temperature", "roof", "alice"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	reg.RecordSubmission("sensor-001", 1700000000)
	reg.RecordSubmission("sensor-001", 1700000060)

	d, _ := reg.Get(ctx, "sensor-001")
	if d.TotalDataPoints != 2 {
		t.Errorf("TotalDataPoints = %d, want 2", d.TotalDataPoints)
	}
	if d.LastDataTimestamp != 1700000060 {
		t.Errorf("LastDataTimestamp = %d, want 1700000060", d.LastDataTimestamp)
	}
}

func TestCount(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	if reg.Count() != 0 {
		t.Errorf("empty registry Count = %d, want 0", reg.Count())
	}

	for _, id := range []string{"d-1", "d-2", "d-3"} {
		if _, err := reg.Register(ctx, id, "temperature", "roof", "alice"); err != nil {
			t.Fatalf("Register %s failed: %v", id, err)
		}
	}

	// Toggling does not remove a device from the index.
	if _, err := reg.ToggleActive(ctx, "d-2", "alice"); err != nil {
		t.Fatalf("ToggleActive failed: %v", err)
	}

	if reg.Count() != 3 {
		t.Errorf("Count = %d, want 3", reg.Count())
	}
}

func TestRefreshCache(t *testing.T) {
	repo := NewMockRepository()
	ctx := context.Background()

	seed := NewRegistry(repo)
	for _, id := range []string{"d-1", "d-2"} {
		if _, err := seed.Register(ctx, id, "temperature", "roof", "alice"); err != nil {
			t.Fatalf("seed Register failed: %v", err)
		}
	}

	// Fresh registry over the same repository, cold cache.
	reg := NewRegistry(repo)
	if err := reg.RefreshCache(ctx); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}

	if reg.Count() != 2 {
		t.Errorf("Count after refresh = %d, want 2", reg.Count())
	}
	ids, err := reg.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "d-1" || ids[1] != "d-2" {
		t.Errorf("owner index after refresh = %v, want [d-1 d-2]", ids)
	}
}

func TestGetStats(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	if _, err := reg.Register(ctx, "t-1", "temperature", "roof", "alice"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := reg.Register(ctx, "t-2", "temperature", "basement", "alice"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := reg.Register(ctx, "h-1", "humidity", "roof", "bob"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := reg.ToggleActive(ctx, "t-2", "alice"); err != nil {
		t.Fatalf("ToggleActive failed: %v", err)
	}

	stats := reg.GetStats()
	if stats.TotalDevices != 3 {
		t.Errorf("TotalDevices = %d, want 3", stats.TotalDevices)
	}
	if stats.ActiveCount != 2 {
		t.Errorf("ActiveCount = %d, want 2", stats.ActiveCount)
	}
	if stats.ByType["temperature"] != 2 || stats.ByType["humidity"] != 1 {
		t.Errorf("ByType = %v", stats.ByType)
	}
}
