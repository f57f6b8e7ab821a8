package device

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the devices table.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE devices (
			id TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			device_type TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			is_active INTEGER NOT NULL DEFAULT 1,
			last_data_timestamp INTEGER NOT NULL DEFAULT 0,
			total_data_points INTEGER NOT NULL DEFAULT 0,
			seq INTEGER NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;

		CREATE UNIQUE INDEX idx_devices_seq ON devices(seq);
		CREATE INDEX idx_devices_owner ON devices(owner);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestSQLiteRepository_CreateAndGet(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	device := &Device{
		ID:       "sensor-001",
		Owner:    "alice",
		Type:     "temperature",
		Location: "greenhouse-3",
		IsActive: true,
	}

	if err := repo.Create(ctx, device); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if device.Seq != 1 {
		t.Errorf("first device Seq = %d, want 1", device.Seq)
	}

	got, err := repo.GetByID(ctx, "sensor-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Owner != "alice" || got.Type != "temperature" || got.Location != "greenhouse-3" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.IsActive {
		t.Error("expected device to be active")
	}
	if got.TotalDataPoints != 0 || got.LastDataTimestamp != 0 {
		t.Errorf("new device counters not zero: %+v", got)
	}
}

func TestSQLiteRepository_CreateDuplicate(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	d := &Device{ID: "sensor-001", Owner: "alice", IsActive: true}
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dup := &Device{ID: "sensor-001", Owner: "bob", IsActive: true}
	err := repo.Create(ctx, dup)
	if !errors.Is(err, ErrDeviceExists) {
		t.Errorf("expected ErrDeviceExists, got %v", err)
	}
}

func TestSQLiteRepository_GetNotFound(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestSQLiteRepository_ListOrder(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	// Registration order deliberately differs from lexical order.
	for _, id := range []string{"c-dev", "a-dev", "b-dev"} {
		if err := repo.Create(ctx, &Device{ID: id, Owner: "alice", IsActive: true}); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}

	devices, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"c-dev", "a-dev", "b-dev"}
	if len(devices) != len(want) {
		t.Fatalf("got %d devices, want %d", len(devices), len(want))
	}
	for i := range want {
		if devices[i].ID != want[i] {
			t.Errorf("devices[%d].ID = %q, want %q", i, devices[i].ID, want[i])
		}
		if devices[i].Seq != int64(i+1) {
			t.Errorf("devices[%d].Seq = %d, want %d", i, devices[i].Seq, i+1)
		}
	}
}

func TestSQLiteRepository_ListIDsByOwner(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	owners := map[string]string{"a-1": "alice", "b-1": "bob", "a-2": "alice"}
	for _, id := range []string{"a-1", "b-1", "a-2"} {
		if err := repo.Create(ctx, &Device{ID: id, Owner: owners[id], IsActive: true}); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}

	ids, err := repo.ListIDsByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("ListIDsByOwner failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a-1" || ids[1] != "a-2" {
		t.Errorf("alice IDs = %v, want [a-1 a-2]", ids)
	}

	ids, err = repo.ListIDsByOwner(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListIDsByOwner for unknown owner failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty list, got %v", ids)
	}
}

func TestSQLiteRepository_Toggle(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &Device{ID: "sensor-001", Owner: "alice", IsActive: true}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	state, err := repo.Toggle(ctx, "sensor-001", "alice")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if state {
		t.Error("expected inactive after first toggle")
	}
	got, _ := repo.GetByID(ctx, "sensor-001")
	if got.IsActive {
		t.Error("persisted state not flipped")
	}

	// Second toggle is the exact inverse.
	state, err = repo.Toggle(ctx, "sensor-001", "alice")
	if err != nil {
		t.Fatalf("second Toggle failed: %v", err)
	}
	if !state {
		t.Error("expected active after second toggle")
	}
}

func TestSQLiteRepository_Toggle_Denied(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &Device{ID: "sensor-001", Owner: "alice", IsActive: true}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := repo.Toggle(ctx, "sensor-001", "bob"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	got, _ := repo.GetByID(ctx, "sensor-001")
	if !got.IsActive {
		t.Error("denied toggle must not change state")
	}

	if _, err := repo.Toggle(ctx, "ghost", "alice"); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestSQLiteRepository_Count(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("empty Count = %d, want 0", n)
	}

	for _, id := range []string{"d-1", "d-2"} {
		if err := repo.Create(ctx, &Device{ID: id, Owner: "alice", IsActive: true}); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}

	n, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}
