package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository defines the interface for device persistence operations.
// This abstraction allows for different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	// GetByID retrieves a device by its unique identifier.
	// Returns ErrDeviceNotFound if the device does not exist.
	GetByID(ctx context.Context, id string) (*Device, error)

	// List retrieves all devices in global registration order.
	List(ctx context.Context) ([]Device, error)

	// ListIDsByOwner retrieves the IDs of all devices registered by owner,
	// in registration order. May be empty.
	ListIDsByOwner(ctx context.Context, owner string) ([]string, error)

	// Create inserts a new device and assigns its registration sequence.
	// Returns ErrDeviceExists if a device with the same ID already exists.
	Create(ctx context.Context, device *Device) error

	// Toggle atomically flips the active flag of a device registered by
	// caller and returns the new state. The owner check runs in the same
	// transaction as the update. Returns ErrDeviceNotFound if the device
	// does not exist and ErrNotOwner if caller did not register it.
	Toggle(ctx context.Context, id, caller string) (bool, error)

	// Count returns the size of the global device index.
	Count(ctx context.Context) (int64, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const deviceColumns = `id, owner, device_type, location, is_active,
		last_data_timestamp, total_data_points, seq, created_at, updated_at`

// GetByID retrieves a device by its unique identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("querying device by id: %w", err)
	}
	return device, nil
}

// List retrieves all devices in global registration order.
func (r *SQLiteRepository) List(ctx context.Context) ([]Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		devices = append(devices, *device)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices: %w", err)
	}

	return devices, nil
}

// ListIDsByOwner retrieves the IDs of all devices registered by owner,
// ordered by registration sequence.
func (r *SQLiteRepository) ListIDsByOwner(ctx context.Context, owner string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM devices WHERE owner = ? ORDER BY seq", owner)
	if err != nil {
		return nil, fmt.Errorf("querying devices by owner: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning device id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating device ids: %w", err)
	}

	return ids, nil
}

// Create inserts a new device.
//
// The registration sequence is assigned inside the insert transaction so
// the global device index stays gap-free and append-only. The single-writer
// connection guarantees no concurrent insert observes the same sequence.
func (r *SQLiteRepository) Create(ctx context.Context, device *Device) error {
	now := time.Now().UTC()
	if device.CreatedAt.IsZero() {
		device.CreatedAt = now
	}
	device.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	var seq int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM devices").Scan(&seq); err != nil {
		return fmt.Errorf("assigning device sequence: %w", err)
	}
	device.Seq = seq

	_, err = tx.ExecContext(ctx, `
		INSERT INTO devices (
			id, owner, device_type, location, is_active,
			last_data_timestamp, total_data_points, seq, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		device.ID,
		device.Owner,
		device.Type,
		device.Location,
		boolToInt(device.IsActive),
		device.LastDataTimestamp,
		device.TotalDataPoints,
		device.Seq,
		device.CreatedAt.Format(time.RFC3339),
		device.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		// Check for unique constraint violation
		if isUniqueConstraintError(err) {
			return ErrDeviceExists
		}
		return fmt.Errorf("inserting device: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing device insert: %w", err)
	}

	return nil
}

// Toggle flips the active flag of a device.
//
// The read-check-write runs in one transaction on the single-writer
// connection, so two concurrent toggles can never observe the same
// starting state: each sees the other's committed flip.
func (r *SQLiteRepository) Toggle(ctx context.Context, id, caller string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	var owner string
	var isActive int
	err = tx.QueryRowContext(ctx,
		"SELECT owner, is_active FROM devices WHERE id = ?", id,
	).Scan(&owner, &isActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrDeviceNotFound
		}
		return false, fmt.Errorf("querying device for toggle: %w", err)
	}
	if owner != caller {
		return false, ErrNotOwner
	}

	newState := isActive == 0
	if _, err := tx.ExecContext(ctx,
		"UPDATE devices SET is_active = ?, updated_at = ? WHERE id = ?",
		boolToInt(newState),
		time.Now().UTC().Format(time.RFC3339),
		id,
	); err != nil {
		return false, fmt.Errorf("updating device active flag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing toggle: %w", err)
	}

	return newState, nil
}

// Count returns the number of registered devices.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM devices").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting devices: %w", err)
	}
	return count, nil
}

// rowScanner is an interface that sql.Row and sql.Rows both implement.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDevice scans a row or rows result into a Device.
func scanDevice(scanner rowScanner) (*Device, error) {
	var d Device
	var isActive int
	var createdAt, updatedAt string

	err := scanner.Scan(
		&d.ID,
		&d.Owner,
		&d.Type,
		&d.Location,
		&isActive,
		&d.LastDataTimestamp,
		&d.TotalDataPoints,
		&d.Seq,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.IsActive = isActive != 0

	var parseErr error
	d.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	d.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &d, nil
}

// boolToInt converts a boolean to 0/1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueConstraintError checks if an error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
