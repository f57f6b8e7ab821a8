package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vishwakarmasoyam61-spec/iot-chain/internal/device"
)

// Repository defines the persistence interface for data points.
//
// Submit and Verify are transactional: every precondition is re-checked
// inside the transaction, and a failure at any step rolls the whole
// operation back. The database pins writes to a single connection, so
// transactions commit in a total serial order.
type Repository interface {
	// GetByHash retrieves a data point by its content hash.
	// Returns ErrDataPointNotFound if the hash is unknown.
	GetByHash(ctx context.Context, hash string) (*DataPoint, error)

	// ListByDevice retrieves all data points for a device in submission order.
	ListByDevice(ctx context.Context, deviceID string) ([]DataPoint, error)

	// Submit inserts the data point and updates the owning device's
	// submission counters in one transaction. It re-checks that the device
	// exists, is owned by caller and is active, and that the hash is not
	// already present.
	Submit(ctx context.Context, point *DataPoint, caller string) error

	// Verify marks a data point verified by caller at the given time.
	// Returns ErrDataPointNotFound or ErrAlreadyVerified on precondition
	// failure; the flag is never reset.
	Verify(ctx context.Context, hash, caller string, at time.Time) error

	// Count returns the size of the global data index.
	Count(ctx context.Context) (int, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const dataPointColumns = `hash, device_id, data_type, data_value, timestamp,
		is_verified, verified_by, verified_at, seq, created_at`

// GetByHash retrieves a data point by its content hash.
func (r *SQLiteRepository) GetByHash(ctx context.Context, hash string) (*DataPoint, error) {
	query := `SELECT ` + dataPointColumns + ` FROM data_points WHERE hash = ?`

	point, err := scanDataPoint(r.db.QueryRowContext(ctx, query, hash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDataPointNotFound
		}
		return nil, fmt.Errorf("querying data point: %w", err)
	}
	return point, nil
}

// ListByDevice retrieves all data points for a device in submission order.
func (r *SQLiteRepository) ListByDevice(ctx context.Context, deviceID string) ([]DataPoint, error) {
	query := `SELECT ` + dataPointColumns + ` FROM data_points WHERE device_id = ? ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, deviceID)
	if err != nil {
		return nil, fmt.Errorf("querying data points: %w", err)
	}
	defer rows.Close()

	var points []DataPoint
	for rows.Next() {
		point, err := scanDataPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning data point: %w", err)
		}
		points = append(points, *point)
	}
	return points, rows.Err()
}

// Submit inserts the data point and updates the owning device atomically.
func (r *SQLiteRepository) Submit(ctx context.Context, point *DataPoint, caller string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Re-check the device preconditions inside the transaction; the
	// service-level checks against the cache are only a fast path.
	var owner string
	var isActive int
	err = tx.QueryRowContext(ctx,
		"SELECT owner, is_active FROM devices WHERE id = ?", point.DeviceID).
		Scan(&owner, &isActive)
	if errors.Is(err, sql.ErrNoRows) {
		return device.ErrDeviceNotFound
	}
	if err != nil {
		return fmt.Errorf("querying device: %w", err)
	}
	if owner != caller {
		return device.ErrNotOwner
	}
	if isActive == 0 {
		return ErrDeviceInactive
	}

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM data_points WHERE hash = ?)", point.Hash).
		Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking hash uniqueness: %w", err)
	}
	if exists == 1 {
		return ErrHashCollision
	}

	// Next position in the global submission order.
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM data_points").Scan(&point.Seq)
	if err != nil {
		return fmt.Errorf("assigning sequence: %w", err)
	}

	now := time.Now().UTC()
	point.CreatedAt = now

	_, err = tx.ExecContext(ctx, `
		INSERT INTO data_points (
			hash, device_id, data_type, data_value, timestamp,
			is_verified, verified_by, verified_at, seq, created_at
		) VALUES (?, ?, ?, ?, ?, 0, NULL, NULL, ?, ?)`,
		point.Hash, point.DeviceID, point.DataType, point.DataValue,
		point.Timestamp, point.Seq, now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting data point: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE devices
		SET last_data_timestamp = ?, total_data_points = total_data_points + 1, updated_at = ?
		WHERE id = ?`,
		point.Timestamp, now.Format(time.RFC3339), point.DeviceID)
	if err != nil {
		return fmt.Errorf("updating device counters: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing submission: %w", err)
	}
	return nil
}

// Verify marks a data point verified, enforcing the one-way transition.
func (r *SQLiteRepository) Verify(ctx context.Context, hash, caller string, at time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var isVerified int
	err = tx.QueryRowContext(ctx,
		"SELECT is_verified FROM data_points WHERE hash = ?", hash).Scan(&isVerified)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrDataPointNotFound
	}
	if err != nil {
		return fmt.Errorf("querying data point: %w", err)
	}
	if isVerified == 1 {
		return ErrAlreadyVerified
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE data_points
		SET is_verified = 1, verified_by = ?, verified_at = ?
		WHERE hash = ?`,
		caller, at.UTC().Format(time.RFC3339), hash)
	if err != nil {
		return fmt.Errorf("updating data point: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing verification: %w", err)
	}
	return nil
}

// Count returns the size of the global data index.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM data_points").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting data points: %w", err)
	}
	return count, nil
}

// rowScanner abstracts over sql.Row and sql.Rows for scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDataPoint scans a row or rows result into a DataPoint.
func scanDataPoint(scanner rowScanner) (*DataPoint, error) {
	var p DataPoint
	var isVerified int
	var verifiedBy, verifiedAt sql.NullString
	var createdAt string

	err := scanner.Scan(
		&p.Hash, &p.DeviceID, &p.DataType, &p.DataValue, &p.Timestamp,
		&isVerified, &verifiedBy, &verifiedAt, &p.Seq, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	p.IsVerified = isVerified == 1
	p.VerifiedBy = verifiedBy.String
	if verifiedAt.Valid {
		at, parseErr := time.Parse(time.RFC3339, verifiedAt.String)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing verified_at: %w", parseErr)
		}
		p.VerifiedAt = &at
	}
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &p, nil
}
