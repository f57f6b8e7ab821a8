// Package database provides SQLite database connectivity for the iot-chain core.
//
// This package manages:
//   - Database connection with WAL mode for concurrent reads
//   - Schema migrations (additive-only)
//   - Connection pooling and lifecycle management
//
// Serial ordering:
//
// The connection pool is limited to a single connection
// (SetMaxOpenConns(1)). Combined with per-operation transactions in the
// device and ledger repositories, this gives every mutating operation a
// strict total serial order: registrations, submissions and verifications
// never interleave, which is what the registry/ledger contracts assume for
// uniqueness checks and counter updates.
//
// Security considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Usage:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	// Run migrations from the embedded filesystem
//	if err := db.Migrate(ctx, migrations.FS); err != nil {
//	    log.Fatal(err)
//	}
//
// Migration strategy:
//
// Migrations are additive-only to support safe rollbacks:
//   - New columns must be NULLABLE or have DEFAULT values
//   - Never DROP or RENAME columns
//   - Each migration file has both .up.sql and .down.sql
package database
