// Package device implements the device registry, the system of record for
// every device that may submit readings to the ledger.
//
// Each device carries a stable caller-chosen ID, an immutable owner
// identity, descriptive metadata (type, location) and an active flag.
// The owner is fixed at registration; only the owner may toggle the
// device's active state, and only active devices accept new readings.
//
// # Architecture
//
// The package follows a layered design:
//
//   - Repository: persistence interface with a SQLite implementation
//   - Registry: thread-safe cache over the repository with ownership
//     enforcement and event emission
//
// Mutations persist first and update the cache after the commit, so a
// failed call leaves no partial state. Both the per-owner index and the
// global device index are append-only and preserve registration order.
//
// The ledger updates a device's submission counters (last data timestamp,
// total data points) inside its own transaction and then notifies the
// registry cache through RecordSubmission. That hook is internal plumbing
// and never reachable from external callers.
package device
