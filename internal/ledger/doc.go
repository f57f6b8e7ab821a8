// Package ledger implements the data-integrity ledger: hash-addressed,
// immutable sensor readings bound to registered devices.
//
// A reading is accepted only from the registering owner of an active
// device. Its identity is a content digest over the device ID, data type,
// value, logical timestamp and submitter, so the key itself attests to
// what was submitted, by whom, and when. Records are never updated or
// deleted; the single mutable bit is the verification flag, which any
// identity may set exactly once.
//
// # Atomicity
//
// Submit commits the data point insert and the owning device's counter
// update (last data timestamp, total data points) in one SQLite
// transaction on the pinned write connection. A failed precondition at
// any step rolls everything back, so no operation leaves partial state in
// either the ledger or the registry. The registry's in-memory cache is
// updated only after the commit.
//
// # Logical time
//
// Timestamps come from a Clock that must never run backwards. The default
// SystemClock clamps the wall clock to be non-decreasing; tests inject a
// deterministic sequence.
package ledger
