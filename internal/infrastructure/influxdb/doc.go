// Package influxdb provides InfluxDB connectivity for the iot-chain core.
//
// It wraps the official influxdb-client-go v2 library with connection
// management, batched writes, and health monitoring.
//
// # Purpose
//
// The ledger in SQLite is the system of record; this package maintains a
// queryable time-series mirror of accepted readings. Each mirrored sample
// carries the ledger content hash, so a dashboard value can always be
// traced back to its immutable data point.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	mirror := influxdb.NewReadingMirror(client)
//	ledger.SetSink(mirror)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking; batch errors are delivered via the
// SetOnError callback. Connection and health check errors are returned
// directly. A mirror failure never affects a committed ledger operation.
package influxdb
