// Package mqtt provides MQTT client connectivity for the iot-chain core.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The core publishes every emitted event record (device registrations,
// data submissions, verifications, status changes) to the broker, which
// decouples the registry/ledger state machine from downstream consumers:
//
//	iot-chain core → MQTT broker → subscribers (dashboards, alerting, ...)
//
// Event delivery is best-effort relative to the ledger: a publish
// failure is logged by the caller but never rolls back a committed
// operation. The durable audit trail lives in SQLite, not in the broker.
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	sink := mqtt.NewEventPublisher(client, byte(cfg.MQTT.QoS))
//	registry.SetSink(sink)
package mqtt
