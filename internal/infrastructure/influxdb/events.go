package influxdb

import (
	"context"

	"github.com/vishwakarmasoyam61-spec/iot-chain/internal/event"
)

// readingWriter is the slice of Client used by the ReadingMirror.
// Defined here so tests can substitute a fake.
type readingWriter interface {
	WriteReading(deviceID, dataType, dataValue, hash string, timestamp int64)
}

// ReadingMirror forwards accepted submissions into InfluxDB.
// It implements event.Sink and ignores every event type except
// data_submitted; the ledger in SQLite stays the source of truth,
// the mirror only serves time-series queries.
type ReadingMirror struct {
	client readingWriter
}

// NewReadingMirror creates an event sink mirroring readings through the client.
func NewReadingMirror(client *Client) *ReadingMirror {
	return &ReadingMirror{client: client}
}

// Emit mirrors data_submitted events; other event types are a no-op.
// Writes are batched and asynchronous, so Emit never blocks or fails;
// write errors surface through the client's error callback.
func (m *ReadingMirror) Emit(_ context.Context, e event.Event) error {
	if e.Type != event.TypeDataSubmitted {
		return nil
	}

	m.client.WriteReading(
		payloadString(e.Payload, "device_id"),
		payloadString(e.Payload, "data_type"),
		payloadString(e.Payload, "data_value"),
		payloadString(e.Payload, "data_hash"),
		payloadInt64(e.Payload, "timestamp"),
	)
	return nil
}

func payloadString(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}

// payloadInt64 reads an integer payload field. Events that crossed a JSON
// boundary carry numbers as float64.
func payloadInt64(payload map[string]any, key string) int64 {
	switch v := payload[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case int:
		return int64(v)
	default:
		return 0
	}
}
