package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vishwakarmasoyam61-spec/iot-chain/internal/event"
)

// publisher is the slice of Client used by the EventPublisher.
// Defined here so tests can substitute a fake broker connection.
type publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// EventPublisher delivers emitted event records to the MQTT broker.
// It implements event.Sink.
//
// Each event is published as JSON to iotchain/event/{type}/{entity}
// with the configured QoS and without retention: events describe state
// transitions, not current state, so late subscribers should not
// replay the last one.
type EventPublisher struct {
	client publisher
	qos    byte
}

// NewEventPublisher creates an event sink publishing through the client.
func NewEventPublisher(client *Client, qos byte) *EventPublisher {
	return &EventPublisher{client: client, qos: qos}
}

// Emit publishes the event record to its topic.
func (p *EventPublisher) Emit(_ context.Context, e event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshalling event %s: %w", e.ID, err)
	}

	topic := Topics{}.Event(string(e.Type), e.EntityID)
	if err := p.client.Publish(topic, payload, p.qos, false); err != nil {
		return fmt.Errorf("publishing event %s: %w", e.ID, err)
	}

	return nil
}
