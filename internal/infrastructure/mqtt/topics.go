package mqtt

import "fmt"

// Topic prefixes for the iot-chain MQTT hierarchy.
//
// Event topics use the flat scheme: iotchain/event/{type}/{entity}
// where entity is a device ID for registry events and a data hash for
// ledger events.
const (
	// TopicPrefix is the base for all iot-chain topics.
	TopicPrefix = "iotchain"

	// TopicPrefixEvent is the base for emitted event records.
	TopicPrefixEvent = "iotchain/event"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "iotchain/system"
)

// Topics provides builders for iot-chain MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	topic := topics.Event("data_submitted", hash)
//	// Returns: "iotchain/event/data_submitted/<hash>"
type Topics struct{}

// Event returns the topic for a single emitted event record.
//
// Example: iotchain/event/device_registered/sensor-001
func (Topics) Event(eventType, entityID string) string {
	return fmt.Sprintf("%s/%s/%s", TopicPrefixEvent, eventType, entityID)
}

// SystemStatus returns the system status topic used for the online
// announcement and the Last Will and Testament.
//
// Example: iotchain/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// EventsOfType returns a pattern matching all events of one type.
//
// Pattern: iotchain/event/data_verified/+
func (Topics) EventsOfType(eventType string) string {
	return fmt.Sprintf("%s/%s/+", TopicPrefixEvent, eventType)
}

// AllEvents returns a pattern matching every emitted event record.
//
// Pattern: iotchain/event/#
func (Topics) AllEvents() string {
	return fmt.Sprintf("%s/#", TopicPrefixEvent)
}

// AllTopics returns a pattern matching all iot-chain topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: iotchain/#
func (Topics) AllTopics() string {
	return TopicPrefix + "/#"
}
