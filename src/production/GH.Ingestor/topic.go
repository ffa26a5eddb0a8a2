package ghingestor

import (
	"regexp"
	"strings"
)

// TopicNamespace is the first segment of every device topic
const TopicNamespace = "greenhouse"

// MessageKind is the last topic segment and selects the handling path
type MessageKind string

const (
	KindTelemetry MessageKind = "telemetry"
	KindStatus    MessageKind = "status"
)

// deviceIDPattern is the vendor device-identifier grammar
var deviceIDPattern = regexp.MustCompile(`^ESP32_\d{3}$`)

// ParsedTopic is the classification of a transport address
type ParsedTopic struct {
	DeviceID string
	Kind     MessageKind
}

// ParseTopic classifies a topic of the form greenhouse/<deviceId>/<kind>.
// Any deviation (segment count, namespace, device id grammar, kind) is a
// non-match; the caller drops the message without touching storage.
func ParseTopic(topic string) (ParsedTopic, bool) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != TopicNamespace {
		return ParsedTopic{}, false
	}

	deviceID, kind := parts[1], parts[2]
	if !deviceIDPattern.MatchString(deviceID) {
		return ParsedTopic{}, false
	}
	if kind != string(KindTelemetry) && kind != string(KindStatus) {
		return ParsedTopic{}, false
	}

	return ParsedTopic{DeviceID: deviceID, Kind: MessageKind(kind)}, true
}
