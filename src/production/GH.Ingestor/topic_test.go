package ghingestor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTopic(t *testing.T) {
	tests := []struct {
		name     string
		topic    string
		deviceID string
		kind     MessageKind
		ok       bool
	}{
		{name: "valid telemetry", topic: "greenhouse/ESP32_001/telemetry", deviceID: "ESP32_001", kind: KindTelemetry, ok: true},
		{name: "valid status", topic: "greenhouse/ESP32_042/status", deviceID: "ESP32_042", kind: KindStatus, ok: true},
		{name: "two segments", topic: "foo/bar", ok: false},
		{name: "four segments", topic: "greenhouse/ESP32_001/telemetry/extra", ok: false},
		{name: "wrong namespace", topic: "garden/ESP32_001/telemetry", ok: false},
		{name: "unknown kind", topic: "greenhouse/ESP32_001/metrics", ok: false},
		{name: "malformed device id", topic: "greenhouse/ESP32-001/telemetry", ok: false},
		{name: "device id too short", topic: "greenhouse/ESP32_01/status", ok: false},
		{name: "empty topic", topic: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseTopic(tt.topic)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.deviceID, parsed.DeviceID)
				assert.Equal(t, tt.kind, parsed.Kind)
			}
		})
	}
}
