package ghingestor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTelemetryPayload(t *testing.T) {
	valid := []byte(`{
		"deviceId": "ESP32_001",
		"airTemperature": 24.5,
		"airHumidity": 61.2,
		"soilTemperature": 19.8,
		"soilMoisture": 44.0,
		"lightLevel": 512
	}`)

	t.Run("valid payload", func(t *testing.T) {
		reading, err := DecodeTelemetryPayload(valid, "ESP32_001")
		require.NoError(t, err)
		assert.Equal(t, "ESP32_001", reading.DeviceID)
		assert.Equal(t, 24.5, reading.AirTemperature)
		assert.Equal(t, 61.2, reading.AirHumidity)
		assert.Equal(t, 19.8, reading.SoilTemperature)
		assert.Equal(t, 44.0, reading.SoilMoisture)
		assert.Equal(t, 512.0, reading.LightLevel)
		assert.True(t, reading.RecordedAt.IsZero())
	})

	t.Run("device id mismatch", func(t *testing.T) {
		_, err := DecodeTelemetryPayload(valid, "ESP32_002")
		assert.ErrorIs(t, err, ErrDeviceIDMismatch)
	})

	t.Run("not a document", func(t *testing.T) {
		_, err := DecodeTelemetryPayload([]byte("not json"), "ESP32_001")
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("missing metric", func(t *testing.T) {
		payload := []byte(`{"deviceId": "ESP32_001", "airTemperature": 24.5}`)
		_, err := DecodeTelemetryPayload(payload, "ESP32_001")
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("metric with wrong type", func(t *testing.T) {
		payload := []byte(`{"deviceId": "ESP32_001", "airTemperature": "warm",
			"airHumidity": 50, "soilTemperature": 20, "soilMoisture": 50, "lightLevel": 100}`)
		_, err := DecodeTelemetryPayload(payload, "ESP32_001")
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("humidity above range", func(t *testing.T) {
		payload := []byte(`{"deviceId": "ESP32_001", "airTemperature": 24.5,
			"airHumidity": 100.1, "soilTemperature": 20, "soilMoisture": 50, "lightLevel": 100}`)
		_, err := DecodeTelemetryPayload(payload, "ESP32_001")
		assert.ErrorIs(t, err, ErrMetricOutOfRange)
	})

	t.Run("moisture below range", func(t *testing.T) {
		payload := []byte(`{"deviceId": "ESP32_001", "airTemperature": 24.5,
			"airHumidity": 50, "soilTemperature": 20, "soilMoisture": -1, "lightLevel": 100}`)
		_, err := DecodeTelemetryPayload(payload, "ESP32_001")
		assert.ErrorIs(t, err, ErrMetricOutOfRange)
	})

	t.Run("boundary values accepted", func(t *testing.T) {
		payload := []byte(`{"deviceId": "ESP32_001", "airTemperature": -10,
			"airHumidity": 0, "soilTemperature": 20, "soilMoisture": 100, "lightLevel": 0}`)
		reading, err := DecodeTelemetryPayload(payload, "ESP32_001")
		require.NoError(t, err)
		assert.Equal(t, 0.0, reading.AirHumidity)
		assert.Equal(t, 100.0, reading.SoilMoisture)
	})
}

func TestDecodeStatusPayload(t *testing.T) {
	t.Run("structured document", func(t *testing.T) {
		status, err := DecodeStatusPayload([]byte(`{"status": "online"}`))
		require.NoError(t, err)
		assert.Equal(t, "online", status)
	})

	t.Run("bare text", func(t *testing.T) {
		status, err := DecodeStatusPayload([]byte("offline"))
		require.NoError(t, err)
		assert.Equal(t, "offline", status)
	})

	t.Run("bare text is trimmed", func(t *testing.T) {
		status, err := DecodeStatusPayload([]byte("  online\n"))
		require.NoError(t, err)
		assert.Equal(t, "online", status)
	})

	t.Run("empty status field falls back to raw text", func(t *testing.T) {
		status, err := DecodeStatusPayload([]byte(`{"status": ""}`))
		require.NoError(t, err)
		assert.Equal(t, `{"status": ""}`, status)
	})

	t.Run("empty payload rejected", func(t *testing.T) {
		_, err := DecodeStatusPayload([]byte("   "))
		assert.ErrorIs(t, err, ErrEmptyStatus)
	})
}
