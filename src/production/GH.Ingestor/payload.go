package ghingestor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	ghmodels "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Models"
)

// Rejection reasons for inbound payloads. Every rejection wraps one of these
// so callers can tell why a message was dropped without parsing log text.
var (
	ErrMalformedPayload = errors.New("payload is not a valid document")
	ErrMissingField     = errors.New("payload field missing or not a number")
	ErrMetricOutOfRange = errors.New("metric outside allowed range")
	ErrDeviceIDMismatch = errors.New("payload device id does not match topic")
	ErrEmptyStatus      = errors.New("status is empty")
)

// telemetryDoc is the wire shape of a telemetry message. Pointer fields
// distinguish absent metrics from zero values.
type telemetryDoc struct {
	DeviceID        string   `json:"deviceId"`
	AirTemperature  *float64 `json:"airTemperature"`
	AirHumidity     *float64 `json:"airHumidity"`
	SoilTemperature *float64 `json:"soilTemperature"`
	SoilMoisture    *float64 `json:"soilMoisture"`
	LightLevel      *float64 `json:"lightLevel"`
}

type statusDoc struct {
	Status *string `json:"status"`
}

// DecodeTelemetryPayload validates a raw telemetry payload against the topic's
// device id and returns the reading to store. The returned reading carries no
// timestamp or sequence; those are assigned at insert time.
func DecodeTelemetryPayload(payload []byte, topicDeviceID string) (ghmodels.TelemetryReading, error) {
	var doc telemetryDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return ghmodels.TelemetryReading{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	metrics := []struct {
		name  string
		value *float64
	}{
		{"airTemperature", doc.AirTemperature},
		{"airHumidity", doc.AirHumidity},
		{"soilTemperature", doc.SoilTemperature},
		{"soilMoisture", doc.SoilMoisture},
		{"lightLevel", doc.LightLevel},
	}
	for _, metric := range metrics {
		if metric.value == nil {
			return ghmodels.TelemetryReading{}, fmt.Errorf("%w: %s", ErrMissingField, metric.name)
		}
	}

	if doc.DeviceID != topicDeviceID {
		return ghmodels.TelemetryReading{}, fmt.Errorf("%w: %q", ErrDeviceIDMismatch, doc.DeviceID)
	}

	if *doc.AirHumidity < 0 || *doc.AirHumidity > 100 {
		return ghmodels.TelemetryReading{}, fmt.Errorf("%w: airHumidity %.2f", ErrMetricOutOfRange, *doc.AirHumidity)
	}
	if *doc.SoilMoisture < 0 || *doc.SoilMoisture > 100 {
		return ghmodels.TelemetryReading{}, fmt.Errorf("%w: soilMoisture %.2f", ErrMetricOutOfRange, *doc.SoilMoisture)
	}

	return ghmodels.TelemetryReading{
		DeviceID:        doc.DeviceID,
		AirTemperature:  *doc.AirTemperature,
		AirHumidity:     *doc.AirHumidity,
		SoilTemperature: *doc.SoilTemperature,
		SoilMoisture:    *doc.SoilMoisture,
		LightLevel:      *doc.LightLevel,
	}, nil
}

// DecodeStatusPayload extracts the status token from a raw status payload.
// A JSON document {"status": "..."} is tried first; anything else falls back
// to the trimmed raw text. An empty result is a rejection.
func DecodeStatusPayload(payload []byte) (string, error) {
	var doc statusDoc
	if err := json.Unmarshal(payload, &doc); err == nil && doc.Status != nil && *doc.Status != "" {
		return *doc.Status, nil
	}

	status := strings.TrimSpace(string(payload))
	if status == "" {
		return "", ErrEmptyStatus
	}
	return status, nil
}
