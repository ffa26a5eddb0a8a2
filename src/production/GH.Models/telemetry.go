package ghmodels

import "time"

// TelemetryReading is one stored row of sensor metrics. ID is assigned by the
// database on insert and grows monotonically; RecordedAt is assigned by the
// server at ingestion time, never taken from the device.
type TelemetryReading struct {
	ID              int64     `json:"id,omitempty" db:"id"`
	DeviceID        string    `json:"device_id" db:"device_id"`
	AirTemperature  float64   `json:"air_temperature" db:"air_temperature"`
	AirHumidity     float64   `json:"air_humidity" db:"air_humidity"`
	SoilTemperature float64   `json:"soil_temperature" db:"soil_temperature"`
	SoilMoisture    float64   `json:"soil_moisture" db:"soil_moisture"`
	LightLevel      float64   `json:"light_level" db:"light_level"`
	RecordedAt      time.Time `json:"recorded_at" db:"recorded_at"`
}
