package ghmodels

// AlertRules holds the per-device alert thresholds. A nil field disables that
// specific check; the ingestion core only reads these, the API layer mutates
// them.
type AlertRules struct {
	DeviceID           string   `json:"device_id" db:"device_id"`
	AirTemperatureMax  *float64 `json:"air_temperature_max,omitempty" db:"air_temperature_max"`
	AirTemperatureMin  *float64 `json:"air_temperature_min,omitempty" db:"air_temperature_min"`
	AirHumidityMax     *float64 `json:"air_humidity_max,omitempty" db:"air_humidity_max"`
	AirHumidityMin     *float64 `json:"air_humidity_min,omitempty" db:"air_humidity_min"`
	SoilTemperatureMax *float64 `json:"soil_temperature_max,omitempty" db:"soil_temperature_max"`
	SoilTemperatureMin *float64 `json:"soil_temperature_min,omitempty" db:"soil_temperature_min"`
	SoilMoistureMax    *float64 `json:"soil_moisture_max,omitempty" db:"soil_moisture_max"`
	SoilMoistureMin    *float64 `json:"soil_moisture_min,omitempty" db:"soil_moisture_min"`
	LightLevelMax      *float64 `json:"light_level_max,omitempty" db:"light_level_max"`
	LightLevelMin      *float64 `json:"light_level_min,omitempty" db:"light_level_min"`
}

// DefaultAlertRules returns the thresholds written when a device is first
// provisioned
func DefaultAlertRules(deviceID string) AlertRules {
	return AlertRules{
		DeviceID:          deviceID,
		AirTemperatureMax: threshold(35),
		AirTemperatureMin: threshold(15),
		AirHumidityMax:    threshold(90),
		AirHumidityMin:    threshold(30),
		SoilMoistureMax:   threshold(90),
		SoilMoistureMin:   threshold(40),
		LightLevelMin:     threshold(200),
	}
}

func threshold(v float64) *float64 {
	return &v
}
