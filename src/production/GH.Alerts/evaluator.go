package ghalerts

import (
	"context"
	"fmt"

	ghmodels "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Models"
)

// Notifier receives the alert messages fired by an accepted reading. Delivery
// (push, email) lives outside the ingestion core.
type Notifier interface {
	OnAlert(ctx context.Context, deviceID string, messages []string)
}

// Evaluate checks a reading against the device's alert rules and returns one
// message per violated threshold. Metrics are evaluated in a fixed order (air
// temperature, air humidity, soil moisture, soil temperature, light level),
// max before min, so identical input yields identical output. A nil threshold
// disables that check; nil rules disable all of them.
func Evaluate(reading ghmodels.TelemetryReading, rules *ghmodels.AlertRules) []string {
	if rules == nil {
		return nil
	}

	var alerts []string

	if rules.AirTemperatureMax != nil && reading.AirTemperature > *rules.AirTemperatureMax {
		alerts = append(alerts, fmt.Sprintf("air temperature too high: %.1f°C", reading.AirTemperature))
	}
	if rules.AirTemperatureMin != nil && reading.AirTemperature < *rules.AirTemperatureMin {
		alerts = append(alerts, fmt.Sprintf("air temperature too low: %.1f°C", reading.AirTemperature))
	}

	if rules.AirHumidityMax != nil && reading.AirHumidity > *rules.AirHumidityMax {
		alerts = append(alerts, fmt.Sprintf("air humidity too high: %.1f%%", reading.AirHumidity))
	}
	if rules.AirHumidityMin != nil && reading.AirHumidity < *rules.AirHumidityMin {
		alerts = append(alerts, fmt.Sprintf("air humidity too low: %.1f%%", reading.AirHumidity))
	}

	if rules.SoilMoistureMax != nil && reading.SoilMoisture > *rules.SoilMoistureMax {
		alerts = append(alerts, fmt.Sprintf("soil is too wet: %.1f%%", reading.SoilMoisture))
	}
	if rules.SoilMoistureMin != nil && reading.SoilMoisture < *rules.SoilMoistureMin {
		alerts = append(alerts, fmt.Sprintf("soil needs watering: %.1f%%", reading.SoilMoisture))
	}

	if rules.SoilTemperatureMax != nil && reading.SoilTemperature > *rules.SoilTemperatureMax {
		alerts = append(alerts, fmt.Sprintf("soil temperature too high: %.1f°C", reading.SoilTemperature))
	}
	if rules.SoilTemperatureMin != nil && reading.SoilTemperature < *rules.SoilTemperatureMin {
		alerts = append(alerts, fmt.Sprintf("soil temperature too low: %.1f°C", reading.SoilTemperature))
	}

	if rules.LightLevelMax != nil && reading.LightLevel > *rules.LightLevelMax {
		alerts = append(alerts, fmt.Sprintf("too much light: %.0f lux", reading.LightLevel))
	}
	if rules.LightLevelMin != nil && reading.LightLevel < *rules.LightLevelMin {
		alerts = append(alerts, fmt.Sprintf("not enough light: %.0f lux", reading.LightLevel))
	}

	return alerts
}
