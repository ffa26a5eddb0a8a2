package ghalerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ghmodels "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Models"
)

func threshold(v float64) *float64 { return &v }

func normalReading() ghmodels.TelemetryReading {
	return ghmodels.TelemetryReading{
		DeviceID:        "ESP32_001",
		AirTemperature:  24.5,
		AirHumidity:     61.2,
		SoilTemperature: 19.8,
		SoilMoisture:    44.0,
		LightLevel:      512,
	}
}

func TestEvaluate(t *testing.T) {
	t.Run("nil rules disable everything", func(t *testing.T) {
		reading := normalReading()
		reading.AirTemperature = 99
		assert.Empty(t, Evaluate(reading, nil))
	})

	t.Run("empty rules disable everything", func(t *testing.T) {
		reading := normalReading()
		reading.AirTemperature = 99
		assert.Empty(t, Evaluate(reading, &ghmodels.AlertRules{DeviceID: "ESP32_001"}))
	})

	t.Run("reading within defaults fires nothing", func(t *testing.T) {
		rules := ghmodels.DefaultAlertRules("ESP32_001")
		assert.Empty(t, Evaluate(normalReading(), &rules))
	})

	t.Run("air temperature above max", func(t *testing.T) {
		rules := ghmodels.DefaultAlertRules("ESP32_001")
		reading := normalReading()
		reading.AirTemperature = 36

		alerts := Evaluate(reading, &rules)
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "air temperature too high")
	})

	t.Run("value at the threshold fires nothing", func(t *testing.T) {
		rules := ghmodels.DefaultAlertRules("ESP32_001")
		reading := normalReading()
		reading.AirTemperature = 35

		assert.Empty(t, Evaluate(reading, &rules))
	})

	t.Run("min and max never fire together", func(t *testing.T) {
		rules := &ghmodels.AlertRules{
			DeviceID:          "ESP32_001",
			AirTemperatureMax: threshold(35),
			AirTemperatureMin: threshold(15),
		}
		reading := normalReading()
		reading.AirTemperature = 10

		alerts := Evaluate(reading, rules)
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "air temperature too low")
	})

	t.Run("multiple violations keep metric order", func(t *testing.T) {
		rules := ghmodels.DefaultAlertRules("ESP32_001")
		reading := normalReading()
		reading.AirTemperature = 40
		reading.SoilMoisture = 10
		reading.LightLevel = 50

		alerts := Evaluate(reading, &rules)
		require.Len(t, alerts, 3)
		assert.Contains(t, alerts[0], "air temperature too high")
		assert.Contains(t, alerts[1], "soil needs watering")
		assert.Contains(t, alerts[2], "not enough light")
	})

	t.Run("identical input yields identical output", func(t *testing.T) {
		rules := ghmodels.DefaultAlertRules("ESP32_001")
		reading := normalReading()
		reading.AirHumidity = 95
		reading.SoilMoisture = 95

		first := Evaluate(reading, &rules)
		second := Evaluate(reading, &rules)
		assert.Equal(t, first, second)
	})
}
