package implementation

import (
	"context"
	"database/sql"

	ghmodels "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Models"
)

type PostgresAlertRuleRepository struct {
	db *sql.DB
}

func NewPostgresAlertRuleRepository(db *sql.DB) *PostgresAlertRuleRepository {
	return &PostgresAlertRuleRepository{db: db}
}

// EnsureDefaultRules writes default thresholds for a new device (idempotent
// insert, existing rules are never overwritten)
func (r *PostgresAlertRuleRepository) EnsureDefaultRules(ctx context.Context, deviceID string) error {
	query := `
		INSERT INTO alert_rules (
			device_id,
			air_temperature_max, air_temperature_min,
			air_humidity_max, air_humidity_min,
			soil_temperature_max, soil_temperature_min,
			soil_moisture_max, soil_moisture_min,
			light_level_max, light_level_min
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (device_id) DO NOTHING
	`

	rules := ghmodels.DefaultAlertRules(deviceID)
	_, err := r.db.ExecContext(ctx, query,
		rules.DeviceID,
		nullFloat(rules.AirTemperatureMax), nullFloat(rules.AirTemperatureMin),
		nullFloat(rules.AirHumidityMax), nullFloat(rules.AirHumidityMin),
		nullFloat(rules.SoilTemperatureMax), nullFloat(rules.SoilTemperatureMin),
		nullFloat(rules.SoilMoistureMax), nullFloat(rules.SoilMoistureMin),
		nullFloat(rules.LightLevelMax), nullFloat(rules.LightLevelMin),
	)
	return err
}

func (r *PostgresAlertRuleRepository) GetRules(ctx context.Context, deviceID string) (*ghmodels.AlertRules, error) {
	query := `
		SELECT device_id,
			air_temperature_max, air_temperature_min,
			air_humidity_max, air_humidity_min,
			soil_temperature_max, soil_temperature_min,
			soil_moisture_max, soil_moisture_min,
			light_level_max, light_level_min
		FROM alert_rules
		WHERE device_id = $1
	`

	var rules ghmodels.AlertRules
	var airTempMax, airTempMin, airHumMax, airHumMin sql.NullFloat64
	var soilTempMax, soilTempMin, soilMoistMax, soilMoistMin sql.NullFloat64
	var lightMax, lightMin sql.NullFloat64

	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(
		&rules.DeviceID,
		&airTempMax, &airTempMin,
		&airHumMax, &airHumMin,
		&soilTempMax, &soilTempMin,
		&soilMoistMax, &soilMoistMin,
		&lightMax, &lightMin,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rules.AirTemperatureMax = floatPtr(airTempMax)
	rules.AirTemperatureMin = floatPtr(airTempMin)
	rules.AirHumidityMax = floatPtr(airHumMax)
	rules.AirHumidityMin = floatPtr(airHumMin)
	rules.SoilTemperatureMax = floatPtr(soilTempMax)
	rules.SoilTemperatureMin = floatPtr(soilTempMin)
	rules.SoilMoistureMax = floatPtr(soilMoistMax)
	rules.SoilMoistureMin = floatPtr(soilMoistMin)
	rules.LightLevelMax = floatPtr(lightMax)
	rules.LightLevelMin = floatPtr(lightMin)

	return &rules, nil
}
