package implementation

import (
	"context"
	"database/sql"

	ghmodels "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Models"
	interfaces "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Repository/Interfaces"
)

type PostgresTelemetryRepository struct {
	db *sql.DB
}

func NewPostgresTelemetryRepository(db *sql.DB) *PostgresTelemetryRepository {
	return &PostgresTelemetryRepository{db: db}
}

// InsertReading appends one reading row. The BIGSERIAL id is the insert
// sequence; duplicates are not detected here.
func (r *PostgresTelemetryRepository) InsertReading(ctx context.Context, reading ghmodels.TelemetryReading) error {
	query := `
		INSERT INTO telemetry (
			device_id,
			air_temperature,
			air_humidity,
			soil_temperature,
			soil_moisture,
			light_level,
			recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		reading.DeviceID,
		reading.AirTemperature,
		reading.AirHumidity,
		reading.SoilTemperature,
		reading.SoilMoisture,
		reading.LightLevel,
		reading.RecordedAt,
	)
	return err
}

func (r *PostgresTelemetryRepository) GetReadingsByDevice(ctx context.Context, deviceID string, limit int) ([]ghmodels.TelemetryReading, error) {
	query := `
		SELECT id, device_id, air_temperature, air_humidity, soil_temperature, soil_moisture, light_level, recorded_at
		FROM telemetry
		WHERE device_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, deviceID, interfaces.ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []ghmodels.TelemetryReading
	for rows.Next() {
		var reading ghmodels.TelemetryReading
		if err := rows.Scan(
			&reading.ID,
			&reading.DeviceID,
			&reading.AirTemperature,
			&reading.AirHumidity,
			&reading.SoilTemperature,
			&reading.SoilMoisture,
			&reading.LightLevel,
			&reading.RecordedAt,
		); err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}

	return readings, rows.Err()
}
