package implementation

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the required tables and indexes if they don't exist
// and seeds the sentinel system user that owns auto-provisioned devices
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id          SERIAL PRIMARY KEY,
			email       VARCHAR(255) UNIQUE NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		`,
		`
		INSERT INTO users (id, email)
		VALUES (1, 'system@greenhouse.local')
		ON CONFLICT (id) DO NOTHING;
		`,
		`
		CREATE TABLE IF NOT EXISTS devices (
			device_id   TEXT PRIMARY KEY,
			user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS devices_user_id_idx ON devices (user_id);
		`,
		`
		CREATE TABLE IF NOT EXISTS telemetry (
			id               BIGSERIAL PRIMARY KEY,
			device_id        TEXT NOT NULL REFERENCES devices(device_id) ON DELETE CASCADE,
			air_temperature  DOUBLE PRECISION,
			air_humidity     DOUBLE PRECISION CHECK (air_humidity BETWEEN 0 AND 100),
			soil_temperature DOUBLE PRECISION,
			soil_moisture    DOUBLE PRECISION CHECK (soil_moisture BETWEEN 0 AND 100),
			light_level      DOUBLE PRECISION,
			recorded_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS telemetry_device_time_idx
			ON telemetry (device_id, recorded_at DESC);
		`,
		`
		CREATE TABLE IF NOT EXISTS device_status (
			device_id   TEXT PRIMARY KEY REFERENCES devices(device_id) ON DELETE CASCADE,
			status      TEXT NOT NULL,
			reported_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS device_status_time_idx
			ON device_status (reported_at DESC);
		`,
		`
		CREATE TABLE IF NOT EXISTS alert_rules (
			device_id            TEXT PRIMARY KEY REFERENCES devices(device_id) ON DELETE CASCADE,
			air_temperature_max  DOUBLE PRECISION,
			air_temperature_min  DOUBLE PRECISION,
			air_humidity_max     DOUBLE PRECISION,
			air_humidity_min     DOUBLE PRECISION,
			soil_temperature_max DOUBLE PRECISION,
			soil_temperature_min DOUBLE PRECISION,
			soil_moisture_max    DOUBLE PRECISION,
			soil_moisture_min    DOUBLE PRECISION,
			light_level_max      DOUBLE PRECISION,
			light_level_min      DOUBLE PRECISION
		);
		`,
	}

	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	return nil
}
