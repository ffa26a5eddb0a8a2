package implementation

import (
	"context"
	"database/sql"

	ghmodels "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Models"
)

type PostgresStatusRepository struct {
	db *sql.DB
}

func NewPostgresStatusRepository(db *sql.DB) *PostgresStatusRepository {
	return &PostgresStatusRepository{db: db}
}

// UpsertStatus writes the status row for a device (last write wins). The new
// values replace the old ones unconditionally; arrival order is the only
// ordering that matters.
func (r *PostgresStatusRepository) UpsertStatus(ctx context.Context, record ghmodels.DeviceStatusRecord) error {
	query := `
		INSERT INTO device_status (device_id, status, reported_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (device_id) DO UPDATE
		SET status = EXCLUDED.status, reported_at = EXCLUDED.reported_at
	`

	_, err := r.db.ExecContext(ctx, query, record.DeviceID, record.Status, record.ReportedAt)
	return err
}

func (r *PostgresStatusRepository) GetStatus(ctx context.Context, deviceID string) (*ghmodels.DeviceStatusRecord, error) {
	query := `SELECT device_id, status, reported_at FROM device_status WHERE device_id = $1`

	var record ghmodels.DeviceStatusRecord
	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(&record.DeviceID, &record.Status, &record.ReportedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &record, nil
}
