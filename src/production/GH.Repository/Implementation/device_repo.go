package implementation

import (
	"context"
	"database/sql"

	ghmodels "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Models"
)

type PostgresDeviceRepository struct {
	db *sql.DB
}

func NewPostgresDeviceRepository(db *sql.DB) *PostgresDeviceRepository {
	return &PostgresDeviceRepository{db: db}
}

// EnsureDevice creates the device if absent (idempotent insert). Concurrent
// callers race on the same id without error: ON CONFLICT DO NOTHING leaves
// exactly one row.
func (r *PostgresDeviceRepository) EnsureDevice(ctx context.Context, deviceID string, userID int) error {
	query := `
		INSERT INTO devices (device_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (device_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, deviceID, userID)
	return err
}

func (r *PostgresDeviceRepository) GetDevice(ctx context.Context, deviceID string) (*ghmodels.Device, error) {
	query := `SELECT device_id, user_id, created_at FROM devices WHERE device_id = $1`

	var device ghmodels.Device
	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(&device.DeviceID, &device.UserID, &device.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &device, nil
}

func (r *PostgresDeviceRepository) ListDevices(ctx context.Context) ([]ghmodels.Device, error) {
	query := `SELECT device_id, user_id, created_at FROM devices ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []ghmodels.Device
	for rows.Next() {
		var device ghmodels.Device
		if err := rows.Scan(&device.DeviceID, &device.UserID, &device.CreatedAt); err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}

	return devices, rows.Err()
}
