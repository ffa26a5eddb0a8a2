package implementation

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ghmodels "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Models"
)

func TestEnsureDeviceIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresDeviceRepository(db)

	mock.ExpectExec("INSERT INTO devices").
		WithArgs("ESP32_001", ghmodels.SentinelUserID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Second call conflicts and inserts nothing
	mock.ExpectExec("INSERT INTO devices").
		WithArgs("ESP32_001", ghmodels.SentinelUserID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureDevice(context.Background(), "ESP32_001", ghmodels.SentinelUserID))
	require.NoError(t, repo.EnsureDevice(context.Background(), "ESP32_001", ghmodels.SentinelUserID))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDeviceReturnsNilWhenMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresDeviceRepository(db)

	mock.ExpectQuery("SELECT device_id, user_id, created_at FROM devices").
		WithArgs("ESP32_999").
		WillReturnRows(sqlmock.NewRows([]string{"device_id", "user_id", "created_at"}))

	device, err := repo.GetDevice(context.Background(), "ESP32_999")
	require.NoError(t, err)
	assert.Nil(t, device)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDevices(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresDeviceRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"device_id", "user_id", "created_at"}).
		AddRow("ESP32_002", 1, now).
		AddRow("ESP32_001", 1, now.Add(-time.Hour))
	mock.ExpectQuery("SELECT device_id, user_id, created_at FROM devices").
		WillReturnRows(rows)

	devices, err := repo.ListDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "ESP32_002", devices[0].DeviceID)
	assert.Equal(t, "ESP32_001", devices[1].DeviceID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
