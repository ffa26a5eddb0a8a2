package interfaces

import (
	"context"

	ghmodels "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Models"
)

type StatusRepository interface {
	// UpsertStatus inserts or unconditionally overwrites the single status row
	// for the device (last write wins, no timestamp comparison)
	UpsertStatus(ctx context.Context, record ghmodels.DeviceStatusRecord) error

	// GetStatus returns nil without error when no status was ever reported
	GetStatus(ctx context.Context, deviceID string) (*ghmodels.DeviceStatusRecord, error)
}
