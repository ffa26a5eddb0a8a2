package interfaces

import (
	"context"

	ghmodels "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Models"
)

type DeviceRepository interface {
	// EnsureDevice creates the device if it does not exist yet, owned by the
	// given user. Idempotent: a device that already exists is left untouched
	// and no error is returned, regardless of who owns it.
	EnsureDevice(ctx context.Context, deviceID string, userID int) error

	// GetDevice returns nil without error when the device does not exist
	GetDevice(ctx context.Context, deviceID string) (*ghmodels.Device, error)

	ListDevices(ctx context.Context) ([]ghmodels.Device, error)
}
