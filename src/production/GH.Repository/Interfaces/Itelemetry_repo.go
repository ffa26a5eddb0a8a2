package interfaces

import (
	"context"

	ghmodels "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Models"
)

// Row-count bounds for time-ordered reads. Callers outside the range are
// clamped rather than rejected.
const (
	DefaultQueryLimit = 100
	MaxQueryLimit     = 1000
)

// ClampLimit normalizes a caller-supplied row-count bound
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		return MaxQueryLimit
	}
	return limit
}

type TelemetryRepository interface {
	// InsertReading appends one validated reading. Readings are never updated
	// or deleted; repeated identical messages produce repeated rows.
	InsertReading(ctx context.Context, reading ghmodels.TelemetryReading) error

	// GetReadingsByDevice returns the newest readings first, at most
	// ClampLimit(limit) rows
	GetReadingsByDevice(ctx context.Context, deviceID string, limit int) ([]ghmodels.TelemetryReading, error)
}
