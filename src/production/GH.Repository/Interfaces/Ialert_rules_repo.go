package interfaces

import (
	"context"

	ghmodels "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Models"
)

type AlertRuleRepository interface {
	// EnsureDefaultRules writes the default thresholds for a freshly
	// provisioned device. Idempotent: existing rules are never overwritten.
	EnsureDefaultRules(ctx context.Context, deviceID string) error

	// GetRules returns nil without error when the device has no rules row
	GetRules(ctx context.Context, deviceID string) (*ghmodels.AlertRules, error)
}
