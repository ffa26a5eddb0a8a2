package ghmodels

import "time"

// SentinelUserID owns devices that were auto-provisioned from an inbound
// MQTT message before any real user claimed them
const SentinelUserID = 1

// SentinelUserEmail identifies the reserved system account row
const SentinelUserEmail = "system@greenhouse.local"

// Device represents a greenhouse sensor node
type Device struct {
	DeviceID  string    `json:"device_id" db:"device_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
