package ghmodels

import "time"

// StatusOnline is the status token devices report while alive
const StatusOnline = "online"

// LivenessWindow is how long a reported "online" status counts as fresh
const LivenessWindow = 2 * time.Minute

// DeviceStatusRecord is the last-write-wins status row for a device. It
// records the raw reported token and when the server recorded it; whether the
// device counts as online is always derived, never stored.
type DeviceStatusRecord struct {
	DeviceID   string    `json:"device_id" db:"device_id"`
	Status     string    `json:"status" db:"status"`
	ReportedAt time.Time `json:"reported_at" db:"reported_at"`
}

// IsOnline reports whether a device with the given status row counts as alive
// at the given instant. Pure function of its inputs so it can be tested
// without storage.
func IsOnline(status string, reportedAt, now time.Time, window time.Duration) bool {
	return status == StatusOnline && now.Sub(reportedAt) < window
}

// Online derives liveness for the record using the fixed window
func (r *DeviceStatusRecord) Online(now time.Time) bool {
	return IsOnline(r.Status, r.ReportedAt, now, LivenessWindow)
}
