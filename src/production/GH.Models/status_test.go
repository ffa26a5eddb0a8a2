package ghmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOnline(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		status     string
		reportedAt time.Time
		want       bool
	}{
		{name: "recent online report", status: StatusOnline, reportedAt: now.Add(-90 * time.Second), want: true},
		{name: "report just now", status: StatusOnline, reportedAt: now, want: true},
		{name: "exactly at the window edge", status: StatusOnline, reportedAt: now.Add(-LivenessWindow), want: false},
		{name: "stale online report", status: StatusOnline, reportedAt: now.Add(-130 * time.Second), want: false},
		{name: "recent offline report", status: "offline", reportedAt: now.Add(-10 * time.Second), want: false},
		{name: "unknown status string", status: "rebooting", reportedAt: now.Add(-10 * time.Second), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsOnline(tt.status, tt.reportedAt, now, LivenessWindow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeviceStatusRecordOnline(t *testing.T) {
	now := time.Now().UTC()

	record := &DeviceStatusRecord{DeviceID: "ESP32_001", Status: StatusOnline, ReportedAt: now.Add(-time.Minute)}
	assert.True(t, record.Online(now))

	record.Status = "offline"
	assert.False(t, record.Online(now))
}
