package ghalerts

import (
	"context"

	logger "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Logger"
)

// LogNotifier records fired alerts in the service log. It stands in for the
// push/email delivery channel, which is a separate service.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log.WithComponent("alerts")}
}

func (n *LogNotifier) OnAlert(ctx context.Context, deviceID string, messages []string) {
	for _, message := range messages {
		n.logger.Logger.Warn().Str("device_id", deviceID).Str("alert", message).Msg("Alert triggered")
	}
}
