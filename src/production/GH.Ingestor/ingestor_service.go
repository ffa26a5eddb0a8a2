package ghingestor

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	ghalerts "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Alerts"
	config "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Config"
	logger "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Logger"
	ghmodels "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Models"
	interfaces "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Repository/Interfaces"
)

// Ingestor owns the MQTT connection for the process lifetime and feeds
// validated messages into storage. Transport failures are never fatal: the
// client reconnects on a fixed interval forever and failed messages are
// dropped with a log line.
type Ingestor struct {
	cfg           config.MQTTConfig
	brokerURL     string
	deviceRepo    interfaces.DeviceRepository
	telemetryRepo interfaces.TelemetryRepository
	statusRepo    interfaces.StatusRepository
	ruleRepo      interfaces.AlertRuleRepository
	notifier      ghalerts.Notifier
	client        mqtt.Client
	logger        *logger.Logger
	ctx           context.Context
}

func New(
	cfg *config.Config,
	deviceRepo interfaces.DeviceRepository,
	telemetryRepo interfaces.TelemetryRepository,
	statusRepo interfaces.StatusRepository,
	ruleRepo interfaces.AlertRuleRepository,
	notifier ghalerts.Notifier,
	log *logger.Logger,
) *Ingestor {
	return &Ingestor{
		cfg:           cfg.MQTT,
		brokerURL:     cfg.GetMQTTBrokerURL(),
		deviceRepo:    deviceRepo,
		telemetryRepo: telemetryRepo,
		statusRepo:    statusRepo,
		ruleRepo:      ruleRepo,
		notifier:      notifier,
		logger:        log.WithComponent("ingestor"),
	}
}

func (i *Ingestor) Start(ctx context.Context) error {
	i.ctx = ctx

	opts := mqtt.NewClientOptions().
		AddBroker(i.brokerURL).
		SetClientID(i.cfg.ClientID).
		SetOrderMatters(false).
		SetKeepAlive(i.cfg.KeepAlive).
		SetPingTimeout(i.cfg.PingTimeout).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(i.cfg.ReconnectInterval).
		SetMaxReconnectInterval(i.cfg.ReconnectInterval).
		SetCleanSession(true)

	if i.cfg.BrokerUser != "" {
		opts.SetUsername(i.cfg.BrokerUser)
		opts.SetPassword(i.cfg.BrokerPass)
	}

	if i.cfg.UseTLS {
		tlsCfg, err := i.tlsConfig(i.cfg.CACertPath)
		if err != nil {
			return err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		i.logger.Logger.Error().Err(err).Msg("MQTT connection lost")
	}
	opts.SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
		i.logger.Warn("Reconnecting to MQTT broker...")
	})
	opts.OnConnect = func(c mqtt.Client) {
		filters := map[string]byte{
			fmt.Sprintf("%s/+/%s", TopicNamespace, KindTelemetry): 1,
			fmt.Sprintf("%s/+/%s", TopicNamespace, KindStatus):    1,
		}
		i.logger.Logger.Info().Str("broker", i.brokerURL).Msg("MQTT connected, subscribing to device topics")
		if token := c.SubscribeMultiple(filters, i.onMessage); token.Wait() && token.Error() != nil {
			i.logger.Logger.Error().Err(token.Error()).Msg("Failed to subscribe to MQTT topics")
		}
	}

	i.client = mqtt.NewClient(opts)
	if tk := i.client.Connect(); tk.Wait() && tk.Error() != nil {
		return tk.Error()
	}

	return nil
}

// Stop disconnects from the broker, waiting briefly for in-flight handlers.
// Callers must close storage only after Stop returns so writes never race a
// closed pool.
func (i *Ingestor) Stop() {
	if i.client != nil && i.client.IsConnected() {
		i.client.Disconnect(500)
	}
}

func (i *Ingestor) IsConnected() bool {
	return i.client != nil && i.client.IsConnected()
}

func (i *Ingestor) onMessage(_ mqtt.Client, m mqtt.Message) {
	parsed, ok := ParseTopic(m.Topic())
	if !ok {
		i.logger.Logger.Warn().Str("topic", m.Topic()).Msg("Ignoring unexpected MQTT topic")
		return
	}

	if parsed.Kind == KindTelemetry {
		i.handleTelemetry(i.ctx, parsed.DeviceID, m.Payload())
		return
	}
	i.handleStatus(i.ctx, parsed.DeviceID, m.Payload())
}

func (i *Ingestor) handleTelemetry(ctx context.Context, deviceID string, payload []byte) {
	reading, err := DecodeTelemetryPayload(payload, deviceID)
	if err != nil {
		i.logger.Logger.Warn().Err(err).Str("device_id", deviceID).Msg("Telemetry payload rejected")
		return
	}
	reading.RecordedAt = time.Now().UTC()

	i.provisionDevice(ctx, deviceID)

	if err := i.telemetryRepo.InsertReading(ctx, reading); err != nil {
		i.logger.Logger.Error().Err(err).Str("device_id", deviceID).Msg("Failed to store telemetry")
		return
	}
	i.logger.Logger.Debug().Str("device_id", deviceID).Time("recorded_at", reading.RecordedAt).Msg("Telemetry stored")

	rules, err := i.ruleRepo.GetRules(ctx, deviceID)
	if err != nil {
		i.logger.Logger.Error().Err(err).Str("device_id", deviceID).Msg("Failed to load alert rules")
		return
	}

	if alerts := ghalerts.Evaluate(reading, rules); len(alerts) > 0 {
		i.notifier.OnAlert(ctx, deviceID, alerts)
	}
}

func (i *Ingestor) handleStatus(ctx context.Context, deviceID string, payload []byte) {
	status, err := DecodeStatusPayload(payload)
	if err != nil {
		i.logger.Logger.Warn().Err(err).Str("device_id", deviceID).Msg("Status payload rejected")
		return
	}

	i.provisionDevice(ctx, deviceID)

	record := ghmodels.DeviceStatusRecord{
		DeviceID:   deviceID,
		Status:     status,
		ReportedAt: time.Now().UTC(),
	}
	if err := i.statusRepo.UpsertStatus(ctx, record); err != nil {
		i.logger.Logger.Error().Err(err).Str("device_id", deviceID).Msg("Failed to store status")
		return
	}
	i.logger.Logger.Debug().Str("device_id", deviceID).Str("status", status).Msg("Status updated")
}

// provisionDevice makes sure the device and its default alert rules exist,
// owned by the sentinel account. Best effort: provisioning failures (races
// with a concurrent create included) never block ingestion, they are logged
// and swallowed here.
func (i *Ingestor) provisionDevice(ctx context.Context, deviceID string) {
	if err := i.deviceRepo.EnsureDevice(ctx, deviceID, ghmodels.SentinelUserID); err != nil {
		i.logger.Logger.Warn().Err(err).Str("device_id", deviceID).Msg("Device provisioning failed, continuing")
		return
	}
	if err := i.ruleRepo.EnsureDefaultRules(ctx, deviceID); err != nil {
		i.logger.Logger.Warn().Err(err).Str("device_id", deviceID).Msg("Default alert rules provisioning failed, continuing")
	}
}

func (i *Ingestor) tlsConfig(caFile string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if caFile == "" {
		return cfg, nil
	}
	ca, err := os.ReadFile(caFile)
	if err != nil {
		return nil, err
	}
	cp := x509.NewCertPool()
	if !cp.AppendCertsFromPEM(ca) {
		return nil, fmt.Errorf("bad CA file")
	}
	cfg.RootCAs = cp
	return cfg, nil
}
