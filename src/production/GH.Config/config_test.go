package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithDefaults(t *testing.T) {
	t.Setenv("POSTGRES_USER", "greenhouse")
	t.Setenv("POSTGRES_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9002", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "greenhouse", cfg.Database.DBName)
	assert.Equal(t, "localhost", cfg.MQTT.BrokerHost)
	assert.Equal(t, 1883, cfg.MQTT.BrokerPort)
	assert.Equal(t, 3*time.Second, cfg.MQTT.ReconnectInterval)
	assert.NotEmpty(t, cfg.MQTT.ClientID)
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_USER", "greenhouse")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("BROKER_HOST", "mqtt.example.com")
	t.Setenv("BROKER_PORT", "8883")
	t.Setenv("BROKER_TLS", "true")
	t.Setenv("MQTT_RECONNECT_INTERVAL", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mqtt.example.com", cfg.MQTT.BrokerHost)
	assert.Equal(t, 8883, cfg.MQTT.BrokerPort)
	assert.True(t, cfg.MQTT.UseTLS)
	assert.Equal(t, 5*time.Second, cfg.MQTT.ReconnectInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db.local",
			Port:     5433,
			User:     "gh",
			Password: "pw",
			DBName:   "greenhouse",
			SSLMode:  "disable",
		},
	}

	assert.Equal(t, "host=db.local port=5433 user=gh password=pw dbname=greenhouse sslmode=disable", cfg.GetDatabaseDSN())
}

func TestGetMQTTBrokerURL(t *testing.T) {
	cfg := &Config{MQTT: MQTTConfig{BrokerHost: "broker.local", BrokerPort: 1883}}
	assert.Equal(t, "tcp://broker.local:1883", cfg.GetMQTTBrokerURL())

	cfg.MQTT.UseTLS = true
	cfg.MQTT.BrokerPort = 8883
	assert.Equal(t, "tcps://broker.local:8883", cfg.GetMQTTBrokerURL())
}

func TestDefaultClientIDIsUnique(t *testing.T) {
	assert.NotEqual(t, defaultClientID(), defaultClientID())
}

func TestValidateRejectsBadReconnectInterval(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{User: "gh", Password: "pw"},
		MQTT:     MQTTConfig{ReconnectInterval: 0},
	}

	assert.Error(t, cfg.Validate())
}
