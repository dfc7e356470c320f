package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, time.Minute, cfg.USGSInterval)
	assert.Equal(t, 5*time.Minute, cfg.GDELTInterval)
	assert.Equal(t, 5*time.Minute, cfg.ACLEDInterval)
	assert.Equal(t, 10*time.Minute, cfg.ReliefWebInterval)
	assert.Empty(t, cfg.ACLEDKey)
	assert.Empty(t, cfg.ACLEDEmail)
	assert.Equal(t, "begdar", cfg.ReliefWebAppName)
	assert.Equal(t, 100, cfg.PushedEventCap)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "approved-reports", cfg.KafkaReportsTopic)
	assert.Equal(t, "begdar-monitor", cfg.KafkaGroupID)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("USGS_INTERVAL", "2m")
	t.Setenv("GDELT_INTERVAL", "10m")
	t.Setenv("ACLED_INTERVAL", "15m")
	t.Setenv("RELIEFWEB_INTERVAL", "20m")
	t.Setenv("ACLED_KEY", "key")
	t.Setenv("ACLED_EMAIL", "ops@example.com")
	t.Setenv("RELIEFWEB_APP_NAME", "custom-app")
	t.Setenv("PUSHED_EVENT_CAP", "50")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_REPORTS_TOPIC", "custom-reports")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 2*time.Minute, cfg.USGSInterval)
	assert.Equal(t, 10*time.Minute, cfg.GDELTInterval)
	assert.Equal(t, 15*time.Minute, cfg.ACLEDInterval)
	assert.Equal(t, 20*time.Minute, cfg.ReliefWebInterval)
	assert.Equal(t, "key", cfg.ACLEDKey)
	assert.Equal(t, "ops@example.com", cfg.ACLEDEmail)
	assert.Equal(t, "custom-app", cfg.ReliefWebAppName)
	assert.Equal(t, 50, cfg.PushedEventCap)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "custom-reports", cfg.KafkaReportsTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_NegativeInterval(t *testing.T) {
	t.Setenv("GDELT_INTERVAL", "-1m")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GDELT_INTERVAL")
}

func TestLoad_ZeroPushCap(t *testing.T) {
	t.Setenv("PUSHED_EVENT_CAP", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PUSHED_EVENT_CAP")
}

func TestLoad_ACLEDCredentialsMustPair(t *testing.T) {
	t.Setenv("ACLED_KEY", "key-without-email")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACLED_EMAIL")
}

func TestLoad_KafkaTopicRequiredWhenEnabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker:9092")
	t.Setenv("KAFKA_REPORTS_TOPIC", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_REPORTS_TOPIC")
}
