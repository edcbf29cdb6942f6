package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/regions.geojson", cfg.RegionsPath)
	assert.Equal(t, "name", cfg.RegionNameProperty)
	assert.Equal(t, "data/tweets.txt", cfg.RecordsPath)
	assert.Equal(t, "data/sentiments.csv", cfg.LexiconPath)
	assert.Empty(t, cfg.LexiconDSN)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "region-sentiment", cfg.KafkaSinkTopic)
	assert.False(t, cfg.PublishEnabled)
	assert.Equal(t, 3, cfg.PublishMaxRetries)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 4, cfg.CenterWorkers)
	assert.Equal(t, 128, cfg.ReportCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("REGIONS_PATH", "/srv/states.geojson")
	t.Setenv("REGION_NAME_PROPERTY", "postal")
	t.Setenv("RECORDS_PATH", "/srv/tweets.txt")
	t.Setenv("LEXICON_PATH", "/srv/words.csv")
	t.Setenv("LEXICON_DSN", "postgres://trends@db/trends")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("PUBLISH_ENABLED", "true")
	t.Setenv("PUBLISH_MAX_RETRIES", "5")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CENTER_WORKERS", "16")
	t.Setenv("REPORT_CACHE_SIZE", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/states.geojson", cfg.RegionsPath)
	assert.Equal(t, "postal", cfg.RegionNameProperty)
	assert.Equal(t, "/srv/tweets.txt", cfg.RecordsPath)
	assert.Equal(t, "/srv/words.csv", cfg.LexiconPath)
	assert.Equal(t, "postgres://trends@db/trends", cfg.LexiconDSN)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.True(t, cfg.PublishEnabled)
	assert.Equal(t, 5, cfg.PublishMaxRetries)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 16, cfg.CenterWorkers)
	assert.Equal(t, 0, cfg.ReportCacheSize)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PUBLISH_ENABLED", "maybe"},
		{"PUBLISH_MAX_RETRIES", "11"},
		{"PUBLISH_MAX_RETRIES", "-1"},
		{"CENTER_WORKERS", "0"},
		{"CENTER_WORKERS", "65"},
		{"CENTER_WORKERS", "four"},
		{"REPORT_CACHE_SIZE", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
