package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	RegionsPath        string
	RegionNameProperty string
	RecordsPath        string
	LexiconPath        string
	LexiconDSN         string

	KafkaBrokers      []string
	KafkaSinkTopic    string
	PublishEnabled    bool
	PublishMaxRetries int

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	CenterWorkers   int
	ReportCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	publishEnabled, err := parseBool("PUBLISH_ENABLED", false)
	if err != nil {
		return nil, err
	}
	maxRetries, err := parseIntInRange("PUBLISH_MAX_RETRIES", 3, 0, 10)
	if err != nil {
		return nil, err
	}
	workers, err := parseIntInRange("CENTER_WORKERS", 4, 1, 64)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parseIntInRange("REPORT_CACHE_SIZE", 128, 0, 1<<20)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RegionsPath:        sharedcfg.EnvOrDefault("REGIONS_PATH", "data/regions.geojson"),
		RegionNameProperty: sharedcfg.EnvOrDefault("REGION_NAME_PROPERTY", "name"),
		RecordsPath:        sharedcfg.EnvOrDefault("RECORDS_PATH", "data/tweets.txt"),
		LexiconPath:        sharedcfg.EnvOrDefault("LEXICON_PATH", "data/sentiments.csv"),
		LexiconDSN:         os.Getenv("LEXICON_DSN"),

		KafkaBrokers:      sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:    sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "region-sentiment"),
		PublishEnabled:    publishEnabled,
		PublishMaxRetries: maxRetries,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		CenterWorkers:   workers,
		ReportCacheSize: cacheSize,
	}

	if cfg.RegionsPath == "" {
		return nil, errors.New("REGIONS_PATH is required")
	}
	if cfg.RecordsPath == "" {
		return nil, errors.New("RECORDS_PATH is required")
	}
	if cfg.LexiconDSN == "" && cfg.LexiconPath == "" {
		return nil, errors.New("LEXICON_PATH is required when LEXICON_DSN is not set")
	}
	if cfg.PublishEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when PUBLISH_ENABLED is true")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required when PUBLISH_ENABLED is true")
		}
	}

	return cfg, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return v, nil
}

func parseIntInRange(key string, def, lo, hi int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s %q: must be an integer in [%d, %d]", key, s, lo, hi)
	}
	return n, nil
}
