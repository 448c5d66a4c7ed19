package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env                string
	HTTPAddr           string
	StorageMode        string
	MongoURI           string
	MongoDB            string
	KafkaBrokers       []string
	KafkaTopicPrefix   string
	RedisAddr          string
	IdempotencyTTL     time.Duration
	HoldTTL            time.Duration
	HoldSweepInterval  time.Duration
	OutboxPollInterval time.Duration
	MinStayDays        int
	MaintenanceBuffer  time.Duration
	PickupLead         time.Duration
	OpenHour           int
	CloseHour          int
	AdvanceCap         int
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		StorageMode:      strings.ToLower(getEnv("STORAGE_MODE", "memory")),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "autorent"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
	}
	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	idempotencyTTL, err := parseDurationEnv("IDEMP_TTL", 168*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.IdempotencyTTL = idempotencyTTL

	holdTTL, err := parseDurationEnv("HOLD_TTL", 30*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.HoldTTL = holdTTL

	sweep, err := parseDurationEnv("HOLD_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.HoldSweepInterval = sweep

	poll, err := parseDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return Config{}, err
	}
	cfg.OutboxPollInterval = poll

	buffer, err := parseDurationEnv("MAINTENANCE_BUFFER", 12*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.MaintenanceBuffer = buffer

	lead, err := parseDurationEnv("PICKUP_LEAD", 2*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.PickupLead = lead

	minStay, err := parseIntEnv("MIN_RENTAL_DAYS", 2)
	if err != nil {
		return Config{}, err
	}
	cfg.MinStayDays = minStay

	openHour, err := parseIntEnv("OPEN_HOUR", 8)
	if err != nil {
		return Config{}, err
	}
	cfg.OpenHour = openHour

	closeHour, err := parseIntEnv("CLOSE_HOUR", 20)
	if err != nil {
		return Config{}, err
	}
	cfg.CloseHour = closeHour

	advanceCap, err := parseIntEnv("CALENDAR_ADVANCE_CAP", 12)
	if err != nil {
		return Config{}, err
	}
	cfg.AdvanceCap = advanceCap

	switch cfg.StorageMode {
	case "memory":
	case "mongo":
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when STORAGE_MODE=mongo")
		}
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_MODE: %q", cfg.StorageMode)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %q", key, raw)
	}
	return v, nil
}
