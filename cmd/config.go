package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
)

const (
	DefaultHTTPPort            = "8080"
	DefaultDeliveryPassTimeout = time.Minute
	DefaultDeliveryWorkers     = 4
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaOrderChangedTopic string
	DeliverySchedule       string
	DeliveryPassTimeout    time.Duration
	DeliveryWorkers        int
}

// KafkaBrokers splits KafkaHost on commas. Empty means no broker is configured.
func (c Config) KafkaBrokers() []string {
	brokers := make([]string, 0)
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// LoadConfig reads envFile into the process environment, if it exists, and
// builds the Config from the environment.
func LoadConfig(envFile string, logger *slog.Logger) Config {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Env file could not be loaded", "file", envFile, "error", err)
	}
	return configFromEnv(os.Getenv, logger)
}

func configFromEnv(getenv func(string) string, logger *slog.Logger) Config {
	return Config{
		HTTPPort:               stringOr(getenv("HTTP_PORT"), DefaultHTTPPort),
		DBHost:                 getenv("DB_HOST"),
		DBPort:                 getenv("DB_PORT"),
		DBUser:                 getenv("DB_USER"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 getenv("DB_NAME"),
		DBSslMode:              stringOr(getenv("DB_SSLMODE"), "disable"),
		KafkaHost:              getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		DeliverySchedule:       stringOr(getenv("DELIVERY_SCHEDULE"), jobs.DefaultDeliverySchedule),
		DeliveryPassTimeout:    durationOr(logger, "DELIVERY_PASS_TIMEOUT", getenv("DELIVERY_PASS_TIMEOUT"), DefaultDeliveryPassTimeout),
		DeliveryWorkers:        positiveIntOr(logger, "DELIVERY_WORKERS", getenv("DELIVERY_WORKERS"), DefaultDeliveryWorkers),
	}
}

func stringOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func durationOr(logger *slog.Logger, key, value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		logger.Warn("Invalid duration, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return d
}

func positiveIntOr(logger *slog.Logger, key, value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		logger.Warn("Invalid number, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return n
}
