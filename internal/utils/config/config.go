package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	OrderStoreSQL      = "sql"
	OrderStoreDynamoDB = "dynamodb"
)

type Config struct {
	AppPort         string
	LogLevel        string
	LogFormat       string
	GracefulTimeout time.Duration

	StripeSecretKey      string
	StripePublishableKey string
	StripeWebhookSecret  string
	StripeMockMode       bool
	SimulatorLatency     time.Duration

	OrderStore  string
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	DynamoDBTable    string
	DynamoDBRegion   string
	DynamoDBEndpoint string

	PaymentMaxRetries     int
	PaymentRetryBaseDelay time.Duration
	PaymentRetryTTL       time.Duration
	WebhookEventTTL       time.Duration
	CleanupInterval       time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:         getEnv("APP_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		GracefulTimeout: parsePositiveDuration(getEnv("GRACEFUL_TIMEOUT", "5s"), 5*time.Second),

		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		StripeWebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),
		StripeMockMode:       parseBool(getEnv("STRIPE_MOCK_MODE", "false"), false),
		SimulatorLatency:     parseDuration(getEnv("STRIPE_MOCK_LATENCY", "100ms"), 100*time.Millisecond),

		OrderStore:  strings.ToLower(getEnv("ORDER_STORE", OrderStoreSQL)),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "nexuskit"),
		DBPassword:  getEnv("DB_PASSWORD", "nexuskit"),
		DBName:      getEnv("DB_NAME", "nexuskit"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		DynamoDBTable:    getEnv("DYNAMODB_TABLE", "nexuskit-orders"),
		DynamoDBRegion:   getEnv("DYNAMODB_REGION", "ap-southeast-1"),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),

		PaymentMaxRetries:     parseInt(getEnv("PAYMENT_MAX_RETRIES", "3"), 3),
		PaymentRetryBaseDelay: parseDuration(getEnv("PAYMENT_RETRY_BASE_DELAY", "1s"), time.Second),
		PaymentRetryTTL:       parsePositiveDuration(getEnv("PAYMENT_RETRY_TTL", "30m"), 30*time.Minute),
		WebhookEventTTL:       parsePositiveDuration(getEnv("WEBHOOK_EVENT_TTL", "720h"), 30*24*time.Hour),
		CleanupInterval:       parsePositiveDuration(getEnv("CLEANUP_INTERVAL", "1h"), time.Hour),
	}
}

// DSN returns DATABASE_URL when set, otherwise a driver-specific DSN built
// from the DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	case "sqlite":
		return c.DBName + ".db"
	default:
		return "host=" + c.DBHost +
			" user=" + c.DBUser +
			" password=" + c.DBPassword +
			" dbname=" + c.DBName +
			" port=" + c.DBPort +
			" sslmode=" + c.DBSSLMode
	}
}

// StripeConfigured reports whether card payments can be offered. A missing
// key only disables card payments.
func (c *Config) StripeConfigured() bool {
	return c.StripeMockMode || strings.HasPrefix(c.StripeSecretKey, "sk_")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// parsePositiveDuration is parseDuration for intervals and lifetimes, where
// zero or a negative value is as unusable as a typo.
func parsePositiveDuration(value string, fallback time.Duration) time.Duration {
	d := parseDuration(value, fallback)
	if d <= 0 {
		return fallback
	}
	return d
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseBool(value string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return b
}
