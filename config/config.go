package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the premium plan bot
type Config struct {
	Telegram TelegramConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	S3       S3Config
	Shop     ShopConfig
	Logging  LoggingConfig
	Service  ServiceConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken       string
	AdminIDs       []int64
	RequestTimeout time.Duration
	// RateLimit is the number of provider calls per second allowed towards the Bot API
	RateLimit float64
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MigrationsPath string
}

// KafkaConfig holds Kafka configuration. Empty Brokers disables Kafka
type KafkaConfig struct {
	Brokers                 []string
	GroupID                 string
	TopicEvents             string
	TopicAdminNotifications string
}

// Enabled reports whether any broker is configured
func (c *KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// RedisConfig holds Redis configuration. Empty Addr selects the in-process locker
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	LockTTL  time.Duration
}

// Enabled reports whether Redis is configured
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// S3Config holds S3/MinIO configuration for the payment proof archive
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether the proof archive is configured
func (c *S3Config) Enabled() bool {
	return c.Endpoint != ""
}

// ShopConfig holds catalog and checkout settings
type ShopConfig struct {
	AllAccessName       string
	AllAccessPrice      float64
	CurrencySymbol      string
	PaymentInstructions string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name     string
	Port     string
	GRPCPort string
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config   *Config
	Telegram *TelegramConfig
	Database *DatabaseConfig
	Kafka    *KafkaConfig
	Redis    *RedisConfig
	S3       *S3Config
	Shop     *ShopConfig
	Logging  *LoggingConfig
	Service  *ServiceConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:   cfg,
		Telegram: &cfg.Telegram,
		Database: &cfg.Database,
		Kafka:    &cfg.Kafka,
		Redis:    &cfg.Redis,
		S3:       &cfg.S3,
		Shop:     &cfg.Shop,
		Logging:  &cfg.Logging,
		Service:  &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	adminIDs, err := parseIDs(getEnv("ADMIN_IDS", ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
			AdminIDs:       adminIDs,
			RequestTimeout: getEnvDuration("TELEGRAM_REQUEST_TIMEOUT", 10*time.Second),
			RateLimit:      getEnvFloat("TELEGRAM_RATE_LIMIT", 20),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DATABASE_HOST", "localhost"),
			Port:           getEnv("DATABASE_PORT", "5432"),
			User:           getEnv("DATABASE_USER", "postgres"),
			Password:       getEnv("DATABASE_PASSWORD", "postgres"),
			Name:           getEnv("DATABASE_NAME", "premium_plan"),
			SSLMode:        getEnv("DATABASE_SSLMODE", "disable"),
			MigrationsPath: getEnv("DATABASE_MIGRATIONS_PATH", ""),
		},
		Kafka: KafkaConfig{
			Brokers:                 splitList(getEnv("KAFKA_BROKERS", "")),
			GroupID:                 getEnv("KAFKA_GROUP_ID", "premium-plan-bot"),
			TopicEvents:             getEnv("KAFKA_TOPIC_EVENTS", "shop.events"),
			TopicAdminNotifications: getEnv("KAFKA_TOPIC_ADMIN_NOTIFICATIONS", "shop.admin_notifications"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			LockTTL:  getEnvDuration("REDIS_LOCK_TTL", 30*time.Second),
		},
		S3: S3Config{
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			Bucket:    getEnv("S3_BUCKET", "payment-proofs"),
			UseSSL:    getEnv("S3_USE_SSL", "false") == "true",
		},
		Shop: ShopConfig{
			AllAccessName:       getEnv("ALL_ACCESS_NAME", "Server Premium"),
			AllAccessPrice:      getEnvFloat("ALL_ACCESS_PRICE", 599),
			CurrencySymbol:      getEnv("CURRENCY_SYMBOL", "₹"),
			PaymentInstructions: getEnv("PAYMENT_INSTRUCTIONS", "Send the amount to the account shared by the administrators, then upload a screenshot or receipt here."),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Service: ServiceConfig{
			Name:     getEnv("SERVICE_NAME", "premium-plan-bot"),
			Port:     getEnv("PORT", "8080"),
			GRPCPort: getEnv("GRPC_PORT", "50051"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if c.Telegram.RequestTimeout <= 0 {
		return fmt.Errorf("TELEGRAM_REQUEST_TIMEOUT must be positive")
	}

	if c.Telegram.RateLimit <= 0 {
		return fmt.Errorf("TELEGRAM_RATE_LIMIT must be positive")
	}

	if c.Shop.AllAccessPrice <= 0 {
		return fmt.Errorf("ALL_ACCESS_PRICE must be positive")
	}

	if c.S3.Enabled() && c.S3.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required when S3_ENDPOINT is set")
	}

	return nil
}

// IsAdmin reports whether userID is listed in ADMIN_IDS
func (c *TelegramConfig) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// splitList splits a comma separated list and drops empty entries
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIDs(value string) ([]int64, error) {
	var ids []int64
	for _, part := range splitList(value) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
