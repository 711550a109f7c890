package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
	t.Setenv("ADMIN_IDS", "111, 222,,")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []int64{111, 222}, cfg.Telegram.AdminIDs)
	assert.Equal(t, 10*time.Second, cfg.Telegram.RequestTimeout)
	assert.Equal(t, "Server Premium", cfg.Shop.AllAccessName)
	assert.Equal(t, 599.0, cfg.Shop.AllAccessPrice)
	assert.False(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, "shop.admin_notifications", cfg.Kafka.TopicAdminNotifications)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("TELEGRAM_REQUEST_TIMEOUT", "3s")
	t.Setenv("ALL_ACCESS_PRICE", "799.5")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 3*time.Second, cfg.Telegram.RequestTimeout)
	assert.Equal(t, 799.5, cfg.Shop.AllAccessPrice)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestLoad_InvalidAdminID(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
	t.Setenv("ADMIN_IDS", "123,abc")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abc")
}

func TestTelegramConfig_IsAdmin(t *testing.T) {
	cfg := &TelegramConfig{AdminIDs: []int64{10, 20}}

	assert.True(t, cfg.IsAdmin(20))
	assert.False(t, cfg.IsAdmin(30))
	assert.False(t, (&TelegramConfig{}).IsAdmin(10))
}
