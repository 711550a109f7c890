package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alokchauhan110/Premium-Plan/config"
)

func TestPing(t *testing.T) {
	mr := miniredis.RunT(t)

	client := NewClient(&config.RedisConfig{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, Ping(context.Background(), client))
}

func TestPing_ServerDown(t *testing.T) {
	// nothing listens on port 1
	client := NewClient(&config.RedisConfig{Addr: "127.0.0.1:1"})
	defer client.Close()

	err := Ping(context.Background(), client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping redis")
}
