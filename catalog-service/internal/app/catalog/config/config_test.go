package config

import (
	"testing"
	"time"

	"catalogapi/catalog-service/internal/app/catalog/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"REDIS_HOST", "KAFKA_BROKERS", "JWT_SECRET", "CATALOG_QUERY_MODE", "CATEGORY_CACHE_TTL", "REDIS_DB"} {
		t.Setenv(key, "")
	}

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8081", cfg.Server.Address())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Empty(t, cfg.JWT.Secret)
	assert.Equal(t, entity.QueryModeMemory, cfg.Catalog.QueryMode)
	assert.Equal(t, "@every 1m", cfg.Catalog.StatsSchedule)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "product_events", cfg.Kafka.Topic)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CATEGORY_CACHE_TTL", "15m")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("CATALOG_QUERY_MODE", "store")
	t.Setenv("DB_HOST", "db")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address())
	assert.Equal(t, "redis:6379", cfg.Redis.Address())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 15*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, entity.QueryModeStore, cfg.Catalog.QueryMode)
	assert.Contains(t, cfg.Database.DSN(), "host=db port=5432")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"REDIS_DB", "zero"},
		{"CATEGORY_CACHE_TTL", "soon"},
		{"CATALOG_QUERY_MODE", "cache"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
