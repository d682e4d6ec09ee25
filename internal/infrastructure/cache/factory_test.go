package cache

import (
	"testing"

	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func configRedisFixture() config.RedisConfig {
	return config.RedisConfig{
		Host: "localhost",
		Port: 6379,
	}
}

func TestNewReportCacheFactory_Options(t *testing.T) {
	factory := NewReportCacheFactory(configRedisFixture())
	assert.True(t, factory.allowInMemoryFallback, "fallback defaults to allowed")
	assert.NotNil(t, factory.logger)

	factory = NewReportCacheFactory(configRedisFixture(),
		WithLogger(zap.NewNop()),
		WithInMemoryFallback(false),
	)
	assert.False(t, factory.allowInMemoryFallback)
}
