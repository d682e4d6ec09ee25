package cache

import (
	"fmt"

	"github.com/fintrack/backend/internal/application/report"
	"github.com/fintrack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ReportCacheFactory creates the dashboard read cache based on configuration
type ReportCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ReportCacheFactoryOption is a functional option for configuring the factory
type ReportCacheFactoryOption func(*ReportCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ReportCacheFactoryOption {
	return func(f *ReportCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) ReportCacheFactoryOption {
	return func(f *ReportCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewReportCacheFactory creates a new factory
func NewReportCacheFactory(cfg config.RedisConfig, opts ...ReportCacheFactoryOption) *ReportCacheFactory {
	f := &ReportCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed report cache
func (f *ReportCacheFactory) CreateRedisCache() (report.Cache, error) {
	cache, err := NewRedisReportCache(f.redisConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis report cache: %w", err)
	}
	return cache, nil
}

// CreateInMemoryCache creates an in-memory report cache. Entries are not
// shared across process instances, so other instances recompute their own
// dashboards.
func (f *ReportCacheFactory) CreateInMemoryCache() report.Cache {
	return NewInMemoryReportCache()
}

// CreateCache tries Redis first and falls back to in-memory when Redis is
// unavailable and fallback is allowed. A dashboard cache miss only costs a
// recompute, so the fallback is safe for single-instance deployments.
func (f *ReportCacheFactory) CreateCache() (report.Cache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis report cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for report cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory report cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
