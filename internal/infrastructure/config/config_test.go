package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fintrack-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "fintrack", cfg.Database.DBName)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 10, cfg.JWT.MaxRefreshCount)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5*time.Minute, cfg.Cache.DashboardTTL)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins, "no wildcard CORS fallback")
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("FINTRACK_DATABASE_DBNAME", "fintrack_test")
	t.Setenv("FINTRACK_APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fintrack_test", cfg.Database.DBName)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestProductionValidation(t *testing.T) {
	t.Setenv("FINTRACK_APP_ENV", "production")

	_, err := Load()
	require.Error(t, err, "production requires a JWT secret")

	t.Setenv("FINTRACK_JWT_SECRET", "test-secret-at-least-32-characters!!")
	t.Setenv("FINTRACK_DATABASE_PASSWORD", "secret")
	t.Setenv("FINTRACK_DATABASE_SSLMODE", "require")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
}

func TestPostgresDSN(t *testing.T) {
	d := DatabaseConfig{
		Driver:   "postgres",
		Host:     "db.internal",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "fintrack",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word", "password must be escaped")
}

func TestSQLiteDSN(t *testing.T) {
	d := DatabaseConfig{Driver: "sqlite", SQLitePath: "/tmp/test.db"}
	assert.Equal(t, "/tmp/test.db", d.DSN())
}
