package persistence

import (
	"path/filepath"
	"testing"

	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database with the full schema migrated.
// The busy timeout and immediate transactions keep concurrent writer tests
// from failing spuriously on SQLITE_BUSY.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fintrack_test.db")
	cfg := &config.DatabaseConfig{
		Driver:          "sqlite",
		SQLitePath:      "file:" + path + "?_busy_timeout=5000&_txlock=immediate",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 5,
		ConnMaxIdleTime: 5,
	}

	db, err := NewDatabaseWithLogger(cfg, gormlogger.Default.LogMode(gormlogger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.DB.AutoMigrate(
		&models.UserModel{},
		&models.BalanceSnapshotModel{},
		&models.IncomeModel{},
		&models.ExpenseModel{},
		&models.InvestmentModel{},
		&models.LoanModel{},
		&models.LoanPaymentModel{},
		&models.SplitShareModel{},
		&models.EMIModel{},
		&models.MoneyLentModel{},
		&models.MoneyBorrowedModel{},
		&models.SpendingLimitModel{},
	))

	return db.DB
}
