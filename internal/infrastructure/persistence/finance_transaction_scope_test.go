package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/application/finance"
	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, balance int64) *ledger.User {
	t.Helper()
	user, err := ledger.NewUser("Asha", uuid.NewString()+"@example.com", "hash", decimal.NewFromInt(balance))
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), user))
	return user
}

func TestGormTransactionScope_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()
	user := seedUser(t, db, 1000)

	boom := errors.New("boom")
	err := scope.Execute(ctx, func(repos finance.TransactionalRepositories) error {
		locked, err := repos.UserRepo().FindByIDForUpdate(ctx, user.ID)
		if err != nil {
			return err
		}
		locked.ApplyDelta(decimal.NewFromInt(-400))
		if err := repos.UserRepo().Save(ctx, locked); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	found, err := NewGormUserRepository(db).FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, found.Balance.Equal(decimal.NewFromInt(1000)), "write inside the failed transaction must not stick")
}

func TestGormTransactionScope_CommitsAtomically(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	balanceLedger := finance.NewBalanceLedger(func() time.Time { return testInstant })

	ctx := context.Background()
	user := seedUser(t, db, 1000)

	err := scope.Execute(ctx, func(repos finance.TransactionalRepositories) error {
		_, err := balanceLedger.Apply(ctx, repos, user.ID, decimal.NewFromInt(250))
		return err
	})
	require.NoError(t, err)

	found, err := NewGormUserRepository(db).FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, found.Balance.Equal(decimal.NewFromInt(1250)))

	snapshot, err := NewGormBalanceSnapshotRepository(db).FindForPeriod(ctx, user.ID, "Sep-2025", 3)
	require.NoError(t, err)
	assert.True(t, snapshot.Current.Equal(decimal.NewFromInt(1250)))
}

// TestGormTransactionScope_ConcurrentDeltas drives interleaved credits and
// debits through the balance ledger and checks the final balance matches the
// arithmetic sum, proving no delta was lost to a race.
func TestGormTransactionScope_ConcurrentDeltas(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	balanceLedger := finance.NewBalanceLedger(nil)

	ctx := context.Background()
	user := seedUser(t, db, 1000)

	const rounds = 10
	var wg sync.WaitGroup
	errs := make(chan error, rounds*2)

	apply := func(delta int64) {
		defer wg.Done()
		errs <- scope.Execute(ctx, func(repos finance.TransactionalRepositories) error {
			_, err := balanceLedger.Apply(ctx, repos, user.ID, decimal.NewFromInt(delta))
			return err
		})
	}

	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go apply(50)
		go apply(-30)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	found, err := NewGormUserRepository(db).FindByID(ctx, user.ID)
	require.NoError(t, err)
	// 1000 + 10*50 - 10*30 = 1200
	assert.True(t, found.Balance.Equal(decimal.NewFromInt(1200)), "got %s", found.Balance)
}
