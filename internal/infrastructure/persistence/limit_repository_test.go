package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/fintrack/backend/internal/domain/limits"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimit(t *testing.T, userID uuid.UUID, scope limits.Scope, category string) *limits.Limit {
	t.Helper()
	limit, err := limits.NewLimit(userID, scope, decimal.NewFromInt(5000), category, testInstant)
	require.NoError(t, err)
	return limit
}

func TestGormLimitRepository_CreateConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLimitRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Create(ctx, newLimit(t, userID, limits.ScopeMonthly, "Food")))

	t.Run("duplicate period and category conflicts", func(t *testing.T) {
		err := repo.Create(ctx, newLimit(t, userID, limits.ScopeMonthly, "Food"))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeConflict, domainErr.Code)
	})

	t.Run("same period different category is allowed", func(t *testing.T) {
		assert.NoError(t, repo.Create(ctx, newLimit(t, userID, limits.ScopeMonthly, "Travel")))
	})

	t.Run("same period different scope is allowed", func(t *testing.T) {
		assert.NoError(t, repo.Create(ctx, newLimit(t, userID, limits.ScopeWeekly, "Food")))
	})

	t.Run("same period different user is allowed", func(t *testing.T) {
		assert.NoError(t, repo.Create(ctx, newLimit(t, uuid.New(), limits.ScopeMonthly, "Food")))
	})
}

func TestGormLimitRepository_FindActiveAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLimitRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	daily := newLimit(t, userID, limits.ScopeDaily, "Food")
	weekly := newLimit(t, userID, limits.ScopeWeekly, "")
	monthly := newLimit(t, userID, limits.ScopeMonthly, "")
	require.NoError(t, repo.Create(ctx, daily))
	require.NoError(t, repo.Create(ctx, weekly))
	require.NoError(t, repo.Create(ctx, monthly))

	// A limit from last month must never match the current period.
	stale, err := limits.NewLimit(userID, limits.ScopeMonthly, decimal.NewFromInt(9000), "Rent", testInstant.AddDate(0, -1, 0))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, stale))

	t.Run("same instant matches all three scopes", func(t *testing.T) {
		active, err := repo.FindActiveAt(ctx, userID, testInstant)
		require.NoError(t, err)
		require.Len(t, active, 3)
	})

	t.Run("next day drops the daily limit", func(t *testing.T) {
		active, err := repo.FindActiveAt(ctx, userID, testInstant.AddDate(0, 0, 1))
		require.NoError(t, err)

		scopes := map[limits.Scope]bool{}
		for _, l := range active {
			scopes[l.Scope] = true
		}
		assert.False(t, scopes[limits.ScopeDaily])
		assert.True(t, scopes[limits.ScopeWeekly])
		assert.True(t, scopes[limits.ScopeMonthly])
	})

	t.Run("other users see nothing", func(t *testing.T) {
		active, err := repo.FindActiveAt(ctx, uuid.New(), testInstant)
		require.NoError(t, err)
		assert.Empty(t, active)
	})
}

func TestGormLimitRepository_SaveAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLimitRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	limit := newLimit(t, userID, limits.ScopeMonthly, "Food")
	require.NoError(t, repo.Create(ctx, limit))

	require.NoError(t, limit.SetAmount(decimal.NewFromInt(8000)))
	require.NoError(t, repo.Save(ctx, limit))

	found, err := repo.FindByIDForUser(ctx, userID, limit.ID)
	require.NoError(t, err)
	assert.True(t, found.Amount.Equal(decimal.NewFromInt(8000)))

	require.NoError(t, repo.Delete(ctx, limit.ID))
	_, err = repo.FindByIDForUser(ctx, userID, limit.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
