package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-09-15 12:00 IST, week 3 of Sep-2025.
var testInstant = time.Date(2025, time.September, 15, 6, 30, 0, 0, time.UTC)

func seedExpense(t *testing.T, repo *GormExpenseRepository, userID uuid.UUID, amount int64, tag string, at time.Time) *ledger.Expense {
	t.Helper()
	expense, err := ledger.NewExpense(userID, decimal.NewFromInt(amount), tag, at)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), expense))
	return expense
}

func TestGormExpenseRepository_Sums(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	otherUser := uuid.New()

	seedExpense(t, repo, userID, 400, "Food", testInstant)
	seedExpense(t, repo, userID, 300, "Travel", testInstant)
	seedExpense(t, repo, userID, 900, "Food", testInstant.AddDate(0, 0, -1))
	seedExpense(t, repo, userID, 120, "Food", testInstant.AddDate(0, 0, -10)) // week 1
	seedExpense(t, repo, userID, 80, "Food", testInstant.AddDate(0, -1, 0))   // Aug-2025
	seedExpense(t, repo, otherUser, 5000, "Food", testInstant)

	t.Run("daily sum is scoped to tag, day, and user", func(t *testing.T) {
		total, err := repo.SumForTagInDay(ctx, userID, "Food", period.DayKey(testInstant))
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(400)), "got %s", total)
	})

	t.Run("empty tag sums all spend for the day", func(t *testing.T) {
		total, err := repo.SumForTagInDay(ctx, userID, "", period.DayKey(testInstant))
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(700)), "got %s", total)
	})

	t.Run("weekly sum uses the month-week bucket", func(t *testing.T) {
		// Sep 14 lands in week 2, so yesterday's 900 is excluded.
		total, err := repo.SumForTagInWeek(ctx, userID, "Food", "Sep-2025", 3)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(400)), "got %s", total)
	})

	t.Run("monthly sum spans all weeks of the month", func(t *testing.T) {
		total, err := repo.SumForTagInMonth(ctx, userID, "Food", "Sep-2025")
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(1420)), "got %s", total)
	})

	t.Run("range sum honors the window", func(t *testing.T) {
		total, err := repo.SumInRangeForUser(ctx, userID, testInstant.Add(-time.Hour), testInstant.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(700)), "got %s", total)
	})

	t.Run("empty result sums to zero", func(t *testing.T) {
		total, err := repo.SumForTagInMonth(ctx, uuid.New(), "", "Sep-2025")
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestGormExpenseRepository_Aggregates(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	seedExpense(t, repo, userID, 400, "Food", testInstant)
	seedExpense(t, repo, userID, 200, "Food", testInstant)
	seedExpense(t, repo, userID, 300, "Travel", testInstant)

	t.Run("month summary", func(t *testing.T) {
		summary, err := repo.MonthSummaryForUser(ctx, userID, "Sep-2025")
		require.NoError(t, err)
		assert.Equal(t, int64(3), summary.Count)
		assert.True(t, summary.Total.Equal(decimal.NewFromInt(900)))
		assert.True(t, summary.Average.Equal(decimal.NewFromInt(300)))
	})

	t.Run("month summary of empty month", func(t *testing.T) {
		summary, err := repo.MonthSummaryForUser(ctx, userID, "Jan-2020")
		require.NoError(t, err)
		assert.Equal(t, int64(0), summary.Count)
		assert.True(t, summary.Total.IsZero())
		assert.True(t, summary.Average.IsZero())
	})

	t.Run("totals by tag", func(t *testing.T) {
		totals, err := repo.TotalsByTagForUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, totals, 2)

		byTag := map[string]decimal.Decimal{}
		for _, row := range totals {
			byTag[row.Tag] = row.Total
		}
		assert.True(t, byTag["Food"].Equal(decimal.NewFromInt(600)))
		assert.True(t, byTag["Travel"].Equal(decimal.NewFromInt(300)))
	})
}

func TestGormExpenseRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	expense := seedExpense(t, repo, userID, 400, "Food", testInstant)

	t.Run("ownership is enforced on lookup", func(t *testing.T) {
		_, err := repo.FindByIDForUser(ctx, uuid.New(), expense.ID)
		assert.Error(t, err)
	})

	t.Run("save persists reschedule and period keys", func(t *testing.T) {
		require.NoError(t, expense.Reschedule(testInstant.AddDate(0, -1, 0)))
		require.NoError(t, repo.Save(ctx, expense))

		found, err := repo.FindByIDForUser(ctx, userID, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, "Aug-2025", found.Month)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, expense.ID))
		_, err := repo.FindByIDForUser(ctx, userID, expense.ID)
		assert.Error(t, err)
	})
}
