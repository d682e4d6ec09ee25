package limits

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimit_PeriodFieldsPerScope(t *testing.T) {
	// 2025-09-15 12:00 IST falls in week 3 of Sep-2025.
	at := time.Date(2025, time.September, 15, 6, 30, 0, 0, time.UTC)

	daily, err := NewLimit(uuid.New(), ScopeDaily, decimal.NewFromInt(500), "Food", at)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC), daily.Day)
	assert.Zero(t, daily.Month)
	assert.Zero(t, daily.Week)

	weekly, err := NewLimit(uuid.New(), ScopeWeekly, decimal.NewFromInt(2000), "", at)
	require.NoError(t, err)
	assert.Equal(t, 9, weekly.Month)
	assert.Equal(t, 2025, weekly.Year)
	assert.Equal(t, 3, weekly.Week)
	assert.True(t, weekly.Day.IsZero())

	monthly, err := NewLimit(uuid.New(), ScopeMonthly, decimal.NewFromInt(10000), "", at)
	require.NoError(t, err)
	assert.Equal(t, 9, monthly.Month)
	assert.Equal(t, 2025, monthly.Year)
	assert.Zero(t, monthly.Week)
}

func TestNewLimit_Validation(t *testing.T) {
	_, err := NewLimit(uuid.Nil, ScopeDaily, decimal.NewFromInt(500), "", time.Now())
	assert.Error(t, err)

	_, err = NewLimit(uuid.New(), Scope("HOURLY"), decimal.NewFromInt(500), "", time.Now())
	assert.Error(t, err)

	_, err = NewLimit(uuid.New(), ScopeDaily, decimal.Zero, "", time.Now())
	assert.Error(t, err)
}

func TestLimitCovers(t *testing.T) {
	at := time.Date(2025, time.September, 15, 6, 30, 0, 0, time.UTC)

	daily, err := NewLimit(uuid.New(), ScopeDaily, decimal.NewFromInt(500), "", at)
	require.NoError(t, err)
	assert.True(t, daily.Covers(at))
	assert.True(t, daily.Covers(at.Add(10*time.Hour)), "same IST day")
	assert.False(t, daily.Covers(at.AddDate(0, 0, 1)))

	weekly, err := NewLimit(uuid.New(), ScopeWeekly, decimal.NewFromInt(2000), "", at)
	require.NoError(t, err)
	assert.True(t, weekly.Covers(at.AddDate(0, 0, 5)), "Sep 20 is still week 3")
	assert.False(t, weekly.Covers(at.AddDate(0, 0, 7)), "Sep 22 rolls into week 4")

	monthly, err := NewLimit(uuid.New(), ScopeMonthly, decimal.NewFromInt(10000), "", at)
	require.NoError(t, err)
	assert.True(t, monthly.Covers(at.AddDate(0, 0, 14)))
	assert.False(t, monthly.Covers(at.AddDate(0, 1, 0)))
}

func TestLimitAppliesTo(t *testing.T) {
	at := time.Now()

	categoryLimit, err := NewLimit(uuid.New(), ScopeMonthly, decimal.NewFromInt(1000), "Food", at)
	require.NoError(t, err)
	assert.True(t, categoryLimit.AppliesTo("Food"))
	assert.False(t, categoryLimit.AppliesTo("Travel"))

	allLimit, err := NewLimit(uuid.New(), ScopeMonthly, decimal.NewFromInt(1000), "", at)
	require.NoError(t, err)
	assert.True(t, allLimit.AppliesTo("Food"))
	assert.True(t, allLimit.AppliesTo(""))
}

func TestEvaluate(t *testing.T) {
	limit, err := NewLimit(uuid.New(), ScopeDaily, decimal.NewFromInt(500), "", time.Now())
	require.NoError(t, err)

	under := Evaluate(limit, decimal.NewFromInt(300), decimal.NewFromInt(200))
	assert.False(t, under.Exceeded, "projection equal to the cap is allowed")
	assert.Empty(t, under.Message())

	over := Evaluate(limit, decimal.NewFromInt(300), decimal.NewFromInt(201))
	assert.True(t, over.Exceeded)
	assert.Equal(t, "Daily limit exceeded!", over.Message())
	assert.True(t, over.Projected.Equal(decimal.NewFromInt(501)))
}
