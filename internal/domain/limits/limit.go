package limits

import (
	"time"

	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scope is the time window a spending limit covers.
type Scope string

const (
	ScopeDaily   Scope = "DAILY"
	ScopeWeekly  Scope = "WEEKLY"
	ScopeMonthly Scope = "MONTHLY"
)

// IsValid returns true for known scopes
func (s Scope) IsValid() bool {
	switch s {
	case ScopeDaily, ScopeWeekly, ScopeMonthly:
		return true
	}
	return false
}

// Limit caps a user's spend for one period, either for a single expense
// category or for all spend when Category is empty. Only the period fields
// relevant to the scope are populated: Day for daily, Month/Year/Week for
// weekly, Month/Year for monthly. A user may hold at most one limit per
// (scope, period, category) combination.
type Limit struct {
	shared.BaseEntity
	UserID   uuid.UUID
	Scope    Scope
	Amount   decimal.Decimal
	Category string
	Month    int
	Year     int
	Week     int
	Day      time.Time
}

// NewLimit creates a limit with the period fields derived from at according
// to the scope.
func NewLimit(userID uuid.UUID, scope Scope, amount decimal.Decimal, category string, at time.Time) (*Limit, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user id is required")
	}
	if !scope.IsValid() {
		return nil, shared.NewValidationError("unknown limit scope %q", scope)
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("limit amount must be positive")
	}
	if at.IsZero() {
		at = time.Now()
	}

	l := &Limit{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Scope:      scope,
		Amount:     amount,
		Category:   category,
	}

	month, year := period.MonthNumber(at)
	switch scope {
	case ScopeDaily:
		l.Day = period.DayKey(at)
	case ScopeWeekly:
		l.Month = month
		l.Year = year
		l.Week = period.WeekOfMonth(at)
	case ScopeMonthly:
		l.Month = month
		l.Year = year
	}
	return l, nil
}

// SetAmount replaces the capped amount.
func (l *Limit) SetAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("limit amount must be positive")
	}
	l.Amount = amount
	l.UpdatedAt = time.Now()
	return nil
}

// Covers reports whether the limit's period contains the instant t.
func (l *Limit) Covers(t time.Time) bool {
	month, year := period.MonthNumber(t)
	switch l.Scope {
	case ScopeDaily:
		return l.Day.Equal(period.DayKey(t))
	case ScopeWeekly:
		return l.Month == month && l.Year == year && l.Week == period.WeekOfMonth(t)
	case ScopeMonthly:
		return l.Month == month && l.Year == year
	}
	return false
}

// AppliesTo reports whether the limit constrains spend tagged with category.
// A limit with an empty category constrains all spend.
func (l *Limit) AppliesTo(category string) bool {
	return l.Category == "" || l.Category == category
}
