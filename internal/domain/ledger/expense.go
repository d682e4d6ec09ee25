package ledger

import (
	"time"

	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a debit entry: money spent by the user. Tag doubles as the
// category used by spending limits.
type Expense struct {
	shared.BaseEntity
	UserID  uuid.UUID
	Amount  decimal.Decimal
	Tag     string
	SpentAt time.Time
	Month   string
	Week    int
}

// NewExpense creates an expense entry with period keys derived from the
// business date. An empty tag falls back to "General".
func NewExpense(userID uuid.UUID, amount decimal.Decimal, tag string, spentAt time.Time) (*Expense, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user id is required")
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if spentAt.IsZero() {
		return nil, shared.NewValidationError("spentAt is required")
	}
	if tag == "" {
		tag = "General"
	}

	return &Expense{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Amount:     amount,
		Tag:        tag,
		SpentAt:    spentAt,
		Month:      period.MonthKey(spentAt),
		Week:       period.WeekOfMonth(spentAt),
	}, nil
}

// Reschedule moves the entry to a new business date and recomputes its
// period keys.
func (e *Expense) Reschedule(spentAt time.Time) error {
	if spentAt.IsZero() {
		return shared.NewValidationError("spentAt is required")
	}
	e.SpentAt = spentAt
	e.Month = period.MonthKey(spentAt)
	e.Week = period.WeekOfMonth(spentAt)
	e.UpdatedAt = time.Now()
	return nil
}

// SetAmount replaces the amount, returning the previous value for delta
// correction.
func (e *Expense) SetAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	old := e.Amount
	e.Amount = amount
	e.UpdatedAt = time.Now()
	return old, nil
}

// MonthSummary aggregates a user's expenses for one month bucket.
type MonthSummary struct {
	Month   string          `json:"month"`
	Total   decimal.Decimal `json:"total"`
	Count   int64           `json:"count"`
	Average decimal.Decimal `json:"avg"`
}

// TagTotal is a per-category aggregate used by dashboards and limit diffs.
type TagTotal struct {
	Tag   string          `json:"tag"`
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}
