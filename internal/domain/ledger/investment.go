package ledger

import (
	"time"

	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Investment is a debit entry: money moved out of the liquid balance into an
// instrument. ROI is an annual percentage used for projection summaries.
type Investment struct {
	shared.BaseEntity
	UserID     uuid.UUID
	Amount     decimal.Decimal
	Instrument string
	Type       string
	ROI        decimal.Decimal
	Details    string
	InvestedAt time.Time
	Month      string
	Week       int
}

// NewInvestment creates an investment entry with period keys derived from
// the business date.
func NewInvestment(userID uuid.UUID, amount decimal.Decimal, instrument, invType string, roi decimal.Decimal, details string, investedAt time.Time) (*Investment, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user id is required")
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if investedAt.IsZero() {
		return nil, shared.NewValidationError("investedAt is required")
	}
	if instrument == "" {
		return nil, shared.NewValidationError("instrument is required")
	}
	if roi.IsNegative() {
		return nil, shared.NewValidationError("roi cannot be negative")
	}

	return &Investment{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Amount:     amount,
		Instrument: instrument,
		Type:       invType,
		ROI:        roi,
		Details:    details,
		InvestedAt: investedAt,
		Month:      period.MonthKey(investedAt),
		Week:       period.WeekOfMonth(investedAt),
	}, nil
}

// Reschedule moves the entry to a new business date and recomputes its
// period keys.
func (v *Investment) Reschedule(investedAt time.Time) error {
	if investedAt.IsZero() {
		return shared.NewValidationError("investedAt is required")
	}
	v.InvestedAt = investedAt
	v.Month = period.MonthKey(investedAt)
	v.Week = period.WeekOfMonth(investedAt)
	v.UpdatedAt = time.Now()
	return nil
}

// SetAmount replaces the amount, returning the previous value for delta
// correction.
func (v *Investment) SetAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	old := v.Amount
	v.Amount = amount
	v.UpdatedAt = time.Now()
	return old, nil
}

// ExpectedProfit returns the simple projected profit amount*roi/100.
func (v *Investment) ExpectedProfit() decimal.Decimal {
	return v.Amount.Mul(v.ROI).Div(decimal.NewFromInt(100))
}
