package ledger

import (
	"time"

	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Income is a credit entry: money received by the user.
type Income struct {
	shared.BaseEntity
	UserID     uuid.UUID
	Amount     decimal.Decimal
	Source     string
	Tag        string
	CreditedAt time.Time
	Month      string
	Week       int
}

// NewIncome creates an income entry with period keys derived from the
// business date.
func NewIncome(userID uuid.UUID, amount decimal.Decimal, source, tag string, creditedAt time.Time) (*Income, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user id is required")
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if creditedAt.IsZero() {
		return nil, shared.NewValidationError("creditedAt is required")
	}
	if source == "" {
		source = "Other"
	}

	return &Income{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Amount:     amount,
		Source:     source,
		Tag:        tag,
		CreditedAt: creditedAt,
		Month:      period.MonthKey(creditedAt),
		Week:       period.WeekOfMonth(creditedAt),
	}, nil
}

// Reschedule moves the entry to a new business date and recomputes its
// period keys.
func (i *Income) Reschedule(creditedAt time.Time) error {
	if creditedAt.IsZero() {
		return shared.NewValidationError("creditedAt is required")
	}
	i.CreditedAt = creditedAt
	i.Month = period.MonthKey(creditedAt)
	i.Week = period.WeekOfMonth(creditedAt)
	i.UpdatedAt = time.Now()
	return nil
}

// SetAmount replaces the amount, returning the previous value for delta
// correction.
func (i *Income) SetAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	old := i.Amount
	i.Amount = amount
	i.UpdatedAt = time.Now()
	return old, nil
}
