package ledger

import (
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitShare links one participant to a shared expense. The participant owes
// AmountOwed; PaidByUserID identifies who actually paid the bill. When the
// payer and participant differ, applying the share debits the participant
// and credits the payer by the same amount, so a full split always nets to
// zero against the money that changed hands.
type SplitShare struct {
	shared.BaseEntity
	ExpenseID    uuid.UUID
	UserID       uuid.UUID
	AmountOwed   decimal.Decimal
	AmountPaid   decimal.Decimal
	PaidByUserID uuid.UUID
}

// NewSplitShare creates a participant share of a split expense.
func NewSplitShare(expenseID, userID uuid.UUID, amountOwed, amountPaid decimal.Decimal, paidByUserID uuid.UUID) (*SplitShare, error) {
	if expenseID == uuid.Nil {
		return nil, shared.NewValidationError("expense id is required")
	}
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("participant user id is required")
	}
	if paidByUserID == uuid.Nil {
		return nil, shared.NewValidationError("paidByUserId is required")
	}
	if err := ValidateAmount(amountOwed); err != nil {
		return nil, err
	}
	if amountPaid.IsNegative() {
		return nil, shared.NewValidationError("amountPaid cannot be negative")
	}
	return &SplitShare{
		BaseEntity:   shared.NewBaseEntity(),
		ExpenseID:    expenseID,
		UserID:       userID,
		AmountOwed:   amountOwed,
		AmountPaid:   amountPaid,
		PaidByUserID: paidByUserID,
	}, nil
}

// SettledByParticipant reports whether this share needs no balance movement
// because the participant paid their own part.
func (s *SplitShare) SettledByParticipant() bool {
	return s.PaidByUserID == s.UserID
}
