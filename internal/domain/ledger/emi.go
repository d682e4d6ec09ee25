package ledger

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EMI is an equated-installment commitment. The full TotalAmount is reserved
// (debited) when the EMI is created; each accepted installment then
// increments AmountPaid and decrements RemainingInstallments exactly once.
type EMI struct {
	shared.BaseEntity
	UserID                uuid.UUID
	Title                 string
	TotalAmount           decimal.Decimal
	NumInstallments       int
	EMIAmount             decimal.Decimal
	AmountPaid            decimal.Decimal
	RemainingInstallments int
	StartDate             time.Time
	LinkedLoanID          *uuid.UUID
}

// NewEMI creates an EMI commitment with the per-installment amount derived
// from the total.
func NewEMI(userID uuid.UUID, title string, totalAmount decimal.Decimal, numInstallments int, startDate time.Time, linkedLoanID *uuid.UUID) (*EMI, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user id is required")
	}
	if title == "" {
		return nil, shared.NewValidationError("title is required")
	}
	if err := ValidateAmount(totalAmount); err != nil {
		return nil, err
	}
	if numInstallments <= 0 {
		return nil, shared.NewValidationError("numInstallments must be positive")
	}
	if startDate.IsZero() {
		return nil, shared.NewValidationError("startDate is required")
	}

	return &EMI{
		BaseEntity:            shared.NewBaseEntity(),
		UserID:                userID,
		Title:                 title,
		TotalAmount:           totalAmount,
		NumInstallments:       numInstallments,
		EMIAmount:             totalAmount.Div(decimal.NewFromInt(int64(numInstallments))),
		AmountPaid:            decimal.Zero,
		RemainingInstallments: numInstallments,
		StartDate:             startDate,
		LinkedLoanID:          linkedLoanID,
	}, nil
}

// RecordInstallment accepts one installment payment. RemainingInstallments
// decrements exactly once per accepted payment and never goes below zero.
func (e *EMI) RecordInstallment(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if e.RemainingInstallments <= 0 {
		return shared.NewConsistencyError("all installments already paid")
	}
	e.AmountPaid = e.AmountPaid.Add(amount)
	e.RemainingInstallments--
	e.UpdatedAt = time.Now()
	return nil
}

// RefundableAmount is the unpaid remainder released back to the balance
// when the EMI is deleted.
func (e *EMI) RefundableAmount() decimal.Decimal {
	remaining := e.TotalAmount.Sub(e.AmountPaid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// EMIDebitEvent identifies the EMI lifecycle points that touch the balance.
type EMIDebitEvent int

const (
	// EMIDebitReservation fires once when the EMI is created.
	EMIDebitReservation EMIDebitEvent = iota
	// EMIDebitInstallment fires for each accepted installment payment.
	EMIDebitInstallment
	// EMIDebitRefund fires when the EMI is deleted.
	EMIDebitRefund
)

// EMIDebitPolicy maps an EMI lifecycle event to the signed balance delta it
// produces. The observed behavior both reserves the full total at creation
// AND debits each installment, which double-counts installments against the
// liquid balance. The policy function isolates that choice so it can be
// corrected without touching the ledger integration.
//
// TODO: revisit DefaultEMIDebitPolicy once product decides whether
// installment payments should be pure bookkeeping transfers.
type EMIDebitPolicy func(event EMIDebitEvent, emi *EMI, amount decimal.Decimal) decimal.Decimal

// DefaultEMIDebitPolicy reproduces the observed reservation-plus-installment
// double debit.
func DefaultEMIDebitPolicy(event EMIDebitEvent, emi *EMI, amount decimal.Decimal) decimal.Decimal {
	switch event {
	case EMIDebitReservation:
		return KindEMIReservation.Delta(emi.TotalAmount)
	case EMIDebitInstallment:
		return KindEMIInstallment.Delta(amount)
	case EMIDebitRefund:
		return emi.RefundableAmount()
	}
	return decimal.Zero
}
