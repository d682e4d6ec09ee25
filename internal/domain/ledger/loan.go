package ledger

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loan is a formal liability with a fixed original principal and a
// decreasing outstanding amount. Creating a loan does not move the balance;
// only payments against it do.
type Loan struct {
	shared.BaseEntity
	UserID       uuid.UUID
	Amount       decimal.Decimal
	Outstanding  decimal.Decimal
	TenureMonths int
	InterestRate decimal.Decimal
	StartDate    time.Time
	Description  string
}

// NewLoan creates a loan with outstanding equal to the principal.
func NewLoan(userID uuid.UUID, amount decimal.Decimal, tenureMonths int, interestRate decimal.Decimal, startDate time.Time, description string) (*Loan, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user id is required")
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if tenureMonths <= 0 {
		return nil, shared.NewValidationError("tenureMonths must be positive")
	}
	if startDate.IsZero() {
		return nil, shared.NewValidationError("startDate is required")
	}
	if interestRate.IsNegative() {
		return nil, shared.NewValidationError("interestRate cannot be negative")
	}

	return &Loan{
		BaseEntity:   shared.NewBaseEntity(),
		UserID:       userID,
		Amount:       amount,
		Outstanding:  amount,
		TenureMonths: tenureMonths,
		InterestRate: interestRate,
		StartDate:    startDate,
		Description:  description,
	}, nil
}

// RecordPayment reduces the outstanding principal. Payments that would push
// outstanding below zero are rejected and leave the loan untouched.
func (l *Loan) RecordPayment(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(l.Outstanding) {
		return shared.NewConsistencyError("payment %s exceeds outstanding amount %s", amount, l.Outstanding)
	}
	l.Outstanding = l.Outstanding.Sub(amount)
	l.UpdatedAt = time.Now()
	return nil
}

// AdjustPayment shifts the outstanding principal by the signed difference of
// an edited payment. A positive diff (payment grew) decreases outstanding
// further; the result must stay within [0, Amount].
func (l *Loan) AdjustPayment(diff decimal.Decimal) error {
	next := l.Outstanding.Sub(diff)
	if next.IsNegative() {
		return shared.NewConsistencyError("adjusted payment exceeds outstanding amount %s", l.Outstanding)
	}
	if next.GreaterThan(l.Amount) {
		return shared.NewConsistencyError("adjustment would exceed original principal %s", l.Amount)
	}
	l.Outstanding = next
	l.UpdatedAt = time.Now()
	return nil
}

// RestorePayment adds a deleted payment's amount back to outstanding.
func (l *Loan) RestorePayment(amount decimal.Decimal) error {
	next := l.Outstanding.Add(amount)
	if next.GreaterThan(l.Amount) {
		return shared.NewConsistencyError("restore would exceed original principal %s", l.Amount)
	}
	l.Outstanding = next
	l.UpdatedAt = time.Now()
	return nil
}

// LoanPayment is a debit entry recording one payment against a loan.
type LoanPayment struct {
	shared.BaseEntity
	LoanID uuid.UUID
	Amount decimal.Decimal
	PaidAt time.Time
}

// NewLoanPayment creates a payment record for a loan.
func NewLoanPayment(loanID uuid.UUID, amount decimal.Decimal, paidAt time.Time) (*LoanPayment, error) {
	if loanID == uuid.Nil {
		return nil, shared.NewValidationError("loan id is required")
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	return &LoanPayment{
		BaseEntity: shared.NewBaseEntity(),
		LoanID:     loanID,
		Amount:     amount,
		PaidAt:     paidAt,
	}, nil
}
