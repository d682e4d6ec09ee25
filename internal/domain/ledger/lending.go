package ledger

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoneyLent is an informal lending record: the user gave money to a named
// counterparty. It debits the lender's balance on creation.
type MoneyLent struct {
	shared.BaseEntity
	LenderID uuid.UUID
	Borrower string
	Amount   decimal.Decimal
	Purpose  string
	DueDate  *time.Time
}

// NewMoneyLent creates a money-lent record.
func NewMoneyLent(lenderID uuid.UUID, borrower string, amount decimal.Decimal, purpose string, dueDate *time.Time) (*MoneyLent, error) {
	if lenderID == uuid.Nil {
		return nil, shared.NewValidationError("lender id is required")
	}
	if borrower == "" {
		return nil, shared.NewValidationError("borrower is required")
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	return &MoneyLent{
		BaseEntity: shared.NewBaseEntity(),
		LenderID:   lenderID,
		Borrower:   borrower,
		Amount:     amount,
		Purpose:    purpose,
		DueDate:    dueDate,
	}, nil
}

// SetAmount replaces the amount, returning the previous value for delta
// correction.
func (m *MoneyLent) SetAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	old := m.Amount
	m.Amount = amount
	m.UpdatedAt = time.Now()
	return old, nil
}

// MoneyBorrowed is an informal borrowing record: the user received money
// from a named counterparty. It credits the borrower's balance on creation.
type MoneyBorrowed struct {
	shared.BaseEntity
	BorrowerID uuid.UUID
	Lender     string
	Amount     decimal.Decimal
	Purpose    string
	DueDate    *time.Time
}

// NewMoneyBorrowed creates a money-borrowed record.
func NewMoneyBorrowed(borrowerID uuid.UUID, lender string, amount decimal.Decimal, purpose string, dueDate *time.Time) (*MoneyBorrowed, error) {
	if borrowerID == uuid.Nil {
		return nil, shared.NewValidationError("borrower id is required")
	}
	if lender == "" {
		return nil, shared.NewValidationError("lender is required")
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	return &MoneyBorrowed{
		BaseEntity: shared.NewBaseEntity(),
		BorrowerID: borrowerID,
		Lender:     lender,
		Amount:     amount,
		Purpose:    purpose,
		DueDate:    dueDate,
	}, nil
}

// SetAmount replaces the amount, returning the previous value for delta
// correction.
func (m *MoneyBorrowed) SetAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	old := m.Amount
	m.Amount = amount
	m.UpdatedAt = time.Now()
	return old, nil
}
