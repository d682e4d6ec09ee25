package ledger

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeRepository persists income entries
type IncomeRepository interface {
	Create(ctx context.Context, income *Income) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Income, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Income, error)
	FindByMonthForUser(ctx context.Context, userID uuid.UUID, month string) ([]Income, error)
	Save(ctx context.Context, income *Income) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	SumInRangeForUser(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
}

// ExpenseRepository persists expense entries and serves the aggregate sums
// used by the limit evaluator and dashboards
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Expense, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Expense, error)
	FindByMonthForUser(ctx context.Context, userID uuid.UUID, month string) ([]Expense, error)
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	SumInRangeForUser(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
	// SumForTagInDay sums a user's spend for one tag on one calendar day key.
	// An empty tag sums across all tags.
	SumForTagInDay(ctx context.Context, userID uuid.UUID, tag string, day time.Time) (decimal.Decimal, error)
	// SumForTagInWeek sums a user's spend for one tag in one (month, week) bucket.
	SumForTagInWeek(ctx context.Context, userID uuid.UUID, tag string, month string, week int) (decimal.Decimal, error)
	// SumForTagInMonth sums a user's spend for one tag in one month bucket.
	SumForTagInMonth(ctx context.Context, userID uuid.UUID, tag string, month string) (decimal.Decimal, error)
	MonthSummaryForUser(ctx context.Context, userID uuid.UUID, month string) (*MonthSummary, error)
	TotalsByTagForUser(ctx context.Context, userID uuid.UUID) ([]TagTotal, error)
}

// InvestmentRepository persists investment entries
type InvestmentRepository interface {
	Create(ctx context.Context, investment *Investment) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Investment, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Investment, error)
	FindByMonthForUser(ctx context.Context, userID uuid.UUID, month string) ([]Investment, error)
	Save(ctx context.Context, investment *Investment) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	SumInRangeForUser(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
}

// LoanRepository persists loans
type LoanRepository interface {
	Create(ctx context.Context, loan *Loan) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Loan, error)
	// FindByIDForUserForUpdate locks the loan row for the enclosing
	// transaction so concurrent payments cannot oversubscribe outstanding.
	FindByIDForUserForUpdate(ctx context.Context, userID, id uuid.UUID) (*Loan, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Loan, error)
	Save(ctx context.Context, loan *Loan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LoanPaymentRepository persists loan payments. Ownership checks go through
// the parent loan.
type LoanPaymentRepository interface {
	Create(ctx context.Context, payment *LoanPayment) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*LoanPayment, error)
	FindByLoan(ctx context.Context, loanID uuid.UUID) ([]LoanPayment, error)
	Save(ctx context.Context, payment *LoanPayment) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

// SplitShareRepository persists the participant shares of split expenses
type SplitShareRepository interface {
	Create(ctx context.Context, share *SplitShare) error
	FindByExpense(ctx context.Context, expenseID uuid.UUID) ([]SplitShare, error)
	DeleteByExpense(ctx context.Context, expenseID uuid.UUID) error
}

// EMIRepository persists EMI commitments
type EMIRepository interface {
	Create(ctx context.Context, emi *EMI) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*EMI, error)
	// FindByIDForUserForUpdate locks the EMI row for the enclosing
	// transaction so concurrent installments decrement exactly once each.
	FindByIDForUserForUpdate(ctx context.Context, userID, id uuid.UUID) (*EMI, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]EMI, error)
	Save(ctx context.Context, emi *EMI) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MoneyLentRepository persists informal lending records
type MoneyLentRepository interface {
	Create(ctx context.Context, lent *MoneyLent) error
	FindByIDForUser(ctx context.Context, lenderID, id uuid.UUID) (*MoneyLent, error)
	FindAllForUser(ctx context.Context, lenderID uuid.UUID, filter shared.Filter) ([]MoneyLent, error)
	Save(ctx context.Context, lent *MoneyLent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MoneyBorrowedRepository persists informal borrowing records
type MoneyBorrowedRepository interface {
	Create(ctx context.Context, borrowed *MoneyBorrowed) error
	FindByIDForUser(ctx context.Context, borrowerID, id uuid.UUID) (*MoneyBorrowed, error)
	FindAllForUser(ctx context.Context, borrowerID uuid.UUID, filter shared.Filter) ([]MoneyBorrowed, error)
	Save(ctx context.Context, borrowed *MoneyBorrowed) error
	Delete(ctx context.Context, id uuid.UUID) error
}
