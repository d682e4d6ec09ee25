package finance

import (
	"context"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/limits"
)

// TransactionScope provides transactional access to ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Every balance-affecting operation runs inside one scope
// so the user balance, the period snapshot, and the entry row can never
// diverge.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all ledger repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// UserRepo returns the user repository scoped to the current transaction
	UserRepo() ledger.UserRepository
	// SnapshotRepo returns the balance snapshot repository scoped to the current transaction
	SnapshotRepo() ledger.BalanceSnapshotRepository
	// IncomeRepo returns the income repository scoped to the current transaction
	IncomeRepo() ledger.IncomeRepository
	// ExpenseRepo returns the expense repository scoped to the current transaction
	ExpenseRepo() ledger.ExpenseRepository
	// InvestmentRepo returns the investment repository scoped to the current transaction
	InvestmentRepo() ledger.InvestmentRepository
	// LoanRepo returns the loan repository scoped to the current transaction
	LoanRepo() ledger.LoanRepository
	// LoanPaymentRepo returns the loan payment repository scoped to the current transaction
	LoanPaymentRepo() ledger.LoanPaymentRepository
	// SplitRepo returns the split share repository scoped to the current transaction
	SplitRepo() ledger.SplitShareRepository
	// EMIRepo returns the EMI repository scoped to the current transaction
	EMIRepo() ledger.EMIRepository
	// MoneyLentRepo returns the money-lent repository scoped to the current transaction
	MoneyLentRepo() ledger.MoneyLentRepository
	// MoneyBorrowedRepo returns the money-borrowed repository scoped to the current transaction
	MoneyBorrowedRepo() ledger.MoneyBorrowedRepository
	// LimitRepo returns the spending limit repository scoped to the current transaction
	LimitRepo() limits.Repository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	userRepo          ledger.UserRepository
	snapshotRepo      ledger.BalanceSnapshotRepository
	incomeRepo        ledger.IncomeRepository
	expenseRepo       ledger.ExpenseRepository
	investmentRepo    ledger.InvestmentRepository
	loanRepo          ledger.LoanRepository
	loanPaymentRepo   ledger.LoanPaymentRepository
	splitRepo         ledger.SplitShareRepository
	emiRepo           ledger.EMIRepository
	moneyLentRepo     ledger.MoneyLentRepository
	moneyBorrowedRepo ledger.MoneyBorrowedRepository
	limitRepo         limits.Repository
}

// NoOpRepositories bundles the repositories a NoOpTransactionScope serves.
type NoOpRepositories struct {
	UserRepo          ledger.UserRepository
	SnapshotRepo      ledger.BalanceSnapshotRepository
	IncomeRepo        ledger.IncomeRepository
	ExpenseRepo       ledger.ExpenseRepository
	InvestmentRepo    ledger.InvestmentRepository
	LoanRepo          ledger.LoanRepository
	LoanPaymentRepo   ledger.LoanPaymentRepository
	SplitRepo         ledger.SplitShareRepository
	EMIRepo           ledger.EMIRepository
	MoneyLentRepo     ledger.MoneyLentRepository
	MoneyBorrowedRepo ledger.MoneyBorrowedRepository
	LimitRepo         limits.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(repos NoOpRepositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		userRepo:          repos.UserRepo,
		snapshotRepo:      repos.SnapshotRepo,
		incomeRepo:        repos.IncomeRepo,
		expenseRepo:       repos.ExpenseRepo,
		investmentRepo:    repos.InvestmentRepo,
		loanRepo:          repos.LoanRepo,
		loanPaymentRepo:   repos.LoanPaymentRepo,
		splitRepo:         repos.SplitRepo,
		emiRepo:           repos.EMIRepo,
		moneyLentRepo:     repos.MoneyLentRepo,
		moneyBorrowedRepo: repos.MoneyBorrowedRepo,
		limitRepo:         repos.LimitRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) UserRepo() ledger.UserRepository { return s.userRepo }
func (s *NoOpTransactionScope) SnapshotRepo() ledger.BalanceSnapshotRepository {
	return s.snapshotRepo
}
func (s *NoOpTransactionScope) IncomeRepo() ledger.IncomeRepository         { return s.incomeRepo }
func (s *NoOpTransactionScope) ExpenseRepo() ledger.ExpenseRepository       { return s.expenseRepo }
func (s *NoOpTransactionScope) InvestmentRepo() ledger.InvestmentRepository { return s.investmentRepo }
func (s *NoOpTransactionScope) LoanRepo() ledger.LoanRepository             { return s.loanRepo }
func (s *NoOpTransactionScope) LoanPaymentRepo() ledger.LoanPaymentRepository {
	return s.loanPaymentRepo
}
func (s *NoOpTransactionScope) SplitRepo() ledger.SplitShareRepository { return s.splitRepo }
func (s *NoOpTransactionScope) EMIRepo() ledger.EMIRepository          { return s.emiRepo }
func (s *NoOpTransactionScope) MoneyLentRepo() ledger.MoneyLentRepository {
	return s.moneyLentRepo
}
func (s *NoOpTransactionScope) MoneyBorrowedRepo() ledger.MoneyBorrowedRepository {
	return s.moneyBorrowedRepo
}
func (s *NoOpTransactionScope) LimitRepo() limits.Repository { return s.limitRepo }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
