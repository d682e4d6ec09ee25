package persistence

import (
	"context"

	appfinance "github.com/fintrack/backend/internal/application/finance"
	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/limits"
	"gorm.io/gorm"
)

// GormTransactionScope implements the finance TransactionScope using GORM
// transactions. Every balance-affecting operation runs through it so the
// user balance, the period snapshot, and the entry row commit atomically.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appfinance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories scoped
// to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) UserRepo() ledger.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormTransactionalRepositories) SnapshotRepo() ledger.BalanceSnapshotRepository {
	return NewGormBalanceSnapshotRepository(r.tx)
}

func (r *gormTransactionalRepositories) IncomeRepo() ledger.IncomeRepository {
	return NewGormIncomeRepository(r.tx)
}

func (r *gormTransactionalRepositories) ExpenseRepo() ledger.ExpenseRepository {
	return NewGormExpenseRepository(r.tx)
}

func (r *gormTransactionalRepositories) InvestmentRepo() ledger.InvestmentRepository {
	return NewGormInvestmentRepository(r.tx)
}

func (r *gormTransactionalRepositories) LoanRepo() ledger.LoanRepository {
	return NewGormLoanRepository(r.tx)
}

func (r *gormTransactionalRepositories) LoanPaymentRepo() ledger.LoanPaymentRepository {
	return NewGormLoanPaymentRepository(r.tx)
}

func (r *gormTransactionalRepositories) SplitRepo() ledger.SplitShareRepository {
	return NewGormSplitShareRepository(r.tx)
}

func (r *gormTransactionalRepositories) EMIRepo() ledger.EMIRepository {
	return NewGormEMIRepository(r.tx)
}

func (r *gormTransactionalRepositories) MoneyLentRepo() ledger.MoneyLentRepository {
	return NewGormMoneyLentRepository(r.tx)
}

func (r *gormTransactionalRepositories) MoneyBorrowedRepo() ledger.MoneyBorrowedRepository {
	return NewGormMoneyBorrowedRepository(r.tx)
}

func (r *gormTransactionalRepositories) LimitRepo() limits.Repository {
	return NewGormLimitRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appfinance.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appfinance.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
