package persistence

import (
	"context"
	"errors"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLoanRepository implements LoanRepository using GORM
type GormLoanRepository struct {
	db *gorm.DB
}

// NewGormLoanRepository creates a new GormLoanRepository
func NewGormLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{db: db}
}

// Create persists a new loan
func (r *GormLoanRepository) Create(ctx context.Context, loan *ledger.Loan) error {
	model := models.LoanModelFromDomain(loan)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByIDForUser finds a loan by ID, scoped to its owner
func (r *GormLoanRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*ledger.Loan, error) {
	return r.findByID(r.db.WithContext(ctx), userID, id)
}

// FindByIDForUserForUpdate finds a loan by ID and locks the row for the
// enclosing transaction so concurrent payments serialize
func (r *GormLoanRepository) FindByIDForUserForUpdate(ctx context.Context, userID, id uuid.UUID) (*ledger.Loan, error) {
	return r.findByID(lockForUpdate(r.db.WithContext(ctx)), userID, id)
}

func (r *GormLoanRepository) findByID(tx *gorm.DB, userID, id uuid.UUID) (*ledger.Loan, error) {
	var model models.LoanModel
	if err := tx.Where("user_id = ? AND id = ?", userID, id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds all loans for a user matching the filter
func (r *GormLoanRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ledger.Loan, error) {
	var loanModels []models.LoanModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.LoanModel{}).Where("user_id = ?", userID), filter, CommonSortFields)
	if err := query.Find(&loanModels).Error; err != nil {
		return nil, err
	}

	loans := make([]ledger.Loan, len(loanModels))
	for i := range loanModels {
		loans[i] = *loanModels[i].ToDomain()
	}
	return loans, nil
}

// Save updates an existing loan
func (r *GormLoanRepository) Save(ctx context.Context, loan *ledger.Loan) error {
	model := models.LoanModelFromDomain(loan)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a loan. Its payment history stays in place so balance
// history remains explainable.
func (r *GormLoanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LoanModel{}, "id = ?", id).Error
}

var _ ledger.LoanRepository = (*GormLoanRepository)(nil)

// GormLoanPaymentRepository implements LoanPaymentRepository using GORM
type GormLoanPaymentRepository struct {
	db *gorm.DB
}

// NewGormLoanPaymentRepository creates a new GormLoanPaymentRepository
func NewGormLoanPaymentRepository(db *gorm.DB) *GormLoanPaymentRepository {
	return &GormLoanPaymentRepository{db: db}
}

// Create persists a new loan payment
func (r *GormLoanPaymentRepository) Create(ctx context.Context, payment *ledger.LoanPayment) error {
	model := models.LoanPaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByIDForUser finds a payment by ID. Ownership is checked through the
// parent loan.
func (r *GormLoanPaymentRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*ledger.LoanPayment, error) {
	var model models.LoanPaymentModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN loans ON loans.id = loan_payments.loan_id").
		Where("loans.user_id = ? AND loan_payments.id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLoan finds all payments for a loan, newest first
func (r *GormLoanPaymentRepository) FindByLoan(ctx context.Context, loanID uuid.UUID) ([]ledger.LoanPayment, error) {
	var paymentModels []models.LoanPaymentModel
	if err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("paid_at DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]ledger.LoanPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments, nil
}

// Save updates an existing payment
func (r *GormLoanPaymentRepository) Save(ctx context.Context, payment *ledger.LoanPayment) error {
	model := models.LoanPaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a payment record
func (r *GormLoanPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LoanPaymentModel{}, "id = ?", id).Error
}

// SumForUser sums all loan payments made by a user across their loans
func (r *GormLoanPaymentRepository) SumForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.LoanPaymentModel{}).
		Select("COALESCE(SUM(loan_payments.amount), 0) AS total").
		Joins("JOIN loans ON loans.id = loan_payments.loan_id").
		Where("loans.user_id = ?", userID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

var _ ledger.LoanPaymentRepository = (*GormLoanPaymentRepository)(nil)
