package persistence

import (
	"context"
	"errors"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMoneyLentRepository implements MoneyLentRepository using GORM
type GormMoneyLentRepository struct {
	db *gorm.DB
}

// NewGormMoneyLentRepository creates a new GormMoneyLentRepository
func NewGormMoneyLentRepository(db *gorm.DB) *GormMoneyLentRepository {
	return &GormMoneyLentRepository{db: db}
}

// Create persists a new money-lent record
func (r *GormMoneyLentRepository) Create(ctx context.Context, lent *ledger.MoneyLent) error {
	model := models.MoneyLentModelFromDomain(lent)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByIDForUser finds a money-lent record by ID, scoped to the lender
func (r *GormMoneyLentRepository) FindByIDForUser(ctx context.Context, lenderID, id uuid.UUID) (*ledger.MoneyLent, error) {
	var model models.MoneyLentModel
	if err := r.db.WithContext(ctx).
		Where("lender_id = ? AND id = ?", lenderID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds all money-lent records for a lender
func (r *GormMoneyLentRepository) FindAllForUser(ctx context.Context, lenderID uuid.UUID, filter shared.Filter) ([]ledger.MoneyLent, error) {
	var lentModels []models.MoneyLentModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.MoneyLentModel{}).Where("lender_id = ?", lenderID), filter, CommonSortFields)
	if err := query.Find(&lentModels).Error; err != nil {
		return nil, err
	}

	records := make([]ledger.MoneyLent, len(lentModels))
	for i := range lentModels {
		records[i] = *lentModels[i].ToDomain()
	}
	return records, nil
}

// Save updates an existing money-lent record
func (r *GormMoneyLentRepository) Save(ctx context.Context, lent *ledger.MoneyLent) error {
	model := models.MoneyLentModelFromDomain(lent)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a money-lent record
func (r *GormMoneyLentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MoneyLentModel{}, "id = ?", id).Error
}

var _ ledger.MoneyLentRepository = (*GormMoneyLentRepository)(nil)

// GormMoneyBorrowedRepository implements MoneyBorrowedRepository using GORM
type GormMoneyBorrowedRepository struct {
	db *gorm.DB
}

// NewGormMoneyBorrowedRepository creates a new GormMoneyBorrowedRepository
func NewGormMoneyBorrowedRepository(db *gorm.DB) *GormMoneyBorrowedRepository {
	return &GormMoneyBorrowedRepository{db: db}
}

// Create persists a new money-borrowed record
func (r *GormMoneyBorrowedRepository) Create(ctx context.Context, borrowed *ledger.MoneyBorrowed) error {
	model := models.MoneyBorrowedModelFromDomain(borrowed)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByIDForUser finds a money-borrowed record by ID, scoped to the borrower
func (r *GormMoneyBorrowedRepository) FindByIDForUser(ctx context.Context, borrowerID, id uuid.UUID) (*ledger.MoneyBorrowed, error) {
	var model models.MoneyBorrowedModel
	if err := r.db.WithContext(ctx).
		Where("borrower_id = ? AND id = ?", borrowerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds all money-borrowed records for a borrower
func (r *GormMoneyBorrowedRepository) FindAllForUser(ctx context.Context, borrowerID uuid.UUID, filter shared.Filter) ([]ledger.MoneyBorrowed, error) {
	var borrowedModels []models.MoneyBorrowedModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.MoneyBorrowedModel{}).Where("borrower_id = ?", borrowerID), filter, CommonSortFields)
	if err := query.Find(&borrowedModels).Error; err != nil {
		return nil, err
	}

	records := make([]ledger.MoneyBorrowed, len(borrowedModels))
	for i := range borrowedModels {
		records[i] = *borrowedModels[i].ToDomain()
	}
	return records, nil
}

// Save updates an existing money-borrowed record
func (r *GormMoneyBorrowedRepository) Save(ctx context.Context, borrowed *ledger.MoneyBorrowed) error {
	model := models.MoneyBorrowedModelFromDomain(borrowed)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a money-borrowed record
func (r *GormMoneyBorrowedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MoneyBorrowedModel{}, "id = ?", id).Error
}

var _ ledger.MoneyBorrowedRepository = (*GormMoneyBorrowedRepository)(nil)
