package persistence

import (
	"context"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSplitShareRepository implements SplitShareRepository using GORM
type GormSplitShareRepository struct {
	db *gorm.DB
}

// NewGormSplitShareRepository creates a new GormSplitShareRepository
func NewGormSplitShareRepository(db *gorm.DB) *GormSplitShareRepository {
	return &GormSplitShareRepository{db: db}
}

// Create persists a participant share
func (r *GormSplitShareRepository) Create(ctx context.Context, share *ledger.SplitShare) error {
	model := models.SplitShareModelFromDomain(share)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByExpense finds all shares of a split expense
func (r *GormSplitShareRepository) FindByExpense(ctx context.Context, expenseID uuid.UUID) ([]ledger.SplitShare, error) {
	var shareModels []models.SplitShareModel
	if err := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("created_at ASC").
		Find(&shareModels).Error; err != nil {
		return nil, err
	}

	shares := make([]ledger.SplitShare, len(shareModels))
	for i := range shareModels {
		shares[i] = *shareModels[i].ToDomain()
	}
	return shares, nil
}

// DeleteByExpense removes every share of a split expense
func (r *GormSplitShareRepository) DeleteByExpense(ctx context.Context, expenseID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.SplitShareModel{}, "expense_id = ?", expenseID).Error
}

var _ ledger.SplitShareRepository = (*GormSplitShareRepository)(nil)
