package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormIncomeRepository implements IncomeRepository using GORM
type GormIncomeRepository struct {
	db *gorm.DB
}

// NewGormIncomeRepository creates a new GormIncomeRepository
func NewGormIncomeRepository(db *gorm.DB) *GormIncomeRepository {
	return &GormIncomeRepository{db: db}
}

// Create persists a new income entry
func (r *GormIncomeRepository) Create(ctx context.Context, income *ledger.Income) error {
	model := models.IncomeModelFromDomain(income)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByIDForUser finds an income entry by ID, scoped to its owner
func (r *GormIncomeRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*ledger.Income, error) {
	var model models.IncomeModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds all income entries for a user matching the filter
func (r *GormIncomeRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ledger.Income, error) {
	var incomeModels []models.IncomeModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.IncomeModel{}).Where("user_id = ?", userID), filter, EntrySortFields)
	if err := query.Find(&incomeModels).Error; err != nil {
		return nil, err
	}

	incomes := make([]ledger.Income, len(incomeModels))
	for i := range incomeModels {
		incomes[i] = *incomeModels[i].ToDomain()
	}
	return incomes, nil
}

// FindByMonthForUser finds a user's income entries in one month bucket
func (r *GormIncomeRepository) FindByMonthForUser(ctx context.Context, userID uuid.UUID, month string) ([]ledger.Income, error) {
	var incomeModels []models.IncomeModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, month).
		Order("credited_at DESC").
		Find(&incomeModels).Error; err != nil {
		return nil, err
	}

	incomes := make([]ledger.Income, len(incomeModels))
	for i := range incomeModels {
		incomes[i] = *incomeModels[i].ToDomain()
	}
	return incomes, nil
}

// Save updates an existing income entry
func (r *GormIncomeRepository) Save(ctx context.Context, income *ledger.Income) error {
	model := models.IncomeModelFromDomain(income)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an income entry
func (r *GormIncomeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.IncomeModel{}, "id = ?", id).Error
}

// SumForUser sums all income for a user
func (r *GormIncomeRepository) SumForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return sumColumn(r.db.WithContext(ctx).Model(&models.IncomeModel{}).Where("user_id = ?", userID))
}

// SumInRangeForUser sums a user's income credited within [start, end]
func (r *GormIncomeRepository) SumInRangeForUser(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	return sumColumn(r.db.WithContext(ctx).Model(&models.IncomeModel{}).
		Where("user_id = ? AND credited_at BETWEEN ? AND ?", userID, start, end))
}

// sumColumn sums the amount column of the given query, treating an empty
// result set as zero
func sumColumn(query *gorm.DB) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

var _ ledger.IncomeRepository = (*GormIncomeRepository)(nil)
