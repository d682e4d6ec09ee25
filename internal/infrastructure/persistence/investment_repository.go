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

// GormInvestmentRepository implements InvestmentRepository using GORM
type GormInvestmentRepository struct {
	db *gorm.DB
}

// NewGormInvestmentRepository creates a new GormInvestmentRepository
func NewGormInvestmentRepository(db *gorm.DB) *GormInvestmentRepository {
	return &GormInvestmentRepository{db: db}
}

// Create persists a new investment entry
func (r *GormInvestmentRepository) Create(ctx context.Context, investment *ledger.Investment) error {
	model := models.InvestmentModelFromDomain(investment)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByIDForUser finds an investment by ID, scoped to its owner
func (r *GormInvestmentRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*ledger.Investment, error) {
	var model models.InvestmentModel
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

// FindAllForUser finds all investments for a user matching the filter
func (r *GormInvestmentRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ledger.Investment, error) {
	var investmentModels []models.InvestmentModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.InvestmentModel{}).Where("user_id = ?", userID), filter, EntrySortFields)
	if err := query.Find(&investmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainInvestments(investmentModels), nil
}

// FindByMonthForUser finds a user's investments in one month bucket
func (r *GormInvestmentRepository) FindByMonthForUser(ctx context.Context, userID uuid.UUID, month string) ([]ledger.Investment, error) {
	var investmentModels []models.InvestmentModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, month).
		Order("invested_at DESC").
		Find(&investmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainInvestments(investmentModels), nil
}

// Save updates an existing investment entry
func (r *GormInvestmentRepository) Save(ctx context.Context, investment *ledger.Investment) error {
	model := models.InvestmentModelFromDomain(investment)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an investment entry
func (r *GormInvestmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.InvestmentModel{}, "id = ?", id).Error
}

// SumForUser sums all investments for a user
func (r *GormInvestmentRepository) SumForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return sumColumn(r.db.WithContext(ctx).Model(&models.InvestmentModel{}).Where("user_id = ?", userID))
}

// SumInRangeForUser sums a user's investments made within [start, end]
func (r *GormInvestmentRepository) SumInRangeForUser(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	return sumColumn(r.db.WithContext(ctx).Model(&models.InvestmentModel{}).
		Where("user_id = ? AND invested_at BETWEEN ? AND ?", userID, start, end))
}

func toDomainInvestments(investmentModels []models.InvestmentModel) []ledger.Investment {
	investments := make([]ledger.Investment, len(investmentModels))
	for i := range investmentModels {
		investments[i] = *investmentModels[i].ToDomain()
	}
	return investments
}

var _ ledger.InvestmentRepository = (*GormInvestmentRepository)(nil)
