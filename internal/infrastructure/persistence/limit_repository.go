package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack/backend/internal/domain/limits"
	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLimitRepository implements the spending limit Repository using GORM
type GormLimitRepository struct {
	db *gorm.DB
}

// NewGormLimitRepository creates a new GormLimitRepository
func NewGormLimitRepository(db *gorm.DB) *GormLimitRepository {
	return &GormLimitRepository{db: db}
}

// Create persists a new limit. A second limit for the same (user, scope,
// period, category) is a conflict; the composite unique index backs the
// same rule at the storage level.
func (r *GormLimitRepository) Create(ctx context.Context, limit *limits.Limit) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SpendingLimitModel{}).
		Where("user_id = ? AND scope = ? AND category = ? AND month = ? AND year = ? AND week = ? AND day = ?",
			limit.UserID, string(limit.Scope), limit.Category, limit.Month, limit.Year, limit.Week, limit.Day).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return shared.NewConflictError("a %s limit for this period and category already exists", limit.Scope)
	}

	model := models.SpendingLimitModelFromDomain(limit)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("a %s limit for this period and category already exists", limit.Scope)
		}
		return err
	}
	return nil
}

// FindByIDForUser finds a limit by ID, scoped to its owner
func (r *GormLimitRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*limits.Limit, error) {
	var model models.SpendingLimitModel
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

// FindAllForUser finds all limits for a user matching the filter
func (r *GormLimitRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]limits.Limit, error) {
	var limitModels []models.SpendingLimitModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.SpendingLimitModel{}).Where("user_id = ?", userID), filter, CommonSortFields)
	if err := query.Find(&limitModels).Error; err != nil {
		return nil, err
	}
	return toDomainLimits(limitModels), nil
}

// FindActiveAt returns every limit of the user whose period contains t
func (r *GormLimitRepository) FindActiveAt(ctx context.Context, userID uuid.UUID, t time.Time) ([]limits.Limit, error) {
	month, year := period.MonthNumber(t)
	week := period.WeekOfMonth(t)
	day := period.DayKey(t)

	var limitModels []models.SpendingLimitModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(
			r.db.Where("scope = ? AND day = ?", string(limits.ScopeDaily), day).
				Or("scope = ? AND month = ? AND year = ? AND week = ?", string(limits.ScopeWeekly), month, year, week).
				Or("scope = ? AND month = ? AND year = ?", string(limits.ScopeMonthly), month, year),
		).
		Find(&limitModels).Error; err != nil {
		return nil, err
	}
	return toDomainLimits(limitModels), nil
}

// Save updates an existing limit
func (r *GormLimitRepository) Save(ctx context.Context, limit *limits.Limit) error {
	model := models.SpendingLimitModelFromDomain(limit)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a limit
func (r *GormLimitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.SpendingLimitModel{}, "id = ?", id).Error
}

func toDomainLimits(limitModels []models.SpendingLimitModel) []limits.Limit {
	out := make([]limits.Limit, len(limitModels))
	for i := range limitModels {
		out[i] = *limitModels[i].ToDomain()
	}
	return out
}

var _ limits.Repository = (*GormLimitRepository)(nil)
