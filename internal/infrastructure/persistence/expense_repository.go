package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// Create persists a new expense entry
func (r *GormExpenseRepository) Create(ctx context.Context, expense *ledger.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByIDForUser finds an expense by ID, scoped to its owner
func (r *GormExpenseRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*ledger.Expense, error) {
	var model models.ExpenseModel
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

// FindAllForUser finds all expenses for a user matching the filter
func (r *GormExpenseRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ledger.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Where("user_id = ?", userID), filter, EntrySortFields)
	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// FindByMonthForUser finds a user's expenses in one month bucket
func (r *GormExpenseRepository) FindByMonthForUser(ctx context.Context, userID uuid.UUID, month string) ([]ledger.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, month).
		Order("spent_at DESC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// Save updates an existing expense entry
func (r *GormExpenseRepository) Save(ctx context.Context, expense *ledger.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an expense entry
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id).Error
}

// SumForUser sums all expenses for a user
func (r *GormExpenseRepository) SumForUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return sumColumn(r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Where("user_id = ?", userID))
}

// SumInRangeForUser sums a user's expenses spent within [start, end]
func (r *GormExpenseRepository) SumInRangeForUser(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	return sumColumn(r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("user_id = ? AND spent_at BETWEEN ? AND ?", userID, start, end))
}

// SumForTagInDay sums a user's spend for one tag on one calendar day key.
// An empty tag sums across all tags.
func (r *GormExpenseRepository) SumForTagInDay(ctx context.Context, userID uuid.UUID, tag string, day time.Time) (decimal.Decimal, error) {
	// The day key is an IST calendar date; entries match when their own
	// business date lands on the same key.
	start := day.Add(-period.ISTOffset)
	end := start.Add(24 * time.Hour)

	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("user_id = ? AND spent_at >= ? AND spent_at < ?", userID, start, end)
	if tag != "" {
		query = query.Where("tag = ?", tag)
	}
	return sumColumn(query)
}

// SumForTagInWeek sums a user's spend for one tag in one (month, week) bucket
func (r *GormExpenseRepository) SumForTagInWeek(ctx context.Context, userID uuid.UUID, tag string, month string, week int) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("user_id = ? AND month = ? AND week = ?", userID, month, week)
	if tag != "" {
		query = query.Where("tag = ?", tag)
	}
	return sumColumn(query)
}

// SumForTagInMonth sums a user's spend for one tag in one month bucket
func (r *GormExpenseRepository) SumForTagInMonth(ctx context.Context, userID uuid.UUID, tag string, month string) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("user_id = ? AND month = ?", userID, month)
	if tag != "" {
		query = query.Where("tag = ?", tag)
	}
	return sumColumn(query)
}

// MonthSummaryForUser aggregates a user's expenses for one month bucket
func (r *GormExpenseRepository) MonthSummaryForUser(ctx context.Context, userID uuid.UUID, month string) (*ledger.MonthSummary, error) {
	var result struct {
		Total decimal.Decimal
		Count int64
	}
	if err := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("user_id = ? AND month = ?", userID, month).
		Scan(&result).Error; err != nil {
		return nil, err
	}

	summary := &ledger.MonthSummary{
		Month: month,
		Total: result.Total,
		Count: result.Count,
	}
	if result.Count > 0 {
		summary.Average = result.Total.Div(decimal.NewFromInt(result.Count))
	}
	return summary, nil
}

// TotalsByTagForUser aggregates a user's expenses per (tag, month) bucket
func (r *GormExpenseRepository) TotalsByTagForUser(ctx context.Context, userID uuid.UUID) ([]ledger.TagTotal, error) {
	var results []struct {
		Tag   string
		Month string
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Select("tag, month, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Group("tag, month").
		Order("month DESC, total DESC").
		Scan(&results).Error; err != nil {
		return nil, err
	}

	totals := make([]ledger.TagTotal, len(results))
	for i, row := range results {
		totals[i] = ledger.TagTotal{Tag: row.Tag, Month: row.Month, Total: row.Total}
	}
	return totals, nil
}

func toDomainExpenses(expenseModels []models.ExpenseModel) []ledger.Expense {
	expenses := make([]ledger.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = *expenseModels[i].ToDomain()
	}
	return expenses
}

var _ ledger.ExpenseRepository = (*GormExpenseRepository)(nil)
