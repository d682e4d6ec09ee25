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

// GormBalanceSnapshotRepository implements BalanceSnapshotRepository using GORM
type GormBalanceSnapshotRepository struct {
	db *gorm.DB
}

// NewGormBalanceSnapshotRepository creates a new GormBalanceSnapshotRepository
func NewGormBalanceSnapshotRepository(db *gorm.DB) *GormBalanceSnapshotRepository {
	return &GormBalanceSnapshotRepository{db: db}
}

// FindForPeriod returns the most recently updated snapshot for the given
// (user, month, week) bucket
func (r *GormBalanceSnapshotRepository) FindForPeriod(ctx context.Context, userID uuid.UUID, month string, week int) (*ledger.BalanceSnapshot, error) {
	var model models.BalanceSnapshotModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ? AND week = ?", userID, month, week).
		Order("updated_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRecent returns up to limit snapshots for the user, most recently
// updated first
func (r *GormBalanceSnapshotRepository) FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*ledger.BalanceSnapshot, error) {
	var snapshotModels []models.BalanceSnapshotModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&snapshotModels).Error; err != nil {
		return nil, err
	}

	snapshots := make([]*ledger.BalanceSnapshot, len(snapshotModels))
	for i := range snapshotModels {
		snapshots[i] = snapshotModels[i].ToDomain()
	}
	return snapshots, nil
}

// FindLatestForMonth returns the most recently updated snapshot within a
// month bucket regardless of week
func (r *GormBalanceSnapshotRepository) FindLatestForMonth(ctx context.Context, userID uuid.UUID, month string) (*ledger.BalanceSnapshot, error) {
	var model models.BalanceSnapshotModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, month).
		Order("updated_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create persists a new snapshot
func (r *GormBalanceSnapshotRepository) Create(ctx context.Context, snapshot *ledger.BalanceSnapshot) error {
	model := models.BalanceSnapshotModelFromDomain(snapshot)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates an existing snapshot
func (r *GormBalanceSnapshotRepository) Save(ctx context.Context, snapshot *ledger.BalanceSnapshot) error {
	model := models.BalanceSnapshotModelFromDomain(snapshot)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ ledger.BalanceSnapshotRepository = (*GormBalanceSnapshotRepository)(nil)
