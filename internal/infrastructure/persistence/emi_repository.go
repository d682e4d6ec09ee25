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

// GormEMIRepository implements EMIRepository using GORM
type GormEMIRepository struct {
	db *gorm.DB
}

// NewGormEMIRepository creates a new GormEMIRepository
func NewGormEMIRepository(db *gorm.DB) *GormEMIRepository {
	return &GormEMIRepository{db: db}
}

// Create persists a new EMI commitment
func (r *GormEMIRepository) Create(ctx context.Context, emi *ledger.EMI) error {
	model := models.EMIModelFromDomain(emi)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByIDForUser finds an EMI by ID, scoped to its owner
func (r *GormEMIRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*ledger.EMI, error) {
	return r.findByID(r.db.WithContext(ctx), userID, id)
}

// FindByIDForUserForUpdate finds an EMI by ID and locks the row for the
// enclosing transaction so concurrent installments decrement exactly once each
func (r *GormEMIRepository) FindByIDForUserForUpdate(ctx context.Context, userID, id uuid.UUID) (*ledger.EMI, error) {
	return r.findByID(lockForUpdate(r.db.WithContext(ctx)), userID, id)
}

func (r *GormEMIRepository) findByID(tx *gorm.DB, userID, id uuid.UUID) (*ledger.EMI, error) {
	var model models.EMIModel
	if err := tx.Where("user_id = ? AND id = ?", userID, id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds all EMIs for a user matching the filter
func (r *GormEMIRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ledger.EMI, error) {
	var emiModels []models.EMIModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.EMIModel{}).Where("user_id = ?", userID), filter, CommonSortFields)
	if err := query.Find(&emiModels).Error; err != nil {
		return nil, err
	}

	emis := make([]ledger.EMI, len(emiModels))
	for i := range emiModels {
		emis[i] = *emiModels[i].ToDomain()
	}
	return emis, nil
}

// Save updates an existing EMI
func (r *GormEMIRepository) Save(ctx context.Context, emi *ledger.EMI) error {
	model := models.EMIModelFromDomain(emi)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an EMI commitment
func (r *GormEMIRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.EMIModel{}, "id = ?", id).Error
}

var _ ledger.EMIRepository = (*GormEMIRepository)(nil)
