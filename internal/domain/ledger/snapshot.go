package ledger

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceSnapshot is a stored point-in-time view of a user's balance for one
// (month, week) bucket. Repeated deltas within the same period accumulate on
// the same row; the most recently updated row is authoritative for its period.
type BalanceSnapshot struct {
	shared.BaseEntity
	UserID    uuid.UUID
	Current   decimal.Decimal
	LastWeek  decimal.Decimal
	LastMonth decimal.Decimal
	Month     string
	Week      int
}

// NewBalanceSnapshot seeds a snapshot for a period. seed is the user's
// balance before the delta that triggered creation; LastWeek and LastMonth
// start at zero and are filled by later period rollovers.
func NewBalanceSnapshot(userID uuid.UUID, seed decimal.Decimal, month string, week int) *BalanceSnapshot {
	return &BalanceSnapshot{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Current:    seed,
		LastWeek:   decimal.Zero,
		LastMonth:  decimal.Zero,
		Month:      month,
		Week:       week,
	}
}

// Accumulate applies a signed delta to the snapshot's current value
func (s *BalanceSnapshot) Accumulate(delta decimal.Decimal) {
	s.Current = s.Current.Add(delta)
	s.UpdatedAt = time.Now()
}

// BalanceSnapshotRepository persists balance snapshots
type BalanceSnapshotRepository interface {
	// FindForPeriod returns the most recently updated snapshot for the given
	// (user, month, week) bucket, or shared.ErrNotFound if none exists yet.
	FindForPeriod(ctx context.Context, userID uuid.UUID, month string, week int) (*BalanceSnapshot, error)
	// FindRecent returns up to limit snapshots for the user, most recently
	// updated first.
	FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*BalanceSnapshot, error)
	// FindLatestForMonth returns the most recently updated snapshot within a
	// month bucket regardless of week, or shared.ErrNotFound.
	FindLatestForMonth(ctx context.Context, userID uuid.UUID, month string) (*BalanceSnapshot, error)
	Create(ctx context.Context, snapshot *BalanceSnapshot) error
	Save(ctx context.Context, snapshot *BalanceSnapshot) error
}
