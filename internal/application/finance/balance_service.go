package finance

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceService serves balance and snapshot reads
type BalanceService struct {
	userRepo     ledger.UserRepository
	snapshotRepo ledger.BalanceSnapshotRepository
	now          func() time.Time
}

// NewBalanceService creates a new BalanceService. A nil clock defaults to
// the wall clock.
func NewBalanceService(userRepo ledger.UserRepository, snapshotRepo ledger.BalanceSnapshotRepository, now func() time.Time) *BalanceService {
	if now == nil {
		now = time.Now
	}
	return &BalanceService{
		userRepo:     userRepo,
		snapshotRepo: snapshotRepo,
		now:          now,
	}
}

// GetBalance returns the user's current balance.
func (s *BalanceService) GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{Balance: user.Balance}, nil
}

// GetCurrentSnapshot returns the snapshot for the current wall-clock period.
// When no balance change has landed in the period yet, a zero-delta view
// synthesized from the live balance is returned instead of an error.
func (s *BalanceService) GetCurrentSnapshot(ctx context.Context, userID uuid.UUID) (*SnapshotResponse, error) {
	now := s.now()
	month := period.MonthKey(now)
	week := period.WeekOfMonth(now)

	snapshot, err := s.snapshotRepo.FindForPeriod(ctx, userID, month, week)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &SnapshotResponse{
			Month:     month,
			Week:      week,
			Current:   user.Balance,
			LastWeek:  decimal.Zero,
			LastMonth: decimal.Zero,
		}, nil
	}

	response := ToSnapshotResponse(snapshot)
	return &response, nil
}

// GetLastMonthSnapshot returns the most recent snapshot of the previous
// calendar month. A month with no balance activity yields a zeroed view
// rather than an error.
func (s *BalanceService) GetLastMonthSnapshot(ctx context.Context, userID uuid.UUID) (*SnapshotResponse, error) {
	month := period.MonthKey(s.now().AddDate(0, -1, 0))

	snapshot, err := s.snapshotRepo.FindLatestForMonth(ctx, userID, month)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return &SnapshotResponse{
			Month:     month,
			Current:   decimal.Zero,
			LastWeek:  decimal.Zero,
			LastMonth: decimal.Zero,
		}, nil
	}

	response := ToSnapshotResponse(snapshot)
	return &response, nil
}

// ListSnapshots returns the user's most recent snapshots, newest first.
func (s *BalanceService) ListSnapshots(ctx context.Context, userID uuid.UUID, limit int) ([]SnapshotResponse, error) {
	if limit <= 0 {
		limit = 12
	}
	snapshots, err := s.snapshotRepo.FindRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]SnapshotResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		responses = append(responses, ToSnapshotResponse(snapshot))
	}
	return responses, nil
}
