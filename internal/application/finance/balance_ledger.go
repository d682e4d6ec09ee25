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

// Clock supplies the current time. Injectable so period keying is testable.
type Clock func() time.Time

// BalanceLedger is the single write path for the user balance. Every entry
// service funnels its signed delta through Apply, which moves the balance
// and the period snapshot together inside the caller's transaction.
//
// Snapshots are keyed by the wall-clock month and week at the moment the
// change is applied, not by the entry's own date. Editing a March expense in
// April therefore lands the correction in April's snapshot. That matches
// how balances were historically tracked; callers that need entry-dated
// aggregation use the entry tables directly.
type BalanceLedger struct {
	now Clock
}

// NewBalanceLedger creates a BalanceLedger. A nil clock defaults to time.Now.
func NewBalanceLedger(now Clock) *BalanceLedger {
	if now == nil {
		now = time.Now
	}
	return &BalanceLedger{now: now}
}

// Apply locks the user row, shifts the balance by delta, and folds the same
// delta into the snapshot for the current wall-clock period, returning that
// snapshot. A snapshot that does not exist yet is seeded from the pre-delta
// balance so its Current always ends equal to the user balance when both
// were in sync.
//
// Apply must run inside a transaction scope; the row lock taken here is what
// serializes concurrent writers on the same user.
func (l *BalanceLedger) Apply(ctx context.Context, repos TransactionalRepositories, userID uuid.UUID, delta decimal.Decimal) (*ledger.BalanceSnapshot, error) {
	user, err := repos.UserRepo().FindByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	preBalance := user.Balance
	user.ApplyDelta(delta)
	if err := repos.UserRepo().Save(ctx, user); err != nil {
		return nil, err
	}

	now := l.now()
	month := period.MonthKey(now)
	week := period.WeekOfMonth(now)

	snapshot, err := repos.SnapshotRepo().FindForPeriod(ctx, userID, month, week)
	switch {
	case err == nil:
		snapshot.Accumulate(delta)
		if err := repos.SnapshotRepo().Save(ctx, snapshot); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		snapshot = ledger.NewBalanceSnapshot(userID, preBalance, month, week)
		snapshot.Accumulate(delta)
		if err := repos.SnapshotRepo().Create(ctx, snapshot); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return snapshot, nil
}

// Now exposes the ledger clock so entry services derive period keys from the
// same time source the snapshots use.
func (l *BalanceLedger) Now() time.Time {
	return l.now()
}
