package finance

import (
	"context"

	applimits "github.com/fintrack/backend/internal/application/limits"
	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense entries, their split fan-out, and the
// advisory limit checks that accompany new spend
type ExpenseService struct {
	scope  TransactionScope
	ledger *BalanceLedger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(scope TransactionScope, balanceLedger *BalanceLedger) *ExpenseService {
	return &ExpenseService{
		scope:  scope,
		ledger: balanceLedger,
	}
}

// Create records an expense and debits the payer atomically. When splits are
// present, each non-payer participant is debited their share and the payer
// is credited the same amount, so the payer ends up carrying only their own
// part. Active limits are evaluated against the pre-expense spend; exceeded
// ones come back as warnings, never as rejections.
func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	spentAt := s.ledger.Now()
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}

	expense, err := ledger.NewExpense(userID, req.Amount, req.Tag, spentAt)
	if err != nil {
		return nil, err
	}
	if err := validateSplitTotal(req.Splits, expense.Amount); err != nil {
		return nil, err
	}

	var shares []ledger.SplitShare
	var warnings []string

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		evaluations, err := applimits.CheckSpend(ctx, repos.LimitRepo(), repos.ExpenseRepo(), userID, expense.Tag, expense.Amount, s.ledger.Now())
		if err != nil {
			return err
		}
		warnings = applimits.WarningMessages(evaluations)

		if err := repos.ExpenseRepo().Create(ctx, expense); err != nil {
			return err
		}
		if _, err := s.ledger.Apply(ctx, repos, userID, ledger.KindExpense.Delta(expense.Amount)); err != nil {
			return err
		}

		shares, err = s.applySplits(ctx, repos, expense, req.Splits)
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense, shares, warnings)
	return &response, nil
}

// Update edits an expense. A plain edit moves the balance by the signed
// difference of the amounts. An edit that supplies splits rolls the whole
// expense back first, then reapplies it with the new amount and shares.
func (s *ExpenseService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	var expense *ledger.Expense
	var shares []ledger.SplitShare

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		expense, err = repos.ExpenseRepo().FindByIDForUser(ctx, userID, id)
		if err != nil {
			return err
		}

		if req.Splits != nil {
			return s.reapplySplitExpense(ctx, repos, expense, req, &shares)
		}

		if req.Amount != nil {
			old, err := expense.SetAmount(*req.Amount)
			if err != nil {
				return err
			}
			diff := expense.Amount.Sub(old)
			if !diff.IsZero() {
				if _, err := s.ledger.Apply(ctx, repos, userID, ledger.KindExpense.Delta(diff)); err != nil {
					return err
				}
			}
		}
		if req.Tag != nil {
			expense.Tag = *req.Tag
		}
		if req.SpentAt != nil {
			if err := expense.Reschedule(*req.SpentAt); err != nil {
				return err
			}
		}
		if err := repos.ExpenseRepo().Save(ctx, expense); err != nil {
			return err
		}

		shares, err = repos.SplitRepo().FindByExpense(ctx, expense.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense, shares, nil)
	return &response, nil
}

// Delete removes an expense, reversing the payer's debit and every split
// movement exactly.
func (s *ExpenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		expense, err := repos.ExpenseRepo().FindByIDForUser(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := s.rollbackSplits(ctx, repos, expense); err != nil {
			return err
		}
		if _, err := s.ledger.Apply(ctx, repos, userID, ledger.KindExpense.ReversalDelta(expense.Amount)); err != nil {
			return err
		}
		return repos.ExpenseRepo().Delete(ctx, expense.ID)
	})
}

// Get returns a single expense owned by the user, with its shares.
func (s *ExpenseService) Get(ctx context.Context, userID, id uuid.UUID) (*ExpenseResponse, error) {
	var expense *ledger.Expense
	var shares []ledger.SplitShare
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		expense, err = repos.ExpenseRepo().FindByIDForUser(ctx, userID, id)
		if err != nil {
			return err
		}
		shares, err = repos.SplitRepo().FindByExpense(ctx, expense.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense, shares, nil)
	return &response, nil
}

// List returns the user's expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ExpenseResponse, error) {
	var expenses []ledger.Expense
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		expenses, err = repos.ExpenseRepo().FindAllForUser(ctx, userID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, ToExpenseResponse(&expenses[i], nil, nil))
	}
	return responses, nil
}

// ListByMonth returns the user's expenses for one month key
func (s *ExpenseService) ListByMonth(ctx context.Context, userID uuid.UUID, month string) ([]ExpenseResponse, error) {
	if _, err := period.ParseMonthKey(month); err != nil {
		return nil, err
	}

	var expenses []ledger.Expense
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		expenses, err = repos.ExpenseRepo().FindByMonthForUser(ctx, userID, month)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, ToExpenseResponse(&expenses[i], nil, nil))
	}
	return responses, nil
}

// MonthSummary returns the total, count, and average spend for one month
// bucket, e.g. "Sep-2025".
func (s *ExpenseService) MonthSummary(ctx context.Context, userID uuid.UUID, month string) (*ledger.MonthSummary, error) {
	if _, err := period.ParseMonthKey(month); err != nil {
		return nil, err
	}

	var summary *ledger.MonthSummary
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		summary, err = repos.ExpenseRepo().MonthSummaryForUser(ctx, userID, month)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// reapplySplitExpense rolls the expense and its shares fully back, then
// reapplies the edited amount and the new shares from scratch.
func (s *ExpenseService) reapplySplitExpense(ctx context.Context, repos TransactionalRepositories, expense *ledger.Expense, req UpdateExpenseRequest, sharesOut *[]ledger.SplitShare) error {
	if err := s.rollbackSplits(ctx, repos, expense); err != nil {
		return err
	}
	if _, err := s.ledger.Apply(ctx, repos, expense.UserID, ledger.KindExpense.ReversalDelta(expense.Amount)); err != nil {
		return err
	}

	if req.Amount != nil {
		if _, err := expense.SetAmount(*req.Amount); err != nil {
			return err
		}
	}
	if req.Tag != nil {
		expense.Tag = *req.Tag
	}
	if req.SpentAt != nil {
		if err := expense.Reschedule(*req.SpentAt); err != nil {
			return err
		}
	}
	if err := validateSplitTotal(req.Splits, expense.Amount); err != nil {
		return err
	}
	if err := repos.ExpenseRepo().Save(ctx, expense); err != nil {
		return err
	}

	if _, err := s.ledger.Apply(ctx, repos, expense.UserID, ledger.KindExpense.Delta(expense.Amount)); err != nil {
		return err
	}

	shares, err := s.applySplits(ctx, repos, expense, req.Splits)
	if err != nil {
		return err
	}
	*sharesOut = shares
	return nil
}

// applySplits persists each participant share and moves the balances: the
// non-payer participant is debited their share, the payer credited the same.
func (s *ExpenseService) applySplits(ctx context.Context, repos TransactionalRepositories, expense *ledger.Expense, splits []SplitParticipantRequest) ([]ledger.SplitShare, error) {
	shares := make([]ledger.SplitShare, 0, len(splits))
	for _, split := range splits {
		share, err := ledger.NewSplitShare(expense.ID, split.UserID, split.AmountOwed, decimal.Zero, expense.UserID)
		if err != nil {
			return nil, err
		}
		if err := repos.SplitRepo().Create(ctx, share); err != nil {
			return nil, err
		}
		if !share.SettledByParticipant() {
			if _, err := s.ledger.Apply(ctx, repos, share.UserID, ledger.KindSplitShare.Delta(share.AmountOwed)); err != nil {
				return nil, err
			}
			if _, err := s.ledger.Apply(ctx, repos, expense.UserID, share.AmountOwed); err != nil {
				return nil, err
			}
		}
		shares = append(shares, *share)
	}
	return shares, nil
}

// rollbackSplits reverses every share movement of the expense and deletes
// the share rows.
func (s *ExpenseService) rollbackSplits(ctx context.Context, repos TransactionalRepositories, expense *ledger.Expense) error {
	shares, err := repos.SplitRepo().FindByExpense(ctx, expense.ID)
	if err != nil {
		return err
	}
	for i := range shares {
		share := &shares[i]
		if share.SettledByParticipant() {
			continue
		}
		if _, err := s.ledger.Apply(ctx, repos, share.UserID, ledger.KindSplitShare.ReversalDelta(share.AmountOwed)); err != nil {
			return err
		}
		if _, err := s.ledger.Apply(ctx, repos, expense.UserID, share.AmountOwed.Neg()); err != nil {
			return err
		}
	}
	return repos.SplitRepo().DeleteByExpense(ctx, expense.ID)
}

// validateSplitTotal rejects share sets that owe back more than the expense.
func validateSplitTotal(splits []SplitParticipantRequest, amount decimal.Decimal) error {
	if len(splits) == 0 {
		return nil
	}
	total := decimal.Zero
	for _, split := range splits {
		total = total.Add(split.AmountOwed)
	}
	if total.GreaterThan(amount) {
		return shared.NewValidationError("split shares %s exceed expense amount %s", total, amount)
	}
	return nil
}
