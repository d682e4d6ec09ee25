package limits

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/limits"
	"github.com/fintrack/backend/internal/domain/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckSpend evaluates a prospective expense against the user's active
// limits whose period contains at and whose category matches the tag. A
// category limit accumulates only that tag's spend; a limit with an empty
// category accumulates the user's entire spend for its period and acts as a
// fallback, consulted for a scope only when no category-specific limit of
// that scope matches the tag. The result lists every applicable limit so
// callers can surface warnings for the exceeded ones.
func CheckSpend(
	ctx context.Context,
	limitRepo limits.Repository,
	expenseRepo ledger.ExpenseRepository,
	userID uuid.UUID,
	tag string,
	amount decimal.Decimal,
	at time.Time,
) ([]limits.Evaluation, error) {
	active, err := limitRepo.FindActiveAt(ctx, userID, at)
	if err != nil {
		return nil, err
	}

	categorized := make(map[limits.Scope]bool)
	for i := range active {
		if active[i].Category != "" && active[i].Category == tag {
			categorized[active[i].Scope] = true
		}
	}

	var evaluations []limits.Evaluation
	for i := range active {
		limit := &active[i]
		if !limit.AppliesTo(tag) {
			continue
		}
		if limit.Category == "" && categorized[limit.Scope] {
			continue
		}

		var spent decimal.Decimal
		switch limit.Scope {
		case limits.ScopeDaily:
			spent, err = expenseRepo.SumForTagInDay(ctx, userID, limit.Category, period.DayKey(at))
		case limits.ScopeWeekly:
			spent, err = expenseRepo.SumForTagInWeek(ctx, userID, limit.Category, period.MonthKey(at), limit.Week)
		case limits.ScopeMonthly:
			spent, err = expenseRepo.SumForTagInMonth(ctx, userID, limit.Category, period.MonthKey(at))
		}
		if err != nil {
			return nil, err
		}

		evaluations = append(evaluations, limits.Evaluate(limit, spent, amount))
	}
	return evaluations, nil
}

// WarningMessages extracts the user-facing messages of the exceeded
// evaluations, preserving order.
func WarningMessages(evaluations []limits.Evaluation) []string {
	var warnings []string
	for _, eval := range evaluations {
		if eval.Exceeded {
			warnings = append(warnings, eval.Message())
		}
	}
	return warnings
}
