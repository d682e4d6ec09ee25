package finance

import (
	"context"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// IncomeService handles income entries and their balance effects
type IncomeService struct {
	scope  TransactionScope
	ledger *BalanceLedger
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(scope TransactionScope, balanceLedger *BalanceLedger) *IncomeService {
	return &IncomeService{
		scope:  scope,
		ledger: balanceLedger,
	}
}

// Create records an income entry and credits the user's balance atomically.
func (s *IncomeService) Create(ctx context.Context, userID uuid.UUID, req CreateIncomeRequest) (*IncomeResponse, error) {
	creditedAt := s.ledger.Now()
	if req.CreditedAt != nil {
		creditedAt = *req.CreditedAt
	}

	income, err := ledger.NewIncome(userID, req.Amount, req.Source, req.Tag, creditedAt)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.IncomeRepo().Create(ctx, income); err != nil {
			return err
		}
		_, err := s.ledger.Apply(ctx, repos, userID, ledger.KindIncome.Delta(income.Amount))
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToIncomeResponse(income)
	return &response, nil
}

// Update edits an income entry. The balance moves by the signed difference
// between the new and old amounts.
func (s *IncomeService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateIncomeRequest) (*IncomeResponse, error) {
	var income *ledger.Income

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		income, err = repos.IncomeRepo().FindByIDForUser(ctx, userID, id)
		if err != nil {
			return err
		}

		if req.Amount != nil {
			old, err := income.SetAmount(*req.Amount)
			if err != nil {
				return err
			}
			diff := income.Amount.Sub(old)
			if !diff.IsZero() {
				if _, err := s.ledger.Apply(ctx, repos, userID, ledger.KindIncome.Delta(diff)); err != nil {
					return err
				}
			}
		}
		if req.Source != nil {
			income.Source = *req.Source
		}
		if req.Tag != nil {
			income.Tag = *req.Tag
		}
		if req.CreditedAt != nil {
			if err := income.Reschedule(*req.CreditedAt); err != nil {
				return err
			}
		}

		return repos.IncomeRepo().Save(ctx, income)
	})
	if err != nil {
		return nil, err
	}

	response := ToIncomeResponse(income)
	return &response, nil
}

// Delete removes an income entry, reversing its credit exactly.
func (s *IncomeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		income, err := repos.IncomeRepo().FindByIDForUser(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := repos.IncomeRepo().Delete(ctx, income.ID); err != nil {
			return err
		}
		_, err = s.ledger.Apply(ctx, repos, userID, ledger.KindIncome.ReversalDelta(income.Amount))
		return err
	})
}

// Get returns a single income entry owned by the user.
func (s *IncomeService) Get(ctx context.Context, userID, id uuid.UUID) (*IncomeResponse, error) {
	var income *ledger.Income
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		income, err = repos.IncomeRepo().FindByIDForUser(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToIncomeResponse(income)
	return &response, nil
}

// List returns the user's income entries, newest first.
func (s *IncomeService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]IncomeResponse, error) {
	var incomes []ledger.Income
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		incomes, err = repos.IncomeRepo().FindAllForUser(ctx, userID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]IncomeResponse, 0, len(incomes))
	for i := range incomes {
		responses = append(responses, ToIncomeResponse(&incomes[i]))
	}
	return responses, nil
}

// ListByMonth returns the user's income entries for one month key
func (s *IncomeService) ListByMonth(ctx context.Context, userID uuid.UUID, month string) ([]IncomeResponse, error) {
	if _, err := period.ParseMonthKey(month); err != nil {
		return nil, err
	}

	var incomes []ledger.Income
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		incomes, err = repos.IncomeRepo().FindByMonthForUser(ctx, userID, month)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]IncomeResponse, 0, len(incomes))
	for i := range incomes {
		responses = append(responses, ToIncomeResponse(&incomes[i]))
	}
	return responses, nil
}
