package finance

import (
	"context"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentService handles investment entries and their balance effects
type InvestmentService struct {
	scope  TransactionScope
	ledger *BalanceLedger
}

// NewInvestmentService creates a new InvestmentService
func NewInvestmentService(scope TransactionScope, balanceLedger *BalanceLedger) *InvestmentService {
	return &InvestmentService{
		scope:  scope,
		ledger: balanceLedger,
	}
}

// Create records an investment and debits the user's balance atomically.
func (s *InvestmentService) Create(ctx context.Context, userID uuid.UUID, req CreateInvestmentRequest) (*InvestmentResponse, error) {
	investedAt := s.ledger.Now()
	if req.InvestedAt != nil {
		investedAt = *req.InvestedAt
	}

	investment, err := ledger.NewInvestment(userID, req.Amount, req.Instrument, req.Type, req.ROI, req.Details, investedAt)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.InvestmentRepo().Create(ctx, investment); err != nil {
			return err
		}
		_, err := s.ledger.Apply(ctx, repos, userID, ledger.KindInvestment.Delta(investment.Amount))
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToInvestmentResponse(investment)
	return &response, nil
}

// Update edits an investment. The balance moves by the kind-signed
// difference between the new and old amounts.
func (s *InvestmentService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateInvestmentRequest) (*InvestmentResponse, error) {
	var investment *ledger.Investment

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		investment, err = repos.InvestmentRepo().FindByIDForUser(ctx, userID, id)
		if err != nil {
			return err
		}

		if req.Amount != nil {
			old, err := investment.SetAmount(*req.Amount)
			if err != nil {
				return err
			}
			diff := investment.Amount.Sub(old)
			if !diff.IsZero() {
				if _, err := s.ledger.Apply(ctx, repos, userID, ledger.KindInvestment.Delta(diff)); err != nil {
					return err
				}
			}
		}
		if req.Instrument != nil {
			investment.Instrument = *req.Instrument
		}
		if req.Type != nil {
			investment.Type = *req.Type
		}
		if req.ROI != nil {
			investment.ROI = *req.ROI
		}
		if req.Details != nil {
			investment.Details = *req.Details
		}
		if req.InvestedAt != nil {
			if err := investment.Reschedule(*req.InvestedAt); err != nil {
				return err
			}
		}

		return repos.InvestmentRepo().Save(ctx, investment)
	})
	if err != nil {
		return nil, err
	}

	response := ToInvestmentResponse(investment)
	return &response, nil
}

// Delete removes an investment, reversing its debit exactly.
func (s *InvestmentService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		investment, err := repos.InvestmentRepo().FindByIDForUser(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := repos.InvestmentRepo().Delete(ctx, investment.ID); err != nil {
			return err
		}
		_, err = s.ledger.Apply(ctx, repos, userID, ledger.KindInvestment.ReversalDelta(investment.Amount))
		return err
	})
}

// Get returns a single investment owned by the user.
func (s *InvestmentService) Get(ctx context.Context, userID, id uuid.UUID) (*InvestmentResponse, error) {
	var investment *ledger.Investment
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		investment, err = repos.InvestmentRepo().FindByIDForUser(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToInvestmentResponse(investment)
	return &response, nil
}

// ProfitSummary totals the user's invested principal and the profit the
// recorded ROIs project.
func (s *InvestmentService) ProfitSummary(ctx context.Context, userID uuid.UUID) (*InvestmentSummaryResponse, error) {
	var investments []ledger.Investment
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		investments, err = repos.InvestmentRepo().FindAllForUser(ctx, userID, shared.Filter{})
		return err
	})
	if err != nil {
		return nil, err
	}

	summary := &InvestmentSummaryResponse{
		TotalInvested:  decimal.Zero,
		ExpectedProfit: decimal.Zero,
		Count:          int64(len(investments)),
	}
	for i := range investments {
		summary.TotalInvested = summary.TotalInvested.Add(investments[i].Amount)
		summary.ExpectedProfit = summary.ExpectedProfit.Add(investments[i].ExpectedProfit())
	}
	return summary, nil
}

// List returns the user's investments, newest first.
func (s *InvestmentService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]InvestmentResponse, error) {
	var investments []ledger.Investment
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		investments, err = repos.InvestmentRepo().FindAllForUser(ctx, userID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]InvestmentResponse, 0, len(investments))
	for i := range investments {
		responses = append(responses, ToInvestmentResponse(&investments[i]))
	}
	return responses, nil
}

// ListByMonth returns the user's investments for one month key
func (s *InvestmentService) ListByMonth(ctx context.Context, userID uuid.UUID, month string) ([]InvestmentResponse, error) {
	if _, err := period.ParseMonthKey(month); err != nil {
		return nil, err
	}

	var investments []ledger.Investment
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		investments, err = repos.InvestmentRepo().FindByMonthForUser(ctx, userID, month)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]InvestmentResponse, 0, len(investments))
	for i := range investments {
		responses = append(responses, ToInvestmentResponse(&investments[i]))
	}
	return responses, nil
}
