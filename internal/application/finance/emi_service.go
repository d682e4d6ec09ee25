package finance

import (
	"context"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EMIService handles EMI commitments. All balance movements go through the
// injected debit policy so the reservation/installment accounting can be
// changed in one place.
type EMIService struct {
	scope  TransactionScope
	ledger *BalanceLedger
	policy ledger.EMIDebitPolicy
}

// NewEMIService creates a new EMIService. A nil policy defaults to the
// observed reservation-plus-installment behavior.
func NewEMIService(scope TransactionScope, balanceLedger *BalanceLedger, policy ledger.EMIDebitPolicy) *EMIService {
	if policy == nil {
		policy = ledger.DefaultEMIDebitPolicy
	}
	return &EMIService{
		scope:  scope,
		ledger: balanceLedger,
		policy: policy,
	}
}

// Create registers an EMI commitment and applies the reservation debit.
func (s *EMIService) Create(ctx context.Context, userID uuid.UUID, req CreateEMIRequest) (*EMIResponse, error) {
	startDate := s.ledger.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	emi, err := ledger.NewEMI(userID, req.Title, req.TotalAmount, req.NumInstallments, startDate, req.LinkedLoanID)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if req.LinkedLoanID != nil {
			if _, err := repos.LoanRepo().FindByIDForUser(ctx, userID, *req.LinkedLoanID); err != nil {
				return err
			}
		}
		if err := repos.EMIRepo().Create(ctx, emi); err != nil {
			return err
		}
		delta := s.policy(ledger.EMIDebitReservation, emi, emi.TotalAmount)
		if delta.IsZero() {
			return nil
		}
		_, err := s.ledger.Apply(ctx, repos, userID, delta)
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToEMIResponse(emi)
	return &response, nil
}

// RecordInstallment pays one installment. A zero request amount defaults to
// the EMI's derived per-installment amount. The EMI row is locked so
// concurrent payments decrement the remaining count exactly once each.
func (s *EMIService) RecordInstallment(ctx context.Context, userID, emiID uuid.UUID, req RecordEMIInstallmentRequest) (*EMIResponse, error) {
	var emi *ledger.EMI

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		emi, err = repos.EMIRepo().FindByIDForUserForUpdate(ctx, userID, emiID)
		if err != nil {
			return err
		}

		amount := req.Amount
		if amount.IsZero() {
			amount = emi.EMIAmount
		}
		if err := emi.RecordInstallment(amount); err != nil {
			return err
		}
		if err := repos.EMIRepo().Save(ctx, emi); err != nil {
			return err
		}

		delta := s.policy(ledger.EMIDebitInstallment, emi, amount)
		if delta.IsZero() {
			return nil
		}
		_, err = s.ledger.Apply(ctx, repos, userID, delta)
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToEMIResponse(emi)
	return &response, nil
}

// Delete removes an EMI, releasing the unpaid remainder of the reservation
// back to the balance.
func (s *EMIService) Delete(ctx context.Context, userID, emiID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		emi, err := repos.EMIRepo().FindByIDForUserForUpdate(ctx, userID, emiID)
		if err != nil {
			return err
		}
		if err := repos.EMIRepo().Delete(ctx, emi.ID); err != nil {
			return err
		}
		delta := s.policy(ledger.EMIDebitRefund, emi, emi.RefundableAmount())
		if delta.IsZero() {
			return nil
		}
		_, err = s.ledger.Apply(ctx, repos, userID, delta)
		return err
	})
}

// Get returns a single EMI owned by the user.
func (s *EMIService) Get(ctx context.Context, userID, emiID uuid.UUID) (*EMIResponse, error) {
	var emi *ledger.EMI
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		emi, err = repos.EMIRepo().FindByIDForUser(ctx, userID, emiID)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToEMIResponse(emi)
	return &response, nil
}

// List returns the user's EMI commitments.
func (s *EMIService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]EMIResponse, error) {
	var emis []ledger.EMI
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		emis, err = repos.EMIRepo().FindAllForUser(ctx, userID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]EMIResponse, 0, len(emis))
	for i := range emis {
		responses = append(responses, ToEMIResponse(&emis[i]))
	}
	return responses, nil
}
