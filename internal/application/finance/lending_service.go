package finance

import (
	"context"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LendingService handles informal money-lent and money-borrowed records.
// Lending out debits the balance; borrowing credits it.
type LendingService struct {
	scope  TransactionScope
	ledger *BalanceLedger
}

// NewLendingService creates a new LendingService
func NewLendingService(scope TransactionScope, balanceLedger *BalanceLedger) *LendingService {
	return &LendingService{
		scope:  scope,
		ledger: balanceLedger,
	}
}

// CreateLent records money lent to a counterparty and debits the lender.
func (s *LendingService) CreateLent(ctx context.Context, userID uuid.UUID, req CreateMoneyLentRequest) (*MoneyLentResponse, error) {
	lent, err := ledger.NewMoneyLent(userID, req.Borrower, req.Amount, req.Purpose, req.DueDate)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.MoneyLentRepo().Create(ctx, lent); err != nil {
			return err
		}
		_, err := s.ledger.Apply(ctx, repos, userID, ledger.KindMoneyLent.Delta(lent.Amount))
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToMoneyLentResponse(lent)
	return &response, nil
}

// UpdateLent edits a money-lent record's amount, shifting the balance by
// the kind-signed difference.
func (s *LendingService) UpdateLent(ctx context.Context, userID, id uuid.UUID, req UpdateLendingRequest) (*MoneyLentResponse, error) {
	var lent *ledger.MoneyLent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		lent, err = repos.MoneyLentRepo().FindByIDForUser(ctx, userID, id)
		if err != nil {
			return err
		}
		old, err := lent.SetAmount(req.Amount)
		if err != nil {
			return err
		}
		if err := repos.MoneyLentRepo().Save(ctx, lent); err != nil {
			return err
		}
		diff := lent.Amount.Sub(old)
		if diff.IsZero() {
			return nil
		}
		_, err = s.ledger.Apply(ctx, repos, userID, ledger.KindMoneyLent.Delta(diff))
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToMoneyLentResponse(lent)
	return &response, nil
}

// DeleteLent removes a money-lent record, crediting the amount back.
func (s *LendingService) DeleteLent(ctx context.Context, userID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		lent, err := repos.MoneyLentRepo().FindByIDForUser(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := repos.MoneyLentRepo().Delete(ctx, lent.ID); err != nil {
			return err
		}
		_, err = s.ledger.Apply(ctx, repos, userID, ledger.KindMoneyLent.ReversalDelta(lent.Amount))
		return err
	})
}

// ListLent returns the user's money-lent records.
func (s *LendingService) ListLent(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]MoneyLentResponse, error) {
	var records []ledger.MoneyLent
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		records, err = repos.MoneyLentRepo().FindAllForUser(ctx, userID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]MoneyLentResponse, 0, len(records))
	for i := range records {
		responses = append(responses, ToMoneyLentResponse(&records[i]))
	}
	return responses, nil
}

// CreateBorrowed records money borrowed from a counterparty and credits the
// borrower.
func (s *LendingService) CreateBorrowed(ctx context.Context, userID uuid.UUID, req CreateMoneyBorrowedRequest) (*MoneyBorrowedResponse, error) {
	borrowed, err := ledger.NewMoneyBorrowed(userID, req.Lender, req.Amount, req.Purpose, req.DueDate)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.MoneyBorrowedRepo().Create(ctx, borrowed); err != nil {
			return err
		}
		_, err := s.ledger.Apply(ctx, repos, userID, ledger.KindMoneyBorrowed.Delta(borrowed.Amount))
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToMoneyBorrowedResponse(borrowed)
	return &response, nil
}

// UpdateBorrowed edits a money-borrowed record's amount.
func (s *LendingService) UpdateBorrowed(ctx context.Context, userID, id uuid.UUID, req UpdateLendingRequest) (*MoneyBorrowedResponse, error) {
	var borrowed *ledger.MoneyBorrowed

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		borrowed, err = repos.MoneyBorrowedRepo().FindByIDForUser(ctx, userID, id)
		if err != nil {
			return err
		}
		old, err := borrowed.SetAmount(req.Amount)
		if err != nil {
			return err
		}
		if err := repos.MoneyBorrowedRepo().Save(ctx, borrowed); err != nil {
			return err
		}
		diff := borrowed.Amount.Sub(old)
		if diff.IsZero() {
			return nil
		}
		_, err = s.ledger.Apply(ctx, repos, userID, ledger.KindMoneyBorrowed.Delta(diff))
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToMoneyBorrowedResponse(borrowed)
	return &response, nil
}

// DeleteBorrowed removes a money-borrowed record, debiting the amount back.
func (s *LendingService) DeleteBorrowed(ctx context.Context, userID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		borrowed, err := repos.MoneyBorrowedRepo().FindByIDForUser(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := repos.MoneyBorrowedRepo().Delete(ctx, borrowed.ID); err != nil {
			return err
		}
		_, err = s.ledger.Apply(ctx, repos, userID, ledger.KindMoneyBorrowed.ReversalDelta(borrowed.Amount))
		return err
	})
}

// ListBorrowed returns the user's money-borrowed records.
func (s *LendingService) ListBorrowed(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]MoneyBorrowedResponse, error) {
	var records []ledger.MoneyBorrowed
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		records, err = repos.MoneyBorrowedRepo().FindAllForUser(ctx, userID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]MoneyBorrowedResponse, 0, len(records))
	for i := range records {
		responses = append(responses, ToMoneyBorrowedResponse(&records[i]))
	}
	return responses, nil
}
