package finance

import (
	"context"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LoanService handles loans and the payments recorded against them.
// Registering a loan never moves the balance; only payments do.
type LoanService struct {
	scope  TransactionScope
	ledger *BalanceLedger
}

// NewLoanService creates a new LoanService
func NewLoanService(scope TransactionScope, balanceLedger *BalanceLedger) *LoanService {
	return &LoanService{
		scope:  scope,
		ledger: balanceLedger,
	}
}

// Create registers a loan with outstanding equal to the principal.
func (s *LoanService) Create(ctx context.Context, userID uuid.UUID, req CreateLoanRequest) (*LoanResponse, error) {
	startDate := s.ledger.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	loan, err := ledger.NewLoan(userID, req.Amount, req.TenureMonths, req.InterestRate, startDate, req.Description)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.LoanRepo().Create(ctx, loan)
	})
	if err != nil {
		return nil, err
	}

	response := ToLoanResponse(loan)
	return &response, nil
}

// RecordPayment pays against a loan: outstanding drops, the balance is
// debited, and a payment row is written, all atomically. A payment larger
// than the outstanding amount is rejected and nothing moves.
func (s *LoanService) RecordPayment(ctx context.Context, userID, loanID uuid.UUID, req RecordLoanPaymentRequest) (*LoanPaymentResponse, error) {
	paidAt := s.ledger.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	var payment *ledger.LoanPayment

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		loan, err := repos.LoanRepo().FindByIDForUserForUpdate(ctx, userID, loanID)
		if err != nil {
			return err
		}
		if err := loan.RecordPayment(req.Amount); err != nil {
			return err
		}
		if err := repos.LoanRepo().Save(ctx, loan); err != nil {
			return err
		}

		payment, err = ledger.NewLoanPayment(loan.ID, req.Amount, paidAt)
		if err != nil {
			return err
		}
		if err := repos.LoanPaymentRepo().Create(ctx, payment); err != nil {
			return err
		}

		_, err = s.ledger.Apply(ctx, repos, userID, ledger.KindLoanPayment.Delta(payment.Amount))
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToLoanPaymentResponse(payment)
	return &response, nil
}

// UpdatePayment edits a payment's amount. Outstanding and the balance both
// shift by the signed difference, bounded by [0, principal].
func (s *LoanService) UpdatePayment(ctx context.Context, userID, paymentID uuid.UUID, req UpdateLoanPaymentRequest) (*LoanPaymentResponse, error) {
	var payment *ledger.LoanPayment

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		payment, err = repos.LoanPaymentRepo().FindByIDForUser(ctx, userID, paymentID)
		if err != nil {
			return err
		}
		if err := ledger.ValidateAmount(req.Amount); err != nil {
			return err
		}

		loan, err := repos.LoanRepo().FindByIDForUserForUpdate(ctx, userID, payment.LoanID)
		if err != nil {
			return err
		}

		diff := req.Amount.Sub(payment.Amount)
		if diff.IsZero() {
			return nil
		}
		if err := loan.AdjustPayment(diff); err != nil {
			return err
		}
		if err := repos.LoanRepo().Save(ctx, loan); err != nil {
			return err
		}

		payment.Amount = req.Amount
		if err := repos.LoanPaymentRepo().Save(ctx, payment); err != nil {
			return err
		}

		_, err = s.ledger.Apply(ctx, repos, userID, ledger.KindLoanPayment.Delta(diff))
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToLoanPaymentResponse(payment)
	return &response, nil
}

// DeletePayment removes a payment, restoring outstanding and crediting the
// balance back.
func (s *LoanService) DeletePayment(ctx context.Context, userID, paymentID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		payment, err := repos.LoanPaymentRepo().FindByIDForUser(ctx, userID, paymentID)
		if err != nil {
			return err
		}

		loan, err := repos.LoanRepo().FindByIDForUserForUpdate(ctx, userID, payment.LoanID)
		if err != nil {
			return err
		}
		if err := loan.RestorePayment(payment.Amount); err != nil {
			return err
		}
		if err := repos.LoanRepo().Save(ctx, loan); err != nil {
			return err
		}

		if err := repos.LoanPaymentRepo().Delete(ctx, payment.ID); err != nil {
			return err
		}

		_, err = s.ledger.Apply(ctx, repos, userID, ledger.KindLoanPayment.ReversalDelta(payment.Amount))
		return err
	})
}

// Delete removes a loan and its payment history. Past payments stay applied
// to the balance; deleting the loan only drops the liability record.
func (s *LoanService) Delete(ctx context.Context, userID, loanID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		loan, err := repos.LoanRepo().FindByIDForUser(ctx, userID, loanID)
		if err != nil {
			return err
		}
		payments, err := repos.LoanPaymentRepo().FindByLoan(ctx, loan.ID)
		if err != nil {
			return err
		}
		for i := range payments {
			if err := repos.LoanPaymentRepo().Delete(ctx, payments[i].ID); err != nil {
				return err
			}
		}
		return repos.LoanRepo().Delete(ctx, loan.ID)
	})
}

// Get returns a single loan owned by the user.
func (s *LoanService) Get(ctx context.Context, userID, loanID uuid.UUID) (*LoanResponse, error) {
	var loan *ledger.Loan
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		loan, err = repos.LoanRepo().FindByIDForUser(ctx, userID, loanID)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToLoanResponse(loan)
	return &response, nil
}

// List returns the user's loans.
func (s *LoanService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]LoanResponse, error) {
	var loans []ledger.Loan
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		loans, err = repos.LoanRepo().FindAllForUser(ctx, userID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]LoanResponse, 0, len(loans))
	for i := range loans {
		responses = append(responses, ToLoanResponse(&loans[i]))
	}
	return responses, nil
}

// ListPayments returns the payments recorded against one loan.
func (s *LoanService) ListPayments(ctx context.Context, userID, loanID uuid.UUID) ([]LoanPaymentResponse, error) {
	var payments []ledger.LoanPayment
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		loan, err := repos.LoanRepo().FindByIDForUser(ctx, userID, loanID)
		if err != nil {
			return err
		}
		payments, err = repos.LoanPaymentRepo().FindByLoan(ctx, loan.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]LoanPaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToLoanPaymentResponse(&payments[i]))
	}
	return responses, nil
}
