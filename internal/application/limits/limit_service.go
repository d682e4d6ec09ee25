package limits

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/limits"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LimitService handles spending limit CRUD and pre-flight expense checks
type LimitService struct {
	limitRepo   limits.Repository
	expenseRepo ledger.ExpenseRepository
	now         func() time.Time
}

// NewLimitService creates a new LimitService. A nil clock defaults to the
// wall clock.
func NewLimitService(limitRepo limits.Repository, expenseRepo ledger.ExpenseRepository, now func() time.Time) *LimitService {
	if now == nil {
		now = time.Now
	}
	return &LimitService{
		limitRepo:   limitRepo,
		expenseRepo: expenseRepo,
		now:         now,
	}
}

// Create sets a new spending limit. At most one limit may exist per
// (scope, period, category); the repository rejects duplicates with a
// conflict error.
func (s *LimitService) Create(ctx context.Context, userID uuid.UUID, req CreateLimitRequest) (*LimitResponse, error) {
	at := s.now()
	if req.At != nil {
		at = *req.At
	}

	limit, err := limits.NewLimit(userID, limits.Scope(req.Scope), req.Amount, req.Category, at)
	if err != nil {
		return nil, err
	}

	if err := s.limitRepo.Create(ctx, limit); err != nil {
		return nil, err
	}

	response := ToLimitResponse(limit)
	return &response, nil
}

// Update changes a limit's capped amount.
func (s *LimitService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateLimitRequest) (*LimitResponse, error) {
	limit, err := s.limitRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := limit.SetAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := s.limitRepo.Save(ctx, limit); err != nil {
		return nil, err
	}

	response := ToLimitResponse(limit)
	return &response, nil
}

// Delete removes a limit.
func (s *LimitService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	limit, err := s.limitRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.limitRepo.Delete(ctx, limit.ID)
}

// Get returns a single limit owned by the user.
func (s *LimitService) Get(ctx context.Context, userID, id uuid.UUID) (*LimitResponse, error) {
	limit, err := s.limitRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	response := ToLimitResponse(limit)
	return &response, nil
}

// List returns the user's limits.
func (s *LimitService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]LimitResponse, error) {
	all, err := s.limitRepo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]LimitResponse, 0, len(all))
	for i := range all {
		responses = append(responses, ToLimitResponse(&all[i]))
	}
	return responses, nil
}

// ListActive returns the limits whose period contains the current instant.
func (s *LimitService) ListActive(ctx context.Context, userID uuid.UUID) ([]LimitResponse, error) {
	active, err := s.limitRepo.FindActiveAt(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	responses := make([]LimitResponse, 0, len(active))
	for i := range active {
		responses = append(responses, ToLimitResponse(&active[i]))
	}
	return responses, nil
}

// CheckExpense evaluates a prospective expense against the user's active
// limits without recording anything. The check is advisory: Allowed is
// false when any limit would be exceeded, but recording the expense is
// never blocked.
func (s *LimitService) CheckExpense(ctx context.Context, userID uuid.UUID, req CheckExpenseRequest) (*CheckExpenseResponse, error) {
	evaluations, err := CheckSpend(ctx, s.limitRepo, s.expenseRepo, userID, req.Tag, req.Amount, s.now())
	if err != nil {
		return nil, err
	}

	resp := &CheckExpenseResponse{Allowed: true}
	for _, eval := range evaluations {
		resp.Evaluations = append(resp.Evaluations, ToEvaluationResponse(eval))
		if eval.Exceeded {
			resp.Allowed = false
			resp.Warnings = append(resp.Warnings, eval.Message())
		}
	}
	return resp, nil
}
