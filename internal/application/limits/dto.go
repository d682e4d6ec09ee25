package limits

import (
	"time"

	"github.com/fintrack/backend/internal/domain/limits"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateLimitRequest represents a request to set a spending limit. The
// period fields are derived from At (defaulting to now) according to Scope.
type CreateLimitRequest struct {
	Scope    string          `json:"scope" binding:"required,oneof=DAILY WEEKLY MONTHLY"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Category string          `json:"category" binding:"max=50"`
	At       *time.Time      `json:"at"`
}

// UpdateLimitRequest represents a request to change a limit's amount
type UpdateLimitRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CheckExpenseRequest represents a pre-flight check of a prospective expense
type CheckExpenseRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Tag    string          `json:"tag" binding:"max=50"`
}

// LimitResponse represents a spending limit in API responses
type LimitResponse struct {
	ID        uuid.UUID       `json:"id"`
	Scope     string          `json:"scope"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Month     int             `json:"month,omitempty"`
	Year      int             `json:"year,omitempty"`
	Week      int             `json:"week,omitempty"`
	Day       *time.Time      `json:"day,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToLimitResponse converts a domain limit to its response form
func ToLimitResponse(limit *limits.Limit) LimitResponse {
	resp := LimitResponse{
		ID:        limit.ID,
		Scope:     string(limit.Scope),
		Amount:    limit.Amount,
		Category:  limit.Category,
		Month:     limit.Month,
		Year:      limit.Year,
		Week:      limit.Week,
		CreatedAt: limit.CreatedAt,
		UpdatedAt: limit.UpdatedAt,
	}
	if !limit.Day.IsZero() {
		day := limit.Day
		resp.Day = &day
	}
	return resp
}

// EvaluationResponse represents one limit evaluation in API responses
type EvaluationResponse struct {
	Limit      LimitResponse   `json:"limit"`
	SpentSoFar decimal.Decimal `json:"spent_so_far"`
	Projected  decimal.Decimal `json:"projected"`
	Exceeded   bool            `json:"exceeded"`
	Message    string          `json:"message,omitempty"`
}

// ToEvaluationResponse converts a domain evaluation to its response form
func ToEvaluationResponse(eval limits.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		Limit:      ToLimitResponse(eval.Limit),
		SpentSoFar: eval.SpentSoFar,
		Projected:  eval.Projected,
		Exceeded:   eval.Exceeded,
		Message:    eval.Message(),
	}
}

// CheckExpenseResponse represents the outcome of a pre-flight expense check
type CheckExpenseResponse struct {
	Allowed     bool                 `json:"allowed"`
	Evaluations []EvaluationResponse `json:"evaluations"`
	Warnings    []string             `json:"warnings,omitempty"`
}
