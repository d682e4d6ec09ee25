package limits

import "github.com/shopspring/decimal"

// Evaluation is the outcome of checking a prospective expense against one
// limit: the spend already accumulated in the limit's period plus the new
// amount, compared to the cap.
type Evaluation struct {
	Limit      *Limit
	SpentSoFar decimal.Decimal
	Projected  decimal.Decimal
	Exceeded   bool
}

// Message is the user-facing warning for an exceeded limit.
func (e Evaluation) Message() string {
	if !e.Exceeded || e.Limit == nil {
		return ""
	}
	switch e.Limit.Scope {
	case ScopeDaily:
		return "Daily limit exceeded!"
	case ScopeWeekly:
		return "Weekly limit exceeded!"
	case ScopeMonthly:
		return "Monthly limit exceeded!"
	}
	return "Limit exceeded!"
}

// Evaluate projects the spend after adding amount and flags the result when
// the projection passes the cap.
func Evaluate(limit *Limit, spentSoFar, amount decimal.Decimal) Evaluation {
	projected := spentSoFar.Add(amount)
	return Evaluation{
		Limit:      limit,
		SpentSoFar: spentSoFar,
		Projected:  projected,
		Exceeded:   projected.GreaterThan(limit.Amount),
	}
}
