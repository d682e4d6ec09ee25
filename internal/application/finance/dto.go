package finance

import (
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Income DTOs
// =============================================================================

// CreateIncomeRequest represents a request to record an income entry
type CreateIncomeRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Source     string          `json:"source" binding:"max=100"`
	Tag        string          `json:"tag" binding:"max=50"`
	CreditedAt *time.Time      `json:"credited_at"`
}

// UpdateIncomeRequest represents a request to edit an income entry
type UpdateIncomeRequest struct {
	Amount     *decimal.Decimal `json:"amount"`
	Source     *string          `json:"source" binding:"omitempty,max=100"`
	Tag        *string          `json:"tag" binding:"omitempty,max=50"`
	CreditedAt *time.Time       `json:"credited_at"`
}

// IncomeResponse represents an income entry in API responses
type IncomeResponse struct {
	ID         uuid.UUID       `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Source     string          `json:"source"`
	Tag        string          `json:"tag"`
	CreditedAt time.Time       `json:"credited_at"`
	Month      string          `json:"month"`
	Week       int             `json:"week"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToIncomeResponse converts a domain income to its response form
func ToIncomeResponse(income *ledger.Income) IncomeResponse {
	return IncomeResponse{
		ID:         income.ID,
		Amount:     income.Amount,
		Source:     income.Source,
		Tag:        income.Tag,
		CreditedAt: income.CreditedAt,
		Month:      income.Month,
		Week:       income.Week,
		CreatedAt:  income.CreatedAt,
		UpdatedAt:  income.UpdatedAt,
	}
}

// =============================================================================
// Expense DTOs
// =============================================================================

// SplitParticipantRequest names one participant's share of a split expense
type SplitParticipantRequest struct {
	UserID     uuid.UUID       `json:"user_id" binding:"required"`
	AmountOwed decimal.Decimal `json:"amount_owed" binding:"required"`
}

// CreateExpenseRequest represents a request to record an expense. When
// Splits is non-empty the authenticated user is the payer and each listed
// participant owes their share back.
type CreateExpenseRequest struct {
	Amount  decimal.Decimal           `json:"amount" binding:"required"`
	Tag     string                    `json:"tag" binding:"max=50"`
	SpentAt *time.Time                `json:"spent_at"`
	Splits  []SplitParticipantRequest `json:"splits" binding:"omitempty,dive"`
}

// UpdateExpenseRequest represents a request to edit an expense
type UpdateExpenseRequest struct {
	Amount  *decimal.Decimal          `json:"amount"`
	Tag     *string                   `json:"tag" binding:"omitempty,max=50"`
	SpentAt *time.Time                `json:"spent_at"`
	Splits  []SplitParticipantRequest `json:"splits" binding:"omitempty,dive"`
}

// SplitShareResponse represents one participant share in API responses
type SplitShareResponse struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	AmountOwed   decimal.Decimal `json:"amount_owed"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	PaidByUserID uuid.UUID       `json:"paid_by_user_id"`
}

// ExpenseResponse represents an expense entry in API responses
type ExpenseResponse struct {
	ID        uuid.UUID            `json:"id"`
	Amount    decimal.Decimal      `json:"amount"`
	Tag       string               `json:"tag"`
	SpentAt   time.Time            `json:"spent_at"`
	Month     string               `json:"month"`
	Week      int                  `json:"week"`
	Splits    []SplitShareResponse `json:"splits,omitempty"`
	Warnings  []string             `json:"warnings,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// ToExpenseResponse converts a domain expense to its response form
func ToExpenseResponse(expense *ledger.Expense, shares []ledger.SplitShare, warnings []string) ExpenseResponse {
	resp := ExpenseResponse{
		ID:        expense.ID,
		Amount:    expense.Amount,
		Tag:       expense.Tag,
		SpentAt:   expense.SpentAt,
		Month:     expense.Month,
		Week:      expense.Week,
		Warnings:  warnings,
		CreatedAt: expense.CreatedAt,
		UpdatedAt: expense.UpdatedAt,
	}
	for i := range shares {
		resp.Splits = append(resp.Splits, SplitShareResponse{
			ID:           shares[i].ID,
			UserID:       shares[i].UserID,
			AmountOwed:   shares[i].AmountOwed,
			AmountPaid:   shares[i].AmountPaid,
			PaidByUserID: shares[i].PaidByUserID,
		})
	}
	return resp
}

// =============================================================================
// Investment DTOs
// =============================================================================

// CreateInvestmentRequest represents a request to record an investment
type CreateInvestmentRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Instrument string          `json:"instrument" binding:"required,max=100"`
	Type       string          `json:"type" binding:"max=50"`
	ROI        decimal.Decimal `json:"roi"`
	Details    string          `json:"details" binding:"max=500"`
	InvestedAt *time.Time      `json:"invested_at"`
}

// UpdateInvestmentRequest represents a request to edit an investment
type UpdateInvestmentRequest struct {
	Amount     *decimal.Decimal `json:"amount"`
	Instrument *string          `json:"instrument" binding:"omitempty,max=100"`
	Type       *string          `json:"type" binding:"omitempty,max=50"`
	ROI        *decimal.Decimal `json:"roi"`
	Details    *string          `json:"details" binding:"omitempty,max=500"`
	InvestedAt *time.Time       `json:"invested_at"`
}

// InvestmentResponse represents an investment in API responses
type InvestmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	Amount         decimal.Decimal `json:"amount"`
	Instrument     string          `json:"instrument"`
	Type           string          `json:"type"`
	ROI            decimal.Decimal `json:"roi"`
	Details        string          `json:"details"`
	ExpectedProfit decimal.Decimal `json:"expected_profit"`
	InvestedAt     time.Time       `json:"invested_at"`
	Month          string          `json:"month"`
	Week           int             `json:"week"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// InvestmentSummaryResponse totals a user's invested principal and the
// profit projected by the recorded ROIs
type InvestmentSummaryResponse struct {
	TotalInvested  decimal.Decimal `json:"total_invested"`
	ExpectedProfit decimal.Decimal `json:"expected_profit"`
	Count          int64           `json:"count"`
}

// ToInvestmentResponse converts a domain investment to its response form
func ToInvestmentResponse(inv *ledger.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:             inv.ID,
		Amount:         inv.Amount,
		Instrument:     inv.Instrument,
		Type:           inv.Type,
		ROI:            inv.ROI,
		Details:        inv.Details,
		ExpectedProfit: inv.ExpectedProfit(),
		InvestedAt:     inv.InvestedAt,
		Month:          inv.Month,
		Week:           inv.Week,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

// =============================================================================
// Loan DTOs
// =============================================================================

// CreateLoanRequest represents a request to register a loan
type CreateLoanRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	TenureMonths int             `json:"tenure_months" binding:"required,min=1"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	StartDate    *time.Time      `json:"start_date"`
	Description  string          `json:"description" binding:"max=500"`
}

// RecordLoanPaymentRequest represents a request to pay against a loan
type RecordLoanPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	PaidAt *time.Time      `json:"paid_at"`
}

// UpdateLoanPaymentRequest represents a request to edit a loan payment
type UpdateLoanPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// LoanResponse represents a loan in API responses
type LoanResponse struct {
	ID           uuid.UUID       `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	TenureMonths int             `json:"tenure_months"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	StartDate    time.Time       `json:"start_date"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToLoanResponse converts a domain loan to its response form
func ToLoanResponse(loan *ledger.Loan) LoanResponse {
	return LoanResponse{
		ID:           loan.ID,
		Amount:       loan.Amount,
		Outstanding:  loan.Outstanding,
		TenureMonths: loan.TenureMonths,
		InterestRate: loan.InterestRate,
		StartDate:    loan.StartDate,
		Description:  loan.Description,
		CreatedAt:    loan.CreatedAt,
		UpdatedAt:    loan.UpdatedAt,
	}
}

// LoanPaymentResponse represents a loan payment in API responses
type LoanPaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	LoanID    uuid.UUID       `json:"loan_id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToLoanPaymentResponse converts a domain loan payment to its response form
func ToLoanPaymentResponse(payment *ledger.LoanPayment) LoanPaymentResponse {
	return LoanPaymentResponse{
		ID:        payment.ID,
		LoanID:    payment.LoanID,
		Amount:    payment.Amount,
		PaidAt:    payment.PaidAt,
		CreatedAt: payment.CreatedAt,
	}
}

// =============================================================================
// EMI DTOs
// =============================================================================

// CreateEMIRequest represents a request to register an EMI commitment
type CreateEMIRequest struct {
	Title           string          `json:"title" binding:"required,max=200"`
	TotalAmount     decimal.Decimal `json:"total_amount" binding:"required"`
	NumInstallments int             `json:"num_installments" binding:"required,min=1"`
	StartDate       *time.Time      `json:"start_date"`
	LinkedLoanID    *uuid.UUID      `json:"linked_loan_id"`
}

// RecordEMIInstallmentRequest represents a request to pay one installment.
// A zero amount defaults to the EMI's derived per-installment amount.
type RecordEMIInstallmentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// EMIResponse represents an EMI commitment in API responses
type EMIResponse struct {
	ID                    uuid.UUID       `json:"id"`
	Title                 string          `json:"title"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	NumInstallments       int             `json:"num_installments"`
	EMIAmount             decimal.Decimal `json:"emi_amount"`
	AmountPaid            decimal.Decimal `json:"amount_paid"`
	RemainingInstallments int             `json:"remaining_installments"`
	StartDate             time.Time       `json:"start_date"`
	LinkedLoanID          *uuid.UUID      `json:"linked_loan_id,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// ToEMIResponse converts a domain EMI to its response form
func ToEMIResponse(emi *ledger.EMI) EMIResponse {
	return EMIResponse{
		ID:                    emi.ID,
		Title:                 emi.Title,
		TotalAmount:           emi.TotalAmount,
		NumInstallments:       emi.NumInstallments,
		EMIAmount:             emi.EMIAmount,
		AmountPaid:            emi.AmountPaid,
		RemainingInstallments: emi.RemainingInstallments,
		StartDate:             emi.StartDate,
		LinkedLoanID:          emi.LinkedLoanID,
		CreatedAt:             emi.CreatedAt,
		UpdatedAt:             emi.UpdatedAt,
	}
}

// =============================================================================
// Lending DTOs
// =============================================================================

// CreateMoneyLentRequest represents a request to record money lent out
type CreateMoneyLentRequest struct {
	Borrower string          `json:"borrower" binding:"required,max=100"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Purpose  string          `json:"purpose" binding:"max=500"`
	DueDate  *time.Time      `json:"due_date"`
}

// CreateMoneyBorrowedRequest represents a request to record money borrowed
type CreateMoneyBorrowedRequest struct {
	Lender  string          `json:"lender" binding:"required,max=100"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Purpose string          `json:"purpose" binding:"max=500"`
	DueDate *time.Time      `json:"due_date"`
}

// UpdateLendingRequest represents a request to edit a lending record's amount
type UpdateLendingRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// MoneyLentResponse represents a money-lent record in API responses
type MoneyLentResponse struct {
	ID        uuid.UUID       `json:"id"`
	Borrower  string          `json:"borrower"`
	Amount    decimal.Decimal `json:"amount"`
	Purpose   string          `json:"purpose"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToMoneyLentResponse converts a domain money-lent record to its response form
func ToMoneyLentResponse(lent *ledger.MoneyLent) MoneyLentResponse {
	return MoneyLentResponse{
		ID:        lent.ID,
		Borrower:  lent.Borrower,
		Amount:    lent.Amount,
		Purpose:   lent.Purpose,
		DueDate:   lent.DueDate,
		CreatedAt: lent.CreatedAt,
		UpdatedAt: lent.UpdatedAt,
	}
}

// MoneyBorrowedResponse represents a money-borrowed record in API responses
type MoneyBorrowedResponse struct {
	ID        uuid.UUID       `json:"id"`
	Lender    string          `json:"lender"`
	Amount    decimal.Decimal `json:"amount"`
	Purpose   string          `json:"purpose"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToMoneyBorrowedResponse converts a domain money-borrowed record to its response form
func ToMoneyBorrowedResponse(borrowed *ledger.MoneyBorrowed) MoneyBorrowedResponse {
	return MoneyBorrowedResponse{
		ID:        borrowed.ID,
		Lender:    borrowed.Lender,
		Amount:    borrowed.Amount,
		Purpose:   borrowed.Purpose,
		DueDate:   borrowed.DueDate,
		CreatedAt: borrowed.CreatedAt,
		UpdatedAt: borrowed.UpdatedAt,
	}
}

// =============================================================================
// Balance DTOs
// =============================================================================

// BalanceResponse represents the user's current balance
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// SnapshotResponse represents one period snapshot in API responses
type SnapshotResponse struct {
	Month     string          `json:"month"`
	Week      int             `json:"week"`
	Current   decimal.Decimal `json:"current"`
	LastWeek  decimal.Decimal `json:"last_week"`
	LastMonth decimal.Decimal `json:"last_month"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToSnapshotResponse converts a domain snapshot to its response form
func ToSnapshotResponse(snap *ledger.BalanceSnapshot) SnapshotResponse {
	return SnapshotResponse{
		Month:     snap.Month,
		Week:      snap.Week,
		Current:   snap.Current,
		LastWeek:  snap.LastWeek,
		LastMonth: snap.LastMonth,
		UpdatedAt: snap.UpdatedAt,
	}
}
