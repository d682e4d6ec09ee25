package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserModel is the persistence model for users
type UserModel struct {
	BaseModel
	Name         string          `gorm:"size:255;not null"`
	Email        string          `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string          `gorm:"size:255;not null"`
	Balance      decimal.Decimal `gorm:"type:decimal(20,8);not null"`
}

// TableName specifies the table name
func (UserModel) TableName() string { return "users" }

// ToDomain converts UserModel to domain User
func (m *UserModel) ToDomain() *ledger.User {
	return &ledger.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Balance:      m.Balance,
	}
}

// UserModelFromDomain creates a UserModel from domain User
func UserModelFromDomain(u *ledger.User) *UserModel {
	m := &UserModel{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Balance:      u.Balance,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}

// BalanceSnapshotModel is the persistence model for balance snapshots
type BalanceSnapshotModel struct {
	BaseModel
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_snapshot_period"`
	Current   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	LastWeek  decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	LastMonth decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Month     string          `gorm:"size:16;not null;uniqueIndex:idx_snapshot_period"`
	Week      int             `gorm:"not null;uniqueIndex:idx_snapshot_period"`
}

// TableName specifies the table name
func (BalanceSnapshotModel) TableName() string { return "balance_snapshots" }

// ToDomain converts BalanceSnapshotModel to domain BalanceSnapshot
func (m *BalanceSnapshotModel) ToDomain() *ledger.BalanceSnapshot {
	return &ledger.BalanceSnapshot{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Current:    m.Current,
		LastWeek:   m.LastWeek,
		LastMonth:  m.LastMonth,
		Month:      m.Month,
		Week:       m.Week,
	}
}

// BalanceSnapshotModelFromDomain creates a BalanceSnapshotModel from domain BalanceSnapshot
func BalanceSnapshotModelFromDomain(s *ledger.BalanceSnapshot) *BalanceSnapshotModel {
	m := &BalanceSnapshotModel{
		UserID:    s.UserID,
		Current:   s.Current,
		LastWeek:  s.LastWeek,
		LastMonth: s.LastMonth,
		Month:     s.Month,
		Week:      s.Week,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// IncomeModel is the persistence model for income entries
type IncomeModel struct {
	BaseModel
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Source     string          `gorm:"size:255;not null"`
	Tag        string          `gorm:"size:255"`
	CreditedAt time.Time       `gorm:"not null;index"`
	Month      string          `gorm:"size:16;not null;index"`
	Week       int             `gorm:"not null"`
}

// TableName specifies the table name
func (IncomeModel) TableName() string { return "incomes" }

// ToDomain converts IncomeModel to domain Income
func (m *IncomeModel) ToDomain() *ledger.Income {
	return &ledger.Income{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Amount:     m.Amount,
		Source:     m.Source,
		Tag:        m.Tag,
		CreditedAt: m.CreditedAt,
		Month:      m.Month,
		Week:       m.Week,
	}
}

// IncomeModelFromDomain creates an IncomeModel from domain Income
func IncomeModelFromDomain(i *ledger.Income) *IncomeModel {
	m := &IncomeModel{
		UserID:     i.UserID,
		Amount:     i.Amount,
		Source:     i.Source,
		Tag:        i.Tag,
		CreditedAt: i.CreditedAt,
		Month:      i.Month,
		Week:       i.Week,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// ExpenseModel is the persistence model for expense entries
type ExpenseModel struct {
	BaseModel
	UserID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount  decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Tag     string          `gorm:"size:255;not null;index"`
	SpentAt time.Time       `gorm:"not null;index"`
	Month   string          `gorm:"size:16;not null;index"`
	Week    int             `gorm:"not null"`
}

// TableName specifies the table name
func (ExpenseModel) TableName() string { return "expenses" }

// ToDomain converts ExpenseModel to domain Expense
func (m *ExpenseModel) ToDomain() *ledger.Expense {
	return &ledger.Expense{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Amount:     m.Amount,
		Tag:        m.Tag,
		SpentAt:    m.SpentAt,
		Month:      m.Month,
		Week:       m.Week,
	}
}

// ExpenseModelFromDomain creates an ExpenseModel from domain Expense
func ExpenseModelFromDomain(e *ledger.Expense) *ExpenseModel {
	m := &ExpenseModel{
		UserID:  e.UserID,
		Amount:  e.Amount,
		Tag:     e.Tag,
		SpentAt: e.SpentAt,
		Month:   e.Month,
		Week:    e.Week,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}

// InvestmentModel is the persistence model for investment entries
type InvestmentModel struct {
	BaseModel
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Instrument string          `gorm:"size:255;not null"`
	Type       string          `gorm:"size:64"`
	ROI        decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	Details    string          `gorm:"type:text"`
	InvestedAt time.Time       `gorm:"not null;index"`
	Month      string          `gorm:"size:16;not null;index"`
	Week       int             `gorm:"not null"`
}

// TableName specifies the table name
func (InvestmentModel) TableName() string { return "investments" }

// ToDomain converts InvestmentModel to domain Investment
func (m *InvestmentModel) ToDomain() *ledger.Investment {
	return &ledger.Investment{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Amount:     m.Amount,
		Instrument: m.Instrument,
		Type:       m.Type,
		ROI:        m.ROI,
		Details:    m.Details,
		InvestedAt: m.InvestedAt,
		Month:      m.Month,
		Week:       m.Week,
	}
}

// InvestmentModelFromDomain creates an InvestmentModel from domain Investment
func InvestmentModelFromDomain(v *ledger.Investment) *InvestmentModel {
	m := &InvestmentModel{
		UserID:     v.UserID,
		Amount:     v.Amount,
		Instrument: v.Instrument,
		Type:       v.Type,
		ROI:        v.ROI,
		Details:    v.Details,
		InvestedAt: v.InvestedAt,
		Month:      v.Month,
		Week:       v.Week,
	}
	m.FromDomainBaseEntity(v.BaseEntity)
	return m
}

// LoanModel is the persistence model for loans
type LoanModel struct {
	BaseModel
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Outstanding  decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	TenureMonths int             `gorm:"not null"`
	InterestRate decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	StartDate    time.Time       `gorm:"not null"`
	Description  string          `gorm:"type:text"`
}

// TableName specifies the table name
func (LoanModel) TableName() string { return "loans" }

// ToDomain converts LoanModel to domain Loan
func (m *LoanModel) ToDomain() *ledger.Loan {
	return &ledger.Loan{
		BaseEntity:   m.BaseModel.ToDomain(),
		UserID:       m.UserID,
		Amount:       m.Amount,
		Outstanding:  m.Outstanding,
		TenureMonths: m.TenureMonths,
		InterestRate: m.InterestRate,
		StartDate:    m.StartDate,
		Description:  m.Description,
	}
}

// LoanModelFromDomain creates a LoanModel from domain Loan
func LoanModelFromDomain(l *ledger.Loan) *LoanModel {
	m := &LoanModel{
		UserID:       l.UserID,
		Amount:       l.Amount,
		Outstanding:  l.Outstanding,
		TenureMonths: l.TenureMonths,
		InterestRate: l.InterestRate,
		StartDate:    l.StartDate,
		Description:  l.Description,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}

// LoanPaymentModel is the persistence model for loan payments
type LoanPaymentModel struct {
	BaseModel
	LoanID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	PaidAt time.Time       `gorm:"not null"`
}

// TableName specifies the table name
func (LoanPaymentModel) TableName() string { return "loan_payments" }

// ToDomain converts LoanPaymentModel to domain LoanPayment
func (m *LoanPaymentModel) ToDomain() *ledger.LoanPayment {
	return &ledger.LoanPayment{
		BaseEntity: m.BaseModel.ToDomain(),
		LoanID:     m.LoanID,
		Amount:     m.Amount,
		PaidAt:     m.PaidAt,
	}
}

// LoanPaymentModelFromDomain creates a LoanPaymentModel from domain LoanPayment
func LoanPaymentModelFromDomain(p *ledger.LoanPayment) *LoanPaymentModel {
	m := &LoanPaymentModel{
		LoanID: p.LoanID,
		Amount: p.Amount,
		PaidAt: p.PaidAt,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// SplitShareModel is the persistence model for split expense shares
type SplitShareModel struct {
	BaseModel
	ExpenseID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	AmountOwed   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	AmountPaid   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	PaidByUserID uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName specifies the table name
func (SplitShareModel) TableName() string { return "split_shares" }

// ToDomain converts SplitShareModel to domain SplitShare
func (m *SplitShareModel) ToDomain() *ledger.SplitShare {
	return &ledger.SplitShare{
		BaseEntity:   m.BaseModel.ToDomain(),
		ExpenseID:    m.ExpenseID,
		UserID:       m.UserID,
		AmountOwed:   m.AmountOwed,
		AmountPaid:   m.AmountPaid,
		PaidByUserID: m.PaidByUserID,
	}
}

// SplitShareModelFromDomain creates a SplitShareModel from domain SplitShare
func SplitShareModelFromDomain(s *ledger.SplitShare) *SplitShareModel {
	m := &SplitShareModel{
		ExpenseID:    s.ExpenseID,
		UserID:       s.UserID,
		AmountOwed:   s.AmountOwed,
		AmountPaid:   s.AmountPaid,
		PaidByUserID: s.PaidByUserID,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// EMIModel is the persistence model for EMI commitments
type EMIModel struct {
	BaseModel
	UserID                uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title                 string          `gorm:"size:255;not null"`
	TotalAmount           decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	NumInstallments       int             `gorm:"not null"`
	EMIAmount             decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	AmountPaid            decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	RemainingInstallments int             `gorm:"not null"`
	StartDate             time.Time       `gorm:"not null"`
	LinkedLoanID          *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName specifies the table name
func (EMIModel) TableName() string { return "emis" }

// ToDomain converts EMIModel to domain EMI
func (m *EMIModel) ToDomain() *ledger.EMI {
	return &ledger.EMI{
		BaseEntity:            m.BaseModel.ToDomain(),
		UserID:                m.UserID,
		Title:                 m.Title,
		TotalAmount:           m.TotalAmount,
		NumInstallments:       m.NumInstallments,
		EMIAmount:             m.EMIAmount,
		AmountPaid:            m.AmountPaid,
		RemainingInstallments: m.RemainingInstallments,
		StartDate:             m.StartDate,
		LinkedLoanID:          m.LinkedLoanID,
	}
}

// EMIModelFromDomain creates an EMIModel from domain EMI
func EMIModelFromDomain(e *ledger.EMI) *EMIModel {
	m := &EMIModel{
		UserID:                e.UserID,
		Title:                 e.Title,
		TotalAmount:           e.TotalAmount,
		NumInstallments:       e.NumInstallments,
		EMIAmount:             e.EMIAmount,
		AmountPaid:            e.AmountPaid,
		RemainingInstallments: e.RemainingInstallments,
		StartDate:             e.StartDate,
		LinkedLoanID:          e.LinkedLoanID,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}

// MoneyLentModel is the persistence model for informal lending records
type MoneyLentModel struct {
	BaseModel
	LenderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Borrower string          `gorm:"size:255;not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Purpose  string          `gorm:"type:text"`
	DueDate  *time.Time
}

// TableName specifies the table name
func (MoneyLentModel) TableName() string { return "money_lent" }

// ToDomain converts MoneyLentModel to domain MoneyLent
func (m *MoneyLentModel) ToDomain() *ledger.MoneyLent {
	return &ledger.MoneyLent{
		BaseEntity: m.BaseModel.ToDomain(),
		LenderID:   m.LenderID,
		Borrower:   m.Borrower,
		Amount:     m.Amount,
		Purpose:    m.Purpose,
		DueDate:    m.DueDate,
	}
}

// MoneyLentModelFromDomain creates a MoneyLentModel from domain MoneyLent
func MoneyLentModelFromDomain(l *ledger.MoneyLent) *MoneyLentModel {
	m := &MoneyLentModel{
		LenderID: l.LenderID,
		Borrower: l.Borrower,
		Amount:   l.Amount,
		Purpose:  l.Purpose,
		DueDate:  l.DueDate,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}

// MoneyBorrowedModel is the persistence model for informal borrowing records
type MoneyBorrowedModel struct {
	BaseModel
	BorrowerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Lender     string          `gorm:"size:255;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Purpose    string          `gorm:"type:text"`
	DueDate    *time.Time
}

// TableName specifies the table name
func (MoneyBorrowedModel) TableName() string { return "money_borrowed" }

// ToDomain converts MoneyBorrowedModel to domain MoneyBorrowed
func (m *MoneyBorrowedModel) ToDomain() *ledger.MoneyBorrowed {
	return &ledger.MoneyBorrowed{
		BaseEntity: m.BaseModel.ToDomain(),
		BorrowerID: m.BorrowerID,
		Lender:     m.Lender,
		Amount:     m.Amount,
		Purpose:    m.Purpose,
		DueDate:    m.DueDate,
	}
}

// MoneyBorrowedModelFromDomain creates a MoneyBorrowedModel from domain MoneyBorrowed
func MoneyBorrowedModelFromDomain(b *ledger.MoneyBorrowed) *MoneyBorrowedModel {
	m := &MoneyBorrowedModel{
		BorrowerID: b.BorrowerID,
		Lender:     b.Lender,
		Amount:     b.Amount,
		Purpose:    b.Purpose,
		DueDate:    b.DueDate,
	}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}
