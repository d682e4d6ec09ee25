package ledger

import (
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryKind identifies the variant of a money-moving ledger entry. The kind
// carries the sign of the balance delta the entry produces, so the balance
// ledger integration is written once and each entity service only supplies
// validation and field mapping.
type EntryKind string

const (
	KindIncome         EntryKind = "INCOME"
	KindExpense        EntryKind = "EXPENSE"
	KindInvestment     EntryKind = "INVESTMENT"
	KindLoanPayment    EntryKind = "LOAN_PAYMENT"
	KindMoneyLent      EntryKind = "MONEY_LENT"
	KindMoneyBorrowed  EntryKind = "MONEY_BORROWED"
	KindEMIReservation EntryKind = "EMI_RESERVATION"
	KindEMIInstallment EntryKind = "EMI_INSTALLMENT"
	KindSplitShare     EntryKind = "SPLIT_SHARE"
)

// String returns the string representation of the entry kind
func (k EntryKind) String() string {
	return string(k)
}

// IsValid returns true if the entry kind is known
func (k EntryKind) IsValid() bool {
	switch k {
	case KindIncome, KindExpense, KindInvestment, KindLoanPayment,
		KindMoneyLent, KindMoneyBorrowed, KindEMIReservation,
		KindEMIInstallment, KindSplitShare:
		return true
	}
	return false
}

// IsCredit returns true for kinds that increase the owner's balance.
// Income and borrowed money are credits; everything else is a debit.
func (k EntryKind) IsCredit() bool {
	switch k {
	case KindIncome, KindMoneyBorrowed:
		return true
	}
	return false
}

// Delta returns the signed balance delta for an entry of this kind with the
// given magnitude. The same function handles corrections: passing
// newAmount-oldAmount yields the compensating delta for an amount edit.
func (k EntryKind) Delta(amount decimal.Decimal) decimal.Decimal {
	if k.IsCredit() {
		return amount
	}
	return amount.Neg()
}

// ReversalDelta returns the delta that exactly undoes an entry of this kind,
// used when an entry is deleted.
func (k EntryKind) ReversalDelta(amount decimal.Decimal) decimal.Decimal {
	return k.Delta(amount).Neg()
}

// ValidateAmount rejects non-positive entry magnitudes.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewConsistencyError("amount must be positive, got %s", amount)
	}
	return nil
}
