package finance

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/domain/ledger"
)

func TestEMIService_CreateReservesFullTotal(t *testing.T) {
	env := newTestEnv(5000)
	svc := NewEMIService(env.scope, env.ledger, nil)

	resp, err := svc.Create(context.Background(), env.user.ID, CreateEMIRequest{
		Title:           "phone",
		TotalAmount:     decimal.NewFromInt(1200),
		NumInstallments: 12,
	})
	require.NoError(t, err)

	assert.True(t, env.balanceOf(env.user.ID).Equal(decimal.NewFromInt(3800)))
	assert.True(t, resp.EMIAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 12, resp.RemainingInstallments)
}

func TestEMIService_InstallmentDebitsAgainUnderDefaultPolicy(t *testing.T) {
	env := newTestEnv(5000)
	svc := NewEMIService(env.scope, env.ledger, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, env.user.ID, CreateEMIRequest{
		Title: "phone", TotalAmount: decimal.NewFromInt(1200), NumInstallments: 12,
	})
	require.NoError(t, err)

	resp, err := svc.RecordInstallment(ctx, env.user.ID, created.ID, RecordEMIInstallmentRequest{})
	require.NoError(t, err)

	// Reservation already took 1200; the installment takes another 100.
	assert.True(t, env.balanceOf(env.user.ID).Equal(decimal.NewFromInt(3700)))
	assert.Equal(t, 11, resp.RemainingInstallments)
	assert.True(t, resp.AmountPaid.Equal(decimal.NewFromInt(100)))
}

func TestEMIService_BookkeepingPolicySkipsInstallmentDebit(t *testing.T) {
	env := newTestEnv(5000)

	// Alternative policy: installments are pure bookkeeping, only the
	// reservation and the refund move the balance.
	policy := func(event ledger.EMIDebitEvent, emi *ledger.EMI, amount decimal.Decimal) decimal.Decimal {
		if event == ledger.EMIDebitInstallment {
			return decimal.Zero
		}
		return ledger.DefaultEMIDebitPolicy(event, emi, amount)
	}
	svc := NewEMIService(env.scope, env.ledger, policy)
	ctx := context.Background()

	created, err := svc.Create(ctx, env.user.ID, CreateEMIRequest{
		Title: "phone", TotalAmount: decimal.NewFromInt(1200), NumInstallments: 12,
	})
	require.NoError(t, err)

	_, err = svc.RecordInstallment(ctx, env.user.ID, created.ID, RecordEMIInstallmentRequest{})
	require.NoError(t, err)

	assert.True(t, env.balanceOf(env.user.ID).Equal(decimal.NewFromInt(3800)), "only the reservation debits")
}

func TestEMIService_InstallmentAfterLastIsRejected(t *testing.T) {
	env := newTestEnv(5000)
	svc := NewEMIService(env.scope, env.ledger, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, env.user.ID, CreateEMIRequest{
		Title: "tv", TotalAmount: decimal.NewFromInt(300), NumInstallments: 2,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = svc.RecordInstallment(ctx, env.user.ID, created.ID, RecordEMIInstallmentRequest{})
		require.NoError(t, err)
	}

	balance := env.balanceOf(env.user.ID)
	_, err = svc.RecordInstallment(ctx, env.user.ID, created.ID, RecordEMIInstallmentRequest{})
	require.Error(t, err)
	assert.True(t, env.balanceOf(env.user.ID).Equal(balance), "rejected installment must not move the balance")
}

func TestEMIService_DeleteRefundsUnpaidRemainder(t *testing.T) {
	env := newTestEnv(5000)
	svc := NewEMIService(env.scope, env.ledger, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, env.user.ID, CreateEMIRequest{
		Title: "phone", TotalAmount: decimal.NewFromInt(1200), NumInstallments: 12,
	})
	require.NoError(t, err)

	_, err = svc.RecordInstallment(ctx, env.user.ID, created.ID, RecordEMIInstallmentRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, env.user.ID, created.ID))

	// 5000 - 1200 - 100 + (1200 - 100) = 4800.
	assert.True(t, env.balanceOf(env.user.ID).Equal(decimal.NewFromInt(4800)))
	assert.Empty(t, env.emis.emis)
}

func TestEMIService_CreateWithUnknownLinkedLoan(t *testing.T) {
	env := newTestEnv(5000)
	svc := NewEMIService(env.scope, env.ledger, nil)

	loanID := env.user.ID // not a loan
	_, err := svc.Create(context.Background(), env.user.ID, CreateEMIRequest{
		Title: "phone", TotalAmount: decimal.NewFromInt(1200), NumInstallments: 12,
		LinkedLoanID: &loanID,
	})
	assert.Error(t, err)
	assert.True(t, env.balanceOf(env.user.ID).Equal(decimal.NewFromInt(5000)))
}
