package finance

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestmentService_CreateDebitsBalance(t *testing.T) {
	env := newTestEnv(5000)
	svc := NewInvestmentService(env.scope, env.ledger)

	resp, err := svc.Create(context.Background(), env.user.ID, CreateInvestmentRequest{
		Amount:     decimal.NewFromInt(2000),
		Instrument: "Index Fund",
		Type:       "SIP",
		ROI:        decimal.NewFromInt(12),
	})
	require.NoError(t, err)

	assert.True(t, env.balanceOf(env.user.ID).Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "Index Fund", resp.Instrument)
	assert.Equal(t, "Sep-2025", resp.Month)
	assert.True(t, resp.ExpectedProfit.Equal(decimal.NewFromInt(240)), "2000 * 12%% = 240, got %s", resp.ExpectedProfit)
}

func TestInvestmentService_UpdateMovesBalanceByDifference(t *testing.T) {
	env := newTestEnv(5000)
	svc := NewInvestmentService(env.scope, env.ledger)
	ctx := context.Background()

	created, err := svc.Create(ctx, env.user.ID, CreateInvestmentRequest{
		Amount:     decimal.NewFromInt(2000),
		Instrument: "Index Fund",
	})
	require.NoError(t, err)

	// Raising a debit-kind amount debits the extra 500.
	newAmount := decimal.NewFromInt(2500)
	_, err = svc.Update(ctx, env.user.ID, created.ID, UpdateInvestmentRequest{Amount: &newAmount})
	require.NoError(t, err)

	assert.True(t, env.balanceOf(env.user.ID).Equal(decimal.NewFromInt(2500)))
}

func TestInvestmentService_DeleteRefundsPrincipal(t *testing.T) {
	env := newTestEnv(5000)
	svc := NewInvestmentService(env.scope, env.ledger)
	ctx := context.Background()

	created, err := svc.Create(ctx, env.user.ID, CreateInvestmentRequest{
		Amount:     decimal.NewFromInt(2000),
		Instrument: "Index Fund",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, env.user.ID, created.ID))
	assert.True(t, env.balanceOf(env.user.ID).Equal(decimal.NewFromInt(5000)))
	assert.Empty(t, env.invs.entries)
}

func TestInvestmentService_ProfitSummary(t *testing.T) {
	env := newTestEnv(10000)
	svc := NewInvestmentService(env.scope, env.ledger)
	ctx := context.Background()

	_, err := svc.Create(ctx, env.user.ID, CreateInvestmentRequest{
		Amount:     decimal.NewFromInt(2000),
		Instrument: "Index Fund",
		ROI:        decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, env.user.ID, CreateInvestmentRequest{
		Amount:     decimal.NewFromInt(3000),
		Instrument: "Bond",
		ROI:        decimal.NewFromInt(7),
	})
	require.NoError(t, err)

	summary, err := svc.ProfitSummary(ctx, env.user.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.Count)
	assert.True(t, summary.TotalInvested.Equal(decimal.NewFromInt(5000)))
	// 2000*10% + 3000*7% = 200 + 210
	assert.True(t, summary.ExpectedProfit.Equal(decimal.NewFromInt(410)), "got %s", summary.ExpectedProfit)
}

func TestInvestmentService_ProfitSummaryEmpty(t *testing.T) {
	env := newTestEnv(0)
	svc := NewInvestmentService(env.scope, env.ledger)

	summary, err := svc.ProfitSummary(context.Background(), env.user.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.Count)
	assert.True(t, summary.TotalInvested.IsZero())
	assert.True(t, summary.ExpectedProfit.IsZero())
}

func TestInvestmentService_ListByMonthRejectsBadKey(t *testing.T) {
	env := newTestEnv(0)
	svc := NewInvestmentService(env.scope, env.ledger)

	_, err := svc.ListByMonth(context.Background(), env.user.ID, "September-2025")
	assert.Error(t, err)
}
