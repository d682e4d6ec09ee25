package finance

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/limits"
	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes. They deliberately keep the same not-found and
// conflict semantics the real GORM repositories have so service tests
// exercise the error paths faithfully.

type fakeUserRepo struct {
	users map[uuid.UUID]*ledger.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*ledger.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, shared.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.User, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*ledger.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, shared.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *ledger.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *ledger.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeSnapshotRepo struct {
	snapshots []*ledger.BalanceSnapshot
}

func (r *fakeSnapshotRepo) FindForPeriod(_ context.Context, userID uuid.UUID, month string, week int) (*ledger.BalanceSnapshot, error) {
	for i := len(r.snapshots) - 1; i >= 0; i-- {
		snap := r.snapshots[i]
		if snap.UserID == userID && snap.Month == month && snap.Week == week {
			return snap, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSnapshotRepo) FindRecent(_ context.Context, userID uuid.UUID, limit int) ([]*ledger.BalanceSnapshot, error) {
	var out []*ledger.BalanceSnapshot
	for i := len(r.snapshots) - 1; i >= 0 && len(out) < limit; i-- {
		if r.snapshots[i].UserID == userID {
			out = append(out, r.snapshots[i])
		}
	}
	return out, nil
}

func (r *fakeSnapshotRepo) FindLatestForMonth(_ context.Context, userID uuid.UUID, month string) (*ledger.BalanceSnapshot, error) {
	for i := len(r.snapshots) - 1; i >= 0; i-- {
		snap := r.snapshots[i]
		if snap.UserID == userID && snap.Month == month {
			return snap, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSnapshotRepo) Create(_ context.Context, snap *ledger.BalanceSnapshot) error {
	r.snapshots = append(r.snapshots, snap)
	return nil
}

func (r *fakeSnapshotRepo) Save(_ context.Context, _ *ledger.BalanceSnapshot) error {
	return nil
}

type fakeIncomeRepo struct {
	entries map[uuid.UUID]*ledger.Income
}

func newFakeIncomeRepo() *fakeIncomeRepo {
	return &fakeIncomeRepo{entries: make(map[uuid.UUID]*ledger.Income)}
}

func (r *fakeIncomeRepo) Create(_ context.Context, income *ledger.Income) error {
	r.entries[income.ID] = income
	return nil
}

func (r *fakeIncomeRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*ledger.Income, error) {
	income, ok := r.entries[id]
	if !ok || income.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return income, nil
}

func (r *fakeIncomeRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]ledger.Income, error) {
	var out []ledger.Income
	for _, income := range r.entries {
		if income.UserID == userID {
			out = append(out, *income)
		}
	}
	return out, nil
}

func (r *fakeIncomeRepo) FindByMonthForUser(_ context.Context, userID uuid.UUID, month string) ([]ledger.Income, error) {
	var out []ledger.Income
	for _, income := range r.entries {
		if income.UserID == userID && income.Month == month {
			out = append(out, *income)
		}
	}
	return out, nil
}

func (r *fakeIncomeRepo) Save(_ context.Context, income *ledger.Income) error {
	r.entries[income.ID] = income
	return nil
}

func (r *fakeIncomeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.entries, id)
	return nil
}

func (r *fakeIncomeRepo) SumForUser(_ context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, income := range r.entries {
		if income.UserID == userID {
			total = total.Add(income.Amount)
		}
	}
	return total, nil
}

func (r *fakeIncomeRepo) SumInRangeForUser(_ context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, income := range r.entries {
		if income.UserID == userID && !income.CreditedAt.Before(start) && !income.CreditedAt.After(end) {
			total = total.Add(income.Amount)
		}
	}
	return total, nil
}

type fakeExpenseRepo struct {
	entries map[uuid.UUID]*ledger.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{entries: make(map[uuid.UUID]*ledger.Expense)}
}

func (r *fakeExpenseRepo) Create(_ context.Context, expense *ledger.Expense) error {
	r.entries[expense.ID] = expense
	return nil
}

func (r *fakeExpenseRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*ledger.Expense, error) {
	expense, ok := r.entries[id]
	if !ok || expense.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return expense, nil
}

func (r *fakeExpenseRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]ledger.Expense, error) {
	var out []ledger.Expense
	for _, expense := range r.entries {
		if expense.UserID == userID {
			out = append(out, *expense)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) FindByMonthForUser(_ context.Context, userID uuid.UUID, month string) ([]ledger.Expense, error) {
	var out []ledger.Expense
	for _, expense := range r.entries {
		if expense.UserID == userID && expense.Month == month {
			out = append(out, *expense)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) Save(_ context.Context, expense *ledger.Expense) error {
	r.entries[expense.ID] = expense
	return nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.entries, id)
	return nil
}

func (r *fakeExpenseRepo) SumForUser(_ context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, expense := range r.entries {
		if expense.UserID == userID {
			total = total.Add(expense.Amount)
		}
	}
	return total, nil
}

func (r *fakeExpenseRepo) SumInRangeForUser(_ context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, expense := range r.entries {
		if expense.UserID == userID && !expense.SpentAt.Before(start) && !expense.SpentAt.After(end) {
			total = total.Add(expense.Amount)
		}
	}
	return total, nil
}

func (r *fakeExpenseRepo) SumForTagInDay(_ context.Context, userID uuid.UUID, tag string, day time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, expense := range r.entries {
		if expense.UserID != userID || !period.DayKey(expense.SpentAt).Equal(day) {
			continue
		}
		if tag != "" && expense.Tag != tag {
			continue
		}
		total = total.Add(expense.Amount)
	}
	return total, nil
}

func (r *fakeExpenseRepo) SumForTagInWeek(_ context.Context, userID uuid.UUID, tag string, month string, week int) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, expense := range r.entries {
		if expense.UserID != userID || expense.Month != month || expense.Week != week {
			continue
		}
		if tag != "" && expense.Tag != tag {
			continue
		}
		total = total.Add(expense.Amount)
	}
	return total, nil
}

func (r *fakeExpenseRepo) SumForTagInMonth(_ context.Context, userID uuid.UUID, tag string, month string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, expense := range r.entries {
		if expense.UserID != userID || expense.Month != month {
			continue
		}
		if tag != "" && expense.Tag != tag {
			continue
		}
		total = total.Add(expense.Amount)
	}
	return total, nil
}

func (r *fakeExpenseRepo) MonthSummaryForUser(_ context.Context, userID uuid.UUID, month string) (*ledger.MonthSummary, error) {
	summary := &ledger.MonthSummary{Month: month, Total: decimal.Zero, Average: decimal.Zero}
	for _, expense := range r.entries {
		if expense.UserID == userID && expense.Month == month {
			summary.Total = summary.Total.Add(expense.Amount)
			summary.Count++
		}
	}
	if summary.Count > 0 {
		summary.Average = summary.Total.Div(decimal.NewFromInt(int64(summary.Count)))
	}
	return summary, nil
}

func (r *fakeExpenseRepo) TotalsByTagForUser(_ context.Context, userID uuid.UUID) ([]ledger.TagTotal, error) {
	totals := make(map[string]*ledger.TagTotal)
	for _, expense := range r.entries {
		if expense.UserID != userID {
			continue
		}
		key := expense.Tag + "|" + expense.Month
		if existing, ok := totals[key]; ok {
			existing.Total = existing.Total.Add(expense.Amount)
		} else {
			totals[key] = &ledger.TagTotal{Tag: expense.Tag, Month: expense.Month, Total: expense.Amount}
		}
	}
	var out []ledger.TagTotal
	for _, total := range totals {
		out = append(out, *total)
	}
	return out, nil
}

type fakeInvestmentRepo struct {
	entries map[uuid.UUID]*ledger.Investment
}

func newFakeInvestmentRepo() *fakeInvestmentRepo {
	return &fakeInvestmentRepo{entries: make(map[uuid.UUID]*ledger.Investment)}
}

func (r *fakeInvestmentRepo) Create(_ context.Context, inv *ledger.Investment) error {
	r.entries[inv.ID] = inv
	return nil
}

func (r *fakeInvestmentRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*ledger.Investment, error) {
	inv, ok := r.entries[id]
	if !ok || inv.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return inv, nil
}

func (r *fakeInvestmentRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]ledger.Investment, error) {
	var out []ledger.Investment
	for _, inv := range r.entries {
		if inv.UserID == userID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvestmentRepo) FindByMonthForUser(_ context.Context, userID uuid.UUID, month string) ([]ledger.Investment, error) {
	var out []ledger.Investment
	for _, inv := range r.entries {
		if inv.UserID == userID && inv.Month == month {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvestmentRepo) Save(_ context.Context, inv *ledger.Investment) error {
	r.entries[inv.ID] = inv
	return nil
}

func (r *fakeInvestmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.entries, id)
	return nil
}

func (r *fakeInvestmentRepo) SumForUser(_ context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, inv := range r.entries {
		if inv.UserID == userID {
			total = total.Add(inv.Amount)
		}
	}
	return total, nil
}

func (r *fakeInvestmentRepo) SumInRangeForUser(_ context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, inv := range r.entries {
		if inv.UserID == userID && !inv.InvestedAt.Before(start) && !inv.InvestedAt.After(end) {
			total = total.Add(inv.Amount)
		}
	}
	return total, nil
}

type fakeLoanRepo struct {
	loans map[uuid.UUID]*ledger.Loan
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: make(map[uuid.UUID]*ledger.Loan)}
}

func (r *fakeLoanRepo) Create(_ context.Context, loan *ledger.Loan) error {
	r.loans[loan.ID] = loan
	return nil
}

func (r *fakeLoanRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*ledger.Loan, error) {
	loan, ok := r.loans[id]
	if !ok || loan.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return loan, nil
}

func (r *fakeLoanRepo) FindByIDForUserForUpdate(ctx context.Context, userID, id uuid.UUID) (*ledger.Loan, error) {
	return r.FindByIDForUser(ctx, userID, id)
}

func (r *fakeLoanRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]ledger.Loan, error) {
	var out []ledger.Loan
	for _, loan := range r.loans {
		if loan.UserID == userID {
			out = append(out, *loan)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) Save(_ context.Context, loan *ledger.Loan) error {
	r.loans[loan.ID] = loan
	return nil
}

func (r *fakeLoanRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.loans, id)
	return nil
}

type fakeLoanPaymentRepo struct {
	payments map[uuid.UUID]*ledger.LoanPayment
	loans    *fakeLoanRepo
}

func newFakeLoanPaymentRepo(loans *fakeLoanRepo) *fakeLoanPaymentRepo {
	return &fakeLoanPaymentRepo{payments: make(map[uuid.UUID]*ledger.LoanPayment), loans: loans}
}

func (r *fakeLoanPaymentRepo) Create(_ context.Context, payment *ledger.LoanPayment) error {
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakeLoanPaymentRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*ledger.LoanPayment, error) {
	payment, ok := r.payments[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	loan, ok := r.loans.loans[payment.LoanID]
	if !ok || loan.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return payment, nil
}

func (r *fakeLoanPaymentRepo) FindByLoan(_ context.Context, loanID uuid.UUID) ([]ledger.LoanPayment, error) {
	var out []ledger.LoanPayment
	for _, payment := range r.payments {
		if payment.LoanID == loanID {
			out = append(out, *payment)
		}
	}
	return out, nil
}

func (r *fakeLoanPaymentRepo) Save(_ context.Context, payment *ledger.LoanPayment) error {
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakeLoanPaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.payments, id)
	return nil
}

func (r *fakeLoanPaymentRepo) SumForUser(_ context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, payment := range r.payments {
		loan, ok := r.loans.loans[payment.LoanID]
		if ok && loan.UserID == userID {
			total = total.Add(payment.Amount)
		}
	}
	return total, nil
}

type fakeSplitRepo struct {
	shares map[uuid.UUID]*ledger.SplitShare
}

func newFakeSplitRepo() *fakeSplitRepo {
	return &fakeSplitRepo{shares: make(map[uuid.UUID]*ledger.SplitShare)}
}

func (r *fakeSplitRepo) Create(_ context.Context, share *ledger.SplitShare) error {
	r.shares[share.ID] = share
	return nil
}

func (r *fakeSplitRepo) FindByExpense(_ context.Context, expenseID uuid.UUID) ([]ledger.SplitShare, error) {
	var out []ledger.SplitShare
	for _, share := range r.shares {
		if share.ExpenseID == expenseID {
			out = append(out, *share)
		}
	}
	return out, nil
}

func (r *fakeSplitRepo) DeleteByExpense(_ context.Context, expenseID uuid.UUID) error {
	for id, share := range r.shares {
		if share.ExpenseID == expenseID {
			delete(r.shares, id)
		}
	}
	return nil
}

type fakeEMIRepo struct {
	emis map[uuid.UUID]*ledger.EMI
}

func newFakeEMIRepo() *fakeEMIRepo {
	return &fakeEMIRepo{emis: make(map[uuid.UUID]*ledger.EMI)}
}

func (r *fakeEMIRepo) Create(_ context.Context, emi *ledger.EMI) error {
	r.emis[emi.ID] = emi
	return nil
}

func (r *fakeEMIRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*ledger.EMI, error) {
	emi, ok := r.emis[id]
	if !ok || emi.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return emi, nil
}

func (r *fakeEMIRepo) FindByIDForUserForUpdate(ctx context.Context, userID, id uuid.UUID) (*ledger.EMI, error) {
	return r.FindByIDForUser(ctx, userID, id)
}

func (r *fakeEMIRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]ledger.EMI, error) {
	var out []ledger.EMI
	for _, emi := range r.emis {
		if emi.UserID == userID {
			out = append(out, *emi)
		}
	}
	return out, nil
}

func (r *fakeEMIRepo) Save(_ context.Context, emi *ledger.EMI) error {
	r.emis[emi.ID] = emi
	return nil
}

func (r *fakeEMIRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.emis, id)
	return nil
}

type fakeMoneyLentRepo struct {
	entries map[uuid.UUID]*ledger.MoneyLent
}

func newFakeMoneyLentRepo() *fakeMoneyLentRepo {
	return &fakeMoneyLentRepo{entries: make(map[uuid.UUID]*ledger.MoneyLent)}
}

func (r *fakeMoneyLentRepo) Create(_ context.Context, lent *ledger.MoneyLent) error {
	r.entries[lent.ID] = lent
	return nil
}

func (r *fakeMoneyLentRepo) FindByIDForUser(_ context.Context, lenderID, id uuid.UUID) (*ledger.MoneyLent, error) {
	lent, ok := r.entries[id]
	if !ok || lent.LenderID != lenderID {
		return nil, shared.ErrNotFound
	}
	return lent, nil
}

func (r *fakeMoneyLentRepo) FindAllForUser(_ context.Context, lenderID uuid.UUID, _ shared.Filter) ([]ledger.MoneyLent, error) {
	var out []ledger.MoneyLent
	for _, lent := range r.entries {
		if lent.LenderID == lenderID {
			out = append(out, *lent)
		}
	}
	return out, nil
}

func (r *fakeMoneyLentRepo) Save(_ context.Context, lent *ledger.MoneyLent) error {
	r.entries[lent.ID] = lent
	return nil
}

func (r *fakeMoneyLentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.entries, id)
	return nil
}

type fakeMoneyBorrowedRepo struct {
	entries map[uuid.UUID]*ledger.MoneyBorrowed
}

func newFakeMoneyBorrowedRepo() *fakeMoneyBorrowedRepo {
	return &fakeMoneyBorrowedRepo{entries: make(map[uuid.UUID]*ledger.MoneyBorrowed)}
}

func (r *fakeMoneyBorrowedRepo) Create(_ context.Context, borrowed *ledger.MoneyBorrowed) error {
	r.entries[borrowed.ID] = borrowed
	return nil
}

func (r *fakeMoneyBorrowedRepo) FindByIDForUser(_ context.Context, borrowerID, id uuid.UUID) (*ledger.MoneyBorrowed, error) {
	borrowed, ok := r.entries[id]
	if !ok || borrowed.BorrowerID != borrowerID {
		return nil, shared.ErrNotFound
	}
	return borrowed, nil
}

func (r *fakeMoneyBorrowedRepo) FindAllForUser(_ context.Context, borrowerID uuid.UUID, _ shared.Filter) ([]ledger.MoneyBorrowed, error) {
	var out []ledger.MoneyBorrowed
	for _, borrowed := range r.entries {
		if borrowed.BorrowerID == borrowerID {
			out = append(out, *borrowed)
		}
	}
	return out, nil
}

func (r *fakeMoneyBorrowedRepo) Save(_ context.Context, borrowed *ledger.MoneyBorrowed) error {
	r.entries[borrowed.ID] = borrowed
	return nil
}

func (r *fakeMoneyBorrowedRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.entries, id)
	return nil
}

type fakeLimitRepo struct {
	limits map[uuid.UUID]*limits.Limit
}

func newFakeLimitRepo() *fakeLimitRepo {
	return &fakeLimitRepo{limits: make(map[uuid.UUID]*limits.Limit)}
}

func (r *fakeLimitRepo) Create(_ context.Context, limit *limits.Limit) error {
	for _, existing := range r.limits {
		if existing.UserID == limit.UserID &&
			existing.Scope == limit.Scope &&
			existing.Category == limit.Category &&
			existing.Month == limit.Month &&
			existing.Year == limit.Year &&
			existing.Week == limit.Week &&
			existing.Day.Equal(limit.Day) {
			return shared.NewConflictError("limit already exists for this period and category")
		}
	}
	r.limits[limit.ID] = limit
	return nil
}

func (r *fakeLimitRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*limits.Limit, error) {
	limit, ok := r.limits[id]
	if !ok || limit.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return limit, nil
}

func (r *fakeLimitRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]limits.Limit, error) {
	var out []limits.Limit
	for _, limit := range r.limits {
		if limit.UserID == userID {
			out = append(out, *limit)
		}
	}
	return out, nil
}

func (r *fakeLimitRepo) FindActiveAt(_ context.Context, userID uuid.UUID, t time.Time) ([]limits.Limit, error) {
	var out []limits.Limit
	for _, limit := range r.limits {
		if limit.UserID == userID && limit.Covers(t) {
			out = append(out, *limit)
		}
	}
	return out, nil
}

func (r *fakeLimitRepo) Save(_ context.Context, limit *limits.Limit) error {
	r.limits[limit.ID] = limit
	return nil
}

func (r *fakeLimitRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.limits, id)
	return nil
}

// testEnv wires every fake behind a NoOpTransactionScope with a frozen
// clock, plus one seeded user.
type testEnv struct {
	scope    *NoOpTransactionScope
	ledger   *BalanceLedger
	now      time.Time
	user     *ledger.User
	users    *fakeUserRepo
	snaps    *fakeSnapshotRepo
	incomes  *fakeIncomeRepo
	expenses *fakeExpenseRepo
	invs     *fakeInvestmentRepo
	loans    *fakeLoanRepo
	payments *fakeLoanPaymentRepo
	splits   *fakeSplitRepo
	emis     *fakeEMIRepo
	lent     *fakeMoneyLentRepo
	borrowed *fakeMoneyBorrowedRepo
	limitsR  *fakeLimitRepo
}

func newTestEnv(balance int64) *testEnv {
	env := &testEnv{
		// 2025-09-15 12:00 IST, week 3 of Sep-2025.
		now:      time.Date(2025, time.September, 15, 6, 30, 0, 0, time.UTC),
		users:    newFakeUserRepo(),
		snaps:    &fakeSnapshotRepo{},
		incomes:  newFakeIncomeRepo(),
		expenses: newFakeExpenseRepo(),
		invs:     newFakeInvestmentRepo(),
		loans:    newFakeLoanRepo(),
		splits:   newFakeSplitRepo(),
		emis:     newFakeEMIRepo(),
		lent:     newFakeMoneyLentRepo(),
		borrowed: newFakeMoneyBorrowedRepo(),
		limitsR:  newFakeLimitRepo(),
	}
	env.payments = newFakeLoanPaymentRepo(env.loans)

	env.scope = NewNoOpTransactionScope(NoOpRepositories{
		UserRepo:          env.users,
		SnapshotRepo:      env.snaps,
		IncomeRepo:        env.incomes,
		ExpenseRepo:       env.expenses,
		InvestmentRepo:    env.invs,
		LoanRepo:          env.loans,
		LoanPaymentRepo:   env.payments,
		SplitRepo:         env.splits,
		EMIRepo:           env.emis,
		MoneyLentRepo:     env.lent,
		MoneyBorrowedRepo: env.borrowed,
		LimitRepo:         env.limitsR,
	})
	env.ledger = NewBalanceLedger(func() time.Time { return env.now })

	env.user = env.seedUser("test@example.com", balance)
	return env
}

func (env *testEnv) seedUser(email string, balance int64) *ledger.User {
	user, err := ledger.NewUser("Test User", email, "hash", decimal.NewFromInt(balance))
	if err != nil {
		panic(err)
	}
	env.users.users[user.ID] = user
	return user
}

func (env *testEnv) balanceOf(id uuid.UUID) decimal.Decimal {
	return env.users.users[id].Balance
}
