package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/limits"
	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultCacheTTL = 5 * time.Minute

// DashboardService composes read-only summaries over the ledger tables,
// snapshots, and limits. It never writes; every section that fails to read
// degrades to its zero value so the page still renders, with the failure
// logged for the operator.
type DashboardService struct {
	userRepo        ledger.UserRepository
	snapshotRepo    ledger.BalanceSnapshotRepository
	incomeRepo      ledger.IncomeRepository
	expenseRepo     ledger.ExpenseRepository
	investmentRepo  ledger.InvestmentRepository
	loanPaymentRepo ledger.LoanPaymentRepository
	limitRepo       limits.Repository
	cache           Cache
	cacheTTL        time.Duration
	logger          *zap.Logger
	now             func() time.Time
}

// Option configures optional DashboardService behavior
type Option func(*DashboardService)

// WithCacheTTL overrides how long advanced dashboards stay cached
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *DashboardService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithClock overrides the wall clock, for tests
func WithClock(now func() time.Time) Option {
	return func(s *DashboardService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewDashboardService creates a new DashboardService. cache may be nil, in
// which case every request recomputes.
func NewDashboardService(
	userRepo ledger.UserRepository,
	snapshotRepo ledger.BalanceSnapshotRepository,
	incomeRepo ledger.IncomeRepository,
	expenseRepo ledger.ExpenseRepository,
	investmentRepo ledger.InvestmentRepository,
	loanPaymentRepo ledger.LoanPaymentRepository,
	limitRepo limits.Repository,
	cache Cache,
	logger *zap.Logger,
	opts ...Option,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DashboardService{
		userRepo:        userRepo,
		snapshotRepo:    snapshotRepo,
		incomeRepo:      incomeRepo,
		expenseRepo:     expenseRepo,
		investmentRepo:  investmentRepo,
		loanPaymentRepo: loanPaymentRepo,
		limitRepo:       limitRepo,
		cache:           cache,
		cacheTTL:        defaultCacheTTL,
		logger:          logger,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetDashboard builds the normal dashboard: profile, live balance, all-time
// totals, savings, and category-wise month groupings. Only the user lookup
// can fail the request; aggregate reads degrade to zero.
func (s *DashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := TotalsSection{
		Income: s.sumOrZero(ctx, "income_total", func() (decimal.Decimal, error) {
			return s.incomeRepo.SumForUser(ctx, userID)
		}),
		Expense: s.sumOrZero(ctx, "expense_total", func() (decimal.Decimal, error) {
			return s.expenseRepo.SumForUser(ctx, userID)
		}),
		Investment: s.sumOrZero(ctx, "investment_total", func() (decimal.Decimal, error) {
			return s.investmentRepo.SumForUser(ctx, userID)
		}),
		LoanPayments: s.sumOrZero(ctx, "loan_payment_total", func() (decimal.Decimal, error) {
			return s.loanPaymentRepo.SumForUser(ctx, userID)
		}),
	}

	categories, err := s.expenseRepo.TotalsByTagForUser(ctx, userID)
	if err != nil {
		s.logger.Warn("Dashboard section read failed, serving empty",
			zap.String("section", "category_totals"),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		categories = nil
	}

	resp := &DashboardResponse{
		Profile: ProfileSection{Name: user.Name, Email: user.Email},
		Balance: user.Balance,
		Totals:  totals,
		Savings: totals.Income.Sub(totals.Expense).Sub(totals.Investment),
	}
	for _, row := range categories {
		resp.Categories = append(resp.Categories, CategoryTotal{
			Tag:   row.Tag,
			Month: row.Month,
			Total: row.Total,
		})
	}
	return resp, nil
}

// GetAdvancedDashboard builds the timeframe-scoped summary around anchor.
// A zero anchor means "now". Results are cached per (user, timeframe,
// anchor period); the window is closed history for past anchors, so a stale
// entry can only lag the current period by the TTL.
func (s *DashboardService) GetAdvancedDashboard(ctx context.Context, userID uuid.UUID, timeframe Timeframe, anchor time.Time) (*AdvancedDashboardResponse, error) {
	if anchor.IsZero() {
		anchor = s.now()
	}

	key := s.cacheKey(userID, timeframe, anchor)
	if cached := s.cacheLookup(ctx, key); cached != nil {
		return cached, nil
	}

	start, end := timeframe.Window(anchor)
	resp := &AdvancedDashboardResponse{
		Timeframe:   timeframe,
		Anchor:      timeframe.Label(anchor),
		PeriodStart: start,
		PeriodEnd:   end,
		TotalIncome: s.sumOrZero(ctx, "income_range", func() (decimal.Decimal, error) {
			return s.incomeRepo.SumInRangeForUser(ctx, userID, start, end)
		}),
		TotalExpense: s.sumOrZero(ctx, "expense_range", func() (decimal.Decimal, error) {
			return s.expenseRepo.SumInRangeForUser(ctx, userID, start, end)
		}),
		TotalInvestment: s.sumOrZero(ctx, "investment_range", func() (decimal.Decimal, error) {
			return s.investmentRepo.SumInRangeForUser(ctx, userID, start, end)
		}),
		Snapshot:   s.snapshotSection(ctx, userID, anchor),
		LimitDiffs: s.limitDiffs(ctx, userID, anchor),
	}

	s.cacheStore(ctx, key, resp)
	return resp, nil
}

// sumOrZero runs one aggregate read and degrades a failure to zero
func (s *DashboardService) sumOrZero(ctx context.Context, section string, read func() (decimal.Decimal, error)) decimal.Decimal {
	total, err := read()
	if err != nil {
		s.logger.Warn("Dashboard section read failed, serving zero",
			zap.String("section", section),
			zap.Error(err),
		)
		return decimal.Zero
	}
	return total
}

// snapshotSection resolves the balance snapshot for the anchor's period,
// falling back to the most recent snapshot when that period has no balance
// activity yet.
func (s *DashboardService) snapshotSection(ctx context.Context, userID uuid.UUID, at time.Time) SnapshotSection {
	month := period.MonthKey(at)
	week := period.WeekOfMonth(at)
	section := SnapshotSection{
		Month:     month,
		Week:      week,
		Current:   decimal.Zero,
		LastWeek:  decimal.Zero,
		LastMonth: decimal.Zero,
	}

	snapshot, err := s.snapshotRepo.FindForPeriod(ctx, userID, month, week)
	if errors.Is(err, shared.ErrNotFound) {
		recent, recentErr := s.snapshotRepo.FindRecent(ctx, userID, 1)
		if recentErr != nil {
			err = recentErr
		} else if len(recent) > 0 {
			snapshot, err = recent[0], nil
		} else {
			return section
		}
	}
	if err != nil {
		s.logger.Warn("Dashboard section read failed, serving zero",
			zap.String("section", "snapshot"),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return section
	}

	section.Month = snapshot.Month
	section.Week = snapshot.Week
	section.Current = snapshot.Current
	section.LastWeek = snapshot.LastWeek
	section.LastMonth = snapshot.LastMonth
	return section
}

// limitDiffs evaluates every limit active at the anchor against the spend
// already recorded in its period. A failed spend read zeroes that one row
// rather than dropping the section.
func (s *DashboardService) limitDiffs(ctx context.Context, userID uuid.UUID, at time.Time) []LimitDiff {
	active, err := s.limitRepo.FindActiveAt(ctx, userID, at)
	if err != nil {
		s.logger.Warn("Dashboard section read failed, serving empty",
			zap.String("section", "limit_diffs"),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil
	}

	diffs := make([]LimitDiff, 0, len(active))
	for i := range active {
		limit := &active[i]

		var spent decimal.Decimal
		switch limit.Scope {
		case limits.ScopeDaily:
			spent, err = s.expenseRepo.SumForTagInDay(ctx, userID, limit.Category, period.DayKey(at))
		case limits.ScopeWeekly:
			spent, err = s.expenseRepo.SumForTagInWeek(ctx, userID, limit.Category, period.MonthKey(at), limit.Week)
		case limits.ScopeMonthly:
			spent, err = s.expenseRepo.SumForTagInMonth(ctx, userID, limit.Category, period.MonthKey(at))
		}
		if err != nil {
			s.logger.Warn("Dashboard section read failed, serving zero",
				zap.String("section", "limit_spend"),
				zap.String("scope", string(limit.Scope)),
				zap.Error(err),
			)
			spent = decimal.Zero
		}

		eval := limits.Evaluate(limit, spent, decimal.Zero)
		diffs = append(diffs, LimitDiff{
			Scope:     string(limit.Scope),
			Category:  limit.Category,
			Limit:     limit.Amount,
			Spent:     spent,
			Remaining: limit.Amount.Sub(spent),
			Exceeded:  eval.Exceeded,
		})
	}
	return diffs
}

func (s *DashboardService) cacheKey(userID uuid.UUID, timeframe Timeframe, anchor time.Time) string {
	return fmt.Sprintf("dashboard:%s:%s:%s", userID, timeframe, timeframe.Label(anchor))
}

func (s *DashboardService) cacheLookup(ctx context.Context, key string) *AdvancedDashboardResponse {
	if s.cache == nil {
		return nil
	}
	payload, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Dashboard cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}

	var resp AdvancedDashboardResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		s.logger.Warn("Dashboard cache entry corrupt, recomputing", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &resp
}

func (s *DashboardService) cacheStore(ctx context.Context, key string, resp *AdvancedDashboardResponse) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Warn("Dashboard cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.logger.Warn("Dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
