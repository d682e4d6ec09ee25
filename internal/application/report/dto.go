package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Timeframe selects the aggregation window of the advanced dashboard.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeYearly  Timeframe = "yearly"
)

// ParseTimeframe normalizes a query-string timeframe. An empty value
// defaults to monthly; anything unknown is a validation error.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return TimeframeMonthly, nil
	case TimeframeDaily:
		return TimeframeDaily, nil
	case TimeframeWeekly:
		return TimeframeWeekly, nil
	case TimeframeMonthly:
		return TimeframeMonthly, nil
	case TimeframeYearly:
		return TimeframeYearly, nil
	}
	return "", shared.NewValidationError("unknown timeframe %q", s)
}

const anchorLayout = "2006-01-02"

// ParseAnchor parses a query-string anchor date. An empty value returns the
// zero time, which callers substitute with the current instant.
func ParseAnchor(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(anchorLayout, s)
	if err != nil {
		return time.Time{}, shared.NewValidationError("invalid anchor date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// Window returns the inclusive instant range the timeframe covers around
// anchor, evaluated on the IST calendar like every other period bucket.
func (tf Timeframe) Window(anchor time.Time) (start, end time.Time) {
	ist := anchor.In(period.IST)
	switch tf {
	case TimeframeDaily:
		start = time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, period.IST)
		end = start.Add(24*time.Hour - time.Second)
	case TimeframeWeekly:
		week := period.WeekOfMonth(anchor)
		start = time.Date(ist.Year(), ist.Month(), (week-1)*7+1, 0, 0, 0, 0, period.IST)
		monthEnd := time.Date(ist.Year(), ist.Month(), 1, 0, 0, 0, 0, period.IST).AddDate(0, 1, 0)
		end = start.AddDate(0, 0, 7)
		if end.After(monthEnd) {
			end = monthEnd
		}
		end = end.Add(-time.Second)
	case TimeframeYearly:
		start = time.Date(ist.Year(), time.January, 1, 0, 0, 0, 0, period.IST)
		end = start.AddDate(1, 0, 0).Add(-time.Second)
	default: // monthly
		start = time.Date(ist.Year(), ist.Month(), 1, 0, 0, 0, 0, period.IST)
		end = start.AddDate(0, 1, 0).Add(-time.Second)
	}
	return start, end
}

// Label renders the anchor as a period identifier for cache keys and
// responses, e.g. "2025-09-15", "Sep-2025-w3", "Sep-2025", "2025".
func (tf Timeframe) Label(anchor time.Time) string {
	switch tf {
	case TimeframeDaily:
		return anchor.In(period.IST).Format(anchorLayout)
	case TimeframeWeekly:
		return fmt.Sprintf("%s-w%d", period.MonthKey(anchor), period.WeekOfMonth(anchor))
	case TimeframeYearly:
		return fmt.Sprintf("%d", anchor.In(period.IST).Year())
	default:
		return period.MonthKey(anchor)
	}
}

// ProfileSection is the account header of the normal dashboard
type ProfileSection struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TotalsSection carries the all-time signed totals of the normal dashboard
type TotalsSection struct {
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Investment   decimal.Decimal `json:"investment"`
	LoanPayments decimal.Decimal `json:"loan_payments"`
}

// CategoryTotal is one (category, month) spend bucket
type CategoryTotal struct {
	Tag   string          `json:"tag"`
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// DashboardResponse is the normal dashboard: profile, live balance,
// all-time totals, savings, and category-wise month groupings.
type DashboardResponse struct {
	Profile    ProfileSection  `json:"profile"`
	Balance    decimal.Decimal `json:"balance"`
	Totals     TotalsSection   `json:"totals"`
	Savings    decimal.Decimal `json:"savings"`
	Categories []CategoryTotal `json:"categories"`
}

// SnapshotSection is the balance snapshot view of the advanced dashboard
type SnapshotSection struct {
	Month     string          `json:"month"`
	Week      int             `json:"week"`
	Current   decimal.Decimal `json:"current"`
	LastWeek  decimal.Decimal `json:"last_week"`
	LastMonth decimal.Decimal `json:"last_month"`
}

// LimitDiff reports how one active limit stands against the spend already
// recorded in its period. Remaining goes negative once the cap is passed.
type LimitDiff struct {
	Scope     string          `json:"scope"`
	Category  string          `json:"category,omitempty"`
	Limit     decimal.Decimal `json:"limit"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Exceeded  bool            `json:"exceeded"`
}

// AdvancedDashboardResponse is the timeframe-scoped summary: entry totals
// for the window, the anchor period's snapshot, and active limit diffs.
type AdvancedDashboardResponse struct {
	Timeframe       Timeframe       `json:"timeframe"`
	Anchor          string          `json:"anchor"`
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpense    decimal.Decimal `json:"total_expense"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	Snapshot        SnapshotSection `json:"snapshot"`
	LimitDiffs      []LimitDiff     `json:"limit_diffs"`
}
