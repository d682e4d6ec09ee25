// Package period derives the calendar bucket keys used to group ledger
// entries, balance snapshots, and spending limits. All derivations are pure
// functions of the input timestamp evaluated in Indian Standard Time, so a
// given instant always lands in the same bucket regardless of the server's
// local zone.
package period

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
)

// IST is the fixed reporting zone (UTC+5:30). A fixed zone keeps the
// derivation deterministic without depending on the host tzdata.
var IST = time.FixedZone("IST", 5*3600+30*60)

// ISTOffset is the duration IST runs ahead of UTC. An IST calendar day keyed
// by DayKey spans [key-ISTOffset, key-ISTOffset+24h) in UTC instants.
const ISTOffset = 5*time.Hour + 30*time.Minute

// monthKeyLayout renders keys like "Sep-2025".
const monthKeyLayout = "Jan-2006"

// MonthKey returns the month bucket key for t, e.g. "Sep-2025".
func MonthKey(t time.Time) string {
	return t.In(IST).Format(monthKeyLayout)
}

// WeekOfMonth returns the week bucket (1-5) for t. Weeks are simple 7-day
// chunks of the month starting at day 1; days 29-31 always fall in week 5.
func WeekOfMonth(t time.Time) int {
	day := t.In(IST).Day()
	return (day + 6) / 7
}

// DayKey returns the calendar date of t in IST, truncated to midnight UTC.
// Daily limits and daily spend sums are keyed by this value.
func DayKey(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthNumber returns the 1-based month and year of t in IST, matching the
// period fields stored on monthly and weekly limits.
func MonthNumber(t time.Time) (month int, year int) {
	ist := t.In(IST)
	return int(ist.Month()), ist.Year()
}

// ParseMonthKey parses a key produced by MonthKey. Invalid keys are a
// validation error.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return time.Time{}, shared.NewValidationError("invalid month key %q", key)
	}
	return t, nil
}

// MonthDateRange returns the UTC instants spanning the first through last
// calendar day of the given month key, inclusive.
func MonthDateRange(key string) (start, end time.Time, err error) {
	t, err := ParseMonthKey(key)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}
