package analytics

import (
	"time"

	"github.com/venturelens/venturelens/internal/domain"
)

// FilterByTimePeriod returns the records created on or after the period's
// cutoff. "all" is the identity. The input is never mutated and relative
// order is preserved.
//
// Cutoffs follow calendar arithmetic, not precise durations:
//   - today: start of the current local calendar day
//   - week:  now minus 7 days, at the current time of day
//   - month: now minus 30 days (fixed 30, not calendar-month-aware)
func FilterByTimePeriod(records []domain.StartupRecord, period TimePeriod) []domain.StartupRecord {
	return filterByTimePeriodAt(records, period, time.Now())
}

// filterByTimePeriodAt is the clock-injected core, used directly by tests.
func filterByTimePeriodAt(records []domain.StartupRecord, period TimePeriod, now time.Time) []domain.StartupRecord {
	if period == PeriodAll {
		return records
	}

	var cutoff time.Time
	switch period {
	case PeriodToday:
		cutoff = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodWeek:
		cutoff = now.AddDate(0, 0, -7)
	case PeriodMonth:
		cutoff = now.AddDate(0, 0, -30)
	default:
		// Unknown period: safest dashboard behavior is the full set
		return records
	}

	filtered := make([]domain.StartupRecord, 0, len(records))
	for _, rec := range records {
		if !rec.CreatedAt.Before(cutoff) {
			filtered = append(filtered, rec)
		}
	}

	return filtered
}

// analyzedOnly returns the subset of records that have been analyzed
// (overall score present), preserving order.
func analyzedOnly(records []domain.StartupRecord) []domain.StartupRecord {
	analyzed := make([]domain.StartupRecord, 0, len(records))
	for _, rec := range records {
		if rec.Analyzed() {
			analyzed = append(analyzed, rec)
		}
	}
	return analyzed
}
