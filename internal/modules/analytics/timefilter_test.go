package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/venturelens/venturelens/internal/domain"
)

func recordCreatedAt(id string, createdAt time.Time) domain.StartupRecord {
	return domain.StartupRecord{ID: id, Name: id, CreatedAt: createdAt}
}

func TestFilterAllIsIdentity(t *testing.T) {
	records := []domain.StartupRecord{
		recordCreatedAt("a", time.Now().AddDate(-1, 0, 0)),
		recordCreatedAt("b", time.Now()),
	}

	filtered := FilterByTimePeriod(records, PeriodAll)
	assert.Equal(t, records, filtered)
}

func TestFilterToday(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.Local)
	startOfDay := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)

	records := []domain.StartupRecord{
		recordCreatedAt("midnight", startOfDay),
		recordCreatedAt("morning", startOfDay.Add(9*time.Hour)),
		recordCreatedAt("yesterday", startOfDay.Add(-time.Second)),
	}

	filtered := filterByTimePeriodAt(records, PeriodToday, now)
	assert.Len(t, filtered, 2)
	assert.Equal(t, "midnight", filtered[0].ID)
	assert.Equal(t, "morning", filtered[1].ID)
}

func TestFilterWeekUsesCalendarDays(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
	cutoff := now.AddDate(0, 0, -7)

	records := []domain.StartupRecord{
		recordCreatedAt("on-cutoff", cutoff),
		recordCreatedAt("just-before", cutoff.Add(-time.Minute)),
		recordCreatedAt("recent", now.Add(-time.Hour)),
	}

	filtered := filterByTimePeriodAt(records, PeriodWeek, now)
	assert.Len(t, filtered, 2)
	assert.Equal(t, "on-cutoff", filtered[0].ID)
	assert.Equal(t, "recent", filtered[1].ID)
}

func TestFilterMonthIsFixedThirtyDays(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	records := []domain.StartupRecord{
		recordCreatedAt("29-days-old", now.AddDate(0, 0, -29)),
		recordCreatedAt("31-days-old", now.AddDate(0, 0, -31)),
	}

	filtered := filterByTimePeriodAt(records, PeriodMonth, now)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "29-days-old", filtered[0].ID)
}

func TestFilterIdempotence(t *testing.T) {
	now := time.Now()
	records := []domain.StartupRecord{
		recordCreatedAt("old", now.AddDate(0, 0, -60)),
		recordCreatedAt("new", now.Add(-time.Hour)),
	}

	monthFiltered := filterByTimePeriodAt(records, PeriodMonth, now)
	// Applying "all" after any filter is a no-op
	assert.Equal(t, monthFiltered, filterByTimePeriodAt(monthFiltered, PeriodAll, now))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	records := []domain.StartupRecord{
		recordCreatedAt("old", now.AddDate(0, 0, -60)),
		recordCreatedAt("new", now),
	}

	_ = filterByTimePeriodAt(records, PeriodWeek, now)
	assert.Equal(t, "old", records[0].ID)
	assert.Len(t, records, 2)
}

func TestFilterEmptyInput(t *testing.T) {
	assert.Empty(t, FilterByTimePeriod(nil, PeriodWeek))
	assert.Empty(t, FilterByTimePeriod([]domain.StartupRecord{}, PeriodToday))
}
