package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/workinghours/internal/schedule"
)

var (
	timeRangeCounter    uint64
	excludedDateCounter uint64
)

// referenceTime is a Monday morning, so weekday based fixtures line up with a
// business-hours matrix out of the box.
var referenceTime = time.Date(2024, time.May, 6, 10, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// --------------------------- Time range fixtures ---------------------------

// NewTimeRange materialises a window on the given weekday with a deterministic
// identifier. Minutes are minutes of day.
func NewTimeRange(weekday time.Weekday, startMin, endMin int) schedule.TimeRange {
	id := atomic.AddUint64(&timeRangeCounter, 1)
	return schedule.TimeRange{
		ID:       fmt.Sprintf("time-range-%d", id),
		Weekday:  weekday,
		StartMin: startMin,
		EndMin:   endMin,
	}
}

// BusinessWeek returns Monday through Friday 09:00-18:00 windows.
func BusinessWeek() []schedule.TimeRange {
	days := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	out := make([]schedule.TimeRange, 0, len(days))
	for _, day := range days {
		out = append(out, NewTimeRange(day, 9*60, 18*60))
	}
	return out
}

// BusinessWeekCandidates returns the same matrix in wire form, for exercising
// the batch validation path.
func BusinessWeekCandidates() []schedule.TimeRangeCandidate {
	days := []int{1, 2, 3, 4, 5}
	out := make([]schedule.TimeRangeCandidate, 0, len(days))
	for _, day := range days {
		out = append(out, schedule.TimeRangeCandidate{DayOfWeek: day, StartTime: "09:00", EndTime: "18:00"})
	}
	return out
}

// AllDay returns a window covering the whole of the given weekday.
func AllDay(weekday time.Weekday) schedule.TimeRange {
	return NewTimeRange(weekday, 0, 24*60)
}

// ------------------------- Excluded date fixtures --------------------------

// NewExcludedDate materialises an exclusion for the given calendar date.
func NewExcludedDate(year int, month time.Month, day int, label string) schedule.ExcludedDate {
	id := atomic.AddUint64(&excludedDateCounter, 1)
	return schedule.ExcludedDate{
		ID:    fmt.Sprintf("excluded-date-%d", id),
		Date:  time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Label: label,
	}
}

// ---------------------------- Config fixtures ------------------------------

// BusinessWeekConfig assembles an evaluation config with the business-week
// matrix, no exclusions and no holidays.
func BusinessWeekConfig() schedule.Config {
	return schedule.Config{TimeRanges: BusinessWeek()}
}
