package schedule

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates exchanged with clients.
const DateLayout = "2006-01-02"

// TimeRange represents one weekly availability window. Start and End are
// minutes since midnight on the given weekday; the window covers
// [Start, End) and never crosses midnight.
type TimeRange struct {
	ID       string
	Weekday  time.Weekday
	StartMin int
	EndMin   int
}

// Contains reports whether the minute-of-day falls inside the window.
func (r TimeRange) Contains(weekday time.Weekday, minuteOfDay int) bool {
	return r.Weekday == weekday && minuteOfDay >= r.StartMin && minuteOfDay < r.EndMin
}

// StartTime renders the window start as HH:MM.
func (r TimeRange) StartTime() string {
	return formatMinute(r.StartMin)
}

// EndTime renders the window end as HH:MM.
func (r TimeRange) EndTime() string {
	return formatMinute(r.EndMin)
}

func formatMinute(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// ExcludedDate marks a single calendar date as unavailable regardless of the
// weekly matrix. Date is stored as the midnight UTC instant of that day.
type ExcludedDate struct {
	ID    string
	Date  time.Time
	Label string
}

// Config carries everything an evaluation needs: the committed weekly
// matrix, the excluded dates, the resolved holiday dates for the selected
// region, and the UTC offset used to normalize the instant under test.
//
// The offset, in minutes east of UTC, is the single source of truth for
// normalization; the timezone identifier configured alongside it is opaque
// metadata for clients and is deliberately absent here.
type Config struct {
	TimeRanges       []TimeRange
	ExcludedDates    []ExcludedDate
	HolidayDates     []time.Time
	UTCOffsetMinutes int
}

// sameDate compares two instants by their calendar date components only.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
