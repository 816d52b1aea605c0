package application

import (
	"time"

	"github.com/example/workinghours/internal/schedule"
)

// Settings carries the timezone selection used to normalize evaluation
// instants plus the optional holiday region. The UTC offset (minutes east
// of UTC) is the source of truth for normalization; the timezone identifier
// is opaque metadata stored for clients.
type Settings struct {
	Timezone         string
	UTCOffsetMinutes int
	Region           string
}

// TimezoneInput is the client payload for updating the timezone selection.
// A nil Region leaves the stored region untouched; an empty string clears it.
type TimezoneInput struct {
	Timezone         string
	UTCOffsetMinutes int
	Region           *string
}

// Evaluation is the working-hours decision for one instant.
type Evaluation struct {
	At     time.Time
	Within bool
	Reason schedule.Reason
}

func cloneTimeRanges(ranges []schedule.TimeRange) []schedule.TimeRange {
	if len(ranges) == 0 {
		return nil
	}
	out := make([]schedule.TimeRange, len(ranges))
	copy(out, ranges)
	return out
}

func cloneExcludedDates(dates []schedule.ExcludedDate) []schedule.ExcludedDate {
	if len(dates) == 0 {
		return nil
	}
	out := make([]schedule.ExcludedDate, len(dates))
	copy(out, dates)
	return out
}
