package schedule

import "time"

// Reason labels why an instant was or was not inside working hours.
type Reason string

const (
	// ReasonMatchedRange indicates a weekly window contained the instant.
	ReasonMatchedRange Reason = "matched-range"
	// ReasonExcludedDate indicates the instant's date is explicitly excluded.
	ReasonExcludedDate Reason = "excluded-date"
	// ReasonHoliday indicates the instant's date is a resolved holiday.
	ReasonHoliday Reason = "holiday"
	// ReasonNoMatch indicates no weekly window contained the instant.
	ReasonNoMatch Reason = "no-match"
)

// Decision is the outcome of a working-hours membership query.
type Decision struct {
	Within bool
	Reason Reason
}

// Evaluate determines whether the instant t falls inside working hours under
// the given configuration.
//
// The instant is first shifted by cfg.UTCOffsetMinutes, then checked in
// order: excluded dates win over everything, resolved holiday dates win over
// the weekly matrix, and finally membership is the OR across all windows
// whose weekday matches and whose [start, end) interval contains the
// minute of day. An empty weekly matrix means no instant is within working
// hours; callers wanting an always-open policy configure explicit windows.
//
// Evaluate is a pure function over its inputs and has no failure path.
func Evaluate(t time.Time, cfg Config) Decision {
	local := t.In(time.FixedZone("", cfg.UTCOffsetMinutes*60))

	for _, excluded := range cfg.ExcludedDates {
		if sameDate(local, excluded.Date) {
			return Decision{Within: false, Reason: ReasonExcludedDate}
		}
	}

	for _, occurrence := range cfg.HolidayDates {
		if sameDate(local, occurrence) {
			return Decision{Within: false, Reason: ReasonHoliday}
		}
	}

	minuteOfDay := local.Hour()*60 + local.Minute()
	for _, window := range cfg.TimeRanges {
		if window.Contains(local.Weekday(), minuteOfDay) {
			return Decision{Within: true, Reason: ReasonMatchedRange}
		}
	}

	return Decision{Within: false, Reason: ReasonNoMatch}
}
