package schedule

import (
	"fmt"
	"time"
)

// Machine-readable validation codes surfaced to clients field by field.
const (
	CodeStartAfterEnd    = "START_AFTER_END"
	CodeInvalidDayOfWeek = "INVALID_DAY_OF_WEEK"
	CodeInvalidTime      = "INVALID_TIME"
	CodeInvalidDate      = "INVALID_DATE"
)

// TimeRangeCandidate is the loosely-typed client input for one weekly window.
type TimeRangeCandidate struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

// ExcludedDateCandidate is the loosely-typed client input for one excluded date.
type ExcludedDateCandidate struct {
	Date  string
	Label string
}

// ValidateTimeRange checks a single candidate. It returns the normalized
// window when the candidate is well formed, or a non-empty field-to-code map
// when it is not. Both a start at or after the end and a zero-width window
// are rejected with START_AFTER_END.
func ValidateTimeRange(candidate TimeRangeCandidate) (TimeRange, map[string]string) {
	codes := make(map[string]string)

	if candidate.DayOfWeek < int(time.Sunday) || candidate.DayOfWeek > int(time.Saturday) {
		codes["day_of_week"] = CodeInvalidDayOfWeek
	}

	start, startErr := parseMinuteOfDay(candidate.StartTime)
	if startErr != nil {
		codes["start_time"] = CodeInvalidTime
	}
	end, endErr := parseMinuteOfDay(candidate.EndTime)
	if endErr != nil {
		codes["end_time"] = CodeInvalidTime
	}

	if startErr == nil && endErr == nil && start >= end {
		codes["start_time"] = CodeStartAfterEnd
	}

	if len(codes) > 0 {
		return TimeRange{}, codes
	}

	return TimeRange{
		Weekday:  time.Weekday(candidate.DayOfWeek),
		StartMin: start,
		EndMin:   end,
	}, nil
}

// ValidateExcludedDate checks a single candidate. The date must be a real
// calendar date, leap-year Feb 29 included.
func ValidateExcludedDate(candidate ExcludedDateCandidate) (ExcludedDate, map[string]string) {
	parsed, err := time.Parse(DateLayout, candidate.Date)
	if err != nil {
		return ExcludedDate{}, map[string]string{"date": CodeInvalidDate}
	}

	return ExcludedDate{Date: parsed, Label: candidate.Label}, nil
}

// ValidateTimeRangeBatch validates every candidate in order. When any
// candidate is invalid the whole batch is rejected: the returned field map
// carries every failure keyed time_ranges[i].field and the normalized slice
// is nil. No candidate is skipped, so callers see all problems at once.
func ValidateTimeRangeBatch(candidates []TimeRangeCandidate) ([]TimeRange, map[string]string) {
	ranges := make([]TimeRange, 0, len(candidates))
	failures := make(map[string]string)

	for i, candidate := range candidates {
		normalized, codes := ValidateTimeRange(candidate)
		for field, code := range codes {
			failures[fmt.Sprintf("time_ranges[%d].%s", i, field)] = code
		}
		if len(codes) == 0 {
			ranges = append(ranges, normalized)
		}
	}

	if len(failures) > 0 {
		return nil, failures
	}
	return ranges, nil
}

// ValidateExcludedDateBatch applies the same all-or-nothing batch semantics
// to excluded-date candidates, keyed excluded_dates[i].field.
func ValidateExcludedDateBatch(candidates []ExcludedDateCandidate) ([]ExcludedDate, map[string]string) {
	dates := make([]ExcludedDate, 0, len(candidates))
	failures := make(map[string]string)

	for i, candidate := range candidates {
		normalized, codes := ValidateExcludedDate(candidate)
		for field, code := range codes {
			failures[fmt.Sprintf("excluded_dates[%d].%s", i, field)] = code
		}
		if len(codes) == 0 {
			dates = append(dates, normalized)
		}
	}

	if len(failures) > 0 {
		return nil, failures
	}
	return dates, nil
}

func parseMinuteOfDay(value string) (int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}
