package schedule

import (
	"testing"
	"time"
)

func TestValidateTimeRange(t *testing.T) {
	t.Parallel()

	t.Run("normalizes a well-formed candidate", func(t *testing.T) {
		t.Parallel()
		normalized, codes := ValidateTimeRange(TimeRangeCandidate{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00"})
		if len(codes) > 0 {
			t.Fatalf("unexpected codes: %v", codes)
		}
		if normalized.Weekday != time.Monday || normalized.StartMin != 9*60 || normalized.EndMin != 18*60 {
			t.Fatalf("unexpected normalization: %+v", normalized)
		}
	})

	t.Run("rejects start after end", func(t *testing.T) {
		t.Parallel()
		_, codes := ValidateTimeRange(TimeRangeCandidate{DayOfWeek: 3, StartTime: "18:00", EndTime: "08:00"})
		if codes["start_time"] != CodeStartAfterEnd {
			t.Fatalf("expected %s, got %v", CodeStartAfterEnd, codes)
		}
	})

	t.Run("rejects a zero-width window", func(t *testing.T) {
		t.Parallel()
		_, codes := ValidateTimeRange(TimeRangeCandidate{DayOfWeek: 3, StartTime: "09:00", EndTime: "09:00"})
		if codes["start_time"] != CodeStartAfterEnd {
			t.Fatalf("expected %s, got %v", CodeStartAfterEnd, codes)
		}
	})

	t.Run("rejects an out-of-range weekday", func(t *testing.T) {
		t.Parallel()
		for _, day := range []int{-1, 7, 42} {
			_, codes := ValidateTimeRange(TimeRangeCandidate{DayOfWeek: day, StartTime: "09:00", EndTime: "10:00"})
			if codes["day_of_week"] != CodeInvalidDayOfWeek {
				t.Fatalf("day %d: expected %s, got %v", day, CodeInvalidDayOfWeek, codes)
			}
		}
	})

	t.Run("rejects unparseable times", func(t *testing.T) {
		t.Parallel()
		_, codes := ValidateTimeRange(TimeRangeCandidate{DayOfWeek: 1, StartTime: "9 o'clock", EndTime: "25:00"})
		if codes["start_time"] != CodeInvalidTime || codes["end_time"] != CodeInvalidTime {
			t.Fatalf("expected %s on both fields, got %v", CodeInvalidTime, codes)
		}
	})
}

func TestValidateExcludedDate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a real date and a leap-year Feb 29", func(t *testing.T) {
		t.Parallel()
		for _, value := range []string{"2024-05-01", "2024-02-29"} {
			normalized, codes := ValidateExcludedDate(ExcludedDateCandidate{Date: value, Label: "off"})
			if len(codes) > 0 {
				t.Fatalf("%s: unexpected codes %v", value, codes)
			}
			if normalized.Date.Format(DateLayout) != value {
				t.Fatalf("%s: unexpected normalization %v", value, normalized.Date)
			}
		}
	})

	t.Run("rejects impossible calendar dates", func(t *testing.T) {
		t.Parallel()
		for _, value := range []string{"2023-02-29", "2024-04-31", "2024-13-01", "not a date"} {
			_, codes := ValidateExcludedDate(ExcludedDateCandidate{Date: value})
			if codes["date"] != CodeInvalidDate {
				t.Fatalf("%s: expected %s, got %v", value, CodeInvalidDate, codes)
			}
		}
	})
}

func TestValidateBatches(t *testing.T) {
	t.Parallel()

	t.Run("one malformed candidate rejects the whole batch", func(t *testing.T) {
		t.Parallel()
		ranges, failures := ValidateTimeRangeBatch([]TimeRangeCandidate{
			{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
			{DayOfWeek: 3, StartTime: "18:00", EndTime: "08:00"},
		})
		if ranges != nil {
			t.Fatalf("expected no committed ranges, got %v", ranges)
		}
		if failures["time_ranges[1].start_time"] != CodeStartAfterEnd {
			t.Fatalf("expected indexed failure, got %v", failures)
		}
	})

	t.Run("every candidate is inspected, not just the first failure", func(t *testing.T) {
		t.Parallel()
		_, failures := ValidateTimeRangeBatch([]TimeRangeCandidate{
			{DayOfWeek: 9, StartTime: "09:00", EndTime: "17:00"},
			{DayOfWeek: 1, StartTime: "bad", EndTime: "17:00"},
		})
		if failures["time_ranges[0].day_of_week"] != CodeInvalidDayOfWeek {
			t.Fatalf("missing first failure: %v", failures)
		}
		if failures["time_ranges[1].start_time"] != CodeInvalidTime {
			t.Fatalf("missing second failure: %v", failures)
		}
	})

	t.Run("a fully valid batch normalizes in order", func(t *testing.T) {
		t.Parallel()
		dates, failures := ValidateExcludedDateBatch([]ExcludedDateCandidate{
			{Date: "2024-01-01", Label: "new year"},
			{Date: "2024-05-01"},
		})
		if len(failures) > 0 {
			t.Fatalf("unexpected failures: %v", failures)
		}
		if len(dates) != 2 || dates[0].Label != "new year" {
			t.Fatalf("unexpected batch result: %+v", dates)
		}
	})

	t.Run("mixed excluded-date batch keeps indexed keys", func(t *testing.T) {
		t.Parallel()
		dates, failures := ValidateExcludedDateBatch([]ExcludedDateCandidate{
			{Date: "2024-01-01"},
			{Date: "2023-02-29"},
		})
		if dates != nil {
			t.Fatalf("expected rejection, got %v", dates)
		}
		if failures["excluded_dates[1].date"] != CodeInvalidDate {
			t.Fatalf("expected indexed date failure, got %v", failures)
		}
	})
}
