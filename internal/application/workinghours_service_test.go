package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/workinghours/internal/application"
	"github.com/example/workinghours/internal/holiday"
	"github.com/example/workinghours/internal/persistence"
	"github.com/example/workinghours/internal/schedule"
	"github.com/example/workinghours/internal/testfixtures"
)

// failingStore wraps the in-memory store with injectable persistence errors.
type failingStore struct {
	*testfixtures.MemoryConfigStore

	replaceErr error
	saveErr    error
}

func (s *failingStore) ReplaceTimeRanges(ctx context.Context, ranges []schedule.TimeRange) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	return s.MemoryConfigStore.ReplaceTimeRanges(ctx, ranges)
}

func (s *failingStore) ReplaceExcludedDates(ctx context.Context, dates []schedule.ExcludedDate) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	return s.MemoryConfigStore.ReplaceExcludedDates(ctx, dates)
}

func (s *failingStore) SaveSettings(ctx context.Context, settings application.Settings) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.MemoryConfigStore.SaveSettings(ctx, settings)
}

func newTestService(store application.ConfigStore) *application.WorkingHoursService {
	clock := testfixtures.NewClock(time.Time{})
	ids := testfixtures.NewIDGenerator("id")
	return application.NewWorkingHoursService(store, holiday.NewRegistry(), ids.NextFunc(), clock.NowFunc())
}

func TestWorkingHoursService_ReplaceTimeRanges(t *testing.T) {
	ctx := context.Background()

	t.Run("commits a valid batch and assigns identifiers", func(t *testing.T) {
		factory := testfixtures.NewServiceFactory()
		service := factory.WorkingHoursService()

		committed, err := service.ReplaceTimeRanges(ctx, testfixtures.BusinessWeekCandidates())
		if err != nil {
			t.Fatalf("replace failed: %v", err)
		}
		if len(committed) != 5 {
			t.Fatalf("unexpected committed set: %+v", committed)
		}
		if committed[0].ID != "id-1" || committed[4].ID != "id-5" {
			t.Fatalf("expected sequential identifiers, got %+v", committed)
		}

		stored, err := factory.Store.ListTimeRanges(ctx)
		if err != nil || len(stored) != 5 {
			t.Fatalf("batch not persisted: %+v %v", stored, err)
		}
	})

	t.Run("a batch with one malformed candidate changes nothing", func(t *testing.T) {
		factory := testfixtures.NewServiceFactory()
		service := factory.WorkingHoursService()

		before, err := service.ReplaceTimeRanges(ctx, []schedule.TimeRangeCandidate{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00"},
		})
		if err != nil {
			t.Fatalf("seed replace failed: %v", err)
		}

		_, err = service.ReplaceTimeRanges(ctx, []schedule.TimeRangeCandidate{
			{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
			{DayOfWeek: 3, StartTime: "18:00", EndTime: "08:00"},
		})
		var vErr *application.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if vErr.FieldErrors["time_ranges[1].start_time"] != schedule.CodeStartAfterEnd {
			t.Fatalf("unexpected failure map: %v", vErr.FieldErrors)
		}

		after := service.TimeRanges(ctx)
		if len(after) != len(before) || after[0].ID != before[0].ID {
			t.Fatalf("configuration changed despite rejected batch: %+v vs %+v", before, after)
		}
		stored, err := factory.Store.ListTimeRanges(ctx)
		if err != nil || len(stored) != 1 || stored[0].ID != before[0].ID {
			t.Fatalf("persistence touched for a rejected batch: %+v %v", stored, err)
		}
	})

	t.Run("a persistence failure leaves the snapshot untouched", func(t *testing.T) {
		store := &failingStore{MemoryConfigStore: testfixtures.NewMemoryConfigStore()}
		service := newTestService(store)

		if _, err := service.ReplaceTimeRanges(ctx, []schedule.TimeRangeCandidate{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00"},
		}); err != nil {
			t.Fatalf("seed replace failed: %v", err)
		}

		store.replaceErr = errors.New("disk full")
		if _, err := service.ReplaceTimeRanges(ctx, []schedule.TimeRangeCandidate{
			{DayOfWeek: 2, StartTime: "08:00", EndTime: "12:00"},
		}); err == nil {
			t.Fatal("expected persistence error")
		}

		after := service.TimeRanges(ctx)
		if len(after) != 1 || after[0].Weekday != time.Monday {
			t.Fatalf("snapshot changed despite persistence failure: %+v", after)
		}
	})
}

func TestWorkingHoursService_ReplaceExcludedDates(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects the whole batch on one invalid date", func(t *testing.T) {
		factory := testfixtures.NewServiceFactory()
		service := factory.WorkingHoursService()

		_, err := service.ReplaceExcludedDates(ctx, []schedule.ExcludedDateCandidate{
			{Date: "2024-05-01", Label: "May Day"},
			{Date: "2023-02-29"},
		})
		var vErr *application.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(service.ExcludedDates(ctx)) != 0 {
			t.Fatalf("expected no committed dates")
		}
		if stored, err := factory.Store.ListExcludedDates(ctx); err != nil || len(stored) != 0 {
			t.Fatalf("persistence touched for a rejected batch: %+v %v", stored, err)
		}
	})

	t.Run("commits a valid batch in order", func(t *testing.T) {
		service := testfixtures.NewServiceFactory().WorkingHoursService()

		committed, err := service.ReplaceExcludedDates(ctx, []schedule.ExcludedDateCandidate{
			{Date: "2024-01-01", Label: "New Year"},
			{Date: "2024-05-01"},
		})
		if err != nil {
			t.Fatalf("replace failed: %v", err)
		}
		if len(committed) != 2 || committed[0].Label != "New Year" {
			t.Fatalf("unexpected committed set: %+v", committed)
		}
	})
}

func TestWorkingHoursService_Settings(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a timezone and offset pair", func(t *testing.T) {
		factory := testfixtures.NewServiceFactory()
		service := factory.WorkingHoursService()

		settings, err := service.SetTimezone(ctx, application.TimezoneInput{Timezone: "Asia/Shanghai", UTCOffsetMinutes: 480})
		if err != nil {
			t.Fatalf("set timezone failed: %v", err)
		}
		if settings.UTCOffsetMinutes != 480 {
			t.Fatalf("settings not committed: %+v", settings)
		}
		if stored, err := factory.Store.LoadSettings(ctx); err != nil || stored != settings {
			t.Fatalf("settings not persisted: %+v %v", stored, err)
		}
		if got := service.Timezone(ctx); got != settings {
			t.Fatalf("snapshot mismatch: %+v vs %+v", got, settings)
		}
	})

	t.Run("rejects an impossible offset", func(t *testing.T) {
		service := testfixtures.NewServiceFactory().WorkingHoursService()
		_, err := service.SetTimezone(ctx, application.TimezoneInput{Timezone: "UTC", UTCOffsetMinutes: 20 * 60})
		var vErr *application.ValidationError
		if !errors.As(err, &vErr) || vErr.FieldErrors["utc_offset_minutes"] != "INVALID_UTC_OFFSET" {
			t.Fatalf("expected offset validation failure, got %v", err)
		}
	})

	t.Run("timezone and region commit together", func(t *testing.T) {
		factory := testfixtures.NewServiceFactory()
		service := factory.WorkingHoursService()

		region := "CN"
		settings, err := service.SetTimezone(ctx, application.TimezoneInput{
			Timezone:         "Asia/Shanghai",
			UTCOffsetMinutes: 480,
			Region:           &region,
		})
		if err != nil {
			t.Fatalf("set timezone failed: %v", err)
		}
		if settings.Region != "CN" || settings.UTCOffsetMinutes != 480 {
			t.Fatalf("unexpected settings: %+v", settings)
		}
		if stored, err := factory.Store.LoadSettings(ctx); err != nil || stored != settings {
			t.Fatalf("settings not persisted: %+v %v", stored, err)
		}
	})

	t.Run("a rejected region leaves the timezone uncommitted", func(t *testing.T) {
		factory := testfixtures.NewServiceFactory()
		service := factory.WorkingHoursService()

		region := "XX"
		_, err := service.SetTimezone(ctx, application.TimezoneInput{
			Timezone:         "Asia/Shanghai",
			UTCOffsetMinutes: 480,
			Region:           &region,
		})
		if !errors.Is(err, application.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if got := service.Timezone(ctx); got.Timezone != "UTC" || got.UTCOffsetMinutes != 0 {
			t.Fatalf("timezone committed despite rejected region: %+v", got)
		}
		if _, err := factory.Store.LoadSettings(ctx); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("settings persisted despite rejected region: %v", err)
		}
	})

	t.Run("a settings persistence failure leaves the snapshot untouched", func(t *testing.T) {
		store := &failingStore{MemoryConfigStore: testfixtures.NewMemoryConfigStore(), saveErr: errors.New("disk full")}
		service := newTestService(store)

		if _, err := service.SetTimezone(ctx, application.TimezoneInput{Timezone: "Asia/Shanghai", UTCOffsetMinutes: 480}); err == nil {
			t.Fatal("expected persistence error")
		}
		if got := service.Timezone(ctx); got.Timezone != "UTC" || got.UTCOffsetMinutes != 0 {
			t.Fatalf("snapshot changed despite persistence failure: %+v", got)
		}
	})

	t.Run("unknown region fails with not found", func(t *testing.T) {
		service := testfixtures.NewServiceFactory().WorkingHoursService()
		if _, err := service.SetRegion(ctx, "XX"); !errors.Is(err, application.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("selecting and clearing a region round-trips", func(t *testing.T) {
		service := testfixtures.NewServiceFactory().WorkingHoursService()

		settings, err := service.SetRegion(ctx, "CN")
		if err != nil || settings.Region != "CN" {
			t.Fatalf("select failed: %+v %v", settings, err)
		}
		settings, err = service.SetRegion(ctx, "")
		if err != nil || settings.Region != "" {
			t.Fatalf("clear failed: %+v %v", settings, err)
		}
	})
}

func TestWorkingHoursService_Evaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("weekly window match", func(t *testing.T) {
		service := testfixtures.NewServiceFactory().WorkingHoursService()
		if _, err := service.ReplaceTimeRanges(ctx, []schedule.TimeRangeCandidate{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00"},
		}); err != nil {
			t.Fatalf("replace failed: %v", err)
		}

		evaluation := service.Evaluate(ctx, testfixtures.ReferenceTime())
		if !evaluation.Within || evaluation.Reason != schedule.ReasonMatchedRange {
			t.Fatalf("unexpected evaluation: %+v", evaluation)
		}
	})

	t.Run("selected region's holiday dates exclude the day", func(t *testing.T) {
		service := testfixtures.NewServiceFactory().WorkingHoursService()

		// Mid-Autumn Festival 2024 falls on Tuesday September 17.
		if _, err := service.ReplaceTimeRanges(ctx, []schedule.TimeRangeCandidate{
			{DayOfWeek: 2, StartTime: "00:00", EndTime: "23:59"},
		}); err != nil {
			t.Fatalf("replace failed: %v", err)
		}
		if _, err := service.SetRegion(ctx, "CN"); err != nil {
			t.Fatalf("set region failed: %v", err)
		}

		evaluation := service.Evaluate(ctx, time.Date(2024, time.September, 17, 9, 0, 0, 0, time.UTC))
		if evaluation.Within || evaluation.Reason != schedule.ReasonHoliday {
			t.Fatalf("unexpected evaluation: %+v", evaluation)
		}
	})

	t.Run("zero instant evaluates against the injected clock", func(t *testing.T) {
		clock := testfixtures.NewClock(time.Time{})
		factory := testfixtures.NewServiceFactory(testfixtures.WithClock(clock))
		service := factory.WorkingHoursService()

		evaluation := service.Evaluate(ctx, time.Time{})
		if !evaluation.At.Equal(testfixtures.ReferenceTime()) {
			t.Fatalf("expected clock time, got %v", evaluation.At)
		}
		if evaluation.Within || evaluation.Reason != schedule.ReasonNoMatch {
			t.Fatalf("empty matrix must never match: %+v", evaluation)
		}
	})
}

func TestWorkingHoursService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("hydrates state from the store", func(t *testing.T) {
		store := testfixtures.NewMemoryConfigStore()
		if err := store.ReplaceTimeRanges(ctx, []schedule.TimeRange{testfixtures.NewTimeRange(time.Friday, 8*60, 12*60)}); err != nil {
			t.Fatalf("seed ranges failed: %v", err)
		}
		if err := store.SaveSettings(ctx, application.Settings{Timezone: "Asia/Shanghai", UTCOffsetMinutes: 480, Region: "CN"}); err != nil {
			t.Fatalf("seed settings failed: %v", err)
		}

		service := newTestService(store)
		if err := service.Load(ctx); err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got := service.TimeRanges(ctx); len(got) != 1 || got[0].Weekday != time.Friday {
			t.Fatalf("unexpected hydrated ranges: %+v", got)
		}
		if got := service.Timezone(ctx); got.Region != "CN" {
			t.Fatalf("unexpected hydrated settings: %+v", got)
		}
	})

	t.Run("missing settings default to UTC", func(t *testing.T) {
		service := testfixtures.NewServiceFactory().WorkingHoursService()
		if err := service.Load(ctx); err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got := service.Timezone(ctx); got.Timezone != "UTC" || got.UTCOffsetMinutes != 0 {
			t.Fatalf("unexpected defaults: %+v", got)
		}
	})
}

func TestErrorKind(t *testing.T) {
	if kind := application.ErrorKind(application.ErrNotFound); kind != "not_found" {
		t.Fatalf("unexpected kind: %s", kind)
	}
	if kind := application.ErrorKind(application.NewValidationError(map[string]string{"a": "B"})); kind != "validation" {
		t.Fatalf("unexpected kind: %s", kind)
	}
	if kind := application.ErrorKind(errors.New("boom")); kind != "unexpected" {
		t.Fatalf("unexpected kind: %s", kind)
	}
	if kind := application.ErrorKind(nil); kind != "" {
		t.Fatalf("unexpected kind: %s", kind)
	}
}
