package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/example/workinghours/internal/holiday"
	"github.com/example/workinghours/internal/persistence"
	"github.com/example/workinghours/internal/schedule"
)

// ConfigStore captures the persistence interactions needed by the service.
type ConfigStore interface {
	ReplaceTimeRanges(ctx context.Context, ranges []schedule.TimeRange) error
	ListTimeRanges(ctx context.Context) ([]schedule.TimeRange, error)
	ReplaceExcludedDates(ctx context.Context, dates []schedule.ExcludedDate) error
	ListExcludedDates(ctx context.Context) ([]schedule.ExcludedDate, error)
	SaveSettings(ctx context.Context, settings Settings) error
	LoadSettings(ctx context.Context) (Settings, error)
}

// RegionDirectory exposes holiday region lookups.
type RegionDirectory interface {
	Regions() []string
	HasRegion(code string) bool
	HolidaysForRegion(code string, now time.Time) ([]holiday.Holiday, error)
	OccurrenceDatesForRegion(code string, year int) ([]time.Time, error)
}

// WorkingHoursService owns the live working-hours configuration and answers
// membership queries against it. Configuration replacements are validated as
// a whole, persisted, and then swapped in atomically, so a concurrent
// Evaluate observes either the fully-old or fully-new state.
type WorkingHoursService struct {
	store       ConfigStore
	regions     RegionDirectory
	idGenerator func() string
	now         func() time.Time
	metrics     *Metrics
	logger      *slog.Logger

	mu            sync.RWMutex
	timeRanges    []schedule.TimeRange
	excludedDates []schedule.ExcludedDate
	settings      Settings
}

// NewWorkingHoursService wires dependencies for working-hours operations.
func NewWorkingHoursService(store ConfigStore, regions RegionDirectory, idGenerator func() string, now func() time.Time) *WorkingHoursService {
	return NewWorkingHoursServiceWithLogger(store, regions, idGenerator, now, nil, nil)
}

// NewWorkingHoursServiceWithLogger additionally attaches metrics and a
// logger. Both may be nil.
func NewWorkingHoursServiceWithLogger(store ConfigStore, regions RegionDirectory, idGenerator func() string, now func() time.Time, metrics *Metrics, logger *slog.Logger) *WorkingHoursService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &WorkingHoursService{
		store:       store,
		regions:     regions,
		idGenerator: idGenerator,
		now:         now,
		metrics:     metrics,
		logger:      defaultLogger(logger),
		settings:    Settings{Timezone: "UTC"},
	}
}

// Load hydrates the in-memory configuration from the store. Missing settings
// fall back to UTC with a zero offset and no region.
func (s *WorkingHoursService) Load(ctx context.Context) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("config store not configured")
	}

	ranges, err := s.store.ListTimeRanges(ctx)
	if err != nil {
		return fmt.Errorf("failed to load time ranges: %w", err)
	}
	dates, err := s.store.ListExcludedDates(ctx)
	if err != nil {
		return fmt.Errorf("failed to load excluded dates: %w", err)
	}
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, persistence.ErrNotFound) {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		settings = Settings{Timezone: "UTC"}
	}

	s.mu.Lock()
	s.timeRanges = ranges
	s.excludedDates = dates
	s.settings = settings
	s.mu.Unlock()

	serviceLogger(ctx, s.logger, "load").InfoContext(ctx, "configuration loaded",
		"time_ranges", len(ranges), "excluded_dates", len(dates), "region", settings.Region)
	return nil
}

// ReplaceTimeRanges validates the candidate batch and, only when every
// candidate is valid, commits it as the new weekly matrix. A rejected batch
// leaves the prior configuration untouched.
func (s *WorkingHoursService) ReplaceTimeRanges(ctx context.Context, candidates []schedule.TimeRangeCandidate) ([]schedule.TimeRange, error) {
	if s == nil {
		return nil, fmt.Errorf("WorkingHoursService is nil")
	}

	logger := serviceLogger(ctx, s.logger, "replace_time_ranges")

	ranges, failures := schedule.ValidateTimeRangeBatch(candidates)
	if len(failures) > 0 {
		s.metrics.observeConfigUpdate("time_ranges", "rejected")
		logger.WarnContext(ctx, "time range batch rejected", "failures", len(failures))
		return nil, NewValidationError(failures)
	}

	for i := range ranges {
		ranges[i].ID = s.idGenerator()
	}

	if s.store != nil {
		if err := s.store.ReplaceTimeRanges(ctx, ranges); err != nil {
			s.metrics.observeConfigUpdate("time_ranges", "error")
			return nil, fmt.Errorf("failed to persist time ranges: %w", err)
		}
	}

	s.mu.Lock()
	s.timeRanges = ranges
	s.mu.Unlock()

	s.metrics.observeConfigUpdate("time_ranges", "committed")
	logger.InfoContext(ctx, "time ranges replaced", "count", len(ranges))
	return cloneTimeRanges(ranges), nil
}

// TimeRanges returns the committed weekly matrix.
func (s *WorkingHoursService) TimeRanges(ctx context.Context) []schedule.TimeRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTimeRanges(s.timeRanges)
}

// ReplaceExcludedDates applies the same all-or-nothing batch semantics to
// the excluded-date list.
func (s *WorkingHoursService) ReplaceExcludedDates(ctx context.Context, candidates []schedule.ExcludedDateCandidate) ([]schedule.ExcludedDate, error) {
	if s == nil {
		return nil, fmt.Errorf("WorkingHoursService is nil")
	}

	logger := serviceLogger(ctx, s.logger, "replace_excluded_dates")

	dates, failures := schedule.ValidateExcludedDateBatch(candidates)
	if len(failures) > 0 {
		s.metrics.observeConfigUpdate("excluded_dates", "rejected")
		logger.WarnContext(ctx, "excluded date batch rejected", "failures", len(failures))
		return nil, NewValidationError(failures)
	}

	for i := range dates {
		dates[i].ID = s.idGenerator()
	}

	if s.store != nil {
		if err := s.store.ReplaceExcludedDates(ctx, dates); err != nil {
			s.metrics.observeConfigUpdate("excluded_dates", "error")
			return nil, fmt.Errorf("failed to persist excluded dates: %w", err)
		}
	}

	s.mu.Lock()
	s.excludedDates = dates
	s.mu.Unlock()

	s.metrics.observeConfigUpdate("excluded_dates", "committed")
	logger.InfoContext(ctx, "excluded dates replaced", "count", len(dates))
	return cloneExcludedDates(dates), nil
}

// ExcludedDates returns the committed excluded-date list.
func (s *WorkingHoursService) ExcludedDates(ctx context.Context) []schedule.ExcludedDate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneExcludedDates(s.excludedDates)
}

// SetTimezone updates the timezone identifier and UTC offset, and optionally
// the holiday region when input.Region is non-nil. The whole update is
// validated up front and committed in a single step, so a rejected region
// never leaves a half-applied timezone behind.
func (s *WorkingHoursService) SetTimezone(ctx context.Context, input TimezoneInput) (Settings, error) {
	if s == nil {
		return Settings{}, fmt.Errorf("WorkingHoursService is nil")
	}

	vErr := &ValidationError{}
	if input.Timezone == "" {
		vErr.add("timezone", "TIMEZONE_REQUIRED")
	}
	if input.UTCOffsetMinutes < -18*60 || input.UTCOffsetMinutes > 18*60 {
		vErr.add("utc_offset_minutes", "INVALID_UTC_OFFSET")
	}
	if vErr.HasErrors() {
		return Settings{}, vErr
	}
	if input.Region != nil && *input.Region != "" && (s.regions == nil || !s.regions.HasRegion(*input.Region)) {
		return Settings{}, ErrNotFound
	}

	s.mu.RLock()
	settings := s.settings
	s.mu.RUnlock()

	settings.Timezone = input.Timezone
	settings.UTCOffsetMinutes = input.UTCOffsetMinutes
	if input.Region != nil {
		settings.Region = *input.Region
	}

	return s.commitSettings(ctx, settings)
}

// SetRegion selects the holiday region applied as an exclusion set during
// evaluation. An empty code clears the selection; unknown codes fail with
// ErrNotFound.
func (s *WorkingHoursService) SetRegion(ctx context.Context, code string) (Settings, error) {
	if s == nil {
		return Settings{}, fmt.Errorf("WorkingHoursService is nil")
	}
	if code != "" && (s.regions == nil || !s.regions.HasRegion(code)) {
		return Settings{}, ErrNotFound
	}

	s.mu.RLock()
	settings := s.settings
	s.mu.RUnlock()

	settings.Region = code

	return s.commitSettings(ctx, settings)
}

func (s *WorkingHoursService) commitSettings(ctx context.Context, settings Settings) (Settings, error) {
	if s.store != nil {
		if err := s.store.SaveSettings(ctx, settings); err != nil {
			return Settings{}, fmt.Errorf("failed to persist settings: %w", err)
		}
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	serviceLogger(ctx, s.logger, "commit_settings").InfoContext(ctx, "settings updated",
		"timezone", settings.Timezone, "utc_offset_minutes", settings.UTCOffsetMinutes, "region", settings.Region)
	return settings, nil
}

// Timezone returns the current timezone selection.
func (s *WorkingHoursService) Timezone(ctx context.Context) Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Regions enumerates the supported holiday regions.
func (s *WorkingHoursService) Regions(ctx context.Context) []string {
	if s == nil || s.regions == nil {
		return nil
	}
	return s.regions.Regions()
}

// HolidaysForRegion resolves the region's catalog, every entry refreshed
// against the current clock.
func (s *WorkingHoursService) HolidaysForRegion(ctx context.Context, code string) ([]holiday.Holiday, error) {
	if s == nil || s.regions == nil {
		return nil, ErrNotFound
	}
	holidays, err := s.regions.HolidaysForRegion(code, s.now())
	if err != nil {
		if errors.Is(err, holiday.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return holidays, nil
}

// Evaluate answers whether the instant falls inside working hours under the
// committed configuration. A zero instant means "now". Evaluate always
// produces a decision; a region that has disappeared from the registry is
// treated as contributing no holidays.
func (s *WorkingHoursService) Evaluate(ctx context.Context, at time.Time) Evaluation {
	if at.IsZero() {
		at = s.now()
	}

	s.mu.RLock()
	cfg := schedule.Config{
		TimeRanges:       s.timeRanges,
		ExcludedDates:    s.excludedDates,
		UTCOffsetMinutes: s.settings.UTCOffsetMinutes,
	}
	region := s.settings.Region
	s.mu.RUnlock()

	if region != "" && s.regions != nil {
		localYear := at.In(time.FixedZone("", cfg.UTCOffsetMinutes*60)).Year()
		if dates, err := s.regions.OccurrenceDatesForRegion(region, localYear); err == nil {
			cfg.HolidayDates = dates
		}
	}

	decision := schedule.Evaluate(at, cfg)
	s.metrics.observeEvaluation(string(decision.Reason))
	serviceLogger(ctx, s.logger, "evaluate").DebugContext(ctx, "working hours evaluated",
		"at", at, "within", decision.Within, "reason", string(decision.Reason))

	return Evaluation{At: at, Within: decision.Within, Reason: decision.Reason}
}
