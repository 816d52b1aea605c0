package testfixtures

import (
	"context"
	"sync"
	"time"

	"github.com/example/workinghours/internal/application"
	"github.com/example/workinghours/internal/holiday"
	"github.com/example/workinghours/internal/persistence"
	"github.com/example/workinghours/internal/schedule"
)

// MemoryConfigStore is an in-memory application.ConfigStore for wiring
// services in tests without a database.
type MemoryConfigStore struct {
	mu            sync.Mutex
	timeRanges    []schedule.TimeRange
	excludedDates []schedule.ExcludedDate
	settings      *application.Settings
}

// NewMemoryConfigStore returns an empty store.
func NewMemoryConfigStore() *MemoryConfigStore {
	return &MemoryConfigStore{}
}

func (s *MemoryConfigStore) ReplaceTimeRanges(ctx context.Context, ranges []schedule.TimeRange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeRanges = append([]schedule.TimeRange(nil), ranges...)
	return nil
}

func (s *MemoryConfigStore) ListTimeRanges(ctx context.Context) ([]schedule.TimeRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]schedule.TimeRange(nil), s.timeRanges...), nil
}

func (s *MemoryConfigStore) ReplaceExcludedDates(ctx context.Context, dates []schedule.ExcludedDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.excludedDates = append([]schedule.ExcludedDate(nil), dates...)
	return nil
}

func (s *MemoryConfigStore) ListExcludedDates(ctx context.Context) ([]schedule.ExcludedDate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]schedule.ExcludedDate(nil), s.excludedDates...), nil
}

func (s *MemoryConfigStore) SaveSettings(ctx context.Context, settings application.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &settings
	return nil
}

func (s *MemoryConfigStore) LoadSettings(ctx context.Context) (application.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return application.Settings{}, persistence.ErrNotFound
	}
	return *s.settings, nil
}

// ServiceFactory assists tests with constructing the working-hours service
// using deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Store       *MemoryConfigStore
	Registry    *holiday.Registry
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults: the reference
// clock, a sequential id generator, an empty in-memory store and the built-in
// holiday regions.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
		Store:       NewMemoryConfigStore(),
		Registry:    holiday.NewRegistry(),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	if factory.Store == nil {
		factory.Store = NewMemoryConfigStore()
	}
	if factory.Registry == nil {
		factory.Registry = holiday.NewRegistry()
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the id generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// WorkingHoursService builds a service wired to the factory's store, registry,
// clock and id generator.
func (f *ServiceFactory) WorkingHoursService() *application.WorkingHoursService {
	return application.NewWorkingHoursService(f.Store, f.Registry, f.IDGenerator.NextFunc(), f.Clock.NowFunc())
}
