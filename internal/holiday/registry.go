package holiday

import (
	"sync"
	"time"
)

// RegionCN is the Chinese lunisolar preset region.
const RegionCN = "CN"

// RegionUS is the fixed-date preset region.
const RegionUS = "US"

// builtinCatalogs enumerates the preset holiday catalogs per region.
var builtinCatalogs = map[string][]Definition{
	RegionCN: {
		Lunisolar("Spring Festival", 1, 1),
		Lunisolar("Lantern Festival", 1, 15),
		Lunisolar("Dragon Boat Festival", 5, 5),
		Lunisolar("Chinese Valentine's Festival", 7, 7),
		Lunisolar("Mid-Autumn Festival", 8, 15),
	},
	RegionUS: {
		Fixed("New Year's Day", 1, 1),
		Fixed("Independence Day", 7, 4),
		Fixed("Veterans Day", 11, 11),
		Fixed("Christmas Day", 12, 25),
	},
}

// regionOrder fixes the enumeration order reported to clients.
var regionOrder = []string{RegionCN, RegionUS}

// Registry maps region codes to their holiday managers. It is constructed
// explicitly and injected wherever region lookups are needed; managers are
// built lazily, at most once per region, and shared for the registry's
// lifetime. All methods are safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	catalogs map[string][]Definition
	order    []string
	managers map[string]*Manager
}

// NewRegistry returns a registry backed by the built-in preset catalogs.
func NewRegistry() *Registry {
	return &Registry{
		catalogs: builtinCatalogs,
		order:    regionOrder,
		managers: make(map[string]*Manager),
	}
}

// Regions enumerates all supported region codes in stable order.
func (r *Registry) Regions() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// HasRegion reports whether the code names a supported region.
func (r *Registry) HasRegion(code string) bool {
	_, ok := r.catalogs[code]
	return ok
}

// HolidaysForRegion resolves the region's catalog against now. It returns
// ErrNotFound for unknown region codes.
func (r *Registry) HolidaysForRegion(code string, now time.Time) ([]Holiday, error) {
	manager, err := r.manager(code)
	if err != nil {
		return nil, err
	}
	return manager.HolidaysThisYear(now), nil
}

// HolidayForRegion resolves one holiday by key within a region.
func (r *Registry) HolidayForRegion(code, key string, now time.Time) (Holiday, error) {
	manager, err := r.manager(code)
	if err != nil {
		return Holiday{}, err
	}
	return manager.Holiday(key, now)
}

// OccurrenceDatesForRegion resolves every catalog entry of the region to its
// occurrence date within the given year, in catalog order. Unlike
// HolidaysForRegion the results are not subject to the futurity rule.
func (r *Registry) OccurrenceDatesForRegion(code string, year int) ([]time.Time, error) {
	manager, err := r.manager(code)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(manager.catalog))
	for _, def := range manager.catalog {
		dates = append(dates, OccurrenceInYear(def, year))
	}
	return dates, nil
}

func (r *Registry) manager(code string) (*Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if manager, ok := r.managers[code]; ok {
		return manager, nil
	}
	catalog, ok := r.catalogs[code]
	if !ok {
		return nil, ErrNotFound
	}
	manager := newManager(code, catalog)
	r.managers[code] = manager
	return manager, nil
}
