package holiday

import (
	"errors"
	"time"
)

// ErrNotFound is returned for unknown region codes and holiday keys.
var ErrNotFound = errors.New("holiday: not found")

// Manager owns one region's immutable holiday catalog. Only computed
// occurrence snapshots leave the manager; the catalog never changes after
// construction, so a Manager is safe for concurrent use.
type Manager struct {
	region  string
	catalog []Definition
}

func newManager(region string, catalog []Definition) *Manager {
	defs := make([]Definition, len(catalog))
	copy(defs, catalog)
	return &Manager{region: region, catalog: defs}
}

// Region returns the region code this manager serves.
func (m *Manager) Region() string {
	return m.region
}

// HolidaysThisYear resolves every catalog entry against now, in catalog
// order. Occurrences are recomputed on every call; a previously computed
// date may have just elapsed, so no staleness is tolerated.
func (m *Manager) HolidaysThisYear(now time.Time) []Holiday {
	holidays := make([]Holiday, 0, len(m.catalog))
	for _, def := range m.catalog {
		holidays = append(holidays, Resolve(def, now))
	}
	return holidays
}

// Holiday resolves the catalog entry with the given key against now.
func (m *Manager) Holiday(key string, now time.Time) (Holiday, error) {
	for _, def := range m.catalog {
		if def.Key == key {
			return Resolve(def, now), nil
		}
	}
	return Holiday{}, ErrNotFound
}
