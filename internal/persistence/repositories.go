package persistence

import "context"

// ConfigRepository stores the working-hours configuration. The weekly matrix
// and the excluded-date list are replaced wholesale, never patched, so state
// reloaded later observes either the fully-old or fully-new collection.
type ConfigRepository interface {
	ReplaceTimeRanges(ctx context.Context, ranges []TimeRange) error
	ListTimeRanges(ctx context.Context) ([]TimeRange, error)

	ReplaceExcludedDates(ctx context.Context, dates []ExcludedDate) error
	ListExcludedDates(ctx context.Context) ([]ExcludedDate, error)

	SaveSettings(ctx context.Context, settings Settings) error
	// LoadSettings returns ErrNotFound when no settings were ever saved.
	LoadSettings(ctx context.Context) (Settings, error)
}
