package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/workinghours/internal/persistence"
)

const dateLayout = "2006-01-02"

// ReplaceTimeRanges swaps the stored weekly matrix for the given set in a
// single transaction.
func (s *Storage) ReplaceTimeRanges(ctx context.Context, ranges []persistence.TimeRange) error {
	return s.withTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM time_ranges`); err != nil {
			return fmt.Errorf("failed to clear time ranges: %w", err)
		}
		for _, r := range ranges {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO time_ranges (id, weekday, start_min, end_min, position) VALUES (?, ?, ?, ?, ?)`,
				r.ID, r.Weekday, r.StartMin, r.EndMin, r.Position,
			)
			if err != nil {
				return fmt.Errorf("failed to insert time range %s: %w", r.ID, err)
			}
		}
		return nil
	})
}

// ListTimeRanges returns the stored weekly matrix in submission order.
func (s *Storage) ListTimeRanges(ctx context.Context) ([]persistence.TimeRange, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, weekday, start_min, end_min, position FROM time_ranges ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query time ranges: %w", err)
	}
	defer rows.Close()

	var ranges []persistence.TimeRange
	for rows.Next() {
		var r persistence.TimeRange
		if err := rows.Scan(&r.ID, &r.Weekday, &r.StartMin, &r.EndMin, &r.Position); err != nil {
			return nil, fmt.Errorf("failed to scan time range: %w", err)
		}
		ranges = append(ranges, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time ranges: %w", err)
	}
	return ranges, nil
}

// ReplaceExcludedDates swaps the stored excluded dates for the given set in
// a single transaction.
func (s *Storage) ReplaceExcludedDates(ctx context.Context, dates []persistence.ExcludedDate) error {
	return s.withTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM excluded_dates`); err != nil {
			return fmt.Errorf("failed to clear excluded dates: %w", err)
		}
		for _, d := range dates {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO excluded_dates (id, date, label, position) VALUES (?, ?, ?, ?)`,
				d.ID, d.Date.UTC().Format(dateLayout), d.Label, d.Position,
			)
			if err != nil {
				return fmt.Errorf("failed to insert excluded date %s: %w", d.ID, err)
			}
		}
		return nil
	})
}

// ListExcludedDates returns the stored excluded dates in submission order.
func (s *Storage) ListExcludedDates(ctx context.Context) ([]persistence.ExcludedDate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, label, position FROM excluded_dates ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query excluded dates: %w", err)
	}
	defer rows.Close()

	var dates []persistence.ExcludedDate
	for rows.Next() {
		var d persistence.ExcludedDate
		var raw string
		if err := rows.Scan(&d.ID, &raw, &d.Label, &d.Position); err != nil {
			return nil, fmt.Errorf("failed to scan excluded date: %w", err)
		}
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored date %q: %w", raw, err)
		}
		d.Date = parsed
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate excluded dates: %w", err)
	}
	return dates, nil
}

// SaveSettings upserts the single settings row.
func (s *Storage) SaveSettings(ctx context.Context, settings persistence.Settings) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (id, timezone, utc_offset_minutes, region) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET timezone = excluded.timezone,
		   utc_offset_minutes = excluded.utc_offset_minutes,
		   region = excluded.region`,
		settings.Timezone, settings.UTCOffsetMinutes, settings.Region,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// LoadSettings reads the settings row, mapping an empty table to ErrNotFound.
func (s *Storage) LoadSettings(ctx context.Context) (persistence.Settings, error) {
	var settings persistence.Settings
	err := s.db.QueryRowContext(ctx,
		`SELECT timezone, utc_offset_minutes, region FROM settings WHERE id = 1`,
	).Scan(&settings.Timezone, &settings.UTCOffsetMinutes, &settings.Region)
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.Settings{}, persistence.ErrNotFound
	}
	if err != nil {
		return persistence.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}
