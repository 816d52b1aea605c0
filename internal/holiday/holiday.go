// Package holiday resolves named recurring holidays to their next concrete
// occurrence on the Gregorian calendar. Definitions come in two variants:
// fixed Gregorian month/day pairs and Chinese lunisolar month/day pairs,
// which are converted to solar dates per lunar year.
package holiday

import (
	"strings"
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// Kind discriminates the two holiday definition variants.
type Kind int

const (
	// KindFixed marks a holiday pinned to a Gregorian (month, day).
	KindFixed Kind = iota
	// KindLunisolar marks a holiday pinned to a Chinese lunar (month, day).
	KindLunisolar
)

// Definition describes one recurring holiday. Month and Day are Gregorian
// for KindFixed and lunar for KindLunisolar. Definitions are immutable;
// occurrence dates are computed on demand, never stored.
type Definition struct {
	Key   string
	Name  string
	Kind  Kind
	Month int
	Day   int
}

// Holiday is a definition resolved against a concrete "now": a snapshot
// carrying the next occurrence as a midnight UTC instant.
type Holiday struct {
	Key            string
	Name           string
	NextOccurrence time.Time
}

// Fixed builds a fixed-date definition, deriving the key from the name.
func Fixed(name string, month, day int) Definition {
	return Definition{Key: keyFromName(name), Name: name, Kind: KindFixed, Month: month, Day: day}
}

// Lunisolar builds a lunisolar definition, deriving the key from the name.
func Lunisolar(name string, month, day int) Definition {
	return Definition{Key: keyFromName(name), Name: name, Kind: KindLunisolar, Month: month, Day: day}
}

func keyFromName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// OccurrenceOf computes the next occurrence of def strictly after now.
//
// The candidate is first resolved in now's year (for lunisolar definitions:
// in the lunar year numbered like now's year, with the leap flag off, so a
// month that repeats as a leap month always resolves against its regular
// run). When the candidate's midnight UTC instant is not strictly after
// now, the following year's occurrence is returned instead; a holiday
// therefore counts as elapsed from the first second of its own day.
//
// The result is deterministic and idempotent for a fixed now. A fixed-date
// Feb 29 definition resolves to March 1 in non-leap years via date
// normalization, keeping the computation total.
func OccurrenceOf(def Definition, now time.Time) time.Time {
	occurrence := occurrenceInYear(def, now.Year())
	if occurrence.After(now) {
		return occurrence
	}
	return occurrenceInYear(def, now.Year()+1)
}

// OccurrenceInYear resolves def's occurrence within the given year without
// the futurity rule: the result may lie in the past. Evaluation uses this to
// test whether a given date is the holiday's date for its own year.
func OccurrenceInYear(def Definition, year int) time.Time {
	return occurrenceInYear(def, year)
}

func occurrenceInYear(def Definition, year int) time.Time {
	if def.Kind == KindLunisolar {
		solar := calendar.NewLunarFromYmd(year, def.Month, def.Day).GetSolar()
		return time.Date(solar.GetYear(), time.Month(solar.GetMonth()), solar.GetDay(), 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, time.Month(def.Month), def.Day, 0, 0, 0, 0, time.UTC)
}

// Resolve snapshots a definition against now.
func Resolve(def Definition, now time.Time) Holiday {
	return Holiday{
		Key:            def.Key,
		Name:           def.Name,
		NextOccurrence: OccurrenceOf(def, now),
	}
}
