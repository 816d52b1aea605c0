package persistence

import "time"

// TimeRange is one stored weekly availability window. Minutes are counted
// since midnight; Position preserves the order the batch was submitted in.
type TimeRange struct {
	ID       string
	Weekday  int
	StartMin int
	EndMin   int
	Position int
}

// ExcludedDate is one stored excluded calendar date.
type ExcludedDate struct {
	ID       string
	Date     time.Time
	Label    string
	Position int
}

// Settings carries the timezone selection used to normalize evaluation
// instants and the optional holiday region.
type Settings struct {
	Timezone         string
	UTCOffsetMinutes int
	Region           string
}
