package fixture

import (
	"strings"
	"time"
)

const (
	StatusUnplayed  = "unplayed"
	StatusLive      = "live"
	StatusCompleted = "completed"
)

const DateLayout = "2006-01-02"

// Fixture represents one scheduled NBA game as returned by the schedule feed.
type Fixture struct {
	ID       string
	HomeTeam string
	AwayTeam string
	// StartAt is zero when RawStart could not be parsed.
	StartAt   time.Time
	RawStart  string
	Status    string
	RawStatus string
	// Record is the decoded provider object, kept for score extraction.
	Record map[string]any
}

// NormalizeStatus folds provider status values into unplayed, live or completed.
func NormalizeStatus(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case StatusLive:
		return StatusLive
	case StatusCompleted:
		return StatusCompleted
	default:
		return StatusUnplayed
	}
}

func (f Fixture) IsCompleted() bool {
	return f.Status == StatusCompleted
}

// Start resolves the start instant in loc. RawStart without a zone is read as loc wall time;
// a bare date carries no time of day and is reported as unknown.
func (f Fixture) Start(loc *time.Location) (time.Time, bool) {
	if !f.StartAt.IsZero() {
		return f.StartAt, true
	}
	if loc == nil {
		loc = time.UTC
	}
	raw := strings.TrimSpace(f.RawStart)
	for _, layout := range localLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// LocalDate returns the YYYY-MM-DD calendar date of the start time in loc.
// Without a usable start time the date prefix of RawStart is used.
func (f Fixture) LocalDate(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	if start, ok := f.Start(loc); ok {
		return start.In(loc).Format(DateLayout)
	}
	raw := strings.TrimSpace(f.RawStart)
	if idx := strings.Index(raw, "T"); idx >= 0 {
		return raw[:idx]
	}
	return raw
}

var localLayouts = []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04"}

// ParseStart accepts RFC3339 timestamps with or without fractional seconds. Values without
// a zone are left to Fixture.Start.
func ParseStart(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

// CalendarDates returns the reference date and the following day in loc.
func CalendarDates(ref time.Time, loc *time.Location) (string, string) {
	if loc == nil {
		loc = time.UTC
	}
	local := ref.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, loc)
	return today.Format(DateLayout), today.AddDate(0, 0, 1).Format(DateLayout)
}
