package fixture

import (
	"testing"
	"time"
)

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"completed":   StatusCompleted,
		"COMPLETED":   StatusCompleted,
		" Live ":      StatusLive,
		"unplayed":    StatusUnplayed,
		"":            StatusUnplayed,
		"suspended":   StatusUnplayed,
		"Unplayed   ": StatusUnplayed,
	}
	for raw, want := range cases {
		if got := NormalizeStatus(raw); got != want {
			t.Fatalf("NormalizeStatus(%q)=%q want=%q", raw, got, want)
		}
	}
}

func TestLocalDate_UsesBoardTimezone(t *testing.T) {
	t.Parallel()

	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	start, ok := ParseStart("2026-10-19T02:30:00Z")
	if !ok {
		t.Fatalf("expected start to parse")
	}
	f := Fixture{StartAt: start, RawStart: "2026-10-19T02:30:00Z"}

	if got := f.LocalDate(la); got != "2026-10-18" {
		t.Fatalf("unexpected local date: %s", got)
	}
	if got := f.LocalDate(time.UTC); got != "2026-10-19" {
		t.Fatalf("unexpected utc date: %s", got)
	}
}

func TestLocalDate_FallsBackToRawPrefix(t *testing.T) {
	t.Parallel()

	f := Fixture{RawStart: "2026-10-18Tsoon"}
	if got := f.LocalDate(time.UTC); got != "2026-10-18" {
		t.Fatalf("unexpected fallback date: %q", got)
	}
}

func TestCalendarDates_CrossesMonthAndDST(t *testing.T) {
	t.Parallel()

	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2026-11-01 05:30 UTC is still Oct 31 in Los Angeles; DST ends later that night.
	today, tomorrow := CalendarDates(time.Date(2026, 11, 1, 5, 30, 0, 0, time.UTC), la)
	if today != "2026-10-31" || tomorrow != "2026-11-01" {
		t.Fatalf("unexpected dates: today=%s tomorrow=%s", today, tomorrow)
	}
}

func TestLocalDate_DateOnlyStartKeepsItsDay(t *testing.T) {
	t.Parallel()

	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	start, ok := ParseStart("2026-10-18")
	if ok {
		t.Fatalf("date-only value must not parse as an instant, got %s", start)
	}
	f := Fixture{RawStart: "2026-10-18"}

	if got := f.LocalDate(la); got != "2026-10-18" {
		t.Fatalf("unexpected local date: %s", got)
	}
	if _, ok := f.Start(la); ok {
		t.Fatalf("date-only value must have no start time")
	}
}

func TestStart_ZonelessTimestampUsesBoardLocation(t *testing.T) {
	t.Parallel()

	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	if _, ok := ParseStart("2026-10-18T19:30:00"); ok {
		t.Fatalf("zoneless value must be resolved by Fixture.Start")
	}
	f := Fixture{RawStart: "2026-10-18T19:30:00"}

	start, ok := f.Start(la)
	if !ok {
		t.Fatalf("expected zoneless start to parse")
	}
	if got := start.In(la).Format("2006-01-02 15:04"); got != "2026-10-18 19:30" {
		t.Fatalf("unexpected wall time: %s", got)
	}
	if got := f.LocalDate(la); got != "2026-10-18" {
		t.Fatalf("unexpected local date: %s", got)
	}

	zoned := Fixture{RawStart: "2026-10-19T02:30:00Z"}
	zoned.StartAt, _ = ParseStart(zoned.RawStart)
	if got, _ := zoned.Start(la); !got.Equal(zoned.StartAt) {
		t.Fatalf("zoned start must be kept as is, got %s", got)
	}
}
