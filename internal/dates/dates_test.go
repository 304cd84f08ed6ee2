package dates

import (
	"testing"
	"time"
)

func TestParseISO(t *testing.T) {
	r := Parse("2025-10-12T22:24:54Z")
	if !r.Valid || r.Ambiguous {
		t.Fatalf("unexpected flags: %+v", r)
	}
	want := time.Date(2025, 10, 12, 22, 24, 54, 0, time.UTC)
	if !r.Time.Equal(want) {
		t.Fatalf("got %v, want %v", r.Time, want)
	}
}

func TestParseSheetSerial(t *testing.T) {
	// 45658 days past the sheet epoch is 2025-01-01
	r := Parse(float64(45658))
	if !r.Valid {
		t.Fatal("serial did not parse")
	}
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !r.Time.Equal(want) {
		t.Fatalf("got %v, want %v", r.Time, want)
	}
}

func TestParseLocaleHeuristic(t *testing.T) {
	// Both leading components fit in a month, so ordering is a guess. The
	// documented default is US month-first, and the result says so via
	// Ambiguous.
	r := Parse("10/12/2025 22:24:54")
	if !r.Valid {
		t.Fatal("locale string did not parse")
	}
	if !r.Ambiguous {
		t.Fatal("expected the day/month guess to be flagged ambiguous")
	}
	if r.Time.Month() != time.October || r.Time.Day() != 12 || r.Time.Year() != 2025 {
		t.Fatalf("got %v, want October 12 2025", r.Time)
	}
	if r.Time.Hour() != 22 || r.Time.Minute() != 24 || r.Time.Second() != 54 {
		t.Fatalf("time of day wrong: %v", r.Time)
	}
}

func TestParseLocaleDayFirst(t *testing.T) {
	// 25 cannot be a month, so this one is certain
	r := Parse("25/12/2025 08:00:00")
	if !r.Valid || r.Ambiguous {
		t.Fatalf("unexpected flags: %+v", r)
	}
	if r.Time.Day() != 25 || r.Time.Month() != time.December {
		t.Fatalf("got %v, want December 25", r.Time)
	}
}

func TestParseLocaleMonthFirstCertain(t *testing.T) {
	// second component over 12 rules out day-first for it
	r := Parse("10/25/2025")
	if !r.Valid || r.Ambiguous {
		t.Fatalf("unexpected flags: %+v", r)
	}
	if r.Time.Month() != time.October || r.Time.Day() != 25 {
		t.Fatalf("got %v, want October 25", r.Time)
	}
}

func TestParseBareClock(t *testing.T) {
	r := Parse("22:30")
	if !r.Valid {
		t.Fatal("bare time did not parse")
	}
	now := time.Now()
	if r.Time.Hour() != 22 || r.Time.Minute() != 30 {
		t.Fatalf("got %v, want 22:30", r.Time)
	}
	if r.Time.Day() != now.Day() {
		t.Fatalf("bare time should land on the current date, got %v", r.Time)
	}
}

func TestParseGarbage(t *testing.T) {
	for _, in := range []any{"not a date", "", nil, "99/99/9999", true} {
		r := Parse(in)
		if r.Valid {
			t.Fatalf("Parse(%v) unexpectedly valid", in)
		}
		if !r.Time.Equal(time.Unix(0, 0)) {
			t.Fatalf("invalid input should pin to epoch zero, got %v", r.Time)
		}
	}
}

func TestRelative(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
	}
	for _, tc := range cases {
		r := Result{Time: now.Add(-tc.ago), Valid: true}
		if got := Relative(r, now); got != tc.want {
			t.Fatalf("Relative(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}

	// past a week it falls back to the calendar date
	old := Result{Time: now.Add(-10 * 24 * time.Hour), Valid: true}
	if got := Relative(old, now); got != "June 5, 2025" {
		t.Fatalf("old post rendered %q", got)
	}

	if got := Relative(Parse("garbage"), now); got != "Unknown" {
		t.Fatalf("invalid time rendered %q", got)
	}
}

func TestEventDate(t *testing.T) {
	if got := EventDate(Parse("2025-04-15")); got != "Tuesday, April 15, 2025" {
		t.Fatalf("got %q", got)
	}
	if got := EventDate(Parse(nil)); got != "Date TBD" {
		t.Fatalf("invalid date rendered %q", got)
	}
}

func TestClock(t *testing.T) {
	if got := Clock(Parse("2025-04-15T14:05:00Z")); got != "2:05 PM" {
		t.Fatalf("got %q", got)
	}
	if got := Clock(Parse("oops")); got != "TBD" {
		t.Fatalf("invalid time rendered %q", got)
	}
}

func TestDuration(t *testing.T) {
	cases := []struct {
		start, end string
		want       string
	}{
		{"09:00", "12:00", "3 hours"},
		{"09:00", "10:00", "1 hour"},
		{"10:00", "10:30", "30 minutes"},
		{"09:00", "10:30", "1.5 hours"},
		{"23:00", "01:00", "2 hours"}, // overnight
	}
	for _, tc := range cases {
		if got := Duration(tc.start, tc.end); got != tc.want {
			t.Fatalf("Duration(%s, %s) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}

	if got := Duration("", "12:00"); got != "Unknown" {
		t.Fatalf("missing start rendered %q", got)
	}
}

func TestDaysLeft(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	if got := DaysLeft("2025-06-18", now); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
	if got := DaysLeft("2025-06-01", now); got != 0 {
		t.Fatalf("past events should report 0 days, got %d", got)
	}
	if got := DaysLeft("garbage", now); got != 0 {
		t.Fatalf("invalid date should report 0 days, got %d", got)
	}
}
