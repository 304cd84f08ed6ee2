package dates

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Days between the sheet epoch (1899-12-30) and the Unix epoch. Numeric
// date cells arrive as day counts from the sheet epoch.
const sheetEpochOffset = 25569

var clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// Result is a normalized point in time. Invalid input never produces an
// error: Time is pinned to the Unix epoch so sorts stay stable, and the
// display helpers render a TBD placeholder instead.
//
// Ambiguous is set when a numeric date had to be disambiguated by the
// first-component heuristic and both orderings were plausible; callers that
// care can fall back to a cautious display instead of trusting the guess.
type Result struct {
	Time      time.Time
	Valid     bool
	Ambiguous bool
}

func invalid() Result {
	return Result{Time: time.Unix(0, 0).UTC()}
}

// Parse normalizes any of the timestamp shapes the backend produces:
// time values, sheet serial numbers, ISO strings, locale date strings and
// bare HH:MM times (combined with the current date).
func Parse(v any) Result {
	switch t := v.(type) {
	case time.Time:
		return Result{Time: t, Valid: true}
	case float64:
		return fromSerial(t)
	case int:
		return fromSerial(float64(t))
	case int64:
		return fromSerial(float64(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return fromSerial(f)
		}
	case string:
		return parseString(t)
	}
	return invalid()
}

func fromSerial(serial float64) Result {
	secs := (serial - sheetEpochOffset) * 86400
	return Result{Time: time.Unix(int64(secs), 0).UTC(), Valid: true}
}

func parseString(s string) Result {
	s = strings.TrimSpace(s)
	if s == "" {
		return invalid()
	}

	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Result{Time: t, Valid: true}
		}
	}

	if t, ok := parseClock(s); ok {
		return Result{Time: t, Valid: true}
	}

	return parseLocale(s)
}

// parseClock handles a bare HH:MM time of day on the current date.
func parseClock(s string) (time.Time, bool) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return time.Time{}, false
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), h, min, 0, 0, time.Local), true
}

// parseLocale handles "10/12/2025 22:24:54"-style strings. Ordering is
// guessed: a first component over 12 must be the day, anything else is
// assumed month-first (US ordering). When both leading components are 12 or
// less the guess is marked Ambiguous.
func parseLocale(s string) Result {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-' || r == ':' || r == ' '
	})
	if len(fields) < 3 || len(fields) > 6 {
		return invalid()
	}

	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return invalid()
		}
		nums[i] = n
	}

	p1, p2, p3 := nums[0], nums[1], nums[2]

	var day, month, year int
	ambiguous := false
	switch {
	case p1 > 31: // year-first, e.g. "2025/04/15"
		year, month, day = p1, p2, p3
	case p1 > 12: // day cannot be a month
		day, month, year = p1, p2, p3
	default: // US ordering by default
		month, day, year = p1, p2, p3
		ambiguous = p2 <= 12
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return invalid()
	}

	var h, min, sec int
	if len(nums) > 3 {
		h = nums[3]
	}
	if len(nums) > 4 {
		min = nums[4]
	}
	if len(nums) > 5 {
		sec = nums[5]
	}
	if h > 23 || min > 59 || sec > 59 {
		return invalid()
	}

	t := time.Date(year, time.Month(month), day, h, min, sec, 0, time.Local)
	return Result{Time: t, Valid: true, Ambiguous: ambiguous}
}
