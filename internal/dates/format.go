package dates

import (
	"fmt"
	"math"
	"time"
)

// Relative renders a feed timestamp: minutes/hours/days ago while the post
// is under a week old, then the calendar date.
func Relative(r Result, now time.Time) string {
	if !r.Valid {
		return "Unknown"
	}
	d := now.Sub(r.Time)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return r.Time.Format("January 2, 2006")
	}
}

// EventDate renders the long-form event date.
func EventDate(r Result) string {
	if !r.Valid {
		return "Date TBD"
	}
	return r.Time.Format("Monday, January 2, 2006")
}

// Clock renders a 12-hour wall time.
func Clock(r Result) string {
	if !r.Valid {
		return "TBD"
	}
	return r.Time.Format("3:04 PM")
}

// Duration renders the span between two event times. An end earlier than
// the start is treated as overnight. Spans under an hour are shown in
// minutes, longer ones in hours rounded to the nearest half.
func Duration(start, end any) string {
	s := Parse(start)
	e := Parse(end)
	if !s.Valid || !e.Valid {
		return "Unknown"
	}

	d := e.Time.Sub(s.Time)
	if d < 0 {
		d += 24 * time.Hour
	}

	hours := d.Hours()
	switch {
	case hours < 1:
		minutes := int(math.Round(hours * 60))
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	case hours == 1:
		return "1 hour"
	default:
		return fmt.Sprintf("%g hours", math.Round(hours*2)/2)
	}
}

// DaysLeft counts whole days until the event date, never below zero.
func DaysLeft(date any, now time.Time) int {
	r := Parse(date)
	if !r.Valid {
		return 0
	}
	days := int(math.Ceil(r.Time.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
