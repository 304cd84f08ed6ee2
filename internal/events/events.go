package events

import (
	"strings"

	"github.com/seedcampus/seed-client/internal/types"
)

// Average kg of CO2 a planted tree absorbs per year, used for the impact
// figure on the event detail page.
const kgCO2PerTree = 48

// HasJoined reports whether userID already joined the event: a participant
// record matching on id or user_id, or the backend's user_joined flag when
// only a count was returned.
func HasJoined(ev types.Event, userID types.ID) bool {
	if userID == "" {
		return false
	}
	for _, p := range ev.Participants.List {
		if p.ID == userID || p.UserID == userID {
			return true
		}
	}
	return ev.UserJoined
}

// IsFull reports whether the event reached its participant limit. A limit
// of zero means unlimited.
func IsFull(ev types.Event) bool {
	limit := int(ev.ParticipantLimit)
	return limit > 0 && ev.Participants.Count >= limit
}

// Filters are the events-page controls. Empty or "all" selectors pass
// everything; Search matches title or location, case-insensitive.
type Filters struct {
	Search string
	Campus string
	Status string
}

// Filter retains the events matching all three predicates. It operates on
// the in-memory snapshot only and never fetches.
func Filter(evs []types.Event, f Filters) []types.Event {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]types.Event, 0, len(evs))
	for _, ev := range evs {
		if search != "" &&
			!strings.Contains(strings.ToLower(ev.Title), search) &&
			!strings.Contains(strings.ToLower(ev.Location), search) {
			continue
		}
		if !selectorMatches(f.Campus, ev.Campus) {
			continue
		}
		if !selectorMatches(f.Status, ev.Status) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func selectorMatches(want, have string) bool {
	return want == "" || strings.EqualFold(want, "all") || strings.EqualFold(want, have)
}

// CO2Impact estimates the annual CO2 reduction in kg for an event.
func CO2Impact(ev types.Event) int {
	return int(ev.TreeCount) * kgCO2PerTree
}

// CampusName renders a campus selector value for display.
func CampusName(campus string) string {
	if campus == "" {
		campus = "main"
	}
	return capitalize(campus) + " Campus"
}

// StatusName renders an event status for display.
func StatusName(status string) string {
	if status == "" {
		status = "upcoming"
	}
	return capitalize(status)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
