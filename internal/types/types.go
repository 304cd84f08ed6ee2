package types

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Activity kinds tracked in the profile activity log.
const (
	ActionPost      = "post"
	ActionEventJoin = "event-join"
	ActionTreeLog   = "tree-log"
)

// ID is a sheet row identifier. The backend is inconsistent about whether
// ids come back as JSON strings or numbers, so both decode to a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*id = ""
		return nil
	}
	*id = ID(n.String())
	return nil
}

// Count decodes a numeric field that spreadsheet-backed responses sometimes
// return as a quoted string. Anything unparseable decodes as zero.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*c = Count(n)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*c = Count(int(f))
		return nil
	}
	*c = 0
	return nil
}

// Stats are the per-user activity counters shown on the profile page. They
// are bumped locally when activity is logged and overwritten whenever the
// backend reports authoritative numbers.
type Stats struct {
	Posts  Count `json:"posts"`
	Events Count `json:"events"`
	Trees  Count `json:"trees"`
}

// User is the signed-in account. Password holds the reversible demo-encoded
// form, never plaintext; it is kept so the settings page can verify the
// current password before a change.
type User struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
	Bio        string `json:"bio"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Password   string `json:"password,omitempty"`
	Stats      Stats  `json:"stats"`
}

// Comment is one entry of a post's comment list. Entries with
// Meta == "likers" are synthetic records carrying the ids of users who liked
// the post; they are never rendered as comments.
type Comment struct {
	User string `json:"user,omitempty"`
	Text string `json:"text,omitempty"`
	Meta string `json:"_meta,omitempty"`
	List []ID   `json:"list,omitempty"`
}

// CommentList accepts either a JSON array or a JSON-encoded string holding
// one. Unparseable input decodes as empty rather than failing the row.
type CommentList []Comment

func (cl *CommentList) UnmarshalJSON(data []byte) error {
	var arr []Comment
	if err := json.Unmarshal(data, &arr); err == nil {
		*cl = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var inner []Comment
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			*cl = inner
			return nil
		}
	}
	*cl = nil
	return nil
}

// Post is a raw feed row as the backend returns it. Timestamp stays untyped
// because rows carry ISO strings, locale strings or sheet serials; the feed
// reconciler normalizes it.
type Post struct {
	ID         ID          `json:"id"`
	UserID     ID          `json:"userId"`
	UserName   string      `json:"userName"`
	UserAvatar string      `json:"userAvatar"`
	Content    string      `json:"content"`
	Timestamp  any         `json:"timestamp"`
	Likes      Count       `json:"likes"`
	Hashtags   []string    `json:"hashtags,omitempty"`
	Comments   CommentList `json:"comments"`
}

// Participant is one joined-user record inside an event.
type Participant struct {
	ID     ID     `json:"id"`
	UserID ID     `json:"user_id"`
	Name   string `json:"name,omitempty"`
}

// Participants is either a bare count or an array of participant records,
// depending on which backend variant is answering. Both shapes decode to a
// count plus an optional list.
type Participants struct {
	Count int
	List  []Participant
}

func (p *Participants) UnmarshalJSON(data []byte) error {
	var list []Participant
	if err := json.Unmarshal(data, &list); err == nil {
		p.List = list
		p.Count = len(list)
		return nil
	}
	var c Count
	_ = c.UnmarshalJSON(data)
	p.List = nil
	p.Count = int(c)
	return nil
}

func (p Participants) MarshalJSON() ([]byte, error) {
	if p.List != nil {
		return json.Marshal(p.List)
	}
	return json.Marshal(p.Count)
}

// Event is an events-directory row. Date and the time fields stay untyped
// for the same reason as Post.Timestamp.
type Event struct {
	ID               ID           `json:"id"`
	Title            string       `json:"title"`
	Location         string       `json:"location"`
	Date             any          `json:"date"`
	StartTime        any          `json:"start_time"`
	EndTime          any          `json:"end_time"`
	Campus           string       `json:"campus"`
	TreeCount        Count        `json:"tree_count"`
	ParticipantLimit Count        `json:"participant_limit"`
	Participants     Participants `json:"participants"`
	Description      string       `json:"description"`
	Status           string       `json:"status"`
	OrganizerName    string       `json:"organizer_name"`
	OrganizerAvatar  string       `json:"organizer_avatar"`
	UserJoined       bool         `json:"user_joined"`
}

// Activity is one client-side activity log entry. The log lives in memory
// only and resets with the process.
type Activity struct {
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// EcoTrend is a hashtag with its usage count.
type EcoTrend struct {
	Hashtag string `json:"hashtag"`
	Count   Count  `json:"count"`
}

// SiteStats are the platform-wide impact numbers on the landing page.
type SiteStats struct {
	Trees  Count     `json:"trees"`
	Waste  Count     `json:"waste"`
	Carbon Count     `json:"carbon"`
	Goals  SiteGoals `json:"goals"`
}

type SiteGoals struct {
	Trees  Count `json:"trees"`
	Waste  Count `json:"waste"`
	Carbon Count `json:"carbon"`
}

// SearchResult is one globalSearch hit.
type SearchResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type,omitempty"`
}
