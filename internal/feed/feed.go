package feed

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seedcampus/seed-client/internal/dates"
	"github.com/seedcampus/seed-client/internal/types"
)

const likersMeta = "likers"

var hashtagRe = regexp.MustCompile(`#(\w+)`)

// Item is a display-ready feed entry produced by reconciliation: one row
// per post id, comments split from the synthetic likers record, like state
// resolved for the viewing user and the timestamp normalized.
type Item struct {
	ID         types.ID
	UserID     types.ID
	UserName   string
	UserAvatar string
	Content    string
	When       dates.Result
	LikeCount  int
	Liked      bool
	Comments   []types.Comment
	Likers     []types.ID
	Hashtags   []string
	// Tentative marks an optimistic local insert that the backend has not
	// confirmed yet.
	Tentative bool
}

// Reconcile turns raw rows from the append-only post log into a
// deduplicated, newest-first feed plus the hashtag trend table. For
// duplicate ids the last row wins, modeling overwrite-by-append.
func Reconcile(raw []types.Post, userID types.ID) ([]Item, []types.EcoTrend) {
	index := make(map[types.ID]int, len(raw))
	items := make([]Item, 0, len(raw))

	for _, p := range raw {
		it := build(p, userID)
		if i, ok := index[p.ID]; ok {
			items[i] = it
			continue
		}
		index[p.ID] = len(items)
		items = append(items, it)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].When.Time.After(items[j].When.Time)
	})

	return items, Trends(items)
}

func build(p types.Post, userID types.ID) Item {
	comments := make([]types.Comment, 0, len(p.Comments))
	var likers []types.ID
	for _, c := range p.Comments {
		if c.Meta == likersMeta {
			likers = c.List
			continue
		}
		if c.Meta != "" {
			// unknown synthetic rows are never rendered
			continue
		}
		comments = append(comments, c)
	}

	count := int(p.Likes)
	if count == 0 {
		count = len(likers)
	}

	liked := false
	if userID != "" {
		for _, id := range likers {
			if id == userID {
				liked = true
				break
			}
		}
	}

	tags := p.Hashtags
	if len(tags) == 0 {
		tags = Hashtags(p.Content)
	}

	return Item{
		ID:         p.ID,
		UserID:     p.UserID,
		UserName:   p.UserName,
		UserAvatar: p.UserAvatar,
		Content:    p.Content,
		When:       dates.Parse(p.Timestamp),
		LikeCount:  count,
		Liked:      liked,
		Comments:   comments,
		Likers:     likers,
		Hashtags:   tags,
	}
}

// Hashtags extracts #word tokens from post text, lowercased, in order of
// appearance. Duplicates are kept; the trend table counts them.
func Hashtags(text string) []string {
	matches := hashtagRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, "#"+strings.ToLower(m[1]))
	}
	return tags
}

// Trends aggregates hashtag counts across the feed, sorted by count
// descending with ties kept in first-appearance order.
func Trends(items []Item) []types.EcoTrend {
	counts := make(map[string]int)
	var order []string
	for _, it := range items {
		for _, tag := range it.Hashtags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	trends := make([]types.EcoTrend, len(order))
	for i, tag := range order {
		trends[i] = types.EcoTrend{Hashtag: tag, Count: types.Count(counts[tag])}
	}
	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].Count > trends[j].Count
	})
	return trends
}

// Tentative builds the optimistic local entry prepended to the feed while a
// createPost call is in flight. The id is replaced by the server-assigned
// one on confirmation, or the entry is dropped on rejection.
func Tentative(user *types.User, content string) Item {
	return Item{
		ID:         types.ID("tentative-" + uuid.NewString()),
		UserID:     user.ID,
		UserName:   user.Name,
		UserAvatar: user.Avatar,
		Content:    content,
		When:       dates.Result{Time: time.Now(), Valid: true},
		Hashtags:   Hashtags(content),
		Tentative:  true,
	}
}
