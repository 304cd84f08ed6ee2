package feed

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/seedcampus/seed-client/internal/types"
)

func TestReconcileDedupAndSort(t *testing.T) {
	// the backing store is an append-only log: a re-appended id overwrites
	// the earlier row
	raw := []types.Post{
		{ID: "1", Content: "first", Timestamp: "2025-01-01T10:00:00Z"},
		{ID: "2", Content: "second", Timestamp: "2025-01-02T10:00:00Z"},
		{ID: "1", Content: "first, edited", Timestamp: "2025-01-03T10:00:00Z"},
	}

	items, _ := Reconcile(raw, "")

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != "1" || items[1].ID != "2" {
		t.Fatalf("wrong order: %s, %s", items[0].ID, items[1].ID)
	}
	if items[0].Content != "first, edited" {
		t.Fatalf("duplicate id should keep the last row, got %q", items[0].Content)
	}
}

func TestReconcileLikers(t *testing.T) {
	raw := []types.Post{{
		ID:    "p1",
		Likes: 0,
		Comments: types.CommentList{
			{Meta: "likers", List: []types.ID{"u1", "u2"}},
			{User: "alice", Text: "nice tree"},
		},
	}}

	items, _ := Reconcile(raw, "u2")
	it := items[0]

	if !it.Liked {
		t.Fatal("u2 is in the likers list and should read as liked")
	}
	if it.LikeCount != 2 {
		t.Fatalf("like count should fall back to len(likers)=2, got %d", it.LikeCount)
	}
	if len(it.Comments) != 1 || it.Comments[0].User != "alice" {
		t.Fatalf("likers record leaked into comments: %+v", it.Comments)
	}

	items, _ = Reconcile(raw, "u3")
	if items[0].Liked {
		t.Fatal("u3 never liked this post")
	}
}

func TestReconcileReportedLikesWin(t *testing.T) {
	raw := []types.Post{{
		ID:    "p1",
		Likes: 7,
		Comments: types.CommentList{
			{Meta: "likers", List: []types.ID{"u1"}},
		},
	}}

	items, _ := Reconcile(raw, "")
	if items[0].LikeCount != 7 {
		t.Fatalf("server-reported count should win, got %d", items[0].LikeCount)
	}
}

func TestCommentsArriveAsString(t *testing.T) {
	// some backend variants double-encode the comments column
	var p types.Post
	payload := `{"id": 3, "content": "hi", "comments": "[{\"user\":\"bob\",\"text\":\"hello\"}]"}`
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID != "3" {
		t.Fatalf("numeric id should decode to %q, got %q", "3", p.ID)
	}
	if len(p.Comments) != 1 || p.Comments[0].User != "bob" {
		t.Fatalf("string-encoded comments: %+v", p.Comments)
	}

	var bad types.Post
	if err := json.Unmarshal([]byte(`{"id":"4","comments":"not json"}`), &bad); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(bad.Comments) != 0 {
		t.Fatalf("unparseable comments should degrade to empty, got %+v", bad.Comments)
	}
}

func TestHashtags(t *testing.T) {
	got := Hashtags("Plant a #Tree today! #TREE #eco_life")
	want := []string{"#tree", "#tree", "#eco_life"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if got := Hashtags("no tags here"); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestTrendsOrdering(t *testing.T) {
	items := []Item{
		{Hashtags: []string{"#eco", "#tree"}},
		{Hashtags: []string{"#tree", "#green"}},
	}

	trends := Trends(items)

	if len(trends) != 3 {
		t.Fatalf("got %d trends, want 3", len(trends))
	}
	if trends[0].Hashtag != "#tree" || trends[0].Count != 2 {
		t.Fatalf("top trend wrong: %+v", trends[0])
	}
	// ties hold their first-appearance order
	if trends[1].Hashtag != "#eco" || trends[2].Hashtag != "#green" {
		t.Fatalf("tie order wrong: %+v", trends)
	}
}

func TestTentative(t *testing.T) {
	user := &types.User{ID: "u1", Name: "Alice", Avatar: "http://a/avatar.png"}
	it := Tentative(user, "planting a #Tree")

	if !it.Tentative {
		t.Fatal("tentative flag not set")
	}
	if it.ID == "" || it.UserID != "u1" || it.UserName != "Alice" {
		t.Fatalf("bad tentative item: %+v", it)
	}
	if !reflect.DeepEqual(it.Hashtags, []string{"#tree"}) {
		t.Fatalf("hashtags not extracted: %v", it.Hashtags)
	}
}
