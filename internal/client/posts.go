package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/seedcampus/seed-client/internal/feed"
	"github.com/seedcampus/seed-client/internal/types"
)

// LoadFeed fetches and reconciles the post log. Responses for superseded
// fetches are discarded: the stored snapshot only moves forward.
func (c *Client) LoadFeed(ctx context.Context) ([]feed.Item, []types.EcoTrend, error) {
	c.mu.Lock()
	c.feedGen++
	gen := c.feedGen
	var userID types.ID
	if c.user != nil {
		userID = c.user.ID
	}
	c.mu.Unlock()

	resp, err := c.gw.Call(ctx, "getPosts", nil)
	if err != nil {
		return nil, nil, fmt.Errorf("load feed: %w", err)
	}

	var raw []types.Post
	if resp.OK() {
		if err := resp.Decode("posts", &raw); err != nil {
			slog.Warn("unreadable posts payload", slog.String("error", err.Error()))
		}
	}

	items, trends := feed.Reconcile(raw, userID)

	// likes recorded in the session store mark posts the server's likers
	// metadata does not cover, e.g. likes sent while signed out
	if likedIDs, err := c.store.LikedPosts(); err != nil {
		c.logger.Error("failed to read liked posts", slog.String("error", err.Error()))
	} else if len(likedIDs) > 0 {
		likedSet := make(map[types.ID]struct{}, len(likedIDs))
		for _, lid := range likedIDs {
			likedSet[lid] = struct{}{}
		}
		for i := range items {
			if _, ok := likedSet[items[i].ID]; ok {
				items[i].Liked = true
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.feedGen {
		c.feed = items
		c.trends = trends
	}
	outItems := make([]feed.Item, len(c.feed))
	copy(outItems, c.feed)
	outTrends := make([]types.EcoTrend, len(c.trends))
	copy(outTrends, c.trends)
	return outItems, outTrends, nil
}

// Feed returns the current reconciled snapshot without fetching.
func (c *Client) Feed() []feed.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]feed.Item, len(c.feed))
	copy(out, c.feed)
	return out
}

// CreatePost publishes a post. The entry appears in the local feed
// immediately as tentative; it is confirmed with the server-assigned id on
// success and removed again if the backend rejects it.
func (c *Client) CreatePost(ctx context.Context, content string) (feed.Item, error) {
	content = strings.TrimSpace(content)
	user := c.CurrentUser()
	if user == nil {
		return feed.Item{}, ErrNotLoggedIn
	}
	if content == "" {
		return feed.Item{}, errors.New("post content is empty")
	}

	tentative := feed.Tentative(user, content)
	c.mu.Lock()
	c.feed = append([]feed.Item{tentative}, c.feed...)
	c.mu.Unlock()

	resp, err := c.gw.Call(ctx, "createPost", map[string]any{
		"userId":     user.ID,
		"userName":   user.Name,
		"userAvatar": user.Avatar,
		"content":    content,
		"hashtags":   tentative.Hashtags,
	})
	if err != nil || !resp.OK() {
		c.dropTentative(tentative.ID)
		if err != nil {
			return feed.Item{}, fmt.Errorf("create post: %w", err)
		}
		return feed.Item{}, fmt.Errorf("post rejected: %s", resp.Message())
	}

	confirmed := c.confirmTentative(tentative.ID, types.ID(resp.Str("id")))
	c.logActivity(types.ActionPost, content)
	return confirmed, nil
}

func (c *Client) dropTentative(id types.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.feed {
		if c.feed[i].ID == id {
			c.feed = append(c.feed[:i], c.feed[i+1:]...)
			return
		}
	}
}

func (c *Client) confirmTentative(id, serverID types.ID) feed.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.feed {
		if c.feed[i].ID == id {
			c.feed[i].Tentative = false
			if serverID != "" {
				c.feed[i].ID = serverID
			}
			return c.feed[i]
		}
	}
	return feed.Item{}
}

// LikePost likes a post and returns the canonical like count. The count
// comes from the server when reported, falling back to a local bump.
// ErrAlreadyLiked surfaces the backend's duplicate-like rejection.
func (c *Client) LikePost(ctx context.Context, id types.ID) (int, error) {
	user := c.CurrentUser()

	params := map[string]any{
		"post_id":     id,
		"user_id":     "",
		"user_name":   "",
		"user_avatar": "",
	}
	if user != nil {
		params["user_id"] = user.ID
		params["user_name"] = user.Name
		params["user_avatar"] = user.Avatar
	}

	resp, err := c.gw.Call(ctx, "likePost", params)
	if err != nil {
		return 0, fmt.Errorf("like post: %w", err)
	}
	if !resp.OK() {
		if resp.Message() == "Already liked" {
			return 0, ErrAlreadyLiked
		}
		return 0, fmt.Errorf("like rejected: %s", resp.Message())
	}

	reported := resp.Int("likes")

	c.mu.Lock()
	count := reported
	for i := range c.feed {
		if c.feed[i].ID != id {
			continue
		}
		if reported > 0 {
			c.feed[i].LikeCount = reported
		} else {
			c.feed[i].LikeCount++
		}
		if user != nil {
			c.feed[i].Liked = true
		}
		count = c.feed[i].LikeCount
		break
	}
	c.mu.Unlock()

	if user != nil {
		if err := c.store.AddLikedPost(id); err != nil {
			c.logger.Error("failed to record liked post", slog.String("error", err.Error()))
		}
	}
	return count, nil
}

// CommentPost appends a comment. The comment lands in the local snapshot
// immediately; the reconciled server copy replaces it on the next feed
// load.
func (c *Client) CommentPost(ctx context.Context, id types.ID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("comment text is empty")
	}

	name := "Guest"
	var userID types.ID
	if user := c.CurrentUser(); user != nil {
		name = user.Name
		userID = user.ID
	}

	c.mu.Lock()
	for i := range c.feed {
		if c.feed[i].ID == id {
			c.feed[i].Comments = append(c.feed[i].Comments, types.Comment{User: name, Text: text})
			break
		}
	}
	c.mu.Unlock()

	resp, err := c.gw.Call(ctx, "commentPost", map[string]any{
		"post_id":   id,
		"user_id":   userID,
		"user_name": name,
		"text":      text,
	})
	if err != nil {
		return fmt.Errorf("comment: %w", err)
	}
	if !resp.OK() {
		slog.Warn("comment rejected", slog.String("message", resp.Message()))
	}
	return nil
}
