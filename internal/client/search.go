package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/seedcampus/seed-client/internal/types"
)

// Search runs a global search across posts and events.
func (c *Client) Search(ctx context.Context, query string) ([]types.SearchResult, error) {
	if len(query) < 2 {
		return nil, errors.New("search query must be at least 2 characters")
	}

	resp, err := c.gw.Call(ctx, "globalSearch", map[string]any{"query": query})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("search failed: %s", resp.Message())
	}

	var results []types.SearchResult
	if err := resp.Decode("results", &results); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}

// SiteStats fetches the platform-wide impact counters.
func (c *Client) SiteStats(ctx context.Context) (types.SiteStats, error) {
	resp, err := c.gw.Call(ctx, "getStats", nil)
	if err != nil {
		return types.SiteStats{}, fmt.Errorf("site stats: %w", err)
	}
	if !resp.OK() {
		return types.SiteStats{}, fmt.Errorf("site stats failed: %s", resp.Message())
	}

	var stats types.SiteStats
	for key, dst := range map[string]*types.Count{
		"trees":  &stats.Trees,
		"waste":  &stats.Waste,
		"carbon": &stats.Carbon,
	} {
		*dst = types.Count(resp.Int(key))
	}
	if err := resp.Decode("goals", &stats.Goals); err != nil {
		slog.Warn("stats response has no goals", slog.String("error", err.Error()))
	}
	return stats, nil
}

// Trends returns the hashtag trend table, preferring the backend's
// pre-aggregated numbers and falling back to the table accumulated from the
// last feed load when the action is unavailable.
func (c *Client) Trends(ctx context.Context) ([]types.EcoTrend, error) {
	resp, err := c.gw.Call(ctx, "getEcoTrends", nil)
	if err == nil && resp.OK() {
		var trends []types.EcoTrend
		if decodeErr := resp.Decode("trends", &trends); decodeErr == nil {
			c.mu.Lock()
			c.trends = trends
			c.mu.Unlock()
			return trends, nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.EcoTrend, len(c.trends))
	copy(out, c.trends)
	return out, nil
}

// UserStats fetches the signed-in user's authoritative counters; they
// overwrite whatever was accumulated locally. On a business-level failure
// the local counters stand.
func (c *Client) UserStats(ctx context.Context) (types.Stats, error) {
	user := c.CurrentUser()
	if user == nil {
		return types.Stats{}, ErrNotLoggedIn
	}

	resp, err := c.gw.Call(ctx, "getUserStats", map[string]any{"user_id": user.ID})
	if err != nil {
		return user.Stats, fmt.Errorf("user stats: %w", err)
	}
	if !resp.OK() {
		slog.Warn("failed to fetch user stats", slog.String("message", resp.Message()))
		return user.Stats, nil
	}

	var stats types.Stats
	if err := resp.Decode("stats", &stats); err != nil {
		return user.Stats, fmt.Errorf("user stats: %w", err)
	}

	c.mu.Lock()
	if c.user != nil {
		c.user.Stats = stats
		updated := *c.user
		c.mu.Unlock()
		c.persistUser(&updated)
		return stats, nil
	}
	c.mu.Unlock()
	return stats, nil
}
