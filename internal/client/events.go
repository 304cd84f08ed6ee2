package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/seedcampus/seed-client/internal/events"
	"github.com/seedcampus/seed-client/internal/types"
)

// LoadEvents fetches the events directory into the in-memory snapshot that
// FilterEvents operates on. The user id rides along when signed in so the
// backend can mark joined events. Stale responses are discarded the same
// way as feed loads.
func (c *Client) LoadEvents(ctx context.Context) ([]types.Event, error) {
	c.mu.Lock()
	c.eventsGen++
	gen := c.eventsGen
	params := map[string]any{}
	if c.user != nil {
		params["user_id"] = c.user.ID
	}
	c.mu.Unlock()

	resp, err := c.gw.Call(ctx, "getEvents", params)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("load events failed: %s", resp.Message())
	}

	var evs []types.Event
	if err := resp.Decode("events", &evs); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.eventsGen {
		c.events = evs
	}
	out := make([]types.Event, len(c.events))
	copy(out, c.events)
	return out, nil
}

// FilterEvents filters the current snapshot; it never fetches.
func (c *Client) FilterEvents(f events.Filters) []types.Event {
	c.mu.Lock()
	snapshot := make([]types.Event, len(c.events))
	copy(snapshot, c.events)
	c.mu.Unlock()
	return events.Filter(snapshot, f)
}

// EventDetails fetches one event and remembers it as the currently viewed
// one. An empty id falls back to the remembered event, so a detail view
// survives a process restart.
func (c *Client) EventDetails(ctx context.Context, id types.ID) (*types.Event, error) {
	if id == "" {
		stored, err := c.store.CurrentEventID()
		if err != nil {
			return nil, fmt.Errorf("current event: %w", err)
		}
		if stored == "" {
			return nil, errors.New("no event selected")
		}
		id = stored
	}

	if err := c.store.SetCurrentEventID(id); err != nil {
		c.logger.Error("failed to record current event", slog.String("error", err.Error()))
	}

	resp, err := c.gw.Call(ctx, "getEventDetails", map[string]any{"event_id": id})
	if err != nil {
		return nil, fmt.Errorf("event details: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("event details failed: %s", resp.Message())
	}

	var ev types.Event
	if err := resp.Decode("event", &ev); err != nil {
		return nil, fmt.Errorf("event details: %w", err)
	}
	return &ev, nil
}

// JoinEvent joins an event. The local participant count is bumped
// optimistically and rolled back if the backend rejects the join or the
// call fails. Full and already-joined events are refused before any
// request goes out.
func (c *Client) JoinEvent(ctx context.Context, id types.ID) error {
	user := c.CurrentUser()
	if user == nil {
		return ErrNotLoggedIn
	}

	c.mu.Lock()
	var title string
	bumped := false
	for i := range c.events {
		if c.events[i].ID != id {
			continue
		}
		if events.HasJoined(c.events[i], user.ID) {
			c.mu.Unlock()
			return ErrAlreadyJoined
		}
		if events.IsFull(c.events[i]) {
			c.mu.Unlock()
			return ErrEventFull
		}
		c.events[i].Participants.Count++
		title = c.events[i].Title
		bumped = true
		break
	}
	c.mu.Unlock()

	resp, err := c.gw.Call(ctx, "joinEvent", map[string]any{
		"event_id":  id,
		"user_id":   user.ID,
		"user_name": user.Name,
	})
	if err != nil || !resp.OK() {
		if bumped {
			c.mu.Lock()
			for i := range c.events {
				if c.events[i].ID == id {
					c.events[i].Participants.Count--
					break
				}
			}
			c.mu.Unlock()
		}
		if err != nil {
			return fmt.Errorf("join event: %w", err)
		}
		return fmt.Errorf("join rejected: %s", resp.Message())
	}

	c.mu.Lock()
	for i := range c.events {
		if c.events[i].ID == id {
			c.events[i].UserJoined = true
			break
		}
	}
	c.mu.Unlock()

	details := "Event ID: " + string(id)
	if title != "" {
		details = "Joined: " + title
	}
	c.logActivity(types.ActionEventJoin, details)
	return nil
}

// CreateEvent creates an event organized by the signed-in user and returns
// the new event id.
func (c *Client) CreateEvent(ctx context.Context, req types.EventRequest) (types.ID, error) {
	user := c.CurrentUser()
	if user == nil {
		return "", ErrNotLoggedIn
	}
	if err := c.validate.Struct(req); err != nil {
		return "", fmt.Errorf("invalid event: %w", err)
	}

	resp, err := c.gw.Call(ctx, "createEvent", eventParams(req, user.ID))
	if err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}
	if !resp.OK() {
		return "", fmt.Errorf("create event failed: %s", resp.Message())
	}
	return types.ID(resp.Str("id")), nil
}

// UpdateEvent saves edits to an existing event.
func (c *Client) UpdateEvent(ctx context.Context, id types.ID, req types.EventRequest) error {
	user := c.CurrentUser()
	if user == nil {
		return ErrNotLoggedIn
	}
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	params := eventParams(req, user.ID)
	params["event_id"] = id

	resp, err := c.gw.Call(ctx, "updateEvent", params)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("update failed: %s", resp.Message())
	}
	return nil
}

func eventParams(req types.EventRequest, organizerID types.ID) map[string]any {
	return map[string]any{
		"title":             req.Title,
		"location":          req.Location,
		"date":              req.Date,
		"start_time":        req.StartTime,
		"end_time":          req.EndTime,
		"campus":            req.Campus,
		"tree_count":        req.TreeCount,
		"participant_limit": req.ParticipantLimit,
		"description":       req.Description,
		"organizer_id":      organizerID,
	}
}
