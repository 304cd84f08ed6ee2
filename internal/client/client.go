package client

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/seedcampus/seed-client/internal/feed"
	"github.com/seedcampus/seed-client/internal/gateway"
	"github.com/seedcampus/seed-client/internal/session"
	"github.com/seedcampus/seed-client/internal/types"
)

// Business-rule rejections callers are expected to branch on.
var (
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrAlreadyLiked  = errors.New("already liked")
	ErrAlreadyJoined = errors.New("already joined this event")
	ErrEventFull     = errors.New("event is full")
)

// Client owns all application state: the signed-in user, the current feed
// and event snapshots, the trend table and the in-memory activity log.
// Every mutation goes through a method here; nothing is ever read back out
// of rendered output. Snapshots are stamped with a generation counter so a
// slow response for a superseded fetch cannot overwrite a newer one.
type Client struct {
	gw       *gateway.Gateway
	store    session.Store
	validate *validator.Validate
	logger   *slog.Logger

	mu        sync.Mutex
	user      *types.User
	feed      []feed.Item
	trends    []types.EcoTrend
	events    []types.Event
	activity  []types.Activity
	feedGen   uint64
	eventsGen uint64
}

// New builds a client and adopts any persisted session as the active user.
func New(gw *gateway.Gateway, store session.Store, logger *slog.Logger) *Client {
	c := &Client{
		gw:       gw,
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
	user, err := store.Restore()
	if err == nil {
		c.user = user
	} else if !errors.Is(err, session.ErrNoSession) {
		logger.Error("failed to restore session", slog.String("error", err.Error()))
	}
	return c
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (c *Client) CurrentUser() *types.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Activities returns the in-memory activity log, newest first.
func (c *Client) Activities() []types.Activity {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.Activity, len(c.activity))
	copy(out, c.activity)
	return out
}

// LogTree records a tree-log activity and bumps the trees stat.
func (c *Client) LogTree(details string) {
	c.logActivity(types.ActionTreeLog, details)
}

// logActivity prepends an entry to the activity log and bumps the matching
// user stat, persisting the user so the counter survives restarts. Server
// stats overwrite these local increments whenever UserStats is fetched.
func (c *Client) logActivity(action, details string) {
	entry := types.Activity{
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	}

	c.mu.Lock()
	c.activity = append([]types.Activity{entry}, c.activity...)
	if c.user == nil {
		c.mu.Unlock()
		return
	}
	switch action {
	case types.ActionPost:
		c.user.Stats.Posts++
	case types.ActionEventJoin:
		c.user.Stats.Events++
	case types.ActionTreeLog:
		c.user.Stats.Trees++
	}
	user := *c.user
	c.mu.Unlock()

	if err := c.store.Persist(&user); err != nil {
		c.logger.Error("failed to persist stats", slog.String("error", err.Error()))
	}
}

func (c *Client) persistUser(user *types.User) {
	if err := c.store.Persist(user); err != nil {
		c.logger.Error("failed to persist session", slog.String("error", err.Error()))
	}
}
