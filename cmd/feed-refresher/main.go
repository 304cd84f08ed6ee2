package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/seedcampus/seed-client/internal/client"
	"github.com/seedcampus/seed-client/internal/config"
	"github.com/seedcampus/seed-client/internal/gateway"
	"github.com/seedcampus/seed-client/internal/session"
)

// FeedRefresher keeps the client's feed and event snapshots warm by
// re-fetching them on fixed intervals. It replaces the browser client's
// scattered reload timers with one worker.
type FeedRefresher struct {
	client         *client.Client
	feedInterval   time.Duration
	eventsInterval time.Duration
	logger         *slog.Logger
}

func NewFeedRefresher(c *client.Client, feedInterval, eventsInterval time.Duration) *FeedRefresher {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	return &FeedRefresher{
		client:         c,
		feedInterval:   feedInterval,
		eventsInterval: eventsInterval,
		logger:         logger,
	}
}

func (fr *FeedRefresher) Start(ctx context.Context) {
	feedTicker := time.NewTicker(fr.feedInterval)
	defer feedTicker.Stop()
	eventsTicker := time.NewTicker(fr.eventsInterval)
	defer eventsTicker.Stop()

	fr.logger.Info("Feed refresher started",
		"feed_interval", fr.feedInterval.String(),
		"events_interval", fr.eventsInterval.String())

	// Run once immediately on startup
	fr.refreshFeed(ctx)
	fr.refreshEvents(ctx)

	for {
		select {
		case <-ctx.Done():
			fr.logger.Info("Feed refresher shutting down")
			return
		case <-feedTicker.C:
			fr.refreshFeed(ctx)
		case <-eventsTicker.C:
			fr.refreshEvents(ctx)
		}
	}
}

func (fr *FeedRefresher) refreshFeed(ctx context.Context) {
	startTime := time.Now()

	items, trends, err := fr.client.LoadFeed(ctx)
	if err != nil {
		fr.logger.Error("Failed to refresh feed",
			"error", err.Error(),
			"duration_ms", time.Since(startTime).Milliseconds())
		return
	}

	fr.logger.Info("Refreshed feed",
		"posts", len(items),
		"trends", len(trends),
		"duration_ms", time.Since(startTime).Milliseconds())
}

func (fr *FeedRefresher) refreshEvents(ctx context.Context) {
	startTime := time.Now()

	evs, err := fr.client.LoadEvents(ctx)
	if err != nil {
		fr.logger.Error("Failed to refresh events",
			"error", err.Error(),
			"duration_ms", time.Since(startTime).Milliseconds())
		return
	}

	fr.logger.Info("Refreshed events",
		"events", len(evs),
		"duration_ms", time.Since(startTime).Milliseconds())
}

func main() {
	// Load config
	cfg := config.MustLoad()

	var store session.Store
	if cfg.Session.Backend == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to redis:", err)
		}
		store = session.NewRedisStore(rdb, cfg.Session.Secret)
	} else {
		store = session.NewFileStore(cfg.Session.Path, cfg.Session.Secret)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	c := client.New(gateway.New(cfg), store, logger)

	refresher := NewFeedRefresher(c, cfg.Refresh.Feed, cfg.Refresh.Events)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("Received shutdown signal")
		cancel()
	}()

	refresher.Start(ctx)

	slog.Info("Feed refresher stopped")
}
