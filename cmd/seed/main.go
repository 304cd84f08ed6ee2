package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/seedcampus/seed-client/internal/client"
	"github.com/seedcampus/seed-client/internal/config"
	"github.com/seedcampus/seed-client/internal/dates"
	"github.com/seedcampus/seed-client/internal/events"
	"github.com/seedcampus/seed-client/internal/gateway"
	"github.com/seedcampus/seed-client/internal/session"
	"github.com/seedcampus/seed-client/internal/types"
)

const usage = `usage: seed [-config path] <command> [args]

  login <email> <password>
  register <name> <email> <username> <password>
  logout
  profile
  update-profile -name n [flags]
  activity
  mystats

  feed
  post <text...>
  like <post-id>
  comment <post-id> <text...>
  trends
  search <query...>
  stats

  events [-search q] [-campus c] [-status s]
  event [event-id]
  join <event-id>
  create-event -title t -location l -date d [flags]
  update-event <event-id> -title t [flags]
  log-tree <details...>
`

func main() {
	configPath, args, err := splitGlobalFlags(os.Args[1:])
	if err != nil || len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := args[0]
	args = args[1:]

	// the config flag has to be peeled off before subcommand dispatch;
	// MustLoad picks the path up through the environment
	if configPath != "" {
		os.Setenv("CONFIG_PATH", configPath)
	}
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	store := newStore(cfg)
	c := client.New(gateway.New(cfg), store, logger)

	ctx := context.Background()
	if err := run(ctx, c, command, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// splitGlobalFlags parses the flags that precede the subcommand and returns
// the remaining arguments, subcommand first.
func splitGlobalFlags(args []string) (string, []string, error) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		return "", nil, err
	}
	return *configPath, fs.Args(), nil
}

func newStore(cfg *config.Config) session.Store {
	if cfg.Session.Backend == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("failed to connect to redis: %s", err)
		}
		return session.NewRedisStore(rdb, cfg.Session.Secret)
	}
	return session.NewFileStore(cfg.Session.Path, cfg.Session.Secret)
}

func run(ctx context.Context, c *client.Client, command string, args []string) error {
	switch command {
	case "login":
		if len(args) < 2 {
			return errors.New("usage: login <email> <password>")
		}
		user, err := c.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Welcome back, %s (@%s)\n", user.Name, user.Username)
		return nil

	case "register":
		if len(args) < 4 {
			return errors.New("usage: register <name> <email> <username> <password>")
		}
		user, err := c.Register(ctx, types.RegisterRequest{
			Name:     args[0],
			Email:    args[1],
			Username: args[2],
			Password: args[3],
		})
		if err != nil {
			return err
		}
		fmt.Printf("Registration successful! Welcome to SEED, %s\n", user.Name)
		return nil

	case "logout":
		if err := c.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil

	case "profile":
		return showProfile(c)

	case "update-profile":
		return updateProfile(ctx, c, args)

	case "activity":
		return showActivity(c)

	case "mystats":
		stats, err := c.UserStats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("posts: %d  events: %d  trees: %d\n", stats.Posts, stats.Events, stats.Trees)
		return nil

	case "feed":
		return showFeed(ctx, c)

	case "post":
		if len(args) == 0 {
			return errors.New("usage: post <text...>")
		}
		item, err := c.CreatePost(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Printf("Posted (%s)\n", item.ID)
		return nil

	case "like":
		if len(args) < 1 {
			return errors.New("usage: like <post-id>")
		}
		count, err := c.LikePost(ctx, types.ID(args[0]))
		if errors.Is(err, client.ErrAlreadyLiked) {
			fmt.Println("You already liked this post!")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%d Likes\n", count)
		return nil

	case "comment":
		if len(args) < 2 {
			return errors.New("usage: comment <post-id> <text...>")
		}
		return c.CommentPost(ctx, types.ID(args[0]), strings.Join(args[1:], " "))

	case "trends":
		trends, err := c.Trends(ctx)
		if err != nil {
			return err
		}
		if len(trends) == 0 {
			fmt.Println("No trends yet.")
			return nil
		}
		for _, t := range trends {
			fmt.Printf("%s (%d)\n", t.Hashtag, t.Count)
		}
		return nil

	case "search":
		if len(args) == 0 {
			return errors.New("usage: search <query...>")
		}
		results, err := c.Search(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No results.")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%s\n  %s\n", r.Title, r.Description)
		}
		return nil

	case "stats":
		stats, err := c.SiteStats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Trees planted: %d (goal %d)\n", stats.Trees, stats.Goals.Trees)
		fmt.Printf("Waste recycled: %d kg (goal %d)\n", stats.Waste, stats.Goals.Waste)
		fmt.Printf("CO2 reduced: %d kg (goal %d)\n", stats.Carbon, stats.Goals.Carbon)
		return nil

	case "events":
		return showEvents(ctx, c, args)

	case "event":
		// with no argument the last viewed event is shown
		var id types.ID
		if len(args) > 0 {
			id = types.ID(args[0])
		}
		return showEventDetails(ctx, c, id)

	case "join":
		if len(args) < 1 {
			return errors.New("usage: join <event-id>")
		}
		err := c.JoinEvent(ctx, types.ID(args[0]))
		switch {
		case errors.Is(err, client.ErrEventFull):
			fmt.Println("Event Full")
			return nil
		case errors.Is(err, client.ErrAlreadyJoined):
			fmt.Println("Already joined")
			return nil
		case err != nil:
			return err
		}
		fmt.Println("Successfully joined the event!")
		return nil

	case "create-event":
		req, _, err := eventFlags(command, args)
		if err != nil {
			return err
		}
		id, err := c.CreateEvent(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("Event created successfully! (%s)\n", id)
		return nil

	case "update-event":
		if len(args) < 1 {
			return errors.New("usage: update-event <event-id> [flags]")
		}
		req, _, err := eventFlags(command, args[1:])
		if err != nil {
			return err
		}
		if err := c.UpdateEvent(ctx, types.ID(args[0]), req); err != nil {
			return err
		}
		fmt.Println("Event updated successfully!")
		return nil

	case "log-tree":
		if len(args) == 0 {
			return errors.New("usage: log-tree <details...>")
		}
		c.LogTree(strings.Join(args, " "))
		fmt.Println("Tree logged")
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func showProfile(c *client.Client) error {
	user := c.CurrentUser()
	if user == nil {
		return client.ErrNotLoggedIn
	}
	bio := user.Bio
	if strings.TrimSpace(bio) == "" {
		bio = "This user hasn't added a bio yet."
	}
	dept := user.Department
	if strings.TrimSpace(dept) == "" {
		dept = "No Department"
	}
	fmt.Printf("%s (@%s)\n%s\n%s\n", user.Name, user.Username, dept, bio)
	fmt.Printf("posts: %d  events: %d  trees: %d\n",
		user.Stats.Posts, user.Stats.Events, user.Stats.Trees)
	return nil
}

func updateProfile(ctx context.Context, c *client.Client, args []string) error {
	current := c.CurrentUser()
	if current == nil {
		return client.ErrNotLoggedIn
	}

	// flags default to the current values so partial edits work
	fs := flag.NewFlagSet("update-profile", flag.ContinueOnError)
	req := types.ProfileUpdate{}
	fs.StringVar(&req.Name, "name", current.Name, "display name")
	fs.StringVar(&req.Username, "username", current.Username, "username")
	fs.StringVar(&req.Email, "email", current.Email, "email")
	fs.StringVar(&req.Bio, "bio", current.Bio, "bio")
	fs.StringVar(&req.Avatar, "avatar", current.Avatar, "avatar URL")
	fs.StringVar(&req.Department, "department", current.Department, "department")
	fs.StringVar(&req.CurrentPassword, "current-password", "", "current password (for a password change)")
	fs.StringVar(&req.NewPassword, "new-password", "", "new password")
	fs.StringVar(&req.ConfirmPassword, "confirm-password", "", "new password again")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := c.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Profile updated, %s\n", user.Name)
	return nil
}

func showActivity(c *client.Client) error {
	acts := c.Activities()
	if len(acts) == 0 {
		fmt.Println("No activity yet. Start posting or join events!")
		return nil
	}
	for _, a := range acts {
		var text string
		switch a.Action {
		case types.ActionPost:
			text = "Posted: " + a.Details
		case types.ActionEventJoin:
			text = "Joined event: " + a.Details
		case types.ActionTreeLog:
			text = "Logged a tree: " + a.Details
		default:
			text = a.Details
		}
		fmt.Printf("%s  %s\n", a.Timestamp.Format("Jan 2 15:04"), text)
	}
	return nil
}

func showFeed(ctx context.Context, c *client.Client) error {
	items, trends, err := c.LoadFeed(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No posts yet.")
		return nil
	}

	now := time.Now()
	for _, item := range items {
		liked := " "
		if item.Liked {
			liked = "*"
		}
		fmt.Printf("[%s] %s - %s\n", liked, item.UserName, dates.Relative(item.When, now))
		fmt.Printf("    %s\n", item.Content)
		fmt.Printf("    %d Likes  %d Comments\n", item.LikeCount, len(item.Comments))
		for _, cm := range item.Comments {
			fmt.Printf("      %s: %s\n", cm.User, cm.Text)
		}
	}

	if len(trends) > 0 {
		fmt.Println("\nEco Trends:")
		for _, t := range trends {
			fmt.Printf("  %s (%d)\n", t.Hashtag, t.Count)
		}
	}
	return nil
}

func showEvents(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("events", flag.ContinueOnError)
	search := fs.String("search", "", "free-text search on title/location")
	campus := fs.String("campus", "all", "campus filter")
	status := fs.String("status", "all", "status filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := c.LoadEvents(ctx); err != nil {
		return err
	}
	evs := c.FilterEvents(events.Filters{Search: *search, Campus: *campus, Status: *status})
	if len(evs) == 0 {
		fmt.Println("No events found. Create the first one!")
		return nil
	}

	now := time.Now()
	user := c.CurrentUser()
	for _, ev := range evs {
		state := "Join Event"
		if user != nil && events.HasJoined(ev, user.ID) {
			state = "Joined"
		} else if events.IsFull(ev) {
			state = "Event Full"
		}
		fmt.Printf("%s  %s [%s]\n", ev.ID, ev.Title, events.StatusName(ev.Status))
		fmt.Printf("    %s, %s\n", dates.EventDate(dates.Parse(ev.Date)), ev.Location)
		fmt.Printf("    %s - %s  |  %d/%d participants  |  %d days left  |  %s\n",
			dates.Clock(dates.Parse(ev.StartTime)), dates.Clock(dates.Parse(ev.EndTime)),
			ev.Participants.Count, ev.ParticipantLimit, dates.DaysLeft(ev.Date, now), state)
	}
	return nil
}

func showEventDetails(ctx context.Context, c *client.Client, id types.ID) error {
	ev, err := c.EventDetails(ctx, id)
	if err != nil {
		return err
	}

	fmt.Println(ev.Title)
	fmt.Println(dates.EventDate(dates.Parse(ev.Date)))
	fmt.Printf("%s - %s (%s)\n",
		dates.Clock(dates.Parse(ev.StartTime)), dates.Clock(dates.Parse(ev.EndTime)),
		dates.Duration(ev.StartTime, ev.EndTime))
	fmt.Printf("%s, %s\n", ev.Location, events.CampusName(ev.Campus))
	fmt.Println(ev.Description)
	fmt.Printf("Trees: %d  (%d kg CO2 reduction annually)\n", ev.TreeCount, events.CO2Impact(*ev))
	fmt.Printf("Participants: %d/%d\n", ev.Participants.Count, ev.ParticipantLimit)
	organizer := ev.OrganizerName
	if organizer == "" {
		organizer = "SEED Platform"
	}
	fmt.Printf("Organizer: %s\n", organizer)
	return nil
}

func eventFlags(name string, args []string) (types.EventRequest, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	req := types.EventRequest{}
	fs.StringVar(&req.Title, "title", "", "event title")
	fs.StringVar(&req.Location, "location", "", "event location")
	fs.StringVar(&req.Date, "date", "", "event date (YYYY-MM-DD)")
	fs.StringVar(&req.StartTime, "start", "", "start time (HH:MM)")
	fs.StringVar(&req.EndTime, "end", "", "end time (HH:MM)")
	fs.StringVar(&req.Campus, "campus", "main", "campus")
	fs.IntVar(&req.TreeCount, "trees", 0, "trees to plant")
	fs.IntVar(&req.ParticipantLimit, "limit", 0, "participant limit (0 = unlimited)")
	fs.StringVar(&req.Description, "description", "", "event description")
	if err := fs.Parse(args); err != nil {
		return types.EventRequest{}, nil, err
	}
	return req, fs, nil
}
